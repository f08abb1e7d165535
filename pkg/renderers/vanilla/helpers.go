package vanilla

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-typeinput/pkg/schema"
)

func controlID(formID, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if formID = strings.TrimSpace(formID); formID != "" {
		return "ti-" + formID + "-" + name
	}
	return "ti-" + name
}

// formatValue renders a canonical value the way HTML inputs expect it.
func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case schema.LocalDate:
		return value.String()
	case schema.LocalTime:
		return value.String()
	case schema.EnumMember:
		return formatValue(value.Value)
	case interface{ String() string }:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
