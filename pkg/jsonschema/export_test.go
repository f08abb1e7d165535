package jsonschema_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-typeinput/pkg/jsonschema"
	pkgmodel "github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

func build(t *testing.T, name string, typ schema.Type, def any) pkgmodel.FieldDescriptor {
	t.Helper()
	desc, err := pkgmodel.NewBuilder().Build(name, typ, def)
	if err != nil {
		t.Fatalf("build %s: %v", name, err)
	}
	return desc
}

func TestExport_ObjectShape(t *testing.T) {
	fields := []pkgmodel.FieldDescriptor{
		build(t, "volume", schema.Annotated(schema.Int(), schema.Between(0, 100), schema.NewSlider(), schema.Label("Volume")), 50),
		build(t, "ratio", schema.Annotated(schema.Float(), schema.Gt(0), schema.Lt(1.5)), nil),
		build(t, "nick", schema.Optional(schema.Annotated(schema.String(), schema.Length(2, 8))), nil),
		build(t, "color", schema.Literal("red", "green"), "red"),
		build(t, "due", schema.Date(), schema.NewDate(2024, 3, 1)),
		build(t, "tags", schema.Annotated(schema.List(schema.String()), schema.Length(1, 3)), nil),
	}

	data, err := jsonschema.Marshal(fields, jsonschema.Options{Title: "Settings"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got["type"] != "object" || got["title"] != "Settings" || got["additionalProperties"] != false {
		t.Fatalf("root mismatch: %v", got)
	}
	if diff := cmp.Diff([]any{"volume", "ratio", "color", "due", "tags"}, got["required"]); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	props := got["properties"].(map[string]any)
	volume := props["volume"].(map[string]any)
	if volume["type"] != "integer" || volume["minimum"] != float64(0) || volume["maximum"] != float64(100) || volume["default"] != float64(50) {
		t.Fatalf("volume mismatch: %v", volume)
	}
	ext := volume[jsonschema.ExtensionKey].(map[string]any)
	if ext["widget"] != pkgmodel.WidgetSlider || ext["step"] != float64(1) {
		t.Fatalf("volume extension mismatch: %v", ext)
	}

	ratio := props["ratio"].(map[string]any)
	if ratio["exclusiveMinimum"] != float64(0) || ratio["exclusiveMaximum"] != 1.5 {
		t.Fatalf("ratio mismatch: %v", ratio)
	}

	nick := props["nick"].(map[string]any)
	if nick["minLength"] != float64(2) || nick["maxLength"] != float64(8) {
		t.Fatalf("nick mismatch: %v", nick)
	}

	color := props["color"].(map[string]any)
	if diff := cmp.Diff([]any{"red", "green"}, color["enum"]); diff != "" {
		t.Fatalf("color enum mismatch (-want +got):\n%s", diff)
	}

	due := props["due"].(map[string]any)
	if due["format"] != "date" || due["default"] != "2024-03-01" {
		t.Fatalf("due mismatch: %v", due)
	}

	tags := props["tags"].(map[string]any)
	items := tags["items"].(map[string]any)
	if tags["type"] != "array" || tags["minItems"] != float64(1) || tags["maxItems"] != float64(3) || items["type"] != "string" {
		t.Fatalf("tags mismatch: %v", tags)
	}
}

func TestExport_PreservesFieldOrder(t *testing.T) {
	fields := []pkgmodel.FieldDescriptor{
		build(t, "zeta", schema.Int(), nil),
		build(t, "alpha", schema.Int(), nil),
	}
	root := jsonschema.Export(fields, jsonschema.Options{})

	var keys []string
	for pair := root.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha"}, keys); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
