package orchestrator

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format names the declaration language of a document.
type Format string

const (
	FormatUISchema Format = "uischema"
	FormatOpenAPI  Format = "openapi"
)

// DetectFormat inspects the top-level keys of a JSON or YAML document.
func DetectFormat(raw []byte) (Format, error) {
	var head struct {
		OpenAPI string    `yaml:"openapi"`
		Swagger string    `yaml:"swagger"`
		Forms   yaml.Node `yaml:"forms"`
	}
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return "", fmt.Errorf("detect format: %w", err)
	}
	switch {
	case head.OpenAPI != "":
		return FormatOpenAPI, nil
	case head.Swagger != "":
		return "", fmt.Errorf("detect format: swagger %s documents are not supported, convert to OpenAPI 3", head.Swagger)
	case head.Forms.Kind != 0:
		return FormatUISchema, nil
	}
	return "", errors.New("detect format: expected an \"openapi\" or \"forms\" top-level key")
}
