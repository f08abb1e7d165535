package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-typeinput/pkg/openapi"
	"github.com/goliatone/go-typeinput/pkg/source"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Operations returns one form per operation request body, sorted by id,
// followed by one form per object component schema.
func (p *Parser) Operations(ctx context.Context, doc source.Document) ([]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	conv := converter{providers: p.options.Providers}
	var operations []pkgopenapi.Operation
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, entry := range []struct {
				method string
				op     *openapi3.Operation
			}{
				{"GET", item.Get}, {"PUT", item.Put}, {"POST", item.Post}, {"DELETE", item.Delete},
				{"PATCH", item.Patch}, {"HEAD", item.Head}, {"OPTIONS", item.Options}, {"TRACE", item.Trace},
			} {
				op, ok, err := conv.operation(entry.method, path, entry.op)
				if err != nil {
					return nil, err
				}
				if ok {
					operations = append(operations, op)
				}
			}
		}
	}
	sort.Slice(operations, func(i, j int) bool { return operations[i].ID < operations[j].ID })

	components, err := conv.components(spec.Components)
	if err != nil {
		return nil, err
	}
	operations = append(operations, components...)

	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: no forms extracted")
	}
	return operations, nil
}

func (c converter) operation(method, path string, operation *openapi3.Operation) (pkgopenapi.Operation, bool, error) {
	if operation == nil || operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return pkgopenapi.Operation{}, false, nil
	}
	body := requestSchema(operation.RequestBody.Value.Content)
	if body == nil {
		return pkgopenapi.Operation{}, false, nil
	}

	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	fields, err := c.objectFields(body)
	if err != nil {
		return pkgopenapi.Operation{}, false, fmt.Errorf("openapi parser: operation %s: %w", id, err)
	}
	if len(fields) == 0 {
		return pkgopenapi.Operation{}, false, nil
	}
	return pkgopenapi.Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		Fields:      fields,
	}, true, nil
}

func (c converter) components(components *openapi3.Components) ([]pkgopenapi.Operation, error) {
	if components == nil || len(components.Schemas) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(components.Schemas))
	for name := range components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []pkgopenapi.Operation
	for _, name := range names {
		ref := components.Schemas[name]
		if ref == nil || ref.Value == nil || !isObject(ref.Value) {
			continue
		}
		fields, err := c.objectFields(ref.Value)
		if err != nil {
			return nil, fmt.Errorf("openapi parser: schema %s: %w", name, err)
		}
		if len(fields) == 0 {
			continue
		}
		out = append(out, pkgopenapi.Operation{
			ID:          pkgopenapi.ComponentPrefix + name,
			Summary:     ref.Value.Title,
			Description: ref.Value.Description,
			Fields:      fields,
		})
	}
	return out, nil
}

func requestSchema(content openapi3.Content) *openapi3.Schema {
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func isObject(s *openapi3.Schema) bool {
	if s.Type != nil && s.Type.Is(openapi3.TypeObject) {
		return true
	}
	return len(s.Properties) > 0 || len(s.AllOf) > 0
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		// 3.1 style ["string", "null"]; the null arm is handled as optional.
		for _, v := range values {
			if v != openapi3.TypeNull {
				return v
			}
		}
		return ""
	}
}
