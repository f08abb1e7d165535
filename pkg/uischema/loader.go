package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-typeinput/pkg/collect"
	"github.com/goliatone/go-typeinput/pkg/providers/timezones"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

// LoadOption configures LoadFS and Parse.
type LoadOption func(*loadConfig)

type loadConfig struct {
	providers map[string]schema.OptionsProvider
}

func newLoadConfig(opts []LoadOption) loadConfig {
	cfg := loadConfig{providers: map[string]schema.OptionsProvider{
		timezones.Name: timezones.Provider(),
	}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithProvider registers a dropdown provider referenced by name from a
// `dropdown` fragment. The "timezones" provider is always available unless
// overridden.
func WithProvider(name string, provider schema.OptionsProvider) LoadOption {
	return func(cfg *loadConfig) {
		if cfg.providers == nil {
			cfg.providers = make(map[string]schema.OptionsProvider)
		}
		cfg.providers[name] = provider
	}
}

// LoadFS walks the provided filesystem and parses JSON/YAML declaration
// files. When fsys is nil or no declaration files are present, the returned
// store is empty. Form ids must be unique across files.
func LoadFS(fsys fs.FS, opts ...LoadOption) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDeclarationFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		forms, err := Parse(data, path, opts...)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if _, exists := store.forms[form.ID]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", form.ID, path)
			}
			store.forms[form.ID] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse decodes one declaration document. source names the document in
// error messages.
func Parse(data []byte, source string, opts ...LoadOption) ([]Form, error) {
	cfg := newLoadConfig(opts)

	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	forms := make([]Form, 0, len(ids))
	for _, rawID := range ids {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("uischema: file %s defines an empty form id", source)
		}
		form, err := buildForm(id, source, doc.Forms[rawID], cfg)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
		}
	}

	var doc documentFile
	if err := decodeStrict(raw, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: decode %s: %w", source, err)
	}
	return doc, nil
}

var typeFileType = reflect.TypeOf(typeFile{})

// typeShorthandHook expands `type: email` into `type: {kind: email}`.
func typeShorthandHook(from, to reflect.Type, data any) (any, error) {
	if to != typeFileType || from.Kind() != reflect.String {
		return data, nil
	}
	return map[string]any{"kind": data}, nil
}

func decodeStrict(input, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  typeShorthandHook,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func buildForm(id, source string, raw formFile, cfg loadConfig) (Form, error) {
	form := Form{
		ID:          id,
		Source:      source,
		Title:       strings.TrimSpace(raw.Title),
		Description: sanitizeProse(raw.Description),
		Icon:        sanitizeIcon(raw.Icon),
		Fields:      make([]collect.Field, 0, len(raw.Fields)),
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, f := range raw.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) field %d has no name", id, source, idx)
		}
		if _, dup := seen[name]; dup {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) defines duplicate field %q", id, source, name)
		}
		seen[name] = struct{}{}

		field, err := buildField(name, f, cfg)
		if err != nil {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) field %q: %w", id, source, name, err)
		}
		form.Fields = append(form.Fields, field)

		if widget := strings.TrimSpace(f.Widget); widget != "" {
			if form.Widgets == nil {
				form.Widgets = make(map[string]string)
			}
			form.Widgets[name] = widget
		}
	}
	return form, nil
}

func buildField(name string, raw fieldFile, cfg loadConfig) (collect.Field, error) {
	typ, err := buildType(raw.Type, cfg)
	if err != nil {
		return collect.Field{}, err
	}
	def := ConvertDefault(raw.Default, typ)

	optional := ""
	switch v := raw.Optional.(type) {
	case nil:
	case bool:
		optional = fmt.Sprint(v)
	case string:
		optional = strings.ToLower(strings.TrimSpace(v))
	default:
		return collect.Field{}, fmt.Errorf("optional must be a bool or a string, got %T", raw.Optional)
	}

	switch optional {
	case "", "false":
	case "true":
		typ = schema.Optional(typ)
	case "enabled":
		typ = schema.OptionalEnabled(typ)
	case "disabled":
		typ = schema.OptionalDisabled(typ)
	default:
		return collect.Field{}, fmt.Errorf("optional must be true, enabled or disabled, got %q", optional)
	}
	return collect.Field{Name: name, Type: typ, Default: def}, nil
}

func isDeclarationFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
