package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

func TestFieldDescriptor_ToMapOmitsAbsentFacets(t *testing.T) {
	desc := mustBuild(t, "name", schema.String(), nil)
	got, err := desc.ToMap()
	if err != nil {
		t.Fatalf("to map: %v", err)
	}
	want := map[string]any{
		"name":   "name",
		"kind":   "str",
		"label":  "Name",
		"widget": "Text",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldDescriptor_ToMapEncodesValues(t *testing.T) {
	typ := schema.Optional(schema.Annotated(schema.Literal(
		schema.NewDate(2024, 1, 1),
		schema.NewDate(2024, 6, 1),
	), schema.Label("Start")))
	desc := mustBuild(t, "start", typ, schema.NewDate(2024, 6, 1))

	got, err := desc.ToMap()
	if err != nil {
		t.Fatalf("to map: %v", err)
	}
	want := map[string]any{
		"name":     "start",
		"kind":     "date",
		"label":    "Start",
		"default":  "2024-06-01",
		"widget":   "Dropdown",
		"optional": map[string]any{"enabled": true},
		"choices": map[string]any{
			"source":  "literal",
			"options": []any{"2024-01-01", "2024-06-01"},
		},
		"field_ui": map[string]any{"label": "Start"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldDescriptor_EnumSerializesUnderlyingValues(t *testing.T) {
	desc := mustBuild(t, "priority", priority, priority.Enum.MustMember("HIGH"))
	raw, err := json.Marshal(desc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Default float64 `json:"default"`
		Choices struct {
			Source  string    `json:"source"`
			Enum    string    `json:"enum"`
			Options []float64 `json:"options"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Default != 3 || decoded.Choices.Enum != "Priority" || decoded.Choices.Source != "enum" {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, decoded.Choices.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestRefreshChoices(t *testing.T) {
	options := []string{"a", "b"}
	provider := func() (any, error) { return append([]string(nil), options...), nil }
	desc := mustBuild(t, "letter", schema.Annotated(schema.String(), schema.Dropdown{Provider: provider}), "b")

	options = []string{"b", "c"}
	refreshed, err := pkgmodel.RefreshChoices(desc)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if diff := cmp.Diff([]any{"b", "c"}, refreshed.Choices.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"a", "b"}, desc.Choices.Options); diff != "" {
		t.Fatalf("original descriptor changed (-want +got):\n%s", diff)
	}

	options = []string{"x"}
	if _, err := pkgmodel.RefreshChoices(desc); pkgmodel.CodeOf(err) != "DefaultNotInOptions" {
		t.Fatalf("expected DefaultNotInOptions, got %v", err)
	}

	static := mustBuild(t, "size", schema.Literal("S"), nil)
	same, err := pkgmodel.RefreshChoices(static)
	if err != nil || same.Choices != static.Choices {
		t.Fatalf("static choices should be returned unchanged, got %v", err)
	}
}
