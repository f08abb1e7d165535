package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/render"
	"github.com/goliatone/go-typeinput/pkg/validation"
)

func sampleForm() render.Form {
	max := 3
	return render.Form{
		ID: "profile",
		Fields: []model.FieldDescriptor{
			{Name: "name", Kind: model.KindString, Widget: model.WidgetText},
			{Name: "email", Kind: model.KindString, Widget: model.WidgetEmail},
			{Name: "tags", Kind: model.KindString, Widget: model.WidgetText, List: &model.ListMeta{MaxLength: &max}},
			{Name: "subscribe", Kind: model.KindBool, Widget: model.WidgetCheckbox},
			{Name: "age", Kind: model.KindInt, Widget: model.WidgetNumber, Optional: &model.OptionalMeta{Enabled: true}, Default: int64(30)},
		},
	}
}

func TestMapErrorPayload_Paths(t *testing.T) {
	payload := map[string][]string{
		"/body/name":           {"Name is required"},
		"body.email":           {"Email invalid", " Email invalid "},
		"$.body.tags[1]":       {"Too long"},
		"non_field_errors":     {"Form level error"},
		"request/body/unknown": {"Falls back to form errors"},
		"":                     {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(sampleForm(), payload)

	wantFields := map[string][]string{
		"name":  {"Name is required"},
		"email": {"Email invalid"},
		"tags":  {"item 2: Too long"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Falls back to form errors", "Form level error", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorsFromResult(t *testing.T) {
	form := sampleForm()
	result := validation.ValidateValues(form.Fields, map[string]any{
		"name":      "  ",
		"email":     "a@example.com",
		"tags":      []any{"a", "b", "c", "d"},
		"subscribe": "maybe",
		"colour":    "red",
	})
	if result.Valid {
		t.Fatalf("expected invalid result")
	}

	mapped := render.ErrorsFromResult(form, result)
	for _, name := range []string{"name", "tags", "subscribe"} {
		if len(mapped.Fields[name]) != 1 {
			t.Fatalf("expected one message for %s, got %v", name, mapped.Fields)
		}
	}
	if _, ok := mapped.Fields["email"]; ok {
		t.Fatalf("email should be valid: %v", mapped.Fields["email"])
	}
	if diff := cmp.Diff([]string{"colour: unknown field"}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}

	opts := mapped.Options(map[string]any{"name": "  "})
	if got := opts.FieldErrors("tags"); len(got) != 1 {
		t.Fatalf("options lost field errors: %v", opts.Errors)
	}
}

func TestErrorsFromResult_ItemIndex(t *testing.T) {
	form := render.Form{Fields: []model.FieldDescriptor{
		{Name: "scores", Kind: model.KindInt, List: &model.ListMeta{}},
	}}
	result := validation.ValidateValues(form.Fields, map[string]any{"scores": []any{"1", "x"}})
	mapped := render.ErrorsFromResult(form, result)
	got := mapped.Fields["scores"]
	if len(got) != 1 || got[0][:7] != "item 2:" {
		t.Fatalf("expected item prefix, got %v", got)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
