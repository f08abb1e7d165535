package widgets

import (
	"testing"

	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.FieldDescriptor
		expect string
	}{
		{
			name:   "choices dropdown",
			field:  model.FieldDescriptor{Kind: model.KindString, Choices: &model.ChoiceMeta{Options: []any{"a"}}},
			expect: model.WidgetDropdown,
		},
		{
			name:   "slider before password",
			field:  model.FieldDescriptor{Kind: model.KindInt, ItemUI: &model.ItemUIMeta{IsSlider: true, IsPassword: true}},
			expect: model.WidgetSlider,
		},
		{
			name:   "textarea",
			field:  model.FieldDescriptor{Kind: model.KindString, ItemUI: &model.ItemUIMeta{Rows: 3}},
			expect: model.WidgetTextarea,
		},
		{
			name:   "pattern hint",
			field:  model.FieldDescriptor{Kind: model.KindString, WidgetHint: schema.WidgetAudioFile},
			expect: model.WidgetAudioFile,
		},
		{
			name:   "scalar default",
			field:  model.FieldDescriptor{Kind: model.KindBool},
			expect: model.WidgetCheckbox,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected widget %q, got none", tc.expect)
			}
			if got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
			if fallback := model.ResolveWidget(tc.field); fallback != got {
				t.Fatalf("registry and built-in rules disagree: %q vs %q", got, fallback)
			}
		})
	}
}

func TestRegister_CustomPriority(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Toggle", BuiltinPriority+1, func(field model.FieldDescriptor) bool {
		return field.Kind == model.KindBool
	})

	if got, _ := reg.Resolve(model.FieldDescriptor{Kind: model.KindBool}); got != "Toggle" {
		t.Fatalf("expected custom matcher to win, got %q", got)
	}
	if got, _ := reg.Resolve(model.FieldDescriptor{Kind: model.KindInt}); got != model.WidgetNumber {
		t.Fatalf("expected built-in fallback, got %q", got)
	}
}

func TestRegister_TiesUseRegistrationOrder(t *testing.T) {
	reg := NewEmptyRegistry()
	always := func(model.FieldDescriptor) bool { return true }
	reg.Register("first", 5, always)
	reg.Register("second", 5, always)

	if got, _ := reg.Resolve(model.FieldDescriptor{}); got != "first" {
		t.Fatalf("expected first registration to win, got %q", got)
	}
}

func TestEmptyRegistry(t *testing.T) {
	if _, ok := NewEmptyRegistry().Resolve(model.FieldDescriptor{Kind: model.KindInt}); ok {
		t.Fatalf("expected empty registry to resolve nothing")
	}
}

func TestDecorate_ReassignsWidgets(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Stars", BuiltinPriority+1, func(field model.FieldDescriptor) bool {
		return field.Name == "rating"
	})

	builder := model.NewBuilder()
	rating, err := builder.Build("rating", schema.Annotated(schema.Int(), schema.Between(1, 5)), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	title, err := builder.Build("title", schema.String(), nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	decorated, err := reg.Decorate([]model.FieldDescriptor{rating, title})
	if err != nil {
		t.Fatalf("decorate: %v", err)
	}
	if decorated[0].Widget != "Stars" || decorated[1].Widget != model.WidgetText {
		t.Fatalf("unexpected widgets: %q, %q", decorated[0].Widget, decorated[1].Widget)
	}
	if rating.Widget != model.WidgetNumber {
		t.Fatalf("decorate must not modify the input descriptor, got %q", rating.Widget)
	}
}

func TestRegistry_AsBuilderResolver(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Stars", BuiltinPriority+1, func(field model.FieldDescriptor) bool {
		return field.Kind == model.KindInt && field.Constraints != nil && field.Constraints.Le != nil && *field.Constraints.Le == 5
	})

	desc, err := model.NewBuilder(model.WithWidgetResolver(reg)).
		Build("rating", schema.Annotated(schema.Int(), schema.Between(1, 5)), 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if desc.Widget != "Stars" {
		t.Fatalf("expected Stars, got %q", desc.Widget)
	}
}
