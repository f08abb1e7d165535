package collect_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-typeinput/pkg/collect"
	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

type level int

func (level) TypeInputEnum() schema.Type {
	return schema.Enum("Level",
		schema.Member("LOW", 1),
		schema.Member("MEDIUM", 2),
		schema.Member("HIGH", 3),
	)
}

type settings struct {
	Volume   int      `json:"volume" typeinput:"label=Volume,ge=0,le=100,slider"`
	Email    *string  `json:"email" typeinput:"format=email"`
	Tags     []string `json:"tags" typeinput:"list_min=1,max_length=12"`
	Level    level    `json:"level" typeinput:"default=HIGH"`
	Color    string   `json:"color" typeinput:"choices=red|green|blue,default=green"`
	Notes    string   `json:"notes" typeinput:"rows=4,placeholder=Anything else?"`
	Internal string   `json:"-"`
	hidden   string
}

func byName(fields []model.FieldDescriptor) map[string]model.FieldDescriptor {
	out := make(map[string]model.FieldDescriptor, len(fields))
	for _, f := range fields {
		out[f.Name] = f
	}
	return out
}

func TestFromStruct_DeclaresTaggedFields(t *testing.T) {
	fields, err := collect.FromStruct(settings{})
	require.NoError(t, err)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"volume", "email", "tags", "level", "color", "notes"}, names)

	descs, err := collect.Analyze(fields)
	require.NoError(t, err)
	got := byName(descs)

	volume := got["volume"]
	assert.Equal(t, model.KindInt, volume.Kind)
	assert.Equal(t, "Volume", volume.Label)
	assert.Equal(t, model.WidgetSlider, volume.Widget)
	assert.Nil(t, volume.Default)

	email := got["email"]
	assert.True(t, email.IsOptional())
	assert.Equal(t, model.WidgetEmail, email.Widget)
	assert.False(t, email.Optional.Enabled)

	tags := got["tags"]
	require.True(t, tags.IsList())
	require.NotNil(t, tags.List.MinLength)
	assert.Equal(t, 1, *tags.List.MinLength)
	require.NotNil(t, tags.Constraints)
	assert.Equal(t, 12, *tags.Constraints.MaxLength)

	assert.Equal(t, int64(3), got["level"].Default)
	require.NotNil(t, got["level"].Choices)
	assert.Equal(t, model.SourceEnum, got["level"].Choices.Source)

	color := got["color"]
	require.NotNil(t, color.Choices)
	assert.Equal(t, []any{"red", "green", "blue"}, color.Choices.Options)
	assert.Equal(t, "green", color.Default)

	notes := got["notes"]
	assert.Equal(t, model.WidgetTextarea, notes.Widget)
	assert.Equal(t, "Anything else?", notes.ItemUI.Placeholder)
}

func TestFromStruct_ValuesBecomeDefaults(t *testing.T) {
	email := "ann@example.com"
	fields, err := collect.FromStruct(&settings{Volume: 40, Email: &email, Level: 1})
	require.NoError(t, err)

	descs, err := collect.Analyze(fields)
	require.NoError(t, err)
	got := byName(descs)

	assert.Equal(t, int64(40), got["volume"].Default)
	assert.Equal(t, email, got["email"].Default)
	assert.True(t, got["email"].Optional.Enabled)
	assert.Equal(t, int64(3), got["level"].Default, "tag default wins over the struct value")
}

func TestFromStruct_ListDefaultsAndOptionalMarker(t *testing.T) {
	type form struct {
		IDs   []int             `json:"ids" typeinput:"default=1|2|3"`
		Due   schema.LocalDate  `json:"due" typeinput:"default=2024-03-01"`
		Alarm *schema.LocalTime `json:"alarm" typeinput:"optional=enabled,default=07:30"`
	}
	fields, err := collect.FromStruct(form{})
	require.NoError(t, err)

	descs, err := collect.Analyze(fields)
	require.NoError(t, err)
	got := byName(descs)

	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got["ids"].Default)
	assert.Equal(t, schema.NewDate(2024, 3, 1), got["due"].Default)
	assert.Equal(t, model.WidgetDate, got["due"].Widget)
	assert.True(t, got["alarm"].Optional.Enabled)
	assert.Equal(t, schema.NewTime(7, 30, 0), got["alarm"].Default)
}

func TestFromStruct_Providers(t *testing.T) {
	type form struct {
		Region string `json:"region" typeinput:"options=regions"`
	}
	regions := func() (any, error) { return []string{"eu", "us"}, nil }

	fields, err := collect.FromStruct(form{}, collect.WithProvider("regions", regions))
	require.NoError(t, err)
	descs, err := collect.Analyze(fields)
	require.NoError(t, err)

	require.NotNil(t, descs[0].Choices)
	assert.Equal(t, model.SourceProvider, descs[0].Choices.Source)
	assert.Equal(t, []any{"eu", "us"}, descs[0].Choices.Options)
	assert.Equal(t, model.WidgetDropdown, descs[0].Widget)

	_, err = collect.FromStruct(form{})
	assert.ErrorContains(t, err, `options provider "regions" is not registered`)
}

func TestFromStruct_TagErrors(t *testing.T) {
	type unknownKey struct {
		Name string `typeinput:"colour=red"`
	}
	type badNumber struct {
		Age int `typeinput:"ge=ten"`
	}
	type formatOnInt struct {
		Age int `typeinput:"format=email"`
	}
	type listBoundsOnScalar struct {
		Age int `typeinput:"list_min=1"`
	}
	type badOptional struct {
		Nick *string `typeinput:"optional=maybe"`
	}

	cases := []struct {
		name string
		v    any
		want string
	}{
		{name: "unknown key", v: unknownKey{}, want: `unknown typeinput tag key "colour"`},
		{name: "bad number", v: badNumber{}, want: `ge: invalid number "ten"`},
		{name: "format on int", v: formatOnInt{}, want: "format=email requires a string field"},
		{name: "list bounds on scalar", v: listBoundsOnScalar{}, want: "list_min and list_max require a slice field"},
		{name: "bad optional", v: badOptional{}, want: "optional must be enabled or disabled"},
		{name: "not a struct", v: 42, want: "expected struct"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := collect.FromStruct(tc.v)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestFromStruct_UnsupportedTypeSurfacesAtAnalyze(t *testing.T) {
	type form struct {
		Name  string     `json:"name"`
		Ratio complex128 `json:"ratio"`
	}
	fields, err := collect.FromStruct(form{})
	require.NoError(t, err)

	_, err = collect.Analyze(fields)
	assert.True(t, errors.Is(err, model.ErrShape) || errors.Is(err, model.ErrExtraction), "got %v", err)

	core, logs := observer.New(zap.WarnLevel)
	descs, err := collect.Analyze(fields, collect.SkipInvalid(), collect.WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Len(t, descs, 1)
	assert.Equal(t, "name", descs[0].Name)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "skipping field", entry.Message)
	assert.Equal(t, "ratio", entry.ContextMap()["field"])
}

func TestAnalyze_RejectsDuplicateAndEmptyNames(t *testing.T) {
	_, err := collect.Analyze([]collect.Field{
		{Name: "a", Type: schema.Int()},
		{Name: "a", Type: schema.String()},
	})
	assert.ErrorContains(t, err, `duplicate field "a"`)

	_, err = collect.Analyze([]collect.Field{{Name: " ", Type: schema.Int()}})
	assert.ErrorContains(t, err, "field name is required")
}

func TestAnalyze_RunsDecoratorsInOrder(t *testing.T) {
	var calls []string
	mark := func(tag string) model.Decorator {
		return model.DecoratorFunc(func(in []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
			calls = append(calls, tag)
			out := append([]model.FieldDescriptor(nil), in...)
			for i := range out {
				out[i].Widget = tag
			}
			return out, nil
		})
	}

	schemaFields := collect.NewSchema().Add("age", schema.Int())
	descs, err := collect.From(schemaFields, collect.WithDecorators(mark("first"), mark("second")))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, "second", descs[0].Widget)

	failing := model.DecoratorFunc(func([]model.FieldDescriptor) ([]model.FieldDescriptor, error) {
		return nil, errors.New("boom")
	})
	_, err = collect.From(schemaFields, collect.WithDecorators(failing))
	assert.ErrorContains(t, err, "decorate: boom")
}

func TestSchema_PreservesOrderAndDefaults(t *testing.T) {
	s := collect.NewSchema().
		Add("name", schema.String()).
		AddDefault("age", schema.Annotated(schema.Int(), schema.Ge(0)), 30).
		AddDefault("nick", schema.Optional(schema.String()), nil)

	descs, err := collect.From(s)
	require.NoError(t, err)
	require.Len(t, descs, 3)
	assert.Equal(t, "name", descs[0].Name)
	assert.Equal(t, int64(30), descs[1].Default)
	assert.False(t, descs[2].Optional.Enabled)

	fields := s.Fields()
	fields[0].Name = "changed"
	assert.Equal(t, "name", s.Fields()[0].Name)
}

func TestBindFunc_CallsWithValidatedValues(t *testing.T) {
	greet := func(name string, age int, nick *string, tags []string) (string, error) {
		n := "-"
		if nick != nil {
			n = *nick
		}
		if age > 120 {
			return "", errors.New("too old")
		}
		return fmt.Sprintf("%s %d %s %v", name, age, n, tags), nil
	}

	fn, err := collect.BindFunc(greet, []collect.Field{
		{Name: "name", Type: schema.String()},
		{Name: "age", Type: schema.Annotated(schema.Int(), schema.Ge(0), schema.Le(150))},
		{Name: "nick", Type: schema.Optional(schema.String())},
		{Name: "tags", Type: schema.List(schema.String()), Default: []string{"x"}},
	})
	require.NoError(t, err)
	require.Len(t, fn.Fields(), 4)

	out, result, err := fn.Call(map[string]any{"name": "Ann", "age": "30"})
	require.NoError(t, err)
	require.True(t, result.Valid)
	assert.Equal(t, []any{"Ann 30 - [x]"}, out)

	out, result, err = fn.Call(map[string]any{"name": "Bo", "age": 130, "nick": "b"})
	assert.EqualError(t, err, "too old")
	assert.True(t, result.Valid)
	assert.Equal(t, []any{""}, out)

	out, result, err = fn.Call(map[string]any{"age": "x"})
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.False(t, result.Valid)
	assert.Len(t, result.Issues, 2)
}

func TestBindFunc_SizedIntegersAreBounded(t *testing.T) {
	var (
		gotA int8
		gotB uint
		gotC []uint8
	)
	fn, err := collect.BindFunc(func(a int8, b uint, c []uint8) {
		gotA, gotB, gotC = a, b, c
	}, []collect.Field{
		{Name: "a", Type: schema.Int()},
		{Name: "b", Type: schema.Annotated(schema.Int(), schema.Le(10))},
		{Name: "c", Type: schema.List(schema.Int())},
	})
	require.NoError(t, err)

	fields := fn.Fields()
	require.NotNil(t, fields[0].Constraints)
	assert.Equal(t, float64(-128), *fields[0].Constraints.Ge)
	assert.Equal(t, float64(127), *fields[0].Constraints.Le)
	assert.Equal(t, float64(0), *fields[1].Constraints.Ge)
	assert.Equal(t, float64(10), *fields[1].Constraints.Le)
	assert.Equal(t, float64(255), *fields[2].Constraints.Le)

	_, result, err := fn.Call(map[string]any{"a": 300, "b": -1, "c": []any{1, 256}})
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Len(t, result.Issues, 3)
	for _, issue := range result.Issues {
		assert.Equal(t, model.CodeConstraintViolation, issue.Code, issue.Field)
	}

	_, result, err = fn.Call(map[string]any{"a": -128, "b": 10, "c": []any{0, 255}})
	require.NoError(t, err)
	require.True(t, result.Valid)
	assert.Equal(t, int8(-128), gotA)
	assert.Equal(t, uint(10), gotB)
	assert.Equal(t, []uint8{0, 255}, gotC)
}

func TestBindFunc_DefaultOutsideParamRange(t *testing.T) {
	_, err := collect.BindFunc(func(a uint8) {}, []collect.Field{{Name: "a", Type: schema.Int(), Default: 300}})
	assert.ErrorContains(t, err, "default does not fit uint8")
}

func TestFromStruct_SizedIntegersAreBounded(t *testing.T) {
	type limits struct {
		Small  int8   `json:"small"`
		Count  uint16 `json:"count" typeinput:"ge=10"`
		Signed int    `json:"signed"`
	}
	fields, err := collect.FromStruct(limits{})
	require.NoError(t, err)
	descs, err := collect.Analyze(fields)
	require.NoError(t, err)
	got := byName(descs)

	assert.Equal(t, float64(-128), *got["small"].Constraints.Ge)
	assert.Equal(t, float64(127), *got["small"].Constraints.Le)
	assert.Equal(t, float64(10), *got["count"].Constraints.Ge)
	assert.Equal(t, float64(65535), *got["count"].Constraints.Le)
	assert.Nil(t, got["signed"].Constraints)
}

func TestBindFunc_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		fn     any
		params []collect.Field
		want   string
	}{
		{name: "not a function", fn: 3, want: "expected a function"},
		{name: "variadic", fn: func(xs ...int) {}, params: []collect.Field{{Name: "xs", Type: schema.List(schema.Int())}}, want: "variadic"},
		{name: "arity", fn: func(a, b int) {}, params: []collect.Field{{Name: "a", Type: schema.Int()}}, want: "takes 2 parameters, 1 declared"},
		{name: "kind mismatch", fn: func(a string) {}, params: []collect.Field{{Name: "a", Type: schema.Int()}}, want: "int field cannot be passed as string"},
		{name: "optional needs pointer", fn: func(a int) {}, params: []collect.Field{{Name: "a", Type: schema.Optional(schema.Int())}}, want: "needs a pointer"},
		{name: "list needs slice", fn: func(a int) {}, params: []collect.Field{{Name: "a", Type: schema.List(schema.Int())}}, want: "needs a slice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := collect.BindFunc(tc.fn, tc.params)
			assert.ErrorContains(t, err, tc.want)
		})
	}

	_, err := collect.BindFunc(func(a int) {}, []collect.Field{{Name: "a", Type: schema.Named("complex128")}})
	var typed *model.Error
	assert.ErrorAs(t, err, &typed)
}
