package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-typeinput/pkg/collect"
	"github.com/goliatone/go-typeinput/pkg/render"
	"github.com/goliatone/go-typeinput/pkg/schema"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	inputDefault []string
	checks       []AnswerCheck
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputDefault = append(s.inputDefault, cfg.Default)
	s.checks = append(s.checks, cfg.Check)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func buildForm(t *testing.T, s *collect.Schema) render.Form {
	t.Helper()
	fields, err := collect.From(s)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return render.Form{ID: "test", Fields: fields}
}

func TestRender_StringAndEnum(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"hello"},
		selectIdx: []int{1},
	}
	r := New(WithPromptDriver(driver))

	status := schema.Enum("Status", schema.Member("Draft", "draft"), schema.Member("Published", "published"))
	form := buildForm(t, collect.NewSchema().
		Add("title", schema.String()).
		Add("status", status))

	out, err := r.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), `{"status":"published","title":"hello"}`; got != want {
		t.Fatalf("output mismatch: got %s want %s", got, want)
	}
	if driver.inputPos != 1 || driver.selectPos != 1 {
		t.Fatalf("prompts not consumed as expected")
	}
}

func TestRender_ReasksUntilValid(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{"-1", "abc", "10"},
	}
	r := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	form := buildForm(t, collect.NewSchema().
		Add("count", schema.Annotated(schema.Int(), schema.Ge(0))))

	values, err := r.Collect(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if values["count"] != int64(10) {
		t.Fatalf("expected 10, got %v", values["count"])
	}
	if len(driver.infoMessages) != 2 || !strings.HasPrefix(driver.infoMessages[0], "! Count: ") {
		t.Fatalf("expected two validation messages, got %q", driver.infoMessages)
	}
}

func TestRender_DriverReceivesFieldCheck(t *testing.T) {
	driver := &stubDriver{inputs: []string{"5", ""}}
	r := New(WithPromptDriver(driver))
	form := buildForm(t, collect.NewSchema().
		Add("count", schema.Annotated(schema.Int(), schema.Between(0, 9))).
		Add("ids", schema.Optional(schema.List(schema.Int()))))

	if _, err := r.Collect(context.Background(), form, render.RenderOptions{}); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(driver.checks) != 2 || driver.checks[0] == nil || driver.checks[1] == nil {
		t.Fatalf("expected a check per text prompt, got %d", len(driver.checks))
	}

	count, ids := driver.checks[0], driver.checks[1]
	if err := count("7"); err != nil {
		t.Fatalf("expected 7 to pass: %v", err)
	}
	if err := count("12"); err == nil || !strings.Contains(err.Error(), "less than or equal to 9") {
		t.Fatalf("expected bound message, got %v", err)
	}
	if err := count("x"); err == nil {
		t.Fatalf("expected coercion failure")
	}
	if err := ids(""); err != nil {
		t.Fatalf("blank optional list should pass: %v", err)
	}
	if err := ids("1, two"); err == nil {
		t.Fatalf("expected item failure")
	}
}

func TestRender_MaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", ""}}
	r := New(WithPromptDriver(driver), WithMaxAttempts(2))
	form := buildForm(t, collect.NewSchema().Add("name", schema.String()))

	_, err := r.Collect(context.Background(), form, render.RenderOptions{})
	if err == nil || !strings.Contains(err.Error(), "field name") {
		t.Fatalf("expected attempts error, got %v", err)
	}
}

func TestRender_WidgetsAndDefaults(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "go, tui", ""},
		passwords: []string{"s3cret"},
		textAreas: []string{"line one"},
		confirm:   []bool{true},
		multiIdx:  [][]int{{0, 2}},
		selectIdx: []int{0},
	}
	r := New(WithPromptDriver(driver))

	form := buildForm(t, collect.NewSchema().
		AddDefault("volume", schema.Annotated(schema.Int(), schema.Between(0, 10), schema.NewSlider()), int64(4)).
		Add("tags", schema.List(schema.String())).
		Add("nickname", schema.Optional(schema.String())).
		Add("secret", schema.Annotated(schema.String(), schema.IsPassword{})).
		Add("bio", schema.Annotated(schema.String(), schema.Rows(4))).
		Add("notify", schema.Bool()).
		Add("colours", schema.List(schema.Literal("red", "green", "blue"))).
		Add("size", schema.Optional(schema.Literal("s", "m", "l"))))

	values, err := r.Collect(context.Background(), form, render.RenderOptions{Values: map[string]any{"volume": int64(7)}})
	if err != nil {
		t.Fatalf("collect: %v (info %q)", err, driver.infoMessages)
	}

	want := map[string]any{
		"volume":  int64(7),
		"tags":    []any{"go", "tui"},
		"secret":  "s3cret",
		"bio":     "line one",
		"notify":  true,
		"colours": []any{"red", "blue"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if driver.inputDefault[0] != "7" {
		t.Fatalf("expected prefilled default 7, got %q", driver.inputDefault[0])
	}
}

func TestRender_OutputFormats(t *testing.T) {
	form := buildForm(t, collect.NewSchema().
		Add("when", schema.Date()).
		Add("tags", schema.List(schema.String())))

	cases := []struct {
		format OutputFormat
		want   string
		ctype  string
	}{
		{OutputFormatJSON, `{"tags":["a","b"],"when":"2024-05-01"}`, "application/json"},
		{OutputFormatFormURLEncoded, "tags=a&tags=b&when=2024-05-01", "application/x-www-form-urlencoded"},
		{OutputFormatPrettyText, "When: 2024-05-01\nTags: a, b\n", "text/plain"},
	}
	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			driver := &stubDriver{inputs: []string{"2024-05-01", "a,b"}}
			r := New(WithPromptDriver(driver), WithOutputFormat(tc.format))
			out, err := r.Render(context.Background(), form, render.RenderOptions{})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if string(out) != tc.want {
				t.Fatalf("output mismatch:\n got %q\nwant %q", out, tc.want)
			}
			if r.ContentType() != tc.ctype {
				t.Fatalf("content type mismatch: %s", r.ContentType())
			}
		})
	}
}

func TestRender_ServerErrorsAreShown(t *testing.T) {
	driver := &stubDriver{inputs: []string{"ok"}}
	r := New(WithPromptDriver(driver))
	form := buildForm(t, collect.NewSchema().Add("name", schema.String()))

	_, err := r.Collect(context.Background(), form, render.RenderOptions{
		Errors:     map[string][]string{"name": {"already taken"}},
		FormErrors: []string{"please retry"},
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if diff := cmp.Diff([]string{"please retry", "Name: already taken"}, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
