package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-typeinput/pkg/model"
	"github.com/goliatone/go-typeinput/pkg/orchestrator"
	"github.com/goliatone/go-typeinput/pkg/render"
	"github.com/goliatone/go-typeinput/pkg/renderers/vanilla"
	"github.com/goliatone/go-typeinput/pkg/source"
	"github.com/goliatone/go-typeinput/pkg/widgets"
)

const signupUISchema = `
forms:
  signup:
    title: Sign up
    fields:
      - name: username
        type:
          kind: str
          meta:
            - constraints: {min_length: 3}
      - name: age
        optional: true
        type: int
      - name: about
        type: str
  feedback:
    fields:
      - name: message
        type: str
`

const petsOpenAPI = `
openapi: 3.0.3
info: {title: Pets, version: "1.0"}
paths:
  /pets:
    post:
      operationId: createPet
      summary: Create a pet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: {type: string, minLength: 1}
                age: {type: integer, minimum: 0}
`

func document(t *testing.T, name, raw string) *source.Document {
	t.Helper()
	doc, err := source.NewDocument(source.SourceFromFile(name), []byte(raw))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return &doc
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    orchestrator.Format
		wantErr string
	}{
		{"uischema", signupUISchema, orchestrator.FormatUISchema, ""},
		{"openapi", petsOpenAPI, orchestrator.FormatOpenAPI, ""},
		{"openapi json", `{"openapi":"3.1.0","paths":{}}`, orchestrator.FormatOpenAPI, ""},
		{"swagger", "swagger: \"2.0\"\n", "", "swagger 2.0"},
		{"unknown", "title: nothing\n", "", "top-level key"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := orchestrator.DetectFormat([]byte(tc.raw))
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if got != tc.want {
				t.Fatalf("format mismatch: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestOrchestrator_FormsFromUISchema(t *testing.T) {
	o := orchestrator.New()
	entries, err := o.Forms(context.Background(), orchestrator.Request{Document: document(t, "signup.yaml", signupUISchema)})
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.ID+"|"+e.Title)
	}
	if diff := cmp.Diff([]string{"feedback|Feedback", "signup|Sign up"}, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_FormRequiresIDWhenAmbiguous(t *testing.T) {
	o := orchestrator.New()
	_, err := o.Form(context.Background(), orchestrator.Request{Document: document(t, "signup.yaml", signupUISchema)})
	if err == nil || !strings.Contains(err.Error(), "form id is required") {
		t.Fatalf("expected ambiguous form error, got %v", err)
	}
	_, err = o.Form(context.Background(), orchestrator.Request{Document: document(t, "signup.yaml", signupUISchema), FormID: "missing"})
	if err == nil || !strings.Contains(err.Error(), `"missing" not found`) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestOrchestrator_OpenAPIFormAndValidate(t *testing.T) {
	o := orchestrator.New()
	req := orchestrator.Request{Document: document(t, "pets.yaml", petsOpenAPI)}

	form, err := o.Form(context.Background(), req)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.ID != "createPet" || form.Title != "Create a pet" {
		t.Fatalf("unexpected form identity %q %q", form.ID, form.Title)
	}

	result, _, err := o.Validate(context.Background(), req, map[string]any{"name": "Rex", "age": "-2"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid || len(result.Issues) != 1 || result.Issues[0].Field != "age" {
		t.Fatalf("expected a single age issue, got %+v", result.Issues)
	}
}

func TestOrchestrator_GenerateWithDecorators(t *testing.T) {
	upper := model.DecoratorFunc(func(fields []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
		for i := range fields {
			fields[i].Label = strings.ToUpper(fields[i].Label)
		}
		return fields, nil
	})
	o := orchestrator.New(orchestrator.WithUIDecorators(upper))

	out, err := o.Generate(context.Background(), orchestrator.Request{
		Document: document(t, "signup.yaml", signupUISchema),
		FormID:   "signup",
		RenderOptions: render.RenderOptions{
			Errors: map[string][]string{"username": {"taken"}},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{"USERNAME", `name="age"`, "taken", `minlength="3"`} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestOrchestrator_BuiltinForms(t *testing.T) {
	o := orchestrator.New()
	entries, err := o.Forms(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.ID == "settings" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected embedded settings form, got %+v", entries)
	}

	_, err = orchestrator.New(orchestrator.WithUISchemaFS(nil)).Forms(context.Background(), orchestrator.Request{})
	if err == nil {
		t.Fatal("expected error without source or embedded forms")
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	o := orchestrator.New()
	if diff := cmp.Diff([]string{"tui", "vanilla"}, o.Renderers()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	_, err := o.Generate(context.Background(), orchestrator.Request{
		Document: document(t, "signup.yaml", signupUISchema),
		FormID:   "feedback",
		Renderer: "react",
	})
	if err == nil || !strings.Contains(err.Error(), `renderer "react"`) {
		t.Fatalf("expected renderer error, got %v", err)
	}
}

func TestOrchestrator_WidgetRegistry(t *testing.T) {
	reg := widgets.NewRegistry()
	reg.Register(model.WidgetTextarea, widgets.BuiltinPriority+10, func(field model.FieldDescriptor) bool {
		return field.Name == "about"
	})
	o := orchestrator.New(orchestrator.WithWidgetRegistry(reg))

	form, err := o.Form(context.Background(), orchestrator.Request{
		Document: document(t, "signup.yaml", signupUISchema),
		FormID:   "signup",
	})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	got := make(map[string]string, len(form.Fields))
	for _, f := range form.Fields {
		got[f.Name] = f.Widget
	}
	want := map[string]string{"username": model.WidgetText, "age": model.WidgetNumber, "about": model.WidgetTextarea}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_RendererMustSupportWidgets(t *testing.T) {
	reg := widgets.NewRegistry()
	reg.Register("Markdown", widgets.BuiltinPriority+10, func(field model.FieldDescriptor) bool {
		return field.Name == "about"
	})
	req := orchestrator.Request{Document: document(t, "signup.yaml", signupUISchema), FormID: "signup"}

	_, err := orchestrator.New(orchestrator.WithWidgetRegistry(reg)).Generate(context.Background(), req)
	if !errors.Is(err, render.ErrUnsupportedWidget) {
		t.Fatalf("expected unsupported widget error, got %v", err)
	}

	html, err := vanilla.New(vanilla.WithWidgetInput("Markdown", "textarea"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	registry, err := render.NewRegistry(html)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	out, err := orchestrator.New(orchestrator.WithWidgetRegistry(reg), orchestrator.WithRegistry(registry)).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `<textarea id="ti-signup-about" name="about"`) {
		t.Fatalf("expected markdown field as textarea:\n%s", out)
	}
}
