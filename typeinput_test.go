package typeinput_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	typeinput "github.com/goliatone/go-typeinput"
	"github.com/goliatone/go-typeinput/pkg/source"
)

const contactForm = `
forms:
  contact:
    title: Contact
    fields:
      - name: email
        type: email
      - name: message
        type:
          kind: str
          meta:
            - rows: 4
`

func TestGenerateFromDocument(t *testing.T) {
	doc := source.MustNewDocument(source.SourceFromFile("contact.yaml"), []byte(contactForm))
	out, err := typeinput.GenerateFromDocument(context.Background(), doc, "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`type="email"`, "<textarea", "Contact"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestValidateDocument(t *testing.T) {
	doc := source.MustNewDocument(source.SourceFromFile("contact.yaml"), []byte(contactForm))
	result, err := typeinput.ValidateDocument(context.Background(), doc, "contact", map[string]any{
		"email":   "not-an-email",
		"message": "hi",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid || len(result.Issues) != 1 || result.Issues[0].Field != "email" {
		t.Fatalf("expected one email issue, got %+v", result.Issues)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.Stat(typeinput.EmbeddedTemplates(), "form.html"); err != nil {
		t.Fatalf("form template: %v", err)
	}
	if _, err := fs.Stat(typeinput.EmbeddedAssets(), "typeinput.css"); err != nil {
		t.Fatalf("stylesheet: %v", err)
	}
	matches, err := fs.Glob(typeinput.EmbeddedForms(), "*.yaml")
	if err != nil || len(matches) == 0 {
		t.Fatalf("expected embedded forms, got %v (%v)", matches, err)
	}
}
