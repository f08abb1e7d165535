package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pollDocument = `
forms:
  poll:
    title: Poll
    fields:
      - name: question
        type:
          kind: str
          meta:
            - constraints: {min_length: 5}
      - name: votes
        default: 0
        type:
          kind: int
          meta:
            - constraints: {ge: 0}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFormsCommand(t *testing.T) {
	doc := writeFile(t, "poll.yaml", pollDocument)
	out, err := run(t, "forms", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Regexp(t, `poll\s+uischema\s+2\s+Poll`, out)
}

func TestDescribeCommand(t *testing.T) {
	doc := writeFile(t, "poll.yaml", pollDocument)
	out, err := run(t, "describe", doc)
	require.NoError(t, err)

	var payload struct {
		ID     string           `json:"id"`
		Fields []map[string]any `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "poll", payload.ID)
	require.Len(t, payload.Fields, 2)
	assert.Equal(t, "question", payload.Fields[0]["name"])
}

func TestValidateCommand(t *testing.T) {
	doc := writeFile(t, "poll.yaml", pollDocument)

	valid := writeFile(t, "ok.json", `{"question": "Tabs or spaces?", "votes": 3}`)
	out, err := run(t, "validate", doc, "--values", valid)
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)

	invalid := writeFile(t, "bad.yaml", "question: hm\nvotes: -1\n")
	out, err = run(t, "validate", doc, "--values", invalid)
	require.ErrorIs(t, err, errInvalid)
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, out, `"field": "question"`)
	assert.Contains(t, out, `"field": "votes"`)
}

func TestSchemaCommand(t *testing.T) {
	doc := writeFile(t, "poll.yaml", pollDocument)
	out, err := run(t, "schema", doc, "--id", "https://example.com/poll.json")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "https://example.com/poll.json", schema["$id"])
	assert.Equal(t, "object", schema["type"])
}

func TestRenderCommandWithValues(t *testing.T) {
	doc := writeFile(t, "poll.yaml", pollDocument)
	values := writeFile(t, "values.yaml", "question: hm\n")
	target := filepath.Join(t.TempDir(), "poll.html")

	_, err := run(t, "render", doc, "--values", values, "--action", "/polls", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, `action="/polls"`)
	assert.Contains(t, html, `value="hm"`)
	assert.True(t, strings.Contains(html, `data-invalid="true"`), html)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TYPEINPUT_LOG_LEVEL", "debug")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "vanilla", cfg.Renderer)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.OutputFormat)

	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestParseOutputFormat(t *testing.T) {
	_, err := parseOutputFormat("xml")
	assert.Error(t, err)
	f, err := parseOutputFormat("pretty")
	require.NoError(t, err)
	assert.EqualValues(t, "pretty", f)
}
