package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-typeinput/pkg/jsonschema"
	"github.com/goliatone/go-typeinput/pkg/orchestrator"
	"github.com/goliatone/go-typeinput/pkg/render"
	"github.com/goliatone/go-typeinput/pkg/renderers/tui"
	"github.com/goliatone/go-typeinput/pkg/renderers/vanilla"
)

func newFormsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms [document]",
		Short: "List the forms a document declares",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.orchestrator().Forms(cmd.Context(), a.request(args))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFORMAT\tFIELDS\tTITLE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.ID, e.Format, e.Fields, e.Title)
			}
			return w.Flush()
		},
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [document]",
		Short: "Print the field descriptors of a form as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.orchestrator().Form(cmd.Context(), a.request(args))
			if err != nil {
				return err
			}
			fields := make([]map[string]any, 0, len(form.Fields))
			for _, field := range form.Fields {
				m, err := field.ToMap()
				if err != nil {
					return fmt.Errorf("describe %s: %w", field.Name, err)
				}
				fields = append(fields, m)
			}
			data, err := json.MarshalIndent(map[string]any{
				"id":          form.ID,
				"title":       form.Title,
				"description": form.Description,
				"fields":      fields,
			}, "", "  ")
			if err != nil {
				return err
			}
			return a.write(cmd, data)
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	var schemaID string
	cmd := &cobra.Command{
		Use:   "schema [document]",
		Short: "Export a form as JSON Schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := a.orchestrator().Form(cmd.Context(), a.request(args))
			if err != nil {
				return err
			}
			data, err := jsonschema.Marshal(form.Fields, jsonschema.Options{
				ID:          schemaID,
				Title:       form.Title,
				Description: form.Description,
			})
			if err != nil {
				return err
			}
			return a.write(cmd, data)
		},
	}
	cmd.Flags().StringVar(&schemaID, "id", "", "$id of the exported schema")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var valuesPath string
	cmd := &cobra.Command{
		Use:   "validate [document]",
		Short: "Validate a JSON or YAML values file against a form",
		Long: `Validate coerces every value to its field type and checks constraints.
The result is printed as JSON. The command exits with status 2 when any
value is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := readValues(valuesPath)
			if err != nil {
				return err
			}
			result, _, err := a.orchestrator().Validate(cmd.Context(), a.request(args), values)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			if err := a.write(cmd, data); err != nil {
				return err
			}
			if !result.Valid {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "values file (JSON or YAML, - for stdin)")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		rendererName string
		valuesPath   string
		action       string
		method       string
		inlineCSS    bool
	)
	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a form as HTML",
		Long: `Render writes the form markup. With --values the submission is validated
first, valid values are prefilled and issues are shown next to their fields.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := rendererName
			if name == "" {
				name = a.cfg.Renderer
			}
			html, err := vanilla.New(vanilla.WithInlineStylesheet(inlineCSS))
			if err != nil {
				return err
			}
			registry, err := render.NewRegistry(html, tui.New())
			if err != nil {
				return err
			}
			o := a.orchestrator(orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer(name))

			req := a.request(args)
			req.Renderer = name
			req.RenderOptions = render.RenderOptions{Action: action, Method: method}

			if valuesPath != "" {
				values, err := readValues(valuesPath)
				if err != nil {
					return err
				}
				result, form, err := o.Validate(cmd.Context(), req, values)
				if err != nil {
					return err
				}
				mapping := render.ErrorsFromResult(form, result)
				options := mapping.Options(values)
				options.Action, options.Method = action, method
				req.RenderOptions = options
			}

			data, err := o.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.write(cmd, data)
		},
	}
	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "", "renderer name (default from TYPEINPUT_RENDERER)")
	cmd.Flags().StringVar(&valuesPath, "values", "", "values file to prefill and validate")
	cmd.Flags().StringVar(&action, "action", "", "form action URL")
	cmd.Flags().StringVar(&method, "method", "POST", "form method")
	cmd.Flags().BoolVar(&inlineCSS, "inline-css", false, "embed the default stylesheet")
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "prompt [document]",
		Short: "Fill a form interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.OutputFormat
			}
			outputFormat, err := parseOutputFormat(format)
			if err != nil {
				return err
			}
			registry, err := render.NewRegistry(tui.New(
				tui.WithOutputFormat(outputFormat),
				tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
			))
			if err != nil {
				return err
			}
			o := a.orchestrator(orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer("tui"))

			req := a.request(args)
			req.Renderer = "tui"
			data, err := o.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.write(cmd, data)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: json, form or pretty")
	return cmd
}

func parseOutputFormat(raw string) (tui.OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return tui.OutputFormatJSON, nil
	case "form", "urlencoded":
		return tui.OutputFormatFormURLEncoded, nil
	case "pretty", "text":
		return tui.OutputFormatPrettyText, nil
	}
	return "", fmt.Errorf("unknown output format %q", raw)
}

// readValues decodes a JSON or YAML object. JSON is a subset of YAML.
func readValues(path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = readStdin()
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}
