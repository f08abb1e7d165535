package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	typeinput "github.com/goliatone/go-typeinput"
	"github.com/goliatone/go-typeinput/pkg/collect"
	"github.com/goliatone/go-typeinput/pkg/orchestrator"
	"github.com/goliatone/go-typeinput/pkg/source"
)

// errInvalid marks a completed run whose values failed validation.
var errInvalid = errors.New("values are invalid")

func exitCode(err error) int {
	if errors.Is(err, errInvalid) {
		return 2
	}
	return 1
}

type app struct {
	cfg    Config
	logger *zap.Logger
	formID string
	output string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:   "typeinput",
		Short: "Describe, validate and render typed forms",
		Long: `typeinput reads form declarations from a UI schema document (a top-level
"forms" key) or an OpenAPI 3 document and turns them into field descriptors,
JSON Schema, validated values, HTML or an interactive terminal prompt.

Without a document argument the built-in forms are used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			collect.SetLogger(logger)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.formID, "form", "f", "", "form id, operation id or schema:<Component>")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "output file (stdout if empty)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newFormsCmd(a),
		newDescribeCmd(a),
		newSchemaCmd(a),
		newValidateCmd(a),
		newRenderCmd(a),
		newPromptCmd(a),
	)
	return root
}

func (a *app) orchestrator(extra ...orchestrator.Option) *orchestrator.Orchestrator {
	options := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithLoader(typeinput.NewLoader(source.WithHTTPFallback(a.cfg.HTTPTimeout))),
	}
	return orchestrator.New(append(options, extra...)...)
}

func (a *app) request(args []string) orchestrator.Request {
	req := orchestrator.Request{FormID: a.formID}
	if len(args) > 0 {
		req.Source = parseSource(args[0])
	}
	return req
}

func (a *app) write(cmd *cobra.Command, data []byte) error {
	if a.output == "" {
		return writeAll(cmd.OutOrStdout(), data)
	}
	if err := os.WriteFile(a.output, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("output written", zap.String("path", a.output), zap.Int("bytes", len(data)))
	return nil
}

func writeAll(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func parseSource(raw string) source.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return source.SourceFromURL(path)
	}
	return source.SourceFromFile(path)
}
