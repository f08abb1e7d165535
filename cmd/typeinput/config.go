package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds settings read from the environment. Flags override them.
type Config struct {
	// Renderer used by the render command. ENV: TYPEINPUT_RENDERER
	Renderer string `env:"TYPEINPUT_RENDERER,default=vanilla"`
	// LogLevel for diagnostics written to stderr. ENV: TYPEINPUT_LOG_LEVEL
	LogLevel string `env:"TYPEINPUT_LOG_LEVEL,default=warn"`
	// HTTPTimeout bounds remote document fetches. ENV: TYPEINPUT_HTTP_TIMEOUT
	HTTPTimeout time.Duration `env:"TYPEINPUT_HTTP_TIMEOUT,default=10s"`
	// OutputFormat of the prompt command. ENV: TYPEINPUT_OUTPUT_FORMAT
	OutputFormat string `env:"TYPEINPUT_OUTPUT_FORMAT,default=json"`
}

// LoadConfig decodes Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
