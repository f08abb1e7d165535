package timezones

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Option is one dropdown entry in the handler response.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

// HandlerOption configures Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	zones        []string
	defaultLimit int
	maxLimit     int
	logger       *zap.Logger
}

// WithZones serves a custom zone list instead of the embedded one.
func WithZones(zones []string) HandlerOption {
	return func(c *handlerConfig) {
		c.zones = append([]string{}, zones...)
	}
}

// WithLimits sets the default and maximum number of results.
func WithLimits(defaultLimit, maxLimit int) HandlerOption {
	return func(c *handlerConfig) {
		if defaultLimit > 0 {
			c.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			c.maxLimit = maxLimit
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(c *handlerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Handler answers GET and HEAD requests with {"data": [...]} options
// matching the q parameter. limit caps the result count.
func Handler(opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{defaultLimit: 20, maxLimit: 100, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		zones := cfg.zones
		if zones == nil {
			loaded, err := DefaultZones()
			if err != nil {
				cfg.logger.Error("load timezones", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			zones = loaded
		}

		limit := cfg.defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		if limit > cfg.maxLimit {
			limit = cfg.maxLimit
		}

		results := Search(zones, r.URL.Query().Get("q"), limit)
		options := make([]Option, len(results))
		for i, zone := range results {
			options[i] = Option{Value: zone, Label: zone}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if err := json.NewEncoder(w).Encode(optionsResponse{Data: options}); err != nil {
			cfg.logger.Warn("encode timezones", zap.Error(err))
		}
	})
}
