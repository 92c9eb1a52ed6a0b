// Package server exposes the pricing calculator as a small JSON API. All
// pricing semantics live in the pricing package; this layer is transport,
// error mapping, and logging only.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/paneworks/glass-quote/internal/config"
	"github.com/paneworks/glass-quote/internal/pricing"
	"github.com/paneworks/glass-quote/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger      *zap.Logger
	provider    config.Provider
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler serving the quote API. A fresh
// configuration snapshot is fetched from the provider for every quote so a
// calculation never observes a half-edited config.
func NewHandler(logger *zap.Logger, provider config.Provider, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, provider: provider, maxBodySize: maxBodySize, version: trimmedVersion}

	r := chi.NewRouter()
	r.Post("/api/quote", h.handleQuote)
	r.Get("/api/config", h.handleConfigExport)
	r.Get("/api/version", h.handleVersion)
	return r
}

type quoteResponse struct {
	Result   *pricing.QuoteResult `json:"result"`
	Duration string               `json:"duration"`
}

type errorResponse struct {
	Kind       string   `json:"kind"`
	Error      string   `json:"error"`
	Field      string   `json:"field,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var request pricing.QuoteRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge, errorResponse{
				Kind:  "request_too_large",
				Error: fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize),
			})
			return
		}
		h.respondError(w, http.StatusBadRequest, errorResponse{
			Kind:  "malformed_request",
			Error: fmt.Sprintf("failed to decode request: %v", err),
		})
		return
	}

	snapshot, err := h.provider.Snapshot()
	if err != nil {
		h.logger.Error("failed to fetch pricing configuration",
			zap.String("op", "server.handleQuote"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusServiceUnavailable, errorResponse{
			Kind:  "config_unavailable",
			Error: "failed to fetch pricing configuration",
		})
		return
	}

	result, err := pricing.CalculateQuote(request, snapshot)
	if err != nil {
		status, body := mapCalcError(err)
		h.respondError(w, status, body)
		return
	}

	h.writeJSON(w, http.StatusOK, quoteResponse{
		Result:   result,
		Duration: time.Since(start).String(),
	})
}

// mapCalcError translates the calculator's error taxonomy onto HTTP status
// codes: user-correctable input problems are 400s, config-integrity problems
// are 422s so they are distinguishable in logs and metrics, and formula
// failures are 500s.
func mapCalcError(err error) (int, errorResponse) {
	var parseErr *pricing.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest, errorResponse{
			Kind:  "parse_error",
			Error: parseErr.Error(),
			Field: parseErr.Field,
		}
	}

	var validationErr *pricing.ValidationError
	if errors.As(err, &validationErr) {
		violations := make([]string, len(validationErr.Violations))
		for i, v := range validationErr.Violations {
			violations[i] = string(v)
		}
		return http.StatusBadRequest, errorResponse{
			Kind:       "validation_error",
			Error:      validationErr.Error(),
			Violations: violations,
		}
	}

	var configErr *pricing.ConfigError
	if errors.As(err, &configErr) {
		return http.StatusUnprocessableEntity, errorResponse{
			Kind:  string(configErr.Kind),
			Error: configErr.Error(),
		}
	}

	var formulaErr *pricing.FormulaError
	if errors.As(err, &formulaErr) {
		return http.StatusInternalServerError, errorResponse{
			Kind:  string(formulaErr.Kind),
			Error: formulaErr.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Kind:  "internal",
		Error: err.Error(),
	}
}

// handleConfigExport serves the active snapshot as YAML for admin review.
func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.provider.Snapshot()
	if err != nil {
		h.respondError(w, http.StatusServiceUnavailable, errorResponse{
			Kind:  "config_unavailable",
			Error: "failed to fetch pricing configuration",
		})
		return
	}

	payload, err := yaml.Marshal(snapshot)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, errorResponse{
			Kind:  "internal",
			Error: fmt.Sprintf("failed to serialize configuration: %v", err),
		})
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		h.logger.Warn("failed to write config export",
			zap.String("op", "server.handleConfigExport"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, body errorResponse) {
	h.logger.Error("quote request failed",
		zap.String("op", "server.respondError"),
		zap.Int("status", status),
		zap.String("kind", body.Kind),
		zap.String("error", body.Error),
	)
	h.writeJSON(w, status, body)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
