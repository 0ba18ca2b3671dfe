// Package server exposes the webhook endpoint and health probe over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/m3rciful/shopbot/core/buildinfo"
	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/whatsapp/gateway"
	"github.com/m3rciful/shopbot/core/whatsapp/webhook"
)

const defaultMaxBodyBytes = 1 << 20

// WebhookHandler processes one raw webhook body. *gateway.Handler implements it.
type WebhookHandler interface {
	Handle(ctx context.Context, raw []byte) (gateway.Result, error)
}

type routes struct {
	webhook      WebhookHandler
	now          func() time.Time
	maxBodyBytes int64
}

// Option customises the router.
type Option func(*routes)

// WithClock overrides the time source of the health probe.
func WithClock(now func() time.Time) Option {
	return func(r *routes) { r.now = now }
}

// WithMaxBodyBytes caps the accepted webhook body size.
func WithMaxBodyBytes(n int64) Option {
	return func(r *routes) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

// NewRouter wires GET /health and POST /webhook.
func NewRouter(h WebhookHandler, opts ...Option) http.Handler {
	rt := &routes{webhook: h, now: time.Now, maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(rt)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestContext)
	r.Use(accessLog)
	r.Use(recoverer)

	r.Get("/health", rt.health)
	r.Post("/webhook", rt.handleWebhook)
	return r
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
}

func (rt *routes) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: rt.now().UTC().Format(time.RFC3339),
		Version:   buildinfo.Version,
		Commit:    buildinfo.Commit,
	})
}

type webhookResponse struct {
	OK      bool           `json:"ok"`
	Handled *bool          `json:"handled,omitempty"`
	Action  gateway.Action `json:"action,omitempty"`
	Error   string         `json:"error,omitempty"`
	Field   string         `json:"field,omitempty"`
}

// handleWebhook always answers 200 so the provider does not redeliver.
func (rt *routes) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rt.maxBodyBytes))
	if err != nil {
		logger.Warn(ctx, "http", "webhook.read",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		respondJSON(w, http.StatusOK, webhookResponse{Error: "invalid payload", Field: webhook.RootField})
		return
	}

	res, err := rt.webhook.Handle(ctx, raw)
	if err != nil {
		var verr *webhook.ValidationError
		if errors.As(err, &verr) {
			respondJSON(w, http.StatusOK, webhookResponse{Error: "invalid payload", Field: verr.Field})
			return
		}
		logger.Error(ctx, "http", "webhook.failed",
			slog.String("status", "fail"),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("err_code", logger.ErrCode(err)),
		)
		respondJSON(w, http.StatusOK, webhookResponse{Error: "processing failed"})
		return
	}

	handled := res.Handled
	respondJSON(w, http.StatusOK, webhookResponse{OK: true, Handled: &handled, Action: res.Action})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Component("http").Warn("response encode failed",
			slog.String("event", "http.encode"),
			slog.String("err", err.Error()),
		)
	}
}
