package server

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/m3rciful/shopbot/core/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// requestContext assigns a request id and a component logger to the request context.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if rid == "" || len(rid) > 64 {
			rid = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, rid)

		ctx := logger.WithRID(r.Context(), rid)
		ctx = logger.WithLogger(ctx, logger.Component("http"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLog writes one line per request once the handler returns.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		level := slog.LevelInfo
		status := "ok"
		if code >= http.StatusInternalServerError {
			level = slog.LevelError
			status = "fail"
		}
		// Health probes are noisy; keep them at debug.
		if r.URL.Path == "/health" {
			if !logger.ShouldSampleDebug() {
				return
			}
			level = slog.LevelDebug
		}
		logger.Event(r.Context(), "http", level, "http.request",
			slog.String("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("http_code", code),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", logger.Took(start)),
		)
	})
}

// recoverer turns a handler panic into a 500 and logs the stack.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error(r.Context(), "http", "http.panic",
				slog.String("status", "fail"),
				slog.Any("err", rec),
				slog.String("stack", string(debug.Stack())),
			)
			respondJSON(w, http.StatusInternalServerError, webhookResponse{Error: "processing failed"})
		}()
		next.ServeHTTP(w, r)
	})
}
