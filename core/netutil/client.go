package netutil

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/shopbot/core/logger"
)

const (
	defaultDialTimeout       = 5 * time.Second
	defaultTLSHandshake      = 5 * time.Second
	defaultIdleConnTimeout   = 30 * time.Second
	defaultKeepAliveInterval = 30 * time.Second
	defaultRetryAttempts     = 2
	defaultRetryBackoff      = 500 * time.Millisecond
)

// ClientOptions tunes NewHTTPClient. Zero values select defaults.
type ClientOptions struct {
	// Component is the logger component used for retry events.
	Component  string
	MaxRetries int
	Backoff    time.Duration
	// Base replaces the default transport, mainly for tests.
	Base http.RoundTripper
}

// NewHTTPClient returns a client whose transport retries connection-level
// failures of idempotent requests. There is no overall request timeout; callers
// bound calls through the request context.
func NewHTTPClient(opts ClientOptions) *http.Client {
	base := opts.Base
	if base == nil {
		base = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: defaultDialTimeout, KeepAlive: defaultKeepAliveInterval}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          50,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       defaultIdleConnTimeout,
			TLSHandshakeTimeout:   defaultTLSHandshake,
			ExpectContinueTimeout: time.Second,
		}
	}
	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultRetryAttempts
	}
	backoff := opts.Backoff
	if backoff == 0 {
		backoff = defaultRetryBackoff
	}
	component := opts.Component
	if component == "" {
		component = "http.client"
	}
	return &http.Client{
		Transport: &retryTransport{
			base:       base,
			maxRetries: max(maxRetries, 0),
			backoff:    backoff,
			component:  component,
		},
	}
}

type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
	component  string
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// RoundTrip implements http.RoundTripper.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	attempts := 1
	if idempotent(req.Method) {
		attempts += t.maxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err := t.base.RoundTrip(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt == attempts || !ShouldRetry(err) {
			break
		}

		delay := t.backoff * time.Duration(attempt)
		logger.Warn(req.Context(), t.component, "http.retry",
			slog.String("status", "retry"),
			slog.String("method", req.Method),
			slog.String("host", req.URL.Host),
			slog.Int("attempts", attempt),
			slog.Int64("backoff_ms", delay.Milliseconds()),
			slog.String("err", err.Error()),
		)
		if delay <= 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}
