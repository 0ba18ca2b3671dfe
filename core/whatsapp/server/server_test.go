package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/shopbot/core/buildinfo"
	"github.com/m3rciful/shopbot/core/whatsapp/gateway"
	"github.com/m3rciful/shopbot/core/whatsapp/webhook"
)

type stubHandler struct {
	res   gateway.Result
	err   error
	panic bool
	got   []byte
}

func (s *stubHandler) Handle(_ context.Context, raw []byte) (gateway.Result, error) {
	if s.panic {
		panic("boom")
	}
	s.got = raw
	return s.res, s.err
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestHealth(t *testing.T) {
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	h := NewRouter(&stubHandler{}, WithClock(func() time.Time { return fixed }))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var out healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, healthResponse{
		Status:    "ok",
		Timestamp: "2025-03-04T05:06:07Z",
		Version:   buildinfo.Version,
		Commit:    buildinfo.Commit,
	}, out)
}

func TestWebhookHandled(t *testing.T) {
	stub := &stubHandler{res: gateway.Result{Handled: true, Action: gateway.ActionCommandProcessed}}
	rec, out := post(t, NewRouter(stub), `{"typeWebhook":"incomingMessageReceived"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"ok": true, "handled": true, "action": "command_processed"}, out)
	assert.JSONEq(t, `{"typeWebhook":"incomingMessageReceived"}`, string(stub.got))
}

func TestWebhookIgnoredKeepsHandledFalse(t *testing.T) {
	stub := &stubHandler{res: gateway.Result{Action: gateway.ActionIgnoredWebhookType}}
	_, out := post(t, NewRouter(stub), `{}`)

	assert.Equal(t, map[string]any{"ok": true, "handled": false, "action": "ignored_webhook_type"}, out)
}

func TestWebhookInvalidPayload(t *testing.T) {
	stub := &stubHandler{err: &webhook.ValidationError{Field: "senderData.chatId", Message: "is required"}}
	rec, out := post(t, NewRouter(stub), `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"ok": false, "error": "invalid payload", "field": "senderData.chatId"}, out)
}

func TestWebhookProcessingFailure(t *testing.T) {
	stub := &stubHandler{err: fmt.Errorf("gateway: send reply: %w", errors.New("connection refused"))}
	rec, out := post(t, NewRouter(stub), `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"ok": false, "error": "processing failed"}, out)
}

func TestWebhookBodyTooLarge(t *testing.T) {
	stub := &stubHandler{}
	_, out := post(t, NewRouter(stub, WithMaxBodyBytes(8)), `{"typeWebhook":"incomingMessageReceived"}`)

	assert.Equal(t, map[string]any{"ok": false, "error": "invalid payload", "field": webhook.RootField}, out)
	assert.Nil(t, stub.got)
}

func TestWebhookPanicRecovered(t *testing.T) {
	rec, out := post(t, NewRouter(&stubHandler{panic: true}), `{}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, out["ok"])
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	NewRouter(&stubHandler{}).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestWebhookRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	rec := httptest.NewRecorder()
	NewRouter(&stubHandler{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, NewRouter(&stubHandler{}), time.Second) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
