package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/netutil"
)

const (
	productsPath         = "/wp-json/wsi/v1/products"
	maxErrorBody         = 4 << 10
	createFailedFallback = "Failed to create product"
)

// HTTPClient implements Client over the shop plugin REST API.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

var _ Client = (*HTTPClient)(nil)

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

// NewHTTPClient builds a client for the shop at shopURL authenticating with token.
func NewHTTPClient(shopURL, token string, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		baseURL: strings.TrimRight(shopURL, "/"),
		token:   token,
		http:    netutil.NewHTTPClient(netutil.ClientOptions{Component: "catalog"}),
		log:     logger.Component("catalog"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ListProducts fetches every product visible to the token.
func (h *HTTPClient) ListProducts(ctx context.Context) ([]Product, error) {
	start := time.Now()
	resp, err := h.do(ctx, http.MethodGet, nil)
	if err != nil {
		apiErr := networkError("Network error fetching products", err)
		h.logFailure(ctx, "catalog.list", start, apiErr)
		return nil, apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readErrorBody(resp.Body)
		apiErr := statusError(resp.StatusCode, "")
		h.logFailure(ctx, "catalog.list", start, apiErr, slog.String("body", logger.SanitizeLimit(body, 256)))
		return nil, apiErr
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		apiErr := &APIError{Kind: CodeUnknown, StatusCode: resp.StatusCode, Message: "Invalid products response", Err: err}
		h.logFailure(ctx, "catalog.list", start, apiErr)
		return nil, apiErr
	}
	logger.LogEvent(ctx, h.log, slog.LevelInfo, "catalog.list",
		slog.String("status", "ok"),
		slog.Int("http_code", resp.StatusCode),
		slog.Int("count", len(products)),
		slog.Duration("duration", logger.Took(start)),
	)
	return products, nil
}

// CreateProduct creates a product. API failures carry the server's message when it sent one.
func (h *HTTPClient) CreateProduct(ctx context.Context, in CreateProductInput) (CreatedProduct, error) {
	start := time.Now()
	payload, err := json.Marshal(in)
	if err != nil {
		return CreatedProduct{}, &APIError{Kind: CodeUnknown, Message: createFailedFallback, Err: err}
	}

	resp, err := h.do(ctx, http.MethodPost, payload)
	if err != nil {
		apiErr := networkError("Network error creating product", err)
		h.logFailure(ctx, "catalog.create", start, apiErr)
		return CreatedProduct{}, apiErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readErrorBody(resp.Body)
		apiErr := statusError(resp.StatusCode, createErrorMessage(body))
		h.logFailure(ctx, "catalog.create", start, apiErr, slog.String("body", logger.SanitizeLimit(body, 256)))
		return CreatedProduct{}, apiErr
	}

	var created CreatedProduct
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		apiErr := &APIError{Kind: CodeUnknown, StatusCode: resp.StatusCode, Message: "Invalid create response", Err: err}
		h.logFailure(ctx, "catalog.create", start, apiErr)
		return CreatedProduct{}, apiErr
	}
	logger.LogEvent(ctx, h.log, slog.LevelInfo, "catalog.create",
		slog.String("status", "ok"),
		slog.Int("http_code", resp.StatusCode),
		slog.Int64("product_id", created.ID),
		slog.Duration("duration", logger.Took(start)),
	)
	return created, nil
}

func (h *HTTPClient) do(ctx context.Context, method string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+productsPath, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return h.http.Do(req)
}

func (h *HTTPClient) logFailure(ctx context.Context, event string, start time.Time, apiErr *APIError, extra ...slog.Attr) {
	attrs := []slog.Attr{
		slog.String("status", "fail"),
		slog.String("err", apiErr.Error()),
		slog.String("err_code", logger.ErrCode(apiErr)),
		slog.Duration("duration", logger.Took(start)),
	}
	if apiErr.StatusCode != 0 {
		attrs = append(attrs, slog.Int("http_code", apiErr.StatusCode))
	}
	if apiErr.Err != nil {
		attrs = append(attrs, slog.String("cause", apiErr.Err.Error()))
	}
	logger.LogEvent(ctx, h.log, slog.LevelError, event, append(attrs, extra...)...)
}

func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(data)
}

// createErrorMessage extracts the "message" field of a JSON error body.
func createErrorMessage(body string) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || strings.TrimSpace(parsed.Message) == "" {
		return createFailedFallback
	}
	return parsed.Message
}
