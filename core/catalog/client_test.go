package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", "secret", WithHTTPClient(srv.Client()))
}

func intPtr(v int) *int { return &v }

func TestListProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, productsPath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[
			{"id":1,"name":"Widget","sku":"W-1","price":"29.99","regular_price":"29.99","sale_price":"","stock_quantity":5,"stock_status":"instock","status":"publish","categories":["Tools"]},
			{"id":2,"name":"Gadget","sku":"","price":"10.00","regular_price":"10.00","sale_price":"","stock_quantity":null,"stock_status":"outofstock","status":"publish","categories":[]}
		]`)
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, intPtr(5), products[0].StockQuantity)
	assert.Equal(t, []string{"Tools"}, products[0].Categories)
	assert.Nil(t, products[1].StockQuantity)
}

func TestListProductsStatusCodes(t *testing.T) {
	cases := map[int]ErrorCode{
		http.StatusUnauthorized:        CodeUnauthorized,
		http.StatusBadRequest:          CodeBadRequest,
		http.StatusNotFound:            CodeNotFound,
		http.StatusInternalServerError: CodeServerError,
		http.StatusBadGateway:          CodeServerError,
		http.StatusForbidden:           CodeUnknown,
	}
	for status, want := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"message":"nope"}`)
		})
		_, err := client.ListProducts(context.Background())
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr), "status %d", status)
		assert.Equal(t, want, apiErr.Kind, "status %d", status)
		assert.Equal(t, string(want), apiErr.Code())
		assert.Equal(t, status, apiErr.StatusCode)
	}
}

func TestListProductsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewHTTPClient(url, "secret", WithHTTPClient(&http.Client{}))
	_, err := client.ListProducts(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, CodeNetworkError, apiErr.Kind)
	assert.Zero(t, apiErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(apiErr))
}

func TestCreateProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "Widget", "regular_price": "29.99", "stock_quantity": float64(50)}, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":7,"name":"Widget","sku":"","price":"29.99","stock_quantity":50,"status":"publish"}`)
	})

	created, err := client.CreateProduct(context.Background(), CreateProductInput{Name: "Widget", RegularPrice: "29.99", StockQuantity: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 7, created.ID)
	assert.Equal(t, intPtr(50), created.StockQuantity)
}

func TestCreateProductErrorMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":"invalid","message":"SKU already exists"}`)
	})
	_, err := client.CreateProduct(context.Background(), CreateProductInput{Name: "X", RegularPrice: "1.00"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "SKU already exists", apiErr.Error())
	assert.Equal(t, CodeBadRequest, apiErr.Kind)

	client = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})
	_, err = client.CreateProduct(context.Background(), CreateProductInput{Name: "X", RegularPrice: "1.00"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Failed to create product", apiErr.Error())
	assert.Equal(t, CodeServerError, apiErr.Kind)
}
