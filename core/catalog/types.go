// Package catalog talks to the shop's product-management API.
package catalog

import "context"

// Product is a catalog entry as returned by the list endpoint.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	SKU           string   `json:"sku"`
	Price         string   `json:"price"`
	RegularPrice  string   `json:"regular_price"`
	SalePrice     string   `json:"sale_price"`
	StockQuantity *int     `json:"stock_quantity"`
	StockStatus   string   `json:"stock_status"`
	Status        string   `json:"status"`
	Categories    []string `json:"categories"`
}

// CreateProductInput is the body of a create request.
type CreateProductInput struct {
	Name          string `json:"name"`
	RegularPrice  string `json:"regular_price"`
	StockQuantity int    `json:"stock_quantity"`
	Description   string `json:"description,omitempty"`
	SKU           string `json:"sku,omitempty"`
}

// CreatedProduct is the subset echoed back after a successful create.
type CreatedProduct struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Price         string `json:"price"`
	StockQuantity *int   `json:"stock_quantity"`
	Status        string `json:"status"`
}

// Client lists and creates products. Failures are returned as *APIError.
type Client interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (CreatedProduct, error)
}
