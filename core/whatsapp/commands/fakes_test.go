package commands

import (
	"context"
	"sync"

	"github.com/m3rciful/shopbot/core/catalog"
)

type fakeCatalog struct {
	mu        sync.Mutex
	products  []catalog.Product
	listErr   error
	createErr error
	created   []catalog.CreateProductInput
	listCalls int
}

func (f *fakeCatalog) ListProducts(context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, in catalog.CreateProductInput) (catalog.CreatedProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.createErr != nil {
		return catalog.CreatedProduct{}, f.createErr
	}
	stock := in.StockQuantity
	return catalog.CreatedProduct{ID: int64(len(f.created)), Name: in.Name, Price: in.RegularPrice, StockQuantity: &stock, Status: "publish"}, nil
}
