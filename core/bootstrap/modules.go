package bootstrap

import (
	"context"

	coreconfig "github.com/m3rciful/shopbot/core/config"
	"github.com/m3rciful/shopbot/core/shopstore"
)

// Seeder loads reference data into the shop store.
type Seeder interface {
	Seed(ctx context.Context, store shopstore.Store) error
}

// SeederFunc adapts a bare function to the Seeder interface.
type SeederFunc func(ctx context.Context, store shopstore.Store) error

// Seed executes the underlying function.
func (f SeederFunc) Seed(ctx context.Context, store shopstore.Store) error {
	return f(ctx, store)
}

// FromConfig seeds the shop row from configuration on first boot.
func FromConfig(cfg *coreconfig.Config) Seeder {
	return SeederFunc(func(ctx context.Context, store shopstore.Store) error {
		_, err := store.Seed(ctx, shopstore.ShopConfig{
			PhoneNumber: cfg.WhatsApp.PhoneNumber,
			ShopURL:     cfg.Shop.URL,
			AuthToken:   cfg.Shop.AuthToken,
		})
		return err
	})
}
