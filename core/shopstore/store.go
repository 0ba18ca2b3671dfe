// Package shopstore persists the connection metadata of the shop this bot serves.
package shopstore

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when no shop is configured yet.
var ErrNotFound = errors.New("shopstore: shop config not found")

// ShopConfig is the single connected shop.
type ShopConfig struct {
	ID          int       `db:"id"`
	PhoneNumber string    `db:"phone_number"`
	ShopURL     string    `db:"shop_url"`
	AuthToken   string    `db:"auth_token"`
	CreatedAt   time.Time `db:"created_at"`
}

// Store reads and seeds the shop config.
type Store interface {
	Get(ctx context.Context) (ShopConfig, error)
	// Seed stores cfg unless a row already exists and returns the row in effect.
	Seed(ctx context.Context, cfg ShopConfig) (ShopConfig, error)
}

const singletonID = 1

func validate(cfg ShopConfig) error {
	switch {
	case strings.TrimSpace(cfg.PhoneNumber) == "":
		return errors.New("shopstore: phone number is required")
	case strings.TrimSpace(cfg.ShopURL) == "":
		return errors.New("shopstore: shop url is required")
	case strings.TrimSpace(cfg.AuthToken) == "":
		return errors.New("shopstore: auth token is required")
	}
	return nil
}
