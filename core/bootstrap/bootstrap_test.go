package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/shopbot/core/config"
	"github.com/m3rciful/shopbot/core/shopstore"
)

func testConfig() *coreconfig.Config {
	cfg := &coreconfig.Config{}
	cfg.WhatsApp.PhoneNumber = "972501234567"
	cfg.Shop.URL = "https://shop.test"
	cfg.Shop.AuthToken = "secret"
	return cfg
}

func noLogger(*coreconfig.Config) error { return nil }

func TestRunWithoutDatabaseSeedsFromConfig(t *testing.T) {
	res, err := Run(context.Background(), Options{Config: testConfig(), LoggerInit: noLogger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Close() })

	assert.Nil(t, res.DB)
	assert.IsType(t, &shopstore.MemoryStore{}, res.Shops)
	assert.Equal(t, "972501234567", res.Shop.PhoneNumber)
	assert.Equal(t, "https://shop.test", res.Shop.ShopURL)
}

func TestRunCustomSeederWinsOverConfig(t *testing.T) {
	first := SeederFunc(func(ctx context.Context, store shopstore.Store) error {
		_, err := store.Seed(ctx, shopstore.ShopConfig{PhoneNumber: "15550000000", ShopURL: "https://stored.test", AuthToken: "x"})
		return err
	})
	res, err := Run(context.Background(), Options{
		Config:     testConfig(),
		LoggerInit: noLogger,
		Seeders:    []Seeder{first, FromConfig(testConfig())},
	})
	require.NoError(t, err)
	assert.Equal(t, "15550000000", res.Shop.PhoneNumber)
}

func TestRunPropagatesFailures(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	assert.ErrorContains(t, err, "nil config")

	_, err = Run(context.Background(), Options{
		Config:     testConfig(),
		LoggerInit: func(*coreconfig.Config) error { return errors.New("disk full") },
	})
	assert.ErrorContains(t, err, "logger init failed")

	cfg := testConfig()
	cfg.Database.Enabled = true
	_, err = Run(context.Background(), Options{
		Config:     cfg,
		LoggerInit: noLogger,
		Connect: func(coreconfig.DatabaseConfig) (*sqlx.DB, error) {
			return nil, errors.New("connection refused")
		},
	})
	assert.ErrorContains(t, err, "database initialization failed")

	failing := SeederFunc(func(context.Context, shopstore.Store) error { return errors.New("nope") })
	_, err = Run(context.Background(), Options{Config: testConfig(), LoggerInit: noLogger, Seeders: []Seeder{failing}})
	assert.ErrorContains(t, err, "seed failed")
}
