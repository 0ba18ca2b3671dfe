package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseNormalizeAndURL(t *testing.T) {
	cfg := DatabaseConfig{Enabled: true, Host: "db", User: "bot", Password: "p@ss", Name: "shop"}
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
	assert.Equal(t, 4, cfg.MaxConnections)
	assert.Equal(t, "postgres://bot:p%40ss@db:5432/shop?sslmode=disable", cfg.URL())
	assert.Contains(t, cfg.DSN(), "dbname=shop")

	missing := DatabaseConfig{Enabled: true, Name: "shop"}
	assert.Error(t, missing.Normalize())
}
