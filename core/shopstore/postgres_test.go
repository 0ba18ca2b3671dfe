package shopstore

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schema = `CREATE TABLE IF NOT EXISTS shop_config (
    id           INTEGER PRIMARY KEY CHECK (id = 1),
    phone_number TEXT        NOT NULL,
    shop_url     TEXT        NOT NULL,
    auth_token   TEXT        NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("SHOPBOT_TEST_DSN")
	if dsn == "" {
		t.Skip("SHOPBOT_TEST_DSN not set")
	}
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	db.MustExec(schema)
	db.MustExec(`DELETE FROM shop_config`)
	return db
}

func TestPostgresStoreSeedIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewPostgresStore(openTestDB(t))

	_, err := s.Get(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	first, err := s.Seed(ctx, ShopConfig{PhoneNumber: "972501234567", ShopURL: "https://shop.test", AuthToken: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := s.Seed(ctx, ShopConfig{PhoneNumber: "15550000000", ShopURL: "https://other.test", AuthToken: "b"})
	require.NoError(t, err)
	assert.Equal(t, "972501234567", second.PhoneNumber)
	assert.Equal(t, "https://shop.test", second.ShopURL)
}
