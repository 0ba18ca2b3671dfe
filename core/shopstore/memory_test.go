package shopstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSeedOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := s.Get(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	first, err := s.Seed(ctx, ShopConfig{PhoneNumber: "972501234567", ShopURL: "https://shop.test", AuthToken: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, fixed, first.CreatedAt)

	second, err := s.Seed(ctx, ShopConfig{PhoneNumber: "15550000000", ShopURL: "https://other.test", AuthToken: "b"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "972501234567", got.PhoneNumber)
}

func TestSeedRejectsIncompleteConfig(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Seed(context.Background(), ShopConfig{PhoneNumber: "1", ShopURL: "https://shop.test"})
	assert.ErrorContains(t, err, "auth token")

	_, err = s.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}
