package shopstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shopbot/core/logger"
)

const (
	selectShopConfig = `SELECT id, phone_number, shop_url, auth_token, created_at FROM shop_config WHERE id = $1`
	seedShopConfig   = `INSERT INTO shop_config (id, phone_number, shop_url, auth_token)
VALUES (:id, :phone_number, :shop_url, :auth_token)
ON CONFLICT (id) DO NOTHING`
)

// PostgresStore keeps the shop config in the shop_config table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open connection. Migrations must already be applied.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get returns the stored config or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context) (ShopConfig, error) {
	var cfg ShopConfig
	err := s.db.GetContext(ctx, &cfg, selectShopConfig, singletonID)
	if errors.Is(err, sql.ErrNoRows) {
		return ShopConfig{}, ErrNotFound
	}
	if err != nil {
		return ShopConfig{}, fmt.Errorf("shopstore: select: %w", err)
	}
	return cfg, nil
}

// Seed inserts cfg unless a row exists, then returns the stored row.
func (s *PostgresStore) Seed(ctx context.Context, cfg ShopConfig) (ShopConfig, error) {
	if err := validate(cfg); err != nil {
		return ShopConfig{}, err
	}
	cfg.ID = singletonID

	start := time.Now()
	res, err := s.db.NamedExecContext(ctx, seedShopConfig, cfg)
	if err != nil {
		logger.Error(ctx, "db.seed", "shop.seed",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.Took(start)),
		)
		return ShopConfig{}, fmt.Errorf("shopstore: seed: %w", err)
	}
	inserted, _ := res.RowsAffected()
	logger.Info(ctx, "db.seed", "shop.seed",
		slog.String("status", "ok"),
		slog.Int64("count", inserted),
		slog.Duration("duration", logger.Took(start)),
	)
	return s.Get(ctx)
}
