package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/shopbot/core/config"
	coredatabase "github.com/m3rciful/shopbot/core/database"
	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/shopstore"
)

// Options control the bootstrap pipeline. Nil hooks use the real implementations.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coreconfig.DatabaseConfig) (*sqlx.DB, error)
	Migrate    func(coreconfig.DatabaseConfig) error
	// Seeders run after the shop store is ready. Empty means FromConfig.
	Seeders []Seeder
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	// DB is nil when the database is disabled.
	DB    *sqlx.DB
	Shops shopstore.Store
	// Shop is the connection metadata in effect after seeding.
	Shop shopstore.ShopConfig
}

// Close releases the database connection, if any.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// Run initializes the logger, prepares the shop store and resolves the shop
// this process serves. A stored shop row takes precedence over config.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	res := &Result{}
	if opts.Config.Database.Enabled {
		db, err := openDatabase(opts)
		if err != nil {
			return nil, err
		}
		res.DB = db
		res.Shops = shopstore.NewPostgresStore(db)
	} else {
		logger.Info(ctx, "db", "db.disabled",
			slog.String("status", "ok"),
		)
		res.Shops = shopstore.NewMemoryStore()
	}

	seeders := opts.Seeders
	if len(seeders) == 0 {
		seeders = []Seeder{FromConfig(opts.Config)}
	}
	for _, s := range seeders {
		if err := s.Seed(ctx, res.Shops); err != nil {
			_ = res.Close()
			return nil, fmt.Errorf("bootstrap: seed failed: %w", err)
		}
	}

	shop, err := res.Shops.Get(ctx)
	if err != nil {
		_ = res.Close()
		return nil, fmt.Errorf("bootstrap: resolve shop: %w", err)
	}
	res.Shop = shop
	return res, nil
}

func openDatabase(opts Options) (*sqlx.DB, error) {
	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(opts.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = coredatabase.RunMigrations
	}
	if err := migrate(opts.Config.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}
	return db, nil
}
