package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bucketbuddy/bucketbuddy/internal/config"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
	"github.com/bucketbuddy/bucketbuddy/internal/store/memory"
	mongostore "github.com/bucketbuddy/bucketbuddy/internal/store/mongo"
	"github.com/bucketbuddy/bucketbuddy/internal/store/postgres"
	"github.com/bucketbuddy/bucketbuddy/internal/store/sqlite"
)

// NewStore selects and opens the store adapter for cfg.StoreDriver.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Warn().Msg("using in-memory store; items are lost on restart")
		return memory.New(), nil
	case "postgres":
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		return postgres.NewWithDB(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure sqlite schema: %w", err)
		}
		return sqlite.NewWithDB(db), nil
	case "mongo":
		client, err := mongostore.Open(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		return mongostore.NewWithClient(client), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
}
