package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyberbirth/cyberbirth-backend/config"
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/storage"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// OpenSlot opens the configured storage backend. The returned close
// function releases its connections and is never nil.
func OpenSlot(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Slot, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using redis storage", zap.String("addr", cfg.Redis.Addr), zap.String("key", cfg.Storage.Key))
		return storage.NewRedisSlot(client, cfg.Storage.Key), func() { client.Close() }, nil

	case config.BackendPostgres:
		db, closeFn, err := openPostgres(ctx, &cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		slot := storage.NewSQLSlot(db, storage.DialectPostgres, cfg.Storage.Key)
		if err := slot.EnsureSchema(ctx); err != nil {
			closeFn()
			return nil, noop, err
		}
		logger.Info("using postgres storage", zap.String("key", cfg.Storage.Key))
		return slot, closeFn, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLitePath), 0o755); err != nil {
			return nil, noop, fmt.Errorf("create sqlite dir: %w", err)
		}
		db, err := sql.Open("sqlite", cfg.Storage.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite: %w", err)
		}
		slot := storage.NewSQLSlot(db, storage.DialectSQLite, cfg.Storage.Key)
		if err := slot.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		logger.Info("using sqlite storage", zap.String("path", cfg.Storage.SQLitePath))
		return slot, func() { db.Close() }, nil

	case config.BackendFile:
		slot := storage.NewFileSlot(cfg.Storage.FilePath)
		logger.Info("using file storage", zap.String("path", slot.Path()), zap.String("key", slot.Key()))
		return slot, noop, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// openPostgres prefers a pgx pool when DB_DSN is set and falls back to
// lib/pq with the discrete DB_* settings.
func openPostgres(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, func(), error) {
	if cfg.DSN != "" {
		pool, err := OpenPool(ctx, PoolOptions{DSN: cfg.DSN})
		if err != nil {
			return nil, nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return db, func() {
			db.Close()
			pool.Close()
		}, nil
	}

	db, err := OpenPostgres(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}
