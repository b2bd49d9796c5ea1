package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions tune the pgx pool behind the postgres storage slot.
type PoolOptions struct {
	DSN         string
	MaxConns    int32
	MinConns    int32
	ConnectTO   time.Duration
	PingTO      time.Duration
	MaxIdleTime time.Duration
}

func (o *PoolOptions) withDefaults() {
	if o.MaxConns == 0 {
		o.MaxConns = 4
	}
	if o.ConnectTO == 0 {
		o.ConnectTO = 5 * time.Second
	}
	if o.PingTO == 0 {
		o.PingTO = 2 * time.Second
	}
	if o.MaxIdleTime == 0 {
		o.MaxIdleTime = 5 * time.Minute
	}
}

// OpenPool opens a pgx pool from DB_DSN and pings it before returning.
func OpenPool(ctx context.Context, opt PoolOptions) (*pgxpool.Pool, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}
	opt.withDefaults()

	cfg, err := pgxpool.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DB_DSN: %w", err)
	}
	cfg.MaxConns = opt.MaxConns
	cfg.MinConns = opt.MinConns
	cfg.MaxConnIdleTime = opt.MaxIdleTime

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return pool, nil
}
