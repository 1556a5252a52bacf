// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantdb

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig bounds every tenant pool. Tenant pools are deliberately smaller
// than the control-plane pool since there is one per organization.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	ConnectTimeout  time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// PoolFactory constructs a pool for a resolved tenant DSN. Injected so the
// registry can be tested without a live database.
type PoolFactory func(ctx context.Context, dsn string, cfg PoolConfig) (Pool, error)

var _ Pool = (*pgxPool)(nil)

// pgxPool adapts pgxpool.Pool to the registry's Pool interface and tracks the
// ended flag, which pgxpool does not expose.
type pgxPool struct {
	pool   *pgxpool.Pool
	closed atomic.Bool
}

func (p *pgxPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

func (p *pgxPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

func (p *pgxPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

func (p *pgxPool) Begin(ctx context.Context) (pgx.Tx, error) {
	return p.pool.Begin(ctx)
}

func (p *pgxPool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *pgxPool) AcquiredConns() int32 {
	return p.pool.Stat().AcquiredConns()
}

func (p *pgxPool) Close() {
	if p.closed.CompareAndSwap(false, true) {
		p.pool.Close()
	}
}

func (p *pgxPool) Closed() bool {
	return p.closed.Load()
}

// NewPgxPoolFactory returns the production PoolFactory backed by pgxpool.
func NewPgxPoolFactory() PoolFactory {
	return func(ctx context.Context, dsn string, cfg PoolConfig) (Pool, error) {
		config, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid tenant DSN: %w", err)
		}

		config.MaxConns = cfg.MaxConns
		config.MinConns = cfg.MinConns
		config.MaxConnIdleTime = cfg.MaxConnIdleTime
		config.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

		if cfg.TracingEnabled {
			config.ConnConfig.Tracer = otelpgx.NewTracer()
		}

		pool, err := pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("failed to create tenant pool: %w", err)
		}

		return &pgxPool{pool: pool}, nil
	}
}
