// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the registry-owned handle to one tenant's connection pool. Callers
// receive it for the duration of a request and must not retain it.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	AcquiredConns() int32
	Close()
	Closed() bool
}

// DescriptorResolver resolves an organization's tenant database descriptor
// from the control-plane store.
type DescriptorResolver interface {
	ResolveTenantDSN(ctx context.Context, orgID string) (string, error)
}

type ManagerInterface interface {
	Acquire(ctx context.Context, orgID string) (Pool, error)
	Query(ctx context.Context, orgID, sql string, args ...any) (pgx.Rows, error)
	WithTx(ctx context.Context, orgID string, fn func(tx pgx.Tx) error) error
	Invalidate(orgID string)
	ReleaseAll()
}
