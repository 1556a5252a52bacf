// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantdb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

// ErrNoTenantDatabase is returned when the control plane has no database
// descriptor for the organization.
var ErrNoTenantDatabase = errors.New("organization has no tenant database")

const stmtLogLimit = 120

var _ ManagerInterface = (*Manager)(nil)

type cachedDSN struct {
	dsn       string
	expiresAt time.Time
}

// Manager is the tenant-scoped data access entry point: it resolves an
// organization's database descriptor, caches it for a bounded TTL, and hands
// queries and transactions to the registry-owned pool.
type Manager struct {
	registry *Registry
	resolver DescriptorResolver

	mu       sync.Mutex
	dsnCache map[string]cachedDSN
	dsnTTL   time.Duration

	// now is replaceable in tests
	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewManager(
	registry *Registry,
	resolver DescriptorResolver,
	dsnTTL time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Manager {
	m := new(Manager)

	m.registry = registry
	m.resolver = resolver
	m.dsnCache = make(map[string]cachedDSN)
	m.dsnTTL = dsnTTL
	m.now = time.Now

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}

// Acquire returns the pool for orgID, creating it on first access.
// Descriptor resolution failures are fatal for the call and never cached.
func (m *Manager) Acquire(ctx context.Context, orgID string) (Pool, error) {
	ctx, span := m.tracer.Start(ctx, "tenantdb.Manager.Acquire")
	defer span.End()

	dsn, err := m.resolveDSN(ctx, orgID)
	if err != nil {
		return nil, err
	}

	pool, err := m.registry.Get(ctx, orgID, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire tenant pool for %s: %w", orgID, err)
	}

	return pool, nil
}

func (m *Manager) resolveDSN(ctx context.Context, orgID string) (string, error) {
	m.mu.Lock()
	prev, hadPrev := m.dsnCache[orgID]
	if hadPrev && m.now().Before(prev.expiresAt) {
		m.mu.Unlock()
		return prev.dsn, nil
	}
	m.mu.Unlock()

	dsn, err := m.resolver.ResolveTenantDSN(ctx, orgID)
	if err != nil {
		return "", err
	}
	if dsn == "" {
		return "", ErrNoTenantDatabase
	}

	if hadPrev && prev.dsn != dsn {
		// Descriptor rotation: the live pool still points at the old
		// database and must not serve another statement.
		m.logger.Infof("tenant database descriptor rotated for %s, evicting pool", orgID)
		m.Invalidate(orgID)
	}

	m.mu.Lock()
	m.dsnCache[orgID] = cachedDSN{dsn: dsn, expiresAt: m.now().Add(m.dsnTTL)}
	m.mu.Unlock()

	return dsn, nil
}

// Query runs a single statement against the tenant database. Failures are
// logged with a truncated statement and returned, never swallowed.
func (m *Manager) Query(ctx context.Context, orgID, sql string, args ...any) (pgx.Rows, error) {
	ctx, span := m.tracer.Start(ctx, "tenantdb.Manager.Query")
	defer span.End()

	pool, err := m.Acquire(ctx, orgID)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, sql, args...)
	if err != nil {
		m.logger.Errorf("tenant query failed for %s: %v, statement: %s", orgID, err, truncate(sql))
		return nil, err
	}

	return rows, nil
}

// WithTx runs fn inside one tenant-database transaction. The transaction is
// rolled back on error or panic and the connection always returns to the pool.
func (m *Manager) WithTx(ctx context.Context, orgID string, fn func(tx pgx.Tx) error) error {
	ctx, span := m.tracer.Start(ctx, "tenantdb.Manager.WithTx")
	defer span.End()

	pool, err := m.Acquire(ctx, orgID)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tenant transaction for %s: %w", orgID, err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				m.logger.Errorf("failed to rollback tenant transaction for %s: %v", orgID, rbErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tenant transaction for %s: %w", orgID, err)
	}
	committed = true

	return nil
}

// Invalidate purges the cached descriptor and the live pool for orgID.
// Descriptor refresh calls this when it observes a rotated descriptor, so a
// rotation takes effect no later than one cache TTL after the control-plane
// record changes.
func (m *Manager) Invalidate(orgID string) {
	m.mu.Lock()
	delete(m.dsnCache, orgID)
	m.mu.Unlock()

	m.registry.Evict(orgID)
}

// ReleaseAll tears down all pools and cached descriptors.
func (m *Manager) ReleaseAll() {
	m.mu.Lock()
	m.dsnCache = make(map[string]cachedDSN)
	m.mu.Unlock()

	m.registry.CloseAll()
}

func truncate(sql string) string {
	if len(sql) > stmtLogLimit {
		return sql[:stmtLogLimit] + "..."
	}
	return sql
}
