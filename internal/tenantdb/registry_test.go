// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantdb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/canonical/compliance-service/internal/logging"
)

type fakePool struct {
	mu       sync.Mutex
	pings    int
	pingErr  error
	acquired int32
	closed   bool
	beginErr error
	queryErr error
	tx       *fakeTx
}

func (p *fakePool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, p.queryErr
}

func (p *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (p *fakePool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (p *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	if p.tx == nil {
		p.tx = &fakeTx{}
	}
	return p.tx, nil
}

func (p *fakePool) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pings++
	return p.pingErr
}

func (p *fakePool) pingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pings
}

func (p *fakePool) AcquiredConns() int32 { return p.acquired }

func (p *fakePool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *fakePool) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// fakeTx panics on anything but Commit/Rollback, which is all the manager uses.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeFactory struct {
	mu      sync.Mutex
	created int
	lastDSN string
	err     error
	next    func() *fakePool
}

func (f *fakeFactory) factory() PoolFactory {
	return func(ctx context.Context, dsn string, cfg PoolConfig) (Pool, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.err != nil {
			return nil, f.err
		}
		f.created++
		f.lastDSN = dsn
		if f.next != nil {
			return f.next(), nil
		}
		return &fakePool{}, nil
	}
}

func (f *fakeFactory) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}

func (f *fakeFactory) lastDialed() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastDSN
}

func testHealthConfig() HealthConfig {
	return HealthConfig{
		GracePeriod:  30 * time.Second,
		Interval:     60 * time.Second,
		ProbeTimeout: time.Second,
	}
}

func TestRegistryReusesPool(t *testing.T) {
	f := &fakeFactory{}
	r := NewRegistry(f.factory(), PoolConfig{}, testHealthConfig(), logging.NewNoopLogger())

	first, err := r.Get(context.Background(), "org-1", "dsn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		p, err := r.Get(context.Background(), "org-1", "dsn")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p != first {
			t.Error("expected the same pool instance on repeated access")
		}
	}

	if f.createdCount() != 1 {
		t.Errorf("expected 1 pool creation, got %d", f.createdCount())
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 live pool, got %d", r.Len())
	}
}

func TestRegistrySeparatePoolsPerTenant(t *testing.T) {
	f := &fakeFactory{}
	r := NewRegistry(f.factory(), PoolConfig{}, testHealthConfig(), logging.NewNoopLogger())

	p1, _ := r.Get(context.Background(), "org-1", "dsn-1")
	p2, _ := r.Get(context.Background(), "org-2", "dsn-2")

	if p1 == p2 {
		t.Error("expected distinct pools for distinct tenants")
	}
	if f.createdCount() != 2 {
		t.Errorf("expected 2 pool creations, got %d", f.createdCount())
	}
}

func TestRegistryRecreatesClosedPool(t *testing.T) {
	f := &fakeFactory{}
	r := NewRegistry(f.factory(), PoolConfig{}, testHealthConfig(), logging.NewNoopLogger())

	first, _ := r.Get(context.Background(), "org-1", "dsn")
	first.Close()

	second, err := r.Get(context.Background(), "org-1", "dsn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == first {
		t.Error("expected a fresh pool after the previous one ended")
	}
	if f.createdCount() != 2 {
		t.Errorf("expected 2 pool creations, got %d", f.createdCount())
	}
}

func TestRegistryFactoryErrorPropagates(t *testing.T) {
	f := &fakeFactory{err: errors.New("connect refused")}
	r := NewRegistry(f.factory(), PoolConfig{}, testHealthConfig(), logging.NewNoopLogger())

	if _, err := r.Get(context.Background(), "org-1", "dsn"); err == nil {
		t.Error("expected pool construction error to propagate")
	}
	if r.Len() != 0 {
		t.Errorf("expected no pool cached after construction failure, got %d", r.Len())
	}
}

func TestRegistrySkipsProbeDuringGracePeriod(t *testing.T) {
	pool := &fakePool{}
	f := &fakeFactory{next: func() *fakePool { return pool }}
	r := NewRegistry(f.factory(), PoolConfig{}, testHealthConfig(), logging.NewNoopLogger())

	for i := 0; i < 3; i++ {
		r.Get(context.Background(), "org-1", "dsn")
	}

	if pool.pingCount() != 0 {
		t.Errorf("expected no probes inside grace period, got %d", pool.pingCount())
	}
}

func TestRegistrySkipsProbeWhenPoolBusy(t *testing.T) {
	pool := &fakePool{acquired: 3}
	f := &fakeFactory{next: func() *fakePool { return pool }}
	r := NewRegistry(f.factory(), PoolConfig{}, HealthConfig{Interval: 60 * time.Second, ProbeTimeout: time.Second}, logging.NewNoopLogger())

	base := time.Now()
	r.now = func() time.Time { return base }
	r.Get(context.Background(), "org-1", "dsn")

	// Past the (zero) grace period: a busy pool counts as verified without probing.
	r.Get(context.Background(), "org-1", "dsn")

	if pool.pingCount() != 0 {
		t.Errorf("expected no probe for a busy pool, got %d", pool.pingCount())
	}
}

func TestRegistryProbesIdlePoolAtInterval(t *testing.T) {
	pool := &fakePool{}
	f := &fakeFactory{next: func() *fakePool { return pool }}
	r := NewRegistry(f.factory(), PoolConfig{}, HealthConfig{Interval: 60 * time.Second, ProbeTimeout: time.Second}, logging.NewNoopLogger())

	base := time.Now()
	now := base
	r.now = func() time.Time { return now }

	r.Get(context.Background(), "org-1", "dsn")
	r.Get(context.Background(), "org-1", "dsn")
	if pool.pingCount() != 1 {
		t.Fatalf("expected 1 probe for idle pool, got %d", pool.pingCount())
	}

	// Within the interval: no further probing.
	now = base.Add(30 * time.Second)
	r.Get(context.Background(), "org-1", "dsn")
	if pool.pingCount() != 1 {
		t.Errorf("expected probe to be rate limited, got %d", pool.pingCount())
	}

	// Interval elapsed: probe again.
	now = base.Add(90 * time.Second)
	r.Get(context.Background(), "org-1", "dsn")
	if pool.pingCount() != 2 {
		t.Errorf("expected second probe after interval, got %d", pool.pingCount())
	}
}

func TestRegistryProbeFailureDoesNotTearDownPool(t *testing.T) {
	pool := &fakePool{pingErr: errors.New("connection reset")}
	f := &fakeFactory{next: func() *fakePool { return pool }}
	r := NewRegistry(f.factory(), PoolConfig{}, HealthConfig{Interval: 60 * time.Second, ProbeTimeout: time.Second}, logging.NewNoopLogger())

	base := time.Now()
	r.now = func() time.Time { return base }

	r.Get(context.Background(), "org-1", "dsn")
	p, err := r.Get(context.Background(), "org-1", "dsn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Closed() {
		t.Error("probe failure must not close the pool")
	}
	if f.createdCount() != 1 {
		t.Errorf("probe failure must not trigger pool churn, got %d creations", f.createdCount())
	}
}

func TestRegistryEvict(t *testing.T) {
	f := &fakeFactory{}
	r := NewRegistry(f.factory(), PoolConfig{}, testHealthConfig(), logging.NewNoopLogger())

	p, _ := r.Get(context.Background(), "org-1", "dsn")
	r.Evict("org-1")

	if !p.Closed() {
		t.Error("expected evicted pool to be closed")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry after evict, got %d", r.Len())
	}
}

func TestRegistryCloseAll(t *testing.T) {
	f := &fakeFactory{}
	r := NewRegistry(f.factory(), PoolConfig{}, testHealthConfig(), logging.NewNoopLogger())

	p1, _ := r.Get(context.Background(), "org-1", "dsn-1")
	p2, _ := r.Get(context.Background(), "org-2", "dsn-2")

	r.CloseAll()

	if !p1.Closed() || !p2.Closed() {
		t.Error("expected all pools closed")
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistryConcurrentAccessSinglePool(t *testing.T) {
	f := &fakeFactory{}
	r := NewRegistry(f.factory(), PoolConfig{}, testHealthConfig(), logging.NewNoopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Get(context.Background(), "org-1", "dsn"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if f.createdCount() != 1 {
		t.Errorf("expected exactly 1 pool under concurrent access, got %d", f.createdCount())
	}
}
