// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantdb

import (
	"context"
	"sync"
	"time"

	"github.com/canonical/compliance-service/internal/logging"
)

// healthState is the per-pool health check state machine.
// Fresh pools are inside the post-creation grace period and never probed.
// Verified pools passed their last liveness signal. Unverified pools failed
// the last probe but are still handed out: the caller's real query decides
// whether the pool is actually dead.
type healthState int

const (
	stateFresh healthState = iota
	stateVerified
	stateUnverified
)

// HealthConfig tunes the adaptive health checking of tenant pools.
type HealthConfig struct {
	// GracePeriod after pool creation during which no probing happens.
	GracePeriod time.Duration
	// Interval is the minimum time between probes of an idle pool.
	Interval time.Duration
	// ProbeTimeout bounds the probe query.
	ProbeTimeout time.Duration
}

type entry struct {
	mu          sync.Mutex
	pool        Pool
	createdAt   time.Time
	lastChecked time.Time
	state       healthState
}

// Registry is the process-wide owner of tenant pools. It is constructed once
// at startup and injected; pools never escape its lifecycle management.
type Registry struct {
	mu    sync.Mutex
	pools map[string]*entry

	factory PoolFactory
	poolCfg PoolConfig
	health  HealthConfig

	// now is replaceable in tests
	now func() time.Time

	logger logging.LoggerInterface
}

func NewRegistry(factory PoolFactory, poolCfg PoolConfig, health HealthConfig, logger logging.LoggerInterface) *Registry {
	r := new(Registry)

	r.pools = make(map[string]*entry)
	r.factory = factory
	r.poolCfg = poolCfg
	r.health = health
	r.now = time.Now
	r.logger = logger

	return r
}

// Get returns the live pool for orgID, creating one from dsn on first access
// or when the previous pool was found closed. The registry mutex is held
// across creation so two requests cannot race to build two pools for the
// same tenant.
func (r *Registry) Get(ctx context.Context, orgID, dsn string) (Pool, error) {
	r.mu.Lock()
	e, ok := r.pools[orgID]
	if ok && e.pool.Closed() {
		// Ended pools are evicted and recreated on next access.
		r.logger.Infof("tenant pool for %s was closed, recreating", orgID)
		delete(r.pools, orgID)
		ok = false
	}

	if !ok {
		pool, err := r.factory(ctx, dsn, r.poolCfg)
		if err != nil {
			r.mu.Unlock()
			return nil, err
		}

		e = &entry{
			pool:      pool,
			createdAt: r.now(),
			state:     stateFresh,
		}
		r.pools[orgID] = e
		r.mu.Unlock()
		return pool, nil
	}
	r.mu.Unlock()

	r.verify(ctx, orgID, e)

	return e.pool, nil
}

// verify runs the adaptive health check for an existing pool. It never tears
// the pool down: a failed probe only downgrades the state, and the caller's
// query surfaces the real failure.
func (r *Registry) verify(ctx context.Context, orgID string, e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := r.now()

	if now.Sub(e.createdAt) < r.health.GracePeriod {
		return
	}

	// Pools holding live connections are trivially alive.
	if e.pool.AcquiredConns() > 0 {
		e.state = stateVerified
		e.lastChecked = now
		return
	}

	if !e.lastChecked.IsZero() && now.Sub(e.lastChecked) < r.health.Interval {
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx, r.health.ProbeTimeout)
	defer cancel()

	if err := e.pool.Ping(probeCtx); err != nil {
		r.logger.Warnf("tenant pool probe failed for %s: %v", orgID, err)
		e.state = stateUnverified
	} else {
		e.state = stateVerified
	}
	e.lastChecked = now
}

// Evict closes and removes the pool for orgID, if any. The next access
// recreates it.
func (r *Registry) Evict(orgID string) {
	r.mu.Lock()
	e, ok := r.pools[orgID]
	if ok {
		delete(r.pools, orgID)
	}
	r.mu.Unlock()

	if ok {
		e.pool.Close()
	}
}

// CloseAll tears down every pool. Used on process shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	pools := make([]Pool, 0, len(r.pools))
	for _, e := range r.pools {
		pools = append(pools, e.pool)
	}
	r.pools = make(map[string]*entry)
	r.mu.Unlock()

	for _, p := range pools {
		p.Close()
	}
}

// Len reports the number of live pools.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pools)
}
