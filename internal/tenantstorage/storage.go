// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tenantdb"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

var _ TenantStorageInterface = (*TenantStorage)(nil)

// psql builds statements with dollar placeholders. Tenant-side statements are
// built with squirrel and executed on pgx directly, there is no database/sql
// runner per tenant.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type TenantStorage struct {
	pools tenantdb.ManagerInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewTenantStorage(pools tenantdb.ManagerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *TenantStorage {
	s := new(TenantStorage)

	s.pools = pools

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *TenantStorage) GetInvitationByToken(ctx context.Context, orgID, token string) (*types.TenantInvitation, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstorage.GetInvitationByToken")
	defer span.End()

	query, args, err := psql.
		Select("token", "role", "site_id", "process_id", "status", "created_at", "accepted_at").
		From("invitations").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	pool, err := s.pools.Acquire(ctx, orgID)
	if err != nil {
		return nil, err
	}

	var i types.TenantInvitation
	err = pool.QueryRow(ctx, query, args...).
		Scan(&i.Token, &i.Role, &i.SiteID, &i.ProcessID, &i.Status, &i.CreatedAt, &i.AcceptedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant invitation: %w", err)
	}

	return &i, nil
}

func (s *TenantStorage) CreateInvitation(ctx context.Context, orgID string, invite *types.TenantInvitation) error {
	ctx, span := s.tracer.Start(ctx, "tenantstorage.CreateInvitation")
	defer span.End()

	query, args, err := psql.
		Insert("invitations").
		Columns("token", "role", "site_id", "process_id", "status").
		Values(invite.Token, invite.Role, invite.SiteID, invite.ProcessID, types.InvitationPending).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	pool, err := s.pools.Acquire(ctx, orgID)
	if err != nil {
		return err
	}

	if _, err := pool.Exec(ctx, query, args...); err != nil {
		if storage.IsDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert tenant invitation: %w", err)
	}

	return nil
}

// WithTx delegates to the pool manager: one tenant connection, begin/commit/
// rollback around fn.
func (s *TenantStorage) WithTx(ctx context.Context, orgID string, fn func(tx pgx.Tx) error) error {
	return s.pools.WithTx(ctx, orgID, fn)
}

// AcceptInvitationTx marks the tenant mirror accepted. The status guard keeps
// the transition one-way under concurrent acceptance.
func (s *TenantStorage) AcceptInvitationTx(ctx context.Context, tx pgx.Tx, token string, at time.Time) error {
	query, args, err := psql.
		Update("invitations").
		Set("status", types.InvitationAccepted).
		Set("accepted_at", at).
		Where(sq.Eq{"token": token, "status": types.InvitationPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to accept tenant invitation: %w", err)
	}

	return nil
}

// UpsertSiteAssignmentTx is idempotent on the (site, user) natural key, so a
// racing duplicate acceptance converges instead of failing.
func (s *TenantStorage) UpsertSiteAssignmentTx(ctx context.Context, tx pgx.Tx, siteID, userID, role string) error {
	query, args, err := psql.
		Insert("site_assignments").
		Columns("site_id", "user_id", "role").
		Values(siteID, userID, role).
		Suffix("ON CONFLICT (site_id, user_id) DO UPDATE SET role = EXCLUDED.role").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert site assignment: %w", err)
	}

	return nil
}

// UpsertProcessAssignmentTx is idempotent on the (process, user) natural key.
func (s *TenantStorage) UpsertProcessAssignmentTx(ctx context.Context, tx pgx.Tx, processID, userID, role string) error {
	query, args, err := psql.
		Insert("process_assignments").
		Columns("process_id", "user_id", "role").
		Values(processID, userID, role).
		Suffix("ON CONFLICT (process_id, user_id) DO UPDATE SET role = EXCLUDED.role").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert process assignment: %w", err)
	}

	return nil
}

func (s *TenantStorage) ListSites(ctx context.Context, orgID string) ([]*types.Site, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstorage.ListSites")
	defer span.End()

	query, args, err := psql.
		Select("id", "name", "created_at").
		From("sites").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return s.querySites(ctx, orgID, query, args)
}

func (s *TenantStorage) ListSitesForUser(ctx context.Context, orgID, userID string) ([]*types.Site, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstorage.ListSitesForUser")
	defer span.End()

	query, args, err := psql.
		Select("s.id", "s.name", "s.created_at").
		From("sites s").
		Join("site_assignments sa ON s.id = sa.site_id").
		Where(sq.Eq{"sa.user_id": userID}).
		OrderBy("s.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return s.querySites(ctx, orgID, query, args)
}

func (s *TenantStorage) querySites(ctx context.Context, orgID, query string, args []any) ([]*types.Site, error) {
	rows, err := s.pools.Query(ctx, orgID, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []*types.Site
	for rows.Next() {
		var site types.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, &site)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sites, nil
}

func (s *TenantStorage) ListProcesses(ctx context.Context, orgID string) ([]*types.Process, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstorage.ListProcesses")
	defer span.End()

	query, args, err := psql.
		Select("id", "name", "site_id", "created_at").
		From("processes").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return s.queryProcesses(ctx, orgID, query, args)
}

func (s *TenantStorage) ListProcessesForUser(ctx context.Context, orgID, userID string) ([]*types.Process, error) {
	ctx, span := s.tracer.Start(ctx, "tenantstorage.ListProcessesForUser")
	defer span.End()

	query, args, err := psql.
		Select("p.id", "p.name", "p.site_id", "p.created_at").
		From("processes p").
		Join("process_assignments pa ON p.id = pa.process_id").
		Where(sq.Eq{"pa.user_id": userID}).
		OrderBy("p.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return s.queryProcesses(ctx, orgID, query, args)
}

func (s *TenantStorage) queryProcesses(ctx context.Context, orgID, query string, args []any) ([]*types.Process, error) {
	rows, err := s.pools.Query(ctx, orgID, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	defer rows.Close()

	var processes []*types.Process
	for rows.Next() {
		var p types.Process
		if err := rows.Scan(&p.ID, &p.Name, &p.SiteID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan process: %w", err)
		}
		processes = append(processes, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return processes, nil
}
