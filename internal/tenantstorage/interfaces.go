// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenantstorage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/canonical/compliance-service/internal/types"
)

// TenantStorageInterface is the tenant-database counterpart of the
// control-plane storage. Every call is scoped to one organization's isolated
// database through the pool manager.
type TenantStorageInterface interface {
	GetInvitationByToken(ctx context.Context, orgID, token string) (*types.TenantInvitation, error)
	CreateInvitation(ctx context.Context, orgID string, invite *types.TenantInvitation) error

	WithTx(ctx context.Context, orgID string, fn func(tx pgx.Tx) error) error
	AcceptInvitationTx(ctx context.Context, tx pgx.Tx, token string, at time.Time) error
	UpsertSiteAssignmentTx(ctx context.Context, tx pgx.Tx, siteID, userID, role string) error
	UpsertProcessAssignmentTx(ctx context.Context, tx pgx.Tx, processID, userID, role string) error

	ListSites(ctx context.Context, orgID string) ([]*types.Site, error)
	ListSitesForUser(ctx context.Context, orgID, userID string) ([]*types.Site, error)
	ListProcesses(ctx context.Context, orgID string) ([]*types.Process, error)
	ListProcessesForUser(ctx context.Context, orgID, userID string) ([]*types.Process, error)
}
