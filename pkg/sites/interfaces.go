// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sites

import (
	"context"

	"github.com/canonical/compliance-service/internal/types"
)

type ServiceInterface interface {
	ListSites(ctx context.Context, orgID, userID string) ([]*types.Site, error)
	ListProcesses(ctx context.Context, orgID, userID string) ([]*types.Process, error)
}

// StorageInterface is the control-plane subset visibility scoping needs.
type StorageInterface interface {
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetMembership(ctx context.Context, orgID, userID string) (*types.Membership, error)
}

// TenantStoreInterface is the tenant-database subset the listings read from.
type TenantStoreInterface interface {
	ListSites(ctx context.Context, orgID string) ([]*types.Site, error)
	ListSitesForUser(ctx context.Context, orgID, userID string) ([]*types.Site, error)
	ListProcesses(ctx context.Context, orgID string) ([]*types.Process, error)
	ListProcessesForUser(ctx context.Context, orgID, userID string) ([]*types.Process, error)
}
