// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"

	"github.com/canonical/compliance-service/internal/roles"
	"github.com/canonical/compliance-service/internal/types"
)

type ServiceInterface interface {
	GetOrganization(ctx context.Context, orgID, userID string) (*OrganizationView, error)
	UpdatePermissionMatrix(ctx context.Context, orgID, actorID string, matrix roles.Matrix) error
}

// StorageInterface is the control-plane subset organization management needs.
type StorageInterface interface {
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetMembership(ctx context.Context, orgID, userID string) (*types.Membership, error)
	UpdatePermissionMatrix(ctx context.Context, orgID string, matrix []byte) error
}
