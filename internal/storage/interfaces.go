// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/compliance-service/internal/types"
)

type StorageInterface interface {
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	ResolveTenantDSN(ctx context.Context, orgID string) (string, error)
	UpdatePermissionMatrix(ctx context.Context, orgID string, matrix []byte) error

	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	CreateUser(ctx context.Context, email, passwordHash string) (*types.User, error)

	GetMembership(ctx context.Context, orgID, userID string) (*types.Membership, error)
	CreateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error)
	UpdateMembershipRole(ctx context.Context, orgID, userID, role, tier string) error

	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	CreateInvitation(ctx context.Context, invite *types.Invitation) (*types.Invitation, error)
	MarkInvitationExpired(ctx context.Context, id string) error
	MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error
}
