// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/canonical/compliance-service/internal/types"
)

type ServiceInterface interface {
	Create(ctx context.Context, orgID, actorID string, params CreateParams) (*types.Invitation, string, error)
	Accept(ctx context.Context, token, userID string) (*AcceptResult, error)
	AcceptWithNewAccount(ctx context.Context, token, password string) (*AcceptResult, error)
}

// StorageInterface is the control-plane subset the invitation protocol needs.
type StorageInterface interface {
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)

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

// TenantStoreInterface is the tenant-database subset the protocol needs.
type TenantStoreInterface interface {
	GetInvitationByToken(ctx context.Context, orgID, token string) (*types.TenantInvitation, error)
	CreateInvitation(ctx context.Context, orgID string, invite *types.TenantInvitation) error
	WithTx(ctx context.Context, orgID string, fn func(tx pgx.Tx) error) error
	AcceptInvitationTx(ctx context.Context, tx pgx.Tx, token string, at time.Time) error
	UpsertSiteAssignmentTx(ctx context.Context, tx pgx.Tx, siteID, userID, role string) error
	UpsertProcessAssignmentTx(ctx context.Context, tx pgx.Tx, processID, userID, role string) error
}

// MailerInterface delivers the invitation email. Delivery is a side effect,
// failures must not abort invitation creation.
type MailerInterface interface {
	SendInvitation(ctx context.Context, to, organizationName, link string) error
}
