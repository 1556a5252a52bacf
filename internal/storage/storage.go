// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/compliance-service/internal/db"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

// Storage is the control-plane store: organizations, users, memberships and
// invitation records live in the shared master database.
type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganizationByID")
	defer span.End()

	var o types.Organization
	err := s.db.Statement(ctx).
		Select("id", "name", "owner_id", "tenant_dsn", "permission_matrix", "created_at").
		From("organizations").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&o.ID, &o.Name, &o.OwnerID, &o.TenantDSN, &o.PermissionMatrix, &o.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return &o, nil
}

// ResolveTenantDSN returns the connection descriptor for the organization's
// tenant database. Implements the resolver the tenant pool manager consumes.
func (s *Storage) ResolveTenantDSN(ctx context.Context, orgID string) (string, error) {
	org, err := s.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return "", err
	}
	return org.TenantDSN, nil
}

func (s *Storage) UpdatePermissionMatrix(ctx context.Context, orgID string, matrix []byte) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdatePermissionMatrix")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("organizations").
		Set("permission_matrix", matrix).
		Where(sq.Eq{"id": orgID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update permission matrix: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"lower(email)": strings.ToLower(email)})
}

func (s *Storage) getUser(ctx context.Context, pred sq.Eq) (*types.User, error) {
	var u types.User
	err := s.db.Statement(ctx).
		Select("id", "email", "password_hash", "created_at").
		From("users").
		Where(pred).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (s *Storage) CreateUser(ctx context.Context, email, passwordHash string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	var u types.User
	err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "email", "password_hash").
		Values(id.String(), strings.ToLower(email), passwordHash).
		Suffix("RETURNING id, email, password_hash, created_at").
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &u, nil
}

func (s *Storage) GetMembership(ctx context.Context, orgID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	var m types.Membership
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "user_id", "role", "tier", "job_title", "created_at").
		From("memberships").
		Where(sq.Eq{"organization_id": orgID, "user_id": userID}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.Tier, &m.JobTitle, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &m, nil
}

func (s *Storage) CreateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMembership")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	var created types.Membership
	err = s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "organization_id", "user_id", "role", "tier", "job_title").
		Values(id.String(), m.OrganizationID, m.UserID, m.Role, m.Tier, m.JobTitle).
		Suffix("RETURNING id, organization_id, user_id, role, tier, job_title, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.OrganizationID, &created.UserID, &created.Role, &created.Tier, &created.JobTitle, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert membership: %w", err)
	}

	return &created, nil
}

func (s *Storage) UpdateMembershipRole(ctx context.Context, orgID, userID, role, tier string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMembershipRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("role", role).
		Set("tier", tier).
		Where(sq.Eq{"organization_id": orgID, "user_id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByToken")
	defer span.End()

	var i types.Invitation
	err := s.db.Statement(ctx).
		Select("id", "token", "organization_id", "email", "role", "site_id", "process_id",
			"status", "invited_by", "expires_at", "created_at", "accepted_at").
		From("invitations").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx).
		Scan(&i.ID, &i.Token, &i.OrganizationID, &i.Email, &i.Role, &i.SiteID, &i.ProcessID,
			&i.Status, &i.InvitedBy, &i.ExpiresAt, &i.CreatedAt, &i.AcceptedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &i, nil
}

func (s *Storage) CreateInvitation(ctx context.Context, invite *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation ID: %w", err)
	}

	var created types.Invitation
	err = s.db.Statement(ctx).
		Insert("invitations").
		Columns("id", "token", "organization_id", "email", "role", "site_id", "process_id",
			"status", "invited_by", "expires_at").
		Values(id.String(), invite.Token, invite.OrganizationID, strings.ToLower(invite.Email),
			invite.Role, invite.SiteID, invite.ProcessID, types.InvitationPending,
			invite.InvitedBy, invite.ExpiresAt).
		Suffix("RETURNING id, token, organization_id, email, role, site_id, process_id, " +
			"status, invited_by, expires_at, created_at, accepted_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Token, &created.OrganizationID, &created.Email, &created.Role,
			&created.SiteID, &created.ProcessID, &created.Status, &created.InvitedBy,
			&created.ExpiresAt, &created.CreatedAt, &created.AcceptedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert invitation: %w", err)
	}

	return &created, nil
}

// MarkInvitationExpired transitions a pending invitation to expired.
// Guarding on the current status keeps terminal states terminal.
func (s *Storage) MarkInvitationExpired(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkInvitationExpired")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", types.InvitationExpired).
		Where(sq.Eq{"id": id, "status": types.InvitationPending}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to expire invitation: %w", err)
	}

	return nil
}

// MarkInvitationAccepted transitions a pending invitation to accepted.
func (s *Storage) MarkInvitationAccepted(ctx context.Context, id string, at time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkInvitationAccepted")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", types.InvitationAccepted).
		Set("accepted_at", at).
		Where(sq.Eq{"id": id, "status": types.InvitationPending}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	return nil
}
