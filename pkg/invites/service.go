// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/roles"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

const tokenBytes = 32

type CreateParams struct {
	Email     string
	Role      string
	SiteID    *string
	ProcessID *string
}

type AcceptResult struct {
	OrganizationID   string
	OrganizationName string
}

var _ ServiceInterface = (*Service)(nil)

// Service implements the invitation protocol across the control-plane store
// and the tenant databases. There is no two-phase commit between the two, the
// protocol orders writes so the tenant transaction is the decisive one and
// relies on unique keys for idempotency under races.
type Service struct {
	storage StorageInterface
	tenants TenantStoreInterface
	mailer  MailerInterface

	lifetime time.Duration
	baseURL  string

	// now is replaceable in tests
	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tenants TenantStoreInterface,
	mailer MailerInterface,
	lifetime time.Duration,
	baseURL string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		tenants:  tenants,
		mailer:   mailer,
		lifetime: lifetime,
		baseURL:  baseURL,
		now:      time.Now,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// Create issues a new invitation: control-plane record, tenant mirror and the
// email side effect. The actor needs the manage_teams permission unless they
// are the organization owner.
func (s *Service) Create(ctx context.Context, orgID, actorID string, params CreateParams) (*types.Invitation, string, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.Create")
	defer span.End()

	org, err := s.storage.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load organization: %w", err)
	}

	if err := s.checkManageTeams(ctx, org, actorID); err != nil {
		return nil, "", err
	}

	token, err := newToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate invitation token: %w", err)
	}

	role := roles.Normalize(params.Role)

	invite, err := s.storage.CreateInvitation(ctx, &types.Invitation{
		Token:          token,
		OrganizationID: orgID,
		Email:          params.Email,
		Role:           string(role),
		SiteID:         params.SiteID,
		ProcessID:      params.ProcessID,
		InvitedBy:      actorID,
		ExpiresAt:      s.now().Add(s.lifetime),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create invitation: %w", err)
	}

	err = s.tenants.CreateInvitation(ctx, orgID, &types.TenantInvitation{
		Token:     token,
		Role:      string(role),
		SiteID:    params.SiteID,
		ProcessID: params.ProcessID,
	})
	if err != nil {
		s.logger.Errorf("failed to mirror invitation %s into tenant %s: %v", invite.ID, orgID, err)
		return nil, "", fmt.Errorf("%w: %v", ErrTenantUnavailable, err)
	}

	link := fmt.Sprintf("%s/invites/%s", strings.TrimRight(s.baseURL, "/"), token)

	if err := s.mailer.SendInvitation(ctx, invite.Email, org.Name, link); err != nil {
		// The invitation is live, the link can still be shared manually.
		s.logger.Errorf("failed to send invitation mail to %s: %v", invite.Email, err)
	}

	return invite, link, nil
}

func (s *Service) checkManageTeams(ctx context.Context, org *types.Organization, actorID string) error {
	if org.OwnerID == actorID {
		return nil
	}

	membership, err := s.storage.GetMembership(ctx, org.ID, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPermissionDenied
		}
		return fmt.Errorf("failed to load membership: %w", err)
	}

	matrix, err := roles.ParseMatrix(org.PermissionMatrix)
	if err != nil {
		return fmt.Errorf("failed to parse permission matrix for %s: %w", org.ID, err)
	}

	if !roles.HasPermission(matrix, roles.Normalize(membership.Role), roles.ActionManageTeams, false) {
		return ErrPermissionDenied
	}

	return nil
}

// Accept runs the authenticated acceptance path for the given token.
func (s *Service) Accept(ctx context.Context, token, userID string) (*AcceptResult, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.Accept")
	defer span.End()

	invite, err := s.validateInvitation(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !strings.EqualFold(user.Email, invite.Email) {
		return nil, ErrEmailMismatch
	}

	return s.accept(ctx, invite, user)
}

// AcceptWithNewAccount creates a brand-new account for the invitee and then
// accepts. It refuses to touch existing accounts: a token must never be a way
// to claim someone else's login.
func (s *Service) AcceptWithNewAccount(ctx context.Context, token, password string) (*AcceptResult, error) {
	ctx, span := s.tracer.Start(ctx, "invites.Service.AcceptWithNewAccount")
	defer span.End()

	invite, err := s.validateInvitation(ctx, token)
	if err != nil {
		return nil, err
	}

	if _, err := s.storage.GetUserByEmail(ctx, invite.Email); err == nil {
		return nil, ErrAccountExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.storage.CreateUser(ctx, invite.Email, string(hash))
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// Lost a race with a concurrent signup for the same email.
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.accept(ctx, invite, user)
}

// validateInvitation covers existence, terminal states and expiry. Expiry is
// recorded on the control-plane record before returning.
func (s *Service) validateInvitation(ctx context.Context, token string) (*types.Invitation, error) {
	invite, err := s.storage.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to look up invitation: %w", err)
	}

	if invite.Status != types.InvitationPending {
		return nil, fmt.Errorf("%w: %s", ErrInvitationAlreadyResolved, invite.Status)
	}

	if s.now().After(invite.ExpiresAt) {
		if err := s.storage.MarkInvitationExpired(ctx, invite.ID); err != nil {
			s.logger.Errorf("failed to record expiry of invitation %s: %v", invite.ID, err)
		}
		return nil, ErrInvitationExpired
	}

	return invite, nil
}

func (s *Service) accept(ctx context.Context, invite *types.Invitation, user *types.User) (*AcceptResult, error) {
	org, err := s.storage.GetOrganizationByID(ctx, invite.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}

	mirror, err := s.tenants.GetInvitationByToken(ctx, org.ID, invite.Token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Errorf("tenant invitation missing for control-plane invitation %s in organization %s", invite.ID, org.ID)
			return nil, ErrTenantInvitationMissing
		}
		return nil, fmt.Errorf("%w: %v", ErrTenantUnavailable, err)
	}

	// Self-healing for the crash window between the tenant commit and the
	// control-plane update: if the mirror already reached accepted, repair
	// the control-plane record and report the replay.
	if mirror.Status == types.InvitationAccepted {
		if err := s.storage.MarkInvitationAccepted(ctx, invite.ID, s.now()); err != nil {
			s.logger.Errorf("failed to repair control-plane invitation %s: %v", invite.ID, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvitationAlreadyResolved, types.InvitationAccepted)
	}

	role := roles.Normalize(invite.Role)
	tier := roles.LeadershipTier(role)

	if err := s.ensureMembership(ctx, org.ID, user.ID, role, tier); err != nil {
		return nil, err
	}

	now := s.now()

	// The tenant mirror is the source of truth for site/process targeting.
	err = s.tenants.WithTx(ctx, org.ID, func(tx pgx.Tx) error {
		if mirror.SiteID != nil {
			if err := s.tenants.UpsertSiteAssignmentTx(ctx, tx, *mirror.SiteID, user.ID, string(role)); err != nil {
				return err
			}
		}
		if mirror.ProcessID != nil {
			if err := s.tenants.UpsertProcessAssignmentTx(ctx, tx, *mirror.ProcessID, user.ID, string(role)); err != nil {
				return err
			}
		}
		return s.tenants.AcceptInvitationTx(ctx, tx, invite.Token, now)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTenantUnavailable, err)
	}

	// Only after the tenant transaction committed. A crash here leaves the
	// mirror accepted and the control plane pending, healed on next read.
	if err := s.storage.MarkInvitationAccepted(ctx, invite.ID, now); err != nil {
		s.logger.Errorf("failed to mark invitation %s accepted: %v", invite.ID, err)
		return nil, err
	}

	return &AcceptResult{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
	}, nil
}

// ensureMembership creates the membership or upgrades its role. Downgrades
// never happen, and duplicate-key races collapse into the upgrade path.
func (s *Service) ensureMembership(ctx context.Context, orgID, userID string, role roles.Role, tier roles.Tier) error {
	current, err := s.storage.GetMembership(ctx, orgID, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load membership: %w", err)
	}

	if current == nil {
		_, err = s.storage.CreateMembership(ctx, &types.Membership{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           string(role),
			Tier:           string(tier),
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrDuplicateKey) {
			return fmt.Errorf("failed to create membership: %w", err)
		}

		// Concurrent acceptance created it first. Fall through to upgrade.
		current, err = s.storage.GetMembership(ctx, orgID, userID)
		if err != nil {
			return fmt.Errorf("failed to reload membership: %w", err)
		}
	}

	if roles.IsHigher(role, roles.Normalize(current.Role)) {
		if err := s.storage.UpdateMembershipRole(ctx, orgID, userID, string(role), string(tier)); err != nil {
			return fmt.Errorf("failed to upgrade membership: %w", err)
		}
	}

	return nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
