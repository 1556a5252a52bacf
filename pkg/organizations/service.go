// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package organizations serves organization details and owner-side management
// of the permission matrix.
package organizations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/roles"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
)

var (
	// ErrNotMember is returned when the caller has no membership in the
	// organization.
	ErrNotMember = errors.New("not a member of this organization")
	// ErrNotOwner guards the permission matrix: only the owner rewrites it.
	ErrNotOwner = errors.New("only the organization owner can do this")
)

// OrganizationView is the member-facing projection of an organization,
// including the caller's own role.
type OrganizationView struct {
	ID     string
	Name   string
	Role   roles.Role
	Tier   roles.Tier
	Matrix roles.Matrix
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) GetOrganization(ctx context.Context, orgID, userID string) (*OrganizationView, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.GetOrganization")
	defer span.End()

	org, err := s.storage.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}

	role := roles.Owner
	if org.OwnerID != userID {
		membership, err := s.storage.GetMembership(ctx, orgID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNotMember
			}
			return nil, fmt.Errorf("failed to load membership: %w", err)
		}
		role = roles.Normalize(membership.Role)
	}

	matrix, err := roles.ParseMatrix(org.PermissionMatrix)
	if err != nil {
		return nil, fmt.Errorf("failed to parse permission matrix for %s: %w", orgID, err)
	}

	return &OrganizationView{
		ID:     org.ID,
		Name:   org.Name,
		Role:   role,
		Tier:   roles.LeadershipTier(role),
		Matrix: matrix,
	}, nil
}

// UpdatePermissionMatrix replaces the organization's matrix. The stored blob
// is the normalized form, never the caller's raw input.
func (s *Service) UpdatePermissionMatrix(ctx context.Context, orgID, actorID string, matrix roles.Matrix) error {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.UpdatePermissionMatrix")
	defer span.End()

	org, err := s.storage.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return fmt.Errorf("failed to load organization: %w", err)
	}

	if org.OwnerID != actorID {
		return ErrNotOwner
	}

	blob, err := json.Marshal(matrix)
	if err != nil {
		return fmt.Errorf("failed to encode permission matrix: %w", err)
	}

	if err := s.storage.UpdatePermissionMatrix(ctx, orgID, blob); err != nil {
		return fmt.Errorf("failed to store permission matrix: %w", err)
	}

	s.logger.Infof("permission matrix updated for organization %s", orgID)
	return nil
}
