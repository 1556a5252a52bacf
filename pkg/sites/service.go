// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package sites serves the tier-scoped site and process listings. Top-tier
// members see the organization's full inventory, everyone else only what they
// are assigned to.
package sites

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/roles"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

// ErrNotMember is returned when the caller has no membership in the
// organization.
var ErrNotMember = errors.New("not a member of this organization")

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	tenants TenantStoreInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tenants TenantStoreInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tenants: tenants,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) ListSites(ctx context.Context, orgID, userID string) ([]*types.Site, error) {
	ctx, span := s.tracer.Start(ctx, "sites.Service.ListSites")
	defer span.End()

	all, err := s.seesEverything(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}

	if all {
		return s.tenants.ListSites(ctx, orgID)
	}
	return s.tenants.ListSitesForUser(ctx, orgID, userID)
}

func (s *Service) ListProcesses(ctx context.Context, orgID, userID string) ([]*types.Process, error) {
	ctx, span := s.tracer.Start(ctx, "sites.Service.ListProcesses")
	defer span.End()

	all, err := s.seesEverything(ctx, orgID, userID)
	if err != nil {
		return nil, err
	}

	if all {
		return s.tenants.ListProcesses(ctx, orgID)
	}
	return s.tenants.ListProcessesForUser(ctx, orgID, userID)
}

// seesEverything resolves the caller's visibility scope. The tier is derived
// from the stored role, not read from the membership row, so stale tier data
// can never widen access.
func (s *Service) seesEverything(ctx context.Context, orgID, userID string) (bool, error) {
	org, err := s.storage.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return false, fmt.Errorf("failed to load organization: %w", err)
	}

	if org.OwnerID == userID {
		return true, nil
	}

	membership, err := s.storage.GetMembership(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, ErrNotMember
		}
		return false, fmt.Errorf("failed to load membership: %w", err)
	}

	role := roles.Normalize(membership.Role)
	return roles.LeadershipTier(role) == roles.TierTop, nil
}
