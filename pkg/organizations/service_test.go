// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/roles"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_organizations.go -source=./interfaces.go

const (
	testOrgID   = "org-1"
	testOwnerID = "user-owner"
	testUserID  = "user-1"
)

func newTestService(t *testing.T) (*Service, *MockStorageInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStorage := NewMockStorageInterface(ctrl)

	svc := NewService(
		mockStorage,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewNoopLogger(),
	)

	return svc, mockStorage
}

func testOrg() *types.Organization {
	return &types.Organization{
		ID:               testOrgID,
		Name:             "Acme Compliance",
		OwnerID:          testOwnerID,
		PermissionMatrix: []byte(`{"admin":{"manage_teams":true}}`),
	}
}

func TestGetOrganizationAsOwner(t *testing.T) {
	svc, mockStorage := newTestService(t)
	ctx := context.Background()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)

	view, err := svc.GetOrganization(ctx, testOrgID, testOwnerID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if view.Role != roles.Owner || view.Tier != roles.TierTop {
		t.Errorf("expected owner/top, got %s/%s", view.Role, view.Tier)
	}
	if !view.Matrix[roles.Admin][roles.ActionManageTeams] {
		t.Errorf("expected parsed matrix to allow admin manage_teams")
	}
}

func TestGetOrganizationAsMember(t *testing.T) {
	svc, mockStorage := newTestService(t)
	ctx := context.Background()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)
	mockStorage.EXPECT().GetMembership(gomock.Any(), testOrgID, testUserID).
		Return(&types.Membership{Role: "supervisor"}, nil)

	view, err := svc.GetOrganization(ctx, testOrgID, testUserID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if view.Role != roles.Manager || view.Tier != roles.TierOperational {
		t.Errorf("expected manager/operational, got %s/%s", view.Role, view.Tier)
	}
}

func TestGetOrganizationNonMember(t *testing.T) {
	svc, mockStorage := newTestService(t)
	ctx := context.Background()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)
	mockStorage.EXPECT().GetMembership(gomock.Any(), testOrgID, "user-stranger").Return(nil, storage.ErrNotFound)

	if _, err := svc.GetOrganization(ctx, testOrgID, "user-stranger"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestUpdatePermissionMatrixOwnerOnly(t *testing.T) {
	svc, mockStorage := newTestService(t)
	ctx := context.Background()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)

	err := svc.UpdatePermissionMatrix(ctx, testOrgID, testUserID, roles.Matrix{})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestUpdatePermissionMatrixStoresNormalizedForm(t *testing.T) {
	svc, mockStorage := newTestService(t)
	ctx := context.Background()

	matrix := roles.Matrix{
		roles.Manager: {roles.ActionManageIssues: true, roles.ActionViewReports: false},
	}

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)
	mockStorage.EXPECT().UpdatePermissionMatrix(gomock.Any(), testOrgID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, blob []byte) error {
			parsed, err := roles.ParseMatrix(blob)
			if err != nil {
				t.Fatalf("stored blob does not parse: %v", err)
			}
			if !parsed[roles.Manager][roles.ActionManageIssues] {
				t.Errorf("stored matrix lost manager manage_issues")
			}
			var raw map[string]json.RawMessage
			if err := json.Unmarshal(blob, &raw); err != nil {
				t.Fatalf("stored blob is not a JSON object: %v", err)
			}
			return nil
		},
	)

	if err := svc.UpdatePermissionMatrix(ctx, testOrgID, testOwnerID, matrix); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
