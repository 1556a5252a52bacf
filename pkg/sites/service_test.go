// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sites

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package sites -destination ./mock_sites.go -source=./interfaces.go

const (
	testOrgID   = "org-1"
	testOwnerID = "user-owner"
	testUserID  = "user-1"
)

func newTestService(t *testing.T) (*Service, *MockStorageInterface, *MockTenantStoreInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockStorage := NewMockStorageInterface(ctrl)
	mockTenants := NewMockTenantStoreInterface(ctrl)

	svc := NewService(
		mockStorage,
		mockTenants,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor(),
		logging.NewNoopLogger(),
	)

	return svc, mockStorage, mockTenants
}

func testOrg() *types.Organization {
	return &types.Organization{ID: testOrgID, Name: "Acme Compliance", OwnerID: testOwnerID}
}

func TestListSitesScoping(t *testing.T) {
	allSites := []*types.Site{{ID: "site-1"}, {ID: "site-2"}, {ID: "site-3"}}
	assigned := []*types.Site{{ID: "site-2"}}

	tests := []struct {
		name      string
		userID    string
		role      string
		wantAll   bool
		wantCount int
	}{
		{name: "owner sees everything", userID: testOwnerID, wantAll: true, wantCount: 3},
		{name: "admin sees everything", userID: testUserID, role: "admin", wantAll: true, wantCount: 3},
		{name: "manager sees assigned only", userID: testUserID, role: "manager", wantCount: 1},
		{name: "member sees assigned only", userID: testUserID, role: "member", wantCount: 1},
		{name: "legacy label scopes by normalized role", userID: testUserID, role: "Team_Lead", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockStorage, mockTenants := newTestService(t)
			ctx := context.Background()

			mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)
			if tt.userID != testOwnerID {
				mockStorage.EXPECT().GetMembership(gomock.Any(), testOrgID, tt.userID).
					Return(&types.Membership{Role: tt.role}, nil)
			}

			if tt.wantAll {
				mockTenants.EXPECT().ListSites(gomock.Any(), testOrgID).Return(allSites, nil)
			} else {
				mockTenants.EXPECT().ListSitesForUser(gomock.Any(), testOrgID, tt.userID).Return(assigned, nil)
			}

			sites, err := svc.ListSites(ctx, testOrgID, tt.userID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(sites) != tt.wantCount {
				t.Errorf("expected %d sites, got %d", tt.wantCount, len(sites))
			}
		})
	}
}

func TestListSitesNonMember(t *testing.T) {
	svc, mockStorage, _ := newTestService(t)
	ctx := context.Background()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)
	mockStorage.EXPECT().GetMembership(gomock.Any(), testOrgID, "user-stranger").Return(nil, storage.ErrNotFound)

	if _, err := svc.ListSites(ctx, testOrgID, "user-stranger"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestListProcessesScoping(t *testing.T) {
	all := []*types.Process{{ID: "proc-1"}, {ID: "proc-2"}}
	assigned := []*types.Process{{ID: "proc-2"}}

	t.Run("top tier sees everything", func(t *testing.T) {
		svc, mockStorage, mockTenants := newTestService(t)
		ctx := context.Background()

		mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)
		mockStorage.EXPECT().GetMembership(gomock.Any(), testOrgID, testUserID).
			Return(&types.Membership{Role: "admin"}, nil)
		mockTenants.EXPECT().ListProcesses(gomock.Any(), testOrgID).Return(all, nil)

		processes, err := svc.ListProcesses(ctx, testOrgID, testUserID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(processes) != 2 {
			t.Errorf("expected 2 processes, got %d", len(processes))
		}
	})

	t.Run("support tier sees assigned only", func(t *testing.T) {
		svc, mockStorage, mockTenants := newTestService(t)
		ctx := context.Background()

		mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(testOrg(), nil)
		mockStorage.EXPECT().GetMembership(gomock.Any(), testOrgID, testUserID).
			Return(&types.Membership{Role: "member"}, nil)
		mockTenants.EXPECT().ListProcessesForUser(gomock.Any(), testOrgID, testUserID).Return(assigned, nil)

		processes, err := svc.ListProcesses(ctx, testOrgID, testUserID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(processes) != 1 || processes[0].ID != "proc-2" {
			t.Errorf("unexpected processes %+v", processes)
		}
	})
}

func TestListSitesUnknownOrganization(t *testing.T) {
	svc, mockStorage, _ := newTestService(t)
	ctx := context.Background()

	mockStorage.EXPECT().GetOrganizationByID(gomock.Any(), testOrgID).Return(nil, storage.ErrNotFound)

	if _, err := svc.ListSites(ctx, testOrgID, testUserID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
