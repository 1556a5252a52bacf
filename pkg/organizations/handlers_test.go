// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/roles"
	"github.com/canonical/compliance-service/internal/tracing"
)

func newTestAPI(t *testing.T) (*chi.Mux, *MockServiceInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockServiceInterface(ctrl)

	mux := chi.NewMux()
	mux.Use(identity.NewMiddleware(tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger()).HTTPMiddleware)
	NewAPI(mockService, logging.NewNoopLogger()).RegisterEndpoints(mux)

	return mux, mockService
}

func TestGetOrganizationHandler(t *testing.T) {
	mux, mockService := newTestAPI(t)

	mockService.EXPECT().GetOrganization(gomock.Any(), "org-1", "user-1").Return(&OrganizationView{
		ID:   "org-1",
		Name: "Acme Compliance",
		Role: roles.Manager,
		Tier: roles.TierOperational,
		Matrix: roles.Matrix{
			roles.Manager: {roles.ActionManageIssues: true},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/organizations/org-1", nil)
	req.Header.Set(identity.HeaderName, "user-1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp organizationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Role != "manager" || resp.Tier != "operational" {
		t.Errorf("unexpected role/tier %s/%s", resp.Role, resp.Tier)
	}
	if !resp.Matrix["manager"]["manage_issues"] {
		t.Errorf("matrix missing from response: %+v", resp.Matrix)
	}
}

func TestUpdatePermissionsHandler(t *testing.T) {
	mux, mockService := newTestAPI(t)

	mockService.EXPECT().UpdatePermissionMatrix(gomock.Any(), "org-1", "user-owner", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, matrix roles.Matrix) error {
			// Legacy role labels normalize on the way in.
			if !matrix[roles.Manager][roles.ActionManageIssues] {
				t.Errorf("expected team_lead to normalize to manager, got %+v", matrix)
			}
			return nil
		},
	)

	body := `{"permission_matrix":{"team_lead":{"manage_issues":true}}}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v0/organizations/org-1/permissions", strings.NewReader(body))
	req.Header.Set(identity.HeaderName, "user-owner")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdatePermissionsHandlerRejections(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       string
		err        error
		wantStatus int
	}{
		{name: "unauthenticated", body: `{"permission_matrix":{}}`, wantStatus: http.StatusUnauthorized},
		{name: "malformed body", userID: "user-owner", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "missing matrix", userID: "user-owner", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "not owner", userID: "user-1", body: `{"permission_matrix":{}}`, err: ErrNotOwner, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, mockService := newTestAPI(t)
			if tt.err != nil {
				mockService.EXPECT().UpdatePermissionMatrix(gomock.Any(), "org-1", tt.userID, gomock.Any()).Return(tt.err)
			}

			req := httptest.NewRequest(http.MethodPatch, "/api/v0/organizations/org-1/permissions", strings.NewReader(tt.body))
			if tt.userID != "" {
				req.Header.Set(identity.HeaderName, tt.userID)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
