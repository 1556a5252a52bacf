// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sites

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tenantdb"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
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

func doGet(t *testing.T, mux *chi.Mux, path, userID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set(identity.HeaderName, userID)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestListSitesHandler(t *testing.T) {
	mux, mockService := newTestAPI(t)

	mockService.EXPECT().ListSites(gomock.Any(), "org-1", "user-1").
		Return([]*types.Site{{ID: "site-1", Name: "Hamburg plant"}}, nil)

	rec := doGet(t, mux, "/api/v0/organizations/org-1/sites", "user-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []siteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "site-1" || resp[0].Name != "Hamburg plant" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestListSitesHandlerEmptyIsJSONArray(t *testing.T) {
	mux, mockService := newTestAPI(t)

	mockService.EXPECT().ListSites(gomock.Any(), "org-1", "user-1").Return(nil, nil)

	rec := doGet(t, mux, "/api/v0/organizations/org-1/sites", "user-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestListProcessesHandler(t *testing.T) {
	mux, mockService := newTestAPI(t)

	siteID := "site-1"
	mockService.EXPECT().ListProcesses(gomock.Any(), "org-1", "user-1").
		Return([]*types.Process{{ID: "proc-1", Name: "Incoming inspection", SiteID: &siteID}}, nil)

	rec := doGet(t, mux, "/api/v0/organizations/org-1/processes", "user-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []processResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].SiteID == nil || *resp[0].SiteID != siteID {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestListHandlersRequireIdentity(t *testing.T) {
	mux, _ := newTestAPI(t)

	rec := doGet(t, mux, "/api/v0/organizations/org-1/sites", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestListSitesHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown organization", err: fmt.Errorf("failed to load organization: %w", storage.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "non member", err: ErrNotMember, wantStatus: http.StatusForbidden},
		{name: "no tenant database", err: tenantdb.ErrNoTenantDatabase, wantStatus: http.StatusInternalServerError},
		{name: "unexpected", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, mockService := newTestAPI(t)
			mockService.EXPECT().ListSites(gomock.Any(), "org-1", "user-1").Return(nil, tt.err)

			rec := doGet(t, mux, "/api/v0/organizations/org-1/sites", "user-1")
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
