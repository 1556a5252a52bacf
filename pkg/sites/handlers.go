// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package sites

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tenantdb"
)

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/organizations/{id}/sites", a.listSites)
	mux.Get("/api/v0/organizations/{id}/processes", a.listProcesses)
}

type siteResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type processResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	SiteID *string `json:"site_id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) listSites(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	orgID := chi.URLParam(r, "id")

	sites, err := a.service.ListSites(r.Context(), orgID, userID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	resp := make([]siteResponse, 0, len(sites))
	for _, s := range sites {
		resp = append(resp, siteResponse{ID: s.ID, Name: s.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (a *API) listProcesses(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	orgID := chi.URLParam(r, "id")

	processes, err := a.service.ListProcesses(r.Context(), orgID, userID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	resp := make([]processResponse, 0, len(processes))
	for _, p := range processes {
		resp = append(resp, processResponse{ID: p.ID, Name: p.Name, SiteID: p.SiteID})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "organization not found")
	case errors.Is(err, ErrNotMember):
		writeError(w, http.StatusForbidden, "not a member of this organization")
	case errors.Is(err, tenantdb.ErrNoTenantDatabase):
		a.logger.Errorf("listing request hit an organization without a tenant database: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		a.logger.Errorf("listing request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
