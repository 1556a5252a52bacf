// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/roles"
	"github.com/canonical/compliance-service/internal/storage"
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
	mux.Get("/api/v0/organizations/{id}", a.get)
	mux.Patch("/api/v0/organizations/{id}/permissions", a.updatePermissions)
}

type organizationResponse struct {
	ID     string                     `json:"id"`
	Name   string                     `json:"name"`
	Role   string                     `json:"role"`
	Tier   string                     `json:"tier"`
	Matrix map[string]map[string]bool `json:"permission_matrix"`
}

type updatePermissionsRequest struct {
	Matrix map[string]map[string]bool `json:"permission_matrix"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	view, err := a.service.GetOrganization(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	matrix := make(map[string]map[string]bool, len(view.Matrix))
	for role, actions := range view.Matrix {
		matrix[string(role)] = actions
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(organizationResponse{
		ID:     view.ID,
		Name:   view.Name,
		Role:   string(view.Role),
		Tier:   string(view.Tier),
		Matrix: matrix,
	})
}

func (a *API) updatePermissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req updatePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Matrix == nil {
		writeError(w, http.StatusBadRequest, "permission_matrix is required")
		return
	}

	matrix := make(roles.Matrix, len(req.Matrix))
	for rawRole, actions := range req.Matrix {
		role := roles.Normalize(rawRole)
		if matrix[role] == nil {
			matrix[role] = make(map[string]bool, len(actions))
		}
		for action, allowed := range actions {
			matrix[role][action] = allowed
		}
	}

	if err := a.service.UpdatePermissionMatrix(r.Context(), chi.URLParam(r, "id"), userID, matrix); err != nil {
		a.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "organization not found")
	case errors.Is(err, ErrNotMember):
		writeError(w, http.StatusForbidden, "not a member of this organization")
	case errors.Is(err, ErrNotOwner):
		writeError(w, http.StatusForbidden, "only the organization owner can do this")
	default:
		a.logger.Errorf("organization request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
