// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate
	logger   logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/invites", a.create)
	mux.Post("/api/v0/invites/accept", a.accept)
	mux.Post("/api/v0/invites/accept-with-password", a.acceptWithPassword)
}

type createInviteRequest struct {
	OrganizationID string  `json:"organization_id" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Role           string  `json:"role" validate:"required"`
	SiteID         *string `json:"site_id"`
	ProcessID      *string `json:"process_id"`
}

type createInviteResponse struct {
	Token string `json:"token"`
	Link  string `json:"link"`
}

type acceptInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

type acceptWithPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type acceptInviteResponse struct {
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := identity.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req createInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	invite, link, err := a.service.Create(r.Context(), req.OrganizationID, actorID, CreateParams{
		Email:     req.Email,
		Role:      req.Role,
		SiteID:    req.SiteID,
		ProcessID: req.ProcessID,
	})
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createInviteResponse{
		Token: invite.Token,
		Link:  link,
	})
}

func (a *API) accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req acceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.service.Accept(r.Context(), req.Token, userID)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(acceptInviteResponse{
		OrganizationID:   result.OrganizationID,
		OrganizationName: result.OrganizationName,
	})
}

func (a *API) acceptWithPassword(w http.ResponseWriter, r *http.Request) {
	var req acceptWithPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.service.AcceptWithNewAccount(r.Context(), req.Token, req.Password)
	if err != nil {
		a.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(acceptInviteResponse{
		OrganizationID:   result.OrganizationID,
		OrganizationName: result.OrganizationName,
	})
}

// writeServiceError maps the protocol error taxonomy onto HTTP statuses.
func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvitationNotFound):
		writeError(w, http.StatusNotFound, "invitation not found")
	case errors.Is(err, ErrInvitationAlreadyResolved):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvitationExpired):
		writeError(w, http.StatusBadRequest, "invitation expired")
	case errors.Is(err, ErrEmailMismatch):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrAccountExists):
		writeError(w, http.StatusForbidden, "account already exists, accept the invitation while signed in")
	case errors.Is(err, ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "permission denied")
	case errors.Is(err, ErrTenantInvitationMissing):
		a.logger.Errorf("invitation data inconsistency: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	case errors.Is(err, ErrTenantUnavailable):
		writeError(w, http.StatusServiceUnavailable, "tenant database unavailable")
	default:
		a.logger.Errorf("invitation request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
