// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"errors"
)

// Invitation protocol error taxonomy. Handlers map these onto HTTP statuses,
// the service never decides transport concerns.
var (
	// ErrInvitationNotFound covers bad or forged tokens.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrInvitationAlreadyResolved covers replays of accepted or expired
	// tokens. The wrapped message carries the current status.
	ErrInvitationAlreadyResolved = errors.New("invitation already resolved")
	// ErrInvitationExpired is returned once, at the moment the expiry is
	// detected and recorded.
	ErrInvitationExpired = errors.New("invitation expired")
	// ErrEmailMismatch means the authenticated identity is not the invitee.
	ErrEmailMismatch = errors.New("invitation was issued for a different email")
	// ErrAccountExists rejects password-path acceptance against an existing
	// account. Claiming existing accounts by token is never allowed.
	ErrAccountExists = errors.New("an account with this email already exists")
	// ErrTenantInvitationMissing signals a control-plane/tenant inconsistency.
	// Not retryable by the caller.
	ErrTenantInvitationMissing = errors.New("tenant invitation record missing")
	// ErrTenantUnavailable wraps tenant pool or connection failures.
	ErrTenantUnavailable = errors.New("tenant database unavailable")
	// ErrPermissionDenied is returned when the actor lacks the manage_teams
	// permission in the organization.
	ErrPermissionDenied = errors.New("permission denied")
)
