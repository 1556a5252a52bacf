// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Invitation statuses. Accepted and expired are terminal.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
)

// Organization is the control-plane record for one tenant. TenantDSN is the
// connection descriptor for the organization's isolated database.
type Organization struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	OwnerID          string    `db:"owner_id"`
	TenantDSN        string    `db:"tenant_dsn"`
	PermissionMatrix []byte    `db:"permission_matrix"`
	CreatedAt        time.Time `db:"created_at"`
}

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Membership links a user to an organization. Unique per (organization, user).
type Membership struct {
	ID             string    `db:"id"`
	OrganizationID string    `db:"organization_id"`
	UserID         string    `db:"user_id"`
	Role           string    `db:"role"`
	Tier           string    `db:"tier"`
	JobTitle       string    `db:"job_title"`
	CreatedAt      time.Time `db:"created_at"`
}

// Invitation is the control-plane invitation record, the source of truth for
// existence and expiry. Site/process targeting lives on the tenant mirror.
type Invitation struct {
	ID             string     `db:"id"`
	Token          string     `db:"token"`
	OrganizationID string     `db:"organization_id"`
	Email          string     `db:"email"`
	Role           string     `db:"role"`
	SiteID         *string    `db:"site_id"`
	ProcessID      *string    `db:"process_id"`
	Status         string     `db:"status"`
	InvitedBy      string     `db:"invited_by"`
	ExpiresAt      time.Time  `db:"expires_at"`
	CreatedAt      time.Time  `db:"created_at"`
	AcceptedAt     *time.Time `db:"accepted_at"`
}

// TenantInvitation is the tenant-local mirror of an invitation, the source of
// truth for site/process targeting at acceptance time.
type TenantInvitation struct {
	Token      string     `db:"token"`
	Role       string     `db:"role"`
	SiteID     *string    `db:"site_id"`
	ProcessID  *string    `db:"process_id"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	AcceptedAt *time.Time `db:"accepted_at"`
}

type Site struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type Process struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	SiteID    *string   `db:"site_id"`
	CreatedAt time.Time `db:"created_at"`
}

// SiteAssignment scopes a user's visibility to a site. Natural key (site, user).
type SiteAssignment struct {
	SiteID string `db:"site_id"`
	UserID string `db:"user_id"`
	Role   string `db:"role"`
}

// ProcessAssignment scopes a user's visibility to a process. Natural key (process, user).
type ProcessAssignment struct {
	ProcessID string `db:"process_id"`
	UserID    string `db:"user_id"`
	Role      string `db:"role"`
}
