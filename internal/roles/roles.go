// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package roles holds the canonical role set, its total ordering and the
// permission matrix evaluation. Everything here is pure: normalization happens
// once at the storage boundary so the rest of the service never sees raw role
// strings.
package roles

import (
	"strings"
)

type Role string

const (
	Owner   Role = "owner"
	Admin   Role = "admin"
	Manager Role = "manager"
	Member  Role = "member"
)

// Tier is the coarse leadership grouping used for access scoping, independent
// of the exact role label.
type Tier string

const (
	TierTop         Tier = "top"
	TierOperational Tier = "operational"
	TierSupport     Tier = "support"
)

// rank defines the total order owner > admin > manager > member.
// Comparisons must go through rank, never string comparison.
var rank = map[Role]int{
	Owner:   4,
	Admin:   3,
	Manager: 2,
	Member:  1,
}

// legacy maps denormalized historical role labels onto the canonical set.
var legacy = map[string]Role{
	"administrator": Admin,
	"org_admin":     Admin,
	"superadmin":    Admin,
	"team_lead":     Manager,
	"lead":          Manager,
	"supervisor":    Manager,
	"employee":      Member,
	"user":          Member,
	"viewer":        Member,
	"staff":         Member,
}

// Normalize maps free-form role text to a canonical role. Unrecognized input
// defaults to the lowest-privilege role since roles are often denormalized
// historical data, not user mistakes worth failing on.
func Normalize(raw string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := rank[r]; ok {
		return r
	}
	if mapped, ok := legacy[string(r)]; ok {
		return mapped
	}
	return Member
}

// IsHigher reports whether a outranks b. It is strict: IsHigher(r, r) is false.
func IsHigher(a, b Role) bool {
	return rank[a] > rank[b]
}

// LeadershipTier derives the access-scope tier from a role. It is recomputed
// on every membership write rather than trusted from caller input.
func LeadershipTier(r Role) Tier {
	switch r {
	case Owner, Admin:
		return TierTop
	case Manager:
		return TierOperational
	default:
		return TierSupport
	}
}
