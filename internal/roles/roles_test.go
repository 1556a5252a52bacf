// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package roles

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected Role
	}{
		{"canonical owner", "owner", Owner},
		{"canonical admin", "admin", Admin},
		{"canonical manager", "manager", Manager},
		{"canonical member", "member", Member},
		{"mixed case", "Admin", Admin},
		{"whitespace", "  manager  ", Manager},
		{"legacy administrator", "administrator", Admin},
		{"legacy team_lead", "team_lead", Manager},
		{"legacy employee", "employee", Member},
		{"legacy viewer", "viewer", Member},
		{"unknown defaults to member", "wizard", Member},
		{"empty defaults to member", "", Member},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.raw); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tc.raw, got, tc.expected)
			}
		})
	}
}

func TestIsHigherTotalOrder(t *testing.T) {
	ordered := []Role{Owner, Admin, Manager, Member}

	for i, a := range ordered {
		for j, b := range ordered {
			expected := i < j
			if got := IsHigher(a, b); got != expected {
				t.Errorf("IsHigher(%s, %s) = %v, expected %v", a, b, got, expected)
			}
		}
	}
}

func TestIsHigherIsStrict(t *testing.T) {
	for _, r := range []Role{Owner, Admin, Manager, Member} {
		if IsHigher(r, r) {
			t.Errorf("IsHigher(%s, %s) must be false", r, r)
		}
	}
}

func TestLeadershipTier(t *testing.T) {
	testCases := []struct {
		role     Role
		expected Tier
	}{
		{Owner, TierTop},
		{Admin, TierTop},
		{Manager, TierOperational},
		{Member, TierSupport},
	}

	for _, tc := range testCases {
		if got := LeadershipTier(tc.role); got != tc.expected {
			t.Errorf("LeadershipTier(%s) = %s, expected %s", tc.role, got, tc.expected)
		}
	}
}
