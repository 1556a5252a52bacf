// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package roles

import (
	"testing"
)

func TestParseMatrix(t *testing.T) {
	blob := []byte(`{
		"admin":   {"manage_teams": true, "manage_sites": true},
		"Manager": {"manage_processes": true, "manage_teams": false},
		"viewer":  {"view_reports": true, "weird": "not-a-bool"}
	}`)

	m, err := ParseMatrix(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !m[Admin][ActionManageTeams] {
		t.Error("expected admin manage_teams allowed")
	}
	// Role keys are normalized: "Manager" -> manager, "viewer" -> member.
	if !m[Manager][ActionManageProcesses] {
		t.Error("expected manager manage_processes allowed")
	}
	if !m[Member][ActionViewReports] {
		t.Error("expected legacy viewer entry mapped to member")
	}
	if _, ok := m[Member]["weird"]; ok {
		t.Error("expected non-boolean values dropped")
	}
}

func TestParseMatrixEmpty(t *testing.T) {
	for _, blob := range [][]byte{nil, {}} {
		m, err := ParseMatrix(blob)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(m) != 0 {
			t.Errorf("expected empty matrix, got %v", m)
		}
	}
}

func TestParseMatrixMalformed(t *testing.T) {
	if _, err := ParseMatrix([]byte(`{"admin": "yes"}`)); err == nil {
		t.Error("expected error for malformed matrix")
	}
}

func TestHasPermissionDenyByDefault(t *testing.T) {
	m := Matrix{
		Admin: {ActionManageTeams: true},
	}

	testCases := []struct {
		name     string
		role     Role
		action   string
		isOwner  bool
		expected bool
	}{
		{"explicit allow", Admin, ActionManageTeams, false, true},
		{"missing action denied", Admin, ActionManageSites, false, false},
		{"missing role denied", Manager, ActionManageTeams, false, false},
		{"owner bypasses matrix", Member, ActionManageTeams, true, true},
		{"owner bypasses empty matrix", Member, "anything", true, true},
		{"explicit false denied", Admin, ActionManageIssues, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasPermission(m, tc.role, tc.action, tc.isOwner); got != tc.expected {
				t.Errorf("HasPermission(%s, %s, owner=%v) = %v, expected %v",
					tc.role, tc.action, tc.isOwner, got, tc.expected)
			}
		})
	}
}

func TestHasPermissionNilMatrix(t *testing.T) {
	if HasPermission(nil, Admin, ActionManageTeams, false) {
		t.Error("expected nil matrix to deny")
	}
	if !HasPermission(nil, Member, ActionManageTeams, true) {
		t.Error("expected owner bypass with nil matrix")
	}
}
