// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package roles

import (
	"encoding/json"
	"fmt"
)

// Known permission actions. The matrix may carry others, evaluation does not
// restrict the action namespace.
const (
	ActionManageTeams     = "manage_teams"
	ActionManageSites     = "manage_sites"
	ActionManageProcesses = "manage_processes"
	ActionManageIssues    = "manage_issues"
	ActionViewReports     = "view_reports"
)

// Matrix is the per-organization permission matrix: role -> action -> allowed.
// Missing entries deny by default.
type Matrix map[Role]map[string]bool

// ParseMatrix normalizes the loosely-typed JSONB matrix stored on the
// organization record. Role keys are normalized, unknown value types are
// dropped. A nil or empty blob yields an empty matrix.
func ParseMatrix(blob []byte) (Matrix, error) {
	m := make(Matrix)
	if len(blob) == 0 {
		return m, nil
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("malformed permission matrix: %w", err)
	}

	for rawRole, actions := range raw {
		role := Normalize(rawRole)
		if m[role] == nil {
			m[role] = make(map[string]bool)
		}
		for action, v := range actions {
			if allowed, ok := v.(bool); ok {
				m[role][action] = allowed
			}
		}
	}

	return m, nil
}

// HasPermission evaluates the matrix for a role and action. The organization
// owner bypasses the matrix entirely; for everyone else missing entries
// deny by default.
func HasPermission(m Matrix, role Role, action string, isOwner bool) bool {
	if isOwner {
		return true
	}

	actions, ok := m[role]
	if !ok {
		return false
	}
	return actions[action]
}
