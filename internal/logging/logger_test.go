// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "info", "warn", "error"} {
		if l := NewLogger(level); l == nil {
			t.Errorf("expected logger for level %q", level)
		}
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	// Invalid levels must not panic, they fall back to error.
	if l := NewLogger("invalid"); l == nil {
		t.Error("expected logger for invalid level")
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.Infof("dropped %s", "message")
	l.Error("dropped")
}
