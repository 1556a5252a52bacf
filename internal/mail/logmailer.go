// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"

	"github.com/canonical/compliance-service/internal/logging"
)

var _ MailerInterface = (*LogMailer)(nil)

// LogMailer records outgoing invitations in the logs. It stands in for the
// external delivery service in development and tests.
type LogMailer struct {
	from   string
	logger logging.LoggerInterface
}

func NewLogMailer(from string, logger logging.LoggerInterface) *LogMailer {
	return &LogMailer{
		from:   from,
		logger: logger,
	}
}

func (m *LogMailer) SendInvitation(ctx context.Context, to, organizationName, link string) error {
	m.logger.Infof("invitation mail from %s to %s for %s: %s", m.from, to, organizationName, link)
	return nil
}
