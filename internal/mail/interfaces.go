// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"
)

// MailerInterface is the email delivery collaborator. Actual delivery happens
// outside this service.
type MailerInterface interface {
	SendInvitation(ctx context.Context, to, organizationName, link string) error
}
