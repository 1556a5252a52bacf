// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	inviteOrgID     string
	inviteEmail     string
	inviteRole      string
	inviteSiteID    string
	inviteProcessID string
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage invitations",
}

var createInviteCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invitation",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := map[string]any{
			"organization_id": inviteOrgID,
			"email":           inviteEmail,
			"role":            inviteRole,
		}
		if inviteSiteID != "" {
			req["site_id"] = inviteSiteID
		}
		if inviteProcessID != "" {
			req["process_id"] = inviteProcessID
		}

		var resp struct {
			Token string `json:"token"`
			Link  string `json:"link"`
		}
		if err := newAPIClient().do(http.MethodPost, "/api/v0/invites", req, &resp); err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}

		fmt.Printf("Invitation created\nToken: %s\nLink: %s\n", resp.Token, resp.Link)
		return nil
	},
}

var acceptInviteCmd = &cobra.Command{
	Use:   "accept [token]",
	Short: "Accept an invitation as the authenticated user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			OrganizationID   string `json:"organization_id"`
			OrganizationName string `json:"organization_name"`
		}
		err := newAPIClient().do(http.MethodPost, "/api/v0/invites/accept", map[string]any{"token": args[0]}, &resp)
		if err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}

		fmt.Printf("Joined %s (ID: %s)\n", resp.OrganizationName, resp.OrganizationID)
		return nil
	},
}

func init() {
	createInviteCmd.Flags().StringVar(&inviteOrgID, "org", "", "Organization ID")
	createInviteCmd.Flags().StringVar(&inviteEmail, "email", "", "Invitee email address")
	createInviteCmd.Flags().StringVar(&inviteRole, "role", "member", "Role granted on acceptance")
	createInviteCmd.Flags().StringVar(&inviteSiteID, "site", "", "Site to assign the invitee to")
	createInviteCmd.Flags().StringVar(&inviteProcessID, "process", "", "Process to assign the invitee to")
	createInviteCmd.MarkFlagRequired("org")
	createInviteCmd.MarkFlagRequired("email")

	inviteCmd.AddCommand(createInviteCmd)
	inviteCmd.AddCommand(acceptInviteCmd)
	rootCmd.AddCommand(inviteCmd)
}
