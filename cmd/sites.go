// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites [org-id]",
	Short: "List the sites visible to the authenticated user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		path := fmt.Sprintf("/api/v0/organizations/%s/sites", args[0])
		if err := newAPIClient().do(http.MethodGet, path, nil, &resp); err != nil {
			return fmt.Errorf("failed to list sites: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, s := range resp {
			fmt.Fprintf(w, "%s\t%s\n", s.ID, s.Name)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
