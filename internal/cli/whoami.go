// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/clara-tui/internal/config"
	"github.com/jeranaias/clara-tui/internal/identity"
	"github.com/spf13/cobra"
)

func newWhoamiCommand() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Print the user id sent with every message",
		Long: `Print the installation's user id, creating and storing it on first use.
A temporary id (prefix "user-temp-") means the identity store could not be
written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Global()
			a := newApp(cfg)
			defer a.Close()

			id := a.userID(cmd.Context())
			out := cmd.OutOrStdout()
			if quiet {
				fmt.Fprintln(out, id)
				return nil
			}
			fmt.Fprintln(out, field("user id", id))
			fmt.Fprintln(out, field("backend", cfg.Identity.Backend))
			if path, err := cfg.IdentityPath(); err == nil && cfg.Identity.Backend != "memory" {
				fmt.Fprintln(out, field("store", path))
			}
			if identity.IsTemporary(id) {
				fmt.Fprintln(out, dimStyle.Render("temporary id: the identity store is not writable"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the id")
	return cmd
}
