// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/clara-tui/internal/config"
	"github.com/jeranaias/clara-tui/internal/logging"
	"github.com/jeranaias/clara-tui/internal/server"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference chat responder",
		Long: `Run a local responder that answers POST /chat with a placeholder
reply and keeps a short per-user history. Point the client at it with
--url http://localhost:<port>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Global()
			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			srv := server.New(server.Options{
				Host:          host,
				Port:          port,
				HistoryLimit:  cfg.Server.HistoryLimit,
				SystemPrompt:  cfg.Server.SystemPrompt,
				RatePerMinute: cfg.Server.RatePerMinute,
			})

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintln(cmd.OutOrStdout(), field("listening", "http://"+srv.Addr()))
			log := logging.Component("serve")
			log.Info().Str("addr", srv.Addr()).Msg("responder starting")
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&host, "host", server.DefaultHost, "interface to bind")
	cmd.Flags().IntVarP(&port, "port", "p", server.DefaultPort, "port to listen on (default from config or PORT)")
	return cmd
}
