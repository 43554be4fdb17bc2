// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/clara-tui/internal/config"
	"github.com/jeranaias/clara-tui/internal/logging"
	"github.com/jeranaias/clara-tui/internal/server"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	url        string
	logLevel   string
	noColor    bool
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the clara command tree.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	server.Version = Version

	root := &cobra.Command{
		Use:   "clara",
		Short: "Terminal chat with the Clara assistant",
		Long: `clara is a terminal chat client for the Clara responder.

Without a subcommand it opens the full-screen chat when attached to a
terminal and falls back to line mode otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interactive(cmd.InOrStdin(), cmd.OutOrStdout()) {
				return runTUI(cmd)
			}
			return runChat(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default $CLARA_HOME/config.toml or ~/.clara/config.toml)")
	pf.StringVar(&flags.url, "url", "", "responder base URL (overrides responder.base_url)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newChatCommand(),
		newAskCommand(),
		newServeCommand(),
		newWhoamiCommand(),
		newConfigCommand(),
		newVersionCommand(),
	)
	return root
}

// setup loads .env and the config file, applies the global flags and
// initializes logging to stderr. The TUI redirects logging to a file later.
func setup(cmd *cobra.Command, flags *globalFlags) error {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.RenderWarning(fmt.Sprintf("ignoring .env: %v", err)))
	}

	var (
		cfg     *config.Config
		loadErr error
	)
	if flags.configPath != "" {
		cfg, loadErr = config.LoadFromPath(flags.configPath)
		if loadErr != nil {
			// An explicitly requested file must load.
			return fmt.Errorf("load config %s: %w", flags.configPath, loadErr)
		}
	} else {
		cfg, loadErr = config.Load()
		if cfg == nil {
			return loadErr
		}
	}

	if flags.url != "" {
		cfg.Responder.BaseURL = strings.TrimRight(flags.url, "/")
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	noColor := colorDisabled(flags.noColor)
	if noColor {
		styles.DisableColor()
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.NoColor = noColor
	logging.Init(logCfg)

	if loadErr != nil {
		logging.Logger.Warn().Err(loadErr).Msg("config file unreadable, using defaults")
	}

	config.SetGlobal(cfg)
	return nil
}

// =============================================================================
// VERSION
// =============================================================================

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clara %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  Commit:  %s\n", GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "  Built:   %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "  Go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// exitCode maps an error returned by Execute to a process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Main runs the CLI and exits the process with the resulting status.
func Main() {
	err := Execute()
	if err != nil {
		logging.Logger.Error().Err(err).Msg("command failed")
	}
	os.Exit(exitCode(err))
}
