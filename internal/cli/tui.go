// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/clara-tui/internal/config"
	"github.com/jeranaias/clara-tui/internal/logging"
	"github.com/jeranaias/clara-tui/internal/ui/chat"
	"github.com/jeranaias/clara-tui/internal/ui/styles"
	"github.com/spf13/cobra"
)

// runTUI opens the full-screen chat. Logs move to the log file while the
// program owns the terminal.
func runTUI(cmd *cobra.Command) error {
	cfg := config.Global()
	closeLog := redirectLogs(cfg)
	defer closeLog()

	a := newApp(cfg)
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	m := chat.New(styles.NewThemeFor(cfg.UI.Theme), chat.Options{
		Context:        ctx,
		Identity:       a.identity,
		Sender:         a.client,
		Status:         a.status,
		Transcript:     a.transcript,
		AssistantName:  cfg.UI.AssistantName,
		ShowTimestamps: cfg.UI.ShowTimestamps,
		ReceiptMin:     time.Duration(cfg.Receipt.MinDelayMs) * time.Millisecond,
		ReceiptMax:     time.Duration(cfg.Receipt.MaxDelayMs) * time.Millisecond,
	})

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	_, err := tea.NewProgram(m, opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// redirectLogs points the global logger at the configured log file and
// returns a func that closes it. When the file cannot be opened logging is
// silenced rather than written over the screen.
func redirectLogs(cfg *config.Config) func() {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.NoColor = true

	f, err := openLogFile(cfg)
	if err != nil {
		logCfg.Level = "disabled"
		logging.Init(logCfg)
		return func() {}
	}
	logCfg.Output = f
	logging.Init(logCfg)
	return func() { f.Close() }
}

func openLogFile(cfg *config.Config) (*os.File, error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	return logging.OpenFile(path)
}
