// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the command-line interface for clara.
//
// # Commands
//
//   - clara: the chat TUI (line mode when stdout is not a terminal)
//   - clara chat: line-mode chat with prompt history
//   - clara ask <text>: send one message and print the reply
//   - clara serve: run the reference responder
//   - clara whoami: print the persisted user id
//   - clara config show|path|init: inspect or create the config file
//   - clara version: print version information
//
// # Global Flags
//
//	--config PATH     Config file (default ~/.clara/config.toml)
//	--url URL         Responder base URL
//	--log-level LVL   debug, info, warn or error
//	--no-color        Disable colored output (NO_COLOR is honored too)
//
// # Usage
//
//	if err := cli.Execute(); err != nil {
//	    os.Exit(1)
//	}
package cli
