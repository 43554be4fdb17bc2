// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for clara.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ResponderConfig: Where chat messages are sent
//   - IdentityConfig: Which store keeps the user id
//   - ReceiptConfig: Read-receipt delay bounds
//   - ServerConfig: The bundled reference responder
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CLARA_*, PORT), optionally seeded from ./.env
//   - $CLARA_HOME/config.toml or ~/.clara/config.toml
//   - $CLARA_HOME/config.json or ~/.clara/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Warn().Err(err).Msg("using defaults")
//	}
//	url := cfg.ResponderURL()
package config
