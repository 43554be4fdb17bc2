// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package identity provides the stable per-installation user id that is sent
// with every chat message.
//
// The id is created on first use and kept in a small key-value Store. Three
// backends exist:
//
//   - sqlite: the default, a single-table database (modernc.org/sqlite)
//   - pebble: an embedded LSM store (cockroachdb/pebble)
//   - memory: process-lifetime only, used in tests
//
// When the store cannot be written the provider hands out a temporary id for
// the rest of the process and logs the failure. Callers never see an error.
//
// # Usage
//
//	store, err := identity.Open(identity.Options{Backend: "sqlite", Path: p})
//	...
//	p := identity.NewProvider(store, "clara/user_id")
//	id := p.GetOrCreate(ctx)
package identity
