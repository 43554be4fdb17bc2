// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server implements the reference chat responder used by
// "clara serve", local development and the integration tests.
//
// # Endpoints
//
//	POST /chat     {"mensagem": "...", "user_id": "..."} -> {"response": "..."}
//	GET  /health   {"status": "ok", "version": "..."}
//
// Every user id gets a rolling in-memory history of the most recent turns.
// Replies come from a Replier; the default EchoReplier acknowledges the
// message without calling any model.
//
// # Middleware
//
// Requests pass through chi's RequestID and RealIP, then recovery, security
// headers, zerolog request logging, a body size limit and a per-client rate
// limiter (golang.org/x/time/rate).
//
// # Usage
//
//	srv := server.New(server.Options{Port: 5000})
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package server
