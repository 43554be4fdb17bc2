// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responder is the HTTP client for the remote chat responder.
//
// One call is one exchange: the user's text and id go out as JSON, and the
// reply text comes back. Failures are typed so callers can tell a remote
// rejection (*StatusError) from a network problem (*TransportError).
//
// # Wire format
//
//	POST /chat
//	{"mensagem": "oi", "user_id": "user-..."}
//
//	200 {"response": "Olá!"}
//	4xx/5xx {"error": "..."} or {"message": "..."}
//
// # Usage
//
//	c := responder.NewClient("http://127.0.0.1:5000/chat").WithTimeout(30 * time.Second)
//	reply, err := c.Send(ctx, responder.Request{Text: "oi", UserID: id})
package responder
