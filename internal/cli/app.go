// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"

	"github.com/jeranaias/clara-tui/internal/config"
	"github.com/jeranaias/clara-tui/internal/conversation"
	"github.com/jeranaias/clara-tui/internal/identity"
	"github.com/jeranaias/clara-tui/internal/logging"
	"github.com/jeranaias/clara-tui/internal/model"
	"github.com/jeranaias/clara-tui/internal/responder"
	"github.com/rs/zerolog"
)

// app holds the collaborators every chat front end shares.
type app struct {
	cfg        *config.Config
	store      identity.Store
	identity   *identity.Provider
	client     *responder.Client
	status     *model.Status
	transcript *model.Transcript
	log        zerolog.Logger
}

// newApp opens the identity store and builds the responder client from cfg.
// A store that cannot be opened is replaced by an in-memory one so the
// chat still works, with an id that lasts only for this process.
func newApp(cfg *config.Config) *app {
	log := logging.Component("app")

	store, err := openStore(cfg)
	if err != nil {
		log.Warn().Err(err).Str("backend", cfg.Identity.Backend).
			Msg("identity store unavailable, user id will not persist")
		store = identity.NewMemoryStore()
	}

	client := responder.NewClient(cfg.ResponderURL()).WithTimeout(cfg.ResponderTimeout())
	log.Debug().Str("url", client.URL()).Msg("responder configured")

	return &app{
		cfg:        cfg,
		store:      store,
		identity:   identity.NewProvider(store, cfg.Identity.Key),
		client:     client,
		status:     &model.Status{},
		transcript: model.NewTranscript(model.DefaultMaxMessages),
		log:        log,
	}
}

func openStore(cfg *config.Config) (identity.Store, error) {
	if cfg.Identity.Backend == "memory" {
		return identity.NewMemoryStore(), nil
	}
	if cfg.Identity.Path == "" {
		if err := config.EnsureConfigDir(); err != nil {
			return nil, err
		}
	}
	path, err := cfg.IdentityPath()
	if err != nil {
		return nil, err
	}
	return identity.Open(identity.Options{Backend: cfg.Identity.Backend, Path: path})
}

// pipeline returns a send pipeline that renders through r.
func (a *app) pipeline(r conversation.Renderer) *conversation.Pipeline {
	return conversation.New(a.identity, a.client, r, a.status)
}

// userID resolves the installation's user id.
func (a *app) userID(ctx context.Context) string {
	return a.identity.GetOrCreate(ctx)
}

// Close releases the identity store.
func (a *app) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
