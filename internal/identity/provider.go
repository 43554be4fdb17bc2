// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/jeranaias/clara-tui/internal/logging"
)

// DefaultKey is the namespaced storage key for the user id.
const DefaultKey = "clara/user_id"

const (
	idPrefix     = "user-"
	tempPrefix   = "user-temp-"
	suffixLength = 5
	base36       = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Provider hands out the installation's user id, creating and persisting it
// on first use. Safe for concurrent use.
type Provider struct {
	store Store
	key   string

	// now and random are swapped in tests.
	now    func() time.Time
	random io.Reader

	mu     sync.Mutex
	cached string
}

// NewProvider returns a provider backed by store under key (DefaultKey when
// empty).
func NewProvider(store Store, key string) *Provider {
	if key == "" {
		key = DefaultKey
	}
	return &Provider{
		store:  store,
		key:    key,
		now:    time.Now,
		random: rand.Reader,
	}
}

// GetOrCreate returns the stored id, or generates and persists a new one
// when the store reports none. If the store cannot be read, or the new id
// cannot be persisted, a temporary id is returned instead and reused for
// the rest of the process. It never fails.
func (p *Provider) GetOrCreate(ctx context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached
	}

	log := logging.Component("identity")

	if p.store == nil {
		p.cached = p.temporary()
		log.Error().Str("key", p.key).Msg("no identity store, using temporary user id")
		return p.cached
	}

	id, err := p.store.Get(ctx, p.key)
	switch {
	case err == nil && id != "":
		p.cached = id
		return id
	case err != nil && !errors.Is(err, ErrNotFound):
		// The key may well exist; writing now could replace it.
		p.cached = p.temporary()
		log.Warn().Err(err).Str("key", p.key).Str("user_id", p.cached).
			Msg("could not read user id, using temporary id")
		return p.cached
	}

	id = p.generate()
	if err := p.store.Set(ctx, p.key, id); err != nil {
		p.cached = p.temporary()
		log.Error().Err(err).Str("key", p.key).Str("user_id", p.cached).
			Msg("could not persist user id, using temporary id")
		return p.cached
	}

	log.Info().Str("user_id", id).Msg("created user id")
	p.cached = id
	return id
}

// generate builds "user-" + base36(unix ms) + 5 random base36 chars.
func (p *Provider) generate() string {
	return idPrefix + p.clock() + p.suffix()
}

// temporary builds "user-temp-" + base36(unix ms).
func (p *Provider) temporary() string {
	return tempPrefix + p.clock()
}

func (p *Provider) clock() string {
	return strconv.FormatInt(p.now().UnixMilli(), 36)
}

func (p *Provider) suffix() string {
	buf := make([]byte, suffixLength)
	if _, err := io.ReadFull(p.random, buf); err != nil {
		// Fall back to the clock's low bits; uniqueness still comes from the
		// millisecond prefix.
		n := p.now().UnixNano()
		for i := range buf {
			buf[i] = byte(n >> (8 * i))
		}
	}
	out := make([]byte, suffixLength)
	for i, b := range buf {
		out[i] = base36[int(b)%len(base36)]
	}
	return string(out)
}

// IsTemporary reports whether id is a fallback id that was never persisted.
func IsTemporary(id string) bool {
	return len(id) > len(tempPrefix) && id[:len(tempPrefix)] == tempPrefix
}
