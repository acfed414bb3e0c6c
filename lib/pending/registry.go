// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pending

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/concierge/lib/clock"
)

// Kind identifies which wizard an Action belongs to.
type Kind string

const (
	// KindCreate is the channel-creation wizard.
	KindCreate Kind = "create"
	// KindMove is the channel-move wizard.
	KindMove Kind = "move"
)

// Action is the partially-filled request a wizard accumulates before
// the user confirms it. The registry owns all Actions; callers hold
// only the token and receive copies.
type Action struct {
	// Owner is the user who started the wizard. The registry does not
	// enforce ownership — handlers must check Owner against the acting
	// user before honoring any update or confirm, and must answer a
	// mismatch with the same stale-token response as a missing token.
	Owner string

	// GuildID is the guild the wizard was started in.
	GuildID string

	// Kind selects the wizard flavor.
	Kind Kind

	// Name is the channel name for KindCreate, collected before the
	// token is minted.
	Name string

	// ChannelID is the channel to move for KindMove. Empty until the
	// user selects one; confirm requires it.
	ChannelID string

	// CategoryID is the target (create) or destination (move)
	// category. Empty means no category.
	CategoryID string

	// CategoryChosen records that the user acted on the category
	// field: either selected a category or explicitly cleared it.
	// It distinguishes "explicitly none" (CategoryChosen true,
	// CategoryID empty) from "not yet selected". Both are legal at
	// confirm time; the flag exists for response wording.
	CategoryChosen bool
}

type entry struct {
	action   Action
	deadline time.Time
	timer    *clock.Timer
}

// Registry is a thread-safe, time-boxed mapping from opaque tokens to
// in-flight wizard state. Entries expire after the configured TTL:
// a scheduled timer removes them best-effort, and every access
// additionally compares the deadline against the clock, so a confirm
// arriving after logical expiry is rejected deterministically even if
// the timer has not fired yet.
type Registry struct {
	clk clock.Clock
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a Registry whose entries expire ttl after creation.
func New(clk clock.Clock, ttl time.Duration) *Registry {
	return &Registry{
		clk:     clk,
		ttl:     ttl,
		entries: make(map[string]*entry),
	}
}

// Create stores the action under a fresh unguessable token, schedules
// its expiry, and returns the token.
func (r *Registry) Create(action Action) string {
	token := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	e := &entry{
		action:   action,
		deadline: r.clk.Now().Add(r.ttl),
	}
	e.timer = r.clk.AfterFunc(r.ttl, func() { r.Delete(token) })
	r.entries[token] = e
	return token
}

// Get returns a copy of the action for token, or false if the token is
// unknown or expired. An expired entry is removed on the spot.
func (r *Registry) Get(token string) (Action, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.live(token)
	if !ok {
		return Action{}, false
	}
	return e.action, true
}

// Update applies mutate to the action for token, if it still exists.
// Returns false for unknown or expired tokens; the mutation is not
// applied in that case.
func (r *Registry) Update(token string, mutate func(*Action)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.live(token)
	if !ok {
		return false
	}
	mutate(&e.action)
	return true
}

// Delete removes the token. Safe to call for tokens that are already
// gone (expiry and explicit consumption race benignly).
func (r *Registry) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[token]
	if !ok {
		return
	}
	e.timer.Stop()
	delete(r.entries, token)
}

// Len returns the number of live entries. Entries past their deadline
// whose timer has not fired yet are not counted.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clk.Now()
	n := 0
	for _, e := range r.entries {
		if now.Before(e.deadline) {
			n++
		}
	}
	return n
}

// live returns the entry for token if it exists and has not passed its
// deadline, removing it otherwise. Callers must hold r.mu.
func (r *Registry) live(token string) (*entry, bool) {
	e, ok := r.entries[token]
	if !ok {
		return nil, false
	}
	if !r.clk.Now().Before(e.deadline) {
		e.timer.Stop()
		delete(r.entries, token)
		return nil, false
	}
	return e, true
}
