// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pending

import (
	"testing"
	"time"

	"github.com/bureau-foundation/concierge/lib/clock"
)

func newTestRegistry() (*Registry, *clock.FakeClock) {
	clk := clock.Fake(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	return New(clk, 15*time.Minute), clk
}

func TestCreateAndGet(t *testing.T) {
	r, _ := newTestRegistry()

	token := r.Create(Action{Owner: "u1", GuildID: "g1", Kind: KindCreate, Name: "reading-club"})
	if token == "" {
		t.Fatal("Create returned empty token")
	}

	action, ok := r.Get(token)
	if !ok {
		t.Fatal("Get on fresh token failed")
	}
	if action.Owner != "u1" || action.Kind != KindCreate || action.Name != "reading-club" {
		t.Errorf("Get = %+v, want stored action", action)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestTokensAreUnique(t *testing.T) {
	r, _ := newTestRegistry()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := r.Create(Action{Owner: "u1", Kind: KindMove})
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}

func TestGetUnknownToken(t *testing.T) {
	r, _ := newTestRegistry()

	if _, ok := r.Get("no-such-token"); ok {
		t.Error("Get on unknown token succeeded")
	}
}

func TestUpdate(t *testing.T) {
	r, _ := newTestRegistry()

	token := r.Create(Action{Owner: "u1", Kind: KindMove})

	if !r.Update(token, func(a *Action) {
		a.ChannelID = "chan-1"
		a.CategoryID = "cat-1"
		a.CategoryChosen = true
	}) {
		t.Fatal("Update on live token failed")
	}

	action, _ := r.Get(token)
	if action.ChannelID != "chan-1" || action.CategoryID != "cat-1" || !action.CategoryChosen {
		t.Errorf("action after Update = %+v", action)
	}
}

func TestUpdateReturnsCopySemantics(t *testing.T) {
	r, _ := newTestRegistry()

	token := r.Create(Action{Owner: "u1", Kind: KindCreate})

	// Mutating the copy from Get must not affect the stored action.
	action, _ := r.Get(token)
	action.CategoryID = "cat-x"

	stored, _ := r.Get(token)
	if stored.CategoryID != "" {
		t.Errorf("stored CategoryID = %q, want empty", stored.CategoryID)
	}
}

func TestDeleteConsumesToken(t *testing.T) {
	r, _ := newTestRegistry()

	token := r.Create(Action{Owner: "u1", Kind: KindCreate})
	r.Delete(token)

	if _, ok := r.Get(token); ok {
		t.Error("Get after Delete succeeded")
	}
	if r.Update(token, func(a *Action) { a.Name = "x" }) {
		t.Error("Update after Delete succeeded")
	}

	// Deleting again is harmless.
	r.Delete(token)
}

func TestExpiryViaTimer(t *testing.T) {
	r, clk := newTestRegistry()

	token := r.Create(Action{Owner: "u1", Kind: KindCreate})

	clk.Advance(14 * time.Minute)
	if _, ok := r.Get(token); !ok {
		t.Fatal("token expired before TTL")
	}

	clk.Advance(2 * time.Minute)
	if _, ok := r.Get(token); ok {
		t.Error("token alive after TTL")
	}
	if r.Len() != 0 {
		t.Errorf("Len after expiry = %d, want 0", r.Len())
	}
}

func TestExpiryIsPerToken(t *testing.T) {
	r, clk := newTestRegistry()

	older := r.Create(Action{Owner: "u1", Kind: KindCreate})
	clk.Advance(10 * time.Minute)
	newer := r.Create(Action{Owner: "u2", Kind: KindMove})

	clk.Advance(10 * time.Minute) // 20m for older, 10m for newer
	if _, ok := r.Get(older); ok {
		t.Error("older token should have expired")
	}
	if _, ok := r.Get(newer); !ok {
		t.Error("newer token should still be live")
	}
}

// noCleanupClock swallows scheduled callbacks, modeling the window
// where a token's deadline has passed but the cleanup timer has not
// run yet.
type noCleanupClock struct{ *clock.FakeClock }

func (c noCleanupClock) AfterFunc(d time.Duration, f func()) *clock.Timer {
	return c.FakeClock.AfterFunc(d, func() {})
}

func TestLazyExpiryWithoutTimerFire(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	r := New(noCleanupClock{clk}, 15*time.Minute)

	token := r.Create(Action{Owner: "u1", Kind: KindCreate})

	clk.Advance(16 * time.Minute)
	if _, ok := r.Get(token); ok {
		t.Error("expired token honored before timer cleanup")
	}
	if r.Update(token, func(a *Action) { a.Name = "x" }) {
		t.Error("Update on expired token succeeded")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}
