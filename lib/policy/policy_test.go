// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// fakeView is an in-memory View for policy tests.
type fakeView struct {
	counts map[string]int  // "guild/user" -> count
	locked map[string]bool // "guild/category" -> locked
}

func (v *fakeView) UserCount(guildID, userID string) int {
	return v.counts[guildID+"/"+userID]
}

func (v *fakeView) IsLockedCategory(guildID, categoryID string) bool {
	return v.locked[guildID+"/"+categoryID]
}

func TestCapabilityChecks(t *testing.T) {
	tests := []struct {
		name        string
		permissions int64
		check       func(int64) bool
		want        bool
	}{
		{"manage channels bit", discordgo.PermissionManageChannels, CanManageChannels, true},
		{"admin implies manage channels", discordgo.PermissionAdministrator, CanManageChannels, true},
		{"no channel bits", discordgo.PermissionSendMessages, CanManageChannels, false},
		{"manage roles bit", discordgo.PermissionManageRoles, CanManageRoles, true},
		{"admin implies manage roles", discordgo.PermissionAdministrator, CanManageRoles, true},
		{"no role bits", 0, CanManageRoles, false},
		{"administrator bit", discordgo.PermissionAdministrator, IsAdministrator, true},
		{"manage server counts as admin", discordgo.PermissionManageServer, IsAdministrator, true},
		{"manage channels is not admin", discordgo.PermissionManageChannels, IsAdministrator, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.permissions); got != tt.want {
				t.Errorf("check(%#x) = %v, want %v", tt.permissions, got, tt.want)
			}
		})
	}
}

func TestCheckCreate(t *testing.T) {
	view := &fakeView{
		counts: map[string]int{"g1/full": 10, "g1/nearly": 9},
		locked: map[string]bool{"g1/locked-cat": true},
	}

	if d := CheckCreate(view, "g1", "fresh", "", 10); !d.Allowed {
		t.Errorf("fresh user, no category: denied with %v", d.Reason)
	}
	if d := CheckCreate(view, "g1", "nearly", "open-cat", 10); !d.Allowed {
		t.Errorf("count 9 of 10: denied with %v", d.Reason)
	}

	d := CheckCreate(view, "g1", "full", "", 10)
	if d.Allowed || d.Reason != ReasonQuotaExceeded {
		t.Errorf("exhausted quota: got %+v, want quota denial", d)
	}

	d = CheckCreate(view, "g1", "fresh", "locked-cat", 10)
	if d.Allowed || d.Reason != ReasonTargetLocked {
		t.Errorf("locked target: got %+v, want lock denial", d)
	}

	// Lock beats quota in the report.
	d = CheckCreate(view, "g1", "full", "locked-cat", 10)
	if d.Allowed || d.Reason != ReasonTargetLocked {
		t.Errorf("locked target with exhausted quota: got %+v, want lock denial", d)
	}

	// Locks are per guild.
	if d := CheckCreate(view, "g2", "fresh", "locked-cat", 10); !d.Allowed {
		t.Errorf("lock leaked across guilds: %+v", d)
	}
}

func TestCheckMove(t *testing.T) {
	view := &fakeView{locked: map[string]bool{"g1/locked-cat": true}}

	if d := CheckMove(view, "g1", "open-a", "open-b"); !d.Allowed {
		t.Errorf("unlocked both sides: denied with %v", d.Reason)
	}
	if d := CheckMove(view, "g1", "", ""); !d.Allowed {
		t.Errorf("no category either side: denied with %v", d.Reason)
	}

	d := CheckMove(view, "g1", "locked-cat", "open-b")
	if d.Allowed || d.Reason != ReasonSourceLocked {
		t.Errorf("locked source: got %+v, want source denial", d)
	}

	d = CheckMove(view, "g1", "open-a", "locked-cat")
	if d.Allowed || d.Reason != ReasonDestinationLocked {
		t.Errorf("locked destination: got %+v, want destination denial", d)
	}

	// Leaving a locked category is denied regardless of destination,
	// including "no category".
	d = CheckMove(view, "g1", "locked-cat", "")
	if d.Allowed || d.Reason != ReasonSourceLocked {
		t.Errorf("locked source to no category: got %+v, want source denial", d)
	}
}

func TestReasonString(t *testing.T) {
	if got := ReasonQuotaExceeded.String(); got != "quota exceeded" {
		t.Errorf("ReasonQuotaExceeded.String() = %q", got)
	}
	if got := Reason(99).String(); got != "unknown" {
		t.Errorf("out-of-range Reason.String() = %q", got)
	}
}
