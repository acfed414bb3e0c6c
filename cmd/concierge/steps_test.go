// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"slices"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/bureau-foundation/concierge/discord"
)

func TestPostStepsOnlyInDesignatedChannel(t *testing.T) {
	session := newFakeSession()
	bot, _ := newTestBot(t, session)

	interaction := commandInteraction(discord.CmdPostSteps)
	interaction.ChannelID = "chan-other"
	bot.HandleInteraction(interaction)

	if got := session.lastContent(t); got != msgWrongChannel {
		t.Errorf("content = %q, want wrong-channel message", got)
	}
	if len(session.sent) != 0 {
		t.Errorf("panel was posted despite wrong channel")
	}
}

func TestPostStepsPostsPanel(t *testing.T) {
	session := newFakeSession()
	bot, _ := newTestBot(t, session)

	interaction := commandInteraction(discord.CmdPostSteps)
	interaction.ChannelID = testStepsChan
	bot.HandleInteraction(interaction)

	if len(session.sent) != 1 {
		t.Fatalf("sent = %d messages, want 1", len(session.sent))
	}
	if rows := session.sent[0].Components; len(rows) != 2 {
		t.Errorf("panel rows = %d, want 2", len(rows))
	}
	if got := session.lastContent(t); got != "Posted!" {
		t.Errorf("ack = %q, want Posted!", got)
	}
}

func TestToggleStepGrantsAndRevokes(t *testing.T) {
	session := newFakeSession()
	session.roles = []*discordgo.Role{{ID: "role-2", Name: "Step 2"}}
	bot, _ := newTestBot(t, session)

	bot.HandleInteraction(componentInteraction(discord.CustomID(discord.IDStepToggle, "role-2")))
	if !slices.Contains(session.added, "role-2") {
		t.Errorf("role-2 not granted; added = %v", session.added)
	}

	session.memberRoles = []string{"role-2"}
	bot.HandleInteraction(componentInteraction(discord.CustomID(discord.IDStepToggle, "role-2")))
	if !slices.Contains(session.removed, "role-2") {
		t.Errorf("role-2 not revoked; removed = %v", session.removed)
	}
}

func TestToggleStepRejectsUnmanagedRole(t *testing.T) {
	session := newFakeSession()
	bot, _ := newTestBot(t, session)

	bot.HandleInteraction(componentInteraction(discord.CustomID(discord.IDStepToggle, "role-evil")))

	if len(session.added)+len(session.removed) != 0 {
		t.Errorf("role mutation happened for unmanaged role")
	}
}

func TestToggleStepRequiresManageRoles(t *testing.T) {
	session := newFakeSession()
	bot, _ := newTestBot(t, session)

	interaction := componentInteraction(discord.CustomID(discord.IDStepToggle, "role-1"))
	interaction.AppPermissions = discordgo.PermissionManageChannels
	bot.HandleInteraction(interaction)

	if got := session.lastContent(t); got != msgBotNoRoles {
		t.Errorf("content = %q, want missing-permission message", got)
	}
}

func TestToggleStepReportsRoleHierarchyProblem(t *testing.T) {
	session := newFakeSession()
	session.roles = []*discordgo.Role{{ID: "role-1", Name: "Step 1"}}
	session.roleErr = &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions}}
	bot, _ := newTestBot(t, session)

	bot.HandleInteraction(componentInteraction(discord.CustomID(discord.IDStepToggle, "role-1")))

	if got := session.lastContent(t); got != msgRoleHierarchy {
		t.Errorf("content = %q, want hierarchy hint", got)
	}
}

func TestClearStepsRemovesOnlyHeldStepRoles(t *testing.T) {
	session := newFakeSession()
	session.memberRoles = []string{"role-1", "role-4", "role-unrelated"}
	bot, _ := newTestBot(t, session)

	bot.HandleInteraction(componentInteraction(discord.IDStepClear))

	want := []string{"role-1", "role-4"}
	if !slices.Equal(session.removed, want) {
		t.Errorf("removed = %v, want %v", session.removed, want)
	}
}

func TestClearStepsNoOp(t *testing.T) {
	session := newFakeSession()
	session.memberRoles = []string{"role-unrelated"}
	bot, _ := newTestBot(t, session)

	bot.HandleInteraction(componentInteraction(discord.IDStepClear))

	if len(session.removed) != 0 {
		t.Errorf("removed = %v, want none", session.removed)
	}
	if got := session.lastContent(t); got != "You don't have any step roles right now." {
		t.Errorf("content = %q", got)
	}
}
