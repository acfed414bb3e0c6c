// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"

	"github.com/bureau-foundation/concierge/discord"
	"github.com/bureau-foundation/concierge/lib/policy"
)

const stepPanelContent = "📌 **Learning roadmap: step roles**\n" +
	"Press a button to **toggle** the role (any combination is fine)."

// postSteps posts the step-role toggle panel. Any member may run it,
// but only in the designated announcement channel.
func (b *Bot) postSteps(interaction *discordgo.Interaction) error {
	if interaction.ChannelID != b.cfg.StepsChannelID {
		return discord.Ephemeral(b.session, interaction, msgWrongChannel)
	}

	_, err := b.session.ChannelMessageSendComplex(interaction.ChannelID, &discordgo.MessageSend{
		Content:    stepPanelContent,
		Components: discord.StepRows(b.cfg.StepRoles),
	})
	if err != nil {
		return fmt.Errorf("posting step panel: %w", err)
	}
	return discord.Ephemeral(b.session, interaction, "Posted!")
}

// toggleStep grants the role if the member lacks it and revokes it
// otherwise. Toggles are independent across the six roles.
func (b *Bot) toggleStep(interaction *discordgo.Interaction, roleID string) error {
	if !policy.CanManageRoles(interaction.AppPermissions) {
		return discord.Ephemeral(b.session, interaction, msgBotNoRoles)
	}

	// Custom IDs arrive from the client; only the configured six are
	// honored.
	if !slices.Contains(b.cfg.StepRoles, roleID) {
		return discord.Ephemeral(b.session, interaction, "That button references a role this bot doesn't manage.")
	}

	roleName, ok, err := b.roleName(interaction.GuildID, roleID)
	if err != nil {
		return fmt.Errorf("resolving role %s: %w", roleID, err)
	}
	if !ok {
		return discord.Ephemeral(b.session, interaction, "Role not found — check the configured role IDs.")
	}

	user := actingUser(interaction)
	member, err := b.session.GuildMember(interaction.GuildID, user.ID)
	if err != nil {
		return fmt.Errorf("fetching member %s: %w", user.ID, err)
	}

	if slices.Contains(member.Roles, roleID) {
		if err := b.session.GuildMemberRoleRemove(interaction.GuildID, user.ID, roleID); err != nil {
			if discord.IsMissingPermissions(err) {
				return discord.Ephemeral(b.session, interaction, msgRoleHierarchy)
			}
			return fmt.Errorf("removing role %s: %w", roleID, err)
		}
		return discord.Ephemeral(b.session, interaction, fmt.Sprintf("❌ Removed **%s**.", roleName))
	}

	if err := b.session.GuildMemberRoleAdd(interaction.GuildID, user.ID, roleID); err != nil {
		if discord.IsMissingPermissions(err) {
			return discord.Ephemeral(b.session, interaction, msgRoleHierarchy)
		}
		return fmt.Errorf("adding role %s: %w", roleID, err)
	}
	return discord.Ephemeral(b.session, interaction, fmt.Sprintf("✅ Granted **%s**.", roleName))
}

// clearSteps removes every configured step role the member currently
// holds, reporting a no-op when there are none.
func (b *Bot) clearSteps(interaction *discordgo.Interaction) error {
	if !policy.CanManageRoles(interaction.AppPermissions) {
		return discord.Ephemeral(b.session, interaction, msgBotNoRoles)
	}

	user := actingUser(interaction)
	member, err := b.session.GuildMember(interaction.GuildID, user.ID)
	if err != nil {
		return fmt.Errorf("fetching member %s: %w", user.ID, err)
	}

	var held []string
	for _, roleID := range b.cfg.StepRoles {
		if slices.Contains(member.Roles, roleID) {
			held = append(held, roleID)
		}
	}
	if len(held) == 0 {
		return discord.Ephemeral(b.session, interaction, "You don't have any step roles right now.")
	}

	for _, roleID := range held {
		if err := b.session.GuildMemberRoleRemove(interaction.GuildID, user.ID, roleID); err != nil {
			return fmt.Errorf("removing role %s: %w", roleID, err)
		}
	}
	return discord.Ephemeral(b.session, interaction, "🧹 Removed all step roles.")
}

// roleName resolves a role's display name. ok is false when the role
// has been deleted from the guild.
func (b *Bot) roleName(guildID, roleID string) (string, bool, error) {
	roles, err := b.session.GuildRoles(guildID)
	if err != nil {
		return "", false, err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return role.Name, true, nil
		}
	}
	return "", false, nil
}
