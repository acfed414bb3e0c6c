// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/bureau-foundation/concierge/discord"
	"github.com/bureau-foundation/concierge/lib/policy"
)

// resetQuota zeroes creation counters: one user's when the option is
// given, every user's in the guild otherwise. Administrator-only.
func (b *Bot) resetQuota(interaction *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) error {
	if !policy.IsAdministrator(interaction.Member.Permissions) {
		return discord.Ephemeral(b.session, interaction, msgAdminOnly)
	}

	if userID := optionUserID(data.Options, "user"); userID != "" {
		if err := b.store.SetUserCount(interaction.GuildID, userID, 0); err != nil {
			return fmt.Errorf("resetting quota for %s: %w", userID, err)
		}
		b.logger.Info("quota reset", "guild", interaction.GuildID, "user", userID, "by", actingUser(interaction).ID)
		return discord.Ephemeral(b.session, interaction, fmt.Sprintf("♻️ Reset the channel quota for <@%s>.", userID))
	}

	if err := b.store.ResetAllCounts(interaction.GuildID); err != nil {
		return fmt.Errorf("resetting all quotas: %w", err)
	}
	b.logger.Info("quota reset", "guild", interaction.GuildID, "user", "all", "by", actingUser(interaction).ID)
	return discord.Ephemeral(b.session, interaction, "♻️ Reset the channel quota for **everyone**.")
}
