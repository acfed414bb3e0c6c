// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/bureau-foundation/concierge/discord"
	"github.com/bureau-foundation/concierge/lib/policy"
)

// categoryLock dispatches the /category-lock subcommands. All three are
// administrator-only; the registration-time gate is re-checked because
// server owners can loosen command permissions after registration.
func (b *Bot) categoryLock(interaction *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) error {
	if !policy.IsAdministrator(interaction.Member.Permissions) {
		return discord.Ephemeral(b.session, interaction, msgAdminOnly)
	}
	if len(data.Options) == 0 {
		return fmt.Errorf("category-lock without subcommand")
	}

	sub := data.Options[0]
	switch sub.Name {
	case "add":
		return b.lockAdd(interaction, sub.Options)
	case "remove":
		return b.lockRemove(interaction, sub.Options)
	case "list":
		return b.lockList(interaction)
	default:
		return fmt.Errorf("unknown category-lock subcommand %q", sub.Name)
	}
}

func (b *Bot) lockAdd(interaction *discordgo.Interaction, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	categoryID := optionChannelID(options, "category")
	if categoryID == "" {
		return discord.Ephemeral(b.session, interaction, "Select a category to lock.")
	}

	if err := b.store.AddLockedCategory(interaction.GuildID, categoryID); err != nil {
		return fmt.Errorf("locking category %s: %w", categoryID, err)
	}
	return discord.Ephemeral(b.session, interaction, fmt.Sprintf("🔒 Locked <#%s>. Channels can no longer be created there or moved in or out.", categoryID))
}

func (b *Bot) lockRemove(interaction *discordgo.Interaction, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	categoryID := optionChannelID(options, "category")
	if categoryID == "" {
		return discord.Ephemeral(b.session, interaction, "Select a category to unlock.")
	}

	if !b.store.IsLockedCategory(interaction.GuildID, categoryID) {
		return discord.Ephemeral(b.session, interaction, "That category isn't locked.")
	}
	if err := b.store.RemoveLockedCategory(interaction.GuildID, categoryID); err != nil {
		return fmt.Errorf("unlocking category %s: %w", categoryID, err)
	}
	return discord.Ephemeral(b.session, interaction, fmt.Sprintf("🔓 Unlocked <#%s>.", categoryID))
}

// lockList renders the locked categories with their current names.
// Locks on deleted categories are shown by raw ID so they can still be
// removed.
func (b *Bot) lockList(interaction *discordgo.Interaction) error {
	locked := b.store.LockedCategories(interaction.GuildID)
	if len(locked) == 0 {
		return discord.Ephemeral(b.session, interaction, "No categories are locked.")
	}

	names := make(map[string]string)
	channels, err := b.session.GuildChannels(interaction.GuildID)
	if err != nil {
		b.logger.Warn("channel listing failed, showing raw IDs", "guild", interaction.GuildID, "error", err)
	} else {
		for _, channel := range channels {
			if channel.Type == discordgo.ChannelTypeGuildCategory {
				names[channel.ID] = channel.Name
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("🔒 **Locked categories**\n")
	for _, id := range locked {
		if name, ok := names[id]; ok {
			fmt.Fprintf(&sb, "- **%s** (`%s`)\n", name, id)
		} else {
			fmt.Fprintf(&sb, "- `%s` (deleted?)\n", id)
		}
	}
	return discord.Ephemeral(b.session, interaction, sb.String())
}
