// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Slash command names. The handlers switch on these, so they live next
// to the definitions.
const (
	CmdPostSteps    = "post-steps"
	CmdPostPanel    = "post-panel"
	CmdCreate       = "create-channel"
	CmdCreateCat    = "create-category"
	CmdMove         = "move-channel"
	CmdCategoryLock = "category-lock"
	CmdResetQuota   = "reset-channel-quota"
)

// Commands returns the guild command set. maxCreates appears in the
// create-channel description so the quota is visible in the command
// picker.
func Commands(maxCreates int) []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionManageServer)
	categoryTypes := []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory}
	textTypes := []discordgo.ChannelType{discordgo.ChannelTypeGuildText}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CmdPostSteps,
			Description: "Post the step-role toggle panel",
		},
		{
			Name:                     CmdPostPanel,
			Description:              "Post the channel provisioning panel",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:        CmdCreate,
			Description: descCreate(maxCreates),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Name for the new text channel",
					Required:    true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "category",
					Description:  "Category to create it under (optional)",
					ChannelTypes: categoryTypes,
				},
			},
		},
		{
			Name:        CmdCreateCat,
			Description: "Create a new category",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Name for the new category",
					Required:    true,
				},
			},
		},
		{
			Name:        CmdMove,
			Description: "Move a channel to another category (locked categories excluded)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "Text channel to move",
					Required:     true,
					ChannelTypes: textTypes,
				},
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "category",
					Description:  "Destination category (omit to clear the category)",
					ChannelTypes: categoryTypes,
				},
			},
		},
		{
			Name:                     CmdCategoryLock,
			Description:              "Manage locked categories (administrators only)",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Lock a category",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         "category",
							Description:  "Category to lock",
							Required:     true,
							ChannelTypes: categoryTypes,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Unlock a category",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         "category",
							Description:  "Category to unlock",
							Required:     true,
							ChannelTypes: categoryTypes,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List locked categories",
				},
			},
		},
		{
			Name:                     CmdResetQuota,
			Description:              "Reset channel-creation counts (administrators only)",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Reset only this user (omit to reset everyone)",
				},
			},
		},
	}
}

func descCreate(maxCreates int) string {
	return fmt.Sprintf("Create a new text channel (up to %d per user)", maxCreates)
}
