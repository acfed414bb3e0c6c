// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Session is the slice of the Discord API the bot uses. The method
// signatures match *discordgo.Session so the real session satisfies
// the interface directly; tests substitute an in-memory fake.
type Session interface {
	// Channel fetches a channel by ID (used to resolve a channel's
	// current parent category).
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// GuildChannels lists every channel in the guild (used to resolve
	// category names for the lock listing).
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)

	// GuildChannelCreateComplex creates a channel or category.
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// GuildMember fetches a guild member (role membership for the
	// step toggles).
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)

	// GuildMemberRoleAdd grants a role.
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error

	// GuildMemberRoleRemove revokes a role.
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error

	// GuildRoles lists the guild's roles (role names for responses).
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)

	// ChannelMessageSendComplex posts a message with components.
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)

	// InteractionRespond answers an interaction.
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error

	// ApplicationCommandBulkOverwrite replaces the guild's command set.
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)

	// RequestWithBucketID performs a raw REST call. MoveChannel needs
	// it; see there.
	RequestWithBucketID(method, urlStr string, data interface{}, bucketID string, options ...discordgo.RequestOption) ([]byte, error)
}

var _ Session = (*discordgo.Session)(nil)

// MoveChannel reparents a channel. An empty parentID clears the
// category. This goes through a raw PATCH because ChannelEdit's
// parent_id field is tagged omitempty, which cannot express the
// explicit null the API needs for "no category".
func MoveChannel(s Session, channelID, parentID, reason string) error {
	body := struct {
		ParentID *string `json:"parent_id"`
	}{}
	if parentID != "" {
		body.ParentID = &parentID
	}

	var options []discordgo.RequestOption
	if reason != "" {
		options = append(options, discordgo.WithAuditLogReason(reason))
	}

	endpoint := discordgo.EndpointChannel(channelID)
	if _, err := s.RequestWithBucketID("PATCH", endpoint, body, endpoint, options...); err != nil {
		return fmt.Errorf("moving channel %s: %w", channelID, err)
	}
	return nil
}
