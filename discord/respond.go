// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import "github.com/bwmarrin/discordgo"

// Ephemeral answers an interaction with a message only the acting user
// sees.
func Ephemeral(s Session, interaction *discordgo.Interaction, content string) error {
	return s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// EphemeralPanel answers an interaction with an ephemeral message
// carrying components (the wizard controls).
func EphemeralPanel(s Session, interaction *discordgo.Interaction, content string, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Flags:      discordgo.MessageFlagsEphemeral,
			Components: components,
		},
	})
}

// Update rewrites the message the interacted component lives on,
// replacing content and components. Passing nil components strips the
// controls — used when a wizard reaches a terminal state.
func Update(s Session, interaction *discordgo.Interaction, content string, components []discordgo.MessageComponent) error {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	return s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
}

// Modal answers an interaction by opening a modal.
func Modal(s Session, interaction *discordgo.Interaction, data *discordgo.InteractionResponseData) error {
	return s.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
}
