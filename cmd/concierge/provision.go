// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/bureau-foundation/concierge/discord"
	"github.com/bureau-foundation/concierge/lib/pending"
	"github.com/bureau-foundation/concierge/lib/policy"
)

const panelContent = "🛠 **Channel provisioning**\n" +
	"Create a new channel or move an existing one. Locked categories are off limits."

// postPanel posts the provisioning panel. Administrators only; the
// registration-time permission gate is re-checked here because
// server owners can override command permissions after registration.
func (b *Bot) postPanel(interaction *discordgo.Interaction) error {
	if !policy.IsAdministrator(interaction.Member.Permissions) {
		return discord.Ephemeral(b.session, interaction, msgAdminOnly)
	}

	_, err := b.session.ChannelMessageSendComplex(interaction.ChannelID, &discordgo.MessageSend{
		Content:    panelContent,
		Components: discord.PanelRows(),
	})
	if err != nil {
		return fmt.Errorf("posting provisioning panel: %w", err)
	}
	return discord.Ephemeral(b.session, interaction, "Posted!")
}

// validName reports whether a channel or category name is acceptable
// after trimming: 1 to 100 characters, matching the platform limit.
func validName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= 100
}

// --- Direct slash-command paths -------------------------------------

// createChannelCommand is the one-shot create path: /create-channel
// with a name and optional category, no wizard.
func (b *Bot) createChannelCommand(interaction *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) error {
	if !policy.CanManageChannels(interaction.AppPermissions) {
		return discord.Ephemeral(b.session, interaction, msgBotNoChannels)
	}

	name := strings.TrimSpace(optionString(data.Options, "name"))
	if !validName(name) {
		return discord.Ephemeral(b.session, interaction, msgNameLength)
	}
	categoryID := optionChannelID(data.Options, "category")

	content, _ := b.commitCreate(interaction, name, categoryID)
	return discord.Ephemeral(b.session, interaction, content)
}

// createCategory creates a category immediately; there is no quota on
// categories and no wizard.
func (b *Bot) createCategory(interaction *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) error {
	if !policy.CanManageChannels(interaction.AppPermissions) {
		return discord.Ephemeral(b.session, interaction, msgBotNoChannels)
	}

	name := strings.TrimSpace(optionString(data.Options, "name"))
	if !validName(name) {
		return discord.Ephemeral(b.session, interaction, msgNameLength)
	}

	user := actingUser(interaction)
	category, err := b.session.GuildChannelCreateComplex(interaction.GuildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildCategory,
	}, discordgo.WithAuditLogReason(auditReason("create-category", user)))
	if err != nil {
		b.logger.Error("category create failed", "guild", interaction.GuildID, "error", err)
		return discord.Ephemeral(b.session, interaction, msgGenericFailure)
	}
	return discord.Ephemeral(b.session, interaction, fmt.Sprintf("✅ Created category **%s**.", category.Name))
}

// moveChannelCommand is the one-shot move path: /move-channel with a
// channel and optional destination category.
func (b *Bot) moveChannelCommand(interaction *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) error {
	if !policy.CanManageChannels(interaction.AppPermissions) {
		return discord.Ephemeral(b.session, interaction, msgBotNoChannels)
	}

	channelID := optionChannelID(data.Options, "channel")
	destID := optionChannelID(data.Options, "category")

	content, _ := b.commitMove(interaction, channelID, destID)
	return discord.Ephemeral(b.session, interaction, content)
}

// --- Wizard paths ---------------------------------------------------

// startCreateWizard mints the pending action after the name modal is
// submitted and presents the category choice.
func (b *Bot) startCreateWizard(interaction *discordgo.Interaction, rawName string) error {
	name := strings.TrimSpace(rawName)
	if !validName(name) {
		return discord.Ephemeral(b.session, interaction, msgNameLength)
	}

	action := pending.Action{
		Owner:   actingUser(interaction).ID,
		GuildID: interaction.GuildID,
		Kind:    pending.KindCreate,
		Name:    name,
	}
	token := b.pending.Create(action)
	return discord.EphemeralPanel(b.session, interaction, createWizardContent(action), discord.CreateWizardRows(token))
}

// startMoveWizard mints the pending action immediately; the channel
// selection happens inside the wizard.
func (b *Bot) startMoveWizard(interaction *discordgo.Interaction) error {
	action := pending.Action{
		Owner:   actingUser(interaction).ID,
		GuildID: interaction.GuildID,
		Kind:    pending.KindMove,
	}
	token := b.pending.Create(action)
	return discord.EphemeralPanel(b.session, interaction, moveWizardContent(action), discord.MoveWizardRows(token))
}

// ownedAction loads the pending action for token and verifies the
// acting user owns it and the kind matches. Any mismatch gets the same
// stale-token answer as a missing token, and reports ok=false.
func (b *Bot) ownedAction(interaction *discordgo.Interaction, token string, kind pending.Kind) (pending.Action, bool, error) {
	action, found := b.pending.Get(token)
	if !found || action.Kind != kind || action.Owner != actingUser(interaction).ID {
		return pending.Action{}, false, discord.Ephemeral(b.session, interaction, msgStaleToken)
	}
	return action, true, nil
}

func (b *Bot) wizardSelectCategory(interaction *discordgo.Interaction, token string, kind pending.Kind, values []string) error {
	if _, ok, err := b.ownedAction(interaction, token, kind); !ok {
		return err
	}
	if len(values) != 1 {
		return discord.Ephemeral(b.session, interaction, msgStaleToken)
	}

	b.pending.Update(token, func(action *pending.Action) {
		action.CategoryID = values[0]
		action.CategoryChosen = true
	})
	return b.refreshWizard(interaction, token, kind)
}

func (b *Bot) wizardClearCategory(interaction *discordgo.Interaction, token string, kind pending.Kind) error {
	if _, ok, err := b.ownedAction(interaction, token, kind); !ok {
		return err
	}

	b.pending.Update(token, func(action *pending.Action) {
		action.CategoryID = ""
		action.CategoryChosen = true
	})
	return b.refreshWizard(interaction, token, kind)
}

func (b *Bot) wizardSelectChannel(interaction *discordgo.Interaction, token string, values []string) error {
	if _, ok, err := b.ownedAction(interaction, token, pending.KindMove); !ok {
		return err
	}
	if len(values) != 1 {
		return discord.Ephemeral(b.session, interaction, msgStaleToken)
	}

	b.pending.Update(token, func(action *pending.Action) {
		action.ChannelID = values[0]
	})
	return b.refreshWizard(interaction, token, pending.KindMove)
}

// refreshWizard re-renders the wizard message after a selection.
func (b *Bot) refreshWizard(interaction *discordgo.Interaction, token string, kind pending.Kind) error {
	action, found := b.pending.Get(token)
	if !found {
		return discord.Ephemeral(b.session, interaction, msgStaleToken)
	}
	if kind == pending.KindCreate {
		return discord.Update(b.session, interaction, createWizardContent(action), discord.CreateWizardRows(token))
	}
	return discord.Update(b.session, interaction, moveWizardContent(action), discord.MoveWizardRows(token))
}

// confirmCreate re-validates lock and quota at confirm time, performs
// the platform create, and consumes the token. Denials leave the token
// intact so the user can adjust the category and retry.
func (b *Bot) confirmCreate(interaction *discordgo.Interaction, token string) error {
	action, ok, err := b.ownedAction(interaction, token, pending.KindCreate)
	if !ok {
		return err
	}

	if !policy.CanManageChannels(interaction.AppPermissions) {
		return discord.Ephemeral(b.session, interaction, msgBotNoChannels)
	}

	content, created := b.commitCreate(interaction, action.Name, action.CategoryID)
	if !created {
		return discord.Ephemeral(b.session, interaction, content)
	}
	b.pending.Delete(token)
	return discord.Update(b.session, interaction, content, nil)
}

// confirmMove requires a selected channel, re-checks both lock
// directions, performs the move, and consumes the token.
func (b *Bot) confirmMove(interaction *discordgo.Interaction, token string) error {
	action, ok, err := b.ownedAction(interaction, token, pending.KindMove)
	if !ok {
		return err
	}

	if !policy.CanManageChannels(interaction.AppPermissions) {
		return discord.Ephemeral(b.session, interaction, msgBotNoChannels)
	}
	if action.ChannelID == "" {
		return discord.Ephemeral(b.session, interaction, msgSelectChannel)
	}

	content, moved := b.commitMove(interaction, action.ChannelID, action.CategoryID)
	if !moved {
		return discord.Ephemeral(b.session, interaction, content)
	}
	b.pending.Delete(token)
	return discord.Update(b.session, interaction, content, nil)
}

// cancelWizard consumes the token with no side effects. Only the owner
// may cancel; the kind doesn't matter.
func (b *Bot) cancelWizard(interaction *discordgo.Interaction, token string) error {
	action, found := b.pending.Get(token)
	if !found || action.Owner != actingUser(interaction).ID {
		return discord.Ephemeral(b.session, interaction, msgStaleToken)
	}
	b.pending.Delete(token)
	return discord.Update(b.session, interaction, msgCancelled, nil)
}

// --- Shared commit paths --------------------------------------------

// commitCreate runs the full at-commit validation (lock, then an
// atomic quota reservation), performs the platform create, and
// reports the user-facing outcome. The reservation is taken before
// the platform call and released if the call fails, so interleaved
// requests cannot overrun the quota.
func (b *Bot) commitCreate(interaction *discordgo.Interaction, name, categoryID string) (string, bool) {
	guildID := interaction.GuildID
	user := actingUser(interaction)
	max := b.cfg.Tuning.MaxCreatesPerUser

	decision := policy.CheckCreate(b.store, guildID, user.ID, categoryID, max)
	if !decision.Allowed && decision.Reason == policy.ReasonTargetLocked {
		return msgTargetLocked, false
	}

	// The quota answer comes from the reservation, not the advisory
	// check above: the check and increment happen under one store lock,
	// so two interleaved confirms cannot both slip past the maximum.
	count, granted, err := b.store.ReserveCreate(guildID, user.ID, max)
	if err != nil {
		b.logger.Error("quota reservation failed", "guild", guildID, "user", user.ID, "error", err)
		return msgGenericFailure, false
	}
	if !granted {
		return fmt.Sprintf("You can create at most **%d** channels. Ask an administrator to reset your quota.", max), false
	}

	channel, err := b.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: categoryID,
	}, discordgo.WithAuditLogReason(auditReason("create-channel", user)))
	if err != nil {
		if releaseErr := b.store.ReleaseCreate(guildID, user.ID); releaseErr != nil {
			b.logger.Error("quota release failed", "guild", guildID, "user", user.ID, "error", releaseErr)
		}
		b.logger.Error("channel create failed", "guild", guildID, "user", user.ID, "error", err)
		return msgGenericFailure, false
	}

	return fmt.Sprintf("✅ Created <#%s> (**%d** of %d used, %d remaining).",
		channel.ID, count, max, max-count), true
}

// commitMove resolves the channel's current category, re-checks both
// lock directions, and performs the platform move.
func (b *Bot) commitMove(interaction *discordgo.Interaction, channelID, destID string) (string, bool) {
	guildID := interaction.GuildID
	user := actingUser(interaction)

	channel, err := b.session.Channel(channelID)
	if err != nil {
		if discord.IsUnknownChannel(err) {
			return msgChannelGone, false
		}
		b.logger.Error("channel lookup failed", "channel", channelID, "error", err)
		return msgGenericFailure, false
	}

	decision := policy.CheckMove(b.store, guildID, channel.ParentID, destID)
	if !decision.Allowed {
		switch decision.Reason {
		case policy.ReasonSourceLocked:
			return msgSourceLocked, false
		default:
			return msgDestLocked, false
		}
	}

	if err := discord.MoveChannel(b.session, channelID, destID, auditReason("move-channel", user)); err != nil {
		b.logger.Error("channel move failed", "channel", channelID, "error", err)
		return msgGenericFailure, false
	}
	return fmt.Sprintf("✅ Moved <#%s>.", channelID), true
}

// --- Wizard rendering -----------------------------------------------

func createWizardContent(action pending.Action) string {
	return fmt.Sprintf("Creating **#%s** — %s", action.Name, categoryPhrase(action))
}

func moveWizardContent(action pending.Action) string {
	channel := "no channel selected yet"
	if action.ChannelID != "" {
		channel = fmt.Sprintf("<#%s>", action.ChannelID)
	}
	return fmt.Sprintf("Moving %s — destination: %s", channel, categoryPhrase(action))
}

// categoryPhrase renders the three category states: not yet chosen,
// explicitly none, and a concrete category.
func categoryPhrase(action pending.Action) string {
	switch {
	case action.CategoryID != "":
		return fmt.Sprintf("category <#%s>", action.CategoryID)
	case action.CategoryChosen:
		return "no category (top level)"
	default:
		return "category not selected (optional)"
	}
}
