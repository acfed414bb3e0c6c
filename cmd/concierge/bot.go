// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/bureau-foundation/concierge/discord"
	"github.com/bureau-foundation/concierge/lib/config"
	"github.com/bureau-foundation/concierge/lib/pending"
	"github.com/bureau-foundation/concierge/lib/store"
)

// User-visible responses. Denials name the specific policy reason;
// platform failures collapse to the generic hint so internal detail
// never leaks into the channel.
const (
	msgGuildOnly      = "Run this command inside a server."
	msgWrongChannel   = "This command only works in the designated channel."
	msgAdminOnly      = "Only administrators can run this command."
	msgBotNoChannels  = "The bot needs the **Manage Channels** permission."
	msgBotNoRoles     = "The bot needs the **Manage Roles** permission."
	msgNameLength     = "Names must be between 1 and 100 characters."
	msgTargetLocked   = "That category is **locked**, so new channels can't be created in it."
	msgSourceLocked   = "This channel is inside a **locked** category and can't be moved."
	msgDestLocked     = "The destination category is **locked**."
	msgRoleHierarchy  = "The bot's role must sit above the step roles to manage them."
	msgStaleToken     = "That panel has expired or isn't yours — start again from the provisioning panel."
	msgSelectChannel  = "Select a channel first."
	msgChannelGone    = "That channel no longer exists."
	msgCancelled      = "Cancelled. Nothing was changed."
	msgGenericFailure = "Something went wrong. Check the bot's permissions (Manage Channels / Manage Roles) and that its role sits above the ones it manages."
)

// Bot holds the wiring for one guild deployment. All interaction
// handling goes through HandleInteraction; everything else hangs off
// the injected collaborators so tests can fake them.
type Bot struct {
	session discord.Session
	store   store.Store
	pending *pending.Registry
	cfg     *config.Config
	logger  *slog.Logger
}

// HandleInteraction is the top-level entry for every platform-delivered
// interaction. Handler errors are logged and answered with the generic
// hint; they never propagate (one bad interaction must not affect the
// next).
func (b *Bot) HandleInteraction(interaction *discordgo.Interaction) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("interaction handler panicked",
				"type", interaction.Type.String(),
				"guild", interaction.GuildID,
				"panic", r,
			)
		}
	}()
	if err := b.dispatch(interaction); err != nil {
		b.logger.Error("interaction failed",
			"type", interaction.Type.String(),
			"guild", interaction.GuildID,
			"error", err,
		)
		if err := discord.Ephemeral(b.session, interaction, msgGenericFailure); err != nil {
			b.logger.Debug("failure response not delivered", "error", err)
		}
	}
}

func (b *Bot) dispatch(interaction *discordgo.Interaction) error {
	if interaction.GuildID == "" {
		return discord.Ephemeral(b.session, interaction, msgGuildOnly)
	}

	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		return b.handleCommand(interaction)
	case discordgo.InteractionMessageComponent:
		return b.handleComponent(interaction)
	case discordgo.InteractionModalSubmit:
		return b.handleModal(interaction)
	default:
		return nil
	}
}

func (b *Bot) handleCommand(interaction *discordgo.Interaction) error {
	data := interaction.ApplicationCommandData()
	switch data.Name {
	case discord.CmdPostSteps:
		return b.postSteps(interaction)
	case discord.CmdPostPanel:
		return b.postPanel(interaction)
	case discord.CmdCreate:
		return b.createChannelCommand(interaction, data)
	case discord.CmdCreateCat:
		return b.createCategory(interaction, data)
	case discord.CmdMove:
		return b.moveChannelCommand(interaction, data)
	case discord.CmdCategoryLock:
		return b.categoryLock(interaction, data)
	case discord.CmdResetQuota:
		return b.resetQuota(interaction, data)
	default:
		b.logger.Warn("unknown command", "name", data.Name)
		return nil
	}
}

func (b *Bot) handleComponent(interaction *discordgo.Interaction) error {
	data := interaction.MessageComponentData()
	name, arg := discord.ParseCustomID(data.CustomID)

	switch name {
	case discord.IDStepToggle:
		return b.toggleStep(interaction, arg)
	case discord.IDStepClear:
		return b.clearSteps(interaction)
	case discord.IDPanelCreate:
		return discord.Modal(b.session, interaction, discord.NameModal())
	case discord.IDPanelMove:
		return b.startMoveWizard(interaction)
	case discord.IDCreateCategory:
		return b.wizardSelectCategory(interaction, arg, pending.KindCreate, data.Values)
	case discord.IDCreateClearCat:
		return b.wizardClearCategory(interaction, arg, pending.KindCreate)
	case discord.IDCreateConfirm:
		return b.confirmCreate(interaction, arg)
	case discord.IDCreateCancel:
		return b.cancelWizard(interaction, arg)
	case discord.IDMoveChannel:
		return b.wizardSelectChannel(interaction, arg, data.Values)
	case discord.IDMoveCategory:
		return b.wizardSelectCategory(interaction, arg, pending.KindMove, data.Values)
	case discord.IDMoveClearCat:
		return b.wizardClearCategory(interaction, arg, pending.KindMove)
	case discord.IDMoveConfirm:
		return b.confirmMove(interaction, arg)
	case discord.IDMoveCancel:
		return b.cancelWizard(interaction, arg)
	default:
		b.logger.Warn("unknown component", "custom_id", data.CustomID)
		return nil
	}
}

func (b *Bot) handleModal(interaction *discordgo.Interaction) error {
	data := interaction.ModalSubmitData()
	name, _ := discord.ParseCustomID(data.CustomID)
	if name == discord.IDCreateNameModal {
		return b.startCreateWizard(interaction, discord.ModalName(data))
	}
	b.logger.Warn("unknown modal", "custom_id", data.CustomID)
	return nil
}

// actingUser returns the user behind an interaction. Inside a guild
// that is always the member's user.
func actingUser(interaction *discordgo.Interaction) *discordgo.User {
	if interaction.Member != nil {
		return interaction.Member.User
	}
	return interaction.User
}

// auditReason formats the audit-log attribution attached to platform
// mutations.
func auditReason(operation string, user *discordgo.User) string {
	return fmt.Sprintf("%s by %s (%s)", operation, user.Username, user.ID)
}

// option scans command options (or subcommand options) by name.
func option(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt := option(options, name); opt != nil {
		return opt.StringValue()
	}
	return ""
}

func optionChannelID(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt := option(options, name); opt != nil {
		return opt.ChannelValue(nil).ID
	}
	return ""
}

func optionUserID(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt := option(options, name); opt != nil {
		return opt.UserValue(nil).ID
	}
	return ""
}
