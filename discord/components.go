// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Component custom IDs. The step IDs keep the legacy wire
// format so panels posted by the previous deployment keep working.
// Wizard IDs carry the pending-action token after the colon.
const (
	IDStepToggle = "step_toggle" // step_toggle:<roleID>
	IDStepClear  = "step_clear"

	IDPanelCreate = "panel_create"
	IDPanelMove   = "panel_move"

	IDCreateNameModal = "create_name"
	IDCreateCategory  = "create_cat"     // create_cat:<token>
	IDCreateClearCat  = "create_nocat"   // create_nocat:<token>
	IDCreateConfirm   = "create_confirm" // create_confirm:<token>
	IDCreateCancel    = "create_cancel"  // create_cancel:<token>

	IDMoveChannel  = "move_chan"    // move_chan:<token>
	IDMoveCategory = "move_cat"     // move_cat:<token>
	IDMoveClearCat = "move_nocat"   // move_nocat:<token>
	IDMoveConfirm  = "move_confirm" // move_confirm:<token>
	IDMoveCancel   = "move_cancel"  // move_cancel:<token>
)

// modalNameField is the text input ID inside the create-channel modal.
const modalNameField = "channel_name"

// CustomID joins a component name with its argument.
func CustomID(name, arg string) string {
	if arg == "" {
		return name
	}
	return name + ":" + arg
}

// ParseCustomID splits a component custom ID into its name and
// argument. IDs without an argument return an empty arg.
func ParseCustomID(id string) (name, arg string) {
	name, arg, _ = strings.Cut(id, ":")
	return name, arg
}

// StepRows builds the step-role panel: one button per configured role
// (five on the first row, the sixth on the second) plus the clear-all
// button, keeping the panel to two rows.
func StepRows(roleIDs []string) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	for i, roleID := range roleIDs {
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("Step %d", i+1),
			Style:    discordgo.PrimaryButton,
			CustomID: CustomID(IDStepToggle, roleID),
		})
	}

	split := 5
	if len(buttons) < split {
		split = len(buttons)
	}
	row1 := discordgo.ActionsRow{Components: buttons[:split]}
	row2 := discordgo.ActionsRow{Components: append(buttons[split:], discordgo.Button{
		Label:    "Clear all",
		Style:    discordgo.SecondaryButton,
		CustomID: IDStepClear,
	})}
	return []discordgo.MessageComponent{row1, row2}
}

// PanelRows builds the provisioning panel posted by post-panel.
func PanelRows() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Create channel",
				Style:    discordgo.PrimaryButton,
				CustomID: IDPanelCreate,
			},
			discordgo.Button{
				Label:    "Move channel",
				Style:    discordgo.SecondaryButton,
				CustomID: IDPanelMove,
			},
		}},
	}
}

// NameModal builds the channel-name entry modal that starts the create
// wizard. The length bounds are enforced client-side here and
// re-checked server-side on submit.
func NameModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: IDCreateNameModal,
		Title:    "Create a channel",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  modalNameField,
					Label:     "Channel name",
					Style:     discordgo.TextInputShort,
					Required:  true,
					MinLength: 1,
					MaxLength: 100,
				},
			}},
		},
	}
}

// ModalName extracts the submitted channel name from the create modal.
func ModalName(data discordgo.ModalSubmitInteractionData) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			input, ok := component.(*discordgo.TextInput)
			if ok && input.CustomID == modalNameField {
				return input.Value
			}
		}
	}
	return ""
}

// CreateWizardRows builds the create wizard's ephemeral controls: an
// optional category select, an explicit "no category" button, and
// confirm/cancel.
func CreateWizardRows(token string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:     discordgo.ChannelSelectMenu,
				CustomID:     CustomID(IDCreateCategory, token),
				Placeholder:  "Category (optional)",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "No category",
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(IDCreateClearCat, token),
			},
			discordgo.Button{
				Label:    "Create",
				Style:    discordgo.SuccessButton,
				CustomID: CustomID(IDCreateConfirm, token),
			},
			discordgo.Button{
				Label:    "Cancel",
				Style:    discordgo.DangerButton,
				CustomID: CustomID(IDCreateCancel, token),
			},
		}},
	}
}

// MoveWizardRows builds the move wizard's ephemeral controls: the
// required channel select, the optional destination category select,
// an explicit "no category" button, and confirm/cancel.
func MoveWizardRows(token string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:     discordgo.ChannelSelectMenu,
				CustomID:     CustomID(IDMoveChannel, token),
				Placeholder:  "Channel to move",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:     discordgo.ChannelSelectMenu,
				CustomID:     CustomID(IDMoveCategory, token),
				Placeholder:  "Destination category (optional)",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "No category",
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(IDMoveClearCat, token),
			},
			discordgo.Button{
				Label:    "Move",
				Style:    discordgo.SuccessButton,
				CustomID: CustomID(IDMoveConfirm, token),
			},
			discordgo.Button{
				Label:    "Cancel",
				Style:    discordgo.DangerButton,
				CustomID: CustomID(IDMoveCancel, token),
			},
		}},
	}
}
