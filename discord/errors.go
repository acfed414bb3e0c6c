// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// IsMissingPermissions reports whether err is the platform's
// missing-permissions rejection. Handlers use it to turn a REST
// failure into the permission hint rather than a generic error.
func IsMissingPermissions(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeMissingPermissions
	}
	return false
}

// IsUnknownChannel reports whether err means the referenced channel no
// longer exists (deleted between selection and confirm).
func IsUnknownChannel(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeUnknownChannel
	}
	return false
}
