// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package discord is the platform boundary: the slice of the Discord
// REST API the bot calls, the slash command definitions, and the
// component custom-ID scheme shared between the builders that render
// panels and the handlers that parse interactions back.
//
// Handlers depend on the [Session] interface, not *discordgo.Session,
// so tests drive them with an in-memory fake. The gateway connection,
// command registration transport, and component rendering formats all
// belong to discordgo; nothing in this module re-implements them.
package discord
