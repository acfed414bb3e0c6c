// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package store

// Store is the repository for per-guild provisioning state: channel
// creation counts per user and the set of locked category IDs. The
// backing mechanism is an implementation detail; FileStore persists a
// single JSON document.
//
// Guilds auto-initialize to empty state on first reference — there is
// no "guild not found" error. Absence means defaults: a count of zero,
// no locked categories.
type Store interface {
	// UserCount returns the number of committed channel creations by
	// userID in guildID. Zero if the user has never created one.
	UserCount(guildID, userID string) int

	// SetUserCount overwrites the creation count for one user.
	SetUserCount(guildID, userID string, count int) error

	// ResetAllCounts clears every user's creation count in the guild.
	ResetAllCounts(guildID string) error

	// ReserveCreate atomically claims one creation slot for the user
	// if their count is below max. It returns the count after the
	// reservation and whether the slot was granted. The check and the
	// increment happen under one lock, so two interleaved requests
	// cannot both pass a pre-increment read.
	ReserveCreate(guildID, userID string, max int) (count int, ok bool, err error)

	// ReleaseCreate rolls back one reservation whose platform call
	// failed. It never drops the count below zero.
	ReleaseCreate(guildID, userID string) error

	// IsLockedCategory reports whether the category is locked. Never
	// seen categories are not locked.
	IsLockedCategory(guildID, categoryID string) bool

	// AddLockedCategory adds the category to the locked set.
	// Idempotent: adding an already-locked category is a no-op.
	AddLockedCategory(guildID, categoryID string) error

	// RemoveLockedCategory removes the category from the locked set.
	// Idempotent: removing an unlocked category is a no-op.
	RemoveLockedCategory(guildID, categoryID string) error

	// LockedCategories returns the locked category IDs in insertion
	// order. The returned slice is a copy.
	LockedCategories(guildID string) []string
}
