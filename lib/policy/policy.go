// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import "github.com/bwmarrin/discordgo"

// View is the read-only slice of the store the policy functions need.
// *store.FileStore satisfies it.
type View interface {
	UserCount(guildID, userID string) int
	IsLockedCategory(guildID, categoryID string) bool
}

// Reason explains a denial.
type Reason int

const (
	// ReasonNone accompanies allowed decisions.
	ReasonNone Reason = iota
	// ReasonQuotaExceeded: the user has used every creation slot.
	ReasonQuotaExceeded
	// ReasonTargetLocked: the creation target category is locked.
	ReasonTargetLocked
	// ReasonSourceLocked: the channel's current category is locked.
	ReasonSourceLocked
	// ReasonDestinationLocked: the move destination category is locked.
	ReasonDestinationLocked
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonQuotaExceeded:
		return "quota exceeded"
	case ReasonTargetLocked:
		return "target category locked"
	case ReasonSourceLocked:
		return "source category locked"
	case ReasonDestinationLocked:
		return "destination category locked"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Reason: r} }

// CanManageChannels reports whether the permission bits include channel
// management. Administrator implies every capability, matching how the
// platform resolves permissions.
func CanManageChannels(permissions int64) bool {
	return permissions&(discordgo.PermissionManageChannels|discordgo.PermissionAdministrator) != 0
}

// CanManageRoles reports whether the permission bits include role
// management.
func CanManageRoles(permissions int64) bool {
	return permissions&(discordgo.PermissionManageRoles|discordgo.PermissionAdministrator) != 0
}

// IsAdministrator reports whether the caller may run administrative
// commands: category locking, quota resets, and panel posting. Manage
// Server qualifies alongside Administrator.
func IsAdministrator(permissions int64) bool {
	return permissions&(discordgo.PermissionAdministrator|discordgo.PermissionManageServer) != 0
}

// CheckCreate decides whether userID may create a channel under
// categoryID (empty means no category) given the per-user maximum.
// Lock status is checked before quota so the user hears about a locked
// target even when their quota is also exhausted.
func CheckCreate(view View, guildID, userID, categoryID string, max int) Decision {
	if categoryID != "" && view.IsLockedCategory(guildID, categoryID) {
		return deny(ReasonTargetLocked)
	}
	if view.UserCount(guildID, userID) >= max {
		return deny(ReasonQuotaExceeded)
	}
	return allow()
}

// CheckMove decides whether a channel currently under srcCategoryID
// may move to dstCategoryID. Both directions are blocked symmetrically:
// a locked category neither releases nor receives channels. Empty IDs
// mean "no category" and are never locked.
func CheckMove(view View, guildID, srcCategoryID, dstCategoryID string) Decision {
	if srcCategoryID != "" && view.IsLockedCategory(guildID, srcCategoryID) {
		return deny(ReasonSourceLocked)
	}
	if dstCategoryID != "" && view.IsLockedCategory(guildID, dstCategoryID) {
		return deny(ReasonDestinationLocked)
	}
	return allow()
}
