// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy holds the pure authorization decisions gating every
// provisioning operation: capability checks over Discord permission
// bitfields and the quota/lock gates for channel creation and moves.
//
// Nothing here has side effects. Handlers evaluate a Decision, report
// the Reason on denial, and only then touch the store or the platform.
// Note that CheckCreate's quota read is advisory — the commit path
// must reserve the slot atomically via store.ReserveCreate, since
// interaction handlers interleave.
package policy
