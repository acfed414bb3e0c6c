// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pending tracks in-flight provisioning wizards. Each wizard
// instance is a partially-filled create or move request stored under
// an opaque token; the token travels inside component custom IDs while
// the user makes selections, and the entry is consumed on confirm or
// cancel, or expires after a TTL.
//
// Expiry is best-effort cleanup, not a correctness boundary: a
// scheduled timer removes entries, and every read re-checks the
// deadline so stale tokens are rejected even before the timer fires.
//
// The registry does not check ownership. Handlers verify Action.Owner
// against the acting user and answer mismatches with the same response
// as an unknown token, revealing nothing about other users' wizards.
package pending
