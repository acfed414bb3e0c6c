// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists per-guild provisioning state: how many
// channels each user has created, and which categories administrators
// have locked against channel creation and moves.
//
// The state is small (one counter per active user, one ID list per
// guild) and contention is low (one chat community, one process), so
// the FileStore implementation keeps the whole document in memory and
// rewrites a single JSON file on every mutation. The [Store] interface
// keeps the backing mechanism swappable without touching callers.
//
// Quota enforcement needs a check-and-increment that is atomic across
// interleaved interaction handlers; [Store.ReserveCreate] provides it.
package store
