// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// The concierge binary is a single-guild Discord bot. It posts a
// step-role toggle panel, runs a channel-provisioning workflow (direct
// slash commands and a button-driven wizard) with per-user creation
// quotas and administrator-locked categories, and answers a liveness
// probe over HTTP for the hosting platform.
//
// Required configuration arrives via environment variables (see
// lib/config); operational tuning may come from a YAML file passed
// with --config. State is one JSON document on disk.
package main
