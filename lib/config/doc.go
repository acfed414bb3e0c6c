// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the concierge bot.
//
// Required identity (the bot token, the guild, the step-panel channel,
// and exactly six step role IDs) comes from environment variables and
// is fatal when missing or malformed. Operational tuning (creation
// quota, wizard TTL, log level) has built-in defaults and may be
// overridden by a single YAML file named via
// CONCIERGE_CONFIG or the --config flag. There are no fallbacks and no
// file discovery; configuration stays deterministic and auditable.
package config
