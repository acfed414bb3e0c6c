// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// StepRoleCount is the number of step roles the bot manages. Startup
// fails unless exactly this many role IDs are configured.
const StepRoleCount = 6

// envConfig is the environment surface. Everything marked required is
// fatal when missing: the bot cannot run without its platform identity.
type envConfig struct {
	Token          string `env:"DISCORD_TOKEN,required"`
	GuildID        string `env:"GUILD_ID,required"`
	StepsChannelID string `env:"CHANNEL_ID,required"`

	RoleStep1 string `env:"ROLE_STEP1"`
	RoleStep2 string `env:"ROLE_STEP2"`
	RoleStep3 string `env:"ROLE_STEP3"`
	RoleStep4 string `env:"ROLE_STEP4"`
	RoleStep5 string `env:"ROLE_STEP5"`
	RoleStep6 string `env:"ROLE_STEP6"`

	Port       int    `env:"PORT" envDefault:"8080"`
	StorePath  string `env:"STORE_PATH" envDefault:"data/store.json"`
	TuningPath string `env:"CONCIERGE_CONFIG"`
}

// Tuning holds the optional operational knobs, loaded from a single
// YAML file. There is no file discovery: the path comes from the
// CONCIERGE_CONFIG environment variable or the --config flag, nothing
// else. Durations are strings in time.ParseDuration syntax.
type Tuning struct {
	// MaxCreatesPerUser caps channel creations per user per guild.
	MaxCreatesPerUser int `yaml:"max_creates_per_user"`

	// PendingTTL is how long an unconfirmed wizard stays valid.
	PendingTTL string `yaml:"pending_ttl"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// defaultTuning is what a deployment gets with no tuning file.
func defaultTuning() Tuning {
	return Tuning{
		MaxCreatesPerUser: 10,
		PendingTTL:        "15m",
		LogLevel:          "info",
	}
}

// Config is the assembled runtime configuration.
type Config struct {
	// Token is the bot authentication token.
	Token string

	// GuildID is the single guild this deployment serves.
	GuildID string

	// StepsChannelID is the only channel where post-steps may run.
	StepsChannelID string

	// StepRoles are the six toggleable role IDs, in panel order.
	StepRoles []string

	// Port is the liveness endpoint's listen port.
	Port int

	// StorePath is the JSON store document location.
	StorePath string

	Tuning Tuning
}

// Load assembles configuration from the environment plus the optional
// tuning file. tuningPath overrides CONCIERGE_CONFIG when non-empty
// (the --config flag). The returned error is fatal: the caller should
// exit non-zero.
func Load(tuningPath string) (*Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg := &Config{
		Token:          envCfg.Token,
		GuildID:        envCfg.GuildID,
		StepsChannelID: envCfg.StepsChannelID,
		Port:           envCfg.Port,
		StorePath:      envCfg.StorePath,
		Tuning:         defaultTuning(),
	}
	for _, role := range []string{
		envCfg.RoleStep1, envCfg.RoleStep2, envCfg.RoleStep3,
		envCfg.RoleStep4, envCfg.RoleStep5, envCfg.RoleStep6,
	} {
		if strings.TrimSpace(role) != "" {
			cfg.StepRoles = append(cfg.StepRoles, strings.TrimSpace(role))
		}
	}

	if tuningPath == "" {
		tuningPath = envCfg.TuningPath
	}
	if tuningPath != "" {
		if err := cfg.loadTuning(tuningPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTuning merges the YAML tuning file over the defaults. A missing
// file is an error: the path was configured explicitly, and silently
// ignoring it would hide a typo.
func (c *Config) loadTuning(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c.Tuning); err != nil {
		return fmt.Errorf("parsing tuning file %s: %w", path, err)
	}
	return nil
}

// Validate checks the assembled configuration, aggregating every
// problem so a broken deployment is fixed in one pass.
func (c *Config) Validate() error {
	var errs []error

	if len(c.StepRoles) != StepRoleCount {
		errs = append(errs, fmt.Errorf("need exactly %d step roles (ROLE_STEP1..ROLE_STEP%d), have %d",
			StepRoleCount, StepRoleCount, len(c.StepRoles)))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.StorePath == "" {
		errs = append(errs, fmt.Errorf("store path is required"))
	}
	if c.Tuning.MaxCreatesPerUser <= 0 {
		errs = append(errs, fmt.Errorf("max_creates_per_user must be positive, got %d", c.Tuning.MaxCreatesPerUser))
	}
	if _, err := c.PendingTTL(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// PendingTTL parses the configured wizard time-to-live.
func (c *Config) PendingTTL() (time.Duration, error) {
	d, err := time.ParseDuration(c.Tuning.PendingTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid pending_ttl %q: %w", c.Tuning.PendingTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("pending_ttl must be positive, got %q", c.Tuning.PendingTTL)
	}
	return d, nil
}

// LogLevel parses the configured slog level.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Tuning.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log_level %q", c.Tuning.LogLevel)
	}
}
