// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setRequiredEnv populates the minimum viable environment.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("GUILD_ID", "guild-1")
	t.Setenv("CHANNEL_ID", "chan-1")
	for i, id := range []string{"r1", "r2", "r3", "r4", "r5", "r6"} {
		t.Setenv("ROLE_STEP"+string(rune('1'+i)), id)
	}
	// Keep ambient values from the host out of the test.
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_PATH", "data/store.json")
	t.Setenv("CONCIERGE_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Token != "test-token" || cfg.GuildID != "guild-1" || cfg.StepsChannelID != "chan-1" {
		t.Errorf("identity = %q/%q/%q", cfg.Token, cfg.GuildID, cfg.StepsChannelID)
	}
	if len(cfg.StepRoles) != 6 || cfg.StepRoles[0] != "r1" || cfg.StepRoles[5] != "r6" {
		t.Errorf("StepRoles = %v", cfg.StepRoles)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Tuning.MaxCreatesPerUser != 10 {
		t.Errorf("MaxCreatesPerUser = %d, want 10", cfg.Tuning.MaxCreatesPerUser)
	}
	ttl, err := cfg.PendingTTL()
	if err != nil || ttl != 15*time.Minute {
		t.Errorf("PendingTTL = %v, %v; want 15m", ttl, err)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelInfo {
		t.Errorf("LogLevel = %v, %v; want info", level, err)
	}
}

func TestLoadMissingToken(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("DISCORD_TOKEN")

	if _, err := Load(""); err == nil {
		t.Fatal("Load without DISCORD_TOKEN succeeded")
	}
}

func TestLoadRequiresSixRoles(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ROLE_STEP4", "")

	_, err := Load("")
	if err == nil {
		t.Fatal("Load with five roles succeeded")
	}
	if !strings.Contains(err.Error(), "step roles") {
		t.Errorf("error %q does not mention step roles", err)
	}
}

func TestLoadTuningFile(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "concierge.yaml")
	tuning := `
max_creates_per_user: 3
pending_ttl: 5m
log_level: debug
`
	if err := os.WriteFile(path, []byte(tuning), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tuning.MaxCreatesPerUser != 3 {
		t.Errorf("MaxCreatesPerUser = %d, want 3", cfg.Tuning.MaxCreatesPerUser)
	}
	if ttl, _ := cfg.PendingTTL(); ttl != 5*time.Minute {
		t.Errorf("PendingTTL = %v, want 5m", ttl)
	}
	if level, _ := cfg.LogLevel(); level != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", level)
	}
}

func TestLoadTuningFileViaEnv(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "concierge.yaml")
	if err := os.WriteFile(path, []byte("max_creates_per_user: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONCIERGE_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tuning.MaxCreatesPerUser != 7 {
		t.Errorf("MaxCreatesPerUser = %d, want 7", cfg.Tuning.MaxCreatesPerUser)
	}
}

func TestLoadMissingTuningFileIsFatal(t *testing.T) {
	setRequiredEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load with missing tuning file succeeded")
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := &Config{
		StepRoles: []string{"only-one"},
		Port:      0,
		StorePath: "",
		Tuning:    Tuning{MaxCreatesPerUser: 0, PendingTTL: "never", LogLevel: "loud"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate on broken config succeeded")
	}
	for _, want := range []string{"step roles", "port", "store path", "max_creates_per_user", "pending_ttl", "log_level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("aggregated error missing %q: %v", want, err)
		}
	}
}
