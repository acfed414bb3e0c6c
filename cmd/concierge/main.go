// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/concierge/discord"
	"github.com/bureau-foundation/concierge/lib/clock"
	"github.com/bureau-foundation/concierge/lib/config"
	"github.com/bureau-foundation/concierge/lib/pending"
	"github.com/bureau-foundation/concierge/lib/store"
	"github.com/bureau-foundation/concierge/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "concierge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		tuningPath  = pflag.String("config", "", "path to the YAML tuning file (overrides CONCIERGE_CONFIG)")
		storePath   = pflag.String("store", "", "path to the JSON store document (overrides STORE_PATH)")
		port        = pflag.Int("port", 0, "liveness endpoint port (overrides PORT)")
		showVersion = pflag.Bool("version", false, "print version and exit")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		return nil
	}

	cfg, err := config.Load(*tuningPath)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("starting", "version", version.Info(), "guild", cfg.GuildID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fileStore, err := store.Open(cfg.StorePath, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	ttl, err := cfg.PendingTTL()
	if err != nil {
		return err
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		session: session,
		store:   fileStore,
		pending: pending.New(clock.Real(), ttl),
		cfg:     cfg,
		logger:  logger,
	}
	session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		bot.HandleInteraction(ic.Interaction)
	})
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("gateway ready", "user", r.User.Username)
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("opening gateway connection: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("gateway close", "error", err)
		}
	}()

	commands := discord.Commands(cfg.Tuning.MaxCreatesPerUser)
	if _, err := session.ApplicationCommandBulkOverwrite(session.State.User.ID, cfg.GuildID, commands); err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}
	logger.Info("commands registered", "count", len(commands))

	health := newHealthServer(cfg.Port, logger)
	healthErr := make(chan error, 1)
	go func() {
		healthErr <- health.run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return <-healthErr
	case err := <-healthErr:
		return err
	}
}
