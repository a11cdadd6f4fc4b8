package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/server-warden/internal/command"
	"github.com/keshon/server-warden/internal/config"
	"github.com/keshon/server-warden/internal/discord"
	"github.com/keshon/server-warden/internal/logger"
	"github.com/keshon/server-warden/internal/maintenance"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "[ERR] config:", err)
		os.Exit(1)
	}

	zl, closer := logger.NewOutput(logger.OutputConfig{
		Level:   cfg.LogLevel,
		Console: true,
		File:    cfg.LogFile,
	})
	defer closer.Close()

	if err := run(cfg, zl); err != nil {
		zl.Error().Err(err).Msg("discord bot error")
		closer.Close()
		os.Exit(1)
	}
	zl.Info().Msg("discord bot exited cleanly")
}

func run(cfg *config.Config, zl zerolog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	mirror := cfg.LogChannelID != ""
	log := logger.New(zl,
		logger.WithSink(discord.NewSessionSink(dg)),
		logger.WithDefaultChannel(cfg.LogChannelID),
		logger.WithLocation(loc),
		logger.WithRate(cfg.LogChannelRate),
		logger.WithLocale(cfg.MessageLocale()),
	)
	defer log.Close()

	reg := maintenance.NewRegistry()
	gate := maintenance.NewGate(reg, log)

	locale := cfg.MessageLocale()
	cmds := command.NewRegistry()
	cmds.Register(&command.PingCommand{},
		command.WithGuildOnly(locale),
		command.WithMaintenanceGate(gate, mirror),
	)
	cmds.Register(&command.MaintenanceCommand{Registry: reg, Log: log, Mirror: mirror},
		command.WithGuildOnly(locale),
		command.WithAdministrator(locale),
	)

	zl.Info().Str("guild", cfg.GuildID).Bool("log_channel", mirror).Msg("starting discord bot")
	bot := discord.New(dg, gate, log, cmds, discord.Options{GuildID: cfg.GuildID, Mirror: mirror})
	return bot.Run(ctx)
}
