// Package discord connects the maintenance gate and the command registry to a Discord
// gateway session.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-warden/internal/command"
	"github.com/keshon/server-warden/internal/events"
	"github.com/keshon/server-warden/internal/logger"
	"github.com/keshon/server-warden/internal/maintenance"
	"github.com/keshon/server-warden/internal/messages"
)

type Options struct {
	// GuildID is the guild slash commands are registered in.
	GuildID string
	// Mirror sends gate blocks and lifecycle entries to the guild log channel.
	Mirror bool
}

// Bot is a Discord bot
type Bot struct {
	dg       *discordgo.Session
	gate     *maintenance.Gate
	log      *logger.Logger
	commands *command.Registry
	opts     Options

	reply func(*discordgo.Session, *discordgo.InteractionCreate) replier
}

func New(dg *discordgo.Session, gate *maintenance.Gate, log *logger.Logger, commands *command.Registry, opts Options) *Bot {
	return &Bot{
		dg:       dg,
		gate:     gate,
		log:      log,
		commands: commands,
		opts:     opts,
		reply:    sessionReplier,
	}
}

// Run opens the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.dg.Identify.Intents = discordgo.IntentsAll

	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onInteractionCreate)
	b.dg.AddHandler(b.onGuildMemberAdd)
	b.dg.AddHandler(b.onGuildMemberUpdate)
	b.dg.AddHandler(b.onMessageCreate)
	b.dg.AddHandler(b.onMessageDelete)
	b.dg.AddHandler(b.onMessageReactionAdd)
	b.dg.AddHandler(b.onMessageReactionRemove)
	b.dg.AddHandler(b.onGuildScheduledEventCreate)
	b.dg.AddHandler(b.onGuildScheduledEventUpdate)
	b.dg.AddHandler(b.onGuildScheduledEventDelete)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	b.log.Zerolog().Info().Msg("shutdown signal received, closing session")
	return nil
}

// registerCommands replaces the guild slash commands with the registered definitions.
func (b *Bot) registerCommands(s *discordgo.Session, appID string) error {
	defs := b.commands.Definitions()
	if _, err := s.ApplicationCommandBulkOverwrite(appID, b.opts.GuildID, defs); err != nil {
		return fmt.Errorf("overwrite commands for guild %s: %w", b.opts.GuildID, err)
	}
	return nil
}

func (b *Bot) locale() messages.Locale { return b.log.Locale() }

// gateOptions attributes a block to u. Without a user nothing is logged.
func (b *Bot) gateOptions(u *discordgo.User, guildID string) maintenance.Options {
	if u == nil {
		return maintenance.Options{}
	}
	actor := logger.ActorFromUser(u)
	opts := maintenance.Options{User: &actor}
	if b.opts.Mirror && guildID != "" {
		opts.Delivery = &logger.Delivery{GuildID: guildID}
	}
	return opts
}

// guard is the outermost boundary of every handler.
func (b *Bot) guard(event events.Name) {
	if r := recover(); r != nil {
		b.log.Zerolog().Debug().
			Str("event", event.String()).
			Interface("panic", r).
			Msg(messages.Unknown.In(b.locale()))
	}
}

// handled marks the point where an action's work runs.
func (b *Bot) handled(action events.Action) {
	b.log.Zerolog().Debug().
		Str("event", action.Event().String()).
		Str("action", action.String()).
		Msg("handled")
}

func (b *Bot) skipBot(event events.Name, u *discordgo.User) {
	b.log.Zerolog().Debug().
		Str("event", event.String()).
		Str("user", u.ID).
		Msg(messages.UserIsBot.In(b.locale()))
}

// isSelf reports whether id is the bot's own user.
func isSelf(s *discordgo.Session, id string) bool {
	return s != nil && s.State != nil && s.State.User != nil && s.State.User.ID == id
}
