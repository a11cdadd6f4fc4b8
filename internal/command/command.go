// Package command is the slash command core: a command has a name, a description and
// Run(ctx, invocation). Registration with Discord and dispatch live in internal/discord.
package command

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Responder replies to the interaction a command was invoked from.
type Responder interface {
	RespondEmbedEphemeral(embed *discordgo.MessageEmbed) error
}

// Invocation carries what a command needs from the interaction.
type Invocation struct {
	GuildID   string
	ChannelID string
	User      *discordgo.User

	// Permissions are the invoking member's permissions in the channel.
	Permissions int64
	Options     []*discordgo.ApplicationCommandInteractionDataOption

	// Latency is the gateway heartbeat latency at dispatch time.
	Latency time.Duration
	Reply   Responder
}

// Command is identity plus execution.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// SlashProvider is implemented by commands that register as guild slash commands.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// MaintenanceExempt is implemented by commands that must keep working while the
// interaction event is suspended.
type MaintenanceExempt interface {
	MaintenanceExempt() bool
}

// IsExempt reports whether c opts out of maintenance gating. A command wrapped by
// WithMaintenanceGate is never exempt.
func IsExempt(c Command) bool {
	if _, gated := GatedAction(c); gated {
		return false
	}
	e, ok := Root(c).(MaintenanceExempt)
	return ok && e.MaintenanceExempt()
}

// Definition returns the slash definition of c, or nil.
func Definition(c Command) *discordgo.ApplicationCommand {
	if p, ok := Root(c).(SlashProvider); ok {
		return p.SlashDefinition()
	}
	return nil
}

const embedColor = 0xb01e66

func option(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range opts {
		if o.Name == name {
			return o
		}
	}
	return nil
}
