package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-warden/internal/events"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return string(events.InteractionPing) }
func (c *PingCommand) Description() string { return "Check bot latency" }

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(ctx context.Context, inv *Invocation) error {
	if inv.Reply == nil {
		return nil
	}
	return inv.Reply.RespondEmbedEphemeral(&discordgo.MessageEmbed{
		Title:       "Pong! 🏓",
		Description: fmt.Sprintf("Latency: %dms", inv.Latency.Milliseconds()),
		Color:       embedColor,
	})
}
