package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-warden/internal/events"
	"github.com/keshon/server-warden/internal/logger"
	"github.com/keshon/server-warden/internal/maintenance"
	"github.com/keshon/server-warden/internal/messages"
)

// Middleware wraps a command; the result is still a Command.
type Middleware func(Command) Command

// Apply applies middlewares in order; the first in the list is the outermost.
func Apply(c Command, mws ...Middleware) Command {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}

func deny(inv *Invocation, title, text string) error {
	if inv.Reply == nil {
		return nil
	}
	return inv.Reply.RespondEmbedEphemeral(&discordgo.MessageEmbed{
		Title:       title,
		Description: text,
		Color:       embedColor,
	})
}

// WithGuildOnly refuses invocations outside a guild.
func WithGuildOnly(locale messages.Locale) Middleware {
	return func(c Command) Command {
		return Wrap(c, func(ctx context.Context, inv *Invocation) error {
			if inv.GuildID == "" {
				return deny(inv, "", messages.GuildOnly.In(locale))
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithAdministrator refuses members without the Administrator permission.
func WithAdministrator(locale messages.Locale) Middleware {
	return func(c Command) Command {
		return Wrap(c, func(ctx context.Context, inv *Invocation) error {
			if inv.Permissions&discordgo.PermissionAdministrator == 0 {
				return deny(inv, "", messages.AdminOnly.In(locale))
			}
			return c.Run(ctx, inv)
		})
	}
}

// WithMaintenanceGate blocks the command while its onInteraction action is suspended.
// The block is logged for the invoking user and, when mirror is set, sent to the log
// channel of the guild.
func WithMaintenanceGate(g *maintenance.Gate, mirror bool) Middleware {
	return func(c Command) Command {
		action := events.InteractionAction(c.Name())
		return gatedWrap(c, action, func(ctx context.Context, inv *Invocation) error {
			var opts maintenance.Options
			if inv.User != nil {
				actor := logger.ActorFromUser(inv.User)
				opts.User = &actor
				if mirror && inv.GuildID != "" {
					opts.Delivery = &logger.Delivery{GuildID: inv.GuildID}
				}
			}
			if g.Blocked(maintenance.ForAction(action, opts)) {
				locale := messages.EN
				if l := g.Logger(); l != nil {
					locale = l.Locale()
				}
				return deny(inv, messages.MaintenanceTitle.In(locale),
					messages.Maintenance(string(events.Interaction), string(action)).In(locale))
			}
			return c.Run(ctx, inv)
		})
	}
}
