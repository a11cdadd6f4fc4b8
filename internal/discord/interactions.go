package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-warden/internal/command"
	"github.com/keshon/server-warden/internal/events"
	"github.com/keshon/server-warden/internal/maintenance"
	"github.com/keshon/server-warden/internal/messages"
)

const embedColor = 0xb01e66

// replier answers one interaction.
type replier interface {
	command.Responder
	// Acknowledge defers the response to a component or modal submit.
	Acknowledge() error
}

type sessionResponder struct {
	s *discordgo.Session
	i *discordgo.InteractionCreate
}

func sessionReplier(s *discordgo.Session, i *discordgo.InteractionCreate) replier {
	return sessionResponder{s: s, i: i}
}

func (r sessionResponder) RespondEmbedEphemeral(embed *discordgo.MessageEmbed) error {
	return r.s.InteractionRespond(r.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (r sessionResponder) Acknowledge() error {
	return r.s.InteractionRespond(r.i.Interaction, acknowledgement(r.i.Type))
}

// acknowledgement picks the deferred response for an interaction type. A modal
// submit may not come from a message, so it gets an ephemeral "thinking" reply.
func acknowledgement(t discordgo.InteractionType) *discordgo.InteractionResponse {
	if t == discordgo.InteractionModalSubmit {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
		}
	}
	return &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func interactionPermissions(i *discordgo.InteractionCreate) int64 {
	if i.Member != nil {
		return i.Member.Permissions
	}
	return 0
}

// onInteractionCreate fans a raw interaction out to the event it belongs to.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer b.guard(events.Interaction)
	if i == nil || i.Interaction == nil {
		return
	}
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onInteraction(s, i)
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().ComponentType == discordgo.ButtonComponent {
			b.onGetButtons(s, i)
		} else {
			b.onGetSelectMenus(s, i)
		}
	case discordgo.InteractionModalSubmit:
		b.onGetModals(s, i)
	}
}

func (b *Bot) maintenanceNotice(r replier, event events.Name, action string) {
	err := r.RespondEmbedEphemeral(&discordgo.MessageEmbed{
		Title:       messages.MaintenanceTitle.In(b.locale()),
		Description: messages.Maintenance(event.String(), action).In(b.locale()),
		Color:       embedColor,
	})
	if err != nil {
		b.log.Zerolog().Debug().Err(err).Str("event", event.String()).Msg("maintenance notice failed")
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer b.guard(events.Interaction)

	u := interactionUser(i)
	if u == nil || u.Bot {
		return
	}
	data := i.ApplicationCommandData()
	cmd := b.commands.Get(data.Name)
	if cmd == nil {
		b.log.Zerolog().Warn().Str("command", data.Name).Msg("unknown command")
		return
	}

	r := b.reply(s, i)
	if !command.IsExempt(cmd) && b.gate.Blocked(maintenance.ForEvent(events.Interaction, b.gateOptions(u, i.GuildID))) {
		b.maintenanceNotice(r, events.Interaction, "")
		return
	}

	inv := &command.Invocation{
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
		User:        u,
		Permissions: interactionPermissions(i),
		Options:     data.Options,
		Latency:     s.HeartbeatLatency(),
		Reply:       r,
	}
	if err := cmd.Run(context.Background(), inv); err != nil {
		b.log.Zerolog().Error().Err(err).Str("command", data.Name).Msg("command failed")
		return
	}
	if action, ok := command.GatedAction(cmd); ok {
		b.handled(action)
	}
}

// component gates the three component events, which share a shape.
func (b *Bot) component(s *discordgo.Session, i *discordgo.InteractionCreate, event events.Name, action events.Action) {
	u := interactionUser(i)
	if u == nil || u.Bot {
		return
	}
	r := b.reply(s, i)
	opts := b.gateOptions(u, i.GuildID)
	if b.gate.Blocked(maintenance.ForEvent(event, opts)) {
		b.maintenanceNotice(r, event, "")
		return
	}
	if b.gate.Blocked(maintenance.ForAction(action, opts)) {
		b.maintenanceNotice(r, event, action.String())
		return
	}

	b.handled(action)
	if err := r.Acknowledge(); err != nil {
		b.log.Zerolog().Debug().Err(err).Str("event", event.String()).Msg("acknowledge failed")
	}
}

func (b *Bot) onGetButtons(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer b.guard(events.GetButtons)
	b.component(s, i, events.GetButtons, events.ButtonPress)
}

func (b *Bot) onGetSelectMenus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer b.guard(events.GetSelectMenus)
	b.component(s, i, events.GetSelectMenus, events.SelectMenuPick)
}

func (b *Bot) onGetModals(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer b.guard(events.GetModals)
	b.component(s, i, events.GetModals, events.ModalSubmit)
}
