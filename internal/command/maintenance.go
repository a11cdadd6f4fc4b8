package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-warden/internal/events"
	"github.com/keshon/server-warden/internal/logger"
	"github.com/keshon/server-warden/internal/maintenance"
	"github.com/keshon/server-warden/internal/messages"
)

// MaintenanceCommand lets administrators suspend and resume events and actions.
type MaintenanceCommand struct {
	Registry *maintenance.Registry
	Log      *logger.Logger

	// Mirror sends every toggle to the guild log channel.
	Mirror bool
}

func (c *MaintenanceCommand) Name() string            { return string(events.InteractionMaintenance) }
func (c *MaintenanceCommand) Description() string     { return "Suspend or resume bot events and actions" }
func (c *MaintenanceCommand) MaintenanceExempt() bool { return true }

func eventChoices() []*discordgo.ApplicationCommandOptionChoice {
	var out []*discordgo.ApplicationCommandOptionChoice
	for _, e := range events.All() {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: e.String(), Value: e.String()})
	}
	return out
}

func actionChoices() []*discordgo.ApplicationCommandOptionChoice {
	var out []*discordgo.ApplicationCommandOptionChoice
	for _, e := range events.All() {
		for _, a := range events.Actions(e) {
			out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: a.String(), Value: a.String()})
		}
	}
	return out
}

func (c *MaintenanceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionAdministrator)
	eventOpt := func(required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "event",
			Description: "Event name",
			Required:    required,
			Choices:     eventChoices(),
		}
	}
	suspendedOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "suspended",
		Description: "True to suspend, false to resume",
		Required:    true,
	}

	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "event",
				Description: "Suspend or resume a whole event",
				Options:     []*discordgo.ApplicationCommandOption{eventOpt(true), suspendedOpt},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "action",
				Description: "Suspend or resume one action of an event",
				Options: []*discordgo.ApplicationCommandOption{
					eventOpt(true),
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "action",
						Description: "Action name",
						Required:    true,
						Choices:     actionChoices(),
					},
					suspendedOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show what is suspended",
				Options:     []*discordgo.ApplicationCommandOption{eventOpt(false)},
			},
		},
	}
}

func (c *MaintenanceCommand) locale() messages.Locale {
	if c.Log == nil {
		return messages.EN
	}
	return c.Log.Locale()
}

func (c *MaintenanceCommand) Run(ctx context.Context, inv *Invocation) error {
	if len(inv.Options) == 0 {
		return c.reply(inv, "", "No subcommand provided.")
	}

	sub := inv.Options[0]
	switch sub.Name {
	case "event":
		return c.runEvent(inv, sub.Options)
	case "action":
		return c.runAction(inv, sub.Options)
	case "status":
		return c.runStatus(inv, sub.Options)
	default:
		return c.reply(inv, "", fmt.Sprintf("Unknown subcommand: %s", sub.Name))
	}
}

func (c *MaintenanceCommand) runEvent(inv *Invocation, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	ev, suspended, err := parseEventToggle(opts)
	if err != nil {
		return c.reply(inv, "", err.Error())
	}

	c.Registry.SetEventSuspended(ev, suspended)
	text := messages.Toggled(string(ev), "", suspended).In(c.locale())
	c.logToggle(inv, logger.Options{Event: ev, Message: text})
	return c.reply(inv, messages.MaintenanceToggled.In(c.locale()), text)
}

func (c *MaintenanceCommand) runAction(inv *Invocation, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	ev, suspended, err := parseEventToggle(opts)
	if err != nil {
		return c.reply(inv, "", err.Error())
	}
	o := option(opts, "action")
	if o == nil {
		return c.reply(inv, "", "Missing option: action")
	}
	action, err := events.ParseAction(ev, o.StringValue())
	if err != nil {
		return c.reply(inv, "", err.Error())
	}

	c.Registry.SetActionSuspended(action, suspended)
	text := messages.Toggled(string(ev), action.String(), suspended).In(c.locale())
	c.logToggle(inv, logger.Options{Event: ev, Action: action, Message: text})
	return c.reply(inv, messages.MaintenanceToggled.In(c.locale()), text)
}

func parseEventToggle(opts []*discordgo.ApplicationCommandInteractionDataOption) (events.Name, bool, error) {
	eo := option(opts, "event")
	so := option(opts, "suspended")
	if eo == nil || so == nil {
		return "", false, fmt.Errorf("missing option: event and suspended are required")
	}
	ev, err := events.Parse(eo.StringValue())
	if err != nil {
		return "", false, err
	}
	return ev, so.BoolValue(), nil
}

func (c *MaintenanceCommand) logToggle(inv *Invocation, opts logger.Options) {
	if c.Log == nil {
		return
	}
	opts.Title = messages.MaintenanceToggled.In(c.locale())
	opts.Status = logger.LevelWarning
	if c.Mirror && inv.GuildID != "" {
		opts.Delivery = &logger.Delivery{GuildID: inv.GuildID}
	}
	c.Log.Warning(logger.ActorFromUser(inv.User), opts)
}

func (c *MaintenanceCommand) runStatus(inv *Invocation, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	list := events.All()
	if o := option(opts, "event"); o != nil {
		ev, err := events.Parse(o.StringValue())
		if err != nil {
			return c.reply(inv, "", err.Error())
		}
		list = []events.Name{ev}
	}

	desc := StatusReport(c.Registry, list)
	if desc == "" {
		desc = messages.NothingSuspended.In(c.locale())
	}
	return c.reply(inv, messages.MaintenanceStatus.In(c.locale()), desc)
}

// StatusReport lists the suspended events and actions among list, one per line.
func StatusReport(r *maintenance.Registry, list []events.Name) string {
	var sb strings.Builder
	flags := r.ManySuspendedEvents(list)
	for _, ev := range list {
		var suspended []string
		for a, on := range r.AllActionStatuses(ev) {
			if on {
				suspended = append(suspended, a)
			}
		}
		sort.Strings(suspended)

		if !flags[ev] && len(suspended) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "**%s**", ev)
		if flags[ev] {
			sb.WriteString(" 🛑")
		}
		sb.WriteString("\n")
		for _, a := range suspended {
			fmt.Fprintf(&sb, "- `%s` 🛑\n", a)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (c *MaintenanceCommand) reply(inv *Invocation, title, text string) error {
	if inv.Reply == nil {
		return nil
	}
	return inv.Reply.RespondEmbedEphemeral(&discordgo.MessageEmbed{
		Title:       title,
		Description: text,
		Color:       embedColor,
	})
}
