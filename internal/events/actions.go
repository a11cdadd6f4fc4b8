package events

import "fmt"

// Action is a named sub-behavior of exactly one event. Each event declares its own
// action type, so an action can never be paired with a foreign event.
type Action interface {
	Event() Name
	String() string
}

// ActionName constrains generic helpers to the concrete per-event action types.
type ActionName interface {
	~string
	Action
}

type (
	ReadyAction                     string
	InteractionAction               string
	GuildMemberAddAction            string
	GuildMemberUpdateAction         string
	MessageCreateAction             string
	MessageDeleteAction             string
	MessageReactionAddAction        string
	MessageReactionRemoveAction     string
	GuildScheduledEventCreateAction string
	GuildScheduledEventUpdateAction string
	GuildScheduledEventDeleteAction string
	ButtonAction                    string
	SelectMenuAction                string
	ModalAction                     string
)

const (
	ReadyRegisterCommands ReadyAction = "onReadyAction1"

	// Interaction actions are slash command names.
	InteractionMaintenance InteractionAction = "maintenance"
	InteractionPing        InteractionAction = "ping"

	GuildMemberAddWelcome      GuildMemberAddAction            = "onGuildMemberAddAction1"
	GuildMemberUpdateRoles     GuildMemberUpdateAction         = "onGuildMemberUpdateAction1"
	MessageCreateReply         MessageCreateAction             = "onMessageCreateAction1"
	MessageDeleteAudit         MessageDeleteAction             = "onMessageDeleteAction1"
	MessageReactionAddRole     MessageReactionAddAction        = "onMessageReactionAddAction1"
	MessageReactionRemoveRole  MessageReactionRemoveAction     = "onMessageReactionRemoveAction1"
	ScheduledEventCreateNotify GuildScheduledEventCreateAction = "onGuildScheduledEventCreateAction1"
	ScheduledEventUpdateNotify GuildScheduledEventUpdateAction = "onGuildScheduledEventUpdateAction1"
	ScheduledEventDeleteNotify GuildScheduledEventDeleteAction = "onGuildScheduledEventDeleteAction1"
	ButtonPress                ButtonAction                    = "onGetButtonAction1"
	SelectMenuPick             SelectMenuAction                = "onGetSelectMenuAction1"
	ModalSubmit                ModalAction                     = "onGetModalAction1"
)

func (ReadyAction) Event() Name                     { return Ready }
func (InteractionAction) Event() Name               { return Interaction }
func (GuildMemberAddAction) Event() Name            { return GuildMemberAdd }
func (GuildMemberUpdateAction) Event() Name         { return GuildMemberUpdate }
func (MessageCreateAction) Event() Name             { return MessageCreate }
func (MessageDeleteAction) Event() Name             { return MessageDelete }
func (MessageReactionAddAction) Event() Name        { return MessageReactionAdd }
func (MessageReactionRemoveAction) Event() Name     { return MessageReactionRemove }
func (GuildScheduledEventCreateAction) Event() Name { return GuildScheduledEventCreate }
func (GuildScheduledEventUpdateAction) Event() Name { return GuildScheduledEventUpdate }
func (GuildScheduledEventDeleteAction) Event() Name { return GuildScheduledEventDelete }
func (ButtonAction) Event() Name                    { return GetButtons }
func (SelectMenuAction) Event() Name                { return GetSelectMenus }
func (ModalAction) Event() Name                     { return GetModals }

func (a ReadyAction) String() string                     { return string(a) }
func (a InteractionAction) String() string               { return string(a) }
func (a GuildMemberAddAction) String() string            { return string(a) }
func (a GuildMemberUpdateAction) String() string         { return string(a) }
func (a MessageCreateAction) String() string             { return string(a) }
func (a MessageDeleteAction) String() string             { return string(a) }
func (a MessageReactionAddAction) String() string        { return string(a) }
func (a MessageReactionRemoveAction) String() string     { return string(a) }
func (a GuildScheduledEventCreateAction) String() string { return string(a) }
func (a GuildScheduledEventUpdateAction) String() string { return string(a) }
func (a GuildScheduledEventDeleteAction) String() string { return string(a) }
func (a ButtonAction) String() string                    { return string(a) }
func (a SelectMenuAction) String() string                { return string(a) }
func (a ModalAction) String() string                     { return string(a) }

// declared lists the actions each event handler knows about. Not every declared action
// is set or read anywhere; new ones are added here as handlers grow.
var declared = map[Name][]Action{
	Ready:                     {ReadyRegisterCommands},
	Interaction:               {InteractionMaintenance, InteractionPing},
	GuildMemberAdd:            {GuildMemberAddWelcome},
	GuildMemberUpdate:         {GuildMemberUpdateRoles},
	MessageCreate:             {MessageCreateReply},
	MessageDelete:             {MessageDeleteAudit},
	MessageReactionAdd:        {MessageReactionAddRole},
	MessageReactionRemove:     {MessageReactionRemoveRole},
	GuildScheduledEventCreate: {ScheduledEventCreateNotify},
	GuildScheduledEventUpdate: {ScheduledEventUpdateNotify},
	GuildScheduledEventDelete: {ScheduledEventDeleteNotify},
	GetButtons:                {ButtonPress},
	GetSelectMenus:            {SelectMenuPick},
	GetModals:                 {ModalSubmit},
}

// Actions returns the actions declared for event.
func Actions(event Name) []Action {
	src := declared[event]
	out := make([]Action, len(src))
	copy(out, src)
	return out
}

// ParseAction resolves a declared action of event by its identifier.
func ParseAction(event Name, s string) (Action, error) {
	for _, a := range declared[event] {
		if a.String() == s {
			return a, nil
		}
	}
	return nil, fmt.Errorf("unknown action %q for event %q", s, event)
}
