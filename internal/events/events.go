// Package events declares the closed set of platform events the bot subscribes to and,
// for each event, the named sub-actions its handler may perform.
package events

import "fmt"

// Name identifies a platform event handled by the bot.
type Name string

const (
	Ready                     Name = "onReady"
	Interaction               Name = "onInteraction"
	GuildMemberAdd            Name = "onGuildMemberAdd"
	GuildMemberUpdate         Name = "onGuildMemberUpdate"
	MessageCreate             Name = "onMessageCreate"
	MessageDelete             Name = "onMessageDelete"
	MessageReactionAdd        Name = "onMessageReactionAdd"
	MessageReactionRemove     Name = "onMessageReactionRemove"
	GuildScheduledEventCreate Name = "onGuildScheduledEventCreate"
	GuildScheduledEventUpdate Name = "onGuildScheduledEventUpdate"
	GuildScheduledEventDelete Name = "onGuildScheduledEventDelete"
	GetButtons                Name = "onGetButtons"
	GetSelectMenus            Name = "onGetSelectMenus"
	GetModals                 Name = "onGetModals"
)

var all = []Name{
	Ready,
	Interaction,
	GuildMemberAdd,
	GuildMemberUpdate,
	MessageCreate,
	MessageDelete,
	MessageReactionAdd,
	MessageReactionRemove,
	GuildScheduledEventCreate,
	GuildScheduledEventUpdate,
	GuildScheduledEventDelete,
	GetButtons,
	GetSelectMenus,
	GetModals,
}

func (n Name) String() string { return string(n) }

// All returns every event in declaration order.
func All() []Name {
	out := make([]Name, len(all))
	copy(out, all)
	return out
}

// Parse resolves an event by its identifier.
func Parse(s string) (Name, error) {
	for _, n := range all {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown event %q", s)
}
