package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// SessionSink delivers log entries through a gateway session. Channel lookups use the
// session state cache only.
type SessionSink struct {
	s *discordgo.Session
}

func NewSessionSink(s *discordgo.Session) *SessionSink {
	return &SessionSink{s: s}
}

// TextChannels returns the cached text and announcement channels of a guild.
func (k *SessionSink) TextChannels(guildID string) ([]*discordgo.Channel, error) {
	g, err := k.s.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s not in state: %w", guildID, err)
	}

	var out []*discordgo.Channel
	for _, c := range g.Channels {
		if c.Type == discordgo.ChannelTypeGuildText || c.Type == discordgo.ChannelTypeGuildNews {
			out = append(out, c)
		}
	}
	return out, nil
}

func (k *SessionSink) Send(channelID string, msg *discordgo.MessageSend) error {
	_, err := k.s.ChannelMessageSendComplex(channelID, msg)
	return err
}
