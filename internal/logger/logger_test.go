package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/server-warden/internal/events"
)

var fixedNow = time.Date(2024, time.March, 9, 14, 3, 7, 0, time.UTC)

type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func entries(t *testing.T, buf *bytes.Buffer) []entry {
	t.Helper()
	var out []entry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e entry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		out = append(out, e)
	}
	return out
}

type sentMessage struct {
	channelID string
	msg       *discordgo.MessageSend
}

type fakeSink struct {
	mu       sync.Mutex
	channels map[string][]*discordgo.Channel
	sent     []sentMessage
	// release, when set, holds every Send until it is closed
	release chan struct{}
}

func (f *fakeSink) TextChannels(guildID string) ([]*discordgo.Channel, error) {
	return f.channels[guildID], nil
}

func (f *fakeSink) Send(channelID string, msg *discordgo.MessageSend) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{channelID: channelID, msg: msg})
	return nil
}

func (f *fakeSink) Sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

func newTestLogger(t *testing.T, opts ...Option) (*Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	base := []Option{WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC)}
	l := New(zerolog.New(buf), append(base, opts...)...)
	t.Cleanup(func() { _ = l.Close() })
	return l, buf
}

var actor = Actor{ID: "42", Tag: "alice"}

func TestLogRendersLocalBlock(t *testing.T) {
	l, buf := newTestLogger(t)

	res := l.Info(actor, Options{
		Title:   "Hello",
		Event:   events.Ready,
		Action:  events.ReadyRegisterCommands,
		Message: "something happened",
	})
	assert.Equal(t, NotRequested, res.Status)
	assert.False(t, res.IsError())

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "info", got[0].Level)
	assert.Equal(t, strings.Join([]string{
		"----------------------------------",
		"Hello",
		"ActionUser: 42",
		"ActionUserTag: alice",
		"Status: Info",
		"EventName: onReady",
		"ActionName: onReadyAction1",
		"Agent: -",
		"Message: something happened",
		"Datetime: 2024/03/09/14:03:07",
	}, "\n"), got[0].Message)
}

func TestLogDefaults(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Debug(Actor{ID: "1"}, Options{})

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "\nNo Title\n")
	assert.Contains(t, got[0].Message, "ActionUserTag: -")
	assert.Contains(t, got[0].Message, "EventName: -")
	assert.Contains(t, got[0].Message, "Status: Debug")
}

func TestLogSelectsStreamByEffectiveLevel(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		status Level
		want   string
	}{
		{"info", LevelInfo, levelUnset, "info"},
		{"success", LevelSuccess, levelUnset, ""},
		{"warning", LevelWarning, levelUnset, "warn"},
		{"error", LevelError, levelUnset, "error"},
		{"debug", LevelDebug, levelUnset, "debug"},
		{"override", LevelDebug, LevelError, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger(t)
			l.Log(tt.level, actor, Options{Status: tt.status})

			got := entries(t, buf)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Level)
		})
	}
}

func TestEmojiFollowsExplicitStatus(t *testing.T) {
	l, buf := newTestLogger(t)

	l.Success(actor, Options{Title: "plain"})
	l.Info(actor, Options{Title: "done", Status: LevelSuccess})
	l.Info(actor, Options{Title: "careful", Status: LevelWarning})

	got := entries(t, buf)
	require.Len(t, got, 3)
	assert.Contains(t, got[0].Message, "\nplain\n")
	assert.Contains(t, got[1].Message, "\n✅done\n")
	assert.Contains(t, got[2].Message, "\n⚠️careful\n")
}

func TestDeliveryChannelNotFound(t *testing.T) {
	sink := &fakeSink{channels: map[string][]*discordgo.Channel{
		"g1": {{ID: "other", GuildID: "g1"}},
	}}
	l, buf := newTestLogger(t, WithSink(sink))

	res := l.Info(actor, Options{
		Title:    "Original",
		Delivery: &Delivery{GuildID: "g1", ChannelID: "missing"},
	})

	require.True(t, res.IsError())
	assert.Equal(t, Failed, res.Status)
	assert.ErrorIs(t, res.Err, ErrChannelNotFound)

	got := entries(t, buf)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, "\nOriginal\n")
	assert.Equal(t, "error", got[1].Level)
	assert.Contains(t, got[1].Message, "\n🚨Send Logger Error\n")
	assert.Contains(t, got[1].Message, "Status: Error")
	assert.Empty(t, sink.Sent())
}

func TestDeliverySendsExternalRendering(t *testing.T) {
	sink := &fakeSink{channels: map[string][]*discordgo.Channel{
		"g1": {{ID: "log", GuildID: "g1"}},
	}}
	l, buf := newTestLogger(t, WithSink(sink))
	embed := &discordgo.MessageEmbed{Title: "extra"}

	res := l.Warning(actor, Options{
		Title:    "Blocked",
		Status:   LevelWarning,
		Event:    events.MessageCreate,
		Delivery: &Delivery{GuildID: "g1", ChannelID: "log", Embeds: []*discordgo.MessageEmbed{embed}},
	})

	require.False(t, res.IsError())
	assert.Equal(t, Delivered, res.Status)
	require.Len(t, entries(t, buf), 1)

	require.Eventually(t, func() bool { return len(sink.Sent()) == 1 }, time.Second, 10*time.Millisecond)
	sent := sink.Sent()[0]
	assert.Equal(t, "log", sent.channelID)
	assert.Equal(t, []*discordgo.MessageEmbed{embed}, sent.msg.Embeds)
	assert.Equal(t, strings.Join([]string{
		"----------------------------------",
		"⚠️Blocked",
		"`ActionUser`: <@42>",
		"`Status`: Warning",
		"`EventName`: onMessageCreate",
		"`ActionName`: -",
		"`Agent`: -",
		"`Message`: -",
		"`Datetime`: 2024/03/09/14:03:07",
	}, "\n"), sent.msg.Content)
	assert.NotContains(t, sent.msg.Content, "ActionUserTag")
}

func TestDeliveryUsesDefaultChannel(t *testing.T) {
	sink := &fakeSink{channels: map[string][]*discordgo.Channel{
		"g1": {{ID: "default-log", GuildID: "g1"}},
	}}
	l, _ := newTestLogger(t, WithSink(sink), WithDefaultChannel("default-log"))

	res := l.Info(actor, Options{Delivery: &Delivery{GuildID: "g1"}})
	require.Equal(t, Delivered, res.Status)

	require.Eventually(t, func() bool { return len(sink.Sent()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "default-log", sink.Sent()[0].channelID)
}

func TestDeliveryExplicitChannelSkipsLookup(t *testing.T) {
	sink := &fakeSink{}
	l, _ := newTestLogger(t, WithSink(sink))

	res := l.Info(actor, Options{Delivery: &Delivery{Channel: &discordgo.Channel{ID: "c9", GuildID: "g1"}}})
	require.Equal(t, Delivered, res.Status)

	require.Eventually(t, func() bool { return len(sink.Sent()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "c9", sink.Sent()[0].channelID)
}

func TestDeliveryWithoutGuildIsSkipped(t *testing.T) {
	sink := &fakeSink{}
	l, buf := newTestLogger(t, WithSink(sink))

	res := l.Info(actor, Options{Delivery: &Delivery{ChannelID: "log"}})

	assert.Equal(t, Skipped, res.Status)
	assert.False(t, res.IsError())
	got := entries(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "warn", got[1].Level)
	assert.Contains(t, got[1].Message, "Stop Submission")
}

func TestDeliveryWithoutSinkFails(t *testing.T) {
	l, _ := newTestLogger(t)

	res := l.Info(actor, Options{Delivery: &Delivery{GuildID: "g1", ChannelID: "log"}})

	assert.True(t, res.IsError())
	assert.ErrorIs(t, res.Err, ErrNoSink)
}

func TestDeliveryBurstIsPacedNotDropped(t *testing.T) {
	sink := &fakeSink{channels: map[string][]*discordgo.Channel{
		"g1": {{ID: "log", GuildID: "g1"}},
	}}
	l, buf := newTestLogger(t, WithSink(sink), WithRate(5))
	opts := Options{Delivery: &Delivery{GuildID: "g1", ChannelID: "log"}}

	for i := 0; i < 8; i++ {
		res := l.Info(actor, opts)
		require.Equal(t, Delivered, res.Status, "delivery %d", i)
		require.NoError(t, res.Err)
	}

	require.Eventually(t, func() bool { return len(sink.Sent()) == 8 }, 5*time.Second, 20*time.Millisecond)
	for _, e := range entries(t, buf) {
		assert.Equal(t, "info", e.Level)
	}
}

func TestDeliveryQueueFull(t *testing.T) {
	sink := &fakeSink{
		channels: map[string][]*discordgo.Channel{"g1": {{ID: "log", GuildID: "g1"}}},
		release:  make(chan struct{}),
	}
	l, _ := newTestLogger(t, WithSink(sink), WithRate(0))
	t.Cleanup(func() { close(sink.release) })
	opts := Options{Delivery: &Delivery{GuildID: "g1", ChannelID: "log"}}

	// one send held by the worker plus a full queue
	var failed []Result
	for i := 0; i < queueSize+2; i++ {
		if res := l.Info(actor, opts); res.IsError() {
			failed = append(failed, res)
		}
	}

	require.NotEmpty(t, failed)
	for _, res := range failed {
		assert.Equal(t, Failed, res.Status)
		assert.ErrorIs(t, res.Err, ErrQueueFull)
	}
}

func TestActorFromUser(t *testing.T) {
	assert.Equal(t, Actor{ID: "1", Tag: "bob"}, ActorFromUser(&discordgo.User{ID: "1", Username: "bob", Discriminator: "0"}))
	assert.Equal(t, Actor{ID: "2", Tag: "old#1234"}, ActorFromUser(&discordgo.User{ID: "2", Username: "old", Discriminator: "1234"}))
	assert.Equal(t, Actor{}, ActorFromUser(nil))
}
