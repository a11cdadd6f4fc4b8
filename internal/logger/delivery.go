package logger

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/server-warden/internal/messages"
)

var (
	ErrChannelNotFound = errors.New("log channel not found")
	ErrQueueFull       = errors.New("log channel delivery queue is full")
	ErrNoSink          = errors.New("log channel delivery is not configured")
)

// DeliveryStatus is the outcome of a log channel delivery attempt.
type DeliveryStatus int

const (
	NotRequested DeliveryStatus = iota
	Delivered
	Skipped
	Failed
)

func (s DeliveryStatus) String() string {
	switch s {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "not requested"
	}
}

// Result reports what happened to the log channel copy of an entry. Delivered means the
// message was handed to the sender; the remote side is not awaited.
type Result struct {
	Status DeliveryStatus
	Err    error
}

// IsError reports whether the delivery failed.
func (r Result) IsError() bool { return r.Status == Failed }

type outgoing struct {
	channelID string
	msg       *discordgo.MessageSend
}

func (l *Logger) deliver(level Level, actor Actor, opts Options) Result {
	d := opts.Delivery

	guildID := d.GuildID
	if guildID == "" && d.Channel != nil {
		guildID = d.Channel.GuildID
	}
	if guildID == "" {
		l.print(level, actor, withStatus(opts, LevelWarning,
			messages.StopSubmission.In(l.locale), messages.GuildMissing.In(l.locale)))
		return Result{Status: Skipped}
	}

	channelID, err := l.resolveChannel(guildID, d)
	if err != nil {
		return l.failed(level, actor, opts, err)
	}

	out := outgoing{
		channelID: channelID,
		msg: &discordgo.MessageSend{
			Content:    l.renderExternal(level, actor, opts),
			Embeds:     d.Embeds,
			Components: d.Components,
			Files:      d.Files,
		},
	}
	if err := l.enqueue(out); err != nil {
		return l.failed(level, actor, opts, err)
	}
	return Result{Status: Delivered}
}

func (l *Logger) failed(level Level, actor Actor, opts Options, err error) Result {
	l.print(level, actor, withStatus(opts, LevelError, messages.SendLoggerError.In(l.locale), err.Error()))
	return Result{Status: Failed, Err: err}
}

func withStatus(opts Options, status Level, title, message string) Options {
	opts.Status = status
	opts.Title = title
	opts.Message = message
	opts.Delivery = nil
	return opts
}

func (l *Logger) resolveChannel(guildID string, d *Delivery) (string, error) {
	if d.Channel != nil {
		return d.Channel.ID, nil
	}
	if l.sink == nil {
		return "", ErrNoSink
	}

	id := d.ChannelID
	if id == "" {
		id = l.defaultChannelID
	}
	if id == "" {
		return "", fmt.Errorf("%w: no channel id given and no default configured", ErrChannelNotFound)
	}

	channels, err := l.sink.TextChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("%w: guild %s: %v", ErrChannelNotFound, guildID, err)
	}
	for _, c := range channels {
		if c.ID == id {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s in guild %s", ErrChannelNotFound, id, guildID)
}

// enqueue never blocks the caller; only a full queue refuses a delivery.
func (l *Logger) enqueue(out outgoing) error {
	if l.queue == nil {
		return ErrNoSink
	}
	select {
	case l.queue <- out:
		return nil
	default:
		return fmt.Errorf("%w (%d pending)", ErrQueueFull, cap(l.queue))
	}
}

func (l *Logger) deliveryWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case out := <-l.queue:
			// rate limit holds the send back instead of dropping it
			if l.limiter != nil {
				if err := l.limiter.Wait(ctx); err != nil {
					return
				}
			}
			if err := l.sink.Send(out.channelID, out.msg); err != nil {
				l.zl.Debug().Err(err).Str("channel", out.channelID).Msg("log channel send failed")
			}
		}
	}
}
