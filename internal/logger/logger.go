// Package logger renders structured log entries to the local zerolog sink and can mirror
// them to a Discord log channel.
package logger

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/keshon/server-warden/internal/events"
	"github.com/keshon/server-warden/internal/messages"
)

// Level is the severity of an entry. The zero value means "not set" and is only
// meaningful in Options.Status.
type Level int

const (
	levelUnset Level = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "Info"
	case LevelSuccess:
		return "Success"
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	case LevelDebug:
		return "Debug"
	default:
		return ""
	}
}

// IsSet reports whether l is a real level rather than the zero value.
func (l Level) IsSet() bool { return l != levelUnset }

// Actor is the user an entry is attributed to.
type Actor struct {
	ID  string
	Tag string
}

// ActorFromUser builds an Actor from a Discord user.
func ActorFromUser(u *discordgo.User) Actor {
	if u == nil {
		return Actor{}
	}
	tag := u.Username
	if u.Discriminator != "" && u.Discriminator != "0" {
		tag += "#" + u.Discriminator
	}
	return Actor{ID: u.ID, Tag: tag}
}

// Options carries the free-form fields of an entry. Empty fields render as "-".
type Options struct {
	Title   string
	Status  Level // overrides the level of the call when set
	Event   events.Name
	Action  events.Action
	Message string
	Agent   string // mobile, desktop, web, ...

	// Datetime defaults to the current time.
	Datetime time.Time

	// Delivery, when set, also posts the entry to a log channel.
	Delivery *Delivery
}

// Delivery describes where an entry should be mirrored and what to attach to it.
type Delivery struct {
	GuildID string

	// Channel wins over ChannelID. When both are empty the default log channel is used.
	Channel   *discordgo.Channel
	ChannelID string

	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Files      []*discordgo.File
}

// Sink is the platform side of log channel delivery.
type Sink interface {
	// TextChannels returns the cached text channels of a guild.
	TextChannels(guildID string) ([]*discordgo.Channel, error)
	Send(channelID string, msg *discordgo.MessageSend) error
}

type Option func(*Logger)

// WithSink enables log channel delivery through s.
func WithSink(s Sink) Option { return func(l *Logger) { l.sink = s } }

// WithDefaultChannel sets the channel used when a delivery names none.
func WithDefaultChannel(id string) Option { return func(l *Logger) { l.defaultChannelID = id } }

// WithLocation sets the timezone of the Datetime field.
func WithLocation(loc *time.Location) Option {
	return func(l *Logger) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(l *Logger) { l.now = now } }

// WithRate paces log channel sends to perSec per second. Sends over the rate wait in
// the queue. Zero disables pacing.
func WithRate(perSec int) Option {
	return func(l *Logger) {
		if perSec <= 0 {
			l.limiter = nil
			return
		}
		l.limiter = rate.NewLimiter(rate.Limit(perSec), perSec)
	}
}

// WithLocale sets the language of the texts the logger generates itself.
func WithLocale(loc messages.Locale) Option { return func(l *Logger) { l.locale = loc } }

// Logger writes entries locally and optionally forwards them to a log channel.
type Logger struct {
	zl               zerolog.Logger
	sink             Sink
	defaultChannelID string
	loc              *time.Location
	now              func() time.Time
	limiter          *rate.Limiter
	locale           messages.Locale

	queue     chan outgoing
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

const queueSize = 64

// New returns a Logger writing through zl. When a sink is configured a delivery worker
// is started; call Close to stop it.
func New(zl zerolog.Logger, opts ...Option) *Logger {
	l := &Logger{
		zl:      zl,
		loc:     time.Local,
		now:     time.Now,
		limiter: rate.NewLimiter(5, 5),
		locale:  messages.EN,
	}
	for _, o := range opts {
		o(l)
	}

	if l.sink != nil {
		ctx, cancel := context.WithCancel(context.Background())
		l.cancel = cancel
		l.queue = make(chan outgoing, queueSize)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			l.deliveryWorker(ctx)
		}()
	}
	return l
}

// Close stops the delivery worker. Queued deliveries that have not been sent are dropped.
func (l *Logger) Close() error {
	l.closeOnce.Do(func() {
		if l.cancel != nil {
			l.cancel()
			l.wg.Wait()
		}
	})
	return nil
}

// Zerolog exposes the underlying logger for plain diagnostics.
func (l *Logger) Zerolog() *zerolog.Logger { return &l.zl }

// Locale returns the language the logger generates texts in.
func (l *Logger) Locale() messages.Locale { return l.locale }

// Log renders the entry locally and, if requested, delivers it to a log channel. The
// returned Result describes the delivery; it is zero when no delivery was requested.
func (l *Logger) Log(level Level, actor Actor, opts Options) Result {
	if opts.Datetime.IsZero() {
		opts.Datetime = l.now()
	}
	l.print(level, actor, opts)
	if opts.Delivery == nil {
		return Result{}
	}
	return l.deliver(level, actor, opts)
}

func (l *Logger) Info(actor Actor, opts Options) Result    { return l.Log(LevelInfo, actor, opts) }
func (l *Logger) Success(actor Actor, opts Options) Result { return l.Log(LevelSuccess, actor, opts) }
func (l *Logger) Warning(actor Actor, opts Options) Result { return l.Log(LevelWarning, actor, opts) }
func (l *Logger) Error(actor Actor, opts Options) Result   { return l.Log(LevelError, actor, opts) }
func (l *Logger) Debug(actor Actor, opts Options) Result   { return l.Log(LevelDebug, actor, opts) }

func effective(level Level, opts Options) Level {
	if opts.Status.IsSet() {
		return opts.Status
	}
	return level
}

func (l *Logger) print(level Level, actor Actor, opts Options) {
	block := l.renderLocal(level, actor, opts)

	var e *zerolog.Event
	switch effective(level, opts) {
	case LevelInfo:
		e = l.zl.Info()
	case LevelWarning:
		e = l.zl.Warn()
	case LevelError:
		e = l.zl.Error()
	case LevelDebug:
		e = l.zl.Debug()
	default:
		e = l.zl.Log()
	}
	e.Msg(block)
}
