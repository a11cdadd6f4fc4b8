package maintenance

import (
	"github.com/keshon/server-warden/internal/events"
	"github.com/keshon/server-warden/internal/logger"
	"github.com/keshon/server-warden/internal/messages"
)

// Options customizes the entry logged when a query is blocked. Nothing is logged unless
// User is set. Empty fields fall back to the generated maintenance notice.
type Options struct {
	User *logger.Actor
	logger.Options
}

// Query is what a handler asks the gate. It is one of Bare, ForEvent or ForAction.
type Query interface {
	event() events.Name
	query()
}

type bareQuery struct{ ev events.Name }

type eventQuery struct {
	ev   events.Name
	opts Options
}

type actionQuery struct {
	action events.Action
	opts   Options
}

func (q bareQuery) event() events.Name   { return q.ev }
func (q eventQuery) event() events.Name  { return q.ev }
func (q actionQuery) event() events.Name { return q.action.Event() }

func (bareQuery) query()   {}
func (eventQuery) query()  {}
func (actionQuery) query() {}

// Bare asks whether event is suspended without logging anything.
func Bare(event events.Name) Query { return bareQuery{ev: event} }

// ForEvent asks whether event is suspended and logs the block on behalf of opts.User.
func ForEvent(event events.Name, opts Options) Query { return eventQuery{ev: event, opts: opts} }

// ForAction asks whether action is suspended and logs the block on behalf of opts.User.
// The event is the one owning the action.
func ForAction(action events.Action, opts Options) Query {
	return actionQuery{action: action, opts: opts}
}

// Decision is the full answer of the gate.
type Decision struct {
	Blocked bool
	// Delivery is the outcome of mirroring the block to a log channel, if requested.
	Delivery logger.Result
}

// Gate is the single check every handler runs after validating its input.
type Gate struct {
	reg *Registry
	log *logger.Logger
}

// NewGate returns a gate reading reg and reporting blocks through log. log may be nil,
// in which case blocks are never logged.
func NewGate(reg *Registry, log *logger.Logger) *Gate {
	return &Gate{reg: reg, log: log}
}

// Logger returns the logger blocks are reported through, possibly nil.
func (g *Gate) Logger() *logger.Logger { return g.log }

// Blocked reports whether the caller must not proceed.
func (g *Gate) Blocked(q Query) bool {
	return g.Check(q).Blocked
}

// Check answers q and, when blocked, logs an Info entry for the reporting user.
func (g *Gate) Check(q Query) Decision {
	switch q := q.(type) {
	case actionQuery:
		blocked := g.reg.IsActionSuspended(q.action)
		if !blocked {
			return Decision{}
		}
		return Decision{Blocked: true, Delivery: g.report(q.action.Event(), q.action, q.opts)}

	case eventQuery:
		blocked := g.reg.IsEventSuspended(q.ev)
		if !blocked {
			return Decision{}
		}
		return Decision{Blocked: true, Delivery: g.report(q.ev, nil, q.opts)}

	default:
		return Decision{Blocked: g.reg.IsEventSuspended(q.event())}
	}
}

func (g *Gate) report(event events.Name, action events.Action, opts Options) logger.Result {
	if opts.User == nil || g.log == nil {
		return logger.Result{}
	}

	locale := g.log.Locale()
	entry := opts.Options
	if entry.Title == "" {
		entry.Title = messages.MaintenanceTitle.In(locale)
	}
	if !entry.Status.IsSet() {
		entry.Status = logger.LevelInfo
	}
	if entry.Event == "" {
		entry.Event = event
	}
	if entry.Action == nil && action != nil {
		entry.Action = action
	}
	if entry.Message == "" {
		var name string
		if action != nil {
			name = action.String()
		}
		entry.Message = messages.Maintenance(string(event), name).In(locale)
	}
	return g.log.Info(*opts.User, entry)
}
