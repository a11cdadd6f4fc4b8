package command

import (
	"context"

	"github.com/keshon/server-warden/internal/events"
)

// layer is one middleware around a command. Name and Description come from the
// command underneath so a wrapped command registers under the same slash name.
type layer struct {
	next Command
	run  func(ctx context.Context, inv *Invocation) error
	// gated is the interaction action checked by this layer, empty when the layer
	// does not consult the maintenance gate.
	gated events.InteractionAction
}

func (l *layer) Name() string        { return l.next.Name() }
func (l *layer) Description() string { return l.next.Description() }

func (l *layer) Run(ctx context.Context, inv *Invocation) error { return l.run(ctx, inv) }

// Wrap returns a command that runs run in front of c.
func Wrap(c Command, run func(ctx context.Context, inv *Invocation) error) Command {
	return &layer{next: c, run: run}
}

func gatedWrap(c Command, action events.InteractionAction, run func(ctx context.Context, inv *Invocation) error) Command {
	return &layer{next: c, run: run, gated: action}
}

// Root peels every middleware layer off c.
func Root(c Command) Command {
	for {
		l, ok := c.(*layer)
		if !ok {
			return c
		}
		c = l.next
	}
}

// GatedAction returns the action a WithMaintenanceGate layer around c checks.
func GatedAction(c Command) (events.InteractionAction, bool) {
	for {
		l, ok := c.(*layer)
		if !ok {
			return "", false
		}
		if l.gated != "" {
			return l.gated, true
		}
		c = l.next
	}
}
