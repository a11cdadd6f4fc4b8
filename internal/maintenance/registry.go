// Package maintenance tracks which events and which actions within events are suspended
// and exposes the gate every handler consults before doing work.
package maintenance

import (
	"sync"

	"github.com/keshon/server-warden/internal/events"
)

// Registry records suspension flags for events and for (event, action) pairs. The two
// levels are independent: suspending an action says nothing about its event and vice versa.
// Keys that were never set read as not suspended.
type Registry struct {
	mu      sync.RWMutex
	events  map[events.Name]bool
	actions map[events.Name]map[string]bool // outer: owning event, inner: action identifier
}

// NewRegistry returns a registry with no suspensions.
func NewRegistry() *Registry {
	return &Registry{
		events:  make(map[events.Name]bool),
		actions: make(map[events.Name]map[string]bool),
	}
}

// SetEventSuspended overwrites the flag of event.
func (r *Registry) SetEventSuspended(event events.Name, suspended bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event] = suspended
}

// IsEventSuspended reports the flag of event, false if it was never set.
func (r *Registry) IsEventSuspended(event events.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.events[event]
}

// SetActionSuspended overwrites the flag of action. The inner map of the owning event is
// created on the first write for that event.
func (r *Registry) SetActionSuspended(action events.Action, suspended bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event := action.Event()
	inner, ok := r.actions[event]
	if !ok {
		inner = make(map[string]bool)
		r.actions[event] = inner
	}
	inner[action.String()] = suspended
}

// IsActionSuspended reports the flag of action, false if it was never set.
func (r *Registry) IsActionSuspended(action events.Action) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.actions[action.Event()][action.String()]
}

// ManySuspendedEvents looks up every event independently.
func (r *Registry) ManySuspendedEvents(list []events.Name) map[events.Name]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[events.Name]bool, len(list))
	for _, e := range list {
		out[e] = r.events[e]
	}
	return out
}

// AllEventStatuses returns a snapshot of every event flag that was explicitly set.
func (r *Registry) AllEventStatuses() map[events.Name]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[events.Name]bool, len(r.events))
	for e, v := range r.events {
		out[e] = v
	}
	return out
}

// AllActionStatuses returns a snapshot of the action flags set for event, keyed by action
// identifier. It is empty when no action of event was ever set.
func (r *Registry) AllActionStatuses(event events.Name) map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inner := r.actions[event]
	out := make(map[string]bool, len(inner))
	for a, v := range inner {
		out[a] = v
	}
	return out
}

// ManySuspendedActions looks up every action of one event independently. The event is
// fixed by the action type.
func ManySuspendedActions[A events.ActionName](r *Registry, list []A) map[A]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[A]bool, len(list))
	for _, a := range list {
		out[a] = r.actions[a.Event()][string(a)]
	}
	return out
}

// ActionStatuses is the typed form of AllActionStatuses.
func ActionStatuses[A events.ActionName](r *Registry) map[A]bool {
	var zero A
	raw := r.AllActionStatuses(zero.Event())

	out := make(map[A]bool, len(raw))
	for a, v := range raw {
		out[A(a)] = v
	}
	return out
}
