package maintenance

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/server-warden/internal/events"
)

func TestRegistryUnsetKeysReadFalse(t *testing.T) {
	r := NewRegistry()

	for _, e := range events.All() {
		assert.False(t, r.IsEventSuspended(e), e)
		for _, a := range events.Actions(e) {
			assert.False(t, r.IsActionSuspended(a), a)
		}
	}
	// reads do not create keys
	assert.Empty(t, r.AllEventStatuses())
	assert.Empty(t, r.AllActionStatuses(events.Ready))
}

func TestRegistryEventFlagIdempotent(t *testing.T) {
	r := NewRegistry()

	r.SetEventSuspended(events.MessageCreate, true)
	r.SetEventSuspended(events.MessageCreate, true)
	assert.True(t, r.IsEventSuspended(events.MessageCreate))

	r.SetEventSuspended(events.MessageCreate, false)
	assert.False(t, r.IsEventSuspended(events.MessageCreate))
}

func TestRegistryLevelsAreIndependent(t *testing.T) {
	t.Run("action does not suspend event", func(t *testing.T) {
		r := NewRegistry()
		r.SetActionSuspended(events.ReadyRegisterCommands, true)

		assert.True(t, r.IsActionSuspended(events.ReadyRegisterCommands))
		assert.False(t, r.IsEventSuspended(events.Ready))
	})

	t.Run("event does not suspend action", func(t *testing.T) {
		r := NewRegistry()
		r.SetEventSuspended(events.Ready, true)

		assert.True(t, r.IsEventSuspended(events.Ready))
		assert.False(t, r.IsActionSuspended(events.ReadyRegisterCommands))
	})
}

func TestRegistryActionsScopedToOwningEvent(t *testing.T) {
	r := NewRegistry()
	r.SetActionSuspended(events.InteractionPing, true)

	assert.Equal(t, map[string]bool{"ping": true}, r.AllActionStatuses(events.Interaction))
	assert.Empty(t, r.AllActionStatuses(events.Ready))
	assert.False(t, r.IsActionSuspended(events.InteractionMaintenance))
}

func TestRegistryAllEventStatusesOnlySetKeys(t *testing.T) {
	r := NewRegistry()
	r.SetEventSuspended(events.MessageCreate, true)

	assert.Equal(t, map[events.Name]bool{events.MessageCreate: true}, r.AllEventStatuses())
}

func TestRegistryManySuspendedEvents(t *testing.T) {
	r := NewRegistry()
	r.SetEventSuspended(events.GetButtons, true)

	got := r.ManySuspendedEvents([]events.Name{events.GetButtons, events.GetModals})
	assert.Equal(t, map[events.Name]bool{events.GetButtons: true, events.GetModals: false}, got)
}

func TestRegistryManySuspendedActions(t *testing.T) {
	r := NewRegistry()
	r.SetActionSuspended(events.InteractionMaintenance, true)

	got := ManySuspendedActions(r, []events.InteractionAction{events.InteractionMaintenance, events.InteractionPing})
	assert.Equal(t, map[events.InteractionAction]bool{
		events.InteractionMaintenance: true,
		events.InteractionPing:        false,
	}, got)
}

func TestRegistryActionStatusesTyped(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, ActionStatuses[events.ReadyAction](r))

	r.SetActionSuspended(events.ReadyRegisterCommands, false)
	assert.Equal(t, map[events.ReadyAction]bool{events.ReadyRegisterCommands: false}, ActionStatuses[events.ReadyAction](r))
}

func TestRegistrySnapshotsAreCopies(t *testing.T) {
	r := NewRegistry()
	r.SetEventSuspended(events.Ready, true)
	r.SetActionSuspended(events.ReadyRegisterCommands, true)

	snap := r.AllEventStatuses()
	snap[events.Ready] = false
	actions := r.AllActionStatuses(events.Ready)
	actions["onReadyAction1"] = false

	assert.True(t, r.IsEventSuspended(events.Ready))
	assert.True(t, r.IsActionSuspended(events.ReadyRegisterCommands))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(on bool) {
			defer wg.Done()
			r.SetEventSuspended(events.MessageCreate, on)
			r.SetActionSuspended(events.MessageCreateReply, on)
		}(i%2 == 0)
		go func() {
			defer wg.Done()
			_ = r.IsEventSuspended(events.MessageCreate)
			_ = r.AllActionStatuses(events.MessageCreate)
		}()
	}
	wg.Wait()

	require.Len(t, r.AllEventStatuses(), 1)
}
