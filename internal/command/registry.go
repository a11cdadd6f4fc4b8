package command

import (
	"sort"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Registry stores commands by name. It does not dispatch.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds c wrapped in mws; the first middleware is the outermost.
func (r *Registry) Register(c Command, mws ...Middleware) {
	c = Apply(c, mws...)
	r.mu.Lock()
	r.commands[c.Name()] = c
	r.mu.Unlock()
}

// Get returns the command with the given name, or nil.
func (r *Registry) Get(name string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.commands[name]
}

// All returns the registered commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// Definitions returns the slash definitions of every command that has one.
func (r *Registry) Definitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range r.All() {
		if d := Definition(c); d != nil {
			defs = append(defs, d)
		}
	}
	return defs
}
