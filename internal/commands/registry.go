package commands

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds registered commands, indexed by name and alias.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Command
	cmds   []Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds a command.
// Returns an error if its name or any alias is taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, n := range names {
		if _, exists := r.byName[n]; exists {
			return fmt.Errorf("command name already registered: %s", n)
		}
	}
	for _, n := range names {
		r.byName[n] = c
	}
	r.cmds = append(r.cmds, c)
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All returns every command sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.cmds)
	slices.SortFunc(out, func(a, b Command) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry. It panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
