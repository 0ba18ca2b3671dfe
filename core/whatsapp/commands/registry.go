package commands

import (
	"fmt"
	"strings"
)

// Command names a stateless entry point of the bot.
type Command string

const (
	CommandList Command = "list"
	CommandAdd  Command = "add"
	CommandMenu Command = "menu"
)

// Registry maps case-insensitive aliases to commands.
type Registry struct {
	aliases map[string]Command
	byCmd   map[Command][]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		aliases: make(map[string]Command),
		byCmd:   make(map[Command][]string),
	}
}

// DefaultRegistry returns the registry with the list, add and menu alias sets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(CommandList, "1", "list", "products")
	r.MustRegister(CommandAdd, "2", "add", "new")
	r.MustRegister(CommandMenu, "3", "help", "menu")
	return r
}

// Register binds aliases to cmd. An alias already bound to any command is rejected
// and nothing is registered.
func (r *Registry) Register(cmd Command, aliases ...string) error {
	if cmd == "" {
		return fmt.Errorf("register command: empty name")
	}
	normalized := make([]string, 0, len(aliases))
	seen := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		key := normalize(a)
		if key == "" {
			return fmt.Errorf("register %s: empty alias", cmd)
		}
		if owner, exists := r.aliases[key]; exists {
			return fmt.Errorf("register %s: alias %q already bound to %s", cmd, key, owner)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("register %s: alias %q listed twice", cmd, key)
		}
		seen[key] = struct{}{}
		normalized = append(normalized, key)
	}
	for _, key := range normalized {
		r.aliases[key] = cmd
	}
	r.byCmd[cmd] = append(r.byCmd[cmd], normalized...)
	return nil
}

// MustRegister is Register that panics on error. Use it for static tables.
func (r *Registry) MustRegister(cmd Command, aliases ...string) {
	if err := r.Register(cmd, aliases...); err != nil {
		panic(err)
	}
}

// Lookup matches trimmed, lowercased input against the registered aliases.
func (r *Registry) Lookup(input string) (Command, bool) {
	cmd, ok := r.aliases[normalize(input)]
	return cmd, ok
}

// Aliases returns the aliases bound to cmd in registration order.
func (r *Registry) Aliases(cmd Command) []string {
	return append([]string(nil), r.byCmd[cmd]...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
