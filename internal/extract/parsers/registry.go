package parsers

import (
	"fmt"

	"github.com/ppiankov/attrparse/internal/extract"
)

// Registry keeps parsers in registration order, which is the order the
// engine runs them in
type Registry struct {
	parsers []extract.Parser
}

// NewRegistry creates a registry with the built-in parsers
func NewRegistry() *Registry {
	registry := &Registry{
		parsers: make([]extract.Parser, 0),
	}

	registry.Register(NewLabelParser())
	registry.Register(NewRoomParser())
	registry.Register(NewRentParser())
	registry.Register(NewAreaParser())
	registry.Register(NewDepositParser())

	return registry
}

// Register appends a parser
func (r *Registry) Register(p extract.Parser) {
	r.parsers = append(r.parsers, p)
}

// Parsers returns all registered parsers in order
func (r *Registry) Parsers() []extract.Parser {
	out := make([]extract.Parser, len(r.parsers))
	copy(out, r.parsers)
	return out
}

// Names returns the registered parser names in order
func (r *Registry) Names() []string {
	names := make([]string, len(r.parsers))
	for i, p := range r.parsers {
		names[i] = p.Name()
	}
	return names
}

// Select returns the named parsers in the order given
func (r *Registry) Select(names ...string) ([]extract.Parser, error) {
	if len(names) == 0 {
		return r.Parsers(), nil
	}

	selected := make([]extract.Parser, 0, len(names))
	for _, name := range names {
		p := r.find(name)
		if p == nil {
			return nil, fmt.Errorf("unknown parser %q (available: %v)", name, r.Names())
		}
		selected = append(selected, p)
	}
	return selected, nil
}

func (r *Registry) find(name string) extract.Parser {
	for _, p := range r.parsers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}
