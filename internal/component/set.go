package component

import (
	"fmt"

	"github.com/zhyswan/fingerprintjs/internal/probe"
)

// Component is one named outcome produced by running a source.
type Component struct {
	Name    string
	Outcome probe.Outcome
}

// Set is the ordered mapping of source name to Component for one
// identification run. Order equals registration order, never completion
// order. Names are unique.
type Set struct {
	names  []string
	byName map[string]Component
}

// Zip pairs registered names with the scheduler's positional outcomes.
// Both slices must align index-for-index.
func Zip(names []string, outcomes []probe.Outcome) (*Set, error) {
	if len(names) != len(outcomes) {
		return nil, fmt.Errorf("component count mismatch: %d names, %d outcomes", len(names), len(outcomes))
	}
	set := &Set{
		names:  make([]string, 0, len(names)),
		byName: make(map[string]Component, len(names)),
	}
	for i, name := range names {
		if _, exists := set.byName[name]; exists {
			return nil, fmt.Errorf("duplicate component name %q", name)
		}
		set.names = append(set.names, name)
		set.byName[name] = Component{Name: name, Outcome: outcomes[i]}
	}
	return set, nil
}

// Len returns the number of components.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the component names in registration order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Lookup returns the component registered under name.
func (s *Set) Lookup(name string) (Component, bool) {
	if s == nil {
		return Component{}, false
	}
	c, ok := s.byName[name]
	return c, ok
}

// Components returns all components in registration order.
func (s *Set) Components() []Component {
	if s == nil {
		return nil
	}
	out := make([]Component, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}
