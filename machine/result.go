package machine

import (
	"github.com/sudare9/pema/action"
)

// Match is the result of a successful match.
type Match struct {
	input  string
	pos    int
	end    int
	args   []any
	kwargs []action.Binding
}

// Pos returns the byte position the match started at.
func (m *Match) Pos() int {
	return m.pos
}

// End returns the byte position just past the matched region.
func (m *Match) End() int {
	return m.end
}

// Text returns the matched region of the input.
func (m *Match) Text() string {
	return m.input[m.pos:m.end]
}

// Groups returns the values emitted at the top level, in emission
// order.
func (m *Match) Groups() []any {
	return m.args
}

// Bindings returns the top-level bindings in emission order, including
// repeated names.
func (m *Match) Bindings() []action.Binding {
	return m.kwargs
}

// GroupDict folds the top-level bindings into a map. When a name was
// bound more than once, the last binding wins.
func (m *Match) GroupDict() map[string]any {
	kwargs := map[string]any{}
	for _, b := range m.kwargs {
		kwargs[b.Name] = b.Value
	}
	return kwargs
}
