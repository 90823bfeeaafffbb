package render

import "github.com/wippyai/swb/bytecode"

// Style is the set of style vars active at a point in the stream.
type Style struct {
	Bold   bool
	Italic bool
}

// State holds one depth counter per style var.
type State struct {
	depth [bytecode.NumStyleVars]uint32
}

// Push increments the counter of v. Invalid style vars are ignored.
func (s *State) Push(v bytecode.StyleVar) {
	if v.Valid() {
		s.depth[v]++
	}
}

// Pop decrements the counter of v, stopping at zero.
func (s *State) Pop(v bytecode.StyleVar) {
	if v.Valid() && s.depth[v] > 0 {
		s.depth[v]--
	}
}

// Depth returns the counter of v.
func (s *State) Depth(v bytecode.StyleVar) uint32 {
	if !v.Valid() {
		return 0
	}
	return s.depth[v]
}

// Active reports whether v is enabled.
func (s *State) Active(v bytecode.StyleVar) bool {
	return s.Depth(v) > 0
}

// Style returns the active style set.
func (s *State) Style() Style {
	return Style{
		Bold:   s.Active(bytecode.Bold),
		Italic: s.Active(bytecode.Italic),
	}
}

// Reset clears every counter.
func (s *State) Reset() {
	s.depth = [bytecode.NumStyleVars]uint32{}
}
