// Package render consumes a bytecode Program.
//
// Each style var has its own nesting counter held in a caller-owned State:
// Push increments it, Pop decrements it, and the style is active while the
// counter is above zero. Endl moves to a new line without touching style
// state. Stop ends consumption; instructions after it are never reached.
//
// Run drives a Sink. Two sinks are provided: Document collects styled runs
// per line, Terminal writes lipgloss-styled text to a writer.
package render
