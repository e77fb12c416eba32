package world

import "fmt"

// Context is what a callback acts through: the session state plus a sink
// for player-visible text. Callbacks receive it explicitly instead of
// closing over mutable outer references, which keeps them testable and
// keeps sessions independent.
type Context struct {
	State  *State
	output []string
}

// NewContext wraps a state for one callback invocation.
func NewContext(s *State) *Context {
	return &Context{State: s}
}

// Say queues a line of player-visible text.
func (c *Context) Say(text string) {
	c.output = append(c.output, text)
}

// Sayf queues a formatted line of player-visible text.
func (c *Context) Sayf(format string, args ...any) {
	c.output = append(c.output, fmt.Sprintf(format, args...))
}

// Output returns the queued lines in the order they were said.
func (c *Context) Output() []string {
	return c.output
}
