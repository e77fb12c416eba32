// Package engine wires the grammar table, noun resolution, and built-in
// verb handlers into a turn loop: one call to Step fully processes one
// player command against one session's state.
package engine

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/norrisaftcc/tool-textadv/command"
	"github.com/norrisaftcc/tool-textadv/world"
)

// Engine drives a single play session. Create one per session; engines
// share nothing, so concurrent sessions (e.g. web players) each get their
// own world and state.
type Engine struct {
	state   *world.State
	table   *command.Table
	log     *slog.Logger
	started bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger used for dispatch and callback
// outcome logging. The default discards.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine for a session starting in the given room and
// registers the default grammar. Content may add its own rules through
// Grammar() until Start is called.
func New(start *world.Room, opts ...Option) *Engine {
	e := &Engine{
		state: world.NewState(start),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.table = command.NewTable(e.log)
	e.registerGrammar()
	return e
}

// State exposes the session state, for front ends and tests.
func (e *Engine) State() *world.State { return e.state }

// Grammar exposes the rule table for startup registration of custom
// commands. The table is sealed by Start.
func (e *Engine) Grammar() *command.Table { return e.table }

// Start enters the starting room and returns its first-visit description.
// It also seals the grammar table: rules are immutable once play begins.
func (e *Engine) Start() command.Result {
	if e.started {
		return command.Result{Output: e.describeCurrent()}
	}
	e.started = true
	e.table.Seal()
	first := e.state.Begin()
	room := e.state.CurrentRoom()
	return command.Result{Output: e.roomView(room, room.ActiveDescription(first)).Lines()}
}

// Step processes one command. The turn counter advances only for accepted
// commands; a rejected command (unrecognized, or a handler taxonomy
// error) leaves the state exactly as it was.
func (e *Engine) Step(input string) command.Result {
	if strings.TrimSpace(input) == "" {
		return command.Result{Output: []string{"What do you want to do?"}}
	}

	res := e.table.Dispatch(e.state, input)

	var unrecognized *command.UnrecognizedCommandError
	if errors.As(res.Err, &unrecognized) && len(res.Output) == 0 {
		res.Output = []string{"I don't understand that."}
	}

	if res.Err == nil && !res.Quit {
		e.state.IncrementTurn()
	}
	return res
}

// describeCurrent renders the current room with its revisit description.
func (e *Engine) describeCurrent() []string {
	room := e.state.CurrentRoom()
	return e.roomView(room, room.ActiveDescription(false)).Lines()
}

// invoke runs an item callback and logs its outcome; the success flag is
// consumed only here, never used to alter control flow.
func (e *Engine) invoke(kind string, item *world.Item, ok bool) {
	e.log.Debug("callback invoked", "kind", kind, "item", item.Name(), "ok", ok)
}
