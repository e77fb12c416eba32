package command

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/norrisaftcc/tool-textadv/world"
)

// UnrecognizedCommandError indicates no registered rule matched the input.
// The dispatcher performs no state mutation in that case.
type UnrecognizedCommandError struct {
	Input string
}

func (e *UnrecognizedCommandError) Error() string {
	return fmt.Sprintf("unrecognized command %q", e.Input)
}

// Command carries a matched rule's captures into its handler. Item and
// Target are the resolved entities, or nil when resolution failed — the
// handler, not the grammar layer, decides how to phrase "no such item",
// so dispatch proceeds with the nil sentinel instead of aborting.
type Command struct {
	Input        string
	ItemPhrase   string
	Item         *world.Item
	TargetPhrase string
	Target       *world.Item
}

// Result is the outcome of one dispatched command.
type Result struct {
	Output []string
	Err    error // taxonomy error when the command was rejected
	Quit   bool  // the player asked to end the session
}

// Handler executes a matched command against the session state.
type Handler func(s *world.State, cmd Command) Result

// Table is the ordered grammar rule list. Matching is first-match-wins in
// registration order, so rules must be registered most-specific-first:
// "use ITEM on TARGET" before "use ITEM", or the bare rule shadows the
// targeted one forever.
type Table struct {
	rules  []rule
	log    *slog.Logger
	sealed bool
}

// NewTable creates an empty grammar table. A nil logger discards.
func NewTable(log *slog.Logger) *Table {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Table{log: log}
}

// Register appends a rule. Registration happens once at startup; after
// Seal the table is immutable.
func (t *Table) Register(pattern string, h Handler) error {
	if t.sealed {
		panic("command: Register after Seal")
	}
	if h == nil {
		return fmt.Errorf("pattern %q: nil handler", pattern)
	}
	tokens, err := compilePattern(pattern)
	if err != nil {
		return err
	}
	t.rules = append(t.rules, rule{pattern: pattern, tokens: tokens, handler: h})
	return nil
}

// MustRegister is Register for fixed startup grammars; a bad pattern is a
// programming error, so it panics.
func (t *Table) MustRegister(pattern string, h Handler) {
	if err := t.Register(pattern, h); err != nil {
		panic(err)
	}
}

// Seal freezes the table. Further Register calls panic.
func (t *Table) Seal() { t.sealed = true }

// Rules returns the registered patterns in order, for help text and tests.
func (t *Table) Rules() []string {
	out := make([]string, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.pattern
	}
	return out
}

// Dispatch tokenizes the input, normalizes directional shortcuts, walks
// the rules in order, and invokes the first matching handler with its
// resolved captures. No rule matching means UnrecognizedCommandError and
// no state mutation at all.
func (t *Table) Dispatch(s *world.State, input string) Result {
	tokens := NormalizeDirections(Tokenize(input))
	if len(tokens) == 0 {
		return Result{Err: &UnrecognizedCommandError{Input: input}}
	}

	for i := range t.rules {
		r := &t.rules[i]
		captures, matched := r.match(tokens)
		if !matched {
			continue
		}

		cmd := Command{Input: input}
		if phrase, found := captures[placeholderItem]; found {
			cmd.ItemPhrase = phrase
			cmd.Item = t.resolve(s, phrase)
		}
		if phrase, found := captures[placeholderTarget]; found {
			cmd.TargetPhrase = phrase
			cmd.Target = t.resolve(s, phrase)
		}

		t.log.Debug("command matched", "pattern", r.pattern, "input", input)
		res := r.handler(s, cmd)
		if res.Err != nil {
			t.log.Debug("command rejected", "pattern", r.pattern, "err", res.Err)
		}
		return res
	}

	t.log.Debug("command unrecognized", "input", input)
	return Result{Err: &UnrecognizedCommandError{Input: input}}
}

// resolve maps a captured noun phrase to an entity via the session's
// inventory-then-room lookup. Failure yields the nil sentinel; an
// ambiguity (a violated uniqueness invariant) is logged loudly since it
// signals broken content.
func (t *Table) resolve(s *world.State, phrase string) *world.Item {
	it, err := s.Find(phrase)
	if err != nil {
		var ambiguous *world.AmbiguousReferenceError
		if errors.As(err, &ambiguous) {
			t.log.Warn("ambiguous reference", "phrase", phrase, "count", ambiguous.Count)
		}
		return nil
	}
	return it
}
