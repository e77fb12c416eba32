// Package command implements the grammar table and dispatcher: raw input
// is tokenized, matched against registered token/placeholder patterns in
// registration order, noun phrases are resolved against the session, and
// the matching handler is invoked.
package command

import (
	"fmt"
	"strings"
)

// Placeholder names accepted in patterns. A placeholder captures one or
// more input tokens, up to the next literal token in the pattern.
const (
	placeholderItem   = "ITEM"
	placeholderTarget = "TARGET"
)

// articles are dropped during tokenization so "take the key" and
// "take key" parse identically.
var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// canonicalDirections maps every accepted spelling of a direction,
// shortcuts included, to its canonical exit label.
var canonicalDirections = map[string]string{
	"north": "north", "south": "south", "east": "east", "west": "west",
	"up": "up", "down": "down",
	"n": "north", "s": "south", "e": "east", "w": "west",
	"u": "up", "d": "down",
}

// movementVerbs lead patterns whose first argument is a direction; the
// token after them is canonicalized so "go n" matches like "go north".
var movementVerbs = map[string]bool{
	"go": true, "walk": true, "move": true, "run": true,
}

// Tokenize lower-cases the input, splits it on whitespace, and strips
// articles.
func Tokenize(input string) []string {
	fields := strings.Fields(strings.ToLower(input))
	tokens := fields[:0]
	for _, f := range fields {
		if !articles[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// NormalizeDirections rewrites directional shortcuts to canonical form
// before matching: a bare "n" or "north" becomes "go north", and the
// argument of a movement verb is canonicalized in place.
func NormalizeDirections(tokens []string) []string {
	if len(tokens) == 1 {
		if dir, found := canonicalDirections[tokens[0]]; found {
			return []string{"go", dir}
		}
	}
	if len(tokens) >= 2 && movementVerbs[tokens[0]] {
		if dir, found := canonicalDirections[tokens[1]]; found {
			out := make([]string, len(tokens))
			copy(out, tokens)
			out[1] = dir
			return out
		}
	}
	return tokens
}

// patternToken is one element of a compiled pattern: either a literal
// word or a placeholder.
type patternToken struct {
	literal     string
	placeholder string // placeholderItem, placeholderTarget, or ""
}

// rule pairs a compiled pattern with its handler.
type rule struct {
	pattern string
	tokens  []patternToken
	handler Handler
}

// compilePattern parses a pattern string such as "use ITEM on TARGET".
// Literal tokens are lower-cased. Placeholders must be separated by at
// least one literal (adjacent placeholders would make the split between
// their captures ambiguous) and may appear at most once each.
func compilePattern(pattern string) ([]patternToken, error) {
	words := strings.Fields(pattern)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}

	var tokens []patternToken
	seen := map[string]bool{}
	prevPlaceholder := false

	for _, w := range words {
		switch w {
		case placeholderItem, placeholderTarget:
			if prevPlaceholder {
				return nil, fmt.Errorf("pattern %q: adjacent placeholders", pattern)
			}
			if seen[w] {
				return nil, fmt.Errorf("pattern %q: duplicate placeholder %s", pattern, w)
			}
			seen[w] = true
			prevPlaceholder = true
			tokens = append(tokens, patternToken{placeholder: w})
		default:
			if w != strings.ToLower(w) {
				return nil, fmt.Errorf("pattern %q: unknown placeholder %s", pattern, w)
			}
			prevPlaceholder = false
			tokens = append(tokens, patternToken{literal: w})
		}
	}

	return tokens, nil
}

// match attempts to bind input tokens to this rule's pattern. A
// placeholder captures one or more tokens up to the next literal in the
// pattern; a trailing placeholder captures everything left. Returns the
// captured phrases keyed by placeholder name.
func (r *rule) match(tokens []string) (map[string]string, bool) {
	captures := make(map[string]string, 2)
	j := 0

	for i, pt := range r.tokens {
		if pt.placeholder == "" {
			if j >= len(tokens) || tokens[j] != pt.literal {
				return nil, false
			}
			j++
			continue
		}

		// Placeholder: needs at least one token.
		if j >= len(tokens) {
			return nil, false
		}

		if i == len(r.tokens)-1 {
			captures[pt.placeholder] = strings.Join(tokens[j:], " ")
			j = len(tokens)
			continue
		}

		// Capture up to the next literal in the pattern. compilePattern
		// guarantees the next token is a literal.
		next := r.tokens[i+1].literal
		end := -1
		for k := j + 1; k < len(tokens); k++ {
			if tokens[k] == next {
				end = k
				break
			}
		}
		if end == -1 {
			return nil, false
		}
		captures[pt.placeholder] = strings.Join(tokens[j:end], " ")
		j = end
	}

	if j != len(tokens) {
		return nil, false
	}
	return captures, true
}
