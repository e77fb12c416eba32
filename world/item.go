// Package world implements the entity model, the room graph, and the
// per-session game state. Rooms own items by reference; an item belongs to
// exactly one container (a room or the inventory) at a time.
package world

import "strings"

// Kind tags what role an item plays in the world. The original engine
// inferred roles from attribute absence (an NPC was just a non-takeable
// item); here the role is explicit.
type Kind int

const (
	// KindPortable is an ordinary item the player can carry.
	KindPortable Kind = iota
	// KindProp is fixed scenery: examinable and usable, never takeable.
	KindProp
	// KindNPC is a character: talkable, never takeable.
	KindNPC
)

func (k Kind) String() string {
	switch k {
	case KindProp:
		return "prop"
	case KindNPC:
		return "npc"
	default:
		return "item"
	}
}

// Callback is a scripted reaction attached to an item. It receives the
// turn context and returns whether the reaction succeeded; the dispatcher
// consumes that result only for logging. All player-visible messaging is
// the callback's own responsibility, via ctx.Say.
type Callback func(ctx *Context) bool

// Item is an interactive object. Its name is the lookup key within a
// container and is fixed at creation.
type Item struct {
	name        string
	description string
	kind        Kind
	takeable    bool
	hidden      bool
	contained   bool

	onUse     Callback
	onUseWith map[string]Callback // keyed by lowercased target name
	onExamine Callback
	onTalk    Callback
}

// NewItem creates a portable, takeable item.
func NewItem(name, description string) *Item {
	return &Item{name: name, description: description, kind: KindPortable, takeable: true}
}

// NewProp creates a fixed, non-takeable item (scenery, signs, displays).
func NewProp(name, description string) *Item {
	return &Item{name: name, description: description, kind: KindProp}
}

// NewNPC creates a non-takeable character item.
func NewNPC(name, description string) *Item {
	return &Item{name: name, description: description, kind: KindNPC}
}

func (it *Item) Name() string        { return it.name }
func (it *Item) Description() string { return it.description }
func (it *Item) Kind() Kind          { return it.kind }
func (it *Item) Takeable() bool      { return it.takeable }
func (it *Item) Hidden() bool        { return it.hidden }

// SetDescription replaces the item's description. Callbacks use this for
// state-dependent text (an unlocked case reads differently).
func (it *Item) SetDescription(description string) { it.description = description }

// SetTakeable overrides the kind's default takeability.
func (it *Item) SetTakeable(takeable bool) { it.takeable = takeable }

// Hide removes the item from room listings and noun resolution.
func (it *Item) Hide() { it.hidden = true }

// Reveal makes a hidden item visible and resolvable again.
func (it *Item) Reveal() { it.hidden = false }

// Matches reports whether name refers to this item. Matching is
// case-insensitive and exact; there is no fuzzy or partial matching.
func (it *Item) Matches(name string) bool {
	return strings.EqualFold(it.name, name)
}

// AddUseCallback registers the reaction for a bare "use <item>".
func (it *Item) AddUseCallback(fn Callback) { it.onUse = fn }

// AddUseWithCallback registers the reaction for "use <item> on/with <target>".
// The target is identified by name, not by reference, so content can wire
// interactions before both items are placed.
func (it *Item) AddUseWithCallback(target string, fn Callback) {
	if it.onUseWith == nil {
		it.onUseWith = make(map[string]Callback)
	}
	it.onUseWith[strings.ToLower(target)] = fn
}

// AddExamineCallback registers a hook run after the description is shown.
func (it *Item) AddExamineCallback(fn Callback) { it.onExamine = fn }

// AddTalkCallback registers the reaction for "talk to <item>".
func (it *Item) AddTalkCallback(fn Callback) { it.onTalk = fn }

// Use invokes the bare-use reaction. handled is false when no callback is
// registered; ok is the callback's own success indicator.
func (it *Item) Use(ctx *Context) (handled, ok bool) {
	if it.onUse == nil {
		return false, false
	}
	return true, it.onUse(ctx)
}

// UseWith invokes the reaction registered for the named target, falling
// back to the bare-use reaction when no targeted one exists. This mirrors
// how a multi-purpose item reacts the same way regardless of target.
func (it *Item) UseWith(ctx *Context, target string) (handled, ok bool) {
	if fn, found := it.onUseWith[strings.ToLower(target)]; found {
		return true, fn(ctx)
	}
	return it.Use(ctx)
}

// Examine invokes the examine hook, if any.
func (it *Item) Examine(ctx *Context) (handled, ok bool) {
	if it.onExamine == nil {
		return false, false
	}
	return true, it.onExamine(ctx)
}

// Talk invokes the talk reaction, if any.
func (it *Item) Talk(ctx *Context) (handled, ok bool) {
	if it.onTalk == nil {
		return false, false
	}
	return true, it.onTalk(ctx)
}
