package loader

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// GameDef is the immutable output of loading: pure data, no live world
// objects. Build stamps fresh worlds from it, one per session.
type GameDef struct {
	Title   string
	Author  string
	Version string
	Start   string
	Intro   string

	// Definition order is preserved so room listings and build results
	// are deterministic.
	Rooms []*RoomDef
	Items []*ItemDef

	roomsByID map[string]*RoomDef
	itemsByID map[string]*ItemDef
}

// RoomDef describes one room.
type RoomDef struct {
	ID          string
	Name        string
	Description string // shown on revisits
	Long        string // shown on the first visit, optional
	Exits       map[string]string
}

// ItemDef describes one item, prop, or NPC.
type ItemDef struct {
	ID          string
	Kind        string // "item", "prop", or "npc"
	Name        string
	Description string
	Location    string // room ID, empty for unplaced items
	Hidden      bool
	Takeable    bool

	Use     []ReactionDef
	UseWith map[string][]ReactionDef // keyed by target item ID
	Examine []ReactionDef
	Talk    []ReactionDef
}

// ReactionDef is one conditional reaction: when every condition holds,
// the effects fire in order.
type ReactionDef struct {
	When    []ConditionDef
	Effects []EffectDef
}

// ConditionDef is one declarative condition from the content DSL.
type ConditionDef struct {
	Type  string // flag_set, flag_not, has_item, in_room, not
	Flag  string
	Item  string
	Room  string
	Inner *ConditionDef
}

// EffectDef is one declarative effect from the content DSL.
type EffectDef struct {
	Type      string
	Text      string
	Flag      string
	Value     bool
	Item      string
	Room      string
	Direction string
	Target    string
}

// Room returns the room def with the given ID.
func (d *GameDef) Room(id string) (*RoomDef, bool) {
	r, ok := d.roomsByID[id]
	return r, ok
}

// Item returns the item def with the given ID.
func (d *GameDef) Item(id string) (*ItemDef, bool) {
	it, ok := d.itemsByID[id]
	return it, ok
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStringMap converts a Lua table to a map[string]string.
func tableToStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

// compile converts all collected Lua data into a GameDef.
func compile(coll *collector) (*GameDef, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}

	def := &GameDef{
		Title:     getString(coll.game, "title"),
		Author:    getString(coll.game, "author"),
		Version:   getString(coll.game, "version"),
		Start:     getString(coll.game, "start"),
		Intro:     getString(coll.game, "intro"),
		roomsByID: map[string]*RoomDef{},
		itemsByID: map[string]*ItemDef{},
	}

	for _, raw := range coll.rooms {
		if _, exists := def.roomsByID[raw.id]; exists {
			return nil, fmt.Errorf("room %q defined twice", raw.id)
		}
		room := compileRoom(raw)
		def.Rooms = append(def.Rooms, room)
		def.roomsByID[raw.id] = room
	}

	for _, raw := range coll.items {
		if _, exists := def.itemsByID[raw.id]; exists {
			return nil, fmt.Errorf("item %q defined twice", raw.id)
		}
		item, err := compileItem(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling %s %s: %w", raw.kind, raw.id, err)
		}
		def.Items = append(def.Items, item)
		def.itemsByID[raw.id] = item
	}

	return def, nil
}

func compileRoom(raw rawRoom) *RoomDef {
	tbl := raw.table
	room := &RoomDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Long:        getString(tbl, "long_description"),
		Exits:       tableToStringMap(getTable(tbl, "exits")),
	}
	if room.Name == "" {
		room.Name = displayName(raw.id)
	}
	return room
}

func compileItem(raw rawItem) (*ItemDef, error) {
	tbl := raw.table
	item := &ItemDef{
		ID:          raw.id,
		Kind:        raw.kind,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Location:    getString(tbl, "location"),
		Hidden:      getBool(tbl, "hidden", false),
		Takeable:    getBool(tbl, "takeable", raw.kind == "item"),
	}
	if item.Name == "" {
		item.Name = displayName(raw.id)
	}
	if item.Takeable && raw.kind != "item" {
		return nil, fmt.Errorf("%s cannot be takeable", raw.kind)
	}

	var err error
	if item.Use, err = compileReactions(getTable(tbl, "use")); err != nil {
		return nil, fmt.Errorf("use: %w", err)
	}
	if item.Examine, err = compileReactions(getTable(tbl, "examine")); err != nil {
		return nil, fmt.Errorf("examine: %w", err)
	}
	if item.Talk, err = compileReactions(getTable(tbl, "talk")); err != nil {
		return nil, fmt.Errorf("talk: %w", err)
	}

	if withTbl := getTable(tbl, "use_with"); withTbl != nil {
		item.UseWith = map[string][]ReactionDef{}
		var inner error
		withTbl.ForEach(func(k, v lua.LValue) {
			target, ok := k.(lua.LString)
			if !ok {
				return
			}
			reactTbl, ok := v.(*lua.LTable)
			if !ok {
				return
			}
			reactions, err := compileReactions(reactTbl)
			if err != nil && inner == nil {
				inner = fmt.Errorf("use_with %s: %w", target, err)
				return
			}
			item.UseWith[string(target)] = reactions
		})
		if inner != nil {
			return nil, inner
		}
	}

	return item, nil
}

// compileReactions accepts two shapes: a plain array of effect tables
// (one unconditional reaction) or an array of {when = ..., effects = ...}
// tables (an ordered reaction list; the first whose conditions hold
// fires).
func compileReactions(tbl *lua.LTable) ([]ReactionDef, error) {
	if tbl == nil {
		return nil, nil
	}

	maxN := tbl.MaxN()
	if maxN == 0 {
		return nil, fmt.Errorf("reactions must be an array")
	}

	first, ok := tbl.RawGetInt(1).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("reaction element 1 is not a table")
	}

	// Effect-list shape: elements are effect tables, tagged with "type".
	if getString(first, "type") != "" {
		effects, err := compileEffects(tbl)
		if err != nil {
			return nil, err
		}
		return []ReactionDef{{Effects: effects}}, nil
	}

	var reactions []ReactionDef
	for i := 1; i <= maxN; i++ {
		reactTbl, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("reaction element %d is not a table", i)
		}
		var react ReactionDef
		var err error
		if whenTbl := getTable(reactTbl, "when"); whenTbl != nil {
			if react.When, err = compileConditions(whenTbl); err != nil {
				return nil, fmt.Errorf("reaction %d: %w", i, err)
			}
		}
		effTbl := getTable(reactTbl, "effects")
		if effTbl == nil {
			return nil, fmt.Errorf("reaction %d has no effects", i)
		}
		if react.Effects, err = compileEffects(effTbl); err != nil {
			return nil, fmt.Errorf("reaction %d: %w", i, err)
		}
		reactions = append(reactions, react)
	}
	return reactions, nil
}

func compileConditions(tbl *lua.LTable) ([]ConditionDef, error) {
	var conditions []ConditionDef
	maxN := tbl.MaxN()
	for i := 1; i <= maxN; i++ {
		condTbl, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("condition %d is not a table", i)
		}
		cond, err := compileCondition(condTbl)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}

func compileCondition(tbl *lua.LTable) (ConditionDef, error) {
	cond := ConditionDef{
		Type: getString(tbl, "type"),
		Flag: getString(tbl, "flag"),
		Item: getString(tbl, "item"),
		Room: getString(tbl, "room"),
	}
	if cond.Type == "not" {
		innerTbl := getTable(tbl, "inner")
		if innerTbl == nil {
			return cond, fmt.Errorf("not condition has no inner condition")
		}
		inner, err := compileCondition(innerTbl)
		if err != nil {
			return cond, err
		}
		cond.Inner = &inner
	}
	return cond, nil
}

func compileEffects(tbl *lua.LTable) ([]EffectDef, error) {
	var effects []EffectDef
	maxN := tbl.MaxN()
	for i := 1; i <= maxN; i++ {
		effTbl, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("effect %d is not a table", i)
		}
		effects = append(effects, EffectDef{
			Type:      getString(effTbl, "type"),
			Text:      getString(effTbl, "text"),
			Flag:      getString(effTbl, "flag"),
			Value:     getBool(effTbl, "value", false),
			Item:      getString(effTbl, "item"),
			Room:      getString(effTbl, "room"),
			Direction: getString(effTbl, "direction"),
			Target:    getString(effTbl, "target"),
		})
	}
	return effects, nil
}

// displayName derives a player-facing name from a definition ID.
func displayName(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}
