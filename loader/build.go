package loader

import (
	"fmt"

	"github.com/norrisaftcc/tool-textadv/world"
)

// Game is one live, mutable world built from a GameDef. Every session
// gets its own Game; nothing is shared between builds, so callbacks can
// mutate rooms and items freely.
type Game struct {
	Title   string
	Author  string
	Version string
	Intro   string
	Start   *world.Room
	Rooms   map[string]*world.Room
	Items   map[string]*world.Item
}

// Build stamps a fresh world from the definition: rooms, exits, items in
// their starting containers, and reactions compiled into callbacks bound
// to this world's objects.
func (d *GameDef) Build() (*Game, error) {
	g := &Game{
		Title:   d.Title,
		Author:  d.Author,
		Version: d.Version,
		Intro:   d.Intro,
		Rooms:   make(map[string]*world.Room, len(d.Rooms)),
		Items:   make(map[string]*world.Item, len(d.Items)),
	}

	for _, rd := range d.Rooms {
		room := world.NewRoom(rd.Name, rd.Description)
		if rd.Long != "" {
			room.SetLongDescription(rd.Long)
		}
		g.Rooms[rd.ID] = room
	}
	for _, rd := range d.Rooms {
		for dir, target := range rd.Exits {
			g.Rooms[rd.ID].Connect(dir, g.Rooms[target])
		}
	}
	g.Start = g.Rooms[d.Start]

	for _, itd := range d.Items {
		item := buildItem(itd)
		g.Items[itd.ID] = item
		if itd.Location != "" {
			if err := g.Rooms[itd.Location].AddItem(item); err != nil {
				return nil, fmt.Errorf("placing %s in %s: %w", itd.ID, itd.Location, err)
			}
		}
	}

	// Callbacks are attached after every object exists, so reactions can
	// reference any room or item regardless of definition order.
	for _, itd := range d.Items {
		item := g.Items[itd.ID]
		if len(itd.Use) > 0 {
			item.AddUseCallback(g.compileReactions(itd.Use))
		}
		if len(itd.Examine) > 0 {
			item.AddExamineCallback(g.compileReactions(itd.Examine))
		}
		if len(itd.Talk) > 0 {
			item.AddTalkCallback(g.compileReactions(itd.Talk))
		}
		for targetID, reactions := range itd.UseWith {
			target, ok := d.Item(targetID)
			if !ok {
				return nil, fmt.Errorf("%s use_with references undefined item %q", itd.ID, targetID)
			}
			item.AddUseWithCallback(target.Name, g.compileReactions(reactions))
		}
	}

	return g, nil
}

func buildItem(def *ItemDef) *world.Item {
	var item *world.Item
	switch def.Kind {
	case "npc":
		item = world.NewNPC(def.Name, def.Description)
	case "prop":
		item = world.NewProp(def.Name, def.Description)
	default:
		item = world.NewItem(def.Name, def.Description)
		item.SetTakeable(def.Takeable)
	}
	if def.Hidden {
		item.Hide()
	}
	return item
}

// compileReactions turns an ordered reaction list into one callback: the
// first reaction whose conditions all hold fires, and the callback
// reports whether its effects all applied. With no matching reaction the
// callback says nothing and reports failure; content wanting a response
// in every case ends the list with an unconditional reaction.
func (g *Game) compileReactions(defs []ReactionDef) world.Callback {
	type reaction struct {
		when    []func(ctx *world.Context) bool
		effects []func(ctx *world.Context) bool
	}

	compiled := make([]reaction, len(defs))
	for i, rd := range defs {
		for _, cond := range rd.When {
			compiled[i].when = append(compiled[i].when, g.compileCondition(cond))
		}
		for _, eff := range rd.Effects {
			compiled[i].effects = append(compiled[i].effects, g.compileEffect(eff))
		}
	}

	return func(ctx *world.Context) bool {
		for _, r := range compiled {
			if !conditionsHold(ctx, r.when) {
				continue
			}
			ok := true
			for _, apply := range r.effects {
				if !apply(ctx) {
					ok = false
				}
			}
			return ok
		}
		return false
	}
}

func conditionsHold(ctx *world.Context, conds []func(ctx *world.Context) bool) bool {
	for _, cond := range conds {
		if !cond(ctx) {
			return false
		}
	}
	return true
}

func (g *Game) compileCondition(def ConditionDef) func(ctx *world.Context) bool {
	switch def.Type {
	case "flag_set":
		flag := def.Flag
		return func(ctx *world.Context) bool { return ctx.State.Flag(flag) }
	case "flag_not":
		flag := def.Flag
		return func(ctx *world.Context) bool { return !ctx.State.Flag(flag) }
	case "has_item":
		name := g.Items[def.Item].Name()
		return func(ctx *world.Context) bool { return ctx.State.Holding(name) }
	case "in_room":
		room := g.Rooms[def.Room]
		return func(ctx *world.Context) bool { return ctx.State.CurrentRoom() == room }
	case "not":
		inner := g.compileCondition(*def.Inner)
		return func(ctx *world.Context) bool { return !inner(ctx) }
	}
	// validate rejects unknown types before Build runs.
	panic("loader: unknown condition type " + def.Type)
}

func (g *Game) compileEffect(def EffectDef) func(ctx *world.Context) bool {
	switch def.Type {
	case "say":
		text := def.Text
		return func(ctx *world.Context) bool {
			ctx.Say(text)
			return true
		}
	case "set_flag":
		flag, value := def.Flag, def.Value
		return func(ctx *world.Context) bool {
			ctx.State.SetFlag(flag, value)
			return true
		}
	case "reveal":
		item := g.Items[def.Item]
		return func(ctx *world.Context) bool {
			item.Reveal()
			return true
		}
	case "hide":
		item := g.Items[def.Item]
		return func(ctx *world.Context) bool {
			item.Hide()
			return true
		}
	case "set_description":
		item, text := g.Items[def.Item], def.Text
		return func(ctx *world.Context) bool {
			item.SetDescription(text)
			return true
		}
	case "open_exit":
		room, dir, target := g.Rooms[def.Room], def.Direction, g.Rooms[def.Target]
		return func(ctx *world.Context) bool {
			room.Connect(dir, target)
			return true
		}
	case "close_exit":
		room, dir := g.Rooms[def.Room], def.Direction
		return func(ctx *world.Context) bool {
			room.Disconnect(dir)
			return true
		}
	case "move_player":
		room := g.Rooms[def.Room]
		return func(ctx *world.Context) bool {
			first := ctx.State.Teleport(room)
			ctx.Say(room.ActiveDescription(first))
			return true
		}
	case "place_item":
		item, room := g.Items[def.Item], g.Rooms[def.Room]
		return func(ctx *world.Context) bool {
			return room.AddItem(item) == nil
		}
	case "give_item":
		item := g.Items[def.Item]
		return func(ctx *world.Context) bool {
			// The item may sit hidden in the current room; pull it out
			// first so the ownership transfer succeeds.
			item.Reveal()
			_, _ = ctx.State.CurrentRoom().RemoveItem(item.Name())
			return ctx.State.AddToInventory(item) == nil
		}
	case "consume":
		name := g.Items[def.Item].Name()
		return func(ctx *world.Context) bool {
			_, err := ctx.State.DiscardFromInventory(name)
			return err == nil
		}
	}
	panic("loader: unknown effect type " + def.Type)
}
