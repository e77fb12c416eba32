package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	// Room "id" { ... } — curried: Room("id") returns a function that
	// takes the definition table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.rooms = append(coll.rooms, rawRoom{id: id, table: tbl})
			return 0
		}))
		return 1
	}))

	// Item "id" { ... } — curried, portable and takeable by default.
	L.SetGlobal("Item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{id: id, kind: "item", table: tbl})
			return 0
		}))
		return 1
	}))

	// Prop "id" { ... } — curried, fixed scenery.
	L.SetGlobal("Prop", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{id: id, kind: "prop", table: tbl})
			return 0
		}))
		return 1
	}))

	// NPC "id" { ... } — curried, a talkable character.
	L.SetGlobal("NPC", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.items = append(coll.items, rawItem{id: id, kind: "npc", table: tbl})
			return 0
		}))
		return 1
	}))
}

func registerConditionHelpers(L *lua.LState) {
	// HasItem("id")
	L.SetGlobal("HasItem", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("has_item"))
		tbl.RawSetString("item", lua.LString(item))
		L.Push(tbl)
		return 1
	}))

	// FlagSet("flag")
	L.SetGlobal("FlagSet", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("flag_set"))
		tbl.RawSetString("flag", lua.LString(flag))
		L.Push(tbl)
		return 1
	}))

	// FlagNot("flag")
	L.SetGlobal("FlagNot", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("flag_not"))
		tbl.RawSetString("flag", lua.LString(flag))
		L.Push(tbl)
		return 1
	}))

	// InRoom("room_id")
	L.SetGlobal("InRoom", L.NewFunction(func(L *lua.LState) int {
		room := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("in_room"))
		tbl.RawSetString("room", lua.LString(room))
		L.Push(tbl)
		return 1
	}))

	// Not(condition)
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		inner := L.CheckTable(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("not"))
		tbl.RawSetString("inner", inner)
		L.Push(tbl)
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Say "text"
	L.SetGlobal("Say", L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("say"))
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// SetFlag("flag", value)
	L.SetGlobal("SetFlag", L.NewFunction(func(L *lua.LState) int {
		flag := L.CheckString(1)
		value := L.CheckBool(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("set_flag"))
		tbl.RawSetString("flag", lua.LString(flag))
		tbl.RawSetString("value", lua.LBool(value))
		L.Push(tbl)
		return 1
	}))

	// Reveal("item_id") — makes a hidden item visible.
	L.SetGlobal("Reveal", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("reveal"))
		tbl.RawSetString("item", lua.LString(item))
		L.Push(tbl)
		return 1
	}))

	// Hide("item_id")
	L.SetGlobal("Hide", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("hide"))
		tbl.RawSetString("item", lua.LString(item))
		L.Push(tbl)
		return 1
	}))

	// SetDescription("item_id", "text")
	L.SetGlobal("SetDescription", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		text := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("set_description"))
		tbl.RawSetString("item", lua.LString(item))
		tbl.RawSetString("text", lua.LString(text))
		L.Push(tbl)
		return 1
	}))

	// OpenExit("room", "direction", "target")
	L.SetGlobal("OpenExit", L.NewFunction(func(L *lua.LState) int {
		room := L.CheckString(1)
		direction := L.CheckString(2)
		target := L.CheckString(3)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("open_exit"))
		tbl.RawSetString("room", lua.LString(room))
		tbl.RawSetString("direction", lua.LString(direction))
		tbl.RawSetString("target", lua.LString(target))
		L.Push(tbl)
		return 1
	}))

	// CloseExit("room", "direction")
	L.SetGlobal("CloseExit", L.NewFunction(func(L *lua.LState) int {
		room := L.CheckString(1)
		direction := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("close_exit"))
		tbl.RawSetString("room", lua.LString(room))
		tbl.RawSetString("direction", lua.LString(direction))
		L.Push(tbl)
		return 1
	}))

	// MovePlayer("room")
	L.SetGlobal("MovePlayer", L.NewFunction(func(L *lua.LState) int {
		room := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("move_player"))
		tbl.RawSetString("room", lua.LString(room))
		L.Push(tbl)
		return 1
	}))

	// PlaceItem("item_id", "room_id") — puts an unplaced item in a room.
	L.SetGlobal("PlaceItem", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		room := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("place_item"))
		tbl.RawSetString("item", lua.LString(item))
		tbl.RawSetString("room", lua.LString(room))
		L.Push(tbl)
		return 1
	}))

	// GiveItem("item_id") — puts an item straight into the inventory.
	L.SetGlobal("GiveItem", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("give_item"))
		tbl.RawSetString("item", lua.LString(item))
		L.Push(tbl)
		return 1
	}))

	// Consume("item_id") — removes a held item from play.
	L.SetGlobal("Consume", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("consume"))
		tbl.RawSetString("item", lua.LString(item))
		L.Push(tbl)
		return 1
	}))
}
