package command

import (
	"errors"
	"testing"

	"github.com/norrisaftcc/tool-textadv/world"
)

// testState builds a session in a room holding a key and a door prop,
// with a lamp already in the inventory.
func testState(t *testing.T) *world.State {
	t.Helper()
	room := world.NewRoom("workshop", "A cluttered workshop.")
	for _, it := range []*world.Item{
		world.NewItem("key", "A small key."),
		world.NewProp("door", "A heavy door."),
	} {
		if err := room.AddItem(it); err != nil {
			t.Fatal(err)
		}
	}
	s := world.NewState(room)
	s.Begin()
	if err := s.AddToInventory(world.NewItem("lamp", "A lamp.")); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDispatch_FirstMatchWins(t *testing.T) {
	s := testState(t)
	tbl := NewTable(nil)

	var fired string
	tbl.MustRegister("use ITEM on TARGET", func(s *world.State, cmd Command) Result {
		fired = "targeted"
		return Result{}
	})
	tbl.MustRegister("use ITEM", func(s *world.State, cmd Command) Result {
		fired = "bare"
		return Result{}
	})

	tbl.Dispatch(s, "use key on door")
	if fired != "targeted" {
		t.Errorf("fired = %q, want targeted", fired)
	}

	tbl.Dispatch(s, "use key")
	if fired != "bare" {
		t.Errorf("fired = %q, want bare", fired)
	}
}

func TestDispatch_ResolvesCaptures(t *testing.T) {
	s := testState(t)
	tbl := NewTable(nil)

	var got Command
	tbl.MustRegister("use ITEM on TARGET", func(s *world.State, cmd Command) Result {
		got = cmd
		return Result{}
	})

	tbl.Dispatch(s, "use the key on the door")
	if got.ItemPhrase != "key" || got.TargetPhrase != "door" {
		t.Fatalf("phrases = %q, %q", got.ItemPhrase, got.TargetPhrase)
	}
	if got.Item == nil || got.Item.Name() != "key" {
		t.Error("Item not resolved")
	}
	if got.Target == nil || got.Target.Name() != "door" {
		t.Error("Target not resolved")
	}
}

func TestDispatch_UnresolvedItemIsNilSentinel(t *testing.T) {
	s := testState(t)
	tbl := NewTable(nil)

	var got Command
	called := false
	tbl.MustRegister("take ITEM", func(s *world.State, cmd Command) Result {
		called = true
		got = cmd
		return Result{}
	})

	tbl.Dispatch(s, "take sword")
	if !called {
		t.Fatal("handler should still run with an unresolved item")
	}
	if got.Item != nil {
		t.Error("unresolved item should be the nil sentinel")
	}
	if got.ItemPhrase != "sword" {
		t.Errorf("ItemPhrase = %q", got.ItemPhrase)
	}
}

func TestDispatch_InventoryResolves(t *testing.T) {
	s := testState(t)
	tbl := NewTable(nil)

	var got Command
	tbl.MustRegister("use ITEM", func(s *world.State, cmd Command) Result {
		got = cmd
		return Result{}
	})

	tbl.Dispatch(s, "use lamp")
	if got.Item == nil || got.Item.Name() != "lamp" {
		t.Error("held items should resolve")
	}
}

func TestDispatch_Unrecognized(t *testing.T) {
	s := testState(t)
	tbl := NewTable(nil)
	tbl.MustRegister("look", func(s *world.State, cmd Command) Result { return Result{} })

	res := tbl.Dispatch(s, "xyzzy")
	var unrecognized *UnrecognizedCommandError
	if !errors.As(res.Err, &unrecognized) {
		t.Fatalf("Err = %v, want UnrecognizedCommandError", res.Err)
	}
	if unrecognized.Input != "xyzzy" {
		t.Errorf("Input = %q", unrecognized.Input)
	}

	// Empty input is unrecognized too.
	res = tbl.Dispatch(s, "   ")
	if !errors.As(res.Err, &unrecognized) {
		t.Errorf("blank Err = %v, want UnrecognizedCommandError", res.Err)
	}
}

func TestDispatch_DirectionShortcut(t *testing.T) {
	s := testState(t)
	tbl := NewTable(nil)

	var got Command
	tbl.MustRegister("go ITEM", func(s *world.State, cmd Command) Result {
		got = cmd
		return Result{}
	})

	tbl.Dispatch(s, "n")
	if got.ItemPhrase != "north" {
		t.Errorf("bare shortcut: ItemPhrase = %q, want north", got.ItemPhrase)
	}

	tbl.Dispatch(s, "go s")
	if got.ItemPhrase != "south" {
		t.Errorf("verb shortcut: ItemPhrase = %q, want south", got.ItemPhrase)
	}
}

func TestRegister_Validation(t *testing.T) {
	tbl := NewTable(nil)
	if err := tbl.Register("use ITEM", nil); err == nil {
		t.Error("nil handler should be rejected")
	}
	if err := tbl.Register("use ITEM TARGET", func(s *world.State, cmd Command) Result { return Result{} }); err == nil {
		t.Error("bad pattern should be rejected")
	}
}

func TestRegister_AfterSealPanics(t *testing.T) {
	tbl := NewTable(nil)
	tbl.MustRegister("look", func(s *world.State, cmd Command) Result { return Result{} })
	tbl.Seal()

	defer func() {
		if recover() == nil {
			t.Error("Register after Seal should panic")
		}
	}()
	tbl.MustRegister("jump", func(s *world.State, cmd Command) Result { return Result{} })
}

func TestRules_ReportsOrder(t *testing.T) {
	tbl := NewTable(nil)
	h := func(s *world.State, cmd Command) Result { return Result{} }
	tbl.MustRegister("use ITEM on TARGET", h)
	tbl.MustRegister("use ITEM", h)

	rules := tbl.Rules()
	if len(rules) != 2 || rules[0] != "use ITEM on TARGET" || rules[1] != "use ITEM" {
		t.Errorf("Rules() = %v", rules)
	}
}
