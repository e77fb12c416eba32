package engine

import (
	"strings"
	"testing"

	"github.com/norrisaftcc/tool-textadv/command"
	"github.com/norrisaftcc/tool-textadv/world"
)

// caveWorld builds a small puzzle world: a cavern with a key and a
// locked door. Using the key on the door opens the way north to the
// treasure room.
func caveWorld(t *testing.T) (*Engine, *world.Room, *world.Room) {
	t.Helper()

	cavern := world.NewRoom("cavern", "A dark cavern.")
	cavern.SetLongDescription("You stumble into a dark cavern. A locked door blocks the north wall.")
	treasure := world.NewRoom("treasure room", "A glittering treasure room.")
	treasure.Connect("south", cavern)

	key := world.NewItem("key", "A small iron key.")
	door := world.NewProp("door", "A locked iron door.")
	key.AddUseWithCallback("door", func(ctx *world.Context) bool {
		if ctx.State.Flag("door_open") {
			ctx.Say("The door is already open.")
			return true
		}
		ctx.Say("The key turns with a click. The door swings open to the north.")
		cavern.Connect("north", treasure)
		ctx.State.SetFlag("door_open", true)
		return true
	})
	for _, it := range []*world.Item{key, door} {
		if err := cavern.AddItem(it); err != nil {
			t.Fatal(err)
		}
	}

	return New(cavern), cavern, treasure
}

func output(res command.Result) string {
	return strings.Join(res.Output, "\n")
}

func TestEngine_StartDescribesFirstVisit(t *testing.T) {
	e, _, _ := caveWorld(t)

	res := e.Start()
	if !strings.Contains(output(res), "You stumble into a dark cavern") {
		t.Errorf("Start output = %q, want the long description", output(res))
	}
	if !strings.Contains(output(res), "You see: key, door.") {
		t.Errorf("Start output = %q, want the item listing", output(res))
	}

	// Start again just re-describes, with the short description now.
	res = e.Start()
	if !strings.Contains(output(res), "A dark cavern.") {
		t.Errorf("second Start output = %q", output(res))
	}
}

func TestEngine_PuzzleWalkthrough(t *testing.T) {
	e, cavern, treasure := caveWorld(t)
	e.Start()

	// The way north is shut.
	res := e.Step("go north")
	if !strings.Contains(output(res), "You can't go north.") {
		t.Fatalf("go north before unlock = %q", output(res))
	}
	if e.State().CurrentRoom() != cavern {
		t.Fatal("failed move changed rooms")
	}

	res = e.Step("take key")
	if !strings.Contains(output(res), "You take the key.") {
		t.Fatalf("take key = %q", output(res))
	}

	res = e.Step("use key on door")
	if !strings.Contains(output(res), "The key turns with a click.") {
		t.Fatalf("use key on door = %q", output(res))
	}

	res = e.Step("go north")
	if res.Err != nil {
		t.Fatalf("go north after unlock: %v", res.Err)
	}
	if e.State().CurrentRoom() != treasure {
		t.Fatal("player should be in the treasure room")
	}
	if !strings.Contains(output(res), "A glittering treasure room.") {
		t.Errorf("arrival output = %q", output(res))
	}

	// And back south again.
	if res := e.Step("s"); res.Err != nil {
		t.Fatalf("go south: %v", res.Err)
	}
	if e.State().CurrentRoom() != cavern {
		t.Error("player should be back in the cavern")
	}
}

func TestEngine_TurnAccounting(t *testing.T) {
	e, _, _ := caveWorld(t)
	e.Start()

	steps := []struct {
		input    string
		accepted bool
	}{
		{"look", true},
		{"xyzzy", false},        // unrecognized
		{"go west", false},      // no such exit
		{"take sword", false},   // no such item
		{"take door", false},    // not takeable
		{"take key", true},
		{"", false},             // blank input is not a command
		{"inventory", true},
	}
	want := 0
	for _, st := range steps {
		e.Step(st.input)
		if st.accepted {
			want++
		}
		if got := e.State().Turns(); got != want {
			t.Errorf("after %q: Turns = %d, want %d", st.input, got, want)
		}
	}
}

func TestEngine_UnrecognizedLeavesStateAlone(t *testing.T) {
	e, cavern, _ := caveWorld(t)
	e.Start()

	res := e.Step("frobnicate the widget")
	if !strings.Contains(output(res), "I don't understand that.") {
		t.Errorf("output = %q", output(res))
	}
	if e.State().CurrentRoom() != cavern {
		t.Error("room changed")
	}
	if len(e.State().Inventory()) != 0 {
		t.Error("inventory changed")
	}
	if e.State().Turns() != 0 {
		t.Error("turn counter advanced")
	}
}

func TestEngine_ExamineAndLook(t *testing.T) {
	e, _, _ := caveWorld(t)
	e.Start()

	res := e.Step("examine key")
	if !strings.Contains(output(res), "A small iron key.") {
		t.Errorf("examine key = %q", output(res))
	}

	res = e.Step("look at door")
	if !strings.Contains(output(res), "A locked iron door.") {
		t.Errorf("look at door = %q", output(res))
	}

	res = e.Step("x ghost")
	if !strings.Contains(output(res), "You don't see a ghost here.") {
		t.Errorf("examine missing = %q", output(res))
	}

	res = e.Step("look")
	if !strings.Contains(output(res), "A dark cavern.") {
		t.Errorf("look = %q", output(res))
	}
	if !strings.Contains(output(res), "Exits:") {
		t.Errorf("look should list exits, got %q", output(res))
	}
}

func TestEngine_InventoryFlow(t *testing.T) {
	e, _, _ := caveWorld(t)
	e.Start()

	res := e.Step("i")
	if !strings.Contains(output(res), "You're not carrying anything.") {
		t.Errorf("empty inventory = %q", output(res))
	}

	e.Step("take key")
	res = e.Step("inventory")
	if !strings.Contains(output(res), "You're carrying: key.") {
		t.Errorf("inventory = %q", output(res))
	}

	res = e.Step("drop key")
	if !strings.Contains(output(res), "You drop the key.") {
		t.Errorf("drop = %q", output(res))
	}

	res = e.Step("drop key")
	if !strings.Contains(output(res), "You don't have a key.") {
		t.Errorf("double drop = %q", output(res))
	}
	if res.Err == nil {
		t.Error("failed drop should carry an error")
	}
}

func TestEngine_TakeFailures(t *testing.T) {
	e, _, _ := caveWorld(t)
	e.Start()

	res := e.Step("take door")
	if !strings.Contains(output(res), "You can't take the door.") {
		t.Errorf("take prop = %q", output(res))
	}

	res = e.Step("get sword")
	if !strings.Contains(output(res), "There's no sword here.") {
		t.Errorf("take missing = %q", output(res))
	}
}

func TestEngine_UseWithoutCallback(t *testing.T) {
	e, _, _ := caveWorld(t)
	e.Start()

	res := e.Step("use door")
	if !strings.Contains(output(res), "You're not sure how to use the door.") {
		t.Errorf("use without callback = %q", output(res))
	}

	res = e.Step("use key on ghost")
	if !strings.Contains(output(res), "You don't see a ghost here.") {
		t.Errorf("use on missing target = %q", output(res))
	}
}

func TestEngine_Talk(t *testing.T) {
	cavern := world.NewRoom("cavern", "A dark cavern.")
	hermit := world.NewNPC("hermit", "A ragged hermit.")
	hermit.AddTalkCallback(func(ctx *world.Context) bool {
		ctx.Say("\"Go away,\" the hermit grumbles.")
		return true
	})
	mute := world.NewNPC("statue spirit", "A silent spirit.")
	rock := world.NewItem("rock", "A rock.")
	for _, it := range []*world.Item{hermit, mute, rock} {
		if err := cavern.AddItem(it); err != nil {
			t.Fatal(err)
		}
	}
	e := New(cavern)
	e.Start()

	res := e.Step("talk to hermit")
	if !strings.Contains(output(res), "Go away") {
		t.Errorf("talk = %q", output(res))
	}

	res = e.Step("speak to statue spirit")
	if !strings.Contains(output(res), "has nothing to say") {
		t.Errorf("talk to mute npc = %q", output(res))
	}

	res = e.Step("talk to rock")
	if !strings.Contains(output(res), "You can't talk to the rock.") {
		t.Errorf("talk to item = %q", output(res))
	}

	res = e.Step("talk to nobody")
	if !strings.Contains(output(res), "There's no nobody here to talk to.") {
		t.Errorf("talk to missing = %q", output(res))
	}
}

func TestEngine_CustomGrammarBeforeStart(t *testing.T) {
	e, _, _ := caveWorld(t)
	e.Grammar().MustRegister("sing", func(s *world.State, cmd command.Command) command.Result {
		return command.Result{Output: []string{"You sing, badly."}}
	})
	e.Start()

	res := e.Step("sing")
	if !strings.Contains(output(res), "You sing, badly.") {
		t.Errorf("custom command = %q", output(res))
	}
}

func TestEngine_QuitAndHelp(t *testing.T) {
	e, _, _ := caveWorld(t)
	e.Start()

	res := e.Step("quit")
	if !res.Quit {
		t.Error("quit should set Quit")
	}
	if e.State().Turns() != 0 {
		t.Error("quit must not advance the turn counter")
	}

	res = e.Step("help")
	if !strings.Contains(output(res), "Commands:") {
		t.Errorf("help = %q", output(res))
	}
}

func TestEngine_SessionsIndependent(t *testing.T) {
	e1, _, _ := caveWorld(t)
	e2, _, _ := caveWorld(t)
	e1.Start()
	e2.Start()

	e1.Step("take key")
	e1.Step("use key on door")

	if e2.State().Flag("door_open") {
		t.Error("session 2 flags contaminated")
	}
	if res := e2.Step("go north"); res.Err == nil {
		t.Error("session 2 door should still be locked")
	}
}
