package engine

import (
	"errors"
	"fmt"

	"github.com/norrisaftcc/tool-textadv/command"
	"github.com/norrisaftcc/tool-textadv/world"
)

// registerGrammar installs the built-in vocabulary. Matching is
// first-match-wins in registration order, so within each verb the most
// specific pattern comes first — "use ITEM on TARGET" must precede the
// bare "use ITEM" or it could never fire.
func (e *Engine) registerGrammar() {
	t := e.table

	t.MustRegister("use ITEM on TARGET", e.handleUseOn)
	t.MustRegister("use ITEM with TARGET", e.handleUseOn)
	t.MustRegister("use ITEM", e.handleUse)

	t.MustRegister("talk to ITEM", e.handleTalk)
	t.MustRegister("speak to ITEM", e.handleTalk)

	t.MustRegister("look at ITEM", e.handleExamine)
	t.MustRegister("look ITEM", e.handleExamine)
	t.MustRegister("look", e.handleLook)
	t.MustRegister("l", e.handleLook)
	t.MustRegister("examine ITEM", e.handleExamine)
	t.MustRegister("inspect ITEM", e.handleExamine)
	t.MustRegister("x ITEM", e.handleExamine)

	t.MustRegister("pick up ITEM", e.handleTake)
	t.MustRegister("take ITEM", e.handleTake)
	t.MustRegister("get ITEM", e.handleTake)
	t.MustRegister("put down ITEM", e.handleDrop)
	t.MustRegister("drop ITEM", e.handleDrop)

	t.MustRegister("inventory", e.handleInventory)
	t.MustRegister("inv", e.handleInventory)
	t.MustRegister("i", e.handleInventory)

	t.MustRegister("go ITEM", e.handleGo)
	t.MustRegister("walk ITEM", e.handleGo)
	t.MustRegister("move ITEM", e.handleGo)
	t.MustRegister("run ITEM", e.handleGo)

	t.MustRegister("help", e.handleHelp)
	t.MustRegister("quit", e.handleQuit)
	t.MustRegister("exit", e.handleQuit)
}

// handleGo moves through the labeled exit. The captured phrase is the
// direction label itself, so the resolved-entity sentinel is ignored.
func (e *Engine) handleGo(s *world.State, cmd command.Command) command.Result {
	direction := cmd.ItemPhrase
	first, err := s.Move(direction)
	if err != nil {
		return command.Result{
			Output: []string{fmt.Sprintf("You can't go %s.", direction)},
			Err:    err,
		}
	}
	room := s.CurrentRoom()
	return command.Result{Output: e.roomView(room, room.ActiveDescription(first)).Lines()}
}

func (e *Engine) handleLook(s *world.State, cmd command.Command) command.Result {
	return command.Result{Output: e.describeCurrent()}
}

// handleExamine shows an item's description and runs its examine hook.
// The lookup prefers the inventory on a name collision with the room.
func (e *Engine) handleExamine(s *world.State, cmd command.Command) command.Result {
	if cmd.Item == nil {
		return command.Result{
			Output: []string{fmt.Sprintf("You don't see a %s here.", cmd.ItemPhrase)},
			Err:    &world.ItemNotPresentError{Name: cmd.ItemPhrase},
		}
	}

	output := []string{cmd.Item.Description()}
	ctx := world.NewContext(s)
	if handled, ok := cmd.Item.Examine(ctx); handled {
		e.invoke("examine", cmd.Item, ok)
		output = append(output, ctx.Output()...)
	}
	return command.Result{Output: output}
}

func (e *Engine) handleTake(s *world.State, cmd command.Command) command.Result {
	it, err := s.Take(cmd.ItemPhrase)
	if err != nil {
		return command.Result{Output: []string{takeFailure(cmd.ItemPhrase, err)}, Err: err}
	}
	return command.Result{Output: []string{fmt.Sprintf("You take the %s.", it.Name())}}
}

// takeFailure phrases the taxonomy errors Take can produce.
func takeFailure(phrase string, err error) string {
	var notTakeable *world.ItemNotTakeableError
	var duplicate *world.DuplicateItemError
	switch {
	case errors.As(err, &notTakeable):
		return fmt.Sprintf("You can't take the %s.", phrase)
	case errors.As(err, &duplicate):
		return fmt.Sprintf("You're already carrying a %s.", phrase)
	default:
		return fmt.Sprintf("There's no %s here.", phrase)
	}
}

func (e *Engine) handleDrop(s *world.State, cmd command.Command) command.Result {
	it, err := s.Drop(cmd.ItemPhrase)
	if err != nil {
		return command.Result{
			Output: []string{fmt.Sprintf("You don't have a %s.", cmd.ItemPhrase)},
			Err:    err,
		}
	}
	return command.Result{Output: []string{fmt.Sprintf("You drop the %s.", it.Name())}}
}

func (e *Engine) handleInventory(s *world.State, cmd command.Command) command.Result {
	names := e.InventoryView()
	if len(names) == 0 {
		return command.Result{Output: []string{"You're not carrying anything."}}
	}
	return command.Result{Output: []string{"You're carrying: " + joinAnd(names) + "."}}
}

func (e *Engine) handleUse(s *world.State, cmd command.Command) command.Result {
	if cmd.Item == nil {
		return command.Result{
			Output: []string{fmt.Sprintf("You don't see a %s here.", cmd.ItemPhrase)},
			Err:    &world.ItemNotPresentError{Name: cmd.ItemPhrase},
		}
	}

	ctx := world.NewContext(s)
	handled, ok := cmd.Item.Use(ctx)
	if !handled {
		return command.Result{Output: []string{fmt.Sprintf("You're not sure how to use the %s.", cmd.Item.Name())}}
	}
	e.invoke("use", cmd.Item, ok)
	return command.Result{Output: ctx.Output()}
}

func (e *Engine) handleUseOn(s *world.State, cmd command.Command) command.Result {
	if cmd.Item == nil {
		return command.Result{
			Output: []string{fmt.Sprintf("You don't see a %s here.", cmd.ItemPhrase)},
			Err:    &world.ItemNotPresentError{Name: cmd.ItemPhrase},
		}
	}
	if cmd.Target == nil {
		return command.Result{
			Output: []string{fmt.Sprintf("You don't see a %s here.", cmd.TargetPhrase)},
			Err:    &world.ItemNotPresentError{Name: cmd.TargetPhrase},
		}
	}

	ctx := world.NewContext(s)
	handled, ok := cmd.Item.UseWith(ctx, cmd.Target.Name())
	if !handled {
		return command.Result{Output: []string{fmt.Sprintf(
			"You're not sure how to use the %s on the %s.", cmd.Item.Name(), cmd.Target.Name())}}
	}
	e.invoke("use_with", cmd.Item, ok)
	return command.Result{Output: ctx.Output()}
}

func (e *Engine) handleTalk(s *world.State, cmd command.Command) command.Result {
	if cmd.Item == nil {
		return command.Result{
			Output: []string{fmt.Sprintf("There's no %s here to talk to.", cmd.ItemPhrase)},
			Err:    &world.ItemNotPresentError{Name: cmd.ItemPhrase},
		}
	}
	if cmd.Item.Kind() != world.KindNPC {
		return command.Result{Output: []string{fmt.Sprintf("You can't talk to the %s.", cmd.Item.Name())}}
	}

	ctx := world.NewContext(s)
	handled, ok := cmd.Item.Talk(ctx)
	if !handled {
		return command.Result{Output: []string{fmt.Sprintf("The %s has nothing to say.", cmd.Item.Name())}}
	}
	e.invoke("talk", cmd.Item, ok)
	return command.Result{Output: ctx.Output()}
}

func (e *Engine) handleHelp(s *world.State, cmd command.Command) command.Result {
	return command.Result{Output: []string{
		"Commands:",
		"  look (l)               — Describe the room",
		"  examine <thing> (x)    — Look closely at something",
		"  go <dir>               — Move (or just n/s/e/w/u/d)",
		"  take/get <item>        — Pick something up",
		"  drop <item>            — Put something down",
		"  use <item> [on <thing>]— Use an item, maybe on something",
		"  talk to <npc>          — Talk to someone",
		"  inventory (i)          — Check what you're carrying",
		"  quit                   — End the session",
	}}
}

func (e *Engine) handleQuit(s *world.State, cmd command.Command) command.Result {
	return command.Result{Output: []string{"Goodbye."}, Quit: true}
}
