package loader

import (
	"fmt"
	"strings"
)

// ValidationError collects all referential integrity errors found in a
// compiled game definition.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Known effect types.
var validEffectTypes = map[string]bool{
	"say":             true,
	"set_flag":        true,
	"reveal":          true,
	"hide":            true,
	"set_description": true,
	"open_exit":       true,
	"close_exit":      true,
	"move_player":     true,
	"place_item":      true,
	"give_item":       true,
	"consume":         true,
}

// Known condition types.
var validConditionTypes = map[string]bool{
	"flag_set": true,
	"flag_not": true,
	"has_item": true,
	"in_room":  true,
	"not":      true,
}

// validate checks the compiled definition for referential integrity:
// every room, item, and exit reference must resolve, and item names must
// be unique within each starting container.
func validate(def *GameDef) error {
	ve := &ValidationError{}

	if def.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if def.Start == "" {
		ve.Errors = append(ve.Errors, "Game.start is required")
	} else if _, ok := def.Room(def.Start); !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", def.Start))
	}

	for _, room := range def.Rooms {
		for dir, target := range room.Exits {
			if _, ok := def.Room(target); !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q exit %q points to undefined room %q", room.ID, dir, target))
			}
		}
	}

	// Item names must be unique within each room, hidden items included.
	names := map[string]string{} // "room\x00name" -> item ID
	for _, item := range def.Items {
		if item.Location == "" {
			continue
		}
		if _, ok := def.Room(item.Location); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s %q location %q does not match any defined room", item.Kind, item.ID, item.Location))
			continue
		}
		key := item.Location + "\x00" + strings.ToLower(item.Name)
		if other, clash := names[key]; clash {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"items %q and %q share the name %q in room %q", other, item.ID, item.Name, item.Location))
		}
		names[key] = item.ID
	}

	for _, item := range def.Items {
		validateReactions(item, "use", item.Use, def, ve)
		validateReactions(item, "examine", item.Examine, def, ve)
		validateReactions(item, "talk", item.Talk, def, ve)
		for target, reactions := range item.UseWith {
			if _, ok := def.Item(target); !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"%s %q use_with references undefined item %q", item.Kind, item.ID, target))
			}
			validateReactions(item, "use_with "+target, reactions, def, ve)
		}
		if item.Kind != "npc" && len(item.Talk) > 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s %q has a talk reaction; only NPCs can talk", item.Kind, item.ID))
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateReactions(item *ItemDef, field string, reactions []ReactionDef, def *GameDef, ve *ValidationError) {
	where := fmt.Sprintf("%s %q %s", item.Kind, item.ID, field)
	for _, react := range reactions {
		for _, cond := range react.When {
			validateCondition(where, cond, def, ve)
		}
		for _, eff := range react.Effects {
			validateEffect(where, eff, def, ve)
		}
	}
}

func validateCondition(where string, cond ConditionDef, def *GameDef, ve *ValidationError) {
	if !validConditionTypes[cond.Type] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"%s: unknown condition type %q", where, cond.Type))
		return
	}
	switch cond.Type {
	case "has_item":
		if _, ok := def.Item(cond.Item); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: condition has_item references undefined item %q", where, cond.Item))
		}
	case "in_room":
		if _, ok := def.Room(cond.Room); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: condition in_room references undefined room %q", where, cond.Room))
		}
	case "not":
		if cond.Inner != nil {
			validateCondition(where, *cond.Inner, def, ve)
		}
	}
}

func validateEffect(where string, eff EffectDef, def *GameDef, ve *ValidationError) {
	if !validEffectTypes[eff.Type] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"%s: unknown effect type %q", where, eff.Type))
		return
	}

	checkItem := func(id string) {
		if _, ok := def.Item(id); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: effect %s references undefined item %q", where, eff.Type, id))
		}
	}
	checkRoom := func(id string) {
		if _, ok := def.Room(id); !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"%s: effect %s references undefined room %q", where, eff.Type, id))
		}
	}

	switch eff.Type {
	case "reveal", "hide", "set_description", "give_item", "consume":
		checkItem(eff.Item)
	case "move_player":
		checkRoom(eff.Room)
	case "place_item":
		checkItem(eff.Item)
		checkRoom(eff.Room)
	case "open_exit":
		checkRoom(eff.Room)
		checkRoom(eff.Target)
	case "close_exit":
		checkRoom(eff.Room)
	}
}
