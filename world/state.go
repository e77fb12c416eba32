package world

// State is the complete mutable record of one play session: current room,
// ordered inventory, flags, typed vars, and the turn counter. It is an
// explicit value threaded through every handler and callback — never a
// package global — so independent sessions coexist without contamination.
type State struct {
	current   *Room
	inventory []*Item
	flags     map[string]bool
	vars      map[string]any
	turns     int
}

// NewState creates a session positioned at start. The starting room is not
// entered yet; the engine enters it when the session begins, so the first
// description is produced exactly once.
func NewState(start *Room) *State {
	return &State{
		current: start,
		flags:   make(map[string]bool),
		vars:    make(map[string]any),
	}
}

// CurrentRoom returns the room the player is in.
func (s *State) CurrentRoom() *Room { return s.current }

// Begin enters the starting room and reports whether it is a first visit
// (it is, unless the same room instance was visited by other means).
func (s *State) Begin() (first bool) {
	return s.current.Enter()
}

// Move follows the labeled exit from the current room. On success the
// destination becomes current, its visit counter is incremented, and the
// result reports whether this is its first visit. With no such exit the
// state is left untouched and a NoSuchExitError is returned.
func (s *State) Move(direction string) (first bool, err error) {
	to, found := s.current.Exit(direction)
	if found && to == nil {
		// An exit that leads nowhere is a content wiring bug, not a
		// player error.
		panic("world: exit " + direction + " from " + s.current.Name() + " points to a destroyed room")
	}
	if !found {
		return false, &NoSuchExitError{Direction: direction}
	}
	s.current = to
	return to.Enter(), nil
}

// Teleport places the player in a room directly, bypassing the exit graph.
// Scripted reactions use this; normal travel goes through Move.
func (s *State) Teleport(to *Room) (first bool) {
	s.current = to
	return to.Enter()
}

// Take transfers a visible item from the current room to the inventory.
// The transfer is atomic: if the inventory insert fails, the item is put
// back and the room is unchanged.
func (s *State) Take(name string) (*Item, error) {
	it, err := s.current.VisibleItem(name)
	if err != nil {
		return nil, err
	}
	if !it.Takeable() {
		return nil, &ItemNotTakeableError{Name: it.Name()}
	}
	if _, err := s.current.RemoveItem(it.Name()); err != nil {
		return nil, err
	}
	if err := s.AddToInventory(it); err != nil {
		// Roll back; AddItem cannot fail here since the item just left.
		_ = s.current.AddItem(it)
		return nil, err
	}
	return it, nil
}

// Drop transfers a held item back into the current room. Always permitted
// for inventory-held items, and atomic like Take.
func (s *State) Drop(name string) (*Item, error) {
	it, err := s.removeFromInventory(name)
	if err != nil {
		return nil, err
	}
	if err := s.current.AddItem(it); err != nil {
		_ = s.AddToInventory(it)
		return nil, err
	}
	return it, nil
}

// Examine resolves a name for inspection. The inventory is searched first;
// on a name collision between a held and a room item, the held one wins.
// Examine never mutates state.
func (s *State) Examine(name string) (*Item, error) {
	return s.Find(name)
}

// Find resolves a noun phrase against the inventory, then the current
// room's visible items. This is the entity lookup the dispatcher uses for
// ITEM/TARGET placeholders.
func (s *State) Find(name string) (*Item, error) {
	if it, err := findByName(s.inventory, name, false); err == nil {
		return it, nil
	} else if _, notPresent := err.(*ItemNotPresentError); !notPresent {
		return nil, err
	}
	return s.current.VisibleItem(name)
}

// AddToInventory appends an item, preserving insertion order as display
// order. Same uniqueness and ownership rules as rooms.
func (s *State) AddToInventory(it *Item) error {
	if it.contained {
		return &ContainedError{Name: it.Name()}
	}
	for _, held := range s.inventory {
		if held.Matches(it.Name()) {
			return &DuplicateItemError{Name: it.Name(), Container: "inventory"}
		}
	}
	it.contained = true
	s.inventory = append(s.inventory, it)
	return nil
}

// removeFromInventory extracts a held item and releases ownership.
func (s *State) removeFromInventory(name string) (*Item, error) {
	for i, it := range s.inventory {
		if it.Matches(name) {
			s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
			it.contained = false
			return it, nil
		}
	}
	return nil, &ItemNotPresentError{Name: name}
}

// DiscardFromInventory removes a held item from play entirely (consumed
// food, spent tokens). The item ends up in no container.
func (s *State) DiscardFromInventory(name string) (*Item, error) {
	return s.removeFromInventory(name)
}

// Inventory returns the held items in display order.
func (s *State) Inventory() []*Item {
	out := make([]*Item, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// Holding reports whether a named item is in the inventory.
func (s *State) Holding(name string) bool {
	_, err := findByName(s.inventory, name, false)
	return err == nil
}

// SetFlag sets a boolean progress flag.
func (s *State) SetFlag(name string, value bool) { s.flags[name] = value }

// Flag returns a flag's value; unset flags are false.
func (s *State) Flag(name string) bool { return s.flags[name] }

// Flags returns a copy of the set flags, for debug dumps.
func (s *State) Flags() map[string]bool {
	out := make(map[string]bool, len(s.flags))
	for k, v := range s.flags {
		if v {
			out[k] = true
		}
	}
	return out
}

// SetVar stores a typed session variable.
func (s *State) SetVar(name string, value any) { s.vars[name] = value }

// Var returns a session variable and whether it was set.
func (s *State) Var(name string) (any, bool) {
	v, found := s.vars[name]
	return v, found
}

// Turns returns the number of accepted commands so far.
func (s *State) Turns() int { return s.turns }

// IncrementTurn advances the turn counter. The engine calls this once per
// accepted command; rejected commands leave the counter alone.
func (s *State) IncrementTurn() { s.turns++ }
