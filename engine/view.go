package engine

import "github.com/norrisaftcc/tool-textadv/world"

// RoomView is the render data contract handed to presentation layers:
// plain structured data with no formatting or styling embedded. The
// description is the active one (long on first visit, short after).
type RoomView struct {
	Name        string
	Description string
	Exits       []string
	Items       []string // visible item names, insertion order
}

// roomView builds the view of a room with the given active description.
func (e *Engine) roomView(r *world.Room, description string) RoomView {
	v := RoomView{
		Name:        r.Name(),
		Description: description,
		Exits:       r.Exits(),
	}
	for _, it := range r.VisibleItems() {
		v.Items = append(v.Items, it.Name())
	}
	return v
}

// RoomView returns the current room's view with its revisit description.
// Front ends use this for status bars and web rendering.
func (e *Engine) RoomView() RoomView {
	room := e.state.CurrentRoom()
	return e.roomView(room, room.ActiveDescription(false))
}

// InventoryView returns the held item names in display order.
func (e *Engine) InventoryView() []string {
	var names []string
	for _, it := range e.state.Inventory() {
		names = append(names, it.Name())
	}
	return names
}

// Lines renders the view as the default narrative text. The "You see:"
// and "Exits:" prefixes are load-bearing for front-end styling.
func (v RoomView) Lines() []string {
	out := []string{v.Description}
	if len(v.Items) > 0 {
		out = append(out, "You see: "+joinAnd(v.Items)+".")
	}
	if len(v.Exits) > 0 {
		out = append(out, "Exits: "+joinAnd(v.Exits)+".")
	}
	return out
}

// joinAnd joins names with commas, matching the room listing style.
func joinAnd(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	s := names[0]
	for _, n := range names[1:] {
		s += ", " + n
	}
	return s
}
