package world

import "sort"

// Room is a named location node in the world graph. Exits are directed,
// labeled edges; connecting A to B does not connect B to A. Rooms hold
// items by reference in insertion order.
type Room struct {
	name       string
	short      string
	long       string
	visitCount int
	firstVisit bool
	exits      map[string]*Room
	items      []*Item
}

// NewRoom creates a room with the given name (its stable key) and short
// description. The short description is shown on revisits; set a long
// description for the first-visit text.
func NewRoom(name, description string) *Room {
	return &Room{
		name:       name,
		short:      description,
		firstVisit: true,
		exits:      make(map[string]*Room),
	}
}

func (r *Room) Name() string             { return r.name }
func (r *Room) ShortDescription() string { return r.short }
func (r *Room) LongDescription() string  { return r.long }
func (r *Room) VisitCount() int          { return r.visitCount }

// SetLongDescription sets the text shown on the room's first visit.
func (r *Room) SetLongDescription(description string) { r.long = description }

// Enter records a visit. It returns true exactly once per room instance:
// on the first entry, which selects the long description.
func (r *Room) Enter() (first bool) {
	r.visitCount++
	first = r.firstVisit
	r.firstVisit = false
	return first
}

// ActiveDescription returns the description an arriving player should see:
// the long one on a first visit (when set), the short one otherwise.
func (r *Room) ActiveDescription(first bool) string {
	if first && r.long != "" {
		return r.long
	}
	return r.short
}

// Connect sets a one-directional edge. Callers wanting bidirectional
// travel connect both sides explicitly with inverse labels. This is also
// the puzzle-unlock mutation point: callbacks open new paths by calling
// Connect at runtime.
func (r *Room) Connect(direction string, to *Room) {
	r.exits[direction] = to
}

// Disconnect removes the edge with the given label, if present.
func (r *Room) Disconnect(direction string) {
	delete(r.exits, direction)
}

// Exit returns the room behind the labeled edge.
func (r *Room) Exit(direction string) (*Room, bool) {
	to, found := r.exits[direction]
	return to, found
}

// Exits returns the exit labels in sorted order, for deterministic display.
func (r *Room) Exits() []string {
	labels := make([]string, 0, len(r.exits))
	for dir := range r.exits {
		labels = append(labels, dir)
	}
	sort.Strings(labels)
	return labels
}

// AddItem inserts an item at the end of the room's item list. It rejects
// an item that already belongs to a container and a name that collides
// with an item already here (hidden ones included).
func (r *Room) AddItem(it *Item) error {
	if it.contained {
		return &ContainedError{Name: it.name}
	}
	for _, held := range r.items {
		if held.Matches(it.name) {
			return &DuplicateItemError{Name: it.name, Container: r.name}
		}
	}
	it.contained = true
	r.items = append(r.items, it)
	return nil
}

// RemoveItem removes the named item from the room and releases ownership.
// Hidden items are removable; they are concealed from players, not from code.
func (r *Room) RemoveItem(name string) (*Item, error) {
	for i, it := range r.items {
		if it.Matches(name) {
			r.items = append(r.items[:i], r.items[i+1:]...)
			it.contained = false
			return it, nil
		}
	}
	return nil, &ItemNotPresentError{Name: name}
}

// Item finds an item by name, hidden or not.
func (r *Room) Item(name string) (*Item, bool) {
	it, err := findByName(r.items, name, false)
	return it, err == nil && it != nil
}

// VisibleItem resolves a name against the room's visible items only.
// Returns ItemNotPresentError or, should content ever violate the
// uniqueness invariant, AmbiguousReferenceError.
func (r *Room) VisibleItem(name string) (*Item, error) {
	return findByName(r.items, name, true)
}

// Items returns all items, including hidden ones, in insertion order.
func (r *Room) Items() []*Item {
	out := make([]*Item, len(r.items))
	copy(out, r.items)
	return out
}

// VisibleItems returns the non-hidden items in insertion order. This is
// what the default room listing shows.
func (r *Room) VisibleItems() []*Item {
	var out []*Item
	for _, it := range r.items {
		if !it.hidden {
			out = append(out, it)
		}
	}
	return out
}

// findByName scans a container for a case-insensitive exact name match.
func findByName(items []*Item, name string, visibleOnly bool) (*Item, error) {
	var found *Item
	count := 0
	for _, it := range items {
		if visibleOnly && it.hidden {
			continue
		}
		if it.Matches(name) {
			found = it
			count++
		}
	}
	switch count {
	case 0:
		return nil, &ItemNotPresentError{Name: name}
	case 1:
		return found, nil
	default:
		return nil, &AmbiguousReferenceError{Name: name, Count: count}
	}
}
