package world

import "fmt"

// NoSuchExitError indicates the current room has no exit with that label.
type NoSuchExitError struct {
	Direction string
}

func (e *NoSuchExitError) Error() string {
	return fmt.Sprintf("no exit %q from here", e.Direction)
}

// ItemNotPresentError indicates no item with that name in the searched container.
type ItemNotPresentError struct {
	Name string
}

func (e *ItemNotPresentError) Error() string {
	return fmt.Sprintf("no item %q here", e.Name)
}

// ItemNotTakeableError indicates the item exists but cannot be picked up.
type ItemNotTakeableError struct {
	Name string
}

func (e *ItemNotTakeableError) Error() string {
	return fmt.Sprintf("item %q cannot be taken", e.Name)
}

// DuplicateItemError indicates an attempt to add a second item with the
// same name to one container. Names are the lookup key within a container,
// so duplicates are rejected outright.
type DuplicateItemError struct {
	Name      string
	Container string
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("container %q already holds an item named %q", e.Container, e.Name)
}

// ContainedError indicates an attempt to insert an item that already
// belongs to another container. Transfers must remove first.
type ContainedError struct {
	Name string
}

func (e *ContainedError) Error() string {
	return fmt.Sprintf("item %q already belongs to a container", e.Name)
}

// AmbiguousReferenceError is reserved: the uniqueness invariant prevents
// two same-named items in one container, but if content ever violates it
// a lookup reports this instead of picking one arbitrarily.
type AmbiguousReferenceError struct {
	Name  string
	Count int
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("%d items match %q", e.Count, e.Name)
}
