// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package detector

import "fmt"

// Kind identifies the variant of a Change.
type Kind int

const (
	KindInserted Kind = iota // Item present in new with no identity match in old
	KindRemoved              // Item present in old with no identity match in new
	KindUpdated              // Same identity and slot, different content
	KindMoved                // Same identity, different slot
)

func (k Kind) String() string {
	switch k {
	case KindInserted:
		return "inserted"
	case KindRemoved:
		return "removed"
	case KindUpdated:
		return "updated"
	case KindMoved:
		return "moved"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Change is a single structural edit. The set of implementations is closed:
// Inserted, Removed, Updated and Moved.
type Change interface {
	Kind() Kind
	fmt.Stringer
	change()
}

// Inserted reports an item inserted at NewPosition.
type Inserted struct {
	NewPosition int
}

// Removed reports the item at OldPosition being removed.
type Removed struct {
	OldPosition int
}

// Updated reports that the item at Position changed content in place.
type Updated struct {
	Position int
}

// Moved reports the item at OldPosition being moved so that it ends up at
// NewPosition. Content changes of a moved item ride along with the move.
type Moved struct {
	OldPosition int
	NewPosition int
}

func (Inserted) Kind() Kind { return KindInserted }
func (Removed) Kind() Kind  { return KindRemoved }
func (Updated) Kind() Kind  { return KindUpdated }
func (Moved) Kind() Kind    { return KindMoved }

func (c Inserted) String() string { return fmt.Sprintf("inserted pos=%d", c.NewPosition) }
func (c Removed) String() string  { return fmt.Sprintf("removed pos=%d", c.OldPosition) }
func (c Updated) String() string  { return fmt.Sprintf("updated pos=%d", c.Position) }
func (c Moved) String() string {
	return fmt.Sprintf("moved from=%d to=%d", c.OldPosition, c.NewPosition)
}

func (Inserted) change() {}
func (Removed) change()  {}
func (Updated) change()  {}
func (Moved) change()    {}

// Count tallies changes by kind.
func Count(changes []Change) map[Kind]int {
	counts := make(map[Kind]int, 4) //nolint:mnd
	for _, c := range changes {
		counts[c.Kind()]++
	}
	return counts
}
