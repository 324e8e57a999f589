// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"fmt"
	"slices"

	"github.com/tfctl/rowsync/internal/log"
)

// Mark records how a row was last touched.
type Mark int

const (
	Clean    Mark = iota // Untouched since the last ClearMarks
	Inserted             // Created by an insert or a reset
	Changed              // Content refreshed in place
	Moved                // Relocated by a move
)

func (m Mark) String() string {
	switch m {
	case Clean:
		return "clean"
	case Inserted:
		return "inserted"
	case Changed:
		return "changed"
	case Moved:
		return "moved"
	}
	return fmt.Sprintf("Mark(%d)", int(m))
}

// Op names a surface primitive.
type Op string

const (
	OpReset   Op = "reset"
	OpInsert  Op = "insert"
	OpRemove  Op = "remove"
	OpChange  Op = "change"
	OpMove    Op = "move"
	OpSetData Op = "set"
)

// Call is one primitive call received by Rows. To is only set for OpMove.
type Call struct {
	Op   Op
	Pos  int
	To   int
	Size int // row count after the call
}

func (c Call) String() string {
	if c.Op == OpMove {
		return fmt.Sprintf("%s %d->%d (%d rows)", c.Op, c.Pos, c.To, c.Size)
	}
	return fmt.Sprintf("%s %d (%d rows)", c.Op, c.Pos, c.Size)
}

// Row is a visible row.
type Row[T any] struct {
	Item T
	Mark Mark

	stale   bool // needs binding from data
	fresh   bool // created by an insert or reset, never showed an old item
	prior   T    // item shown before the last rebind
	rebound bool // prior is set
}

// Rows is an in-memory display surface. It owns its visible rows, applies
// every primitive immediately and remembers the calls it received. Rows
// created by an insert have no item until Settle binds them from the data
// installed with SetItems.
//
// Rows is not safe for concurrent use.
type Rows[T any] struct {
	rows  []Row[T]
	data  []T
	calls []Call
	err   error
}

// New returns a surface already showing initial.
func New[T any](initial []T) *Rows[T] {
	r := &Rows[T]{data: slices.Clone(initial)}
	r.rows = make([]Row[T], len(initial))
	for i, it := range initial {
		r.rows[i] = Row[T]{Item: it}
	}
	return r
}

// ItemCount returns the number of visible rows.
func (r *Rows[T]) ItemCount() int { return len(r.rows) }

// SetItems installs the list rows are bound from.
func (r *Rows[T]) SetItems(items []T) {
	r.data = slices.Clone(items)
	r.record(Call{Op: OpSetData, Pos: len(items)})
}

// Items returns the installed data.
func (r *Rows[T]) Items() []T { return slices.Clone(r.data) }

// NotifyDataSetChanged rebuilds every row from the installed data.
func (r *Rows[T]) NotifyDataSetChanged() {
	r.rows = make([]Row[T], len(r.data))
	for i, it := range r.data {
		r.rows[i] = Row[T]{Item: it, Mark: Inserted, fresh: true}
	}
	r.record(Call{Op: OpReset})
}

// NotifyItemInserted opens an unbound row at position.
func (r *Rows[T]) NotifyItemInserted(position int) {
	if !r.check(OpInsert, position, len(r.rows)) {
		return
	}
	r.rows = slices.Insert(r.rows, position, Row[T]{Mark: Inserted, stale: true, fresh: true})
	r.record(Call{Op: OpInsert, Pos: position})
}

// NotifyItemRemoved drops the row at position.
func (r *Rows[T]) NotifyItemRemoved(position int) {
	if !r.check(OpRemove, position, len(r.rows)-1) {
		return
	}
	r.rows = slices.Delete(r.rows, position, position+1)
	r.record(Call{Op: OpRemove, Pos: position})
}

// NotifyItemChanged marks the row at position for rebinding.
func (r *Rows[T]) NotifyItemChanged(position int) {
	if !r.check(OpChange, position, len(r.rows)-1) {
		return
	}
	if r.rows[position].Mark != Inserted {
		r.rows[position].Mark = Changed
	}
	r.rows[position].stale = true
	r.record(Call{Op: OpChange, Pos: position})
}

// NotifyItemMoved relocates the row at from so that it ends up at to. Moved
// rows are rebound too, which refreshes any content that changed along with
// the move.
func (r *Rows[T]) NotifyItemMoved(from, to int) {
	if !r.check(OpMove, from, len(r.rows)-1) || !r.check(OpMove, to, len(r.rows)-1) {
		return
	}
	row := r.rows[from]
	r.rows = slices.Delete(r.rows, from, from+1)
	if row.Mark != Inserted {
		row.Mark = Moved
	}
	row.stale = true
	r.rows = slices.Insert(r.rows, to, row)
	r.record(Call{Op: OpMove, Pos: from, To: to})
}

// Settle binds every row that needs it from the installed data, the way a
// layout pass would. It returns the first error seen since the surface was
// created or last settled.
func (r *Rows[T]) Settle() error {
	err := r.err
	r.err = nil

	if err == nil && len(r.rows) != len(r.data) {
		err = fmt.Errorf("surface holds %d rows but data has %d items", len(r.rows), len(r.data))
	}

	for i := range r.rows {
		row := &r.rows[i]
		if !row.stale || i >= len(r.data) {
			continue
		}
		if !row.fresh {
			row.prior = row.Item
			row.rebound = true
		}
		row.Item = r.data[i]
		row.stale = false
	}

	return err
}

// Verify checks the settled rows against the installed data. A row that
// showed an item before the batch must sit where data holds that same
// identity, and an untouched row must also show the same content, otherwise a
// required change was never delivered. Call Settle first.
func (r *Rows[T]) Verify(sameIdentity, sameContent func(a, b T) bool) error {
	if len(r.rows) != len(r.data) {
		return fmt.Errorf("surface holds %d rows but data has %d items", len(r.rows), len(r.data))
	}
	for i, row := range r.rows {
		switch {
		case row.stale:
			return fmt.Errorf("row %d was never bound", i)
		case row.rebound:
			if !sameIdentity(row.prior, r.data[i]) {
				return fmt.Errorf("row %d holds a different item than data", i)
			}
		case row.fresh:
			// Inserted rows are bound straight from data.
		default:
			if !sameIdentity(row.Item, r.data[i]) {
				return fmt.Errorf("row %d holds a different item than data", i)
			}
			if !sameContent(row.Item, r.data[i]) {
				return fmt.Errorf("row %d shows stale content", i)
			}
		}
	}
	return nil
}

// Rows returns a copy of the visible rows.
func (r *Rows[T]) Rows() []Row[T] { return slices.Clone(r.rows) }

// Visible returns the items of the visible rows. Rows inserted since the
// last Settle hold the zero value.
func (r *Rows[T]) Visible() []T {
	out := make([]T, len(r.rows))
	for i, row := range r.rows {
		out[i] = row.Item
	}
	return out
}

// Calls returns the primitive calls received so far.
func (r *Rows[T]) Calls() []Call { return slices.Clone(r.calls) }

// ClearMarks forgets the calls and marks from the previous batch. Call it
// between batches so Verify judges each batch on its own.
func (r *Rows[T]) ClearMarks() {
	for i := range r.rows {
		r.rows[i].Mark = Clean
		r.rows[i].fresh = false
		r.rows[i].rebound = false
	}
	r.calls = nil
}

func (r *Rows[T]) check(op Op, position, last int) bool {
	if position >= 0 && position <= last {
		return true
	}
	if r.err == nil {
		r.err = fmt.Errorf("%s at position %d out of range [0, %d]", op, position, last)
	}
	log.Errorf("surface: %s pos=%d rows=%d out of range", op, position, len(r.rows))
	return false
}

func (r *Rows[T]) record(c Call) {
	c.Size = len(r.rows)
	r.calls = append(r.calls, c)
	log.Tracef("surface: %s", c)
}
