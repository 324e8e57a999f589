// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dispatcher

import (
	"github.com/tfctl/rowsync/internal/detector"
	"github.com/tfctl/rowsync/internal/log"
)

// Surface is a display that holds rows and animates structural changes.
//
// ItemCount reports the rows the surface currently holds. SetItems installs
// the authoritative list the rows are bound from. After any Notify call
// returns, ItemCount and the row mapping must reflect that single call.
type Surface[T any] interface {
	ItemCount() int
	SetItems(items []T)
	NotifyDataSetChanged()
	NotifyItemInserted(position int)
	NotifyItemRemoved(position int)
	NotifyItemChanged(position int)
	NotifyItemMoved(from, to int)
}

// options holds optional dispatcher settings.
type options struct {
	hook Hook
}

// Option customizes a Dispatcher.
type Option func(*options)

// WithHook observes every dispatch.
func WithHook(h Hook) Option {
	return func(o *options) { o.hook = h }
}

// Dispatcher notifies a Surface of the changes between two lists. It keeps no
// state between calls.
type Dispatcher[T any] struct {
	detector *detector.Detector[T]
	hook     Hook
}

// New returns a Dispatcher that uses d to detect changes.
func New[T any](d *detector.Detector[T], opts ...Option) *Dispatcher[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher[T]{detector: d, hook: o.hook}
}

// Reconcile installs newItems on s and notifies it of the changes from
// oldItems. Detection is skipped when s holds no rows, since a full reset is
// issued anyway. It returns the changes that were dispatched.
func (m *Dispatcher[T]) Reconcile(s Surface[T], oldItems, newItems []T) []detector.Change {
	count := s.ItemCount()
	if count == 0 {
		m.dispatch(s, newItems, nil, count)
		return nil
	}

	changes := m.detector.Detect(newItems, oldItems)
	m.dispatch(s, newItems, changes, count)
	return changes
}

// Apply installs newItems on s and issues one notification per change, in
// order. If s holds no rows, a single NotifyDataSetChanged is issued instead
// and changes are ignored.
//
// Positions are used as given; changes must come from a Detector run against
// the list s is currently showing.
func (m *Dispatcher[T]) Apply(s Surface[T], newItems []T, changes []detector.Change) {
	m.dispatch(s, newItems, changes, s.ItemCount())
}

func (m *Dispatcher[T]) dispatch(s Surface[T], newItems []T, changes []detector.Change, count int) {
	m.emit(Event{Phase: PhaseStart, Count: count})
	log.Debugf("dispatch: count=%d changes=%d", count, len(changes))

	s.SetItems(newItems)

	if count == 0 {
		s.NotifyDataSetChanged()
		m.emit(Event{Phase: PhaseReset, Count: len(newItems)})
		m.emit(Event{Phase: PhaseEnd, Count: s.ItemCount()})
		return
	}

	for _, c := range changes {
		m.emit(Event{Phase: PhaseBefore, Change: c})
		notify(s, c)
		m.emit(Event{Phase: PhaseAfter, Change: c})
	}

	m.emit(Event{Phase: PhaseEnd, Count: s.ItemCount()})
}

func (m *Dispatcher[T]) emit(e Event) {
	if m.hook != nil {
		m.hook(e)
	}
}

// notify maps a change onto its surface primitive.
func notify[T any](s Surface[T], c detector.Change) {
	switch c := c.(type) {
	case detector.Inserted:
		s.NotifyItemInserted(c.NewPosition)
	case detector.Removed:
		s.NotifyItemRemoved(c.OldPosition)
	case detector.Updated:
		s.NotifyItemChanged(c.Position)
	case detector.Moved:
		s.NotifyItemMoved(c.OldPosition, c.NewPosition)
	default:
		log.Errorf("dispatch: unknown change %T", c)
	}
}
