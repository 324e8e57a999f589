// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"slices"

	"github.com/tfctl/rowsync/internal/log"
)

// Predicate compares an item of the old list (a) with an item of the new list
// (b). Predicates must be pure and consistent for the duration of a Detect
// call.
type Predicate[T any] func(a, b T) bool

// matcher pairs every new item with the old item sharing its identity. The
// result holds, per new index, the matched old index or -1.
type matcher[T any] func(newItems, oldItems []T) []int

// Detector computes changes between two lists. It holds no state besides its
// predicates and can be reused for sequential calls.
type Detector[T any] struct {
	sameContent Predicate[T]
	match       matcher[T]
}

// New returns a Detector that matches items with sameIdentity and compares
// matched items with sameContent. Matching scans the old list, so it costs
// O(len(old)*len(new)) in the worst case; use NewKeyed when items carry a
// comparable key.
func New[T any](sameIdentity, sameContent Predicate[T]) *Detector[T] {
	return &Detector[T]{
		sameContent: sameContent,
		match:       scanMatcher(sameIdentity),
	}
}

// NewKeyed returns a Detector whose identity is key equality. Matching uses a
// hash index over the old list.
func NewKeyed[T any, K comparable](key func(T) K, sameContent Predicate[T]) *Detector[T] {
	return &Detector[T]{
		sameContent: sameContent,
		match:       keyMatcher(key),
	}
}

// Detect returns the ordered changes that turn oldItems into newItems.
//
// Changes are emitted by a single left-to-right pass over newItems (inserts,
// moves and updates) followed by a pass over the unmatched old items in their
// original order (removals). Every position is effective: it accounts for all
// changes emitted before it.
//
// A matched item whose content changed and whose position changed is reported
// as a single Moved; it never also produces an Updated.
//
// Duplicate identities are matched first come, first served: each old item is
// claimed by the first new item, in new order, that shares its identity.
// Surplus duplicates in newItems are inserted and surplus duplicates in
// oldItems are removed.
func (d *Detector[T]) Detect(newItems, oldItems []T) []Change {
	matches := d.match(newItems, oldItems)
	changed := make([]bool, len(newItems))
	for i, j := range matches {
		changed[i] = j >= 0 && !d.sameContent(oldItems[j], newItems[i])
	}
	stable := stableSet(matches, changed)
	log.Tracef("detect: new=%d old=%d", len(newItems), len(oldItems))

	// rows mirrors the surface while changes are emitted. Old items are
	// identified by their old index, inserted items by len(oldItems)+new index.
	rows := make([]int, len(oldItems))
	for i := range rows {
		rows[i] = i
	}

	var changes []Change
	claimed := make([]bool, len(oldItems))
	prev := -1

	for i := range newItems {
		j := matches[i]

		if j < 0 {
			id := len(oldItems) + i
			to := after(rows, prev)
			rows = slices.Insert(rows, to, id)
			changes = append(changes, Inserted{NewPosition: to})
			prev = id
			continue
		}

		claimed[j] = true
		pos := slices.Index(rows, j)

		if !stable[i] {
			rows = slices.Delete(rows, pos, pos+1)
			to := after(rows, prev)
			rows = slices.Insert(rows, to, j)
			if to != pos {
				changes = append(changes, Moved{OldPosition: pos, NewPosition: to})
				prev = j
				continue
			}
		}

		if changed[i] {
			changes = append(changes, Updated{Position: pos})
		}
		prev = j
	}

	for j := range oldItems {
		if claimed[j] {
			continue
		}
		pos := slices.Index(rows, j)
		rows = slices.Delete(rows, pos, pos+1)
		changes = append(changes, Removed{OldPosition: pos})
	}

	log.Debugf("detect done: changes=%d", len(changes))
	return changes
}

// after returns the position directly behind row id prev, or 0 when nothing
// has been placed yet.
func after(rows []int, prev int) int {
	if prev < 0 {
		return 0
	}
	return slices.Index(rows, prev) + 1
}

func scanMatcher[T any](sameIdentity Predicate[T]) matcher[T] {
	return func(newItems, oldItems []T) []int {
		matches := make([]int, len(newItems))
		claimed := make([]bool, len(oldItems))

		// lo is the first unclaimed old index. Lists that mostly line up
		// never scan past it.
		lo := 0
		for i, item := range newItems {
			matches[i] = -1
			for lo < len(oldItems) && claimed[lo] {
				lo++
			}
			for j := lo; j < len(oldItems); j++ {
				if !claimed[j] && sameIdentity(oldItems[j], item) {
					claimed[j] = true
					matches[i] = j
					break
				}
			}
		}
		return matches
	}
}

func keyMatcher[T any, K comparable](key func(T) K) matcher[T] {
	return func(newItems, oldItems []T) []int {
		index := make(map[K][]int, len(oldItems))
		for j, item := range oldItems {
			k := key(item)
			index[k] = append(index[k], j)
		}

		matches := make([]int, len(newItems))
		for i, item := range newItems {
			matches[i] = -1
			k := key(item)
			if queue := index[k]; len(queue) > 0 {
				matches[i] = queue[0]
				index[k] = queue[1:]
			}
		}
		return matches
	}
}
