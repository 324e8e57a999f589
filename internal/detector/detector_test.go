// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package detector

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   int
	name string
}

func sameID(a, b item) bool   { return a.id == b.id }
func sameName(a, b item) bool { return a.name == b.name }
func keyOf(i item) int        { return i.id }

// items builds a list from id/name pairs.
func items(pairs ...any) []item {
	var out []item
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, item{id: pairs[i].(int), name: pairs[i+1].(string)})
	}
	return out
}

// slot is a simulated display row.
type slot struct {
	item  item
	dirty bool
}

// replay applies changes to a simulated surface holding oldItems, then
// rebinds dirty rows from newItems the way a layout pass would. It fails the
// test on out-of-range positions.
func replay(t *testing.T, oldItems, newItems []item, changes []Change) []item {
	t.Helper()

	rows := make([]slot, len(oldItems))
	for i, it := range oldItems {
		rows[i] = slot{item: it}
	}

	for n, c := range changes {
		switch c := c.(type) {
		case Inserted:
			require.LessOrEqual(t, c.NewPosition, len(rows), "change %d: %v", n, c)
			rows = slices.Insert(rows, c.NewPosition, slot{dirty: true, item: item{id: -1}})
		case Removed:
			require.Less(t, c.OldPosition, len(rows), "change %d: %v", n, c)
			rows = slices.Delete(rows, c.OldPosition, c.OldPosition+1)
		case Updated:
			require.Less(t, c.Position, len(rows), "change %d: %v", n, c)
			rows[c.Position].dirty = true
		case Moved:
			require.Less(t, c.OldPosition, len(rows), "change %d: %v", n, c)
			s := rows[c.OldPosition]
			rows = slices.Delete(rows, c.OldPosition, c.OldPosition+1)
			require.LessOrEqual(t, c.NewPosition, len(rows), "change %d: %v", n, c)
			s.dirty = true
			rows = slices.Insert(rows, c.NewPosition, s)
		default:
			t.Fatalf("unexpected change %T", c)
		}
	}

	require.Len(t, rows, len(newItems))

	out := make([]item, len(rows))
	for i, r := range rows {
		if r.item.id >= 0 {
			require.Equal(t, newItems[i].id, r.item.id, "row %d holds the wrong item", i)
		}
		if r.dirty {
			r.item = newItems[i]
		}
		out[i] = r.item
	}
	return out
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		oldItems []item
		newItems []item
		want     []Change
	}{
		{
			name: "both empty",
		},
		{
			name:     "identical single",
			oldItems: items(1, "A"),
			newItems: items(1, "A"),
		},
		{
			name:     "identical many",
			oldItems: items(1, "A", 2, "B", 3, "C"),
			newItems: items(1, "A", 2, "B", 3, "C"),
		},
		{
			name:     "insert at beginning",
			oldItems: items(1, "A"),
			newItems: items(2, "B", 1, "A"),
			want:     []Change{Inserted{NewPosition: 0}},
		},
		{
			name:     "insert at end",
			oldItems: items(1, "A"),
			newItems: items(1, "A", 2, "B"),
			want:     []Change{Inserted{NewPosition: 1}},
		},
		{
			name:     "multiple inserts",
			oldItems: items(1, "A"),
			newItems: items(3, "C", 1, "A", 2, "B"),
			want:     []Change{Inserted{NewPosition: 0}, Inserted{NewPosition: 2}},
		},
		{
			name:     "all inserted",
			newItems: items(1, "A", 2, "B", 3, "C"),
			want: []Change{
				Inserted{NewPosition: 0},
				Inserted{NewPosition: 1},
				Inserted{NewPosition: 2},
			},
		},
		{
			name:     "remove at beginning",
			oldItems: items(2, "B", 1, "A"),
			newItems: items(1, "A"),
			want:     []Change{Removed{OldPosition: 0}},
		},
		{
			name:     "remove at end",
			oldItems: items(1, "A", 2, "B"),
			newItems: items(1, "A"),
			want:     []Change{Removed{OldPosition: 1}},
		},
		{
			name:     "multiple removes",
			oldItems: items(3, "C", 1, "A", 2, "B"),
			newItems: items(1, "A"),
			want:     []Change{Removed{OldPosition: 0}, Removed{OldPosition: 1}},
		},
		{
			name:     "all removed",
			oldItems: items(1, "A", 2, "B", 3, "C"),
			want: []Change{
				Removed{OldPosition: 0},
				Removed{OldPosition: 0},
				Removed{OldPosition: 0},
			},
		},
		{
			name:     "swap",
			oldItems: items(1, "A", 2, "B"),
			newItems: items(2, "B", 1, "A"),
			want:     []Change{Moved{OldPosition: 0, NewPosition: 1}},
		},
		{
			name:     "reverse",
			oldItems: items(1, "A", 2, "B", 3, "C"),
			newItems: items(3, "C", 2, "B", 1, "A"),
			want: []Change{
				Moved{OldPosition: 1, NewPosition: 2},
				Moved{OldPosition: 0, NewPosition: 2},
			},
		},
		{
			name:     "rotate left is one move",
			oldItems: items(1, "A", 2, "B", 3, "C", 4, "D"),
			newItems: items(2, "B", 3, "C", 4, "D", 1, "A"),
			want:     []Change{Moved{OldPosition: 0, NewPosition: 3}},
		},
		{
			name:     "rotate right is one move",
			oldItems: items(1, "A", 2, "B", 3, "C", 4, "D"),
			newItems: items(4, "D", 1, "A", 2, "B", 3, "C"),
			want:     []Change{Moved{OldPosition: 3, NewPosition: 0}},
		},
		{
			name:     "update",
			oldItems: items(1, "A", 2, "B"),
			newItems: items(1, "A", 2, "C"),
			want:     []Change{Updated{Position: 1}},
		},
		{
			name:     "update after insert uses shifted position",
			oldItems: items(1, "A", 2, "B"),
			newItems: items(3, "C", 1, "A", 2, "X"),
			want:     []Change{Inserted{NewPosition: 0}, Updated{Position: 2}},
		},
		{
			name:     "mixed batch",
			oldItems: items(1, "Item 1", 2, "Item 2", 3, "Item 3", 4, "Item 4"),
			newItems: items(3, "Item 3", 2, "Item 2b", 1, "Item 1", 5, "Item 5"),
			want: []Change{
				Moved{OldPosition: 1, NewPosition: 2},
				Moved{OldPosition: 0, NewPosition: 2},
				Inserted{NewPosition: 3},
				Removed{OldPosition: 4},
			},
		},
		{
			name:     "moves, insert and remove interleaved",
			oldItems: items(1, "A", 2, "B", 3, "C", 4, "D", 5, "E"),
			newItems: items(5, "E", 1, "A", 9, "X", 3, "C", 2, "B"),
			want: []Change{
				Moved{OldPosition: 4, NewPosition: 0},
				Inserted{NewPosition: 2},
				Moved{OldPosition: 3, NewPosition: 4},
				Removed{OldPosition: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(sameID, sameName)
			got := d.Detect(tt.newItems, tt.oldItems)
			assert.Equal(t, tt.want, got)

			if len(tt.newItems) > 0 || len(tt.oldItems) > 0 {
				assert.Equal(t, nonNil(tt.newItems), replay(t, tt.oldItems, tt.newItems, got))
			}

			keyed := NewKeyed(keyOf, sameName)
			assert.Equal(t, got, keyed.Detect(tt.newItems, tt.oldItems), "keyed detector disagrees")
		})
	}
}

// TestDetect_MovedAndChangedCollapses pins that an item that both moved and
// changed content is reported once, as a move.
func TestDetect_MovedAndChangedCollapses(t *testing.T) {
	oldItems := items(1, "A", 2, "B")
	newItems := items(2, "B", 1, "A2")

	got := New(sameID, sameName).Detect(newItems, oldItems)

	assert.Equal(t, []Change{Moved{OldPosition: 0, NewPosition: 1}}, got)
	assert.Equal(t, newItems, replay(t, oldItems, newItems, got))
}

// TestDetect_StableItemChangedInPlace covers a changed item that keeps its
// place while its neighbour moves around it.
func TestDetect_StableItemChangedInPlace(t *testing.T) {
	oldItems := items(1, "A", 2, "B", 3, "C")
	newItems := items(2, "B2", 3, "C", 1, "A")

	got := New(sameID, sameName).Detect(newItems, oldItems)

	assert.Equal(t, []Change{
		Updated{Position: 1},
		Moved{OldPosition: 0, NewPosition: 2},
	}, got)
	assert.Equal(t, newItems, replay(t, oldItems, newItems, got))
}

// TestDetect_TiesMoveChangedItems pins that among equally long stable runs
// the one without content changes stays, so a changed item is moved once
// instead of being updated while its neighbour moves.
func TestDetect_TiesMoveChangedItems(t *testing.T) {
	tests := []struct {
		name     string
		oldItems []item
		newItems []item
		want     []Change
	}{
		{
			name:     "swap with changed first",
			oldItems: items(1, "A", 2, "B"),
			newItems: items(2, "B2", 1, "A"),
			want:     []Change{Moved{OldPosition: 1, NewPosition: 0}},
		},
		{
			name:     "insert, changed move and remove",
			oldItems: items(1, "A", 2, "B", 3, "C"),
			newItems: items(9, "Z", 3, "C2", 1, "A"),
			want: []Change{
				Inserted{NewPosition: 0},
				Moved{OldPosition: 3, NewPosition: 1},
				Removed{OldPosition: 3},
			},
		},
		{
			name:     "fewest changes among longest runs",
			oldItems: items(1, "A", 2, "B", 3, "C", 4, "D"),
			newItems: items(3, "C2", 4, "D2", 1, "A", 2, "B"),
			want: []Change{
				Moved{OldPosition: 2, NewPosition: 0},
				Moved{OldPosition: 3, NewPosition: 1},
			},
		},
		{
			name:     "all changed falls back to earliest run",
			oldItems: items(1, "A", 2, "B"),
			newItems: items(2, "B2", 1, "A2"),
			want: []Change{
				Updated{Position: 1},
				Moved{OldPosition: 0, NewPosition: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(sameID, sameName).Detect(tt.newItems, tt.oldItems)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.newItems, replay(t, tt.oldItems, tt.newItems, got))
			assert.Equal(t, got, NewKeyed(keyOf, sameName).Detect(tt.newItems, tt.oldItems))
		})
	}
}

func TestDetect_DuplicateIdentitiesFirstMatchWins(t *testing.T) {
	t.Run("duplicate in old", func(t *testing.T) {
		oldItems := items(1, "A", 1, "B")
		newItems := items(1, "B")

		got := New(sameID, sameName).Detect(newItems, oldItems)

		// new[0] claims old[0], so it is an update and old[1] is removed.
		assert.Equal(t, []Change{Updated{Position: 0}, Removed{OldPosition: 1}}, got)
		assert.Equal(t, newItems, replay(t, oldItems, newItems, got))
	})

	t.Run("duplicate in new", func(t *testing.T) {
		oldItems := items(1, "A")
		newItems := items(1, "A", 1, "A")

		got := New(sameID, sameName).Detect(newItems, oldItems)

		assert.Equal(t, []Change{Inserted{NewPosition: 1}}, got)
		assert.Equal(t, newItems, replay(t, oldItems, newItems, got))
	})

	t.Run("keyed agrees", func(t *testing.T) {
		oldItems := items(1, "A", 2, "B", 1, "C")
		newItems := items(1, "C", 2, "B", 1, "A")

		scan := New(sameID, sameName).Detect(newItems, oldItems)
		keyed := NewKeyed(keyOf, sameName).Detect(newItems, oldItems)

		assert.Equal(t, scan, keyed)
		assert.Equal(t, newItems, replay(t, oldItems, newItems, scan))
	})
}

// TestDetect_NeverConsultsContentAcrossIdentities ensures the content
// predicate is only asked about items sharing an identity.
func TestDetect_NeverConsultsContentAcrossIdentities(t *testing.T) {
	strict := func(a, b item) bool {
		if a.id != b.id {
			t.Fatalf("content compared across identities: %v vs %v", a, b)
		}
		return a.name == b.name
	}

	oldItems := items(1, "A", 2, "B", 3, "C")
	newItems := items(3, "C", 4, "D", 1, "X")

	_ = New(sameID, strict).Detect(newItems, oldItems)
	_ = NewKeyed(keyOf, strict).Detect(newItems, oldItems)
}

func TestDetect_Reusable(t *testing.T) {
	d := New(sameID, sameName)

	first := d.Detect(items(2, "B", 1, "A"), items(1, "A", 2, "B"))
	second := d.Detect(items(1, "A"), items(1, "A"))
	third := d.Detect(items(2, "B", 1, "A"), items(1, "A", 2, "B"))

	assert.Len(t, first, 1)
	assert.Empty(t, second)
	assert.Equal(t, first, third)
}

// TestDetect_Properties runs randomized lists through the detector and checks
// idempotence, completeness, single classification, minimal moves and replay
// correctness.
func TestDetect_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec

	for n := range 500 {
		oldItems := randomItems(rng)
		newItems := randomItems(rng)

		t.Run(fmt.Sprintf("case-%03d", n), func(t *testing.T) {
			d := New(sameID, sameName)

			assert.Empty(t, d.Detect(oldItems, oldItems), "identical lists must yield no changes")

			got := d.Detect(newItems, oldItems)
			counts := Count(got)

			matched := 0
			var oldOrder []int
			for _, ni := range newItems {
				if j := indexOf(oldItems, ni.id); j >= 0 {
					matched++
					oldOrder = append(oldOrder, j)
				}
			}

			assert.Equal(t, len(newItems)-matched, counts[KindInserted], "one insert per new identity")
			assert.Equal(t, len(oldItems)-matched, counts[KindRemoved], "one remove per vanished identity")
			assert.LessOrEqual(t, counts[KindMoved]+counts[KindUpdated], matched, "at most one change per kept identity")
			assert.Equal(t, matched-lisLength(oldOrder), counts[KindMoved], "moves must be minimal")

			assert.Equal(t, nonNil(newItems), replay(t, oldItems, newItems, got))
			assert.Equal(t, got, NewKeyed(keyOf, sameName).Detect(newItems, oldItems))
		})
	}
}

// randomItems returns up to 12 items with unique ids drawn from 0..15 in
// random order, with names that sometimes change between calls.
func randomItems(rng *rand.Rand) []item {
	ids := rng.Perm(16)[:rng.IntN(13)] //nolint:mnd
	out := make([]item, len(ids))
	for i, id := range ids {
		out[i] = item{id: id, name: fmt.Sprintf("Item %d%s", id, []string{"", " *"}[rng.IntN(2)])}
	}
	return out
}

func indexOf(list []item, id int) int {
	return slices.IndexFunc(list, func(i item) bool { return i.id == id })
}

// lisLength is the quadratic textbook longest strictly increasing
// subsequence, used as an oracle.
func lisLength(seq []int) int {
	best := 0
	dp := make([]int, len(seq))
	for i := range seq {
		dp[i] = 1
		for j := range i {
			if seq[j] < seq[i] && dp[j]+1 > dp[i] {
				dp[i] = dp[j] + 1
			}
		}
		best = max(best, dp[i])
	}
	return best
}

func nonNil(list []item) []item {
	if list == nil {
		return []item{}
	}
	return list
}
