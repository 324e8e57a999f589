// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package memory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Items are "id:name" strings.
func sameID(a, b string) bool   { return strings.Split(a, ":")[0] == strings.Split(b, ":")[0] }
func sameName(a, b string) bool { return a == b }

func TestRows_New(t *testing.T) {
	r := New([]string{"1:a", "2:b"})

	assert.Equal(t, 2, r.ItemCount())
	assert.Equal(t, []string{"1:a", "2:b"}, r.Visible())
	assert.Equal(t, []string{"1:a", "2:b"}, r.Items())
	require.NoError(t, r.Settle())
	require.NoError(t, r.Verify(sameID, sameName))
}

func TestRows_Primitives(t *testing.T) {
	r := New([]string{"1:a", "2:b", "3:c"})
	r.SetItems([]string{"4:d", "3:c", "1:a2"})

	r.NotifyItemInserted(0) // 4 . 1 2 3
	r.NotifyItemRemoved(2)  // 4 1 3
	r.NotifyItemMoved(2, 1) // 4 3 1
	r.NotifyItemChanged(2)  // 1 refreshed
	assert.Equal(t, 3, r.ItemCount())

	require.NoError(t, r.Settle())
	require.NoError(t, r.Verify(sameID, sameName))
	assert.Equal(t, []string{"4:d", "3:c", "1:a2"}, r.Visible())

	marks := make([]Mark, 0, 3)
	for _, row := range r.Rows() {
		marks = append(marks, row.Mark)
	}
	assert.Equal(t, []Mark{Inserted, Moved, Changed}, marks)

	assert.Equal(t, []Call{
		{Op: OpSetData, Pos: 3, Size: 3},
		{Op: OpInsert, Pos: 0, Size: 4},
		{Op: OpRemove, Pos: 2, Size: 3},
		{Op: OpMove, Pos: 2, To: 1, Size: 3},
		{Op: OpChange, Pos: 2, Size: 3},
	}, r.Calls())

	r.ClearMarks()
	assert.Empty(t, r.Calls())
	assert.Equal(t, Clean, r.Rows()[0].Mark)
}

func TestRows_Reset(t *testing.T) {
	r := New[string](nil)
	r.SetItems([]string{"1:a", "2:b"})
	r.NotifyDataSetChanged()

	assert.Equal(t, 2, r.ItemCount())
	require.NoError(t, r.Settle())
	require.NoError(t, r.Verify(sameID, sameName))
	assert.Equal(t, OpReset, r.Calls()[1].Op)
}

func TestRows_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		call func(r *Rows[string])
		want string
	}{
		{"insert past end", func(r *Rows[string]) { r.NotifyItemInserted(3) }, "insert at position 3"},
		{"remove past end", func(r *Rows[string]) { r.NotifyItemRemoved(2) }, "remove at position 2"},
		{"change negative", func(r *Rows[string]) { r.NotifyItemChanged(-1) }, "change at position -1"},
		{"move to past end", func(r *Rows[string]) { r.NotifyItemMoved(0, 2) }, "move at position 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New([]string{"1:a", "2:b"})
			tt.call(r)

			assert.Equal(t, 2, r.ItemCount(), "rejected calls leave rows alone")
			err := r.Settle()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.NoError(t, r.Settle(), "settle clears the error")
		})
	}
}

func TestRows_VerifyCatchesMistakes(t *testing.T) {
	t.Run("wrong move", func(t *testing.T) {
		r := New([]string{"1:a", "2:b", "3:c"})
		r.SetItems([]string{"3:c", "1:a", "2:b"})
		r.NotifyItemMoved(0, 2) // 2 3 1, should have been 2->0

		require.NoError(t, r.Settle())
		assert.Error(t, r.Verify(sameID, sameName))
	})

	t.Run("missing update", func(t *testing.T) {
		r := New([]string{"1:a", "2:b"})
		r.SetItems([]string{"1:a", "2:b2"})

		require.NoError(t, r.Settle())
		err := r.Verify(sameID, sameName)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stale content")
	})

	t.Run("missing insert", func(t *testing.T) {
		r := New([]string{"1:a"})
		r.SetItems([]string{"1:a", "2:b"})

		assert.Error(t, r.Settle())
		assert.Error(t, r.Verify(sameID, sameName))
	})
}
