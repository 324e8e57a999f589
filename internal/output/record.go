// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"github.com/tfctl/rowsync/internal/detector"
	"github.com/tfctl/rowsync/internal/items"
)

// Record is a change made printable: its kind, positions and the item it
// concerns.
type Record struct {
	Seq     int    `json:"seq" yaml:"seq"`
	Kind    string `json:"kind" yaml:"kind"`
	Pos     int    `json:"pos" yaml:"pos"`
	To      *int   `json:"to,omitempty" yaml:"to,omitempty"`
	Key     string `json:"key" yaml:"key"`
	Content string `json:"content" yaml:"content"`
}

// slot is one simulated row. Rows are tracked by pointer so every change can
// be tied back to the item it touched once the final order is known.
type slot struct {
	old   *items.Item
	final int
}

// Records pairs each change with its item. Positions in changes are
// effective positions, so the rows are replayed here: removed, moved and
// updated rows carry their old item, and each row's place after the last
// change names its item in newItems. Content is the new content where the
// item survives and the old content for removals.
func Records(changes []detector.Change, oldItems, newItems []items.Item) []Record {
	rows := make([]*slot, len(oldItems))
	for n := range oldItems {
		rows[n] = &slot{old: &oldItems[n], final: -1}
	}

	touched := make([]*slot, len(changes))
	for n, c := range changes {
		switch c := c.(type) {
		case detector.Inserted:
			s := &slot{final: -1}
			if c.NewPosition >= 0 && c.NewPosition <= len(rows) {
				rows = append(rows[:c.NewPosition], append([]*slot{s}, rows[c.NewPosition:]...)...)
			}
			touched[n] = s
		case detector.Removed:
			if c.OldPosition >= 0 && c.OldPosition < len(rows) {
				touched[n] = rows[c.OldPosition]
				rows = append(rows[:c.OldPosition], rows[c.OldPosition+1:]...)
			}
		case detector.Updated:
			if c.Position >= 0 && c.Position < len(rows) {
				touched[n] = rows[c.Position]
			}
		case detector.Moved:
			if c.OldPosition >= 0 && c.OldPosition < len(rows) && c.NewPosition >= 0 && c.NewPosition < len(rows) {
				s := rows[c.OldPosition]
				rows = append(rows[:c.OldPosition], rows[c.OldPosition+1:]...)
				rows = append(rows[:c.NewPosition], append([]*slot{s}, rows[c.NewPosition:]...)...)
				touched[n] = s
			}
		}
	}

	for n, s := range rows {
		s.final = n
	}

	records := make([]Record, len(changes))
	for n, c := range changes {
		r := Record{Seq: n + 1, Kind: c.Kind().String(), Key: "?"}
		switch c := c.(type) {
		case detector.Inserted:
			r.Pos = c.NewPosition
		case detector.Removed:
			r.Pos = c.OldPosition
		case detector.Updated:
			r.Pos = c.Position
		case detector.Moved:
			r.Pos = c.OldPosition
			to := c.NewPosition
			r.To = &to
		}

		s := touched[n]
		switch {
		case s == nil:
		case c.Kind() == detector.KindRemoved && s.old != nil:
			r.Key, r.Content = s.old.Key, s.old.Content
		case s.final >= 0 && s.final < len(newItems):
			r.Key, r.Content = newItems[s.final].Key, newItems[s.final].Content
		}
		records[n] = r
	}

	return records
}
