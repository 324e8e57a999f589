// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package items

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Item is one element of a list.
type Item struct {
	Key     string         `json:"key" yaml:"key"`
	Content string         `json:"content" yaml:"content"`
	Fields  map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

func (i Item) String() string {
	return i.Key + ": " + i.Content
}

// SameKey reports whether a and b are the same item.
func SameKey(a, b Item) bool { return a.Key == b.Key }

// SameContent reports whether a and b show the same thing.
func SameContent(a, b Item) bool { return a.Content == b.Content }

// KeyOf returns the identity of i.
func KeyOf(i Item) string { return i.Key }

// Keys returns the keys of list in order.
func Keys(list []Item) []string {
	out := make([]string, len(list))
	for n, it := range list {
		out[n] = it.Key
	}
	return out
}

// Generate returns a random demo list of one to ten items with ids counting
// up, or down, from zero. Each name is "Item <id>", and about half of them
// carry a trailing " *" so content changes between draws.
func Generate(rng *rand.Rand) []Item {
	maxItems := rng.IntN(10) //nolint:mnd
	reversed := rng.IntN(2) == 1

	list := make([]Item, 0, maxItems+1)
	for n := 0; n <= maxItems; n++ {
		id := n
		if reversed {
			id = maxItems - n
		}
		star := ""
		if rng.IntN(2) == 1 {
			star = " *"
		}
		name := fmt.Sprintf("Item %d%s", id, star)
		list = append(list, Item{
			Key:     strconv.Itoa(id),
			Content: name,
			Fields:  map[string]any{"id": id, "name": name},
		})
	}
	return list
}
