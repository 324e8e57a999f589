// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"sort"
	"strings"
)

// recordFields names the sortable record columns. Numeric columns compare as
// numbers; a missing "to" sorts before any move target.
var recordFields = map[string]func(Record) (int, string, bool){
	"seq":     func(r Record) (int, string, bool) { return r.Seq, "", true },
	"pos":     func(r Record) (int, string, bool) { return r.Pos, "", true },
	"to":      func(r Record) (int, string, bool) { return toOrMinus(r), "", true },
	"kind":    func(r Record) (int, string, bool) { return 0, r.Kind, false },
	"key":     func(r Record) (int, string, bool) { return 0, r.Key, false },
	"content": func(r Record) (int, string, bool) { return 0, r.Content, false },
}

func toOrMinus(r Record) int {
	if r.To == nil {
		return -1
	}
	return *r.To
}

// SortRecords stably sorts records by a comma separated list of columns. A
// leading "-" sorts descending, a leading "!" compares strings case
// sensitively. An empty spec leaves records in emission order.
func SortRecords(records []Record, spec string) error {
	if spec == "" {
		return nil
	}

	type key struct {
		field         func(Record) (int, string, bool)
		ascending     bool
		caseSensitive bool
	}

	var keys []key
	for _, field := range strings.Split(spec, ",") {
		k := key{ascending: true}
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			k.ascending = false
		}

		if strings.HasPrefix(field, "!") {
			field = strings.TrimPrefix(field, "!")
			k.caseSensitive = true
		}

		f, ok := recordFields[strings.TrimSpace(field)]
		if !ok {
			return fmt.Errorf("unknown sort field %q", field)
		}
		k.field = f
		keys = append(keys, k)
	}

	sort.SliceStable(records, func(one, two int) bool {
		for _, k := range keys {
			oneInt, oneStr, numeric := k.field(records[one])
			twoInt, twoStr, _ := k.field(records[two])

			if numeric {
				if oneInt != twoInt {
					return (oneInt < twoInt) == k.ascending
				}
				continue
			}

			if !k.caseSensitive {
				oneStr = strings.ToLower(oneStr)
				twoStr = strings.ToLower(twoStr)
			}

			if oneStr != twoStr {
				return (oneStr < twoStr) == k.ascending
			}
		}
		return false
	})

	return nil
}
