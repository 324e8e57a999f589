// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches one path segment: a key with an optional [n] index or
// an empty [] that keeps the whole list.
var segmentRegex = regexp.MustCompile(`^([^\[\]]+)(\[(\d*)\])?$`)

// Drill navigates a parsed JSON value with a dot path. A segment may carry an
// index ("tags[1]") or an empty "[]" to keep a list as is. Without brackets a
// one element list is unwrapped and longer lists are returned whole. An empty
// path or "." returns the value itself.
func Drill(current gjson.Result, path string) gjson.Result {
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return current
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRegex.FindStringSubmatch(p)
		if matches == nil {
			return gjson.Result{}
		}

		val := current.Get(gjson.Escape(matches[1]))
		if !val.IsArray() {
			if matches[2] != "" {
				return gjson.Result{}
			}
			current = val
			continue
		}

		arr := val.Array()
		switch {
		case matches[2] == "":
			if len(arr) == 1 {
				val = arr[0]
			}
		case matches[3] == "":
			// [] keeps the list.
		default:
			i, err := strconv.Atoi(matches[3])
			if err != nil || i >= len(arr) {
				return gjson.Result{}
			}
			val = arr[i]
		}

		current = val
	}

	return current
}
