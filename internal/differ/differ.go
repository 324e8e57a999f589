// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tfctl/rowsync/internal/log"
)

// Options controls the rendering of a row diff.
type Options struct {
	// Color turns on the formatter's ANSI coloring.
	Color bool
	// Ignore names row keys dropped before comparing, e.g. "fields".
	Ignore []string
}

// Diff compares two row lists and writes an ASCII delta to w when they
// differ. It reports whether they did.
func Diff(w io.Writer, expected, actual any, opts Options) (bool, error) {
	log.Debugf(">> differ()")

	if w == nil {
		w = os.Stdout
	}

	left, err := document(expected, opts.Ignore)
	if err != nil {
		return false, fmt.Errorf("failed to encode expected rows: %w", err)
	}

	right, err := document(actual, opts.Ignore)
	if err != nil {
		return false, fmt.Errorf("failed to encode actual rows: %w", err)
	}

	log.Debugf("len(rows): %d %d", len(left), len(right))

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare rows: %w", err)
	}

	if !delta.Modified() {
		return false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return true, fmt.Errorf("failed to unmarshal rows: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       opts.Color,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprintln(w, diffString)
	return true, nil
}

// document wraps rows as {"rows": [...]} since the differ compares objects,
// dropping the ignored keys from every row object.
func document(rows any, ignore []string) ([]byte, error) {
	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}

	var list []interface{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}

	if list == nil {
		list = []interface{}{}
	}

	for _, row := range list {
		if obj, ok := row.(map[string]interface{}); ok {
			for _, key := range ignore {
				delete(obj, key)
			}
		}
	}

	return json.Marshal(map[string]interface{}{"rows": list})
}
