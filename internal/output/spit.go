// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/rowsync/internal/config"
	"github.com/tfctl/rowsync/internal/detector"
	"github.com/tfctl/rowsync/internal/log"
)

// Options controls how records are rendered.
type Options struct {
	Format  string // text, json or yaml
	Titles  bool
	Color   bool
	Padding int
	Sort    string
	Header  string
	Footer  string
}

// NewOptions reads the rendering flags of cmd. Missing flags keep their zero
// value. --color is resolved against stdout with UseColor.
func NewOptions(cmd *cli.Command) Options {
	opts := Options{
		Format:  cmd.String("output"),
		Titles:  cmd.Bool("titles"),
		Color:   UseColor(cmd.String("color"), os.Stdout),
		Padding: cmd.Int("padding"),
		Sort:    cmd.String("sort"),
	}

	if h, ok := cmd.Metadata["header"].(string); ok {
		opts.Header = h
	}
	if f, ok := cmd.Metadata["footer"].(string); ok {
		opts.Footer = f
	}

	return opts
}

// UseColor resolves a --color mode. "always" and "never" (or any bool
// spelling) are taken as given. Anything else means auto: color only when f
// is a terminal and NO_COLOR is unset.
func UseColor(mode string, f *os.File) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}

	if b, err := strconv.ParseBool(mode); err == nil {
		return b
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	return f != nil && term.IsTerminal(int(f.Fd()))
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided for nil and empty strings.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil {
		return emptyValue[0]
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return emptyValue[0]
		}
		value = rv.Elem().Interface()
	}

	switch value := value.(type) {
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Item fields decoded from JSON are float64 even for ids.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Spit sorts and renders records to w in the format named by opts. An empty
// format means text.
func Spit(w io.Writer, records []Record, opts Options) error {
	if err := SortRecords(records, opts.Sort); err != nil {
		return err
	}

	headers := []string{"seq", "kind", "pos", "to", "key", "content"}
	return Emit(w, records, headers, func(r Record) []string {
		return []string{
			strconv.Itoa(r.Seq),
			r.Kind,
			strconv.Itoa(r.Pos),
			InterfaceToString(r.To, "-"),
			r.Key,
			InterfaceToString(r.Content, "-"),
		}
	}, opts)
}

// Emit renders list as JSON, YAML or, through row, a text table.
func Emit[T any](w io.Writer, list []T, headers []string, row func(T) []string, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "json":
		if list == nil {
			list = []T{}
		}
		jsonOutput, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to marshal %s output: %w", opts.Format, err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to marshal %s output: %w", opts.Format, err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "", "text":
		rows := make([][]string, 0, len(list))
		for _, v := range list {
			rows = append(rows, row(v))
		}
		TableWriter(w, headers, rows, opts)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// Summary tallies changes as "2 inserted, 1 moved" in kind order, or
// "no changes".
func Summary(changes []detector.Change) string {
	counts := detector.Count(changes)

	var parts []string
	for _, k := range []detector.Kind{detector.KindInserted, detector.KindRemoved, detector.KindUpdated, detector.KindMoved} {
		if counts[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", humanize.Comma(int64(counts[k])), k))
		}
	}

	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

// TableWriter renders rows in a tabular form honoring color, titles and
// padding options. Output is written to w. If w is nil, os.Stdout is used.
func TableWriter(w io.Writer, headers []string, rows [][]string, opts Options) {
	if w == nil {
		w = os.Stdout
	}

	// We initialize the table styles.
	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	// And then color styles if color is on.
	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	if len(rows) > 0 {
		pad := opts.Padding
		t := table.New().
			BorderBottom(false).
			BorderTop(false).
			BorderLeft(false).
			BorderRight(false).
			Border(lipgloss.HiddenBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				var style lipgloss.Style
				switch {
				case row == table.HeaderRow:
					style = headerStyle
				case row%2 == 0:
					style = evenRowStyle
				default:
					style = oddRowStyle
				}

				if col > 0 {
					style = style.PaddingLeft(pad)
				}

				return style
			}).
			Headers().
			Rows(rows...)

		if opts.Titles {
			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers(headers...).BorderHeader(false)
		}
		fmt.Fprintln(w, t)
	}

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}
		log.Tracef("color %s not configured: %v", key, err)

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
