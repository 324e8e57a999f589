// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/tfctl/rowsync/internal/driller"
	"github.com/tfctl/rowsync/internal/log"
)

// lengthRegex finds the length part of a transform spec.
var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr is one attribute of an item element that takes part in its content.
type Attr struct {
	// Dot path of the value inside the element.
	Path string `yaml:"path" json:"Path"`
	// Is this Attr part of the item content, or only used for filtering?
	Include bool `yaml:"include" json:"Include"`
	// Field name used in output and in filter expressions.
	Name string `yaml:"name" json:"Name"`
	// Transformation spec applied before comparison.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Only strings are transformed.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok || a.TransformSpec == "" {
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		result = transformTime(result, strings.Contains(a.TransformSpec, "T"))
	}

	// The last case letter wins so a per-attr spec overrides a global one
	// prepended to it. IOW... --content '*::U,name::l' is lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same for length; the last number wins.
	if match := lengthRegex.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		result = transformLength(result, l)
	}

	log.Tracef("transform: spec=%s result=%s", a.TransformSpec, result)
	return result
}

// transformTime renders an RFC3339 timestamp in local time or, when ago is
// set, relative to now. Unparseable values pass through.
func transformTime(s string, ago bool) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	local := t.In(time.Local)
	if ago {
		return humanize.Time(local)
	}
	return local.Format("2006-01-02T15:04:05MST")
}

// transformLength truncates s to l runes, or to about -l runes with the middle
// elided when l is negative.
func transformLength(s string, l int) string {
	r := []rune(s)
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if len(r) <= abs {
		return s
	}
	if l >= 0 {
		return string(r[:l])
	}
	keep := max(abs/2-1, 0) //nolint:mnd
	return string(r[:keep]) + ".." + string(r[len(r)-keep:])
}

// Value extracts and transforms the attribute from an element.
func (a *Attr) Value(element gjson.Result) interface{} {
	return a.Transform(driller.Drill(element, a.Path).Value())
}

// AttrList is a collection of Attr that shapes item content.
type AttrList []Attr

// Set parses a comma separated list of path:name:transform specs and adds
// them to the list. It implements the flag.Value interface.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		pathIdx = iota
		nameIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")

		// A leading ! keeps the attr available to filters but out of content.
		attr.Path = strings.TrimSpace(fields[pathIdx])
		if strings.HasPrefix(attr.Path, "!") {
			attr.Include = false
			attr.Path = attr.Path[1:]
		}
		attr.Path = strings.TrimPrefix(attr.Path, ".")
		if attr.Path == "" {
			return fmt.Errorf("empty path in attribute spec %q", spec)
		}
		if attr.Path == "*" {
			attr.Include = false
		}

		// The name defaults to the last path segment without any index.
		switch {
		case len(fields) > nameIdx && strings.TrimSpace(fields[nameIdx]) != "":
			attr.Name = strings.TrimSpace(fields[nameIdx])
		default:
			segments := strings.Split(attr.Path, ".")
			attr.Name, _, _ = strings.Cut(segments[len(segments)-1], "[")
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: path=%s name=%s spec=%s include=%v",
			attr.Path, attr.Name, attr.TransformSpec, attr.Include)

		// Repeating an attr updates the earlier entry.
		for i := range *a {
			if (*a)[i].Path == attr.Path || (*a)[i].Name == attr.Path {
				(*a)[i].Include = attr.Include
				(*a)[i].Name = attr.Name
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the spec of the "*" entry, if any, to every
// attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for i := range *a {
		if (*a)[i].Path == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}
	log.Debugf("global transform: spec=%s", spec)

	for i := range *a {
		if (*a)[i].Path == "*" {
			continue
		}
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}

	return nil
}

// Included returns the attrs that form item content.
func (a AttrList) Included() AttrList {
	var out AttrList
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// ByName returns the attr named name.
func (a AttrList) ByName(name string) (Attr, bool) {
	for _, attr := range a {
		if attr.Name == name && attr.Path != "*" {
			return attr, true
		}
	}
	return Attr{}, false
}

// String returns the list in the same form Set accepts.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		path := attr.Path
		if !attr.Include && path != "*" {
			path = "!" + path
		}
		result = append(result, fmt.Sprintf("%s:%s:%s", path, attr.Name, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
