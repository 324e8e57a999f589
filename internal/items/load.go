// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package items

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/rowsync/internal/attrs"
	"github.com/tfctl/rowsync/internal/aws"
	"github.com/tfctl/rowsync/internal/cacheutil"
	"github.com/tfctl/rowsync/internal/driller"
	"github.com/tfctl/rowsync/internal/filters"
	"github.com/tfctl/rowsync/internal/log"
)

// DefaultKey is the key path used when Spec.Key is empty.
const DefaultKey = "id"

// s3CacheDir holds cached bodies of version pinned S3 objects.
var s3CacheDir = []string{"s3"}

// Spec says how to turn a document into items.
type Spec struct {
	// Parent is the path of the list inside the document. Empty means the
	// document is the list.
	Parent string
	// Key is the path of each element's identity.
	Key string
	// Content selects and transforms the values that make up the content.
	Content attrs.AttrList
	// Filter drops elements that do not match.
	Filter string
}

// options holds optional Load settings.
type options struct {
	s3    aws.Getter
	stdin io.Reader
}

// Option customizes Load.
type Option func(*options)

// WithS3 sets the client used for s3:// sources. Without it a client is built
// from the environment on first use.
func WithS3(g aws.Getter) Option {
	return func(o *options) { o.s3 = g }
}

// WithStdin sets the reader used for "-".
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

// Load reads src and parses it with spec.
func Load(ctx context.Context, src string, spec Spec, opts ...Option) ([]Item, error) {
	o := options{stdin: os.Stdin}
	for _, opt := range opts {
		opt(&o)
	}

	data, err := read(ctx, src, o)
	if err != nil {
		return nil, err
	}

	list, err := Parse(data, src, spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	log.Debugf("items loaded: src=%s count=%d", src, len(list))
	return list, nil
}

// read returns the raw bytes of src.
func read(ctx context.Context, src string, o options) ([]byte, error) {
	switch {
	case src == "-":
		return io.ReadAll(o.stdin)
	case aws.IsURI(src):
		return readS3(ctx, src, o)
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read items: %w", err)
		}
		return data, nil
	}
}

// readS3 fetches an S3 object. Version pinned objects never change, so their
// bodies are served from the cache when present.
func readS3(ctx context.Context, src string, o options) ([]byte, error) {
	obj, err := aws.ParseURI(src)
	if err != nil {
		return nil, err
	}

	if obj.VersionID != "" {
		if e, ok := cacheutil.Read(s3CacheDir, obj.String()); ok {
			return e.Data, nil
		}
	}

	client := o.s3
	if client == nil {
		c, err := aws.NewS3FromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		client = c
	}

	data, err := aws.Fetch(ctx, client, obj)
	if err != nil {
		return nil, err
	}

	if obj.VersionID != "" {
		if err := cacheutil.Write(s3CacheDir, obj.String(), data); err != nil {
			log.WithError(err).Warnf("s3 body not cached: %s", obj)
		}
	}
	return data, nil
}

// Parse turns a JSON or YAML document into items. name is only used to pick
// the format by extension; without a known extension the content decides.
func Parse(data []byte, name string, spec Spec) ([]Item, error) {
	doc, err := toJSON(data, name)
	if err != nil {
		return nil, err
	}

	// A one element list is unwrapped by a plain path, so prefer the list
	// form when there is one.
	root := gjson.ParseBytes(doc)
	list := driller.Drill(root, spec.Parent)
	if spec.Parent != "" && !strings.HasSuffix(spec.Parent, "]") {
		if whole := driller.Drill(root, spec.Parent+"[]"); whole.IsArray() {
			list = whole
		}
	}

	switch {
	case !list.Exists() || list.Type == gjson.Null:
		if spec.Parent != "" {
			return nil, fmt.Errorf("no list at %q", spec.Parent)
		}
		return nil, nil
	case !list.IsArray():
		return nil, fmt.Errorf("value at %q is not a list", spec.Parent)
	}

	keyPath := spec.Key
	if keyPath == "" {
		keyPath = DefaultKey
	}

	content := spec.Content.Included()
	filterList := filters.BuildFilters(spec.Filter)

	var (
		out []Item
		n   int
	)
	for _, element := range list.Array() {
		n++
		if !filters.Match(element, spec.Content, filterList) {
			continue
		}

		key := driller.Drill(element, keyPath)
		if !key.Exists() || key.IsObject() || key.IsArray() {
			return nil, fmt.Errorf("element %d has no scalar key at %q", n-1, keyPath)
		}

		out = append(out, build(key.String(), element, content))
	}

	log.Debugf("items parsed: elements=%d kept=%d", n, len(out))
	return out, nil
}

// build makes an item from an element.
func build(key string, element gjson.Result, content attrs.AttrList) Item {
	it := Item{Key: key}

	if len(content) == 0 {
		value := element.Value()
		it.Content = canonical(element, value)
		if m, ok := value.(map[string]any); ok {
			it.Fields = m
		}
		return it
	}

	it.Fields = make(map[string]any, len(content))
	parts := make([]string, 0, len(content))
	for _, attr := range content {
		v := attr.Value(element)
		it.Fields[attr.Name] = v
		parts = append(parts, fmt.Sprintf("%s=%v", attr.Name, v))
	}
	it.Content = strings.Join(parts, " ")
	return it
}

// canonical renders an element as compact JSON with object keys sorted, so
// the same element compares equal whatever its key order or source format.
func canonical(element gjson.Result, value any) string {
	b, err := json.Marshal(value)
	if err != nil {
		return gjson.Get(element.Raw, "@ugly").Raw
	}
	return string(b)
}

// toJSON returns data as JSON, converting YAML when needed.
func toJSON(data []byte, name string) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []byte("null"), nil
	}

	isJSON := false
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		isJSON = true
	case ".yaml", ".yml":
	default:
		isJSON = trimmed[0] == '[' || trimmed[0] == '{'
	}

	if isJSON {
		if !gjson.ValidBytes(trimmed) {
			return nil, errors.New("invalid JSON document")
		}
		return trimmed, nil
	}

	var v any
	if err := yaml.Unmarshal(trimmed, &v); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("YAML document cannot be represented as JSON: %w", err)
	}
	return out, nil
}
