// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/rowsync/internal/config"
)

// useTempCache points the cache at a fresh temp dir and enables it.
func useTempCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ROWSYNC_CACHE_DIR", dir)
	t.Setenv("ROWSYNC_CACHE", "1")
	return dir
}

func TestDir(t *testing.T) {
	t.Run("env wins", func(t *testing.T) {
		dir := useTempCache(t)
		got, ok := Dir()
		assert.True(t, ok)
		assert.Equal(t, dir, got)
	})

	t.Run("empty env falls back to user cache dir", func(t *testing.T) {
		t.Setenv("ROWSYNC_CACHE_DIR", "")
		if got, ok := Dir(); ok {
			assert.True(t, filepath.IsAbs(got))
			assert.Equal(t, "rowsync", filepath.Base(got))
		}
	})
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("value="+tt.value, func(t *testing.T) {
			t.Setenv("ROWSYNC_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestEnabled_Config(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  string
		want bool
	}{
		{"config disables", "cache:\n  enabled: false\n", "", false},
		{"config enables", "cache:\n  enabled: true\n", "", true},
		{"string value", "cache:\n  enabled: \"0\"\n", "", false},
		{"env wins over config", "cache:\n  enabled: false\n", "1", true},
		{"bad value keeps cache on", "cache:\n  enabled: [x]\n", "", true},
		{"missing key", "colors:\n  title: red\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := filepath.Join(t.TempDir(), "rowsync.yaml")
			require.NoError(t, os.WriteFile(cfg, []byte(tt.yaml), 0o600))
			t.Setenv("ROWSYNC_CFG_FILE", cfg)
			t.Setenv("ROWSYNC_CACHE", tt.env)
			config.Config = config.Type{}
			t.Cleanup(func() { config.Config = config.Type{} })

			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	dir := useTempCache(t)
	sub := []string{"snapshots"}

	_, found := Read(sub, "inbox")
	assert.False(t, found)

	require.NoError(t, Write(sub, "inbox", []byte("  [1,2]\n")))

	p, exists := EntryPath(sub, "inbox")
	assert.True(t, exists)
	assert.Equal(t, filepath.Join(dir, "snapshots", encodeKey("inbox")), p)

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	e, found := Read(sub, "inbox")
	require.True(t, found)
	assert.Equal(t, "inbox", e.Key)
	assert.Equal(t, []byte("[1,2]"), e.Data, "whitespace is trimmed")
	assert.False(t, e.ModTime.IsZero())

	require.NoError(t, Write(sub, "inbox", []byte("[3]")))
	e, _ = Read(sub, "inbox")
	assert.Equal(t, []byte("[3]"), e.Data, "writes overwrite")

	entries, err := os.ReadDir(filepath.Join(dir, "snapshots"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestDisabled(t *testing.T) {
	dir := useTempCache(t)
	t.Setenv("ROWSYNC_CACHE", "false")

	require.NoError(t, Write(nil, "k", []byte("v")))
	_, found := Read(nil, "k")
	assert.False(t, found)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemove(t *testing.T) {
	useTempCache(t)

	require.NoError(t, Write([]string{"s"}, "k", []byte("v")))
	require.NoError(t, Remove([]string{"s"}, "k"))
	_, found := Read([]string{"s"}, "k")
	assert.False(t, found)

	assert.NoError(t, Remove([]string{"s"}, "k"), "missing entry is fine")
}

func TestPurge(t *testing.T) {
	dir := useTempCache(t)

	require.NoError(t, Write([]string{"a"}, "old", []byte("1")))
	require.NoError(t, Write([]string{"a", "b"}, "older", []byte("2")))
	require.NoError(t, Write([]string{"a"}, "new", []byte("3")))
	require.NoError(t, Write([]string{"other"}, "old", []byte("4")))

	stale := time.Now().Add(-3 * time.Hour)
	for _, p := range []string{
		filepath.Join(dir, "a", encodeKey("old")),
		filepath.Join(dir, "a", "b", encodeKey("older")),
		filepath.Join(dir, "other", encodeKey("old")),
	} {
		require.NoError(t, os.Chtimes(p, stale, stale))
	}

	n, err := Purge([]string{"a"}, 0)
	require.NoError(t, err)
	assert.Zero(t, n, "zero hours disables purging")

	n, err = Purge([]string{"a"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, found := Read([]string{"a"}, "new")
	assert.True(t, found)
	_, found = Read([]string{"other"}, "old")
	assert.True(t, found, "purge is limited to subdirs")

	n, err = Purge([]string{"missing"}, 1)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("s3://bucket/items.json?versionId=1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, encodeKey("s3://bucket/items.json?versionId=1"))
	assert.NotEqual(t, a, encodeKey("s3://bucket/items.json?versionId=2"))
}
