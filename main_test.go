// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/rowsync/internal/config"
)

func TestHandleVersion(t *testing.T) {
	var buf bytes.Buffer

	assert.False(t, handleVersion([]string{"rowsync", "diff"}, &buf))
	assert.Empty(t, buf.String())

	assert.True(t, handleVersion([]string{"rowsync", "-v"}, &buf))
	assert.Contains(t, buf.String(), "rowsync ")
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"rowsync", "--help"}, handleNakedCommand([]string{"rowsync"}))
	assert.Equal(t, []string{"rowsync", "diff"}, handleNakedCommand([]string{"rowsync", "diff"}))
}

func TestProcessSetOnly(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "rowsync.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
diff:
  ci:
    - --output json
    - --titles
  one: --key uid
`), 0o600))
	t.Setenv("ROWSYNC_CFG_FILE", cfg)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "no set",
			args: []string{"rowsync", "diff", "a.json", "b.json"},
			want: []string{"rowsync", "diff", "a.json", "b.json"},
		},
		{
			name: "too short",
			args: []string{"rowsync", "diff"},
			want: []string{"rowsync", "diff"},
		},
		{
			name: "set expanded in place",
			args: []string{"rowsync", "diff", "@ci", "a.json", "b.json"},
			want: []string{"rowsync", "diff", "--output", "json", "--titles", "a.json", "b.json"},
		},
		{
			name: "scalar set",
			args: []string{"rowsync", "diff", "a.json", "@one", "b.json"},
			want: []string{"rowsync", "diff", "a.json", "--key", "uid", "b.json"},
		},
		{
			name: "unknown set is dropped",
			args: []string{"rowsync", "diff", "@nope", "a.json"},
			want: []string{"rowsync", "diff", "a.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, processSetOnly(tt.args))
		})
	}
}
