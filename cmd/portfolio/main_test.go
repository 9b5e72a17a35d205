package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestContentCheckEmbedded(t *testing.T) {
	out, err := run(t, "content", "check")
	require.NoError(t, err)
	assert.Equal(t, "ok: 5 sections, 6 projects, 4 skill categories\n", out)
}

func TestContentCheckInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sections: []\n"), 0o644))
	_, err := run(t, "content", "check", path)
	assert.Error(t, err)
}

func TestStatsEmptyDatabase(t *testing.T) {
	out, err := run(t, "stats", "--db", filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(0), got["total_visitors"])
}
