package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.json")

	var o opts
	o.Args.Output = out
	require.NoError(t, run(o))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_attempts")
	assert.Contains(t, string(data), "mastodon")

	o.Check = true
	require.NoError(t, run(o), "freshly written schema is up to date")

	require.NoError(t, os.WriteFile(out, []byte(`{"stale":true}`), 0o600))
	assert.ErrorContains(t, run(o), "is stale")

	o.Args.Output = filepath.Join(t.TempDir(), "missing.json")
	assert.ErrorContains(t, run(o), "read")
}
