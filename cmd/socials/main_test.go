package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clapiton/socials/pkg/pipeline"
)

// writeConfig makes a config file with a database inside a temp dir
func writeConfig(t *testing.T, listen string) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`
server:
  listen: %q
database:
  dsn: "file:%s?_pragma=busy_timeout(5000)&_txlock=immediate"
`, listen, filepath.Join(dir, "socials.db"))
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func TestRun_MissingConfig(t *testing.T) {
	err := run(context.Background(), Opts{Config: "non-existent-config.yml"}, "server", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	err := run(context.Background(), Opts{Config: path}, "server", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run(context.Background(), Opts{Config: writeConfig(t, ":0")}, "dance", io.Discard)
	assert.ErrorContains(t, err, `unknown command "dance"`)
}

func TestRun_Import(t *testing.T) {
	path := writeConfig(t, ":0")

	var out bytes.Buffer
	opts := Opts{Config: path, Import: ImportCmd{Text: "our crm keeps losing contacts", Author: "bob", Label: "call"}}
	require.NoError(t, run(context.Background(), opts, "import", &out))
	assert.Equal(t, "imported 1 posts, 0 duplicates\n", out.String())

	csvPath := filepath.Join(t.TempDir(), "posts.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("author,content\nann,invoicing is killing me\nbob,\n"), 0o600))
	out.Reset()
	opts = Opts{Config: path, Import: ImportCmd{File: csvPath}}
	require.NoError(t, run(context.Background(), opts, "import", &out))
	assert.Contains(t, out.String(), "imported 1 of")

	tests := []ImportCmd{{}, {File: csvPath, Text: "both"}, {Text: "   "}}
	for _, cmd := range tests {
		err := run(context.Background(), Opts{Config: path, Import: cmd}, "import", io.Discard)
		assert.ErrorContains(t, err, "exactly one of --file or --text")
	}

	err := run(context.Background(), Opts{Config: path, Import: ImportCmd{File: "/no/such/file.csv"}}, "import", io.Discard)
	assert.ErrorContains(t, err, "open /no/such/file.csv")
}

func TestRun_AnalyzeWithoutClassifier(t *testing.T) {
	err := run(context.Background(), Opts{Config: writeConfig(t, ":0"), Analyze: AnalyzeCmd{Limit: 5}}, "analyze", io.Discard)
	require.ErrorIs(t, err, pipeline.ErrNoClassifier)
}

func TestRun_ServerStartStop(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: writeConfig(t, addr)}, "server", io.Discard) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/api/v1/status")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	resp, err := http.Get("http://" + addr + "/api/v1/settings")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "confidence_threshold")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}
