package supervisor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatchScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ml_server.py")
	require.NoError(t, os.WriteFile(script, []byte("print('v1')\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := WatchScript(ctx, script, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(script, []byte("print('v2')\n"), 0o644))

	select {
	case <-events:
	case <-time.After(3 * time.Second):
		t.Fatal("no event after script change")
	}
}

func TestWatchScript_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ml_server.py")
	require.NoError(t, os.WriteFile(script, []byte("print('v1')\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := WatchScript(ctx, script, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.py"), []byte("pass\n"), 0o644))

	select {
	case <-events:
		t.Fatal("unexpected event for sibling file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatchScript_MissingDir(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := WatchScript(ctx, filepath.Join(t.TempDir(), "missing", "ml_server.py"), zap.NewNop())
	require.Error(t, err)
}
