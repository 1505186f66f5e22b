package walker

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/logkeeper/internal/candidate"
	"github.com/raoulx24/logkeeper/internal/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collect(t *testing.T, root string, maxDepth int) []string {
	t.Helper()
	w := New(logging.Nop{})
	var got []string
	err := w.Enumerate(context.Background(), root, maxDepth, time.Now(), func(f candidate.File) {
		got = append(got, f.Path)
	})
	require.NoError(t, err)
	return got
}

func TestEnumerateDepthBounds(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.log"), "a")
	writeFile(t, filepath.Join(root, "sub", "mid.log"), "b")
	writeFile(t, filepath.Join(root, "sub", "deep", "low.log"), "c")

	t.Run("maxDepth=0 yields root files only", func(t *testing.T) {
		got := collect(t, root, 0)
		assert.Equal(t, []string{filepath.Join(root, "top.log")}, got)
	})

	t.Run("maxDepth=1 includes one level of subdirs", func(t *testing.T) {
		got := collect(t, root, 1)
		assert.ElementsMatch(t, []string{
			filepath.Join(root, "top.log"),
			filepath.Join(root, "sub", "mid.log"),
		}, got)
	})

	t.Run("maxDepth=2 reaches the deep file", func(t *testing.T) {
		got := collect(t, root, 2)
		assert.Len(t, got, 3)
	})
}

func TestEnumerateSkipsNonRegularFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.log"), "x")
	require.NoError(t, os.Symlink(
		filepath.Join(root, "real.log"),
		filepath.Join(root, "link.log")))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.log"), 0o755))

	got := collect(t, root, 0)
	assert.Equal(t, []string{filepath.Join(root, "real.log")}, got)
}

func TestEnumerateMissingRoot(t *testing.T) {
	w := New(logging.Nop{})
	err := w.Enumerate(context.Background(), filepath.Join(t.TempDir(), "gone"), 1, time.Now(),
		func(candidate.File) { t.Fatal("nothing should be yielded") })
	require.ErrorIs(t, err, ErrRootMissing)
}

func TestEnumerateRootIsFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "not-a-dir")
	writeFile(t, path, "x")

	w := New(logging.Nop{})
	err := w.Enumerate(context.Background(), path, 1, time.Now(), func(candidate.File) {})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRootMissing)
}

func TestEnumerateUnreadableRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits work differently on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores permission bits")
	}

	root := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(root, 0o755))
	writeFile(t, filepath.Join(root, "hidden.log"), "x")
	require.NoError(t, os.Chmod(root, 0o000))
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	w := New(logging.Nop{})
	err := w.Enumerate(context.Background(), root, 1, time.Now(),
		func(candidate.File) { t.Fatal("nothing should be yielded") })
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRootMissing)
	assert.Contains(t, err.Error(), "reading root")
}

func TestEnumerateHonorsCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.log"), "a")
	writeFile(t, filepath.Join(root, "b.log"), "b")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := New(logging.Nop{})
	var yielded int
	err := w.Enumerate(ctx, root, 0, time.Now(), func(candidate.File) { yielded++ })
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, yielded)
}

func TestDirSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.log"), "12345")
	writeFile(t, filepath.Join(root, "sub", "b.log"), "123")

	// DirSize counts all depths, regardless of the scan's maxDepth
	assert.Equal(t, int64(8), DirSize(root))
	assert.Equal(t, int64(0), DirSize(filepath.Join(root, "gone")))
}
