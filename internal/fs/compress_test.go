package fs

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "app.log")
	dst := src + ".gz"
	require.NoError(t, os.WriteFile(src, []byte("payload payload payload"), 0o644))

	mtime := time.Now().Add(-72 * time.Hour)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	f := New()
	require.NoError(t, f.CompressFile(context.Background(), src, dst))

	// source untouched; the executor decides when to remove it
	assert.FileExists(t, src)
	require.FileExists(t, dst)

	// no dot-tmp residue
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	gzFile, err := os.Open(dst)
	require.NoError(t, err)
	defer gzFile.Close()
	r, err := gzip.NewReader(gzFile)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "payload payload payload", string(got))
	assert.Equal(t, "app.log", r.Name)

	// mtime carried over so retention keeps aging the compressed file
	st, err := os.Stat(dst)
	require.NoError(t, err)
	assert.WithinDuration(t, mtime, st.ModTime(), time.Second)
}

func TestCompressFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	f := New()
	err := f.CompressFile(context.Background(), filepath.Join(dir, "gone.log"), filepath.Join(dir, "gone.log.gz"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "gone.log.gz"))
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.log")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	info, err := New().Stat(path)
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.MTime.IsZero())
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.NoError(t, New().Remove(context.Background(), path))
	assert.NoFileExists(t, path)

	// a second remove is a permanent failure, not a retry loop
	require.Error(t, New().Remove(context.Background(), path))
}
