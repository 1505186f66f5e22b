// Package walker enumerates candidate files under configured roots.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/raoulx24/logkeeper/internal/candidate"
	"github.com/raoulx24/logkeeper/internal/logging"
)

// ErrRootMissing marks a configured root that does not exist. The run
// reports it and continues with the next root.
var ErrRootMissing = errors.New("directory not found")

type Walker struct {
	log logging.Logger
}

func New(log logging.Logger) *Walker {
	return &Walker{log: log}
}

// Enumerate yields every regular file under root at depth 0..maxDepth,
// where depth 0 is root itself. Directories and symlinks are not yielded.
// Entries that disappear between listing and stat are omitted silently.
func (w *Walker) Enumerate(ctx context.Context, root string, maxDepth int, runStart time.Time, yield func(candidate.File)) error {
	st, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootMissing, root)
		}
		return fmt.Errorf("stat root %s: %w", root, err)
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	return w.walkDir(ctx, root, 0, maxDepth, runStart, yield)
}

func (w *Walker) walkDir(ctx context.Context, dir string, depth, maxDepth int, runStart time.Time, yield func(candidate.File)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// vanished since listing
			return nil
		}
		if depth == 0 {
			// an unreadable root is reported, not silently empty
			return fmt.Errorf("reading root %s: %w", dir, err)
		}
		w.log.Warn("failed to read dir", "dir", dir, "error", err)
		return nil
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		full := filepath.Join(dir, e.Name())

		if e.IsDir() {
			if depth < maxDepth {
				if err := w.walkDir(ctx, full, depth+1, maxDepth, runStart, yield); err != nil {
					return err
				}
			}
			continue
		}

		// regular files only: no symlinks, devices, sockets
		if !e.Type().IsRegular() {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// vanished between listing and stat
			continue
		}

		yield(candidate.FromFileInfo(full, info, runStart))
	}

	return nil
}

// DirSize returns the total size of all regular files under root, at any
// depth. Used for the before/after usage snapshots. Unreadable entries
// contribute zero.
func DirSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	return total
}
