// Package executor performs the compress and delete actions decided by the
// classifier. Simulate mode is its single behavioral switch: a simulated
// executor produces the same results without touching the filesystem.
package executor

import (
	"context"
	"fmt"

	"github.com/raoulx24/logkeeper/internal/candidate"
	"github.com/raoulx24/logkeeper/internal/fs"
	"github.com/raoulx24/logkeeper/internal/logging"
	"github.com/raoulx24/logkeeper/internal/policy"
)

// Result is the outcome of executing one verdict. Immutable once produced.
type Result struct {
	Path           string
	Verdict        policy.Verdict
	Success        bool
	Simulated      bool
	BytesReclaimed int64
	Message        string
}

// Executor mutates the filesystem (or pretends to) for one candidate at a time.
type Executor struct {
	fs       fs.FS
	log      logging.Logger
	simulate bool
}

func New(filesystem fs.FS, log logging.Logger, simulate bool) *Executor {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Executor{
		fs:       filesystem,
		log:      log,
		simulate: simulate,
	}
}

// Execute applies the verdict to the file. Filesystem errors downgrade the
// result to a failure; they never abort the run.
func (e *Executor) Execute(ctx context.Context, f candidate.File, verdict policy.Verdict) Result {
	switch verdict {
	case policy.Compress:
		return e.compress(ctx, f)
	case policy.Delete:
		return e.delete(ctx, f)
	default:
		return Result{
			Path:      f.Path,
			Verdict:   policy.Skip,
			Success:   true,
			Simulated: e.simulate,
			Message:   "skipped",
		}
	}
}

// compress replaces the file with a gzip encoding of itself. The compressed
// file is finalized by rename before the original is removed, so a crash
// leaves either the untouched original or both files, never a claimed
// success with a partial compressed file.
func (e *Executor) compress(ctx context.Context, f candidate.File) Result {
	dst := f.Path + policy.CompressedSuffix

	if e.simulate {
		return Result{
			Path:      f.Path,
			Verdict:   policy.Compress,
			Success:   true,
			Simulated: true,
			Message:   fmt.Sprintf("would compress to %s", dst),
		}
	}

	if err := e.fs.CompressFile(ctx, f.Path, dst); err != nil {
		return e.failure(f, policy.Compress, fmt.Errorf("compressing: %w", err))
	}

	compressed, err := e.fs.Stat(dst)
	if err != nil {
		return e.failure(f, policy.Compress, fmt.Errorf("stat compressed file: %w", err))
	}

	if err := e.fs.Remove(ctx, f.Path); err != nil {
		// The compressed file exists but the original is still there.
		// Report failure; the next run retries and overwrites dst.
		return e.failure(f, policy.Compress, fmt.Errorf("removing original: %w", err))
	}

	return Result{
		Path:           f.Path,
		Verdict:        policy.Compress,
		Success:        true,
		BytesReclaimed: f.Size - compressed.Size,
		Message:        fmt.Sprintf("compressed to %s", dst),
	}
}

// delete removes the file. The size snapshot was taken when the candidate
// was built, before removal.
func (e *Executor) delete(ctx context.Context, f candidate.File) Result {
	if e.simulate {
		return Result{
			Path:      f.Path,
			Verdict:   policy.Delete,
			Success:   true,
			Simulated: true,
			Message:   "would delete",
		}
	}

	if err := e.fs.Remove(ctx, f.Path); err != nil {
		return e.failure(f, policy.Delete, fmt.Errorf("removing: %w", err))
	}

	return Result{
		Path:           f.Path,
		Verdict:        policy.Delete,
		Success:        true,
		BytesReclaimed: f.Size,
		Message:        "deleted",
	}
}

func (e *Executor) failure(f candidate.File, verdict policy.Verdict, err error) Result {
	e.log.Error("action failed", "path", f.Path, "verdict", verdict.String(), "error", err)
	return Result{
		Path:    f.Path,
		Verdict: verdict,
		Message: err.Error(),
	}
}
