// Package runner orchestrates one retention run: enumerate candidates per
// root, route each through exclusion filter and classifier, execute the
// verdict, and accumulate everything into a run summary.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/raoulx24/logkeeper/internal/audit"
	"github.com/raoulx24/logkeeper/internal/candidate"
	"github.com/raoulx24/logkeeper/internal/config"
	"github.com/raoulx24/logkeeper/internal/executor"
	"github.com/raoulx24/logkeeper/internal/fs"
	"github.com/raoulx24/logkeeper/internal/logging"
	"github.com/raoulx24/logkeeper/internal/metrics"
	"github.com/raoulx24/logkeeper/internal/policy"
	"github.com/raoulx24/logkeeper/internal/report"
	"github.com/raoulx24/logkeeper/internal/walker"
)

// Runner executes retention runs. It holds no state between runs other
// than configuration; each Run starts a fresh summary.
type Runner struct {
	mu        sync.RWMutex
	pol       policy.Policy
	auditPath string

	fs      fs.FS
	log     logging.Logger
	walk    *walker.Walker
	metrics *metrics.Metrics
}

func New(cfg *config.Config, log logging.Logger, filesystem fs.FS) *Runner {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Runner{
		pol:       policy.FromConfig(cfg.Retention),
		auditPath: cfg.Audit.Path,
		fs:        filesystem,
		log:       log,
		walk:      walker.New(log),
	}
}

// WithMetrics attaches run counters (daemon mode).
func (r *Runner) WithMetrics(m *metrics.Metrics) *Runner {
	r.metrics = m
	return r
}

// UpdateConfig hot-reloads the policy for subsequent runs.
func (r *Runner) UpdateConfig(cfg *config.Config) {
	r.mu.Lock()
	r.pol = policy.FromConfig(cfg.Retention)
	r.auditPath = cfg.Audit.Path
	r.mu.Unlock()
}

// Run performs one synchronous retention pass. It returns an error only
// when the run could not start at all; per-file failures are folded into
// the summary. Cancellation finishes the in-flight action, stops before
// the next candidate, and still produces a summary.
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	r.mu.RLock()
	pol := r.pol
	auditPath := r.auditPath
	r.mu.RUnlock()

	if len(pol.Roots) == 0 {
		return nil, errors.New("no roots configured")
	}
	if pol.DeleteAfter < pol.CompressAfter {
		return nil, fmt.Errorf("invalid policy: deleteAfter (%s) < compressAfter (%s)",
			pol.DeleteAfter, pol.CompressAfter)
	}
	if pol.Parallelism < 1 {
		return nil, fmt.Errorf("invalid policy: parallelism must be >= 1, got %d", pol.Parallelism)
	}

	auditLog, err := audit.Open(auditPath, func(err error) {
		r.log.Warn("audit write failed", "error", err)
	})
	if err != nil {
		return nil, err
	}
	defer auditLog.Close()

	runStart := time.Now()
	sum := report.New(auditLog.RunID(), pol.Simulate)
	exec := executor.New(r.fs, r.log, pol.Simulate)

	r.log.Info("starting retention run",
		"run", auditLog.RunID(), "roots", len(pol.Roots), "simulate", pol.Simulate)
	auditLog.Event("run_start", "roots", len(pol.Roots), "simulate", pol.Simulate)

	before := make([]int64, len(pol.Roots))
	for i, root := range pol.Roots {
		before[i] = walker.DirSize(root)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pol.Parallelism)
	for _, root := range pol.Roots {
		root := root
		g.Go(func() error {
			return r.processRoot(gctx, root, pol, runStart, exec, sum, auditLog)
		})
	}

	runErr := g.Wait()

	for i, root := range pol.Roots {
		sum.AddRoot(report.RootSnapshot{
			Root:        root,
			BytesBefore: before[i],
			BytesAfter:  walker.DirSize(root),
		})
	}
	sum.Finish()

	status := "completed"
	if runErr != nil {
		// only context errors propagate out of processRoot
		status = "cancelled"
		r.log.Warn("run cancelled", "run", auditLog.RunID(), "error", runErr)
	}

	auditLog.Event("run_end",
		"status", status,
		"compressed", sum.Compressed,
		"deleted", sum.Deleted,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"freed", sum.BytesFreed)

	r.log.Info("retention run finished",
		"run", auditLog.RunID(),
		"status", status,
		"compressed", sum.Compressed,
		"deleted", sum.Deleted,
		"failed", sum.Failed,
		"freed", sum.BytesFreed)

	if r.metrics != nil {
		r.metrics.ObserveRun(sum, status)
	}

	return sum, nil
}

// processRoot enumerates one root and handles every yielded candidate in
// strict classify-then-execute sequence.
func (r *Runner) processRoot(ctx context.Context, root string, pol policy.Policy, runStart time.Time,
	exec *executor.Executor, sum *report.Summary, auditLog *audit.Log) error {

	err := r.walk.Enumerate(ctx, root, pol.MaxDepth, runStart, func(f candidate.File) {
		excluded := policy.Excluded(f.Path, pol.ExcludePatterns)
		verdict := policy.Classify(f, pol, excluded)
		res := exec.Execute(ctx, f, verdict)
		sum.Add(res)

		switch {
		case !res.Success:
			auditLog.Event("fail", "path", res.Path, "action", res.Verdict.String(), "outcome", res.Message)
		case res.Verdict == policy.Skip:
			r.log.Debug("skipping", "path", res.Path, "excluded", excluded)
		default:
			auditLog.Event(res.Verdict.String(), "path", res.Path, "outcome", res.Message, "freed", res.BytesReclaimed)
		}
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		// missing root or unreadable root: that root contributes nothing,
		// the run goes on
		r.log.Warn("root skipped", "root", root, "error", err)
		sum.AddNote(err.Error())
		auditLog.Event("note", "outcome", err.Error())
		return nil
	}
}
