// Package report accumulates per-run counters and renders the final
// before/after usage summary handed to the alerting collaborator.
package report

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/raoulx24/logkeeper/internal/executor"
	"github.com/raoulx24/logkeeper/internal/policy"
)

// RootSnapshot is the before/after size of one configured root.
type RootSnapshot struct {
	Root        string
	BytesBefore int64
	BytesAfter  int64
}

// Summary is the accumulator for one run. All mutation goes through the
// mutex; the runner is the only writer once the run finishes.
type Summary struct {
	mu sync.Mutex

	RunID    string
	Simulate bool
	Started  time.Time
	Finished time.Time

	Compressed int
	Deleted    int
	Skipped    int
	Failed     int
	BytesFreed int64

	Roots []RootSnapshot
	Notes []string
}

func New(runID string, simulate bool) *Summary {
	return &Summary{
		RunID:    runID,
		Simulate: simulate,
		Started:  time.Now(),
	}
}

// Add folds one action result into the totals.
func (s *Summary) Add(res executor.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !res.Success {
		s.Failed++
		return
	}

	switch res.Verdict {
	case policy.Compress:
		s.Compressed++
	case policy.Delete:
		s.Deleted++
	default:
		s.Skipped++
	}
	s.BytesFreed += res.BytesReclaimed
}

// AddNote records a non-fatal observation, e.g. a missing root.
func (s *Summary) AddNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notes = append(s.Notes, note)
}

// AddRoot records the before/after snapshot of one root.
func (s *Summary) AddRoot(snap RootSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Roots = append(s.Roots, snap)
}

// Finish stamps the end time.
func (s *Summary) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Finished = time.Now()
}

// Render produces the human-readable payload for the notifier. The system
// does not deliver it anywhere itself.
func (s *Summary) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "retention run %s", s.RunID)
	if s.Simulate {
		b.WriteString(" (simulated)")
	}
	fmt.Fprintf(&b, "\n  compressed: %d  deleted: %d  skipped: %d  failed: %d\n",
		s.Compressed, s.Deleted, s.Skipped, s.Failed)

	freed := s.BytesFreed
	if freed < 0 {
		freed = 0
	}
	fmt.Fprintf(&b, "  space freed: %s\n", humanize.IBytes(uint64(freed)))

	for _, r := range s.Roots {
		fmt.Fprintf(&b, "  %s: %s -> %s\n", r.Root,
			humanize.IBytes(uint64(r.BytesBefore)), humanize.IBytes(uint64(r.BytesAfter)))
	}
	for _, n := range s.Notes {
		fmt.Fprintf(&b, "  note: %s\n", n)
	}

	if !s.Finished.IsZero() {
		fmt.Fprintf(&b, "  duration: %s\n", s.Finished.Sub(s.Started).Round(time.Millisecond))
	}

	return b.String()
}
