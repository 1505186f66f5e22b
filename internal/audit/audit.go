// Package audit appends one timestamped line per run event to a durable
// file. The format is plain key=value pairs so the record stays greppable:
//
//	ts=2026-01-09T03:00:01Z run=5f1c... event=delete path=/logs/a.log outcome=ok freed=4096
//
// Write failures are surfaced through the error callback and never stop
// a run.
package audit

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Log struct {
	mu      sync.Mutex
	f       *os.File
	runID   string
	onError func(error)
}

// Open opens (or creates) the audit file for appending and assigns the run
// a fresh correlation id. A nil onError discards write failures.
func Open(path string, onError func(error)) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Log{
		f:       f,
		runID:   uuid.NewString(),
		onError: onError,
	}, nil
}

// RunID returns the correlation id stamped on every line of this run.
func (l *Log) RunID() string {
	return l.runID
}

// Event appends one line for the given event kind. kv holds alternating
// key/value pairs; values containing whitespace are quoted.
func (l *Log) Event(kind string, kv ...any) {
	var b strings.Builder
	fmt.Fprintf(&b, "ts=%s run=%s event=%s",
		time.Now().UTC().Format(time.RFC3339), l.runID, kind)

	for i := 0; i+1 < len(kv); i += 2 {
		val := fmt.Sprintf("%v", kv[i+1])
		if strings.ContainsAny(val, " \t") {
			val = fmt.Sprintf("%q", val)
		}
		fmt.Fprintf(&b, " %v=%s", kv[i], val)
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.f.WriteString(b.String()); err != nil {
		l.onError(fmt.Errorf("audit write: %w", err))
	}
}

// Close flushes and closes the audit file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.f.Sync(); err != nil {
		l.onError(fmt.Errorf("audit sync: %w", err))
	}
	return l.f.Close()
}
