// Package watcher monitors the configuration file and triggers hot reloads
// while the daemon is running.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/raoulx24/logkeeper/internal/config"
	"github.com/raoulx24/logkeeper/internal/fsprobe"
	"github.com/raoulx24/logkeeper/internal/logging"
)

// Watcher observes the config file and invokes onChange when it is updated.
type Watcher struct {
	mu sync.RWMutex

	path     string
	mode     string
	interval time.Duration
	debounce time.Duration

	log logging.Logger

	lastModTime time.Time

	onChange func()
}

// New creates a watcher for the given config file.
func New(path string, cfg config.ReloadConfig, log logging.Logger, onChange func()) *Watcher {
	return &Watcher{
		path:     path,
		mode:     cfg.Mode,
		interval: cfg.PollInterval,
		debounce: cfg.DebounceWindow,
		log:      log,
		onChange: onChange,
	}
}

// Start chooses the correct watching strategy based on config.
func (w *Watcher) Start(ctx context.Context) error {
	switch w.mode {
	case "fsnotify":
		return w.StartFsNotify(ctx)

	case "poll":
		w.StartPolling(ctx)
		return nil

	case "auto":
		res := fsprobe.Probe(filepath.Dir(w.path))
		if res.FsnotifySupported {
			return w.StartFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled, falling back to polling", "reason", res.Reason)
		w.StartPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown mode %q", w.mode)
	}
}
