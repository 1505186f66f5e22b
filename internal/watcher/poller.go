package watcher

import (
	"context"
	"time"
)

// StartPolling stats the config file on a fixed interval. It is the
// fallback reload strategy when fsnotify is unavailable or the probe
// found it unreliable for the config directory.
func (w *Watcher) StartPolling(ctx context.Context) {
	w.mu.RLock()
	interval := w.interval
	w.mu.RUnlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.detect()
		}
	}
}
