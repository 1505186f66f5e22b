// Package policy holds the retention policy and the verdict logic that
// decides what happens to each candidate file.
package policy

import (
	"time"

	"github.com/raoulx24/logkeeper/internal/config"
)

// CompressedSuffix is the suffix of files already in compressed form.
// Such files are never re-offered compression.
const CompressedSuffix = ".gz"

// Policy is the immutable per-run retention configuration.
type Policy struct {
	CompressAfter   time.Duration
	DeleteAfter     time.Duration
	ExcludePatterns []string
	Roots           []string
	MaxDepth        int
	Simulate        bool
	Parallelism     int
}

// FromConfig builds a Policy from the retention section of the config.
func FromConfig(cfg config.RetentionConfig) Policy {
	const day = 24 * time.Hour
	return Policy{
		CompressAfter:   time.Duration(cfg.CompressAfterDays) * day,
		DeleteAfter:     time.Duration(cfg.DeleteAfterDays) * day,
		ExcludePatterns: append([]string(nil), cfg.ExcludePatterns...),
		Roots:           append([]string(nil), cfg.Roots...),
		MaxDepth:        cfg.MaxDepth,
		Simulate:        cfg.Simulate,
		Parallelism:     cfg.Parallelism,
	}
}
