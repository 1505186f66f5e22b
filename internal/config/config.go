package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Retention RetentionConfig `yaml:"retention"`
	Audit     AuditConfig     `yaml:"audit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Daemon    DaemonConfig    `yaml:"daemon"`
}

type RetentionConfig struct {
	CompressAfterDays int      `yaml:"compressAfterDays"`
	DeleteAfterDays   int      `yaml:"deleteAfterDays"`
	Roots             []string `yaml:"roots"`
	ExcludePatterns   []string `yaml:"excludePatterns"`
	MaxDepth          int      `yaml:"maxDepth"`
	Simulate          bool     `yaml:"simulate"`
	Parallelism       int      `yaml:"parallelism"` // max roots processed at once
}

type AuditConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "text"
}

type DaemonConfig struct {
	Schedule     string       `yaml:"schedule"`    // cron expression; empty = single run
	MetricsAddr  string       `yaml:"metricsAddr"` // e.g. ":9106"; empty = no metrics endpoint
	ConfigReload ReloadConfig `yaml:"configReload"`
}

type ReloadConfig struct {
	Mode           string        `yaml:"mode"`           // "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`   // e.g. 5s
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 500ms
}

// Default returns the configuration used when the file omits a field.
func Default() *Config {
	return &Config{
		Retention: RetentionConfig{
			CompressAfterDays: 7,
			DeleteAfterDays:   30,
			MaxDepth:          1,
			Parallelism:       4,
		},
		Audit: AuditConfig{
			Path: "logkeeper-audit.log",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Daemon: DaemonConfig{
			ConfigReload: ReloadConfig{
				Mode:           "auto",
				PollInterval:   5 * time.Second,
				DebounceWindow: 500 * time.Millisecond,
			},
		},
	}
}

// Validate collects every problem with the configuration instead of
// stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	r := c.Retention
	if r.CompressAfterDays < 0 {
		errs = append(errs, fmt.Errorf("retention.compressAfterDays must be >= 0, got %d", r.CompressAfterDays))
	}
	if r.DeleteAfterDays < r.CompressAfterDays {
		errs = append(errs, fmt.Errorf("retention.deleteAfterDays (%d) must be >= compressAfterDays (%d)",
			r.DeleteAfterDays, r.CompressAfterDays))
	}
	if len(r.Roots) == 0 {
		errs = append(errs, errors.New("retention.roots must list at least one directory"))
	}
	if r.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("retention.maxDepth must be >= 0, got %d", r.MaxDepth))
	}
	if r.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("retention.parallelism must be >= 1, got %d", r.Parallelism))
	}
	if c.Audit.Path == "" {
		errs = append(errs, errors.New("audit.path must not be empty"))
	}

	return errs
}
