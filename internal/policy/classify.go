package policy

import (
	"path/filepath"
	"strings"

	"github.com/raoulx24/logkeeper/internal/candidate"
)

// Verdict is the classification outcome for one candidate.
type Verdict int

const (
	Skip Verdict = iota
	Compress
	Delete
)

func (v Verdict) String() string {
	switch v {
	case Compress:
		return "compress"
	case Delete:
		return "delete"
	default:
		return "skip"
	}
}

// Classify assigns a verdict to a candidate. Pure function of its inputs.
// Delete takes precedence over compress: a file past the delete threshold
// is removed even when it was never compressed, and compressed files past
// the threshold are deleted too.
func Classify(f candidate.File, p Policy, excluded bool) Verdict {
	if excluded {
		return Skip
	}
	if f.Age >= p.DeleteAfter {
		return Delete
	}
	if f.Age >= p.CompressAfter && !IsCompressed(f.Path) {
		return Compress
	}
	return Skip
}

// Excluded reports whether the file name contains any of the patterns as
// a literal, case-sensitive substring. An empty pattern set excludes nothing.
func Excluded(path string, patterns []string) bool {
	name := filepath.Base(path)
	for _, p := range patterns {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// IsCompressed reports whether the file already carries the compressed suffix.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedSuffix)
}
