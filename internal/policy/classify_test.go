package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raoulx24/logkeeper/internal/candidate"
	"github.com/raoulx24/logkeeper/internal/config"
)

const day = 24 * time.Hour

func testPolicy() Policy {
	return Policy{
		CompressAfter: 7 * day,
		DeleteAfter:   30 * day,
	}
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		age      time.Duration
		excluded bool
		want     Verdict
	}{
		{"fresh file", "c.log", 2 * day, false, Skip},
		{"just under compress threshold", "a.log", 7*day - time.Second, false, Skip},
		{"at compress threshold", "a.log", 7 * day, false, Compress},
		{"between thresholds", "a.log", 10 * day, false, Compress},
		{"just under delete threshold", "a.log", 30*day - time.Second, false, Compress},
		{"at delete threshold", "a.log", 30 * day, false, Delete},
		{"way past delete threshold", "a.log", 90 * day, false, Delete},
		{"compressed file between thresholds", "a.log.gz", 10 * day, false, Skip},
		{"compressed file past delete threshold", "b.log.gz", 40 * day, false, Delete},
		{"excluded old file", "auth.log", 90 * day, true, Skip},
		{"excluded compressed file", "auth.log.gz", 90 * day, true, Skip},
		{"zero age", "a.log", 0, false, Skip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := candidate.File{Path: "/logs/" + tt.path, Age: tt.age}
			assert.Equal(t, tt.want, Classify(f, testPolicy(), tt.excluded))
		})
	}
}

func TestClassifyEqualThresholds(t *testing.T) {
	// compressAfter == deleteAfter: delete wins at the shared boundary
	p := Policy{CompressAfter: 7 * day, DeleteAfter: 7 * day}

	f := candidate.File{Path: "/logs/a.log", Age: 7 * day}
	assert.Equal(t, Delete, Classify(f, p, false))

	f.Age = 7*day - time.Minute
	assert.Equal(t, Skip, Classify(f, p, false))
}

func TestExcluded(t *testing.T) {
	patterns := []string{"auth.log", "secure"}

	assert.True(t, Excluded("/var/log/auth.log", patterns))
	assert.True(t, Excluded("/var/log/auth.log.1", patterns))
	assert.True(t, Excluded("/var/log/secure-2024", patterns))
	assert.False(t, Excluded("/var/log/syslog", patterns))

	// matching is against the file name, not the full path
	assert.False(t, Excluded("/var/secure/app.log", patterns))

	// case-sensitive
	assert.False(t, Excluded("/var/log/AUTH.log", patterns))

	// empty set excludes nothing
	assert.False(t, Excluded("/var/log/auth.log", nil))

	// empty pattern matches nothing
	assert.False(t, Excluded("/var/log/syslog", []string{""}))
}

func TestIsCompressed(t *testing.T) {
	assert.True(t, IsCompressed("/logs/app.log.gz"))
	assert.False(t, IsCompressed("/logs/app.log"))
	assert.False(t, IsCompressed("/logs/app.gzip.log"))
}

func TestFromConfig(t *testing.T) {
	cfg := config.RetentionConfig{
		CompressAfterDays: 7,
		DeleteAfterDays:   30,
		Roots:             []string{"/logs"},
		ExcludePatterns:   []string{"auth"},
		MaxDepth:          1,
		Simulate:          true,
		Parallelism:       2,
	}

	p := FromConfig(cfg)

	assert.Equal(t, 7*day, p.CompressAfter)
	assert.Equal(t, 30*day, p.DeleteAfter)
	assert.True(t, p.Simulate)
	assert.Equal(t, 1, p.MaxDepth)

	// the policy is detached from the config slices
	cfg.Roots[0] = "/other"
	cfg.ExcludePatterns[0] = "other"
	assert.Equal(t, []string{"/logs"}, p.Roots)
	assert.Equal(t, []string{"auth"}, p.ExcludePatterns)
}
