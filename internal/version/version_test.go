package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestString(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	tests := []struct {
		version, commit, date string
		want                  string
	}{
		{"0.1.0-dev", "", "", "plcst 0.1.0-dev"},
		{"1.2.3", "abc123", "", "plcst 1.2.3 (abc123)"},
		{"1.2.3-rc.1", "abc123", "2026-01-15", "plcst 1.2.3-rc.1 (abc123) built 2026-01-15"},
		{"custom", "", "", "plcst custom"},
	}
	for _, tt := range tests {
		Version, GitCommit, BuildDate = tt.version, tt.commit, tt.date
		if got := String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
