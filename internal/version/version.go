package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Overridden at build time via -ldflags "-X plcst/internal/version.Version=...".
var (
	Version    = "0.1.0-dev"
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored returns Version with major, minor and patch in their own colours.
// Colour is dropped when color.NoColor is set.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// String is the full `plcst version` line.
func String() string {
	s := "plcst " + Colored()
	if GitCommit != "" {
		s += fmt.Sprintf(" (%s)", GitCommit)
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
