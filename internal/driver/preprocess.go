package driver

import (
	"fmt"
	"slices"
	"strings"

	"plcst/internal/source"
)

// preprocessors are the named rewrites accepted in plcst.toml [parse].preprocessors
// and by --preprocess.
var preprocessors = map[string]Preprocessor{
	"normalize": source.NormalizeString,
	"tabs-to-spaces": func(s string) string {
		return strings.ReplaceAll(s, "\t", "    ")
	},
	"strip-trailing-whitespace": func(s string) string {
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimRight(l, " \t")
		}
		return strings.Join(lines, "\n")
	},
}

// LookupPreprocessors resolves names in order.
func LookupPreprocessors(names []string) ([]Preprocessor, error) {
	out := make([]Preprocessor, 0, len(names))
	for _, name := range names {
		pp, ok := preprocessors[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown preprocessor %q (known: %s)", name, strings.Join(PreprocessorNames(), ", "))
		}
		out = append(out, pp)
	}
	return out, nil
}

// PreprocessorNames lists the registered names, sorted.
func PreprocessorNames() []string {
	names := make([]string, 0, len(preprocessors))
	for n := range preprocessors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
