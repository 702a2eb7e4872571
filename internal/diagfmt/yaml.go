package diagfmt

import (
	"io"

	"gopkg.in/yaml.v3"

	"plcst/internal/diag"
	"plcst/internal/source"
)

// YAML writes the same document as JSON in YAML form.
func YAML(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return encodeYAML(w, BuildDiagnosticsOutput(bag, fs, opts))
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
