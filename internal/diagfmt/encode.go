package diagfmt

import (
	"fmt"
	"io"
)

// Encode writes v as "json" or "yaml".
func Encode(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		return encodeJSON(w, v)
	case "yaml":
		return encodeYAML(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
