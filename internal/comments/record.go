package comments

import (
	"strings"

	"plcst/internal/source"
)

// Kind distinguishes comments from pragmas.
type Kind uint8

const (
	KindComment Kind = iota
	KindPragma
)

func (k Kind) String() string {
	if k == KindPragma {
		return "pragma"
	}
	return "comment"
}

// Record is one comment or pragma with its verbatim text.
type Record struct {
	Span source.Span
	Kind Kind
	Text string
}

// IsLine reports whether the record is a // comment that runs to the end of its line.
func (r Record) IsLine() bool {
	return r.Kind == KindComment && strings.HasPrefix(r.Text, "//")
}

// Body returns the text between the delimiters.
func (r Record) Body() string {
	t := r.Text
	switch {
	case r.Kind == KindPragma:
		t = strings.TrimSuffix(strings.TrimPrefix(t, "{"), "}")
	case strings.HasPrefix(t, "//"):
		t = t[2:]
	case strings.HasPrefix(t, "(*"):
		t = strings.TrimSuffix(t[2:], "*)")
	case strings.HasPrefix(t, "/*"):
		t = strings.TrimSuffix(t[2:], "*/")
	}
	return strings.TrimSpace(t)
}

// Attribute parses {attribute 'name'} and {attribute 'name' := 'value'} pragmas.
func (r Record) Attribute() (name, value string, ok bool) {
	if r.Kind != KindPragma {
		return "", "", false
	}
	body := r.Body()
	rest, found := cutKeyword(body, "attribute")
	if !found {
		return "", "", false
	}
	name, rest, ok = quoted(rest)
	if !ok {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":=") {
		return name, "", rest == ""
	}
	value, rest, ok = quoted(strings.TrimSpace(rest[2:]))
	return name, value, ok && strings.TrimSpace(rest) == ""
}

func cutKeyword(s, kw string) (string, bool) {
	if len(s) < len(kw) || !strings.EqualFold(s[:len(kw)], kw) {
		return "", false
	}
	rest := s[len(kw):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\'' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func quoted(s string) (val, rest string, ok bool) {
	if !strings.HasPrefix(s, "'") {
		return "", s, false
	}
	end := strings.IndexByte(s[1:], '\'')
	if end < 0 {
		return "", s, false
	}
	return s[1 : end+1], s[end+2:], true
}
