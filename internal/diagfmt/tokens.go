package diagfmt

import (
	"fmt"
	"io"

	"plcst/internal/comments"
	"plcst/internal/source"
	"plcst/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind" yaml:"kind"`
	Text string      `json:"text,omitempty" yaml:"text,omitempty"`
	Span source.Span `json:"span" yaml:"span"`
}

type CommentOutput struct {
	Kind string      `json:"kind" yaml:"kind"`
	Text string      `json:"text" yaml:"text"`
	Span source.Span `json:"span" yaml:"span"`
}

type TokensOutput struct {
	Tokens   []TokenOutput   `json:"tokens" yaml:"tokens"`
	Comments []CommentOutput `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// FormatTokensPretty выводит токены и комментарии в порядке следования в тексте
func FormatTokensPretty(w io.Writer, tokens []token.Token, recs []comments.Record, fs *source.FileSet) error {
	n, c := 0, 0
	for n < len(tokens) || c < len(recs) {
		if c < len(recs) && (n == len(tokens) || recs[c].Span.Start < tokens[n].Span.Start) {
			r := recs[c]
			startPos, endPos := fs.Resolve(r.Span)
			if _, err := fmt.Fprintf(w, "   : %-15s %q at %d:%d-%d:%d\n", r.Kind, r.Text,
				startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
				return err
			}
			c++
			continue
		}
		tok := tokens[n]
		n++
		startPos, endPos := fs.Resolve(tok.Span)
		line := fmt.Sprintf("%3d: %-15s", n, tok.Kind.String())
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func buildTokens(tokens []token.Token, recs []comments.Record) TokensOutput {
	out := TokensOutput{Tokens: make([]TokenOutput, 0, len(tokens))}
	for _, tok := range tokens {
		out.Tokens = append(out.Tokens, TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span})
	}
	for _, r := range recs {
		out.Comments = append(out.Comments, CommentOutput{Kind: r.Kind.String(), Text: r.Text, Span: r.Span})
	}
	return out
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, recs []comments.Record) error {
	return encodeJSON(w, buildTokens(tokens, recs))
}

func FormatTokensYAML(w io.Writer, tokens []token.Token, recs []comments.Record) error {
	return encodeYAML(w, buildTokens(tokens, recs))
}
