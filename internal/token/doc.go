// Package token defines lexical token kinds for IEC 61131-3 Structured Text.
// Invariants:
//   - Token.Text is a slice of the clean source text (comments already blanked).
//   - Token.Span matches Text exactly (Start..End).
//   - Keywords are case-insensitive; Text keeps the original spelling.
//   - Elementary type names (INT, BOOL, LREAL, ...) are identifiers; only STRING and
//     WSTRING are keywords because they take a length suffix.
//   - Comments and pragmas never reach the token stream, they live in the comment table.
package token
