// Package comments splits Structured Text into a comment/pragma table and
// clean text.
//
// Recognised forms: line comments (// ...), block comments ((* ... *) and
// /* ... */, both nestable), and pragmas ({ ... }, nested braces counted).
// String literals ('...' and "..." with $ escapes) are skipped so comment
// openers inside them are not treated as comments.
//
// Every removed byte is replaced by a space except newlines, so the clean
// text has the same length and line structure as the input and every offset
// into it is also an offset into the original.
package comments
