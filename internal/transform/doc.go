// Package transform turns a concrete syntax tree into the typed AST and
// attaches the comment and pragma table to the resulting nodes.
//
// Each cst.Rule has exactly one reduction. Children are reduced first and the
// reduction type-checks what it receives; an unexpected shape is an internal
// defect reported as *TransformError.
//
// Comment attachment runs in two steps. List reductions give every sibling
// the unclaimed records in the gap before it and a trailing comment on the
// same line, widening the sibling span to cover them. After the tree is
// complete every node, deepest first, claims the records left inside its
// span. The root spans the whole text, so each record ends on exactly one node.
package transform
