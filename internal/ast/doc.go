// Package ast defines the typed syntax tree of Structured Text.
//
// Node categories are closed: Expr, Statement, TypeSpec, Initializer,
// DataType, Arg and Unit are implemented only by the types of this package.
// Every node embeds Meta, which carries its span and the comments and
// pragmas attached to it. Identifiers keep their spelling; use Canonical for
// case-insensitive comparison.
package ast
