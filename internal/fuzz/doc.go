// Package fuzztests houses Go fuzz harnesses for the front half of the
// pipeline: comment extraction, lexing, the grammar engine and the transformer.
// They guard against panics, hangs and broken span invariants on arbitrary
// input.
//
// Назначение: прогонять байты через comments.Extract, lexer и cst.Engine,
// а на успешно разобранных входах проверять инварианты дерева.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
