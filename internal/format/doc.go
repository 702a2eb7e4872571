// Package format renders AST nodes back to Structured Text.
//
// Назначение: каноничный вывод (ключевые слова в верхнем регистре, отступы)
// с сохранением всех прикреплённых комментариев и прагм.
// Не делает: сохранения исходных пробелов и переносов.
// Зависимости: internal/ast, internal/token; RoundTrip ещё и парсер.
package format
