// Package xref stores a CodeSummary in a SQLite database so that other tools
// can query declared names without reparsing the project.
package xref

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"plcst/internal/ast"
	"plcst/internal/summary"
)

// Symbol is one indexed name.
type Symbol struct {
	Kind      string `json:"kind" yaml:"kind"` // FUNCTION_BLOCK, METHOD, TYPE, VAR_INPUT, ...
	Name      string `json:"name" yaml:"name"`
	Parent    string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Qualified string `json:"qualified" yaml:"qualified"`
	Type      string `json:"type,omitempty" yaml:"type,omitempty"`
	Filename  string `json:"filename" yaml:"filename"`
	StartByte uint32 `json:"start" yaml:"start"`
	EndByte   uint32 `json:"end" yaml:"end"`
	Comments  string `json:"comments,omitempty" yaml:"comments,omitempty"`

	attrs []ast.Attribute
}

// Relation is an EXTENDS or IMPLEMENTS edge.
type Relation struct {
	Name     string `json:"name" yaml:"name"`
	Relation string `json:"relation" yaml:"relation"`
	Base     string `json:"base" yaml:"base"`
}

// Index is a SQLite-backed symbol table.
type Index struct {
	db *sql.DB
	mu sync.RWMutex
}

// Memory opens a private in-memory index.
const Memory = ":memory:"

// Open opens or creates the index at path.
func Open(path string) (*Index, error) {
	dsn := Memory
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("xref: create directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_synchronous=NORMAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("xref: open %s: %w", path, err)
	}
	if path == Memory {
		// у каждого соединения своя in-memory база
		db.SetMaxOpenConns(1)
	}
	idx := &Index{db: db}
	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("xref: init schema: %w", err)
	}
	return idx, nil
}

func (x *Index) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS symbols (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		name TEXT NOT NULL COLLATE NOCASE,
		parent TEXT NOT NULL DEFAULT '' COLLATE NOCASE,
		qualified TEXT NOT NULL COLLATE NOCASE,
		type TEXT NOT NULL DEFAULT '',
		filename TEXT NOT NULL DEFAULT '',
		start_byte INTEGER NOT NULL DEFAULT 0,
		end_byte INTEGER NOT NULL DEFAULT 0,
		comments TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS relations (
		name TEXT NOT NULL COLLATE NOCASE,
		relation TEXT NOT NULL,
		base TEXT NOT NULL COLLATE NOCASE
	);

	CREATE TABLE IF NOT EXISTS attributes (
		symbol INTEGER NOT NULL REFERENCES symbols(id),
		name TEXT NOT NULL COLLATE NOCASE,
		value TEXT NOT NULL DEFAULT '',
		known INTEGER NOT NULL DEFAULT 0,
		misplaced INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_symbols_qualified ON symbols(qualified);
	CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name);
	CREATE INDEX IF NOT EXISTS idx_relations_base ON relations(base);
	CREATE INDEX IF NOT EXISTS idx_attributes_name ON attributes(name);
	`
	_, err := x.db.Exec(schema)
	return err
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

// Export replaces the contents of the index with s and returns the number of
// symbols written.
func (x *Index) Export(ctx context.Context, s *summary.CodeSummary) (n int, err error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("xref: begin: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	for _, table := range []string{"attributes", "symbols", "relations"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, fmt.Errorf("xref: clear %s: %w", table, err)
		}
	}
	ins, err := tx.PrepareContext(ctx, `INSERT INTO symbols
		(kind, name, parent, qualified, type, filename, start_byte, end_byte, comments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("xref: prepare: %w", err)
	}
	defer ins.Close()
	rel, err := tx.PrepareContext(ctx, `INSERT INTO relations (name, relation, base) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("xref: prepare: %w", err)
	}
	defer rel.Close()
	tag, err := tx.PrepareContext(ctx, `INSERT INTO attributes (symbol, name, value, known, misplaced) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("xref: prepare: %w", err)
	}
	defer tag.Close()

	for _, sym := range symbols(s) {
		var res sql.Result
		if res, err = ins.ExecContext(ctx, sym.Kind, sym.Name, sym.Parent, sym.Qualified, sym.Type,
			sym.Filename, sym.StartByte, sym.EndByte, sym.Comments); err != nil {
			return 0, fmt.Errorf("xref: insert %s: %w", sym.Qualified, err)
		}
		n++
		if len(sym.attrs) == 0 {
			continue
		}
		var id int64
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("xref: insert %s: %w", sym.Qualified, err)
		}
		for _, a := range sym.attrs {
			name, known, misplaced := classify(a, sym.Kind)
			if _, err = tag.ExecContext(ctx, id, name, a.Value, known, misplaced); err != nil {
				return 0, fmt.Errorf("xref: insert attribute %s of %s: %w", a.Name, sym.Qualified, err)
			}
		}
	}
	for _, r := range relations(s) {
		if _, err = rel.ExecContext(ctx, r.Name, r.Relation, r.Base); err != nil {
			return 0, fmt.Errorf("xref: insert relation %s: %w", r.Name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("xref: commit: %w", err)
	}
	return n, nil
}

const symbolColumns = `kind, name, parent, qualified, type, filename, start_byte, end_byte, comments`

// Lookup returns the symbols whose qualified name is name, ignoring case.
func (x *Index) Lookup(ctx context.Context, name string) ([]Symbol, error) {
	return x.query(ctx, `SELECT `+symbolColumns+` FROM symbols WHERE qualified = ? ORDER BY id`, name)
}

// Search matches names against a shell-style pattern ("FB_*", "n?peed").
// With kinds set only those kinds are returned.
func (x *Index) Search(ctx context.Context, pattern string, kinds ...string) ([]Symbol, error) {
	q := `SELECT ` + symbolColumns + ` FROM symbols WHERE name LIKE ? ESCAPE '\'`
	args := []any{likePattern(pattern)}
	if len(kinds) > 0 {
		q += ` AND kind IN (?` + strings.Repeat(", ?", len(kinds)-1) + `)`
		for _, k := range kinds {
			args = append(args, strings.ToUpper(k))
		}
	}
	return x.query(ctx, q+` ORDER BY id`, args...)
}

// Members lists everything declared inside parent in source order.
func (x *Index) Members(ctx context.Context, parent string) ([]Symbol, error) {
	return x.query(ctx, `SELECT `+symbolColumns+` FROM symbols WHERE parent = ? ORDER BY id`, parent)
}

// Derived returns the names that extend or implement base, directly or through
// other derived names.
func (x *Index) Derived(ctx context.Context, base string) ([]Relation, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	rows, err := x.db.QueryContext(ctx, `
		WITH RECURSIVE derived(name, relation, base) AS (
			SELECT name, relation, base FROM relations WHERE base = ?
			UNION
			SELECT r.name, r.relation, r.base FROM relations r JOIN derived d ON r.base = d.name
		)
		SELECT name, relation, base FROM derived`, base)
	if err != nil {
		return nil, fmt.Errorf("xref: derived %s: %w", base, err)
	}
	defer rows.Close()
	var out []Relation
	for rows.Next() {
		var r Relation
		if err := rows.Scan(&r.Name, &r.Relation, &r.Base); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Tag is one attribute pragma on an indexed symbol.
type Tag struct {
	Symbol    `yaml:",inline"`
	Attribute string `json:"attribute" yaml:"attribute"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Known     bool   `json:"known" yaml:"known"`
	Misplaced bool   `json:"misplaced,omitempty" yaml:"misplaced,omitempty"`
}

// Tagged returns the symbols carrying attribute name, ignoring case. An empty
// name lists every attribute in the index.
func (x *Index) Tagged(ctx context.Context, name string) ([]Tag, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	q := `SELECT s.kind, s.name, s.parent, s.qualified, s.type, s.filename, s.start_byte, s.end_byte, s.comments,
		a.name, a.value, a.known, a.misplaced
		FROM attributes a JOIN symbols s ON s.id = a.symbol`
	var args []any
	if name != "" {
		if spec, ok := ast.LookupAttr(name); ok {
			name = spec.Name
		}
		q += ` WHERE a.name = ?`
		args = append(args, name)
	}
	rows, err := x.db.QueryContext(ctx, q+` ORDER BY s.id, a.rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("xref: tagged %s: %w", name, err)
	}
	defer rows.Close()
	var out []Tag
	for rows.Next() {
		var t Tag
		s := &t.Symbol
		if err := rows.Scan(&s.Kind, &s.Name, &s.Parent, &s.Qualified, &s.Type,
			&s.Filename, &s.StartByte, &s.EndByte, &s.Comments,
			&t.Attribute, &t.Value, &t.Known, &t.Misplaced); err != nil {
			return nil, fmt.Errorf("xref: scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// classify spells a in its catalog form and checks that it may appear on a
// symbol of the given kind.
func classify(a ast.Attribute, kind string) (name string, known, misplaced bool) {
	spec, ok := ast.LookupAttr(a.Name)
	if !ok {
		return a.Name, false, false
	}
	return spec.Name, true, !spec.Allows(attrTarget(kind))
}

func attrTarget(kind string) ast.AttrTargetMask {
	switch kind {
	case "FUNCTION_BLOCK", "PROGRAM", "FUNCTION", "INTERFACE", "METHOD", "PROPERTY", "ACTION":
		return ast.AttrTargetPOU
	case "TYPE":
		return ast.AttrTargetType
	case "GVL":
		return ast.AttrTargetGVL
	default:
		return ast.AttrTargetVar
	}
}

// Stats counts symbols per kind.
func (x *Index) Stats(ctx context.Context) (map[string]int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	rows, err := x.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM symbols GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("xref: stats: %w", err)
	}
	defer rows.Close()
	stats := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		stats[kind] = n
	}
	return stats, rows.Err()
}

func (x *Index) query(ctx context.Context, q string, args ...any) ([]Symbol, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("xref: query: %w", err)
	}
	defer rows.Close()
	var out []Symbol
	for rows.Next() {
		var s Symbol
		if err := rows.Scan(&s.Kind, &s.Name, &s.Parent, &s.Qualified, &s.Type,
			&s.Filename, &s.StartByte, &s.EndByte, &s.Comments); err != nil {
			return nil, fmt.Errorf("xref: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// likePattern turns * and ? into LIKE wildcards and escapes the rest.
func likePattern(glob string) string {
	var b strings.Builder
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '%', '_', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
