package ast

import (
	"strings"
)

// DeclarationEntry pairs a declared name with its declaration.
// A declaration with several names appears once per name.
type DeclarationEntry struct {
	Name *Ident
	Decl *Declaration
}

// DeclarationBlock holds the declarations of one section kind in source order.
// Several sections of the same kind in one scope are merged.
type DeclarationBlock struct {
	Kind    VarKind
	Entries []DeclarationEntry

	byName map[string]int
}

// Lookup finds a declaration by name, case-insensitively.
func (b *DeclarationBlock) Lookup(name string) (*Declaration, bool) {
	if b == nil {
		return nil, false
	}
	i, ok := b.byName[strings.ToUpper(name)]
	if !ok {
		return nil, false
	}
	return b.Entries[i].Decl, true
}

// Names returns the declared names in source order.
func (b *DeclarationBlock) Names() []string {
	out := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		out[i] = e.Name.Name
	}
	return out
}

// DeclarationIndex maps section kinds of one scope to their blocks.
type DeclarationIndex struct {
	// Blocks are ordered by the first appearance of their kind.
	Blocks []*DeclarationBlock
}

// Block returns the block for kind or nil.
func (x *DeclarationIndex) Block(kind VarKind) *DeclarationBlock {
	if x == nil {
		return nil
	}
	for _, b := range x.Blocks {
		if b.Kind == kind {
			return b
		}
	}
	return nil
}

// Add registers name in the block of kind. When the name is already taken
// in that block the earlier identifier is returned and nothing changes.
func (x *DeclarationIndex) Add(kind VarKind, name *Ident, decl *Declaration) (existing *Ident) {
	b := x.Block(kind)
	if b == nil {
		b = &DeclarationBlock{Kind: kind, byName: make(map[string]int)}
		x.Blocks = append(x.Blocks, b)
	}
	key := name.Canonical()
	if i, dup := b.byName[key]; dup {
		return b.Entries[i].Name
	}
	b.byName[key] = len(b.Entries)
	b.Entries = append(b.Entries, DeclarationEntry{Name: name, Decl: decl})
	return nil
}

// Find looks name up in every block, in block order.
func (x *DeclarationIndex) Find(name string) (*Declaration, VarKind, bool) {
	if x == nil {
		return nil, 0, false
	}
	for _, b := range x.Blocks {
		if d, ok := b.Lookup(name); ok {
			return d, b.Kind, true
		}
	}
	return nil, 0, false
}

// Len counts declared names across all blocks.
func (x *DeclarationIndex) Len() int {
	if x == nil {
		return 0
	}
	n := 0
	for _, b := range x.Blocks {
		n += len(b.Entries)
	}
	return n
}

// IndexBlocks builds an index over blocks. Duplicate names are reported
// through dup and skipped; a nil dup ignores them.
func IndexBlocks(blocks []*VariableBlock, dup func(kind VarKind, first, second *Ident)) *DeclarationIndex {
	idx := &DeclarationIndex{}
	for _, vb := range blocks {
		for _, d := range vb.Declarations {
			for _, name := range d.Names {
				if prev := idx.Add(vb.Kind, name, d); prev != nil && dup != nil {
					dup(vb.Kind, prev, name)
				}
			}
		}
	}
	return idx
}
