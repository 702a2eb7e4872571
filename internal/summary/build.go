package summary

import (
	"path"
	"strings"

	"plcst/internal/ast"
	"plcst/internal/comments"
	"plcst/internal/format"
	"plcst/internal/token"
)

var plain = format.Options{DropComments: true}

// Summarize builds the index over units in order. Nil units are skipped.
func Summarize(units ...*ast.SourceUnit) *CodeSummary {
	out := &CodeSummary{}
	for _, u := range units {
		if u == nil || u.Root == nil {
			continue
		}
		b := builder{unit: u, out: out}
		b.run()
	}
	return out
}

type builder struct {
	unit *ast.SourceUnit
	out  *CodeSummary
	// owner is the last FB, program or interface of this unit.
	owner *FunctionBlockSummary
}

func (b *builder) run() {
	for _, u := range b.unit.Root.Units {
		switch u := u.(type) {
		case *ast.FunctionBlock:
			fb := b.pou(u, "FUNCTION_BLOCK", u.Modifiers, u.Blocks)
			if u.Extends != nil {
				fb.Extends = []string{u.Extends.String()}
			}
			fb.Implements = qnames(u.Implements)
			b.owner = fb
		case *ast.Program:
			b.owner = b.pou(u, "PROGRAM", nil, u.Blocks)
		case *ast.Interface:
			fb := b.pou(u, "INTERFACE", nil, u.Blocks)
			fb.Extends = qnames(u.Extends)
			b.owner = fb
		case *ast.Function:
			fb := b.pou(u, "FUNCTION", u.Modifiers, u.Blocks)
			fb.ReturnType = render(u.ReturnType)
		case *ast.Method:
			m := b.member(u, "METHOD", u.Modifiers, u.Blocks)
			m.Type = render(u.ReturnType)
			b.attach(m, func(fb *FunctionBlockSummary) { fb.Methods = append(fb.Methods, m) })
		case *ast.Property:
			m := b.member(u, "PROPERTY", u.Modifiers, u.Blocks)
			m.Type = render(u.Type)
			b.attach(m, func(fb *FunctionBlockSummary) { fb.Properties = append(fb.Properties, m) })
		case *ast.Action:
			m := b.member(u, "ACTION", nil, nil)
			b.attach(m, func(fb *FunctionBlockSummary) { fb.Actions = append(fb.Actions, m) })
		case *ast.DataTypeDeclaration:
			for i, t := range u.Types {
				dt := b.dataType(t)
				if i == 0 {
					// комментарии над TYPE относятся к первому типу
					dt.Comments = append(texts(u.Comments()), dt.Comments...)
					dt.Attributes = append(u.Attributes(), dt.Attributes...)
				}
				b.out.DataTypes = append(b.out.DataTypes, dt)
			}
		case *ast.GlobalVariableList:
			name := unitStem(b.unit.Identifier)
			g := &GlobalVariableSummary{
				Location:   b.loc(u),
				Name:       name,
				Comments:   texts(u.Comments()),
				Attributes: u.Attributes(),
				Blocks:     b.blocks(name, u.Blocks),
			}
			g.DeclarationsByBlock = byBlock(u.Decls, g.Blocks)
			b.out.Globals = append(b.out.Globals, g)
		}
	}
}

func (b *builder) loc(n ast.Node) Location {
	return Location{Filename: b.unit.Identifier, Span: ast.SpanOf(n), Source: b.unit.Source(n)}
}

func (b *builder) pou(u ast.Unit, kind string, mods ast.Modifiers, blocks []*ast.VariableBlock) *FunctionBlockSummary {
	meta := ast.MetaOf(u)
	fb := &FunctionBlockSummary{
		Location:   b.loc(u),
		Name:       u.UnitName(),
		Kind:       kind,
		Modifiers:  keywords(mods),
		Comments:   texts(meta.Comments()),
		Attributes: meta.Attributes(),
		Blocks:     b.blocks(u.UnitName(), blocks),
	}
	fb.DeclarationsByBlock = byBlock(declIndex(u), fb.Blocks)
	b.out.FunctionBlocks = append(b.out.FunctionBlocks, fb)
	return fb
}

func (b *builder) member(u ast.Unit, kind string, mods ast.Modifiers, blocks []*ast.VariableBlock) *MemberSummary {
	meta := ast.MetaOf(u)
	m := &MemberSummary{
		Location:   b.loc(u),
		Kind:       kind,
		Name:       u.UnitName(),
		Modifiers:  keywords(mods),
		Comments:   texts(meta.Comments()),
		Attributes: meta.Attributes(),
	}
	if b.owner != nil {
		m.Owner = b.owner.Name
	}
	m.Blocks = b.blocks(m.QualifiedName(), blocks)
	m.DeclarationsByBlock = byBlock(declIndex(u), m.Blocks)
	return m
}

func declIndex(u ast.Unit) *ast.DeclarationIndex {
	if s, ok := u.(interface{ Declarations() *ast.DeclarationIndex }); ok {
		return s.Declarations()
	}
	return nil
}

// byBlock projects the scope index onto the summaries built from the same
// sections: one group per kind, names in source order.
func byBlock(idx *ast.DeclarationIndex, blocks []*BlockSummary) DeclarationGroups {
	if idx == nil || len(idx.Blocks) == 0 {
		return nil
	}
	type key struct{ kind, name string }
	built := make(map[key]*DeclarationSummary)
	for _, bs := range blocks {
		for _, d := range bs.Declarations {
			built[key{bs.Kind, strings.ToUpper(d.Name)}] = d
		}
	}
	out := make(DeclarationGroups, 0, len(idx.Blocks))
	for _, blk := range idx.Blocks {
		grp := &DeclarationGroup{Kind: blk.Kind.String()}
		for _, e := range blk.Entries {
			if d, ok := built[key{grp.Kind, e.Name.Canonical()}]; ok {
				grp.Declarations = append(grp.Declarations, d)
			}
		}
		out = append(out, grp)
	}
	return out
}

// attach hands m to the current owner, or records it as detached.
func (b *builder) attach(m *MemberSummary, add func(*FunctionBlockSummary)) {
	if b.owner == nil {
		b.out.Detached = append(b.out.Detached, m)
		return
	}
	add(b.owner)
}

func (b *builder) blocks(parent string, blocks []*ast.VariableBlock) []*BlockSummary {
	var out []*BlockSummary
	for _, vb := range blocks {
		bs := &BlockSummary{Kind: vb.Kind.String(), Qualifiers: keywords(vb.Qualifiers)}
		for _, d := range vb.Declarations {
			bs.Declarations = append(bs.Declarations, b.declarations(parent, bs.Kind, bs.Qualifiers, d)...)
		}
		out = append(out, bs)
	}
	return out
}

func (b *builder) declarations(parent, block string, quals []string, d *ast.Declaration) []*DeclarationSummary {
	typ := render(d.Type)
	if d.Ctor != nil {
		typ += render(d.Ctor)
	}
	var addr string
	if d.Location != nil {
		addr = d.Location.Text
	}
	out := make([]*DeclarationSummary, 0, len(d.Names))
	for _, name := range d.Names {
		out = append(out, &DeclarationSummary{
			Location:   b.loc(d),
			Name:       name.Name,
			Parent:     parent,
			Block:      block,
			Qualifiers: quals,
			Type:       typ,
			Value:      render(d.Init),
			Address:    addr,
			Comments:   texts(d.Comments()),
			Attributes: d.Attributes(),
		})
	}
	return out
}

func (b *builder) dataType(t ast.DataType) *DataTypeSummary {
	meta := ast.MetaOf(t)
	dt := &DataTypeSummary{
		Location:   b.loc(t),
		Name:       t.TypeName().Name,
		Comments:   texts(meta.Comments()),
		Attributes: meta.Attributes(),
	}
	members := func(block string, decls []*ast.Declaration) {
		for _, d := range decls {
			dt.Members = append(dt.Members, b.declarations(dt.Name, block, nil, d)...)
		}
	}
	switch t := t.(type) {
	case *ast.StructType:
		dt.Kind = "STRUCT"
		if t.Extends != nil {
			dt.Extends = t.Extends.String()
		}
		members("STRUCT", t.Members)
	case *ast.UnionType:
		dt.Kind = "UNION"
		members("UNION", t.Members)
	case *ast.EnumType:
		dt.Kind = "ENUM"
		dt.Base = render(t.Base)
		dt.Default = render(t.Default)
		for _, v := range t.Values {
			dt.Values = append(dt.Values, EnumValueSummary{Name: v.Name.Name, Value: render(v.Value)})
		}
	case *ast.AliasType:
		dt.Kind = "ALIAS"
		dt.Base = render(t.Type)
		dt.Default = render(t.Init)
	}
	return dt
}

// render prints n without comments; a nil interface gives "".
func render(n ast.Node) string {
	if n == nil {
		return ""
	}
	return format.Render(n, plain)
}

func texts(recs []comments.Record) []string {
	if len(recs) == 0 {
		return nil
	}
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Text
	}
	return out
}

func keywords(ks []token.Kind) []string {
	if len(ks) == 0 {
		return nil
	}
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = token.Spelling(k)
	}
	return out
}

func qnames(qs []*ast.QualifiedName) []string {
	if len(qs) == 0 {
		return nil
	}
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.String()
	}
	return out
}

// unitStem turns "PLC1/GVLs/GVL_Main.TcGVL" into "GVL_Main".
func unitStem(identifier string) string {
	base := path.Base(strings.ReplaceAll(identifier, `\`, "/"))
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
