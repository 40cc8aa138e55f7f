package compiler

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/syntax"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// Location is one declaration/usage site definition/references returns:
// a file plus the byte span of the identifying node, the shape an LSP
// driver maps onto a line/column range using its own line-index table (the
// core never computes line/column itself -- positions are byte offsets
// throughout, per §3's arena header Pos/End fields).
type Location struct {
	File  string
	Start int
	End   int
}

// Diagnostics is diagnostics(file): runs (or reuses) the file's check pass
// and returns its Bag's contents, already sorted by position and
// deduplicated by (span, code) per §7/§8's determinism invariant.
func (s *Session) Diagnostics(h Handle, file string) ([]diag.Diagnostic, error) {
	c, err := s.lookupCompilation(h)
	if err != nil {
		return nil, err
	}
	st, err := c.getChecker(file)
	if err != nil {
		return nil, err
	}
	return st.bag.All(), nil
}

// TypeAt is type_at(file, position): resolves the innermost expression or
// type-annotation node covering position and formats its checked type as
// an LSP-hover-ready string.
func (s *Session) TypeAt(h Handle, file string, position int) (string, error) {
	c, err := s.lookupCompilation(h)
	if err != nil {
		return "", err
	}
	st, err := c.getChecker(file)
	if err != nil {
		return "", err
	}
	node := innermostNodeAt(st.arena, int32(position))
	if node == syntax.NoNode {
		return "", nil
	}
	t := types.Evaluate(c.session.types, st.checker.TypeOfNode(node))
	return formatType(c.session.types, c.session.names, t, c.symbolName), nil
}

// symbolName resolves a TypeReference/TypeParameter key's SymbolRef back to
// a display name by looking up the owning file's bound symbol table; used
// only by formatType, which otherwise has no path from a bare (file, id)
// pair back to source text.
func (c *compilation) symbolName(ref types.SymbolRef) (string, bool) {
	st, ok := c.files[ref.File]
	if !ok {
		return "", false
	}
	sym := binder.SymbolID(ref.ID)
	if ref.ID <= 0 || ref.ID >= st.bind.Symbols.Len() {
		return "", false
	}
	return c.session.names.Text(st.bind.Symbols.Get(sym).Name), true
}

// Definition is definition(file, position): resolves the identifier under
// position to its declaring symbol and returns every declaration's span
// (a merged interface/function-overload/namespace symbol has more than
// one).
func (s *Session) Definition(h Handle, file string, position int) ([]Location, error) {
	c, err := s.lookupCompilation(h)
	if err != nil {
		return nil, err
	}
	st, ok := c.files[file]
	if !ok {
		return nil, errors.Errorf("compiler: unknown file %q", file)
	}
	node := innermostNodeAt(st.arena, int32(position))
	if node == syntax.NoNode {
		return nil, nil
	}
	h2 := st.arena.Header(node)
	if h2.Kind != syntax.KindIdentifier {
		return nil, nil
	}
	d := st.arena.Ident.Get(h2.DataIndex)
	scope := st.bind.NodeScopes[node]
	sym := st.bind.Scopes.Resolve(scope, d.Name)
	if sym == binder.NoSymbol {
		return nil, nil
	}
	symRec := st.bind.Symbols.Get(sym)
	locs := make([]Location, 0, len(symRec.Declarations))
	for _, decl := range symRec.Declarations {
		dh := st.arena.Header(decl)
		locs = append(locs, Location{File: file, Start: int(dh.Pos), End: int(dh.End)})
	}
	return locs, nil
}

// References is references(symbol): every file in the compilation is
// scanned for identifiers resolving to sym. A compilation-wide scan rather
// than a per-symbol backlink table matches §5's "no persisted state"
// policy -- references are recomputed on demand, not maintained
// incrementally.
func (s *Session) References(h Handle, file string, sym binder.SymbolID) ([]Location, error) {
	c, err := s.lookupCompilation(h)
	if err != nil {
		return nil, err
	}
	var out []Location
	for _, path := range c.order {
		st := c.files[path]
		n := st.arena.Len()
		for id := syntax.NodeID(1); id < syntax.NodeID(n); id++ {
			ih := st.arena.Header(id)
			if ih.Kind != syntax.KindIdentifier {
				continue
			}
			d := st.arena.Ident.Get(ih.DataIndex)
			scope, ok := st.bind.NodeScopes[id]
			if !ok {
				continue
			}
			if st.bind.Scopes.Resolve(scope, d.Name) == sym {
				out = append(out, Location{File: path, Start: int(ih.Pos), End: int(ih.End)})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}

// SymbolEntry is one node of the hierarchical outline symbol_table builds:
// a declaration's name, its own span, and nested members (class/interface/
// enum/namespace members).
type SymbolEntry struct {
	Name     string
	Kind     binder.Flags
	Start    int
	End      int
	Children []SymbolEntry
}

// SymbolTable is symbol_table(file): the file's top-level declarations and
// their members, in source order, for a document-outline/breadcrumb view.
func (s *Session) SymbolTable(h Handle, file string) ([]SymbolEntry, error) {
	c, err := s.lookupCompilation(h)
	if err != nil {
		return nil, err
	}
	st, ok := c.files[file]
	if !ok {
		return nil, errors.Errorf("compiler: unknown file %q", file)
	}
	root := st.arena.Header(st.root)
	block := st.arena.Block.Get(root.DataIndex)
	var entries []SymbolEntry
	for _, n := range st.arena.Nodes(block.Statements) {
		if es, ok := symbolEntryFor(st.arena, c.session.names, n); ok {
			entries = append(entries, es...)
		}
	}
	return entries, nil
}

func symbolEntryFor(arena *syntax.Arena, names *atom.Interner, n syntax.NodeID) ([]SymbolEntry, bool) {
	h := arena.Header(n)
	switch h.Kind {
	case syntax.KindFunctionDeclaration:
		d := arena.Func.Get(h.DataIndex)
		return []SymbolEntry{{Name: names.Text(d.Name), Kind: binder.FlagFunction, Start: int(h.Pos), End: int(h.End)}}, true
	case syntax.KindClassDeclaration:
		d := arena.Class.Get(h.DataIndex)
		return []SymbolEntry{{
			Name:     names.Text(d.Name),
			Kind:     binder.FlagClass,
			Start:    int(h.Pos),
			End:      int(h.End),
			Children: classMembers(arena, names, d.Members),
		}}, true
	case syntax.KindInterfaceDeclaration:
		d := arena.Interface.Get(h.DataIndex)
		return []SymbolEntry{{
			Name:     names.Text(d.Name),
			Kind:     binder.FlagInterface,
			Start:    int(h.Pos),
			End:      int(h.End),
			Children: classMembers(arena, names, d.Members),
		}}, true
	case syntax.KindTypeAliasDeclaration:
		d := arena.TypeAlias.Get(h.DataIndex)
		return []SymbolEntry{{Name: names.Text(d.Name), Kind: binder.FlagTypeAlias, Start: int(h.Pos), End: int(h.End)}}, true
	case syntax.KindEnumDeclaration:
		d := arena.Enum.Get(h.DataIndex)
		var children []SymbolEntry
		for _, m := range arena.Nodes(d.Members) {
			mh := arena.Header(m)
			md := arena.EnumMember.Get(mh.DataIndex)
			children = append(children, SymbolEntry{Name: names.Text(md.Name), Kind: binder.FlagEnumMember, Start: int(mh.Pos), End: int(mh.End)})
		}
		return []SymbolEntry{{Name: names.Text(d.Name), Kind: binder.FlagEnum, Start: int(h.Pos), End: int(h.End), Children: children}}, true
	case syntax.KindModuleDeclaration:
		d := arena.Module.Get(h.DataIndex)
		var children []SymbolEntry
		if d.Body != syntax.NoNode {
			bh := arena.Header(d.Body)
			if bh.Kind == syntax.KindBlock {
				bd := arena.Block.Get(bh.DataIndex)
				for _, s := range arena.Nodes(bd.Statements) {
					if e, ok := symbolEntryFor(arena, names, s); ok {
						children = append(children, e...)
					}
				}
			}
		}
		return []SymbolEntry{{Name: names.Text(d.Name), Kind: binder.FlagValueModule, Start: int(h.Pos), End: int(h.End), Children: children}}, true
	case syntax.KindVariableStatement:
		d := arena.VarDeclList.Get(h.DataIndex)
		var entries []SymbolEntry
		for _, decl := range arena.Nodes(d.Decls) {
			dh := arena.Header(decl)
			vd := arena.VarDecl.Get(dh.DataIndex)
			nameH := arena.Header(vd.Name)
			if nameH.Kind != syntax.KindIdentifierBinding {
				continue
			}
			id := arena.Ident.Get(nameH.DataIndex)
			entries = append(entries, SymbolEntry{Name: names.Text(id.Name), Kind: binder.FlagBlockScopedVariable, Start: int(dh.Pos), End: int(dh.End)})
		}
		return entries, len(entries) > 0
	default:
		return nil, false
	}
}

// classMembers builds SymbolEntry children for a class or interface
// member list; property and method members carry distinct byte spans so
// an outline view can jump straight to each.
func classMembers(arena *syntax.Arena, names *atom.Interner, list syntax.NodeList) []SymbolEntry {
	var out []SymbolEntry
	for _, m := range arena.Nodes(list) {
		mh := arena.Header(m)
		switch mh.Kind {
		case syntax.KindPropertySignature:
			pd := arena.PropSig.Get(mh.DataIndex)
			out = append(out, SymbolEntry{Name: names.Text(pd.Name), Kind: binder.FlagProperty, Start: int(mh.Pos), End: int(mh.End)})
		case syntax.KindPropertyDeclaration:
			pd := arena.Property.Get(mh.DataIndex)
			out = append(out, SymbolEntry{Name: names.Text(pd.Name), Kind: binder.FlagProperty, Start: int(mh.Pos), End: int(mh.End)})
		case syntax.KindMethodSignature:
			md := arena.MethodSig.Get(mh.DataIndex)
			out = append(out, SymbolEntry{Name: names.Text(md.Name), Kind: binder.FlagMethod, Start: int(mh.Pos), End: int(mh.End)})
		case syntax.KindMethodDeclaration:
			md := arena.Method.Get(mh.DataIndex)
			out = append(out, SymbolEntry{Name: names.Text(md.Name), Kind: binder.FlagMethod, Start: int(mh.Pos), End: int(mh.End)})
		}
	}
	return out
}

// innermostNodeAt scans every node's header for the smallest span covering
// pos. The arena is a flat struct-of-arrays table with no parent pointers
// (§3), so "innermost" is derived from span containment rather than a tree
// walk -- whichever covering node has the smallest (End-Pos) width is the
// most specific one.
func innermostNodeAt(arena *syntax.Arena, pos int32) syntax.NodeID {
	best := syntax.NoNode
	bestWidth := int32(-1)
	n := arena.Len()
	for id := syntax.NodeID(1); id < syntax.NodeID(n); id++ {
		h := arena.Header(id)
		if pos < h.Pos || pos >= h.End {
			continue
		}
		width := h.End - h.Pos
		if bestWidth == -1 || width < bestWidth {
			best = id
			bestWidth = width
		}
	}
	return best
}
