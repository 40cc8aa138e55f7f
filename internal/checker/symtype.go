package checker

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/syntax"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// TypeOfSymbol is the memoized type_of_symbol query: a declared name's
// type is resolved once per symbol regardless of how many identifier
// references look it up. Re-entering a symbol already being resolved (an
// initializer that refers to its own binding, a recursive function with
// no declared return type) returns types.ErrorType, matching
// type_of_node's cycle rule.
func (c *Checker) TypeOfSymbol(sym binder.SymbolID) types.TypeID {
	if sym == binder.NoSymbol {
		return types.ErrorType
	}
	if t, ok := c.symbolTypes[sym]; ok {
		return t
	}
	if c.resolvingSym[sym] {
		return types.ErrorType
	}
	c.resolvingSym[sym] = true
	t := c.typeOfSymbol(sym)
	delete(c.resolvingSym, sym)
	c.symbolTypes[sym] = t
	return t
}

func (c *Checker) typeOfSymbol(sym binder.SymbolID) types.TypeID {
	s := c.bind.Symbols.Get(sym)
	switch {
	case s.Flags&binder.FlagParameter != 0:
		return c.typeOfParameterSymbol(s)
	case s.Flags&binder.FlagVariable != 0:
		return c.typeOfVariableSymbol(s)
	case s.Flags&binder.FlagFunction != 0:
		return c.typeOfFunctionSymbol(s)
	case s.Flags&binder.FlagMethod != 0:
		return c.typeOfMethodSymbol(s)
	case s.Flags&binder.FlagProperty != 0:
		return c.typeOfPropertySymbol(s)
	case s.Flags&binder.FlagAccessor != 0:
		return c.typeOfPropertySymbol(s)
	case s.Flags&binder.FlagEnumMember != 0:
		return c.typeOfEnumMemberSymbol(s)
	case s.Flags&binder.FlagClass != 0:
		return c.typeOfClassSymbol(s)
	case s.Flags&(binder.FlagInterface|binder.FlagTypeAlias) != 0:
		// Referenced in a value position (e.g. a bare type name used as an
		// expression) rather than a type position: not a valid JS value, so
		// there is nothing useful to report beyond `any` -- the reference
		// itself is a parser/binder-level concern to flag separately.
		return types.Any
	case s.Flags&binder.FlagAlias != 0:
		return c.typeOfAliasSymbol(s)
	case s.Flags&(binder.FlagValueModule|binder.FlagNamespaceModule) != 0:
		return c.typeOfNamespaceSymbol(s)
	default:
		return types.Any
	}
}

func (c *Checker) typeOfParameterSymbol(s *binder.Symbol) types.TypeID {
	if s.ValueDecl == syntax.NoNode {
		return types.Any
	}
	h := c.arena.Header(s.ValueDecl)
	pd := c.arena.Param.Get(h.DataIndex)
	if pd.Type != syntax.NoNode {
		t := c.lower.Lower(c.scopeOf(pd.Type), pd.Type)
		if pd.Optional {
			return c.in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{t, types.UndefinedType}})
		}
		return t
	}
	if pd.Init != syntax.NoNode {
		return c.TypeOfNode(pd.Init)
	}
	if c.opts.NoImplicitAny {
		c.report(s.ValueDecl, diag.CodeImplicitAny, "Parameter implicitly has an 'any' type.")
	}
	return types.Any
}

func (c *Checker) typeOfVariableSymbol(s *binder.Symbol) types.TypeID {
	if s.ValueDecl == syntax.NoNode {
		return types.Any
	}
	h := c.arena.Header(s.ValueDecl)
	if h.Kind != syntax.KindVariableDeclaration {
		return types.Any
	}
	vd := c.arena.VarDecl.Get(h.DataIndex)
	if vd.Type != syntax.NoNode {
		return c.lower.Lower(c.scopeOf(vd.Type), vd.Type)
	}
	if vd.Init != syntax.NoNode {
		return c.widen(c.TypeOfNode(vd.Init))
	}
	return types.Any
}

// widen applies the declaration-site literal-widening rule: a variable
// declared without an annotation takes the general primitive type of its
// initializer's literal, not the literal type itself (`let x = 1` is
// `number`, not `1`). Object/array literal freshness, which the checker
// applies only where a fresh literal is *consumed*, is unaffected.
func (c *Checker) widen(t types.TypeID) types.TypeID {
	k := c.in.Get(t)
	switch k.Kind {
	case types.KindStringLiteral:
		return types.StringType
	case types.KindNumberLiteral:
		return types.NumberType
	case types.KindBooleanLiteral:
		return types.BooleanType
	case types.KindBigintLiteral:
		return types.BigintType
	default:
		return t
	}
}

func (c *Checker) typeOfFunctionSymbol(s *binder.Symbol) types.TypeID {
	if s.ValueDecl == syntax.NoNode {
		return types.Any
	}
	h := c.arena.Header(s.ValueDecl)
	fd := c.arena.Func.Get(h.DataIndex)
	return c.typeOfFunctionLike(s.ValueDecl, &fd)
}

func (c *Checker) typeOfMethodSymbol(s *binder.Symbol) types.TypeID {
	if s.ValueDecl == syntax.NoNode {
		return types.Any
	}
	h := c.arena.Header(s.ValueDecl)
	md := c.arena.Method.Get(h.DataIndex)
	fd := &syntax.FuncData{Params: md.Params, TypeParams: md.TypeParams, ReturnType: md.ReturnType, Body: md.Body}
	return c.typeOfFunctionLike(s.ValueDecl, fd)
}

func (c *Checker) typeOfPropertySymbol(s *binder.Symbol) types.TypeID {
	if s.ValueDecl == syntax.NoNode {
		return types.Any
	}
	h := c.arena.Header(s.ValueDecl)
	pd := c.arena.Property.Get(h.DataIndex)
	if pd.Type != syntax.NoNode {
		return c.lower.Lower(c.scopeOf(pd.Type), pd.Type)
	}
	if pd.Init != syntax.NoNode {
		return c.widen(c.TypeOfNode(pd.Init))
	}
	if c.opts.StrictPropertyInitialization {
		c.report(s.ValueDecl, diag.CodePropertyNotDefinitelyAssigned, "Property has no initializer and is not definitely assigned in the constructor.")
	}
	return types.Any
}

func (c *Checker) typeOfEnumMemberSymbol(s *binder.Symbol) types.TypeID {
	if s.ValueDecl == syntax.NoNode {
		return types.NumberType
	}
	h := c.arena.Header(s.ValueDecl)
	if h.Kind != syntax.KindEnumMember {
		return types.NumberType
	}
	em := c.arena.EnumMember.Get(h.DataIndex)
	if em.Init != syntax.NoNode {
		return c.widen(c.TypeOfNode(em.Init))
	}
	return types.NumberType
}

// typeOfClassSymbol models a class's constructor as a Function key whose
// Return is the instance's structural object type, built from the
// class's own Members -- the simplification spec.md's declaration-merging
// and heritage-clause sections leave as an Open Question for multiple
// inheritance interactions; single-heritage instance shapes are captured
// directly.
func (c *Checker) typeOfClassSymbol(s *binder.Symbol) types.TypeID {
	props := make([]types.Property, 0, len(s.Members))
	for name, memberID := range s.Members {
		member := c.bind.Symbols.Get(memberID)
		if member.Flags&binder.FlagStatic != 0 {
			continue
		}
		props = append(props, types.Property{Name: name, Type: c.TypeOfSymbol(memberID)})
	}
	instance := c.in.Intern(types.Key{Kind: types.KindObject, Properties: props})
	ctorParams := []types.Param{}
	for _, memberID := range s.Members {
		member := c.bind.Symbols.Get(memberID)
		if member.Flags&binder.FlagMethod != 0 && member.ValueDecl != syntax.NoNode {
			if c.arena.Header(member.ValueDecl).Kind == syntax.KindConstructor {
				md := c.arena.Method.Get(c.arena.Header(member.ValueDecl).DataIndex)
				for _, p := range c.arena.Nodes(md.Params) {
					ph := c.arena.Header(p)
					pd := c.arena.Param.Get(ph.DataIndex)
					pt := types.Any
					if pd.Type != syntax.NoNode {
						pt = c.lower.Lower(c.scopeOf(pd.Type), pd.Type)
					}
					ctorParams = append(ctorParams, types.Param{Name: pd.Name, Type: pt, Optional: pd.Optional, Rest: pd.Rest})
				}
			}
		}
	}
	return c.in.Intern(types.Key{Kind: types.KindFunction, Params: ctorParams, Return: instance, IsCtor: true})
}

// typeOfAliasSymbol resolves an import binding through the cross-file
// export surfaces the driver installed via SetExports, following
// re-export chains with ModuleExports.ResolveExport; an import of a
// module never compiled in this session (or a name it doesn't export)
// degrades to `any` rather than failing the whole file.
func (c *Checker) typeOfAliasSymbol(s *binder.Symbol) types.TypeID {
	if c.exports == nil {
		return types.Any
	}
	spec := c.names.Text(s.ImportModule)
	exports, ok := c.exports[spec]
	if !ok {
		return types.Any
	}
	sym, ok := exports.ResolveExport(s.ImportName, moduleResolver{c.exports, c.names}, nil)
	if !ok {
		return types.Any
	}
	return c.TypeOfSymbol(sym)
}

// moduleResolver adapts the checker's flat exports map to binder.Resolver
// for cross-file ResolveExport walks (re-export chains).
type moduleResolver struct {
	exports map[string]*binder.ModuleExports
	names   *atom.Interner
}

func (r moduleResolver) Resolve(fromFile string, specifier atom.Atom) *binder.ModuleExports {
	return r.exports[r.names.Text(specifier)]
}

func (c *Checker) typeOfNamespaceSymbol(s *binder.Symbol) types.TypeID {
	props := make([]types.Property, 0, len(s.Exports))
	for name, memberID := range s.Exports {
		props = append(props, types.Property{Name: name, Type: c.TypeOfSymbol(memberID)})
	}
	return c.in.Intern(types.Key{Kind: types.KindObject, Properties: props})
}
