package types

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

const MaxTypeResolutionOps = 100000

// Resolver looks up the binder symbol a type-reference name refers to,
// the seam Lower uses instead of depending on a specific scope-walk
// implementation -- a checker session supplies one backed by
// binder.ScopeTable.Resolve plus whatever module-level merging it does
// across files.
type Resolver interface {
	ResolveType(scope binder.ScopeID, name atom.Atom) binder.SymbolID
}

// Lowerer is the only bridge from syntax.Arena nodes to types.TypeID,
// memoized per node so a type annotation referenced from many call
// sites (a shared alias, a repeated parameter type) is only lowered
// once.
type Lowerer struct {
	arena    *syntax.Arena
	in       *Interner
	file     string
	resolver Resolver
	memo     map[syntax.NodeID]TypeID
	ops      int
}

func NewLowerer(arena *syntax.Arena, in *Interner, file string, resolver Resolver) *Lowerer {
	return &Lowerer{arena: arena, in: in, file: file, resolver: resolver, memo: make(map[syntax.NodeID]TypeID)}
}

// Lower maps a type-node AST id to its TypeID, the entry point the
// binder's bindTypeNode placeholder defers to once a Resolver exists.
func (lo *Lowerer) Lower(scope binder.ScopeID, node syntax.NodeID) TypeID {
	if node == syntax.NoNode {
		return ErrorType
	}
	if v, ok := lo.memo[node]; ok {
		return v
	}
	lo.ops++
	if lo.ops > MaxTypeResolutionOps {
		return ErrorType
	}
	result := lo.lower(scope, node)
	lo.memo[node] = result
	return result
}

func (lo *Lowerer) lower(scope binder.ScopeID, node syntax.NodeID) TypeID {
	h := lo.arena.Header(node)
	switch h.Kind {
	case syntax.KindKeywordTypeAny:
		return Any
	case syntax.KindKeywordTypeUnknown:
		return Unknown
	case syntax.KindKeywordTypeNever:
		return Never
	case syntax.KindKeywordTypeVoid:
		return VoidType
	case syntax.KindKeywordTypeUndefined:
		return UndefinedType
	case syntax.KindKeywordTypeNull:
		return NullType
	case syntax.KindKeywordTypeString:
		return StringType
	case syntax.KindKeywordTypeNumber:
		return NumberType
	case syntax.KindKeywordTypeBoolean:
		return BooleanType
	case syntax.KindKeywordTypeBigint:
		return BigintType
	case syntax.KindKeywordTypeSymbol:
		return SymbolType
	case syntax.KindKeywordTypeObject:
		return ObjectKeyword

	case syntax.KindLiteralType:
		return lo.lowerLiteralType(h)
	case syntax.KindTypeReference:
		return lo.lowerTypeReference(scope, h)
	case syntax.KindArrayType:
		d := lo.arena.ArrayType.Get(h.DataIndex)
		return lo.in.Intern(Key{Kind: KindArray, Element: lo.Lower(scope, d.Element)})
	case syntax.KindParenthesizedType:
		return lo.Lower(scope, lo.singleChild(h))
	case syntax.KindRestType, syntax.KindOptionalType:
		return lo.Lower(scope, lo.singleChild(h))
	case syntax.KindTupleType:
		return lo.lowerTupleType(scope, h)
	case syntax.KindObjectType:
		return lo.lowerObjectType(scope, h)
	case syntax.KindUnionType:
		return lo.lowerUnionIntersection(scope, h, KindUnion)
	case syntax.KindIntersectionType:
		return lo.lowerUnionIntersection(scope, h, KindIntersection)
	case syntax.KindFunctionType:
		return lo.lowerFunctionType(scope, h, false)
	case syntax.KindConstructorType:
		return lo.lowerFunctionType(scope, h, true)
	case syntax.KindConditionalType:
		return lo.lowerConditionalType(scope, h)
	case syntax.KindMappedType:
		return lo.lowerMappedType(scope, h)
	case syntax.KindIndexedAccessType:
		d := lo.arena.IndexedAccess.Get(h.DataIndex)
		return lo.in.Intern(Key{Kind: KindIndexedAccess, Element: lo.Lower(scope, d.Object), Index: lo.Lower(scope, d.Index)})
	case syntax.KindTypeOperatorKeyof:
		d := lo.arena.TypeOperator.Get(h.DataIndex)
		return lo.in.Intern(Key{Kind: KindKeyof, Element: lo.Lower(scope, d.Type)})
	case syntax.KindTypeOperatorReadonly:
		d := lo.arena.TypeOperator.Get(h.DataIndex)
		return lo.Lower(scope, d.Type) // readonly array/tuple wrapper: modeled at the property level elsewhere
	case syntax.KindTypeOperatorUnique:
		d := lo.arena.TypeOperator.Get(h.DataIndex)
		return lo.Lower(scope, d.Type)
	case syntax.KindTypeQuery:
		// `typeof expr`: resolving the expression's type requires the
		// checker's TypeOfNode query, which doesn't exist at lowering
		// time; lowering conservatively yields `any` and the checker
		// substitutes the real answer once it has one.
		return Any
	case syntax.KindTemplateLiteralType:
		return lo.lowerTemplateLiteralType(scope, h)
	case syntax.KindThisType:
		return Any // `this` type resolution is contextual to the enclosing class; checker-level concern
	case syntax.KindInferType:
		d := lo.arena.InferType.Get(h.DataIndex)
		tph := lo.arena.Header(d.TypeParam)
		td := lo.arena.TypeParam.Get(tph.DataIndex)
		return lo.in.Intern(Key{Kind: KindTypeParameter, Symbol: SymbolRef{File: lo.file, ID: int32(td.Name)}})
	default:
		return ErrorType
	}
}

func (lo *Lowerer) singleChild(h syntax.Header) syntax.NodeID {
	switch h.Kind {
	case syntax.KindRestType, syntax.KindOptionalType:
		d := lo.arena.TypeOperator.Get(h.DataIndex)
		return d.Type
	case syntax.KindParenthesizedType:
		d := lo.arena.TypeOperator.Get(h.DataIndex)
		return d.Type
	}
	return syntax.NoNode
}

func (lo *Lowerer) lowerLiteralType(h syntax.Header) TypeID {
	d := lo.arena.LiteralType.Get(h.DataIndex)
	lh := lo.arena.Header(d.Literal)
	switch lh.Kind {
	case syntax.KindStringLiteral, syntax.KindNoSubstitutionTemplateLiteral:
		lit := lo.arena.Literal.Get(lh.DataIndex)
		return lo.in.Intern(Key{Kind: KindStringLiteral, StringLit: lit.Text})
	case syntax.KindNumericLiteral:
		lit := lo.arena.Literal.Get(lh.DataIndex)
		return lo.in.Intern(Key{Kind: KindNumberLiteral, NumberLit: lit.NumValue})
	case syntax.KindTrueLiteral:
		return lo.in.Intern(Key{Kind: KindBooleanLiteral, BooleanLit: true})
	case syntax.KindFalseLiteral:
		return lo.in.Intern(Key{Kind: KindBooleanLiteral, BooleanLit: false})
	case syntax.KindBigIntLiteral:
		lit := lo.arena.Literal.Get(lh.DataIndex)
		return lo.in.Intern(Key{Kind: KindBigintLiteral, BigintLit: lit.Text})
	case syntax.KindNullLiteral:
		return NullType
	default:
		return ErrorType
	}
}

// lowerTypeReference resolves Name via the binder's symbol tables and
// interns a reference key carrying the argument type ids; a reference
// to an unresolvable name degrades to `error` rather than panicking, so
// a single typo doesn't take down the whole lowering pass.
func (lo *Lowerer) lowerTypeReference(scope binder.ScopeID, h syntax.Header) TypeID {
	d := lo.arena.TypeRef.Get(h.DataIndex)
	args := make([]TypeID, 0, d.TypeArgs.Len)
	for _, a := range lo.arena.Nodes(d.TypeArgs) {
		args = append(args, lo.Lower(scope, a))
	}
	if lo.resolver == nil {
		return ErrorType
	}
	sym := lo.resolver.ResolveType(scope, d.Name)
	if sym == binder.NoSymbol {
		return ErrorType
	}
	return lo.in.Intern(Key{
		Kind:     KindTypeReference,
		Symbol:   SymbolRef{File: lo.file, ID: int32(sym)},
		TypeArgs: args,
	})
}

func (lo *Lowerer) lowerTupleType(scope binder.ScopeID, h syntax.Header) TypeID {
	d := lo.arena.TupleType.Get(h.DataIndex)
	elems := make([]TupleElement, 0, d.Elements.Len)
	for _, el := range lo.arena.Nodes(d.Elements) {
		eh := lo.arena.Header(el)
		if eh.Kind == syntax.KindNamedTupleMember {
			md := lo.arena.TupleMember.Get(eh.DataIndex)
			elems = append(elems, TupleElement{
				Type: lo.Lower(scope, md.Type), Optional: md.Optional, Rest: md.Rest, Label: md.Label,
			})
			continue
		}
		optional := eh.Kind == syntax.KindOptionalType
		rest := eh.Kind == syntax.KindRestType
		elemType := el
		if optional || rest {
			elemType = lo.singleChild(eh)
		}
		elems = append(elems, TupleElement{Type: lo.Lower(scope, elemType), Optional: optional, Rest: rest})
	}
	return lo.in.Intern(Key{Kind: KindTuple, Elements: elems})
}

func (lo *Lowerer) lowerObjectType(scope binder.ScopeID, h syntax.Header) TypeID {
	d := lo.arena.ObjectType.Get(h.DataIndex)
	var props []Property
	var indexes []IndexSignature
	for _, member := range lo.arena.Nodes(d.Members) {
		mh := lo.arena.Header(member)
		switch mh.Kind {
		case syntax.KindPropertySignature:
			pd := lo.arena.PropSig.Get(mh.DataIndex)
			props = append(props, Property{
				Name: pd.Name, Type: lo.Lower(scope, pd.Type), Optional: pd.Optional, Readonly: pd.Readonly,
			})
		case syntax.KindMethodSignature:
			md := lo.arena.MethodSig.Get(mh.DataIndex)
			props = append(props, Property{Name: md.Name, Type: lo.lowerSignature(scope, md.Params, md.TypeParams, md.ReturnType, false)})
		case syntax.KindCallSignature:
			cd := lo.arena.CallSig.Get(mh.DataIndex)
			props = append(props, Property{Name: atom.NoAtom, Type: lo.lowerSignature(scope, cd.Params, cd.TypeParams, cd.ReturnType, false)})
		case syntax.KindConstructSignature:
			cd := lo.arena.CallSig.Get(mh.DataIndex)
			props = append(props, Property{Name: atom.NoAtom, Type: lo.lowerSignature(scope, cd.Params, cd.TypeParams, cd.ReturnType, true)})
		case syntax.KindIndexSignature:
			id := lo.arena.IndexSig.Get(mh.DataIndex)
			keyKind := KindString
			kh := lo.arena.Header(id.KeyType)
			if kh.Kind == syntax.KindKeywordTypeNumber {
				keyKind = KindNumber
			}
			indexes = append(indexes, IndexSignature{KeyKind: keyKind, Value: lo.Lower(scope, id.Type)})
		}
	}
	return lo.in.Intern(Key{Kind: KindObject, Properties: props, Indexes: indexes})
}

func (lo *Lowerer) lowerSignature(scope binder.ScopeID, params, typeParams syntax.NodeList, returnType syntax.NodeID, isCtor bool) TypeID {
	ps := make([]Param, 0, params.Len)
	for _, p := range lo.arena.Nodes(params) {
		ph := lo.arena.Header(p)
		pd := lo.arena.Param.Get(ph.DataIndex)
		ps = append(ps, Param{Name: pd.Name, Type: lo.Lower(scope, pd.Type), Optional: pd.Optional, Rest: pd.Rest})
	}
	tps := make([]atom.Atom, 0, typeParams.Len)
	for _, tp := range lo.arena.Nodes(typeParams) {
		tph := lo.arena.Header(tp)
		tps = append(tps, lo.arena.TypeParam.Get(tph.DataIndex).Name)
	}
	return lo.in.Intern(Key{Kind: KindFunction, Params: ps, TypeParams: tps, Return: lo.Lower(scope, returnType), IsCtor: isCtor})
}

func (lo *Lowerer) lowerFunctionType(scope binder.ScopeID, h syntax.Header, isCtor bool) TypeID {
	d := lo.arena.FuncType.Get(h.DataIndex)
	return lo.lowerSignature(scope, d.Params, d.TypeParams, d.ReturnType, isCtor)
}

func (lo *Lowerer) lowerUnionIntersection(scope binder.ScopeID, h syntax.Header, kind Kind) TypeID {
	d := lo.arena.UnionType.Get(h.DataIndex)
	members := make([]TypeID, 0, d.Types.Len)
	for _, t := range lo.arena.Nodes(d.Types) {
		members = append(members, lo.Lower(scope, t))
	}
	return lo.in.Intern(Key{Kind: kind, Members: members})
}

func (lo *Lowerer) lowerConditionalType(scope binder.ScopeID, h syntax.Header) TypeID {
	d := lo.arena.CondType.Get(h.DataIndex)
	check := lo.Lower(scope, d.Check)
	checkKey := lo.in.Get(check)
	// Naked iff Check lowers directly to a type-parameter/infer-variable
	// key: `T extends U ? X : Y` lowers Check straight to a
	// KindTypeParameter key, while `T[] extends U ? X : Y` lowers Check
	// to a KindArray wrapping one -- only the former distributes.
	naked := checkKey.Kind == KindTypeParameter || checkKey.Kind == KindInferVar
	return lo.in.Intern(Key{
		Kind: KindConditional, Check: check, Extends: lo.Lower(scope, d.Extends),
		True: lo.Lower(scope, d.True), False: lo.Lower(scope, d.False),
		CheckIsNaked: naked,
	})
}

func (lo *Lowerer) lowerMappedType(scope binder.ScopeID, h syntax.Header) TypeID {
	d := lo.arena.MappedType.Get(h.DataIndex)
	tph := lo.arena.Header(d.TypeParam)
	td := lo.arena.TypeParam.Get(tph.DataIndex)
	keySource := lo.Lower(scope, td.Constraint)
	var nameRemap TypeID = NoType
	if d.NameType != syntax.NoNode {
		nameRemap = lo.Lower(scope, d.NameType)
	}
	return lo.in.Intern(Key{
		Kind: KindMapped, KeySource: keySource, Element: lo.Lower(scope, d.Type),
		NameRemap: nameRemap, ReadonlyMod: d.ReadonlyMod, OptionalMod: d.OptionalMod,
	})
}

func (lo *Lowerer) lowerTemplateLiteralType(scope binder.ScopeID, h syntax.Header) TypeID {
	d := lo.arena.TemplateLitType.Get(h.DataIndex)
	types := make([]TypeID, 0, d.Types.Len)
	for _, t := range lo.arena.Nodes(d.Types) {
		types = append(types, lo.Lower(scope, t))
	}
	return lo.in.Intern(Key{Kind: KindTemplateLiteral, Template: TemplateChunk{Literals: d.Literals, Types: types}})
}
