package types

// Instantiate substitutes every KindTypeParameter key in t whose Symbol.ID
// matches a key in subst with the mapped replacement TypeID, recursing
// through every composite Kind. A type-parameter reference with no entry
// in subst (one belonging to some other, unrelated generic scope that
// happens to be reachable from t) passes through unchanged.
//
// Used two ways by a generic call: with subst mapping each declared type
// parameter straight to its explicit type argument (`id<number>(...)`),
// or with subst mapping each to a fresh inference variable placeholder
// before argument collection, then again mapping those placeholders to
// their solved types once Solve has run.
func Instantiate(in *Interner, t TypeID, subst map[int32]TypeID) TypeID {
	if len(subst) == 0 {
		return t
	}
	k := in.Get(t)
	switch k.Kind {
	case KindTypeParameter, KindInferVar:
		if repl, ok := subst[k.Symbol.ID]; ok {
			return repl
		}
		return t
	case KindUnion:
		return in.Intern(Key{Kind: KindUnion, Members: instantiateAll(in, k.Members, subst)})
	case KindIntersection:
		return in.Intern(Key{Kind: KindIntersection, Members: instantiateAll(in, k.Members, subst)})
	case KindArray:
		return in.Intern(Key{Kind: KindArray, Element: Instantiate(in, k.Element, subst)})
	case KindTuple:
		elems := make([]TupleElement, len(k.Elements))
		for i, e := range k.Elements {
			elems[i] = TupleElement{Type: Instantiate(in, e.Type, subst), Optional: e.Optional, Rest: e.Rest, Label: e.Label}
		}
		return in.Intern(Key{Kind: KindTuple, Elements: elems})
	case KindObject:
		props := make([]Property, len(k.Properties))
		for i, p := range k.Properties {
			props[i] = Property{Name: p.Name, Type: Instantiate(in, p.Type, subst), Optional: p.Optional, Readonly: p.Readonly}
		}
		idxs := make([]IndexSignature, len(k.Indexes))
		for i, ix := range k.Indexes {
			idxs[i] = IndexSignature{KeyKind: ix.KeyKind, Value: Instantiate(in, ix.Value, subst)}
		}
		return in.Intern(Key{Kind: KindObject, Properties: props, Indexes: idxs})
	case KindFunction:
		params := make([]Param, len(k.Params))
		for i, p := range k.Params {
			params[i] = Param{Name: p.Name, Type: Instantiate(in, p.Type, subst), Optional: p.Optional, Rest: p.Rest}
		}
		return in.Intern(Key{Kind: KindFunction, Params: params, TypeParams: k.TypeParams, Return: Instantiate(in, k.Return, subst), IsCtor: k.IsCtor})
	case KindTypeReference:
		return in.Intern(Key{Kind: KindTypeReference, Symbol: k.Symbol, TypeArgs: instantiateAll(in, k.TypeArgs, subst)})
	case KindConditional:
		return in.Intern(Key{
			Kind:         KindConditional,
			Check:        Instantiate(in, k.Check, subst),
			Extends:      Instantiate(in, k.Extends, subst),
			True:         Instantiate(in, k.True, subst),
			False:        Instantiate(in, k.False, subst),
			CheckIsNaked: k.CheckIsNaked,
		})
	case KindMapped:
		nameRemap := k.NameRemap
		if nameRemap != NoType {
			nameRemap = Instantiate(in, nameRemap, subst)
		}
		return in.Intern(Key{
			Kind:        KindMapped,
			KeySource:   Instantiate(in, k.KeySource, subst),
			Element:     Instantiate(in, k.Element, subst),
			NameRemap:   nameRemap,
			ReadonlyMod: k.ReadonlyMod,
			OptionalMod: k.OptionalMod,
		})
	case KindKeyof:
		return in.Intern(Key{Kind: KindKeyof, Element: Instantiate(in, k.Element, subst)})
	case KindIndexedAccess:
		return in.Intern(Key{Kind: KindIndexedAccess, Element: Instantiate(in, k.Element, subst), Index: Instantiate(in, k.Index, subst)})
	case KindTemplateLiteral:
		types := make([]TypeID, len(k.Template.Types))
		for i, tt := range k.Template.Types {
			types[i] = Instantiate(in, tt, subst)
		}
		return in.Intern(Key{Kind: KindTemplateLiteral, Template: TemplateChunk{Literals: k.Template.Literals, Types: types}})
	default:
		return t
	}
}

func instantiateAll(in *Interner, ts []TypeID, subst map[int32]TypeID) []TypeID {
	if len(ts) == 0 {
		return ts
	}
	out := make([]TypeID, len(ts))
	for i, t := range ts {
		out[i] = Instantiate(in, t, subst)
	}
	return out
}
