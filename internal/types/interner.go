package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oxhq/tsgroundwork/internal/atom"
)

// TypeID addresses one canonical Key in an Interner. NoType is reserved
// so the zero value never aliases a real type; built-in ids are assigned
// in the fixed order below starting at 1, so they are stable
// compile-time-known constants regardless of what a given file lowers.
type TypeID int32

const NoType TypeID = 0

const (
	Any TypeID = iota + 1
	Never
	Unknown
	ErrorType
	StringType
	NumberType
	BooleanType
	BigintType
	SymbolType
	VoidType
	NullType
	UndefinedType
	ObjectKeyword
	FunctionKeyword
)

// Interner canonicalizes and hash-conses Keys into TypeIDs. One Interner
// is shared across every file in a compilation so identical structural
// types -- however many files declare an equivalent shape -- collapse to
// one id, the same "equal ids imply identical types" discipline
// `cmd/compile`'s type interning and surge's types.Interner both follow.
type Interner struct {
	keys   []Key
	lookup map[string]TypeID
	Strings *atom.Interner
}

func NewInterner(strings *atom.Interner) *Interner {
	in := &Interner{
		keys:    make([]Key, 1, 32), // index 0 reserved for NoType
		lookup:  make(map[string]TypeID, 32),
		Strings: strings,
	}
	for _, k := range []Key{
		{Kind: KindAny}, {Kind: KindNever}, {Kind: KindUnknown}, {Kind: KindError},
		{Kind: KindString}, {Kind: KindNumber}, {Kind: KindBoolean}, {Kind: KindBigint},
		{Kind: KindSymbol}, {Kind: KindVoid}, {Kind: KindNull}, {Kind: KindUndefined},
		{Kind: KindObjectKeyword}, {Kind: KindFunctionKeyword},
	} {
		id := in.Intern(k)
		_ = id // built-ins land at the TypeID constants above by construction order
	}
	return in
}

// Get returns the Key a TypeID addresses.
func (in *Interner) Get(id TypeID) Key { return in.keys[id] }

func (in *Interner) Len() int32 { return int32(len(in.keys)) }

// Intern canonicalizes k (sorting/deduping/flattening unions and
// intersections, sorting object properties by name, applying top/bottom
// simplification) and returns its TypeID, reusing an existing id on a
// structural match.
func (in *Interner) Intern(k Key) TypeID {
	k = in.canonicalize(k)
	fp := in.fingerprint(k)
	if id, ok := in.lookup[fp]; ok {
		return id
	}
	in.keys = append(in.keys, k)
	id := TypeID(len(in.keys) - 1)
	in.lookup[fp] = id
	return id
}

// canonicalize normalizes a key before interning: union/intersection
// members are flattened (a nested union inside a union splices in), the
// member list is deduplicated and sorted by id, and top/bottom absorb
// per the usual lattice laws (`any`/`unknown` absorb a union, `never`
// absorbs an intersection; the reverse for the empty case).
func (in *Interner) canonicalize(k Key) Key {
	switch k.Kind {
	case KindUnion:
		members := in.flatten(k.Members, KindUnion)
		for _, m := range members {
			if m == Any {
				return Key{Kind: KindAny}
			}
		}
		for _, m := range members {
			if m == Unknown {
				return Key{Kind: KindUnknown}
			}
		}
		members = dedupSorted(members)
		members = filterOut(members, Never)
		if len(members) == 0 {
			return Key{Kind: KindNever}
		}
		if len(members) == 1 {
			return in.keys[members[0]]
		}
		k.Members = members
	case KindIntersection:
		members := in.flatten(k.Members, KindIntersection)
		for _, m := range members {
			if m == Never {
				return Key{Kind: KindNever}
			}
			if m == Any {
				// `any` absorbs an intersection the same way it absorbs
				// everything else -- not a true top-type law, but the
				// same "any short-circuits" carve-out subtype applies.
				return Key{Kind: KindAny}
			}
		}
		members = dedupSorted(members)
		members = filterOut(members, Unknown)
		if len(members) == 0 {
			return Key{Kind: KindUnknown}
		}
		if len(members) == 1 {
			return in.keys[members[0]]
		}
		k.Members = members
	case KindObject:
		props := append([]Property(nil), k.Properties...)
		sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
		k.Properties = props
	}
	return k
}

// flatten splices nested unions/intersections of the same kind into one
// member list, e.g. `(A | B) | C` becomes members [A, B, C].
func (in *Interner) flatten(members []TypeID, kind Kind) []TypeID {
	out := make([]TypeID, 0, len(members))
	for _, m := range members {
		if int(m) < len(in.keys) && in.keys[m].Kind == kind {
			out = append(out, in.flatten(in.keys[m].Members, kind)...)
		} else {
			out = append(out, m)
		}
	}
	return out
}

func dedupSorted(ids []TypeID) []TypeID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:0]
	var prev TypeID = -1
	for _, id := range ids {
		if id != prev {
			out = append(out, id)
			prev = id
		}
	}
	return out
}

func filterOut(ids []TypeID, drop TypeID) []TypeID {
	out := ids[:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

// fingerprint produces a stable string encoding of a canonical Key for
// the hash-cons lookup table. It is a structural encoding, not meant for
// display -- Describe (in describe.go) handles human-readable output.
func (in *Interner) fingerprint(k Key) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", k.Kind)
	switch k.Kind {
	case KindStringLiteral:
		fmt.Fprintf(&b, "%q", in.text(k.StringLit))
	case KindNumberLiteral:
		fmt.Fprintf(&b, "%v", k.NumberLit)
	case KindBooleanLiteral:
		fmt.Fprintf(&b, "%v", k.BooleanLit)
	case KindBigintLiteral:
		fmt.Fprintf(&b, "%s", in.text(k.BigintLit))
	case KindUnion, KindIntersection:
		for _, m := range k.Members {
			fmt.Fprintf(&b, "%d,", m)
		}
	case KindObject:
		for _, p := range k.Properties {
			fmt.Fprintf(&b, "%s:%d:%v:%v,", in.text(p.Name), p.Type, p.Optional, p.Readonly)
		}
		for _, idx := range k.Indexes {
			fmt.Fprintf(&b, "[%d]%d,", idx.KeyKind, idx.Value)
		}
	case KindArray, KindKeyof:
		fmt.Fprintf(&b, "%d", k.Element)
	case KindTuple:
		for _, e := range k.Elements {
			fmt.Fprintf(&b, "%d:%v:%v:%s,", e.Type, e.Optional, e.Rest, in.text(e.Label))
		}
	case KindFunction:
		fmt.Fprintf(&b, "ctor=%v;", k.IsCtor)
		for _, p := range k.Params {
			fmt.Fprintf(&b, "%d:%v:%v,", p.Type, p.Optional, p.Rest)
		}
		fmt.Fprintf(&b, ">%d", k.Return)
	case KindTypeParameter, KindTypeReference, KindInferVar:
		fmt.Fprintf(&b, "%s#%d", k.Symbol.File, k.Symbol.ID)
		for _, a := range k.TypeArgs {
			fmt.Fprintf(&b, ",%d", a)
		}
	case KindConditional:
		fmt.Fprintf(&b, "%d?%d:%d:%d", k.Check, k.Extends, k.True, k.False)
	case KindMapped:
		fmt.Fprintf(&b, "%d@%d~%d/%d/%d", k.KeySource, k.Element, k.NameRemap, k.ReadonlyMod, k.OptionalMod)
	case KindIndexedAccess:
		fmt.Fprintf(&b, "%d[%d]", k.Element, k.Index)
	case KindTemplateLiteral:
		for i, lit := range k.Template.Literals {
			fmt.Fprintf(&b, "%q", in.text(lit))
			if i < len(k.Template.Types) {
				fmt.Fprintf(&b, "{%d}", k.Template.Types[i])
			}
		}
	}
	return b.String()
}

func (in *Interner) text(a atom.Atom) string {
	if in.Strings == nil || a == atom.NoAtom {
		return ""
	}
	return in.Strings.Text(a)
}
