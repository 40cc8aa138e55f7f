package types

import "github.com/oxhq/tsgroundwork/internal/atom"

const (
	MaxEvaluateDepth     = 50
	MaxTotalEvaluations  = 100000
	MaxTemplateExpansion = 100000
)

// Evaluator reduces non-atomic keys (conditional, mapped, keyof, indexed
// access, template literal) to a normal form, memoized per TypeID so a
// diamond of references to the same unevaluated type only computes once.
type Evaluator struct {
	in         *Interner
	memo       map[TypeID]TypeID
	depth      int
	total      int
	tooComplex bool
}

func NewEvaluator(in *Interner) *Evaluator {
	return &Evaluator{in: in, memo: make(map[TypeID]TypeID)}
}

func Evaluate(in *Interner, id TypeID) TypeID {
	return NewEvaluator(in).Evaluate(id)
}

func (e *Evaluator) TooComplex() bool { return e.tooComplex }

func (e *Evaluator) Evaluate(id TypeID) TypeID {
	if v, ok := e.memo[id]; ok {
		return v
	}
	e.total++
	if e.total > MaxTotalEvaluations || e.depth > MaxEvaluateDepth {
		e.tooComplex = true
		return ErrorType
	}
	e.depth++
	defer func() { e.depth-- }()

	k := e.in.Get(id)
	var result TypeID
	switch k.Kind {
	case KindConditional:
		result = e.evaluateConditional(k)
	case KindMapped:
		result = e.evaluateMapped(k)
	case KindKeyof:
		result = e.evaluateKeyof(k)
	case KindIndexedAccess:
		result = e.evaluateIndexedAccess(k)
	case KindTemplateLiteral:
		result = e.evaluateTemplateLiteral(k)
	default:
		result = id
	}
	e.memo[id] = result
	return result
}

// evaluateConditional implements `Check extends Extends ? True : False`.
// When Check is a naked type parameter instantiated to a union, the
// conditional distributes: each union member is tested independently
// and the results are unioned back together, TypeScript's "naked type
// parameter" distributive-conditional rule.
func (e *Evaluator) evaluateConditional(k Key) TypeID {
	check := e.Evaluate(k.Check)
	checkKey := e.in.Get(check)
	if checkKey.Kind == KindUnion && checkKey.Members != nil && k.distributesOverUnion() {
		results := make([]TypeID, 0, len(checkKey.Members))
		for _, m := range checkKey.Members {
			sub := Key{Kind: KindConditional, Check: m, Extends: k.Extends, True: k.True, False: k.False}
			results = append(results, e.Evaluate(e.in.Intern(sub)))
		}
		return e.in.Intern(Key{Kind: KindUnion, Members: results})
	}

	switch Subtype(e.in, check, k.Extends, Contravariant) {
	case True:
		return e.Evaluate(k.True)
	case False:
		return e.Evaluate(k.False)
	default:
		// Provisional (cycle): leave deferred rather than guessing.
		return e.in.Intern(k)
	}
}

// distributesOverUnion reports whether this conditional's Check operand
// is itself a bare type-parameter reference rather than some derived
// type built from it (`T extends U ? X : Y` distributes, `T[] extends U
// ? X : Y` does not). Lowering sets CheckIsNaked when the source syntax
// was a naked reference.
func (k Key) distributesOverUnion() bool { return k.CheckIsNaked }

// evaluateMapped implements `{ [K in C]: V }`: evaluate the key source to
// a set of property names and build one property per name, applying the
// readonly/optional modifiers and `as` name remap. V is evaluated once and
// shared by every property; the current key is not substituted into it.
func (e *Evaluator) evaluateMapped(k Key) TypeID {
	keySource := e.Evaluate(k.KeySource)
	names := e.keysOf(keySource)

	props := make([]Property, 0, len(names))
	for _, name := range names {
		valueType := e.Evaluate(k.Element)
		finalName := name
		if k.NameRemap != NoType {
			// A string-literal remap target renames the key, and an empty
			// one drops it; any other remap target keeps the original name.
			if remapped, ok := e.remappedName(k.NameRemap, name); ok {
				if remapped == atom.NoAtom || e.textOf(remapped) == "" {
					continue
				}
				finalName = remapped
			}
		}
		props = append(props, Property{
			Name:     finalName,
			Type:     valueType,
			Optional: applyModifier(k.OptionalMod, false),
			Readonly: applyModifier(k.ReadonlyMod, false),
		})
	}
	return e.in.Intern(Key{Kind: KindObject, Properties: props})
}

// remappedName reads the name out of a string-literal remap target. Any
// other remap target is not evaluated per key, and the original key name
// is returned with ok false.
func (e *Evaluator) remappedName(remap TypeID, original atom.Atom) (atom.Atom, bool) {
	rk := e.in.Get(remap)
	if rk.Kind == KindStringLiteral {
		return rk.StringLit, true
	}
	return original, false
}

func applyModifier(mod int8, base bool) bool {
	switch mod {
	case 1:
		return true
	case -1:
		return false
	default:
		return base
	}
}

// evaluateKeyof implements `keyof T`: object types yield the union of
// their string-literal property names (plus `string`/`number` for index
// signatures); `keyof (A | B) = keyof A ∩ keyof B` (contravariant over
// union); `keyof (A & B) = keyof A ∪ keyof B`.
func (e *Evaluator) evaluateKeyof(k Key) TypeID {
	t := e.Evaluate(k.Element)
	tk := e.in.Get(t)
	switch tk.Kind {
	case KindObject:
		names := make([]TypeID, 0, len(tk.Properties))
		for _, p := range tk.Properties {
			names = append(names, e.in.Intern(Key{Kind: KindStringLiteral, StringLit: p.Name}))
		}
		for _, idx := range tk.Indexes {
			if idx.KeyKind == KindString {
				names = append(names, StringType)
			} else {
				names = append(names, NumberType)
			}
		}
		if len(names) == 0 {
			return Never
		}
		return e.in.Intern(Key{Kind: KindUnion, Members: names})
	case KindUnion:
		if len(tk.Members) == 0 {
			return Never
		}
		result := e.Evaluate(e.in.Intern(Key{Kind: KindKeyof, Element: tk.Members[0]}))
		for _, m := range tk.Members[1:] {
			other := e.Evaluate(e.in.Intern(Key{Kind: KindKeyof, Element: m}))
			result = e.intersect(result, other)
		}
		return result
	case KindIntersection:
		keys := make([]TypeID, 0, len(tk.Members))
		for _, m := range tk.Members {
			keys = append(keys, e.Evaluate(e.in.Intern(Key{Kind: KindKeyof, Element: m})))
		}
		return e.in.Intern(Key{Kind: KindUnion, Members: keys})
	default:
		return Never
	}
}

func (e *Evaluator) intersect(a, b TypeID) TypeID {
	return e.in.Intern(Key{Kind: KindIntersection, Members: []TypeID{a, b}})
}

// evaluateIndexedAccess implements `T[K]`. A literal index returns the
// matching property type; a union index distributes; a union T
// distributes over T; a tuple indexed by `number` yields the union of
// its element types.
func (e *Evaluator) evaluateIndexedAccess(k Key) TypeID {
	obj := e.Evaluate(k.Element)
	idx := e.Evaluate(k.Index)
	objKey := e.in.Get(obj)
	idxKey := e.in.Get(idx)

	if idxKey.Kind == KindUnion {
		results := make([]TypeID, 0, len(idxKey.Members))
		for _, m := range idxKey.Members {
			results = append(results, e.Evaluate(e.in.Intern(Key{Kind: KindIndexedAccess, Element: obj, Index: m})))
		}
		return e.in.Intern(Key{Kind: KindUnion, Members: results})
	}
	if objKey.Kind == KindUnion {
		results := make([]TypeID, 0, len(objKey.Members))
		for _, m := range objKey.Members {
			results = append(results, e.Evaluate(e.in.Intern(Key{Kind: KindIndexedAccess, Element: m, Index: idx})))
		}
		return e.in.Intern(Key{Kind: KindUnion, Members: results})
	}

	switch objKey.Kind {
	case KindObject:
		if idxKey.Kind == KindStringLiteral {
			if p, ok := findProperty(objKey.Properties, idxKey.StringLit); ok {
				return p.Type
			}
		}
		for _, index := range objKey.Indexes {
			if (index.KeyKind == KindString && idxKey.Kind == KindString) ||
				(index.KeyKind == KindNumber && idxKey.Kind == KindNumber) {
				return index.Value
			}
		}
		return ErrorType
	case KindTuple:
		if idx == NumberType {
			elems := make([]TypeID, 0, len(objKey.Elements))
			for _, el := range objKey.Elements {
				elems = append(elems, el.Type)
			}
			return e.in.Intern(Key{Kind: KindUnion, Members: elems})
		}
		return ErrorType
	case KindArray:
		return objKey.Element
	default:
		return ErrorType
	}
}

// keysOf materializes a mapped type's key source (usually itself the
// result of a `keyof` evaluation, a union of string-literal keys) into
// the concrete atom list to iterate.
func (e *Evaluator) keysOf(id TypeID) []atom.Atom {
	k := e.in.Get(id)
	switch k.Kind {
	case KindStringLiteral:
		return []atom.Atom{k.StringLit}
	case KindUnion:
		var out []atom.Atom
		for _, m := range k.Members {
			out = append(out, e.keysOf(m)...)
		}
		return out
	default:
		return nil
	}
}

// evaluateTemplateLiteral cross-products interpolated union members into
// the set of concrete string literals, enforcing an expansion cap. No
// string intrinsic (Uppercase, Lowercase, Capitalize, Uncapitalize) is
// applied; each span contributes its values unchanged.
func (e *Evaluator) evaluateTemplateLiteral(k Key) TypeID {
	chunks := [][]string{{""}}
	for i, lit := range k.Template.Literals {
		chunks = e.appendLiteral(chunks, e.textOf(lit))
		if i < len(k.Template.Types) {
			spanType := e.Evaluate(k.Template.Types[i])
			spanValues := e.stringValues(spanType)
			chunks = e.crossProduct(chunks, spanValues)
			if len(chunks) > MaxTemplateExpansion {
				e.tooComplex = true
				return ErrorType
			}
		}
	}
	members := make([]TypeID, 0, len(chunks))
	for _, s := range chunks {
		members = append(members, e.in.Intern(Key{Kind: KindStringLiteral, StringLit: e.intern(join(s))}))
	}
	return e.in.Intern(Key{Kind: KindUnion, Members: members})
}

func (e *Evaluator) textOf(a atom.Atom) string {
	if e.in.Strings == nil || a == atom.NoAtom {
		return ""
	}
	return e.in.Strings.Text(a)
}

func (e *Evaluator) intern(s string) atom.Atom {
	if e.in.Strings == nil {
		return atom.NoAtom
	}
	return e.in.Strings.Intern(s)
}

// stringValues enumerates the concrete string forms a type contributes
// to a template span: a string literal contributes itself; a union of
// literals contributes each; a bare `string`/`number`/`boolean` widens
// to a single opaque placeholder since its concrete values are unbounded
// (the resulting literal's text contains the placeholder `${string}`).
func (e *Evaluator) stringValues(id TypeID) []string {
	k := e.in.Get(id)
	switch k.Kind {
	case KindStringLiteral:
		return []string{e.textOf(k.StringLit)}
	case KindBooleanLiteral:
		if k.BooleanLit {
			return []string{"true"}
		}
		return []string{"false"}
	case KindUnion:
		var out []string
		for _, m := range k.Members {
			out = append(out, e.stringValues(m)...)
		}
		return out
	default:
		return []string{"${string}"}
	}
}

func (e *Evaluator) appendLiteral(chunks [][]string, lit string) [][]string {
	for i := range chunks {
		chunks[i] = append(append([]string(nil), chunks[i]...), lit)
	}
	return chunks
}

func (e *Evaluator) crossProduct(chunks [][]string, values []string) [][]string {
	out := make([][]string, 0, len(chunks)*len(values))
	for _, c := range chunks {
		for _, v := range values {
			out = append(out, append(append([]string(nil), c...), v))
		}
	}
	return out
}

func join(parts []string) string {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return string(out)
}
