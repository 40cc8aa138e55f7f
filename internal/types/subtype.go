package types

import "github.com/oxhq/tsgroundwork/internal/atom"

// Result is the three-valued outcome subtype checking against a
// recursive structural type can produce: a cycle re-entered mid-check
// is optimistically assumed true (the coinductive / greatest-fixed-point
// reading of structural recursion) rather than failing or looping.
type Result uint8

const (
	False Result = iota
	True
	Provisional
)

func (r Result) Bool() bool { return r == True || r == Provisional }

// Mode selects strict-function-types parameter variance; Bivariant is
// what plain method-shorthand signatures use, Contravariant is what a
// standalone function-typed property or `strictFunctionTypes` uses.
type Mode uint8

const (
	Bivariant Mode = iota
	Contravariant
)

const (
	MaxSubtypeDepth = 100
	MaxTotalChecks  = 100000
)

type pairKey struct {
	Source, Target TypeID
	Mode           Mode
}

// Checker runs one top-level subtype query, owning the in-progress set
// that realizes coinductive cycle handling and the depth/total-check
// budgets spec.md's solver section bounds.
type Checker struct {
	in         *Interner
	inProgress map[pairKey]bool
	depth      int
	totalOps   int
	tooComplex bool
}

func NewChecker(in *Interner) *Checker {
	return &Checker{in: in, inProgress: make(map[pairKey]bool)}
}

// Subtype answers "is source assignable to / a subtype of target",
// under mode's parameter-variance rule. TooComplex reports whether the
// last call bailed out on MaxSubtypeDepth/MaxTotalChecks -- the caller
// should attach a "type is too complex" diagnostic when it does.
func Subtype(in *Interner, source, target TypeID, mode Mode) Result {
	c := NewChecker(in)
	return c.check(source, target, mode)
}

func (c *Checker) TooComplex() bool { return c.tooComplex }

func (c *Checker) check(source, target TypeID, mode Mode) Result {
	c.totalOps++
	if c.totalOps > MaxTotalChecks {
		c.tooComplex = true
		return False
	}
	if c.depth > MaxSubtypeDepth {
		c.tooComplex = true
		return False
	}

	// Identity fast path.
	if source == target {
		return True
	}
	if source == Never {
		return True
	}
	if target == Unknown || target == Any {
		return True
	}
	// `any`/`error` are short-circuit top-and-bottom-at-once: assignable
	// both ways, preserving transitivity through whatever they touch.
	if source == Any || source == ErrorType || target == ErrorType {
		return True
	}

	key := pairKey{source, target, mode}
	if c.inProgress[key] {
		return Provisional
	}
	c.inProgress[key] = true
	c.depth++
	defer func() { c.depth--; delete(c.inProgress, key) }()

	sk := c.in.Get(source)
	tk := c.in.Get(target)

	switch sk.Kind {
	case KindUnion:
		// Union on the left: every member must be <= target.
		for _, m := range sk.Members {
			if !c.check(m, target, mode).Bool() {
				return False
			}
		}
		return True
	case KindIntersection:
		// Intersection on the left: some member suffices, with a
		// structural fallback that merges object parts before testing
		// when no single member alone matches (e.g. `{a:1} & {b:2}` vs
		// `{a:number,b:number}`).
		for _, m := range sk.Members {
			if c.check(m, target, mode).Bool() {
				return True
			}
		}
		if tk.Kind == KindObject {
			return c.checkIntersectionAgainstObject(sk, tk, mode)
		}
		return False
	}

	switch tk.Kind {
	case KindUnion:
		// Union on the right: some member must be >= source, refined by
		// discriminant narrowing when target is a discriminated union
		// and source names a matching literal discriminant property.
		if sk.Kind == KindObject {
			if disc, ok := c.discriminantMatch(sk, tk); ok {
				return c.check(source, disc, mode)
			}
		}
		for _, m := range tk.Members {
			if c.check(source, m, mode).Bool() {
				return True
			}
		}
		return False
	case KindIntersection:
		// Intersection on the right: all members must be >= source.
		for _, m := range tk.Members {
			if !c.check(source, m, mode).Bool() {
				return False
			}
		}
		return True
	}

	// Literal <= primitive.
	switch sk.Kind {
	case KindStringLiteral:
		if tk.Kind == KindString {
			return True
		}
	case KindNumberLiteral:
		if tk.Kind == KindNumber {
			return True
		}
	case KindBooleanLiteral:
		if tk.Kind == KindBoolean {
			return True
		}
	case KindBigintLiteral:
		if tk.Kind == KindBigint {
			return True
		}
	}

	// Tuples are assignable to arrays by element subtyping (an empty
	// tuple vacuously satisfies any array -- it is the never[] case),
	// so this must be checked before the kind-equality bailout below.
	if sk.Kind == KindTuple && tk.Kind == KindArray {
		return boolResult(c.checkTupleAsArray(sk, tk, mode))
	}

	if sk.Kind != tk.Kind {
		return boolResult(false)
	}

	switch sk.Kind {
	case KindStringLiteral:
		return boolResult(sk.StringLit == tk.StringLit)
	case KindNumberLiteral:
		return boolResult(sk.NumberLit == tk.NumberLit)
	case KindBooleanLiteral:
		return boolResult(sk.BooleanLit == tk.BooleanLit)
	case KindBigintLiteral:
		return boolResult(sk.BigintLit == tk.BigintLit)
	case KindString, KindNumber, KindBoolean, KindBigint, KindSymbol,
		KindVoid, KindNull, KindUndefined, KindObjectKeyword, KindFunctionKeyword:
		return True
	case KindObject:
		return boolResult(c.checkObject(sk, tk, mode))
	case KindArray:
		return c.check(sk.Element, tk.Element, mode)
	case KindTuple:
		return boolResult(c.checkTuple(sk, tk, mode))
	case KindFunction:
		return boolResult(c.checkFunction(sk, tk, mode))
	case KindTypeReference:
		if sk.Symbol != tk.Symbol || len(sk.TypeArgs) != len(tk.TypeArgs) {
			return False
		}
		for i := range sk.TypeArgs {
			if !c.check(sk.TypeArgs[i], tk.TypeArgs[i], mode).Bool() {
				return False
			}
		}
		return True
	case KindTypeParameter, KindInferVar:
		return boolResult(sk.Symbol == tk.Symbol)
	}

	return False
}

func boolResult(ok bool) Result {
	if ok {
		return True
	}
	return False
}

// checkObject implements width subtyping: every required target
// property must exist on source with a compatible type (checked
// covariantly, source property type against target property type;
// Property has no separate getter/setter types); optional target properties need no
// match; extra source properties are always allowed here (freshness /
// excess-property checking is a checker-level literal-object concern,
// not a structural-subtyping one, per spec.md's own framing).
func (c *Checker) checkObject(source, target Key, mode Mode) bool {
	for _, tp := range target.Properties {
		sp, ok := findProperty(source.Properties, tp.Name)
		if !ok {
			if tp.Optional {
				continue
			}
			return false
		}
		if !c.check(sp.Type, tp.Type, mode).Bool() {
			return false
		}
	}
	for _, tidx := range target.Indexes {
		if !c.checkIndexSignature(source, tidx, mode) {
			return false
		}
	}
	return true
}

func (c *Checker) checkIndexSignature(source Key, tidx IndexSignature, mode Mode) bool {
	for _, sidx := range source.Indexes {
		if sidx.KeyKind == tidx.KeyKind && c.check(sidx.Value, tidx.Value, mode).Bool() {
			return true
		}
	}
	return false
}

func findProperty(props []Property, name atom.Atom) (Property, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

func (c *Checker) checkIntersectionAgainstObject(source, target Key, mode Mode) Result {
	merged := map[atom.Atom]Property{}
	for _, m := range source.Members {
		mk := c.in.Get(m)
		if mk.Kind != KindObject {
			continue
		}
		for _, p := range mk.Properties {
			merged[p.Name] = p
		}
	}
	for _, tp := range target.Properties {
		sp, ok := merged[tp.Name]
		if !ok {
			if tp.Optional {
				continue
			}
			return False
		}
		if !c.check(sp.Type, tp.Type, mode).Bool() {
			return False
		}
	}
	return True
}

// discriminantMatch looks for a target union member whose discriminant
// literal property matches source's literal value for the same
// property name, letting a concrete object pick its exact union member
// instead of trying every member in turn.
func (c *Checker) discriminantMatch(source, targetUnion Key) (TypeID, bool) {
	for _, sp := range source.Properties {
		spk := c.in.Get(sp.Type)
		if !isLiteralKind(spk.Kind) {
			continue
		}
		for _, m := range targetUnion.Members {
			mk := c.in.Get(m)
			if mk.Kind != KindObject {
				continue
			}
			if tp, ok := findProperty(mk.Properties, sp.Name); ok {
				tpk := c.in.Get(tp.Type)
				if isLiteralKind(tpk.Kind) && literalsEqual(spk, tpk) {
					return m, true
				}
			}
		}
	}
	return NoType, false
}

func isLiteralKind(k Kind) bool {
	switch k {
	case KindStringLiteral, KindNumberLiteral, KindBooleanLiteral, KindBigintLiteral:
		return true
	}
	return false
}

func literalsEqual(a, b Key) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindStringLiteral:
		return a.StringLit == b.StringLit
	case KindNumberLiteral:
		return a.NumberLit == b.NumberLit
	case KindBooleanLiteral:
		return a.BooleanLit == b.BooleanLit
	case KindBigintLiteral:
		return a.BigintLit == b.BigintLit
	}
	return false
}

// checkTuple requires equal length unless a rest element allows
// extension, then checks elements pairwise including optional/rest
// flags.
func (c *Checker) checkTuple(source, target Key, mode Mode) bool {
	srcHasRest := len(source.Elements) > 0 && source.Elements[len(source.Elements)-1].Rest
	tgtHasRest := len(target.Elements) > 0 && target.Elements[len(target.Elements)-1].Rest
	if !srcHasRest && !tgtHasRest && len(source.Elements) != len(target.Elements) {
		return false
	}
	n := len(target.Elements)
	if len(source.Elements) < n {
		n = len(source.Elements)
	}
	for i := 0; i < n; i++ {
		se, te := source.Elements[i], target.Elements[i]
		if !te.Optional && se.Optional && !te.Rest {
			return false
		}
		if !c.check(se.Type, te.Type, mode).Bool() {
			return false
		}
	}
	return true
}

// checkTupleAsArray checks every tuple element (including a trailing
// rest element's type) against the target array's element type.
func (c *Checker) checkTupleAsArray(source, target Key, mode Mode) bool {
	for _, e := range source.Elements {
		if !c.check(e.Type, target.Element, mode).Bool() {
			return false
		}
	}
	return true
}

// checkFunction: return type covariant; parameters contravariant
// (Contravariant mode) or bivariant (Bivariant mode, accepted either
// direction -- TypeScript's historical method-shorthand leniency);
// source may supply fewer parameters than target, and any of target's
// trailing parameters beyond source's count must be optional or rest.
func (c *Checker) checkFunction(source, target Key, mode Mode) bool {
	if !c.check(source.Return, target.Return, mode).Bool() {
		return false
	}
	for i, tp := range target.Params {
		if i >= len(source.Params) {
			if !tp.Optional && !tp.Rest {
				return false
			}
			continue
		}
		sp := source.Params[i]
		ok := c.check(tp.Type, sp.Type, mode).Bool()
		if mode == Bivariant {
			ok = ok || c.check(sp.Type, tp.Type, mode).Bool()
		}
		if !ok {
			return false
		}
	}
	return true
}
