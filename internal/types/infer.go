package types

// InferVar identifies one inference variable within an InferenceContext.
type InferVar int32

// Constraint accumulates the lower (from argument/assignment sites) and
// upper (from declared parameter/return annotations) bounds solve()
// reconciles into a concrete type.
type Constraint struct {
	Lower []TypeID
	Upper []TypeID
}

// InferenceContext owns a union-find table over inference variables plus
// each equivalence class's accumulated Constraint, the shape spec.md's
// solver section describes for generic call and contextual-typing
// inference.
type InferenceContext struct {
	in          *Interner
	parent      []InferVar
	constraints []Constraint
	defaults    []TypeID // type parameter default, NoType if none
}

func NewInferenceContext(in *Interner) *InferenceContext {
	return &InferenceContext{in: in}
}

// Fresh allocates a new inference variable in its own equivalence class.
func (ic *InferenceContext) Fresh() InferVar {
	v := InferVar(len(ic.parent))
	ic.parent = append(ic.parent, v)
	ic.constraints = append(ic.constraints, Constraint{})
	ic.defaults = append(ic.defaults, NoType)
	return v
}

// FreshWithDefault allocates a variable carrying def as its fallback
// when solve() finds no constraints at all (a type parameter default).
func (ic *InferenceContext) FreshWithDefault(def TypeID) InferVar {
	v := ic.Fresh()
	ic.defaults[v] = def
	return v
}

func (ic *InferenceContext) find(v InferVar) InferVar {
	for ic.parent[v] != v {
		ic.parent[v] = ic.parent[ic.parent[v]]
		v = ic.parent[v]
	}
	return v
}

// Unify merges two variables' equivalence classes and their constraint
// sets, used when the same type parameter appears in more than one
// argument position and both sites must agree.
func (ic *InferenceContext) Unify(a, b InferVar) {
	ra, rb := ic.find(a), ic.find(b)
	if ra == rb {
		return
	}
	ic.parent[ra] = rb
	ic.constraints[rb].Lower = append(ic.constraints[rb].Lower, ic.constraints[ra].Lower...)
	ic.constraints[rb].Upper = append(ic.constraints[rb].Upper, ic.constraints[ra].Upper...)
	if ic.defaults[rb] == NoType {
		ic.defaults[rb] = ic.defaults[ra]
	}
}

func (ic *InferenceContext) AddLower(v InferVar, t TypeID) {
	r := ic.find(v)
	ic.constraints[r].Lower = append(ic.constraints[r].Lower, t)
}

func (ic *InferenceContext) AddUpper(v InferVar, t TypeID) {
	r := ic.find(v)
	ic.constraints[r].Upper = append(ic.constraints[r].Upper, t)
}

// Solution maps each inference variable to its solved TypeID, or
// ErrorType with Failed set to the variables whose bounds were
// unsatisfiable (a lower bound that isn't a subtype of some upper
// bound).
type Solution struct {
	Types  map[InferVar]TypeID
	Failed []InferVar
}

// Solve computes, for each equivalence class, the "best common type":
// the union of lower bounds widened just enough to satisfy every upper
// bound, falling back to the narrowest satisfiable upper bound on
// conflict, and finally to the type parameter's default (or `unknown`)
// when no constraint exists at all.
func (ic *InferenceContext) Solve() Solution {
	sol := Solution{Types: make(map[InferVar]TypeID, len(ic.parent))}
	resolved := make(map[InferVar]TypeID)

	for v := range ic.parent {
		r := ic.find(InferVar(v))
		if _, done := resolved[r]; done {
			continue
		}
		resolved[r] = ic.solveClass(r, &sol)
	}
	for v := range ic.parent {
		r := ic.find(InferVar(v))
		sol.Types[InferVar(v)] = resolved[r]
	}
	return sol
}

func (ic *InferenceContext) solveClass(r InferVar, sol *Solution) TypeID {
	c := ic.constraints[r]
	if len(c.Lower) == 0 && len(c.Upper) == 0 {
		if ic.defaults[r] != NoType {
			return ic.defaults[r]
		}
		return Unknown
	}

	var best TypeID
	if len(c.Lower) > 0 {
		best = ic.in.Intern(Key{Kind: KindUnion, Members: append([]TypeID(nil), c.Lower...)})
	} else {
		best = Unknown
	}

	for _, upper := range c.Upper {
		if !Subtype(ic.in, best, upper, Contravariant).Bool() {
			// Conflict: the widened lower bound doesn't satisfy this
			// upper bound. Prefer the upper bound itself if every lower
			// bound is individually compatible with it; otherwise this
			// variable's constraints are unsatisfiable.
			allFit := true
			for _, lo := range c.Lower {
				if !Subtype(ic.in, lo, upper, Contravariant).Bool() {
					allFit = false
					break
				}
			}
			if allFit {
				best = upper
				continue
			}
			sol.Failed = append(sol.Failed, r)
			return ErrorType
		}
	}
	return best
}

// InferCall runs the bound-collection step of generic-call inference: it
// registers each argument's type as a lower bound against the
// corresponding (var-substituted) parameter type. It does not solve and
// returns nothing; Solve is a separate call. The caller instantiates sig's type
// parameters into ic via Fresh/FreshWithDefault first (one InferVar per
// type parameter), substitutes each occurrence of a type parameter in
// paramTypes with its VarPlaceholder, and passes that same ic in --
// InferCall only drives bound-collection against the vars ic already
// owns, it does not allocate its own.
func InferCall(ic *InferenceContext, in *Interner, paramTypes []TypeID, argTypes []TypeID) {
	n := len(paramTypes)
	if len(argTypes) < n {
		n = len(argTypes)
	}
	for i := 0; i < n; i++ {
		collectLowerBounds(ic, in, paramTypes[i], argTypes[i])
	}
}

// collectLowerBounds walks paramType and argType in parallel, recording
// an AddLower constraint wherever paramType exposes a KindInferVar
// placeholder the caller is solving for. Structural positions (object
// properties, array/tuple elements, function parameter/return types)
// recurse; any other pair of positions records nothing.
func collectLowerBounds(ic *InferenceContext, in *Interner, paramType, argType TypeID) {
	pk := in.Get(paramType)
	if pk.Kind == KindInferVar {
		ic.AddLower(InferVar(pk.Symbol.ID), argType)
		return
	}
	ak := in.Get(argType)
	switch {
	case pk.Kind == KindArray && ak.Kind == KindArray:
		collectLowerBounds(ic, in, pk.Element, ak.Element)
	case pk.Kind == KindObject && ak.Kind == KindObject:
		for _, pp := range pk.Properties {
			if ap, ok := findProperty(ak.Properties, pp.Name); ok {
				collectLowerBounds(ic, in, pp.Type, ap.Type)
			}
		}
	case pk.Kind == KindFunction && ak.Kind == KindFunction:
		n := len(pk.Params)
		if len(ak.Params) < n {
			n = len(ak.Params)
		}
		for i := 0; i < n; i++ {
			// Parameter types flow contravariantly: the argument
			// function's declared parameter type is the source of a
			// lower bound on the *caller*'s inference variable read
			// through the opposite position, matching "unify
			// contravariantly" for parameters the spec calls out.
			collectLowerBounds(ic, in, ak.Params[i].Type, pk.Params[i].Type)
		}
		collectLowerBounds(ic, in, pk.Return, ak.Return)
	case pk.Kind == KindTuple && ak.Kind == KindTuple:
		n := len(pk.Elements)
		if len(ak.Elements) < n {
			n = len(ak.Elements)
		}
		for i := 0; i < n; i++ {
			collectLowerBounds(ic, in, pk.Elements[i].Type, ak.Elements[i].Type)
		}
	}
}

// VarPlaceholder interns a KindInferVar key standing in for v, the type
// a generic signature's parameter list is substituted with before
// InferCall walks it.
func VarPlaceholder(in *Interner, v InferVar) TypeID {
	return in.Intern(Key{Kind: KindInferVar, Symbol: SymbolRef{ID: int32(v)}})
}
