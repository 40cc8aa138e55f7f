package types

import "github.com/oxhq/tsgroundwork/internal/atom"

// Kind discriminates the tagged union Key stores. Primitive/literal kinds
// carry no children; the composite kinds (Union, Intersection, Object,
// Tuple, Function, ...) carry their parts in the slice/struct fields Key
// actually uses, left zero for kinds that don't need them.
type Kind uint8

const (
	KindAny Kind = iota
	KindNever
	KindUnknown
	KindError
	KindString
	KindNumber
	KindBoolean
	KindBigint
	KindSymbol
	KindVoid
	KindNull
	KindUndefined
	KindObjectKeyword // the `object` keyword type, distinct from a shaped Object
	KindFunctionKeyword

	KindStringLiteral
	KindNumberLiteral
	KindBooleanLiteral
	KindBigintLiteral

	KindUnion
	KindIntersection
	KindObject
	KindArray
	KindTuple
	KindFunction
	KindTypeParameter // a reference to a generic parameter, resolved during instantiation
	KindTypeReference // a nominal reference to an interface/class/alias symbol, pending substitution
	KindConditional
	KindMapped
	KindKeyof
	KindIndexedAccess
	KindTemplateLiteral
	KindInferVar // solver-owned inference variable placeholder
)

// Property is one member of an Object key, sorted by Name atom during
// canonicalization so two structurally identical shapes intern to the
// same id regardless of source declaration order.
type Property struct {
	Name     atom.Atom
	Type     TypeID
	Optional bool
	Readonly bool
}

// IndexSignature is a `[k: string]: V` / `[k: number]: V` member of an
// Object key. KeyKind is either KindString or KindNumber.
type IndexSignature struct {
	KeyKind Kind
	Value   TypeID
}

// Param is one parameter of a Function key.
type Param struct {
	Name     atom.Atom
	Type     TypeID
	Optional bool
	Rest     bool
}

// TupleElement is one element of a Tuple key.
type TupleElement struct {
	Type     TypeID
	Optional bool
	Rest     bool
	Label    atom.Atom // NoAtom if unlabeled
}

// TemplateChunk interleaves a literal text run with an interpolated type;
// len(Literals) == len(Types)+1, matching syntax.TemplateLitTypeData.
type TemplateChunk struct {
	Literals []atom.Atom
	Types    []TypeID
}

// Key is the canonical, structural representation of one type. Two Keys
// that compare equal (via Canonical + the Interner's hash-cons map)
// always receive the same TypeID, which is what lets subtype/evaluate
// treat `id_a == id_b` as a sound identity fast path.
type Key struct {
	Kind Kind

	// Literal kinds.
	StringLit  atom.Atom
	NumberLit  float64
	BooleanLit bool
	BigintLit  atom.Atom

	// Union/Intersection: canonicalized (sorted, deduped, flattened)
	// member ids.
	Members []TypeID

	// Object.
	Properties []Property
	Indexes    []IndexSignature

	// Array/Mapped/Keyof/IndexedAccess(.Object)/TemplateLiteral wrapper.
	Element TypeID

	// Tuple.
	Elements []TupleElement

	// Function.
	Params     []Param
	TypeParams []atom.Atom
	Return     TypeID
	IsCtor     bool

	// TypeParameter/TypeReference/InferVar: identifies the symbol or
	// solver variable this key stands for, plus any supplied type
	// arguments for a reference.
	Symbol   SymbolRef
	TypeArgs []TypeID

	// Conditional.
	Check, Extends, True, False TypeID
	// CheckIsNaked is set by lowering when Check is a bare type-parameter
	// (or infer-variable) reference rather than some derived type built
	// from one -- it gates the distributive-conditional rule in
	// distributesOverUnion.
	CheckIsNaked bool

	// Mapped.
	KeySource    TypeID // evaluated keyof/constraint this mapped type ranges over
	NameRemap    TypeID // NoType if no `as` clause
	ReadonlyMod  int8
	OptionalMod  int8

	// IndexedAccess.
	Index TypeID

	// TemplateLiteral.
	Template TemplateChunk
}

// SymbolRef names the binder symbol a TypeParameter/TypeReference key
// points at; kept as a plain (file, id) pair rather than importing
// binder.SymbolID directly so internal/types has no dependency on
// internal/binder -- the lowering step is what bridges the two.
type SymbolRef struct {
	File string
	ID   int32
}

var NoSymbolRef = SymbolRef{}
