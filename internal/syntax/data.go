package syntax

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/scanner"
)

// IdentData is the payload for KindIdentifier / KindIdentifierBinding /
// KindPrivateIdentifier nodes.
type IdentData struct {
	Name atom.Atom
}

// LiteralData covers numeric/string/bigint/template/regex literal payloads.
type LiteralData struct {
	Text     atom.Atom
	NumValue float64
}

type BinaryData struct {
	Op          scanner.Kind
	Left, Right NodeID
}

type UnaryData struct {
	Op      scanner.Kind
	Operand NodeID
	Prefix  bool
}

type CallData struct {
	Callee   NodeID
	Args     NodeList
	TypeArgs NodeList
	Optional bool // ?. call
	IsNew    bool
}

type PropAccessData struct {
	Expr     NodeID
	Name     atom.Atom
	Optional bool
}

type ElemAccessData struct {
	Expr     NodeID
	Index    NodeID
	Optional bool
}

// ConditionalData covers both `a ? b : c` expressions.
type ConditionalData struct {
	Cond, Then, Else NodeID
}

// AsExprData covers `as`, `satisfies`, `<T>x`, and non-null `!` in one shape
// since all four attach one type/operand pair to an expression.
type AsExprData struct {
	Expr NodeID
	Type NodeID
}

type FuncData struct {
	Name       atom.Atom
	Params     NodeList
	TypeParams NodeList
	ReturnType NodeID
	Body       NodeID // Block for function bodies, Expression for arrow concise bodies
	FrameIndex int32
}

type ParamData struct {
	Name     atom.Atom
	Type     NodeID
	Init     NodeID
	Optional bool
	Rest     bool
}

type TypeParamData struct {
	Name       atom.Atom
	Constraint NodeID
	Default    NodeID
	In, Out    bool
}

type VarDeclData struct {
	Name NodeID // IdentifierBinding or a binding pattern
	Type NodeID
	Init NodeID
	// PropName is set only for an object binding element that renames a
	// property into a pattern (`{ a: b }`); atom.NoAtom otherwise, including
	// for ordinary var/let/const declarators, which have no source property.
	PropName atom.Atom
	Rest     bool
}

type VarDeclListData struct {
	Decls NodeList
	// DeclKind: 0=var 1=let 2=const, kept here rather than as a Flags bit
	// because it is a three-way enumeration, not a single toggle.
	DeclKind int32
}

type ClassData struct {
	Name       atom.Atom
	TypeParams NodeList
	Heritage   NodeList // extends/implements clauses
	Members    NodeList
}

type PropertyData struct {
	Name atom.Atom
	Type NodeID
	Init NodeID
}

type MethodData struct {
	Name       atom.Atom
	Params     NodeList
	TypeParams NodeList
	ReturnType NodeID
	Body       NodeID
}

type InterfaceData struct {
	Name       atom.Atom
	TypeParams NodeList
	Extends    NodeList
	Members    NodeList
}

type TypeAliasData struct {
	Name       atom.Atom
	TypeParams NodeList
	Type       NodeID
}

type EnumData struct {
	Name    atom.Atom
	Members NodeList
}

type EnumMemberData struct {
	Name atom.Atom
	Init NodeID
}

type ModuleData struct {
	Name atom.Atom
	Body NodeID
}

type BlockData struct {
	Statements NodeList
}

type ExprStmtData struct {
	Expr NodeID
}

type IfData struct {
	Cond, Then, Else NodeID
}

type DoData struct {
	Body, Cond NodeID
}

type WhileData struct {
	Cond, Body NodeID
}

type ForData struct {
	Init, Cond, Update, Body NodeID
}

type ForInData struct {
	Decl, Expr, Body NodeID
	Of               bool
}

type LabeledData struct {
	Label atom.Atom
	Body  NodeID
}

type ReturnData struct {
	Expr NodeID // NoNode if bare `return;`
}

type SwitchData struct {
	Expr   NodeID
	Clauses NodeList
}

type CaseClauseData struct {
	Expr       NodeID // NoNode for `default:`
	Statements NodeList
}

type ThrowData struct {
	Expr NodeID
}

type TryData struct {
	Block   NodeID
	Catch   NodeID
	Finally NodeID
}

type CatchData struct {
	Param NodeID // NoNode if no binding
	Block NodeID
}

type BreakContinueData struct {
	Label atom.Atom
}

type ObjectLitData struct {
	Properties NodeList
}

type PropAssignData struct {
	Name      atom.Atom
	Value     NodeID
	Shorthand bool
	Computed  bool
	Spread    bool
}

type ArrayLitData struct {
	Elements NodeList
}

type SpreadData struct {
	Expr NodeID
}

type ImportData struct {
	Default   atom.Atom
	Namespace atom.Atom
	Named     NodeList
	Module    atom.Atom
	TypeOnly  bool
}

type ImportSpecData struct {
	Name  atom.Atom
	Alias atom.Atom
}

type ExportData struct {
	Named    NodeList
	Module   atom.Atom // non-zero for `export { a } from "m"`; atom.NoAtom for wildcard-less local export
	Wildcard bool
	Alias    atom.Atom // non-zero namespace alias for `export * as ns from "m"`
}

type ExportSpecData struct {
	Name  atom.Atom
	Alias atom.Atom
}

type ExportAssignData struct {
	Expr      NodeID
	IsEquals  bool // `export = E` vs `export default E`
}

type BindingData struct {
	Elements NodeList // ObjectBindingPattern / ArrayBindingPattern elements
	IsObject bool
}

// --- Type nodes ---

type TypeRefData struct {
	Name     atom.Atom
	TypeArgs NodeList
}

type UnionIntersectionData struct {
	Types NodeList
}

type ArrayTypeData struct {
	Element NodeID
}

type TupleTypeData struct {
	Elements NodeList
}

type TupleMemberData struct {
	Label    atom.Atom
	Type     NodeID
	Optional bool
	Rest     bool
}

type ObjectTypeData struct {
	Members NodeList
}

type PropSigData struct {
	Name     atom.Atom
	Type     NodeID
	Optional bool
	Readonly bool
}

type MethodSigData struct {
	Name       atom.Atom
	Params     NodeList
	TypeParams NodeList
	ReturnType NodeID
}

type IndexSigData struct {
	KeyName atom.Atom
	KeyType NodeID
	Type    NodeID
	Readonly bool
}

type CallSigData struct {
	Params     NodeList
	TypeParams NodeList
	ReturnType NodeID
	IsConstruct bool
}

type FuncTypeData struct {
	Params      NodeList
	TypeParams  NodeList
	ReturnType  NodeID
	IsConstruct bool
}

type CondTypeData struct {
	Check, Extends, True, False NodeID
}

type InferTypeData struct {
	TypeParam NodeID
}

type MappedTypeData struct {
	TypeParam    NodeID // a TypeParamData node whose Constraint is the key-source
	NameType     NodeID // `as` remap expression, NoNode if absent
	Type         NodeID
	ReadonlyMod  int8 // 0 none, 1 add, -1 remove
	OptionalMod  int8 // 0 none, 1 add, -1 remove
}

type IndexedAccessData struct {
	Object NodeID
	Index  NodeID
}

// TypeOperatorData covers `keyof T`, `readonly T[]`, `unique symbol`.
type TypeOperatorData struct {
	Type NodeID
}

type TypeQueryData struct {
	Expr NodeID // identifier/qualified-name reference
}

type TemplateLitTypeData struct {
	// Literals has len(Types)+1 entries: literal chunks interleaved with
	// interpolated type spans in Types.
	Literals []atom.Atom
	Types    NodeList
}

type LiteralTypeData struct {
	Literal NodeID // the underlying literal expression node (string/number/bool/bigint)
}
