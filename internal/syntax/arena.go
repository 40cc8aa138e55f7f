package syntax

import "github.com/oxhq/tsgroundwork/internal/atom"

// NodeID addresses a node in an Arena's dense Header array. The zero value,
// NoNode, addresses the reserved sentinel header at index 0.
type NodeID int32

// NoNode is the "absent node" sentinel.
const NoNode NodeID = 0

// Header is the fixed 16-byte-class node record: kind/flags discriminate
// the node, pos/end are byte offsets into the shared source buffer, and
// DataIndex indexes into the kind-specific side pool (or is NoData).
type Header struct {
	Kind      Kind
	Flags     Flags
	Pos       int32
	End       int32
	DataIndex int32
}

// NoData marks "no side data" in a Header.
const NoData int32 = -1

// NodeList is a range into Arena.indices, avoiding a per-node []NodeID
// allocation for child lists.
type NodeList struct {
	Start int32
	Len   int32
}

// Pool is an append-only dense array of one side-pool's typed payloads.
// Speculative parsing truncates pools back to a saved length on rollback.
type Pool[T any] struct {
	items []T
}

func (p *Pool[T]) Add(v T) int32 {
	p.items = append(p.items, v)
	return int32(len(p.items) - 1)
}

func (p *Pool[T]) Get(i int32) T { return p.items[i] }

func (p *Pool[T]) Set(i int32, v T) { p.items[i] = v }

func (p *Pool[T]) Len() int32 { return int32(len(p.items)) }

func (p *Pool[T]) Truncate(n int32) { p.items = p.items[:n] }

// Arena owns one compilation unit's Node Arena: the dense header array plus
// every kind-specific side pool. Append-only during parse; frozen (in the
// sense that nothing further appends to it) once bind/check begin reading
// it, though Go does not enforce that at the type level.
type Arena struct {
	Interner *atom.Interner

	headers []Header
	indices []NodeID // backing storage for NodeList ranges

	Ident      Pool[IdentData]
	Literal    Pool[LiteralData]
	Binary     Pool[BinaryData]
	Unary      Pool[UnaryData]
	Call       Pool[CallData]
	PropAccess Pool[PropAccessData]
	ElemAccess Pool[ElemAccessData]
	Conditional Pool[ConditionalData]
	AsExpr     Pool[AsExprData]
	Func       Pool[FuncData]
	Param      Pool[ParamData]
	TypeParam  Pool[TypeParamData]
	VarDecl    Pool[VarDeclData]
	VarDeclList Pool[VarDeclListData]
	Class      Pool[ClassData]
	Property   Pool[PropertyData]
	Method     Pool[MethodData]
	Interface  Pool[InterfaceData]
	TypeAlias  Pool[TypeAliasData]
	Enum       Pool[EnumData]
	EnumMember Pool[EnumMemberData]
	Module     Pool[ModuleData]
	Block      Pool[BlockData]
	ExprStmt   Pool[ExprStmtData]
	If         Pool[IfData]
	Do         Pool[DoData]
	While      Pool[WhileData]
	For        Pool[ForData]
	ForIn      Pool[ForInData]
	Labeled    Pool[LabeledData]
	Return     Pool[ReturnData]
	Switch     Pool[SwitchData]
	CaseClause Pool[CaseClauseData]
	Throw      Pool[ThrowData]
	Try        Pool[TryData]
	Catch      Pool[CatchData]
	BreakCont  Pool[BreakContinueData]
	ObjectLit  Pool[ObjectLitData]
	PropAssign Pool[PropAssignData]
	ArrayLit   Pool[ArrayLitData]
	Spread     Pool[SpreadData]
	Import     Pool[ImportData]
	ImportSpec Pool[ImportSpecData]
	Export     Pool[ExportData]
	ExportSpec Pool[ExportSpecData]
	ExportAssign Pool[ExportAssignData]
	Binding    Pool[BindingData]

	// Type nodes
	TypeRef      Pool[TypeRefData]
	UnionType    Pool[UnionIntersectionData]
	ArrayType    Pool[ArrayTypeData]
	TupleType    Pool[TupleTypeData]
	TupleMember  Pool[TupleMemberData]
	ObjectType   Pool[ObjectTypeData]
	PropSig      Pool[PropSigData]
	MethodSig    Pool[MethodSigData]
	IndexSig     Pool[IndexSigData]
	CallSig      Pool[CallSigData]
	FuncType     Pool[FuncTypeData]
	CondType     Pool[CondTypeData]
	InferType    Pool[InferTypeData]
	MappedType   Pool[MappedTypeData]
	IndexedAccess Pool[IndexedAccessData]
	TypeOperator Pool[TypeOperatorData]
	TypeQuery    Pool[TypeQueryData]
	TemplateLitType Pool[TemplateLitTypeData]
	LiteralType  Pool[LiteralTypeData]
}

// NewArena returns an Arena with its sentinel node 0 already allocated.
func NewArena(interner *atom.Interner) *Arena {
	a := &Arena{Interner: interner}
	a.headers = append(a.headers, Header{Kind: KindInvalid, DataIndex: NoData})
	return a
}

// AddNode appends a new header and returns its NodeID.
func (a *Arena) AddNode(h Header) NodeID {
	a.headers = append(a.headers, h)
	return NodeID(len(a.headers) - 1)
}

func (a *Arena) Header(n NodeID) Header { return a.headers[n] }

func (a *Arena) SetHeader(n NodeID, h Header) { a.headers[n] = h }

func (a *Arena) Len() int32 { return int32(len(a.headers)) }

// AddNodeList copies ids into the shared indices backing array and returns
// a NodeList range over them.
func (a *Arena) AddNodeList(ids []NodeID) NodeList {
	start := int32(len(a.indices))
	a.indices = append(a.indices, ids...)
	return NodeList{Start: start, Len: int32(len(ids))}
}

// Nodes returns the NodeIDs referenced by list.
func (a *Arena) Nodes(list NodeList) []NodeID {
	return a.indices[list.Start : list.Start+list.Len]
}

// Snapshot captures arena + index lengths for speculative-parse rollback.
// It does not snapshot side-pool lengths; SavePools/RestorePools
// (poolsnapshot.go) capture and truncate every side pool along with it,
// and parser.checkpoint uses those.
type Snapshot struct {
	Headers int32
	Indices int32
}

func (a *Arena) Save() Snapshot {
	return Snapshot{Headers: int32(len(a.headers)), Indices: int32(len(a.indices))}
}

func (a *Arena) Restore(s Snapshot) {
	a.headers = a.headers[:s.Headers]
	a.indices = a.indices[:s.Indices]
}
