package syntax

// PoolSnapshot captures every side pool's length alongside the header/index
// lengths, so a failed speculative parse (arrow-function lookahead, generic
// call arguments vs. comparison, JSX vs. type assertion) can truncate
// everything it appended -- arena entries created in a failed branch must
// have no outside references before truncation, per spec.md §4.3.
type PoolSnapshot struct {
	Arena Snapshot

	Ident, Literal, Binary, Unary, Call, PropAccess, ElemAccess, Conditional,
	AsExpr, Func, Param, TypeParam, VarDecl, VarDeclList, Class, Property,
	Method, Interface, TypeAlias, Enum, EnumMember, Module, Block, ExprStmt,
	If, Do, While, For, ForIn, Labeled, Return, Switch, CaseClause, Throw,
	Try, Catch, BreakCont, ObjectLit, PropAssign, ArrayLit, Spread, Import,
	ImportSpec, Export, ExportSpec, ExportAssign, Binding, TypeRef, UnionType,
	ArrayType, TupleType, TupleMember, ObjectType, PropSig, MethodSig,
	IndexSig, CallSig, FuncType, CondType, InferType, MappedType,
	IndexedAccess, TypeOperator, TypeQuery, TemplateLitType, LiteralType int32
}

// SavePools captures a PoolSnapshot of the arena's current state.
func (a *Arena) SavePools() PoolSnapshot {
	return PoolSnapshot{
		Arena: a.Save(),

		Ident: a.Ident.Len(), Literal: a.Literal.Len(), Binary: a.Binary.Len(),
		Unary: a.Unary.Len(), Call: a.Call.Len(), PropAccess: a.PropAccess.Len(),
		ElemAccess: a.ElemAccess.Len(), Conditional: a.Conditional.Len(),
		AsExpr: a.AsExpr.Len(), Func: a.Func.Len(), Param: a.Param.Len(),
		TypeParam: a.TypeParam.Len(), VarDecl: a.VarDecl.Len(),
		VarDeclList: a.VarDeclList.Len(), Class: a.Class.Len(),
		Property: a.Property.Len(), Method: a.Method.Len(),
		Interface: a.Interface.Len(), TypeAlias: a.TypeAlias.Len(),
		Enum: a.Enum.Len(), EnumMember: a.EnumMember.Len(), Module: a.Module.Len(),
		Block: a.Block.Len(), ExprStmt: a.ExprStmt.Len(), If: a.If.Len(),
		Do: a.Do.Len(), While: a.While.Len(), For: a.For.Len(), ForIn: a.ForIn.Len(),
		Labeled: a.Labeled.Len(), Return: a.Return.Len(), Switch: a.Switch.Len(),
		CaseClause: a.CaseClause.Len(), Throw: a.Throw.Len(), Try: a.Try.Len(),
		Catch: a.Catch.Len(), BreakCont: a.BreakCont.Len(), ObjectLit: a.ObjectLit.Len(),
		PropAssign: a.PropAssign.Len(), ArrayLit: a.ArrayLit.Len(), Spread: a.Spread.Len(),
		Import: a.Import.Len(), ImportSpec: a.ImportSpec.Len(), Export: a.Export.Len(),
		ExportSpec: a.ExportSpec.Len(), ExportAssign: a.ExportAssign.Len(),
		Binding: a.Binding.Len(), TypeRef: a.TypeRef.Len(), UnionType: a.UnionType.Len(),
		ArrayType: a.ArrayType.Len(), TupleType: a.TupleType.Len(),
		TupleMember: a.TupleMember.Len(), ObjectType: a.ObjectType.Len(),
		PropSig: a.PropSig.Len(), MethodSig: a.MethodSig.Len(), IndexSig: a.IndexSig.Len(),
		CallSig: a.CallSig.Len(), FuncType: a.FuncType.Len(), CondType: a.CondType.Len(),
		InferType: a.InferType.Len(), MappedType: a.MappedType.Len(),
		IndexedAccess: a.IndexedAccess.Len(), TypeOperator: a.TypeOperator.Len(),
		TypeQuery: a.TypeQuery.Len(), TemplateLitType: a.TemplateLitType.Len(),
		LiteralType: a.LiteralType.Len(),
	}
}

// RestorePools truncates the arena and every side pool back to snap.
func (a *Arena) RestorePools(snap PoolSnapshot) {
	a.Restore(snap.Arena)

	a.Ident.Truncate(snap.Ident)
	a.Literal.Truncate(snap.Literal)
	a.Binary.Truncate(snap.Binary)
	a.Unary.Truncate(snap.Unary)
	a.Call.Truncate(snap.Call)
	a.PropAccess.Truncate(snap.PropAccess)
	a.ElemAccess.Truncate(snap.ElemAccess)
	a.Conditional.Truncate(snap.Conditional)
	a.AsExpr.Truncate(snap.AsExpr)
	a.Func.Truncate(snap.Func)
	a.Param.Truncate(snap.Param)
	a.TypeParam.Truncate(snap.TypeParam)
	a.VarDecl.Truncate(snap.VarDecl)
	a.VarDeclList.Truncate(snap.VarDeclList)
	a.Class.Truncate(snap.Class)
	a.Property.Truncate(snap.Property)
	a.Method.Truncate(snap.Method)
	a.Interface.Truncate(snap.Interface)
	a.TypeAlias.Truncate(snap.TypeAlias)
	a.Enum.Truncate(snap.Enum)
	a.EnumMember.Truncate(snap.EnumMember)
	a.Module.Truncate(snap.Module)
	a.Block.Truncate(snap.Block)
	a.ExprStmt.Truncate(snap.ExprStmt)
	a.If.Truncate(snap.If)
	a.Do.Truncate(snap.Do)
	a.While.Truncate(snap.While)
	a.For.Truncate(snap.For)
	a.ForIn.Truncate(snap.ForIn)
	a.Labeled.Truncate(snap.Labeled)
	a.Return.Truncate(snap.Return)
	a.Switch.Truncate(snap.Switch)
	a.CaseClause.Truncate(snap.CaseClause)
	a.Throw.Truncate(snap.Throw)
	a.Try.Truncate(snap.Try)
	a.Catch.Truncate(snap.Catch)
	a.BreakCont.Truncate(snap.BreakCont)
	a.ObjectLit.Truncate(snap.ObjectLit)
	a.PropAssign.Truncate(snap.PropAssign)
	a.ArrayLit.Truncate(snap.ArrayLit)
	a.Spread.Truncate(snap.Spread)
	a.Import.Truncate(snap.Import)
	a.ImportSpec.Truncate(snap.ImportSpec)
	a.Export.Truncate(snap.Export)
	a.ExportSpec.Truncate(snap.ExportSpec)
	a.ExportAssign.Truncate(snap.ExportAssign)
	a.Binding.Truncate(snap.Binding)
	a.TypeRef.Truncate(snap.TypeRef)
	a.UnionType.Truncate(snap.UnionType)
	a.ArrayType.Truncate(snap.ArrayType)
	a.TupleType.Truncate(snap.TupleType)
	a.TupleMember.Truncate(snap.TupleMember)
	a.ObjectType.Truncate(snap.ObjectType)
	a.PropSig.Truncate(snap.PropSig)
	a.MethodSig.Truncate(snap.MethodSig)
	a.IndexSig.Truncate(snap.IndexSig)
	a.CallSig.Truncate(snap.CallSig)
	a.FuncType.Truncate(snap.FuncType)
	a.CondType.Truncate(snap.CondType)
	a.InferType.Truncate(snap.InferType)
	a.MappedType.Truncate(snap.MappedType)
	a.IndexedAccess.Truncate(snap.IndexedAccess)
	a.TypeOperator.Truncate(snap.TypeOperator)
	a.TypeQuery.Truncate(snap.TypeQuery)
	a.TemplateLitType.Truncate(snap.TemplateLitType)
	a.LiteralType.Truncate(snap.LiteralType)
}
