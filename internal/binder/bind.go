package binder

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// declKind mirrors syntax.VarDeclListData.DeclKind's three-way enumeration.
const (
	declVar   int32 = 0
	declLet   int32 = 1
	declConst int32 = 2
)

// Result is everything one file's bind pass produces: the symbol table,
// scope graph, flow graph, this file's export surface, and any `declare
// global { ... }` augmentation bodies collected along the way.
type Result struct {
	Symbols     *Table
	Scopes      *ScopeTable
	Flow        *FlowGraph
	Exports     *ModuleExports
	ModuleScope ScopeID

	// GlobalAugmentations maps a name to every interface/type-alias
	// declaration found inside a `declare global { ... }` body across the
	// file, merged with the library's own globals at type-resolution
	// time rather than scoped to this module.
	GlobalAugmentations map[atom.Atom][]syntax.NodeID

	// NodeScopes records, for every expression and type-annotation node
	// bind encountered, the ScopeID names within it resolve against. The
	// checker consults this instead of re-deriving scope by re-walking
	// statements: bind's scope graph is the single source of truth, and
	// bind is the only pass that ever mutates it.
	NodeScopes map[syntax.NodeID]ScopeID

	// NodeFlow records, for every statement node, the FlowNodeID control
	// reaches it through -- the position a reference inside that statement
	// should narrow against. The checker positions itself at this node
	// before typing a statement's expressions rather than re-deriving flow
	// by re-walking the statement tree a second time.
	NodeFlow map[syntax.NodeID]FlowNodeID
}

// Binder walks one file's syntax.Arena and accumulates a Result. A Binder
// is single-use: construct one per file via NewBinder, call Bind once.
type Binder struct {
	arena *syntax.Arena
	bag   *diag.Bag
	file  string

	symbols *Table
	scopes  *ScopeTable
	flow    *FlowGraph
	exports *ModuleExports

	augmentations map[atom.Atom][]syntax.NodeID

	// inGlobalAugmentation redirects interface/type-alias declarations
	// into augmentations instead of the current scope.
	inGlobalAugmentation bool

	nodeScopes map[syntax.NodeID]ScopeID
	nodeFlow   map[syntax.NodeID]FlowNodeID
}

func NewBinder(arena *syntax.Arena, bag *diag.Bag, file string) *Binder {
	return &Binder{
		arena:         arena,
		bag:           bag,
		file:          file,
		symbols:       NewTable(),
		scopes:        NewScopeTable(),
		flow:          NewFlowGraph(),
		exports:       NewModuleExports(file),
		augmentations: make(map[atom.Atom][]syntax.NodeID),
		nodeScopes:    make(map[syntax.NodeID]ScopeID),
		nodeFlow:      make(map[syntax.NodeID]FlowNodeID),
	}
}

// Bind runs the two-pass bind (hoist, then statement bind) over root, a
// KindSourceFile node, and returns the accumulated Result.
func Bind(arena *syntax.Arena, root syntax.NodeID, bag *diag.Bag, file string) *Result {
	b := NewBinder(arena, bag, file)
	return b.bindFile(root)
}

func (b *Binder) bindFile(root syntax.NodeID) *Result {
	moduleScope := b.scopes.New(ScopeModule, NoScope, root)
	stmts := b.blockStatements(root)

	b.hoist(moduleScope, stmts)

	start := b.flow.start()
	b.bindStatements(moduleScope, start, stmts)

	return &Result{
		Symbols:             b.symbols,
		Scopes:              b.scopes,
		Flow:                b.flow,
		Exports:             b.exports,
		ModuleScope:         moduleScope,
		GlobalAugmentations: b.augmentations,
		NodeScopes:          b.nodeScopes,
		NodeFlow:            b.nodeFlow,
	}
}

func (b *Binder) blockStatements(n syntax.NodeID) []syntax.NodeID {
	h := b.arena.Header(n)
	data := b.arena.Block.Get(h.DataIndex)
	return b.arena.Nodes(data.Statements)
}

// --- Pass 1: hoisting ---

// hoist predeclares `var` bindings and function declarations so a forward
// reference within the same function container resolves. It recurses into
// nested statement bodies (block/if/while/do/for/switch/try/labeled) --
// var is function-scoped, not block-scoped -- but never crosses into a
// nested function, class, or module body, each of which hoists for
// itself when the statement-bind pass reaches it.
func (b *Binder) hoist(scope ScopeID, stmts []syntax.NodeID) {
	for _, n := range stmts {
		b.hoistStatement(scope, n)
	}
}

func (b *Binder) hoistStatement(scope ScopeID, n syntax.NodeID) {
	h := b.arena.Header(n)
	switch h.Kind {
	case syntax.KindVariableStatement:
		list := b.arena.VarDeclList.Get(h.DataIndex)
		if list.DeclKind != declVar {
			return
		}
		for _, decl := range b.arena.Nodes(list.Decls) {
			b.hoistBindingNames(scope, decl)
		}
	case syntax.KindFunctionDeclaration:
		fd := b.arena.Func.Get(h.DataIndex)
		if fd.Name != atom.NoAtom {
			b.predeclareName(scope, fd.Name, FlagFunctionScopedVariable|FlagFunction)
		}
	case syntax.KindBlock:
		b.hoist(scope, b.blockStatements(n))
	case syntax.KindIfStatement:
		d := b.arena.If.Get(h.DataIndex)
		b.hoistStatement(scope, d.Then)
		if d.Else != syntax.NoNode {
			b.hoistStatement(scope, d.Else)
		}
	case syntax.KindWhileStatement:
		d := b.arena.While.Get(h.DataIndex)
		b.hoistStatement(scope, d.Body)
	case syntax.KindDoStatement:
		d := b.arena.Do.Get(h.DataIndex)
		b.hoistStatement(scope, d.Body)
	case syntax.KindForStatement:
		d := b.arena.For.Get(h.DataIndex)
		if d.Init != syntax.NoNode {
			b.hoistStatement(scope, d.Init)
		}
		b.hoistStatement(scope, d.Body)
	case syntax.KindForInStatement, syntax.KindForOfStatement:
		d := b.arena.ForIn.Get(h.DataIndex)
		if declHeader := b.arena.Header(d.Decl); declHeader.Kind == syntax.KindVariableDeclarationList {
			b.hoistStatement(scope, d.Decl)
		}
		b.hoistStatement(scope, d.Body)
	case syntax.KindSwitchStatement:
		d := b.arena.Switch.Get(h.DataIndex)
		for _, clause := range b.arena.Nodes(d.Clauses) {
			ch := b.arena.Header(clause)
			cd := b.arena.CaseClause.Get(ch.DataIndex)
			b.hoist(scope, b.arena.Nodes(cd.Statements))
		}
	case syntax.KindTryStatement:
		d := b.arena.Try.Get(h.DataIndex)
		b.hoistStatement(scope, d.Block)
		if d.Catch != syntax.NoNode {
			ch := b.arena.Header(d.Catch)
			cd := b.arena.Catch.Get(ch.DataIndex)
			b.hoistStatement(scope, cd.Block)
		}
		if d.Finally != syntax.NoNode {
			b.hoistStatement(scope, d.Finally)
		}
	case syntax.KindLabeledStatement:
		d := b.arena.Labeled.Get(h.DataIndex)
		b.hoistStatement(scope, d.Body)
	}
}

// hoistBindingNames declares every IdentifierBinding under a var
// declarator (including destructuring elements) as a function-scoped
// variable, without yet attaching type/initializer binding -- that
// happens in the statement-bind pass, which re-visits the same nodes.
func (b *Binder) hoistBindingNames(scope ScopeID, decl syntax.NodeID) {
	h := b.arena.Header(decl)
	var name syntax.NodeID
	switch h.Kind {
	case syntax.KindVariableDeclaration, syntax.KindBindingElement:
		name = b.arena.VarDecl.Get(h.DataIndex).Name
	default:
		return
	}
	b.hoistBindingTarget(scope, name, decl)
}

func (b *Binder) hoistBindingTarget(scope ScopeID, target, declNode syntax.NodeID) {
	if target == syntax.NoNode {
		return
	}
	th := b.arena.Header(target)
	switch th.Kind {
	case syntax.KindIdentifierBinding:
		name := b.arena.Ident.Get(th.DataIndex).Name
		b.predeclareName(scope, name, FlagFunctionScopedVariable)
	case syntax.KindObjectBindingPattern, syntax.KindArrayBindingPattern:
		bd := b.arena.Binding.Get(th.DataIndex)
		for _, el := range b.arena.Nodes(bd.Elements) {
			if b.arena.Header(el).Kind == syntax.KindOmittedExpression {
				continue
			}
			b.hoistBindingNames(scope, el)
		}
	}
}

// --- Name declaration ---

// predeclareName registers name in scope during the hoist pass so a
// forward reference within the same container resolves, without
// attaching a declaration node. The statement-bind pass calls declare
// (or declareVar) against the same AST node once it actually reaches
// it; predeclareName must not also append to Declarations or every
// hoisted var/function would be double-counted.
func (b *Binder) predeclareName(scope ScopeID, name atom.Atom, flags Flags) {
	sc := b.scopes.Get(scope)
	if existing, ok := sc.Names[name]; ok {
		b.symbols.Get(existing).Flags |= flags
		return
	}
	id := b.symbols.New(name, flags)
	sc.Names[name] = id
}

// declare implements spec.md's declare(name, flags, node, exported):
// complete a symbol the hoist pass predeclared (one with no Declarations
// yet), merge into an existing symbol when CanMerge allows it, else report a
// duplicate-identifier diagnostic and keep the original symbol (the
// malformed redeclaration still gets a node in Declarations so downstream
// checking can attach a best-effort type to it).
func (b *Binder) declare(scope ScopeID, name atom.Atom, flags Flags, node syntax.NodeID, exported bool) SymbolID {
	sc := b.scopes.Get(scope)
	if existing, ok := sc.Names[name]; ok {
		sym := b.symbols.Get(existing)
		if len(sym.Declarations) == 0 || CanMerge(sym.Flags, flags) {
			sym.Flags |= flags
			sym.Declarations = append(sym.Declarations, node)
			if sym.ValueDecl == syntax.NoNode {
				sym.ValueDecl = node
			}
			sym.Exported = sym.Exported || exported
			return existing
		}
		nh := b.arena.Header(node)
		b.bag.Report(diag.Diagnostic{
			Code:     diag.CodeDuplicateIdentifier,
			Severity: diag.SeverityError,
			File:     b.file,
			Start:    int(nh.Pos),
			Length:   int(nh.End - nh.Pos),
			Message:  "duplicate identifier",
		})
		sym.Declarations = append(sym.Declarations, node)
		return existing
	}
	id := b.symbols.New(name, flags)
	sym := b.symbols.Get(id)
	sym.Declarations = append(sym.Declarations, node)
	sym.ValueDecl = node
	sym.Exported = exported
	sc.Names[name] = id
	return id
}

// declareVar resolves to the function container rather than the block
// scope a `var name` statement lexically appears in, matching JS's
// function-scoping of `var`.
func (b *Binder) declareVar(scope ScopeID, name atom.Atom, node syntax.NodeID, exported bool) SymbolID {
	container := b.scopes.FunctionContainer(scope)
	return b.declare(container, name, FlagFunctionScopedVariable, node, exported)
}

// --- Pass 2: statement binding + flow construction ---

// bindStatements threads flow through stmts in order, returning the flow
// node reachable after the last statement (NoFlow if control cannot fall
// through, e.g. the list ends in `return`/`throw`).
func (b *Binder) bindStatements(scope ScopeID, flow FlowNodeID, stmts []syntax.NodeID) FlowNodeID {
	for _, n := range stmts {
		if flow == NoFlow {
			// Statements after an unconditional return/throw/continue are
			// unreachable; still bind them (so their declarations exist for
			// "used before declaration" diagnostics) but flow stays NoFlow.
			b.bindStatement(scope, NoFlow, n)
			continue
		}
		flow = b.bindStatement(scope, flow, n)
	}
	return flow
}

// bindStatement binds one statement and returns the flow node reachable
// immediately after it (NoFlow if this statement makes the remainder of
// its containing list unreachable).
func (b *Binder) bindStatement(scope ScopeID, flow FlowNodeID, n syntax.NodeID) FlowNodeID {
	b.nodeFlow[n] = flow
	h := b.arena.Header(n)
	switch h.Kind {
	case syntax.KindVariableStatement:
		return b.bindVariableStatement(scope, flow, n, h)

	case syntax.KindFunctionDeclaration:
		b.bindFunctionDeclaration(scope, n, h)
		return flow

	case syntax.KindClassDeclaration:
		b.bindClassDeclaration(scope, n, h)
		return flow

	case syntax.KindInterfaceDeclaration:
		b.bindInterfaceDeclaration(scope, n, h)
		return flow

	case syntax.KindTypeAliasDeclaration:
		d := b.arena.TypeAlias.Get(h.DataIndex)
		b.nodeScopes[n] = scope
		b.declareOrAugment(scope, d.Name, FlagTypeAlias, n, h.Flags&syntax.FlagExported != 0)
		return flow

	case syntax.KindEnumDeclaration:
		b.bindEnumDeclaration(scope, n, h)
		return flow

	case syntax.KindModuleDeclaration:
		b.bindModuleDeclaration(scope, flow, n, h)
		return flow

	case syntax.KindImportDeclaration:
		b.bindImportDeclaration(scope, n, h)
		return flow

	case syntax.KindExportDeclaration:
		b.bindExportDeclaration(scope, n, h)
		return flow

	case syntax.KindExportAssignment:
		b.bindExportAssignment(scope, n, h)
		return flow

	case syntax.KindBlock:
		// var/function hoisting for this block already happened against
		// the enclosing function container in pass 1; a nested block only
		// needs its own scope for let/const/class/interface declarations.
		inner := b.scopes.New(ScopeBlock, scope, n)
		return b.bindStatements(inner, flow, b.blockStatements(n))

	case syntax.KindExpressionStatement:
		return b.bindExpressionStatement(scope, flow, n, h)

	case syntax.KindIfStatement:
		return b.bindIfStatement(scope, flow, h)

	case syntax.KindWhileStatement:
		return b.bindWhileStatement(scope, flow, h)

	case syntax.KindDoStatement:
		return b.bindDoStatement(scope, flow, h)

	case syntax.KindForStatement:
		return b.bindForStatement(scope, flow, h)

	case syntax.KindForInStatement, syntax.KindForOfStatement:
		return b.bindForInStatement(scope, flow, h)

	case syntax.KindSwitchStatement:
		return b.bindSwitchStatement(scope, flow, h)

	case syntax.KindLabeledStatement:
		d := b.arena.Labeled.Get(h.DataIndex)
		return b.bindStatement(scope, flow, d.Body)

	case syntax.KindReturnStatement:
		d := b.arena.Return.Get(h.DataIndex)
		if d.Expr != syntax.NoNode {
			b.bindExpression(scope, d.Expr)
		}
		return NoFlow

	case syntax.KindThrowStatement:
		d := b.arena.Throw.Get(h.DataIndex)
		b.bindExpression(scope, d.Expr)
		return NoFlow

	case syntax.KindBreakStatement, syntax.KindContinueStatement:
		return NoFlow

	case syntax.KindTryStatement:
		return b.bindTryStatement(scope, flow, h)

	default:
		return flow
	}
}

func (b *Binder) bindVariableStatement(scope ScopeID, flow FlowNodeID, n syntax.NodeID, h syntax.Header) FlowNodeID {
	list := b.arena.VarDeclList.Get(h.DataIndex)
	exported := h.Flags&syntax.FlagExported != 0
	for _, decl := range b.arena.Nodes(list.Decls) {
		flow = b.bindVariableDeclarator(scope, flow, decl, list.DeclKind, exported)
	}
	return flow
}

func (b *Binder) bindVariableDeclarator(scope ScopeID, flow FlowNodeID, decl syntax.NodeID, declKind int32, exported bool) FlowNodeID {
	dh := b.arena.Header(decl)
	vd := b.arena.VarDecl.Get(dh.DataIndex)

	if vd.Type != syntax.NoNode {
		b.bindTypeNode(scope, vd.Type)
	}
	if vd.Init != syntax.NoNode {
		b.bindExpression(scope, vd.Init)
		flow = b.flow.assignment(flow, vd.Name, vd.Init)
	}
	b.bindDeclaredNames(scope, vd.Name, decl, declKind, exported)
	return flow
}

// bindDeclaredNames declares every IdentifierBinding under target,
// recursing through destructuring patterns; declKind selects var's
// function-scoping vs let/const's block-scoping.
func (b *Binder) bindDeclaredNames(scope ScopeID, target syntax.NodeID, declNode syntax.NodeID, declKind int32, exported bool) {
	if target == syntax.NoNode {
		return
	}
	th := b.arena.Header(target)
	switch th.Kind {
	case syntax.KindIdentifierBinding:
		name := b.arena.Ident.Get(th.DataIndex).Name
		if declKind == declVar {
			b.declareVar(scope, name, declNode, exported)
		} else {
			b.declare(scope, name, FlagBlockScopedVariable, declNode, exported)
		}
	case syntax.KindObjectBindingPattern, syntax.KindArrayBindingPattern:
		bd := b.arena.Binding.Get(th.DataIndex)
		for _, el := range b.arena.Nodes(bd.Elements) {
			if b.arena.Header(el).Kind == syntax.KindOmittedExpression {
				continue
			}
			eh := b.arena.Header(el)
			evd := b.arena.VarDecl.Get(eh.DataIndex)
			if evd.Init != syntax.NoNode {
				b.bindExpression(scope, evd.Init)
			}
			b.bindDeclaredNames(scope, evd.Name, el, declKind, exported)
		}
	}
}

func (b *Binder) bindFunctionDeclaration(scope ScopeID, n syntax.NodeID, h syntax.Header) {
	fd := b.arena.Func.Get(h.DataIndex)
	if fd.Name != atom.NoAtom {
		// Already predeclared by hoist; this call merges in the
		// overload-signature sense if a prior sibling shares the name.
		b.declare(scope, fd.Name, FlagFunctionScopedVariable|FlagFunction, n, h.Flags&syntax.FlagExported != 0)
	}
	b.bindFunctionLike(scope, n, &fd)
}

// bindFunctionLike binds one function-like body: selfNode is the node
// the resulting fnScope should be recorded against in NodeScopes --
// the function declaration/expression itself, or a class member node
// for a method -- or syntax.NoNode when no single node owns the scope.
func (b *Binder) bindFunctionLike(parent ScopeID, selfNode syntax.NodeID, fd *syntax.FuncData) {
	fnScope := b.scopes.New(ScopeFunction, parent, syntax.NoNode)
	if selfNode != syntax.NoNode {
		b.nodeScopes[selfNode] = fnScope
	}
	for _, tp := range b.arena.Nodes(fd.TypeParams) {
		tph := b.arena.Header(tp)
		td := b.arena.TypeParam.Get(tph.DataIndex)
		b.declare(fnScope, td.Name, FlagTypeParameter, tp, false)
	}
	for _, p := range b.arena.Nodes(fd.Params) {
		ph := b.arena.Header(p)
		pd := b.arena.Param.Get(ph.DataIndex)
		if pd.Type != syntax.NoNode {
			b.bindTypeNode(fnScope, pd.Type)
		}
		if pd.Init != syntax.NoNode {
			b.bindExpression(fnScope, pd.Init)
		}
		if pd.Name != atom.NoAtom {
			b.declare(fnScope, pd.Name, FlagFunctionScopedVariable|FlagParameter, p, false)
		}
	}
	if fd.ReturnType != syntax.NoNode {
		b.bindTypeNode(fnScope, fd.ReturnType)
	}
	if fd.Body == syntax.NoNode {
		return // ambient/overload signature: no body to bind
	}
	bh := b.arena.Header(fd.Body)
	if bh.Kind == syntax.KindBlock {
		stmts := b.blockStatements(fd.Body)
		b.hoist(fnScope, stmts)
		b.bindStatements(fnScope, b.flow.start(), stmts)
	} else {
		// Arrow function concise body: a bare expression.
		b.bindExpression(fnScope, fd.Body)
	}
}

func (b *Binder) bindClassDeclaration(scope ScopeID, n syntax.NodeID, h syntax.Header) {
	cd := b.arena.Class.Get(h.DataIndex)
	b.nodeScopes[n] = scope
	var symID SymbolID
	if cd.Name != atom.NoAtom {
		symID = b.declare(scope, cd.Name, FlagClass, n, h.Flags&syntax.FlagExported != 0)
	}
	classScope := b.scopes.New(ScopeBlock, scope, n)
	for _, tp := range b.arena.Nodes(cd.TypeParams) {
		tph := b.arena.Header(tp)
		td := b.arena.TypeParam.Get(tph.DataIndex)
		b.declare(classScope, td.Name, FlagTypeParameter, tp, false)
	}
	for _, heritage := range b.arena.Nodes(cd.Heritage) {
		b.bindTypeNode(classScope, heritage)
	}
	sym := (*Symbol)(nil)
	if symID != NoSymbol {
		sym = b.symbols.Get(symID)
		if sym.Members == nil {
			sym.Members = make(map[atom.Atom]SymbolID)
		}
	}
	for _, member := range b.arena.Nodes(cd.Members) {
		b.bindClassMember(classScope, sym, member)
	}
}

func (b *Binder) bindClassMember(scope ScopeID, owner *Symbol, member syntax.NodeID) {
	mh := b.arena.Header(member)
	switch mh.Kind {
	case syntax.KindMethodDeclaration, syntax.KindGetAccessor, syntax.KindSetAccessor, syntax.KindConstructor:
		md := b.arena.Method.Get(mh.DataIndex)
		flags := FlagMethod
		if mh.Flags&syntax.FlagStatic != 0 {
			flags |= FlagStatic
		}
		if owner != nil && md.Name != atom.NoAtom {
			owner.Members[md.Name] = b.newMember(md.Name, flags, member)
		}
		b.bindFunctionLike(scope, member, &syntax.FuncData{
			Params: md.Params, TypeParams: md.TypeParams, ReturnType: md.ReturnType, Body: md.Body,
		})
	case syntax.KindPropertyDeclaration:
		pd := b.arena.Property.Get(mh.DataIndex)
		flags := FlagProperty
		if mh.Flags&syntax.FlagStatic != 0 {
			flags |= FlagStatic
		}
		if owner != nil {
			owner.Members[pd.Name] = b.newMember(pd.Name, flags, member)
		}
		if pd.Type != syntax.NoNode {
			b.bindTypeNode(scope, pd.Type)
		}
		if pd.Init != syntax.NoNode {
			b.bindExpression(scope, pd.Init)
		}
	}
}

func (b *Binder) newMember(name atom.Atom, flags Flags, node syntax.NodeID) SymbolID {
	id := b.symbols.New(name, flags)
	sym := b.symbols.Get(id)
	sym.Declarations = append(sym.Declarations, node)
	sym.ValueDecl = node
	return id
}

func (b *Binder) bindInterfaceDeclaration(scope ScopeID, n syntax.NodeID, h syntax.Header) {
	id := b.arena.Interface.Get(h.DataIndex)
	b.nodeScopes[n] = scope
	symID := b.declareOrAugment(scope, id.Name, FlagInterface, n, h.Flags&syntax.FlagExported != 0)
	ifaceScope := b.scopes.New(ScopeBlock, scope, n)
	for _, tp := range b.arena.Nodes(id.TypeParams) {
		tph := b.arena.Header(tp)
		td := b.arena.TypeParam.Get(tph.DataIndex)
		b.declare(ifaceScope, td.Name, FlagTypeParameter, tp, false)
	}
	for _, ext := range b.arena.Nodes(id.Extends) {
		b.bindTypeNode(ifaceScope, ext)
	}
	if symID != NoSymbol {
		sym := b.symbols.Get(symID)
		if sym.Members == nil {
			sym.Members = make(map[atom.Atom]SymbolID)
		}
	}
	for _, member := range b.arena.Nodes(id.Members) {
		b.bindTypeMember(ifaceScope, member)
	}
}

// bindTypeMember walks a type-literal/interface member: records its scope,
// binds nested type references in property/index types, and for
// method/call/construct signatures (which carry their own type parameter
// list, scoped to that one signature) opens a fresh ScopeBlock the way
// bindFunctionLike does for an ordinary function's type parameters.
// Interface/object-type members are structural, not lexically scoped
// names, so nothing is declared into the *outer* scope here.
func (b *Binder) bindTypeMember(scope ScopeID, member syntax.NodeID) {
	mh := b.arena.Header(member)
	b.nodeScopes[member] = scope
	switch mh.Kind {
	case syntax.KindPropertySignature:
		d := b.arena.PropSig.Get(mh.DataIndex)
		if d.Type != syntax.NoNode {
			b.bindTypeNode(scope, d.Type)
		}
	case syntax.KindMethodSignature:
		d := b.arena.MethodSig.Get(mh.DataIndex)
		sigScope := b.bindSignatureTypeParams(scope, member, d.TypeParams)
		for _, p := range b.arena.Nodes(d.Params) {
			ph := b.arena.Header(p)
			pd := b.arena.Param.Get(ph.DataIndex)
			if pd.Type != syntax.NoNode {
				b.bindTypeNode(sigScope, pd.Type)
			}
		}
		if d.ReturnType != syntax.NoNode {
			b.bindTypeNode(sigScope, d.ReturnType)
		}
	case syntax.KindIndexSignature:
		d := b.arena.IndexSig.Get(mh.DataIndex)
		if d.KeyType != syntax.NoNode {
			b.bindTypeNode(scope, d.KeyType)
		}
		if d.Type != syntax.NoNode {
			b.bindTypeNode(scope, d.Type)
		}
	case syntax.KindCallSignature, syntax.KindConstructSignature:
		d := b.arena.CallSig.Get(mh.DataIndex)
		sigScope := b.bindSignatureTypeParams(scope, member, d.TypeParams)
		for _, p := range b.arena.Nodes(d.Params) {
			ph := b.arena.Header(p)
			pd := b.arena.Param.Get(ph.DataIndex)
			if pd.Type != syntax.NoNode {
				b.bindTypeNode(sigScope, pd.Type)
			}
		}
		if d.ReturnType != syntax.NoNode {
			b.bindTypeNode(sigScope, d.ReturnType)
		}
	}
}

// bindSignatureTypeParams opens a ScopeBlock for a method/call/construct
// signature's own type parameters (if any) and declares them into it,
// returning that scope; if typeParams is empty it returns scope unchanged
// so a non-generic signature doesn't pay for an unused scope.
func (b *Binder) bindSignatureTypeParams(scope ScopeID, member syntax.NodeID, typeParams syntax.NodeList) ScopeID {
	if typeParams.Len == 0 {
		return scope
	}
	sigScope := b.scopes.New(ScopeBlock, scope, member)
	b.nodeScopes[member] = sigScope
	for _, tp := range b.arena.Nodes(typeParams) {
		tph := b.arena.Header(tp)
		td := b.arena.TypeParam.Get(tph.DataIndex)
		b.declare(sigScope, td.Name, FlagTypeParameter, tp, false)
		if td.Constraint != syntax.NoNode {
			b.bindTypeNode(sigScope, td.Constraint)
		}
	}
	return sigScope
}

func (b *Binder) bindEnumDeclaration(scope ScopeID, n syntax.NodeID, h syntax.Header) {
	ed := b.arena.Enum.Get(h.DataIndex)
	b.nodeScopes[n] = scope
	symID := b.declare(scope, ed.Name, FlagEnum, n, h.Flags&syntax.FlagExported != 0)
	sym := b.symbols.Get(symID)
	if sym.Members == nil {
		sym.Members = make(map[atom.Atom]SymbolID)
	}
	for _, member := range b.arena.Nodes(ed.Members) {
		mh := b.arena.Header(member)
		md := b.arena.EnumMember.Get(mh.DataIndex)
		sym.Members[md.Name] = b.newMember(md.Name, FlagEnumMember, member)
		if md.Init != syntax.NoNode {
			b.bindExpression(scope, md.Init)
		}
	}
}

// bindModuleDeclaration covers both `module X.Y { ... }` / `namespace N {
// ... }` and `declare global { ... }`: the latter is recognized by name
// being the reserved "global" spelling and redirects its body's
// interface/type-alias declarations into augmentations instead of a
// nested module symbol.
func (b *Binder) bindModuleDeclaration(scope ScopeID, flow FlowNodeID, n syntax.NodeID, h syntax.Header) {
	md := b.arena.Module.Get(h.DataIndex)
	b.nodeScopes[n] = scope
	if h.Flags&syntax.FlagAmbient != 0 && b.arena.Interner.Text(md.Name) == "global" {
		wasAugmenting := b.inGlobalAugmentation
		b.inGlobalAugmentation = true
		if md.Body != syntax.NoNode {
			stmts := b.blockStatements(md.Body)
			moduleAugScope := b.scopes.New(ScopeBlock, scope, n)
			b.bindStatements(moduleAugScope, flow, stmts)
		}
		b.inGlobalAugmentation = wasAugmenting
		return
	}

	symID := b.declare(scope, md.Name, FlagValueModule|FlagNamespaceModule, n, h.Flags&syntax.FlagExported != 0)
	sym := b.symbols.Get(symID)
	if sym.Members == nil {
		sym.Members = make(map[atom.Atom]SymbolID)
	}
	if sym.Exports == nil {
		sym.Exports = make(map[atom.Atom]SymbolID)
	}
	moduleScope := b.scopes.New(ScopeModule, scope, n)
	if md.Body == syntax.NoNode {
		return // ambient `declare module "specifier";` with no body
	}
	stmts := b.blockStatements(md.Body)
	b.hoist(moduleScope, stmts)
	b.bindStatements(moduleScope, b.flow.start(), stmts)
	// Export every exported name declared directly in the namespace body
	// as a member of the namespace's own symbol, so `N.x` resolves.
	for name, id := range b.scopes.Get(moduleScope).Names {
		if b.symbols.Get(id).Exported {
			sym.Members[name] = id
			sym.Exports[name] = id
		}
	}
}

// declareOrAugment declares name normally, unless a `declare global { }`
// body is currently being bound, in which case the declaration is
// recorded into GlobalAugmentations instead of the enclosing scope.
func (b *Binder) declareOrAugment(scope ScopeID, name atom.Atom, flags Flags, node syntax.NodeID, exported bool) SymbolID {
	if b.inGlobalAugmentation {
		b.augmentations[name] = append(b.augmentations[name], node)
		return NoSymbol
	}
	return b.declare(scope, name, flags, node, exported)
}

func (b *Binder) bindImportDeclaration(scope ScopeID, n syntax.NodeID, h syntax.Header) {
	imp := b.arena.Import.Get(h.DataIndex)
	if imp.Default != atom.NoAtom {
		id := b.declare(scope, imp.Default, FlagAlias, n, false)
		sym := b.symbols.Get(id)
		// Default imports resolve against the same "default"-named slot
		// bindExportAssignment files an `export default` declaration
		// under, not the zero atom (that key is reserved for `export =`).
		sym.ImportModule, sym.ImportName = imp.Module, b.arena.Interner.Intern("default")
	}
	if imp.Namespace != atom.NoAtom {
		id := b.declare(scope, imp.Namespace, FlagAlias|FlagNamespaceModule, n, false)
		sym := b.symbols.Get(id)
		sym.ImportModule = imp.Module
	}
	for _, spec := range b.arena.Nodes(imp.Named) {
		sh := b.arena.Header(spec)
		sd := b.arena.ImportSpec.Get(sh.DataIndex)
		local := sd.Alias
		if local == atom.NoAtom {
			local = sd.Name
		}
		id := b.declare(scope, local, FlagAlias, spec, false)
		sym := b.symbols.Get(id)
		sym.ImportModule, sym.ImportName = imp.Module, sd.Name
	}
}

func (b *Binder) bindExportDeclaration(scope ScopeID, n syntax.NodeID, h syntax.Header) {
	exp := b.arena.Export.Get(h.DataIndex)
	if exp.Module != atom.NoAtom {
		if exp.Wildcard {
			if exp.Alias != atom.NoAtom {
				// `export * as ns from "m"`: a namespace alias symbol, not a
				// re-export table entry.
				id := b.declare(scope, exp.Alias, FlagAlias|FlagNamespaceModule, n, true)
				b.symbols.Get(id).ImportModule = exp.Module
				return
			}
			b.exports.Wildcards = append(b.exports.Wildcards, exp.Module)
			return
		}
		for _, spec := range b.arena.Nodes(exp.Named) {
			sh := b.arena.Header(spec)
			sd := b.arena.ExportSpec.Get(sh.DataIndex)
			local := sd.Name
			exported := sd.Alias
			if exported == atom.NoAtom {
				exported = local
			}
			b.exports.Named[exported] = ReExport{Module: exp.Module, OriginalName: local}
		}
		return
	}
	for _, spec := range b.arena.Nodes(exp.Named) {
		sh := b.arena.Header(spec)
		sd := b.arena.ExportSpec.Get(sh.DataIndex)
		local := sd.Name
		exported := sd.Alias
		if exported == atom.NoAtom {
			exported = local
		}
		localSym := b.scopes.Resolve(scope, local)
		if localSym != NoSymbol {
			b.symbols.Get(localSym).Exported = true
			b.exports.Direct[exported] = localSym
		}
	}
}

func (b *Binder) bindExportAssignment(scope ScopeID, n syntax.NodeID, h syntax.Header) {
	ea := b.arena.ExportAssign.Get(h.DataIndex)
	b.bindExpression(scope, ea.Expr)
	if ea.IsEquals {
		// `export = E`: the entire module's value is E; model it as a
		// single synthetic "default"-slot symbol so Resolve(module, "")
		// degenerates cleanly for CommonJS-style single-value modules.
		id := b.symbols.New(atom.NoAtom, FlagExportValue)
		sym := b.symbols.Get(id)
		sym.Declarations = append(sym.Declarations, n)
		sym.ValueDecl = n
		sym.Exported = true
		b.exports.Direct[atom.NoAtom] = id
		return
	}
	id := b.symbols.New(b.arena.Interner.Intern("default"), FlagExportValue)
	sym := b.symbols.Get(id)
	sym.Declarations = append(sym.Declarations, n)
	sym.ValueDecl = n
	sym.Exported = true
	b.exports.Direct[sym.Name] = id
}

// --- Control-flow constructs ---

func (b *Binder) bindExpressionStatement(scope ScopeID, flow FlowNodeID, n syntax.NodeID, h syntax.Header) FlowNodeID {
	d := b.arena.ExprStmt.Get(h.DataIndex)
	return b.bindExpressionFlow(scope, flow, d.Expr)
}

// bindExpressionFlow binds expr for name resolution and, if it is a plain
// assignment (`target = value`), appends a FlowAssignment node so later
// narrowing queries can consult it; an await/yield expression instead
// appends a FlowSuspend node so narrowing knows execution may resume
// with outside state changed. Compound assignments and other
// expressions just bind their subexpressions.
func (b *Binder) bindExpressionFlow(scope ScopeID, flow FlowNodeID, expr syntax.NodeID) FlowNodeID {
	eh := b.arena.Header(expr)
	switch eh.Kind {
	case syntax.KindBinaryExpression:
		bd := b.arena.Binary.Get(eh.DataIndex)
		if bd.Op == scanner.Equals {
			b.bindExpressionByScope(scope, expr)
			return b.flow.assignment(flow, bd.Left, bd.Right)
		}
	case syntax.KindAwaitExpression, syntax.KindYieldExpression:
		b.bindExpressionByScope(scope, expr)
		return b.flow.suspend(flow, expr)
	}
	b.bindExpressionByScope(scope, expr)
	return flow
}

// bindExpressionByScope records which scope expr's free names resolve
// against and recurses into its subexpressions so any nested function,
// arrow, or class expression gets its own scope built now, during bind,
// the only pass that may mutate the scope graph. It does not resolve
// names itself (that's type_of_node's job once internal/types is
// involved) -- it only ensures every node the checker will later ask
// "what scope are you in" has an answer, and that nested function-like
// expressions are hoisted and bound exactly like declarations are.
func (b *Binder) bindExpressionByScope(scope ScopeID, expr syntax.NodeID) {
	if expr == syntax.NoNode {
		return
	}
	b.nodeScopes[expr] = scope
	h := b.arena.Header(expr)
	switch h.Kind {
	case syntax.KindFunctionExpression, syntax.KindArrowFunction:
		fd := b.arena.Func.Get(h.DataIndex)
		b.bindFunctionLike(scope, expr, &fd)
	case syntax.KindClassExpression:
		cd := b.arena.Class.Get(h.DataIndex)
		classScope := b.scopes.New(ScopeBlock, scope, expr)
		b.nodeScopes[expr] = classScope
		for _, member := range b.arena.Nodes(cd.Members) {
			b.bindClassMember(classScope, nil, member)
		}
	case syntax.KindBinaryExpression:
		d := b.arena.Binary.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Left)
		b.bindExpressionByScope(scope, d.Right)
	case syntax.KindPrefixUnaryExpression, syntax.KindPostfixUnaryExpression:
		d := b.arena.Unary.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Operand)
	case syntax.KindCallExpression, syntax.KindNewExpression:
		d := b.arena.Call.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Callee)
		for _, a := range b.arena.Nodes(d.Args) {
			b.bindExpressionByScope(scope, a)
		}
		for _, t := range b.arena.Nodes(d.TypeArgs) {
			b.bindTypeNode(scope, t)
		}
	case syntax.KindPropertyAccessExpression:
		d := b.arena.PropAccess.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Expr)
	case syntax.KindElementAccessExpression:
		d := b.arena.ElemAccess.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Expr)
		b.bindExpressionByScope(scope, d.Index)
	case syntax.KindConditionalExpression:
		d := b.arena.Conditional.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Cond)
		b.bindExpressionByScope(scope, d.Then)
		b.bindExpressionByScope(scope, d.Else)
	case syntax.KindAsExpression, syntax.KindSatisfiesExpression,
		syntax.KindTypeAssertionExpression, syntax.KindNonNullExpression,
		syntax.KindParenthesizedExpression:
		d := b.arena.AsExpr.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Expr)
		if d.Type != syntax.NoNode {
			b.bindTypeNode(scope, d.Type)
		}
	case syntax.KindArrayLiteral:
		d := b.arena.ArrayLit.Get(h.DataIndex)
		for _, el := range b.arena.Nodes(d.Elements) {
			b.bindExpressionByScope(scope, el)
		}
	case syntax.KindObjectLiteral:
		d := b.arena.ObjectLit.Get(h.DataIndex)
		for _, p := range b.arena.Nodes(d.Properties) {
			ph := b.arena.Header(p)
			switch ph.Kind {
			case syntax.KindPropertyAssignment:
				pd := b.arena.PropAssign.Get(ph.DataIndex)
				b.bindExpressionByScope(scope, pd.Value)
			case syntax.KindSpreadAssignment:
				sd := b.arena.Spread.Get(ph.DataIndex)
				b.bindExpressionByScope(scope, sd.Expr)
			}
		}
	case syntax.KindSpreadElement:
		d := b.arena.Spread.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Expr)
	case syntax.KindAwaitExpression, syntax.KindYieldExpression,
		syntax.KindDeleteExpression, syntax.KindVoidExpression,
		syntax.KindTypeofExpression:
		d := b.arena.Unary.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Operand)
	default:
		// Identifier, literal, this/super, omitted element: nothing
		// further to bind.
	}
}

// bindExpression is the general entry point used from declaration
// initializers, parameter defaults, etc.
func (b *Binder) bindExpression(scope ScopeID, expr syntax.NodeID) { b.bindExpressionByScope(scope, expr) }

// bindTypeNode records the scope a type annotation's free type-reference
// names resolve against (internal/types.Lower consults NodeScopes before
// calling Resolver.ResolveType) and recurses into structural children so
// every nested type-reference/typeof/infer node gets an answer too.
func (b *Binder) bindTypeNode(scope ScopeID, node syntax.NodeID) {
	if node == syntax.NoNode {
		return
	}
	b.nodeScopes[node] = scope
	h := b.arena.Header(node)
	switch h.Kind {
	case syntax.KindTypeReference:
		d := b.arena.TypeRef.Get(h.DataIndex)
		for _, a := range b.arena.Nodes(d.TypeArgs) {
			b.bindTypeNode(scope, a)
		}
	case syntax.KindArrayType:
		d := b.arena.ArrayType.Get(h.DataIndex)
		b.bindTypeNode(scope, d.Element)
	case syntax.KindTupleType:
		d := b.arena.TupleType.Get(h.DataIndex)
		for _, el := range b.arena.Nodes(d.Elements) {
			eh := b.arena.Header(el)
			if eh.Kind == syntax.KindNamedTupleMember {
				em := b.arena.TupleMember.Get(eh.DataIndex)
				b.bindTypeNode(scope, em.Type)
			} else {
				b.bindTypeNode(scope, el)
			}
		}
	case syntax.KindObjectType:
		d := b.arena.ObjectType.Get(h.DataIndex)
		for _, m := range b.arena.Nodes(d.Members) {
			b.bindTypeMember(scope, m)
		}
	case syntax.KindUnionType, syntax.KindIntersectionType:
		d := b.arena.UnionType.Get(h.DataIndex)
		for _, t := range b.arena.Nodes(d.Types) {
			b.bindTypeNode(scope, t)
		}
	case syntax.KindFunctionType, syntax.KindConstructorType:
		d := b.arena.FuncType.Get(h.DataIndex)
		fnScope := b.scopes.New(ScopeBlock, scope, node)
		b.nodeScopes[node] = fnScope
		for _, tp := range b.arena.Nodes(d.TypeParams) {
			tph := b.arena.Header(tp)
			td := b.arena.TypeParam.Get(tph.DataIndex)
			b.declare(fnScope, td.Name, FlagTypeParameter, tp, false)
			b.bindTypeNode(fnScope, td.Constraint)
		}
		for _, p := range b.arena.Nodes(d.Params) {
			ph := b.arena.Header(p)
			pd := b.arena.Param.Get(ph.DataIndex)
			b.bindTypeNode(fnScope, pd.Type)
		}
		b.bindTypeNode(fnScope, d.ReturnType)
	case syntax.KindConditionalType:
		d := b.arena.CondType.Get(h.DataIndex)
		b.bindTypeNode(scope, d.Check)
		b.bindTypeNode(scope, d.Extends)
		b.bindTypeNode(scope, d.True)
		b.bindTypeNode(scope, d.False)
	case syntax.KindMappedType:
		d := b.arena.MappedType.Get(h.DataIndex)
		mapScope := b.scopes.New(ScopeBlock, scope, node)
		b.nodeScopes[node] = mapScope
		tph := b.arena.Header(d.TypeParam)
		td := b.arena.TypeParam.Get(tph.DataIndex)
		b.declare(mapScope, td.Name, FlagTypeParameter, d.TypeParam, false)
		b.bindTypeNode(mapScope, td.Constraint)
		b.bindTypeNode(mapScope, d.NameType)
		b.bindTypeNode(mapScope, d.Type)
	case syntax.KindIndexedAccessType:
		d := b.arena.IndexedAccess.Get(h.DataIndex)
		b.bindTypeNode(scope, d.Object)
		b.bindTypeNode(scope, d.Index)
	case syntax.KindTypeOperatorKeyof, syntax.KindTypeOperatorReadonly, syntax.KindTypeOperatorUnique:
		d := b.arena.TypeOperator.Get(h.DataIndex)
		b.bindTypeNode(scope, d.Type)
	case syntax.KindParenthesizedType, syntax.KindRestType, syntax.KindOptionalType:
		d := b.arena.TypeOperator.Get(h.DataIndex)
		b.bindTypeNode(scope, d.Type)
	case syntax.KindTypeQuery:
		d := b.arena.TypeQuery.Get(h.DataIndex)
		b.bindExpressionByScope(scope, d.Expr)
	case syntax.KindTemplateLiteralType:
		d := b.arena.TemplateLitType.Get(h.DataIndex)
		for _, t := range b.arena.Nodes(d.Types) {
			b.bindTypeNode(scope, t)
		}
	case syntax.KindInferType:
		d := b.arena.InferType.Get(h.DataIndex)
		tph := b.arena.Header(d.TypeParam)
		td := b.arena.TypeParam.Get(tph.DataIndex)
		b.declare(scope, td.Name, FlagTypeParameter, d.TypeParam, false)
	default:
		// Keyword types, literal types, this-type: no nested references.
	}
}


func (b *Binder) bindIfStatement(scope ScopeID, flow FlowNodeID, h syntax.Header) FlowNodeID {
	d := b.arena.If.Get(h.DataIndex)
	b.bindExpression(scope, d.Cond)
	trueFlow, falseFlow := b.flow.condition(flow, d.Cond)

	thenExit := b.bindStatement(scope, trueFlow, d.Then)
	elseExit := falseFlow
	if d.Else != syntax.NoNode {
		elseExit = b.bindStatement(scope, falseFlow, d.Else)
	}
	return b.flow.join(thenExit, elseExit)
}

func (b *Binder) bindWhileStatement(scope ScopeID, flow FlowNodeID, h syntax.Header) FlowNodeID {
	d := b.arena.While.Get(h.DataIndex)
	label := b.flow.loopLabel(flow)
	b.bindExpression(scope, d.Cond)
	trueFlow, falseFlow := b.flow.condition(label, d.Cond)
	bodyExit := b.bindStatement(scope, trueFlow, d.Body)
	b.flow.patchLoopBack(label, bodyExit)
	return falseFlow
}

func (b *Binder) bindDoStatement(scope ScopeID, flow FlowNodeID, h syntax.Header) FlowNodeID {
	d := b.arena.Do.Get(h.DataIndex)
	label := b.flow.loopLabel(flow)
	bodyExit := b.bindStatement(scope, label, d.Body)
	b.bindExpression(scope, d.Cond)
	_, falseFlow := b.flow.condition(bodyExit, d.Cond)
	b.flow.patchLoopBack(label, bodyExit)
	return falseFlow
}

func (b *Binder) bindForStatement(scope ScopeID, flow FlowNodeID, h syntax.Header) FlowNodeID {
	d := b.arena.For.Get(h.DataIndex)
	forScope := b.scopes.New(ScopeBlock, scope, syntax.NoNode)
	if d.Init != syntax.NoNode {
		flow = b.bindStatement(forScope, flow, d.Init)
	}
	label := b.flow.loopLabel(flow)
	trueFlow := label
	falseFlow := NoFlow
	if d.Cond != syntax.NoNode {
		b.bindExpression(forScope, d.Cond)
		trueFlow, falseFlow = b.flow.condition(label, d.Cond)
	}
	bodyExit := b.bindStatement(forScope, trueFlow, d.Body)
	if d.Update != syntax.NoNode {
		bodyExit = b.bindExpressionFlow(forScope, bodyExit, d.Update)
	}
	b.flow.patchLoopBack(label, bodyExit)
	return falseFlow
}

func (b *Binder) bindForInStatement(scope ScopeID, flow FlowNodeID, h syntax.Header) FlowNodeID {
	d := b.arena.ForIn.Get(h.DataIndex)
	forScope := b.scopes.New(ScopeBlock, scope, syntax.NoNode)
	b.bindExpression(forScope, d.Expr)
	if dh := b.arena.Header(d.Decl); dh.Kind == syntax.KindVariableDeclarationList {
		list := b.arena.VarDeclList.Get(dh.DataIndex)
		for _, decl := range b.arena.Nodes(list.Decls) {
			dh2 := b.arena.Header(decl)
			vd := b.arena.VarDecl.Get(dh2.DataIndex)
			b.bindDeclaredNames(forScope, vd.Name, decl, list.DeclKind, false)
		}
	} else {
		b.bindExpression(forScope, d.Decl)
	}
	label := b.flow.loopLabel(flow)
	bodyExit := b.bindStatement(forScope, label, d.Body)
	b.flow.patchLoopBack(label, bodyExit)
	return label
}

func (b *Binder) bindSwitchStatement(scope ScopeID, flow FlowNodeID, h syntax.Header) FlowNodeID {
	d := b.arena.Switch.Get(h.DataIndex)
	b.bindExpression(scope, d.Expr)
	switchScope := b.scopes.New(ScopeBlock, scope, syntax.NoNode)

	var join FlowNodeID = NoFlow
	current := flow
	hasDefault := false
	for _, clause := range b.arena.Nodes(d.Clauses) {
		ch := b.arena.Header(clause)
		cd := b.arena.CaseClause.Get(ch.DataIndex)
		clauseEntry := b.flow.switchClause(current, d.Expr, cd.Expr)
		if cd.Expr == syntax.NoNode {
			hasDefault = true
		}
		exit := b.bindStatements(switchScope, clauseEntry, b.arena.Nodes(cd.Statements))
		join = b.flow.join(join, exit)
		current = clauseEntry
	}
	if !hasDefault {
		join = b.flow.join(join, flow)
	}
	return join
}

func (b *Binder) bindTryStatement(scope ScopeID, flow FlowNodeID, h syntax.Header) FlowNodeID {
	d := b.arena.Try.Get(h.DataIndex)
	tryExit := b.bindStatement(scope, flow, d.Block)

	join := tryExit
	if d.Catch != syntax.NoNode {
		ch := b.arena.Header(d.Catch)
		cd := b.arena.Catch.Get(ch.DataIndex)
		catchScope := b.scopes.New(ScopeBlock, scope, d.Catch)
		if cd.Param != syntax.NoNode {
			ph := b.arena.Header(cd.Param)
			if ph.Kind == syntax.KindIdentifierBinding {
				name := b.arena.Ident.Get(ph.DataIndex).Name
				b.declare(catchScope, name, FlagBlockScopedVariable, cd.Param, false)
			}
		}
		catchExit := b.bindStatement(catchScope, flow, cd.Block)
		join = b.flow.join(join, catchExit)
	}
	if d.Finally != syntax.NoNode {
		return b.bindStatement(scope, join, d.Finally)
	}
	return join
}
