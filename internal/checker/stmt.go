package checker

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/syntax"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// CheckSourceFile is check_source_file: the top-level entry point that
// walks every statement of root (a KindSourceFile node) and reports every
// diagnostic a complete pass over the file produces. root's statements
// must have already been bound (internal/binder.Bind) against the same
// arena this Checker was constructed with.
func (c *Checker) CheckSourceFile(root syntax.NodeID) {
	h := c.arena.Header(root)
	data := c.arena.Block.Get(h.DataIndex)
	c.checkStatements(c.arena.Nodes(data.Statements))
}

func (c *Checker) checkStatements(stmts []syntax.NodeID) {
	for _, n := range stmts {
		c.checkStatement(n)
	}
}

// checkStatement positions currentFlow at the statement's own entry flow
// (recorded by bind into NodeFlow) before dispatching, so every expression
// typed while checking it narrows against the right control-flow position.
func (c *Checker) checkStatement(n syntax.NodeID) {
	if n == syntax.NoNode {
		return
	}
	prev := c.setFlow(c.bind.NodeFlow[n])
	defer c.restoreFlow(prev)

	h := c.arena.Header(n)
	switch h.Kind {
	case syntax.KindVariableStatement:
		c.checkVariableStatement(n, h)
	case syntax.KindExpressionStatement:
		d := c.arena.ExprStmt.Get(h.DataIndex)
		c.TypeOfNode(d.Expr)
	case syntax.KindFunctionDeclaration:
		c.checkFunctionDeclaration(n, h)
	case syntax.KindClassDeclaration:
		c.checkClassDeclaration(n, h)
	case syntax.KindInterfaceDeclaration, syntax.KindTypeAliasDeclaration, syntax.KindEnumDeclaration:
		c.checkNamedDeclaration(n, h)
	case syntax.KindModuleDeclaration:
		d := c.arena.Module.Get(h.DataIndex)
		if d.Body != syntax.NoNode {
			bh := c.arena.Header(d.Body)
			if bh.Kind == syntax.KindBlock {
				c.checkStatements(c.arena.Nodes(c.arena.Block.Get(bh.DataIndex).Statements))
			}
		}
	case syntax.KindBlock:
		c.checkStatements(c.arena.Nodes(c.arena.Block.Get(h.DataIndex).Statements))
	case syntax.KindIfStatement:
		d := c.arena.If.Get(h.DataIndex)
		c.TypeOfNode(d.Cond)
		c.checkStatement(d.Then)
		c.checkStatement(d.Else)
	case syntax.KindWhileStatement:
		d := c.arena.While.Get(h.DataIndex)
		c.TypeOfNode(d.Cond)
		c.checkStatement(d.Body)
	case syntax.KindDoStatement:
		d := c.arena.Do.Get(h.DataIndex)
		c.checkStatement(d.Body)
		c.TypeOfNode(d.Cond)
	case syntax.KindForStatement:
		d := c.arena.For.Get(h.DataIndex)
		c.checkStatement(d.Init)
		if d.Cond != syntax.NoNode {
			c.TypeOfNode(d.Cond)
		}
		if d.Update != syntax.NoNode {
			c.TypeOfNode(d.Update)
		}
		c.checkStatement(d.Body)
	case syntax.KindForInStatement, syntax.KindForOfStatement:
		d := c.arena.ForIn.Get(h.DataIndex)
		c.TypeOfNode(d.Expr)
		if dh := c.arena.Header(d.Decl); dh.Kind != syntax.KindVariableDeclarationList {
			c.TypeOfNode(d.Decl)
		}
		c.checkStatement(d.Body)
	case syntax.KindSwitchStatement:
		c.checkSwitchStatement(h)
	case syntax.KindLabeledStatement:
		d := c.arena.Labeled.Get(h.DataIndex)
		c.checkStatement(d.Body)
	case syntax.KindReturnStatement:
		c.checkReturnStatement(n, h)
	case syntax.KindThrowStatement:
		d := c.arena.Throw.Get(h.DataIndex)
		c.TypeOfNode(d.Expr)
	case syntax.KindTryStatement:
		c.checkTryStatement(h)
	case syntax.KindImportDeclaration, syntax.KindExportDeclaration, syntax.KindExportAssignment,
		syntax.KindBreakStatement, syntax.KindContinueStatement, syntax.KindEmptyStatement,
		syntax.KindDebuggerStatement:
		// No expression/type surface of their own to check beyond what
		// bind already resolved (import/export bindings, break/continue
		// targets are a parser/binder-level concern).
	default:
	}
}

func (c *Checker) checkVariableStatement(n syntax.NodeID, h syntax.Header) {
	list := c.arena.VarDeclList.Get(h.DataIndex)
	for _, decl := range c.arena.Nodes(list.Decls) {
		c.checkVariableDeclarator(decl)
	}
}

// checkVariableDeclarator validates that an explicitly annotated
// declaration's initializer is assignable to its annotation; an
// unannotated declaration has nothing to cross-check; both paths still
// drive TypeOfNode over Init so any diagnostics inside the initializer
// itself surface.
func (c *Checker) checkVariableDeclarator(decl syntax.NodeID) {
	dh := c.arena.Header(decl)
	if dh.Kind != syntax.KindVariableDeclaration {
		return
	}
	vd := c.arena.VarDecl.Get(dh.DataIndex)
	if vd.Init == syntax.NoNode {
		return
	}
	initType := c.TypeOfNode(vd.Init)
	if poison(initType) {
		return
	}
	if vd.Type == syntax.NoNode {
		return
	}
	declType := c.lower.Lower(c.scopeOf(vd.Type), vd.Type)
	if poison(declType) {
		return
	}
	result := types.Subtype(c.in, initType, declType, types.Bivariant)
	if !result.Bool() {
		c.report(vd.Init, diag.CodeTypeIsNotAssignableToType, "Type is not assignable to the declared type.")
	}
}

func (c *Checker) checkFunctionDeclaration(n syntax.NodeID, h syntax.Header) {
	fd := c.arena.Func.Get(h.DataIndex)
	sym := c.declaredSymbol(n)
	fnType := c.TypeOfSymbol(sym)
	ret := types.Any
	if k := c.in.Get(fnType); k.Kind == types.KindFunction {
		ret = k.Return
	}
	c.checkFunctionBody(&fd, ret)
}

// checkFunctionBody re-enters the function's own flow (bind gives every
// function body a fresh FlowStart disconnected from its enclosing
// statement's flow) and checks its statements with returnType pushed so
// checkReturnStatement can validate each `return`'s operand.
func (c *Checker) checkFunctionBody(fd *syntax.FuncData, returnType types.TypeID) {
	if fd.Body == syntax.NoNode {
		return
	}
	if !c.pushCall(fd.Body) {
		return
	}
	defer c.popCall()
	c.returnTypeStack = append(c.returnTypeStack, returnType)
	defer func() { c.returnTypeStack = c.returnTypeStack[:len(c.returnTypeStack)-1] }()

	bh := c.arena.Header(fd.Body)
	if bh.Kind == syntax.KindBlock {
		c.checkStatements(c.arena.Nodes(c.arena.Block.Get(bh.DataIndex).Statements))
		return
	}
	// Concise arrow body: a bare expression standing in for `return expr`.
	c.TypeOfNode(fd.Body)
}

func (c *Checker) checkReturnStatement(n syntax.NodeID, h syntax.Header) {
	d := c.arena.Return.Get(h.DataIndex)
	var actual types.TypeID
	if d.Expr != syntax.NoNode {
		actual = c.TypeOfNode(d.Expr)
	} else {
		actual = types.UndefinedType
	}
	if len(c.returnTypeStack) == 0 || poison(actual) {
		return
	}
	want := c.returnTypeStack[len(c.returnTypeStack)-1]
	if poison(want) {
		return
	}
	result := types.Subtype(c.in, actual, want, types.Bivariant)
	if !result.Bool() {
		node := d.Expr
		if node == syntax.NoNode {
			node = n
		}
		c.report(node, diag.CodeTypeIsNotAssignableToType, "Return type is not assignable to the function's declared return type.")
	}
}

func (c *Checker) checkClassDeclaration(n syntax.NodeID, h syntax.Header) {
	d := c.arena.Class.Get(h.DataIndex)
	sym := c.declaredSymbol(n)
	if sym != binder.NoSymbol {
		c.TypeOfSymbol(sym)
	}
	for _, member := range c.arena.Nodes(d.Members) {
		c.checkClassMember(member)
	}
}

func (c *Checker) checkClassMember(member syntax.NodeID) {
	mh := c.arena.Header(member)
	switch mh.Kind {
	case syntax.KindMethodDeclaration, syntax.KindGetAccessor, syntax.KindSetAccessor, syntax.KindConstructor:
		md := c.arena.Method.Get(mh.DataIndex)
		ret := types.Any
		if md.ReturnType != syntax.NoNode {
			ret = c.lower.Lower(c.scopeOf(md.ReturnType), md.ReturnType)
		} else {
			ret = c.inferReturnType(&syntax.FuncData{Params: md.Params, Body: md.Body})
		}
		c.checkFunctionBody(&syntax.FuncData{Params: md.Params, TypeParams: md.TypeParams, ReturnType: md.ReturnType, Body: md.Body}, ret)
	case syntax.KindPropertyDeclaration:
		pd := c.arena.Property.Get(mh.DataIndex)
		if pd.Init != syntax.NoNode {
			c.TypeOfNode(pd.Init)
		}
	}
}

// checkNamedDeclaration drives TypeOfSymbol for an interface/type-alias/
// enum declaration purely to surface whatever diagnostics resolving its
// shape produces (an unresolvable extends clause, a self-referential
// alias past the fuel limit); none of these three ever type-check a
// statement body of their own.
func (c *Checker) checkNamedDeclaration(n syntax.NodeID, h syntax.Header) {
	sym := c.declaredSymbol(n)
	if sym == binder.NoSymbol {
		return
	}
	c.TypeOfSymbol(sym)
	if h.Kind == syntax.KindEnumDeclaration {
		ed := c.arena.Enum.Get(h.DataIndex)
		for _, member := range c.arena.Nodes(ed.Members) {
			memH := c.arena.Header(member)
			emd := c.arena.EnumMember.Get(memH.DataIndex)
			if emd.Init != syntax.NoNode {
				c.TypeOfNode(emd.Init)
			}
		}
	}
}

// declaredSymbol resolves the symbol a top-level-shaped declaration node
// itself introduces. Class/interface/enum/type-alias/module declarations
// record their own *enclosing* scope in NodeScopes (bindClassDeclaration and
// its siblings set it before opening their inner member scope), so scopeOf(n)
// is already the scope to resolve the name in. A function declaration's
// NodeScopes entry is its own body scope instead (bindFunctionLike's
// selfNode exception), so that case resolves one level up via Parent.
func (c *Checker) declaredSymbol(n syntax.NodeID) binder.SymbolID {
	h := c.arena.Header(n)
	var name atom.Atom
	var scope binder.ScopeID
	switch h.Kind {
	case syntax.KindFunctionDeclaration:
		name = c.arena.Func.Get(h.DataIndex).Name
		scope = c.bind.Scopes.Get(c.scopeOf(n)).Parent
	case syntax.KindClassDeclaration:
		name = c.arena.Class.Get(h.DataIndex).Name
		scope = c.scopeOf(n)
	case syntax.KindInterfaceDeclaration:
		name = c.arena.Interface.Get(h.DataIndex).Name
		scope = c.scopeOf(n)
	case syntax.KindTypeAliasDeclaration:
		name = c.arena.TypeAlias.Get(h.DataIndex).Name
		scope = c.scopeOf(n)
	case syntax.KindEnumDeclaration:
		name = c.arena.Enum.Get(h.DataIndex).Name
		scope = c.scopeOf(n)
	default:
		return binder.NoSymbol
	}
	if name == atom.NoAtom {
		return binder.NoSymbol
	}
	return c.bind.Scopes.Resolve(scope, name)
}

func (c *Checker) checkSwitchStatement(h syntax.Header) {
	d := c.arena.Switch.Get(h.DataIndex)
	c.TypeOfNode(d.Expr)
	clauses := c.arena.Nodes(d.Clauses)
	for i, clause := range clauses {
		ch := c.arena.Header(clause)
		cd := c.arena.CaseClause.Get(ch.DataIndex)
		if cd.Expr != syntax.NoNode {
			c.TypeOfNode(cd.Expr)
		}
		stmts := c.arena.Nodes(cd.Statements)
		c.checkStatements(stmts)
		if c.opts.NoFallthroughCasesInSwitch && len(stmts) > 0 && i < len(clauses)-1 && !endsInJump(c.arena, stmts[len(stmts)-1]) {
			c.report(clause, diag.CodeTypeIsNotAssignableToType, "Fallthrough case in switch.")
		}
	}
}

// endsInJump is the shallow check noFallthroughCasesInSwitch needs: a case
// clause whose last statement is return/throw/break/continue never falls
// through regardless of what full reachability analysis would say about
// the statements before it.
func endsInJump(arena *syntax.Arena, n syntax.NodeID) bool {
	switch arena.Header(n).Kind {
	case syntax.KindReturnStatement, syntax.KindThrowStatement,
		syntax.KindBreakStatement, syntax.KindContinueStatement:
		return true
	default:
		return false
	}
}

func (c *Checker) checkTryStatement(h syntax.Header) {
	d := c.arena.Try.Get(h.DataIndex)
	c.checkStatement(d.Block)
	if d.Catch != syntax.NoNode {
		catchH := c.arena.Header(d.Catch)
		cd := c.arena.Catch.Get(catchH.DataIndex)
		c.checkStatement(cd.Block)
	}
	if d.Finally != syntax.NoNode {
		c.checkStatement(d.Finally)
	}
}
