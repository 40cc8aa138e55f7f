package parser

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// consumeSemicolon implements automatic semicolon insertion: an explicit
// `;` is always consumed, and otherwise a statement terminator is implied
// by `}`, EOF, or a preceding line break before the current token.
func (p *Parser) consumeSemicolon() {
	if p.tok == scanner.Semicolon {
		p.next()
		return
	}
	if p.tok == scanner.CloseBrace || p.atEnd() || p.sc.Token().Flags&scanner.FlagPrecedingLineBreak != 0 {
		return
	}
	p.report(diag.CodeExpectedToken, p.pos(), p.end(), "expected ';'")
}

// parseStatement dispatches on the current token. Reserved keywords drive
// most of the grammar directly; contextual keywords (let, type, interface,
// enum, module/namespace, declare, async function) are disambiguated by
// isIdentText the same way expr.go and function.go resolve their own
// contextual words, since the scanner never reports them as a distinct Kind.
func (p *Parser) parseStatement() syntax.NodeID {
	if p.depth++; p.depth > maxRecursionDepth {
		p.depth--
		return p.addMissing(diag.CodeDeclarationOrStatementExpected, "statement nested too deeply")
	}
	defer func() { p.depth-- }()

	switch p.tok {
	case scanner.OpenBrace:
		return p.parseBlock()
	case scanner.Semicolon:
		start := p.pos()
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindEmptyStatement, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	case scanner.VarKeyword:
		return p.parseVariableStatement(0)
	case scanner.FunctionKeyword:
		return p.parseFunctionDeclaration(false)
	case scanner.ClassKeyword:
		return p.parseClassLike(false)
	case scanner.IfKeyword:
		return p.parseIfStatement()
	case scanner.DoKeyword:
		return p.parseDoStatement()
	case scanner.WhileKeyword:
		return p.parseWhileStatement()
	case scanner.ForKeyword:
		return p.parseForStatement()
	case scanner.ContinueKeyword:
		return p.parseBreakOrContinue(true)
	case scanner.BreakKeyword:
		return p.parseBreakOrContinue(false)
	case scanner.ReturnKeyword:
		return p.parseReturnStatement()
	case scanner.ThrowKeyword:
		return p.parseThrowStatement()
	case scanner.SwitchKeyword:
		return p.parseSwitchStatement()
	case scanner.TryKeyword:
		return p.parseTryStatement()
	case scanner.ImportKeyword:
		return p.parseImportDeclaration()
	case scanner.ExportKeyword:
		return p.parseExportDeclaration()
	case scanner.Ident:
		if stmt := p.tryParseContextualStatement(); stmt != syntax.NoNode {
			return stmt
		}
		if lbl := p.tryParse(p.tryParseLabeledStatement); lbl != syntax.NoNode {
			return lbl
		}
	}
	return p.parseExpressionStatement()
}

// tryParseContextualStatement handles the contextual-keyword-led statement
// forms: let/const declarations, interface/type-alias/enum/module
// declarations, and `async function`. Each word only starts its statement
// form when followed by what that form actually requires, so a variable or
// function named e.g. "interface" still parses as a plain expression.
func (p *Parser) tryParseContextualStatement() syntax.NodeID {
	switch {
	case p.isIdentText("let") && p.identOrPatternFollows():
		return p.parseVariableStatement(1)
	case p.isIdentText("const") && p.identOrPatternFollows():
		return p.parseVariableStatement(2)
	case p.isIdentText("interface") && p.peekIsIdentLike():
		return p.parseInterfaceDeclaration()
	case p.isIdentText("type") && p.peekIsIdentLike() && p.peekFollowedByEqualsOrTypeParam():
		return p.parseTypeAliasDeclaration()
	case p.isIdentText("enum"):
		return p.parseEnumDeclaration(false)
	case p.isIdentText("module") || p.isIdentText("namespace"):
		return p.parseModuleDeclaration()
	case p.isIdentText("declare"):
		return p.parseDeclareStatement()
	case p.isIdentText("async") && p.peekIs(scanner.FunctionKeyword):
		p.next()
		return p.parseFunctionDeclaration(true)
	}
	return syntax.NoNode
}

func (p *Parser) identOrPatternFollows() bool {
	return p.peekIs(scanner.Ident) || p.peekIs(scanner.OpenBrace) || p.peekIs(scanner.OpenBracket)
}

func (p *Parser) peekIsIdentLike() bool {
	cp := p.save()
	p.next()
	r := p.tok == scanner.Ident
	p.restore(cp)
	return r
}

// peekFollowedByEqualsOrTypeParam distinguishes `type X = ...` from a plain
// expression statement beginning with the identifier "type" (e.g. `type =
// 1;` assigning to a variable named "type").
func (p *Parser) peekFollowedByEqualsOrTypeParam() bool {
	cp := p.save()
	p.next() // 'type'
	p.next() // name
	r := p.tok == scanner.Equals || p.tok == scanner.LessThan
	p.restore(cp)
	return r
}

func (p *Parser) tryParseLabeledStatement() syntax.NodeID {
	start := p.pos()
	name := p.parseIdentifierName()
	if p.tok != scanner.Colon {
		return syntax.NoNode
	}
	p.next()
	body := p.parseStatement()
	idx := p.arena.Labeled.Add(syntax.LabeledData{Label: name, Body: body})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindLabeledStatement, Pos: int32(start), End: p.arena.Header(body).End, DataIndex: idx})
}

func (p *Parser) parseBlock() syntax.NodeID {
	start := p.pos()
	p.expect(scanner.OpenBrace, diag.CodeExpectedToken, "'{'")
	var stmts []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		before := p.pos()
		stmts = append(stmts, p.parseStatement())
		if p.pos() == before && !p.atEnd() {
			p.next()
			p.resyncBudget--
			if p.resyncBudget <= 0 {
				break
			}
		}
	}
	end := p.end()
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	idx := p.arena.Block.Add(syntax.BlockData{Statements: p.arena.AddNodeList(stmts)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindBlock, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseExpressionStatement() syntax.NodeID {
	start := p.pos()
	expr := p.parseExpression()
	p.consumeSemicolon()
	idx := p.arena.ExprStmt.Add(syntax.ExprStmtData{Expr: expr})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindExpressionStatement, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

// parseVariableStatement parses `var`/`let`/`const` declaration lists.
// declKind is 0=var 1=let 2=const; for `let`/`const` the leading contextual
// keyword has already been confirmed by the caller's lookahead but not yet
// consumed.
func (p *Parser) parseVariableStatement(declKind int32) syntax.NodeID {
	start := p.pos()
	p.next() // 'var'/'let'/'const'
	decls := p.parseVariableDeclarationList()
	p.consumeSemicolon()
	listIdx := p.arena.VarDeclList.Add(syntax.VarDeclListData{Decls: p.arena.AddNodeList(decls), DeclKind: declKind})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindVariableStatement, Pos: int32(start), End: int32(p.pos()), DataIndex: listIdx})
}

func (p *Parser) parseVariableDeclarationList() []syntax.NodeID {
	var decls []syntax.NodeID
	for {
		decls = append(decls, p.parseVariableDeclaration())
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	return decls
}

func (p *Parser) parseVariableDeclaration() syntax.NodeID {
	start := p.pos()
	name := p.parseBindingTarget()
	var typ syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Exclamation {
		// definite-assignment assertion `let x!: T`; the assertion itself
		// carries no separate AST payload, only gating initializer checks.
		p.next()
	}
	if p.tok == scanner.Colon {
		p.next()
		typ = p.parseType()
	}
	var init syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Equals {
		p.next()
		init = p.withoutDisallowIn(p.parseAssignmentExpression)
	}
	idx := p.arena.VarDecl.Add(syntax.VarDeclData{Name: name, Type: typ, Init: init})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindVariableDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

// parseBindingTarget parses an identifier binding or a destructuring
// (object/array) binding pattern.
func (p *Parser) parseBindingTarget() syntax.NodeID {
	start := p.pos()
	switch p.tok {
	case scanner.OpenBrace:
		return p.parseObjectBindingPattern()
	case scanner.OpenBracket:
		return p.parseArrayBindingPattern()
	default:
		name := p.parseIdentifierName()
		idx := p.arena.Ident.Add(syntax.IdentData{Name: name})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindIdentifierBinding, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}
}

func (p *Parser) parseObjectBindingPattern() syntax.NodeID {
	start := p.pos()
	p.next() // '{'
	var elems []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		elems = append(elems, p.parseBindingElement(true))
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	end := p.end()
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	idx := p.arena.Binding.Add(syntax.BindingData{Elements: p.arena.AddNodeList(elems), IsObject: true})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindObjectBindingPattern, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseArrayBindingPattern() syntax.NodeID {
	start := p.pos()
	p.next() // '['
	var elems []syntax.NodeID
	for p.tok != scanner.CloseBracket && !p.atEnd() {
		if p.tok == scanner.Comma {
			elems = append(elems, p.arena.AddNode(syntax.Header{Kind: syntax.KindOmittedExpression, Pos: int32(p.pos()), End: int32(p.pos()), DataIndex: syntax.NoData}))
			p.next()
			continue
		}
		elems = append(elems, p.parseBindingElement(false))
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	end := p.end()
	p.expect(scanner.CloseBracket, diag.CodeExpectedToken, "']'")
	idx := p.arena.Binding.Add(syntax.BindingData{Elements: p.arena.AddNodeList(elems), IsObject: false})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindArrayBindingPattern, Pos: int32(start), End: int32(end), DataIndex: idx})
}

// parseBindingElement parses one element of a binding pattern: a rest
// element, a plain/renamed/defaulted binding, or (for object patterns) a
// `key: target` rename into a nested pattern.
func (p *Parser) parseBindingElement(inObject bool) syntax.NodeID {
	start := p.pos()
	rest := false
	if p.tok == scanner.DotDotDot {
		rest = true
		p.next()
	}
	var target syntax.NodeID
	var propName atom.Atom
	if inObject && p.tok == scanner.Ident && p.peekIs(scanner.Colon) {
		propName = p.parseIdentifierName()
		p.next() // ':'
		target = p.parseBindingTarget()
	} else {
		target = p.parseBindingTarget()
	}
	var init syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Equals {
		p.next()
		init = p.parseAssignmentExpression()
	}
	idx := p.arena.VarDecl.Add(syntax.VarDeclData{Name: target, Init: init, PropName: propName, Rest: rest})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindBindingElement, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseFunctionDeclaration(isAsync bool) syntax.NodeID {
	node := p.parseFunctionExpression()
	h := p.arena.Header(node)
	h.Kind = syntax.KindFunctionDeclaration
	if isAsync {
		h.Flags |= syntax.FlagAsync
	}
	p.arena.SetHeader(node, h)
	return node
}

func (p *Parser) parseIfStatement() syntax.NodeID {
	start := p.pos()
	p.next() // 'if'
	p.expect(scanner.OpenParen, diag.CodeExpectedToken, "'('")
	cond := p.parseExpression()
	p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	then := p.parseStatement()
	var els syntax.NodeID = syntax.NoNode
	if p.tok == scanner.ElseKeyword {
		p.next()
		els = p.parseStatement()
	}
	idx := p.arena.If.Add(syntax.IfData{Cond: cond, Then: then, Else: els})
	end := p.arena.Header(then).End
	if els != syntax.NoNode {
		end = p.arena.Header(els).End
	}
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindIfStatement, Pos: int32(start), End: end, DataIndex: idx})
}

func (p *Parser) parseDoStatement() syntax.NodeID {
	start := p.pos()
	p.next() // 'do'
	body := p.parseStatement()
	p.expect(scanner.WhileKeyword, diag.CodeExpectedToken, "'while'")
	p.expect(scanner.OpenParen, diag.CodeExpectedToken, "'('")
	cond := p.parseExpression()
	p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	if p.tok == scanner.Semicolon {
		p.next()
	}
	idx := p.arena.Do.Add(syntax.DoData{Body: body, Cond: cond})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindDoStatement, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseWhileStatement() syntax.NodeID {
	start := p.pos()
	p.next() // 'while'
	p.expect(scanner.OpenParen, diag.CodeExpectedToken, "'('")
	cond := p.parseExpression()
	p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	body := p.parseStatement()
	idx := p.arena.While.Add(syntax.WhileData{Cond: cond, Body: body})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindWhileStatement, Pos: int32(start), End: p.arena.Header(body).End, DataIndex: idx})
}

// parseForStatement disambiguates for(;;), for-in, and for-of by parsing
// the head speculatively: a leading var/let/const declaration or bare
// expression, then checking for `in`/`of` before falling back to the
// three-clause classic form.
func (p *Parser) parseForStatement() syntax.NodeID {
	start := p.pos()
	p.next() // 'for'
	p.expect(scanner.OpenParen, diag.CodeExpectedToken, "'('")

	if forIn := p.tryParse(p.tryParseForInOrOf); forIn != syntax.NoNode {
		return forIn
	}

	var init syntax.NodeID = syntax.NoNode
	switch {
	case p.tok == scanner.VarKeyword:
		init = p.parseVariableStatementHeadOnly(0)
	case p.isIdentText("let") && p.identOrPatternFollows():
		init = p.parseVariableStatementHeadOnly(1)
	case p.isIdentText("const") && p.identOrPatternFollows():
		init = p.parseVariableStatementHeadOnly(2)
	case p.tok != scanner.Semicolon:
		init = p.withoutDisallowIn(p.parseExpression)
	}
	p.expect(scanner.Semicolon, diag.CodeExpectedToken, "';'")
	var cond syntax.NodeID = syntax.NoNode
	if p.tok != scanner.Semicolon {
		cond = p.parseExpression()
	}
	p.expect(scanner.Semicolon, diag.CodeExpectedToken, "';'")
	var update syntax.NodeID = syntax.NoNode
	if p.tok != scanner.CloseParen {
		update = p.parseExpression()
	}
	p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	body := p.parseStatement()
	idx := p.arena.For.Add(syntax.ForData{Init: init, Cond: cond, Update: update, Body: body})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindForStatement, Pos: int32(start), End: p.arena.Header(body).End, DataIndex: idx})
}

// parseVariableStatementHeadOnly parses a declaration list without the
// trailing semicolon, for use inside a for-head where `;` is the clause
// separator rather than a statement terminator. The `in` operator must stay
// disallowed while scanning the declarators themselves (`for (let x = a in
// b;;)` would otherwise misparse the `in` as a for-in head), but not once
// the caller moves on to the condition/update clauses.
func (p *Parser) parseVariableStatementHeadOnly(declKind int32) syntax.NodeID {
	start := p.pos()
	p.next()
	ctx := p.ctx
	p.ctx |= ctxDisallowIn
	decls := p.parseVariableDeclarationList()
	p.ctx = ctx
	idx := p.arena.VarDeclList.Add(syntax.VarDeclListData{Decls: p.arena.AddNodeList(decls), DeclKind: declKind})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindVariableDeclarationList, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) tryParseForInOrOf() syntax.NodeID {
	start := p.pos()
	var decl syntax.NodeID
	var declKind int32 = -1
	switch {
	case p.tok == scanner.VarKeyword:
		declKind = 0
	case p.isIdentText("let"):
		declKind = 1
	case p.isIdentText("const"):
		declKind = 2
	}
	if declKind >= 0 {
		p.next()
		name := p.parseBindingTarget()
		vdIdx := p.arena.VarDecl.Add(syntax.VarDeclData{Name: name})
		vd := p.arena.AddNode(syntax.Header{Kind: syntax.KindVariableDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: vdIdx})
		listIdx := p.arena.VarDeclList.Add(syntax.VarDeclListData{Decls: p.arena.AddNodeList([]syntax.NodeID{vd}), DeclKind: declKind})
		decl = p.arena.AddNode(syntax.Header{Kind: syntax.KindVariableDeclarationList, Pos: int32(start), End: int32(p.pos()), DataIndex: listIdx})
	} else {
		decl = p.withoutDisallowIn(p.parseUnary)
	}

	isOf := false
	switch {
	case p.tok == scanner.InKeyword:
	case p.isIdentText("of"):
		isOf = true
	default:
		return syntax.NoNode
	}
	p.next()
	expr := p.withoutDisallowIn(func() syntax.NodeID {
		if isOf {
			return p.parseAssignmentExpression()
		}
		return p.parseExpression()
	})
	if p.tok != scanner.CloseParen {
		return syntax.NoNode
	}
	p.next()
	body := p.parseStatement()
	idx := p.arena.ForIn.Add(syntax.ForInData{Decl: decl, Expr: expr, Body: body, Of: isOf})
	kind := syntax.KindForInStatement
	if isOf {
		kind = syntax.KindForOfStatement
	}
	return p.arena.AddNode(syntax.Header{Kind: kind, Pos: int32(start), End: p.arena.Header(body).End, DataIndex: idx})
}

func (p *Parser) parseBreakOrContinue(isContinue bool) syntax.NodeID {
	start := p.pos()
	p.next()
	var label atom.Atom
	if p.tok == scanner.Ident && p.sc.Token().Flags&scanner.FlagPrecedingLineBreak == 0 {
		label = p.parseIdentifierName()
	}
	p.consumeSemicolon()
	idx := p.arena.BreakCont.Add(syntax.BreakContinueData{Label: label})
	kind := syntax.KindBreakStatement
	if isContinue {
		kind = syntax.KindContinueStatement
	}
	return p.arena.AddNode(syntax.Header{Kind: kind, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseReturnStatement() syntax.NodeID {
	start := p.pos()
	p.next() // 'return'
	var expr syntax.NodeID = syntax.NoNode
	if p.tok != scanner.Semicolon && p.tok != scanner.CloseBrace && !p.atEnd() && p.sc.Token().Flags&scanner.FlagPrecedingLineBreak == 0 {
		expr = p.parseExpression()
	}
	p.consumeSemicolon()
	idx := p.arena.Return.Add(syntax.ReturnData{Expr: expr})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindReturnStatement, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseThrowStatement() syntax.NodeID {
	start := p.pos()
	p.next() // 'throw'
	expr := p.parseExpression()
	p.consumeSemicolon()
	idx := p.arena.Throw.Add(syntax.ThrowData{Expr: expr})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindThrowStatement, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseSwitchStatement() syntax.NodeID {
	start := p.pos()
	p.next() // 'switch'
	p.expect(scanner.OpenParen, diag.CodeExpectedToken, "'('")
	expr := p.parseExpression()
	p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	p.expect(scanner.OpenBrace, diag.CodeExpectedToken, "'{'")
	var clauses []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		clauses = append(clauses, p.parseCaseClause())
	}
	end := p.end()
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	idx := p.arena.Switch.Add(syntax.SwitchData{Expr: expr, Clauses: p.arena.AddNodeList(clauses)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindSwitchStatement, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseCaseClause() syntax.NodeID {
	start := p.pos()
	var expr syntax.NodeID = syntax.NoNode
	kind := syntax.KindDefaultClause
	if p.tok == scanner.CaseKeyword {
		p.next()
		expr = p.parseExpression()
		kind = syntax.KindCaseClause
	} else {
		p.expect(scanner.DefaultKeyword, diag.CodeExpectedToken, "'case' or 'default'")
	}
	p.expect(scanner.Colon, diag.CodeExpectedToken, "':'")
	var stmts []syntax.NodeID
	for p.tok != scanner.CaseKeyword && p.tok != scanner.DefaultKeyword && p.tok != scanner.CloseBrace && !p.atEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	idx := p.arena.CaseClause.Add(syntax.CaseClauseData{Expr: expr, Statements: p.arena.AddNodeList(stmts)})
	return p.arena.AddNode(syntax.Header{Kind: kind, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseTryStatement() syntax.NodeID {
	start := p.pos()
	p.next() // 'try'
	block := p.parseBlock()
	var catch, finally syntax.NodeID = syntax.NoNode, syntax.NoNode
	if p.tok == scanner.CatchKeyword {
		catchStart := p.pos()
		p.next()
		var param syntax.NodeID = syntax.NoNode
		if p.tok == scanner.OpenParen {
			p.next()
			param = p.parseBindingTarget()
			if p.tok == scanner.Colon {
				p.next()
				p.parseType() // catch-clause annotations are restricted to any/unknown; parsed and discarded positionally
			}
			p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
		}
		catchBlock := p.parseBlock()
		cIdx := p.arena.Catch.Add(syntax.CatchData{Param: param, Block: catchBlock})
		catch = p.arena.AddNode(syntax.Header{Kind: syntax.KindCatchClause, Pos: int32(catchStart), End: p.arena.Header(catchBlock).End, DataIndex: cIdx})
	}
	if p.tok == scanner.FinallyKeyword {
		p.next()
		finally = p.parseBlock()
	}
	idx := p.arena.Try.Add(syntax.TryData{Block: block, Catch: catch, Finally: finally})
	end := p.arena.Header(block).End
	switch {
	case finally != syntax.NoNode:
		end = p.arena.Header(finally).End
	case catch != syntax.NoNode:
		end = p.arena.Header(catch).End
	}
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindTryStatement, Pos: int32(start), End: end, DataIndex: idx})
}

// --- Declarations ---

func (p *Parser) parseInterfaceDeclaration() syntax.NodeID {
	start := p.pos()
	p.next() // 'interface'
	name := p.parseIdentifierName()
	var typeParams []syntax.NodeID
	if p.tok == scanner.LessThan {
		typeParams = p.parseTypeParameters()
	}
	var extends []syntax.NodeID
	if p.tok == scanner.ExtendsKeyword {
		p.next()
		extends = append(extends, p.parseTypeRef())
		for p.tok == scanner.Comma {
			p.next()
			extends = append(extends, p.parseTypeRef())
		}
	}
	p.expect(scanner.OpenBrace, diag.CodeExpectedToken, "'{'")
	var members []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		members = append(members, p.parseObjectTypeMember())
		if p.tok == scanner.Comma || p.tok == scanner.Semicolon {
			p.next()
		}
	}
	end := p.end()
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	idx := p.arena.Interface.Add(syntax.InterfaceData{
		Name: name, TypeParams: p.arena.AddNodeList(typeParams),
		Extends: p.arena.AddNodeList(extends), Members: p.arena.AddNodeList(members),
	})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindInterfaceDeclaration, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseTypeAliasDeclaration() syntax.NodeID {
	start := p.pos()
	p.next() // 'type'
	name := p.parseIdentifierName()
	var typeParams []syntax.NodeID
	if p.tok == scanner.LessThan {
		typeParams = p.parseTypeParameters()
	}
	p.expect(scanner.Equals, diag.CodeExpectedToken, "'='")
	typ := p.parseType()
	p.consumeSemicolon()
	idx := p.arena.TypeAlias.Add(syntax.TypeAliasData{Name: name, TypeParams: p.arena.AddNodeList(typeParams), Type: typ})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeAliasDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseEnumDeclaration(isConst bool) syntax.NodeID {
	start := p.pos()
	p.next() // 'enum'
	name := p.parseIdentifierName()
	p.expect(scanner.OpenBrace, diag.CodeExpectedToken, "'{'")
	var members []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		members = append(members, p.parseEnumMember())
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	end := p.end()
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	idx := p.arena.Enum.Add(syntax.EnumData{Name: name, Members: p.arena.AddNodeList(members)})
	flags := syntax.FlagNone
	if isConst {
		flags |= syntax.FlagConst
	}
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindEnumDeclaration, Flags: flags, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseEnumMember() syntax.NodeID {
	start := p.pos()
	var name atom.Atom
	if p.tok == scanner.StringLiteral {
		name = p.sc.Token().Atom
		p.next()
	} else {
		name = p.parseIdentifierName()
	}
	var init syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Equals {
		p.next()
		init = p.parseAssignmentExpression()
	}
	idx := p.arena.EnumMember.Add(syntax.EnumMemberData{Name: name, Init: init})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindEnumMember, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

// parseModuleDeclaration parses `module`/`namespace` X { ... } as well as
// the ambient `module "specifier" { ... }` form used for global augmentation
// of an external module.
func (p *Parser) parseModuleDeclaration() syntax.NodeID {
	start := p.pos()
	// `declare global { ... }` names the augmentation "global" itself --
	// there is no separate binding name to parse, unlike `module X { ... }`.
	isGlobal := p.isIdentText("global")
	p.next() // 'module'/'namespace'/'global'
	var name atom.Atom
	switch {
	case isGlobal:
		name = p.arena.Interner.Intern("global")
	case p.tok == scanner.StringLiteral:
		name = p.sc.Token().Atom
		p.next()
	default:
		name = p.parseIdentifierName()
		for p.tok == scanner.Dot {
			p.next()
			p.parseIdentifierName()
		}
	}
	var body syntax.NodeID = syntax.NoNode
	if p.tok == scanner.OpenBrace {
		body = p.parseModuleBlock()
	} else {
		p.consumeSemicolon()
	}
	idx := p.arena.Module.Add(syntax.ModuleData{Name: name, Body: body})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindModuleDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseModuleBlock() syntax.NodeID {
	start := p.pos()
	p.next() // '{'
	var stmts []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	end := p.end()
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	idx := p.arena.Block.Add(syntax.BlockData{Statements: p.arena.AddNodeList(stmts)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindModuleBlock, Pos: int32(start), End: int32(end), DataIndex: idx})
}

// parseDeclareStatement parses `declare` ambient declarations: var/let/const,
// function, class, interface (redundant but legal), type alias, enum,
// module/namespace/global. Ambient context suppresses initializers/bodies
// via ctxAmbient; the individual declaration parsers tolerate their absence
// since a missing body/init is always legal, just sometimes semantically
// wrong, which is the binder's concern, not the parser's.
func (p *Parser) parseDeclareStatement() syntax.NodeID {
	p.next() // 'declare'
	savedCtx := p.ctx
	p.ctx |= ctxAmbient
	var decl syntax.NodeID
	switch {
	case p.tok == scanner.VarKeyword:
		decl = p.parseVariableStatement(0)
	case p.isIdentText("let"):
		decl = p.parseVariableStatement(1)
	case p.isIdentText("const"):
		decl = p.parseVariableStatement(2)
	case p.tok == scanner.FunctionKeyword:
		decl = p.parseFunctionDeclaration(false)
	case p.tok == scanner.ClassKeyword:
		decl = p.parseClassLike(false)
	case p.isIdentText("interface"):
		decl = p.parseInterfaceDeclaration()
	case p.isIdentText("type"):
		decl = p.parseTypeAliasDeclaration()
	case p.isIdentText("enum"):
		decl = p.parseEnumDeclaration(false)
	case p.isIdentText("module") || p.isIdentText("namespace") || p.isIdentText("global"):
		decl = p.parseModuleDeclaration()
	default:
		decl = p.addMissing(diag.CodeDeclarationOrStatementExpected, "declaration expected")
	}
	p.ctx = savedCtx
	h := p.arena.Header(decl)
	h.Flags |= syntax.FlagAmbient
	p.arena.SetHeader(decl, h)
	return decl
}

// --- Imports/exports ---

func (p *Parser) parseImportDeclaration() syntax.NodeID {
	start := p.pos()
	p.next() // 'import'

	typeOnly := false
	if p.isIdentText("type") && !p.peekIsIdent("from") && !p.peekIs(scanner.Comma) {
		typeOnly = true
		p.next()
	}

	// `import "specifier";` side-effect-only import.
	if p.tok == scanner.StringLiteral {
		module := p.sc.Token().Atom
		p.next()
		p.consumeSemicolon()
		idx := p.arena.Import.Add(syntax.ImportData{Module: module, TypeOnly: typeOnly})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindImportDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}

	// `import name = require("m")` / `import name = Other.Qualified`.
	if p.tok == scanner.Ident && p.peekIs(scanner.Equals) {
		name := p.parseIdentifierName()
		p.next() // '='
		var module atom.Atom
		if p.consumeIdentText("require") {
			p.expect(scanner.OpenParen, diag.CodeExpectedToken, "'('")
			module = p.sc.Token().Atom
			p.expect(scanner.StringLiteral, diag.CodeExpectedToken, "string literal")
			p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
		} else {
			p.parseIdentifierName()
			for p.tok == scanner.Dot {
				p.next()
				p.parseIdentifierName()
			}
		}
		p.consumeSemicolon()
		idx := p.arena.Import.Add(syntax.ImportData{Default: name, Module: module, TypeOnly: typeOnly})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindImportDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}

	var def, ns atom.Atom
	var named []syntax.NodeID
	if p.tok == scanner.Ident {
		def = p.parseIdentifierName()
		if p.tok == scanner.Comma {
			p.next()
		}
	}
	if p.tok == scanner.Star {
		p.next()
		if !p.consumeIdentText("as") {
			p.report(diag.CodeExpectedToken, p.pos(), p.end(), "expected 'as'")
		}
		ns = p.parseIdentifierName()
	} else if p.tok == scanner.OpenBrace {
		named = p.parseNamedImportOrExportList(true)
	}
	if !p.consumeIdentText("from") {
		p.report(diag.CodeExpectedToken, p.pos(), p.end(), "expected 'from'")
	}
	module := p.sc.Token().Atom
	p.expect(scanner.StringLiteral, diag.CodeExpectedToken, "string literal")
	p.consumeSemicolon()
	idx := p.arena.Import.Add(syntax.ImportData{Default: def, Namespace: ns, Named: p.arena.AddNodeList(named), Module: module, TypeOnly: typeOnly})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindImportDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseNamedImportOrExportList(isImport bool) []syntax.NodeID {
	p.next() // '{'
	var specs []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		start := p.pos()
		if p.isIdentText("type") && !p.peekIsIdent("as") && !p.peekIs(scanner.Comma) && !p.peekIs(scanner.CloseBrace) {
			p.next()
		}
		name := p.parseIdentifierName()
		alias := atom.NoAtom
		if p.consumeIdentText("as") {
			alias = p.parseIdentifierName()
		}
		if isImport {
			idx := p.arena.ImportSpec.Add(syntax.ImportSpecData{Name: name, Alias: alias})
			specs = append(specs, p.arena.AddNode(syntax.Header{Kind: syntax.KindImportSpecifier, Pos: int32(start), End: int32(p.pos()), DataIndex: idx}))
		} else {
			idx := p.arena.ExportSpec.Add(syntax.ExportSpecData{Name: name, Alias: alias})
			specs = append(specs, p.arena.AddNode(syntax.Header{Kind: syntax.KindExportSpecifier, Pos: int32(start), End: int32(p.pos()), DataIndex: idx}))
		}
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	return specs
}

// parseExportDeclaration covers every `export` form: default export,
// `export =`, named exports (with optional re-export `from`), wildcard
// re-export (with optional namespace alias), and an exported declaration.
func (p *Parser) parseExportDeclaration() syntax.NodeID {
	start := p.pos()
	p.next() // 'export'

	if p.tok == scanner.Equals {
		p.next()
		expr := p.parseExpression()
		p.consumeSemicolon()
		idx := p.arena.ExportAssign.Add(syntax.ExportAssignData{Expr: expr, IsEquals: true})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindExportAssignment, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}
	if p.tok == scanner.DefaultKeyword {
		p.next()
		var expr syntax.NodeID
		switch {
		case p.tok == scanner.FunctionKeyword:
			expr = p.parseFunctionDeclaration(false)
		case p.isIdentText("async") && p.peekIs(scanner.FunctionKeyword):
			p.next()
			expr = p.parseFunctionDeclaration(true)
		case p.tok == scanner.ClassKeyword:
			expr = p.parseClassLike(false)
		default:
			expr = p.parseAssignmentExpression()
			p.consumeSemicolon()
		}
		idx := p.arena.ExportAssign.Add(syntax.ExportAssignData{Expr: expr, IsEquals: false})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindExportAssignment, Flags: syntax.FlagDefaultExport, Pos: int32(start), End: p.arena.Header(expr).End, DataIndex: idx})
	}
	if p.tok == scanner.Star {
		p.next()
		alias := atom.NoAtom
		wildcard := true
		if p.consumeIdentText("as") {
			alias = p.parseIdentifierName()
		}
		if !p.consumeIdentText("from") {
			p.report(diag.CodeExpectedToken, p.pos(), p.end(), "expected 'from'")
		}
		module := p.sc.Token().Atom
		p.expect(scanner.StringLiteral, diag.CodeExpectedToken, "string literal")
		p.consumeSemicolon()
		idx := p.arena.Export.Add(syntax.ExportData{Module: module, Wildcard: wildcard, Alias: alias})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindExportDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}
	if p.tok == scanner.OpenBrace {
		named := p.parseNamedImportOrExportList(false)
		module := atom.NoAtom
		if p.consumeIdentText("from") {
			module = p.sc.Token().Atom
			p.expect(scanner.StringLiteral, diag.CodeExpectedToken, "string literal")
		}
		p.consumeSemicolon()
		idx := p.arena.Export.Add(syntax.ExportData{Named: p.arena.AddNodeList(named), Module: module})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindExportDeclaration, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}

	// `export` directly in front of a declaration: parse the declaration and
	// mark it exported rather than wrapping it, so the binder sees the same
	// declaration node shape whether or not it is exported.
	decl := p.parseStatement()
	h := p.arena.Header(decl)
	h.Flags |= syntax.FlagExported
	p.arena.SetHeader(decl, h)
	return decl
}
