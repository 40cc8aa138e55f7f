package parser

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// binaryPrecedence implements the comma(1)..exponentiation(14) ladder.
// Returns 0 for tokens that are not binary operators at expression level.
func binaryPrecedence(k scanner.Kind) int {
	switch k {
	case scanner.Comma:
		return 1
	case scanner.PipePipe, scanner.QuestionQuestion:
		return 4
	case scanner.AmpersandAmpersand:
		return 5
	case scanner.Pipe:
		return 6
	case scanner.Caret:
		return 7
	case scanner.Ampersand:
		return 8
	case scanner.EqualsEquals, scanner.ExclamationEquals, scanner.EqualsEqualsEquals, scanner.ExclamationEqualsEquals:
		return 9
	case scanner.LessThan, scanner.GreaterThan, scanner.LessThanEquals, scanner.GreaterThanEquals,
		scanner.InstanceofKeyword, scanner.InKeyword:
		return 10
	case scanner.LessThanLessThan, scanner.GreaterThanGreaterThan, scanner.GreaterThanGreaterThanGreaterThan:
		return 11
	case scanner.Plus, scanner.Minus:
		return 12
	case scanner.Star, scanner.Slash, scanner.Percent:
		return 13
	case scanner.StarStar:
		return 14
	}
	return 0
}

var assignmentOps = map[scanner.Kind]bool{
	scanner.Equals: true, scanner.PlusEquals: true, scanner.MinusEquals: true,
	scanner.StarEquals: true, scanner.StarStarEquals: true, scanner.SlashEquals: true,
	scanner.PercentEquals: true, scanner.LessThanLessThanEquals: true,
	scanner.GreaterThanGreaterThanEquals: true, scanner.GreaterThanGreaterThanGreaterThanEquals: true,
	scanner.AmpersandEquals: true, scanner.PipeEquals: true, scanner.CaretEquals: true,
	scanner.AmpersandAmpersandEquals: true, scanner.PipePipeEquals: true, scanner.QuestionQuestionEquals: true,
}

func (p *Parser) parseExpression() syntax.NodeID {
	return p.parseBinaryOrAssignment(1)
}

// parseAssignmentExpression excludes the top-level comma operator, matching
// the grammar's AssignmentExpression production; used in argument lists,
// array/object literal elements, and anywhere a bare comma must terminate
// the expression instead of chaining it.
func (p *Parser) parseAssignmentExpression() syntax.NodeID {
	return p.parseBinaryOrAssignment(2)
}

func (p *Parser) parseBinaryOrAssignment(minPrec int) syntax.NodeID {
	if p.depth++; p.depth > maxRecursionDepth {
		p.depth--
		return p.addMissing(diag.CodeExpressionExpected, "expression nested too deeply")
	}
	defer func() { p.depth-- }()

	if minPrec <= 2 {
		if arrow := p.tryParse(p.tryParseArrowFunction); arrow != syntax.NoNode {
			return arrow
		}
	}

	left := p.parseUnary()

	if minPrec <= 2 && assignmentOps[p.tok] {
		start := p.arena.Header(left).Pos
		op := p.tok
		p.next()
		right := p.parseBinaryOrAssignment(2)
		idx := p.arena.Binary.Add(syntax.BinaryData{Op: op, Left: left, Right: right})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindBinaryExpression, Pos: start, End: p.arena.Header(right).End, DataIndex: idx})
	}

	if minPrec <= 3 && p.tok == scanner.Question {
		return p.parseConditionalTail(left)
	}

	for {
		prec := binaryPrecedence(p.tok)
		if p.tok == scanner.InKeyword && p.ctx&ctxDisallowIn != 0 {
			prec = 0
		}
		if prec == 0 || prec < minPrec {
			break
		}
		op := p.tok
		start := p.arena.Header(left).Pos
		p.next()
		// '**' is right-associative; everything else left-associative.
		nextMin := prec + 1
		if op == scanner.StarStar {
			nextMin = prec
		}
		right := p.parseBinaryOrAssignment(nextMin)
		idx := p.arena.Binary.Add(syntax.BinaryData{Op: op, Left: left, Right: right})
		left = p.arena.AddNode(syntax.Header{Kind: syntax.KindBinaryExpression, Pos: start, End: p.arena.Header(right).End, DataIndex: idx})
	}
	return left
}

func (p *Parser) parseConditionalTail(cond syntax.NodeID) syntax.NodeID {
	start := p.arena.Header(cond).Pos
	p.next() // '?'
	thenE := p.withoutDisallowIn(func() syntax.NodeID { return p.parseBinaryOrAssignment(2) })
	p.expect(scanner.Colon, diag.CodeExpectedToken, "':'")
	elseE := p.parseBinaryOrAssignment(2)
	idx := p.arena.Conditional.Add(syntax.ConditionalData{Cond: cond, Then: thenE, Else: elseE})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindConditionalExpression, Pos: start, End: p.arena.Header(elseE).End, DataIndex: idx})
}

func (p *Parser) withoutDisallowIn(fn func() syntax.NodeID) syntax.NodeID {
	saved := p.ctx
	p.ctx &^= ctxDisallowIn
	r := fn()
	p.ctx = saved
	return r
}

var unaryOps = map[scanner.Kind]bool{
	scanner.Plus: true, scanner.Minus: true, scanner.Tilde: true, scanner.Exclamation: true,
	scanner.TypeofKeyword: true, scanner.VoidKeyword: true, scanner.DeleteKeyword: true,
	scanner.PlusPlus: true, scanner.MinusMinus: true,
}

func (p *Parser) parseUnary() syntax.NodeID {
	start := p.pos()
	if p.ctx&ctxInAsync != 0 && p.isIdentText("await") {
		p.next()
		operand := p.parseUnary()
		idx := p.arena.Unary.Add(syntax.UnaryData{Op: scanner.AwaitKeyword, Operand: operand, Prefix: true})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindAwaitExpression, Pos: int32(start), End: p.arena.Header(operand).End, DataIndex: idx})
	}
	if p.tok == scanner.YieldKeyword {
		p.next()
		delegate := false
		if p.tok == scanner.Star {
			delegate = true
			p.next()
		}
		var operand syntax.NodeID = syntax.NoNode
		if !p.atExpressionTerminator() {
			operand = p.parseBinaryOrAssignment(2)
		}
		idx := p.arena.Unary.Add(syntax.UnaryData{Op: scanner.YieldKeyword, Operand: operand, Prefix: delegate})
		end := int32(p.pos())
		if operand != syntax.NoNode {
			end = p.arena.Header(operand).End
		}
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindYieldExpression, Pos: int32(start), End: end, DataIndex: idx})
	}
	if unaryOps[p.tok] {
		op := p.tok
		p.next()
		operand := p.parseUnary()
		kind := syntax.KindPrefixUnaryExpression
		switch op {
		case scanner.TypeofKeyword:
			kind = syntax.KindTypeofExpression
		case scanner.VoidKeyword:
			kind = syntax.KindVoidExpression
		case scanner.DeleteKeyword:
			kind = syntax.KindDeleteExpression
		}
		idx := p.arena.Unary.Add(syntax.UnaryData{Op: op, Operand: operand, Prefix: true})
		return p.arena.AddNode(syntax.Header{Kind: kind, Pos: int32(start), End: p.arena.Header(operand).End, DataIndex: idx})
	}
	return p.parsePostfix()
}

// atExpressionTerminator reports whether the current token cannot start an
// expression, used by bare `yield;`/`return;`/`break;` handling.
func (p *Parser) atExpressionTerminator() bool {
	switch p.tok {
	case scanner.Semicolon, scanner.CloseBrace, scanner.CloseParen, scanner.CloseBracket, scanner.Colon, scanner.Comma, scanner.EOF:
		return true
	}
	return p.sc.Token().Flags&scanner.FlagPrecedingLineBreak != 0
}

func (p *Parser) parsePostfix() syntax.NodeID {
	expr := p.parseAsExpressionChain()
	for (p.tok == scanner.PlusPlus || p.tok == scanner.MinusMinus) && p.sc.Token().Flags&scanner.FlagPrecedingLineBreak == 0 {
		op := p.tok
		end := p.end()
		p.next()
		idx := p.arena.Unary.Add(syntax.UnaryData{Op: op, Operand: expr, Prefix: false})
		expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindPostfixUnaryExpression, Pos: p.arena.Header(expr).Pos, End: int32(end), DataIndex: idx})
	}
	return expr
}

// parseAsExpressionChain handles the postfix `as T`, `satisfies T`, and `!`
// (non-null assertion) productions, which chain at the same tight binding
// as member/call expressions.
func (p *Parser) parseAsExpressionChain() syntax.NodeID {
	expr := p.parseCallOrMember(p.parsePrimary())
	for {
		switch {
		case p.isIdentText("as"):
			p.next()
			t := p.parseType()
			idx := p.arena.AsExpr.Add(syntax.AsExprData{Expr: expr, Type: t})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindAsExpression, Pos: p.arena.Header(expr).Pos, End: p.arena.Header(t).End, DataIndex: idx})
		case p.isIdentText("satisfies"):
			p.next()
			t := p.parseType()
			idx := p.arena.AsExpr.Add(syntax.AsExprData{Expr: expr, Type: t})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindSatisfiesExpression, Pos: p.arena.Header(expr).Pos, End: p.arena.Header(t).End, DataIndex: idx})
		case p.tok == scanner.Exclamation && p.sc.Token().Flags&scanner.FlagPrecedingLineBreak == 0:
			end := p.end()
			p.next()
			idx := p.arena.AsExpr.Add(syntax.AsExprData{Expr: expr, Type: syntax.NoNode})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindNonNullExpression, Pos: p.arena.Header(expr).Pos, End: int32(end), DataIndex: idx})
		default:
			return expr
		}
	}
}

// parseCallOrMember builds the left-recursive chain of property access,
// element access, call, and tagged-template productions atop a primary
// expression.
func (p *Parser) parseCallOrMember(expr syntax.NodeID) syntax.NodeID {
	for {
		switch p.tok {
		case scanner.Dot:
			p.next()
			nameStart := p.pos()
			name := p.parseIdentifierName()
			idx := p.arena.PropAccess.Add(syntax.PropAccessData{Expr: expr, Name: name})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindPropertyAccessExpression, Pos: p.arena.Header(expr).Pos, End: int32(p.posOrPrev(nameStart)), DataIndex: idx})
		case scanner.QuestionDot:
			p.next()
			if p.tok == scanner.OpenParen {
				expr = p.parseCallArguments(expr, true)
				continue
			}
			if p.tok == scanner.OpenBracket {
				p.next()
				index := p.parseExpression()
				end := p.end()
				p.expect(scanner.CloseBracket, diag.CodeExpectedToken, "']'")
				idx := p.arena.ElemAccess.Add(syntax.ElemAccessData{Expr: expr, Index: index, Optional: true})
				expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindElementAccessExpression, Pos: p.arena.Header(expr).Pos, End: int32(end), DataIndex: idx})
				continue
			}
			name := p.parseIdentifierName()
			idx := p.arena.PropAccess.Add(syntax.PropAccessData{Expr: expr, Name: name, Optional: true})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindPropertyAccessExpression, Pos: p.arena.Header(expr).Pos, End: int32(p.end()), DataIndex: idx})
		case scanner.OpenBracket:
			p.next()
			index := p.parseExpression()
			end := p.end()
			p.expect(scanner.CloseBracket, diag.CodeExpectedToken, "']'")
			idx := p.arena.ElemAccess.Add(syntax.ElemAccessData{Expr: expr, Index: index})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindElementAccessExpression, Pos: p.arena.Header(expr).Pos, End: int32(end), DataIndex: idx})
		case scanner.OpenParen:
			expr = p.parseCallArguments(expr, false)
		case scanner.LessThan:
			// Ambiguous with `a < b`: speculatively parse a type-argument
			// list followed by '(' to confirm a generic call.
			if call := p.tryParse(func() syntax.NodeID { return p.tryParseGenericCall(expr) }); call != syntax.NoNode {
				expr = call
				continue
			}
			return expr
		default:
			return expr
		}
	}
}

func (p *Parser) posOrPrev(fallback int) int {
	if p.sc.Token().Start > 0 {
		return p.sc.Token().Start
	}
	return fallback
}

func (p *Parser) parseIdentifierName() atom.Atom {
	if p.tok == scanner.Ident || isKeywordToken(p.tok) {
		a := p.sc.Token().Atom
		if a == atom.NoAtom {
			a = p.arena.Interner.Intern(p.text())
		}
		p.next()
		return a
	}
	p.report(diag.CodeIdentifierExpected, p.pos(), p.end(), "expected identifier")
	return atom.NoAtom
}

func isKeywordToken(k scanner.Kind) bool {
	return k >= scanner.BreakKeyword && k <= scanner.WithKeyword
}

func (p *Parser) parseCallArguments(callee syntax.NodeID, optional bool) syntax.NodeID {
	p.next() // '('
	var args []syntax.NodeID
	for p.tok != scanner.CloseParen && !p.atEnd() {
		if p.tok == scanner.DotDotDot {
			s := p.pos()
			p.next()
			e := p.parseAssignmentExpression()
			idx := p.arena.Spread.Add(syntax.SpreadData{Expr: e})
			args = append(args, p.arena.AddNode(syntax.Header{Kind: syntax.KindSpreadElement, Pos: int32(s), End: p.arena.Header(e).End, DataIndex: idx}))
		} else {
			args = append(args, p.parseAssignmentExpression())
		}
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	end := p.end()
	p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	idx := p.arena.Call.Add(syntax.CallData{Callee: callee, Args: p.arena.AddNodeList(args), Optional: optional})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindCallExpression, Pos: p.arena.Header(callee).Pos, End: int32(end), DataIndex: idx})
}

// tryParseGenericCall speculatively parses `< TypeArgs > (`. Returns NoNode
// (failing the surrounding tryParse) if the tail isn't an argument list,
// letting the caller fall back to treating '<' as the less-than operator.
func (p *Parser) tryParseGenericCall(callee syntax.NodeID) syntax.NodeID {
	p.next() // '<'
	var typeArgs []syntax.NodeID
	for p.tok != scanner.GreaterThan && p.tok != scanner.EOF {
		typeArgs = append(typeArgs, p.parseType())
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	if p.tok != scanner.GreaterThan {
		g := p.sc.RescanGreaterThan()
		if g != scanner.GreaterThan {
			return syntax.NoNode
		}
	}
	p.next()
	if p.tok != scanner.OpenParen {
		return syntax.NoNode
	}
	call := p.parseCallArguments(callee, false)
	data := p.arena.Call.Get(p.arena.Header(call).DataIndex)
	data.TypeArgs = p.arena.AddNodeList(typeArgs)
	p.arena.Call.Set(p.arena.Header(call).DataIndex, data)
	return call
}

func (p *Parser) parsePrimary() syntax.NodeID {
	start := p.pos()
	switch p.tok {
	case scanner.NumericLiteral, scanner.BigIntLiteral:
		kind := syntax.KindNumericLiteral
		if p.tok == scanner.BigIntLiteral {
			kind = syntax.KindBigIntLiteral
		}
		idx := p.arena.Literal.Add(syntax.LiteralData{Text: p.sc.Token().Atom, NumValue: p.sc.Token().NumValue})
		end := p.end()
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: kind, Pos: int32(start), End: int32(end), DataIndex: idx})
	case scanner.StringLiteral:
		idx := p.arena.Literal.Add(syntax.LiteralData{Text: p.sc.Token().Atom})
		end := p.end()
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindStringLiteral, Pos: int32(start), End: int32(end), DataIndex: idx})
	case scanner.NoSubstitutionTemplateLiteral, scanner.TemplateHead:
		return p.parseTemplate()
	case scanner.Slash, scanner.SlashEquals:
		p.sc.RescanSlashAsRegex()
		p.tok = scanner.RegexLiteral
		idx := p.arena.Literal.Add(syntax.LiteralData{Text: p.sc.Token().Atom})
		end := p.end()
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindRegexLiteral, Pos: int32(start), End: int32(end), DataIndex: idx})
	case scanner.TrueKeyword:
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindTrueLiteral, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	case scanner.FalseKeyword:
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindFalseLiteral, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	case scanner.NullKeyword:
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindNullLiteral, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	case scanner.ThisKeyword:
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindThisExpression, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	case scanner.SuperKeyword:
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindSuperExpression, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	case scanner.NewKeyword:
		return p.parseNewExpression()
	case scanner.OpenParen:
		return p.parseParenthesized()
	case scanner.OpenBracket:
		return p.parseArrayLiteral()
	case scanner.OpenBrace:
		return p.parseObjectLiteral()
	case scanner.FunctionKeyword:
		return p.parseFunctionExpression()
	case scanner.ClassKeyword:
		return p.parseClassLike(true)
	case scanner.PrivateIdent:
		a := p.sc.Token().Atom
		p.next()
		idx := p.arena.Ident.Add(syntax.IdentData{Name: a})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindPrivateIdentifier, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	case scanner.Ident:
		if p.isIdentText("async") {
			if fn := p.tryParse(p.tryParseAsyncFunctionOrArrow); fn != syntax.NoNode {
				return fn
			}
		}
		a := p.sc.Token().Atom
		p.next()
		idx := p.arena.Ident.Add(syntax.IdentData{Name: a})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindIdentifier, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}
	return p.addMissing(diag.CodeExpressionExpected, "expression expected")
}

func (p *Parser) tryParseAsyncFunctionOrArrow() syntax.NodeID {
	p.next() // 'async'
	if p.sc.Token().Flags&scanner.FlagPrecedingLineBreak != 0 {
		return syntax.NoNode
	}
	if p.tok == scanner.FunctionKeyword {
		saved := p.ctx
		p.ctx |= ctxInAsync
		fn := p.parseFunctionExpression()
		p.ctx = saved
		return fn
	}
	saved := p.ctx
	p.ctx |= ctxInAsync
	arrow := p.tryParseArrowFunction()
	p.ctx = saved
	if arrow == syntax.NoNode {
		return syntax.NoNode
	}
	return arrow
}

func (p *Parser) parseNewExpression() syntax.NodeID {
	start := p.pos()
	p.next() // 'new'
	if p.tok == scanner.Dot {
		// new.target
		p.next()
		p.parseIdentifierName()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindIdentifier, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	}
	callee := p.parseCallOrMemberNoCall()
	var args []syntax.NodeID
	if p.tok == scanner.OpenParen {
		p.next()
		for p.tok != scanner.CloseParen && !p.atEnd() {
			args = append(args, p.parseAssignmentExpression())
			if p.tok != scanner.Comma {
				break
			}
			p.next()
		}
		p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	}
	idx := p.arena.Call.Add(syntax.CallData{Callee: callee, Args: p.arena.AddNodeList(args), IsNew: true})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindNewExpression, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

// parseCallOrMemberNoCall parses the `new` callee production, which permits
// property/element access but not call expressions (those belong to the
// enclosing `new`).
func (p *Parser) parseCallOrMemberNoCall() syntax.NodeID {
	expr := p.parsePrimary()
	for {
		switch p.tok {
		case scanner.Dot:
			p.next()
			name := p.parseIdentifierName()
			idx := p.arena.PropAccess.Add(syntax.PropAccessData{Expr: expr, Name: name})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindPropertyAccessExpression, Pos: p.arena.Header(expr).Pos, End: int32(p.pos()), DataIndex: idx})
		case scanner.OpenBracket:
			p.next()
			index := p.parseExpression()
			end := p.end()
			p.expect(scanner.CloseBracket, diag.CodeExpectedToken, "']'")
			idx := p.arena.ElemAccess.Add(syntax.ElemAccessData{Expr: expr, Index: index})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindElementAccessExpression, Pos: p.arena.Header(expr).Pos, End: int32(end), DataIndex: idx})
		default:
			return expr
		}
	}
}

func (p *Parser) parseParenthesized() syntax.NodeID {
	start := p.pos()
	p.next() // '('
	inner := p.withoutDisallowIn(p.parseExpression)
	end := p.end()
	p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	idx := p.arena.AsExpr.Add(syntax.AsExprData{Expr: inner})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindParenthesizedExpression, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseArrayLiteral() syntax.NodeID {
	start := p.pos()
	p.next() // '['
	var elems []syntax.NodeID
	for p.tok != scanner.CloseBracket && !p.atEnd() {
		if p.tok == scanner.Comma {
			elems = append(elems, p.arena.AddNode(syntax.Header{Kind: syntax.KindOmittedExpression, Pos: int32(p.pos()), End: int32(p.pos()), DataIndex: syntax.NoData}))
			p.next()
			continue
		}
		if p.tok == scanner.DotDotDot {
			s := p.pos()
			p.next()
			e := p.parseAssignmentExpression()
			idx := p.arena.Spread.Add(syntax.SpreadData{Expr: e})
			elems = append(elems, p.arena.AddNode(syntax.Header{Kind: syntax.KindSpreadElement, Pos: int32(s), End: p.arena.Header(e).End, DataIndex: idx}))
		} else {
			elems = append(elems, p.parseAssignmentExpression())
		}
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	end := p.end()
	p.expect(scanner.CloseBracket, diag.CodeExpectedToken, "']'")
	idx := p.arena.ArrayLit.Add(syntax.ArrayLitData{Elements: p.arena.AddNodeList(elems)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindArrayLiteral, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseObjectLiteral() syntax.NodeID {
	start := p.pos()
	p.next() // '{'
	var props []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		props = append(props, p.parseObjectMember())
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	end := p.end()
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	idx := p.arena.ObjectLit.Add(syntax.ObjectLitData{Properties: p.arena.AddNodeList(props)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindObjectLiteral, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseObjectMember() syntax.NodeID {
	start := p.pos()
	if p.tok == scanner.DotDotDot {
		p.next()
		e := p.parseAssignmentExpression()
		idx := p.arena.Spread.Add(syntax.SpreadData{Expr: e})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindSpreadAssignment, Pos: int32(start), End: p.arena.Header(e).End, DataIndex: idx})
	}
	name := p.parseIdentifierName()
	if p.tok == scanner.Colon {
		p.next()
		val := p.parseAssignmentExpression()
		idx := p.arena.PropAssign.Add(syntax.PropAssignData{Name: name, Value: val})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindPropertyAssignment, Pos: int32(start), End: p.arena.Header(val).End, DataIndex: idx})
	}
	// shorthand { x }
	idx := p.arena.PropAssign.Add(syntax.PropAssignData{Name: name, Shorthand: true})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindShorthandPropertyAssignment, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

// parseTemplate parses a (possibly-substituted) template literal, walking
// TemplateHead/Middle/Tail via the scanner's rescan contract: the parser
// re-enters the scanner at each '}' through RescanTemplateContinuation
// rather than the scanner tracking brace-nesting itself.
func (p *Parser) parseTemplate() syntax.NodeID {
	start := p.pos()
	if p.tok == scanner.NoSubstitutionTemplateLiteral {
		idx := p.arena.Literal.Add(syntax.LiteralData{Text: p.sc.Token().Atom})
		end := p.end()
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindNoSubstitutionTemplateLiteral, Pos: int32(start), End: int32(end), DataIndex: idx})
	}
	var parts []syntax.NodeID
	p.next() // consumes TemplateHead
	for {
		expr := p.withoutDisallowIn(p.parseExpression)
		parts = append(parts, expr)
		if p.tok != scanner.CloseBrace {
			p.report(diag.CodeExpectedToken, p.pos(), p.end(), "expected '}' to resume template literal")
			break
		}
		k := p.sc.RescanTemplateContinuation()
		p.tok = k
		if k == scanner.TemplateTail {
			p.next()
			break
		}
		p.next() // TemplateMiddle, continue with next substitution
	}
	end := p.pos()
	list := p.arena.AddNodeList(parts)
	ti := p.arena.ArrayLit.Add(syntax.ArrayLitData{Elements: list})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindTemplateExpression, Pos: int32(start), End: int32(end), DataIndex: ti})
}
