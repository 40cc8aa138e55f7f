package parser

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// tryParseArrowFunction speculatively parses an arrow function head
// (identifier, or parenthesized parameter list, optionally with a type
// annotation and/or type parameters) followed by '=>'. Returning NoNode
// lets the caller's tryParse roll back and fall through to a normal
// parenthesized expression or identifier, which is the only way to resolve
// `(a, b)` (tuple-like parenthesized expression) vs `(a, b) => a + b`
// (arrow parameter list) without unbounded lookahead.
func (p *Parser) tryParseArrowFunction() syntax.NodeID {
	start := p.pos()
	isAsync := false
	if p.isIdentText("async") {
		save := p.save()
		p.next()
		if p.sc.Token().Flags&scanner.FlagPrecedingLineBreak != 0 || (p.tok != scanner.OpenParen && p.tok != scanner.Ident) {
			p.restore(save)
		} else {
			isAsync = true
		}
	}

	var typeParams []syntax.NodeID
	if p.tok == scanner.LessThan {
		typeParams = p.parseTypeParameters()
	}

	var params []syntax.NodeID
	switch p.tok {
	case scanner.OpenParen:
		params = p.parseParameterList()
	case scanner.Ident:
		name := p.parseIdentifierName()
		pd := p.arena.Param.Add(syntax.ParamData{Name: name})
		params = []syntax.NodeID{p.arena.AddNode(syntax.Header{Kind: syntax.KindParameter, Pos: int32(start), End: int32(p.pos()), DataIndex: pd})}
	default:
		return syntax.NoNode
	}

	var retType syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Colon {
		p.next()
		retType = p.parseType()
	}

	if p.tok != scanner.Arrow {
		return syntax.NoNode
	}
	p.next()

	savedCtx := p.ctx
	if isAsync {
		p.ctx |= ctxInAsync
	}
	var body syntax.NodeID
	if p.tok == scanner.OpenBrace {
		body = p.parseBlock()
	} else {
		body = p.parseAssignmentExpression()
	}
	p.ctx = savedCtx

	idx := p.arena.Func.Add(syntax.FuncData{
		Params:     p.arena.AddNodeList(params),
		TypeParams: p.arena.AddNodeList(typeParams),
		ReturnType: retType,
		Body:       body,
	})
	flags := syntax.FlagNone
	if isAsync {
		flags |= syntax.FlagAsync
	}
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindArrowFunction, Flags: flags, Pos: int32(start), End: p.arena.Header(body).End, DataIndex: idx})
}

// parseParameterList parses `( Param, Param, ... )`, including rest
// parameters, optional markers, default initializers, and type annotations.
func (p *Parser) parseParameterList() []syntax.NodeID {
	p.next() // '('
	var params []syntax.NodeID
	for p.tok != scanner.CloseParen && !p.atEnd() {
		params = append(params, p.parseParameter())
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
	return params
}

func (p *Parser) parseParameter() syntax.NodeID {
	start := p.pos()
	rest := false
	if p.tok == scanner.DotDotDot {
		rest = true
		p.next()
	}
	// Accessibility/readonly modifiers (public/private/protected/readonly on
	// constructor parameters) are accepted and discarded positionally; the
	// binder records parameter-property promotion from the class member
	// list it separately builds from the constructor's own parameters.
	for p.consumeIdentText("public") || p.consumeIdentText("private") ||
		p.consumeIdentText("protected") || p.consumeIdentText("readonly") {
		continue
	}
	name := p.parseIdentifierName()
	optional := false
	if p.tok == scanner.Question {
		optional = true
		p.next()
	}
	var typ syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Colon {
		p.next()
		typ = p.parseType()
	}
	var init syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Equals {
		p.next()
		init = p.parseAssignmentExpression()
	}
	idx := p.arena.Param.Add(syntax.ParamData{Name: name, Type: typ, Init: init, Optional: optional, Rest: rest})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindParameter, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

// parseTypeParameters parses `< T extends C = D, ... >`.
func (p *Parser) parseTypeParameters() []syntax.NodeID {
	p.next() // '<'
	var out []syntax.NodeID
	for p.tok != scanner.EOF {
		start := p.pos()
		in, out_ := false, false
		if p.consumeIdentText("out") {
			out_ = true
		}
		// `in` is the reserved relational/for-in keyword; in variance
		// position it is unambiguous because a type-parameter list can
		// never contain the `in` operator directly.
		if p.tok == scanner.InKeyword {
			in = true
			p.next()
		}
		name := p.parseIdentifierName()
		var constraint, def syntax.NodeID = syntax.NoNode, syntax.NoNode
		if p.tok == scanner.ExtendsKeyword {
			p.next()
			constraint = p.parseType()
		}
		if p.tok == scanner.Equals {
			p.next()
			def = p.parseType()
		}
		idx := p.arena.TypeParam.Add(syntax.TypeParamData{Name: name, Constraint: constraint, Default: def, In: in, Out: out_})
		out = append(out, p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeParameter, Pos: int32(start), End: int32(p.pos()), DataIndex: idx}))
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	if p.tok != scanner.GreaterThan {
		if g := p.sc.RescanGreaterThan(); g == scanner.GreaterThan {
			p.tok = g
		}
	}
	p.expect(scanner.GreaterThan, diag.CodeExpectedToken, "'>'")
	return out
}

func (p *Parser) parseFunctionExpression() syntax.NodeID {
	start := p.pos()
	p.next() // 'function'
	generator := false
	if p.tok == scanner.Star {
		generator = true
		p.next()
	}
	var name atom.Atom
	if p.tok == scanner.Ident {
		name = p.parseIdentifierName()
	}
	var typeParams []syntax.NodeID
	if p.tok == scanner.LessThan {
		typeParams = p.parseTypeParameters()
	}
	params := p.parseParameterList()
	var retType syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Colon {
		p.next()
		retType = p.parseType()
	}
	savedCtx := p.ctx
	if generator {
		p.ctx |= ctxInGenerator
	}
	body := p.parseBlock()
	p.ctx = savedCtx
	idx := p.arena.Func.Add(syntax.FuncData{
		Name: name, Params: p.arena.AddNodeList(params), TypeParams: p.arena.AddNodeList(typeParams),
		ReturnType: retType, Body: body,
	})
	flags := syntax.FlagNone
	if generator {
		flags |= syntax.FlagGenerator
	}
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindFunctionExpression, Flags: flags, Pos: int32(start), End: p.arena.Header(body).End, DataIndex: idx})
}

// parseClassLike parses both class declarations and class expressions; the
// only grammatical difference is that a declaration requires a name (the
// binder enforces that, not the parser, since `class {}` as an expression
// is valid and the same production covers both).
func (p *Parser) parseClassLike(isExpression bool) syntax.NodeID {
	start := p.pos()
	p.next() // 'class'
	var name atom.Atom
	if p.tok == scanner.Ident {
		name = p.parseIdentifierName()
	}
	var typeParams []syntax.NodeID
	if p.tok == scanner.LessThan {
		typeParams = p.parseTypeParameters()
	}
	var heritage []syntax.NodeID
	for p.tok == scanner.ExtendsKeyword || p.isIdentText("implements") {
		p.next()
		heritage = append(heritage, p.parseTypeRef())
		for p.tok == scanner.Comma {
			p.next()
			heritage = append(heritage, p.parseTypeRef())
		}
	}
	members := p.parseClassBody()
	idx := p.arena.Class.Add(syntax.ClassData{
		Name: name, TypeParams: p.arena.AddNodeList(typeParams),
		Heritage: p.arena.AddNodeList(heritage), Members: p.arena.AddNodeList(members),
	})
	kind := syntax.KindClassDeclaration
	if isExpression {
		kind = syntax.KindClassExpression
	}
	return p.arena.AddNode(syntax.Header{Kind: kind, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseClassBody() []syntax.NodeID {
	p.expect(scanner.OpenBrace, diag.CodeExpectedToken, "'{'")
	var members []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		if p.tok == scanner.Semicolon {
			p.next()
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	return members
}

var classModifierWords = map[string]bool{
	"static": true, "public": true, "private": true, "protected": true,
	"readonly": true, "abstract": true, "override": true,
}

// looksLikeModifier reports whether the current token is a modifier word
// used as a modifier rather than as the member's own name (`static(): void`
// is a method named "static"; `static x: number` is a static field named
// "x"). Resolved the same way tsc does: peek one token past the word and
// check whether it could start a member-name position.
func (p *Parser) looksLikeModifier() bool {
	if p.tok != scanner.Ident || !classModifierWords[p.text()] {
		return false
	}
	cp := p.save()
	p.next()
	isNamePosition := p.tok == scanner.OpenParen || p.tok == scanner.Colon || p.tok == scanner.Equals ||
		p.tok == scanner.Semicolon || p.tok == scanner.Question || p.tok == scanner.LessThan || p.tok == scanner.CloseBrace
	p.restore(cp)
	return !isNamePosition
}

func (p *Parser) parseClassMember() syntax.NodeID {
	start := p.pos()
	flags := syntax.FlagNone
	for p.looksLikeModifier() {
		switch p.text() {
		case "static":
			flags |= syntax.FlagStatic
		case "readonly":
			flags |= syntax.FlagReadonly
		case "abstract":
			flags |= syntax.FlagAbstract
		// Visibility (public/private/protected) and "override" are accepted
		// and discarded positionally: PropertyData/MethodData carry no
		// visibility field, matching this data model's scope
		// (access-control enforcement is out of scope for this checker).
		}
		p.next()
	}
	generator := false
	if p.tok == scanner.Star {
		generator = true
		p.next()
	}
	name := p.parseIdentifierName()
	if p.tok == scanner.OpenParen || p.tok == scanner.LessThan {
		var typeParams []syntax.NodeID
		if p.tok == scanner.LessThan {
			typeParams = p.parseTypeParameters()
		}
		params := p.parseParameterList()
		var retType syntax.NodeID = syntax.NoNode
		if p.tok == scanner.Colon {
			p.next()
			retType = p.parseType()
		}
		var body syntax.NodeID = syntax.NoNode
		if p.tok == scanner.OpenBrace {
			body = p.parseBlock()
		} else {
			p.expect(scanner.Semicolon, diag.CodeExpectedToken, "';'")
		}
		idx := p.arena.Method.Add(syntax.MethodData{Name: name, Params: p.arena.AddNodeList(params), TypeParams: p.arena.AddNodeList(typeParams), ReturnType: retType, Body: body})
		if generator {
			flags |= syntax.FlagGenerator
		}
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindMethodDeclaration, Flags: flags, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}
	var typ, init syntax.NodeID = syntax.NoNode, syntax.NoNode
	if p.tok == scanner.Question {
		flags |= syntax.FlagOptional
		p.next()
	}
	if p.tok == scanner.Colon {
		p.next()
		typ = p.parseType()
	}
	if p.tok == scanner.Equals {
		p.next()
		init = p.parseAssignmentExpression()
	}
	p.expect(scanner.Semicolon, diag.CodeExpectedToken, "';'")
	idx := p.arena.Property.Add(syntax.PropertyData{Name: name, Type: typ, Init: init})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindPropertyDeclaration, Flags: flags, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}
