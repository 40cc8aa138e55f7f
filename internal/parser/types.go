package parser

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// parseType is the type-grammar entry point: conditional types sit above
// union/intersection, which sit above the postfix array/indexed-access
// layer, which sits above primary type productions.
func (p *Parser) parseType() syntax.NodeID {
	if p.depth++; p.depth > maxRecursionDepth {
		p.depth--
		return p.addMissing(diag.CodeTypeExpected, "type nested too deeply")
	}
	defer func() { p.depth-- }()

	start := p.pos()
	check := p.parseFunctionOrUnionType()
	if p.tok == scanner.ExtendsKeyword {
		p.next()
		extendsType := p.parseFunctionOrUnionType()
		p.expect(scanner.Question, diag.CodeExpectedToken, "'?'")
		trueType := p.parseType()
		p.expect(scanner.Colon, diag.CodeExpectedToken, "':'")
		falseType := p.parseType()
		idx := p.arena.CondType.Add(syntax.CondTypeData{Check: check, Extends: extendsType, True: trueType, False: falseType})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindConditionalType, Pos: int32(start), End: p.arena.Header(falseType).End, DataIndex: idx})
	}
	return check
}

// parseFunctionOrUnionType handles function-type/constructor-type
// productions, which must be tried before falling into the union/
// intersection ladder since `(` also starts a parenthesized type.
func (p *Parser) parseFunctionOrUnionType() syntax.NodeID {
	if p.tok == scanner.NewKeyword {
		return p.parseFunctionTypeLike(true)
	}
	if p.tok == scanner.OpenParen {
		if ft := p.tryParse(func() syntax.NodeID { return p.parseFunctionTypeLike(false) }); ft != syntax.NoNode {
			return ft
		}
	}
	if p.tok == scanner.LessThan {
		return p.parseFunctionTypeLike(false)
	}
	return p.parseUnionType()
}

func (p *Parser) parseFunctionTypeLike(isConstruct bool) syntax.NodeID {
	start := p.pos()
	if isConstruct {
		p.next() // 'new'
	}
	var typeParams []syntax.NodeID
	if p.tok == scanner.LessThan {
		typeParams = p.parseTypeParameters()
	}
	if p.tok != scanner.OpenParen {
		return syntax.NoNode
	}
	params := p.parseParameterList()
	if p.tok != scanner.Arrow {
		return syntax.NoNode
	}
	p.next()
	ret := p.parseType()
	idx := p.arena.FuncType.Add(syntax.FuncTypeData{Params: p.arena.AddNodeList(params), TypeParams: p.arena.AddNodeList(typeParams), ReturnType: ret, IsConstruct: isConstruct})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindFunctionType, Pos: int32(start), End: p.arena.Header(ret).End, DataIndex: idx})
}

func (p *Parser) parseUnionType() syntax.NodeID {
	start := p.pos()
	if p.tok == scanner.Pipe {
		p.next()
	}
	members := []syntax.NodeID{p.parseIntersectionType()}
	for p.tok == scanner.Pipe {
		p.next()
		members = append(members, p.parseIntersectionType())
	}
	if len(members) == 1 {
		return members[0]
	}
	idx := p.arena.UnionType.Add(syntax.UnionIntersectionData{Types: p.arena.AddNodeList(members)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindUnionType, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseIntersectionType() syntax.NodeID {
	start := p.pos()
	if p.tok == scanner.Ampersand {
		p.next()
	}
	members := []syntax.NodeID{p.parseTypeOperatorType()}
	for p.tok == scanner.Ampersand {
		p.next()
		members = append(members, p.parseTypeOperatorType())
	}
	if len(members) == 1 {
		return members[0]
	}
	idx := p.arena.UnionType.Add(syntax.UnionIntersectionData{Types: p.arena.AddNodeList(members)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindIntersectionType, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseTypeOperatorType() syntax.NodeID {
	start := p.pos()
	switch {
	case p.isIdentText("keyof"):
		p.next()
		inner := p.parseTypeOperatorType()
		idx := p.arena.TypeOperator.Add(syntax.TypeOperatorData{Type: inner})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeOperatorKeyof, Pos: int32(start), End: p.arena.Header(inner).End, DataIndex: idx})
	case p.isIdentText("readonly"):
		p.next()
		inner := p.parseTypeOperatorType()
		idx := p.arena.TypeOperator.Add(syntax.TypeOperatorData{Type: inner})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeOperatorReadonly, Pos: int32(start), End: p.arena.Header(inner).End, DataIndex: idx})
	case p.isIdentText("unique"):
		p.next()
		inner := p.parseTypeOperatorType()
		idx := p.arena.TypeOperator.Add(syntax.TypeOperatorData{Type: inner})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeOperatorUnique, Pos: int32(start), End: p.arena.Header(inner).End, DataIndex: idx})
	case p.isIdentText("infer"):
		p.next()
		tp := p.parseInferTypeParam()
		idx := p.arena.InferType.Add(syntax.InferTypeData{TypeParam: tp})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindInferType, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}
	return p.parsePostfixType()
}

func (p *Parser) parseInferTypeParam() syntax.NodeID {
	start := p.pos()
	name := p.parseIdentifierName()
	var constraint syntax.NodeID = syntax.NoNode
	// `infer T extends C` constraints are only valid within a conditional
	// type's extends clause; parsed here speculatively since an
	// unconstrained `infer T` is far more common and this avoids consuming
	// an outer conditional type's own `extends`.
	if p.tok == scanner.ExtendsKeyword {
		if c := p.tryParse(func() syntax.NodeID {
			p.next()
			return p.parseTypeOperatorType()
		}); c != syntax.NoNode {
			constraint = c
		}
	}
	idx := p.arena.TypeParam.Add(syntax.TypeParamData{Name: name, Constraint: constraint})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeParameter, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parsePostfixType() syntax.NodeID {
	t := p.parsePrimaryType()
	for {
		if p.tok == scanner.OpenBracket && p.sc.Token().Flags&scanner.FlagPrecedingLineBreak == 0 {
			p.next()
			if p.tok == scanner.CloseBracket {
				end := p.end()
				p.next()
				idx := p.arena.ArrayType.Add(syntax.ArrayTypeData{Element: t})
				t = p.arena.AddNode(syntax.Header{Kind: syntax.KindArrayType, Pos: p.arena.Header(t).Pos, End: int32(end), DataIndex: idx})
				continue
			}
			index := p.parseType()
			end := p.end()
			p.expect(scanner.CloseBracket, diag.CodeExpectedToken, "']'")
			idx := p.arena.IndexedAccess.Add(syntax.IndexedAccessData{Object: t, Index: index})
			t = p.arena.AddNode(syntax.Header{Kind: syntax.KindIndexedAccessType, Pos: p.arena.Header(t).Pos, End: int32(end), DataIndex: idx})
			continue
		}
		return t
	}
}

func (p *Parser) parsePrimaryType() syntax.NodeID {
	start := p.pos()
	switch p.tok {
	case scanner.OpenParen:
		p.next()
		inner := p.parseType()
		end := p.end()
		p.expect(scanner.CloseParen, diag.CodeExpectedToken, "')'")
		idx := p.arena.TypeOperator.Add(syntax.TypeOperatorData{Type: inner})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindParenthesizedType, Pos: int32(start), End: int32(end), DataIndex: idx})
	case scanner.OpenBracket:
		return p.parseTupleType()
	case scanner.OpenBrace:
		return p.parseObjectTypeOrMapped()
	case scanner.TypeofKeyword:
		p.next()
		exprStart := p.pos()
		name := p.parseIdentifierName()
		identIdx := p.arena.Ident.Add(syntax.IdentData{Name: name})
		expr := p.arena.AddNode(syntax.Header{Kind: syntax.KindIdentifier, Pos: int32(exprStart), End: int32(p.pos()), DataIndex: identIdx})
		for p.tok == scanner.Dot {
			p.next()
			member := p.parseIdentifierName()
			paIdx := p.arena.PropAccess.Add(syntax.PropAccessData{Expr: expr, Name: member})
			expr = p.arena.AddNode(syntax.Header{Kind: syntax.KindPropertyAccessExpression, Pos: int32(exprStart), End: int32(p.pos()), DataIndex: paIdx})
		}
		idx := p.arena.TypeQuery.Add(syntax.TypeQueryData{Expr: expr})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeQuery, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	case scanner.DotDotDot:
		p.next()
		inner := p.parseType()
		idx := p.arena.TypeOperator.Add(syntax.TypeOperatorData{Type: inner})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindRestType, Pos: int32(start), End: p.arena.Header(inner).End, DataIndex: idx})
	case scanner.TemplateHead:
		return p.parseTemplateLiteralType()
	case scanner.StringLiteral, scanner.NumericLiteral, scanner.TrueKeyword, scanner.FalseKeyword, scanner.NoSubstitutionTemplateLiteral:
		return p.parseLiteralType()
	case scanner.Minus:
		// negative numeric literal type: `-1`
		p.next()
		lit := p.parseLiteralType()
		lt := p.arena.LiteralType.Get(p.arena.Header(lit).DataIndex)
		if lh := p.arena.Header(lt.Literal); lh.Kind == syntax.KindNumericLiteral {
			ld := p.arena.Literal.Get(lh.DataIndex)
			ld.NumValue = -ld.NumValue
			p.arena.Literal.Set(lh.DataIndex, ld)
		}
		return lit
	case scanner.VoidKeyword, scanner.NullKeyword:
		kw := keywordTypeKind(p.text())
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: kw, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	case scanner.ThisKeyword:
		p.next()
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindThisType, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
	case scanner.Ident:
		if kw := keywordTypeKind(p.text()); kw != syntax.KindInvalid {
			p.next()
			return p.arena.AddNode(syntax.Header{Kind: kw, Pos: int32(start), End: int32(p.pos()), DataIndex: syntax.NoData})
		}
		return p.parseTypeRef()
	}
	return p.addMissing(diag.CodeTypeExpected, "type expected")
}

// keywordTypeKind maps the keyword-type identifiers (any, unknown, never,
// undefined, string, number, boolean, bigint, symbol, object) to
// their Kind. These scan as Ident (they are ordinary identifiers in value
// position: `const any = 1` is legal) so, like the other contextual words,
// only a type-position parser recognizes them. void and null are reserved
// words that scan as VoidKeyword/NullKeyword; parsePrimaryType maps them
// through this same table.
func keywordTypeKind(text string) syntax.Kind {
	switch text {
	case "any":
		return syntax.KindKeywordTypeAny
	case "unknown":
		return syntax.KindKeywordTypeUnknown
	case "never":
		return syntax.KindKeywordTypeNever
	case "void":
		return syntax.KindKeywordTypeVoid
	case "undefined":
		return syntax.KindKeywordTypeUndefined
	case "null":
		return syntax.KindKeywordTypeNull
	case "string":
		return syntax.KindKeywordTypeString
	case "number":
		return syntax.KindKeywordTypeNumber
	case "boolean":
		return syntax.KindKeywordTypeBoolean
	case "bigint":
		return syntax.KindKeywordTypeBigint
	case "symbol":
		return syntax.KindKeywordTypeSymbol
	case "object":
		return syntax.KindKeywordTypeObject
	}
	return syntax.KindInvalid
}

// parseTemplateLiteralType parses a template literal type such as
// `` `prefix-${T}-${U}` ``: TemplateLitTypeData.Literals holds the len(Types)+1
// literal chunks (the scanner's head/middle/tail text), Types the
// interpolated type spans.
func (p *Parser) parseTemplateLiteralType() syntax.NodeID {
	start := p.pos()
	literals := []atom.Atom{p.sc.Token().Atom}
	p.next() // consumes TemplateHead
	var types []syntax.NodeID
	for {
		types = append(types, p.parseType())
		if p.tok != scanner.CloseBrace {
			p.report(diag.CodeExpectedToken, p.pos(), p.end(), "expected '}' to resume template literal type")
			break
		}
		k := p.sc.RescanTemplateContinuation()
		p.tok = k
		literals = append(literals, p.sc.Token().Atom)
		if k == scanner.TemplateTail {
			p.next()
			break
		}
		p.next() // TemplateMiddle, continue with next span
	}
	end := p.pos()
	idx := p.arena.TemplateLitType.Add(syntax.TemplateLitTypeData{Literals: literals, Types: p.arena.AddNodeList(types)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindTemplateLiteralType, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseLiteralType() syntax.NodeID {
	start := p.pos()
	lit := p.parsePrimary()
	idx := p.arena.LiteralType.Add(syntax.LiteralTypeData{Literal: lit})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindLiteralType, Pos: int32(start), End: p.arena.Header(lit).End, DataIndex: idx})
}

func (p *Parser) parseTypeRef() syntax.NodeID {
	start := p.pos()
	name := p.parseIdentifierName()
	for p.tok == scanner.Dot {
		p.next()
		p.parseIdentifierName()
	}
	var typeArgs []syntax.NodeID
	if p.tok == scanner.LessThan {
		p.next()
		for p.tok != scanner.GreaterThan && p.tok != scanner.EOF {
			typeArgs = append(typeArgs, p.parseType())
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
	}
	idx := p.arena.TypeRef.Add(syntax.TypeRefData{Name: name, TypeArgs: p.arena.AddNodeList(typeArgs)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeReference, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseTupleType() syntax.NodeID {
	start := p.pos()
	p.next() // '['
	var elems []syntax.NodeID
	for p.tok != scanner.CloseBracket && !p.atEnd() {
		elems = append(elems, p.parseTupleMember())
		if p.tok != scanner.Comma {
			break
		}
		p.next()
	}
	end := p.end()
	p.expect(scanner.CloseBracket, diag.CodeExpectedToken, "']'")
	idx := p.arena.TupleType.Add(syntax.TupleTypeData{Elements: p.arena.AddNodeList(elems)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindTupleType, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseTupleMember() syntax.NodeID {
	start := p.pos()
	rest := false
	if p.tok == scanner.DotDotDot {
		rest = true
		p.next()
	}
	// Named tuple members (`[x: string]` / `[x?: string]`) are ambiguous
	// with a plain type reference named `x`; only commit to the named form
	// when a `:` or `?:` actually follows the identifier.
	label := atom.NoAtom
	if p.tok == scanner.Ident && (p.peekIs(scanner.Colon) || p.peekIs(scanner.Question)) {
		label = p.parseIdentifierName()
	}
	optional := false
	if p.tok == scanner.Question {
		optional = true
		p.next()
	}
	if label != atom.NoAtom {
		p.expect(scanner.Colon, diag.CodeExpectedToken, "':'")
	}
	t := p.parseType()
	idx := p.arena.TupleMember.Add(syntax.TupleMemberData{Label: label, Type: t, Optional: optional, Rest: rest})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindNamedTupleMember, Pos: int32(start), End: p.arena.Header(t).End, DataIndex: idx})
}

func (p *Parser) parseObjectTypeOrMapped() syntax.NodeID {
	if mapped := p.tryParse(p.tryParseMappedType); mapped != syntax.NoNode {
		return mapped
	}
	return p.parseObjectType()
}

// tryParseMappedType speculatively parses `{ [K in T]: V }`, including the
// `readonly`/`-readonly`/`+readonly` and `?`/`-?`/`+?` modifiers and the
// `as` key-remapping clause.
func (p *Parser) tryParseMappedType() syntax.NodeID {
	start := p.pos()
	p.next() // '{'
	var readonlyMod int8
	switch {
	case p.tok == scanner.Minus && p.peekIsIdent("readonly"):
		p.next()
		p.next()
		readonlyMod = -1
	case p.tok == scanner.Plus && p.peekIsIdent("readonly"):
		p.next()
		p.next()
		readonlyMod = 1
	case p.isIdentText("readonly"):
		p.next()
		readonlyMod = 1
	}
	if p.tok != scanner.OpenBracket {
		return syntax.NoNode
	}
	p.next()
	tpStart := p.pos()
	name := p.parseIdentifierName()
	if p.tok != scanner.InKeyword {
		return syntax.NoNode
	}
	p.next()
	constraint := p.parseType()
	tpIdx := p.arena.TypeParam.Add(syntax.TypeParamData{Name: name, Constraint: constraint})
	tp := p.arena.AddNode(syntax.Header{Kind: syntax.KindTypeParameter, Pos: int32(tpStart), End: int32(p.pos()), DataIndex: tpIdx})

	var nameType syntax.NodeID = syntax.NoNode
	if p.isIdentText("as") {
		p.next()
		nameType = p.parseType()
	}
	if p.tok != scanner.CloseBracket {
		return syntax.NoNode
	}
	p.next()

	var optionalMod int8
	switch {
	case p.tok == scanner.Minus && p.peekIs(scanner.Question):
		p.next()
		p.next()
		optionalMod = -1
	case p.tok == scanner.Plus && p.peekIs(scanner.Question):
		p.next()
		p.next()
		optionalMod = 1
	case p.tok == scanner.Question:
		p.next()
		optionalMod = 1
	}
	if p.tok != scanner.Colon {
		return syntax.NoNode
	}
	p.next()
	valType := p.parseType()
	if p.tok == scanner.Semicolon {
		p.next()
	}
	end := p.end()
	if !p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'") {
		return syntax.NoNode
	}
	idx := p.arena.MappedType.Add(syntax.MappedTypeData{TypeParam: tp, NameType: nameType, Type: valType, ReadonlyMod: readonlyMod, OptionalMod: optionalMod})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindMappedType, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) peekIs(k scanner.Kind) bool {
	cp := p.save()
	p.next()
	r := p.tok == k
	p.restore(cp)
	return r
}

func (p *Parser) peekIsIdent(text string) bool {
	cp := p.save()
	p.next()
	r := p.isIdentText(text)
	p.restore(cp)
	return r
}

func (p *Parser) parseObjectType() syntax.NodeID {
	start := p.pos()
	p.next() // '{'
	var members []syntax.NodeID
	for p.tok != scanner.CloseBrace && !p.atEnd() {
		members = append(members, p.parseObjectTypeMember())
		if p.tok == scanner.Comma || p.tok == scanner.Semicolon {
			p.next()
		}
	}
	end := p.end()
	p.expect(scanner.CloseBrace, diag.CodeExpectedToken, "'}'")
	idx := p.arena.ObjectType.Add(syntax.ObjectTypeData{Members: p.arena.AddNodeList(members)})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindObjectType, Pos: int32(start), End: int32(end), DataIndex: idx})
}

func (p *Parser) parseObjectTypeMember() syntax.NodeID {
	start := p.pos()
	readonly := false
	if p.isIdentText("readonly") && !p.peekIs(scanner.Colon) && !p.peekIs(scanner.Question) {
		readonly = true
		p.next()
	}
	if p.tok == scanner.OpenBracket {
		// Index signature `[key: string]: T` vs. computed property
		// `[K in T]` (mapped-type body, handled above) vs. a computed
		// property name on a regular member; only the plain `[ident: Type]`
		// shape is an index signature.
		if sig := p.tryParse(func() syntax.NodeID { return p.tryParseIndexSignature(start, readonly) }); sig != syntax.NoNode {
			return sig
		}
	}
	if p.tok == scanner.OpenParen || p.tok == scanner.LessThan {
		return p.parseCallOrConstructSignature(start, false)
	}
	if p.tok == scanner.NewKeyword && (p.peekIs(scanner.OpenParen) || p.peekIs(scanner.LessThan)) {
		p.next()
		return p.parseCallOrConstructSignature(start, true)
	}
	name := p.parseIdentifierName()
	if p.tok == scanner.OpenParen || p.tok == scanner.LessThan {
		var typeParams []syntax.NodeID
		if p.tok == scanner.LessThan {
			typeParams = p.parseTypeParameters()
		}
		params := p.parseParameterList()
		var ret syntax.NodeID = syntax.NoNode
		if p.tok == scanner.Colon {
			p.next()
			ret = p.parseType()
		}
		idx := p.arena.MethodSig.Add(syntax.MethodSigData{Name: name, Params: p.arena.AddNodeList(params), TypeParams: p.arena.AddNodeList(typeParams), ReturnType: ret})
		return p.arena.AddNode(syntax.Header{Kind: syntax.KindMethodSignature, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
	}
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
	idx := p.arena.PropSig.Add(syntax.PropSigData{Name: name, Type: typ, Optional: optional, Readonly: readonly})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindPropertySignature, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) tryParseIndexSignature(start int, readonly bool) syntax.NodeID {
	p.next() // '['
	keyName := p.parseIdentifierName()
	if p.tok != scanner.Colon {
		return syntax.NoNode
	}
	p.next()
	keyType := p.parseType()
	if p.tok != scanner.CloseBracket {
		return syntax.NoNode
	}
	p.next()
	if p.tok != scanner.Colon {
		return syntax.NoNode
	}
	p.next()
	valType := p.parseType()
	idx := p.arena.IndexSig.Add(syntax.IndexSigData{KeyName: keyName, KeyType: keyType, Type: valType, Readonly: readonly})
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindIndexSignature, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}

func (p *Parser) parseCallOrConstructSignature(start int, isConstruct bool) syntax.NodeID {
	var typeParams []syntax.NodeID
	if p.tok == scanner.LessThan {
		typeParams = p.parseTypeParameters()
	}
	params := p.parseParameterList()
	var ret syntax.NodeID = syntax.NoNode
	if p.tok == scanner.Colon {
		p.next()
		ret = p.parseType()
	}
	idx := p.arena.CallSig.Add(syntax.CallSigData{Params: p.arena.AddNodeList(params), TypeParams: p.arena.AddNodeList(typeParams), ReturnType: ret, IsConstruct: isConstruct})
	kind := syntax.KindCallSignature
	if isConstruct {
		kind = syntax.KindConstructSignature
	}
	return p.arena.AddNode(syntax.Header{Kind: kind, Pos: int32(start), End: int32(p.pos()), DataIndex: idx})
}
