package checker

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// TypeOfNode is the memoized type_of_node query: every expression-typing
// path in the checker funnels through here so a diamond of references to
// the same subexpression (an object literal assigned to two destinations,
// a repeated identifier) is only resolved once. Re-entering a node already
// on the resolution stack (a self-referential initializer, `let x = x`)
// returns types.ErrorType rather than recursing forever.
func (c *Checker) TypeOfNode(node syntax.NodeID) types.TypeID {
	if node == syntax.NoNode {
		return types.ErrorType
	}
	if t, ok := c.exprTypes[node]; ok {
		return t
	}
	if c.resolvingNode[node] {
		return types.ErrorType
	}
	if !c.consumeFuel(node) {
		return types.ErrorType
	}
	c.resolvingNode[node] = true
	t := c.typeOfNode(node)
	delete(c.resolvingNode, node)
	c.exprTypes[node] = t
	return t
}

func (c *Checker) scopeOf(node syntax.NodeID) binder.ScopeID {
	if s, ok := c.bind.NodeScopes[node]; ok {
		return s
	}
	return c.bind.ModuleScope
}

func (c *Checker) typeOfNode(node syntax.NodeID) types.TypeID {
	h := c.arena.Header(node)
	switch h.Kind {
	case syntax.KindIdentifier:
		return c.typeOfIdentifier(node, h)
	case syntax.KindThisExpression, syntax.KindSuperExpression:
		// `this`/`super` contextual typing needs the enclosing class's
		// instance type, which symbolTypeOfClass builds; without a class
		// context (a free function) both degrade to `any`.
		return types.Any
	case syntax.KindNumericLiteral:
		lit := c.arena.Literal.Get(h.DataIndex)
		return c.in.Intern(types.Key{Kind: types.KindNumberLiteral, NumberLit: lit.NumValue})
	case syntax.KindBigIntLiteral:
		lit := c.arena.Literal.Get(h.DataIndex)
		return c.in.Intern(types.Key{Kind: types.KindBigintLiteral, BigintLit: lit.Text})
	case syntax.KindStringLiteral, syntax.KindNoSubstitutionTemplateLiteral:
		lit := c.arena.Literal.Get(h.DataIndex)
		return c.in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: lit.Text})
	case syntax.KindTemplateExpression:
		return types.StringType
	case syntax.KindRegexLiteral:
		return types.ObjectKeyword
	case syntax.KindTrueLiteral:
		return c.in.Intern(types.Key{Kind: types.KindBooleanLiteral, BooleanLit: true})
	case syntax.KindFalseLiteral:
		return c.in.Intern(types.Key{Kind: types.KindBooleanLiteral, BooleanLit: false})
	case syntax.KindNullLiteral:
		return types.NullType
	case syntax.KindArrayLiteral:
		return c.typeOfArrayLiteral(h)
	case syntax.KindObjectLiteral:
		return c.typeOfObjectLiteral(h)
	case syntax.KindParenthesizedExpression:
		d := c.arena.AsExpr.Get(h.DataIndex)
		return c.TypeOfNode(d.Expr)
	case syntax.KindFunctionExpression, syntax.KindArrowFunction:
		fd := c.arena.Func.Get(h.DataIndex)
		return c.typeOfFunctionLike(node, &fd)
	case syntax.KindClassExpression:
		// A class expression's value type is its constructor signature;
		// modeled conservatively as `any` until instance-shape synthesis
		// (typeOfClassSymbol) is wired to an anonymous symbol here.
		return types.Any
	case syntax.KindCallExpression, syntax.KindNewExpression:
		return c.typeOfCall(node, h)
	case syntax.KindTaggedTemplateExpression:
		return types.StringType
	case syntax.KindPropertyAccessExpression:
		return c.typeOfPropertyAccess(node, h)
	case syntax.KindElementAccessExpression:
		return c.typeOfElementAccess(node, h)
	case syntax.KindBinaryExpression:
		return c.typeOfBinary(h)
	case syntax.KindPrefixUnaryExpression, syntax.KindPostfixUnaryExpression:
		return c.typeOfUnary(h)
	case syntax.KindConditionalExpression:
		d := c.arena.Conditional.Get(h.DataIndex)
		thenT := c.TypeOfNode(d.Then)
		elseT := c.TypeOfNode(d.Else)
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{thenT, elseT}})
	case syntax.KindAsExpression, syntax.KindTypeAssertionExpression:
		d := c.arena.AsExpr.Get(h.DataIndex)
		c.TypeOfNode(d.Expr) // still checked for its own diagnostics
		return c.lower.Lower(c.scopeOf(node), d.Type)
	case syntax.KindSatisfiesExpression:
		d := c.arena.AsExpr.Get(h.DataIndex)
		exprT := c.TypeOfNode(d.Expr)
		target := c.lower.Lower(c.scopeOf(node), d.Type)
		if !types.Subtype(c.in, exprT, target, types.Contravariant).Bool() {
			c.report(node, diag.CodeTypeIsNotAssignableToType, "Type does not satisfy the expected type.")
			return types.ErrorType
		}
		return exprT // `satisfies` validates but never widens or replaces the expression's own type
	case syntax.KindNonNullExpression:
		d := c.arena.AsExpr.Get(h.DataIndex)
		return c.stripNullish(c.TypeOfNode(d.Expr))
	case syntax.KindSpreadElement:
		d := c.arena.Spread.Get(h.DataIndex)
		return c.TypeOfNode(d.Expr)
	case syntax.KindAwaitExpression:
		d := c.arena.Unary.Get(h.DataIndex)
		return c.TypeOfNode(d.Operand) // Promise unwrapping: not modeled, the operand's own type passes through
	case syntax.KindYieldExpression:
		d := c.arena.Unary.Get(h.DataIndex)
		if d.Operand != syntax.NoNode {
			c.TypeOfNode(d.Operand)
		}
		return types.Any
	case syntax.KindDeleteExpression:
		d := c.arena.Unary.Get(h.DataIndex)
		c.TypeOfNode(d.Operand)
		return types.BooleanType
	case syntax.KindVoidExpression:
		d := c.arena.Unary.Get(h.DataIndex)
		c.TypeOfNode(d.Operand)
		return types.UndefinedType
	case syntax.KindTypeofExpression:
		d := c.arena.Unary.Get(h.DataIndex)
		c.TypeOfNode(d.Operand)
		return types.StringType
	case syntax.KindOmittedExpression:
		return types.UndefinedType
	default:
		return types.ErrorType
	}
}

func (c *Checker) typeOfIdentifier(node syntax.NodeID, h syntax.Header) types.TypeID {
	d := c.arena.Ident.Get(h.DataIndex)
	sym := c.bind.Scopes.Resolve(c.scopeOf(node), d.Name)
	if sym == binder.NoSymbol {
		c.report(node, diag.CodeCannotFindName, "Cannot find name.")
		return types.ErrorType
	}
	t := c.TypeOfSymbol(sym)
	if poison(t) {
		return t
	}
	s := c.bind.Symbols.Get(sym)
	if s.Flags&(binder.FlagVariable|binder.FlagParameter) != 0 {
		return c.narrowReference(sym, t, c.currentFlow)
	}
	return t
}

func (c *Checker) typeOfArrayLiteral(h syntax.Header) types.TypeID {
	d := c.arena.ArrayLit.Get(h.DataIndex)
	elems := c.arena.Nodes(d.Elements)
	if len(elems) == 0 {
		return c.in.Intern(types.Key{Kind: types.KindArray, Element: types.Any})
	}
	memberTypes := make([]types.TypeID, 0, len(elems))
	for _, el := range elems {
		memberTypes = append(memberTypes, c.TypeOfNode(el))
	}
	elemType := memberTypes[0]
	if len(memberTypes) > 1 {
		elemType = c.in.Intern(types.Key{Kind: types.KindUnion, Members: memberTypes})
	}
	return c.in.Intern(types.Key{Kind: types.KindArray, Element: elemType})
}

// typeOfObjectLiteral builds the fresh structural type an object literal
// expression carries at its point of use -- this is the literal's own
// shape. Neither exactOptionalPropertyTypes nor an excess-property check
// is applied to it, here or where the literal is assigned.
func (c *Checker) typeOfObjectLiteral(h syntax.Header) types.TypeID {
	d := c.arena.ObjectLit.Get(h.DataIndex)
	var props []types.Property
	for _, p := range c.arena.Nodes(d.Properties) {
		ph := c.arena.Header(p)
		switch ph.Kind {
		case syntax.KindPropertyAssignment, syntax.KindShorthandPropertyAssignment:
			pd := c.arena.PropAssign.Get(ph.DataIndex)
			if pd.Spread {
				spreadT := c.TypeOfNode(pd.Value)
				sk := c.in.Get(types.Evaluate(c.in, spreadT))
				if sk.Kind == types.KindObject {
					props = append(props, sk.Properties...)
				}
				continue
			}
			props = append(props, types.Property{Name: pd.Name, Type: c.TypeOfNode(pd.Value)})
		case syntax.KindSpreadAssignment:
			sd := c.arena.Spread.Get(ph.DataIndex)
			spreadT := c.TypeOfNode(sd.Expr)
			sk := c.in.Get(types.Evaluate(c.in, spreadT))
			if sk.Kind == types.KindObject {
				props = append(props, sk.Properties...)
			}
		}
	}
	return c.in.Intern(types.Key{Kind: types.KindObject, Properties: props})
}

func (c *Checker) typeOfFunctionLike(node syntax.NodeID, fd *syntax.FuncData) types.TypeID {
	scope := c.scopeOf(node)
	params := make([]types.Param, 0, fd.Params.Len)
	for _, p := range c.arena.Nodes(fd.Params) {
		ph := c.arena.Header(p)
		pd := c.arena.Param.Get(ph.DataIndex)
		pt := types.Any
		if pd.Type != syntax.NoNode {
			pt = c.lower.Lower(scope, pd.Type)
		} else if c.opts.NoImplicitAny {
			c.report(p, diag.CodeImplicitAny, "Parameter implicitly has an 'any' type.")
		}
		params = append(params, types.Param{Name: pd.Name, Type: pt, Optional: pd.Optional, Rest: pd.Rest})
	}
	var ret types.TypeID
	if fd.ReturnType != syntax.NoNode {
		ret = c.lower.Lower(scope, fd.ReturnType)
	} else {
		ret = c.inferReturnType(fd)
	}
	return c.in.Intern(types.Key{Kind: types.KindFunction, Params: params, Return: ret})
}

// inferReturnType performs a shallow contextless inference of a function
// body's return type: a concise arrow body's own expression type, or the
// union of every `return` statement's operand type inside a block body.
// This is intentionally not full control-flow return analysis (narrow.go's
// worklist owns that); it gives call sites a usable return type before a
// declared annotation exists.
func (c *Checker) inferReturnType(fd *syntax.FuncData) types.TypeID {
	if fd.Body == syntax.NoNode {
		return types.Any
	}
	bh := c.arena.Header(fd.Body)
	if bh.Kind != syntax.KindBlock {
		return c.TypeOfNode(fd.Body)
	}
	var returns []types.TypeID
	c.collectReturnTypes(fd.Body, &returns)
	if len(returns) == 0 {
		return types.VoidType
	}
	if len(returns) == 1 {
		return returns[0]
	}
	return c.in.Intern(types.Key{Kind: types.KindUnion, Members: returns})
}

func (c *Checker) collectReturnTypes(block syntax.NodeID, out *[]types.TypeID) {
	bd := c.arena.Block.Get(c.arena.Header(block).DataIndex)
	for _, stmt := range c.arena.Nodes(bd.Statements) {
		c.collectReturnTypesStatement(stmt, out)
	}
}

func (c *Checker) collectReturnTypesStatement(n syntax.NodeID, out *[]types.TypeID) {
	h := c.arena.Header(n)
	switch h.Kind {
	case syntax.KindReturnStatement:
		d := c.arena.Return.Get(h.DataIndex)
		if d.Expr == syntax.NoNode {
			*out = append(*out, types.UndefinedType)
		} else {
			*out = append(*out, c.TypeOfNode(d.Expr))
		}
	case syntax.KindBlock:
		c.collectReturnTypes(n, out)
	case syntax.KindIfStatement:
		d := c.arena.If.Get(h.DataIndex)
		c.collectReturnTypesStatement(d.Then, out)
		if d.Else != syntax.NoNode {
			c.collectReturnTypesStatement(d.Else, out)
		}
	case syntax.KindWhileStatement:
		d := c.arena.While.Get(h.DataIndex)
		c.collectReturnTypesStatement(d.Body, out)
	case syntax.KindForStatement:
		d := c.arena.For.Get(h.DataIndex)
		c.collectReturnTypesStatement(d.Body, out)
	case syntax.KindTryStatement:
		d := c.arena.Try.Get(h.DataIndex)
		c.collectReturnTypesStatement(d.Block, out)
		if d.Finally != syntax.NoNode {
			c.collectReturnTypesStatement(d.Finally, out)
		}
	}
}

// typeOfCall types a call/new expression: resolve the callee's type,
// require a (possibly evaluated) function shape, run INFER when the
// signature is generic, and check argument assignability against the
// substituted parameter types.
func (c *Checker) typeOfCall(node syntax.NodeID, h syntax.Header) types.TypeID {
	d := c.arena.Call.Get(h.DataIndex)
	calleeT := c.TypeOfNode(d.Callee)
	if poison(calleeT) {
		return types.ErrorType
	}
	calleeKey := c.in.Get(types.Evaluate(c.in, calleeT))
	if calleeKey.Kind != types.KindFunction {
		c.report(node, diag.CodeTypeHasNoCallSignatures, "This expression is not callable.")
		return types.ErrorType
	}
	if !c.pushCall(node) {
		return types.ErrorType
	}
	defer c.popCall()

	args := c.arena.Nodes(d.Args)
	argTypes := make([]types.TypeID, 0, len(args))
	for _, a := range args {
		argTypes = append(argTypes, c.TypeOfNode(a))
	}

	sig := calleeKey
	params := sig.Params
	ret := sig.Return
	if len(sig.TypeParams) > 0 {
		typeArgNodes := c.arena.Nodes(d.TypeArgs)
		var subst map[int32]types.TypeID
		if len(typeArgNodes) > 0 {
			subst = c.explicitTypeArgSubst(node, sig, typeArgNodes)
		} else {
			subst = c.inferTypeArgSubst(sig, argTypes)
		}
		params = make([]types.Param, len(sig.Params))
		for i, p := range sig.Params {
			params[i] = types.Param{Name: p.Name, Type: types.Instantiate(c.in, p.Type, subst), Optional: p.Optional, Rest: p.Rest}
		}
		ret = types.Instantiate(c.in, sig.Return, subst)
	}

	n := len(params)
	if n > len(argTypes) {
		n = len(argTypes)
	}
	for i := 0; i < n; i++ {
		if !types.Subtype(c.in, argTypes[i], params[i].Type, types.Contravariant).Bool() {
			c.report(args[i], diag.CodeArgumentNotAssignableToParameter, "Argument is not assignable to parameter.")
		}
	}
	return ret
}

// explicitTypeArgSubst maps each of sig's declared type parameters (in
// declaration order) to the corresponding explicit type argument the call
// site supplied (`id<number>(...)`), lowering each type-argument node at
// the call's own scope. A call that supplies fewer type arguments than
// sig declares leaves the remainder unmapped -- Instantiate then passes
// those positions through unchanged, matching "too few type arguments"
// degrading to the unconstrained parameter rather than panicking.
func (c *Checker) explicitTypeArgSubst(node syntax.NodeID, sig types.Key, typeArgNodes []syntax.NodeID) map[int32]types.TypeID {
	subst := make(map[int32]types.TypeID, len(sig.TypeParams))
	scope := c.scopeOf(node)
	n := len(sig.TypeParams)
	if len(typeArgNodes) < n {
		n = len(typeArgNodes)
	}
	for i := 0; i < n; i++ {
		subst[int32(sig.TypeParams[i])] = c.lower.Lower(scope, typeArgNodes[i])
	}
	return subst
}

// inferTypeArgSubst substitutes sig's type parameters with fresh
// inference variables, collects lower bounds from argTypes against the
// var-substituted parameter types, solves, and returns a substitution
// from each type parameter straight to its solved type -- so the caller's
// Instantiate pass over params/return sees concrete types, not variable
// placeholders.
func (c *Checker) inferTypeArgSubst(sig types.Key, argTypes []types.TypeID) map[int32]types.TypeID {
	ic := types.NewInferenceContext(c.in)
	varOf := make(map[int32]types.InferVar, len(sig.TypeParams))
	varSubst := make(map[int32]types.TypeID, len(sig.TypeParams))
	for _, name := range sig.TypeParams {
		v := ic.Fresh()
		varOf[int32(name)] = v
		varSubst[int32(name)] = types.VarPlaceholder(c.in, v)
	}
	paramTypes := make([]types.TypeID, len(sig.Params))
	for i, p := range sig.Params {
		paramTypes[i] = types.Instantiate(c.in, p.Type, varSubst)
	}
	types.InferCall(ic, c.in, paramTypes, argTypes)
	sol := ic.Solve()

	subst := make(map[int32]types.TypeID, len(sig.TypeParams))
	for name, v := range varOf {
		subst[name] = sol.Types[v]
	}
	return subst
}

func (c *Checker) typeOfPropertyAccess(node syntax.NodeID, h syntax.Header) types.TypeID {
	d := c.arena.PropAccess.Get(h.DataIndex)
	objT := c.TypeOfNode(d.Expr)
	if poison(objT) {
		return types.ErrorType
	}
	if c.opts.StrictNullChecks && !d.Optional {
		if k := c.in.Get(objT); c.containsNull(k) {
			c.report(node, diag.CodeObjectIsPossiblyNull, "Object is possibly 'null'.")
		}
		if k := c.in.Get(objT); c.containsUndefined(k) {
			c.report(node, diag.CodeObjectIsPossiblyUndefined, "Object is possibly 'undefined'.")
		}
	}
	narrowed := objT
	if d.Optional {
		narrowed = c.stripNullish(objT)
	}
	pt, ok := c.lookupProperty(types.Evaluate(c.in, narrowed), d.Name)
	if !ok {
		c.report(node, diag.CodePropertyDoesNotExistOnType, "Property does not exist on type.")
		return types.ErrorType
	}
	if d.Optional {
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{pt, types.UndefinedType}})
	}
	return pt
}

// lookupProperty resolves name on t: directly on an object type, or -- for
// a union -- only when every constituent carries it, unioning the per-member
// property types (a discriminated union's common "kind"/"type" tag is
// exactly this shape: present and literal-typed on every member).
func (c *Checker) lookupProperty(t types.TypeID, name atom.Atom) (types.TypeID, bool) {
	k := c.in.Get(t)
	if k.Kind == types.KindUnion {
		members := make([]types.TypeID, 0, len(k.Members))
		for _, m := range k.Members {
			pt, ok := c.lookupProperty(types.Evaluate(c.in, m), name)
			if !ok {
				return types.NoType, false
			}
			members = append(members, pt)
		}
		if len(members) == 0 {
			return types.NoType, false
		}
		if len(members) == 1 {
			return members[0], true
		}
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: members}), true
	}
	if k.Kind != types.KindObject {
		return types.NoType, false
	}
	for _, p := range k.Properties {
		if p.Name == name {
			return p.Type, true
		}
	}
	return types.NoType, false
}

func (c *Checker) typeOfElementAccess(node syntax.NodeID, h syntax.Header) types.TypeID {
	d := c.arena.ElemAccess.Get(h.DataIndex)
	objT := c.TypeOfNode(d.Expr)
	idxT := c.TypeOfNode(d.Index)
	if poison(objT) || poison(idxT) {
		return types.ErrorType
	}
	result := types.Evaluate(c.in, c.in.Intern(types.Key{Kind: types.KindIndexedAccess, Element: objT, Index: idxT}))
	if c.opts.NoUncheckedIndexedAccess {
		objKey := c.in.Get(types.Evaluate(c.in, objT))
		if objKey.Kind == types.KindObject && len(objKey.Indexes) > 0 && len(objKey.Properties) == 0 {
			return c.in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{result, types.UndefinedType}})
		}
	}
	return result
}

func (c *Checker) typeOfBinary(h syntax.Header) types.TypeID {
	d := c.arena.Binary.Get(h.DataIndex)
	switch d.Op {
	case scanner.Equals:
		return c.TypeOfNode(d.Right)
	case scanner.PlusEquals, scanner.MinusEquals, scanner.StarEquals, scanner.StarStarEquals,
		scanner.SlashEquals, scanner.PercentEquals, scanner.LessThanLessThanEquals,
		scanner.GreaterThanGreaterThanEquals, scanner.GreaterThanGreaterThanGreaterThanEquals,
		scanner.AmpersandEquals, scanner.PipeEquals, scanner.CaretEquals:
		c.TypeOfNode(d.Right)
		return c.TypeOfNode(d.Left)
	case scanner.AmpersandAmpersandEquals, scanner.PipePipeEquals, scanner.QuestionQuestionEquals:
		return c.TypeOfNode(d.Right)
	case scanner.Plus:
		lt, rt := c.TypeOfNode(d.Left), c.TypeOfNode(d.Right)
		if c.isStringLike(lt) || c.isStringLike(rt) {
			return types.StringType
		}
		return types.NumberType
	case scanner.Minus, scanner.Star, scanner.StarStar, scanner.Slash, scanner.Percent,
		scanner.Ampersand, scanner.Pipe, scanner.Caret,
		scanner.LessThanLessThan, scanner.GreaterThanGreaterThan, scanner.GreaterThanGreaterThanGreaterThan:
		c.TypeOfNode(d.Left)
		c.TypeOfNode(d.Right)
		return types.NumberType
	case scanner.LessThan, scanner.GreaterThan, scanner.LessThanEquals, scanner.GreaterThanEquals,
		scanner.EqualsEquals, scanner.ExclamationEquals, scanner.EqualsEqualsEquals, scanner.ExclamationEqualsEquals,
		scanner.InstanceofKeyword, scanner.InKeyword:
		c.TypeOfNode(d.Left)
		c.TypeOfNode(d.Right)
		return types.BooleanType
	case scanner.AmpersandAmpersand:
		c.TypeOfNode(d.Left)
		return c.TypeOfNode(d.Right)
	case scanner.PipePipe:
		lt := c.TypeOfNode(d.Left)
		rt := c.TypeOfNode(d.Right)
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{c.stripFalsy(lt), rt}})
	case scanner.QuestionQuestion:
		lt := c.TypeOfNode(d.Left)
		rt := c.TypeOfNode(d.Right)
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{c.stripNullish(lt), rt}})
	default:
		c.TypeOfNode(d.Left)
		c.TypeOfNode(d.Right)
		return types.ErrorType
	}
}

func (c *Checker) typeOfUnary(h syntax.Header) types.TypeID {
	d := c.arena.Unary.Get(h.DataIndex)
	c.TypeOfNode(d.Operand)
	switch d.Op {
	case scanner.Exclamation:
		return types.BooleanType
	case scanner.PlusPlus, scanner.MinusMinus, scanner.Minus, scanner.Plus, scanner.Tilde:
		return types.NumberType
	default:
		return types.ErrorType
	}
}

// stripNullish removes `null`/`undefined` members from a union (the
// non-null assertion and `??`/optional-chaining narrowing rule); a
// non-union operand that is itself null/undefined degrades to `never`,
// the same way TypeScript narrows an always-nullish expression.
func (c *Checker) stripNullish(t types.TypeID) types.TypeID {
	k := c.in.Get(t)
	if k.Kind != types.KindUnion {
		if t == types.NullType || t == types.UndefinedType {
			return types.Never
		}
		return t
	}
	kept := make([]types.TypeID, 0, len(k.Members))
	for _, m := range k.Members {
		if m != types.NullType && m != types.UndefinedType {
			kept = append(kept, m)
		}
	}
	return c.in.Intern(types.Key{Kind: types.KindUnion, Members: kept})
}

// stripFalsy removes the always-falsy members relevant to `||`'s
// left-operand narrowing: `null`, `undefined`, and the literal `false`.
func (c *Checker) stripFalsy(t types.TypeID) types.TypeID {
	k := c.in.Get(t)
	if k.Kind != types.KindUnion {
		if t == types.NullType || t == types.UndefinedType {
			return types.Never
		}
		if k.Kind == types.KindBooleanLiteral && !k.BooleanLit {
			return types.Never
		}
		return t
	}
	kept := make([]types.TypeID, 0, len(k.Members))
	for _, m := range k.Members {
		mk := c.in.Get(m)
		if m == types.NullType || m == types.UndefinedType {
			continue
		}
		if mk.Kind == types.KindBooleanLiteral && !mk.BooleanLit {
			continue
		}
		kept = append(kept, m)
	}
	return c.in.Intern(types.Key{Kind: types.KindUnion, Members: kept})
}

func (c *Checker) containsNull(k types.Key) bool  { return c.containsMember(k, types.NullType) }
func (c *Checker) containsUndefined(k types.Key) bool {
	return c.containsMember(k, types.UndefinedType)
}

func (c *Checker) containsMember(k types.Key, want types.TypeID) bool {
	if k.Kind != types.KindUnion {
		return false
	}
	for _, m := range k.Members {
		if m == want {
			return true
		}
	}
	return false
}

func (c *Checker) isStringLike(t types.TypeID) bool {
	k := c.in.Get(t)
	return t == types.StringType || k.Kind == types.KindStringLiteral || k.Kind == types.KindTemplateLiteral
}

func (c *Checker) pushCall(node syntax.NodeID) bool {
	if c.callDepth >= MaxCallDepth {
		c.tooComplex(node)
		return false
	}
	c.callDepth++
	return true
}

func (c *Checker) popCall() { c.callDepth-- }
