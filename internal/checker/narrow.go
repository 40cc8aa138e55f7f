package checker

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// narrowReference computes the flow-narrowed type of one variable/parameter
// reference: starting at the flow position the reference occurs at, it
// walks FlowGraph antecedents backward toward FlowStart, applying every
// guard (typeof/instanceof/equality/truthiness) and assignment encountered
// along the way that targets sym. Binder builds the flow graph once per
// file; this is the only place the checker walks it, and it only ever
// reads it -- narrowing never mutates bind's output.
func (c *Checker) narrowReference(sym binder.SymbolID, declared types.TypeID, at binder.FlowNodeID) types.TypeID {
	if at == binder.NoFlow {
		return declared
	}
	return c.narrowWalk(sym, declared, at, make(map[binder.FlowNodeID]bool), 0)
}

// narrowWalk is the recursive worklist step. seen breaks cycles from a
// loop's back-edge (Antecedent2 on a FlowLoopLabel): a flow node already on
// the current path widens to the declared type rather than recursing
// forever. depth is a second, independent bound on top of the shared fuel
// counter, since a pathological flow graph could otherwise revisit many
// distinct nodes without ever repeating one.
func (c *Checker) narrowWalk(sym binder.SymbolID, declared types.TypeID, id binder.FlowNodeID, seen map[binder.FlowNodeID]bool, depth int) types.TypeID {
	if id == binder.NoFlow || seen[id] || depth > MaxTreeWalkIterations {
		return declared
	}
	seen[id] = true
	node := c.bind.Flow.Get(id)
	switch node.Kind {
	case binder.FlowStart:
		return declared
	case binder.FlowUnreachable:
		return types.Never
	case binder.FlowTrueCondition:
		base := c.narrowWalk(sym, declared, node.Antecedent, seen, depth+1)
		return c.applyCondition(sym, base, node.Expr, true)
	case binder.FlowFalseCondition:
		base := c.narrowWalk(sym, declared, node.Antecedent, seen, depth+1)
		return c.applyCondition(sym, base, node.Expr, false)
	case binder.FlowBranchLabel:
		a := c.narrowWalk(sym, declared, node.Antecedent, seen, depth+1)
		if node.Antecedent2 == binder.NoFlow {
			return a
		}
		b := c.narrowWalk(sym, declared, node.Antecedent2, seen, depth+1)
		return c.unionTypes(a, b)
	case binder.FlowLoopLabel:
		// Approximates a fixed point by widening the pre-loop type with
		// whatever the back-edge narrows it to, rather than iterating the
		// body until the narrowed type stops changing.
		pre := c.narrowWalk(sym, declared, node.Antecedent, seen, depth+1)
		if node.Antecedent2 != binder.NoFlow && !seen[node.Antecedent2] {
			back := c.narrowWalk(sym, declared, node.Antecedent2, seen, depth+1)
			return c.unionTypes(pre, back)
		}
		return pre
	case binder.FlowAssignment:
		if c.referencesSymbol(sym, node.Target) {
			if node.Expr == syntax.NoNode {
				return declared
			}
			return c.widen(c.TypeOfNode(node.Expr))
		}
		return c.narrowWalk(sym, declared, node.Antecedent, seen, depth+1)
	case binder.FlowSwitchClause:
		base := c.narrowWalk(sym, declared, node.Antecedent, seen, depth+1)
		if node.Target == syntax.NoNode {
			return base
		}
		if c.referencesSymbol(sym, node.Expr) && c.isLiteralNode(node.Target) {
			return c.applyLiteralEquality(base, node.Target, true)
		}
		return base
	case binder.FlowSuspend:
		return c.narrowWalk(sym, declared, node.Antecedent, seen, depth+1)
	default:
		return c.narrowWalk(sym, declared, node.Antecedent, seen, depth+1)
	}
}

// unionTypes merges two branch results at a join point; the Interner
// canonicalizes nested/duplicate union members, so a naive two-member
// union is enough here even when a or b is itself already a union.
func (c *Checker) unionTypes(a, b types.TypeID) types.TypeID {
	if a == b {
		return a
	}
	return c.in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{a, b}})
}

// applyCondition narrows t by the tested expr, assuming it evaluated to
// truthy (or, if !truthy, to falsy). Guard shapes not recognized here leave
// t unchanged rather than guessing.
func (c *Checker) applyCondition(sym binder.SymbolID, t types.TypeID, cond syntax.NodeID, truthy bool) types.TypeID {
	if cond == syntax.NoNode {
		return t
	}
	h := c.arena.Header(cond)
	switch h.Kind {
	case syntax.KindParenthesizedExpression:
		return c.applyCondition(sym, t, c.unwrapParens(cond), truthy)

	case syntax.KindPrefixUnaryExpression:
		d := c.arena.Unary.Get(h.DataIndex)
		if d.Op == scanner.Exclamation {
			return c.applyCondition(sym, t, d.Operand, !truthy)
		}
		return t

	case syntax.KindBinaryExpression:
		d := c.arena.Binary.Get(h.DataIndex)
		switch d.Op {
		case scanner.AmpersandAmpersand:
			if !truthy {
				return t
			}
			t = c.applyCondition(sym, t, d.Left, true)
			return c.applyCondition(sym, t, d.Right, true)
		case scanner.PipePipe:
			if truthy {
				return t
			}
			t = c.applyCondition(sym, t, d.Left, false)
			return c.applyCondition(sym, t, d.Right, false)
		case scanner.EqualsEqualsEquals, scanner.EqualsEquals:
			return c.applyEquality(sym, t, d.Left, d.Right, truthy)
		case scanner.ExclamationEqualsEquals, scanner.ExclamationEquals:
			return c.applyEquality(sym, t, d.Left, d.Right, !truthy)
		case scanner.InstanceofKeyword:
			return c.applyInstanceof(sym, t, d.Left, d.Right, truthy)
		}
		return t

	case syntax.KindNonNullExpression:
		d := c.arena.AsExpr.Get(h.DataIndex)
		return c.applyCondition(sym, t, d.Expr, truthy)

	default:
		if c.referencesSymbol(sym, cond) {
			if truthy {
				return c.stripFalsy(t)
			}
			return t
		}
		return t
	}
}

// applyEquality handles `left op right` where op is `==`/`===` (truthy
// means "they were equal"): recognizes a `typeof x` operand against a
// string-literal tag, or sym directly against a literal.
func (c *Checker) applyEquality(sym binder.SymbolID, t types.TypeID, left, right syntax.NodeID, truthy bool) types.TypeID {
	if c.isTypeofOf(sym, left) && c.isLiteralNode(right) {
		return c.applyTypeofGuard(t, right, truthy)
	}
	if c.isTypeofOf(sym, right) && c.isLiteralNode(left) {
		return c.applyTypeofGuard(t, left, truthy)
	}
	if c.referencesSymbol(sym, left) && c.isLiteralNode(right) {
		return c.applyLiteralEquality(t, right, truthy)
	}
	if c.referencesSymbol(sym, right) && c.isLiteralNode(left) {
		return c.applyLiteralEquality(t, left, truthy)
	}
	if name, ok := c.propertyDiscriminant(sym, left); ok && c.isLiteralNode(right) {
		return c.applyDiscriminantEquality(t, name, right, truthy)
	}
	if name, ok := c.propertyDiscriminant(sym, right); ok && c.isLiteralNode(left) {
		return c.applyDiscriminantEquality(t, name, left, truthy)
	}
	return t
}

// propertyDiscriminant reports whether node is `sym.name`, the shape a
// discriminated union's tag check takes (`s.kind === "circle"`), returning
// the accessed property name.
func (c *Checker) propertyDiscriminant(sym binder.SymbolID, node syntax.NodeID) (atom.Atom, bool) {
	h := c.arena.Header(node)
	if h.Kind != syntax.KindPropertyAccessExpression {
		return atom.NoAtom, false
	}
	d := c.arena.PropAccess.Get(h.DataIndex)
	if !c.referencesSymbol(sym, d.Expr) {
		return atom.NoAtom, false
	}
	return d.Name, true
}

// applyDiscriminantEquality narrows a union t by which members' named
// property could equal litNode's literal type: on truthy, keeps only
// members whose property type is exactly that literal; on falsy,
// drops members whose property type is exactly that literal. Members
// lacking the property entirely are left out of the truthy result (they
// cannot satisfy the guard) and kept in the falsy result (they aren't
// excluded by it).
func (c *Checker) applyDiscriminantEquality(t types.TypeID, name atom.Atom, litNode syntax.NodeID, truthy bool) types.TypeID {
	lit := c.TypeOfNode(litNode)
	tk := c.in.Get(t)
	members := []types.TypeID{t}
	if tk.Kind == types.KindUnion {
		members = tk.Members
	}
	var kept []types.TypeID
	for _, m := range members {
		mk := c.in.Get(m)
		pt, found := discriminantProperty(mk, name)
		if !found {
			if !truthy {
				kept = append(kept, m)
			}
			continue
		}
		matches := pt == lit
		if matches == truthy {
			kept = append(kept, m)
		}
	}
	switch len(kept) {
	case 0:
		return types.Never
	case 1:
		return kept[0]
	default:
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: kept})
	}
}

func discriminantProperty(k types.Key, name atom.Atom) (types.TypeID, bool) {
	for _, p := range k.Properties {
		if p.Name == name {
			return p.Type, true
		}
	}
	return types.NoType, false
}

// applyInstanceof narrows sym to the right-hand class's instance type on
// the truthy branch; the falsy branch (subtracting a nominal type from a
// union) is left as an Open Question -- it needs a notion of nominal
// identity the structural Object key doesn't carry, so it is not attempted.
func (c *Checker) applyInstanceof(sym binder.SymbolID, t types.TypeID, left, right syntax.NodeID, truthy bool) types.TypeID {
	if !truthy || !c.referencesSymbol(sym, left) {
		return t
	}
	rh := c.arena.Header(right)
	if rh.Kind != syntax.KindIdentifier {
		return t
	}
	d := c.arena.Ident.Get(rh.DataIndex)
	ctorSym := c.bind.Scopes.Resolve(c.scopeOf(right), d.Name)
	if ctorSym == binder.NoSymbol {
		return t
	}
	ctorType := c.TypeOfSymbol(ctorSym)
	k := c.in.Get(ctorType)
	if k.Kind != types.KindFunction || !k.IsCtor {
		return t
	}
	return k.Return
}

// applyTypeofGuard narrows t to (or away from) the primitive a `typeof`
// string-literal tag names.
func (c *Checker) applyTypeofGuard(t types.TypeID, tagNode syntax.NodeID, truthy bool) types.TypeID {
	tagType := c.TypeOfNode(tagNode)
	tagKey := c.in.Get(tagType)
	if tagKey.Kind != types.KindStringLiteral {
		return t
	}
	tag := c.names.Text(tagKey.StringLit)
	primitive, ok := typeofTagPrimitive(tag)
	if !ok {
		return t
	}
	tk := c.in.Get(t)
	if truthy {
		if tk.Kind != types.KindUnion {
			if tk.Kind == primitiveKind(primitive) {
				return t
			}
			return primitive
		}
		var kept []types.TypeID
		for _, m := range tk.Members {
			if c.in.Get(m).Kind == primitiveKind(primitive) {
				kept = append(kept, m)
			}
		}
		if len(kept) == 0 {
			return primitive
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: kept})
	}
	if tk.Kind != types.KindUnion {
		return t
	}
	var kept []types.TypeID
	for _, m := range tk.Members {
		if c.in.Get(m).Kind != primitiveKind(primitive) {
			kept = append(kept, m)
		}
	}
	switch len(kept) {
	case 0:
		return types.Never
	case 1:
		return kept[0]
	default:
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: kept})
	}
}

func typeofTagPrimitive(tag string) (types.TypeID, bool) {
	switch tag {
	case "string":
		return types.StringType, true
	case "number":
		return types.NumberType, true
	case "boolean":
		return types.BooleanType, true
	case "bigint":
		return types.BigintType, true
	case "symbol":
		return types.SymbolType, true
	case "undefined":
		return types.UndefinedType, true
	case "object":
		return types.ObjectKeyword, true
	case "function":
		return types.FunctionKeyword, true
	default:
		return types.Any, false
	}
}

func primitiveKind(t types.TypeID) types.Kind {
	switch t {
	case types.StringType:
		return types.KindString
	case types.NumberType:
		return types.KindNumber
	case types.BooleanType:
		return types.KindBoolean
	case types.BigintType:
		return types.KindBigint
	case types.SymbolType:
		return types.KindSymbol
	case types.UndefinedType:
		return types.KindUndefined
	case types.ObjectKeyword:
		return types.KindObjectKeyword
	case types.FunctionKeyword:
		return types.KindFunctionKeyword
	default:
		return types.KindAny
	}
}

// applyLiteralEquality narrows t to (or away from) the literal litNode's
// own type: an `x === "a"` guard narrows to the literal type `"a"` itself,
// matching a discriminated union's discriminant-member selection.
func (c *Checker) applyLiteralEquality(t types.TypeID, litNode syntax.NodeID, truthy bool) types.TypeID {
	lit := c.TypeOfNode(litNode)
	if truthy {
		return lit
	}
	tk := c.in.Get(t)
	if tk.Kind != types.KindUnion {
		return t
	}
	var kept []types.TypeID
	for _, m := range tk.Members {
		if m != lit {
			kept = append(kept, m)
		}
	}
	switch len(kept) {
	case 0:
		return types.Never
	case 1:
		return kept[0]
	default:
		return c.in.Intern(types.Key{Kind: types.KindUnion, Members: kept})
	}
}

// referencesSymbol reports whether node, after unwrapping parens and `!`
// non-null assertions, is an identifier resolving to sym.
func (c *Checker) referencesSymbol(sym binder.SymbolID, node syntax.NodeID) bool {
	node = c.unwrapReference(node)
	if node == syntax.NoNode {
		return false
	}
	h := c.arena.Header(node)
	if h.Kind != syntax.KindIdentifier {
		return false
	}
	d := c.arena.Ident.Get(h.DataIndex)
	return c.bind.Scopes.Resolve(c.scopeOf(node), d.Name) == sym
}

func (c *Checker) unwrapReference(node syntax.NodeID) syntax.NodeID {
	for node != syntax.NoNode {
		h := c.arena.Header(node)
		switch h.Kind {
		case syntax.KindParenthesizedExpression:
			node = c.unwrapParens(node)
		case syntax.KindNonNullExpression:
			node = c.arena.AsExpr.Get(h.DataIndex).Expr
		default:
			return node
		}
	}
	return node
}

func (c *Checker) isTypeofOf(sym binder.SymbolID, node syntax.NodeID) bool {
	h := c.arena.Header(node)
	if h.Kind != syntax.KindTypeofExpression {
		return false
	}
	d := c.arena.Unary.Get(h.DataIndex)
	return c.referencesSymbol(sym, d.Operand)
}

func (c *Checker) isLiteralNode(node syntax.NodeID) bool {
	switch c.arena.Header(node).Kind {
	case syntax.KindStringLiteral, syntax.KindNumericLiteral, syntax.KindBigIntLiteral,
		syntax.KindTrueLiteral, syntax.KindFalseLiteral, syntax.KindNullLiteral:
		return true
	default:
		return false
	}
}

// unwrapParens returns the inner expression of a parenthesized node.
// ParenthesizedExpression shares AsExprData's pool (Expr is the operand,
// Type stays syntax.NoNode) the same way typeOfNode's own paren case reads
// it, rather than a dedicated single-field pool.
func (c *Checker) unwrapParens(node syntax.NodeID) syntax.NodeID {
	h := c.arena.Header(node)
	return c.arena.AsExpr.Get(h.DataIndex).Expr
}
