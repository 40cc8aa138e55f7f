package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/parser"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// parseExprStatement parses src and fails the test if parsing reported any
// diagnostic, returning the arena and the single top-level expression
// statement's expression node.
func parseExprStatement(t *testing.T, src string) (*syntax.Arena, syntax.NodeID) {
	t.Helper()
	names := atom.New()
	bag := diag.NewBag()
	arena, root := parser.ParseSourceFile("a.ts", []byte(src), names, bag, false)
	require.False(t, bag.HasErrors(), "unexpected parse diagnostics: %v", bag.All())

	rootData := arena.Block.Get(arena.Header(root).DataIndex)
	stmts := arena.Nodes(rootData.Statements)
	require.Len(t, stmts, 1)

	stmtHeader := arena.Header(stmts[0])
	require.Equal(t, syntax.KindExpressionStatement, stmtHeader.Kind)
	exprStmt := arena.ExprStmt.Get(stmtHeader.DataIndex)
	return arena, exprStmt.Expr
}

func TestBinaryPrecedenceMultiplicationBindsTighterThanAddition(t *testing.T) {
	arena, expr := parseExprStatement(t, "1 + 2 * 3;")

	h := arena.Header(expr)
	require.Equal(t, syntax.KindBinaryExpression, h.Kind)
	top := arena.Binary.Get(h.DataIndex)
	assert.Equal(t, scanner.Plus, top.Op)

	rightHeader := arena.Header(top.Right)
	require.Equal(t, syntax.KindBinaryExpression, rightHeader.Kind)
	right := arena.Binary.Get(rightHeader.DataIndex)
	assert.Equal(t, scanner.Star, right.Op)

	assert.Equal(t, syntax.KindNumericLiteral, arena.Header(top.Left).Kind)
}

func TestExponentiationIsRightAssociative(t *testing.T) {
	// 2 ** 3 ** 2 must parse as 2 ** (3 ** 2), not (2 ** 3) ** 2.
	arena, expr := parseExprStatement(t, "2 ** 3 ** 2;")

	h := arena.Header(expr)
	require.Equal(t, syntax.KindBinaryExpression, h.Kind)
	top := arena.Binary.Get(h.DataIndex)
	assert.Equal(t, scanner.StarStar, top.Op)
	assert.Equal(t, syntax.KindNumericLiteral, arena.Header(top.Left).Kind)

	rightHeader := arena.Header(top.Right)
	require.Equal(t, syntax.KindBinaryExpression, rightHeader.Kind)
	right := arena.Binary.Get(rightHeader.DataIndex)
	assert.Equal(t, scanner.StarStar, right.Op)
}

func TestArrowFunctionSingleBareParam(t *testing.T) {
	arena, expr := parseExprStatement(t, "x => x;")

	h := arena.Header(expr)
	require.Equal(t, syntax.KindArrowFunction, h.Kind)
	fn := arena.Func.Get(h.DataIndex)
	params := arena.Nodes(fn.Params)
	require.Len(t, params, 1)
}

func TestParenthesizedNonArrowFallsBackAfterFailedLookahead(t *testing.T) {
	// (x, y) without a following `=>` must roll back to a plain
	// parenthesized comma expression rather than leave an arrow-shaped
	// partial parse behind.
	arena, expr := parseExprStatement(t, "(x, y);")

	h := arena.Header(expr)
	require.Equal(t, syntax.KindParenthesizedExpression, h.Kind)
}

func TestAsyncArrowFunctionParses(t *testing.T) {
	arena, expr := parseExprStatement(t, "async (x) => x;")

	h := arena.Header(expr)
	require.Equal(t, syntax.KindArrowFunction, h.Kind)
	fn := arena.Func.Get(h.DataIndex)
	assert.Len(t, arena.Nodes(fn.Params), 1)
}

func TestGenericCallDisambiguatesFromComparison(t *testing.T) {
	arena, expr := parseExprStatement(t, "f<T>(x);")

	h := arena.Header(expr)
	require.Equal(t, syntax.KindCallExpression, h.Kind)
	call := arena.Call.Get(h.DataIndex)
	assert.Equal(t, int32(1), call.TypeArgs.Len)
}

func TestLessThanFallsBackToComparisonWhenNotAGenericCall(t *testing.T) {
	// a < b is a comparison: the speculative generic-call-argument-list
	// parse must fail and roll back rather than misparse this as a call.
	arena, expr := parseExprStatement(t, "a < b;")

	h := arena.Header(expr)
	require.Equal(t, syntax.KindBinaryExpression, h.Kind)
	bin := arena.Binary.Get(h.DataIndex)
	assert.Equal(t, scanner.LessThan, bin.Op)
}

func TestNestedGenericCallRescansDoubleGreaterThan(t *testing.T) {
	// f<Array<T>>() requires the scanner to split the `>>` token produced
	// by nested angle brackets back into two `>` tokens.
	arena, expr := parseExprStatement(t, "f<Array<T>>();")

	h := arena.Header(expr)
	require.Equal(t, syntax.KindCallExpression, h.Kind)
	call := arena.Call.Get(h.DataIndex)
	assert.Equal(t, int32(1), call.TypeArgs.Len)
}

func parseSingleStatement(t *testing.T, src string) (*syntax.Arena, syntax.NodeID) {
	t.Helper()
	names := atom.New()
	bag := diag.NewBag()
	arena, root := parser.ParseSourceFile("a.ts", []byte(src), names, bag, false)
	require.False(t, bag.HasErrors(), "unexpected parse diagnostics: %v", bag.All())

	rootData := arena.Block.Get(arena.Header(root).DataIndex)
	stmts := arena.Nodes(rootData.Statements)
	require.Len(t, stmts, 1)
	return arena, stmts[0]
}

func TestClassicForStatementParses(t *testing.T) {
	arena, stmt := parseSingleStatement(t, "for (let i = 0; i < 10; i++) {}")
	h := arena.Header(stmt)
	require.Equal(t, syntax.KindForStatement, h.Kind)
	data := arena.For.Get(h.DataIndex)
	assert.NotEqual(t, syntax.NoNode, data.Init)
	assert.NotEqual(t, syntax.NoNode, data.Cond)
	assert.NotEqual(t, syntax.NoNode, data.Update)
}

func TestForInStatementDisambiguatesFromClassicFor(t *testing.T) {
	arena, stmt := parseSingleStatement(t, "for (const k in obj) {}")
	h := arena.Header(stmt)
	require.Equal(t, syntax.KindForInStatement, h.Kind)
	data := arena.ForIn.Get(h.DataIndex)
	assert.False(t, data.Of)
}

func TestForOfStatementDisambiguatesFromClassicFor(t *testing.T) {
	arena, stmt := parseSingleStatement(t, "for (const v of list) {}")
	h := arena.Header(stmt)
	require.Equal(t, syntax.KindForOfStatement, h.Kind)
	data := arena.ForIn.Get(h.DataIndex)
	assert.True(t, data.Of)
}

func TestStatementRecoveryProducesMissingNodeAndContinues(t *testing.T) {
	// A stray `)` at statement position cannot start any statement; the
	// parser must emit a diagnostic, synthesize a placeholder, and still
	// parse the following well-formed statement rather than abort.
	names := atom.New()
	bag := diag.NewBag()
	arena, root := parser.ParseSourceFile("a.ts", []byte(") ; let x = 1;"), names, bag, false)
	require.True(t, bag.HasErrors())

	rootData := arena.Block.Get(arena.Header(root).DataIndex)
	stmts := arena.Nodes(rootData.Statements)
	require.NotEmpty(t, stmts)

	var sawVarStatement bool
	for _, s := range stmts {
		if arena.Header(s).Kind == syntax.KindVariableStatement {
			sawVarStatement = true
		}
	}
	assert.True(t, sawVarStatement, "parser should recover and still parse the trailing let statement")
}
