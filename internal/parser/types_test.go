package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/parser"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// parseVarType parses `let x: <typeSrc>;` and returns the annotation node.
func parseVarType(t *testing.T, typeSrc string) (*syntax.Arena, syntax.NodeID) {
	t.Helper()
	names := atom.New()
	bag := diag.NewBag()
	src := "let x: " + typeSrc + ";"
	arena, root := parser.ParseSourceFile("a.ts", []byte(src), names, bag, false)
	require.False(t, bag.HasErrors(), "unexpected parse diagnostics: %v", bag.All())

	rootData := arena.Block.Get(arena.Header(root).DataIndex)
	stmts := arena.Nodes(rootData.Statements)
	require.Len(t, stmts, 1)
	varStmtHeader := arena.Header(stmts[0])
	require.Equal(t, syntax.KindVariableStatement, varStmtHeader.Kind)
	list := arena.VarDeclList.Get(varStmtHeader.DataIndex)
	decls := arena.Nodes(list.Decls)
	require.Len(t, decls, 1)
	decl := arena.VarDecl.Get(arena.Header(decls[0]).DataIndex)
	require.NotEqual(t, syntax.NoNode, decl.Type)
	return arena, decl.Type
}

func TestUnionTypeBindsLooserThanIntersection(t *testing.T) {
	// A & B | C & D must group as (A & B) | (C & D).
	arena, ty := parseVarType(t, "A & B | C & D")

	h := arena.Header(ty)
	require.Equal(t, syntax.KindUnionType, h.Kind)
	union := arena.UnionType.Get(h.DataIndex)
	members := arena.Nodes(union.Types)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, syntax.KindIntersectionType, arena.Header(m).Kind)
	}
}

func TestConditionalTypeWrapsUnionOperands(t *testing.T) {
	arena, ty := parseVarType(t, "A extends B ? C | D : E")

	h := arena.Header(ty)
	require.Equal(t, syntax.KindConditionalType, h.Kind)
	cond := arena.CondType.Get(h.DataIndex)

	assert.Equal(t, syntax.KindTypeReference, arena.Header(cond.Check).Kind)
	assert.Equal(t, syntax.KindTypeReference, arena.Header(cond.Extends).Kind)
	assert.Equal(t, syntax.KindUnionType, arena.Header(cond.True).Kind)
	assert.Equal(t, syntax.KindTypeReference, arena.Header(cond.False).Kind)
}

func TestPlainTypeReferenceWithTypeArguments(t *testing.T) {
	arena, ty := parseVarType(t, "Array<string>")

	h := arena.Header(ty)
	require.Equal(t, syntax.KindTypeReference, h.Kind)
	ref := arena.TypeRef.Get(h.DataIndex)
	assert.Equal(t, int32(1), ref.TypeArgs.Len)
}
