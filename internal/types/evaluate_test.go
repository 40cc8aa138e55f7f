package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/types"
)

func TestEvaluateConditionalTrueBranch(t *testing.T) {
	in := types.NewInterner(atom.New())
	cond := in.Intern(types.Key{Kind: types.KindConditional, Check: types.StringType, Extends: types.StringType, True: types.NumberType, False: types.BooleanType})
	assert.Equal(t, types.NumberType, types.Evaluate(in, cond))
}

func TestEvaluateConditionalFalseBranch(t *testing.T) {
	in := types.NewInterner(atom.New())
	cond := in.Intern(types.Key{Kind: types.KindConditional, Check: types.NumberType, Extends: types.StringType, True: types.NumberType, False: types.BooleanType})
	assert.Equal(t, types.BooleanType, types.Evaluate(in, cond))
}

func TestEvaluateConditionalDistributesOverNakedUnionCheck(t *testing.T) {
	in := types.NewInterner(atom.New())
	union := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{types.StringType, types.NumberType}})
	cond := in.Intern(types.Key{
		Kind: types.KindConditional, Check: union, Extends: types.StringType,
		True: types.BooleanType, False: types.NullType, CheckIsNaked: true,
	})
	result := types.Evaluate(in, cond)
	rk := in.Get(result)
	require.Equal(t, types.KindUnion, rk.Kind)
	assert.ElementsMatch(t, []types.TypeID{types.BooleanType, types.NullType}, rk.Members)
}

func TestEvaluateConditionalDoesNotDistributeOverNonNakedCheck(t *testing.T) {
	// Simulates `T[] extends U ? X : Y`: Check evaluates to a union but
	// was not a bare type-parameter reference, so CheckIsNaked is false
	// and the whole union is tested against Extends as one type.
	in := types.NewInterner(atom.New())
	union := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{types.StringType, types.NumberType}})
	cond := in.Intern(types.Key{
		Kind: types.KindConditional, Check: union, Extends: types.StringType,
		True: types.BooleanType, False: types.NullType,
	})
	assert.Equal(t, types.NullType, types.Evaluate(in, cond))
}

func TestEvaluateKeyofObject(t *testing.T) {
	in := types.NewInterner(atom.New())
	names := in.Strings
	obj := in.Intern(types.Key{Kind: types.KindObject, Properties: []types.Property{
		{Name: names.Intern("a"), Type: types.StringType},
		{Name: names.Intern("b"), Type: types.NumberType},
	}})
	keyof := in.Intern(types.Key{Kind: types.KindKeyof, Element: obj})
	result := types.Evaluate(in, keyof)
	rk := in.Get(result)
	require.Equal(t, types.KindUnion, rk.Kind)
	assert.Len(t, rk.Members, 2)
}

func TestEvaluateIndexedAccessLiteralKey(t *testing.T) {
	in := types.NewInterner(atom.New())
	names := in.Strings
	obj := in.Intern(types.Key{Kind: types.KindObject, Properties: []types.Property{
		{Name: names.Intern("a"), Type: types.StringType},
	}})
	keyLit := in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: names.Intern("a")})
	access := in.Intern(types.Key{Kind: types.KindIndexedAccess, Element: obj, Index: keyLit})
	assert.Equal(t, types.StringType, types.Evaluate(in, access))
}

func TestEvaluateIndexedAccessTupleNumberYieldsUnionOfElements(t *testing.T) {
	in := types.NewInterner(atom.New())
	tup := in.Intern(types.Key{Kind: types.KindTuple, Elements: []types.TupleElement{
		{Type: types.StringType}, {Type: types.NumberType},
	}})
	access := in.Intern(types.Key{Kind: types.KindIndexedAccess, Element: tup, Index: types.NumberType})
	result := types.Evaluate(in, access)
	rk := in.Get(result)
	require.Equal(t, types.KindUnion, rk.Kind)
	assert.Len(t, rk.Members, 2)
}

func TestEvaluateMappedTypeBuildsObjectFromKeys(t *testing.T) {
	in := types.NewInterner(atom.New())
	names := in.Strings
	keySource := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{
		in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: names.Intern("a")}),
		in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: names.Intern("b")}),
	}})
	mapped := in.Intern(types.Key{Kind: types.KindMapped, KeySource: keySource, Element: types.NumberType})
	result := types.Evaluate(in, mapped)
	rk := in.Get(result)
	require.Equal(t, types.KindObject, rk.Kind)
	assert.Len(t, rk.Properties, 2)
	for _, p := range rk.Properties {
		assert.Equal(t, types.NumberType, p.Type)
	}
}

func TestEvaluateTemplateLiteralCrossProduct(t *testing.T) {
	in := types.NewInterner(atom.New())
	names := in.Strings
	span := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{
		in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: names.Intern("a")}),
		in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: names.Intern("b")}),
	}})
	tmpl := in.Intern(types.Key{Kind: types.KindTemplateLiteral, Template: types.TemplateChunk{
		Literals: []atom.Atom{names.Intern("x-"), names.Intern("")},
		Types:    []types.TypeID{span},
	}})
	result := types.Evaluate(in, tmpl)
	rk := in.Get(result)
	require.Equal(t, types.KindUnion, rk.Kind)
	assert.Len(t, rk.Members, 2)
	for _, m := range rk.Members {
		mk := in.Get(m)
		require.Equal(t, types.KindStringLiteral, mk.Kind)
		text := names.Text(mk.StringLit)
		assert.True(t, text == "x-a" || text == "x-b", "unexpected expansion %q", text)
	}
}
