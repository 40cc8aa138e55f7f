package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/types"
)

func TestBuiltinIDsAreStable(t *testing.T) {
	in := types.NewInterner(atom.New())
	assert.Equal(t, types.KindAny, in.Get(types.Any).Kind)
	assert.Equal(t, types.KindNever, in.Get(types.Never).Kind)
	assert.Equal(t, types.KindUnknown, in.Get(types.Unknown).Kind)
	assert.Equal(t, types.KindString, in.Get(types.StringType).Kind)
}

func TestInternDedupesStructurallyEqualKeys(t *testing.T) {
	in := types.NewInterner(atom.New())
	a := in.Intern(types.Key{Kind: types.KindArray, Element: types.StringType})
	b := in.Intern(types.Key{Kind: types.KindArray, Element: types.StringType})
	assert.Equal(t, a, b)
}

func TestUnionFlattensAndDedupes(t *testing.T) {
	in := types.NewInterner(atom.New())
	inner := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{types.StringType, types.NumberType}})
	outer := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{inner, types.NumberType, types.BooleanType}})
	k := in.Get(outer)
	require.Equal(t, types.KindUnion, k.Kind)
	assert.Len(t, k.Members, 3) // string | number | boolean, deduped
}

func TestUnionWithAnyCollapsesToAny(t *testing.T) {
	in := types.NewInterner(atom.New())
	u := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{types.StringType, types.Any}})
	assert.Equal(t, types.Any, u)
}

func TestUnionWithNeverDropsMember(t *testing.T) {
	in := types.NewInterner(atom.New())
	u := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{types.StringType, types.Never}})
	assert.Equal(t, types.StringType, u)
}

func TestObjectPropertiesCanonicalizeSortOrder(t *testing.T) {
	in := types.NewInterner(atom.New())
	names := in.Strings
	a := in.Intern(types.Key{Kind: types.KindObject, Properties: []types.Property{
		{Name: names.Intern("b"), Type: types.StringType},
		{Name: names.Intern("a"), Type: types.NumberType},
	}})
	b := in.Intern(types.Key{Kind: types.KindObject, Properties: []types.Property{
		{Name: names.Intern("a"), Type: types.NumberType},
		{Name: names.Intern("b"), Type: types.StringType},
	}})
	assert.Equal(t, a, b)
}

func TestStringLiteralsInternSeparatelyPerValue(t *testing.T) {
	in := types.NewInterner(atom.New())
	a := in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: in.Strings.Intern("a")})
	b := in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: in.Strings.Intern("b")})
	assert.NotEqual(t, a, b)
}
