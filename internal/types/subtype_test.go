package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/types"
)

func TestSubtypeIdentity(t *testing.T) {
	in := types.NewInterner(atom.New())
	assert.True(t, types.Subtype(in, types.StringType, types.StringType, types.Bivariant).Bool())
}

func TestSubtypeNeverIsBottom(t *testing.T) {
	in := types.NewInterner(atom.New())
	assert.True(t, types.Subtype(in, types.Never, types.StringType, types.Bivariant).Bool())
}

func TestSubtypeUnknownIsTop(t *testing.T) {
	in := types.NewInterner(atom.New())
	assert.True(t, types.Subtype(in, types.StringType, types.Unknown, types.Bivariant).Bool())
	assert.False(t, types.Subtype(in, types.Unknown, types.StringType, types.Bivariant).Bool())
}

func TestSubtypeAnyShortCircuitsBothWays(t *testing.T) {
	in := types.NewInterner(atom.New())
	assert.True(t, types.Subtype(in, types.Any, types.StringType, types.Bivariant).Bool())
	assert.True(t, types.Subtype(in, types.StringType, types.Any, types.Bivariant).Bool())
}

func TestSubtypeLiteralToPrimitive(t *testing.T) {
	in := types.NewInterner(atom.New())
	lit := in.Intern(types.Key{Kind: types.KindStringLiteral, StringLit: in.Strings.Intern("ok")})
	assert.True(t, types.Subtype(in, lit, types.StringType, types.Bivariant).Bool())
	assert.False(t, types.Subtype(in, types.StringType, lit, types.Bivariant).Bool())
}

func TestSubtypeUnionOnLeftRequiresAllMembers(t *testing.T) {
	in := types.NewInterner(atom.New())
	u := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{types.StringType, types.NumberType}})
	assert.False(t, types.Subtype(in, u, types.StringType, types.Bivariant).Bool())
}

func TestSubtypeUnionOnRightRequiresSomeMember(t *testing.T) {
	in := types.NewInterner(atom.New())
	u := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{types.StringType, types.NumberType}})
	assert.True(t, types.Subtype(in, types.StringType, u, types.Bivariant).Bool())
}

func TestSubtypeObjectWidthSubtyping(t *testing.T) {
	in := types.NewInterner(atom.New())
	names := in.Strings
	wide := in.Intern(types.Key{Kind: types.KindObject, Properties: []types.Property{
		{Name: names.Intern("a"), Type: types.StringType},
		{Name: names.Intern("b"), Type: types.NumberType},
	}})
	narrow := in.Intern(types.Key{Kind: types.KindObject, Properties: []types.Property{
		{Name: names.Intern("a"), Type: types.StringType},
	}})
	assert.True(t, types.Subtype(in, wide, narrow, types.Bivariant).Bool())
	assert.False(t, types.Subtype(in, narrow, wide, types.Bivariant).Bool())
}

func TestSubtypeOptionalTargetPropertyNeedsNoMatch(t *testing.T) {
	in := types.NewInterner(atom.New())
	names := in.Strings
	target := in.Intern(types.Key{Kind: types.KindObject, Properties: []types.Property{
		{Name: names.Intern("a"), Type: types.StringType, Optional: true},
	}})
	source := in.Intern(types.Key{Kind: types.KindObject})
	assert.True(t, types.Subtype(in, source, target, types.Bivariant).Bool())
}

func TestSubtypeArrayNotAssignableToTuple(t *testing.T) {
	in := types.NewInterner(atom.New())
	arr := in.Intern(types.Key{Kind: types.KindArray, Element: types.StringType})
	tup := in.Intern(types.Key{Kind: types.KindTuple, Elements: []types.TupleElement{{Type: types.StringType}}})
	assert.False(t, types.Subtype(in, arr, tup, types.Bivariant).Bool())
}

func TestSubtypeTupleAssignableToArray(t *testing.T) {
	in := types.NewInterner(atom.New())
	arr := in.Intern(types.Key{Kind: types.KindArray, Element: types.StringType})
	tup := in.Intern(types.Key{Kind: types.KindTuple, Elements: []types.TupleElement{{Type: types.StringType}}})
	assert.True(t, types.Subtype(in, tup, arr, types.Bivariant).Bool())
}

func TestSubtypeFunctionReturnCovariantParamContravariant(t *testing.T) {
	in := types.NewInterner(atom.New())
	wideParam := in.Intern(types.Key{Kind: types.KindUnion, Members: []types.TypeID{types.StringType, types.NumberType}})

	// A function accepting the wider parameter type and returning the
	// narrower result (string) is assignable where a function accepting
	// only the narrower parameter and returning the wider result
	// (unknown) is expected -- params flip, returns don't.
	source := in.Intern(types.Key{Kind: types.KindFunction, Params: []types.Param{{Type: wideParam}}, Return: types.StringType})
	target := in.Intern(types.Key{Kind: types.KindFunction, Params: []types.Param{{Type: types.StringType}}, Return: types.Unknown})
	assert.True(t, types.Subtype(in, source, target, types.Contravariant).Bool())

	// Reversing it fails: the reversed source returns `unknown`, which
	// does not satisfy the expected `string` return.
	assert.False(t, types.Subtype(in, target, source, types.Contravariant).Bool())
}

func TestSubtypeObjectAgainstItselfIsTrue(t *testing.T) {
	in := types.NewInterner(atom.New())
	names := in.Strings
	// Key has no fixed-point construction at this layer, so a cyclic pair
	// (the case the in-progress guard answers Provisional) cannot be built
	// here; this checks an object type against itself, which the identity
	// fast path answers True.
	self := in.Intern(types.Key{Kind: types.KindObject, Properties: []types.Property{
		{Name: names.Intern("self"), Type: types.Unknown},
	}})
	assert.True(t, types.Subtype(in, self, self, types.Bivariant).Bool())
}
