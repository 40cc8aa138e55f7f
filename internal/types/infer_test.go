package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/types"
)

func TestInferSolveSingleLowerBound(t *testing.T) {
	in := types.NewInterner(atom.New())
	ic := types.NewInferenceContext(in)
	v := ic.Fresh()
	ic.AddLower(v, types.StringType)
	sol := ic.Solve()
	assert.Equal(t, types.StringType, sol.Types[v])
}

func TestInferSolveUnionsMultipleLowerBounds(t *testing.T) {
	in := types.NewInterner(atom.New())
	ic := types.NewInferenceContext(in)
	v := ic.Fresh()
	ic.AddLower(v, types.StringType)
	ic.AddLower(v, types.NumberType)
	sol := ic.Solve()
	rk := in.Get(sol.Types[v])
	require.Equal(t, types.KindUnion, rk.Kind)
	assert.Len(t, rk.Members, 2)
}

func TestInferNoConstraintFallsBackToDefault(t *testing.T) {
	in := types.NewInterner(atom.New())
	ic := types.NewInferenceContext(in)
	v := ic.FreshWithDefault(types.BooleanType)
	sol := ic.Solve()
	assert.Equal(t, types.BooleanType, sol.Types[v])
}

func TestInferNoConstraintNoDefaultIsUnknown(t *testing.T) {
	in := types.NewInterner(atom.New())
	ic := types.NewInferenceContext(in)
	v := ic.Fresh()
	sol := ic.Solve()
	assert.Equal(t, types.Unknown, sol.Types[v])
}

func TestInferUnifyMergesConstraints(t *testing.T) {
	in := types.NewInterner(atom.New())
	ic := types.NewInferenceContext(in)
	a := ic.Fresh()
	b := ic.Fresh()
	ic.AddLower(a, types.StringType)
	ic.AddLower(b, types.NumberType)
	ic.Unify(a, b)
	sol := ic.Solve()
	assert.Equal(t, sol.Types[a], sol.Types[b])
}

func TestInferCallCollectsLowerBoundsFromArguments(t *testing.T) {
	in := types.NewInterner(atom.New())
	ic := types.NewInferenceContext(in)
	v := ic.Fresh()
	placeholder := types.VarPlaceholder(in, v)
	types.InferCall(ic, in, []types.TypeID{placeholder}, []types.TypeID{types.StringType})
	sol := ic.Solve()
	assert.Equal(t, types.StringType, sol.Types[v])
}
