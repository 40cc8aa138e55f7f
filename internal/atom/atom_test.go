package atom_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
)

func TestInternDeduplicates(t *testing.T) {
	in := atom.New("function", "interface")
	a := in.Intern("foo")
	b := in.Intern("foo")
	assert.Equal(t, a, b)
	assert.Equal(t, "foo", in.Text(a))
}

func TestInternDistinctStringsDistinctAtoms(t *testing.T) {
	in := atom.New()
	a := in.Intern("alpha")
	b := in.Intern("beta")
	assert.NotEqual(t, a, b)
}

func TestNoAtomNeverReturned(t *testing.T) {
	in := atom.New()
	for _, s := range []string{"", "x", "type", "readonly", "satisfies"} {
		a := in.Intern(s)
		assert.NotEqual(t, atom.NoAtom, a, "interning %q produced the sentinel atom", s)
	}
}

func TestInternIsConcurrencySafe(t *testing.T) {
	in := atom.New()
	var wg sync.WaitGroup
	results := make([]atom.Atom, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = in.Intern("shared-name")
		}(i)
	}
	wg.Wait()
	first := results[0]
	for _, r := range results {
		assert.Equal(t, first, r)
	}
	require.Equal(t, "shared-name", in.Text(first))
}
