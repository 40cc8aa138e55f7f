package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/checker"
	"github.com/oxhq/tsgroundwork/internal/compiler"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/parser"
)

func TestBeginCompilationBindsEveryFile(t *testing.T) {
	s := compiler.New()
	h, err := compiler.BeginCompilation(s, []compiler.File{
		{Path: "a.ts", Source: []byte(`let x: string = 1;`)},
		{Path: "b.ts", Source: []byte(`let y: number = 2;`)},
	}, checker.Options{}, nil)
	require.NoError(t, err)

	ds, err := s.Diagnostics(h, "a.ts")
	require.NoError(t, err)
	assert.NotEmpty(t, ds)
	assert.Equal(t, diag.CodeTypeIsNotAssignableToType, ds[0].Code)

	ds, err = s.Diagnostics(h, "b.ts")
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestDiagnosticsUnknownHandleErrors(t *testing.T) {
	s := compiler.New()
	_, err := s.Diagnostics(compiler.Handle("nope"), "a.ts")
	assert.Error(t, err)
}

func TestDiagnosticsUnknownFileErrors(t *testing.T) {
	s := compiler.New()
	h, err := compiler.BeginCompilation(s, []compiler.File{
		{Path: "a.ts", Source: []byte(`let x = 1;`)},
	}, checker.Options{}, nil)
	require.NoError(t, err)

	_, err = s.Diagnostics(h, "missing.ts")
	assert.Error(t, err)
}

func TestCrossFileImportResolvesThroughModuleExports(t *testing.T) {
	s := compiler.New()
	h, err := compiler.BeginCompilation(s, []compiler.File{
		{Path: "a.ts", Source: []byte(`export const v: number = 1;`)},
		{Path: "b.ts", Source: []byte(`import { v } from "./a"; let w: string = v;`)},
	}, checker.Options{}, nil)
	require.NoError(t, err)

	ds, err := s.Diagnostics(h, "b.ts")
	require.NoError(t, err)
	var codes []diag.Code
	for _, d := range ds {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, diag.CodeTypeIsNotAssignableToType, "v's number type should flow across the import into the string annotation mismatch")
}

func TestPopulateModuleExportsRegistersLibraryAfterBegin(t *testing.T) {
	s := compiler.New()
	h, err := compiler.BeginCompilation(s, []compiler.File{
		{Path: "a.ts", Source: []byte(`import { n } from "./lib"; let s: string = n;`)},
	}, checker.Options{}, nil)
	require.NoError(t, err)

	bag := diag.NewBag()
	names := s.Names()
	arena, root := parser.ParseSourceFile("lib.ts", []byte(`export const n: number = 1;`), names, bag, false)
	libRes := binder.Bind(arena, root, bag, "lib.ts")
	require.False(t, bag.HasErrors())

	require.NoError(t, s.PopulateModuleExports(h, "./lib", libRes.Exports))

	ds, err := s.Diagnostics(h, "a.ts")
	require.NoError(t, err)
	var codes []diag.Code
	for _, d := range ds {
		codes = append(codes, d.Code)
	}
	assert.Contains(t, codes, diag.CodeTypeIsNotAssignableToType)
}

func TestSetOptionsInvalidatesCachedDiagnostics(t *testing.T) {
	s := compiler.New()
	h, err := compiler.BeginCompilation(s, []compiler.File{
		{Path: "a.ts", Source: []byte(`function f(x) { return x; }`)},
	}, checker.Options{}, nil)
	require.NoError(t, err)

	ds, err := s.Diagnostics(h, "a.ts")
	require.NoError(t, err)
	assert.Empty(t, ds, "implicit any is allowed by default")

	require.NoError(t, s.SetOptions(h, checker.Options{NoImplicitAny: true}))
	ds, err = s.Diagnostics(h, "a.ts")
	require.NoError(t, err)
	assert.NotEmpty(t, ds, "re-checking under NoImplicitAny should report the untyped parameter")
}

func TestTypeAtReportsVariableType(t *testing.T) {
	s := compiler.New()
	src := "let x: number = 1;\nx;"
	h, err := compiler.BeginCompilation(s, []compiler.File{
		{Path: "a.ts", Source: []byte(src)},
	}, checker.Options{}, nil)
	require.NoError(t, err)

	pos := indexOf(src, "\nx") + 1
	ty, err := s.TypeAt(h, "a.ts", pos)
	require.NoError(t, err)
	assert.Equal(t, "number", ty)
}

func TestDefinitionResolvesToDeclaration(t *testing.T) {
	s := compiler.New()
	src := `let x: number = 1;
x;`
	h, err := compiler.BeginCompilation(s, []compiler.File{
		{Path: "a.ts", Source: []byte(src)},
	}, checker.Options{}, nil)
	require.NoError(t, err)

	usePos := indexOf(src, "\nx") + 1
	locs, err := s.Definition(h, "a.ts", usePos)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "a.ts", locs[0].File)
}

func TestSymbolTableListsTopLevelDeclarations(t *testing.T) {
	s := compiler.New()
	src := `
function f() {}
class C {}
interface I { x: number; }
`
	h, err := compiler.BeginCompilation(s, []compiler.File{
		{Path: "a.ts", Source: []byte(src)},
	}, checker.Options{}, nil)
	require.NoError(t, err)

	entries, err := s.SymbolTable(h, "a.ts")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"f", "C", "I"}, names)

	for _, e := range entries {
		if e.Name == "I" {
			require.Len(t, e.Children, 1)
			assert.Equal(t, "x", e.Children[0].Name)
		}
	}
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
