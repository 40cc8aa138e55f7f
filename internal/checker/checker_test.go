package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/checker"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/parser"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// checkSource parses, binds, and checks src in one pass, returning the
// diagnostic bag and the pieces a test might want to poke further state
// through (interner, bound result, names).
func checkSource(t *testing.T, src string, opts checker.Options) (*diag.Bag, *binder.Result, *types.Interner, *atom.Interner) {
	t.Helper()
	names := atom.New()
	bag := diag.NewBag()
	arena, root := parser.ParseSourceFile("a.ts", []byte(src), names, bag, false)
	require.False(t, bag.HasErrors(), "parse errors: %v", bag.All())
	bind := binder.Bind(arena, root, bag, "a.ts")
	in := types.NewInterner(names)
	c := checker.New(arena, bind, in, bag, "a.ts", opts)
	c.CheckSourceFile(root)
	return bag, bind, in, names
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.All() {
		out = append(out, d.Code)
	}
	return out
}

func TestCheckVariableAnnotationMismatchReports(t *testing.T) {
	bag, _, _, _ := checkSource(t, `let x: string = 1;`, checker.Options{})
	assert.Contains(t, codes(bag), diag.CodeTypeIsNotAssignableToType)
}

func TestCheckVariableAnnotationMatchIsClean(t *testing.T) {
	bag, _, _, _ := checkSource(t, `let x: number = 1;`, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckReturnTypeMismatchReports(t *testing.T) {
	bag, _, _, _ := checkSource(t, `function f(): string { return 1; }`, checker.Options{})
	assert.Contains(t, codes(bag), diag.CodeTypeIsNotAssignableToType)
}

func TestCheckReturnTypeMatchIsClean(t *testing.T) {
	bag, _, _, _ := checkSource(t, `function f(): number { return 1; }`, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckUnknownNameReports(t *testing.T) {
	bag, _, _, _ := checkSource(t, `doesNotExist;`, checker.Options{})
	assert.Contains(t, codes(bag), diag.CodeCannotFindName)
}

func TestCheckImplicitAnyParameterReports(t *testing.T) {
	bag, _, _, _ := checkSource(t, `function f(x) { return x; }`, checker.Options{NoImplicitAny: true})
	assert.Contains(t, codes(bag), diag.CodeImplicitAny)
}

func TestCheckEmptySourceFileIsClean(t *testing.T) {
	bag, _, _, _ := checkSource(t, ``, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckNestedClassDeclarationResolves(t *testing.T) {
	// A function-local class must resolve its own symbol through its
	// enclosing function scope, not the module scope, for a constructor
	// call inside the same function to type-check against it.
	bag, _, _, _ := checkSource(t, `
		function make() {
			class Box { value: number = 1; }
			return new Box();
		}
	`, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckTypeofNarrowingSelectsUnionMember(t *testing.T) {
	bag, _, _, _ := checkSource(t, `
		function f(x: string | number): string {
			if (typeof x === "string") {
				return x;
			}
			return "n";
		}
	`, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckDiscriminatedUnionNarrowing(t *testing.T) {
	bag, _, _, _ := checkSource(t, `
		interface Circle { kind: "circle"; radius: number; }
		interface Square { kind: "square"; side: number; }
		function area(s: Circle | Square): number {
			if (s.kind === "circle") {
				return s.radius;
			}
			return s.side;
		}
	`, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckSwitchFallthroughReportsWhenOptionSet(t *testing.T) {
	bag, _, _, _ := checkSource(t, `
		function f(x: number) {
			let y = 0;
			switch (x) {
				case 1:
					y = 1;
				case 2:
					y = 2;
					break;
			}
		}
	`, checker.Options{NoFallthroughCasesInSwitch: true})
	assert.True(t, bag.HasErrors())
}

func TestCheckForOfLoopOverArray(t *testing.T) {
	bag, _, _, _ := checkSource(t, `
		function sum(xs: number[]): number {
			let total = 0;
			for (const x of xs) {
				total = total + x;
			}
			return total;
		}
	`, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckTryCatchBody(t *testing.T) {
	bag, _, _, _ := checkSource(t, `
		function f() {
			let caught = 0;
			try {
				caught = 1;
			} catch (e) {
				caught = 2;
			} finally {
				caught = 3;
			}
		}
	`, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckGenericCallInfersFromArguments(t *testing.T) {
	bag, _, _, _ := checkSource(t, `
		function id<T>(a: T, b: T): T { return a; }
		const n: number = id(1, 2);
	`, checker.Options{})
	assert.False(t, bag.HasErrors())
}

func TestCheckGenericCallExplicitTypeArgumentRejectsMismatchedArgument(t *testing.T) {
	bag, _, _, _ := checkSource(t, `
		function id<T>(a: T, b: T): T { return a; }
		id<number>("x", 1);
	`, checker.Options{})
	assert.Contains(t, codes(bag), diag.CodeArgumentNotAssignableToParameter)
}

func TestCheckGenericCallReturnTypeFlowsToAnnotationMismatch(t *testing.T) {
	bag, _, _, _ := checkSource(t, `
		function id<T>(a: T): T { return a; }
		const s: string = id(1);
	`, checker.Options{})
	assert.Contains(t, codes(bag), diag.CodeTypeIsNotAssignableToType)
}
