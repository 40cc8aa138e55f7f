// Package checker drives the type solver (internal/types) over one bound
// file's arena, applying Options, performing flow-sensitive narrowing, and
// emitting diagnostics into a bag. It is grounded on surge's
// internal/sema.typeChecker (other_examples/b5208ea5_..._check.go.go): a
// struct holding the arena/bag/symbol-table/type-interner together, with a
// memoized per-node result map and a resolution stack to break cycles.
package checker

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/syntax"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// Resource limits from §4.6. Exceeding any of these yields a single "too
// complex" diagnostic and a conservative `error` type rather than an
// unbounded walk or Go-level stack overflow.
const (
	MaxCallDepth           = 20
	MaxInstantiationDepth  = 50
	MaxTreeWalkIterations  = 10000
	MaxExprCheckDepth      = 500
)

// Checker owns every piece of state one file's check pass needs: the
// arena/bind result it reads, the type interner/lowerer it drives, the
// diagnostic bag it writes to, and the bookkeeping (memo maps, resolution
// stacks, fuel) that makes queries total functions even over cyclic or
// adversarial input.
type Checker struct {
	arena  *syntax.Arena
	bind   *binder.Result
	bag    *diag.Bag
	file   string
	opts   Options
	in     *types.Interner
	lower  *types.Lowerer
	names  *atom.Interner

	// exports resolves a module specifier to another file's already-bound
	// export surface; nil until the driver calls SetExports (populated by
	// internal/compiler.PopulateModuleExports per §6).
	exports map[string]*binder.ModuleExports

	exprTypes   map[syntax.NodeID]types.TypeID
	symbolTypes map[binder.SymbolID]types.TypeID

	// resolvingNode/resolvingSym are in-progress sets (not stacks of values,
	// stacks of membership) guarding type_of_node/type_of_symbol re-entry:
	// re-entering a node or symbol already being resolved returns
	// types.ErrorType per §4.6's node-resolution-stack rule, rather than
	// recursing forever on `let x = x` or `interface A { a: A }`'s
	// property-typing path (subtype.go's coinductive guard handles the
	// *shape* cycle; this guards the *query* cycle).
	resolvingNode map[syntax.NodeID]bool
	resolvingSym  map[binder.SymbolID]bool

	fuel      int
	callDepth int

	// returnTypeStack tracks the declared/inferred return type of each
	// enclosing function, consulted by bindReturnStatement-equivalent
	// checks and by noImplicitReturns.
	returnTypeStack []types.TypeID

	// currentFlow is the FlowNodeID statement-level checking (stmt.go) is
	// positioned at while an expression is being typed; typeOfIdentifier
	// (expr.go) consults it to narrow a variable reference against the
	// guards/assignments reachable from this position (narrow.go). Left at
	// binder.NoFlow outside statement context (e.g. lowering a type
	// annotation), where narrowing never applies.
	currentFlow binder.FlowNodeID
}

// New constructs a Checker for one bound file. arena/bind come from a prior
// parse+bind pass; in is shared across files in a compilation (the type
// universe is process-lifetime per §5).
func New(arena *syntax.Arena, bind *binder.Result, in *types.Interner, bag *diag.Bag, file string, opts Options) *Checker {
	return &Checker{
		arena:         arena,
		bind:          bind,
		bag:           bag,
		file:          file,
		opts:          opts.Resolve(),
		in:            in,
		lower:         types.NewLowerer(arena, in, file, resolverAdapter{bind: bind}),
		names:         in.Strings,
		exprTypes:     make(map[syntax.NodeID]types.TypeID),
		symbolTypes:   make(map[binder.SymbolID]types.TypeID),
		resolvingNode: make(map[syntax.NodeID]bool),
		resolvingSym:  make(map[binder.SymbolID]bool),
		fuel:          MaxTreeWalkIterations,
	}
}

// SetExports installs the cross-file export surfaces the driver populated
// via PopulateModuleExports (§6); required before resolving any import.
func (c *Checker) SetExports(exports map[string]*binder.ModuleExports) {
	c.exports = exports
}

// setFlow repositions currentFlow for the statement/expression about to be
// checked, returning the previous position so the caller can restore it
// once that subtree is done (the same push/pop discipline pushCall/popCall
// use for call depth).
func (c *Checker) setFlow(f binder.FlowNodeID) binder.FlowNodeID {
	prev := c.currentFlow
	c.currentFlow = f
	return prev
}

func (c *Checker) restoreFlow(prev binder.FlowNodeID) {
	c.currentFlow = prev
}

// resolverAdapter bridges binder.ScopeTable.Resolve to types.Resolver
// without internal/types importing internal/binder.
type resolverAdapter struct {
	bind *binder.Result
}

func (r resolverAdapter) ResolveType(scope binder.ScopeID, name atom.Atom) binder.SymbolID {
	return r.bind.Scopes.Resolve(scope, name)
}

// consumeFuel decrements the shared fuel counter and reports whether the
// caller may proceed. Exhaustion is not an error -- it is a bounded
// fallback (§5: "Exhaustion is not an error -- it is a bounded fallback
// that records a diagnostic and proceeds with error types").
func (c *Checker) consumeFuel(node syntax.NodeID) bool {
	if c.fuel <= 0 {
		return false
	}
	c.fuel--
	if c.fuel == 0 {
		c.tooComplex(node)
	}
	return true
}

func (c *Checker) tooComplex(node syntax.NodeID) {
	h := c.arena.Header(node)
	c.bag.Report(diag.Diagnostic{
		Code:     diag.CodeCannotInferTypeArguments,
		Severity: diag.SeverityError,
		File:     c.file,
		Start:    int(h.Pos),
		Length:   int(h.End - h.Pos),
		Message:  "Expression too complex to represent.",
	})
}

// poison reports whether t is types.ErrorType, the propagation rule §7
// describes: once a node resolves to error, downstream queries consuming
// it produce error without emitting a second diagnostic at the same span.
func poison(t types.TypeID) bool { return t == types.ErrorType }

// report is a small convenience wrapper building a Diagnostic at node's
// span, matching every checker-derived diagnostic in §7's "semantic
// (checker)" category.
func (c *Checker) report(node syntax.NodeID, code diag.Code, message string) {
	h := c.arena.Header(node)
	c.bag.Report(diag.Diagnostic{
		Code:     code,
		Severity: diag.SeverityError,
		File:     c.file,
		Start:    int(h.Pos),
		Length:   int(h.End - h.Pos),
		Message:  message,
	})
}
