// Package binder walks a parsed internal/syntax.Arena and produces the
// symbol table, scope graph, flow graph, and import/export tables the
// checker resolves names and types against. Binder errors are recoverable:
// a malformed declaration still produces a symbol where possible so
// downstream checking can proceed.
package binder

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// SymbolID addresses a Symbol in a Table. The zero value, NoSymbol,
// addresses the reserved sentinel at index 0.
type SymbolID int32

// NoSymbol is the "no symbol" sentinel (an unresolved reference, or a
// synthesized node with nothing to bind to).
const NoSymbol SymbolID = 0

// Flags classifies what kind of thing a Symbol names. Several bits can be
// set at once only where merging is legal (see CanMerge): a symbol that
// started as FlagInterface and later merged with a class declaration of
// the same name carries both bits.
type Flags uint32

const (
	FlagNone Flags = 0

	FlagFunctionScopedVariable Flags = 1 << iota // var
	FlagBlockScopedVariable                      // let, const, catch binding
	FlagFunction                                  // function declaration/expression (named)
	FlagClass
	FlagInterface
	FlagTypeAlias
	FlagEnum
	FlagEnumMember
	FlagValueModule   // `module M { ... }` containing values
	FlagNamespaceModule
	FlagAlias         // import binding (aliases another symbol, possibly in another file)
	FlagProperty
	FlagMethod
	FlagAccessor
	FlagParameter
	FlagTypeParameter
	FlagExportValue // the synthetic `export =` / `export default` target
	FlagOptional
	FlagStatic
)

// FlagVariable is the union of the two variable-binding flavors, useful for
// "is this any kind of variable" checks that don't care about scoping.
const FlagVariable = FlagFunctionScopedVariable | FlagBlockScopedVariable

// Symbol is one declared name. Declarations records every contributing
// NodeID so overloads, interface merges, and re-opened namespaces can be
// traced back to each participating declaration; ValueDecl is the single
// declaration the checker treats as authoritative when it needs exactly
// one (e.g. a class's instance-side shape).
type Symbol struct {
	Name         atom.Atom
	Flags        Flags
	Declarations []syntax.NodeID
	ValueDecl    syntax.NodeID

	Exported bool

	// ImportModule/ImportName are set only when Flags&FlagAlias != 0: the
	// module specifier and the exported name this alias resolves to
	// (a default import binds to "default"; a namespace import leaves
	// ImportName as atom.NoAtom).
	ImportModule atom.Atom
	ImportName   atom.Atom

	// Members holds nested names for symbols that are themselves
	// containers: class/interface instance members, module/namespace
	// exports-as-members, enum members.
	Members map[atom.Atom]SymbolID
	// Exports holds the subset of Members (or top-level module bindings)
	// that are exported, keyed the same way. Populated for namespace symbols
	// when their body is bound, not by ordinary member declaration.
	Exports map[atom.Atom]SymbolID
}

// CanMerge reports whether a symbol already carrying `existing` flags may
// accept an additional declaration carrying `incoming` flags, per the
// binder's merge rules: two interfaces merge; a class merges with an
// interface (declaration merging); functions merge with functions
// (overload signatures); a value module merges with a function, class,
// enum, or another module; static and instance members never conflict
// because they are declared into disjoint Members maps, not checked here.
func CanMerge(existing, incoming Flags) bool {
	switch {
	case existing&FlagInterface != 0 && incoming&FlagInterface != 0:
		return true
	case existing&FlagClass != 0 && incoming&FlagInterface != 0:
		return true
	case existing&FlagInterface != 0 && incoming&FlagClass != 0:
		return true
	case existing&FlagFunction != 0 && incoming&FlagFunction != 0:
		return true
	case existing&(FlagValueModule|FlagNamespaceModule) != 0 &&
		incoming&(FlagFunction|FlagClass|FlagEnum|FlagValueModule|FlagNamespaceModule) != 0:
		return true
	case incoming&(FlagValueModule|FlagNamespaceModule) != 0 &&
		existing&(FlagFunction|FlagClass|FlagEnum|FlagValueModule|FlagNamespaceModule) != 0:
		return true
	default:
		return false
	}
}

// Table is the append-only symbol arena for one bind pass. Index 0 is the
// reserved NoSymbol sentinel, matching syntax.Arena's NoNode convention.
type Table struct {
	symbols []Symbol
}

// NewTable returns a Table with its sentinel symbol 0 already allocated.
func NewTable() *Table {
	return &Table{symbols: []Symbol{{}}}
}

// New allocates a fresh symbol and returns its id.
func (t *Table) New(name atom.Atom, flags Flags) SymbolID {
	t.symbols = append(t.symbols, Symbol{Name: name, Flags: flags})
	return SymbolID(len(t.symbols) - 1)
}

// Get returns a mutable pointer to the symbol addressed by id.
func (t *Table) Get(id SymbolID) *Symbol { return &t.symbols[id] }

// Len reports how many symbols (including the sentinel) the table holds.
func (t *Table) Len() int32 { return int32(len(t.symbols)) }
