package binder

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// ScopeID addresses a Scope in a ScopeTable. NoScope is the sentinel for
// "no enclosing scope" (the module scope's own Parent).
type ScopeID int32

const NoScope ScopeID = 0

// Kind distinguishes the three scoping behaviors the binder cares about:
// `var` climbs to the nearest Function (or Module) scope; `let`/`const`
// stop at the nearest Block scope, which may itself be a function body.
type Kind uint8

const (
	ScopeModule Kind = iota
	ScopeFunction
	ScopeBlock
)

// Scope is one lexical scope: a flat name table plus a parent link. Class
// and interface bodies get their own ScopeBlock so type parameters and
// `this` resolve correctly, but their member names live in the owning
// Symbol's Members map, not here -- member lookup is structural (via a
// type), not lexical.
type Scope struct {
	Kind   Kind
	Parent ScopeID
	Node   syntax.NodeID // the node that introduced this scope (function/block/source file)
	Names  map[atom.Atom]SymbolID
}

// ScopeTable is the append-only scope arena for one bind pass.
type ScopeTable struct {
	scopes []Scope
}

func NewScopeTable() *ScopeTable {
	return &ScopeTable{scopes: []Scope{{}}}
}

func (st *ScopeTable) New(kind Kind, parent ScopeID, node syntax.NodeID) ScopeID {
	st.scopes = append(st.scopes, Scope{Kind: kind, Parent: parent, Node: node, Names: make(map[atom.Atom]SymbolID)})
	return ScopeID(len(st.scopes) - 1)
}

func (st *ScopeTable) Get(id ScopeID) *Scope { return &st.scopes[id] }

// FunctionContainer walks up from id to the nearest ScopeFunction or
// ScopeModule ancestor (inclusive), the target for a `var` or function
// declaration's hoisted binding.
func (st *ScopeTable) FunctionContainer(id ScopeID) ScopeID {
	for id != NoScope {
		k := st.scopes[id].Kind
		if k == ScopeFunction || k == ScopeModule {
			return id
		}
		id = st.scopes[id].Parent
	}
	return id
}

// Resolve looks up name starting at id and walking Parent links, the
// ordinary lexical-scoping name resolution rule.
func (st *ScopeTable) Resolve(id ScopeID, name atom.Atom) SymbolID {
	for id != NoScope {
		if sym, ok := st.scopes[id].Names[name]; ok {
			return sym
		}
		id = st.scopes[id].Parent
	}
	return NoSymbol
}
