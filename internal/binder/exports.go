package binder

import "github.com/oxhq/tsgroundwork/internal/atom"

// ReExport is a named re-export: `export { a } from "m"` records, for each
// exported local name, the module it actually comes from and the name it
// is bound to there (which may differ via `export { a as b } from "m"`).
type ReExport struct {
	Module       atom.Atom
	OriginalName atom.Atom
}

// ModuleExports is the per-file export surface the binder produces: direct
// symbols declared with `export`, named re-exports, and wildcard
// re-exports (`export * from "m"`). ResolveExport walks all three, in that
// order, to answer "what does name N resolve to when imported from this
// file".
type ModuleExports struct {
	File string

	Direct    map[atom.Atom]SymbolID
	Named     map[atom.Atom]ReExport
	Wildcards []atom.Atom // module specifiers re-exported via `export * from "m"`
}

func NewModuleExports(file string) *ModuleExports {
	return &ModuleExports{
		File:   file,
		Direct: make(map[atom.Atom]SymbolID),
		Named:  make(map[atom.Atom]ReExport),
	}
}

// Resolver looks up another file's ModuleExports by module specifier, the
// seam a compiler session plugs its module-resolution algorithm into
// (relative path resolution, node_modules lookup, ...) without the binder
// package needing to know about the filesystem.
type Resolver interface {
	Resolve(fromFile string, specifier atom.Atom) *ModuleExports
}

// ResolveExport answers "what symbol does `name` refer to when another
// file imports it from me", recursing through named and wildcard
// re-exports. visited guards against `export * from` cycles between
// modules; ResolveExport is cycle-safe regardless of which file calls it first
// because visited is keyed by file path, not by (file, name).
func (m *ModuleExports) ResolveExport(name atom.Atom, r Resolver, visited map[string]bool) (SymbolID, bool) {
	if visited == nil {
		visited = make(map[string]bool)
	}
	if visited[m.File] {
		return NoSymbol, false
	}
	visited[m.File] = true

	if sym, ok := m.Direct[name]; ok {
		return sym, true
	}
	if re, ok := m.Named[name]; ok {
		if target := r.Resolve(m.File, re.Module); target != nil {
			return target.ResolveExport(re.OriginalName, r, visited)
		}
		return NoSymbol, false
	}
	for _, spec := range m.Wildcards {
		target := r.Resolve(m.File, spec)
		if target == nil {
			continue
		}
		if sym, ok := target.ResolveExport(name, r, visited); ok {
			return sym, true
		}
	}
	return NoSymbol, false
}
