// Package compiler is the external interface §6 describes: a Session holds
// the process-lifetime atom interner and type universe shared across many
// compilations (§5: "shared concurrent state ... sharded to reduce
// contention"); BeginCompilation binds a batch of files against them and
// hands back an opaque Handle; PopulateModuleExports lets the driver wire
// cross-file import resolution in before any checker query runs.
//
// Grounded on yaegi's interp.New/Options (single constructor, options
// struct, mutex-guarded mutable session state) for the overall shape, and
// on surge's sema.Check Options/Result split for the query surface.
package compiler

import (
	"github.com/google/uuid"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/types"
)

// Handle identifies one compilation within a Session. Generated by
// BeginCompilation via github.com/google/uuid, the same opaque-identifier
// pattern yaninyzwitty-hyperpb-go uses for request/run IDs: callers treat it
// as a value, never parse or construct one themselves.
type Handle string

// Session owns the interners every compilation in its lifetime shares:
// process-wide string interning and (optionally) a process-wide type
// universe, both already internally sharded/locked by their own packages.
// Session itself only guards the compilations map.
type Session struct {
	names *atom.Interner
	types *types.Interner

	compilations *compilationTable
}

// New constructs a Session with a fresh atom interner and type universe.
// One Session typically lives for the lifetime of a driver process (a
// language-server session, a CLI invocation batch); compilations within it
// share canonicalized types and strings, so the same literal type or name
// interns to the same ID across every file in every compilation.
func New() *Session {
	names := atom.New()
	return &Session{
		names:        names,
		types:        types.NewInterner(names),
		compilations: newCompilationTable(),
	}
}

func newHandle() Handle {
	return Handle(uuid.NewString())
}

// Names returns the Session's shared atom interner. A driver binding a
// library file itself (to hand to BeginCompilation's libFiles parameter, or
// to PopulateModuleExports directly) must parse and bind it against this
// same interner -- atoms from two different interners never compare equal,
// so a library bound elsewhere could never resolve against this Session's
// files.
func (s *Session) Names() *atom.Interner {
	return s.names
}
