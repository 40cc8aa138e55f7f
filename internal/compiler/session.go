package compiler

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/checker"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/parser"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// File is one source file handed to BeginCompilation: a path (used as the
// file key for diagnostics, exports, and cross-file resolution) and its raw
// bytes, matching §6's `{path, source_bytes}` input shape exactly.
type File struct {
	Path   string
	Source []byte
}

// fileState holds one file's parse+bind output plus the lazily-constructed
// Checker that runs over it. Parsing and binding happen eagerly (in
// BeginCompilation's fan-out); checking is deferred until a query actually
// needs diagnostics or a type, since §5 says queries are synchronous pure
// functions the driver may never call for every file in a large batch.
type fileState struct {
	path  string
	jsx   bool
	arena *syntax.Arena
	root  syntax.NodeID
	bind  *binder.Result
	bag   *diag.Bag

	once    sync.Once
	checker *checker.Checker
}

// compilation is one BeginCompilation batch: every file bound against the
// same Session's interners, the cross-file export table the driver
// populates via PopulateModuleExports, and the option set every file's
// Checker is constructed with.
type compilation struct {
	session *Session

	mu      sync.RWMutex
	opts    checker.Options
	files   map[string]*fileState
	order   []string
	exports map[string]*binder.ModuleExports

	// group collapses concurrent first-access checker construction (and
	// the module-exports lookups it triggers) for the same file path, so
	// two goroutines racing to type_at/definition the same cross-file
	// symbol only check that file once.
	group singleflight.Group
}

type compilationTable struct {
	mu   sync.RWMutex
	byID map[Handle]*compilation
}

func newCompilationTable() *compilationTable {
	return &compilationTable{byID: make(map[Handle]*compilation)}
}

func (t *compilationTable) get(h Handle) (*compilation, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.byID[h]
	return c, ok
}

func (t *compilationTable) put(h Handle, c *compilation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byID[h] = c
}

// BeginCompilation is begin_compilation: parses and binds every file in
// parallel (§5: "parallelism across files"), registers each file's own
// export surface under its path, folds in libFiles' export surfaces
// (pre-bound ambient/library declarations the driver supplies once and
// reuses across many compilations), and returns the handle future queries
// address this batch by.
func BeginCompilation(s *Session, files []File, opts checker.Options, libFiles []*binder.Result) (Handle, error) {
	c := &compilation{
		session: s,
		opts:    opts.Resolve(),
		files:   make(map[string]*fileState, len(files)),
		order:   make([]string, len(files)),
		exports: make(map[string]*binder.ModuleExports, len(files)+len(libFiles)),
	}

	states := make([]*fileState, len(files))
	g := new(errgroup.Group)
	for i, f := range files {
		i, f := i, f
		c.order[i] = f.Path
		g.Go(func() error {
			st, err := bindFile(s.names, f)
			if err != nil {
				return errors.Wrapf(err, "compiling %s", f.Path)
			}
			states[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	for _, st := range states {
		c.files[st.path] = st
		c.exports[st.path] = st.bind.Exports
	}
	for _, lib := range libFiles {
		if lib.Exports != nil {
			c.exports[lib.Exports.File] = lib.Exports
		}
	}

	h := newHandle()
	s.compilations.put(h, c)
	return h, nil
}

func bindFile(names *atom.Interner, f File) (*fileState, error) {
	bag := diag.NewBag()
	jsx := isJSXPath(f.Path)
	arena, root := parser.ParseSourceFile(f.Path, f.Source, names, bag, jsx)
	bindRes := binder.Bind(arena, root, bag, f.Path)
	return &fileState{
		path:  f.Path,
		jsx:   jsx,
		arena: arena,
		root:  root,
		bind:  bindRes,
		bag:   bag,
	}, nil
}

func isJSXPath(path string) bool {
	n := len(path)
	return n >= 4 && (path[n-4:] == ".tsx" || path[n-4:] == ".jsx")
}

// lookupCompilation resolves a Handle into its compilation, an ordinary
// Go error (not a Diagnostic) since a bad handle is a tooling-level misuse,
// not a problem in the user's source.
func (s *Session) lookupCompilation(h Handle) (*compilation, error) {
	c, ok := s.compilations.get(h)
	if !ok {
		return nil, errors.Errorf("compiler: unknown compilation handle %q", h)
	}
	return c, nil
}
