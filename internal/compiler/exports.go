package compiler

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/oxhq/tsgroundwork/internal/binder"
	"github.com/oxhq/tsgroundwork/internal/checker"
)

// PopulateModuleExports is populate_module_exports: the driver supplies the
// export surface another module resolves to under modulePath (its own
// bound file's ModuleExports, or a library's). Each file's checker takes a
// snapshot of this table lazily, when it is created for the first query
// against that file (getChecker), so call order relative to BeginCompilation doesn't matter as
// long as every required module is populated before that first query.
func (s *Session) PopulateModuleExports(h Handle, modulePath string, exports *binder.ModuleExports) error {
	c, err := s.lookupCompilation(h)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.exports[modulePath] = exports
	c.mu.Unlock()
	return nil
}

// SetOptions is the §6 "option setter" that invalidates affected caches:
// every file's memoized Checker is discarded so the next query re-checks
// under the new Options rather than returning stale diagnostics.
func (s *Session) SetOptions(h Handle, opts checker.Options) error {
	c, err := s.lookupCompilation(h)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts = opts.Resolve()
	for _, st := range c.files {
		st.once = sync.Once{}
		st.checker = nil
	}
	return nil
}

func (c *compilation) exportsSnapshot() map[string]*binder.ModuleExports {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := make(map[string]*binder.ModuleExports, len(c.exports))
	for k, v := range c.exports {
		snap[k] = v
	}
	return snap
}

// getChecker returns the file's Checker, constructing and running
// CheckSourceFile over it exactly once even under concurrent callers: the
// singleflight group collapses every racing first-access for the same
// path into a single construction, matching the DOMAIN STACK's
// "collapses concurrent ... cross-file resolution lookups for the same
// module path" role for singleflight.
func (c *compilation) getChecker(path string) (*fileState, error) {
	st, ok := c.files[path]
	if !ok {
		return nil, errors.Errorf("compiler: unknown file %q", path)
	}
	_, err, _ := c.group.Do(path, func() (any, error) {
		st.once.Do(func() {
			ck := checker.New(st.arena, st.bind, c.session.types, st.bag, st.path, c.opts)
			ck.SetExports(c.exportsSnapshot())
			ck.CheckSourceFile(st.root)
			st.checker = ck
		})
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}
