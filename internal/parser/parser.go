// Package parser implements a recursive-descent, precedence-climbing parser
// that consumes internal/scanner's token stream and constructs an
// internal/syntax.Arena. Error recovery produces KindMissing/KindUnknownNode
// placeholder nodes rather than aborting, so one malformed construct never
// prevents the rest of a file from being bound and checked.
package parser

import (
	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/diag"
	"github.com/oxhq/tsgroundwork/internal/scanner"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

// contextFlags tracks grammar-ambiguity-resolving parse context that cannot
// be recovered from the token stream alone (spec.md §4.3's disambiguation
// list: generic-call-vs-comparison, yield/await-in-nested-function, etc).
type contextFlags uint32

const (
	ctxNone contextFlags = 0
	ctxInGenerator contextFlags = 1 << iota
	ctxInAsync
	ctxDisallowIn // inside a for(;;) head, `in` is not the relational operator
	ctxYieldContext
	ctxAwaitContext
	ctxAmbient // inside `declare` block: no initializers/bodies
)

// maxResyncIterations bounds how many times statement-level error recovery
// may advance the token stream without making syntactic progress, so a
// pathological input cannot spin the parser forever.
const maxResyncIterations = 10000

// maxRecursionDepth caps expression/statement nesting so a deeply
// right-recursive or adversarial input fails as a diagnostic, not a stack
// overflow.
const maxRecursionDepth = 1000

// Parser drives one file's parse. It is not safe for concurrent use; a
// compiler session creates one Parser per file.
type Parser struct {
	sc    *scanner.Scanner
	arena *syntax.Arena
	bag   *diag.Bag
	file  string

	tok   scanner.Kind
	ctx   contextFlags
	depth int

	resyncBudget int
}

// New constructs a Parser over src, reporting diagnostics to bag and
// interning identifier/literal text through in. jsx enables JSX/TSX lexical
// and grammar productions.
func New(file string, src []byte, in *atom.Interner, bag *diag.Bag, jsx bool) *Parser {
	arena := syntax.NewArena(in)
	p := &Parser{
		sc:           scanner.New(src, in, jsx),
		arena:        arena,
		bag:          bag,
		file:         file,
		resyncBudget: maxResyncIterations,
	}
	p.next()
	return p
}

// Arena returns the parser's arena. Valid to call at any point, including
// mid-parse for tooling that wants incremental access.
func (p *Parser) Arena() *syntax.Arena { return p.arena }

func (p *Parser) next() {
	p.tok = p.sc.Scan()
}

func (p *Parser) pos() int   { return p.sc.Token().Start }
func (p *Parser) end() int   { return p.sc.Token().End }
func (p *Parser) text() string { return p.arena.Interner.Text(p.sc.Token().Atom) }

func (p *Parser) report(code diag.Code, start, end int, msg string) {
	p.bag.Report(diag.Diagnostic{
		Code: code, Severity: diag.SeverityError,
		File: p.file, Start: start, Length: end - start, Message: msg,
	})
}

func (p *Parser) atEnd() bool { return p.tok == scanner.EOF }

// isIdentText reports whether the current token is a plain identifier
// spelled exactly s. Contextual keywords (as, satisfies, readonly, async,
// static, abstract, out, ...) all scan as Ident -- only grammar position
// distinguishes them from ordinary identifier references -- so this is how
// the parser recognizes them instead of comparing p.tok against a
// contextual Kind constant, which the scanner never produces.
func (p *Parser) isIdentText(s string) bool {
	return p.tok == scanner.Ident && p.text() == s
}

// consumeIdentText consumes the current token if it is the identifier s.
func (p *Parser) consumeIdentText(s string) bool {
	if p.isIdentText(s) {
		p.next()
		return true
	}
	return false
}

// checkpoint is the speculative-parse savepoint: scanner state, arena/pool
// lengths, and diagnostics length together, so a failed speculative branch
// rolls back every side effect it produced.
type checkpoint struct {
	scan  scanner.Snapshot
	pools syntax.PoolSnapshot
	diags int
	tok   scanner.Kind
	ctx   contextFlags
}

func (p *Parser) save() checkpoint {
	return checkpoint{
		scan:  p.sc.Save(),
		pools: p.arena.SavePools(),
		diags: p.bag.Len(),
		tok:   p.tok,
		ctx:   p.ctx,
	}
}

// restore rolls back every side effect recorded since cp was taken. It
// cannot shrink the diagnostics bag itself (Bag has no truncate — a
// diagnostic already reported is not something the caller can take back
// from a shared sink), so speculative productions that might report
// diagnostics use a scratch Bag and merge it in only on success; see
// tryParse.
func (p *Parser) restore(cp checkpoint) {
	p.sc.Restore(cp.scan)
	p.arena.RestorePools(cp.pools)
	p.tok = cp.tok
	p.ctx = cp.ctx
}

// tryParse attempts fn speculatively: diagnostics fn reports go to a scratch
// bag that is discarded on failure (fn returns NoNode) and merged into the
// real bag on success. Used for arrow-function-vs-parenthesized-expression
// lookahead, generic-call-vs-comparison, and similar grammar ambiguities
// that cannot be resolved by a fixed amount of token lookahead alone.
func (p *Parser) tryParse(fn func() syntax.NodeID) syntax.NodeID {
	cp := p.save()
	scratch := diag.NewBag()
	real := p.bag
	p.bag = scratch
	id := fn()
	p.bag = real
	if id == syntax.NoNode {
		p.restore(cp)
		return syntax.NoNode
	}
	for _, d := range scratch.All() {
		p.bag.Report(d)
	}
	return id
}

func (p *Parser) expect(k scanner.Kind, code diag.Code, what string) bool {
	if p.tok == k {
		p.next()
		return true
	}
	p.report(code, p.pos(), p.end(), "expected "+what)
	return false
}

// addMissing records an error and returns a synthesized KindMissing node so
// callers always get a valid NodeID back, never a special-cased nil.
func (p *Parser) addMissing(code diag.Code, msg string) syntax.NodeID {
	start := p.pos()
	p.report(code, start, start, msg)
	return p.arena.AddNode(syntax.Header{Kind: syntax.KindMissing, Flags: syntax.FlagSynthesized | syntax.FlagHasError, Pos: int32(start), End: int32(start), DataIndex: syntax.NoData})
}

// ParseSourceFile is the top-level entry point: consumes the whole token
// stream and returns the KindSourceFile root node.
func ParseSourceFile(file string, src []byte, in *atom.Interner, bag *diag.Bag, jsx bool) (*syntax.Arena, syntax.NodeID) {
	p := New(file, src, in, bag, jsx)
	var stmts []syntax.NodeID
	for !p.atEnd() {
		before := p.pos()
		stmts = append(stmts, p.parseStatement())
		if p.pos() == before && !p.atEnd() {
			// No progress: force advancement so statement-level recovery
			// cannot spin forever on an unrecognized token.
			p.next()
			p.resyncBudget--
			if p.resyncBudget <= 0 {
				break
			}
		}
	}
	list := p.arena.AddNodeList(stmts)
	idx := p.arena.Block.Add(syntax.BlockData{Statements: list})
	root := p.arena.AddNode(syntax.Header{Kind: syntax.KindSourceFile, Pos: 0, End: int32(len(src)), DataIndex: idx})
	return p.arena, root
}
