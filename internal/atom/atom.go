// Package atom implements a process-wide, concurrency-safe string interner.
//
// Atoms are 32-bit handles: two atoms compare equal iff the strings they
// name are byte-equal. The string-to-atom mapping is process-lifetime --
// atoms are never recycled.
package atom

import (
	"hash/fnv"
	"sync"
)

// Atom is a compact handle for a deduplicated string.
type Atom uint32

// NoAtom is never returned by Intern; it marks "no atom" in side pools that
// use zero as a sentinel.
const NoAtom Atom = 0

const shardCount = 64

type shard struct {
	mu      sync.RWMutex
	byText  map[string]Atom
	entries []string // index 0 unused so Atom 0 can mean NoAtom within a shard-local scheme
}

// Interner deduplicates strings into Atom handles. It is sharded by hash so
// that concurrent parsers interning distinct strings contend on different
// shards; allocation within a shard is still monotonic and lock-protected.
type Interner struct {
	shards [shardCount]*shard
}

// New returns an Interner pre-populated with the given reserved words (in
// addition to the empty string, which New interns first, as entry 1 of its
// hash shard). In practice every caller should intern reserved words up front so their
// atoms are stable and can be compared against named constants).
func New(reserved ...string) *Interner {
	in := &Interner{}
	for i := range in.shards {
		in.shards[i] = &shard{byText: map[string]Atom{}, entries: []string{""}}
	}
	in.Intern("")
	for _, r := range reserved {
		in.Intern(r)
	}
	return in
}

func shardFor(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32() % shardCount
}

// pack combines a shard index and an in-shard entry index into one Atom.
// 6 bits of shard index (shardCount <= 64) leave 26 bits for the entry
// index, comfortably above any realistic source file's identifier count.
const shardBits = 6

func pack(shardIdx uint32, entryIdx int) Atom {
	return Atom(shardIdx)<<(32-shardBits) | Atom(entryIdx)
}

func unpack(a Atom) (shardIdx uint32, entryIdx int) {
	shardIdx = uint32(a >> (32 - shardBits))
	entryIdx = int(a & ((1 << (32 - shardBits)) - 1))
	return
}

// Intern returns the Atom for s, allocating one if s has not been seen
// before. Safe for concurrent use from multiple goroutines interning
// distinct or overlapping strings.
func (in *Interner) Intern(s string) Atom {
	idx := shardFor(s)
	sh := in.shards[idx]

	sh.mu.RLock()
	if a, ok := sh.byText[s]; ok {
		sh.mu.RUnlock()
		return a
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if a, ok := sh.byText[s]; ok {
		return a
	}
	entryIdx := len(sh.entries)
	sh.entries = append(sh.entries, s)
	a := pack(idx, entryIdx)
	sh.byText[s] = a
	return a
}

// Text returns the string named by a. Panics if a was not produced by this
// Interner (out-of-range shard/entry index), mirroring the spec's
// "out-of-memory propagates as a fatal abort" posture: a foreign atom is a
// programming error, not a recoverable condition.
func (in *Interner) Text(a Atom) string {
	idx, entryIdx := unpack(a)
	sh := in.shards[idx]
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.entries[entryIdx]
}

// Len reports the total number of distinct strings interned so far, across
// all shards. Intended for diagnostics/metrics, not for indexing.
func (in *Interner) Len() int {
	n := 0
	for _, sh := range in.shards {
		sh.mu.RLock()
		n += len(sh.entries) - 1 // entry 0 is the placeholder
		sh.mu.RUnlock()
	}
	return n
}
