package sftrie

import (
	"unsafe"

	"github.com/tuem/go-sftrie/internal/bitlut"
)

type bitSet = bitlut.Set

// KV is a sorted key/value pair, the input element type for [NewMap].
type KV[S Symbol, V any] struct {
	Key   []S
	Value V
}

// Trie is an immutable, succinct, read-optimized ordered string index: a
// set of keys (V = struct{}) or an ordered mapping from keys to
// fixed-size values. Build one with [NewSet] or [NewMap]; see the
// package doc comment for the query surface.
//
// A *Trie is safe for concurrent use by multiple goroutines as long as
// each goroutine calls [Trie.Searcher] for its own [Searcher] — the
// node and tail arrays are immutable after construction and never
// touched by a lock. [Trie.Update] and [Trie.UpdateKey] mutate a single
// node's value in place and are not safe to call concurrently with
// readers or each other.
type Trie[S Symbol, V any] struct {
	cfg Config[S]

	alphabetLo, alphabetHi S
	alphabetSize           int

	data  []node[S, V]
	tails []S

	numKeys int

	// lutSlots marks, for nodes that sit inside a lookup-table block,
	// whether the slot holds a real child (bit set) or a filler (bit
	// clear). It is introspection-only: the label-based filler check
	// (label equals the slot's natural alphabet position) is the sole
	// correctness-load-bearing mechanism, per spec.md §9's Open Question
	// resolution. Empty (its zero value) unless Variant is Fast and at
	// least one LUT block was built.
	lutSlots bitSet
}

// NewSet builds a set-shaped trie from sorted keys. keys must already be
// sorted per [Symbol]'s ordering (shorter key sorts before a longer key
// it prefixes); this precondition is not validated (spec: precondition
// violations are undefined behavior, not detected errors).
func NewSet[S Symbol](keys [][]S, opts ...Option[S]) (*Trie[S, struct{}], error) {
	pairs := make([]KV[S, struct{}], len(keys))
	for i, k := range keys {
		pairs[i] = KV[S, struct{}]{Key: k}
	}
	return NewMap[S, struct{}](pairs, opts...)
}

// NewMap builds a map-shaped trie from sorted key/value pairs. pairs must
// already be sorted by key (same precondition as [NewSet]).
func NewMap[S Symbol, V any](pairs []KV[S, V], opts ...Option[S]) (*Trie[S, V], error) {
	cfg := defaultConfig[S]()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Variant > Fast || cfg.LUTMode > LUTModeAdaptive {
		return nil, ErrUnsupportedVariant
	}

	t := &Trie[S, V]{cfg: cfg, numKeys: len(pairs)}
	t.build(pairs)
	return t, nil
}

// Size returns the number of stored keys.
func (t *Trie[S, V]) Size() int { return t.numKeys }

// NodeSize returns sizeof(node) in bytes, mirroring the C++ original's
// node_size(); useful alongside [Trie.TrieSize] to reason about memory
// footprint.
func (t *Trie[S, V]) NodeSize() int {
	var n node[S, V]
	return int(unsafe.Sizeof(n))
}

// TrieSize returns the number of entries in the node array (C1),
// including the root and the trailing sentinel.
func (t *Trie[S, V]) TrieSize() int { return len(t.data) }

// TotalSpace returns the combined byte footprint of the node array and
// the tail array.
func (t *Trie[S, V]) TotalSpace() int {
	var s S
	return t.NodeSize()*len(t.data) + int(unsafe.Sizeof(s))*len(t.tails)
}

// Variant reports the construction variant this trie was built with.
func (t *Trie[S, V]) Variant() Variant { return t.cfg.Variant }

// Root returns the virtual node addressing the trie's root.
func (t *Trie[S, V]) Root() VirtualNode[S, V] {
	return VirtualNode[S, V]{trie: t, id: 0, depth: 0}
}

// RawData exposes the node array for introspection or custom
// serialization. Callers must not mutate the returned slice's node
// values other than via [Trie.Update].
func (t *Trie[S, V]) RawData() []node[S, V] { return t.data }

// RawLabels exposes the tail symbol array (C2) for introspection. Empty
// for the [Original] variant.
func (t *Trie[S, V]) RawLabels() []S { return t.tails }

// Exists reports whether q is a stored key.
func (t *Trie[S, V]) Exists(q []S) bool {
	return t.Root().descend(q).Match()
}

// Find returns the virtual node reached by descending q. Check
// [VirtualNode.Match] to determine whether q is a stored key;
// [VirtualNode.Valid] is false only when descent fell off the trie
// entirely (e.g. a symbol outside the alphabet for Fast).
func (t *Trie[S, V]) Find(q []S) VirtualNode[S, V] {
	return t.Root().descend(q)
}

// LUTOccupancy reports how many node-array slots belonging to some
// lookup-table block actually hold a real child, versus the total number
// of node slots in the trie. It is zero/zero unless Variant is Fast and
// at least one lookup-table block was built.
func (t *Trie[S, V]) LUTOccupancy() (real, total int) {
	return t.lutSlots.Occupancy(len(t.data))
}

// Searcher returns a new [Searcher] bound to this trie. Each Searcher
// owns its own path stack and result buffer; callers needing concurrent
// queries must each obtain their own Searcher (see the type doc comment).
func (t *Trie[S, V]) Searcher() *Searcher[S, V] {
	return &Searcher[S, V]{trie: t}
}
