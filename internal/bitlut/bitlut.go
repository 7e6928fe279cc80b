// Package bitlut tracks which slots of a Fast-variant lookup-table block
// hold a real child versus a filler. It exists purely for introspection
// (Trie.LUTOccupancy): the label-based filler
// check described in spec.md §4.1.1/§9 (a filler's label never equals
// the slot's natural alphabet position) is the sole mechanism the
// descent and iteration code relies on for correctness.
//
// Grounded on github.com/gaissmai/bart's internal/sparse package, which
// uses github.com/bits-and-blooms/bitset the same way: a compact
// presence bitmap alongside a dense array, rather than a bit per array
// element kept inline.
package bitlut

import "github.com/bits-and-blooms/bitset"

// Set records, by node-array index, whether a slot inside some
// lookup-table block is a real child (bit set) or filler (bit clear).
// The zero value is ready to use.
type Set struct {
	bits *bitset.BitSet
}

// MarkReal records that the node-array slot at index holds a real child.
func (s *Set) MarkReal(index int) {
	if s.bits == nil {
		s.bits = bitset.New(uint(index) + 1)
	}
	s.bits.Set(uint(index))
}

// IsReal reports whether the slot at index was marked real. Indices never
// marked (including when the Set is empty) report false.
func (s *Set) IsReal(index int) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Test(uint(index))
}

// Occupancy returns (real, total) slot counts across every index in
// [0, span) — callers pass the node-array span covering every LUT block
// ever built — to report lookup-table fan-out utilization.
func (s *Set) Occupancy(span int) (real, total int) {
	if s.bits == nil {
		return 0, 0
	}
	for i := 0; i < span; i++ {
		if s.bits.Test(uint(i)) {
			real++
		}
		total++
	}
	return real, total
}
