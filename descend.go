package sftrie

// descend implements exact-match descent (C4), grounded directly on
// map_compact.hpp's find() (the shape also followed, modulo the
// LUT-aware sibling search, by map_fast.hpp): walk the query one symbol
// at a time, resolving a child by label at each sibling block and then
// consuming as much of that child's compressed tail as the remaining
// query allows.
//
// The returned VirtualNode addresses (physical node id, offset into that
// node's tail) exactly as spec.md's virtual-node model describes. Only
// when the offset equals the full tail length has descent actually
// landed on the node itself — VirtualNode.Match/Leaf/Children all gate
// on that, so a query that runs out partway through a tail yields a
// valid but non-matching node rather than the invalid sentinel; only an
// outright label or tail-symbol mismatch does that.
func (t *Trie[S, V]) descend(q []S) VirtualNode[S, V] {
	invalid := VirtualNode[S, V]{trie: t, id: len(t.data) - 1, depth: 0}

	current := 0
	depth := 0
	i := 0

	for i < len(q) {
		if t.data[current].leaf() {
			return invalid
		}

		begin := t.data[current].next()
		end := t.data[begin].next()

		child, ok := t.findSibling(begin, end, q[i])
		if !ok {
			return invalid
		}
		i++
		current = child

		tailStart := t.data[current].tail
		tailEnd := t.data[current+1].tail
		for depth = 0; tailStart+uint32(depth) < tailEnd && i < len(q); depth, i = depth+1, i+1 {
			if t.tails[tailStart+uint32(depth)] != q[i] {
				return invalid
			}
		}
	}

	return VirtualNode[S, V]{trie: t, id: current, depth: depth}
}

// findSibling searches the half-open sibling block [begin, end) for a
// node whose label equals want, returning its index. When the block's
// width equals the trie's alphabet span, it is a Fast lookup-table block:
// want's position is computed directly (O(1)), then the label is still
// checked to distinguish a real child from a filler slot, per spec.md
// §4.1.1 and §9 (the label check is the sole correctness mechanism, not
// the lutSlots bitmap, which is introspection-only).
//
// Otherwise it is an ordinary sorted sibling block: binary search above
// Config.MinBinarySearch width, linear scan below it, matching
// map_compact.hpp's declared performance rationale for the hybrid.
func (t *Trie[S, V]) findSibling(begin, end int, want S) (int, bool) {
	if t.cfg.Variant == Fast && end-begin == t.alphabetSize {
		idx := begin + int(int64(want)-int64(t.alphabetLo))
		if idx < begin || idx >= end {
			return 0, false
		}
		if t.data[idx].label == want {
			return idx, true
		}
		return 0, false
	}

	for w := end - begin; w > t.cfg.MinBinarySearch; {
		m := w / 2
		if t.data[begin+m].label < want {
			begin += w - m
		}
		w = m
	}
	for begin < end && t.data[begin].label < want {
		begin++
	}
	if begin < end && t.data[begin].label == want {
		return begin, true
	}
	return 0, false
}

// isLUTBlock reports whether the half-open sibling block [begin, end) is a
// Fast-variant lookup-table block, i.e. sized to span the whole observed
// alphabet rather than holding exactly one slot per real child.
func (t *Trie[S, V]) isLUTBlock(begin, end int) bool {
	return t.cfg.Variant == Fast && end-begin == t.alphabetSize
}

// lutReal reports whether slot id of a lookup-table block starting at begin
// holds a real child rather than a filler, per the same label ==
// alphabetLo + (slot - begin) check reserveLUTBlock used to tell them apart
// at construction time (build.go) — the correctness-load-bearing mechanism,
// per spec.md §9's Open Question resolution.
func (t *Trie[S, V]) lutReal(begin, id int) bool {
	return int64(t.data[id].label) == int64(t.alphabetLo)+int64(id-begin)
}

// firstRealChild returns the first non-filler slot in parent's sibling
// block, skipping any leading fillers when that block is a lookup table.
// Grounded on map_fast.hpp's subtree_iterator constructor (~line 896),
// which advances past filler slots the same way before ever dereferencing
// the child.
func (t *Trie[S, V]) firstRealChild(parent int) int {
	begin := t.data[parent].next()
	end := t.data[begin].next()
	n := begin
	if t.isLUTBlock(begin, end) {
		for n < end && !t.lutReal(begin, n) {
			n++
		}
	}
	return n
}

// lastRealInBlock reports whether id is the last real child in its sibling
// block (begin/end are that block's bounds, read from parent). For a plain
// block this is just id+1 == end; for a lookup-table block it additionally
// skips any trailing fillers after id, matching map_fast.hpp's
// subtree_iterator::operator++ (~line 929).
func (t *Trie[S, V]) lastRealInBlock(parent, id int) bool {
	begin := t.data[parent].next()
	end := t.data[begin].next()
	if !t.isLUTBlock(begin, end) {
		return id+1 == end
	}
	for n := id + 1; n < end; n++ {
		if t.lutReal(begin, n) {
			return false
		}
	}
	return true
}

// nextRealSibling returns the next real child in id's sibling block after
// id, skipping fillers, and reports whether one exists before the block
// ends.
func (t *Trie[S, V]) nextRealSibling(parent, id int) (int, bool) {
	begin := t.data[parent].next()
	end := t.data[begin].next()
	n := id + 1
	if t.isLUTBlock(begin, end) {
		for n < end && !t.lutReal(begin, n) {
			n++
		}
	}
	if n >= end {
		return 0, false
	}
	return n, true
}
