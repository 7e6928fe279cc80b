package sftrie

// build runs the single-pass recursive construction described in spec.md
// §4.1 (C3), generalized over the three variants by capability switches
// on t.cfg instead of three duplicated recursions (see DESIGN.md's
// "Variant unification" entry). pairs must already be sorted; this is a
// documented precondition, not checked here.
func (t *Trie[S, V]) build(pairs []KV[S, V]) {
	if t.cfg.Variant == Fast && len(pairs) > 0 {
		t.alphabetLo, t.alphabetHi, t.alphabetSize = alphabetRange(pairs)
	} else {
		t.alphabetSize = 1
	}

	t.data = make([]node[S, V], 1, estimateNodeCount(pairs, t.cfg))
	t.data[0].setNext(1) // children, if any, start immediately after the root

	if len(pairs) > 0 {
		t.constructRec(pairs, 0, len(pairs), 0, 0)
	}

	var sentinel node[S, V]
	sentinel.tail = uint32(len(t.tails))
	sentinel.setNext(len(t.data))
	t.data = append(t.data, sentinel)

	t.fixupTails()
}

// alphabetRange scans every symbol of every key once to find the closed
// range the Fast variant's lookup table must span (spec.md §4.1: "for
// fast, also the closed alphabet range observed in the input").
func alphabetRange[S Symbol, V any](pairs []KV[S, V]) (lo, hi S, size int) {
	first := true
	for _, p := range pairs {
		for _, c := range p.Key {
			if first {
				lo, hi = c, c
				first = false
				continue
			}
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}
	}
	if first {
		return 0, 0, 1
	}
	return lo, hi, int(int64(hi)-int64(lo)) + 1
}

// estimateNodeCount is a correctness-transparent capacity hint (spec.md
// §4.1's "two-phase policy"): a structural-only recursion that counts
// nodes without writing them, so the real build can pre-size its slice
// and avoid repeated growth. It intentionally does not model lookup-table
// expansion (that would require re-deriving the LUT-eligibility decision
// twice); under Fast it therefore underestimates at LUT nodes, which is
// still a correctness-neutral hint, just a looser one. Disabled via
// Config.TwoPass, in which case the real build grows its slice lazily,
// producing an identical trie either way.
func estimateNodeCount[S Symbol, V any](pairs []KV[S, V], cfg Config[S]) int {
	if !cfg.TwoPass || len(pairs) == 0 {
		return len(pairs) + 2
	}
	return 1 + estimateRec(pairs, 0, len(pairs), 0) + 1 // estimateRec's count includes the root; +1 spare, +1 sentinel
}

func estimateRec[S Symbol, V any](pairs []KV[S, V], l, r, depth int) int {
	count := 1
	if depth == len(pairs[l].Key) {
		l++
	}
	for i := l; i < r; {
		c := pairs[i].Key[depth]
		start := i
		for i < r && pairs[i].Key[depth] == c {
			i++
		}
		count += estimateRec(pairs, start, i, depth+1)
	}
	return count
}

// constructRec builds the subtrie covering pairs[l:r] at the given depth
// into the pre-reserved node self. self's own next field must already
// have been set by the caller to the index where self's children (if
// any get reserved) will begin — either by build's initial setNext(1)
// for the root, or by the reservation loops below for every other node.
func (t *Trie[S, V]) constructRec(pairs []KV[S, V], l, r, depth, self int) {
	if depth == len(pairs[l].Key) {
		t.data[self].setMatch(true)
		t.data[self].value = pairs[l].Value
		l++
		if l == r {
			t.data[self].setLeaf(true)
			return
		}
	}

	head := []int{l}
	for i := l; i < r; {
		c := pairs[i].Key[depth]
		for i < r && pairs[i].Key[depth] == c {
			i++
		}
		head = append(head, i)
	}
	k := len(head) - 1

	useLUT := t.cfg.Variant == Fast && k >= t.cfg.MinLUTChildren &&
		(t.cfg.LUTMode == LUTModeAdaptive || (t.cfg.LUTMode == LUTModeRootOnly && depth == 0))

	if useLUT {
		t.reserveLUTBlock(pairs, head, depth, self)
	} else {
		t.reservePlainBlock(pairs, head, depth, self)
	}
}

// reservePlainBlock implements spec.md §4.1 steps 3-5 for a non-LUT
// sibling block: reserve k contiguous slots, compress tails (Compact and
// Fast only), then recurse into each child in order. The recursion order
// matters: each child's next is stamped with len(t.data) immediately
// before recursing into it, so that value also ends up being the
// boundary this block's *first* slot reports as "one past the last
// sibling" when some ancestor later reads data[blockStart].next as its
// end-of-block marker (see spec.md's "Child blocks via borrowed range"
// design note).
func (t *Trie[S, V]) reservePlainBlock(pairs []KV[S, V], head []int, depth, self int) {
	k := len(head) - 1
	blockStart := len(t.data)
	t.data[self].setNext(blockStart)

	for i := 0; i < k; i++ {
		t.data = append(t.data, node[S, V]{label: pairs[head[i]].Key[depth]})
	}

	depths := make([]int, k)
	for i := 0; i < k; i++ {
		child := blockStart + i
		t.data[child].tail = uint32(len(t.tails))
		depths[i] = t.compressTail(pairs, head[i], head[i+1], depth+1)
	}

	for i := 0; i < k; i++ {
		child := blockStart + i
		t.data[child].setNext(len(t.data))
		t.constructRec(pairs, head[i], head[i+1], depths[i], child)
	}
}

// reserveLUTBlock implements spec.md §4.1.1: reserve one slot per
// alphabet symbol instead of one per real child, marking absent symbols
// as filler (label = alphabet.lo + slot - 1, distinct from any real
// label at that slot by construction). The three-pass shape (reserve,
// compress tails, recurse) mirrors reservePlainBlock exactly, just
// walked over the alphabet instead of over head.
func (t *Trie[S, V]) reserveLUTBlock(pairs []KV[S, V], head []int, depth, self int) {
	k := len(head) - 1
	lo, hi := int64(t.alphabetLo), int64(t.alphabetHi)
	blockStart := len(t.data)
	t.data[self].setNext(blockStart)

	i := 0
	for c := lo; c <= hi; c++ {
		if i < k && int64(pairs[head[i]].Key[depth]) == c {
			t.data = append(t.data, node[S, V]{label: S(c)})
			i++
		} else {
			t.data = append(t.data, node[S, V]{label: S(c - 1)})
		}
	}

	depths := make([]int, k)
	i = 0
	for slot, c := 0, lo; c <= hi; slot, c = slot+1, c+1 {
		idx := blockStart + slot
		t.data[idx].tail = uint32(len(t.tails))
		if int64(t.data[idx].label) == c {
			t.lutSlots.MarkReal(idx)
			depths[i] = t.compressTail(pairs, head[i], head[i+1], depth+1)
			i++
		}
	}

	i = 0
	for slot, c := 0, lo; c <= hi; slot, c = slot+1, c+1 {
		idx := blockStart + slot
		t.data[idx].setNext(len(t.data))
		if int64(t.data[idx].label) == c {
			t.constructRec(pairs, head[i], head[i+1], depths[i], idx)
			i++
		}
	}
}

// compressTail appends the symbols shared by every key in pairs[l:r] at
// positions [depth, ...) to the tail array, stopping at the first
// position the lexicographically-first and lexicographically-last key
// of the group disagree on (or run out) — since the range is sorted,
// agreement between the first and last member implies agreement by
// every member in between. Returns the depth reached (i.e. where this
// child's own recursion should resume). A no-op (returns depth
// unchanged) for the Original variant, which carries no tail array.
func (t *Trie[S, V]) compressTail(pairs []KV[S, V], l, r, depth int) int {
	if t.cfg.Variant == Original {
		return depth
	}
	first := pairs[l].Key
	last := pairs[r-1].Key
	d := depth
	for d < len(first) && first[d] == last[d] {
		t.tails = append(t.tails, first[d])
		d++
	}
	return d
}

// fixupTails walks the node array backward from the sentinel and lowers
// any tail offset that exceeds its successor's, so I4 (data[n].tail <=
// data[n+1].tail) holds. It never raises an offset. In this builder every
// node's tail field is written at creation time (reservePlainBlock/
// reserveLUTBlock both stamp it before recursing, and the root's stays 0),
// so the offsets are already monotone and this pass changes nothing; it
// makes the invariant's maintenance explicit.
func (t *Trie[S, V]) fixupTails() {
	last := uint32(len(t.tails))
	for i := len(t.data) - 1; i >= 0; i-- {
		if t.data[i].tail > last {
			t.data[i].tail = last
		} else {
			last = t.data[i].tail
		}
	}
}
