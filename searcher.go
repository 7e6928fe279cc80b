package sftrie

// Searcher owns the path stack and result buffer shared by the iterators
// it produces (C5/C6), grounded on map_compact.hpp's common_searcher.
// Reusing these buffers across calls is why a *Trie hands out a fresh
// *Searcher per concurrent caller rather than making every query method
// free-standing (see the Trie doc comment's concurrency note).
//
// Key/Pair on the iterators below return slices into the Searcher's
// shared result buffer: valid until the next call to Next on that same
// iterator, exactly like bufio.Scanner.Bytes(). Copy if you need to keep
// the key past that point.
type Searcher[S Symbol, V any] struct {
	trie   *Trie[S, V]
	path   []int
	result []S
}

// Exists reports whether q is a stored key.
func (s *Searcher[S, V]) Exists(q []S) bool { return s.trie.Exists(q) }

// Find returns the virtual node reached by descending q.
func (s *Searcher[S, V]) Find(q []S) VirtualNode[S, V] { return s.trie.Find(q) }

// PrefixIterator yields, in increasing length order, every stored key
// that is a prefix of the iterator's pattern (C5). Grounded on
// map_compact.hpp's prefix_iterator.
type PrefixIterator[S Symbol, V any] struct {
	s       *Searcher[S, V]
	pattern []S
	current int
	depth   int
	started bool
}

// Prefix returns an iterator over every stored key that is a prefix of
// pattern, shortest first.
func (s *Searcher[S, V]) Prefix(pattern []S) *PrefixIterator[S, V] {
	s.result = s.result[:0]
	return &PrefixIterator[S, V]{s: s, pattern: pattern}
}

// Next advances to the next matching key, returning false once exhausted.
func (it *PrefixIterator[S, V]) Next() bool {
	if !it.started {
		it.started = true
		t := it.s.trie
		if !t.data[0].match() {
			if len(it.pattern) == 0 {
				it.current = len(t.data) - 1
				return false
			}
			return it.advance()
		}
		it.current, it.depth = 0, 0
		return true
	}
	return it.advance()
}

func (it *PrefixIterator[S, V]) advance() bool {
	t := it.s.trie
	for !t.data[it.current].leaf() && it.depth < len(it.pattern) {
		begin := t.data[it.current].next()
		end := t.data[begin].next()
		child, ok := t.findSibling(begin, end, it.pattern[it.depth])
		if !ok {
			break
		}
		it.current = child
		it.s.result = append(it.s.result, it.pattern[it.depth])
		it.depth++

		j, jend := t.data[it.current].tail, t.data[it.current+1].tail
		if jend > j {
			n := int(jend - j)
			if n > len(it.pattern)-it.depth {
				break
			}
			mismatch := false
			for k := 0; k < n; k++ {
				if t.tails[int(j)+k] != it.pattern[it.depth+k] {
					mismatch = true
					break
				}
			}
			if mismatch {
				break
			}
			it.s.result = append(it.s.result, t.tails[j:jend]...)
			it.depth += n
		}

		if t.data[it.current].match() {
			return true
		}
	}
	it.current = len(t.data) - 1
	return false
}

// Key returns the stored key last matched. See the Searcher doc comment
// about buffer reuse.
func (it *PrefixIterator[S, V]) Key() []S { return it.s.result }

// Value returns the value associated with the last matched key.
func (it *PrefixIterator[S, V]) Value() V { return it.s.trie.data[it.current].value }

// Pair returns the last matched key/value together.
func (it *PrefixIterator[S, V]) Pair() KV[S, V] { return KV[S, V]{Key: it.Key(), Value: it.Value()} }

// Node returns the virtual node last matched.
func (it *PrefixIterator[S, V]) Node() VirtualNode[S, V] { return physical(it.s.trie, it.current) }

// PredictIterator yields every stored key having the iterator's pattern
// as a prefix, in trie order (C6). Grounded on map_compact.hpp's
// subtree_iterator.
type PredictIterator[S Symbol, V any] struct {
	s       *Searcher[S, V]
	current int
	primed  bool
	first   bool
}

// Predict returns an iterator over every stored key prefixed by pattern.
func (s *Searcher[S, V]) Predict(pattern []S) *PredictIterator[S, V] {
	it := &PredictIterator[S, V]{s: s}
	n := s.trie.descend(pattern)
	if !n.Valid() {
		it.current = n.id
		it.primed = false
		it.first = false
		return it
	}

	s.path = append(s.path[:0], n.id)
	s.result = append(s.result[:0], pattern...)
	it.current = n.id

	tn := tailLen(s.trie.data, n.id)
	if tn > n.depth {
		s.result = append(s.result, s.trie.tails[s.trie.data[n.id].tail+uint32(n.depth):s.trie.data[n.id+1].tail]...)
	}

	switch {
	case s.trie.data[n.id].match():
		it.first = true
	case n.id != 0 || s.trie.data[n.id].next() < len(s.trie.data)-1:
		it.first = it.advance()
	default:
		it.current = len(s.trie.data) - 1
		it.first = false
	}
	return it
}

// Next advances to the next matching key, returning false once exhausted.
func (it *PredictIterator[S, V]) Next() bool {
	if !it.primed {
		it.primed = true
		return it.first
	}
	return it.advance()
}

func (it *PredictIterator[S, V]) advance() bool {
	t := it.s.trie
	p := &it.s.path

	for {
		top := (*p)[len(*p)-1]
		if !t.data[top].leaf() {
			n := t.firstRealChild(top)
			*p = append(*p, n)
			it.s.result = append(it.s.result, t.data[n].label)
			it.s.result = append(it.s.result, t.tails[t.data[n].tail:t.data[n+1].tail]...)
		} else {
			for len(*p) > 1 && t.lastRealInBlock((*p)[len(*p)-2], (*p)[len(*p)-1]) {
				it.popResult((*p)[len(*p)-1])
				*p = (*p)[:len(*p)-1]
			}
			if len(*p) > 1 {
				parent := (*p)[len(*p)-2]
				back := (*p)[len(*p)-1]
				it.popResult(back)
				n, _ := t.nextRealSibling(parent, back) // lastRealInBlock was false, so this always succeeds
				(*p)[len(*p)-1] = n
				it.s.result = append(it.s.result, t.data[n].label)
				it.s.result = append(it.s.result, t.tails[t.data[n].tail:t.data[n+1].tail]...)
			} else {
				*p = (*p)[:0]
			}
		}
		if len(*p) == 0 {
			break
		}
		if t.data[(*p)[len(*p)-1]].match() {
			break
		}
	}

	if len(*p) == 0 {
		it.current = len(t.data) - 1
		return false
	}
	it.current = (*p)[len(*p)-1]
	return true
}

func (it *PredictIterator[S, V]) popResult(id int) {
	data := it.s.trie.data
	trim := 1 + int(data[id+1].tail-data[id].tail)
	it.s.result = it.s.result[:len(it.s.result)-trim]
}

// Key returns the stored key last matched. See the Searcher doc comment
// about buffer reuse.
func (it *PredictIterator[S, V]) Key() []S { return it.s.result }

// Value returns the value associated with the last matched key.
func (it *PredictIterator[S, V]) Value() V { return it.s.trie.data[it.current].value }

// Pair returns the last matched key/value together.
func (it *PredictIterator[S, V]) Pair() KV[S, V] {
	return KV[S, V]{Key: it.Key(), Value: it.Value()}
}

// Node returns the virtual node last matched.
func (it *PredictIterator[S, V]) Node() VirtualNode[S, V] { return physical(it.s.trie, it.current) }
