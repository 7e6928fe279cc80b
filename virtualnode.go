package sftrie

// VirtualNode addresses a position in the trie as (physical node id,
// offset into that node's compressed tail), per spec.md's virtual-node
// model and grounded directly on map_compact.hpp's virtual_node /
// map_fast.hpp's equivalent. When depth equals the node's full tail
// length the position sits exactly on the physical node — only then do
// Match and Leaf reflect that node's stored state; at any shallower depth
// they report false, since the trie has not actually reached a branch
// point yet. Value reads the node's value at any depth and is meaningful
// only when Match holds.
type VirtualNode[S Symbol, V any] struct {
	trie  *Trie[S, V]
	id    int
	depth int
}

// physical returns a VirtualNode addressing node id's own position (its
// full tail consumed), matching map_compact.hpp's single-argument
// virtual_node constructor.
func physical[S Symbol, V any](t *Trie[S, V], id int) VirtualNode[S, V] {
	return VirtualNode[S, V]{trie: t, id: id, depth: tailLen(t.data, id)}
}

func (n VirtualNode[S, V]) descend(q []S) VirtualNode[S, V] {
	return n.trie.descend(q)
}

// Valid reports whether n still addresses a real position; false only
// for the sentinel returned by a failed descent.
func (n VirtualNode[S, V]) Valid() bool {
	return n.id < len(n.trie.data)-1
}

// Physical reports whether n sits exactly on its node (tail fully
// consumed), as opposed to partway through a compressed tail.
func (n VirtualNode[S, V]) Physical() bool {
	return n.Valid() && n.depth == tailLen(n.trie.data, n.id)
}

// Label returns the symbol on the edge leading to n: the node's own
// label when depth is 0, or the tail symbol at position depth-1
// otherwise.
func (n VirtualNode[S, V]) Label() S {
	if n.depth == 0 {
		return n.trie.data[n.id].label
	}
	return n.trie.tails[n.trie.data[n.id].tail+uint32(n.depth-1)]
}

// Match reports whether n addresses a stored key.
func (n VirtualNode[S, V]) Match() bool {
	return n.Valid() && n.trie.data[n.id].match() && n.Physical()
}

// Leaf reports whether n addresses a node with no children.
func (n VirtualNode[S, V]) Leaf() bool {
	return n.Valid() && n.trie.data[n.id].leaf() && n.Physical()
}

// Value returns the value associated with n. Meaningful only when
// [VirtualNode.Match] is true.
func (n VirtualNode[S, V]) Value() V {
	return n.trie.data[n.id].value
}

// Children returns an iterator over n's children: a single virtual
// child one tail position deeper when n is not yet physical, or the
// node's real sibling block once it is.
func (n VirtualNode[S, V]) Children() ChildIterator[S, V] {
	if !n.Physical() {
		return ChildIterator[S, V]{cur: VirtualNode[S, V]{trie: n.trie, id: n.id, depth: n.depth + 1}, last: n.id + 1, single: true}
	}
	if n.trie.data[n.id].leaf() {
		end := len(n.trie.data) - 1
		return ChildIterator[S, V]{cur: VirtualNode[S, V]{trie: n.trie, id: end, depth: 0}, last: end}
	}
	begin := n.trie.data[n.id].next()
	end := n.trie.data[begin].next()
	first := n.trie.firstRealChild(n.id)
	return ChildIterator[S, V]{cur: VirtualNode[S, V]{trie: n.trie, id: first, depth: 0}, begin: begin, last: end}
}

// ChildIterator walks the physical siblings (or, mid-tail, the single
// forced continuation) of some VirtualNode. Use like:
//
//	for c := n.Children(); c.Valid(); c.Next() {
//	    use(c.Node())
//	}
type ChildIterator[S Symbol, V any] struct {
	cur    VirtualNode[S, V]
	begin  int
	last   int
	single bool
	done   bool
}

// Valid reports whether the iterator currently addresses a child.
func (c *ChildIterator[S, V]) Valid() bool {
	if c.single {
		return !c.done
	}
	return c.cur.id < c.last
}

// Node returns the child currently addressed.
func (c *ChildIterator[S, V]) Node() VirtualNode[S, V] { return c.cur }

// Next advances to the next sibling, skipping any lookup-table filler
// slots along the way (spec.md §4.5).
func (c *ChildIterator[S, V]) Next() {
	if c.single {
		c.done = true
		return
	}
	t := c.cur.trie
	n := c.cur.id + 1
	if t.isLUTBlock(c.begin, c.last) {
		for n < c.last && !t.lutReal(c.begin, n) {
			n++
		}
	}
	if n >= c.last {
		c.cur = VirtualNode[S, V]{trie: t, id: n, depth: 0}
		return
	}
	c.cur = VirtualNode[S, V]{trie: t, id: n, depth: 0}
}
