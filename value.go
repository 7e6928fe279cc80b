package sftrie

// Update overwrites the value at n, grounded on map_compact.hpp's
// update(node_type,value). Returns false without modifying the trie when
// n does not address a stored key.
func (t *Trie[S, V]) Update(n VirtualNode[S, V], v V) bool {
	if !n.Match() {
		return false
	}
	t.data[n.id].value = v
	return true
}

// UpdateKey overwrites the value stored under key, returning false when
// key is not present.
func (t *Trie[S, V]) UpdateKey(key []S, v V) bool {
	return t.Update(t.descend(key), v)
}

// Index returns a pointer to the value stored under key, mirroring
// map_compact.hpp's operator[] without that operator's auto-vivifying
// behavior (the trie is immutable after construction; there is nothing
// to insert into). The second return value reports whether key was
// found; the pointer is nil when it was not.
func (t *Trie[S, V]) Index(key []S) (*V, bool) {
	n := t.descend(key)
	if !n.Match() {
		return nil, false
	}
	return &t.data[n.id].value, true
}
