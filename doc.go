// Copyright 2023 Peter Hebert. Licensed under the MIT license.

// Package sftrie provides an immutable, succinct, read-optimized ordered
// string index over a static set of keys, or an ordered mapping from keys
// to fixed-size values. It is a Go port of the sftrie trie family
// (original/compact/fast), preserving the flat node-array representation,
// the single-pass recursive build, optional tail compression, and the
// optional alphabet lookup-table fan-out.
//
// Keys are sequences of a totally ordered, fixed-width symbol type
// (uint8, uint16, or uint32). Build a set from sorted keys with [NewSet],
// or a map from sorted key/value pairs with [NewMap]. Once built, a trie
// supports four query families: membership ([Trie.Exists]), value lookup
// ([Trie.Find].Value, map only), common-prefix search, and predictive
// (subtree) search. Concurrent queries against the same [*Trie] are safe
// as long as each caller uses its own [Searcher]; see [Trie.Searcher].
//
// Three variants trade memory for query speed, selected via [Config] at
// construction time:
//
//   - [Original]: no tail compression, no lookup table; simplest, largest.
//   - [Compact]: single-child chains are collapsed into a side array.
//   - [Fast]: adds an alphabet-sized lookup table at high fan-out nodes
//     for O(1) child resolution, at the cost of extra node slots.
//
// A trie can be serialized with [Trie.Save] and restored with [Load]; see
// the file format description on [Trie.Save].
package sftrie
