package sftrie

// Symbol is the alphabet of a trie's keys: one code unit, totally ordered
// by its underlying unsigned integer representation, fixed at 8, 16, or
// 32 bits wide. String keys use []byte ([]uint8); wider alphabets (e.g.
// UTF-16 or UTF-32 code units, or any other fixed-width symbol space) use
// []uint16 or []uint32.
type Symbol interface {
	~uint8 | ~uint16 | ~uint32
}

// compareKeys orders two keys lexicographically by symbol, then by length
// (a strict prefix is less than the longer key it prefixes). This is the
// ordering every stored key must already satisfy on input to [NewSet] and
// [NewMap].
func compareKeys[S Symbol](a, b []S) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// isSorted reports whether keys is non-decreasing under compareKeys. It is
// used only by tests (the CLI's "validate" subcommand has its own copy of
// this check): the package itself never checks this precondition at
// construction time (spec: unsorted input is a precondition violation,
// not a detected error).
func isSorted[S Symbol](keys [][]S) bool {
	for i := 1; i < len(keys); i++ {
		if compareKeys(keys[i-1], keys[i]) > 0 {
			return false
		}
	}
	return true
}
