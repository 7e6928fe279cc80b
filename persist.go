package sftrie

import (
	"encoding/binary"
	"io"
	"os"
	"unsafe"
)

// File format (C8), grounded on file_header.hpp/constants.hpp and the
// save()/load() pair in map_compact.hpp: a fixed 32-byte header followed
// by the node array and the tail array, all little-endian. Each node is
// written field by field (packed word, label, tail offset, value; an int
// value is written as 8 bytes); the tail array is a flat dump of its
// symbols. Neither array needs framing beyond the counts the header
// carries.
const (
	fileSignature0, fileSignature1, fileSignature2, fileSignature3 = 'S', 'F', 'T', 'I'

	currentMajorVersion uint8 = 0
	currentMinorVersion uint8 = 0

	containerTypeSet uint8 = 0
	containerTypeMap uint8 = 1

	indexTypeBasic  uint8 = 0
	indexTypeTail   uint8 = 1
	indexTypeDecomp uint8 = 2

	textCharsetSystemDefault uint8 = 0
	textEncodingSystemDefault uint8 = 0

	integerTypeUint8  uint8 = 0
	integerTypeUint16 uint8 = 2
	integerTypeUint32 uint8 = 4

	valueTypeOpaque uint8 = 0xff
)

type fileHeader struct {
	Signature [4]byte

	HeaderSize   uint16
	MajorVersion uint8
	MinorVersion uint8

	ContainerType uint8
	IndexType     uint8
	TextCharset   uint8
	TextEncoding  uint8

	IntegerType uint8
	NodeSize    uint8
	ValueSize   uint8
	ValueType   uint8

	NodeCount  uint64
	TailLength uint64
}

func indexTypeOf(v Variant) uint8 {
	switch v {
	case Compact:
		return indexTypeTail
	case Fast:
		return indexTypeDecomp
	default:
		return indexTypeBasic
	}
}

func integerTypeOf[S Symbol]() uint8 {
	var s S
	switch unsafe.Sizeof(s) {
	case 2:
		return integerTypeUint16
	case 4:
		return integerTypeUint32
	default:
		return integerTypeUint8
	}
}

// isSetValue reports whether V is the zero-size sentinel [NewSet] uses,
// distinguishing a set from a map the same way container_type does in
// the C++ header.
func isSetValue[V any]() bool {
	var v V
	return unsafe.Sizeof(v) == 0
}

// Save writes t to w: a 32-byte little-endian header (signature, version,
// container, variant, symbol width, node and value sizes, node count and
// tail length), then every node field by field, then the tail symbols.
func (t *Trie[S, V]) Save(w io.Writer) error {
	containerType := containerTypeMap
	if isSetValue[V]() {
		containerType = containerTypeSet
	}

	header := fileHeader{
		Signature:     [4]byte{fileSignature0, fileSignature1, fileSignature2, fileSignature3},
		HeaderSize:    uint16(unsafe.Sizeof(fileHeader{})),
		MajorVersion:  currentMajorVersion,
		MinorVersion:  currentMinorVersion,
		ContainerType: containerType,
		IndexType:     indexTypeOf(t.cfg.Variant),
		TextCharset:   textCharsetSystemDefault,
		TextEncoding:  textEncodingSystemDefault,
		IntegerType:   integerTypeOf[S](),
		NodeSize:      uint8(t.NodeSize()),
		ValueSize:     uint8(unsafe.Sizeof(*new(V))),
		ValueType:     valueTypeOpaque,
		NodeCount:     uint64(len(t.data)),
		TailLength:    uint64(len(t.tails)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	for i := range t.data {
		if err := writeNode(w, &t.data[i]); err != nil {
			return err
		}
	}
	if len(t.tails) > 0 {
		if err := binary.Write(w, binary.LittleEndian, t.tails); err != nil {
			return err
		}
	}
	return nil
}

// SaveFile writes t to the file at path, creating or truncating it.
func (t *Trie[S, V]) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Save(f)
}

// writeNode writes a single node's fields in a fixed, platform-independent
// order — not a raw struct dump, since node's Go field order and padding
// are not a stable wire format on their own.
func writeNode[S Symbol, V any](w io.Writer, n *node[S, V]) error {
	if err := binary.Write(w, binary.LittleEndian, n.packed); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, n.label); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, n.tail); err != nil {
		return err
	}
	if v, ok := any(n.value).(int); ok {
		return binary.Write(w, binary.LittleEndian, int64(v))
	}
	return binary.Write(w, binary.LittleEndian, n.value)
}

func readNode[S Symbol, V any](r io.Reader, n *node[S, V]) error {
	if err := binary.Read(r, binary.LittleEndian, &n.packed); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &n.label); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &n.tail); err != nil {
		return err
	}
	if p, ok := any(&n.value).(*int); ok {
		var v int64
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return err
		}
		*p = int(v)
		return nil
	}
	return binary.Read(r, binary.LittleEndian, &n.value)
}

// Load reads a trie previously written by [Trie.Save]. It returns a
// *FormatError (wrapping [ErrInvalidFormat]) naming the first header
// field that fails validation, matching the C++ original's load(), which
// throws a descriptive std::runtime_error on any such mismatch.
func Load[S Symbol, V any](r io.Reader) (*Trie[S, V], error) {
	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}

	wantSig := [4]byte{fileSignature0, fileSignature1, fileSignature2, fileSignature3}
	if header.Signature != wantSig {
		return nil, formatErrorf("signature", wantSig, header.Signature)
	}
	if header.MajorVersion != currentMajorVersion {
		return nil, formatErrorf("major_version", currentMajorVersion, header.MajorVersion)
	}

	wantContainer := containerTypeMap
	if isSetValue[V]() {
		wantContainer = containerTypeSet
	}
	if header.ContainerType != wantContainer {
		return nil, formatErrorf("container_type", wantContainer, header.ContainerType)
	}

	wantInteger := integerTypeOf[S]()
	if header.IntegerType != wantInteger {
		return nil, formatErrorf("integer_type", wantInteger, header.IntegerType)
	}

	var zero node[S, V]
	wantNodeSize := uint8(unsafe.Sizeof(zero))
	if header.NodeSize != wantNodeSize {
		return nil, formatErrorf("node_size", wantNodeSize, header.NodeSize)
	}

	wantValueSize := uint8(unsafe.Sizeof(*new(V)))
	if header.ValueSize != wantValueSize {
		return nil, formatErrorf("value_size", wantValueSize, header.ValueSize)
	}

	var variant Variant
	switch header.IndexType {
	case indexTypeBasic:
		variant = Original
	case indexTypeTail:
		variant = Compact
	case indexTypeDecomp:
		variant = Fast
	default:
		return nil, formatErrorf("index_type", "basic|tail|decomp", header.IndexType)
	}

	t := &Trie[S, V]{cfg: defaultConfig[S]()}
	t.cfg.Variant = variant

	t.data = make([]node[S, V], header.NodeCount)
	for i := range t.data {
		if err := readNode(r, &t.data[i]); err != nil {
			return nil, err
		}
	}

	if header.TailLength > 0 {
		t.tails = make([]S, header.TailLength)
		if err := binary.Read(r, binary.LittleEndian, t.tails); err != nil {
			return nil, err
		}
	}

	if variant == Fast {
		t.rebuildLUTState()
	}

	t.numKeys = t.countMatches()
	return t, nil
}

// LoadFile reads a trie previously written by [Trie.SaveFile].
func LoadFile[S Symbol, V any](path string) (*Trie[S, V], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load[S, V](f)
}

// rebuildLUTState recovers the alphabet range and lookup-table occupancy
// bitmap from a loaded Fast-variant trie, neither of which is persisted
// (both are re-derivable from the node array, so persisting them would be
// redundant — see DESIGN.md).
func (t *Trie[S, V]) rebuildLUTState() {
	first := true
	for i := range t.data {
		if i == 0 || i == len(t.data)-1 {
			continue // the root and the sentinel carry no label
		}
		c := t.data[i].label
		if first {
			t.alphabetLo, t.alphabetHi = c, c
			first = false
			continue
		}
		if c < t.alphabetLo {
			t.alphabetLo = c
		}
		if c > t.alphabetHi {
			t.alphabetHi = c
		}
	}
	if !first {
		t.alphabetSize = int(int64(t.alphabetHi)-int64(t.alphabetLo)) + 1
	} else {
		t.alphabetSize = 1
	}

	for id := 0; id < len(t.data)-1; id++ {
		begin := t.data[id].next()
		if begin <= id || begin >= len(t.data)-1 {
			continue
		}
		end := t.data[begin].next()
		if end-begin != t.alphabetSize {
			continue
		}
		lo := int64(t.alphabetLo)
		for slot := begin; slot < end; slot++ {
			if int64(t.data[slot].label) == lo+int64(slot-begin) {
				t.lutSlots.MarkReal(slot)
			}
		}
	}
}

// countMatches recovers Size() for a loaded trie by scanning for match
// flags, since the key count itself is not persisted separately from the
// structure that already encodes it.
func (t *Trie[S, V]) countMatches() int {
	n := 0
	for i := range t.data {
		if i < len(t.data)-1 && t.data[i].match() {
			n++
		}
	}
	return n
}
