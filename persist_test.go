package sftrie

import (
	"bytes"
	"errors"
	"testing"
)

func TestSaveLoadRoundTripSet(t *testing.T) {
	words := []string{"a", "an", "and", "ant", "antler", "bat", "batting", "battle"}
	for _, v := range allVariants {
		tr, err := NewSet[byte](toKeys(words...), WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewSet: %v", v, err)
		}
		var buf bytes.Buffer
		if err := tr.Save(&buf); err != nil {
			t.Fatalf("%s: Save: %v", v, err)
		}
		got, err := Load[byte, struct{}](bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("%s: Load: %v", v, err)
		}
		if got.Size() != tr.Size() {
			t.Errorf("%s: Size() after reload = %d, want %d", v, got.Size(), tr.Size())
		}
		if got.Variant() != v {
			t.Errorf("%s: Variant() after reload = %s, want %s", v, got.Variant(), v)
		}
		for _, w := range words {
			if !got.Exists([]byte(w)) {
				t.Errorf("%s: reloaded trie missing key %q", v, w)
			}
		}
		if got.Exists([]byte("zzz")) {
			t.Errorf("%s: reloaded trie reports absent key as present", v)
		}
	}
}

func TestSaveLoadRoundTripMap(t *testing.T) {
	pairs := []KV[byte, int]{
		{Key: []byte("a"), Value: 10},
		{Key: []byte("an"), Value: 20},
		{Key: []byte("and"), Value: 30},
		{Key: []byte("ant"), Value: 40},
	}
	for _, v := range allVariants {
		tr, err := NewMap[byte, int](pairs, WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewMap: %v", v, err)
		}
		var buf bytes.Buffer
		if err := tr.Save(&buf); err != nil {
			t.Fatalf("%s: Save: %v", v, err)
		}
		got, err := Load[byte, int](bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("%s: Load: %v", v, err)
		}
		for _, p := range pairs {
			val, ok := got.Index(p.Key)
			if !ok {
				t.Fatalf("%s: Index(%q) after reload: not found", v, p.Key)
			}
			if *val != p.Value {
				t.Errorf("%s: Index(%q) after reload = %d, want %d", v, p.Key, *val, p.Value)
			}
		}
	}
}

func TestSaveLoadEmptyTrie(t *testing.T) {
	for _, v := range allVariants {
		tr, err := NewSet[byte](nil, WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewSet(nil): %v", v, err)
		}
		var buf bytes.Buffer
		if err := tr.Save(&buf); err != nil {
			t.Fatalf("%s: Save: %v", v, err)
		}
		got, err := Load[byte, struct{}](bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("%s: Load: %v", v, err)
		}
		if got.Size() != 0 {
			t.Errorf("%s: Size() after reload = %d, want 0", v, got.Size())
		}
	}
}

func TestSaveLoadLUTTrie(t *testing.T) {
	words := make([]string, 0, 26)
	for c := byte('a'); c <= 'z'; c++ {
		words = append(words, string(c))
	}
	tr, err := NewSet[byte](toKeys(words...), WithVariant[byte](Fast))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	var buf bytes.Buffer
	if err := tr.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load[byte, struct{}](bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, w := range words {
		if !got.Exists([]byte(w)) {
			t.Errorf("Exists(%q) after reload = false, want true", w)
		}
	}
	wantReal, wantTotal := tr.LUTOccupancy()
	gotReal, gotTotal := got.LUTOccupancy()
	if gotReal != wantReal || gotTotal != wantTotal {
		t.Errorf("LUTOccupancy after reload = (%d, %d), want (%d, %d)", gotReal, gotTotal, wantReal, wantTotal)
	}
}

func TestLoadBadSignature(t *testing.T) {
	tr, err := NewSet[byte](toKeys("a"))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	var buf bytes.Buffer
	if err := tr.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw := buf.Bytes()
	raw[0] = 'X'

	_, err = Load[byte, struct{}](bytes.NewReader(raw))
	if err == nil {
		t.Fatalf("expected error for corrupted signature")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %T: %v", err, err)
	}
	if fe.Field != "signature" {
		t.Errorf("FormatError.Field = %q, want %q", fe.Field, "signature")
	}
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("errors.Is(err, ErrInvalidFormat) = false, want true")
	}
}

func TestLoadWrongContainerType(t *testing.T) {
	tr, err := NewSet[byte](toKeys("a", "b"))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	var buf bytes.Buffer
	if err := tr.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = Load[byte, int](bytes.NewReader(buf.Bytes()))
	if err == nil {
		t.Fatalf("expected error loading a set file as a map")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %T: %v", err, err)
	}
	if fe.Field != "container_type" {
		t.Errorf("FormatError.Field = %q, want %q", fe.Field, "container_type")
	}
}

func TestLoadWrongIntegerType(t *testing.T) {
	tr, err := NewSet[uint16]([][]uint16{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	var buf bytes.Buffer
	if err := tr.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = Load[byte, struct{}](bytes.NewReader(buf.Bytes()))
	if err == nil {
		t.Fatalf("expected error loading a uint16 trie as byte")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %T: %v", err, err)
	}
	if fe.Field != "integer_type" {
		t.Errorf("FormatError.Field = %q, want %q", fe.Field, "integer_type")
	}
}
