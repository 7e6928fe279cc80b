package fixture

import "testing"

const (
	testKeys        = "testdata/keys.txt"
	testValues      = "testdata/values.txt"
	testDoesNotExist = "testdata/::does_not_exist::.txt"
	testFirstCase   = "keys.txt#1"
)

func TestReaderWithValues(t *testing.T) {
	r, err := NewReader(testKeys, testValues)
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer r.Close()

	p, err := r.Next()
	if p == nil || err != nil {
		t.Fatalf("%s: %v", r.CaseName(), err)
	}
	if string(p.Key) != "apple" || p.Value != 1 {
		t.Fatalf("first pair: got %q/%d, want apple/1", p.Key, p.Value)
	}
	if r.Line() != 1 {
		t.Fatalf("Line(): got %d, want 1", r.Line())
	}
	if r.CaseName() != testFirstCase {
		t.Fatalf("CaseName(): got %s, want %s", r.CaseName(), testFirstCase)
	}

	for {
		p, err = r.Next()
		if p == nil && err == nil {
			break
		}
		if err != nil {
			t.Fatalf("%s: %v", r.CaseName(), err)
		}
	}
	p, err = r.Next()
	if p != nil || err != nil {
		t.Fatalf("Next() did not return (nil, nil) after EOF")
	}
	r.Close() // ok to call multiple times
}

func TestReaderKeysOnly(t *testing.T) {
	r, err := NewReader(testKeys, "")
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer r.Close()

	pairs, err := ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(pairs) != 7 {
		t.Fatalf("got %d pairs, want 7", len(pairs))
	}
	for _, p := range pairs {
		if p.Value != 0 {
			t.Fatalf("keys-only pair got non-zero value %d", p.Value)
		}
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(testDoesNotExist, testValues); err == nil {
		t.Fatalf("expected error loading non-existent keys file")
	}
	if _, err := NewReader(testKeys, testDoesNotExist); err == nil {
		t.Fatalf("expected error loading non-existent values file")
	}
}

func TestReaderBadValue(t *testing.T) {
	r, err := NewReader(testKeys, testKeys) // keys file is not all-numeric
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer r.Close()

	_, err = r.Next()
	if err == nil {
		t.Fatalf("expected error parsing non-numeric value")
	}
}
