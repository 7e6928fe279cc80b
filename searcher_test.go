package sftrie

import (
	"reflect"
	"sort"
	"testing"
)

func collectPrefix(s *Searcher[byte, struct{}], pattern string) []string {
	var got []string
	it := s.Prefix([]byte(pattern))
	for it.Next() {
		got = append(got, string(it.Key()))
	}
	return got
}

func collectPredict(s *Searcher[byte, struct{}], pattern string) []string {
	var got []string
	it := s.Predict([]byte(pattern))
	for it.Next() {
		got = append(got, string(it.Key()))
	}
	return got
}

func TestPrefixIterator(t *testing.T) {
	words := []string{"", "a", "an", "ant", "antler", "any"}
	for _, v := range allVariants {
		tr, err := NewSet[byte](toKeys(words...), WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewSet: %v", v, err)
		}
		s := tr.Searcher()

		got := collectPrefix(s, "antler")
		want := []string{"", "a", "an", "ant", "antler"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: Prefix(%q) = %v, want %v", v, "antler", got, want)
		}

		got = collectPrefix(s, "zzz")
		want = []string{""}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: Prefix(%q) = %v, want %v", v, "zzz", got, want)
		}
	}
}

func TestPrefixIteratorNoEmptyKey(t *testing.T) {
	for _, v := range allVariants {
		tr, err := NewSet[byte](toKeys("ant", "antler"), WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewSet: %v", v, err)
		}
		got := collectPrefix(tr.Searcher(), "antler")
		want := []string{"ant", "antler"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: Prefix(%q) = %v, want %v", v, "antler", got, want)
		}

		if got := collectPrefix(tr.Searcher(), "zzz"); got != nil {
			t.Errorf("%s: Prefix(%q) = %v, want empty", v, "zzz", got)
		}
	}
}

func TestPredictIterator(t *testing.T) {
	words := []string{"ant", "anthem", "antler", "antlers", "any", "bat"}
	for _, v := range allVariants {
		tr, err := NewSet[byte](toKeys(words...), WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewSet: %v", v, err)
		}
		got := collectPredict(tr.Searcher(), "ant")
		sort.Strings(got)
		want := []string{"ant", "anthem", "antler", "antlers"}
		sort.Strings(want)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: Predict(%q) = %v, want %v", v, "ant", got, want)
		}
	}
}

func TestPredictIteratorNoMatches(t *testing.T) {
	for _, v := range allVariants {
		tr, err := NewSet[byte](toKeys("ant", "bat"), WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewSet: %v", v, err)
		}
		if got := collectPredict(tr.Searcher(), "zzz"); got != nil {
			t.Errorf("%s: Predict(%q) = %v, want empty", v, "zzz", got)
		}
	}
}

func TestPredictIteratorWholeTrie(t *testing.T) {
	words := []string{"ant", "bat", "cat"}
	for _, v := range allVariants {
		tr, err := NewSet[byte](toKeys(words...), WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewSet: %v", v, err)
		}
		got := collectPredict(tr.Searcher(), "")
		sort.Strings(got)
		want := append([]string(nil), words...)
		sort.Strings(want)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: Predict(\"\") = %v, want %v", v, got, want)
		}
	}
}

func TestPredictSkipsLUTFillers(t *testing.T) {
	// Same sparse-alphabet setup as TestChildrenSkipsLUTFillers: the
	// root's LUT block has real children at 'a', 'm', 'z' with fillers
	// between them. Predicting from the root must walk past every filler
	// without dereferencing it.
	words := []string{"apple", "mango", "zebra"}
	tr, err := NewSet[byte](toKeys(words...), WithVariant[byte](Fast), WithMinLUTChildren[byte](3))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	got := collectPredict(tr.Searcher(), "")
	want := append([]string(nil), words...)
	sort.Strings(want)
	sort.Strings(got)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Predict(\"\") = %v, want %v", got, want)
	}

	for _, w := range words {
		if got := collectPredict(tr.Searcher(), w[:1]); !reflect.DeepEqual(got, []string{w}) {
			t.Errorf("Predict(%q) = %v, want [%q]", w[:1], got, w)
		}
	}
}

func TestSearcherMapValue(t *testing.T) {
	pairs := []KV[byte, int]{
		{Key: []byte("ant"), Value: 1},
		{Key: []byte("antler"), Value: 2},
	}
	for _, v := range allVariants {
		tr, err := NewMap[byte, int](pairs, WithVariant[byte](v))
		if err != nil {
			t.Fatalf("%s: NewMap: %v", v, err)
		}
		s := tr.Searcher()
		it := s.Prefix([]byte("antler"))
		var values []int
		for it.Next() {
			values = append(values, it.Value())
		}
		if !reflect.DeepEqual(values, []int{1, 2}) {
			t.Errorf("%s: Prefix values = %v, want [1 2]", v, values)
		}
	}
}
