// Command sftrie-bench builds, validates, and benchmarks a trie from a
// sorted key corpus. Grounded on gen/gen.go's style: a plain multi-step
// main with fatal-on-error helpers, rather than a Cobra/urfave CLI
// framework (spec.md scopes CLI tooling out of the core library, and the
// teacher's own generator script is itself flag-framework-free).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tuem/go-sftrie"
	"github.com/tuem/go-sftrie/internal/fixture"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		runBuild(os.Args[2:])
	case "validate":
		runValidate(os.Args[2:])
	case "bench":
		runBench(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sftrie-bench <build|validate|bench> [flags]")
}

func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	keysPath := fs.String("keys", "", "path to sorted key corpus, one key per line")
	valuesPath := fs.String("values", "", "path to matching integer values, one per line (optional)")
	variant := fs.String("variant", "fast", "original|compact|fast")
	outPath := fs.String("out", "", "path to write the serialized trie (optional)")
	fs.Parse(args)

	onErrFatalf(requireFlag(*keysPath, "keys"), "build")

	pairs := loadPairs(*keysPath, *valuesPath)
	t := buildTrie(pairs, *variant)
	fmt.Printf("built %s trie: %d keys, %d nodes, %d tail symbols, %d bytes\n",
		t.Variant(), t.Size(), t.TrieSize(), len(t.RawLabels()), t.TotalSpace())

	if *outPath != "" {
		onErrFatalf(t.SaveFile(*outPath), "writing "+*outPath)
		fmt.Printf("wrote %s\n", *outPath)
	}
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	keysPath := fs.String("keys", "", "path to sorted key corpus, one key per line")
	valuesPath := fs.String("values", "", "path to matching integer values, one per line (optional)")
	variant := fs.String("variant", "fast", "original|compact|fast")
	fs.Parse(args)

	onErrFatalf(requireFlag(*keysPath, "keys"), "validate")

	pairs := loadPairs(*keysPath, *valuesPath)
	assert(isSortedBytes(pairs), "input corpus %s is not sorted", *keysPath)

	t := buildTrie(pairs, *variant)
	for i, p := range pairs {
		if !t.Exists(p.Key) {
			fmt.Fprintf(os.Stderr, "missing key at line %d: %q\n", i+1, p.Key)
			os.Exit(1)
		}
		if *valuesPath != "" {
			v, ok := t.Index(p.Key)
			assert(ok && *v == p.Value, "value mismatch for %q: got %v, want %d", p.Key, v, p.Value)
		}
	}
	fmt.Printf("validated %d keys against a %s trie: OK\n", len(pairs), t.Variant())
}

func runBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	keysPath := fs.String("keys", "", "path to sorted key corpus, one key per line")
	variant := fs.String("variant", "fast", "original|compact|fast")
	repeat := fs.Int("repeat", 1, "number of lookup passes over the corpus")
	fs.Parse(args)

	onErrFatalf(requireFlag(*keysPath, "keys"), "bench")

	pairs := loadPairs(*keysPath, "")

	buildStart := time.Now()
	t := buildTrie(pairs, *variant)
	buildElapsed := time.Since(buildStart)

	lookupStart := time.Now()
	found := 0
	for i := 0; i < *repeat; i++ {
		for _, p := range pairs {
			if t.Exists(p.Key) {
				found++
			}
		}
	}
	lookupElapsed := time.Since(lookupStart)

	lookups := len(pairs) * *repeat
	fmt.Printf("variant=%s keys=%d nodes=%d bytes=%d build=%s lookups=%d found=%d lookup_total=%s lookup_avg=%s\n",
		t.Variant(), t.Size(), t.TrieSize(), t.TotalSpace(), buildElapsed,
		lookups, found, lookupElapsed, lookupElapsed/time.Duration(max(lookups, 1)))
}

func loadPairs(keysPath, valuesPath string) []sftrie.KV[byte, int] {
	r, err := fixture.NewReader(keysPath, valuesPath)
	onErrFatalf(err, "opening corpus")
	defer r.Close()

	raw, err := fixture.ReadAll(r)
	onErrFatalf(err, "reading corpus")

	pairs := make([]sftrie.KV[byte, int], len(raw))
	for i, p := range raw {
		pairs[i] = sftrie.KV[byte, int]{Key: p.Key, Value: p.Value}
	}
	return pairs
}

func buildTrie(pairs []sftrie.KV[byte, int], variant string) *sftrie.Trie[byte, int] {
	v, err := parseVariant(variant)
	onErrFatalf(err, "parsing -variant")
	t, err := sftrie.NewMap(pairs, sftrie.WithVariant[byte](v))
	onErrFatalf(err, "building trie")
	return t
}

func parseVariant(s string) (sftrie.Variant, error) {
	switch s {
	case "original":
		return sftrie.Original, nil
	case "compact":
		return sftrie.Compact, nil
	case "fast":
		return sftrie.Fast, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

func isSortedBytes(pairs []sftrie.KV[byte, int]) bool {
	for i := 1; i < len(pairs); i++ {
		a, b := pairs[i-1].Key, pairs[i].Key
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		cmp := 0
		for j := 0; j < n && cmp == 0; j++ {
			switch {
			case a[j] < b[j]:
				cmp = -1
			case a[j] > b[j]:
				cmp = 1
			}
		}
		if cmp == 0 {
			cmp = len(a) - len(b)
		}
		if cmp > 0 {
			return false
		}
	}
	return true
}

func requireFlag(v, name string) error {
	if v == "" {
		return fmt.Errorf("-%s is required", name)
	}
	return nil
}

// onErrFatalf prints a message and ends the program if err != nil.
func onErrFatalf(err error, context string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", context, err)
		os.Exit(1)
	}
}

// assert prints a message and ends the program if cond is false.
func assert(cond bool, format string, args ...any) {
	if !cond {
		fmt.Fprint(os.Stderr, "assertion failed: ")
		fmt.Fprintf(os.Stderr, format, args...)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
