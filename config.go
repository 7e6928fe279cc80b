package sftrie

// Variant selects the trie construction strategy. See the package doc
// comment for a summary of the tradeoffs.
type Variant uint8

const (
	// Original collapses nothing: one trie edge per symbol, no tail
	// array, no lookup table. Simplest, largest node count.
	Original Variant = iota
	// Compact collapses single-child chains (no branching siblings) into
	// a side array of tail symbols, shrinking the node array.
	Compact
	// Fast adds Compact's tail compression plus an alphabet-sized lookup
	// table at qualifying nodes, trading node-array size for O(1) child
	// resolution.
	Fast
)

func (v Variant) String() string {
	switch v {
	case Original:
		return "original"
	case Compact:
		return "compact"
	case Fast:
		return "fast"
	default:
		return "unknown"
	}
}

// LUTMode controls which nodes are eligible for alphabet lookup-table
// fan-out in the [Fast] variant. It has no effect for [Original] or
// [Compact].
type LUTMode uint8

const (
	// LUTModeNone never expands a sibling block into a lookup table.
	LUTModeNone LUTMode = iota
	// LUTModeRootOnly expands only the root's child block, when its fan-out
	// meets MinLUTChildren.
	LUTModeRootOnly
	// LUTModeAdaptive expands any node's child block that meets
	// MinLUTChildren, regardless of depth. This also covers what the
	// C++ original calls the "decompaction" variant: there is no separate
	// Go variant for it, per the Open Question resolution in DESIGN.md.
	LUTModeAdaptive
)

func (m LUTMode) String() string {
	switch m {
	case LUTModeNone:
		return "none"
	case LUTModeRootOnly:
		return "root_only"
	case LUTModeAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// defaultMinBinarySearch is the empirically tuned threshold (spec.md §9)
// below which linear scan over a sibling block beats binary search on
// modern caches.
const defaultMinBinarySearch = 42

// defaultMinLUTChildren is a conservative default fan-out threshold for
// lookup-table expansion: below this, a full alphabet-sized block wastes
// more memory than it saves in descent time.
const defaultMinLUTChildren = 8

// Config holds the construction-time parameters of a [Trie]. Build one
// with functional [Option] values passed to [NewSet] / [NewMap]; the zero
// value (via no options) selects [Original] with the package defaults.
type Config[S Symbol] struct {
	Variant         Variant
	LUTMode         LUTMode
	MinBinarySearch int
	MinLUTChildren  int
	TwoPass         bool
}

func defaultConfig[S Symbol]() Config[S] {
	return Config[S]{
		Variant:         Original,
		LUTMode:         LUTModeRootOnly,
		MinBinarySearch: defaultMinBinarySearch,
		MinLUTChildren:  defaultMinLUTChildren,
		TwoPass:         true,
	}
}

// Option configures a [Config] passed to [NewSet] or [NewMap].
type Option[S Symbol] func(*Config[S])

// WithVariant selects the construction variant ([Original], [Compact], or
// [Fast]).
func WithVariant[S Symbol](v Variant) Option[S] {
	return func(c *Config[S]) { c.Variant = v }
}

// WithLUTMode selects the lookup-table expansion policy for the [Fast]
// variant. It is ignored by [Original] and [Compact].
func WithLUTMode[S Symbol](m LUTMode) Option[S] {
	return func(c *Config[S]) { c.LUTMode = m }
}

// WithMinBinarySearch sets the sibling-block-width threshold above which
// exact-match descent uses binary search instead of a linear scan.
// Defaults to 42.
func WithMinBinarySearch[S Symbol](n int) Option[S] {
	return func(c *Config[S]) { c.MinBinarySearch = n }
}

// WithMinLUTChildren sets the fan-out threshold at or above which a
// sibling block becomes eligible for lookup-table expansion under [Fast]. Has no
// effect unless the variant is [Fast] and LUTMode is not [LUTModeNone].
func WithMinLUTChildren[S Symbol](n int) Option[S] {
	return func(c *Config[S]) { c.MinLUTChildren = n }
}

// WithTwoPass controls whether construction (of any variant) runs a
// structural dry run first to pre-size the node array, reducing slice
// growth during the real build. The dry run models neither tail
// compression nor lookup-table expansion, so the size is an estimate, and
// the tail array is not pre-sized. Defaults to true; disabling it produces
// an identical trie, just via repeated reallocation.
func WithTwoPass[S Symbol](enabled bool) Option[S] {
	return func(c *Config[S]) { c.TwoPass = enabled }
}
