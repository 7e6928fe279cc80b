package sftrie

import (
	"errors"
	"fmt"
)

// These are the sentinel errors of this package. [Load] and [LoadFile]
// return a *FormatError that wraps [ErrInvalidFormat]; use [errors.Is] or
// [errors.As] to check for the underlying error type.
var (
	// ErrInvalidFormat is returned by [Load] and [LoadFile] when the
	// serialized header does not match the statically parameterized
	// variant being loaded into. Use [errors.As] with *FormatError to
	// find the specific field that failed validation.
	ErrInvalidFormat = errors.New("sftrie: invalid format")

	// ErrUnsupportedVariant is returned when a [Config] names a Variant
	// or LUTMode this build does not recognize.
	ErrUnsupportedVariant = errors.New("sftrie: unsupported variant")

	// ErrNotFound names the absence of a stored key. No function in this
	// package returns it: [Trie.Update], [Trie.UpdateKey] and [Trie.Index]
	// report absence by returning false, and queries signal it in-band via
	// [VirtualNode.Valid] / [VirtualNode.Match], a false [Trie.Exists], or
	// an empty iterator.
	ErrNotFound = errors.New("sftrie: key not found")
)

// FormatError describes a single header field that failed validation
// while loading a serialized trie. It wraps [ErrInvalidFormat].
type FormatError struct {
	Field string
	Want  any
	Got   any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("sftrie: invalid format: field %s: want %v, got %v", e.Field, e.Want, e.Got)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidFormat
}

func formatErrorf(field string, want, got any) error {
	return &FormatError{Field: field, Want: want, Got: got}
}
