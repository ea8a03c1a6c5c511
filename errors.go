package jsondelta

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every failure returned by this package unwraps to
// exactly one of these, so callers can dispatch with errors.Is without
// inspecting messages.
var (
	ErrParse           = errors.New("jsondelta: invalid path")
	ErrTypeMismatch    = errors.New("jsondelta: type mismatch")
	ErrIndexOutOfRange = errors.New("jsondelta: index out of range")
	ErrDepthExceeded   = errors.New("jsondelta: depth exceeded")
	ErrInvalidSortKey  = errors.New("jsondelta: invalid sort key")
)

// ParseError reports a path string that violates the grammar. Offset is the
// byte position of the offending character within the input.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsondelta: invalid path at offset %d: %s", e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// TypeMismatchError reports a traversal step or comparison that found a
// Value kind other than the one required.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("jsondelta: type mismatch: want %s, got %s", e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// IndexOutOfRangeError reports a write-mode index segment at or beyond the
// current array length.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("jsondelta: index %d out of range for array of length %d", e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// DepthExceededError reports traversal or recursion past the configured
// depth limit.
type DepthExceededError struct {
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("jsondelta: depth exceeded: limit %d", e.Limit)
}

func (e *DepthExceededError) Unwrap() error { return ErrDepthExceeded }

// InvalidSortKeyError reports an InsertWhere call whose sort-key values are
// of incomparable kinds, or whose new element lacks the sort key entirely.
type InvalidSortKeyError struct {
	Key string
	Msg string
}

func (e *InvalidSortKeyError) Error() string {
	return fmt.Sprintf("jsondelta: invalid sort key %q: %s", e.Key, e.Msg)
}

func (e *InvalidSortKeyError) Unwrap() error { return ErrInvalidSortKey }
