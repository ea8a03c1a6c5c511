// Package jsondelta provides surgical, single-pass mutation primitives over
// tree-structured JSON-like documents: shallow and deep merges, nested-path
// writes, array-element CRUD keyed by field matches, and a diff/apply delta
// pair with a round-trip guarantee.
//
// Every operation is pure: inputs are never mutated, outputs are new trees
// that share every untouched subtree with their inputs. A localized edit of a
// large document therefore allocates only along the path it changes.
//
// # Paths
//
// Operations address sub-values with a compact path string:
//
//	path    := segment ("." segment | index)*
//	segment := identifier index*
//	index   := "[" integer "]"
//
// An identifier is any nonempty run of characters other than '.', '[' and
// ']'. Indices attach directly to a segment ("orders[0].status") and may
// stack ("matrix[1][2]"). The empty string addresses the document root.
// Malformed paths yield a *ParseError carrying the offending byte offset.
//
// # Depth
//
// Traversal and recursion depth is bounded (default 1000, configurable per
// call with WithMaxDepth); adversarially deep input produces a deterministic
// ErrDepthExceeded instead of unbounded recursion.
package jsondelta
