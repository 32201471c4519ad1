// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package k2tree

import "errors"

// Sentinel errors returned by the caller-facing operations. Conditions
// the tree's own invariants should rule out (an invalid descent, a
// leaf lookup against a clear stem bit) are signalled by a
// panic("k2tree: ...") instead, since they are bugs rather than bad
// input.
var (
	// ErrInvalidK is returned by New when k < 2.
	ErrInvalidK = errors.New("k2tree: k must be >= 2")

	// ErrOutOfRange is returned by SetBit when x or y is not in
	// [0, matrix_width).
	ErrOutOfRange = errors.New("k2tree: coordinate out of range")
)
