// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package graph

import "errors"

// Sentinel errors returned by Graph's caller-facing operations. As in
// k2tree, these signal bad caller input (an id that was never
// inserted), not a bookkeeping bug; bookkeeping bugs in the underlying
// trees still panic per k2tree's own convention.
var (
	// ErrUnknownSubject is returned by Remove and Get when the subject
	// or object has never been seen by Insert.
	ErrUnknownSubject = errors.New("k2tree/graph: unknown subject or object")

	// ErrUnknownPredicate is returned by Remove and Get when the
	// predicate has never been seen by Insert.
	ErrUnknownPredicate = errors.New("k2tree/graph: unknown predicate")
)
