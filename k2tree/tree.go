// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package k2tree implements a K²-tree: a compressed encoding of a
// sparse W×W boolean matrix (W = k^L) as three parallel arrays — a
// bit sequence of internal "stem" blocks, a bit sequence of leaf
// blocks, and an ascending list tying the two together — so that
// whole all-zero quadrants cost nothing to store.
//
// The zero value is not ready to use; construct a Tree with New or
// FromMatrix. A Tree must not be copied by value once it has mutated;
// use Clone.
package k2tree

import (
	"fmt"

	"github.com/sparsemat/k2tree/internal/bitvec"
)

// Tree is a K²-tree over a k^L × k^L boolean matrix.
//
// Tree is safe for concurrent readers (GetBit) provided no writer
// (SetBit) is active concurrently. Callers sharing a Tree across
// goroutines must supply their own single-writer/multiple-reader
// exclusion; Tree has no internal locking ("safe for concurrent
// readers but not for concurrent readers and/or writers").
type Tree struct {
	k           uint
	matrixWidth uint
	layerStarts []uint
	stems       *bitvec.Bits
	stemToLeaf  []uint
	leaves      *bitvec.Bits
}

// New returns the canonical empty tree for branching factor k, sized
// to the minimum non-trivial matrix_width = k³.
func New(k uint) (*Tree, error) {
	if k < 2 {
		return nil, ErrInvalidK
	}
	return &Tree{
		k:           k,
		matrixWidth: k * k * k,
		layerStarts: []uint{0},
		stems:       bitvec.NewSize(k * k),
		leaves:      bitvec.New(),
	}, nil
}

// K returns the tree's fixed branching factor.
func (t *Tree) K() uint {
	return t.k
}

// MatrixWidth returns the side length of the represented matrix.
func (t *Tree) MatrixWidth() uint {
	return t.matrixWidth
}

// IsEmpty reports whether the tree is in the canonical empty state:
// no leaves, no stem_to_leaf entries.
func (t *Tree) IsEmpty() bool {
	return len(t.stemToLeaf) == 0
}

func (t *Tree) blockLen() uint {
	return t.k * t.k
}

// Clone returns a deep copy; mutating the clone never affects t.
func (t *Tree) Clone() *Tree {
	layerStarts := make([]uint, len(t.layerStarts))
	copy(layerStarts, t.layerStarts)

	stemToLeaf := make([]uint, len(t.stemToLeaf))
	copy(stemToLeaf, t.stemToLeaf)

	return &Tree{
		k:           t.k,
		matrixWidth: t.matrixWidth,
		layerStarts: layerStarts,
		stems:       t.stems.Clone(),
		stemToLeaf:  stemToLeaf,
		leaves:      t.leaves.Clone(),
	}
}

// Equal reports whether two trees are identical field-for-field:
// same k, same matrix_width, same layer_starts, same stems,
// same stem_to_leaf, same leaves.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.k != o.k || t.matrixWidth != o.matrixWidth {
		return false
	}
	if len(t.layerStarts) != len(o.layerStarts) {
		return false
	}
	for i := range t.layerStarts {
		if t.layerStarts[i] != o.layerStarts[i] {
			return false
		}
	}
	if len(t.stemToLeaf) != len(o.stemToLeaf) {
		return false
	}
	for i := range t.stemToLeaf {
		if t.stemToLeaf[i] != o.stemToLeaf[i] {
			return false
		}
	}
	return t.stems.Equal(o.stems) && t.leaves.Equal(o.leaves)
}

// String renders the tree's four fields for debugging. Not a wire
// format; field order and spacing may change.
func (t *Tree) String() string {
	return fmt.Sprintf(
		"k2tree.Tree{k=%d width=%d layerStarts=%v stems=[%s] stemToLeaf=%v leaves=[%s]}",
		t.k, t.matrixWidth, t.layerStarts, t.stems, t.stemToLeaf, t.leaves,
	)
}

// GrowRoot widens the tree by a factor of k: matrix_width *= k.
//
// If the tree is non-empty, a new root stem layer of k² bits is
// prepended with its first (top-left) bit set, so the entire previous
// encoding becomes the new root's top-left child — the same growth
// bookkeeping SetBit performs at the bottom of the tree, run once at
// the top. If the tree is already in the canonical empty state,
// widening is free: there is nothing to reparent.
//
// GrowRoot exists for the triple graph, which must widen every
// predicate's slice in lockstep whenever the shared subject/object id
// space outgrows the current matrix_width.
func (t *Tree) GrowRoot() error {
	if t.IsEmpty() {
		t.matrixWidth *= t.k
		return nil
	}

	bl := t.blockLen()
	if err := t.stems.InsertBlock(0, bl); err != nil {
		return err
	}
	t.stems.Set(0, true)

	newStarts := make([]uint, len(t.layerStarts)+1)
	newStarts[0] = 0
	for i, ls := range t.layerStarts {
		newStarts[i+1] = ls + bl
	}
	t.layerStarts = newStarts
	t.matrixWidth *= t.k

	return nil
}
