// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package k2tree

import (
	"errors"

	"github.com/sparsemat/k2tree/internal/bitvec"
	"github.com/sparsemat/k2tree/internal/quad"
)

// SetBit writes state at (x, y), growing or pruning the encoding as
// needed. Apart from GrowRoot, which only widens the matrix, it is the
// sole mutator that may change the shape of the tree; every public
// mutation preserves the tree's structural invariants.
func (t *Tree) SetBit(x, y uint, state bool) error {
	if x >= t.matrixWidth || y >= t.matrixWidth {
		return ErrOutOfRange
	}

	d := t.descend(x, y)
	switch d.kind {
	case descendLeaf:
		return t.setBitInLeaf(d.start, d.rng, x, y, state)
	case descendStem:
		if !state {
			// (d) no-op: clearing a bit that's already implicitly 0.
			return nil
		}
		return t.growFrom(d.start, d.rng, x, y)
	default:
		panic("k2tree: descent produced no result")
	}
}

// setBitInLeaf handles case (a)/(b): flipping a bit inside an existing
// leaf, pruning the leaf (and possibly its ancestors) if it becomes
// all-zero.
func (t *Tree) setBitInLeaf(leafStart uint, leafRange quad.Range, x, y uint, state bool) error {
	idx := leafBitIndex(leafStart, leafRange, x, y)
	t.leaves.Set(idx, state)

	if state {
		return nil
	}
	if t.leaves.CountRange(leafStart, leafStart+t.blockLen()) > 0 {
		return nil
	}
	return t.pruneLeaf(leafStart)
}

// pruneLeaf implements case (b): the leaf at leafStart is now all
// zero. Remove it, then walk parent stems upward, collapsing any
// that become all zero in turn, stopping at layer 0 (which is never
// deleted; the canonical empty tree is its terminal form).
func (t *Tree) pruneLeaf(leafStart uint) error {
	bl := t.blockLen()

	if err := t.leaves.RemoveBlock(leafStart, bl); err != nil {
		return err
	}

	idx := leafStart / bl
	stemBitPos := t.stemToLeaf[idx]
	t.stemToLeaf = append(t.stemToLeaf[:idx], t.stemToLeaf[idx+1:]...)

	if len(t.stemToLeaf) == 0 {
		// Last leaf gone: reset to the canonical empty tree,
		// matrix_width is left untouched.
		t.resetToEmpty(bl)
		return nil
	}

	deepestLayer := uint(len(t.layerStarts)) - 1
	lastLayerStart := t.layerStarts[deepestLayer]
	t.stems.Set(lastLayerStart+stemBitPos, false)

	layer := deepestLayer
	stemStart := lastLayerStart + (stemBitPos/bl)*bl

	for layer > 0 && t.stems.CountRange(stemStart, stemStart+bl) == 0 {
		for i := layer + 1; i < uint(len(t.layerStarts)); i++ {
			t.layerStarts[i] -= bl
		}

		parentStart, offset, err := t.parentOf(layer, stemStart)
		if err != nil {
			return err
		}

		if err := t.stems.RemoveBlock(stemStart, bl); err != nil {
			return err
		}
		if layer == deepestLayer {
			// Deepest-layer offsets past the removed block move down
			// by one block.
			blockPos := stemStart - lastLayerStart
			for j := range t.stemToLeaf {
				if t.stemToLeaf[j] > blockPos {
					t.stemToLeaf[j] -= bl
				}
			}
		}
		t.stems.Set(parentStart+offset, false)

		stemStart = parentStart
		layer--
	}

	return nil
}

func (t *Tree) resetToEmpty(bl uint) {
	t.stems = bitvec.NewSize(bl)
	t.layerStarts = []uint{0}
}

// growFrom implements case (c): (x, y) lies in an all-zero quadrant
// reached while descending. Stems are materialized layer by layer
// down to the deepest stem layer, then a fresh leaf is linked in and
// its bit for (x, y) set.
func (t *Tree) growFrom(stemStart uint, rng quad.Range, x, y uint) error {
	bl := t.blockLen()
	layer := t.layerFromRange(rng.Width())
	layerMax := t.layerMax()

	// Shortcut: the stem we stopped in is already in the deepest
	// layer. No new stem blocks are needed, just a new leaf — so no
	// stem_to_leaf offsets downstream of the insertion shift either.
	if layer == layerMax {
		subs := rng.Split(t.k)
		for child, sr := range subs {
			if sr.Within(x, y) {
				return t.linkNewLeaf(stemStart, uint(child), sr, x, y, false)
			}
		}
		return errors.New("k2tree: invalid descent during growth")
	}

	for layer <= layerMax {
		subs := rng.Split(t.k)
		matched := false

		for child, sr := range subs {
			if !sr.Within(x, y) {
				continue
			}
			matched = true

			if layer == layerMax {
				return t.linkNewLeaf(stemStart, uint(child), sr, x, y, true)
			}

			t.stems.Set(stemStart+uint(child), true)

			var childStart uint
			if layer == uint(len(t.layerStarts))-1 {
				// Brand new layer: it starts at the current end of stems.
				childStart = t.stems.Len()
				t.layerStarts = append(t.layerStarts, childStart)
			} else {
				var err error
				childStart, err = t.childStem(layer, stemStart, uint(child))
				if err != nil {
					return err
				}
			}

			if err := t.stems.InsertBlock(childStart, bl); err != nil {
				return err
			}
			if layerStartsLen := uint(len(t.layerStarts)); layer+2 <= layerStartsLen {
				for i := layer + 2; i < layerStartsLen; i++ {
					t.layerStarts[i] += bl
				}
			}

			stemStart = childStart
			rng = sr
			break
		}

		if !matched {
			return errors.New("k2tree: invalid descent during growth")
		}
		layer++
	}

	return nil
}

// linkNewLeaf sets the newly-materialized 1-bit at stemStart+child,
// inserts a stem_to_leaf entry for it (preserving ascending order),
// creates the zeroed leaf block it points at, and sets (x, y) within
// it.
//
// shiftSubsequent must be true iff this call grew the deepest stem
// layer earlier in the same SetBit (i.e. we arrived here through
// growFrom's main loop, not its shortcut): inserting bits into the
// deepest layer invalidates every stem_to_leaf offset that pointed
// past the insertion point, which must be bumped by blockLen to stay
// correct.
func (t *Tree) linkNewLeaf(stemStart, child uint, leafRange quad.Range, x, y uint, shiftSubsequent bool) error {
	bl := t.blockLen()

	t.stems.Set(stemStart+child, true)

	lastLayerStart := t.layerStarts[len(t.layerStarts)-1]
	layerBitPos := (stemStart + child) - lastLayerStart

	if shiftSubsequent {
		// stemStart is the block just inserted into the deepest layer;
		// every existing offset at or past it moved up by one block.
		blockPos := stemStart - lastLayerStart
		for j := range t.stemToLeaf {
			if t.stemToLeaf[j] >= blockPos {
				t.stemToLeaf[j] += bl
			}
		}
	}

	i := 0
	for i < len(t.stemToLeaf) && t.stemToLeaf[i] < layerBitPos {
		i++
	}
	t.stemToLeaf = append(t.stemToLeaf, 0)
	copy(t.stemToLeaf[i+1:], t.stemToLeaf[i:])
	t.stemToLeaf[i] = layerBitPos

	leafStart := uint(i) * bl
	if err := t.leaves.InsertBlock(leafStart, bl); err != nil {
		return err
	}
	t.leaves.Set(leafBitIndex(leafStart, leafRange, x, y), true)

	return nil
}
