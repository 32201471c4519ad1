// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package k2tree

import (
	"github.com/sparsemat/k2tree/internal/quad"
)

type descentKind int

const (
	descendNothing descentKind = iota
	descendStem
	descendLeaf
)

// descentResult is the outcome of walking from the root to the
// quadrant containing (x, y): either a leaf bit to read/flip, a
// all-zero stem quadrant to read as false or grow from, or (never in
// practice, given the invariants) nothing.
type descentResult struct {
	kind      descentKind
	start     uint // leaf_start for Leaf, stem_start for Stem
	rng       quad.Range
}

// descend walks from the root quadrant to the leaf or all-zero
// quadrant containing (x, y).
func (t *Tree) descend(x, y uint) descentResult {
	stemLayerMax := uint(len(t.layerStarts)) - 1

	layer := uint(0)
	stemStart := uint(0)
	rng := quad.Range{X0: 0, X1: t.matrixWidth - 1, Y0: 0, Y1: t.matrixWidth - 1}

	for {
		subs := rng.Split(t.k)
		child := -1
		for i, sr := range subs {
			if sr.Within(x, y) {
				child = i
				break
			}
		}
		if child == -1 {
			return descentResult{kind: descendNothing}
		}

		bitPos := stemStart + uint(child)
		if !t.stems.Get(bitPos) {
			return descentResult{kind: descendStem, start: stemStart, rng: rng}
		}

		if layer == stemLayerMax {
			ls, err := t.leafStart(bitPos)
			if err != nil {
				panic("k2tree: " + err.Error())
			}
			return descentResult{kind: descendLeaf, start: ls, rng: subs[child]}
		}

		next, err := t.childStem(layer, stemStart, uint(child))
		if err != nil {
			panic("k2tree: " + err.Error())
		}
		stemStart = next
		rng = subs[child]
		layer++
	}
}

// leafBitIndex maps (x, y) within the 2x2 region leafRange covers
// onto the leaf block's four bit offsets, in the same quadrant order
// as quad.Range.Split: 0=(X0,Y0), 1=(X1,Y0), 2=(X0,Y1), 3=(X1,Y1).
func leafBitIndex(leafStart uint, leafRange quad.Range, x, y uint) uint {
	if x == leafRange.X0 {
		if y == leafRange.Y0 {
			return leafStart
		}
		return leafStart + 2
	}
	if y == leafRange.Y0 {
		return leafStart + 1
	}
	return leafStart + 3
}

// GetBit reads the bit at (x, y). x and y must be < MatrixWidth; an
// out-of-range coordinate is the caller's responsibility and may panic.
func (t *Tree) GetBit(x, y uint) bool {
	d := t.descend(x, y)
	switch d.kind {
	case descendLeaf:
		return t.leaves.Get(leafBitIndex(d.start, d.rng, x, y))
	case descendStem:
		return false
	default:
		panic("k2tree: descent produced no result")
	}
}
