// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package k2tree

import "errors"

// layerStart returns the bit-offset where stem layer l begins. For
// l at or past the last known layer, that's the current end of the
// stems sequence — the position the next layer would start at.
func (t *Tree) layerStart(l uint) uint {
	if l < uint(len(t.layerStarts)) {
		return t.layerStarts[l]
	}
	return t.stems.Len()
}

// layerLen returns the bit-length of stem layer l.
func (t *Tree) layerLen(l uint) uint {
	return t.layerStart(l+1) - t.layerStart(l)
}

// totalLayers returns L where matrix_width = k^L.
func (t *Tree) totalLayers() uint {
	var l uint
	w := t.matrixWidth
	for w > 1 {
		w /= t.k
		l++
	}
	return l
}

// layerMax returns the index of the deepest possible stem layer given
// the current matrix_width — the stem layer whose children are
// leaves. The leaf level itself doesn't count as a stem layer, hence
// the -2: one layer for going from matrix_width down to a k×k leaf
// block, one more because layer indices are 0-based.
func (t *Tree) layerMax() uint {
	tl := t.totalLayers()
	if tl < 2 {
		return 0
	}
	return tl - 2
}

// layerFromRange recovers the stem layer index that covers a range of
// the given width: layer = L - log_k(width).
func (t *Tree) layerFromRange(width uint) uint {
	return t.totalLayers() - logK(width, t.k)
}

// logK returns log_k(n) for n an exact power of k and k >= 2; for
// other n the result is not floor(log_k(n)), and k = 1 never returns.
func logK(n, k uint) uint {
	var l uint
	for n > 1 {
		n /= k
		l++
	}
	return l
}

// childStem returns the bit-offset of the stem block that is the
// nthChild'th child of the block at stemStart in the given layer.
// The bit at stemStart+nthChild must already be 1, and layer must not
// be the deepest stem layer (a 1-bit there points at a leaf, not a
// child stem).
func (t *Tree) childStem(layer, stemStart, nthChild uint) (uint, error) {
	bitPos := stemStart + nthChild
	if !t.stems.Get(bitPos) || layer == t.layerMax() {
		return 0, errors.New("k2tree: no child stem at this position")
	}
	before := t.stems.CountRange(t.layerStart(layer), bitPos)
	return t.layerStart(layer+1) + before*t.blockLen(), nil
}

// leafStart returns the bit-offset in leaves of the leaf block linked
// to the 1-bit at absolute position bitPos in the deepest stem layer.
func (t *Tree) leafStart(bitPos uint) (uint, error) {
	if !t.stems.Get(bitPos) {
		return 0, errors.New("k2tree: leafStart requested for a clear stem bit")
	}
	posInLayer := bitPos - t.layerStarts[len(t.layerStarts)-1]
	for i, p := range t.stemToLeaf {
		if p == posInLayer {
			return uint(i) * t.blockLen(), nil
		}
	}
	return 0, errors.New("k2tree: invariant violation: no stem_to_leaf entry for set stem bit")
}

// parentOf returns (parent block start, offset within that block) for
// the stem block starting at stemStart in the given layer. layer must
// be >= 1; layer 0 has no parent.
//
// layer is taken from the caller, who already knows it from having
// walked down (or up) to get here, rather than re-derived by scanning
// layer_starts on every call — a scan that risks miscounting once a
// tree has grown past two stem layers.
func (t *Tree) parentOf(layer, stemStart uint) (parentStart, offset uint, err error) {
	if layer == 0 {
		return 0, 0, errors.New("k2tree: layer 0 has no parent")
	}

	currLayerStart := t.layerStart(layer)
	parentLayerStart := t.layerStart(layer - 1)
	parentLen := t.layerLen(layer - 1)
	nthStemInLayer := (stemStart - currLayerStart) / t.blockLen()

	var ordinal uint
	for i := uint(0); i < parentLen; i++ {
		bitPos := parentLayerStart + i
		if !t.stems.Get(bitPos) {
			continue
		}
		if ordinal == nthStemInLayer {
			blockStart := (bitPos / t.blockLen()) * t.blockLen()
			return blockStart, bitPos - blockStart, nil
		}
		ordinal++
	}
	return 0, 0, errors.New("k2tree: invariant violation: parent stem bit not found")
}
