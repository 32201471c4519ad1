// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package bitvec implements a growable bit sequence that supports
// inserting and removing fixed-size blocks anywhere in the middle,
// not just at the tail.
//
// It wraps [github.com/bits-and-blooms/bitset.BitSet], the same
// popcount-compressed word-sliced bitset the bart package itself drew
// on before inlining a stripped-down copy as internal/bitset. That
// copy only ever grows at the tail (a routing trie never needs to
// shift a bit into the middle of a stride); a K²-tree's stem and leaf
// arrays do, every time a quadrant is split or collapsed.
package bitvec

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ErrBadBlock is returned by InsertBlock and RemoveBlock when pos
// isn't a multiple of the block length n, or the block falls outside
// the sequence.
var ErrBadBlock = errors.New("bitvec: block start not aligned or out of range")

// Bits is a dense bit sequence of explicit logical length. Unlike the
// wrapped bitset.BitSet, whose length is just "the highest bit ever
// touched", Bits tracks its own length so that removing the trailing
// block of a shrinking sequence is well-defined.
type Bits struct {
	bs  *bitset.BitSet
	len uint
}

// New returns an empty Bits.
func New() *Bits {
	return &Bits{bs: bitset.New(0)}
}

// NewSize returns a Bits of length n, all bits zero.
func NewSize(n uint) *Bits {
	b := &Bits{bs: bitset.New(n), len: n}
	return b
}

// Len reports the number of bits in the sequence.
func (b *Bits) Len() uint {
	return b.len
}

// Get returns the bit at i. i must be < Len.
func (b *Bits) Get(i uint) bool {
	if i >= b.len {
		panic("bitvec: Get index out of range")
	}
	return b.bs.Test(i)
}

// Set writes the bit at i. i must be < Len.
func (b *Bits) Set(i uint, v bool) {
	if i >= b.len {
		panic("bitvec: Set index out of range")
	}
	if v {
		b.bs.Set(i)
	} else {
		b.bs.Clear(i)
	}
}

// CountRange returns the number of set bits in the half-open range
// [lo, hi).
func (b *Bits) CountRange(lo, hi uint) uint {
	if hi > b.len {
		hi = b.len
	}
	var c uint
	for i := lo; i < hi; i++ {
		if b.bs.Test(i) {
			c++
		}
	}
	return c
}

// Count returns the total number of set bits.
func (b *Bits) Count() uint {
	return b.CountRange(0, b.len)
}

// Positions enumerates, in ascending order, the indices of every set
// bit.
func (b *Bits) Positions() []uint {
	var out []uint
	for i := uint(0); i < b.len; i++ {
		if b.bs.Test(i) {
			out = append(out, i)
		}
	}
	return out
}

// InsertBlock inserts n zero bits at pos, shifting every bit at or
// after pos up by n. pos must be a multiple of n and <= Len, or
// InsertBlock fails with an error describing the violated
// structural precondition.
func (b *Bits) InsertBlock(pos, n uint) error {
	if n == 0 {
		return nil
	}
	if pos > b.len || pos%n != 0 {
		return fmt.Errorf("%w: InsertBlock pos %d, block length %d, len=%d", ErrBadBlock, pos, n, b.len)
	}

	newLen := b.len + n
	// Touch the new top bit so the backing store grows to cover it.
	b.bs.Set(newLen - 1)
	b.bs.Clear(newLen - 1)

	// Shift [pos, b.len) up to [pos+n, newLen), from the top down so
	// earlier bits aren't overwritten before they're read.
	for i := b.len; i > pos; i-- {
		idx := i - 1
		if b.bs.Test(idx) {
			b.bs.Set(idx + n)
		} else {
			b.bs.Clear(idx + n)
		}
	}

	// The freshly inserted block starts all-zero.
	for i := pos; i < pos+n; i++ {
		b.bs.Clear(i)
	}

	b.len = newLen
	return nil
}

// RemoveBlock deletes the n bits starting at pos, shifting every bit
// after the block down by n. pos must be a multiple of n and
// pos+n <= Len, or RemoveBlock fails with an error describing the
// violated structural precondition.
func (b *Bits) RemoveBlock(pos, n uint) error {
	if n == 0 {
		return nil
	}
	if pos%n != 0 || pos+n > b.len {
		return fmt.Errorf("%w: RemoveBlock pos %d, block length %d, len=%d", ErrBadBlock, pos, n, b.len)
	}

	for i := pos + n; i < b.len; i++ {
		if b.bs.Test(i) {
			b.bs.Set(i - n)
		} else {
			b.bs.Clear(i - n)
		}
	}

	b.len -= n
	return nil
}

// Clone returns a deep copy.
func (b *Bits) Clone() *Bits {
	if b == nil {
		return nil
	}
	return &Bits{bs: b.bs.Clone(), len: b.len}
}

// Equal reports whether two Bits have the same length and the same
// bits set.
func (b *Bits) Equal(o *Bits) bool {
	if b.len != o.len {
		return false
	}
	for i := uint(0); i < b.len; i++ {
		if b.bs.Test(i) != o.bs.Test(i) {
			return false
		}
	}
	return true
}

// String renders the sequence as a run of 0/1 characters, four bits
// at a time, for readable test failure output.
func (b *Bits) String() string {
	buf := make([]byte, 0, b.len+b.len/4)
	for i := uint(0); i < b.len; i++ {
		if i > 0 && i%4 == 0 {
			buf = append(buf, ' ')
		}
		if b.bs.Test(i) {
			buf = append(buf, '1')
		} else {
			buf = append(buf, '0')
		}
	}
	return string(buf)
}
