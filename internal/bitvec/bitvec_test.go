// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package bitvec

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestGetSet(t *testing.T) {
	b := NewSize(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i := uint(0); i < 8; i++ {
		if b.Get(i) {
			t.Fatalf("bit %d set in fresh NewSize(8)", i)
		}
	}
	b.Set(3, true)
	if !b.Get(3) {
		t.Fatal("bit 3 not set after Set(3, true)")
	}
	b.Set(3, false)
	if b.Get(3) {
		t.Fatal("bit 3 still set after Set(3, false)")
	}
}

func TestCountRange(t *testing.T) {
	b := NewSize(8)
	b.Set(1, true)
	b.Set(4, true)
	b.Set(7, true)
	if got := b.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := b.CountRange(0, 4); got != 1 {
		t.Errorf("CountRange(0,4) = %d, want 1", got)
	}
	if got := b.CountRange(4, 8); got != 2 {
		t.Errorf("CountRange(4,8) = %d, want 2", got)
	}
}

func TestInsertBlockMiddle(t *testing.T) {
	b := NewSize(8)
	b.Set(0, true)
	b.Set(5, true)
	if err := b.InsertBlock(4, 4); err != nil {
		t.Fatalf("InsertBlock: %v", err)
	}
	if b.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", b.Len())
	}
	want := []bool{true, false, false, false, false, false, false, false, false, true, false, false}
	for i, w := range want {
		if got := b.Get(uint(i)); got != w {
			t.Errorf("bit %d = %v, want %v", i, got, w)
		}
	}
}

func TestRemoveBlockMiddle(t *testing.T) {
	b := NewSize(12)
	b.Set(0, true)
	b.Set(9, true)
	if err := b.RemoveBlock(4, 4); err != nil {
		t.Fatalf("RemoveBlock: %v", err)
	}
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	want := []bool{true, false, false, false, false, true, false, false}
	for i, w := range want {
		if got := b.Get(uint(i)); got != w {
			t.Errorf("bit %d = %v, want %v", i, got, w)
		}
	}
}

func TestInsertBlockBadAlignment(t *testing.T) {
	b := NewSize(8)
	if err := b.InsertBlock(3, 4); !errors.Is(err, ErrBadBlock) {
		t.Fatalf("InsertBlock at unaligned pos: err = %v, want ErrBadBlock", err)
	}
	if err := b.InsertBlock(9, 4); !errors.Is(err, ErrBadBlock) {
		t.Fatalf("InsertBlock past Len: err = %v, want ErrBadBlock", err)
	}
}

func TestRemoveBlockBadAlignment(t *testing.T) {
	b := NewSize(8)
	if err := b.RemoveBlock(1, 4); !errors.Is(err, ErrBadBlock) {
		t.Fatalf("RemoveBlock at unaligned pos: err = %v, want ErrBadBlock", err)
	}
	if err := b.RemoveBlock(8, 4); !errors.Is(err, ErrBadBlock) {
		t.Fatalf("RemoveBlock past Len: err = %v, want ErrBadBlock", err)
	}
}

func TestCloneIndependence(t *testing.T) {
	b := NewSize(8)
	b.Set(2, true)
	c := b.Clone()
	c.Set(2, false)
	c.Set(5, true)
	if !b.Get(2) {
		t.Error("mutating clone affected original bit 2")
	}
	if b.Get(5) {
		t.Error("mutating clone affected original bit 5")
	}
}

func TestEqual(t *testing.T) {
	a := NewSize(8)
	a.Set(3, true)
	b := NewSize(8)
	b.Set(3, true)
	if !a.Equal(b) {
		t.Error("equal bit sequences reported unequal")
	}
	b.Set(4, true)
	if a.Equal(b) {
		t.Error("differing bit sequences reported equal")
	}
}

func TestPositions(t *testing.T) {
	b := NewSize(8)
	b.Set(1, true)
	b.Set(6, true)
	got := b.Positions()
	want := []uint{1, 6}
	if len(got) != len(want) {
		t.Fatalf("Positions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Positions() = %v, want %v", got, want)
		}
	}
}

// TestInsertRemoveRoundTrip exercises InsertBlock/RemoveBlock against a
// reference []bool under randomized block operations, using
// math/rand/v2's PCG source for reproducible property-style coverage.
func TestInsertRemoveRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const blockLen = 4

	ref := make([]bool, 0, 64)
	b := New()

	insertAt := func(pos uint, vals [blockLen]bool) {
		tail := append([]bool{}, ref[pos:]...)
		ref = append(ref[:pos:pos], vals[:]...)
		ref = append(ref, tail...)
		if err := b.InsertBlock(pos, blockLen); err != nil {
			t.Fatalf("InsertBlock(%d): %v", pos, err)
		}
		for i, v := range vals {
			b.Set(pos+uint(i), v)
		}
	}

	for n := 0; n < 50; n++ {
		nBlocks := uint(len(ref)) / blockLen
		if nBlocks == 0 || rng.IntN(2) == 0 {
			pos := nBlocks * blockLen
			if nBlocks > 0 {
				pos = uint(rng.IntN(int(nBlocks)+1)) * blockLen
			}
			var vals [blockLen]bool
			for i := range vals {
				vals[i] = rng.IntN(2) == 1
			}
			insertAt(pos, vals)
			continue
		}

		pos := uint(rng.IntN(int(nBlocks))) * blockLen
		ref = append(ref[:pos], ref[pos+blockLen:]...)
		if err := b.RemoveBlock(pos, blockLen); err != nil {
			t.Fatalf("RemoveBlock(%d): %v", pos, err)
		}
	}

	if b.Len() != uint(len(ref)) {
		t.Fatalf("Len() = %d, want %d", b.Len(), len(ref))
	}
	for i, want := range ref {
		if got := b.Get(uint(i)); got != want {
			t.Fatalf("bit %d = %v, want %v", i, got, want)
		}
	}
}
