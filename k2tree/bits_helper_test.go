// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package k2tree

import (
	"strings"

	"github.com/sparsemat/k2tree/internal/bitvec"
)

// parseBits turns a "0111 1101 1000"-style string (whitespace
// ignored) into a *bitvec.Bits, for comparing against a tree's stems
// or leaves in seed-scenario tests.
func parseBits(s string) *bitvec.Bits {
	s = strings.ReplaceAll(s, " ", "")
	b := bitvec.NewSize(uint(len(s)))
	for i, c := range s {
		if c == '1' {
			b.Set(uint(i), true)
		}
	}
	return b
}
