// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package k2tree

// FromMatrix builds a k=2 tree encoding the dense 0/1 matrix m (rows
// of m[x][y], row-major), widened as needed to the smallest
// W = 2^L >= max(8, len(m), the longest row); 8 is New(2)'s width, so
// smaller inputs still get an 8×8 tree. The result is bit-for-bit
// equal to the tree produced by setting every true cell with SetBit
// in row-major order.
func FromMatrix(m [][]bool) (*Tree, error) {
	rows := uint(len(m))

	need := rows
	for _, row := range m {
		if uint(len(row)) > need {
			need = uint(len(row))
		}
	}
	if need == 0 {
		need = 1
	}

	t, err := New(2)
	if err != nil {
		return nil, err
	}
	for t.matrixWidth < need {
		if err := t.GrowRoot(); err != nil {
			return nil, err
		}
	}

	for x := uint(0); x < rows; x++ {
		row := m[x]
		for y := uint(0); y < uint(len(row)); y++ {
			if !row[y] {
				continue
			}
			if err := t.SetBit(x, y, true); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}
