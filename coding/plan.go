// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// FunctionModules returns the function module map of a QR code of
// version v, indexed by row and column.  A module is true if it
// belongs to a finder pattern with its separator and format
// information area, a timing pattern, an alignment pattern, the
// version information or the dark module.  The remaining modules
// hold data and error correction bits and are subject to masking.
func FunctionModules(v Version) ([][]bool, error) {
	if err := v.valid(); err != nil {
		return nil, err
	}
	siz := v.Size()
	m := make([][]bool, siz)
	bits := make([]bool, siz*siz)
	for i := range m {
		m[i], bits = bits[:siz:siz], bits[siz:]
	}
	box := func(row, col, h, w int) {
		for _, r := range m[row : row+h] {
			for i := range r[col : col+w] {
				r[col+i] = true
			}
		}
	}

	// Timing patterns.
	box(6, 0, 1, siz)
	box(0, 6, siz, 1)

	// Position boxes with separators and format information.
	// 9x9 modules on top left, 9x8 on top right, 8x9 on bottom left.
	box(0, 0, 9, 9)
	box(0, siz-8, 9, 8)
	box(siz-8, 0, 8, 9)

	// Alignment boxes.
	info := &vtab[v]
	for x := info.apos; ; x += info.astride {
		for y := info.apos; y < siz; y += info.astride {
			box(y, x, 5, 5)
		}
		if x >= siz-12 {
			break
		}
		box(4, x, 5, 5)
		box(x, 4, 5, 5)
	}

	// Version information: 6x3 modules at top right, 3x6 at bottom left.
	if v >= 7 {
		box(0, siz-11, 6, 3)
		box(siz-11, 0, 3, 6)
	}

	// One lonely black pixel.
	m[siz-8][8] = true
	return m, nil
}
