// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mask

import "strconv"

// A Pattern is one of the eight QR data mask patterns.
//
// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
type Pattern int

// NumPatterns is the number of mask patterns.
const NumPatterns = 8

// Valid reports whether p is a mask pattern.
func (p Pattern) Valid() bool {
	return 0 <= p && p < NumPatterns
}

func (p Pattern) String() string {
	return strconv.Itoa(int(p))
}

// Dark reports whether p inverts the module at row, col.
// Dark panics if p is not valid.
func (p Pattern) Dark(row, col int) bool {
	switch p {
	case 0:
		return (row+col)%2 == 0
	case 1:
		return row%2 == 0
	case 2:
		return col%3 == 0
	case 3:
		return (row+col)%3 == 0
	case 4:
		return (row/2+col/3)%2 == 0
	case 5:
		return row*col%2+row*col%3 == 0
	case 6:
		return (row*col%2+row*col%3)%2 == 0
	case 7:
		return ((row+col)%2+row*col%3)%2 == 0
	}
	panic("qr: invalid mask pattern " + strconv.Itoa(int(p)))
}

// Apply returns a copy of m with pattern p applied: every module
// not marked in reserved is inverted where p is dark.  A nil reserved
// map reserves no modules.  m is not modified.
func Apply(m Matrix, p Pattern, reserved Matrix) (Matrix, error) {
	if !p.Valid() {
		return nil, ErrPattern
	}
	if err := Check(m, reserved); err != nil {
		return nil, err
	}
	return apply(m, p, reserved), nil
}

// apply applies p to a copy of m, which with reserved has been
// checked.
func apply(m Matrix, p Pattern, reserved Matrix) Matrix {
	c := m.Clone()
	for i, row := range c {
		for j := range row {
			if (reserved == nil || !reserved[i][j]) && p.Dark(i, j) {
				row[j] = !row[j]
			}
		}
	}
	return c
}

// Best applies every mask pattern to m and returns the pattern giving
// the lowest penalty along with the masked matrix.  Ties go to the
// lowest pattern number.
func Best(m, reserved Matrix) (Pattern, Matrix, error) {
	if err := Check(m, reserved); err != nil {
		return 0, nil, err
	}
	var (
		best    Pattern
		bestM   Matrix
		minimum int
	)
	for p := Pattern(0); p < NumPatterns; p++ {
		c := apply(m, p, reserved)
		if n := Penalty(c); bestM == nil || n < minimum {
			best, bestM, minimum = p, c, n
		}
	}
	return best, bestM, nil
}

// Evaluate returns the penalty breakdown of m masked with each
// pattern, indexed by pattern.
func Evaluate(m, reserved Matrix) ([NumPatterns][4]int, error) {
	var r [NumPatterns][4]int
	if err := Check(m, reserved); err != nil {
		return r, err
	}
	for p := range r {
		r[p] = Breakdown(apply(m, Pattern(p), reserved))
	}
	return r, nil
}
