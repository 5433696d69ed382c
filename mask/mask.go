// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mask implements QR data masking: the eight mask patterns,
// the four penalty rules used to rate a masked symbol and the choice
// of the mask with the lowest penalty.
package mask // import "github.com/unixdj/qrcore/mask"

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrShape   = errors.New("qr: matrix is not square")
	ErrPattern = errors.New("qr: invalid mask pattern")
)

// A Matrix is a square grid of modules indexed by row and column.
// True is dark.
type Matrix [][]bool

// New returns a light Matrix of size×size modules.
func New(size int) Matrix {
	m := make(Matrix, size)
	bits := make([]bool, size*size)
	for i := range m {
		m[i], bits = bits[:size:size], bits[size:]
	}
	return m
}

// Size returns the number of modules on a side of m.
func (m Matrix) Size() int { return len(m) }

// Clone returns a copy of m.
func (m Matrix) Clone() Matrix {
	c := New(len(m))
	for i, row := range m {
		copy(c[i], row)
	}
	return c
}

// Equal reports whether m and n hold the same modules.
func (m Matrix) Equal(n Matrix) bool {
	if len(m) != len(n) {
		return false
	}
	for i, row := range m {
		if len(row) != len(n[i]) {
			return false
		}
		for j, v := range row {
			if n[i][j] != v {
				return false
			}
		}
	}
	return true
}

// Dark returns the number of dark modules in m.
func (m Matrix) Dark() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// String returns m as text, one line per row,
// with '#' for dark and '.' for light modules.
func (m Matrix) String() string {
	var sb strings.Builder
	sb.Grow(len(m) * (len(m) + 1))
	for _, row := range m {
		for _, v := range row {
			if v {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse reads a Matrix in the text form produced by String.
// Dark modules may also be written as '1', 'X' or 'x', light modules
// as '0', '_' or ' '.  Empty lines are ignored.
func Parse(r io.Reader) (Matrix, error) {
	var m Matrix
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		t := strings.TrimSuffix(s.Text(), "\r")
		if t == "" {
			continue
		}
		row := make([]bool, len(t))
		for i := 0; i < len(t); i++ {
			switch t[i] {
			case '#', '1', 'X', 'x':
				row[i] = true
			case '.', '0', '_', ' ':
			default:
				return nil, fmt.Errorf("qr: line %d: invalid module %q", line, t[i])
			}
		}
		m = append(m, row)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if err := m.check(); err != nil {
		return nil, err
	}
	return m, nil
}

// check reports whether m is a non-empty square.
func (m Matrix) check() error {
	if len(m) == 0 {
		return ErrShape
	}
	for _, row := range m {
		if len(row) != len(m) {
			return ErrShape
		}
	}
	return nil
}

// Check validates m and the map of reserved modules, which must be
// nil or of the same size as m.
func Check(m, reserved Matrix) error {
	if err := m.check(); err != nil {
		return err
	}
	if reserved == nil {
		return nil
	}
	if len(reserved) != len(m) {
		return fmt.Errorf("%w: %d×%d reserved map for %d×%d matrix",
			ErrShape, len(reserved), len(reserved), len(m), len(m))
	}
	return reserved.check()
}
