// Copyright 2010 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and systematic Reed-Solomon encoding over it.
package gf256 // import "github.com/unixdj/qrcore/gf256"

import (
	"errors"
	"strconv"
)

// ErrDivByZero is returned by Div and Inv for a zero divisor.
var ErrDivByZero = errors.New("gf256: division by zero")

// A Field represents an instance of GF(256) defined by a specific
// polynomial.  A Field is immutable once created and may be shared
// by any number of goroutines.
type Field struct {
	log [256]byte // log[0] is unused
	exp [256]byte // exp[255] == exp[0] == 1
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// The choice of generator α only matters for its use as the base of
// Exp and Log.  NewField panics if α does not generate all 255 nonzero
// elements of the field.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || reducible(poly) {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}
	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator " + strconv.Itoa(α) +
				" for polynomial " + strconv.Itoa(poly))
		}
		f.exp[i] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.exp[255] = f.exp[0]
	return &f
}

// reducible reports whether p is reducible over GF(2).
func reducible(p int) bool {
	// Multiplying by polynomial q would make p bigger than p.
	// The only possible divisors are polynomials of degree at most 4.
	np := nbit(p)
	for q := 2; q < 1<<(np/2+1); q++ {
		if polyDiv(p, q) == 0 {
			return true
		}
	}
	return false
}

// polyDiv returns the remainder of p divided by q.
func polyDiv(p, q int) int {
	np := nbit(p)
	nq := nbit(q)
	for ; np >= nq; np-- {
		if p&(1<<uint(np-1)) != 0 {
			p ^= q << uint(np-nq)
		}
	}
	return p
}

// mul returns the product x*y mod poly, a GF(256) multiplication.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// nbit returns the number of significant bits in p.
func nbit(p int) int {
	n := 0
	for ; p > 0; p >>= 1 {
		n++
	}
	return n
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte {
	return x ^ y
}

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[(int(f.log[x])+int(f.log[y]))%255]
}

// Div returns x divided by y in the field.
func (f *Field) Div(x, y byte) (byte, error) {
	if y == 0 {
		return 0, ErrDivByZero
	}
	if x == 0 {
		return 0, nil
	}
	return f.exp[(int(f.log[x])-int(f.log[y])+255)%255], nil
}

// Inv returns the multiplicative inverse of x in the field.
func (f *Field) Inv(x byte) (byte, error) {
	return f.Div(1, x)
}

// Pow returns x raised to the power e in the field.
// Pow(0, 0) is 1 and Pow(0, e) is 0 for any other e.
func (f *Field) Pow(x byte, e int) byte {
	if x == 0 {
		if e == 0 {
			return 1
		}
		return 0
	}
	n := int(f.log[x]) * (e % 255) % 255
	if n < 0 {
		n += 255
	}
	return f.exp[n]
}
