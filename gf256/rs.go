// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

// A Poly is a polynomial over GF(256).  Coefficients are ordered from
// the highest degree term to the constant term.
type Poly []byte

// Degree returns the degree of p, ignoring leading zero coefficients.
// The zero polynomial has degree -1.
func (p Poly) Degree() int {
	for i, c := range p {
		if c != 0 {
			return len(p) - 1 - i
		}
	}
	return -1
}

// MulPoly returns the product of a and b.
func (f *Field) MulPoly(a, b Poly) Poly {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	p := make(Poly, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			p[i+j] ^= f.Mul(x, y)
		}
	}
	return p
}

// Generator returns the Reed-Solomon generator polynomial of degree n,
// (x - α⁰)(x - α¹)...(x - αⁿ⁻¹).  It is monic with n+1 coefficients.
func (f *Field) Generator(n int) Poly {
	g := Poly{1}
	for i := 0; i < n; i++ {
		g = f.MulPoly(g, Poly{1, f.Exp(i)})
	}
	return g
}

// Rem returns the remainder of dividend divided by divisor, as a
// polynomial of exactly len(divisor)-1 coefficients.  Rem panics if
// the leading coefficient of divisor is zero.
func (f *Field) Rem(dividend, divisor Poly) Poly {
	if len(divisor) == 0 || divisor[0] == 0 {
		panic("gf256: zero leading divisor coefficient")
	}
	n := len(divisor) - 1
	if len(dividend) < n {
		r := make(Poly, n)
		copy(r[n-len(dividend):], dividend)
		return r
	}
	lead := divisor[0]
	r := make(Poly, len(dividend))
	copy(r, dividend)
	for i := 0; i+n < len(r); i++ {
		c := r[i]
		if c == 0 {
			continue
		}
		if lead != 1 {
			c, _ = f.Div(c, lead) // lead != 0
		}
		for j, d := range divisor {
			r[i+j] ^= f.Mul(d, c)
		}
	}
	return r[len(r)-n:]
}

// Encode returns the systematic Reed-Solomon codeword for data with n
// error correction bytes: data followed by the remainder of data·xⁿ
// divided by the generator polynomial of degree n.
func (f *Field) Encode(data []byte, n int) []byte {
	out := make([]byte, len(data)+n)
	copy(out, data)
	if n > 0 {
		copy(out[len(data):], f.Rem(out, f.Generator(n)))
	}
	return out
}

// An RSEncoder implements Reed-Solomon encoding over a given field
// using a given number of error correction bytes.  The generator
// polynomial is built once and reused for every block.  An RSEncoder
// keeps a scratch buffer and must not be used concurrently.
type RSEncoder struct {
	f    *Field
	c    int
	gen  Poly
	lgen []int  // logarithms of gen coefficients, -1 for zero
	p    []byte // scratch buffer
}

// NewRSEncoder returns a new Reed-Solomon encoder over the given field
// and number of error correction bytes.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	gen := f.Generator(c)
	lgen := make([]int, len(gen))
	for i, v := range gen {
		lgen[i] = f.Log(v)
	}
	return &RSEncoder{f: f, c: c, gen: gen, lgen: lgen}
}

// Generator returns the generator polynomial of rs.
// The caller must not modify it.
func (rs *RSEncoder) Generator() Poly { return rs.gen }

// ECC writes to check the error correcting code bytes
// for data using the given Reed-Solomon parameters.
// ECC panics if len(check) is not the number of bytes
// rs was created for.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) != rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}

	// The check bytes are the remainder after dividing
	// data padded with c zeros by the generator polynomial.

	// p = data padded with c zeros.
	var p []byte
	n := len(data) + rs.c
	if cap(rs.p) >= n {
		p = rs.p[:n]
	} else {
		p = make([]byte, n)
	}
	copy(p, data)
	clear(p[len(data):])

	// Divide p by gen, leaving the remainder in p[len(data):].
	// p[0] is the most significant term in p, and
	// gen[0] is the most significant term in the generator,
	// which is always 1.
	// To avoid repeated work, we store various values as
	// lv, not v, where lv = log[v].
	f := rs.f
	lgen := rs.lgen[1:]
	for i := 0; i < len(data); i++ {
		c := p[i]
		if c == 0 {
			continue
		}
		q := p[i+1:]
		lc := int(f.log[c])
		for j, lg := range lgen {
			if lg >= 0 {
				q[j] ^= f.exp[(lc+lg)%255]
			}
		}
	}
	copy(check, p[len(data):])
	rs.p = p
}
