// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements the codeword layer of QR codes of
// versions 1 to 15: segment encoding, padding, Reed-Solomon error
// correction of the data blocks and their interleaving.
package coding // import "github.com/unixdj/qrcore/coding"

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/unixdj/qrcore/gf256"
)

var (
	ErrLevel      = errors.New("qr: invalid level")
	ErrDataLength = errors.New("qr: wrong data length")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// The larger the version, the more information the code can store.
// Versions from MinVersion to MaxVersion are supported.
type Version int

// Supported versions.
const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 15 // Maximum supported QR version
)

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

// Size returns the number of modules on a side of a QR code of
// version v.
func (v Version) Size() int {
	return int(v)*4 + 17
}

// QR version size classes.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
// The size class selects the length of character count indicators.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// VersionError represents an unsupported version.
type VersionError Version

func (e VersionError) Error() string {
	return fmt.Sprintf("qr: unsupported version %d (want %d to %d)",
		int(e), MinVersion, MaxVersion)
}

func (v Version) valid() error {
	if v < MinVersion || v > MaxVersion {
		return VersionError(v)
	}
	return nil
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota
	M
	Q
	H
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// ParseLevel returns the level named by s, case insensitively.
func ParseLevel(s string) (Level, error) {
	if len(s) == 1 {
		if i := strings.IndexByte("LMQHlmqh", s[0]); i >= 0 {
			return Level(i & 3), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrLevel, s)
}

// check validates the combination of v and l.
func (v Version) check(l Level) error {
	if err := v.valid(); err != nil {
		return err
	}
	if l < L || l > H {
		return ErrLevel
	}
	return nil
}

// A version describes metadata associated with a version.
type version struct {
	apos    int // upper left of the first alignment box, 100 if none
	astride int // distance between alignment boxes
	bytes   int // codewords
	rem     int // remainder bits
	level   [4]level
}

type level struct {
	nblock int
	check  int
}

// Blocks describes the split of the codewords of a QR code into
// error correction blocks.  The first NumBlocks-Long blocks carry
// DataPerBlock data codewords each, the remaining Long blocks carry
// one more.  Every block has ECCPerBlock error correction codewords.
type Blocks struct {
	Total        int // data and error correction codewords
	ECCPerBlock  int // error correction codewords per block
	NumBlocks    int // number of blocks
	DataPerBlock int // data codewords per short block
	Long         int // number of blocks with DataPerBlock+1 data codewords
}

// Blocks returns the block structure for the given version and level.
func (v Version) Blocks(l Level) (Blocks, error) {
	if err := v.check(l); err != nil {
		return Blocks{}, err
	}
	vt := &vtab[v]
	lev := vt.level[l]
	nd := vt.bytes - lev.nblock*lev.check
	return Blocks{
		Total:        vt.bytes,
		ECCPerBlock:  lev.check,
		NumBlocks:    lev.nblock,
		DataPerBlock: nd / lev.nblock,
		Long:         nd % lev.nblock,
	}, nil
}

// DataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level,
// or 0 if either is invalid.
func (v Version) DataBytes(l Level) int {
	if v.check(l) != nil {
		return 0
	}
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int {
	return v.DataBytes(l) * 8
}

// RemainderBits returns the number of remainder bits following the
// codewords of a QR code of version v.
func (v Version) RemainderBits() int {
	if v.valid() != nil {
		return 0
	}
	return vtab[v].rem
}

// Bits is an append-only bit stream, most significant bit first.
// The zero value is an empty stream ready to use.
type Bits struct {
	b    []byte
	nbit int
}

// Reset empties b, retaining its buffer.
func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written to b.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bit reports whether bit i of b is set.
func (b *Bits) Bit(i int) bool {
	if i < 0 || i >= b.nbit {
		panic("qr: bit index out of range")
	}
	return b.b[i>>3]>>uint(7&^i)&1 != 0
}

// Bytes returns the contents of b, with the last byte padded with
// zero bits.  The slice aliases the buffer of b.
func (b *Bits) Bytes() []byte {
	return b.b
}

// String returns the bits of b as binary digits.
func (b *Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.nbit)
	for i := 0; i < b.nbit; i++ {
		if b.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Write appends the nbit low order bits of v to b,
// most significant first.  nbit must be from 0 to 32.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit < 0 || nbit > 32 {
		panic("qr: invalid bit count " + strconv.Itoa(nbit))
	}
	v <<= 32 - nbit
	for nbit > 0 {
		free := -b.nbit & 7
		if free == 0 {
			b.b = append(b.b, 0)
			free = 8
		}
		b.b[len(b.b)-1] |= byte(v >> (32 - free))
		n := min(free, nbit)
		v <<= n
		nbit -= n
		b.nbit += n
	}
}

// padTo adds up to t terminator bits to b, pads it with zero bits to
// a byte boundary and fills it up to n bits with alternating pad
// bytes 0xec and 0x11.  n must be a multiple of 8.
func (b *Bits) padTo(t, n int) {
	b.nbit = min(b.nbit+t, n)
	for len(b.b)*8 < b.nbit {
		b.b = append(b.b, 0)
	}
	b.nbit = len(b.b) * 8
	for pad := byte(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
		b.nbit += 8
	}
}

// AddErrorCorrection splits data into the error correction blocks of
// the given version and level, computes the error correction
// codewords of each block and returns the final codeword sequence:
// the data codewords of all blocks interleaved, followed by the
// error correction codewords interleaved the same way.  The length
// of data must be v.DataBytes(l).
func AddErrorCorrection(data []byte, v Version, l Level) ([]byte, error) {
	bl, err := v.Blocks(l)
	if err != nil {
		return nil, err
	}
	nd := bl.Total - bl.NumBlocks*bl.ECCPerBlock
	if len(data) != nd {
		return nil, fmt.Errorf("%w: %d bytes for version %v-%v, want %d",
			ErrDataLength, len(data), v, l, nd)
	}

	// Blocks in order, data first.
	src := make([]byte, bl.Total)
	copy(src, data)
	rs := gf256.NewRSEncoder(Field, bl.ECCPerBlock)
	dat, chk := src[:nd], src[nd:]
	normal := bl.NumBlocks - bl.Long
	for i := 0; i < bl.NumBlocks; i++ {
		db := bl.DataPerBlock
		if i >= normal {
			db++
		}
		rs.ECC(dat[:db], chk[:bl.ECCPerBlock])
		dat, chk = dat[db:], chk[bl.ECCPerBlock:]
	}
	if bl.NumBlocks == 1 {
		return src, nil
	}

	dst := make([]byte, bl.Total)
	interleave(dst[:nd], src[:nd], bl.NumBlocks)
	interleave(dst[nd:], src[nd:], bl.NumBlocks)
	return dst, nil
}

// interleave interleaves nblock blocks from src to dst, which must be
// of equal length.  Blocks longer by one byte come last in src; their
// extra bytes go to the end of dst.
func interleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	extra := dst[db*nblock:]
	dst = dst[:db*nblock]
	normal := nblock - len(extra)
	for i := 0; i < nblock; i++ {
		for j, v := range src[:db] {
			dst[j*nblock+i] = v
		}
		src = src[db:]
		if i >= normal {
			extra[i-normal] = src[0]
			src = src[1:]
		}
	}
}
