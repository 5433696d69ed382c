// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// A Mode is a QR data encoding mode.
type Mode int

// Supported encoding modes.
const (
	Numeric      Mode = iota // digits 0 to 9
	Alphanumeric             // digits, upper case letters and " $%*+-./:"
	Byte                     // any bytes
)

var modes = [...]struct {
	name        string
	indicator   uint32
	countLength [3]int // by size class
}{
	Numeric:      {"numeric", 1, [3]int{10, 12, 14}},
	Alphanumeric: {"alphanumeric", 2, [3]int{9, 11, 13}},
	Byte:         {"byte", 4, [3]int{8, 16, 16}},
}

func (mode Mode) valid() bool {
	return Numeric <= mode && mode <= Byte
}

func (mode Mode) String() string {
	if mode.valid() {
		return modes[mode].name
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	for m := range modes {
		if strings.EqualFold(s, modes[m].name) {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("qr: unknown mode %q", s)
}

// Indicator returns the 4-bit mode indicator of mode.
func (mode Mode) Indicator() uint32 {
	if !mode.valid() {
		return 0
	}
	return modes[mode].indicator
}

// CountLength returns the length of the character count indicator
// of mode in the given version size class.
func (mode Mode) CountLength(class int) int {
	if !mode.valid() || class < Class0 || class > Class2 {
		return 0
	}
	return modes[mode].countLength[class]
}

// ModeError represents an invalid Mode number.
type ModeError Mode

func (e ModeError) Error() string {
	return fmt.Sprintf("qr: invalid mode %s", Mode(e))
}

// CharError represents a character not encodable in Mode.
type CharError struct {
	Mode   Mode
	Char   rune
	Offset int // byte offset in the input
}

func (e CharError) Error() string {
	return fmt.Sprintf("qr: %q at offset %d not encodable in %s mode",
		e.Char, e.Offset, e.Mode)
}

// CapacityError represents input too long for a QR code.
// Version is 0 if the input fits no supported version.
type CapacityError struct {
	Mode    Mode
	Version Version
	Level   Level
	Length  int // input length in bytes
	Bits    int // encoded length in bits
	Max     int // data capacity in bits
}

func (e CapacityError) Error() string {
	if e.Version == 0 {
		return fmt.Sprintf("qr: %d bytes of %s data exceed version %v-%v",
			e.Length, e.Mode, MaxVersion, e.Level)
	}
	return fmt.Sprintf("qr: %d bits of %s data exceed %d-bit capacity of version %v-%v",
		e.Bits, e.Mode, e.Max, e.Version, e.Level)
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

func isDigit(c byte) bool { return c-'0' < 10 }

func isAlpha(c byte) bool { return alphamask>>(c-' ')&1 != 0 }

// accepts reports whether c is encodable in mode.
func (mode Mode) accepts(c byte) bool {
	switch mode {
	case Numeric:
		return isDigit(c)
	case Alphanumeric:
		return isAlpha(c)
	}
	return true
}

// validate returns a CharError for the first byte of s not encodable
// in mode.
func (mode Mode) validate(s string) error {
	for i := 0; i < len(s); i++ {
		if !mode.accepts(s[i]) {
			r, _ := utf8.DecodeRuneInString(s[i:])
			return CharError{mode, r, i}
		}
	}
	return nil
}

// DetectMode returns the most compact mode able to encode s:
// Numeric for a non-empty string of digits, Alphanumeric for a string
// of characters from the alphanumeric set and Byte otherwise.
// The empty string is Alphanumeric.
func DetectMode(s string) Mode {
	mode := Numeric
	if s == "" {
		mode = Alphanumeric
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) {
			if !isAlpha(c) {
				return Byte
			}
			mode = Alphanumeric
		}
	}
	return mode
}

// payloadLength returns the length in bits of n characters
// encoded in mode, excluding the header.
func (mode Mode) payloadLength(n int) int {
	switch mode {
	case Numeric:
		return n/3*10 + [3]int{0, 4, 7}[n%3]
	case Alphanumeric:
		return n/2*11 + n%2*6
	}
	return n * 8
}

// EncodedLength returns the length in bits of a segment of n bytes
// encoded in mode in a QR code of version v, including the mode and
// character count indicators.  EncodedLength returns 0 if mode is
// invalid.
func EncodedLength(n int, mode Mode, v Version) int {
	if !mode.valid() {
		return 0
	}
	return 4 + mode.CountLength(v.SizeClass()) + mode.payloadLength(n)
}

// density is the estimated number of characters per data byte,
// in tenths.
var density = [...]int{
	Numeric:      24,
	Alphanumeric: 18,
	Byte:         8,
}

// DetermineVersion returns an estimate of the smallest version able
// to hold s encoded in mode at level l: the first version whose data
// byte count times the density of mode is at least the length of s.
// The estimate ignores the segment header and may be too small near
// the capacity of a version.  See FitVersion.
func DetermineVersion(s string, mode Mode, l Level) (Version, error) {
	if !mode.valid() {
		return 0, ModeError(mode)
	}
	if l < L || l > H {
		return 0, ErrLevel
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		if v.DataBytes(l)*density[mode]/10 >= len(s) {
			return v, nil
		}
	}
	return 0, CapacityError{Mode: mode, Level: l, Length: len(s)}
}

// FitVersion returns the smallest version not less than start whose
// data capacity at level l holds s encoded in mode.
func FitVersion(s string, mode Mode, l Level, start Version) (Version, error) {
	if !mode.valid() {
		return 0, ModeError(mode)
	}
	if err := start.check(l); err != nil {
		return 0, err
	}
	for v := start; v <= MaxVersion; v++ {
		if EncodedLength(len(s), mode, v) <= v.DataBits(l) {
			return v, nil
		}
	}
	return 0, CapacityError{Mode: mode, Level: l, Length: len(s)}
}

// Encode encodes s as a single segment in mode for a QR code of
// version v: the mode indicator, the character count indicator and
// the encoded characters.  Encode returns a CharError if s contains
// a character not encodable in mode, and a CapacityError if the
// segment does not fit version v even at level L.
func Encode(s string, mode Mode, v Version) (*Bits, error) {
	if err := v.valid(); err != nil {
		return nil, err
	}
	if !mode.valid() {
		return nil, ModeError(mode)
	}
	if err := mode.validate(s); err != nil {
		return nil, err
	}
	n := EncodedLength(len(s), mode, v)
	cl := mode.CountLength(v.SizeClass())
	if nb := v.DataBits(L); n > nb || len(s)>>cl != 0 {
		return nil, CapacityError{mode, v, L, len(s), n, nb}
	}

	b := &Bits{b: make([]byte, 0, v.DataBytes(L))}
	b.Write(mode.Indicator(), 4)
	b.Write(uint32(len(s)), cl)
	switch mode {
	case Numeric:
		for ; len(s) >= 3; s = s[3:] {
			b.Write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+uint32(s[2]-'0'), 10)
		}
		switch len(s) {
		case 2:
			b.Write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
		case 1:
			b.Write(uint32(s[0]-'0'), 4)
		}
	case Alphanumeric:
		for ; len(s) >= 2; s = s[2:] {
			b.Write(uint32(alpha[s[0]&0x3f])*45+uint32(alpha[s[1]&0x3f]), 11)
		}
		if len(s) == 1 {
			b.Write(uint32(alpha[s[0]&0x3f]), 6)
		}
	case Byte:
		for i := 0; i < len(s); i++ {
			b.Write(uint32(s[i]), 8)
		}
	}
	return b, nil
}

// EncodeToBytes encodes s in mode for a QR code of the given version
// and level and returns exactly v.DataBytes(l) data codewords: the
// segment, a terminator of up to 4 zero bits, zero bits up to a byte
// boundary and alternating pad bytes 0xec and 0x11.
// If the segment exceeds the capacity, EncodeToBytes returns a
// CapacityError without truncating it.
func EncodeToBytes(s string, mode Mode, v Version, l Level) ([]byte, error) {
	if err := v.check(l); err != nil {
		return nil, err
	}
	b, err := Encode(s, mode, v)
	if err != nil {
		return nil, err
	}
	nb := v.DataBits(l)
	if b.Bits() > nb {
		return nil, CapacityError{mode, v, l, len(s), b.Bits(), nb}
	}
	b.padTo(4, nb)
	return b.Bytes(), nil
}

// A Charset selects the byte encoding of text in Byte mode.
type Charset int

const (
	UTF8   Charset = iota // UTF-8, bytes as given
	Latin1                // ISO 8859-1
)

func (cs Charset) String() string {
	switch cs {
	case UTF8:
		return "UTF-8"
	case Latin1:
		return "ISO-8859-1"
	}
	return fmt.Sprintf("Charset(%d)", int(cs))
}

// Transform converts UTF-8 text s to cs.  Transform returns a
// CharError for a rune not representable in cs.
func (cs Charset) Transform(s string) (string, error) {
	switch cs {
	case UTF8:
		return s, nil
	case Latin1:
		enc := charmap.ISO8859_1
		var sb strings.Builder
		sb.Grow(len(s))
		for i, r := range s {
			c, ok := enc.EncodeRune(r)
			if !ok {
				return "", CharError{Byte, r, i}
			}
			sb.WriteByte(c)
		}
		return sb.String(), nil
	}
	return "", fmt.Errorf("qr: invalid charset %d", int(cs))
}
