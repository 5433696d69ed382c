package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/unixdj/qrcore/mask"
)

// Codeword formats.
var cwFormats = []string{"hex", "bin", "dec"}

// Grid formats.
var gridFormats = []string{"utf8", "utf8i", "ascii", "asciii", "pbm", "pbmi"}

// writeCodewords writes b to w in the given format, 16 codewords
// (8 in binary) per line.
func writeCodewords(w io.Writer, b []byte, format string) error {
	var (
		conv    func(byte) string
		perLine = 16
	)
	switch format {
	case "hex":
		conv = func(c byte) string { return fmt.Sprintf("%02x", c) }
	case "bin":
		conv = func(c byte) string { return fmt.Sprintf("%08b", c) }
		perLine = 8
	case "dec":
		conv = func(c byte) string { return strconv.Itoa(int(c)) }
	default:
		return fmt.Errorf("%q: unknown codeword format", format)
	}
	bw := bufio.NewWriter(w)
	for i, c := range b {
		if i%perLine != 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(conv(c))
		if i%perLine == perLine-1 || i == len(b)-1 {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// A grid is a module matrix with a quiet zone for display.
type grid struct {
	m      mask.Matrix
	border int
	rev    bool // reverse colours
}

// dark reports whether the module at x, y is dark.  Modules
// outside the matrix are light.
func (g *grid) dark(x, y int) bool {
	siz := len(g.m)
	d := 0 <= x && x < siz && 0 <= y && y < siz && g.m[y][x]
	return d != g.rev
}

// write writes g to w in format, which is one of gridFormats.
// Formats with "i" appended have colours inverted.
func (g *grid) write(w io.Writer, format string) error {
	writers := [...]func(*grid, io.Writer) error{
		(*grid).utf8,
		(*grid).ascii,
		(*grid).pbm,
	}
	for i, v := range gridFormats {
		if format == v {
			g.rev = i&1 != 0
			return writers[i>>1](g, w)
		}
	}
	return fmt.Errorf("%q: unknown grid format", format)
}

// utf8 writes two rows per line using half block characters.
// Light modules are drawn as blocks, for dark terminals.
func (g *grid) utf8(w io.Writer) error {
	blocks := [4]string{"█", "▀", "▄", " "}
	siz := len(g.m)
	bord := g.border
	var sb strings.Builder
	for y := -bord; y < siz+bord; y += 2 {
		for x := -bord; x < siz+bord; x++ {
			i := 0
			if g.dark(x, y) {
				i |= 2
			}
			if y+1 < siz+bord && g.dark(x, y+1) {
				i |= 1
			}
			sb.WriteString(blocks[i])
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (g *grid) ascii(w io.Writer) error {
	siz := len(g.m)
	bord := g.border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if g.dark(x, y) {
				p = '#'
			}
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}

// pbm writes a Portable Bit Map image of one pixel per module.
func (g *grid) pbm(w io.Writer) error {
	b := bufio.NewWriter(w)
	siz := len(g.m)
	bord := g.border
	length := siz + bord*2
	ls := strconv.Itoa(length)
	b.WriteString("P4\n" + ls + " " + ls + "\n")
	row := make([]byte, (length+7)/8)
	for y := -bord; y < siz+bord; y++ {
		clear(row)
		for x := -bord; x < siz+bord; x++ {
			if g.dark(x, y) {
				i := x + bord
				row[i/8] |= 0x80 >> (i & 7)
			}
		}
		b.Write(row)
	}
	return b.Flush()
}
