package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrcore/mask"
)

func TestWriteCodewords(t *testing.T) {
	b := []byte{0x20, 0x5b, 0x0b, 0x78, 0xd1, 0x72, 0xdc, 0x4d,
		0x43, 0x40, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xc4, 0x23}
	tests := []struct {
		format string
		want   string
	}{
		{"hex", "20 5b 0b 78 d1 72 dc 4d 43 40 ec 11 ec 11 ec 11\nc4 23\n"},
		{"dec", "32 91 11 120 209 114 220 77 67 64 236 17 236 17 236 17\n196 35\n"},
		{"bin", "00100000 01011011 00001011 01111000 11010001 01110010 11011100 01001101\n" +
			"01000011 01000000 11101100 00010001 11101100 00010001 11101100 00010001\n" +
			"11000100 00100011\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, writeCodewords(&buf, b, tt.format), tt.format)
		assert.Equal(t, tt.want, buf.String(), tt.format)
	}

	var buf bytes.Buffer
	require.NoError(t, writeCodewords(&buf, b[:16], "hex"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Error(t, writeCodewords(&buf, b, "oct"))
}

func testGrid() mask.Matrix {
	m, err := mask.Parse(strings.NewReader("#.\n.#\n"))
	if err != nil {
		panic(err)
	}
	return m
}

func TestGridText(t *testing.T) {
	tests := []struct {
		format string
		border int
		want   string
	}{
		{"ascii", 0, "##  \n  ##\n"},
		{"asciii", 0, "  ##\n##  \n"},
		{"ascii", 1, "        \n  ##    \n    ##  \n        \n"},
		{"utf8", 0, "▄▀\n"},
		{"utf8i", 0, "▀▄\n"},
		{"utf8", 1, "█▀██\n██▄█\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		gr := grid{m: testGrid(), border: tt.border}
		require.NoError(t, gr.write(&buf, tt.format), tt.format)
		assert.Equal(t, tt.want, buf.String(), "%s border %d", tt.format, tt.border)
	}

	var buf bytes.Buffer
	gr := grid{m: testGrid()}
	assert.Error(t, gr.write(&buf, "png"))
}

func TestGridPBM(t *testing.T) {
	var buf bytes.Buffer
	gr := grid{m: testGrid(), border: 4}
	require.NoError(t, gr.write(&buf, "pbm"))
	want := []byte("P4\n10 10\n")
	for y := 0; y < 10; y++ {
		switch y {
		case 4:
			want = append(want, 0x08, 0x00)
		case 5:
			want = append(want, 0x04, 0x00)
		default:
			want = append(want, 0x00, 0x00)
		}
	}
	assert.Equal(t, want, buf.Bytes())

	buf.Reset()
	require.NoError(t, gr.write(&buf, "pbmi"))
	assert.Equal(t, byte(0xf7), buf.Bytes()[len("P4\n10 10\n")+8])
}

func TestParseConfig(t *testing.T) {
	c, err := parseConfig([]byte(`
level: q
version: 7
mode: byte
latin1: true
format: dec
debug: true
`))
	require.NoError(t, err)
	assert.Equal(t, &config{
		Level:   "q",
		Version: 7,
		Mode:    "byte",
		Latin1:  true,
		Format:  "dec",
		Debug:   true,
	}, c)

	c, err = parseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, &config{}, c)

	_, err = parseConfig([]byte("version: seven\n"))
	assert.Error(t, err)
}

func TestModeIndex(t *testing.T) {
	for i, s := range modeNames {
		assert.EqualValues(t, i, modeIndex(s))
		assert.EqualValues(t, i, modeIndex(strings.ToUpper(s)))
	}
	assert.EqualValues(t, -1, modeIndex("kanji"))
}

func TestWritePenalties(t *testing.T) {
	var ev [mask.NumPatterns][4]int
	ev[3] = [4]int{15, 9, 80, 0}
	var buf bytes.Buffer
	require.NoError(t, writePenalties(&buf, ev))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+mask.NumPatterns)
	assert.Equal(t, "   3     15     9    80     0   104", lines[4])
}
