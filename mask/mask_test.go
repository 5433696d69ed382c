// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mask

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func parse(t *testing.T, s string) Matrix {
	t.Helper()
	m, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return m
}

// checkerboard returns a size×size matrix dark where row+col is even.
func checkerboard(size int) Matrix {
	m := New(size)
	for i, row := range m {
		for j := range row {
			row[j] = (i+j)%2 == 0
		}
	}
	return m
}

func fill(size int, dark bool) Matrix {
	m := New(size)
	for _, row := range m {
		for j := range row {
			row[j] = dark
		}
	}
	return m
}

func genMatrix(size int) *rapid.Generator[Matrix] {
	return rapid.Custom(func(t *rapid.T) Matrix {
		m := New(size)
		for _, row := range m {
			for j := range row {
				row[j] = rapid.Bool().Draw(t, "module")
			}
		}
		return m
	})
}

func TestPatternDark(t *testing.T) {
	// First 6 rows of 12 modules of each pattern.
	want := [NumPatterns]string{
		"#.#.#.#.#.#. .#.#.#.#.#.# #.#.#.#.#.#. .#.#.#.#.#.# #.#.#.#.#.#. .#.#.#.#.#.#",
		"############ ............ ############ ............ ############ ............",
		"#..#..#..#.. #..#..#..#.. #..#..#..#.. #..#..#..#.. #..#..#..#.. #..#..#..#..",
		"#..#..#..#.. ..#..#..#..# .#..#..#..#. #..#..#..#.. ..#..#..#..# .#..#..#..#.",
		"###...###... ###...###... ...###...### ...###...### ###...###... ###...###...",
		"############ #.....#..... #..#..#..#.. #.#.#.#.#.#. #..#..#..#.. #.....#.....",
		"############ ###...###... ##.##.##.##. #.#.#.#.#.#. #.##.##.##.# #...###...##",
		"#.#.#.#.#.#. ...###...### #...###...## .#.#.#.#.#.# ###...###... .###...###..",
	}
	for p := Pattern(0); p < NumPatterns; p++ {
		var rows []string
		for r := 0; r < 6; r++ {
			var sb strings.Builder
			for c := 0; c < 12; c++ {
				if p.Dark(r, c) {
					sb.WriteByte('#')
				} else {
					sb.WriteByte('.')
				}
			}
			rows = append(rows, sb.String())
		}
		assert.Equal(t, want[p], strings.Join(rows, " "), "pattern %v", p)
	}
	assert.Panics(t, func() { Pattern(8).Dark(0, 0) })
	assert.Panics(t, func() { Pattern(-1).Dark(0, 0) })
	assert.False(t, Pattern(8).Valid())
	assert.True(t, Pattern(7).Valid())
}

func TestApply(t *testing.T) {
	m := fill(6, false)
	c, err := Apply(m, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "######\n......\n######\n......\n######\n......\n", c.String())
	assert.Zero(t, m.Dark(), "input modified")

	reserved := New(6)
	reserved[0][0] = true
	reserved[2][5] = true
	c, err = Apply(m, 1, reserved)
	require.NoError(t, err)
	assert.False(t, c[0][0])
	assert.False(t, c[2][5])
	assert.True(t, c[0][1])

	_, err = Apply(m, 8, nil)
	assert.ErrorIs(t, err, ErrPattern)
	_, err = Apply(m, 0, New(5))
	assert.ErrorIs(t, err, ErrShape)
	_, err = Apply(Matrix{{true, false}}, 0, nil)
	assert.ErrorIs(t, err, ErrShape)
	_, err = Apply(nil, 0, nil)
	assert.ErrorIs(t, err, ErrShape)
}

func TestApplyProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 25).Draw(t, "size")
		m := genMatrix(size).Draw(t, "m")
		reserved := genMatrix(size).Draw(t, "reserved")
		p := Pattern(rapid.IntRange(0, NumPatterns-1).Draw(t, "p"))
		orig := m.Clone()

		once, err := Apply(m, p, reserved)
		require.NoError(t, err)
		twice, err := Apply(once, p, reserved)
		require.NoError(t, err)
		assert.True(t, twice.Equal(m), "masking is its own inverse")
		assert.True(t, m.Equal(orig), "input modified")

		for i := range m {
			for j := range m {
				switch {
				case reserved[i][j]:
					assert.Equal(t, m[i][j], once[i][j], "reserved (%d, %d)", i, j)
				case p.Dark(i, j):
					assert.NotEqual(t, m[i][j], once[i][j], "(%d, %d)", i, j)
				default:
					assert.Equal(t, m[i][j], once[i][j], "(%d, %d)", i, j)
				}
			}
		}
	})
}

func TestRule1(t *testing.T) {
	m := checkerboard(8)
	assert.Zero(t, Rule1(m))

	// A run of exactly 5 between modules of the other colour.
	for c := 1; c <= 5; c++ {
		m[3][c] = true
	}
	assert.Equal(t, 3, Rule1(m))

	m = checkerboard(8)
	for c := range m[3] {
		m[3][c] = true
	}
	assert.Equal(t, 6, Rule1(m))

	// 5 rows and 5 columns, 3 points each.
	assert.Equal(t, 30, Rule1(fill(5, true)))
	assert.Zero(t, Rule1(fill(4, true)))
}

func TestRule2(t *testing.T) {
	assert.Zero(t, Rule2(checkerboard(8)))
	assert.Equal(t, 3, Rule2(fill(2, true)))
	assert.Equal(t, 12, Rule2(fill(3, false)))
	assert.Equal(t, 48, Rule2(fill(5, true)))
	m := parse(t, "##.\n##.\n..#\n")
	assert.Equal(t, 3, Rule2(m))
}

func TestRule3(t *testing.T) {
	for _, tt := range []struct {
		name string
		size int
		row  int
		line string
		want int
	}{
		{"left edge", 11, 0, "#.###.#....", 40},
		{"clipped padding", 11, 5, "...#.###.#.", 40},
		{"no padding", 11, 5, "#.#.###.#.#", 0},
		{"inverse on dark", 9, 4, "#.#...#.#", 0},
	} {
		m := fill(tt.size, tt.name == "inverse on dark")
		for i := range tt.line {
			m[tt.row][i] = tt.line[i] == '#'
		}
		assert.Equal(t, tt.want, Rule3(m), tt.name)

		// Transposed.
		tm := New(tt.size)
		for i := range m {
			for j := range m {
				tm[j][i] = m[i][j]
			}
		}
		assert.Equal(t, tt.want, Rule3(tm), tt.name+" transposed")
	}

	// The inverse pattern qualifies on light padding.
	assert.Equal(t, 40, Rule3(parse(t, strings.Repeat("...........\n", 3)+
		".#...#.....\n"+strings.Repeat("...........\n", 7))))
}

func TestRule4(t *testing.T) {
	assert.Zero(t, Rule4(checkerboard(2)))
	assert.Zero(t, Rule4(checkerboard(10)))
	assert.Equal(t, 100, Rule4(fill(5, true)))
	assert.Equal(t, 100, Rule4(fill(5, false)))
	assert.Zero(t, Rule4(nil))

	for _, tt := range []struct{ dark, want int }{
		{40, 20}, {44, 10}, {45, 10}, {46, 0}, {54, 0}, {55, 10}, {60, 20}, {61, 20},
	} {
		m := New(10)
		for i := 0; i < tt.dark; i++ {
			m[i/10][i%10] = true
		}
		assert.Equal(t, tt.want, Rule4(m), "%d%% dark", tt.dark)
	}
}

const sample = `
#####..
.......
#.###.#
#.###.#
......#
.#.#.#.
##..##.
`

func TestPenalty(t *testing.T) {
	m := parse(t, sample)
	assert.Equal(t, [4]int{15, 9, 80, 0}, Breakdown(m))
	assert.Equal(t, 104, Penalty(m))

	want := [NumPatterns]int{21, 126, 25, 15, 23, 63, 34, 18}
	ev, err := Evaluate(m, nil)
	require.NoError(t, err)
	for p, b := range ev {
		assert.Equal(t, want[p], b[0]+b[1]+b[2]+b[3], "pattern %d", p)
	}

	p, c, err := Best(m, nil)
	require.NoError(t, err)
	assert.Equal(t, Pattern(3), p)
	assert.Equal(t, 15, Penalty(c))
}

const random21 = `
##.#.##.#####.##...#.
#.####.#..#.###.##.##
..#....#.##.###....#.
..#..#.#....##.#####.
###.##....###..#####.
####......#....###.##
#########..#####..###
###.##..#.#....###...
##......#.#####..#...
#####...#..#....##.#.
.##..###..#...#.##...
.#..####.###.##..#...
.####.##..#...#.##...
..#....#.#....#...###
###...#..#..#.##..##.
###.#.###..#...###.##
#..##...##.##...#.#.#
#..##.#######.#.#####
..##.#.##.#...#...###
##.###...#######...#.
#####.#.########.....
`

func TestBest(t *testing.T) {
	m := parse(t, random21)
	want := [NumPatterns][4]int{
		{55, 84, 120, 0},
		{85, 171, 0, 0},
		{121, 204, 120, 0},
		{81, 81, 200, 0},
		{110, 192, 120, 0},
		{115, 186, 0, 0},
		{106, 174, 0, 0},
		{91, 108, 0, 0},
	}
	ev, err := Evaluate(m, nil)
	require.NoError(t, err)
	assert.Equal(t, want, ev)

	p, c, err := Best(m, nil)
	require.NoError(t, err)
	assert.Equal(t, Pattern(7), p)
	masked, err := Apply(m, 7, nil)
	require.NoError(t, err)
	assert.True(t, masked.Equal(c))

	_, _, err = Best(m, New(20))
	assert.ErrorIs(t, err, ErrShape)
}

func TestBestTies(t *testing.T) {
	// Every pattern inverts nothing outside reserved modules,
	// so all penalties tie and the lowest pattern wins.
	m := checkerboard(9)
	reserved := fill(9, true)
	p, c, err := Best(m, reserved)
	require.NoError(t, err)
	assert.Equal(t, Pattern(0), p)
	assert.True(t, c.Equal(m))
}

func TestBestProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 21).Draw(t, "size")
		m := genMatrix(size).Draw(t, "m")
		orig := m.Clone()

		p, c, err := Best(m, nil)
		require.NoError(t, err)
		require.True(t, p.Valid())
		p2, _, err := Best(m, nil)
		require.NoError(t, err)
		assert.Equal(t, p, p2, "deterministic")
		assert.True(t, m.Equal(orig), "input modified")

		ev, err := Evaluate(m, nil)
		require.NoError(t, err)
		best := Penalty(c)
		for q, b := range ev {
			n := b[0] + b[1] + b[2] + b[3]
			if Pattern(q) < p {
				assert.Greater(t, n, best, "pattern %d", q)
			} else {
				assert.GreaterOrEqual(t, n, best, "pattern %d", q)
			}
		}
	})
}

func TestParse(t *testing.T) {
	m := parse(t, "\n#.\r\n10\n\n")
	assert.Equal(t, Matrix{{true, false}, {true, false}}, m)
	assert.Equal(t, "#.\n#.\n", m.String())
	m = parse(t, "x_\n X\n")
	assert.Equal(t, "#.\n.#\n", m.String())

	_, err := Parse(strings.NewReader("#.\n#\n"))
	assert.ErrorIs(t, err, ErrShape)
	_, err = Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrShape)
	_, err = Parse(strings.NewReader("#?\n..\n"))
	assert.ErrorContains(t, err, "line 1")

	rapid.Check(t, func(t *rapid.T) {
		m := genMatrix(rapid.IntRange(1, 30).Draw(t, "size")).Draw(t, "m")
		p, err := Parse(strings.NewReader(m.String()))
		require.NoError(t, err)
		assert.True(t, m.Equal(p))
	})
}
