// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mask

// Total penalty is the sum of penalties for runs and boxes
// of same-colour modules, finder-like patterns and colour balance.
//
//   - Rule 1: for non-overlapping runs of n modules, n>=5 -> n-2
//   - Rule 2: for possibly overlapping 2x2 boxes -> 3
//   - Rule 3: for each 1011101 or 0100010 with 4 light modules
//     before or after it, cut short by the matrix edge -> 40
//   - Rule 4: for n% of dark modules -> 10*floor(abs(n-50)/5)
//
// Rules 1 and 3 scan rows and columns.
const (
	minRun    = 5  // Rule 1: minimum run length
	runPDelta = -2 // Rule 1: add to run length
	boxPP     = 3  // Rule 2: points per box
	findPP    = 40 // Rule 3: points per pattern
	findLen   = 7  // Rule 3: pattern length
	findPad   = 4  // Rule 3: light modules on either side
	balPP     = 10 // Rule 4: 10 points
	balPMul   = 20 //         for every 5% (1/20)
)

// The finder-like pattern, dark modules set.
const findPat = 0b1011101

// Penalty returns the penalty of m, the sum of the four rules.
// A lower penalty is better.  m must be square.
func Penalty(m Matrix) int {
	return Rule1(m) + Rule2(m) + Rule3(m) + Rule4(m)
}

// Breakdown returns the scores of the four penalty rules for m.
func Breakdown(m Matrix) [4]int {
	return [4]int{Rule1(m), Rule2(m), Rule3(m), Rule4(m)}
}

// line returns a function reading module i of row or column k of m.
func line(m Matrix, vertical bool) func(k, i int) bool {
	if vertical {
		return func(k, i int) bool { return m[i][k] }
	}
	return func(k, i int) bool { return m[k][i] }
}

// Rule1 returns the penalty for runs of five or more modules of the
// same colour in a row or column: 3 for a run of 5, plus 1 for each
// further module.
func Rule1(m Matrix) int {
	siz := len(m)
	p := 0
	for _, vertical := range [2]bool{false, true} {
		at := line(m, vertical)
		for k := 0; k < siz; k++ {
			r := 1
			for i := 1; i < siz; i++ {
				if at(k, i) != at(k, i-1) {
					if r >= minRun {
						p += r + runPDelta
					}
					r = 0
				}
				r++
			}
			// handle last run
			if r >= minRun {
				p += r + runPDelta
			}
		}
	}
	return p
}

// Rule2 returns the penalty for 2x2 boxes of modules of the same
// colour.  Overlapping boxes count separately.
func Rule2(m Matrix) int {
	p := 0
	for i := 1; i < len(m); i++ {
		prev, row := m[i-1], m[i]
		for j := 1; j < len(row); j++ {
			c := row[j]
			if row[j-1] == c && prev[j-1] == c && prev[j] == c {
				p += boxPP
			}
		}
	}
	return p
}

// Rule3 returns the penalty for finder-like patterns in rows and
// columns: dark-light-dark-dark-dark-light-dark or its inverse,
// preceded or followed by four light modules.  Light modules beyond
// the edge of the matrix are not required, so a pattern at the edge
// always qualifies.
func Rule3(m Matrix) int {
	siz := len(m)
	p := 0
	for _, vertical := range [2]bool{false, true} {
		at := line(m, vertical)
		// light reports whether modules from i to j (exclusive) in
		// line k are light.
		light := func(k, i, j int) bool {
			for i = max(i, 0); i < min(j, siz); i++ {
				if at(k, i) {
					return false
				}
			}
			return true
		}
		for k := 0; k < siz; k++ {
			pat := 0 // last findLen modules
			for i := 0; i < siz; i++ {
				pat = pat<<1&(1<<findLen-1) | b2i(at(k, i))
				s := i - findLen + 1 // pattern start
				if s < 0 || (pat != findPat && pat != findPat^(1<<findLen-1)) {
					continue
				}
				if light(k, s-findPad, s) || light(k, i+1, i+1+findPad) {
					p += findPP
				}
			}
		}
	}
	return p
}

// Rule4 returns the penalty for the balance of dark and light
// modules: 10 points for every full 5% the share of dark modules
// deviates from 50%.
func Rule4(m Matrix) int {
	total := len(m) * len(m)
	if total == 0 {
		return 0
	}
	dark := m.Dark()
	// floor(abs(100*dark/total - 50) / 5) in integers
	d := balPMul*dark - balPMul/2*total
	if d < 0 {
		d = -d
	}
	return d / total * balPP
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
