// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Penalty points.
//
//   - RunP: for runs of n modules of the same colour, n>=5 -> n-2
//   - BoxP: for possibly overlapping 2x2 boxes -> 3
//   - FindP: for finder-like patterns -> 40
//     The pattern is 1011101 with 0000 on either side;
//     it may extend into the quiet zone
//   - BalP: for n% of dark modules -> 10*floor(abs(n-50)/5)
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
const (
	MinRun    = 5  // RunP:  minimum run length
	RunPDelta = -2 // RunP:  add to run length
	BoxPP     = 3  // BoxP:  points per box
	FindPP    = 40 // FindP: points per pattern
	BalPP     = 10 // BalP:  points per 5% step
)

// Penalty returns the penalty value for m, the sum of the four
// penalty rules.  The value is used for choosing the mask.
func (m *Matrix) Penalty() int {
	return m.runPenalty() + m.boxPenalty() + m.finderPenalty() +
		m.balancePenalty()
}

// line returns a function reading module i of row (or column) n.
func (m *Matrix) line(n int, vertical bool) func(i int) bool {
	if vertical {
		return func(i int) bool { return m.Dark(i, n) }
	}
	return func(i int) bool { return m.Dark(n, i) }
}

// runPenalty scores runs of same-coloured modules in rows and columns.
func (m *Matrix) runPenalty() int {
	p := 0
	for _, vertical := range []bool{false, true} {
		for n := 0; n < m.Size; n++ {
			at := m.line(n, vertical)
			r, last := 0, at(0)
			for i := 0; i < m.Size; i++ {
				if v := at(i); v != last {
					if r >= MinRun {
						p += r + RunPDelta
					}
					r, last = 0, v
				}
				r++
			}
			if r >= MinRun {
				p += r + RunPDelta
			}
		}
	}
	return p
}

// boxPenalty scores 2x2 boxes of same-coloured modules.
func (m *Matrix) boxPenalty() int {
	p := 0
	for row := 1; row < m.Size; row++ {
		for col := 1; col < m.Size; col++ {
			v := m.Dark(row, col)
			if m.Dark(row-1, col) == v && m.Dark(row, col-1) == v &&
				m.Dark(row-1, col-1) == v {
				p += BoxPP
			}
		}
	}
	return p
}

// finderPenalty scores dark-light-dark-dark-dark-light-dark patterns
// with four light modules before or after them in rows and columns.
// Modules outside the matrix belong to the quiet zone and are light.
// Each pattern is counted once.
func (m *Matrix) finderPenalty() int {
	const pattern = 0b1011101
	p := 0
	for _, vertical := range []bool{false, true} {
		for n := 0; n < m.Size; n++ {
			at := m.line(n, vertical)
			// pat holds the last 15 modules, the newest in bit 0:
			// 4 before the candidate, 7 of it, 4 after it.
			var pat uint16
			for i := 0; i < m.Size+4; i++ {
				pat <<= 1
				if i < m.Size && at(i) {
					pat |= 1
				}
				if pat>>4&0x7f == pattern &&
					(pat>>11&0xf == 0 || pat&0xf == 0) {
					p += FindPP
				}
			}
		}
	}
	return p
}

// balancePenalty scores the deviation of the proportion of dark
// modules from one half in whole steps of 5%.
func (m *Matrix) balancePenalty() int {
	n := 0
	for _, v := range m.mod {
		n += int(v & dark)
	}
	return balance(n, len(m.mod))
}

// balance returns BalP for n dark modules of total, computed exactly
// as floor(|100n/total - 50| / 5) * BalPP.
func balance(n, total int) int {
	d := n*100 - 50*total
	if d < 0 {
		d = -d
	}
	return d / (5 * total) * BalPP
}
