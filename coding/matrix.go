// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// Module flags.
const (
	dark     byte = 1 << iota // module is dark
	function                  // module belongs to a function pattern
)

// A Matrix is a square grid of modules, addressed by row and column.
// Function modules (finder, separator, timing, alignment, format and
// version information) are fixed when the Matrix is created; the rest
// receive data bits.
type Matrix struct {
	Version Version
	Size    int    // number of modules on a side
	mod     []byte // Size*Size modules, row major
}

// Dark reports whether the module at (row, col) is dark.
// Modules outside the matrix are light.
func (m *Matrix) Dark(row, col int) bool {
	return 0 <= row && row < m.Size && 0 <= col && col < m.Size &&
		m.mod[row*m.Size+col]&dark != 0
}

// IsFunction reports whether the module at (row, col) belongs to a
// function pattern.
func (m *Matrix) IsFunction(row, col int) bool {
	return m.mod[row*m.Size+col]&function != 0
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	c := *m
	c.mod = append([]byte(nil), m.mod...)
	return &c
}

// set marks the module at (row, col) as a function module of the
// given colour.
func (m *Matrix) set(row, col int, on bool) {
	v := function
	if on {
		v |= dark
	}
	m.mod[row*m.Size+col] = v
}

// flip inverts the module at (row, col).
func (m *Matrix) flip(row, col int) {
	m.mod[row*m.Size+col] ^= dark
}

// DataModules returns the number of modules available for data and
// error correction bits.
func (m *Matrix) DataModules() int {
	n := 0
	for _, v := range m.mod {
		if v&function == 0 {
			n++
		}
	}
	return n
}

// Structural templates.  A template is created the first time a
// version is used and cloned for each code.
var templates [MaxVersion + 1]struct {
	once sync.Once
	m    *Matrix
}

// NewMatrix returns a Matrix of version v with the function patterns
// in place, the format information areas reserved and all data
// modules light.
func NewMatrix(v Version) (*Matrix, error) {
	if !v.Valid() {
		return nil, ErrVersion
	}
	t := &templates[v]
	t.once.Do(func() { t.m = template(v) })
	return t.m.Clone(), nil
}

// template creates the structural template for version v.
func template(v Version) *Matrix {
	siz := v.Size()
	m := &Matrix{Version: v, Size: siz, mod: make([]byte, siz*siz)}

	// Timing patterns (partly overwritten by finder separators).
	for i := 0; i < siz; i++ {
		m.set(6, i, i&1 == 0)
		m.set(i, 6, i&1 == 0)
	}

	// Finder patterns with separators.
	m.finder(0, 0)
	m.finder(0, siz-7)
	m.finder(siz-7, 0)

	// Alignment patterns, except where they would overlap finders.
	if ac := v.AlignmentCenters(); len(ac) != 0 {
		first, last := ac[0], ac[len(ac)-1]
		for _, r := range ac {
			for _, c := range ac {
				if r == first && (c == first || c == last) ||
					r == last && c == first {
					continue
				}
				m.align(r, c)
			}
		}
	}

	// Version information.
	if vb := vinfo[v]; vb != 0 {
		for k := 0; k < 18; k++ {
			on := vb>>k&1 != 0
			a, b := k/3, siz-11+k%3
			m.set(a, b, on)
			m.set(b, a, on)
		}
	}

	// Format information, reserved light, and the dark module.
	m.setFormat(0)
	return m
}

// finder draws a finder pattern with its upper left corner at
// (row, col), surrounded by a light separator clipped to the matrix.
func (m *Matrix) finder(row, col int) {
	for dr := -1; dr <= 7; dr++ {
		r := row + dr
		if r < 0 || r >= m.Size {
			continue
		}
		for dc := -1; dc <= 7; dc++ {
			c := col + dc
			if c < 0 || c >= m.Size {
				continue
			}
			d := max(abs(dr-3), abs(dc-3))
			m.set(r, c, d != 2 && d != 4)
		}
	}
}

// align draws a 5x5 alignment pattern centred at (row, col).
func (m *Matrix) align(row, col int) {
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			m.set(row+dr, col+dc, max(abs(dr), abs(dc)) != 1)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SetFormat writes the format information for level l and mask to
// both format areas.
func (m *Matrix) SetFormat(l Level, mask Mask) {
	m.setFormat(FormatBits(l, mask))
}

// setFormat writes the 15 format bits, least significant first: down
// column 8 and left along row 8 around the upper left finder, and
// split between row 8 under the upper right finder and column 8 beside
// the lower left one.
func (m *Matrix) setFormat(fb uint16) {
	siz := m.Size
	for k := 0; k < 15; k++ {
		on := fb>>k&1 != 0
		switch {
		case k < 6:
			m.set(k, 8, on)
		case k < 8:
			m.set(k+1, 8, on)
		case k == 8:
			m.set(8, 7, on)
		default:
			m.set(8, 14-k, on)
		}
		if k < 8 {
			m.set(8, siz-1-k, on)
		} else {
			m.set(siz-15+k, 8, on)
		}
	}
	m.set(siz-8, 8, true)
}

// Place writes the bits of s to the data modules of m in zigzag
// order.  Modules left over when s runs out are light.
func (m *Matrix) Place(s BitStream) {
	for c := start(m.Size); ; {
		if !m.IsFunction(c.row, c.col) {
			var v byte
			if s.Next() != 0 {
				v = dark
			}
			m.mod[c.row*m.Size+c.col] = v
		}
		var ok bool
		if c, ok = c.next(m.Size); !ok {
			return
		}
	}
}

// Code returns the modules of m packed into a Code.
func (m *Matrix) Code() *Code {
	siz := m.Size
	stride := (siz + 7) >> 3
	c := &Code{Bitmap: make([]byte, siz*stride), Size: siz, Stride: stride}
	for row := 0; row < siz; row++ {
		line := c.Bitmap[row*stride:]
		for col, v := range m.mod[row*siz : (row+1)*siz] {
			line[col>>3] |= v & dark << (7 &^ col)
		}
	}
	return c
}

// A Code is a square module grid packed one bit per module.
type Code struct {
	Bitmap []byte // 1 is dark, 0 is light
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row
}

// Black reports whether the module at (x, y) is dark.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}
