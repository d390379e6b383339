// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// remainder lists the number of modules left over after the codewords
// for each version.
func remainder(v Version) int {
	switch {
	case v == 1:
		return 0
	case v <= 6:
		return 7
	case v <= 13:
		return 0
	case v <= 20:
		return 3
	case v <= 27:
		return 4
	case v <= 34:
		return 3
	}
	return 0
}

// formatCells returns the positions of the format bits, least
// significant first, in both copies.
func formatCells(siz int) (a, b [15][2]int) {
	for k := 0; k < 15; k++ {
		switch {
		case k < 6:
			a[k] = [2]int{k, 8}
		case k < 8:
			a[k] = [2]int{k + 1, 8}
		case k == 8:
			a[k] = [2]int{8, 7}
		default:
			a[k] = [2]int{8, 14 - k}
		}
		if k < 8 {
			b[k] = [2]int{8, siz - 1 - k}
		} else {
			b[k] = [2]int{siz - 15 + k, 8}
		}
	}
	return
}

func TestTemplate(t *testing.T) {
	m, err := NewMatrix(1)
	require.NoError(t, err)
	assert.Equal(t, 21, m.Size)
	// Upper left finder and separator.
	want := []string{
		"#######.",
		"#.....#.",
		"#.###.#.",
		"#.###.#.",
		"#.###.#.",
		"#.....#.",
		"#######.",
		"........",
	}
	for row, s := range want {
		for col := range s {
			assert.Equal(t, s[col] == '#', m.Dark(row, col), "(%d,%d)", row, col)
			assert.True(t, m.IsFunction(row, col))
		}
	}
	// Timing patterns.
	for i := 8; i < 13; i++ {
		assert.Equal(t, i%2 == 0, m.Dark(6, i), "row 6 col %d", i)
		assert.Equal(t, i%2 == 0, m.Dark(i, 6), "col 6 row %d", i)
	}
	// Dark module.
	assert.True(t, m.Dark(13, 8))
	assert.False(t, m.IsFunction(9, 9))
	assert.False(t, m.Dark(-1, 0))
	assert.False(t, m.Dark(0, 21))

	_, err = NewMatrix(0)
	assert.Equal(t, ErrVersion, err)
}

func TestAlignmentPatterns(t *testing.T) {
	m, err := NewMatrix(7)
	require.NoError(t, err)
	// Centres at 6, 22 and 38; (6,6), (6,38) and (38,6) are skipped.
	for _, c := range [][2]int{{6, 22}, {22, 6}, {22, 22}, {22, 38}, {38, 22}, {38, 38}} {
		assert.True(t, m.Dark(c[0], c[1]), "centre %v", c)
		assert.False(t, m.Dark(c[0]-1, c[1]), "ring %v", c)
		assert.True(t, m.Dark(c[0]+2, c[1]+2), "corner %v", c)
		assert.True(t, m.IsFunction(c[0]+2, c[1]-2))
	}
	// The finder corners are intact.
	assert.False(t, m.Dark(7, 7))
	assert.False(t, m.Dark(7, m.Size-8))
	assert.True(t, m.Dark(m.Size-1, 0))
	// Version 7 information in the upper right block.
	vb := VersionBits(7)
	for k := 0; k < 18; k++ {
		on := vb>>k&1 != 0
		assert.Equal(t, on, m.Dark(k/3, m.Size-11+k%3), "bit %d", k)
		assert.Equal(t, on, m.Dark(m.Size-11+k%3, k/3), "bit %d", k)
	}
}

// TestDataModules checks that the data modules hold the codewords of
// every version plus its remainder bits.
func TestDataModules(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		m, err := NewMatrix(v)
		require.NoError(t, err)
		assert.Equal(t, v.Codewords()*8+remainder(v), m.DataModules(),
			"version %d", v)
	}
}

// TestWalk checks that the zigzag scan visits every data module once.
func TestWalk(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		m, err := NewMatrix(v)
		require.NoError(t, err)
		siz := m.Size
		seen := make([]int, siz*siz)
		c := start(siz)
		var last cursor
		for ok := true; ok; c, ok = c.next(siz) {
			require.True(t, 0 <= c.row && c.row < siz && 0 <= c.col && c.col < siz,
				"version %d: %+v", v, c)
			require.NotEqual(t, 6, c.col, "version %d", v)
			seen[c.row*siz+c.col]++
			last = c
		}
		assert.Equal(t, siz-9, last.row)
		assert.Equal(t, 0, last.col)
		for i, n := range seen {
			if m.mod[i]&function == 0 {
				require.Equal(t, 1, n, "version %d module (%d,%d)",
					v, i/siz, i%siz)
			} else {
				require.LessOrEqual(t, n, 1)
			}
		}
	}
}

func TestWalkStart(t *testing.T) {
	var got [][2]int
	c := start(21)
	for i := 0; i < 6; i++ {
		got = append(got, [2]int{c.row, c.col})
		c, _ = c.next(21)
	}
	assert.Equal(t, [][2]int{{20, 20}, {20, 19}, {19, 20}, {19, 19},
		{18, 20}, {18, 19}}, got)

	// Top of the first column pair turns down into the next pair.
	c = cursor{row: 9, col: 19, up: true}
	c, _ = c.next(21)
	assert.Equal(t, cursor{row: 9, col: 18, up: false}, c)

	// Column 7 continues in column 5.
	c = cursor{row: 9, col: 7, up: true}
	c, _ = c.next(21)
	assert.Equal(t, cursor{row: 9, col: 5, up: false}, c)

	// Bottom of column 9 jumps over the lower left format area.
	c = cursor{row: 20, col: 9, up: false}
	c, _ = c.next(21)
	assert.Equal(t, cursor{row: 12, col: 8, up: true}, c)

	_, ok := cursor{row: 12, col: 0, up: false}.next(21)
	assert.False(t, ok)
}

// TestStructure checks that placing data, masking and setting the
// format leave the function patterns intact for every version.
func TestStructure(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		tmpl, err := NewMatrix(v)
		require.NoError(t, err)
		a, b := formatCells(tmpl.Size)
		format := map[[2]int]bool{}
		for k := range a {
			format[a[k]] = true
			format[b[k]] = true
		}
		cw := bytes.Repeat([]byte{0xff}, v.Codewords())
		for mask := Mask(0); mask < NumMasks; mask += 3 {
			m := tmpl.Clone()
			m.Place(NewBitStream(cw))
			m.ApplyMask(mask)
			m.SetFormat(H, mask)
			for row := 0; row < m.Size; row++ {
				for col := 0; col < m.Size; col++ {
					if !tmpl.IsFunction(row, col) {
						continue
					}
					require.True(t, m.IsFunction(row, col))
					if !format[[2]int{row, col}] {
						require.Equal(t, tmpl.Dark(row, col), m.Dark(row, col),
							"version %d mask %d (%d,%d)", v, mask, row, col)
					}
				}
			}
		}
	}
}

func TestSetFormat(t *testing.T) {
	m, err := NewMatrix(2)
	require.NoError(t, err)
	a, b := formatCells(m.Size)
	for l := L; l <= H; l++ {
		for mask := Mask(0); mask < NumMasks; mask++ {
			m.SetFormat(l, mask)
			var fa, fb uint16
			for k := 14; k >= 0; k-- {
				fa <<= 1
				fb <<= 1
				if m.Dark(a[k][0], a[k][1]) {
					fa |= 1
				}
				if m.Dark(b[k][0], b[k][1]) {
					fb |= 1
				}
			}
			assert.Equal(t, FormatBits(l, mask), fa)
			assert.Equal(t, FormatBits(l, mask), fb)
			assert.True(t, m.Dark(m.Size-8, 8))
		}
	}
}

func TestPlace(t *testing.T) {
	m, err := NewMatrix(1)
	require.NoError(t, err)
	m.Place(NewBitStream([]byte{0xa0}))
	assert.True(t, m.Dark(20, 20))
	assert.False(t, m.Dark(20, 19))
	assert.True(t, m.Dark(19, 20))
	assert.False(t, m.Dark(19, 19))
	assert.False(t, m.Dark(9, 9))
	assert.False(t, m.IsFunction(20, 20))
}

func TestMask(t *testing.T) {
	m, err := NewMatrix(1)
	require.NoError(t, err)
	for mask := Mask(0); mask < NumMasks; mask++ {
		c := m.Clone()
		c.ApplyMask(mask)
		for row := 0; row < m.Size; row++ {
			for col := 0; col < m.Size; col++ {
				want := m.Dark(row, col)
				if !m.IsFunction(row, col) && mask.At(row, col) {
					want = !want
				}
				require.Equal(t, want, c.Dark(row, col))
			}
		}
		c.ApplyMask(mask)
		assert.Equal(t, m.mod, c.mod)
	}
	assert.True(t, Mask(0).At(0, 0))
	assert.False(t, Mask(0).At(0, 1))
	assert.True(t, Mask(4).At(1, 2))
	assert.False(t, Mask(4).At(2, 0))
	assert.True(t, Mask(4).At(2, 3))
	assert.Panics(t, func() { m.ApplyMask(8) })
	assert.False(t, BestMask.Valid())
}

func TestCode(t *testing.T) {
	m, err := NewMatrix(1)
	require.NoError(t, err)
	m.Place(NewBitStream([]byte{0x5a, 0x3c}))
	c := m.Code()
	assert.Equal(t, 21, c.Size)
	assert.Equal(t, 3, c.Stride)
	for y := -1; y <= 21; y++ {
		for x := -1; x <= 21; x++ {
			require.Equal(t, m.Dark(y, x), c.Black(x, y), "(%d,%d)", x, y)
		}
	}
}
