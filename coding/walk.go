// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A cursor is a position in the zigzag scan of a QR code.
//
// The scan covers the matrix in column pairs from right to left,
// alternately upwards and downwards, visiting the right column of the
// pair before the left one in every row.  Column 6, the vertical
// timing pattern, is skipped.  The scan stops short of the finder and
// format areas at the ends of the columns next to them, so it visits
// function modules only where alignment, timing and version patterns
// cross the columns; Place skips those.
type cursor struct {
	row, col int
	up       bool
}

// start returns the first position of the scan of a matrix of size siz.
func start(siz int) cursor {
	return cursor{row: siz - 1, col: siz - 1, up: true}
}

// right reports whether c is in the right column of its pair.
func (c cursor) right() bool {
	if c.col > 6 {
		return c.col&1 == 0
	}
	return c.col&1 != 0
}

// end reports whether c is at the last row of its column pair.
func (c cursor) end(siz int) bool {
	if c.up {
		return c.row == 0 || c.row == 9 && (c.col <= 8 || c.col >= siz-8)
	}
	return c.row == siz-1 || c.row == siz-9 && c.col <= 8
}

// next returns the position following c in a matrix of size siz and
// true, or c and false when c is the last position.
func (c cursor) next(siz int) (cursor, bool) {
	switch {
	case c.right():
		c.col--
	case !c.end(siz):
		c.col++
		if c.up {
			c.row--
		} else {
			c.row++
		}
	case c.row == siz-9 && c.col == 0:
		return c, false
	default:
		switch {
		case c.row == siz-1 && c.col == 9:
			// Column 8 starts above the lower left format area.
			c.row, c.col = siz-9, 8
		case c.col == 7:
			c.col = 5
		default:
			c.col--
		}
		c.up = !c.up
	}
	return c, true
}
