// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// parseMatrix returns a data-only Matrix drawn with '#' for dark and
// '.' for light modules.
func parseMatrix(rows ...string) *Matrix {
	m := &Matrix{Size: len(rows), mod: make([]byte, len(rows)*len(rows))}
	for row, s := range rows {
		if len(s) != m.Size {
			panic("parseMatrix: matrix is not square")
		}
		for col := range s {
			if s[col] == '#' {
				m.mod[row*m.Size+col] = dark
			}
		}
	}
	return m
}

// transpose returns m mirrored along its main diagonal.
func transpose(m *Matrix) *Matrix {
	t := m.Clone()
	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			t.mod[col*m.Size+row] = m.mod[row*m.Size+col]
		}
	}
	return t
}

func blank(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = strings.Repeat(".", n)
	}
	return rows
}

func TestPenaltyLight(t *testing.T) {
	m := parseMatrix(blank(5)...)
	assert.Equal(t, 30, m.runPenalty())
	assert.Equal(t, 48, m.boxPenalty())
	assert.Equal(t, 0, m.finderPenalty())
	assert.Equal(t, 100, m.balancePenalty())
	assert.Equal(t, 178, m.Penalty())
}

func TestPenaltyCheckerboard(t *testing.T) {
	m := parseMatrix(
		"#.#.",
		".#.#",
		"#.#.",
		".#.#",
	)
	assert.Equal(t, 0, m.Penalty())
}

func TestRunPenalty(t *testing.T) {
	m := parseMatrix(
		"#######",
		".#.#.#.",
		"#.#.#.#",
		".#.#.#.",
		"#.#.#.#",
		".#.#.#.",
		"..#####",
	)
	// 7-run in row 0 and 5-run in row 6.
	assert.Equal(t, 5+3, m.runPenalty())
	assert.Equal(t, 5+3, transpose(m).runPenalty())
	assert.Equal(t, 0, m.boxPenalty())
}

func TestBoxPenalty(t *testing.T) {
	m := parseMatrix(
		"###.",
		"###.",
		"..##",
		"..##",
	)
	// Two overlapping dark boxes on top, one light and one dark below.
	assert.Equal(t, 4*BoxPP, m.boxPenalty())
}

func TestFinderPenalty(t *testing.T) {
	rows := blank(11)
	rows[0] = "#.###.#...."
	rows[1] = "....#.###.#"
	m := parseMatrix(rows...)
	assert.Equal(t, 2*FindPP, m.finderPenalty())
	assert.Equal(t, 2*FindPP, transpose(m).finderPenalty())

	// Dark modules on both sides.
	rows = blank(15)
	rows[0] = "#####.###.#####"
	rows[2] = "#...#.###.#...#"
	m = parseMatrix(rows...)
	assert.Equal(t, 0, m.finderPenalty())
	assert.Equal(t, 0, transpose(m).finderPenalty())

	// Light on one side only is enough.
	rows[4] = "#####.###.#...."
	m = parseMatrix(rows...)
	assert.Equal(t, FindPP, m.finderPenalty())
}

func TestBalance(t *testing.T) {
	for _, tt := range []struct{ n, total, want int }{
		{50, 100, 0},
		{45, 100, 10},
		{44, 100, 10},
		{55, 100, 10},
		{40, 100, 20},
		{39, 100, 20},
		{35, 100, 30},
		{0, 100, 100},
		{100, 100, 100},
		{220, 441, 0},
		{198, 441, 10},
	} {
		assert.Equal(t, tt.want, balance(tt.n, tt.total), "%d/%d", tt.n, tt.total)
	}
}
