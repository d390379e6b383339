// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"strconv"
)

var ErrMask = errors.New("qr: invalid mask")

// A Mask is a QR data mask pattern number, 0 to 7.
type Mask int

// Mask selection policies for Build.
const (
	BestMask   Mask = -1 // evaluate all masks and keep the lowest penalty
	RandomMask Mask = -2 // pick a mask uniformly at random
)

// NumMasks is the number of mask patterns.
const NumMasks = 8

func (mask Mask) String() string {
	switch mask {
	case BestMask:
		return "best"
	case RandomMask:
		return "random"
	}
	return strconv.Itoa(int(mask))
}

// Valid reports whether mask is a mask pattern number.
func (mask Mask) Valid() bool {
	return 0 <= mask && mask < NumMasks
}

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFunc = [NumMasks]func(row, col int) int{
	func(i, j int) int { return (i + j) % 2 },
	func(i, j int) int { return i % 2 },
	func(i, j int) int { return j % 3 },
	func(i, j int) int { return (i + j) % 3 },
	func(i, j int) int { return (i/2 + j/3) % 2 },
	func(i, j int) int { return i*j%2 + i*j%3 },
	func(i, j int) int { return (i*j%2 + i*j%3) % 2 },
	func(i, j int) int { return (i*j%3 + (i+j)%2) % 2 },
}

// At reports whether mask inverts the module at (row, col).
func (mask Mask) At(row, col int) bool {
	return maskFunc[mask](row, col) == 0
}

// ApplyMask inverts the data modules of m selected by mask.
// Applying the same mask twice restores m.
func (m *Matrix) ApplyMask(mask Mask) {
	if !mask.Valid() {
		panic("qr: internal error: mask " + mask.String())
	}
	f := maskFunc[mask]
	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			if !m.IsFunction(row, col) && f(row, col) == 0 {
				m.flip(row, col)
			}
		}
	}
}
