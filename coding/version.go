// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"strconv"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// Versions number from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

// Valid reports whether v is in the range MinVersion to MaxVersion.
func (v Version) Valid() bool {
	return MinVersion <= v && v <= MaxVersion
}

// Size returns the number of modules on a side of a QR code of
// version v.
func (v Version) Size() int {
	return int(v)*4 + 17
}

// Version size classes select the width of the character count field.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 7% of codewords can be restored
	M              // 15%
	Q              // 25%
	H              // 30%
)

func (l Level) String() string {
	if l.Valid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// Valid reports whether l is one of L, M, Q and H.
func (l Level) Valid() bool {
	return L <= l && l <= H
}

// ParseLevel returns the Level named by s, one of "L", "M", "Q" and
// "H" in either case.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "l", "L":
		return L, nil
	case "m", "M":
		return M, nil
	case "q", "Q":
		return Q, nil
	case "h", "H":
		return H, nil
	}
	return 0, ErrLevel
}

// A version describes metadata associated with a version.
type version struct {
	bytes int      // total codewords, data and check
	level [4]level // block structure per level
}

type level struct {
	nblock int // number of blocks
	check  int // check codewords per block
}

// vtab lists the codeword capacity and block structure of every version.
var vtab = [MaxVersion + 1]version{
	{},
	{26, [4]level{{1, 7}, {1, 10}, {1, 13}, {1, 17}}}, // 1
	{44, [4]level{{1, 10}, {1, 16}, {1, 22}, {1, 28}}},
	{70, [4]level{{1, 15}, {1, 26}, {2, 18}, {2, 22}}},
	{100, [4]level{{1, 20}, {2, 18}, {2, 26}, {4, 16}}},
	{134, [4]level{{1, 26}, {2, 24}, {4, 18}, {4, 22}}}, // 5
	{172, [4]level{{2, 18}, {4, 16}, {4, 24}, {4, 28}}},
	{196, [4]level{{2, 20}, {4, 18}, {6, 18}, {5, 26}}},
	{242, [4]level{{2, 24}, {4, 22}, {6, 22}, {6, 26}}},
	{292, [4]level{{2, 30}, {5, 22}, {8, 20}, {8, 24}}},
	{346, [4]level{{4, 18}, {5, 26}, {8, 24}, {8, 28}}}, // 10
	{404, [4]level{{4, 20}, {5, 30}, {8, 28}, {11, 24}}},
	{466, [4]level{{4, 24}, {8, 22}, {10, 26}, {11, 28}}},
	{532, [4]level{{4, 26}, {9, 22}, {12, 24}, {16, 22}}},
	{581, [4]level{{4, 30}, {9, 24}, {16, 20}, {16, 24}}},
	{655, [4]level{{6, 22}, {10, 24}, {12, 30}, {18, 24}}}, // 15
	{733, [4]level{{6, 24}, {10, 28}, {17, 24}, {16, 30}}},
	{815, [4]level{{6, 28}, {11, 28}, {16, 28}, {19, 28}}},
	{901, [4]level{{6, 30}, {13, 26}, {18, 28}, {21, 28}}},
	{991, [4]level{{7, 28}, {14, 26}, {21, 26}, {25, 26}}},
	{1085, [4]level{{8, 28}, {16, 26}, {20, 30}, {25, 28}}}, // 20
	{1156, [4]level{{8, 28}, {17, 26}, {23, 28}, {25, 30}}},
	{1258, [4]level{{9, 28}, {17, 28}, {23, 30}, {34, 24}}},
	{1364, [4]level{{9, 30}, {18, 28}, {25, 30}, {30, 30}}},
	{1474, [4]level{{10, 30}, {20, 28}, {27, 30}, {32, 30}}},
	{1588, [4]level{{12, 26}, {21, 28}, {29, 30}, {35, 30}}}, // 25
	{1706, [4]level{{12, 28}, {23, 28}, {34, 28}, {37, 30}}},
	{1828, [4]level{{12, 30}, {25, 28}, {34, 30}, {40, 30}}},
	{1921, [4]level{{13, 30}, {26, 28}, {35, 30}, {42, 30}}},
	{2051, [4]level{{14, 30}, {28, 28}, {38, 30}, {45, 30}}},
	{2185, [4]level{{15, 30}, {29, 28}, {40, 30}, {48, 30}}}, // 30
	{2323, [4]level{{16, 30}, {31, 28}, {43, 30}, {51, 30}}},
	{2465, [4]level{{17, 30}, {33, 28}, {45, 30}, {54, 30}}},
	{2611, [4]level{{18, 30}, {35, 28}, {48, 30}, {57, 30}}},
	{2761, [4]level{{19, 30}, {37, 28}, {51, 30}, {60, 30}}},
	{2876, [4]level{{19, 30}, {38, 28}, {53, 30}, {63, 30}}}, // 35
	{3034, [4]level{{20, 30}, {40, 28}, {56, 30}, {66, 30}}},
	{3196, [4]level{{21, 30}, {43, 28}, {59, 30}, {70, 30}}},
	{3362, [4]level{{22, 30}, {45, 28}, {62, 30}, {74, 30}}},
	{3532, [4]level{{24, 30}, {47, 28}, {65, 30}, {77, 30}}},
	{3706, [4]level{{25, 30}, {49, 28}, {68, 30}, {81, 30}}}, // 40
}

// alignment lists the row and column coordinates of alignment
// pattern centres.  Version 1 has none.
var alignment = [MaxVersion + 1][]int{
	2:  {6, 18},
	3:  {6, 22},
	4:  {6, 26},
	5:  {6, 30},
	6:  {6, 34},
	7:  {6, 22, 38},
	8:  {6, 24, 42},
	9:  {6, 26, 46},
	10: {6, 28, 50},
	11: {6, 30, 54},
	12: {6, 32, 58},
	13: {6, 34, 62},
	14: {6, 26, 46, 66},
	15: {6, 26, 48, 70},
	16: {6, 26, 50, 74},
	17: {6, 30, 54, 78},
	18: {6, 30, 56, 82},
	19: {6, 30, 58, 86},
	20: {6, 34, 62, 90},
	21: {6, 28, 50, 72, 94},
	22: {6, 26, 50, 74, 98},
	23: {6, 30, 54, 78, 102},
	24: {6, 28, 54, 80, 106},
	25: {6, 32, 58, 84, 110},
	26: {6, 30, 58, 86, 114},
	27: {6, 34, 62, 90, 118},
	28: {6, 26, 50, 74, 98, 122},
	29: {6, 30, 54, 78, 102, 126},
	30: {6, 26, 52, 78, 104, 130},
	31: {6, 30, 56, 82, 108, 134},
	32: {6, 34, 60, 86, 112, 138},
	33: {6, 30, 58, 86, 114, 142},
	34: {6, 34, 62, 90, 118, 146},
	35: {6, 30, 54, 78, 102, 126, 150},
	36: {6, 24, 50, 76, 102, 128, 154},
	37: {6, 28, 54, 80, 106, 132, 158},
	38: {6, 32, 58, 84, 110, 136, 162},
	39: {6, 26, 54, 82, 110, 138, 166},
	40: {6, 30, 58, 86, 114, 142, 170},
}

// vinfo lists the 18-bit version information codes, 6 data bits and
// 12 BCH bits, for versions 7 and up.
var vinfo = [MaxVersion + 1]uint32{
	7: 0x07c94, 0x085bc, 0x09a99, 0x0a4d3, 0x0bbf6, 0x0c762, 0x0d847,
	0x0e60d, 0x0f928, 0x10b78, 0x1145d, 0x12a17, 0x13532, 0x149a6,
	0x15683, 0x168c9, 0x177ec, 0x18ec4, 0x191e1, 0x1afab, 0x1b08e,
	0x1cc1a, 0x1d33f, 0x1ed75, 0x1f250, 0x209d5, 0x216f0, 0x228ba,
	0x2379f, 0x24b0b, 0x2542e, 0x26a64, 0x27541, 0x28c69,
}

// ftab lists the 15-bit format information codes, 5 data bits and 10
// BCH bits masked with 0x5412, per level and mask.
var ftab = [4][8]uint16{
	L: {0x77c4, 0x72f3, 0x7daa, 0x789d, 0x662f, 0x6318, 0x6c41, 0x6976},
	M: {0x5412, 0x5125, 0x5e7c, 0x5b4b, 0x45f9, 0x40ce, 0x4f97, 0x4aa0},
	Q: {0x355f, 0x3068, 0x3f31, 0x3a06, 0x24b4, 0x2183, 0x2eda, 0x2bed},
	H: {0x1689, 0x13be, 0x1ce7, 0x19d0, 0x0762, 0x0255, 0x0d0c, 0x083b},
}

// info returns the table entry for v and l.  Out of range arguments
// are a programming error.
func info(v Version, l Level) (*version, level) {
	if !v.Valid() || !l.Valid() {
		panic("qr: internal error: version " + v.String() +
			" level " + l.String() + " out of range")
	}
	vt := &vtab[v]
	return vt, vt.level[l]
}

// Codewords returns the total number of codewords, data and check,
// in a QR code of version v.
func (v Version) Codewords() int {
	vt, _ := info(v, L)
	return vt.bytes
}

// DataBytes returns the number of data codewords that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	vt, lev := info(v, l)
	return vt.bytes - lev.nblock*lev.check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int {
	return v.DataBytes(l) * 8
}

// Blocks returns the number of blocks and the number of check
// codewords per block for the given version and level.
func (v Version) Blocks(l Level) (nblock, check int) {
	_, lev := info(v, l)
	return lev.nblock, lev.check
}

// AlignmentCenters returns the coordinates of alignment pattern
// centres, used for both rows and columns.
func (v Version) AlignmentCenters() []int {
	info(v, L)
	return append([]int(nil), alignment[v]...)
}

// FormatBits returns the 15-bit format information for l and mask.
func FormatBits(l Level, mask Mask) uint16 {
	if !l.Valid() || !mask.Valid() {
		panic("qr: internal error: format " + l.String() + "/" +
			strconv.Itoa(int(mask)))
	}
	return ftab[l][mask]
}

// VersionBits returns the 18-bit version information for v, or 0 for
// versions below 7.
func VersionBits(v Version) uint32 {
	info(v, L)
	return vinfo[v]
}
