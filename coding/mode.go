// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmpty is returned when asked to encode an empty string.
var ErrEmpty = errors.New("qr: empty content")

// A Mode is a QR segment encoding mode.  Its value is the 4 bit mode
// indicator written in front of the segment.
type Mode int

// Encoding modes.  The zero Mode selects the narrowest mode able to
// encode the text.
const (
	Auto         Mode = 0 // select with Classify
	Numeric      Mode = 1 // digits, 3 per 10 bits
	Alphanumeric Mode = 2 // digits, upper case, SPACE $%*+-./:
	Byte         Mode = 4 // UTF-8 bytes, 8 bits each
)

func (mode Mode) String() string {
	switch mode {
	case Auto:
		return "auto"
	case Numeric:
		return "numeric"
	case Alphanumeric:
		return "alphanumeric"
	case Byte:
		return "byte"
	}
	return strconv.Itoa(int(mode))
}

// Valid reports whether mode is Numeric, Alphanumeric or Byte.
func (mode Mode) Valid() bool {
	return mode == Numeric || mode == Alphanumeric || mode == Byte
}

// ParseMode returns the Mode named s, as returned by String.
// The names may be abbreviated to "num", "alnum" or a single letter
// other than "a".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Auto, nil
	case "n", "num", "numeric":
		return Numeric, nil
	case "alnum", "alphanumeric":
		return Alphanumeric, nil
	case "b", "byte":
		return Byte, nil
	}
	return 0, fmt.Errorf("qr: unknown mode %q", s)
}

// countLength lists the widths of the character count field in the
// three version size classes.
var countLength = [Byte + 1][3]int{
	Numeric:      {10, 12, 14},
	Alphanumeric: {9, 11, 13},
	Byte:         {8, 16, 16},
}

// CountLength returns the width in bits of the character count field
// for mode at version v.
func (mode Mode) CountLength(v Version) int {
	if !mode.Valid() {
		panic("qr: internal error: count length of mode " + mode.String())
	}
	return countLength[mode][v.SizeClass()]
}

const (
	alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]
	digitmask uint64 = 0x00000000_03ff0000 // [0-9]
)

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

// IsNumeric reports whether r is a decimal digit.
func IsNumeric(r rune) bool {
	return digitmask>>(uint32(r)-' ')&1 != 0
}

// IsAlphanumeric reports whether r belongs to the QR alphanumeric set.
func IsAlphanumeric(r rune) bool {
	return alphamask>>(uint32(r)-' ')&1 != 0
}

// Classify returns the narrowest mode able to encode text:
// Numeric if it consists of digits, Alphanumeric if every character
// belongs to the alphanumeric set, Byte otherwise.
func Classify(text string) Mode {
	mode := Numeric
	for i := 0; i < len(text); i++ {
		r := rune(text[i])
		if IsNumeric(r) {
			continue
		}
		if !IsAlphanumeric(r) {
			return Byte
		}
		mode = Alphanumeric
	}
	return mode
}

// A Segment describes a QR code segment.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// SegmentError represents an invalid Segment.
type SegmentError Segment

func (e SegmentError) Error() string {
	if e.Text == "" {
		return ErrEmpty.Error()
	}
	if e.Mode.Valid() {
		return fmt.Sprintf("qr: non-%s string %#q", e.Mode, e.Text)
	}
	return fmt.Sprintf("qr: invalid mode %d", e.Mode)
}

// Is makes errors.Is(err, ErrEmpty) hold for empty segments.
func (e SegmentError) Is(target error) bool {
	return target == ErrEmpty && e.Text == ""
}

// ModeError represents an invalid Mode number.
type ModeError Mode

func (e ModeError) Error() string {
	return fmt.Sprintf("qr: invalid mode %s", Mode(e))
}

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	if seg.Text == "" {
		return false
	}
	switch seg.Mode {
	case Numeric, Alphanumeric:
		is := IsNumeric
		if seg.Mode == Alphanumeric {
			is = IsAlphanumeric
		}
		for i := 0; i < len(seg.Text); i++ {
			if !is(rune(seg.Text[i])) {
				return false
			}
		}
		return true
	case Byte:
		return true
	}
	return false
}

// Resolve returns seg with Auto mode replaced by the result of
// Classify.
func (seg Segment) Resolve() Segment {
	if seg.Mode == Auto {
		seg.Mode = Classify(seg.Text)
	}
	return seg
}

// Count returns the value of the character count field for seg:
// the length of the text in bytes, which equals the number of
// characters in the Numeric and Alphanumeric modes.
func (seg Segment) Count() int {
	return len(seg.Text)
}

// DataLength returns the encoded length of seg in bits, excluding the
// mode indicator and the character count.
func (seg Segment) DataLength() int {
	n := len(seg.Text)
	switch seg.Mode {
	case Numeric:
		return (10*n + 2) / 3
	case Alphanumeric:
		return (11*n + 1) / 2
	}
	return n * 8
}

// EncodedLength returns the encoded length of seg in bits at version v,
// including the header.
func (seg Segment) EncodedLength(v Version) int {
	return 4 + seg.Mode.CountLength(v) + seg.DataLength()
}

// Encode writes the data bits of seg to b.  The header is written by
// Plan.Encode.
func (seg Segment) Encode(b *Bits) error {
	if !seg.IsValid() {
		return SegmentError(seg)
	}
	s := seg.Text
	switch seg.Mode {
	case Numeric:
		for ; len(s) >= 3; s = s[3:] {
			b.Write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+
				uint32(s[2]-'0'), 10)
		}
		switch len(s) {
		case 2:
			b.Write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
		case 1:
			b.Write(uint32(s[0]-'0'), 4)
		}
	case Alphanumeric:
		for ; len(s) >= 2; s = s[2:] {
			b.Write(uint32(alpha[s[0]&0x3f])*45+
				uint32(alpha[s[1]&0x3f]), 11)
		}
		if s != "" {
			b.Write(uint32(alpha[s[0]&0x3f]), 6)
		}
	default:
		for i := 0; i < len(s); i++ {
			b.Write(uint32(s[i]), 8)
		}
	}
	return nil
}
