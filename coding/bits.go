// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: mode
// selection, data encoding, capacity planning, error correction,
// block interleaving, module placement and masking.
package coding // import "github.com/qrgen/qrgen/coding"

import "github.com/qrgen/qrgen/gf256"

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// Bits is an append-only bit buffer, most significant bit first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for a QR code of the
// given version.
func NewBits(v Version) *Bits {
	return &Bits{b: make([]byte, 0, v.Codewords())}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written to b.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the contents of b.  It panics unless b holds a
// whole number of bytes.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the low nbit bits of v to b, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit <= 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// Append appends the contents of o to b.
func (b *Bits) Append(o *Bits) {
	n := o.nbit
	if b.nbit&7 == 0 {
		b.b = append(b.b, o.b...)
		b.nbit += n
		return
	}
	for _, v := range o.b {
		w := min(n, 8)
		b.Write(uint32(v)>>(8-w), w)
		n -= w
	}
}

// PadTo adds up to 4 terminator bits to b, zero bits up to a byte
// boundary and alternating 0xec and 0x11 bytes until b holds n bits.
// n must be a multiple of 8 not less than b.Bits().
func (b *Bits) PadTo(n int) {
	if b.nbit > n || n&7 != 0 {
		panic("qr: too much data")
	}
	b.Write(0, min(4, n-b.nbit))
	b.Write(0, -b.nbit&7)
	for pad := uint32(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.Write(pad, 8)
	}
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Len returns the number of bits in s.
func (s *BitStream) Len() int { return len(s.b) * 8 }

// Next returns the next bit from s as 0 or 1.
// Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}
