// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf256 implements arithmetic over the Galois Field GF(256)
// and the Reed-Solomon encoding used by QR codes.
package gf256 // import "github.com/qrgen/qrgen/gf256"

import "strconv"

// A Field represents an instance of GF(256) defined by a specific
// polynomial and generator.
type Field struct {
	log [256]byte // log[0] is unused
	exp [510]byte // exp[i] for i in [0, 510), so exp[a+b] needs no reduction
}

// NewField returns a new field corresponding to the polynomial poly
// and generator α.  The Reed-Solomon encoding in QR codes uses
// polynomial 0x11d with generator 2.
//
// The choice of generator α only affects the Exp and Log operations.
func NewField(poly, α int) *Field {
	if poly < 0x100 || poly >= 0x200 || reducible(poly) {
		panic("gf256: invalid polynomial: " + strconv.Itoa(poly))
	}

	var f Field
	x := 1
	for i := 0; i < 255; i++ {
		if x == 1 && i != 0 {
			panic("gf256: invalid generator " + strconv.Itoa(α) +
				" for polynomial " + strconv.Itoa(poly))
		}
		f.exp[i] = byte(x)
		f.exp[i+255] = byte(x)
		f.log[x] = byte(i)
		x = mul(x, α, poly)
	}
	f.log[0] = 255
	return &f
}

// reducible reports whether p is reducible over GF(2).
func reducible(p int) bool {
	// Multiplying n-degree by m-degree gives n+m-degree,
	// so only need to try up to degree 4 divisors of a degree 8 p.
	np := nbit(p)
	for q := 2; q < 1<<uint(np/2+1); q++ {
		if polyDiv(p, q) == 0 {
			return true
		}
	}
	return false
}

// nbit returns the number of significant bits in p.
func nbit(p int) uint {
	n := uint(0)
	for ; p > 0; p >>= 1 {
		n++
	}
	return n
}

// polyDiv divides the polynomial p by q and returns the remainder.
func polyDiv(p, q int) int {
	np, nq := nbit(p), nbit(q)
	for ; np >= nq; np-- {
		if p&(1<<(np-1)) != 0 {
			p ^= q << (np - nq)
		}
	}
	return p
}

// mul returns the product x*y mod poly, a GF(256) multiplication.
func mul(x, y, poly int) int {
	z := 0
	for x > 0 {
		if x&1 != 0 {
			z ^= y
		}
		x >>= 1
		y <<= 1
		if y&0x100 != 0 {
			y ^= poly
		}
	}
	return z
}

// Add returns the sum of x and y in the field.
func (f *Field) Add(x, y byte) byte {
	return x ^ y
}

// Exp returns the base-α exponential of e in the field.
// If e < 0, Exp returns 0.
func (f *Field) Exp(e int) byte {
	if e < 0 {
		return 0
	}
	return f.exp[e%255]
}

// Log returns the base-α logarithm of x in the field.
// If x == 0, Log returns -1.
func (f *Field) Log(x byte) int {
	if x == 0 {
		return -1
	}
	return int(f.log[x])
}

// Inv returns the multiplicative inverse of x in the field.
// If x == 0, Inv returns 0.
func (f *Field) Inv(x byte) byte {
	if x == 0 {
		return 0
	}
	return f.exp[255-f.log[x]]
}

// Mul returns the product of x and y in the field.
func (f *Field) Mul(x, y byte) byte {
	if x == 0 || y == 0 {
		return 0
	}
	return f.exp[int(f.log[x])+int(f.log[y])]
}

// generators lists the QR generator polynomials by degree.  Each
// polynomial is monic; the leading coefficient is omitted and the
// remaining ones are stored as base-2 logarithms, highest degree
// first.  QR codes use exactly these 13 check lengths.
var generators = map[int][]byte{
	7:  {87, 229, 146, 149, 238, 102, 21},
	10: {251, 67, 46, 61, 118, 70, 64, 94, 32, 45},
	13: {74, 152, 176, 100, 86, 100, 106, 104, 130, 218, 206, 140, 78},
	15: {8, 183, 61, 91, 202, 37, 51, 58, 58, 237, 140, 124, 5, 99, 105},
	16: {120, 104, 107, 109, 102, 161, 76, 3, 91, 191, 147, 169, 182, 194,
		225, 120},
	17: {43, 139, 206, 78, 43, 239, 123, 206, 214, 147, 24, 99, 150, 39,
		243, 163, 136},
	18: {215, 234, 158, 94, 184, 97, 118, 170, 79, 187, 152, 148, 252, 179,
		5, 98, 96, 153},
	20: {17, 60, 79, 50, 61, 163, 26, 187, 202, 180, 221, 225, 83, 239,
		156, 164, 212, 212, 188, 190},
	22: {210, 171, 247, 242, 93, 230, 14, 109, 221, 53, 200, 74, 8, 172, 98,
		80, 219, 134, 160, 105, 165, 231},
	24: {229, 121, 135, 48, 211, 117, 251, 126, 159, 180, 169, 152, 192,
		226, 228, 218, 111, 0, 117, 232, 87, 96, 227, 21},
	26: {173, 125, 158, 2, 103, 182, 118, 17, 145, 201, 111, 28, 165, 53,
		161, 21, 245, 142, 13, 102, 48, 227, 153, 145, 218, 70},
	28: {168, 223, 200, 104, 224, 234, 108, 180, 110, 190, 195, 147, 205,
		27, 232, 201, 21, 43, 245, 87, 42, 195, 212, 119, 242, 37, 9, 123},
	30: {41, 173, 145, 152, 216, 31, 179, 182, 50, 48, 110, 86, 239, 96,
		222, 125, 42, 173, 226, 193, 224, 130, 156, 37, 251, 216, 238, 40,
		192, 180},
}

// Lengths returns the supported check lengths in ascending order.
func Lengths() []int {
	return []int{7, 10, 13, 15, 16, 17, 18, 20, 22, 24, 26, 28, 30}
}

// Generator returns the generator polynomial of degree c in log form,
// without the leading coefficient, or nil if c is not a QR check length.
func Generator(c int) []byte {
	g, ok := generators[c]
	if !ok {
		return nil
	}
	return append([]byte(nil), g...)
}

// An RSEncoder implements Reed-Solomon encoding
// over a given field using a given number of error correction bytes.
type RSEncoder struct {
	f   *Field
	c   int
	gen []byte // log-form coefficients, gen[i] multiplies x^(c-1-i)
}

// NewRSEncoder returns a new Reed-Solomon encoder
// over the given field and number of error correction bytes.
// It panics if c is not one of the QR check lengths.
func NewRSEncoder(f *Field, c int) *RSEncoder {
	gen, ok := generators[c]
	if !ok {
		panic("gf256: no generator polynomial of degree " + strconv.Itoa(c))
	}
	return &RSEncoder{f: f, c: c, gen: gen}
}

// Len returns the number of error correction bytes produced.
func (rs *RSEncoder) Len() int { return rs.c }

// ECC writes to check the error correcting code bytes
// for data using the given Reed-Solomon parameters.
//
// The data, padded with c zero bytes, is divided by the generator
// polynomial one leading coefficient at a time; the remainder is the
// check.  A zero leading coefficient only shifts the remainder.
func (rs *RSEncoder) ECC(data []byte, check []byte) {
	if len(check) < rs.c {
		panic("gf256: invalid check byte length")
	}
	if rs.c == 0 {
		return
	}
	f := rs.f
	rem := check[:rs.c]
	clear(rem)
	for _, d := range data {
		lead := d ^ rem[0]
		copy(rem, rem[1:])
		rem[rs.c-1] = 0
		if lead == 0 {
			continue
		}
		lb := int(f.log[lead])
		for i, g := range rs.gen {
			rem[i] ^= f.exp[int(g)+lb]
		}
	}
}
