// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/qrgen/qrgen/gf256"

// Split divides the data codewords of a QR code of version v and
// level l into blocks.  When the codewords do not divide evenly, the
// last blocks are one codeword longer.  The blocks share the
// underlying array of data.
func Split(data []byte, v Version, l Level) [][]byte {
	nd := v.DataBytes(l)
	if len(data) != nd {
		panic("qr: wrong data length")
	}
	nblock, _ := v.Blocks(l)
	db := nd / nblock
	normal := nblock - nd%nblock
	blocks := make([][]byte, nblock)
	for i := range blocks {
		n := db
		if i >= normal {
			n++
		}
		blocks[i], data = data[:n:n], data[n:]
	}
	return blocks
}

// AddECC returns the error correction blocks for the data blocks of
// a QR code of version v and level l, one per data block.
func AddECC(blocks [][]byte, v Version, l Level) [][]byte {
	nblock, check := v.Blocks(l)
	if len(blocks) != nblock {
		panic("qr: wrong number of blocks")
	}
	rs := gf256.NewRSEncoder(Field, check)
	buf := make([]byte, nblock*check)
	ecc := make([][]byte, nblock)
	for i, b := range blocks {
		ecc[i], buf = buf[:check:check], buf[check:]
		rs.ECC(b, ecc[i])
	}
	return ecc
}

// Interleave returns the final codeword sequence: codeword i of every
// data block in block order for each i, followed by the error
// correction blocks interleaved the same way.  Blocks shorter than
// i+1 are skipped.
func Interleave(data, ecc [][]byte) []byte {
	n := 0
	for _, b := range data {
		n += len(b)
	}
	for _, b := range ecc {
		n += len(b)
	}
	dst := make([]byte, 0, n)
	dst = interleave(dst, data)
	return interleave(dst, ecc)
}

// interleave appends the codewords of blocks to dst column by column.
func interleave(dst []byte, blocks [][]byte) []byte {
	width := 0
	for _, b := range blocks {
		width = max(width, len(b))
	}
	for i := 0; i < width; i++ {
		for _, b := range blocks {
			if i < len(b) {
				dst = append(dst, b[i])
			}
		}
	}
	return dst
}

// Codewords returns the interleaved data and error correction
// codewords for the padded data of a QR code of version v and level l.
func Codewords(data []byte, v Version, l Level) []byte {
	blocks := Split(data, v, l)
	return Interleave(blocks, AddECC(blocks, v, l))
}
