// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  EncodePBM disregards c.Palette, as other PNM
// formats are not supported.
func (c *Code) EncodePBM(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	length := c.Scale * (c.Size + c.Border*2)
	if length > 32767*8 {
		return ErrLargeImage
	}
	b := bufio.NewWriter(w)
	ls := strconv.Itoa(length)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	row := make([]byte, (length+7)/8)
	for y := -c.Border; y < c.Size+c.Border; y++ {
		c.pbmRow(row, y)
		for i := 0; i < c.Scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// pbmRow packs module row y, quiet zone included, into row at c.Scale
// bits per module.  In PBM 1 is black.
func (c *Code) pbmRow(row []byte, y int) {
	clear(row)
	j := 0
	for x := -c.Border; x < c.Size+c.Border; x++ {
		if c.Black(x, y) == c.Reverse {
			j += c.Scale
			continue
		}
		for end := j + c.Scale; j < end; j++ {
			row[j>>3] |= 0x80 >> (j & 7)
		}
	}
}
