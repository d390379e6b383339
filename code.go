// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/qrgen/qrgen/coding"
	"golang.org/x/image/draw"
)

const (
	DefaultScale  = 8    // image pixels per module
	DefaultBorder = 4    // quiet zone modules
	MaxDimension  = 2048 // largest Fit dimension
)

// A Code is a square pixel grid.
// It implements image.Image and direct PNG encoding.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row
	Scale  int    // number of image pixels per QR module
	Border int    // quiet zone width in modules

	// Palette holds the background and foreground colours.
	// If nil, white and black are used.
	Palette *[2]color.Color
	Reverse bool // swap colours
}

func newCode(c *coding.Code) *Code {
	return &Code{
		Bitmap: c.Bitmap,
		Size:   c.Size,
		Stride: c.Stride,
		Scale:  DefaultScale,
		Border: DefaultBorder,
	}
}

func (c *Code) isValid() bool {
	return c != nil && c.Size > 0 && c.Scale > 0 && c.Border >= 0 &&
		c.Stride >= (c.Size+7)/8 && len(c.Bitmap) >= c.Size*c.Stride
}

// Black returns true if the pixel at (x,y) is black.
// Coordinates are in modules, excluding the quiet zone.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}

// Modules returns the grid of modules including the quiet zone, true
// for dark.  The grid has Size+2*Border rows and columns.
func (c *Code) Modules() [][]bool {
	n := c.Size + 2*c.Border
	buf := make([]bool, n*n)
	grid := make([][]bool, n)
	for y := range grid {
		grid[y] = buf[y*n : (y+1)*n]
		for x := range grid[y] {
			grid[y][x] = c.Black(x-c.Border, y-c.Border)
		}
	}
	return grid
}

// colors returns the background and foreground colours, swapped if
// c.Reverse is set.
func (c *Code) colors() [2]color.Color {
	pal := [2]color.Color{whiteColor, blackColor}
	if c.Palette != nil {
		pal = *c.Palette
	}
	if c.Reverse {
		pal[0], pal[1] = pal[1], pal[0]
	}
	return pal
}

// Image returns an Image displaying the code.
func (c *Code) Image() image.Image {
	pal := c.colors()
	model := color.GrayModel
	if c.Palette != nil {
		model = color.Palette(pal[:])
	}
	return &codeImage{c, pal, model}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
	pal   [2]color.Color
	model color.Model
}

var (
	whiteColor color.Color = color.Gray{0xFF}
	blackColor color.Color = color.Gray{0x00}
)

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + 2*c.Border) * c.Scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if x < 0 || y < 0 {
		return c.pal[0]
	}
	if c.Black(x/c.Scale-c.Border, y/c.Scale-c.Border) {
		return c.pal[1]
	}
	return c.pal[0]
}

// RGBA64At lets draw.Scale take its generic image.RGBA64Image path.
func (c *codeImage) RGBA64At(x, y int) color.RGBA64 {
	r, g, b, a := c.At(x, y).RGBA()
	return color.RGBA64{uint16(r), uint16(g), uint16(b), uint16(a)}
}

func (c *codeImage) ColorModel() color.Model {
	return c.model
}

// PNG returns a PNG image displaying the code, or nil if the code is
// invalid or too large.
func (c *Code) PNG() []byte {
	var b bytes.Buffer
	if err := c.EncodePNG(&b); err != nil {
		return nil
	}
	return b.Bytes()
}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error {
	if w == nil || !c.isValid() {
		return ErrArgs
	}
	if (c.Size+2*c.Border)*c.Scale > 32767*8 {
		return ErrLargeImage
	}
	return png.Encode(w, c.Image())
}

// AutoDimension returns the smallest multiple of 256 pixels that
// gives every module, quiet zone included, at least 10 pixels.
func (c *Code) AutoDimension() int {
	n := (c.Size + 2*c.Border) * 10
	return (n + 255) &^ 255
}

// Fit returns a dim by dim image displaying the code.  Modules are
// scaled by the largest integer factor that fits and the code is
// centred.  c.Scale is ignored.  dim must not exceed MaxDimension.
func (c *Code) Fit(dim int) (image.Image, error) {
	if !c.isValid() {
		return nil, ErrArgs
	}
	if dim > MaxDimension {
		return nil, ErrLargeImage
	}
	n := c.Size + 2*c.Border
	k := dim / n
	if k == 0 {
		return nil, ErrArgs
	}
	pal := c.colors()
	dst := image.NewNRGBA(image.Rect(0, 0, dim, dim))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(pal[0]), image.Point{}, draw.Src)

	unit := *c
	unit.Scale = 1
	off := (dim - n*k) / 2
	draw.NearestNeighbor.Scale(dst, image.Rect(off, off, off+n*k, off+n*k),
		unit.Image(), image.Rect(0, 0, n, n), draw.Src, nil)
	return dst, nil
}

// String renders the code as text using Unicode half blocks, two rows
// of modules per line.  Light modules are drawn as blocks, suiting
// light text on a dark terminal; c.Reverse draws dark modules instead.
func (c *Code) String() string {
	if !c.isValid() {
		return ""
	}
	const (
		none  = " "
		upper = "▀"
		lower = "▄"
		full  = "█"
	)
	lines := [4]string{none, upper, lower, full}
	ink := func(x, y int) bool { return c.Black(x, y) == c.Reverse }
	end := c.Size + c.Border
	var b strings.Builder
	b.Grow((end + c.Border) * (end + c.Border) * 3 / 2)
	for y := -c.Border; y < end; y += 2 {
		for x := -c.Border; x < end; x++ {
			i := 0
			if ink(x, y) {
				i = 1
			}
			if y+1 < end && ink(x, y+1) {
				i |= 2
			}
			b.WriteString(lines[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
