// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qr "github.com/qrgen/qrgen"
)

func TestColourSet(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want rgba
	}{
		{"fff", rgba{0xff, 0xff, 0xff, 0xff}},
		{"#08f", rgba{0x00, 0x88, 0xff, 0xff}},
		{"08f8", rgba{0x00, 0x88, 0xff, 0x88}},
		{"#123456", rgba{0x12, 0x34, 0x56, 0xff}},
		{"12345678", rgba{0x12, 0x34, 0x56, 0x78}},
		{"Dark Slate Gray", rgba{0x2f, 0x4f, 0x4f, 0xff}},
		{"navy", rgba{0x00, 0x00, 0x80, 0xff}},
	} {
		var c rgba
		require.NoError(t, c.Set(tt.in, nil), tt.in)
		assert.Equal(t, tt.want, c, tt.in)
	}
	var c rgba
	g.colSet = false
	assert.EqualError(t, c.Set("12345", nil), `"12345": bad colour spec`)
	assert.Error(t, c.Set("chartreuse2", nil))
	assert.False(t, g.colSet)
	require.NoError(t, c.Set("red", nil))
	assert.True(t, g.colSet)
	g.colSet = false
	assert.Equal(t, "black", (&rgba{0, 0, 0, 0xff}).String())
	assert.Equal(t, "0088ff80", (&rgba{0, 0x88, 0xff, 0x80}).String())
}

func TestDimension(t *testing.T) {
	d, err := dimension("auto", 29, 512)
	require.NoError(t, err)
	assert.Equal(t, 512, d)
	d, err = dimension("max", 29, 512)
	require.NoError(t, err)
	assert.Equal(t, qr.MaxDimension, d)
	d, err = dimension("300", 29, 512)
	require.NoError(t, err)
	assert.Equal(t, 300, d)
	for _, s := range []string{"28", "4096", "big", ""} {
		_, err = dimension(s, 29, 512)
		assert.Error(t, err, s)
	}
}

func TestRaster(t *testing.T) {
	c, err := qr.Encode("HELLO WORLD", qr.M)
	require.NoError(t, err)
	defer func() { g.dim = "" }()

	g.dim = "auto"
	img, err := raster(c)
	require.NoError(t, err)
	assert.Equal(t, c.AutoDimension(), img.Bounds().Dx())
	// 17 pixels per module, 9 pixels of margin: the finder's corner
	// is dark.
	_, _, _, a := img.At(0, 0).RGBA()
	assert.NotZero(t, a)
	r, _, _, _ := img.At(9+4*17, 9+4*17).RGBA()
	assert.Zero(t, r)
	r, _, _, _ = img.At(9+4*17-1, 9+4*17-1).RGBA()
	assert.NotZero(t, r)

	g.dim = "28"
	_, err = raster(c)
	assert.Error(t, err)
}

func TestInput(t *testing.T) {
	g.kind = "text"
	f, err := input([]string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a b"}, f)
	f, err = input(nil, strings.NewReader("line 1\r\nline 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"line 1\nline 2"}, f)

	g.kind = "wifi"
	f, err = input(nil, strings.NewReader("net\npass\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"net", "pass"}, f)

	g.kind, g.charset = "text", "ISO-8859-1"
	f, err = input([]string{"caf\xe9"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, f)

	g.charset, g.nfc = "", true
	f, err = input([]string{"cafe\u0301"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"caf\u00e9"}, f)

	g.charset = "no-such-charset"
	_, err = input([]string{"x"}, nil)
	assert.Error(t, err)
	g.charset, g.nfc = "", false
}

func TestRandr(t *testing.T) {
	c, err := qr.Encode("randr", qr.M)
	require.NoError(t, err)
	orig := c.Modules()
	defer func() { g.cx, g.inc = 0, [2]int{1, 1} }()

	flip()
	randr(c)
	g.cx, g.inc = 0, [2]int{1, 1}
	m := c.Modules()
	n := len(m)
	for y := range m {
		for x := range m[y] {
			require.Equal(t, orig[y][n-1-x], m[y][x])
		}
	}

	// Four rotations make a full turn.
	for i := 0; i < 4; i++ {
		rotate()
	}
	assert.Equal(t, [2]int{1, 1}, g.inc)
	assert.Equal(t, 0, g.cx)

	flip()
	randr(c)
	assert.Equal(t, orig, c.Modules())
}

func TestASCII(t *testing.T) {
	c, err := qr.Encode("1", qr.L)
	require.NoError(t, err)
	c.Border = 1
	var b bytes.Buffer
	require.NoError(t, ascii(c, &b))
	lines := strings.Split(b.String(), "\n")
	require.Len(t, lines, 24)
	assert.Equal(t, strings.Repeat(" ", 46), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  ##############  "))
	assert.Equal(t, "", lines[23])
}
