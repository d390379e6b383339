// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes.

Generate runs the whole pipeline for a Request: mode selection, data
encoding, version selection, padding, block separation, Reed-Solomon
error correction, interleaving, module placement and masking.  The
result holds a Code, a square grid of modules that renders itself as
an image, PNG, PBM or text.

Lower level building blocks live in package coding.
*/
package qr // import "github.com/qrgen/qrgen"

import (
	"errors"

	"github.com/qrgen/qrgen/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string { return coding.Level(l).String() }

// A Mode is a data encoding mode.  Auto selects the most compact mode
// able to represent the whole text.
type Mode int

const (
	Auto         = Mode(coding.Auto)
	Numeric      = Mode(coding.Numeric)
	Alphanumeric = Mode(coding.Alphanumeric)
	Byte         = Mode(coding.Byte)
)

func (mode Mode) String() string { return coding.Mode(mode).String() }

var (
	ErrEmpty      = coding.ErrEmpty   // empty text
	ErrTooLong    = coding.ErrTooLong // text over version 40 capacity
	ErrLevel      = coding.ErrLevel
	ErrMask       = coding.ErrMask
	ErrVersion    = coding.ErrVersion
	ErrArgs       = errors.New("qr: invalid arguments")
	ErrLargeImage = errors.New("qr: image too large")
)

// A Request describes a QR code to generate.
type Request struct {
	Text  string // content
	Mode  Mode   // encoding mode, Auto to select from Text
	Level Level  // error correction level

	// Optimize selects the mask with the lowest penalty.  Otherwise
	// a mask is chosen at random.
	Optimize bool

	// Mask, if set, forces a mask pattern and overrides Optimize.
	Mask *coding.Mask

	// Version, if not zero, forces the QR code version.  Text must
	// fit in it.
	Version coding.Version
}

// A Result is a generated QR code and the parameters chosen for it.
type Result struct {
	Code    *Code
	Version coding.Version
	Level   Level
	Mode    Mode
	Mask    coding.Mask
	Penalty int
}

// Generate encodes r.Text as a QR code of the smallest version able to
// hold it at level r.Level.
//
// If r.Version is set, that version is used instead; ErrVersion is
// returned if it is out of range.
//
// The errors returned match ErrEmpty if the text is empty, ErrTooLong
// if it does not fit in version 40, or are a coding.SegmentError if
// r.Mode cannot represent it.
func Generate(r Request) (*Result, error) {
	mask := coding.RandomMask
	if r.Optimize {
		mask = coding.BestMask
	}
	if r.Mask != nil {
		if mask = *r.Mask; !mask.Valid() {
			return nil, ErrMask
		}
	}
	seg := coding.Segment{Text: r.Text, Mode: coding.Mode(r.Mode)}
	var p *coding.Plan
	var err error
	if r.Version != 0 {
		p, err = coding.NewPlanVersion(seg, r.Version, coding.Level(r.Level))
	} else {
		p, err = coding.NewPlan(seg, coding.Level(r.Level))
	}
	if err != nil {
		return nil, err
	}
	s, err := p.Build(seg, mask)
	if err != nil {
		return nil, err
	}
	return &Result{
		Code:    newCode(s.Code()),
		Version: p.Version,
		Level:   r.Level,
		Mode:    Mode(p.Mode),
		Mask:    s.Mask,
		Penalty: s.Penalty,
	}, nil
}

// Encode returns an encoding of text at the given error correction
// level, with the mask chosen for the lowest penalty.
func Encode(text string, level Level) (*Code, error) {
	r, err := Generate(Request{Text: text, Level: level, Optimize: true})
	if err != nil {
		return nil, err
	}
	return r.Code, nil
}
