// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
)

// ErrTooLong is matched by every CapacityError.
var ErrTooLong = errors.New("qr: data too long")

// CapacityError is returned when a segment does not fit in a QR code
// of the largest version at the requested level.
type CapacityError struct {
	Mode  Mode  // encoding mode
	Level Level // error correction level
	Bits  int   // encoded length at version 40, including the header
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("qr: %d-bit %s segment exceeds %d-bit capacity "+
		"of version %d-%s", e.Bits, e.Mode, MaxVersion.DataBits(e.Level),
		MaxVersion, e.Level)
}

func (e CapacityError) Is(target error) bool { return target == ErrTooLong }

// A Plan describes how a segment is laid out in a QR code
// with a specific version and level.
type Plan struct {
	Version Version // QR code version
	Level   Level   // QR error correction level
	Mode    Mode    // segment encoding mode

	Count    int // character count
	Header   int // mode indicator and character count bits
	Data     int // segment data bits
	DataBits int // data capacity in bits
}

// NewPlan returns a Plan for seg at level l using the smallest version
// able to hold it.  The search starts at the smallest version whose
// capacity holds the data alone and advances while the header does
// not fit, as the count field widens at versions 10 and 27.
func NewPlan(seg Segment, l Level) (*Plan, error) {
	if !l.Valid() {
		return nil, ErrLevel
	}
	seg = seg.Resolve()
	if !seg.Mode.Valid() {
		return nil, ModeError(seg.Mode)
	}
	if !seg.IsValid() {
		return nil, SegmentError(seg)
	}
	n := seg.DataLength()
	v := MinVersion
	for v < MaxVersion && v.DataBits(l) < n {
		v++
	}
	for ; v <= MaxVersion; v++ {
		cl := seg.Mode.CountLength(v)
		if 4+cl+n <= v.DataBits(l) && seg.Count() < 1<<cl {
			return &Plan{
				Version:  v,
				Level:    l,
				Mode:     seg.Mode,
				Count:    seg.Count(),
				Header:   4 + cl,
				Data:     n,
				DataBits: v.DataBits(l),
			}, nil
		}
	}
	return nil, CapacityError{seg.Mode, l, seg.EncodedLength(MaxVersion)}
}

// NewPlanVersion returns a Plan for seg at version v and level l,
// or a CapacityError if seg does not fit.
func NewPlanVersion(seg Segment, v Version, l Level) (*Plan, error) {
	if !v.Valid() {
		return nil, ErrVersion
	}
	p, err := NewPlan(seg, l)
	if err != nil {
		return nil, err
	}
	if p.Version > v {
		return nil, CapacityError{p.Mode, l, seg.Resolve().EncodedLength(v)}
	}
	cl := p.Mode.CountLength(v)
	p.Version, p.Header, p.DataBits = v, 4+cl, v.DataBits(l)
	return p, nil
}

// Bits returns the encoded length of the segment, header included.
func (p *Plan) Bits() int { return p.Header + p.Data }

// Encode writes the mode indicator, the character count, the data of
// seg, the terminator and the padding to a new Bits holding exactly
// p.DataBits bits.
func (p *Plan) Encode(seg Segment) (*Bits, error) {
	seg = seg.Resolve()
	if seg.Mode != p.Mode || seg.Count() != p.Count {
		return nil, fmt.Errorf("qr: segment does not match %s plan "+
			"for %d characters", p.Mode, p.Count)
	}
	b := NewBits(p.Version)
	b.Write(uint32(p.Mode), 4)
	b.Write(uint32(p.Count), p.Header-4)
	if err := seg.Encode(b); err != nil {
		return nil, err
	}
	if b.Bits() != p.Bits() {
		panic("qr: internal error: encoded length mismatch")
	}
	b.PadTo(p.DataBits)
	return b, nil
}
