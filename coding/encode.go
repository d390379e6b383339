// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"math/rand/v2"
	"sync"
)

// A Symbol is a complete QR code with its mask and penalty.
type Symbol struct {
	*Matrix
	Level   Level // error correction level
	Mask    Mask  // mask pattern applied
	Penalty int   // penalty of the masked matrix
}

// Build places the interleaved codewords in a QR code of version v
// and level l and masks it.  mask is a mask pattern number, BestMask
// to evaluate all patterns and keep the one with the lowest penalty
// (the first on ties), or RandomMask.
func Build(v Version, l Level, codewords []byte, mask Mask) (*Symbol, error) {
	if !l.Valid() {
		return nil, ErrLevel
	}
	if mask != BestMask && mask != RandomMask && !mask.Valid() {
		return nil, ErrMask
	}
	base, err := NewMatrix(v)
	if err != nil {
		return nil, err
	}
	if len(codewords) != v.Codewords() {
		panic("qr: wrong data length")
	}
	base.Place(NewBitStream(codewords))

	switch mask {
	case BestMask:
		return best(base, l), nil
	case RandomMask:
		mask = Mask(rand.IntN(NumMasks))
	}
	return masked(base, l, mask, false), nil
}

// masked returns the Symbol for base with mask applied and format
// information set.  base is modified unless clone is set.
func masked(base *Matrix, l Level, mask Mask, clone bool) *Symbol {
	m := base
	if clone {
		m = base.Clone()
	}
	m.ApplyMask(mask)
	m.SetFormat(l, mask)
	return &Symbol{Matrix: m, Level: l, Mask: mask, Penalty: m.Penalty()}
}

// best evaluates all masks on copies of base concurrently and returns
// the Symbol with the lowest penalty.
func best(base *Matrix, l Level) *Symbol {
	var (
		cand [NumMasks]*Symbol
		wg   sync.WaitGroup
	)
	for i := range cand {
		wg.Add(1)
		go func(mask Mask) {
			defer wg.Done()
			cand[mask] = masked(base, l, mask, true)
		}(Mask(i))
	}
	wg.Wait()
	s := cand[0]
	for _, c := range cand[1:] {
		if c.Penalty < s.Penalty {
			s = c
		}
	}
	return s
}

// Encode runs the complete pipeline for seg at level l: it plans the
// version, encodes and pads the data, adds error correction, places
// the codewords and masks the result.
func Encode(seg Segment, l Level, mask Mask) (*Symbol, error) {
	p, err := NewPlan(seg, l)
	if err != nil {
		return nil, err
	}
	return p.Build(seg, mask)
}

// Build encodes seg according to p and builds the Symbol.
func (p *Plan) Build(seg Segment, mask Mask) (*Symbol, error) {
	b, err := p.Encode(seg)
	if err != nil {
		return nil, err
	}
	return Build(p.Version, p.Level, Codewords(b.Bytes(), p.Version, p.Level), mask)
}
