// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// AutoMask selects the mask with the lowest penalty.
const AutoMask = -1

// A Code is a square module grid.
type Code struct {
	Bitmap []byte // 1 is dark, 0 is light
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row

	Version   Version    // QR code version
	Level     Level      // error correction level
	Mask      int        // applied mask
	Penalties [8]Penalty // penalty scores of all masks
}

// Black reports whether the module at (x, y) is dark.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// Encoder encodes a QR code.
type Encoder struct {
	Mask     int  // mask to apply, or AutoMask
	Parallel bool // score masks concurrently

	p *Plan
	l Level
	b *Bits
}

// NewEncoder returns an Encoder for the given version and level.
func NewEncoder(version Version, level Level) (*Encoder, error) {
	p, err := NewPlan(version)
	if err != nil {
		return nil, err
	}
	if !level.valid() {
		return nil, ErrLevel
	}
	return &Encoder{Mask: AutoMask, p: p, l: level, b: NewBits(version)}, nil
}

// Write adds a byte mode segment holding data to e.
func (e *Encoder) Write(data []byte) error {
	v := e.p.Version
	if n := e.b.Bits() + 4 + v.CountLength() + len(data)*8; n > v.DataBits(e.l) {
		return fmt.Errorf("qr: cannot encode %d bits into %d-bit code: %w",
			n, v.DataBits(e.l), ErrDataTooLarge)
	}
	e.b.WriteSegment(v, data)
	return nil
}

func (e *Encoder) Reset() { e.b.Reset() }

// Code returns a QR code containing data written to e.
func (e *Encoder) Code() (*Code, error) {
	if e.Mask != AutoMask && (e.Mask < 0 || e.Mask >= len(maskFunc)) {
		return nil, ErrMask
	}
	v, l := e.p.Version, e.l
	cw := e.b.Codewords(v, l)

	// Place data and check bits around the function patterns.
	g := e.p.Grid.Clone()
	e.p.Serialise(NewBitStream(cw), g)

	// Score masks with format placeholders in place, then mask and
	// write the format information for the chosen one.
	c := &Code{Size: g.Size, Version: v, Level: l}
	c.Penalties = e.p.maskScores(g, e.Parallel)
	c.Mask = e.Mask
	if c.Mask == AutoMask {
		c.Mask = bestMask(c.Penalties)
	}
	g.xorMask(e.p.Masks[c.Mask])
	writeFormat(g, FormatBits(l, c.Mask))
	c.Bitmap, c.Stride = g.Bitmap()
	return c, nil
}

// Encode is a wrapper around Write and Code.
func (e *Encoder) Encode(data []byte) (*Code, error) {
	if err := e.Write(data); err != nil {
		return nil, err
	}
	return e.Code()
}

// Encode encodes data in byte mode using an Encoder with the given
// version and level.
func Encode(version Version, level Level, data []byte) (*Code, error) {
	e, err := NewEncoder(version, level)
	if err != nil {
		return nil, err
	}
	return e.Encode(data)
}
