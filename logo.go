// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import "image"

// Logo size limits as a fraction of the code size.
const (
	MinLogoSize = 0.1
	MaxLogoSize = 0.3
)

// A Logo describes a square area in the centre of a code cleared to
// light modules, to be covered by an image.  Clearing modules relies
// on error correction for the code to remain readable; level Q or H
// is advisable.
type Logo struct {
	Size   float64 // side as a fraction of the code size
	Margin int     // modules cleared around the logo
}

// Validate reports whether l is within range.  The returned error is
// a *ConfigError.
func (l *Logo) Validate() error {
	if !(l.Size >= MinLogoSize && l.Size <= MaxLogoSize) {
		return &ConfigError{"logo size", l.Size, "must be between 0.1 and 0.3"}
	}
	if l.Margin < 0 {
		return &ConfigError{"logo margin", l.Margin, "must not be negative"}
	}
	return nil
}

// Bounds returns the logo area, excluding the margin, in module
// coordinates of a code with size modules on a side.
func (l *Logo) Bounds(size int) image.Rectangle {
	n := int(float64(size) * l.Size)
	off := (size - n) / 2
	return image.Rect(off, off, off+n, off+n)
}

// Area returns the cleared area in module coordinates of a code with
// size modules on a side.
func (l *Logo) Area(size int) image.Rectangle {
	return l.Bounds(size).Inset(-l.Margin).Intersect(image.Rect(0, 0, size, size))
}

// WithLogo returns a copy of c with the area of l cleared.  The
// resulting code is not guaranteed to be readable.
func (c *Code) WithLogo(l *Logo) (*Code, error) {
	if l == nil || !c.isValid() {
		return nil, ErrArgs
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	cc := c.Clone()
	a := l.Area(c.Size)
	for y := a.Min.Y; y < a.Max.Y; y++ {
		for x := a.Min.X; x < a.Max.X; x++ {
			cc.Bitmap[y*cc.Stride+x/8] &^= 1 << uint(7&^x)
		}
	}
	return cc, nil
}
