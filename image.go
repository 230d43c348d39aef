// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"image"
	"image/color"
)

var defaultPalette = [2]color.Color{color.Gray{0xff}, color.Gray{0x00}}

// Colors returns the light and dark colours used to draw c, taking
// c.Palette and c.Reverse into account.
func (c *Code) Colors() (light, dark color.Color) {
	pal := defaultPalette
	if c.Palette != nil {
		pal = *c.Palette
	}
	if c.Reverse {
		pal[0], pal[1] = pal[1], pal[0]
	}
	return pal[0], pal[1]
}

// Image returns an Image displaying the code with a quiet zone of
// c.Border modules, c.Scale pixels per module.
func (c *Code) Image() image.Image {
	light, dark := c.Colors()
	return &codeImage{c, color.Palette{light, dark}}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
	pal color.Palette
}

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + 2*c.Border) * max(c.Scale, 1)
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) module(x, y int) bool {
	s := max(c.Scale, 1)
	if x < 0 || y < 0 {
		return false
	}
	return c.Black(x/s-c.Border, y/s-c.Border)
}

func (c *codeImage) At(x, y int) color.Color {
	if c.module(x, y) {
		return c.pal[1]
	}
	return c.pal[0]
}

// ColorIndexAt returns the palette index of the pixel at (x, y).
func (c *codeImage) ColorIndexAt(x, y int) uint8 {
	if c.module(x, y) {
		return 1
	}
	return 0
}

func (c *codeImage) ColorModel() color.Model {
	return c.pal
}
