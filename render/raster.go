// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"github.com/modqr/qr"
)

// Image draws c as an RGBA image.
func Image(c *qr.Code, o *Options) (image.Image, error) {
	o, err := check(c, o)
	if err != nil {
		return nil, err
	}
	fg, bg, fc := o.colors()
	d := o.dim(c)
	dc := gg.NewContext(d, d)
	dc.SetColor(bg)
	dc.Clear()

	dc.SetColor(fg)
	drawModules(dc, c, o)
	dc.Fill()

	dc.SetColor(fc)
	dc.SetFillRuleEvenOdd()
	drawFinders(dc, c, o)
	dc.Fill()
	dc.SetFillRuleWinding()

	if o.LogoImage != nil {
		a := o.pixels(o.Logo.Area(c.Size))
		dc.SetColor(o.logoBackground(bg))
		dc.DrawRectangle(float64(a.Min.X), float64(a.Min.Y),
			float64(a.Dx()), float64(a.Dy()))
		dc.Fill()
		r := o.pixels(o.Logo.Bounds(c.Size))
		if img := scaleLogo(o.LogoImage, r.Dx()); img != nil {
			dc.DrawImage(img, r.Min.X, r.Min.Y)
		}
	}
	return dc.Image(), nil
}

// WritePNG writes c to w as a PNG image drawn by Image.
func WritePNG(w io.Writer, c *qr.Code, o *Options) error {
	img, err := Image(c, o)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
