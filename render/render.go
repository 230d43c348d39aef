// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package render draws QR codes produced by package qr as SVG, raster
images, PNG, EPS and text.

Module and finder shapes are chosen by Style and FinderStyle.  Each
shape is a drawing function over a Pen; the raster renderer passes a
gg context, the SVG renderer a path builder.  Styles other than Square
rely on the decoder sampling module centres and are not guaranteed to
be readable by every scanner.
*/
package render // import "github.com/modqr/qr/render"

import (
	"image"
	"image/color"

	"github.com/modqr/qr"
)

// Options control rendering.  A nil *Options means the values
// returned by Defaults.
type Options struct {
	Scale       int         // pixels (EPS: points) per module
	Margin      int         // quiet zone width in modules
	Foreground  color.Color // dark modules; nil is black
	Background  color.Color // light modules and quiet zone; nil is white
	FinderColor color.Color // finder patterns; nil is Foreground
	Invert      bool        // swap Foreground and Background
	Style       Style       // module shape
	Finder      FinderStyle // finder pattern shape
	ASCII       bool        // WriteText: use "##" instead of blocks

	// Finders overrides Finder per pattern, in the order top left,
	// top right, bottom left.  It is either nil or of length 3.
	Finders []FinderStyle

	// Logo places LogoImage in the centre of the code, over the
	// area cleared by qr.Options.Logo with the same values.
	Logo           *qr.Logo
	LogoImage      image.Image
	LogoBackground color.Color // behind LogoImage; nil is Background
}

// Defaults returns the default options: 8 pixels per module, a quiet
// zone of 4 modules, black square modules on white.
func Defaults() *Options {
	return &Options{Scale: 8, Margin: 4}
}

// Validate reports whether o is within range.  The returned error is
// a *qr.ConfigError.
func (o *Options) Validate() error {
	for _, f := range o.Finders {
		if f < 0 || int(f) >= len(finders) {
			return &qr.ConfigError{Field: "finder style", Value: int(f),
				Reason: "unknown finder style"}
		}
	}
	switch {
	case o.Scale < 1:
		return &qr.ConfigError{Field: "scale", Value: o.Scale,
			Reason: "must be at least 1"}
	case o.Margin < 0:
		return &qr.ConfigError{Field: "margin", Value: o.Margin,
			Reason: "must not be negative"}
	case o.Style < 0 || int(o.Style) >= len(styles):
		return &qr.ConfigError{Field: "style", Value: int(o.Style),
			Reason: "unknown module style"}
	case o.Finder < 0 || int(o.Finder) >= len(finders):
		return &qr.ConfigError{Field: "finder style", Value: int(o.Finder),
			Reason: "unknown finder style"}
	case o.Finders != nil && len(o.Finders) != 3:
		return &qr.ConfigError{Field: "finder styles", Value: len(o.Finders),
			Reason: "need one per finder pattern"}
	case o.LogoImage != nil && o.Logo == nil:
		return &qr.ConfigError{Field: "logo", Value: nil,
			Reason: "logo image given without logo area"}
	case o.Logo != nil:
		return o.Logo.Validate()
	}
	return nil
}

// check validates o, substituting defaults for nil, and c.
func check(c *qr.Code, o *Options) (*Options, error) {
	if c == nil || c.Size <= 0 || c.Stride < (c.Size+7)/8 ||
		len(c.Bitmap) < c.Stride*c.Size {
		return nil, qr.ErrArgs
	}
	if o == nil {
		o = Defaults()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// colors returns the resolved foreground, background and finder
// colours.
func (o *Options) colors() (fg, bg, finder color.Color) {
	fg, bg = o.Foreground, o.Background
	if fg == nil {
		fg = color.Black
	}
	if bg == nil {
		bg = color.White
	}
	if o.Invert {
		fg, bg = bg, fg
	}
	finder = fg
	if o.FinderColor != nil {
		finder = o.FinderColor
	}
	return fg, bg, finder
}

// logoBackground returns the colour drawn behind the logo image.
func (o *Options) logoBackground(bg color.Color) color.Color {
	if o.LogoBackground != nil {
		return o.LogoBackground
	}
	return bg
}

// dim returns the side of the rendered code in pixels.
func (o *Options) dim(c *qr.Code) int {
	return (c.Size + 2*o.Margin) * o.Scale
}

// pixels converts a rectangle in module coordinates to pixels.
func (o *Options) pixels(r image.Rectangle) image.Rectangle {
	r = r.Add(image.Pt(o.Margin, o.Margin))
	return image.Rectangle{r.Min.Mul(o.Scale), r.Max.Mul(o.Scale)}
}

// inFinder reports whether (x, y) lies in one of the three 7×7
// finder patterns of a code of the given size.
func inFinder(x, y, size int) bool {
	return x < 7 && (y < 7 || y >= size-7) || x >= size-7 && y < 7
}

// finderOrigins returns the top left corners of the finder patterns.
func finderOrigins(size int) [3]image.Point {
	return [3]image.Point{{0, 0}, {size - 7, 0}, {0, size - 7}}
}

// drawModules adds the shapes of all dark modules outside the finder
// patterns to p.
func drawModules(p Pen, c *qr.Code, o *Options) {
	fn := styles[o.Style].draw
	s := float64(o.Scale)
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			if !c.Black(x, y) || inFinder(x, y, c.Size) {
				continue
			}
			fn(p, cell{
				x:     float64(x+o.Margin) * s,
				y:     float64(y+o.Margin) * s,
				s:     s,
				up:    c.Black(x, y-1),
				down:  c.Black(x, y+1),
				left:  c.Black(x-1, y),
				right: c.Black(x+1, y),
			})
		}
	}
}

// drawFinders adds the three finder patterns to p.  The shapes are
// meant to be filled with the even-odd rule.
func drawFinders(p Pen, c *qr.Code, o *Options) {
	s := float64(o.Scale)
	for i, pt := range finderOrigins(c.Size) {
		f := o.Finder
		if o.Finders != nil {
			f = o.Finders[i]
		}
		finders[f].draw(p, float64(pt.X+o.Margin)*s, float64(pt.Y+o.Margin)*s, s)
	}
}
