// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/modqr/qr"
	"golang.org/x/image/draw"
)

// svgFill returns the fill attributes for c.
func svgFill(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	s := fmt.Sprintf(`fill="#%02x%02x%02x"`, n.R, n.G, n.B)
	if n.A != 0xff {
		s += fmt.Sprintf(` fill-opacity="%s"`, num(float64(n.A)/0xff))
	}
	return s
}

// WriteSVG writes c to w as an SVG document.  Dark modules form one
// path and the finder patterns another, filled with the even-odd
// rule.  A logo image is embedded as a PNG.
func WriteSVG(w io.Writer, c *qr.Code, o *Options) error {
	o, err := check(c, o)
	if err != nil {
		return err
	}
	fg, bg, fc := o.colors()
	d := o.dim(c)
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" `+
		`viewBox="0 0 %d %d" width="%[1]d" height="%[2]d">`+"\n", d, d)
	fmt.Fprintf(b, `<rect width="%d" height="%d" %s/>`+"\n", d, d, svgFill(bg))

	var p svgPen
	drawModules(&p, c, o)
	if p.Len() != 0 {
		fmt.Fprintf(b, `<path %s d="%s"/>`+"\n", svgFill(fg), p.String())
	}
	p.Reset()
	drawFinders(&p, c, o)
	fmt.Fprintf(b, `<path %s fill-rule="evenodd" d="%s"/>`+"\n",
		svgFill(fc), p.String())

	if o.LogoImage != nil {
		if err := svgLogo(b, c, o, o.logoBackground(bg)); err != nil {
			return err
		}
	}
	b.WriteString("</svg>\n")
	return b.Flush()
}

// svgLogo writes the logo background and the scaled logo image.
func svgLogo(w io.Writer, c *qr.Code, o *Options, bg color.Color) error {
	a := o.pixels(o.Logo.Area(c.Size))
	fmt.Fprintf(w, `<rect x="%d" y="%d" width="%d" height="%d" %s/>`+"\n",
		a.Min.X, a.Min.Y, a.Dx(), a.Dy(), svgFill(bg))
	r := o.pixels(o.Logo.Bounds(c.Size))
	img := scaleLogo(o.LogoImage, r.Dx())
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	fmt.Fprintf(w, `<image x="%d" y="%d" width="%d" height="%d" `+
		`href="data:image/png;base64,%s"/>`+"\n",
		r.Min.X, r.Min.Y, r.Dx(), r.Dy(),
		base64.StdEncoding.EncodeToString(buf.Bytes()))
	return nil
}

// scaleLogo returns img scaled to fit a side×side square, keeping its
// aspect ratio and centred, or nil if nothing would be visible.
func scaleLogo(img image.Image, side int) *image.NRGBA {
	sb := img.Bounds()
	if side <= 0 || sb.Empty() {
		return nil
	}
	w, h := side, side
	if sb.Dx() > sb.Dy() {
		h = side * sb.Dy() / sb.Dx()
	} else {
		w = side * sb.Dx() / sb.Dy()
	}
	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	off := image.Pt((side-w)/2, (side-h)/2)
	draw.CatmullRom.Scale(dst, image.Rectangle{off, off.Add(image.Pt(w, h))},
		img, sb, draw.Over, nil)
	return dst
}
