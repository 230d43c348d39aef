// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"

	"github.com/modqr/qr"
)

// US Letter page in points.
const (
	pageWidth  = 612
	pageHeight = 792
)

// psRGB returns c as PostScript setrgbcolor operands.
func psRGB(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("%.3g %.3g %.3g",
		float64(n.R)/0xff, float64(n.G)/0xff, float64(n.B)/0xff)
}

// WriteEPS writes c to w as Encapsulated PostScript, centred on a
// US Letter page, o.Scale points per module.  Rows of dark modules
// are drawn as horizontal strokes one module wide.  Only the
// foreground and background colours are used from the style options.
func WriteEPS(w io.Writer, c *qr.Code, o *Options) error {
	o, err := check(c, o)
	if err != nil {
		return err
	}
	fg, bg, _ := o.colors()
	siz, scale, bord := c.Size, o.Scale, o.Margin
	d := o.dim(c)
	x0 := (pageWidth - d) / 2
	y0 := (pageHeight - d) / 2
	b := bufio.NewWriter(w)
	fmt.Fprintf(b, `%%!PS-Adobe-2.0 EPSF-2.0
%%%%Creator: modqr
%%%%Title: QR Code version %d-%s
%%%%BoundingBox: %d %d %d %d
%%%%EndComments
%%%%EndProlog
<< >> begin
gsave
%g %g translate
%d dup neg scale
/row 0 def
/p { 0 rmoveto 0 rlineto } def
/r { 0 row 1 add dup /row exch def moveto } def
`,
		c.Version, c.Level, x0-1, y0-1, pageWidth-x0, pageHeight-y0,
		pageWidth/2-float64(siz*scale)/2,
		pageHeight/2+float64((siz-1)*scale)/2-1,
		scale)
	// The quiet zone is one stroke as wide as the whole symbol.
	fmt.Fprintf(b, `gsave
newpath %d %d moveto
%d dup neg scale
%s setrgbcolor
1 0 rlineto stroke
grestore
%s setrgbcolor
newpath 0 0 moveto
`, -bord, siz/2, siz+2*bord, psRGB(bg), psRGB(fg))
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; {
			skip := x
			for x < siz && !c.Black(x, y) {
				x++
			}
			if x == siz {
				break
			}
			start := x
			for x < siz && c.Black(x, y) {
				x++
			}
			fmt.Fprintf(b, "%d %d p ", x-start, start-skip)
		}
		b.WriteString("r\n")
	}
	b.WriteString("stroke grestore\nend\n%%Trailer\n")
	return b.Flush()
}
