// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Pen accumulates a path to be filled.  *gg.Context implements Pen.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	ClosePath()
	DrawCircle(x, y, r float64)
}

// svgPen builds SVG path data.
type svgPen struct {
	strings.Builder
}

// num formats v with at most three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func (p *svgPen) MoveTo(x, y float64) {
	fmt.Fprintf(p, "M%s,%s", num(x), num(y))
}

func (p *svgPen) LineTo(x, y float64) {
	fmt.Fprintf(p, "L%s,%s", num(x), num(y))
}

func (p *svgPen) QuadraticTo(x1, y1, x2, y2 float64) {
	fmt.Fprintf(p, "Q%s,%s %s,%s", num(x1), num(y1), num(x2), num(y2))
}

func (p *svgPen) ClosePath() { p.WriteByte('Z') }

// DrawCircle draws a circle as two half arcs.
func (p *svgPen) DrawCircle(x, y, r float64) {
	rr := num(r)
	fmt.Fprintf(p, "M%s,%sa%s,%s 0 1 0 %s,0a%s,%s 0 1 0 -%s,0Z",
		num(x-r), num(y), rr, rr, num(2*r), rr, rr, num(2*r))
}

// Corners of a rectangle to round.
const (
	topLeft = 1 << iota
	topRight
	bottomRight
	bottomLeft

	allCorners = topLeft | topRight | bottomRight | bottomLeft
)

// rect adds a w×h rectangle at (x, y) to p.
func rect(p Pen, x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.ClosePath()
}

// roundRect adds a w×h rectangle at (x, y) with the given corners
// rounded to radius r.
func roundRect(p Pen, x, y, w, h, r float64, corners int) {
	var rad [4]float64
	for i := range rad {
		if corners&(1<<i) != 0 {
			rad[i] = r
		}
	}
	tl, tr, br, bl := rad[0], rad[1], rad[2], rad[3]
	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	if tr > 0 {
		p.QuadraticTo(x+w, y, x+w, y+tr)
	}
	p.LineTo(x+w, y+h-br)
	if br > 0 {
		p.QuadraticTo(x+w, y+h, x+w-br, y+h)
	}
	p.LineTo(x+bl, y+h)
	if bl > 0 {
		p.QuadraticTo(x, y+h, x, y+h-bl)
	}
	p.LineTo(x, y+tl)
	if tl > 0 {
		p.QuadraticTo(x, y, x+tl, y)
	}
	p.ClosePath()
}

// polygon adds a closed polygon through the points given as x, y
// pairs to p.
func polygon(p Pen, xy ...float64) {
	p.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		p.LineTo(xy[i], xy[i+1])
	}
	p.ClosePath()
}
