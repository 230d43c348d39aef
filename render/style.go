// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"
	"strconv"

	"github.com/modqr/qr"
)

// A Style selects the shape of modules outside the finder patterns.
type Style int

const (
	Square    Style = iota // full squares
	Rounded                // squares with exposed corners rounded
	Dots                   // circles
	DotMatrix              // circles growing with dark neighbours
	Diamond                // squares turned 45°
	Star                   // four-pointed stars
	PlusCross              // plus signs
)

// A FinderStyle selects the shape of the three finder patterns.
type FinderStyle int

const (
	FinderSquare       FinderStyle = iota // standard squares
	FinderRounded                         // rounded squares
	FinderExtraRounded                    // strongly rounded squares
	FinderDots                            // one circle per module
	FinderLeaf                            // top left and bottom right corners rounded
	FinderRoundedTL                       // only the top left corner rounded
	FinderRoundedTR                       // only the top right corner rounded
	FinderRoundedBL                       // only the bottom left corner rounded
	FinderRoundedBR                       // only the bottom right corner rounded
	FinderCutTL                           // rounded except the top left corner
	FinderCutTR                           // rounded except the top right corner
	FinderCutBL                           // rounded except the bottom left corner
	FinderCutBR                           // rounded except the bottom right corner
)

// cell is a dark module in pixel coordinates with its dark
// neighbours.
type cell struct {
	x, y, s               float64
	up, down, left, right bool
}

var styles = [...]struct {
	name string
	draw func(Pen, cell)
}{
	Square:    {"square", drawSquare},
	Rounded:   {"rounded", drawRounded},
	Dots:      {"dots", drawDot},
	DotMatrix: {"dot-matrix", drawDotMatrix},
	Diamond:   {"diamond", drawDiamond},
	Star:      {"star", drawStar},
	PlusCross: {"plus-cross", drawPlusCross},
}

// Finder corner radii in modules: outer square, hole, centre.
var (
	roundRadii = [3]float64{2, 1, 0.5}
	extraRadii = [3]float64{3, 2, 1.5}
)

var finders = [...]struct {
	name string
	draw func(p Pen, x, y, s float64)
}{
	FinderSquare:       {"square", squareFinder},
	FinderRounded:      {"rounded", roundedFinder(roundRadii, allCorners)},
	FinderExtraRounded: {"extra-rounded", roundedFinder(extraRadii, allCorners)},
	FinderDots:         {"dots", dotFinder},
	FinderLeaf:         {"leaf", roundedFinder(roundRadii, topLeft|bottomRight)},
	FinderRoundedTL:    {"rounded-tl", roundedFinder(roundRadii, topLeft)},
	FinderRoundedTR:    {"rounded-tr", roundedFinder(roundRadii, topRight)},
	FinderRoundedBL:    {"rounded-bl", roundedFinder(roundRadii, bottomLeft)},
	FinderRoundedBR:    {"rounded-br", roundedFinder(roundRadii, bottomRight)},
	FinderCutTL:        {"round-tl-cut", roundedFinder(roundRadii, allCorners&^topLeft)},
	FinderCutTR:        {"round-tr-cut", roundedFinder(roundRadii, allCorners&^topRight)},
	FinderCutBL:        {"round-bl-cut", roundedFinder(roundRadii, allCorners&^bottomLeft)},
	FinderCutBR:        {"round-br-cut", roundedFinder(roundRadii, allCorners&^bottomRight)},
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styles) {
		return "Style(" + strconv.Itoa(int(s)) + ")"
	}
	return styles[s].name
}

func (f FinderStyle) String() string {
	if f < 0 || int(f) >= len(finders) {
		return "FinderStyle(" + strconv.Itoa(int(f)) + ")"
	}
	return finders[f].name
}

// StyleNames returns the names accepted by ParseStyle.
func StyleNames() []string {
	n := make([]string, len(styles))
	for i, v := range styles {
		n[i] = v.name
	}
	return n
}

// FinderStyleNames returns the names accepted by ParseFinderStyle.
func FinderStyleNames() []string {
	n := make([]string, len(finders))
	for i, v := range finders {
		n[i] = v.name
	}
	return n
}

// ParseStyle returns the module style with the given name.
func ParseStyle(name string) (Style, error) {
	for i, v := range styles {
		if v.name == name {
			return Style(i), nil
		}
	}
	return 0, &qr.ConfigError{Field: "style", Value: name,
		Reason: "unknown module style"}
}

// ParseFinderStyle returns the finder style with the given name.
func ParseFinderStyle(name string) (FinderStyle, error) {
	for i, v := range finders {
		if v.name == name {
			return FinderStyle(i), nil
		}
	}
	return 0, &qr.ConfigError{Field: "finder style", Value: name,
		Reason: "unknown finder style"}
}

func drawSquare(p Pen, c cell) { rect(p, c.x, c.y, c.s, c.s) }

// drawRounded rounds the corners not touching a dark neighbour.
func drawRounded(p Pen, c cell) {
	corners := 0
	if !c.up && !c.left {
		corners |= topLeft
	}
	if !c.up && !c.right {
		corners |= topRight
	}
	if !c.down && !c.right {
		corners |= bottomRight
	}
	if !c.down && !c.left {
		corners |= bottomLeft
	}
	roundRect(p, c.x, c.y, c.s, c.s, 0.4*c.s, corners)
}

func drawDot(p Pen, c cell) {
	p.DrawCircle(c.x+c.s/2, c.y+c.s/2, 0.45*c.s)
}

func drawDotMatrix(p Pen, c cell) {
	n := 0
	for _, b := range [...]bool{c.up, c.down, c.left, c.right} {
		if b {
			n++
		}
	}
	p.DrawCircle(c.x+c.s/2, c.y+c.s/2, 0.35*c.s+float64(n)/4*0.1*c.s)
}

func drawDiamond(p Pen, c cell) {
	h := c.s / 2
	cx, cy := c.x+h, c.y+h
	polygon(p, cx, cy-h, cx+h, cy, cx, cy+h, cx-h, cy)
}

// drawStar draws four points of radius 0.5 with 0.2 between them.
func drawStar(p Pen, c cell) {
	const points = 4
	cx, cy := c.x+c.s/2, c.y+c.s/2
	xy := make([]float64, 0, 4*points)
	for i := 0; i < 2*points; i++ {
		r := 0.5 * c.s
		if i&1 != 0 {
			r = 0.2 * c.s
		}
		a := float64(i) * math.Pi / points
		xy = append(xy, cx+math.Sin(a)*r, cy-math.Cos(a)*r)
	}
	polygon(p, xy...)
}

// drawPlusCross draws a plus with arms 0.3 wide.
func drawPlusCross(p Pen, c cell) {
	x, y, s := c.x, c.y, c.s
	t := 0.3 * s
	o := (s - t) / 2
	polygon(p,
		x+o, y, x+o+t, y, x+o+t, y+o,
		x+s, y+o, x+s, y+o+t, x+o+t, y+o+t,
		x+o+t, y+s, x+o, y+s, x+o, y+o+t,
		x, y+o+t, x, y+o, x+o, y+o)
}

// squareFinder draws the outer square, the hole and the centre.
func squareFinder(p Pen, x, y, s float64) {
	rect(p, x, y, 7*s, 7*s)
	rect(p, x+s, y+s, 5*s, 5*s)
	rect(p, x+2*s, y+2*s, 3*s, 3*s)
}

// roundedFinder returns a finder drawing function rounding the outer
// square, the hole and the centre by radii given in modules.
func roundedFinder(r [3]float64, corners int) func(p Pen, x, y, s float64) {
	return func(p Pen, x, y, s float64) {
		for i, n := range [3]float64{7, 5, 3} {
			d := float64(i) * s
			roundRect(p, x+d, y+d, n*s, n*s, r[i]*s, corners)
		}
	}
}

// dotFinder draws a circle for every dark module of the pattern.
func dotFinder(p Pen, x, y, s float64) {
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			if max(abs(i-3), abs(j-3)) == 2 {
				continue
			}
			p.DrawCircle(x+(float64(j)+0.5)*s, y+(float64(i)+0.5)*s, 0.45*s)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
