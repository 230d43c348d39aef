// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// A Plan describes how to construct a QR code of a specific version.
// Plans are shared and must not be modified.
type Plan struct {
	Version Version // QR code version
	Size    int     // number of modules on a side

	// Function patterns with light placeholders for format
	// information.  Data modules are light and unreserved.
	Grid *Grid

	// Mask patterns restricted to data modules.
	Masks [8]*bitset.BitSet
}

// Pre-allocated Plans.  A Plan is created the first time a version
// is used.
var plans [MaxVersion + 1]struct {
	once sync.Once
	p    *Plan
}

// NewPlan returns the Plan for a QR code with the given version.
func NewPlan(version Version) (*Plan, error) {
	if !version.valid() {
		return nil, ErrVersion
	}
	p := &plans[version]
	p.once.Do(func() { p.p = vplan(version) })
	return p.p, nil
}

// vplan creates a Plan for the given version.
func vplan(v Version) *Plan {
	siz := v.Size()
	g := NewGrid(siz)

	// Position boxes with separators.
	finderBox(g, 0, 0)
	finderBox(g, 0, siz-7)
	finderBox(g, siz-7, 0)

	// Alignment boxes, except where they would overlap the 8x8
	// corners taken by position boxes and separators.
	for _, r := range v.AlignmentCenters() {
		for _, c := range v.AlignmentCenters() {
			if !overlapsFinder(r, c, siz) {
				alignBox(g, r, c)
			}
		}
	}

	// Timing markers.
	for i := 8; i < siz-8; i++ {
		if !g.Reserved(6, i) {
			g.setFunc(6, i, i&1 == 0)
		}
		if !g.Reserved(i, 6) {
			g.setFunc(i, 6, i&1 == 0)
		}
	}

	// One lonely dark module.
	g.setFunc(siz-8, 8, true)

	// Format placeholders.
	for _, cells := range formatCells(siz) {
		for _, rc := range cells {
			g.setFunc(rc[0], rc[1], false)
		}
	}

	// Version pattern.
	if v >= 7 {
		vb := VersionBits(v)
		for i := 0; i < 18; i++ {
			dark := vb>>i&1 != 0
			a, b := siz-11+i%3, i/3
			g.setFunc(b, a, dark)
			g.setFunc(a, b, dark)
		}
	}

	p := &Plan{Version: v, Size: siz, Grid: g}
	n := uint(siz * siz)
	for k, f := range maskFunc {
		m := bitset.New(n)
		for r := 0; r < siz; r++ {
			for c := 0; c < siz; c++ {
				if !g.Reserved(r, c) && f(r, c) {
					m.Set(g.index(r, c))
				}
			}
		}
		p.Masks[k] = m
	}
	return p
}

// finderBox draws a position box with its top left corner at row r,
// column c, surrounded by a light separator where it fits.
func finderBox(g *Grid, r, c int) {
	for dr := -1; dr <= 7; dr++ {
		for dc := -1; dc <= 7; dc++ {
			if !g.in(r+dr, c+dc) {
				continue
			}
			d := max(abs(dr-3), abs(dc-3)) // ring: 0-1 core, 3 border
			g.setFunc(r+dr, c+dc, d != 2 && d != 4)
		}
	}
}

// overlapsFinder reports whether an alignment box centred at row r,
// column c would overlap a position box or its separator.
func overlapsFinder(r, c, siz int) bool {
	near := func(x int) bool { return x-2 <= 7 }
	far := func(x int) bool { return x+2 >= siz-8 }
	return near(r) && near(c) || near(r) && far(c) || far(r) && near(c)
}

// alignBox draws an alignment box centred at row r, column c.
func alignBox(g *Grid, r, c int) {
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			g.setFunc(r+dr, c+dc, max(abs(dr), abs(dc)) != 1)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Serialise writes bits from s to the data modules of g in zigzag
// scan order: column pairs from the right, skipping the vertical
// timing strip, alternately upwards and downwards, right column
// first.  Modules left over when s is exhausted stay light.
func (p *Plan) Serialise(s BitStream, g *Grid) {
	siz := g.Size
	up := true
	for x := siz - 1; x >= 1; x -= 2 {
		if x == 6 { // vertical timing strip
			x--
		}
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for _, xx := range [2]int{x, x - 1} {
				if !g.Reserved(y, xx) && s.Next() {
					g.Set(y, xx, true)
				}
			}
		}
		up = !up
	}
}
