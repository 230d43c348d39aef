// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/bits-and-blooms/bitset"

// A Grid is a square module grid with a reservation map.  Reserved
// modules belong to function patterns and are not masked or used for
// data.  Modules are addressed by row and column.
type Grid struct {
	Size     int
	dark     *bitset.BitSet // 1 is dark
	reserved *bitset.BitSet // 1 is a function module
}

// NewGrid returns an all light, unreserved grid with size modules on
// a side.
func NewGrid(size int) *Grid {
	n := uint(size * size)
	return &Grid{Size: size, dark: bitset.New(n), reserved: bitset.New(n)}
}

func (g *Grid) index(r, c int) uint { return uint(r*g.Size + c) }

func (g *Grid) in(r, c int) bool {
	return 0 <= r && r < g.Size && 0 <= c && c < g.Size
}

// Dark reports whether the module at row r, column c is dark.
// Modules outside the grid are light.
func (g *Grid) Dark(r, c int) bool {
	return g.in(r, c) && g.dark.Test(g.index(r, c))
}

// Reserved reports whether the module at row r, column c belongs to a
// function pattern.
func (g *Grid) Reserved(r, c int) bool {
	return g.in(r, c) && g.reserved.Test(g.index(r, c))
}

// Set sets the module at row r, column c.
func (g *Grid) Set(r, c int, dark bool) {
	g.dark.SetTo(g.index(r, c), dark)
}

// setFunc sets and reserves the module at row r, column c.
func (g *Grid) setFunc(r, c int, dark bool) {
	i := g.index(r, c)
	g.dark.SetTo(i, dark)
	g.reserved.Set(i)
}

// DarkCount returns the number of dark modules.
func (g *Grid) DarkCount() int { return int(g.dark.Count()) }

// ReservedCount returns the number of function modules.
func (g *Grid) ReservedCount() int { return int(g.reserved.Count()) }

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{Size: g.Size, dark: g.dark.Clone(), reserved: g.reserved.Clone()}
}

// Equal reports whether g and h have the same modules and reservations.
func (g *Grid) Equal(h *Grid) bool {
	return g.Size == h.Size && g.dark.Equal(h.dark) &&
		g.reserved.Equal(h.reserved)
}

// xorMask flips every module set in mask, which must not contain
// reserved modules.
func (g *Grid) xorMask(mask *bitset.BitSet) {
	g.dark.InPlaceSymmetricDifference(mask)
}

// Bitmap returns the modules packed in rows of stride bytes,
// most significant bit first, 1 is dark.
func (g *Grid) Bitmap() (bitmap []byte, stride int) {
	stride = (g.Size + 7) >> 3
	bitmap = make([]byte, stride*g.Size)
	for i, e := g.dark.NextSet(0); e; i, e = g.dark.NextSet(i + 1) {
		r, c := int(i)/g.Size, int(i)%g.Size
		bitmap[r*stride+c>>3] |= 0x80 >> (c & 7)
	}
	return bitmap, stride
}
