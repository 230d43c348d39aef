// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

const (
	formatPoly  = 0x537  // x^10 + x^8 + x^5 + x^4 + x^2 + x + 1
	formatXOR   = 0x5412 // 101010000010010
	versionPoly = 0x1f25 // x^12 + x^11 + x^10 + x^9 + x^8 + x^5 + x^2 + 1
)

// bch returns the remainder of data<<n divided by poly, which has
// degree n.
func bch(data uint32, poly uint32, n int) uint32 {
	rem := data
	for i := 0; i < n; i++ {
		rem = rem<<1 ^ (rem>>(n-1)&1)*poly
	}
	return rem & (1<<n - 1)
}

// FormatBits returns the 15 bit format information for the given
// level and mask, XORed with the fixed format mask.
func FormatBits(l Level, mask int) uint32 {
	data := l.Indicator()<<3 | uint32(mask)
	return (data<<10 | bch(data, formatPoly, 10)) ^ formatXOR
}

// VersionBits returns the 18 bit version information for v.
func VersionBits(v Version) uint32 {
	return uint32(v)<<12 | bch(uint32(v), versionPoly, 12)
}

// formatCells returns the row and column of each format bit, least
// significant first, for both copies in a QR code with siz modules on
// a side.
func formatCells(siz int) (cells [2][15][2]int) {
	for i := 0; i < 15; i++ {
		// Around the top left position box.
		switch {
		case i < 6:
			cells[0][i] = [2]int{i, 8}
		case i < 8:
			cells[0][i] = [2]int{i + 1, 8}
		case i == 8:
			cells[0][i] = [2]int{8, 7}
		default:
			cells[0][i] = [2]int{8, 14 - i}
		}
		// Under the top right and right of the bottom left box.
		if i < 8 {
			cells[1][i] = [2]int{8, siz - 1 - i}
		} else {
			cells[1][i] = [2]int{siz - 15 + i, 8}
		}
	}
	return cells
}

// writeFormat writes the format information fb to both copies and
// sets the dark module.
func writeFormat(g *Grid, fb uint32) {
	for _, cells := range formatCells(g.Size) {
		for i, rc := range cells {
			g.Set(rc[0], rc[1], fb>>i&1 != 0)
		}
	}
	g.Set(g.Size-8, 8, true)
}
