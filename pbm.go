// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bufio"
	"image/color"
	"io"
	"strconv"
)

// EncodePBM writes a Portable Bit Map image displaying the code to w,
// for use with netpbm.  PBM is bilevel: whichever of the two palette
// colours is darker is written as black.
func (c *Code) EncodePBM(w io.Writer) error {
	if !c.isValid() {
		return ErrArgs
	}
	b := bufio.NewWriter(w)
	scale := c.Scale
	n := c.Size + 2*c.Border
	ls := strconv.Itoa(n * scale)
	if _, err := b.WriteString("P4\n" + ls + " " + ls + "\n"); err != nil {
		return err
	}
	inv := c.inverted()
	row := make([]byte, (n*scale+7)/8)
	for y := -c.Border; y < c.Size+c.Border; y++ {
		pbmRow(row, c, y, inv)
		for i := 0; i < scale; i++ {
			if _, err := b.Write(row); err != nil {
				return err
			}
		}
	}
	return b.Flush()
}

// inverted reports whether the light colour of c is the darker one.
func (c *Code) inverted() bool {
	light, dark := c.Colors()
	return luma(light) < luma(dark)
}

func luma(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// pbmRow fills row with module row y of c, scaled horizontally.
// Bits past the image width are zero.
func pbmRow(row []byte, c *Code, y int, inv bool) {
	clear(row)
	j := 0
	for x := -c.Border; x < c.Size+c.Border; x++ {
		if c.Black(x, y) != inv {
			for k := j; k < j+c.Scale; k++ {
				row[k>>3] |= 0x80 >> uint(k&7)
			}
		}
		j += c.Scale
	}
}
