// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bufio"
	"io"

	"github.com/modqr/qr"
)

// textDark reports whether the module at (x, y) is drawn in ink.
func textDark(c *qr.Code, o *Options, x, y int) bool {
	return c.Black(x, y) != o.Invert
}

// WriteText writes c to w two characters per module, one line per
// row of modules, with a quiet zone of o.Margin.  Dark modules are
// "██", or "##" if o.ASCII is set; light modules are spaces.
// o.Invert swaps the two.  Other options are ignored.
func WriteText(w io.Writer, c *qr.Code, o *Options) error {
	o, err := check(c, o)
	if err != nil {
		return err
	}
	ink := "██"
	if o.ASCII {
		ink = "##"
	}
	b := bufio.NewWriter(w)
	for y := -o.Margin; y < c.Size+o.Margin; y++ {
		for x := -o.Margin; x < c.Size+o.Margin; x++ {
			if textDark(c, o, x, y) {
				b.WriteString(ink)
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.Flush()
}

// WriteCompact writes c to w with Unicode half blocks, two rows of
// modules per line, with a quiet zone of o.Margin.  Dark modules are
// ink unless o.Invert is set.  Other options are ignored.
func WriteCompact(w io.Writer, c *qr.Code, o *Options) error {
	o, err := check(c, o)
	if err != nil {
		return err
	}
	b := bufio.NewWriter(w)
	end := c.Size + o.Margin
	for y := -o.Margin; y < end; y += 2 {
		for x := -o.Margin; x < end; x++ {
			n := 0
			if textDark(c, o, x, y) {
				n = 2
			}
			// An odd last row is padded with quiet zone.
			if textDark(c, o, x, y+1) {
				n++
			}
			b.WriteString([4]string{" ", "▄", "▀", "█"}[n])
		}
		b.WriteByte('\n')
	}
	return b.Flush()
}
