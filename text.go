// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// ToUTF8 returns b with invalid UTF-8 sequences replaced by U+FFFD.
func ToUTF8(b []byte) []byte {
	v, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		panic("qr: internal error: " + err.Error())
	}
	return v
}

// FromUTF16 converts UTF-16 text to UTF-8.  A byte order mark
// selects the byte order, big endian without one.  Unpaired
// surrogates are replaced by U+FFFD.
func FromUTF16(b []byte) ([]byte, error) {
	return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(b)
}

// EncodeUTF16 returns an encoding of UTF-16 text, converted to UTF-8
// by FromUTF16, at the given error correction level.
func EncodeUTF16(b []byte, level Level) (*Code, error) {
	data, err := FromUTF16(b)
	if err != nil {
		return nil, err
	}
	return EncodeOptions(data, &Options{Level: level})
}

// String returns the code with its quiet zone drawn with Unicode
// half blocks, two rows of modules per line, dark on light.
func (c *Code) String() string {
	var b strings.Builder
	bord := c.Border
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			n := 0
			if c.Black(x, y) {
				n = 2
			}
			if c.Black(x, y+1) {
				n++
			}
			b.WriteString([4]string{"█", "▀", "▄", " "}[n])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
