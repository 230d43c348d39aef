// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/modqr/qr/gf256"

// ByteIndicator is the 4 bit byte mode indicator.
const ByteIndicator = 4

// Bits is a bit stream writer.  Bits are written most significant
// first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for a QR code of the
// given version.
func NewBits(v Version) *Bits {
	return &Bits{b: make([]byte, 0, vtab[v].bytes)}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits written.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the bytes written.  It panics if a byte is
// partially written.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write writes the low nbit bits of v, nbit <= 32.
func (b *Bits) Write(v uint32, nbit int) {
	if nbit == 0 {
		return
	}
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// WriteBytes writes each byte of p as 8 bits.
func (b *Bits) WriteBytes(p []byte) {
	if b.nbit&7 == 0 {
		b.b = append(b.b, p...)
		b.nbit += len(p) * 8
		return
	}
	for _, c := range p {
		b.Write(uint32(c), 8)
	}
}

// WriteSegment writes a byte mode segment holding data for a QR code
// of version v: the mode indicator, the character count and the data.
func (b *Bits) WriteSegment(v Version, data []byte) {
	b.Write(ByteIndicator, 4)
	b.Write(uint32(len(data)), v.CountLength())
	b.WriteBytes(data)
}

// PadTo adds up to t zero terminator bits to b, zero fills to the
// next byte boundary and pads with alternating 0xec and 0x11 bytes
// to n bytes.
func (b *Bits) PadTo(t, n int) {
	b.Write(0, min(t, n*8-b.nbit))
	b.Write(0, -b.nbit&7)
	for pad := byte(0xec); len(b.b) < n; pad ^= 0xec ^ 0x11 {
		b.b = append(b.b, pad)
		b.nbit += 8
	}
}

// Blocks splits the data codewords in b, which must be padded, into
// blocks for the given version and level.  The blocks share memory
// with b.
func (b *Bits) Blocks(v Version, l Level) [][]byte {
	lev := &vtab[v].level[l]
	dat := b.Bytes()
	if len(dat) != lev.data {
		panic("qr: wrong data length")
	}
	blocks := make([][]byte, 0, lev.nblock())
	for _, g := range lev.groups {
		for i := 0; i < g.nblock; i++ {
			blocks = append(blocks, dat[:g.ndata:g.ndata])
			dat = dat[g.ndata:]
		}
	}
	return blocks
}

// CheckBlocks returns the check codewords for each data block.
func CheckBlocks(blocks [][]byte, check int) [][]byte {
	rs := gf256.NewRSEncoder(Field, check)
	ecc := make([]byte, len(blocks)*check)
	out := make([][]byte, len(blocks))
	for i, blk := range blocks {
		out[i] = ecc[i*check : (i+1)*check]
		rs.ECC(blk, out[i])
	}
	return out
}

// Interleave appends the codewords of blocks to dst column by
// column, skipping blocks shorter than the current column.
func Interleave(dst []byte, blocks [][]byte) []byte {
	n := 0
	for _, blk := range blocks {
		n = max(n, len(blk))
	}
	for i := 0; i < n; i++ {
		for _, blk := range blocks {
			if i < len(blk) {
				dst = append(dst, blk[i])
			}
		}
	}
	return dst
}

// Codewords adds terminator and padding to b and returns the final
// sequence of interleaved data and check codewords for the given
// version and level.
func (b *Bits) Codewords(v Version, l Level) []byte {
	nb := v.DataBits(l)
	if b.nbit > nb {
		panic("qr: too much data")
	}
	b.PadTo(4, v.DataBytes(l))
	blocks := b.Blocks(v, l)
	check, _ := v.CheckBytes(l)
	ecc := CheckBlocks(blocks, check)
	out := make([]byte, 0, v.TotalBytes())
	out = Interleave(out, blocks)
	out = Interleave(out, ecc)
	if len(out) != v.TotalBytes() {
		panic("qr: internal error")
	}
	return out
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Next returns the next bit from s.
// Past end of buffer Next returns false.
func (s *BitStream) Next() bool {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b != 0
}
