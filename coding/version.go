// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: the
// capacity table, byte mode bit streams, Reed-Solomon blocks, module
// placement, masking and format information.
package coding // import "github.com/modqr/qr/coding"

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/modqr/qr/gf256"
)

var (
	ErrLevel        = errors.New("qr: invalid level")
	ErrVersion      = errors.New("qr: invalid version")
	ErrMask         = errors.New("qr: invalid mask")
	ErrDataTooLarge = errors.New("qr: data too large")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// Only versions 1 to 10 are supported.
type Version int

// Supported versions.
const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 10 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

func (v Version) valid() bool { return MinVersion <= v && v <= MaxVersion }

// Size returns the number of modules on a side.
func (v Version) Size() int { return int(v)*4 + 17 }

// CountLength returns the length in bits of the byte mode
// character count field.
func (v Version) CountLength() int {
	if v < 10 {
		return 8
	}
	return 16
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 7% recoverable
	M              // 15% recoverable
	Q              // 25% recoverable
	H              // 30% recoverable
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

func (l Level) valid() bool { return L <= l && l <= H }

// Indicator returns the 2 bit level indicator used in format
// information.
func (l Level) Indicator() uint32 { return [4]uint32{1, 0, 3, 2}[l] }

// Recovery returns the approximate percentage of codewords that can
// be restored at level l.
func (l Level) Recovery() int { return [4]int{7, 15, 25, 30}[l] }

// CapacityError is returned when data does not fit in any supported
// version at the requested level.  It matches ErrDataTooLarge.
type CapacityError struct {
	Length int   // data length in bytes
	Level  Level // requested level
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("qr: %d bytes exceed capacity %d of version %s-%s",
		e.Length, MaxVersion.Capacity(e.Level), MaxVersion, e.Level)
}

func (e CapacityError) Is(target error) bool { return target == ErrDataTooLarge }

// A group describes nblock blocks of ndata data codewords each.
type group struct {
	nblock int
	ndata  int
}

type level struct {
	data   int      // data codewords
	cap    int      // byte mode capacity in bytes
	groups [2]group // block structure, group 1 first
	check  int      // check codewords per block, set by init
}

// A version describes metadata associated with a version.
type version struct {
	bytes int   // total codewords
	align []int // alignment pattern centre coordinates
	level [4]level
}

func (l *level) nblock() int { return l.groups[0].nblock + l.groups[1].nblock }

var vtab = [MaxVersion + 1]version{
	{},
	{26, nil, [4]level{
		{19, 17, [2]group{{1, 19}}, 0},
		{16, 14, [2]group{{1, 16}}, 0},
		{13, 11, [2]group{{1, 13}}, 0},
		{9, 7, [2]group{{1, 9}}, 0},
	}},
	{44, []int{6, 18}, [4]level{
		{34, 32, [2]group{{1, 34}}, 0},
		{28, 26, [2]group{{1, 28}}, 0},
		{22, 20, [2]group{{1, 22}}, 0},
		{16, 14, [2]group{{1, 16}}, 0},
	}},
	{70, []int{6, 22}, [4]level{
		{55, 53, [2]group{{1, 55}}, 0},
		{44, 42, [2]group{{1, 44}}, 0},
		{34, 32, [2]group{{2, 17}}, 0},
		{26, 24, [2]group{{2, 13}}, 0},
	}},
	{100, []int{6, 26}, [4]level{
		{80, 78, [2]group{{1, 80}}, 0},
		{64, 62, [2]group{{2, 32}}, 0},
		{48, 46, [2]group{{2, 24}}, 0},
		{36, 34, [2]group{{4, 9}}, 0},
	}},
	{134, []int{6, 30}, [4]level{
		{108, 106, [2]group{{1, 108}}, 0},
		{86, 84, [2]group{{2, 43}}, 0},
		{62, 60, [2]group{{2, 15}, {2, 16}}, 0},
		{46, 44, [2]group{{2, 11}, {2, 12}}, 0},
	}},
	{172, []int{6, 34}, [4]level{
		{136, 134, [2]group{{2, 68}}, 0},
		{108, 106, [2]group{{4, 27}}, 0},
		{76, 74, [2]group{{4, 19}}, 0},
		{60, 58, [2]group{{4, 15}}, 0},
	}},
	{196, []int{6, 22, 38}, [4]level{
		{156, 154, [2]group{{2, 78}}, 0},
		{124, 122, [2]group{{4, 31}}, 0},
		{88, 86, [2]group{{2, 14}, {4, 15}}, 0},
		{66, 64, [2]group{{4, 13}, {1, 14}}, 0},
	}},
	{242, []int{6, 24, 42}, [4]level{
		{194, 192, [2]group{{2, 97}}, 0},
		{154, 152, [2]group{{2, 38}, {2, 39}}, 0},
		{110, 108, [2]group{{4, 18}, {2, 19}}, 0},
		{86, 84, [2]group{{4, 14}, {2, 15}}, 0},
	}},
	{292, []int{6, 26, 46}, [4]level{
		{232, 230, [2]group{{2, 116}}, 0},
		{182, 180, [2]group{{3, 36}, {2, 37}}, 0},
		{132, 130, [2]group{{4, 16}, {4, 17}}, 0},
		{100, 98, [2]group{{4, 12}, {4, 13}}, 0},
	}},
	{346, []int{6, 28, 50}, [4]level{
		{274, 271, [2]group{{2, 68}, {2, 69}}, 0},
		{216, 213, [2]group{{4, 43}, {1, 44}}, 0},
		{154, 151, [2]group{{6, 19}, {2, 20}}, 0},
		{122, 119, [2]group{{6, 15}, {2, 16}}, 0},
	}},
}

// rawModules returns the number of modules available for data and
// check codewords in a QR code of version v, including remainder bits.
func rawModules(v Version) int {
	n := (16*int(v)+128)*int(v) + 64
	if v >= 2 {
		na := int(v)/7 + 2
		n -= (25*na-10)*na - 55
		if v >= 7 {
			n -= 36
		}
	}
	return n
}

// init validates vtab and fills in the check codeword counts.
// An inconsistent table is a programming error.
func init() {
	for v := MinVersion; v <= MaxVersion; v++ {
		vt := &vtab[v]
		if n := rawModules(v) / 8; vt.bytes != n {
			panic(fmt.Sprintf("qr: version %s: %d codewords, want %d",
				v, vt.bytes, n))
		}
		for l := L; l <= H; l++ {
			lev := &vt.level[l]
			sum := 0
			for _, g := range lev.groups {
				sum += g.nblock * g.ndata
			}
			if sum != lev.data {
				panic(fmt.Sprintf("qr: version %s-%s: blocks hold %d "+
					"data codewords, want %d", v, l, sum, lev.data))
			}
			if g := lev.groups; g[1].nblock != 0 && g[1].ndata != g[0].ndata+1 {
				panic(fmt.Sprintf("qr: version %s-%s: bad block groups",
					v, l))
			}
			nb := lev.nblock()
			if (vt.bytes-lev.data)%nb != 0 {
				panic(fmt.Sprintf("qr: version %s-%s: %d check codewords "+
					"not divisible into %d blocks",
					v, l, vt.bytes-lev.data, nb))
			}
			lev.check = (vt.bytes - lev.data) / nb
			if c := (lev.data*8 - 4 - v.CountLength()) / 8; c != lev.cap {
				panic(fmt.Sprintf("qr: version %s-%s: capacity %d, want %d",
					v, l, lev.cap, c))
			}
		}
	}
}

// Capacity returns the number of bytes that can be stored in byte
// mode in a QR code with the given version and level.
func (v Version) Capacity(l Level) int {
	return vtab[v].level[l].cap
}

// DataBytes returns the number of data codewords in a QR code with
// the given version and level.
func (v Version) DataBytes(l Level) int {
	return vtab[v].level[l].data
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// TotalBytes returns the number of data and check codewords in a QR
// code of version v.
func (v Version) TotalBytes() int { return vtab[v].bytes }

// CheckBytes returns the number of check codewords per block and the
// number of blocks for the given version and level.
func (v Version) CheckBytes(l Level) (check, nblock int) {
	lev := &vtab[v].level[l]
	return lev.check, lev.nblock()
}

// RemainderBits returns the number of modules left over after
// placing all codewords.
func (v Version) RemainderBits() int { return rawModules(v) % 8 }

// AlignmentCenters returns the alignment pattern centre coordinates
// for version v.  The returned slice must not be modified.
func (v Version) AlignmentCenters() []int { return vtab[v].align }

// SelectVersion returns the smallest version that holds n bytes of
// byte mode data at level l.
func SelectVersion(n int, l Level) (Version, error) {
	if !l.valid() {
		return 0, ErrLevel
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		if v.Capacity(l) >= n {
			return v, nil
		}
	}
	return 0, CapacityError{n, l}
}
