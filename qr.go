// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes in byte mode.

The encoder selects the smallest version from 1 to 10 that holds the
data at the requested error correction level, adds Reed-Solomon check
codewords, places the modules and applies the mask with the lowest
penalty.  The resulting Code can be drawn with Image, EncodePBM or the
render package.
*/
package qr // import "github.com/modqr/qr"

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/modqr/qr/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
// The zero Level stands for DefaultLevel.
type Level int

const (
	L Level = iota + 1 // 7% recoverable
	M                  // 15% recoverable
	Q                  // 25% recoverable
	H                  // 30% recoverable
)

// DefaultLevel is the error correction level used by Encode when
// none is given.
const DefaultLevel = M

func (l Level) String() string {
	if l < 0 || l > H {
		return strconv.Itoa(int(l))
	}
	return l.coding().String()
}

// coding returns the coding package level for l.
func (l Level) coding() coding.Level {
	if l == 0 {
		l = DefaultLevel
	}
	return coding.Level(l - L)
}

// ParseLevel returns the level named by s, one of "L", "M", "Q", "H"
// in either case.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "l", "L":
		return L, nil
	case "m", "M":
		return M, nil
	case "q", "Q":
		return Q, nil
	case "h", "H":
		return H, nil
	}
	return 0, &ConfigError{"level", s, "must be one of L, M, Q, H"}
}

var (
	// ErrDataTooLarge is returned when the data does not fit in
	// the largest supported version at the requested level.
	ErrDataTooLarge = coding.ErrDataTooLarge

	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("qr: invalid configuration")

	// ErrArgs is returned when drawing a nil or malformed Code.
	ErrArgs = errors.New("qr: invalid arguments")
)

// ConfigError reports an option out of its documented range.
// It matches ErrInvalidConfig.
type ConfigError struct {
	Field  string // option name
	Value  any    // rejected value
	Reason string // constraint violated
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("qr: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// Options control encoding.  The zero value selects DefaultLevel and
// the best mask.
type Options struct {
	Level     Level // error correction level, 0 for DefaultLevel
	ForceMask bool  // apply Mask instead of choosing one
	Mask      int   // mask number, 0 to 7
	Parallel  bool  // score masks concurrently
	Logo      *Logo // clear an area for a logo after encoding
}

// Validate reports whether o is within range.  The returned error
// is a *ConfigError.
func (o *Options) Validate() error {
	if o.Level < 0 || o.Level > H {
		return &ConfigError{"level", int(o.Level), "must be L, M, Q or H"}
	}
	if o.ForceMask && (o.Mask < 0 || o.Mask > 7) {
		return &ConfigError{"mask", o.Mask, "must be between 0 and 7"}
	}
	if o.Logo != nil {
		return o.Logo.Validate()
	}
	return nil
}

// A Code is a square module grid.
// It implements image.Image via Image and PBM encoding.
type Code struct {
	Bitmap []byte // 1 is dark, 0 is light
	Size   int    // number of modules on a side
	Stride int    // number of bytes per row

	Scale   int             // number of image pixels per module
	Border  int             // quiet zone width in modules
	Palette *[2]color.Color // light and dark colours, or nil
	Reverse bool            // swap light and dark colours

	Version   int    // QR code version
	Level     Level  // error correction level
	Mask      int    // applied mask
	Penalties [8]int // penalty scores of all masks
}

// Black reports whether the module at (x, y) is dark.
// Modules outside the code are light.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// isValid reports whether c can be drawn.
func (c *Code) isValid() bool {
	return c != nil && c.Size > 0 && c.Stride == (c.Size+7)/8 &&
		len(c.Bitmap) == c.Stride*c.Size && c.Scale > 0 && c.Border >= 0
}

// Clone returns a copy of c with its own bitmap.
func (c *Code) Clone() *Code {
	cc := *c
	cc.Bitmap = append([]byte(nil), c.Bitmap...)
	return &cc
}

// Encode returns an encoding of text at the given error correction
// level.  Invalid UTF-8 sequences in text are replaced with U+FFFD.
func Encode(text string, level Level) (*Code, error) {
	return EncodeOptions(ToUTF8([]byte(text)), &Options{Level: level})
}

// EncodeBytes returns an encoding of data at the given error
// correction level.
func EncodeBytes(data []byte, level Level) (*Code, error) {
	return EncodeOptions(data, &Options{Level: level})
}

// EncodeOptions returns an encoding of data with the given options.
// Options are validated before any encoding work.
func EncodeOptions(data []byte, o *Options) (*Code, error) {
	if o == nil {
		o = &Options{}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	l := o.Level.coding()
	v, err := coding.SelectVersion(len(data), l)
	if err != nil {
		return nil, err
	}
	e, err := coding.NewEncoder(v, l)
	if err != nil {
		return nil, err
	}
	e.Parallel = o.Parallel
	if o.ForceMask {
		e.Mask = o.Mask
	}
	cc, err := e.Encode(data)
	if err != nil {
		return nil, err
	}
	c := &Code{
		Bitmap:  cc.Bitmap,
		Size:    cc.Size,
		Stride:  cc.Stride,
		Scale:   8,
		Border:  4,
		Version: int(cc.Version),
		Level:   Level(cc.Level) + L,
		Mask:    cc.Mask,
	}
	for i, p := range cc.Penalties {
		c.Penalties[i] = p.Total()
	}
	if o.Logo != nil {
		return c.WithLogo(o.Logo)
	}
	return c, nil
}
