// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
	"github.com/makiuchi-d/gozxing/qrcode/encoder"

	"github.com/modqr/qr/coding"
)

// decode reads img back with an independent decoder.
func decode(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	res, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatal(err)
	}
	return res.GetText()
}

func TestHelloWorld(t *testing.T) {
	c, err := Encode("HELLO WORLD", Q)
	if err != nil {
		t.Fatal(err)
	}
	if c.Version != 1 || c.Size != 21 || c.Level != Q {
		t.Errorf("got version %d size %d level %s, want 1 21 Q",
			c.Version, c.Size, c.Level)
	}
	if got := decode(t, c.Image()); got != "HELLO WORLD" {
		t.Errorf("decoded %q", got)
	}
}

// HELLO WORLD in byte mode at level Q, mask 5.
var helloGrid = []string{
	"#######.##....#######",
	"#.....#.#.###.#.....#",
	"#.###.#..##...#.###.#",
	"#.###.#..#..#.#.###.#",
	"#.###.#...#.#.#.###.#",
	"#.....#....##.#.....#",
	"#######.#.#.#.#######",
	".........#...........",
	".#....#####.##.....##",
	"##.....##.####..###.#",
	"..###.#.#..####..###.",
	".#..#...#.##.#.####..",
	"....#######...#.####.",
	"........#.##...#.#...",
	"#######.#.#...#...##.",
	"#.....#......##.####.",
	"#.###.#.....#..#..#.#",
	"#.###.#..##.###.##...",
	"#.###.#..############",
	"#.....#.##..##.####..",
	"#######..#.##...#.##.",
}

func TestHelloWorldGrid(t *testing.T) {
	c, err := Encode("HELLO WORLD", Q)
	if err != nil {
		t.Fatal(err)
	}
	if c.Mask != 5 {
		t.Errorf("mask %d, want 5", c.Mask)
	}
	for y, row := range helloGrid {
		for x := range row {
			if c.Black(x, y) != (row[x] == '#') {
				t.Errorf("module (%d,%d) is %v", x, y, c.Black(x, y))
			}
		}
	}
}

// TestReferenceGrid compares every module with the zxing encoder at
// the same version, level and mask, for the shortest and longest
// payload of each version.
func TestReferenceGrid(t *testing.T) {
	ecl := map[Level]decoder.ErrorCorrectionLevel{
		L: decoder.ErrorCorrectionLevel_L,
		M: decoder.ErrorCorrectionLevel_M,
		Q: decoder.ErrorCorrectionLevel_Q,
		H: decoder.ErrorCorrectionLevel_H,
	}
	// Lower case letters keep zxing in byte mode.
	alpha := strings.Repeat("abcdefghijklmnopqrstuvwxyz", 11)
	for v := coding.MinVersion; v <= coding.MaxVersion; v++ {
		for l := L; l <= H; l++ {
			lo := 1
			if v > coding.MinVersion {
				lo = (v - 1).Capacity(l.coding()) + 1
			}
			for _, n := range []int{lo, v.Capacity(l.coding())} {
				text := alpha[:n]
				for m := 0; m < 8; m++ {
					c, err := EncodeOptions([]byte(text),
						&Options{Level: l, ForceMask: true, Mask: m})
					if err != nil {
						t.Fatalf("%d bytes at %s: %v", n, l, err)
					}
					if c.Version != int(v) {
						t.Fatalf("%d bytes at %s: version %d, want %s",
							n, l, c.Version, v)
					}
					ref, err := encoder.Encoder_encode(text, ecl[l],
						map[gozxing.EncodeHintType]interface{}{
							gozxing.EncodeHintType_QR_VERSION:      int(v),
							gozxing.EncodeHintType_QR_MASK_PATTERN: m,
						})
					if err != nil {
						t.Fatalf("zxing %s-%s: %v", v, l, err)
					}
					mx := ref.GetMatrix()
					if mx.GetWidth() != c.Size {
						t.Fatalf("%s-%s: size %d, zxing %d",
							v, l, c.Size, mx.GetWidth())
					}
					bad := 0
					for y := 0; y < c.Size; y++ {
						for x := 0; x < c.Size; x++ {
							if c.Black(x, y) != (mx.Get(x, y) == 1) {
								bad++
							}
						}
					}
					if bad != 0 {
						t.Errorf("%s-%s mask %d, %d bytes: %d modules differ",
							v, l, m, n, bad)
					}
				}
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		text    string
		level   Level
		version int
	}{
		{"hello", L, 1},
		{"https://example.com/a/b/c?d=e", M, 3},
		{"héllo wörld ✓", H, 3},
		{strings.Repeat("0123456789", 15), L, 7},
		{strings.Repeat("abcdefgh", 16), Q, 9},
		{strings.Repeat("x", 271), L, 10},
	} {
		c, err := Encode(tc.text, tc.level)
		if err != nil {
			t.Errorf("%.20q: %v", tc.text, err)
			continue
		}
		if c.Version != tc.version {
			t.Errorf("%.20q-%s: version %d, want %d",
				tc.text, tc.level, c.Version, tc.version)
		}
		if got := decode(t, c.Image()); got != tc.text {
			t.Errorf("%.20q-%s: decoded %.20q", tc.text, tc.level, got)
		}
	}
}

func TestForcedMask(t *testing.T) {
	auto, err := EncodeBytes([]byte("mask"), M)
	if err != nil {
		t.Fatal(err)
	}
	for m := 0; m < 8; m++ {
		if auto.Penalties[m] < auto.Penalties[auto.Mask] ||
			auto.Penalties[m] == auto.Penalties[auto.Mask] && m < auto.Mask {
			t.Errorf("mask %d (%d) beats chosen mask %d (%d)",
				m, auto.Penalties[m], auto.Mask, auto.Penalties[auto.Mask])
		}
		c, err := EncodeOptions([]byte("mask"),
			&Options{Level: M, ForceMask: true, Mask: m})
		if err != nil {
			t.Fatal(err)
		}
		if c.Mask != m {
			t.Errorf("forced mask %d, got %d", m, c.Mask)
		}
		if m == auto.Mask && !bytes.Equal(c.Bitmap, auto.Bitmap) {
			t.Errorf("forced mask %d differs from automatic choice", m)
		}
		if got := decode(t, c.Image()); got != "mask" {
			t.Errorf("mask %d: decoded %q", m, got)
		}
	}
}

func TestParallel(t *testing.T) {
	data := []byte(strings.Repeat("parallel ", 20))
	seq, err := EncodeOptions(data, &Options{Level: Q})
	if err != nil {
		t.Fatal(err)
	}
	par, err := EncodeOptions(data, &Options{Level: Q, Parallel: true})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(seq, par); diff != "" {
		t.Errorf("parallel encoding differs (-seq +par):\n%s", diff)
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := EncodeBytes(make([]byte, 272), L); !errors.Is(err, ErrDataTooLarge) {
		t.Errorf("272 bytes at L: got %v, want ErrDataTooLarge", err)
	}
	if _, err := EncodeBytes(make([]byte, 120), H); !errors.Is(err, ErrDataTooLarge) {
		t.Errorf("120 bytes at H: got %v, want ErrDataTooLarge", err)
	}
	if _, err := EncodeBytes(make([]byte, 119), H); err != nil {
		t.Errorf("119 bytes at H: %v", err)
	}
	for _, tc := range []struct {
		o     Options
		field string
	}{
		{Options{Level: H + 1}, "level"},
		{Options{Level: -1}, "level"},
		{Options{ForceMask: true, Mask: 8}, "mask"},
		{Options{ForceMask: true, Mask: -1}, "mask"},
		{Options{Logo: &Logo{Size: 0.5}}, "logo size"},
		{Options{Logo: &Logo{Size: 0.2, Margin: -1}}, "logo margin"},
	} {
		_, err := EncodeOptions([]byte("x"), &tc.o)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%+v: got %v, want ErrInvalidConfig", tc.o, err)
			continue
		}
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Field != tc.field {
			t.Errorf("%+v: got %v, want field %q", tc.o, err, tc.field)
		}
	}
	// Out of range masks are fine when not forced.
	if _, err := EncodeOptions([]byte("x"), &Options{Mask: 9}); err != nil {
		t.Errorf("unforced mask 9: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	for i, s := range []string{"L", "M", "Q", "H"} {
		for _, s := range []string{s, strings.ToLower(s)} {
			l, err := ParseLevel(s)
			if err != nil || l != L+Level(i) {
				t.Errorf("ParseLevel(%q) = %v, %v", s, l, err)
			}
		}
	}
	if _, err := ParseLevel("X"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ParseLevel(X): got %v, want ErrInvalidConfig", err)
	}
}

func TestDefaultLevel(t *testing.T) {
	for _, o := range []*Options{nil, {}, {Parallel: true}, {Level: M}} {
		c, err := EncodeOptions([]byte("default"), o)
		if err != nil {
			t.Fatal(err)
		}
		if c.Level != M {
			t.Errorf("%+v: level %s, want M", o, c.Level)
		}
	}
	if s := Level(0).String(); s != "M" {
		t.Errorf("Level(0).String() = %q, want M", s)
	}
	c, err := EncodeOptions([]byte("low"), &Options{Level: L})
	if err != nil {
		t.Fatal(err)
	}
	if c.Level != L {
		t.Errorf("level %s, want L", c.Level)
	}
}

func TestInvalidUTF8(t *testing.T) {
	a, err := Encode("a\xffb", L)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeBytes([]byte("a�b"), L)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bitmap, b.Bitmap) {
		t.Error("invalid UTF-8 not replaced by U+FFFD")
	}
}

func TestUTF16(t *testing.T) {
	for _, tc := range []struct {
		in   []byte
		want string
	}{
		{[]byte{0, 'A', 0, 'B'}, "AB"},
		{[]byte{0xfe, 0xff, 0, 'A', 0, 'B'}, "AB"},
		{[]byte{0xff, 0xfe, 'A', 0, 'B', 0}, "AB"},
		{[]byte{0, 'A', 0xd8, 0, 0, 'B'}, "A�B"},
		{[]byte{0xd8, 0x3d, 0xde, 0x00}, "😀"},
	} {
		got, err := FromUTF16(tc.in)
		if err != nil {
			t.Errorf("% x: %v", tc.in, err)
			continue
		}
		if string(got) != tc.want {
			t.Errorf("% x: got %q, want %q", tc.in, got, tc.want)
		}
	}
	c, err := EncodeUTF16([]byte{0, 'h', 0, 'i'}, M)
	if err != nil {
		t.Fatal(err)
	}
	if got := decode(t, c.Image()); got != "hi" {
		t.Errorf("decoded %q, want hi", got)
	}
}

func TestLogo(t *testing.T) {
	data := []byte(strings.Repeat("logo", 20))
	plain, err := EncodeBytes(data, H)
	if err != nil {
		t.Fatal(err)
	}
	l := &Logo{Size: 0.2, Margin: 2}
	c, err := EncodeOptions(data, &Options{Level: H, Logo: l})
	if err != nil {
		t.Fatal(err)
	}
	area := l.Area(c.Size)
	if area.Empty() || !area.In(image.Rect(0, 0, c.Size, c.Size)) {
		t.Fatalf("bad logo area %v for size %d", area, c.Size)
	}
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			in := image.Pt(x, y).In(area)
			if in && c.Black(x, y) {
				t.Fatalf("module (%d,%d) inside logo area is dark", x, y)
			}
			if !in && c.Black(x, y) != plain.Black(x, y) {
				t.Fatalf("module (%d,%d) outside logo area changed", x, y)
			}
		}
	}
	if _, err := plain.WithLogo(nil); !errors.Is(err, ErrArgs) {
		t.Errorf("WithLogo(nil): got %v, want ErrArgs", err)
	}
}

func TestLogoBounds(t *testing.T) {
	for _, tc := range []struct {
		l          Logo
		size       int
		bounds     image.Rectangle
		clearedMin int
	}{
		{Logo{0.2, 2}, 21, image.Rect(8, 8, 12, 12), 6},
		{Logo{0.3, 0}, 57, image.Rect(20, 20, 37, 37), 20},
		{Logo{0.1, 40}, 25, image.Rect(11, 11, 13, 13), 0},
	} {
		if got := tc.l.Bounds(tc.size); got != tc.bounds {
			t.Errorf("%+v/%d: bounds %v, want %v", tc.l, tc.size, got, tc.bounds)
		}
		if got := tc.l.Area(tc.size).Min.X; got != tc.clearedMin {
			t.Errorf("%+v/%d: area starts at %d, want %d",
				tc.l, tc.size, got, tc.clearedMin)
		}
	}
}

func TestPBM(t *testing.T) {
	c, err := Encode("pbm", L)
	if err != nil {
		t.Fatal(err)
	}
	c.Scale, c.Border = 1, 0
	var b bytes.Buffer
	if err := c.EncodePBM(&b); err != nil {
		t.Fatal(err)
	}
	hdr := "P4\n21 21\n"
	if !strings.HasPrefix(b.String(), hdr) {
		t.Fatalf("header %q, want %q", b.String()[:len(hdr)], hdr)
	}
	if got, want := b.Len(), len(hdr)+21*3; got != want {
		t.Fatalf("length %d, want %d", got, want)
	}
	// Top row: seven dark finder modules, then a light separator.
	if got := b.Bytes()[len(hdr)]; got != 0xfe {
		t.Errorf("first byte %#02x, want 0xfe", got)
	}

	c.Reverse = true
	b.Reset()
	if err := c.EncodePBM(&b); err != nil {
		t.Fatal(err)
	}
	if got := b.Bytes()[len(hdr)]; got != 0x01 {
		t.Errorf("reversed first byte %#02x, want 0x01", got)
	}

	c.Reverse = false
	c.Palette = &[2]color.Color{color.Black, color.White}
	b.Reset()
	if err := c.EncodePBM(&b); err != nil {
		t.Fatal(err)
	}
	if got := b.Bytes()[len(hdr)]; got != 0x01 {
		t.Errorf("light-on-dark palette first byte %#02x, want 0x01", got)
	}

	c.Scale, c.Border = 3, 2
	b.Reset()
	if err := c.EncodePBM(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "P4\n75 75\n") {
		t.Errorf("scaled header %q", b.String()[:10])
	}
	if err := (&Code{}).EncodePBM(&b); !errors.Is(err, ErrArgs) {
		t.Errorf("empty code: got %v, want ErrArgs", err)
	}
}

func TestImage(t *testing.T) {
	c, err := Encode("image", M)
	if err != nil {
		t.Fatal(err)
	}
	img := c.Image()
	d := (c.Size + 2*c.Border) * c.Scale
	if got := img.Bounds(); got != image.Rect(0, 0, d, d) {
		t.Errorf("bounds %v, want %dx%d", got, d, d)
	}
	q := c.Border * c.Scale
	if img.At(q-1, q-1) != (color.Gray{0xff}) {
		t.Error("quiet zone is not light")
	}
	if img.At(q, q) != (color.Gray{0x00}) {
		t.Error("finder corner is not dark")
	}
	c.Palette = &[2]color.Color{color.RGBA{0xff, 0xff, 0, 0xff}, color.RGBA{0, 0, 0x80, 0xff}}
	c.Reverse = true
	if got := c.Image().At(q, q); got != c.Palette[0] {
		t.Errorf("reversed finder corner %v, want %v", got, c.Palette[0])
	}
}

func TestString(t *testing.T) {
	c, err := Encode("text", L)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	n := c.Size + 2*c.Border
	if len(lines) != (n+1)/2 {
		t.Fatalf("%d lines, want %d", len(lines), (n+1)/2)
	}
	for i, s := range lines {
		if utf8.RuneCountInString(s) != n {
			t.Fatalf("line %d: %d runes, want %d", i, utf8.RuneCountInString(s), n)
		}
	}
	if lines[0] != strings.Repeat("█", n) {
		t.Errorf("first line %q is not blank quiet zone", lines[0])
	}
}

func ExampleEncode() {
	c, err := Encode("HELLO WORLD", Q)
	if err != nil {
		panic(err)
	}
	fmt.Println(c.Version, c.Level, c.Size)
	// Output: 1 Q 21
}

func ExampleEncodeOptions() {
	_, err := EncodeOptions([]byte("x"), &Options{ForceMask: true, Mask: 9})
	fmt.Println(err)
	fmt.Println(errors.Is(err, ErrInvalidConfig))
	// Output:
	// qr: invalid mask 9: must be between 0 and 7
	// true
}
