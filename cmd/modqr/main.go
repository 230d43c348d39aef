// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Modqr generates QR codes in byte mode.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/modqr/qr"
	"github.com/modqr/qr/render"
	"github.com/pborman/getopt/v2"
	"golang.org/x/image/colornames"
)

var g = struct {
	fn       string          // output filename
	lev      qr.Level        // error correction level
	format   int             // index into writers
	inv      bool            // invert colours
	ro       render.Options  // rendering options
	mask     int             // forced mask, or -1
	parallel bool            // score masks concurrently
	utf16    bool            // UTF-16 input
	verbose  bool            // debug logging
	logo     string          // logo image file
	logoSize float64         // logo side as a fraction of the code
	logoMarg int             // modules cleared around the logo
	cx       int             // randr source X coordinate index in inc
	inc      [2]int          // randr source X,Y coordinate increments
	fg, bg   colorFlag       // module and background colours
	finder   colorFlag       // finder colour
	logoBg   colorFlag       // logo background colour
	palette  *[2]color.Color // PBM palette
}{
	inc:      [2]int{1, 1},
	mask:     -1,
	logoSize: 0.2,
	logoMarg: 2,
}

var log hclog.Logger

func fatal(err error) {
	log.Error(err.Error())
	os.Exit(1)
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		if n <= 0 {
			break
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:n]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Data is encoded in byte mode as UTF-8, invalid
sequences replaced with U+FFFD.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(bytes.ReplaceAll(b.Bytes(), []byte(" [-1]"), nil))
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`modqr version 1.0.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

func flip() {
	g.inc[0] = -g.inc[0]
}

func rotate() {
	g.cx ^= 1
	m := g.inc[0] * g.inc[1]
	g.inc[0] *= m
	g.inc[1] *= -m
}

// colorFlag is a colour given as hex digits or an SVG colour name.
type colorFlag struct {
	c color.Color
}

func (f *colorFlag) String() string {
	if f.c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(f.c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func (f *colorFlag) Set(s string, _ getopt.Option) error {
	c, err := parseColor(s)
	if err != nil {
		return err
	}
	f.c = c
	return nil
}

// parseColor accepts a colour name or 3, 4, 6 or 8 hex digits,
// optionally preceded by "#".
func parseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	h := strings.TrimPrefix(s, "#")
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%q: bad colour spec", s)
	}
	switch len(h) {
	case 3:
		n = n<<4 | 0xf
		fallthrough
	case 4:
		var nn uint64
		for i := 0; i < 4; i++ {
			nn <<= 8
			nn |= n >> 12 & 0xf * 0x11
			n <<= 4
		}
		n = nn
	case 6:
		n = n<<8 | 0xff
	case 8:
	default:
		return nil, fmt.Errorf("%q: bad colour spec", s)
	}
	return color.NRGBA{uint8(n >> 24), uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

type writer func(io.Writer, *qr.Code, *render.Options) error

func pbm(w io.Writer, c *qr.Code, o *render.Options) error {
	c.Scale, c.Border, c.Reverse = o.Scale, o.Margin, o.Invert
	c.Palette = g.palette
	return c.EncodePBM(w)
}

func ascii(w io.Writer, c *qr.Code, o *render.Options) error {
	oo := *o
	oo.ASCII = true
	return render.WriteText(w, c, &oo)
}

var formats = []string{
	"png", "pngi", "svg", "svgi", "pbm", "pbmi", "eps", "epsi",
	"utf8", "utf8i", "compact", "compacti", "ascii", "asciii",
}

var writers = [...]writer{
	render.WritePNG,
	render.WriteSVG,
	pbm,
	render.WriteEPS,
	render.WriteText,
	render.WriteCompact,
	ascii,
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.verbose, 'v', "log version, mask and penalty scores")
	getopt.Flag(&g.utf16, 'u', "standard input is UTF-16, "+
		"big endian unless it starts with a byte order mark")
	getopt.Flag(&g.parallel, 'p', "score masks concurrently")
	getopt.FlagLong(&g.bg, "background", 'B', `background colour; see -F`,
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or SVG colour name; `+
		`ignored for text types`, "RGB[A]|name")
	getopt.FlagLong(&g.finder, "finder-colour", 'C',
		`finder pattern colour for types png and svg; see -F`,
		"RGB[A]|name")
	getopt.Flag(opt(flip), 'f', `flip code horizontally; `+
		`to flip vertically, use "-frr"`).SetFlag()
	getopt.Flag(opt(rotate), 'r', `rotate code 90° counterclockwise; `+
		`-r and -f may be given multiple times, `+
		`order matters: "-fr" = "-rfrr" = "-rrrf"`).SetFlag()
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	getopt.Flag(&g.logo, 'L', "logo image (PNG or JPEG) placed in "+
		"the centre; for types png and svg, other types show the "+
		"cleared area", "file")
	getopt.Flag(&g.logoSize, 'z', "logo size as a fraction of the "+
		"code, 0.1 to 0.3", "size")
	getopt.Flag(&g.logoMarg, 'Z', "modules cleared around the logo",
		"margin")
	getopt.FlagLong(&g.logoBg, "logo-background", 'K',
		`colour behind the logo, default is the background; see -F`,
		"RGB[A]|name")
	mask := getopt.Signed('k', -1, &getopt.SignedLimit{0, 8, -1, 7},
		"force mask 0 to 7 instead of choosing the best", "mask")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "m",
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', 8,
		&(getopt.UnsignedLimit{0, 16, 1, 1 << 12}),
		`image pixels (type eps[i]: points) per QR module; `+
			`ignored for text types`, "scale")
	margin := getopt.Unsigned('m', 4,
		&(getopt.UnsignedLimit{0, 16, 0, 1 << 12}),
		`quiet zone modules`, "margin")
	style := getopt.Enum('S', render.StyleNames(), "square",
		"module style for types png and svg, one of: "+
			strings.Join(render.StyleNames(), ", "), "style")
	finder := getopt.Enum('P', render.FinderStyleNames(), "square",
		"finder style for types png and svg, one of: "+
			strings.Join(render.FinderStyleNames(), ", "), "finder")
	corners := getopt.ListLong("corner-finders", 'G',
		"finder styles for the top left, top right and bottom "+
			"left patterns, overriding -P", "tl,tr,bl")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()

	level := hclog.Warn
	if g.verbose {
		level = hclog.Debug
	}
	log = hclog.New(&hclog.LoggerOptions{
		Name:   "modqr",
		Level:  level,
		Output: os.Stderr,
		Color:  hclog.AutoColor,
	})

	var err error
	if g.lev, err = qr.ParseLevel(*lev); err != nil {
		fatal(err)
	}
	g.mask = int(*mask)
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(os.Stdout.Fd()) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	for i, v := range formats {
		if *ff == v {
			g.format = i >> 1
			g.inv = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
	g.ro = render.Options{
		Scale:       int(*scale),
		Margin:      int(*margin),
		Foreground:  g.fg.c,
		Background:  g.bg.c,
		FinderColor: g.finder.c,
		Invert:      g.inv,

		LogoBackground: g.logoBg.c,
	}
	if g.ro.Style, err = render.ParseStyle(*style); err != nil {
		fatal(err)
	}
	if g.ro.Finder, err = render.ParseFinderStyle(*finder); err != nil {
		fatal(err)
	}
	if len(*corners) != 0 {
		if len(*corners) != 3 {
			fatal(fmt.Errorf("-G needs 3 finder styles, got %d",
				len(*corners)))
		}
		for _, name := range *corners {
			f, err := render.ParseFinderStyle(name)
			if err != nil {
				fatal(err)
			}
			g.ro.Finders = append(g.ro.Finders, f)
		}
	}
	if g.fg.c != nil || g.bg.c != nil {
		light, dark := g.ro.Background, g.ro.Foreground
		if light == nil {
			light = color.White
		}
		if dark == nil {
			dark = color.Black
		}
		g.palette = &[2]color.Color{light, dark}
	}
}

// input returns the data to encode.
func input() []byte {
	if args := getopt.Args(); len(args) != 0 {
		return qr.ToUTF8([]byte(strings.Join(args, " ")))
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal(err)
	}
	if g.utf16 {
		if b, err = qr.FromUTF16(b); err != nil {
			fatal(err)
		}
	} else {
		b = qr.ToUTF8(b)
	}
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b, _ = bytes.CutSuffix(b, []byte("\n"))
	return b
}

func loadLogo(fn string) image.Image {
	f, err := os.Open(fn)
	if err != nil {
		fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		fatal(fmt.Errorf("%s: %w", fn, err))
	}
	return img
}

func main() {
	parseFlags()

	o := &qr.Options{Level: g.lev, Parallel: g.parallel}
	if g.mask >= 0 {
		o.ForceMask, o.Mask = true, g.mask
	}
	if g.logo != "" {
		o.Logo = &qr.Logo{Size: g.logoSize, Margin: g.logoMarg}
		if err := o.Logo.Validate(); err != nil {
			fatal(err)
		}
		if g.lev < qr.Q {
			log.Warn("logo at low error correction level; "+
				"the code may be unreadable", "level", g.lev.String())
		}
		g.ro.Logo = o.Logo
		g.ro.LogoImage = loadLogo(g.logo)
	}
	data := input()
	c, err := qr.EncodeOptions(data, o)
	if err != nil {
		fatal(err)
	}
	log.Debug("encoded", "bytes", len(data), "version", c.Version,
		"level", c.Level.String(), "size", c.Size, "mask", c.Mask,
		"penalties", c.Penalties)
	write(randr(c))
}

func write(c *qr.Code) {
	w := os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			fatal(err)
		}
	}
	err := writers[g.format](w, c, &g.ro)
	if g.fn != "" {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		fatal(err)
	}
}

// randr rotates and reflects c.
func randr(c *qr.Code) *qr.Code {
	cx, inc := g.cx, g.inc
	if cx == 0 && inc == [2]int{1, 1} {
		return c
	}
	r := c.Clone()
	clear(r.Bitmap)
	var coord [2]int
	siz := c.Size
	coord[cx^1] = (siz - 1) & inc[1]
	for y := 0; y < siz; y++ {
		coord[cx] = (siz - 1) & inc[0]
		for x := 0; x < siz; x++ {
			if c.Black(coord[0], coord[1]) {
				r.Bitmap[y*r.Stride+x/8] |= 0x80 >> uint(x&7)
			}
			coord[cx] += inc[0]
		}
		coord[cx^1] += inc[1]
	}
	return r
}
