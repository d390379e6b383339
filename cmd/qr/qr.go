// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Qr generates QR codes.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/colornames"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/unicode/norm"

	qr "github.com/qrgen/qrgen"
	"github.com/qrgen/qrgen/coding"
	"github.com/qrgen/qrgen/payload"
)

var log = logrus.New()

var g = struct {
	scale   int             // scale
	border  int             // quiet zone
	dim     string          // image dimension: auto, max or pixels
	palette *[2]color.Color // palette
	rev     bool            // reverse colours
	fn      string          // filename
	lev     qr.Level        // QR correction level
	mode    qr.Mode         // QR encoding mode
	mask    *coding.Mask    // fixed mask
	ver     coding.Version  // fixed version, 0 for smallest
	format  int             // output file format
	cx      int             // randr source X coordinate index in inc
	inc     [2]int          // randr source X,Y coordinate increments
	bg, fg  rgba            // colour
	colSet  bool            // colour set
	clear   bool            // transparent background
	random  bool            // random mask
	upper   bool            // uppercase
	nfc     bool            // normalise to NFC
	charset string          // input charset
	kind    string          // payload kind
	debug   bool            // debug logging
}{
	inc: [2]int{1, 1},
	bg:  rgba{0xff, 0xff, 0xff, 0xff},
	fg:  rgba{0x00, 0x00, 0x00, 0xff},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [field ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
For types text and url the fields are joined with spaces.  Other types
take one field per argument:
  email  recipient [subject [body]]
  geo    latitude longitude
  tel    number
  wifi   ssid [password [none|wep|wpa|wpa2-eap]]
If no field is given, data is read from standard input; for text and
url the final newline is stripped, for other types each line is a
field.  Input is UTF-8 unless -c is given.

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
	fmt.Println(`qr version 1.0.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
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

type rgba struct {
	R, G, B, A uint8
}

func (c *rgba) String() string {
	if *c == (rgba{0x00, 0x00, 0x00, 0xff}) {
		return "black"
	} else if *c == (rgba{0xff, 0xff, 0xff, 0xff}) {
		return "white"
	} else if c.A == 0xff {
		return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	} else {
		return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
	}
}

// Set parses a colour given as 3, 4, 6 or 8 hex digits, optionally
// prefixed with "#", or as an SVG colour name.
func (c *rgba) Set(s string, _ getopt.Option) error {
	name := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if v, ok := colornames.Map[name]; ok {
		*c = rgba(v)
		g.colSet = true
		return nil
	}
	hex := strings.TrimPrefix(s, "#")
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return errors.Errorf("%q: bad colour spec", s)
	}
	switch len(hex) {
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
		return errors.Errorf("%q: bad colour spec", s)
	}
	c.R, c.G, c.B, c.A = uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)
	g.colSet = true
	return nil
}

func (c rgba) color() color.Color {
	return color.NRGBA{c.R, c.G, c.B, c.A}
}

var formats = []string{
	"png", "pngi", "bmp", "bmpi", "pbm", "pbmi",
	"utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*qr.Code, io.Writer) error{
	func(c *qr.Code, w io.Writer) error {
		if g.dim == "" {
			return c.EncodePNG(w)
		}
		img, err := raster(c)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	},
	func(c *qr.Code, w io.Writer) error {
		img, err := raster(c)
		if err != nil {
			return err
		}
		return bmp.Encode(w, img)
	},
	(*qr.Code).EncodePBM,
	func(c *qr.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	ascii,
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.FlagLong(&g.bg, "background", 'B', `background colour; see -F`,
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or SVG colour name; `+
		`only for types png[i] and bmp[i]`, "RGB[A]|name")
	getopt.Flag(&g.clear, 'T', "transparent background")
	getopt.Flag(opt(flip), 'f', `flip code horizontally; `+
		`to flip vertically, use "-frr"`).SetFlag()
	getopt.Flag(opt(rotate), 'r', `rotate code 90° counterclockwise; `+
		`-r and -f may be given multiple times, `+
		`order matters: "-fr" = "-rfrr" = "-rrrf"`).SetFlag()
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&g.nfc, 'N', `normalise input to Unicode NFC`)
	getopt.Flag(&g.charset, 'c', `input character set, `+
		`converted to UTF-8`, "charset")
	getopt.Flag(&g.random, 'R', `choose a random mask instead of `+
		`the one with the lowest penalty`)
	getopt.Flag(&g.debug, 'd', `log encoding parameters`)
	getopt.Flag(&g.border, 'm', `quiet zone modules [4]`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	getopt.Flag(&g.dim, 'D', `image dimension in pixels, "auto" `+
		`for 10 or more pixels per module rounded up to a multiple `+
		`of 256, or "max" for 2048; overrides -s for types `+
		`png[i] and bmp[i]`, "dim")
	mask := getopt.Signed('x', -1, &getopt.SignedLimit{Base: 0, Bits: 8, Min: 0, Max: 7},
		"use mask pattern; overrides -R", "mask")
	kind := getopt.Enum('k', payload.Kinds, "text",
		"payload type", strings.Join(payload.Kinds, "|"))
	mode := getopt.Enum('M', []string{"auto", "numeric", "alphanumeric",
		"byte", "n", "alnum", "b"}, "auto", "encoding mode",
		"mode")
	ver := getopt.Unsigned('v', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"QR code version; fails if the data does not fit", "ver")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', 4,
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 28}),
		`image pixels per QR module ("pixel"); `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	ff := getopt.Enum('t', formats, "", `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	g.scale = int(*scale)
	if l, err := coding.ParseLevel(*lev); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
	} else {
		g.lev = qr.Level(l)
	}
	if getopt.IsSet('v') {
		g.ver = coding.Version(*ver)
	}
	g.kind = *kind
	if m, err := coding.ParseMode(*mode); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
	} else {
		g.mode = qr.Mode(m)
	}
	if getopt.IsSet('x') {
		m := coding.Mask(*mask)
		g.mask = &m
	}
	if !getopt.IsSet('m') {
		g.border = qr.DefaultBorder
	}
	if g.dim != "" {
		if _, err := dimension(g.dim, 1, 0); err != nil {
			fmt.Fprintln(os.Stderr, err)
			usage()
		}
	}
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
			g.rev = i&1 != 0
			break
		}
	}
	if g.fn == "-" {
		g.fn = ""
	}
	if g.clear {
		g.bg = rgba{}
		g.colSet = true
	}
	if g.colSet {
		g.palette = &[2]color.Color{g.bg.color(), g.fg.color()}
	}
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	parseFlags()
	if g.debug {
		log.SetLevel(logrus.DebugLevel)
	}

	fields, err := input(getopt.Args(), os.Stdin)
	if err != nil {
		log.Fatal(err)
	}
	p, err := payload.New(g.kind, fields...)
	if err != nil {
		log.Fatal(err)
	}
	s, err := p.Payload()
	if err != nil {
		log.Fatal(err)
	}
	if g.upper {
		s = strings.ToUpper(s)
	}
	log.WithFields(logrus.Fields{
		"kind":  g.kind,
		"bytes": len(s),
	}).Debug("payload")

	r, err := qr.Generate(qr.Request{
		Text:     s,
		Mode:     g.mode,
		Level:    g.lev,
		Optimize: !g.random,
		Mask:     g.mask,
		Version:  g.ver,
	})
	if err != nil {
		log.Fatal(errors.Wrap(err, "encode"))
	}
	log.WithFields(logrus.Fields{
		"version": r.Version,
		"level":   r.Level,
		"mode":    r.Mode,
		"mask":    r.Mask,
		"penalty": r.Penalty,
		"size":    r.Code.Size,
	}).Debug("symbol")

	if err := write(r.Code); err != nil {
		log.Fatal(err)
	}
}

// input returns the payload fields from args, or else from r: the
// whole text for kinds text and url, one field per line otherwise.
// It applies the -c and -N conversions.
func input(args []string, r io.Reader) ([]string, error) {
	joined := g.kind == "text" || g.kind == "url"
	var fields []string
	if len(args) != 0 {
		fields = append([]string(nil), args...)
		if joined {
			fields = []string{strings.Join(args, " ")}
		}
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, r); err != nil {
			return nil, errors.Wrap(err, "read input")
		}
		s, _ := strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
		fields = []string{s}
		if !joined {
			fields = strings.Split(s, "\n")
		}
	}
	if g.charset != "" {
		enc, err := ianaindex.IANA.Encoding(g.charset)
		if err != nil {
			return nil, errors.Wrapf(err, "charset %q", g.charset)
		}
		if enc != nil {
			dec := enc.NewDecoder()
			for i, f := range fields {
				if fields[i], err = dec.String(f); err != nil {
					return nil, errors.Wrapf(err, "convert from %s", g.charset)
				}
			}
		}
	}
	if g.nfc {
		for i, f := range fields {
			fields[i] = norm.NFC.String(f)
		}
	}
	return fields, nil
}

func write(c *qr.Code) error {
	w := os.Stdout
	if g.fn != "" {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			return errors.Wrap(err, "open output")
		}
	}
	randr(c)
	c.Scale = g.scale
	c.Border = g.border
	c.Palette = g.palette
	c.Reverse = g.rev
	err := encoders[g.format](c, w)
	if g.fn != "" {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}
	return errors.Wrapf(err, "write %s", formats[g.format*2])
}

// dimension returns the image dimension for s given the number of
// modules on a side, quiet zone included, and the dimension to use for
// "auto".
func dimension(s string, n, auto int) (int, error) {
	switch s {
	case "auto":
		return auto, nil
	case "max":
		return qr.MaxDimension, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < n || d > qr.MaxDimension {
		return 0, errors.Errorf("%q: bad dimension", s)
	}
	return d, nil
}

// raster returns the image for c, fitted to -D if given.
func raster(c *qr.Code) (image.Image, error) {
	if g.dim == "" {
		return c.Image(), nil
	}
	d, err := dimension(g.dim, c.Size+2*c.Border, c.AutoDimension())
	if err != nil {
		return nil, err
	}
	return c.Fit(d)
}

// randr rotates and reflects c.
func randr(c *qr.Code) {
	cx, inc := g.cx, g.inc
	if cx == 0 && inc == [2]int{1, 1} {
		return
	}
	siz := c.Size
	stride := (siz + 7) / 8
	b := make([]byte, stride*siz)
	var coord [2]int
	coord[cx^1] = (siz - 1) & inc[1]
	for y := 0; y < siz; y++ {
		coord[cx] = (siz - 1) & inc[0]
		for x := 0; x < siz; x++ {
			if c.Black(coord[0], coord[1]) {
				b[y*stride+x/8] |= 0x80 >> (x & 7)
			}
			coord[cx] += inc[0]
		}
		coord[cx^1] += inc[1]
	}
	c.Bitmap, c.Stride = b, stride
}

func ascii(c *qr.Code, w io.Writer) error {
	siz := c.Size
	bord := c.Border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if c.Black(x, y) != c.Reverse {
				p = '#'
			}
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
