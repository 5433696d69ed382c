package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/unixdj/qrcore"
	"github.com/unixdj/qrcore/coding"
	"github.com/unixdj/qrcore/mask"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"
)

var g struct {
	lev      qr.Level       // QR correction level
	ver      coding.Version // QR version, 0 for automatic
	mode     qr.Mode        // encoding mode
	format   string         // output format
	conf     string         // configuration file
	grid     string         // module matrix file
	resv     string         // reserved module map file
	rver     coding.Version // version for standard reserved map
	mask     mask.Pattern   // mask pattern
	maskSet  bool           // mask pattern given
	latin1   bool           // Latin-1 byte mode
	dataOnly bool           // omit error correction codewords
	eval     bool           // print penalties instead of grid
	debug    bool           // debug logging
}

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "qr"})

var modeNames = []string{"auto", "numeric", "alphanumeric", "byte"}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	fmt.Fprint(w, "QR codeword encoder and mask selector\nUsage: ",
		prog, " [-1dD] [-c file] [-l l|m|q|h] [-M mode] [-t type] "+
			"[-v ver] [string ...]\n       ",
		prog, " -g file [-e] [-m mask] [-r file | -R ver] [-t type]\n       ",
		prog, ` -R ver [-t type]

In the first form, the codewords encoding the string are printed.  If no
string is given, data is read from standard input and the final newline
is stripped.  In the second form, a module matrix is read from file ("-"
for standard input) and printed masked.  In the third, the function
modules of a QR code of the given version are printed.  Matrices are
text, one row per line, '#' or '1' for dark modules and '.' or '0' for
light.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(b.Bytes())
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
	fmt.Println(`qr version 0.1.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2025 Vadim Vygonets`)
	os.Exit(0)
}

func parseFlags() {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.Flag(&g.latin1, '1', "encode byte mode as Latin-1")
	getopt.Flag(&g.conf, 'c', "read settings from YAML file; "+
		"flags override it", "file")
	getopt.Flag(&g.debug, 'd', "log debugging information")
	getopt.Flag(&g.dataOnly, 'D', "print data codewords only")
	getopt.Flag(&g.eval, 'e', "print penalties of all mask patterns")
	getopt.Flag(&g.grid, 'g', "read module matrix from file", "file")
	getopt.Flag(&g.resv, 'r', "read reserved module map from file", "file")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, "l",
		"error correction level, lowest to highest", "l|m|q|h")
	mode := getopt.Enum('M', modeNames, "auto",
		"encoding mode, one of: "+strings.Join(modeNames, ", "),
		"mode")
	pat := getopt.Unsigned('m', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 7},
		"use mask pattern instead of the best one", "mask")
	ver := getopt.Unsigned('v', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 0, Max: 15},
		"QR code version; 0 chooses automatically", "ver")
	rver := getopt.Unsigned('R', 0, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 15},
		"reserve function modules of the given version", "ver")
	getopt.Flag(&g.format, 't', "output format; codewords: "+
		strings.Join(cwFormats, ", ")+" [hex]; matrices: "+
		strings.Join(gridFormats, ", ")+`; types with "i" `+
		"appended have colours inverted; if standard output is "+
		"a TTY, default is utf8, otherwise ascii", "type")

	getopt.Parse()
	if g.resv != "" && getopt.IsSet('R') {
		fmt.Fprintln(os.Stderr, "-r and -R are incompatible")
		usage()
	}
	if g.grid == "" {
		for _, v := range "emr" {
			if getopt.IsSet(v) {
				fmt.Fprintf(os.Stderr, "-%c requires -g\n", v)
				usage()
			}
		}
	}
	g.lev = qr.Level(strings.Index("lmqhLMQH", *lev) & 3)
	g.mode = modeIndex(*mode)
	g.ver = coding.Version(*ver)
	if g.conf != "" {
		if err := applyConfig(g.conf); err != nil {
			logger.Fatal(err)
		}
	}
	g.rver = coding.Version(*rver)
	g.mask = mask.Pattern(*pat)
	g.maskSet = getopt.IsSet('m')
	if g.debug {
		logger.SetLevel(log.DebugLevel)
	}
}

func modeIndex(s string) qr.Mode {
	for i, v := range modeNames {
		if strings.EqualFold(s, v) {
			return qr.Mode(i)
		}
	}
	return -1
}

// applyConfig sets the options not given as flags from the
// configuration file fn.
func applyConfig(fn string) error {
	c, err := loadConfig(fn)
	if err != nil {
		return err
	}
	if c.Level != "" && !getopt.IsSet('l') {
		l, err := coding.ParseLevel(c.Level)
		if err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
		g.lev = qr.Level(l)
	}
	if c.Mode != "" && !getopt.IsSet('M') {
		if g.mode = modeIndex(c.Mode); g.mode < 0 {
			return fmt.Errorf("%s: unknown mode %q", fn, c.Mode)
		}
	}
	if c.Version != 0 && !getopt.IsSet('v') {
		g.ver = coding.Version(c.Version)
	}
	if c.Format != "" && !getopt.IsSet('t') {
		g.format = c.Format
	}
	g.latin1 = g.latin1 || c.Latin1
	g.debug = g.debug || c.Debug
	return nil
}

func main() {
	parseFlags()
	var err error
	switch {
	case g.grid != "":
		err = maskGrid()
	case g.rver != 0:
		err = printReserved()
	default:
		err = encode()
	}
	if err != nil {
		logger.Fatal(err)
	}
}

func readInput() (string, error) {
	if args := getopt.Args(); len(args) != 0 {
		return strings.Join(args, " "), nil
	}
	var b strings.Builder
	if _, err := io.Copy(&b, os.Stdin); err != nil {
		return "", err
	}
	s, _ := strings.CutSuffix(
		strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	return s, nil
}

func options() *qr.Options {
	o := &qr.Options{
		Version:   g.ver,
		Mode:      g.mode,
		FixedMask: g.maskSet,
		Mask:      g.mask,
	}
	if g.debug {
		o.Logger = logger
	}
	if g.latin1 {
		o.Charset = coding.Latin1
	}
	return o
}

func encode() error {
	s, err := readInput()
	if err != nil {
		return err
	}
	c, err := qr.Encode(s, g.lev, options())
	if err != nil {
		return err
	}
	logger.Debug("encoded", "mode", c.Mode, "version", c.Version,
		"level", c.Level, "data", len(c.Data), "total", len(c.Codewords))
	if g.format == "" {
		g.format = "hex"
	}
	b := c.Codewords
	if g.dataOnly {
		b = c.Data
	}
	return writeCodewords(os.Stdout, b, g.format)
}

func readMatrix(fn string) (mask.Matrix, error) {
	if fn == "-" {
		return mask.Parse(os.Stdin)
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := mask.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return m, nil
}

func maskGrid() error {
	m, err := readMatrix(g.grid)
	if err != nil {
		return err
	}
	var reserved mask.Matrix
	switch {
	case g.resv != "":
		reserved, err = readMatrix(g.resv)
	case g.rver != 0:
		reserved, err = qr.Reserved(g.rver)
	}
	if err != nil {
		return err
	}
	if g.eval {
		ev, err := mask.Evaluate(m, reserved)
		if err != nil {
			return err
		}
		return writePenalties(os.Stdout, ev)
	}
	p, c, err := qr.Mask(m, reserved, options())
	if err != nil {
		return err
	}
	logger.Info("masked", "pattern", p, "penalty", mask.Penalty(c))
	return writeGrid(c)
}

func printReserved() error {
	m, err := qr.Reserved(g.rver)
	if err != nil {
		return err
	}
	return writeGrid(m)
}

func writeGrid(m mask.Matrix) error {
	if g.format == "" {
		if isatty.IsTerminal(os.Stdout.Fd()) {
			g.format = "utf8"
		} else {
			g.format = "ascii"
		}
	}
	gr := grid{m: m, border: 4}
	return gr.write(os.Stdout, g.format)
}

// writePenalties writes a table of rule scores per mask pattern.
func writePenalties(w io.Writer, ev [mask.NumPatterns][4]int) error {
	var sb strings.Builder
	sb.WriteString("mask  rule1 rule2 rule3 rule4 total\n")
	for p, b := range ev {
		fmt.Fprintf(&sb, "%4d %6d %5d %5d %5d %5d\n",
			p, b[0], b[1], b[2], b[3], b[0]+b[1]+b[2]+b[3])
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
