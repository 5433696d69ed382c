// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes text into the codeword sequence of a QR code and
chooses the data mask for a QR code module matrix.

Placing the codewords, function patterns, format and version
information into the matrix is left to the caller, as is rendering.
Versions 1 to 15 are supported.
*/
package qr // import "github.com/unixdj/qrcore"

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/unixdj/qrcore/coding"
	"github.com/unixdj/qrcore/mask"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 7% of codewords can be restored
	M              // 15% of codewords can be restored
	Q              // 25% of codewords can be restored
	H              // 30% of codewords can be restored
)

func (l Level) String() string { return coding.Level(l).String() }

// A Mode selects the segment encoding mode.
type Mode int

const (
	Auto         Mode = iota // most compact mode for the text
	Numeric                  // numeric mode
	Alphanumeric             // alphanumeric mode
	Byte                     // byte mode
)

// Options control encoding and masking.
// The zero value chooses everything automatically.
type Options struct {
	Version   coding.Version // fixed version, 0 for the smallest fitting one
	Mode      Mode           // fixed encoding mode
	Charset   coding.Charset // byte mode character set
	FixedMask bool           // use Mask instead of choosing one
	Mask      mask.Pattern   // mask pattern if FixedMask is set
	Logger    *log.Logger    // debug logger, may be nil
}

func (o *Options) debug(msg string, keyvals ...any) {
	if o.Logger != nil {
		o.Logger.Helper()
		o.Logger.Debug(msg, keyvals...)
	}
}

// A Code is the codeword sequence of a QR code.
type Code struct {
	Mode      coding.Mode
	Version   coding.Version
	Level     Level
	Data      []byte // data codewords, before error correction
	Codewords []byte // data and error correction codewords, interleaved
}

// Encode returns the codewords encoding text at the given error
// correction level.  Unless opt fixes them, the mode is the most
// compact one able to encode text and the version is estimated by
// coding.DetermineVersion, then raised until the text fits.
// opt may be nil.
func Encode(text string, level Level, opt *Options) (*Code, error) {
	if opt == nil {
		opt = &Options{}
	}
	l := coding.Level(level)
	s, err := opt.Charset.Transform(text)
	if err != nil {
		return nil, err
	}

	mode := coding.DetectMode(s)
	if opt.Mode != Auto {
		mode = coding.Mode(opt.Mode - Numeric)
	}

	v := opt.Version
	if v == 0 {
		est, err := coding.DetermineVersion(s, mode, l)
		if errors.As(err, new(coding.CapacityError)) {
			// The estimate is conservative; search all versions.
			est = coding.MinVersion
		} else if err != nil {
			return nil, err
		}
		if v, err = coding.FitVersion(s, mode, l, est); err != nil {
			return nil, err
		}
		opt.debug("version", "estimate", est, "version", v)
	}
	opt.debug("encode", "mode", mode, "version", v, "level", level,
		"bits", coding.EncodedLength(len(s), mode, v),
		"capacity", v.DataBits(l))

	data, err := coding.EncodeToBytes(s, mode, v, l)
	if err != nil {
		return nil, err
	}
	cw, err := coding.AddErrorCorrection(data, v, l)
	if err != nil {
		return nil, err
	}
	return &Code{
		Mode:      mode,
		Version:   v,
		Level:     level,
		Data:      data,
		Codewords: cw,
	}, nil
}

// Reserved returns the function module map of a QR code of version v
// for use with Mask.
func Reserved(v coding.Version) (mask.Matrix, error) {
	m, err := coding.FunctionModules(v)
	return mask.Matrix(m), err
}

// Mask applies a data mask to the module matrix m, leaving the modules
// marked in reserved intact, and returns the pattern used with the
// masked matrix.  Unless opt fixes the pattern, Mask uses the one with
// the lowest penalty.  m is not modified.  reserved and opt may be nil.
func Mask(m, reserved mask.Matrix, opt *Options) (mask.Pattern, mask.Matrix, error) {
	if opt == nil {
		opt = &Options{}
	}
	if opt.FixedMask {
		c, err := mask.Apply(m, opt.Mask, reserved)
		if err != nil {
			return 0, nil, err
		}
		opt.debug("mask", "pattern", opt.Mask, "penalty", mask.Penalty(c))
		return opt.Mask, c, nil
	}
	if opt.Logger != nil {
		ev, err := mask.Evaluate(m, reserved)
		if err != nil {
			return 0, nil, err
		}
		for p, b := range ev {
			opt.debug("penalty", "pattern", p, "total", b[0]+b[1]+b[2]+b[3],
				"rule1", b[0], "rule2", b[1], "rule3", b[2], "rule4", b[3])
		}
	}
	p, c, err := mask.Best(m, reserved)
	if err != nil {
		return 0, nil, err
	}
	opt.debug("mask", "pattern", p)
	return p, c, nil
}
