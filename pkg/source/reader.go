// Package source turns flat value files into typed readings for the
// emulated device modules, and prepares those files before a module opens.
package source

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/fakedev/pkg/diag"
)

// Value file names under the battery directory.
const (
	Percent     = "getpercent"
	Temperature = "gettemp"
	Voltage     = "getvoltage"
	Current     = "getcurrent"
	AvgCurrent  = "getavgcurrent"
	Full40      = "getfull40"
	RawCoulomb  = "getrawcoulomb"
	Coulomb     = "getcoulomb"
	Age         = "getage"
)

// DefaultBatteryDir is where the battery value files live by default.
const DefaultBatteryDir = "/tmp/powerd/fake/battery/"

// ErrNoDigits is returned when a value file holds no leading number.
var ErrNoDigits = pkgerrors.New("no digits in value")

// Reader reads named numeric values.
type Reader interface {
	ReadInt(name string) (int, error)
	ReadFloat(name string) (float64, error)
}

// Dir reads values from files in a directory. Each file holds a single
// number; anything after the number is ignored. A nil Sink reports to
// diag.Default.
type Dir struct {
	Path string
	Sink diag.Sink
}

var _ Reader = &Dir{}

// NewDir returns a Dir rooted at path.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// WithSink returns a copy of d reporting diagnostics to s.
func (d *Dir) WithSink(s diag.Sink) *Dir {
	c := *d
	c.Sink = s
	return &c
}

func (d *Dir) read(name string) (string, error) {
	p := filepath.Join(d.Path, name)

	b, err := os.ReadFile(p)
	if err != nil {
		diag.Errorf(d.Sink, diag.BatGetContentErr, "%v", err)
		return "", pkgerrors.Wrapf(err, "failed to read %s", p)
	}

	return string(b), nil
}

// ReadInt reads an integer value.
func (d *Dir) ReadInt(name string) (int, error) {
	s, err := d.read(name)
	if err != nil {
		return 0, err
	}

	v, err := parseIntPrefix(s)
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "invalid input in %s", filepath.Join(d.Path, name))
	}

	logrus.WithFields(logrus.Fields{
		"name": name,
		"val":  v,
	}).Trace("read int value")

	return v, nil
}

// ReadFloat reads a floating point value. Parsing does not depend on locale.
func (d *Dir) ReadFloat(name string) (float64, error) {
	s, err := d.read(name)
	if err != nil {
		return 0, err
	}

	v, err := parseFloatPrefix(s)
	if err != nil {
		p := filepath.Join(d.Path, name)
		diag.Errorf(d.Sink, diag.BatStrtodErr, "Invalid input in %s.", p)
		return 0, pkgerrors.Wrapf(err, "invalid input in %s", p)
	}

	logrus.WithFields(logrus.Fields{
		"name": name,
		"val":  v,
	}).Trace("read float value")

	return v, nil
}

// parseIntPrefix parses an optionally signed run of decimal digits after
// leading whitespace.
func parseIntPrefix(s string) (int, error) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == start {
		return 0, ErrNoDigits
	}

	return strconv.Atoi(s[:end])
}

// parseFloatPrefix parses the longest floating point number at the start
// of s, the way strtod does in the C locale: decimal, hexadecimal ("0x1A",
// "0x1.8p3"), "inf", "infinity" and "nan", each with an optional sign.
func parseFloatPrefix(s string) (float64, error) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")

	sign, rest := "", s
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		sign, rest = rest[:1], rest[1:]
	}

	lower := strings.ToLower(rest)
	switch {
	case strings.HasPrefix(lower, "inf"):
		if sign == "-" {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case strings.HasPrefix(lower, "nan"):
		return math.NaN(), nil
	}

	if v, ok := parseHexPrefix(sign, rest); ok {
		return v, nil
	}

	end := 0
	digits := 0
	for end < len(rest) && isDigit(rest[end]) {
		end++
		digits++
	}
	if end < len(rest) && rest[end] == '.' {
		end++
		for end < len(rest) && isDigit(rest[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, ErrNoDigits
	}

	end = exponentEnd(rest, end, 'e')

	v, err := strconv.ParseFloat(sign+rest[:end], 64)
	if errors.Is(err, strconv.ErrRange) {
		// strtod saturates to HUGE_VAL or 0 as well.
		return v, nil
	}
	return v, err
}

// parseHexPrefix handles a "0x" mantissa with an optional binary exponent.
// It reports false when no hex digit follows the prefix, in which case
// strtod reads just the leading "0".
func parseHexPrefix(sign, s string) (float64, bool) {
	if len(s) < 2 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return 0, false
	}

	end := 2
	digits := 0
	for end < len(s) && isHexDigit(s[end]) {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isHexDigit(s[end]) {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	mantissa := s[:end]
	exp := "p0"
	if e := exponentEnd(s, end, 'p'); e > end {
		exp = s[end:e]
	}

	v, err := strconv.ParseFloat(sign+mantissa+exp, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// exponentEnd returns where an exponent marked by mark (either case)
// starting at i ends. An exponent only counts when digits follow it, so
// i is returned unchanged otherwise.
func exponentEnd(s string, i int, mark byte) int {
	if i >= len(s) || (s[i] != mark && s[i] != mark-'a'+'A') {
		return i
	}
	exp := i + 1
	if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
		exp++
	}
	if exp >= len(s) || !isDigit(s[exp]) {
		return i
	}
	for exp < len(s) && isDigit(s[exp]) {
		exp++
	}
	return exp
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
