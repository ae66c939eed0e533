package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/midbel/tabula/value"
)

var ErrPattern = errors.New("invalid number pattern")

// NumberFormat prints numbers following a pattern made of '0' (digit always
// printed), '#' (digit printed when significant), ',' (group thousands), an
// optional '.' and a leading '+' to always print the sign.
type NumberFormat struct {
	MinInt  int
	MinFrac int
	MaxFrac int

	Sign     bool
	Grouping bool

	Decimal  byte
	Thousand byte
}

func ParseNumberFormatter(pattern string) (Formatter, error) {
	nf, err := ParseNumberFormat(pattern)
	if err != nil {
		return nil, err
	}
	return nf, nil
}

func ParseNumberFormat(pattern string) (NumberFormat, error) {
	nf := NumberFormat{
		Decimal:  '.',
		Thousand: ',',
	}
	integral, fraction, _ := strings.Cut(pattern, ".")
	if rest, ok := strings.CutPrefix(integral, "+"); ok {
		nf.Sign = true
		integral = rest
	}
	if integral == "" {
		return nf, fmt.Errorf("%q: %w: integral part expected", pattern, ErrPattern)
	}
	if err := nf.parseIntegral(integral); err != nil {
		return nf, fmt.Errorf("%q: %w", pattern, err)
	}
	if err := nf.parseFraction(fraction); err != nil {
		return nf, fmt.Errorf("%q: %w", pattern, err)
	}
	return nf, nil
}

func (nf *NumberFormat) parseIntegral(str string) error {
	optional := false
	for i := len(str) - 1; i >= 0; i-- {
		switch c := str[i]; {
		case c == ',':
			nf.Grouping = true
		case c == '0' && !optional:
			nf.MinInt++
		case c == '#':
			optional = true
		default:
			return fmt.Errorf("%w: unexpected %q in integral part", ErrPattern, c)
		}
	}
	return nil
}

func (nf *NumberFormat) parseFraction(str string) error {
	optional := false
	for i := 0; i < len(str); i++ {
		switch c := str[i]; {
		case c == '0' && !optional:
			nf.MinFrac++
		case c == '#':
			optional = true
		default:
			return fmt.Errorf("%w: unexpected %q in fractional part", ErrPattern, c)
		}
		nf.MaxFrac++
	}
	return nil
}

func (nf NumberFormat) Format(v value.Value) (string, error) {
	f, ok := v.(value.Float)
	if !ok {
		return "", fmt.Errorf("%s: value is not a number", v)
	}
	var (
		scale    = math.Pow10(nf.MaxFrac)
		rounded  = math.Abs(math.Round(float64(f)*scale) / scale)
		negative = f < 0 && rounded != 0
		str      = strconv.FormatFloat(rounded, 'f', nf.MaxFrac, 64)
	)
	integral, fraction, _ := strings.Cut(str, ".")
	fraction = strings.TrimRight(fraction, "0")
	if n := nf.MinFrac - len(fraction); n > 0 {
		fraction += strings.Repeat("0", n)
	}
	if n := nf.MinInt - len(integral); n > 0 {
		integral = strings.Repeat("0", n) + integral
	}
	if nf.Grouping {
		integral = group(integral, nf.Thousand)
	}

	var out strings.Builder
	switch {
	case negative:
		out.WriteByte('-')
	case nf.Sign:
		out.WriteByte('+')
	default:
	}
	out.WriteString(integral)
	if fraction != "" {
		out.WriteByte(nf.Decimal)
		out.WriteString(fraction)
	}
	return out.String(), nil
}

func group(digits string, sep byte) string {
	if len(digits) <= 3 {
		return digits
	}
	var (
		out  strings.Builder
		head = len(digits) % 3
	)
	if head > 0 {
		out.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if out.Len() > 0 {
			out.WriteByte(sep)
		}
		out.WriteString(digits[i : i+3])
	}
	return out.String()
}
