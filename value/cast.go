package value

import (
	"strconv"
	"strings"
)

// IsNumber reports whether str is a number for the sheet: an optional
// leading minus, then digits with at most one decimal point.
func IsNumber(str string) bool {
	var (
		digits int
		dot    bool
	)
	for i, c := range str {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		case c == '-' && i == 0:
		default:
			return false
		}
	}
	return digits > 0
}

func CastToFloat(str string) (Float, bool) {
	if !IsNumber(str) {
		return 0, false
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	return Float(f), true
}

func CastToText(v Value) Text {
	if v == nil {
		return ""
	}
	return Text(v.String())
}

// formatResult renders the outcome of a computation with six decimals at
// most.
func formatResult(f float64) string {
	str := strconv.FormatFloat(f, 'f', 6, 64)
	if strings.IndexByte(str, '.') >= 0 {
		str = strings.TrimRight(str, "0")
		str = strings.TrimSuffix(str, ".")
	}
	if str == "-0" {
		str = "0"
	}
	return str
}
