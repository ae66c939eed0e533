package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrAddress = errors.New("invalid address")

// Largest one based column and line numbers an address can name.
const (
	MaxColumns = 16384
	MaxLines   = 1 << 20
)

// Position is a zero based coordinate in a sheet.
type Position struct {
	Line   int64
	Column int64
}

// Valid reports whether p lies inside the largest possible sheet.
func (p Position) Valid() bool {
	if p.Line < 0 || p.Column < 0 {
		return false
	}
	return p.Line < MaxLines && p.Column < MaxColumns
}

func NewPosition(line, column int64) Position {
	return Position{
		Line:   line,
		Column: column,
	}
}

// ParsePosition decodes a reference like "b12" (case does not matter) into
// its zero based coordinate.
func ParsePosition(addr string) (Position, error) {
	var pos Position
	if !IsAddress(addr) {
		return pos, fmt.Errorf("%s: %w", addr, ErrAddress)
	}
	col, offset := ParseIndex(addr)
	line, err := strconv.ParseInt(addr[offset:], 10, 64)
	if err != nil || line <= 0 || col <= 0 {
		return pos, fmt.Errorf("%s: %w", addr, ErrAddress)
	}
	if line > MaxLines || col > MaxColumns {
		return pos, fmt.Errorf("%s: %w: out of bounds", addr, ErrAddress)
	}
	pos.Line = line - 1
	pos.Column = col - 1
	return pos, nil
}

func MustParsePosition(addr string) Position {
	pos, err := ParsePosition(addr)
	if err != nil {
		panic(err)
	}
	return pos
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

func (p Position) Less(other Position) bool {
	if p.Line == other.Line {
		return p.Column < other.Column
	}
	return p.Line < other.Line
}

func (p Position) Addr() string {
	var str strings.Builder
	str.WriteString(IndexToString(p.Column + 1))
	str.WriteString(strconv.FormatInt(p.Line+1, 10))
	return str.String()
}

func (p Position) String() string {
	return p.Addr()
}

// IsAddress reports whether addr is made of a run of letters followed by a
// run of digits and nothing else.
func IsAddress(addr string) bool {
	size := len(addr)
	if size < 2 {
		return false
	}
	var offset int
	for offset < size && isLetter(rune(addr[offset])) {
		offset++
	}
	if offset == 0 || offset >= size || addr[offset] == '0' {
		return false
	}
	for offset < size {
		c := addr[offset]
		if c < '0' || c > '9' {
			return false
		}
		offset++
	}
	return offset == size
}

// IsRange reports whether addr has the form ADDR:ADDR.
func IsRange(addr string) bool {
	fst, lst, ok := strings.Cut(addr, ":")
	if !ok {
		return false
	}
	return IsAddress(fst) && IsAddress(lst)
}

// ParseIndex reads the leading letters of str as a one based column index and
// returns the number of bytes consumed. An index above MaxColumns is reported
// as MaxColumns+1.
func ParseIndex(str string) (int64, int) {
	if len(str) == 0 {
		return 0, 0
	}
	var (
		offset int
		index  int64
	)
	for offset < len(str) && isLetter(rune(str[offset])) {
		delta := byte('A')
		if isLower(rune(str[offset])) {
			delta = 'a'
		}
		if index <= MaxColumns {
			index = index*26 + int64(str[offset]-delta+1)
		}
		offset++
	}
	return min(index, MaxColumns+1), offset
}

// IndexToString is the inverse of ParseIndex.
func IndexToString(ix int64) string {
	var result []byte
	for ix > 0 {
		ix--
		result = append(result, byte('A'+ix%26))
		ix /= 26
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return string(result)
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c)
}
