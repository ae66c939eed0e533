package csv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	quote = '"'
	nl    = '\n'
	cr    = '\r'
	space = ' '
)

var (
	errUnterminated = errors.New("unterminated")
	ErrSyntax       = errors.New("invalid csv")
)

type Reader struct {
	inner         *bufio.Reader
	Comma         byte
	FieldsPerLine int

	line   int
	quoted []bool
	atEOF  bool
}

func NewReader(r io.Reader) *Reader {
	rs := Reader{
		inner: bufio.NewReader(r),
		Comma: ',',
	}
	return &rs
}

func (r *Reader) Done() bool {
	return r.atEOF
}

// Line gives the number of the line where the last record ends.
func (r *Reader) Line() int {
	return r.line
}

// Quoted reports whether the field at ix of the last record was quoted.
func (r *Reader) Quoted(ix int) bool {
	return ix >= 0 && ix < len(r.quoted) && r.quoted[ix]
}

func (r *Reader) ReadAll() ([][]string, error) {
	var all [][]string
	for {
		rs, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		all = append(all, rs)
	}
	return all, nil
}

func (r *Reader) Read() ([]string, error) {
	if r.Done() {
		return nil, io.EOF
	}
	line, err := r.inner.ReadBytes(nl)
	if len(line) == 0 && errors.Is(err, io.EOF) {
		r.atEOF = true
		return nil, err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	r.line++
	r.quoted = r.quoted[:0]

	var res []string
	for i := 0; i < len(line); {
		var (
			field  []byte
			size   int
			quoted bool
		)
		switch line[i] {
		case cr, nl:
			if err := r.endOfRecord(line[i:]); err != nil {
				return nil, err
			}
			res = append(res, "")
			r.quoted = append(r.quoted, false)
			i = len(line)
			continue
		case quote:
			quoted = true
			for {
				field, size, err = r.readQuotedField(line[i:])
				if err == nil {
					break
				}
				if !errors.Is(err, errUnterminated) {
					return nil, err
				}
				next, err1 := r.inner.ReadBytes(nl)
				if len(next) == 0 {
					return nil, r.syntaxError("unterminated quoted field")
				}
				if err1 != nil && !errors.Is(err1, io.EOF) {
					return nil, err1
				}
				r.line++
				line = append(line, next...)
			}
		default:
			field, size, err = r.readDefaultField(line[i:])
			if err != nil {
				return nil, err
			}
		}
		res = append(res, string(field))
		r.quoted = append(r.quoted, quoted)

		i += size
		if i >= len(line) {
			break
		}
		switch line[i] {
		case r.Comma:
			i++
			if i == len(line) {
				res = append(res, "")
				r.quoted = append(r.quoted, false)
			}
		case cr, nl:
			if err := r.endOfRecord(line[i:]); err != nil {
				return nil, err
			}
			i = len(line)
		default:
			return nil, r.syntaxError("unexpected character after field")
		}
	}
	if r.FieldsPerLine > 0 && len(res) != r.FieldsPerLine {
		return nil, r.syntaxError("invalid number of fields")
	}
	return res, nil
}

func (r *Reader) endOfRecord(rest []byte) error {
	if rest[0] == nl || (len(rest) > 1 && rest[0] == cr && rest[1] == nl) {
		return nil
	}
	return r.syntaxError("carriage return only allow followed by newline")
}

func (r *Reader) syntaxError(msg string) error {
	return fmt.Errorf("line %d: %w: %s", r.line, ErrSyntax, msg)
}

func (r *Reader) readQuotedField(line []byte) ([]byte, int, error) {
	var (
		pos    = 1
		offset = pos
	)
	for offset < len(line) {
		if line[offset] == quote {
			if offset+1 < len(line) && line[offset+1] == quote {
				offset += 2
				continue
			}
			field := bytes.ReplaceAll(line[pos:offset], []byte{quote, quote}, []byte{quote})
			return field, offset + 1, nil
		}
		offset++
	}
	return nil, 0, errUnterminated
}

func (r *Reader) readDefaultField(line []byte) ([]byte, int, error) {
	var offset int
	for offset < len(line) {
		switch line[offset] {
		case quote:
			return nil, 0, r.syntaxError("unexpected quote")
		case r.Comma, cr, nl:
			return line[:offset], offset, nil
		default:
			offset++
		}
	}
	return line[:offset], offset, nil
}
