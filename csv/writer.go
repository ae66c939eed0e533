package csv

import (
	"bufio"
	"io"
	"strings"
)

type Writer struct {
	inner *bufio.Writer

	// ForceQuote quotes every field, empty ones included.
	ForceQuote bool
	UseCRLF    bool
	Comma      byte
}

func NewWriter(w io.Writer) *Writer {
	ws := Writer{
		inner: bufio.NewWriter(w),
		Comma: ',',
	}
	return &ws
}

func (w *Writer) WriteAll(data [][]string) error {
	for _, d := range data {
		if err := w.Write(d); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (w *Writer) Write(line []string) error {
	var err error
	for i, str := range line {
		if i > 0 {
			if err = w.inner.WriteByte(w.Comma); err != nil {
				return err
			}
		}
		if w.needQuotes(str) {
			err = w.writeQuoted(str)
		} else {
			_, err = w.inner.WriteString(str)
		}
		if err != nil {
			return err
		}
	}
	return w.endLine()
}

// WriteLine writes str as is, followed by the end of line.
func (w *Writer) WriteLine(str string) error {
	if _, err := w.inner.WriteString(str); err != nil {
		return err
	}
	return w.endLine()
}

func (w *Writer) Flush() error {
	return w.inner.Flush()
}

func (w *Writer) endLine() error {
	if w.UseCRLF {
		if err := w.inner.WriteByte(cr); err != nil {
			return err
		}
	}
	return w.inner.WriteByte(nl)
}

func (w *Writer) writeQuoted(str string) error {
	if err := w.inner.WriteByte(quote); err != nil {
		return err
	}
	var err error
	for i := 0; i < len(str); i++ {
		c := str[i]
		switch {
		case c == quote:
			w.inner.WriteByte(c)
			err = w.inner.WriteByte(c)
		case c == cr:
			if w.UseCRLF {
				err = w.inner.WriteByte(c)
			}
		case c == nl:
			if w.UseCRLF {
				w.inner.WriteByte(cr)
			}
			err = w.inner.WriteByte(c)
		default:
			err = w.inner.WriteByte(c)
		}
		if err != nil {
			return err
		}
	}
	return w.inner.WriteByte(quote)
}

func (w *Writer) needQuotes(str string) bool {
	if w.ForceQuote {
		return true
	}
	if str == "" {
		return false
	}
	if str[0] == space || str[0] == quote {
		return true
	}
	for _, c := range []byte{w.Comma, cr, nl, space, quote} {
		if strings.IndexByte(str, c) >= 0 {
			return true
		}
	}
	return false
}
