package csv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/midbel/tabula/grid"
	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// FunctionMarker separates the values of an exported table from the source
// of its formulas.
const FunctionMarker = "Function:"

var ErrCharset = errors.New("unsupported charset")

// Charset gives the encoding registered under name. An empty name is utf-8.
func Charset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "latin9", "iso-8859-15":
		return charmap.ISO8859_15, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrCharset)
	}
}

// Codec reads and writes tables in the flat file format: one line of quoted
// values per row, the FunctionMarker line, then one line of quoted formula
// sources per row.
type Codec struct {
	Encoding encoding.Encoding
	UseCRLF  bool
}

func NewCodec(charset string) (*Codec, error) {
	enc, err := Charset(charset)
	if err != nil {
		return nil, err
	}
	c := Codec{
		Encoding: enc,
	}
	return &c, nil
}

func defaultCodec() *Codec {
	return &Codec{
		Encoding: unicode.UTF8,
	}
}

func Export(w io.Writer, view grid.View) error {
	return defaultCodec().Export(w, view)
}

func Import(r io.Reader, sheet *grid.Sheet) error {
	return defaultCodec().Import(r, sheet)
}

func (c *Codec) Export(w io.Writer, view grid.View) error {
	enc := c.encoding().NewEncoder().Writer(w)
	ws := NewWriter(enc)
	ws.ForceQuote = true
	ws.UseCRLF = c.UseCRLF

	for row := range view.Rows() {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = v.String()
		}
		if err := ws.Write(fields); err != nil {
			return err
		}
	}
	if err := ws.WriteLine(FunctionMarker); err != nil {
		return err
	}
	for row := range view.Rows() {
		fields := make([]string, len(row))
		for i, v := range row {
			if f, ok := v.(*value.Formula); ok {
				fields[i] = f.Source
			}
		}
		if err := ws.Write(fields); err != nil {
			return err
		}
	}
	if err := ws.Flush(); err != nil {
		return err
	}
	return closeWriter(enc)
}

// Import replaces the content of sheet with the table read from r. The table
// is read and loaded aside first: a malformed input leaves sheet untouched.
// Formulas are installed once every value is loaded and evaluated in a single
// pass on sheet.
func (c *Codec) Import(r io.Reader, sheet *grid.Sheet) error {
	values, formulas, err := c.read(r)
	if err != nil {
		return err
	}
	tmp := grid.New(sheet.Name)
	if err := load(values, tmp.SetValue); err != nil {
		return err
	}
	if err := load(formulas, tmp.Install); err != nil {
		return err
	}
	sheet.Replace(tmp)
	return sheet.Recalculate()
}

func load(records []record, set func(layout.Position, string) error) error {
	for _, rec := range records {
		for col, str := range rec.Fields {
			if str == "" {
				continue
			}
			pos := layout.NewPosition(rec.Index, int64(col))
			if err := set(pos, str); err != nil {
				return fmt.Errorf("line %d: %w", rec.Line, err)
			}
		}
	}
	return nil
}

type record struct {
	Line   int
	Index  int64
	Fields []string
}

// read splits the table in its values and formulas parts.
func (c *Codec) read(r io.Reader) ([]record, []record, error) {
	var (
		rs       = NewReader(c.encoding().NewDecoder().Reader(r))
		values   []record
		formulas []record
		part     = &values
	)
	for {
		fields, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, err
		}
		if part == &values && isMarker(rs, fields) {
			part = &formulas
			continue
		}
		rec := record{
			Line:   rs.Line(),
			Index:  int64(len(*part)),
			Fields: fields,
		}
		*part = append(*part, rec)
	}
	return values, formulas, nil
}

func (c *Codec) ExportFile(file string, view grid.View) error {
	w, err := os.Create(file)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := c.Export(w, view); err != nil {
		return err
	}
	return w.Close()
}

func (c *Codec) ImportFile(file string, sheet *grid.Sheet) error {
	r, err := os.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()
	return c.Import(r, sheet)
}

func (c *Codec) encoding() encoding.Encoding {
	if c.Encoding == nil {
		return unicode.UTF8
	}
	return c.Encoding
}

// Convert re-encodes a table from one charset to another.
func Convert(w io.Writer, r io.Reader, from, to encoding.Encoding) error {
	var (
		rs = from.NewDecoder().Reader(r)
		ws = to.NewEncoder().Writer(w)
	)
	if _, err := io.Copy(ws, rs); err != nil {
		return err
	}
	return closeWriter(ws)
}

func closeWriter(w io.Writer) error {
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func isMarker(rs *Reader, fields []string) bool {
	return len(fields) == 1 && fields[0] == FunctionMarker && !rs.Quoted(0)
}
