package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/midbel/tabula/formula"
	"github.com/midbel/tabula/grid"
	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(addr string) layout.Position {
	return layout.MustParsePosition(addr)
}

func sampleSheet(t *testing.T) *grid.Sheet {
	t.Helper()
	s := grid.New("sample")
	require.NoError(t, s.SetValue(pos("A1"), "1"))
	require.NoError(t, s.SetValue(pos("B1"), "hello world"))
	require.NoError(t, s.SetValue(pos("A2"), "2.5"))
	require.NoError(t, s.SetValue(pos("C3"), `say "hi", bye`))
	require.NoError(t, s.SetFormula(pos("B2"), "a1 + a2"))
	require.NoError(t, s.SetFormula(pos("D1"), "b1 * 2"))
	require.NoError(t, s.SetFormula(pos("D3"), "sqrt ( b2 + 4.5 )"))
	return s
}

func TestExport(t *testing.T) {
	s := grid.New("small")
	require.NoError(t, s.SetValue(pos("A1"), "1"))
	require.NoError(t, s.SetValue(pos("B2"), "x"))
	require.NoError(t, s.SetFormula(pos("B1"), "a1 + 1"))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, s))

	want := strings.Join([]string{
		`"1","2"`,
		`"","x"`,
		`Function:`,
		`"","a1 + 1"`,
		`"",""`,
		``,
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, grid.New("empty")))
	assert.Equal(t, "Function:\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	src := sampleSheet(t)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, src))

	dst := grid.New("copy")
	require.NoError(t, dst.SetValue(pos("Z20"), "garbage"))
	require.NoError(t, Import(&buf, dst))

	assert.Equal(t, src.Size, dst.Size)
	for c := range src.Cells() {
		got, ok := dst.Cell(c.Position)
		if !assert.True(t, ok, c.Addr()) {
			continue
		}
		assert.Equal(t, c.Value.String(), got.String(), c.Addr())
		if f, ok := c.Value.(*value.Formula); ok {
			g, ok := got.(*value.Formula)
			if assert.True(t, ok, c.Addr()) {
				assert.Equal(t, f.Source, g.Source, c.Addr())
			}
		} else {
			assert.Equal(t, c.Value, got, c.Addr())
		}
	}
	_, ok := dst.Cell(pos("Z20"))
	assert.False(t, ok)
	assert.Equal(t, src.Formulas(), dst.Formulas())
}

func TestImportRecalculates(t *testing.T) {
	input := strings.Join([]string{
		`"3","",""`,
		`Function:`,
		`"","a1 * 2","b1 + a1"`,
	}, "\n")
	s := grid.New("import")
	require.NoError(t, Import(strings.NewReader(input), s))

	v, ok := s.Cell(pos("C1"))
	require.True(t, ok)
	assert.Equal(t, "9", v.String())
	assert.Equal(t, layout.Dimension{Lines: 1, Columns: 3}, s.Size)
}

func TestImportQuotedMarker(t *testing.T) {
	input := strings.Join([]string{
		`"Function:"`,
		`Function:`,
		`""`,
	}, "\n")
	s := grid.New("import")
	require.NoError(t, Import(strings.NewReader(input), s))

	v, ok := s.Cell(pos("A1"))
	require.True(t, ok)
	assert.Equal(t, value.Text("Function:"), v)
	assert.Empty(t, s.Formulas())
}

func TestImportCycle(t *testing.T) {
	input := strings.Join([]string{
		`"0","0"`,
		`Function:`,
		`"b1","a1"`,
	}, "\n")
	s := grid.New("import")
	assert.ErrorIs(t, Import(strings.NewReader(input), s), grid.ErrCycle)
}

func TestImportFailureKeepsTable(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
		Err   error
	}{
		{
			Name: "unterminated quote",
			Input: strings.Join([]string{
				`"1","2"`,
				`"3","4`,
			}, "\n"),
			Err: ErrSyntax,
		},
		{
			Name: "garbage after field",
			Input: strings.Join([]string{
				`"1"`,
				`Function:`,
				`"a1 + 1"x`,
			}, "\n"),
			Err: ErrSyntax,
		},
		{
			Name: "unbalanced formula",
			Input: strings.Join([]string{
				`"1",""`,
				`Function:`,
				`"","( a1 + 1"`,
			}, "\n"),
			Err: formula.ErrUnbalanced,
		},
	}
	for _, c := range tests {
		t.Run(c.Name, func(t *testing.T) {
			s := sampleSheet(t)
			before := s.Size
			err := Import(strings.NewReader(c.Input), s)
			assert.ErrorIs(t, err, c.Err)
			assert.Equal(t, before, s.Size)
			v, ok := s.Cell(pos("B1"))
			require.True(t, ok)
			assert.Equal(t, value.Text("hello world"), v)
			assert.Len(t, s.Formulas(), 3)
		})
	}
}

func TestCharset(t *testing.T) {
	s := grid.New("latin")
	require.NoError(t, s.SetValue(pos("A1"), "café"))

	codec, err := NewCodec("latin1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.Export(&buf, s))
	assert.Equal(t, []byte("\"caf\xe9\"\nFunction:\n\"\"\n"), buf.Bytes())

	dst := grid.New("latin")
	require.NoError(t, codec.Import(&buf, dst))
	v, ok := dst.Cell(pos("A1"))
	require.True(t, ok)
	assert.Equal(t, "café", v.String())

	_, err = NewCodec("ebcdic")
	assert.ErrorIs(t, err, ErrCharset)
}

func TestConvert(t *testing.T) {
	from, err := Charset("utf-8")
	require.NoError(t, err)
	to, err := Charset("iso-8859-15")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Convert(&buf, strings.NewReader("\"€\"\n"), from, to))
	assert.Equal(t, []byte("\"\xa4\"\n"), buf.Bytes())
}

func TestReader(t *testing.T) {
	tests := []struct {
		Input string
		Want  [][]string
	}{
		{
			Input: "a,b,c\n",
			Want:  [][]string{{"a", "b", "c"}},
		},
		{
			Input: "a,,c\r\nd,e,\n",
			Want:  [][]string{{"a", "", "c"}, {"d", "e", ""}},
		},
		{
			Input: `"a","b ""quoted""","c,d"`,
			Want:  [][]string{{"a", `b "quoted"`, "c,d"}},
		},
		{
			Input: "\"multi\nline\",x\n",
			Want:  [][]string{{"multi\nline", "x"}},
		},
		{
			Input: "\"\",\"\"\n",
			Want:  [][]string{{"", ""}},
		},
	}
	for _, c := range tests {
		rs := NewReader(strings.NewReader(c.Input))
		got, err := rs.ReadAll()
		if !assert.NoError(t, err, c.Input) {
			continue
		}
		assert.Equal(t, c.Want, got, c.Input)
	}
}

func TestReaderInvalid(t *testing.T) {
	tests := []string{
		"\"unterminated\n",
		"a\"b\n",
		"\"a\"b\n",
		"a\rb\n",
	}
	for _, str := range tests {
		rs := NewReader(strings.NewReader(str))
		_, err := rs.ReadAll()
		assert.ErrorIs(t, err, ErrSyntax, str)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	ws := NewWriter(&buf)
	require.NoError(t, ws.WriteAll([][]string{
		{"a", "b c", ""},
		{`x"y`, "1,2"},
	}))
	assert.Equal(t, "a,\"b c\",\n\"x\"\"y\",\"1,2\"\n", buf.String())

	buf.Reset()
	ws = NewWriter(&buf)
	ws.ForceQuote = true
	ws.UseCRLF = true
	require.NoError(t, ws.WriteAll([][]string{{"a", ""}}))
	assert.Equal(t, "\"a\",\"\"\r\n", buf.String())
}
