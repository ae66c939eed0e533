package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/midbel/tabula/format"
	"github.com/midbel/tabula/grid"
	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	cfg := format.DefaultConfig()
	cfg.Color = false
	printer, err := format.NewPrinter(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	sh := New(grid.New("test"), printer)
	sh.Out = &out
	sh.Err = &out
	sh.Dir = t.TempDir()
	return sh, &out
}

func cell(t *testing.T, sh *Shell, addr string) value.Value {
	t.Helper()
	v, ok := sh.Sheet.Cell(layout.MustParsePosition(addr))
	require.True(t, ok, addr)
	return v
}

func TestAssign(t *testing.T) {
	sh, _ := newShell(t)

	_, err := sh.Execute("A1 = 42")
	require.NoError(t, err)
	_, err = sh.Execute("b1 = hello   world")
	require.NoError(t, err)
	_, err = sh.Execute("C1 =")
	require.NoError(t, err)
	_, err = sh.Execute("D1 = b1")
	require.NoError(t, err)

	assert.Equal(t, value.Float(42), cell(t, sh, "A1"))
	assert.Equal(t, value.Text("hello world"), cell(t, sh, "B1"))
	assert.Equal(t, value.Text(" "), cell(t, sh, "C1"))
	assert.Equal(t, value.Text("hello world"), cell(t, sh, "D1"))

	_, err = sh.Execute("E1 = a1:b2")
	assert.ErrorIs(t, err, ErrSyntax)
	_, err = sh.Execute("E1 = z9")
	assert.ErrorIs(t, err, grid.ErrSourceEmpty)

	for _, line := range []string{
		"zzzzzzzzzzzz1 = 5",
		"a999999999 = 1",
		"formula xfe1 1 + 1",
		"E1 = zzzzzzzzzzzz1",
	} {
		ok, err := sh.Execute(line)
		assert.True(t, ok, line)
		assert.ErrorIs(t, err, layout.ErrAddress, line)
	}
	assert.Equal(t, layout.Dimension{Lines: 1, Columns: 4}, sh.Sheet.Size)
}

func TestFormula(t *testing.T) {
	sh, _ := newShell(t)

	_, err := sh.Execute("a1 = 3")
	require.NoError(t, err)
	_, err = sh.Execute("FORMULA b1 ( a1 + 4 ) * 2")
	require.NoError(t, err)
	assert.Equal(t, "14", cell(t, sh, "B1").String())

	_, err = sh.Execute("c1 = b1")
	require.NoError(t, err)
	f, ok := cell(t, sh, "C1").(*value.Formula)
	require.True(t, ok)
	assert.Equal(t, "( a1 + 4 ) * 2", f.Source)

	_, err = sh.Execute("formula d1")
	assert.ErrorIs(t, err, ErrSyntax)
	_, err = sh.Execute("formula d1 z9 + 1")
	assert.ErrorIs(t, err, grid.ErrDangling)
}

func TestPrint(t *testing.T) {
	sh, out := newShell(t)

	_, err := sh.Execute("print")
	require.NoError(t, err)
	assert.Equal(t, "|-> EMPTY TABLE\n", out.String())

	_, err = sh.Execute("a1 = 1")
	require.NoError(t, err)
	_, err = sh.Execute("formula a2 a1 + 1")
	require.NoError(t, err)

	out.Reset()
	_, err = sh.Execute("print formula a2")
	require.NoError(t, err)
	assert.Equal(t, "|-> DATA = 2 || FORMULA = a1 + 1\n", out.String())

	out.Reset()
	_, err = sh.Execute("print formula")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "FUNCTIONS:\nA2 = a1 + 1\n")

	out.Reset()
	_, err = sh.Execute("print a1:a2")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "|-> YOUR TABLE:")

	_, err = sh.Execute("print a1:c9")
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
	_, err = sh.Execute("print b1")
	assert.ErrorIs(t, err, grid.ErrEmptyCell)
	_, err = sh.Execute("print foo")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestDelete(t *testing.T) {
	sh, _ := newShell(t)
	for _, line := range []string{
		"a1 = 1",
		"a2 = 2",
		"formula b1 a1 + 1",
		"formula b2 a2 * 3",
	} {
		_, err := sh.Execute(line)
		require.NoError(t, err, line)
	}
	_, err := sh.Execute("del a1")
	require.NoError(t, err)
	_, ok := sh.Sheet.Cell(layout.MustParsePosition("B1"))
	assert.False(t, ok)
	assert.Equal(t, "6", cell(t, sh, "B2").String())

	_, err = sh.Execute("delete a1")
	assert.ErrorIs(t, err, grid.ErrEmptyCell)

	_, err = sh.Execute("delete b2:a1")
	assert.ErrorIs(t, err, layout.ErrRange)

	_, err = sh.Execute("delete all")
	require.NoError(t, err)
	assert.True(t, sh.Sheet.IsEmpty())
}

func TestExportImport(t *testing.T) {
	sh, _ := newShell(t)
	for _, line := range []string{
		"a1 = 1",
		"b1 = some text",
		"formula c1 a1 + 1",
		"export saved.csv",
	} {
		_, err := sh.Execute(line)
		require.NoError(t, err, line)
	}
	_, err := os.Stat(filepath.Join(sh.Dir, "saved.csv"))
	require.NoError(t, err)

	var asked int
	sh.Confirm = ConfirmFunc(func(question string) (string, error) {
		asked++
		assert.Equal(t, "Table is not empty. Continue? y/n", question)
		return "no", nil
	})
	_, err = sh.Execute("d4 = 10")
	require.NoError(t, err)
	_, err = sh.Execute("import saved.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, asked)
	assert.Equal(t, value.Float(10), cell(t, sh, "D4"))

	answers := []string{"maybe", "YES"}
	sh.Confirm = ConfirmFunc(func(_ string) (string, error) {
		a := answers[0]
		answers = answers[1:]
		return a, nil
	})
	_, err = sh.Execute("import saved.csv")
	require.NoError(t, err)
	_, ok := sh.Sheet.Cell(layout.MustParsePosition("D4"))
	assert.False(t, ok)
	assert.Equal(t, "2", cell(t, sh, "C1").String())
	assert.Equal(t, value.Text("some text"), cell(t, sh, "B1"))
}

func TestImportDefaultFile(t *testing.T) {
	sh, _ := newShell(t)
	err := os.WriteFile(filepath.Join(sh.Dir, DefaultFile), []byte("\"5\"\nFunction:\n\"\"\n"), 0o644)
	require.NoError(t, err)

	_, err = sh.Execute("import")
	require.NoError(t, err)
	assert.Equal(t, value.Float(5), cell(t, sh, "A1"))
}

func TestImportTooManyAttempts(t *testing.T) {
	sh, _ := newShell(t)
	_, err := sh.Execute("a1 = 1")
	require.NoError(t, err)

	var asked int
	sh.Confirm = ConfirmFunc(func(_ string) (string, error) {
		asked++
		return "what?", nil
	})
	_, err = sh.Execute("import missing.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, asked)
	assert.Equal(t, value.Float(1), cell(t, sh, "A1"))
}

func TestSettings(t *testing.T) {
	sh, _ := newShell(t)

	_, err := sh.Execute("set print width 8")
	require.NoError(t, err)
	assert.Equal(t, 8, sh.Printer.MinWidth)

	_, err = sh.Execute("set print lino off")
	require.NoError(t, err)
	assert.False(t, sh.Printer.LineNumbers)

	_, err = sh.Execute("set print color maybe")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = sh.Execute("set print number 0.00")
	require.NoError(t, err)
	assert.Equal(t, "0.00", sh.Printer.Number)

	_, err = sh.Execute("set charset latin1")
	require.NoError(t, err)

	_, err = sh.Execute("set charset klingon")
	assert.Error(t, err)

	_, err = sh.Execute("set print width -2")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestExit(t *testing.T) {
	sh, out := newShell(t)
	ok, err := sh.Execute("EXIT")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "|-> GOODBYE!\n", out.String())

	ok, err = sh.Execute("   ")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = sh.Execute("dance")
	assert.ErrorIs(t, err, ErrUnknown)
	assert.True(t, ok)
}

func TestRun(t *testing.T) {
	sh, out := newShell(t)
	script := strings.Join([]string{
		"a1 = 2",
		"formula a2 sqrt ( a1 * 8 )",
		"formula a3 a4 + 1",
		"exit",
		"a5 = never",
	}, "\n")
	err := sh.Run(strings.NewReader(script))
	assert.True(t, errors.Is(err, ErrFailed))
	assert.Contains(t, out.String(), "ERROR DETECTED: A4 is empty\n")
	assert.Contains(t, out.String(), "|-> GOODBYE!\n")
	assert.Equal(t, "4", cell(t, sh, "A2").String())
	_, ok := sh.Sheet.Cell(layout.MustParsePosition("A5"))
	assert.False(t, ok)
}

func TestHelp(t *testing.T) {
	sh, out := newShell(t)
	_, err := sh.Execute("help")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "print formula [all|ADDR|RANGE]")
	assert.Contains(t, out.String(), "set print width N")
}
