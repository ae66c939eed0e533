package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"charm.land/lipgloss/v2"
	"github.com/midbel/tabula/grid"
	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
)

const (
	DefaultMinWidth = 4
	indexHeader     = "IND"
)

// Config holds the settings of the console printer.
type Config struct {
	// MinWidth is the smallest width of a column.
	MinWidth int
	// MaxWidth is the width of the terminal. Tables wider than it are not
	// printed. Zero disables the check.
	MaxWidth    int
	LineNumbers bool
	Color       bool
	// Number is the pattern used to print numbers. Empty prints them as is.
	Number string
}

func DefaultConfig() Config {
	return Config{
		MinWidth:    DefaultMinWidth,
		LineNumbers: true,
		Color:       true,
	}
}

// Printer draws sheets, ranges and cells on a console.
type Printer struct {
	Config
	Columns layout.Selection

	values *ValueFormatter
}

func NewPrinter(cfg Config) (*Printer, error) {
	p := Printer{
		Columns: layout.SelectAll(),
		values:  FormatValue(),
	}
	return &p, p.Configure(cfg)
}

func (p *Printer) Configure(cfg Config) error {
	if err := p.values.Number(cfg.Number); err != nil {
		return err
	}
	if cfg.MinWidth <= 0 {
		cfg.MinWidth = DefaultMinWidth
	}
	p.Config = cfg
	return nil
}

func (p *Printer) PrintSheet(w io.Writer, view grid.View, withFormula bool) error {
	rg := view.Bounds()
	if rg == nil {
		_, err := fmt.Fprintln(w, p.infoStyle().Render("|-> EMPTY TABLE"))
		return err
	}
	return p.printRange(w, view, rg, withFormula)
}

// PrintRange prints the cells of rg. The range must be ordered and fit in the
// bounds of the view.
func (p *Printer) PrintRange(w io.Writer, view grid.View, rg *layout.Range, withFormula bool) error {
	if !rg.Ordered() {
		return fmt.Errorf("%s: %w", rg, layout.ErrRange)
	}
	bounds := view.Bounds()
	if bounds == nil || !bounds.Contains(rg.Starts) || !bounds.Contains(rg.Ends) {
		return fmt.Errorf("%s: %w", rg, grid.ErrOutOfRange)
	}
	return p.printRange(w, view, rg, withFormula)
}

func (p *Printer) PrintCell(w io.Writer, view grid.View, pos layout.Position, withFormula bool) error {
	v, ok := view.Cell(pos)
	if !ok {
		return fmt.Errorf("%s: %w", pos.Addr(), grid.ErrEmptyCell)
	}
	str, err := p.format(v)
	if err != nil {
		return err
	}
	var out strings.Builder
	out.WriteString("|-> DATA = ")
	out.WriteString(str)
	if f, ok := v.(*value.Formula); ok && withFormula {
		out.WriteString(" || FORMULA = ")
		out.WriteString(f.Source)
	}
	_, err = fmt.Fprintln(w, out.String())
	return err
}

func (p *Printer) PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, p.errorStyle().Render("ERROR DETECTED: "+err.Error()))
}

type column struct {
	Index int64
	Width int
}

func (p *Printer) printRange(w io.Writer, view grid.View, rg *layout.Range, withFormula bool) error {
	var (
		cols  = p.columns(rg)
		cells = make([][]string, 0, rg.Height())
	)
	if len(cols) == 0 {
		_, err := fmt.Fprintln(w, p.infoStyle().Render("|-> EMPTY SELECTION"))
		return err
	}
	for i := rg.Starts.Line; i <= rg.Ends.Line; i++ {
		row := make([]string, len(cols))
		for j := range cols {
			v, _ := view.Cell(layout.NewPosition(i, cols[j].Index))
			str, err := p.format(v)
			if err != nil {
				return err
			}
			row[j] = str
			cols[j].Width = max(cols[j].Width, p.width(v, str))
		}
		cells = append(cells, row)
	}
	ind := max(len(indexHeader), len(strconv.FormatInt(rg.Ends.Line+1, 10))) + 1

	var (
		lines  []string
		header = p.headerLine(cols, ind)
		size   = lipgloss.Width(header)
	)
	if p.MaxWidth > 0 && size > p.MaxWidth {
		_, err := fmt.Fprintln(w, p.errorStyle().Render("PRINT MAY BE INCORRECT. CHOOSE EXPORT FUNCTION"))
		return err
	}
	lines = append(lines, p.infoStyle().Render("|-> YOUR TABLE:"))
	lines = append(lines, strings.Repeat("-", size))
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("=", size))
	for i, row := range cells {
		var str strings.Builder
		str.WriteString("|")
		if p.LineNumbers {
			lino := strconv.FormatInt(rg.Starts.Line+int64(i)+1, 10)
			str.WriteString(p.headerStyle(ind).Render(lino))
			str.WriteString("|")
		}
		for j := range row {
			str.WriteString(p.cellStyle(cols[j].Width).Render(row[j]))
			str.WriteString("|")
		}
		lines = append(lines, str.String())
		lines = append(lines, strings.Repeat("-", size))
	}
	if withFormula {
		lines = append(lines, p.infoStyle().Render("FUNCTIONS:"))
		for i := rg.Starts.Line; i <= rg.Ends.Line; i++ {
			for _, c := range cols {
				pos := layout.NewPosition(i, c.Index)
				v, _ := view.Cell(pos)
				if f, ok := v.(*value.Formula); ok {
					lines = append(lines, fmt.Sprintf("%s = %s", pos.Addr(), f.Source))
				}
			}
		}
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func (p *Printer) headerLine(cols []column, ind int) string {
	var str strings.Builder
	str.WriteString("|")
	if p.LineNumbers {
		str.WriteString(p.headerStyle(ind).Render(indexHeader))
		str.WriteString("|")
	}
	for _, c := range cols {
		str.WriteString(p.headerStyle(c.Width).Render(layout.IndexToString(c.Index + 1)))
		str.WriteString("|")
	}
	return str.String()
}

func (p *Printer) columns(rg *layout.Range) []column {
	var (
		sel  = p.Columns
		list []column
	)
	if sel == nil {
		sel = layout.SelectAll()
	}
	for _, ix := range sel.Indices(rg) {
		c := column{
			Index: ix,
			Width: max(p.MinWidth, len(layout.IndexToString(ix+1))),
		}
		list = append(list, c)
	}
	return list
}

func (p *Printer) format(v value.Value) (string, error) {
	if v == nil || value.IsBlank(v) {
		return "", nil
	}
	str, _, err := p.values.Format(v)
	return str, err
}

func (p *Printer) width(v value.Value, str string) int {
	if v == nil {
		return 0
	}
	if _, formatted, _ := p.values.Format(v); formatted {
		return utf8.RuneCountInString(str)
	}
	return v.Width()
}

func (p *Printer) cellStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Right)
}

func (p *Printer) headerStyle(width int) lipgloss.Style {
	style := p.cellStyle(width)
	if p.Color {
		style = style.Bold(true).Foreground(lipgloss.Color("12"))
	}
	return style
}

func (p *Printer) infoStyle() lipgloss.Style {
	style := lipgloss.NewStyle()
	if p.Color {
		style = style.Foreground(lipgloss.Color("10"))
	}
	return style
}

func (p *Printer) errorStyle() lipgloss.Style {
	style := lipgloss.NewStyle()
	if p.Color {
		style = style.Bold(true).Foreground(lipgloss.Color("9"))
	}
	return style
}
