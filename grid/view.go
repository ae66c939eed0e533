package grid

import (
	"iter"

	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
)

// View is the read only side of a sheet used by printers and encoders.
type View interface {
	Bounds() *layout.Range
	Rows() iter.Seq[[]value.Value]
	Cell(layout.Position) (value.Value, bool)
}

type Cell struct {
	layout.Position
	Value value.Value
}

// Row holds the cells of one line of a sheet. A nil entry is an empty cell.
type Row struct {
	Line  int64
	Cells []value.Value
}

func (r *Row) At(col int64) value.Value {
	if col < 0 || col >= int64(len(r.Cells)) || r.Cells[col] == nil {
		return value.Empty()
	}
	return r.Cells[col]
}

func (r *Row) Empty() bool {
	return r.Len() == 0
}

// Len gives the number of columns up to the last non empty cell.
func (r *Row) Len() int64 {
	for i := len(r.Cells) - 1; i >= 0; i-- {
		if !value.IsBlank(r.Cells[i]) {
			return int64(i + 1)
		}
	}
	return 0
}

// Values gives size cells, padding with blank values.
func (r *Row) Values(size int64) []value.Value {
	list := make([]value.Value, size)
	for i := range list {
		list[i] = r.At(int64(i))
	}
	return list
}

func (r *Row) set(col int64, val value.Value) {
	if n := col + 1; n > int64(len(r.Cells)) {
		cells := make([]value.Value, n)
		copy(cells, r.Cells)
		r.Cells = cells
	}
	r.Cells[col] = val
}

func (r *Row) clear(col int64) bool {
	if col >= int64(len(r.Cells)) || value.IsBlank(r.Cells[col]) {
		return false
	}
	r.Cells[col] = nil
	return true
}

func (r *Row) truncate(size int64) {
	if size < int64(len(r.Cells)) {
		r.Cells = r.Cells[:size]
	}
}

func (s *Sheet) Bounds() *layout.Range {
	return s.Size.Range()
}

func (s *Sheet) IsEmpty() bool {
	return s.Size.Empty()
}

// Rows yields every line of the sheet, each one as wide as the sheet.
func (s *Sheet) Rows() iter.Seq[[]value.Value] {
	it := func(yield func([]value.Value) bool) {
		for _, r := range s.rows {
			if !yield(r.Values(s.Size.Columns)) {
				return
			}
		}
	}
	return it
}

// Cells yields every non empty cell in row major order.
func (s *Sheet) Cells() iter.Seq[Cell] {
	it := func(yield func(Cell) bool) {
		for _, r := range s.rows {
			for j, v := range r.Cells {
				if value.IsBlank(v) {
					continue
				}
				c := Cell{
					Position: layout.NewPosition(r.Line, int64(j)),
					Value:    v,
				}
				if !yield(c) {
					return
				}
			}
		}
	}
	return it
}

// Cell gives the value at pos. The boolean is false when the cell is empty.
func (s *Sheet) Cell(pos layout.Position) (value.Value, bool) {
	v := s.at(pos)
	return v, !value.IsBlank(v)
}

func (s *Sheet) At(pos layout.Position) (value.Value, error) {
	return s.at(pos), nil
}

// Formulas gives the positions of the formula cells in row major order.
func (s *Sheet) Formulas() []layout.Position {
	var list []layout.Position
	for c := range s.Cells() {
		if value.IsFormula(c.Value) {
			list = append(list, c.Position)
		}
	}
	return list
}

func (s *Sheet) at(pos layout.Position) value.Value {
	if !s.Size.Contains(pos) || pos.Line >= int64(len(s.rows)) {
		return value.Empty()
	}
	return s.rows[pos.Line].At(pos.Column)
}

func (s *Sheet) formulaAt(pos layout.Position) *value.Formula {
	f, _ := s.at(pos).(*value.Formula)
	return f
}

func (s *Sheet) put(pos layout.Position, val value.Value) {
	for int64(len(s.rows)) <= pos.Line {
		s.rows = append(s.rows, &Row{
			Line: int64(len(s.rows)),
		})
	}
	s.rows[pos.Line].set(pos.Column, val)
	s.Size = s.Size.Grow(pos)
}

func (s *Sheet) clear(pos layout.Position) bool {
	if pos.Line < 0 || pos.Line >= int64(len(s.rows)) || pos.Column < 0 {
		return false
	}
	return s.rows[pos.Line].clear(pos.Column)
}

// trim drops the trailing lines and columns without any value.
func (s *Sheet) trim() {
	n := len(s.rows)
	for n > 0 && s.rows[n-1].Empty() {
		n--
	}
	clear(s.rows[n:])
	s.rows = s.rows[:n]

	var cols int64
	for _, r := range s.rows {
		cols = max(cols, r.Len())
	}
	for _, r := range s.rows {
		r.truncate(cols)
	}
	s.Size = layout.Dimension{
		Lines:   int64(len(s.rows)),
		Columns: cols,
	}
	if s.Size.Columns == 0 {
		s.rows = nil
		s.Size = layout.Dimension{}
	}
}
