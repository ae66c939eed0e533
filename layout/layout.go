package layout

// Dimension is the number of lines and columns in use.
type Dimension struct {
	Lines   int64
	Columns int64
}

func (d Dimension) Empty() bool {
	return d.Lines == 0 || d.Columns == 0
}

func (d Dimension) Max(other Dimension) Dimension {
	if other.Lines > d.Lines {
		d.Lines = other.Lines
	}
	if other.Columns > d.Columns {
		d.Columns = other.Columns
	}
	return d
}

// Grow gives the smallest dimension that holds both d and pos.
func (d Dimension) Grow(pos Position) Dimension {
	return d.Max(Dimension{
		Lines:   pos.Line + 1,
		Columns: pos.Column + 1,
	})
}

func (d Dimension) Contains(pos Position) bool {
	if pos.Line < 0 || pos.Column < 0 {
		return false
	}
	return pos.Line < d.Lines && pos.Column < d.Columns
}

// Range gives the range from A1 to the last position of d. It returns nil
// when d is empty.
func (d Dimension) Range() *Range {
	if d.Empty() {
		return nil
	}
	return NewRange(NewPosition(0, 0), NewPosition(d.Lines-1, d.Columns-1))
}
