package layout

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

var ErrRange = errors.New("invalid range")

type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) *Range {
	return &Range{
		Starts: starts,
		Ends:   ends,
	}
}

func ParseRange(str string) (*Range, error) {
	fst, lst, ok := strings.Cut(str, ":")
	if !ok {
		return nil, fmt.Errorf("%s: %w", str, ErrRange)
	}
	starts, err := ParsePosition(fst)
	if err != nil {
		return nil, err
	}
	ends, err := ParsePosition(lst)
	if err != nil {
		return nil, err
	}
	return NewRange(starts, ends), nil
}

// Ordered reports whether the start of the range is not after its end on
// both axis.
func (r *Range) Ordered() bool {
	return r.Starts.Line <= r.Ends.Line && r.Starts.Column <= r.Ends.Column
}

func (r *Range) Contains(pos Position) bool {
	ok := pos.Line >= r.Starts.Line && pos.Line <= r.Ends.Line
	if !ok {
		return false
	}
	return pos.Column >= r.Starts.Column && pos.Column <= r.Ends.Column
}

func (r *Range) Width() int64 {
	return r.Ends.Column - r.Starts.Column + 1
}

func (r *Range) Height() int64 {
	return r.Ends.Line - r.Starts.Line + 1
}

func (r *Range) Dimension() Dimension {
	return Dimension{
		Lines:   r.Height(),
		Columns: r.Width(),
	}
}

func (r *Range) String() string {
	if r.Starts.Equal(r.Ends) {
		return r.Starts.Addr()
	}
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), r.Ends.Addr())
}

func (r *Range) Normalize() *Range {
	x := NewRange(r.Starts, r.Ends)
	x.Starts.Line = min(r.Starts.Line, r.Ends.Line)
	x.Starts.Column = min(r.Starts.Column, r.Ends.Column)
	x.Ends.Line = max(r.Starts.Line, r.Ends.Line)
	x.Ends.Column = max(r.Starts.Column, r.Ends.Column)
	return x
}

// Positions yields every position of the range in row major order.
func (r *Range) Positions() iter.Seq[Position] {
	it := func(yield func(Position) bool) {
		for i := r.Starts.Line; i <= r.Ends.Line; i++ {
			for j := r.Starts.Column; j <= r.Ends.Column; j++ {
				if !yield(NewPosition(i, j)) {
					return
				}
			}
		}
	}
	return it
}
