package grid

import (
	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
)

// Context gives formulas access to the values of the cells they reference.
type Context interface {
	At(layout.Position) (value.Value, error)
}

// Values is a Context backed by a plain map. It is handy to evaluate a
// program outside of a sheet.
type Values map[layout.Position]value.Value

func (vs Values) At(pos layout.Position) (value.Value, error) {
	v, ok := vs[pos]
	if !ok {
		return value.Empty(), nil
	}
	return v, nil
}
