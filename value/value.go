package value

import (
	"io"

	"github.com/midbel/tabula/formula/op"
)

const (
	TypeBlank   = "blank"
	TypeNumber  = "number"
	TypeText    = "text"
	TypeFormula = "formula"
)

// Value is the content of a cell. The set of implementations is closed:
// Blank, Float, Text and Formula.
type Value interface {
	Type() string
	Width() int
	Render(io.Writer) error
	String() string

	// Binary applies oper between the value and operand. left tells whether
	// the value is the left hand side of the operation.
	Binary(oper op.Op, operand string, left bool) (string, error)
	// Call applies the function fn to the value.
	Call(fn op.Op) (string, error)

	sealed()
}

// Parse gives a Float when str is a number and a Text otherwise.
func Parse(str string) Value {
	if f, ok := CastToFloat(str); ok {
		return f
	}
	return Text(str)
}

func IsBlank(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Blank)
	return ok
}

func IsFormula(v Value) bool {
	_, ok := v.(*Formula)
	return ok
}
