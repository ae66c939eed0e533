package value

import (
	"io"

	"github.com/midbel/tabula/formula"
	"github.com/midbel/tabula/formula/op"
)

// Formula keeps the source of a formula, its compiled program and the result
// of its last evaluation. Every other operation is delegated to the value
// parsed from that result.
type Formula struct {
	Source  string
	Program formula.Program
	Result  string
}

func NewFormula(source string, prog formula.Program) *Formula {
	return &Formula{
		Source:  source,
		Program: prog,
	}
}

func (*Formula) Type() string {
	return TypeFormula
}

func (f *Formula) Value() Value {
	return Parse(f.Result)
}

func (f *Formula) Width() int {
	return f.Value().Width()
}

func (f *Formula) String() string {
	return f.Value().String()
}

func (f *Formula) Render(w io.Writer) error {
	return f.Value().Render(w)
}

func (f *Formula) Binary(oper op.Op, operand string, left bool) (string, error) {
	return f.Value().Binary(oper, operand, left)
}

func (f *Formula) Call(fn op.Op) (string, error) {
	return f.Value().Call(fn)
}

func (*Formula) sealed() {}
