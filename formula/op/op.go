package op

import (
	"strings"
)

type Op rune

const (
	Invalid Op = 0

	Add Op = 1 << iota
	Sub
	Mul
	Div
	Sin
	Cos
	Sqrt
	Begin
	End
)

const (
	binaryOp = Add | Sub | Mul | Div
	funcOp   = Sin | Cos | Sqrt
)

var mapping = map[Op]string{
	Add:   "+",
	Sub:   "-",
	Mul:   "*",
	Div:   "/",
	Sin:   "sin",
	Cos:   "cos",
	Sqrt:  "sqrt",
	Begin: "(",
	End:   ")",
}

var lookup map[string]Op

func init() {
	lookup = make(map[string]Op)
	for k, v := range mapping {
		lookup[v] = k
	}
}

func Symbol(oper Op) string {
	return mapping[oper]
}

// Lookup returns the operator spelled by str. Function names are matched
// without regard to case.
func Lookup(str string) Op {
	return lookup[strings.ToLower(str)]
}

func (o Op) String() string {
	return Symbol(o)
}

func (o Op) IsBinary() bool {
	return o != Invalid && o&binaryOp == o
}

func (o Op) IsFunc() bool {
	return o != Invalid && o&funcOp == o
}

// Precedence of binary operators. Functions and groups bind nothing by
// themselves and act as markers on the operator stack.
func (o Op) Precedence() int {
	switch o {
	case Add, Sub:
		return 1
	case Mul, Div:
		return 2
	default:
		return 0
	}
}
