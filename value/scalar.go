package value

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/midbel/tabula/formula/op"
)

type Blank struct{}

func Empty() Value {
	return Blank{}
}

func (Blank) Type() string {
	return TypeBlank
}

func (Blank) Width() int {
	return 0
}

func (Blank) String() string {
	return ""
}

func (Blank) Render(_ io.Writer) error {
	return nil
}

func (Blank) Binary(oper op.Op, _ string, _ bool) (string, error) {
	return "", unsupported(oper, TypeBlank)
}

func (Blank) Call(fn op.Op) (string, error) {
	return "", unsupported(fn, TypeBlank)
}

func (Blank) sealed() {}

type Float float64

func (Float) Type() string {
	return TypeNumber
}

// Width gives the length of the number as printed: integer part only when
// there is no fraction.
func (f Float) Width() int {
	return len(f.String())
}

func (f Float) String() string {
	if math.Trunc(float64(f)) == float64(f) && math.Abs(float64(f)) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

func (f Float) Render(w io.Writer) error {
	_, err := io.WriteString(w, f.String())
	return err
}

func (f Float) Binary(oper op.Op, operand string, left bool) (string, error) {
	if x, ok := CastToFloat(operand); ok {
		return f.arithmetic(oper, float64(x), left)
	}
	self := f.String()
	switch oper {
	case op.Add:
		if left {
			return self + operand, nil
		}
		return operand + self, nil
	case op.Sub:
		return operand, nil
	case op.Mul:
		return repeat(operand, float64(f)), nil
	default:
		return "", unsupported(oper, TypeText)
	}
}

func (f Float) arithmetic(oper op.Op, x float64, left bool) (string, error) {
	self := float64(f)
	if !left {
		self, x = x, self
	}
	var res float64
	switch oper {
	case op.Add:
		res = self + x
	case op.Sub:
		res = self - x
	case op.Mul:
		res = self * x
	case op.Div:
		if x == 0 {
			return "", domainError("division by zero")
		}
		res = self / x
	default:
		return "", unsupported(oper, TypeNumber)
	}
	return formatResult(res), nil
}

func (f Float) Call(fn op.Op) (string, error) {
	var res float64
	switch fn {
	case op.Sin:
		res = math.Sin(float64(f))
	case op.Cos:
		res = math.Cos(float64(f))
	case op.Sqrt:
		if f < 0 {
			return "", domainError("cannot execute sqrt on a negative number")
		}
		res = math.Sqrt(float64(f))
	default:
		return "", unsupported(fn, TypeNumber)
	}
	return formatResult(res), nil
}

func (Float) sealed() {}

type Text string

func (Text) Type() string {
	return TypeText
}

func (t Text) Width() int {
	return utf8.RuneCountInString(string(t))
}

func (t Text) String() string {
	return string(t)
}

func (t Text) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(t))
	return err
}

func (t Text) Binary(oper op.Op, operand string, left bool) (string, error) {
	switch oper {
	case op.Add:
		if left {
			return string(t) + operand, nil
		}
		return operand + string(t), nil
	case op.Sub:
		return operand, nil
	case op.Mul:
		x, ok := CastToFloat(operand)
		if !ok {
			break
		}
		return repeat(string(t), float64(x)), nil
	default:
	}
	return "", unsupported(oper, TypeText)
}

func (Text) Call(fn op.Op) (string, error) {
	return "", unsupported(fn, TypeText)
}

func (Text) sealed() {}

func repeat(str string, count float64) string {
	n := int(math.Trunc(count))
	if n <= 0 {
		return ""
	}
	return strings.Repeat(str, n)
}
