package grid

import (
	"fmt"

	"github.com/midbel/tabula/formula"
	"github.com/midbel/tabula/formula/op"
	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
)

type operand struct {
	Literal string
	Addr    layout.Position
	Cell    bool
}

func literalOperand(str string) operand {
	return operand{
		Literal: str,
	}
}

// Eval runs prog against the values given by ctx and returns the literal it
// computes.
func Eval(prog formula.Program, ctx Context) (string, error) {
	if len(prog) == 0 {
		return "", ErrMalformed
	}
	var stack []operand
	for _, tok := range prog {
		switch tok.Type {
		case formula.Literal:
			stack = append(stack, literalOperand(tok.Literal))
		case formula.Address:
			stack = append(stack, operand{
				Literal: tok.Literal,
				Addr:    tok.Addr,
				Cell:    true,
			})
		case formula.Operator:
			n := len(stack)
			if n < 2 {
				return "", fmt.Errorf("%w: missing operand for %s", ErrMalformed, tok.Op)
			}
			res, err := evalBinary(tok.Op, stack[n-2], stack[n-1], ctx)
			if err != nil {
				return "", err
			}
			stack = append(stack[:n-2], literalOperand(res))
		case formula.Function:
			n := len(stack)
			if n < 1 {
				return "", fmt.Errorf("%w: missing argument for %s", ErrMalformed, tok.Op)
			}
			res, err := evalCall(tok.Op, stack[n-1], ctx)
			if err != nil {
				return "", err
			}
			stack[n-1] = literalOperand(res)
		default:
			return "", fmt.Errorf("%w: unexpected token %s", ErrMalformed, tok)
		}
	}
	if len(stack) != 1 {
		return "", fmt.Errorf("%w: too many operands", ErrMalformed)
	}
	if !stack[0].Cell {
		return stack[0].Literal, nil
	}
	v, err := resolve(stack[0], ctx)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// evalBinary picks the value carrying the operation. A referenced cell wins
// over a literal, and the left side wins when both are of the same kind. The
// other side is given as text.
func evalBinary(oper op.Op, left, right operand, ctx Context) (string, error) {
	switch {
	case left.Cell:
		self, err := resolve(left, ctx)
		if err != nil {
			return "", err
		}
		other, err := render(right, ctx)
		if err != nil {
			return "", err
		}
		return self.Binary(oper, other, true)
	case right.Cell:
		self, err := resolve(right, ctx)
		if err != nil {
			return "", err
		}
		return self.Binary(oper, left.Literal, false)
	default:
		return value.Parse(left.Literal).Binary(oper, right.Literal, true)
	}
}

func evalCall(fn op.Op, arg operand, ctx Context) (string, error) {
	self, err := resolve(arg, ctx)
	if err != nil {
		return "", err
	}
	return self.Call(fn)
}

func render(arg operand, ctx Context) (string, error) {
	if !arg.Cell {
		return arg.Literal, nil
	}
	v, err := resolve(arg, ctx)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func resolve(arg operand, ctx Context) (value.Value, error) {
	if !arg.Cell {
		return value.Parse(arg.Literal), nil
	}
	v, err := ctx.At(arg.Addr)
	if err != nil {
		return nil, err
	}
	if value.IsBlank(v) {
		return nil, DanglingReference{
			Addr: arg.Addr,
		}
	}
	return v, nil
}
