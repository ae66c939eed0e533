package formula

import (
	"errors"
	"fmt"
	"strings"

	"github.com/midbel/tabula/formula/op"
)

var ErrUnbalanced = errors.New("unbalanced parentheses")

type CompileError struct {
	Source string
	Err    error
}

func (e CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, e.Err)
}

func (e CompileError) Unwrap() error {
	return e.Err
}

// Compile converts the infix formula in src into a postfix program. Tokens of
// src are separated by blanks.
func Compile(src string) (Program, error) {
	words := strings.Fields(src)
	if err := checkGroups(words); err != nil {
		return nil, CompileError{
			Source: src,
			Err:    err,
		}
	}
	c := compiler{
		prog: make(Program, 0, len(words)),
	}
	for _, w := range words {
		if err := c.feed(w); err != nil {
			return nil, CompileError{
				Source: src,
				Err:    err,
			}
		}
	}
	if err := c.flush(); err != nil {
		return nil, CompileError{
			Source: src,
			Err:    err,
		}
	}
	return c.prog, nil
}

type compiler struct {
	prog  Program
	stack []op.Op
	// set when the last emitted token is an operand
	operand bool
}

func (c *compiler) feed(word string) error {
	oper := op.Lookup(word)
	switch {
	case oper == op.Begin:
		c.push(oper)
	case oper == op.End:
		return c.closeGroup()
	case oper.IsBinary():
		for c.top().IsBinary() && c.top().Precedence() >= oper.Precedence() {
			c.emit(operatorToken(c.pop()))
		}
		c.push(oper)
	case oper.IsFunc():
		c.push(oper)
	default:
		c.emitOperand(word)
		return nil
	}
	c.operand = false
	return nil
}

func (c *compiler) closeGroup() error {
	for {
		if len(c.stack) == 0 {
			return ErrUnbalanced
		}
		oper := c.pop()
		if oper == op.Begin {
			break
		}
		c.emit(operatorToken(oper))
	}
	if c.top().IsFunc() {
		c.emit(operatorToken(c.pop()))
	}
	c.operand = false
	return nil
}

func (c *compiler) flush() error {
	for len(c.stack) > 0 {
		oper := c.pop()
		if oper == op.Begin {
			return ErrUnbalanced
		}
		c.emit(operatorToken(oper))
	}
	return nil
}

func (c *compiler) emitOperand(word string) {
	if c.operand && len(c.prog) > 0 {
		last := c.prog[len(c.prog)-1]
		c.prog[len(c.prog)-1] = literalToken(last.Literal + " " + word)
		return
	}
	c.emit(operandToken(word))
	c.operand = true
}

func (c *compiler) emit(tok Token) {
	c.prog = append(c.prog, tok)
}

func (c *compiler) push(oper op.Op) {
	c.stack = append(c.stack, oper)
}

func (c *compiler) pop() op.Op {
	n := len(c.stack)
	if n == 0 {
		return op.Invalid
	}
	oper := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return oper
}

func (c *compiler) top() op.Op {
	n := len(c.stack)
	if n == 0 {
		return op.Invalid
	}
	return c.stack[n-1]
}

func checkGroups(words []string) error {
	var open, close int
	for _, w := range words {
		switch w {
		case "(":
			open++
		case ")":
			close++
		default:
		}
	}
	if open != close {
		return ErrUnbalanced
	}
	return nil
}
