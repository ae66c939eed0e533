package formula

import (
	"strings"

	"github.com/midbel/tabula/formula/op"
	"github.com/midbel/tabula/layout"
)

const (
	Invalid rune = 0

	Literal rune = 1 << iota
	Address
	Operator
	Function
)

// Token is one instruction of a compiled formula.
type Token struct {
	Literal string
	Type    rune
	Op      op.Op
	Addr    layout.Position
}

func literalToken(str string) Token {
	return Token{
		Literal: str,
		Type:    Literal,
	}
}

func operandToken(str string) Token {
	pos, err := layout.ParsePosition(str)
	if err != nil {
		return literalToken(str)
	}
	return Token{
		Literal: str,
		Type:    Address,
		Addr:    pos,
	}
}

func operatorToken(oper op.Op) Token {
	tok := Token{
		Literal: op.Symbol(oper),
		Op:      oper,
		Type:    Operator,
	}
	if oper.IsFunc() {
		tok.Type = Function
	}
	return tok
}

func (t Token) IsOperand() bool {
	return t.Type == Literal || t.Type == Address
}

func (t Token) String() string {
	return t.Literal
}

// Program is a formula in postfix order.
type Program []Token

func (p Program) String() string {
	var parts []string
	for _, t := range p {
		parts = append(parts, t.Literal)
	}
	return strings.Join(parts, " ")
}

// Addresses gives the cells referenced by the program, in order of
// appearance and without duplicates.
func (p Program) Addresses() []layout.Position {
	var (
		list []layout.Position
		seen = make(map[layout.Position]struct{})
	)
	for _, t := range p {
		if t.Type != Address {
			continue
		}
		if _, ok := seen[t.Addr]; ok {
			continue
		}
		seen[t.Addr] = struct{}{}
		list = append(list, t.Addr)
	}
	return list
}

// References reports whether pos is used by the program.
func (p Program) References(pos layout.Position) bool {
	for _, t := range p {
		if t.Type == Address && t.Addr.Equal(pos) {
			return true
		}
	}
	return false
}
