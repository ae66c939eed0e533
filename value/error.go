package value

import (
	"errors"
	"fmt"

	"github.com/midbel/tabula/formula/op"
)

var (
	ErrUnsupported = errors.New("unsupported operation")
	ErrDomain      = errors.New("domain error")
)

type UnsupportedOperation struct {
	Op   op.Op
	Kind string
}

func unsupported(oper op.Op, kind string) error {
	return UnsupportedOperation{
		Op:   oper,
		Kind: kind,
	}
}

func (e UnsupportedOperation) Error() string {
	return fmt.Sprintf("cannot execute %s on %s", op.Symbol(e.Op), e.Kind)
}

func (e UnsupportedOperation) Unwrap() error {
	return ErrUnsupported
}

func domainError(msg string) error {
	return fmt.Errorf("%w: %s", ErrDomain, msg)
}
