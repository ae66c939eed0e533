package grid

import (
	"errors"
	"fmt"

	"github.com/midbel/tabula/layout"
)

var (
	ErrSelfReference = errors.New("cell formula cannot reference itself")
	ErrDangling      = errors.New("dangling reference")
	ErrCycle         = errors.New("cycle detected")
	ErrMalformed     = errors.New("malformed formula")
	ErrSourceEmpty   = errors.New("source cell is empty")
	ErrEmptyCell     = errors.New("cell is empty")
	ErrOutOfRange    = errors.New("range is bigger than table itself")
)

// DanglingReference is returned when a formula reads a cell that is empty or
// outside of the table.
type DanglingReference struct {
	Addr layout.Position
}

func (e DanglingReference) Error() string {
	return fmt.Sprintf("%s is empty", e.Addr.Addr())
}

func (e DanglingReference) Unwrap() error {
	return ErrDangling
}

// CycleDetected is returned when a formula closes a dependency loop. The cell
// holding the formula is reset to 0.
type CycleDetected struct {
	Addr layout.Position
}

func (e CycleDetected) Error() string {
	return fmt.Sprintf("cycle detected. %s's value is set to 0", e.Addr.Addr())
}

func (e CycleDetected) Unwrap() error {
	return ErrCycle
}

// EvalError reports the formula cell whose evaluation failed. The cell is
// removed from the sheet when this error is returned.
type EvalError struct {
	Addr layout.Position
	Err  error
}

func (e EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Addr.Addr(), e.Err)
}

func (e EvalError) Unwrap() error {
	return e.Err
}
