package grid

import (
	"errors"
	"fmt"
	"io"

	"charm.land/log/v2"
	"github.com/midbel/tabula/formula"
	"github.com/midbel/tabula/graph"
	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
)

// Sheet is a sparse grid of cells. The grid is the only record of which
// cells hold a formula: the dependency graph is derived from it on each
// pass.
type Sheet struct {
	Name string
	Size layout.Dimension

	rows   []*Row
	logger *log.Logger
}

func New(name string) *Sheet {
	return &Sheet{
		Name:   name,
		logger: log.New(io.Discard),
	}
}

func (s *Sheet) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s.logger = logger
}

// SetValue stores text at pos as a number when it looks like one and as a
// text otherwise. A formula previously stored at pos is dropped. Formulas
// are then recalculated to take the new value into account.
func (s *Sheet) SetValue(pos layout.Position, text string) error {
	if err := checkPosition(pos); err != nil {
		return err
	}
	if value.IsFormula(s.at(pos)) {
		s.logger.Debug("formula unregistered", "cell", pos.Addr())
	}
	s.put(pos, value.Parse(text))
	return s.Recalculate()
}

// SetFormula compiles src and stores it at pos. The formula is rejected, and
// the cell removed, when it references itself or an empty cell. When the
// formula closes a cycle, the cell is reset to 0.
func (s *Sheet) SetFormula(pos layout.Position, src string) error {
	if err := checkPosition(pos); err != nil {
		return err
	}
	prog, err := formula.Compile(src)
	if err != nil {
		return err
	}
	s.put(pos, value.NewFormula(src, prog))
	for _, ref := range prog.Addresses() {
		if ref.Equal(pos) {
			s.Remove(pos)
			return fmt.Errorf("%s: %w", pos.Addr(), ErrSelfReference)
		}
		if _, ok := s.Cell(ref); !ok {
			s.Remove(pos)
			return DanglingReference{
				Addr: ref,
			}
		}
	}
	if s.graph().HasCycle() {
		s.logger.Warn("cycle detected", "cell", pos.Addr())
		s.put(pos, value.Float(0))
		err := CycleDetected{
			Addr: pos,
		}
		if e := s.Recalculate(); e != nil {
			return errors.Join(err, e)
		}
		return err
	}
	s.logger.Debug("formula registered", "cell", pos.Addr(), "program", prog.String())
	return s.Recalculate()
}

// Install stores a formula at pos without checking its references nor
// evaluating it. The value already at pos is kept as its last result. It is
// used to load formulas in bulk before a single call to Recalculate.
func (s *Sheet) Install(pos layout.Position, src string) error {
	if err := checkPosition(pos); err != nil {
		return err
	}
	prog, err := formula.Compile(src)
	if err != nil {
		return err
	}
	f := value.NewFormula(src, prog)
	if v, ok := s.Cell(pos); ok {
		f.Result = v.String()
	}
	s.put(pos, f)
	return nil
}

// Recalculate evaluates every formula after the formulas it depends on. The
// first formula that fails is removed from the sheet, with the cells
// depending on it, and its error is returned.
func (s *Sheet) Recalculate() error {
	g := s.graph()
	if g.Len() == 0 {
		return nil
	}
	if g.HasCycle() {
		return ErrCycle
	}
	order := g.Order()
	s.logger.Debug("recalculate", "formulas", len(order))
	for _, pos := range order {
		f := s.formulaAt(pos)
		if f == nil {
			continue
		}
		res, err := Eval(f.Program, s)
		if err != nil {
			s.logger.Debug("evaluation failed", "cell", pos.Addr(), "err", err)
			s.Remove(pos)
			return EvalError{
				Addr: pos,
				Err:  err,
			}
		}
		f.Result = res
	}
	return nil
}

// DeleteCell removes the cell at pos and every formula that depends on it,
// directly or not.
func (s *Sheet) DeleteCell(pos layout.Position) error {
	if _, ok := s.Cell(pos); !ok {
		return fmt.Errorf("%s: %w", pos.Addr(), ErrEmptyCell)
	}
	s.Remove(pos)
	return nil
}

// DeleteRange removes every cell in rg. The removal itself does not cascade:
// formulas outside of rg are evaluated again afterwards, and the ones reading
// a removed cell are dropped with their dependents. Their errors are
// returned joined.
func (s *Sheet) DeleteRange(rg *layout.Range) error {
	if !rg.Ordered() {
		return fmt.Errorf("%s: %w", rg, layout.ErrRange)
	}
	if !s.Size.Contains(rg.Starts) || !s.Size.Contains(rg.Ends) {
		return fmt.Errorf("%s: %w", rg, ErrOutOfRange)
	}
	var count int
	for pos := range rg.Positions() {
		if s.clear(pos) {
			count++
		}
	}
	s.logger.Debug("range deleted", "range", rg.String(), "cells", count)
	s.trim()
	return s.settle()
}

// settle recalculates until every remaining formula evaluates. Each failure
// removes at least one cell so the loop ends.
func (s *Sheet) settle() error {
	var errs []error
	for {
		err := s.Recalculate()
		if err == nil {
			return errors.Join(errs...)
		}
		errs = append(errs, err)
		var ee EvalError
		if !errors.As(err, &ee) {
			return errors.Join(errs...)
		}
		s.logger.Warn("formula dropped", "cell", ee.Addr.Addr(), "err", ee.Err)
	}
}

// Replace moves the content of other into s. other is left empty.
func (s *Sheet) Replace(other *Sheet) {
	s.rows, s.Size = other.rows, other.Size
	other.rows, other.Size = nil, layout.Dimension{}
}

func (s *Sheet) DeleteAll() {
	s.rows = nil
	s.Size = layout.Dimension{}
}

// Remove clears pos and cascades to the formulas referencing it. Removing an
// empty cell does nothing.
func (s *Sheet) Remove(pos layout.Position) {
	s.remove(pos)
	s.trim()
}

func (s *Sheet) remove(pos layout.Position) {
	if !s.clear(pos) {
		return
	}
	for _, p := range s.Formulas() {
		f := s.formulaAt(p)
		if f == nil || !f.Program.References(pos) {
			continue
		}
		s.logger.Debug("cascade delete", "cell", p.Addr(), "from", pos.Addr())
		s.remove(p)
	}
}

func (s *Sheet) graph() *graph.Graph {
	deps := func(pos layout.Position) []layout.Position {
		f := s.formulaAt(pos)
		if f == nil {
			return nil
		}
		return f.Program.Addresses()
	}
	return graph.Build(s.Formulas(), deps)
}

func checkPosition(pos layout.Position) error {
	if !pos.Valid() {
		return fmt.Errorf("%d:%d: %w", pos.Line, pos.Column, layout.ErrAddress)
	}
	return nil
}
