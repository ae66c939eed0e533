package grid

import (
	"fmt"

	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/value"
)

type CopyMode int

const (
	CopyValue CopyMode = 1 << iota
	CopyFormula
	CopyAll = CopyValue | CopyFormula
)

func CopyModeFromString(str string) (CopyMode, error) {
	var mode CopyMode
	switch str {
	case "value":
		mode |= CopyValue
	case "formula":
		mode |= CopyFormula
	case "", "all":
		mode |= CopyAll
	default:
		return mode, fmt.Errorf("%s invalid value for copy mode", str)
	}
	return mode, nil
}

// CopyValue copies src into dst: the source text of a formula, the rendered
// value otherwise.
func (s *Sheet) CopyValue(dst, src layout.Position) error {
	return s.Copy(dst, src, CopyAll)
}

// Copy copies src into dst according to mode. With CopyValue only, a formula
// is copied as its last result. With CopyFormula only, src must hold a
// formula.
func (s *Sheet) Copy(dst, src layout.Position, mode CopyMode) error {
	v, ok := s.Cell(src)
	if !ok {
		return fmt.Errorf("%s: %w", src.Addr(), ErrSourceEmpty)
	}
	f, isFormula := v.(*value.Formula)
	switch {
	case isFormula && mode&CopyFormula != 0:
		return s.SetFormula(dst, f.Source)
	case mode&CopyValue != 0:
		return s.SetValue(dst, v.String())
	default:
		return fmt.Errorf("%s: no formula to copy", src.Addr())
	}
}
