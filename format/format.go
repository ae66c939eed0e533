package format

import (
	"github.com/midbel/tabula/value"
)

const DefaultNumberPattern = "#######.00"

type Formatter interface {
	Format(value.Value) (string, error)
}

// ValueFormatter picks a Formatter by the type of the value. Values without
// a registered formatter are printed as is.
type ValueFormatter struct {
	formatters map[string]Formatter
}

func FormatValue() *ValueFormatter {
	vf := ValueFormatter{
		formatters: make(map[string]Formatter),
	}
	return &vf
}

func (vf *ValueFormatter) Set(kind string, formatter Formatter) {
	vf.formatters[kind] = formatter
}

func (vf *ValueFormatter) Number(pattern string) error {
	if pattern == "" {
		delete(vf.formatters, value.TypeNumber)
		return nil
	}
	f, err := ParseNumberFormatter(pattern)
	if err == nil {
		vf.Set(value.TypeNumber, f)
	}
	return err
}

// Format formats v, or the last result of v when it is a formula. The
// boolean tells whether a formatter was used.
func (vf *ValueFormatter) Format(v value.Value) (string, bool, error) {
	if f, ok := v.(*value.Formula); ok {
		v = f.Value()
	}
	f, ok := vf.formatters[v.Type()]
	if !ok {
		return v.String(), false, nil
	}
	str, err := f.Format(v)
	return str, err == nil, err
}

func FormatString() Formatter {
	return strFormatter{}
}

type strFormatter struct{}

func (strFormatter) Format(v value.Value) (string, error) {
	return v.String(), nil
}
