package value

import (
	"errors"
	"strings"
	"testing"

	"github.com/midbel/tabula/formula/op"
)

func TestBinary(t *testing.T) {
	tests := []struct {
		Self    Value
		Op      op.Op
		Operand string
		Left    bool
		Want    string
	}{
		{
			Self:    Float(3),
			Op:      op.Add,
			Operand: "4",
			Left:    true,
			Want:    "7",
		},
		{
			Self:    Float(10),
			Op:      op.Sub,
			Operand: "4",
			Left:    true,
			Want:    "6",
		},
		{
			Self:    Float(10),
			Op:      op.Sub,
			Operand: "4",
			Left:    false,
			Want:    "-6",
		},
		{
			Self:    Float(1),
			Op:      op.Div,
			Operand: "4",
			Left:    true,
			Want:    "0.25",
		},
		{
			Self:    Float(1),
			Op:      op.Div,
			Operand: "4",
			Left:    false,
			Want:    "4",
		},
		{
			Self:    Float(1),
			Op:      op.Div,
			Operand: "3",
			Left:    true,
			Want:    "0.333333",
		},
		{
			Self:    Text("ab"),
			Op:      op.Mul,
			Operand: "3",
			Left:    true,
			Want:    "ababab",
		},
		{
			Self:    Text("ab"),
			Op:      op.Mul,
			Operand: "2.9",
			Left:    false,
			Want:    "abab",
		},
		{
			Self:    Text("x"),
			Op:      op.Add,
			Operand: "5",
			Left:    true,
			Want:    "x5",
		},
		{
			Self:    Text("x"),
			Op:      op.Add,
			Operand: "5",
			Left:    false,
			Want:    "5x",
		},
		{
			Self:    Text("x"),
			Op:      op.Sub,
			Operand: "5",
			Left:    true,
			Want:    "5",
		},
		{
			Self:    Float(5),
			Op:      op.Add,
			Operand: "x",
			Left:    true,
			Want:    "5x",
		},
		{
			Self:    Float(5),
			Op:      op.Add,
			Operand: "x",
			Left:    false,
			Want:    "x5",
		},
		{
			Self:    Float(5),
			Op:      op.Sub,
			Operand: "x",
			Left:    true,
			Want:    "x",
		},
		{
			Self:    Float(3),
			Op:      op.Mul,
			Operand: "yo",
			Left:    true,
			Want:    "yoyoyo",
		},
		{
			Self:    Text("foo"),
			Op:      op.Add,
			Operand: "bar",
			Left:    true,
			Want:    "foobar",
		},
		{
			Self:    Text("foo"),
			Op:      op.Sub,
			Operand: "bar",
			Left:    true,
			Want:    "bar",
		},
		{
			Self:    &Formula{Result: "2"},
			Op:      op.Mul,
			Operand: "21",
			Left:    true,
			Want:    "42",
		},
		{
			Self:    &Formula{Result: "ab"},
			Op:      op.Mul,
			Operand: "2",
			Left:    true,
			Want:    "abab",
		},
	}
	for _, c := range tests {
		got, err := c.Self.Binary(c.Op, c.Operand, c.Left)
		if err != nil {
			t.Errorf("%v %s %s: unexpected error: %s", c.Self, c.Op, c.Operand, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%v %s %s: results mismatched! want %s - got %s", c.Self, c.Op, c.Operand, c.Want, got)
		}
	}
}

func TestBinaryUnsupported(t *testing.T) {
	tests := []struct {
		Self    Value
		Op      op.Op
		Operand string
	}{
		{
			Self:    Float(3),
			Op:      op.Div,
			Operand: "a",
		},
		{
			Self:    Text("a"),
			Op:      op.Div,
			Operand: "3",
		},
		{
			Self:    Text("a"),
			Op:      op.Mul,
			Operand: "b",
		},
		{
			Self:    Text("a"),
			Op:      op.Div,
			Operand: "b",
		},
		{
			Self:    Blank{},
			Op:      op.Add,
			Operand: "1",
		},
	}
	for _, c := range tests {
		_, err := c.Self.Binary(c.Op, c.Operand, true)
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("%v %s %s: expected unsupported operation, got %v", c.Self, c.Op, c.Operand, err)
		}
		var uerr UnsupportedOperation
		if !errors.As(err, &uerr) || uerr.Op != c.Op {
			t.Errorf("%v %s %s: error should carry the operator", c.Self, c.Op, c.Operand)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := Float(1).Binary(op.Div, "0", true)
	if !errors.Is(err, ErrDomain) {
		t.Errorf("expected domain error, got %v", err)
	}
}

func TestCall(t *testing.T) {
	tests := []struct {
		Self Value
		Fn   op.Op
		Want string
	}{
		{
			Self: Float(9),
			Fn:   op.Sqrt,
			Want: "3",
		},
		{
			Self: Float(0),
			Fn:   op.Sin,
			Want: "0",
		},
		{
			Self: Float(0),
			Fn:   op.Cos,
			Want: "1",
		},
		{
			Self: Float(1),
			Fn:   op.Sin,
			Want: "0.841471",
		},
		{
			Self: &Formula{Result: "16"},
			Fn:   op.Sqrt,
			Want: "4",
		},
	}
	for _, c := range tests {
		got, err := c.Self.Call(c.Fn)
		if err != nil {
			t.Errorf("%s(%v): unexpected error: %s", c.Fn, c.Self, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s(%v): results mismatched! want %s - got %s", c.Fn, c.Self, c.Want, got)
		}
	}
}

func TestCallFailures(t *testing.T) {
	if _, err := Float(-4).Call(op.Sqrt); !errors.Is(err, ErrDomain) {
		t.Errorf("sqrt of negative number: expected domain error, got %v", err)
	}
	if _, err := Text("abc").Call(op.Sin); !errors.Is(err, ErrUnsupported) {
		t.Errorf("sin of text: expected unsupported operation, got %v", err)
	}
	if _, err := (&Formula{Result: "abc"}).Call(op.Cos); !errors.Is(err, ErrUnsupported) {
		t.Errorf("cos of text formula: expected unsupported operation, got %v", err)
	}
}

func TestIsNumber(t *testing.T) {
	tests := []struct {
		Input string
		Want  bool
	}{
		{Input: "0", Want: true},
		{Input: "42", Want: true},
		{Input: "-42", Want: true},
		{Input: "3.14", Want: true},
		{Input: "-0.5", Want: true},
		{Input: ".5", Want: true},
		{Input: "", Want: false},
		{Input: "-", Want: false},
		{Input: ".", Want: false},
		{Input: "1.2.3", Want: false},
		{Input: "1-2", Want: false},
		{Input: "--1", Want: false},
		{Input: "1e5", Want: false},
		{Input: "abc", Want: false},
		{Input: " 1", Want: false},
	}
	for _, c := range tests {
		if got := IsNumber(c.Input); got != c.Want {
			t.Errorf("%q: number detection mismatched! want %t - got %t", c.Input, c.Want, got)
		}
	}
}

func TestRenderAndWidth(t *testing.T) {
	tests := []struct {
		Input Value
		Want  string
	}{
		{
			Input: Float(42),
			Want:  "42",
		},
		{
			Input: Float(3.5),
			Want:  "3.5",
		},
		{
			Input: Float(-2),
			Want:  "-2",
		},
		{
			Input: Text("hello world"),
			Want:  "hello world",
		},
		{
			Input: Blank{},
			Want:  "",
		},
		{
			Input: &Formula{Result: "11"},
			Want:  "11",
		},
		{
			Input: &Formula{Result: "0.25"},
			Want:  "0.25",
		},
	}
	for _, c := range tests {
		var str strings.Builder
		if err := c.Input.Render(&str); err != nil {
			t.Errorf("%v: fail to render value: %s", c.Input, err)
			continue
		}
		if got := str.String(); got != c.Want {
			t.Errorf("%v: render mismatched! want %q - got %q", c.Input, c.Want, got)
		}
		if got := c.Input.Width(); got != len(c.Want) {
			t.Errorf("%v: width mismatched! want %d - got %d", c.Input, len(c.Want), got)
		}
	}
}

func TestParse(t *testing.T) {
	if _, ok := Parse("12.5").(Float); !ok {
		t.Errorf("12.5 should be parsed as a number")
	}
	if _, ok := Parse("12,5").(Text); !ok {
		t.Errorf("12,5 should be parsed as a text")
	}
}
