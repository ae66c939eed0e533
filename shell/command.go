package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/tabula/csv"
	"github.com/midbel/tabula/internal/ds"
	"github.com/midbel/tabula/layout"
)

type command struct {
	Usage string
	Run   func(*Shell, []string) error
}

func commandTrie() *ds.Trie[command] {
	trie := ds.NewTrie[command]()
	register := func(path []string, usage string, run func(*Shell, []string) error) {
		trie.Register(path, command{
			Usage: usage,
			Run:   run,
		})
	}
	register([]string{"exit"}, "exit", runExit)
	register([]string{"quit"}, "quit", runExit)
	register([]string{"help"}, "help", runHelp)
	register([]string{"print"}, "print [all|ADDR|RANGE]", printValues)
	register([]string{"print", "formula"}, "print formula [all|ADDR|RANGE]", printFormulas)
	register([]string{"del"}, "del [all|ADDR|RANGE]", runDelete)
	register([]string{"delete"}, "delete [all|ADDR|RANGE]", runDelete)
	register([]string{"export"}, "export [FILE]", runExport)
	register([]string{"import"}, "import [FILE]", runImport)
	register([]string{"formula"}, "formula ADDR EXPR", runFormula)
	register([]string{"set", "print", "width"}, "set print width N", setPrintWidth)
	register([]string{"set", "print", "lino"}, "set print lino on|off", setPrintLino)
	register([]string{"set", "print", "color"}, "set print color on|off", setPrintColor)
	register([]string{"set", "print", "number"}, "set print number [PATTERN]", setPrintNumber)
	register([]string{"set", "charset"}, "set charset NAME", setCharset)
	register([]string{"set", "directory"}, "set directory DIR", setDirectory)
	return trie
}

func (s *Shell) execute(words []string) error {
	lower := make([]string, len(words))
	for i := range words {
		lower[i] = strings.ToLower(words[i])
	}
	if len(words) >= 2 && words[1] == "=" && layout.IsAddress(words[0]) {
		return s.assign(words[0], words[2:])
	}
	cmd, rest, ok := s.commands.Match(lower)
	if !ok {
		return fmt.Errorf("%s: %w", words[0], ErrUnknown)
	}
	return cmd.Run(s, words[len(words)-len(rest):])
}

// assign handles "ADDR = ...": an address alone copies the cell, anything
// else is stored as a value. Nothing after "=" stores a single blank.
func (s *Shell) assign(addr string, args []string) error {
	pos, err := layout.ParsePosition(addr)
	if err != nil {
		return err
	}
	switch {
	case len(args) == 0:
		return s.Sheet.SetValue(pos, " ")
	case len(args) == 1 && layout.IsAddress(args[0]):
		src, err := layout.ParsePosition(args[0])
		if err != nil {
			return err
		}
		return s.Sheet.CopyValue(pos, src)
	case len(args) == 1 && layout.IsRange(args[0]):
		return fmt.Errorf("%s: %w: range can not be assigned", args[0], ErrSyntax)
	default:
		return s.Sheet.SetValue(pos, strings.Join(args, " "))
	}
}

func runExit(_ *Shell, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("exit: %w", ErrSyntax)
	}
	return errQuit
}

func runHelp(s *Shell, _ []string) error {
	fmt.Fprintln(s.Out, "|-> COMMANDS:")
	s.commands.Walk(nil, func(_ []string, cmd command) {
		fmt.Fprintf(s.Out, "  %s\n", cmd.Usage)
	})
	fmt.Fprintln(s.Out, "  ADDR = [VALUE|ADDR]")
	return nil
}

func printValues(s *Shell, args []string) error {
	return s.print(args, false)
}

func printFormulas(s *Shell, args []string) error {
	return s.print(args, true)
}

func (s *Shell) print(args []string, withFormula bool) error {
	target, err := parseTarget(args)
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}
	switch {
	case target.All:
		return s.Printer.PrintSheet(s.Out, s.Sheet, withFormula)
	case target.Range != nil:
		return s.Printer.PrintRange(s.Out, s.Sheet, target.Range, withFormula)
	default:
		return s.Printer.PrintCell(s.Out, s.Sheet, target.Position, withFormula)
	}
}

func runDelete(s *Shell, args []string) error {
	target, err := parseTarget(args)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	switch {
	case target.All:
		s.Sheet.DeleteAll()
		return nil
	case target.Range != nil:
		return s.Sheet.DeleteRange(target.Range)
	default:
		return s.Sheet.DeleteCell(target.Position)
	}
}

func runExport(s *Shell, args []string) error {
	file := s.path(args)
	s.logger.Debug("export", "file", file)
	if err := s.Codec.ExportFile(file, s.Sheet); err != nil {
		return fmt.Errorf("file cannot be made: %w", err)
	}
	return nil
}

func runImport(s *Shell, args []string) error {
	file := s.path(args)
	if !s.Sheet.IsEmpty() {
		ok, err := s.confirm("Table is not empty. Continue? y/n")
		if err != nil || !ok {
			return err
		}
	}
	s.logger.Debug("import", "file", file)
	return s.Codec.ImportFile(file, s.Sheet)
}

func runFormula(s *Shell, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("formula: %w: address and expression expected", ErrSyntax)
	}
	pos, err := layout.ParsePosition(args[0])
	if err != nil {
		return err
	}
	return s.Sheet.SetFormula(pos, strings.Join(args[1:], " "))
}

func setPrintWidth(s *Shell, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("set print width: %w", ErrSyntax)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return fmt.Errorf("%s: %w: positive number expected", args[0], ErrSyntax)
	}
	cfg := s.Printer.Config
	cfg.MinWidth = n
	return s.Printer.Configure(cfg)
}

func setPrintLino(s *Shell, args []string) error {
	on, err := parseSwitch(args)
	if err != nil {
		return fmt.Errorf("set print lino: %w", err)
	}
	cfg := s.Printer.Config
	cfg.LineNumbers = on
	return s.Printer.Configure(cfg)
}

func setPrintColor(s *Shell, args []string) error {
	on, err := parseSwitch(args)
	if err != nil {
		return fmt.Errorf("set print color: %w", err)
	}
	cfg := s.Printer.Config
	cfg.Color = on
	return s.Printer.Configure(cfg)
}

func setPrintNumber(s *Shell, args []string) error {
	cfg := s.Printer.Config
	cfg.Number = strings.Join(args, "")
	return s.Printer.Configure(cfg)
}

func setCharset(s *Shell, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("set charset: %w", ErrSyntax)
	}
	enc, err := csv.Charset(args[0])
	if err != nil {
		return err
	}
	s.Codec.Encoding = enc
	return nil
}

func setDirectory(s *Shell, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("set directory: %w", ErrSyntax)
	}
	s.Dir = strings.Join(args, " ")
	return nil
}

type target struct {
	All      bool
	Range    *layout.Range
	Position layout.Position
}

func parseTarget(args []string) (target, error) {
	var t target
	switch {
	case len(args) == 0:
		t.All = true
	case len(args) > 1:
		return t, ErrSyntax
	case strings.EqualFold(args[0], "all"):
		t.All = true
	case layout.IsRange(args[0]):
		rg, err := layout.ParseRange(args[0])
		if err != nil {
			return t, err
		}
		t.Range = rg
	case layout.IsAddress(args[0]):
		pos, err := layout.ParsePosition(args[0])
		if err != nil {
			return t, err
		}
		t.Position = pos
	default:
		return t, fmt.Errorf("%s: %w", args[0], ErrUnknown)
	}
	return t, nil
}

func parseSwitch(args []string) (bool, error) {
	if len(args) != 1 {
		return false, ErrSyntax
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w: on or off expected", args[0], ErrSyntax)
	}
}
