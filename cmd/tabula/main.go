package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/charmbracelet/x/term"
	"github.com/midbel/cli"
	"github.com/midbel/tabula/csv"
	"github.com/midbel/tabula/format"
	"github.com/midbel/tabula/grid"
	"github.com/midbel/tabula/layout"
	"github.com/midbel/tabula/shell"
	"github.com/peterh/liner"
)

var errFail = errors.New("fail")

var (
	summary = "tabula"
	help    = "console spreadsheet with formulas"
)

const historyFile = ".tabula_history"

func main() {
	var (
		set  = cli.NewFlagSet("tabula")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"repl"}, &replCmd)
	root.Register([]string{"exec"}, &execCmd)
	root.Register([]string{"print"}, &printCmd)
	root.Register([]string{"convert"}, &convertCmd)

	return root
}

var replCmd = cli.Command{
	Name:    "repl",
	Alias:   []string{"shell", "console"},
	Summary: "start an interactive session",
	Usage:   "repl [-d directory] [-f table]",
	Handler: &ReplCommand{},
}

var execCmd = cli.Command{
	Name:    "exec",
	Alias:   []string{"run"},
	Summary: "execute the commands of a script",
	Usage:   "exec [-d directory] [-y] [-o file] <script> [table]",
	Handler: &ExecCommand{},
}

var printCmd = cli.Command{
	Name:    "print",
	Alias:   []string{"view", "show"},
	Summary: "print an exported table",
	Usage:   "print [-f] [-r range] [-c columns] <table>",
	Handler: &PrintTableCommand{},
}

var convertCmd = cli.Command{
	Name:    "convert",
	Summary: "convert an exported table from one charset to another",
	Usage:   "convert -from charset -to charset <input> <output>",
	Handler: &ConvertTableCommand{},
}

type options struct {
	Verbose  bool
	Level    string
	NoColor  bool
	Charset  string
	Number   string
	MinWidth int
}

type flagSet interface {
	BoolVar(*bool, string, bool, string)
	StringVar(*string, string, string, string)
	IntVar(*int, string, int, string)
}

func (o *options) bind(set flagSet) {
	set.BoolVar(&o.Verbose, "v", false, "verbose")
	set.StringVar(&o.Level, "log-level", "warn", "log level")
	set.BoolVar(&o.NoColor, "no-color", false, "disable colors")
	set.StringVar(&o.Charset, "charset", "utf-8", "charset of imported and exported tables")
	set.StringVar(&o.Number, "number", "", "pattern used to print numbers")
	set.IntVar(&o.MinWidth, "width", format.DefaultMinWidth, "minimum width of columns")
}

func (o *options) logger() (*log.Logger, error) {
	level, err := log.ParseLevel(o.Level)
	if err != nil {
		return nil, err
	}
	if o.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "tabula",
	})
	return logger, nil
}

func (o *options) printer() (*format.Printer, error) {
	cfg := format.DefaultConfig()
	cfg.Color = !o.NoColor && term.IsTerminal(os.Stdout.Fd())
	cfg.MinWidth = o.MinWidth
	cfg.Number = o.Number
	if width, _, err := term.GetSize(os.Stdout.Fd()); err == nil {
		cfg.MaxWidth = width
	}
	return format.NewPrinter(cfg)
}

func (o *options) codec() (*csv.Codec, error) {
	return csv.NewCodec(o.Charset)
}

func (o *options) newShell(dir string) (*shell.Shell, error) {
	logger, err := o.logger()
	if err != nil {
		return nil, err
	}
	printer, err := o.printer()
	if err != nil {
		return nil, err
	}
	codec, err := o.codec()
	if err != nil {
		return nil, err
	}
	sheet := grid.New("table")
	sheet.SetLogger(logger)

	sh := shell.New(sheet, printer)
	sh.SetLogger(logger)
	sh.Codec = codec
	sh.Dir = dir
	return sh, nil
}

type ReplCommand struct {
	options
	Dir  string
	File string
}

func (c ReplCommand) Run(args []string) error {
	set := cli.NewFlagSet("repl")
	c.options.bind(set)
	set.StringVar(&c.Dir, "d", "", "directory of imported and exported tables")
	set.StringVar(&c.File, "f", "", "table to import before starting")
	if err := set.Parse(args); err != nil {
		return err
	}
	sh, err := c.newShell(c.Dir)
	if err != nil {
		return err
	}
	if c.File != "" {
		if err := sh.Codec.ImportFile(c.File, sh.Sheet); err != nil {
			return err
		}
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	history := historyPath()
	if f, err := os.Open(history); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(ln, history)

	if term.IsTerminal(os.Stdin.Fd()) {
		sh.Confirm = terminalConfirm()
	} else {
		sh.Confirm = shell.ConfirmFunc(func(question string) (string, error) {
			return ln.Prompt(question + " ")
		})
	}
	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		ok, err := sh.Execute(line)
		if err != nil {
			sh.Report(err)
		}
		if !ok {
			return nil
		}
	}
}

type ExecCommand struct {
	options
	Dir     string
	OutFile string
	Yes     bool
}

func (c ExecCommand) Run(args []string) error {
	set := cli.NewFlagSet("exec")
	c.options.bind(set)
	set.StringVar(&c.Dir, "d", "", "directory of imported and exported tables")
	set.StringVar(&c.OutFile, "o", "", "export table to file once script is done")
	set.BoolVar(&c.Yes, "y", false, "answer yes to every question")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return fmt.Errorf("missing script")
	}
	sh, err := c.newShell(c.Dir)
	if err != nil {
		return err
	}
	switch {
	case c.Yes:
		sh.Confirm = shell.Always()
	case term.IsTerminal(os.Stdin.Fd()):
		sh.Confirm = terminalConfirm()
	default:
		sh.Confirm = readerConfirm(os.Stdin, os.Stderr)
	}
	if set.NArg() > 1 {
		if err := sh.Codec.ImportFile(set.Arg(1), sh.Sheet); err != nil {
			return err
		}
	}
	r, err := os.Open(set.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	err = sh.Run(r)
	if c.OutFile != "" {
		if e := sh.Codec.ExportFile(c.OutFile, sh.Sheet); e != nil {
			return errors.Join(err, e)
		}
	}
	if errors.Is(err, shell.ErrFailed) {
		return errFail
	}
	return err
}

type PrintTableCommand struct {
	options
	Formula bool
	Range   string
	Columns string
}

func (c PrintTableCommand) Run(args []string) error {
	set := cli.NewFlagSet("print")
	c.options.bind(set)
	set.BoolVar(&c.Formula, "f", false, "print formulas after the table")
	set.StringVar(&c.Range, "r", "", "range of cells to print")
	set.StringVar(&c.Columns, "c", "", "columns")
	if err := set.Parse(args); err != nil {
		return err
	}
	printer, err := c.printer()
	if err != nil {
		return err
	}
	if c.Columns != "" {
		sel, err := layout.SelectionFromString(c.Columns)
		if err != nil {
			return err
		}
		printer.Columns = sel
	}
	codec, err := c.codec()
	if err != nil {
		return err
	}
	sheet := grid.New(filepath.Base(set.Arg(0)))
	if err := codec.ImportFile(set.Arg(0), sheet); err != nil {
		return err
	}
	if c.Range == "" {
		return printer.PrintSheet(os.Stdout, sheet, c.Formula)
	}
	rg, err := layout.ParseRange(c.Range)
	if err != nil {
		return err
	}
	return printer.PrintRange(os.Stdout, sheet, rg, c.Formula)
}

type ConvertTableCommand struct {
	From string
	To   string
}

func (c ConvertTableCommand) Run(args []string) error {
	set := cli.NewFlagSet("convert")
	set.StringVar(&c.From, "from", "utf-8", "charset of input table")
	set.StringVar(&c.To, "to", "utf-8", "charset of output table")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 2 {
		return fmt.Errorf("invalid number of arguments")
	}
	from, err := csv.Charset(c.From)
	if err != nil {
		return err
	}
	to, err := csv.Charset(c.To)
	if err != nil {
		return err
	}
	r, err := os.Open(set.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(filepath.Dir(set.Arg(1)), 0755); err != nil {
		return err
	}
	w, err := os.Create(set.Arg(1))
	if err != nil {
		return err
	}
	defer w.Close()
	if err := csv.Convert(w, r, from, to); err != nil {
		return err
	}
	return w.Close()
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func saveHistory(ln *liner.State, file string) {
	f, err := os.Create(file)
	if err != nil {
		return
	}
	defer f.Close()
	ln.WriteHistory(f)
}
