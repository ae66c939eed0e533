package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/midbel/tabula/csv"
	"github.com/midbel/tabula/format"
	"github.com/midbel/tabula/grid"
	"github.com/midbel/tabula/internal/ds"
)

const (
	DefaultFile = "table.csv"
	maxAttempts = 3
)

var (
	ErrUnknown = errors.New("unknown command")
	ErrSyntax  = errors.New("invalid syntax")
	ErrFailed  = errors.New("commands failed")

	errQuit = errors.New("quit")
)

// Confirmer asks a question to the user and gives back the answer.
type Confirmer interface {
	Ask(question string) (string, error)
}

type ConfirmFunc func(string) (string, error)

func (f ConfirmFunc) Ask(question string) (string, error) {
	return f(question)
}

// Always answers yes to every question.
func Always() Confirmer {
	return ConfirmFunc(func(_ string) (string, error) {
		return "y", nil
	})
}

// Shell executes the commands of the console language against a sheet.
type Shell struct {
	Sheet   *grid.Sheet
	Printer *format.Printer
	Codec   *csv.Codec
	Confirm Confirmer
	// Dir is the directory where tables are imported from and exported to.
	Dir string

	Out io.Writer
	Err io.Writer

	logger   *log.Logger
	commands *ds.Trie[command]
}

func New(sheet *grid.Sheet, printer *format.Printer) *Shell {
	sh := Shell{
		Sheet:    sheet,
		Printer:  printer,
		Codec:    &csv.Codec{},
		Out:      os.Stdout,
		Err:      os.Stdout,
		logger:   log.New(io.Discard),
		commands: commandTrie(),
	}
	return &sh
}

func (s *Shell) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s.logger = logger
}

// Execute runs one line. It returns false when the line asks to leave the
// shell.
func (s *Shell) Execute(line string) (bool, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return true, nil
	}
	s.logger.Debug("execute", "line", line)

	err := s.execute(words)
	if errors.Is(err, errQuit) {
		fmt.Fprintln(s.Out, "|-> GOODBYE!")
		return false, nil
	}
	return true, err
}

// Run executes every line read from r until the input is exhausted or a
// line asks to leave. Errors are reported and do not stop the run.
func (s *Shell) Run(r io.Reader) error {
	var (
		scan   = bufio.NewScanner(r)
		failed int
	)
	for scan.Scan() {
		ok, err := s.Execute(scan.Text())
		if err != nil {
			failed++
			s.Report(err)
		}
		if !ok {
			break
		}
	}
	if err := scan.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d %w", failed, ErrFailed)
	}
	return nil
}

func (s *Shell) Report(err error) {
	s.Printer.PrintError(s.Err, err)
}

func (s *Shell) path(args []string) string {
	file := DefaultFile
	if len(args) > 0 {
		file = strings.Join(args, " ")
	}
	if filepath.IsAbs(file) || s.Dir == "" {
		return file
	}
	return filepath.Join(s.Dir, file)
}

// confirm asks question until a yes or no answer is given, at most three
// times.
func (s *Shell) confirm(question string) (bool, error) {
	if s.Confirm == nil {
		return true, nil
	}
	for i := 0; i < maxAttempts; i++ {
		answer, err := s.Confirm.Ask(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
		}
	}
	return false, nil
}
