package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/midbel/tabula/shell"
)

type confirmModel struct {
	question string
	input    textinput.Model
	answer   string
	aborted  bool
}

func newConfirmModel(question string) confirmModel {
	input := textinput.New()
	input.Placeholder = "y/n"
	input.CharLimit = 3
	input.Focus()
	return confirmModel{
		question: question,
		input:    input,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			m.answer = m.input.Value()
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		default:
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() tea.View {
	return tea.NewView(fmt.Sprintf("%s %s\n", m.question, m.input.View()))
}

// terminalConfirm asks questions with a small prompt drawn on the terminal.
// Aborting the prompt counts as a refusal.
func terminalConfirm() shell.Confirmer {
	return shell.ConfirmFunc(func(question string) (string, error) {
		prog := tea.NewProgram(newConfirmModel(question), tea.WithInput(os.Stdin), tea.WithOutput(os.Stderr))
		res, err := prog.Run()
		if err != nil {
			return "", err
		}
		m, ok := res.(confirmModel)
		if !ok || m.aborted {
			return "n", nil
		}
		return m.answer, nil
	})
}

func readerConfirm(r io.Reader, w io.Writer) shell.Confirmer {
	scan := bufio.NewScanner(r)
	return shell.ConfirmFunc(func(question string) (string, error) {
		fmt.Fprintln(w, question)
		if !scan.Scan() {
			if err := scan.Err(); err != nil {
				return "", err
			}
			return "n", nil
		}
		return scan.Text(), nil
	})
}
