// Released under an MIT license. See LICENSE.

// Package ui provides a command-line interface for bf.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterh/liner"

	"github.com/michaelmacinnis/bf/internal/reader"
	"github.com/michaelmacinnis/bf/internal/system/history"
	"github.com/michaelmacinnis/bf/internal/type/program"
)

// Prompts.
const (
	Continue = "... "
	Input    = "? "
	Primary  = "bf> "
)

// Evaluator is the interface for things that want to run parsed programs.
type Evaluator interface {
	Evaluate(p *program.T) error
}

// T (ui) wraps a line editor. It reads programs and, while a program is
// running, lines of input.
type T struct {
	cli      *liner.State
	cooked   liner.ModeApplier
	uncooked liner.ModeApplier

	input []byte // Unread part of the last input line.
}

type ui = T

// New puts the terminal under the control of a line editor and loads the
// history file if there is one.
func New() (*T, error) {
	cooked, err := liner.TerminalMode()
	if err != nil {
		return nil, err
	}

	cli := liner.NewLiner()

	uncooked, err := liner.TerminalMode()
	if err != nil {
		_ = cli.Close()

		return nil, err
	}

	cli.SetCtrlCAborts(true)

	_ = history.Load(cli.ReadHistory)

	return &ui{cli: cli, cooked: cooked, uncooked: uncooked}, nil
}

// Close saves the history file and restores the terminal.
func (u *ui) Close() error {
	_ = history.Save(u.cli.WriteHistory)

	return u.cli.Close()
}

// Read implements io.Reader for programs that read input interactively.
func (u *ui) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	c, err := u.ReadByte()
	if err != nil {
		return 0, err
	}

	b[0] = c

	return 1, nil
}

// ReadByte returns the next byte of input, prompting for a line when
// the previous line has been used up. The newline ending the line is
// part of the input. Ctrl-D ends input with io.EOF.
func (u *ui) ReadByte() (byte, error) {
	if len(u.input) == 0 {
		line, err := u.prompt(Input)
		if err != nil {
			return 0, err
		}

		u.input = append([]byte(line), '\n')
	}

	c := u.input[0]
	u.input = u.input[1:]

	return c, nil
}

// Run reads programs and sends them to the Evaluator until the user
// ends the session. Errors are reported on stderr.
func (u *ui) Run(e Evaluator, r *reader.T) {
	for {
		prompt := Primary
		if r.Pending() {
			prompt = Continue
		}

		line, err := u.prompt(prompt)

		switch {
		case err == nil:
			if history.Keep(line) {
				u.cli.AppendHistory(line)
			}
		case errors.Is(err, liner.ErrPromptAborted):
			r.Reset()

			continue
		default:
			if !errors.Is(err, io.EOF) {
				fmt.Fprintln(os.Stderr, "bf:", err)
			}

			os.Stdout.Write([]byte("exit\n"))

			return
		}

		p, err := r.Scan(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bf:", err)

			continue
		}

		if p == nil {
			continue
		}

		// Input typed for one program is not left over for the next.
		u.input = nil

		if err := e.Evaluate(p); err != nil {
			fmt.Fprintln(os.Stderr, "bf:", err)
		}
	}
}

func (u *ui) prompt(p string) (string, error) {
	if err := u.uncooked.ApplyMode(); err != nil {
		return "", err
	}

	line, err := u.cli.Prompt(p)

	if merr := u.cooked.ApplyMode(); merr != nil && err == nil {
		err = merr
	}

	return line, err
}
