/*
Bf is an interpreter for a minimal tape-machine language. Eight instructions
operate on a tape of byte cells that extends without bound in both
directions:

    <  move the cursor one cell left
    >  move the cursor one cell right
    +  increment the current cell (255 wraps to 0)
    -  decrement the current cell (0 wraps to 255)
    ,  read one byte of input into the current cell
    .  write the current cell to output
    [  if the current cell is zero, skip past the matching ]
    ]  if the current cell is non-zero, repeat from the matching [

Every other character is a comment. Examples:

    bf hello.b
    bf -c ',[.,]' -i 'hi'
    echo hello | bf -c ',[.,]' -e zero
    bf -p messy.b >clean.b

Without a program, and with a terminal on stdin, bf starts an interactive
session. Bf is released under an MIT-style license.
*/
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/maloquacious/semver"
	"github.com/michaelmacinnis/adapted"
	"github.com/spf13/afero"

	"github.com/michaelmacinnis/bf/internal/engine"
	"github.com/michaelmacinnis/bf/internal/reader"
	"github.com/michaelmacinnis/bf/internal/reader/parser"
	"github.com/michaelmacinnis/bf/internal/system/options"
	"github.com/michaelmacinnis/bf/internal/system/process"
	"github.com/michaelmacinnis/bf/internal/type/program"
	"github.com/michaelmacinnis/bf/internal/type/tape"
	"github.com/michaelmacinnis/bf/internal/ui"
)

// Exit statuses.
const (
	success = 0
	failure = 1
	usage   = 2
)

//nolint:gochecknoglobals
var version = semver.Version{
	Major: 1,
	Minor: 0,
	Patch: 0,
	Build: semver.Commit(),
}

func main() {
	opts, err := options.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "bf:", err)
		os.Exit(usage)
	}

	if opts.Interactive {
		os.Exit(interactive(opts, os.Stderr))
	}

	os.Exit(run(afero.NewOsFs(), opts, os.Stdin, os.Stdout, os.Stderr))
}

// run executes a program non-interactively and returns the exit status.
func run(fs afero.Fs, opts *options.T, stdin io.Reader, stdout, stderr io.Writer) int {
	if opts.Version {
		fmt.Fprintf(stdout, "bf version %s\n", version.Core())

		return success
	}

	name, text, err := source(fs, opts, stdin)
	if err != nil {
		fmt.Fprintln(stderr, "bf:", err)

		return failure
	}

	p, err := parser.Parse(name, text)
	if err != nil {
		fmt.Fprintln(stderr, "bf:", err)

		return usage
	}

	if opts.Print {
		fmt.Fprintln(stdout, p.String())

		return success
	}

	// When the program came from stdin, input is only what -i provides.
	in := stdin
	if opts.Input != nil {
		in = bytes.NewReader(opts.Input)
	} else if opts.Stdin || (opts.Script == "" && opts.Command == "") {
		in = nil
	}

	var quoted bytes.Buffer

	out := bufio.NewWriter(stdout)
	if opts.Quote {
		out = bufio.NewWriter(&quoted)
	}

	e := engine.New(in, out, settings(opts, stderr)...)

	ctx, stop := process.Interruptible(context.Background())
	defer stop()

	err = e.Execute(ctx, p)

	if opts.Quote {
		fmt.Fprintln(stdout, adapted.CanonicalString(quoted.String()))
	}

	if opts.Tape {
		dump(stderr, e.Tape())
	}

	if err != nil {
		fmt.Fprintln(stderr, "bf:", err)

		if errors.Is(err, context.Canceled) {
			return process.InterruptStatus
		}

		return failure
	}

	return success
}

// interactive runs a session on the terminal and returns the exit status.
func interactive(opts *options.T, stderr io.Writer) int {
	u, err := ui.New()
	if err != nil {
		fmt.Fprintln(stderr, "bf:", err)

		return failure
	}

	defer u.Close()

	var in io.Reader = u
	if opts.Input != nil {
		in = bytes.NewReader(opts.Input)
	}

	out := &tail{w: os.Stdout}

	s := &session{
		engine: engine.New(in, out, settings(opts, stderr)...),
		out:    out,
		stderr: stderr,
		tape:   opts.Tape,
	}

	u.Run(s, reader.New("bf"))

	return success
}

func settings(opts *options.T, stderr io.Writer) []engine.Option {
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	return []engine.Option{
		engine.WithLimit(opts.Limit),
		engine.WithLogger(logger),
		engine.WithPolicy(opts.Policy),
	}
}

func source(fs afero.Fs, opts *options.T, stdin io.Reader) (string, string, error) {
	switch {
	case opts.Script != "":
		b, err := afero.ReadFile(fs, opts.Script)

		return opts.Script, string(b), err
	case opts.Command != "":
		return "-c", opts.Command, nil
	}

	b, err := io.ReadAll(stdin)

	return "stdin", string(b), err
}

// dump writes the visited cells with the current cell in brackets.
func dump(w io.Writer, t *tape.T) {
	low, cells := t.Cells()

	var b strings.Builder

	b.WriteString("tape ")
	b.WriteString(strconv.Itoa(low))
	b.WriteByte(':')

	for i, c := range cells {
		b.WriteByte(' ')

		v := strconv.Itoa(int(c))
		if low+i == t.Position() {
			v = "[" + v + "]"
		}

		b.WriteString(v)
	}

	fmt.Fprintln(w, b.String())
}

// session evaluates each program from the interactive interface on the
// same engine so that the tape persists between lines.
type session struct {
	engine *engine.T
	out    *tail
	stderr io.Writer
	tape   bool
}

func (s *session) Evaluate(p *program.T) error {
	ctx, stop := process.Interruptible(context.Background())
	defer stop()

	s.out.written = false

	err := s.engine.Execute(ctx, p)

	// Keep the prompt off the end of unterminated output.
	if s.out.written && s.out.last != '\n' {
		_, _ = s.out.w.Write([]byte{'\n'})
	}

	if s.tape {
		dump(s.stderr, s.engine.Tape())
	}

	return err
}

// tail remembers the last byte written.
type tail struct {
	w       io.Writer
	last    byte
	written bool
}

func (t *tail) Write(b []byte) (int, error) {
	n, err := t.w.Write(b)
	if n > 0 {
		t.last = b[n-1]
		t.written = true
	}

	return n, err
}
