// Released under an MIT license. See LICENSE.

// Package options parses the bf command line.
package options

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/michaelmacinnis/adapted"

	"github.com/michaelmacinnis/bf/internal/engine"
)

// ErrLimit is returned when the step limit is not a non-negative integer.
var ErrLimit = errors.New("step limit must be a non-negative integer")

const usage = `bf

Usage:
  bf [options] SCRIPT
  bf [options] -c PROGRAM
  bf [options] [-s]
  bf -h
  bf -v

Arguments:
  SCRIPT  Path to a bf program.

Options:
  -c, --command=PROGRAM  Run the specified program text.
  -s, --stdin            Read the program from stdin.
  -i, --input=INPUT      Program input. Escapes such as \n and \x00 are
                         decoded. Without -i, input is read from stdin.
  -e, --eof=POLICY       What ',' does at end of input: abort, zero or
                         unchanged [default: abort].
  -l, --limit=STEPS      Stop after STEPS steps. 0 means no limit [default: 0].
  -p, --print            Print the program in canonical form and exit.
  -q, --quote            Print output as a dollar single-quoted string.
  -t, --tape             Print the visited tape cells to stderr when done.
  -d, --debug            Log execution details to stderr.
  -h, --help             Display this help.
  -v, --version          Print bf version.

If bf's stdin is a TTY, and bf was invoked with no SCRIPT or PROGRAM and
without -s, an interactive session is started. The tape persists for the
whole session.
`

// terminal reports whether stdin is a TTY.
//
//nolint:gochecknoglobals
var terminal = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// T holds the parsed command line.
type T struct {
	Command     string        // Program text given with -c.
	Debug       bool          // Log execution details.
	Input       []byte        // Program input given with -i, or nil.
	Interactive bool          // Start an interactive session.
	Limit       uint64        // Maximum steps. Zero means no limit.
	Policy      engine.Policy // End-of-input policy.
	Print       bool          // Print the canonical program and exit.
	Quote       bool          // Quote output.
	Script      string        // Path to the program.
	Stdin       bool          // Program is read from stdin.
	Tape        bool          // Dump the tape when done.
	Version     bool          // Print the version and exit.
}

// Parse parses argv, which should not include the program name.
func Parse(argv []string) (*T, error) {
	opts, err := docopt.ParseArgs(usage, argv, "")
	if err != nil {
		return nil, err
	}

	o := &T{}

	o.Command, _ = opts["--command"].(string)
	o.Script, _ = opts["SCRIPT"].(string)

	o.Debug, _ = opts.Bool("--debug")
	o.Print, _ = opts.Bool("--print")
	o.Quote, _ = opts.Bool("--quote")
	o.Stdin, _ = opts.Bool("--stdin")
	o.Tape, _ = opts.Bool("--tape")
	o.Version, _ = opts.Bool("--version")

	if s, ok := opts["--input"].(string); ok {
		b, err := adapted.ActualBytes(s)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}

		o.Input = append([]byte{}, b...)
	}

	eof, _ := opts.String("--eof")

	o.Policy, err = engine.ParsePolicy(eof)
	if err != nil {
		return nil, err
	}

	limit, _ := opts.String("--limit")

	o.Limit, err = strconv.ParseUint(limit, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrLimit, limit)
	}

	if o.Script == "" && o.Command == "" && !o.Stdin && !o.Version && !o.Print {
		o.Interactive = terminal()
	}

	return o, nil
}
