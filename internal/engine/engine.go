// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for parsed bf programs.
package engine

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/michaelmacinnis/bf/internal/type/loc"
	"github.com/michaelmacinnis/bf/internal/type/program"
	"github.com/michaelmacinnis/bf/internal/type/tape"
)

// Runtime errors.
var (
	ErrInputExhausted = errors.New("input exhausted")
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrUnknownPolicy  = errors.New("unknown end-of-input policy")
)

// Error is a runtime error and the location of the instruction that
// was executing when it occurred.
type Error struct {
	Source *loc.T
	Err    error
}

func (e *Error) Error() string {
	return e.Source.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Policy determines what ',' does once input is exhausted.
type Policy int

// End-of-input policies.
const (
	Abort     Policy = iota // Fail with ErrInputExhausted. The cell is not modified.
	Zero                    // Store 0 in the cell.
	Unchanged               // Leave the cell as it is.
)

var policies = [...]string{
	Abort:     "abort",
	Zero:      "zero",
	Unchanged: "unchanged",
}

// ParsePolicy returns the policy named s.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policies {
		if strings.EqualFold(s, name) {
			return Policy(p), nil
		}
	}

	return Abort, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (p Policy) String() string {
	if p >= 0 && int(p) < len(policies) {
		return policies[p]
	}

	return "unknown"
}

// Option configures an engine.
type Option func(*T)

// WithLimit aborts execution with ErrStepLimit after n steps.
// Zero means no limit.
func WithLimit(n uint64) Option {
	return func(e *T) {
		e.limit = n
	}
}

// WithLogger sets the logger used for debugging output.
func WithLogger(l *slog.Logger) Option {
	return func(e *T) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPolicy sets the end-of-input policy.
func WithPolicy(p Policy) Option {
	return func(e *T) {
		e.policy = p
	}
}

type flusher interface {
	Flush() error
}

// T (engine) executes programs against a tape that it owns.
// The tape persists across calls to Execute.
type T struct {
	in     io.ByteReader
	out    io.Writer
	logger *slog.Logger
	limit  uint64
	policy Policy
	steps  uint64
	tape   *tape.T

	buf [1]byte
}

type engine = T

// New creates a new engine with a fresh tape that reads from in and
// writes to out. A nil in is treated as empty input and a nil out
// discards everything written.
func New(in io.Reader, out io.Writer, opts ...Option) *T {
	if in == nil {
		in = strings.NewReader("")
	}

	if out == nil {
		out = io.Discard
	}

	br, ok := in.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(in)
	}

	e := &engine{
		in:     br,
		out:    out,
		logger: slog.New(slog.DiscardHandler),
		tape:   tape.New(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run executes p on a fresh engine and returns everything written.
// On error the output produced so far is returned along with the error.
func Run(ctx context.Context, p *program.T, input []byte, opts ...Option) ([]byte, error) {
	var out bytes.Buffer

	err := New(bytes.NewReader(input), &out, opts...).Execute(ctx, p)

	return out.Bytes(), err
}

// Execute runs p to completion. If out has a Flush method, output is
// flushed before blocking on input and when Execute returns.
func (e *engine) Execute(ctx context.Context, p *program.T) error {
	start := e.steps

	err := e.execute(ctx, p)
	if ferr := e.flush(p); err == nil {
		err = ferr
	}

	if !e.logger.Enabled(ctx, slog.LevelDebug) {
		return err
	}

	e.logger.Debug("execute",
		"instructions", p.Len(),
		"depth", p.Depth(),
		"steps", e.steps-start,
		"position", e.tape.Position(),
		"cell", e.tape.Get(),
		"error", err,
	)

	return err
}

// Steps returns the number of steps executed by this engine so far.
func (e *engine) Steps() uint64 {
	return e.steps
}

// Tape returns the engine's tape.
func (e *engine) Tape() *tape.T {
	return e.tape
}

// execute runs one chain. Loop bodies are run by recursion and operate
// on the same tape and streams as the loop itself.
func (e *engine) execute(ctx context.Context, p *program.T) error {
	for n := p; !n.Empty(); n = n.Next() {
		if n.Op() != program.Loop {
			if err := e.step(n); err != nil {
				return err
			}
		}

		switch n.Op() {
		case program.MoveLeft:
			e.tape.Left()
		case program.MoveRight:
			e.tape.Right()
		case program.Increment:
			e.tape.Increment()
		case program.Decrement:
			e.tape.Decrement()
		case program.ReadInput:
			if err := e.read(n); err != nil {
				return err
			}
		case program.WriteOutput:
			if err := e.write(n); err != nil {
				return err
			}
		case program.Loop:
			for {
				if err := e.step(n); err != nil {
					return err
				}

				if e.tape.Get() == 0 {
					break
				}

				if err := ctx.Err(); err != nil {
					return &Error{Source: n.Source(), Err: err}
				}

				if err := e.execute(ctx, n.Body()); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (e *engine) flush(n *program.T) error {
	f, ok := e.out.(flusher)
	if !ok {
		return nil
	}

	if err := f.Flush(); err != nil {
		return &Error{Source: n.Source(), Err: err}
	}

	return nil
}

func (e *engine) read(n *program.T) error {
	if err := e.flush(n); err != nil {
		return err
	}

	b, err := e.in.ReadByte()

	switch {
	case err == nil:
		e.tape.Set(b)
	case errors.Is(err, io.EOF):
		e.logger.Debug("end of input",
			"policy", e.policy.String(),
			"source", n.Source().String(),
		)

		switch e.policy {
		case Zero:
			e.tape.Set(0)
		case Unchanged:
		default:
			return &Error{Source: n.Source(), Err: ErrInputExhausted}
		}
	default:
		return &Error{Source: n.Source(), Err: err}
	}

	return nil
}

// step counts one transition. A loop counts one step each time its
// condition is checked.
func (e *engine) step(n *program.T) error {
	e.steps++

	if e.limit != 0 && e.steps > e.limit {
		return &Error{Source: n.Source(), Err: ErrStepLimit}
	}

	return nil
}

func (e *engine) write(n *program.T) error {
	e.buf[0] = e.tape.Get()

	if _, err := e.out.Write(e.buf[:]); err != nil {
		return &Error{Source: n.Source(), Err: err}
	}

	return nil
}
