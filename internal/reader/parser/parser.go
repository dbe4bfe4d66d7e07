// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for bf programs.
package parser

import (
	"errors"

	"github.com/michaelmacinnis/bf/internal/reader/lexer"
	"github.com/michaelmacinnis/bf/internal/reader/token"
	"github.com/michaelmacinnis/bf/internal/type/loc"
	"github.com/michaelmacinnis/bf/internal/type/program"
)

// Parse errors.
var (
	ErrUnmatchedCloseBracket = errors.New("unmatched ']'")
	ErrUnterminatedLoop      = errors.New("unterminated '['")
)

// Error is a parse error and the location of the bracket that caused it.
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

// T holds the state of the parser.
type T struct {
	item func() *token.T // Function to call to get another token.
}

// New creates a new parser that reads tokens by calling item until it
// returns nil.
func New(item func() *token.T) *T {
	return &T{item: item}
}

// Parse is a convenience function that scans and parses the text.
// The name is used to label error locations.
func Parse(name, text string) (*program.T, error) {
	l := lexer.New(name)

	l.Scan(text)

	return New(l.Token).Parse()
}

// Parse consumes tokens until there are no more and returns the program.
// A program is either returned whole or not at all.
func (p *T) Parse() (prog *program.T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		e, ok := r.(*Error)
		if !ok {
			panic(r)
		}

		prog, err = nil, e
	}()

	return sequence(p.item), nil
}

var ops = map[token.Class]program.Op{
	token.Left:      program.MoveLeft,
	token.Right:     program.MoveRight,
	token.Increment: program.Increment,
	token.Decrement: program.Decrement,
	token.Input:     program.ReadInput,
	token.Output:    program.WriteOutput,
}

// sequence parses one level of a program. Loop bodies are parsed when
// their opening bracket is reached, before anything that follows them.
func sequence(item func() *token.T) *program.T {
	type node struct {
		t    *token.T
		body *program.T
	}

	var ns []node

	for t := item(); t != nil; t = item() {
		switch t.Class() {
		case token.Open:
			ns = append(ns, node{t, sequence(tokens(body(t, item)))})
		case token.Close:
			panic(&Error{Source: t.Source(), Err: ErrUnmatchedCloseBracket})
		default:
			ns = append(ns, node{t: t})
		}
	}

	next := program.NewEmpty()

	for i := len(ns) - 1; i >= 0; i-- {
		n := ns[i]

		if n.t.Is(token.Open) {
			next = program.NewLoop(n.body, next, n.t.Source())
		} else {
			next = program.New(ops[n.t.Class()], next, n.t.Source())
		}
	}

	return next
}

// body collects the tokens between open and its matching close bracket.
// The closing bracket is consumed but not collected.
func body(open *token.T, item func() *token.T) []*token.T {
	var ts []*token.T

	depth := 0

	for t := item(); t != nil; t = item() {
		switch t.Class() {
		case token.Open:
			depth++
		case token.Close:
			if depth == 0 {
				return ts
			}

			depth--
		}

		ts = append(ts, t)
	}

	panic(&Error{Source: open.Source(), Err: ErrUnterminatedLoop})
}

func tokens(ts []*token.T) func() *token.T {
	return func() *token.T {
		if len(ts) == 0 {
			return nil
		}

		t := ts[0]
		ts = ts[1:]

		return t
	}
}
