// Released under an MIT license. See LICENSE.

// Package reader turns lines of text into programs.
//
// A program may span lines. Lines are buffered while a loop is still open
// and the whole buffer is parsed again as each line arrives.
package reader

import (
	"errors"
	"strings"

	"github.com/michaelmacinnis/bf/internal/reader/lexer"
	"github.com/michaelmacinnis/bf/internal/reader/parser"
	"github.com/michaelmacinnis/bf/internal/type/program"
)

// T (reader) encapsulates the bf lexer and parser.
type T struct {
	line    int      // Lines scanned so far.
	name    string   // Label for error locations.
	pending []string // Lines of an incomplete program.
	start   int      // Line number of the first pending line.
}

type reader = T

// New creates a new reader for name.
func New(name string) *T {
	return &T{name: name}
}

// Pending returns true if an incomplete program is waiting for more lines.
func (r *reader) Pending() bool {
	return len(r.pending) > 0
}

// Reset discards any incomplete program.
func (r *reader) Reset() {
	r.pending = nil
}

// Scan reads the line and returns a program on a complete parse or nil
// otherwise. If the buffered text cannot be parsed Scan returns the error
// and discards the buffer.
func (r *reader) Scan(line string) (*program.T, error) {
	r.line++

	if len(r.pending) == 0 {
		r.start = r.line
	}

	r.pending = append(r.pending, line)

	l := lexer.NewAt(r.name, r.start)
	l.Scan(strings.Join(r.pending, "\n"))

	p, err := parser.New(l.Token).Parse()
	if errors.Is(err, parser.ErrUnterminatedLoop) {
		return nil, nil
	}

	r.pending = nil

	return p, err
}
