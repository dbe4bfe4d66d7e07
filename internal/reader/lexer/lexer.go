// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for bf programs.
//
// Only the eight instruction characters produce tokens. Everything else is
// commentary and is skipped, but still counted so that every token knows
// the line and column it came from.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/michaelmacinnis/bf/internal/reader/token"
	"github.com/michaelmacinnis/bf/internal/type/loc"
)

// T holds the state of the scanner.
type T struct {
	bytes string   // Buffer being scanned.
	index int      // Index of the current byte.
	queue []string // Buffers waiting to be scanned.

	source loc.T
}

// New creates a new T. Label can be a file name or other identifier.
func New(label string) *T {
	return NewAt(label, 1)
}

// NewAt creates a new T whose first line is numbered line.
func NewAt(label string, line int) *T {
	return &T{
		source: loc.T{
			Char: 1,
			Line: line,
			Name: label,
		},
	}
}

// Scan passes a text buffer to the lexer for scanning.
// If a buffer is currently being scanned, the new buffer will
// be appended to the list of buffers waiting to be scanned.
func (l *T) Scan(text string) {
	l.queue = append(l.queue, text)
}

// Token returns the next scanned token, or nil if no token is available.
func (l *T) Token() *token.T {
	for {
		l.gather()

		if l.index >= len(l.bytes) {
			return nil
		}

		r, w := utf8.DecodeRuneInString(l.bytes[l.index:])
		source := l.source

		l.accept(r, w)

		if token.Instruction(r) {
			return token.New(token.Class(r), &source)
		}
	}
}

func (l *T) accept(r rune, w int) {
	if r == '\n' {
		l.source.Line++
		l.source.Char = 1
	} else {
		l.source.Char++
	}

	l.index += w
}

func (l *T) gather() {
	if len(l.queue) == 0 || l.index < len(l.bytes) {
		return
	}

	l.bytes = strings.Join(l.queue, "")
	l.index = 0
	l.queue = l.queue[:0]
}
