// Released under an MIT license. See LICENSE.

// Package token is shared by the bf lexer and parser.
package token

import (
	"strconv"

	"github.com/michaelmacinnis/bf/internal/type/loc"
)

// Class is a token's type. Every class is the instruction character itself.
type Class rune

// T (token) is a lexical item returned by the scanner.
type T struct {
	class  Class
	source *loc.T
}

type token = T

// Token classes.
const (
	Left      Class = '<'
	Right     Class = '>'
	Increment Class = '+'
	Decrement Class = '-'
	Input     Class = ','
	Output    Class = '.'
	Open      Class = '['
	Close     Class = ']'
)

// Instruction returns true if r is one of the eight instruction characters.
func Instruction(r rune) bool {
	switch Class(r) {
	case Left, Right, Increment, Decrement, Input, Output, Open, Close:
		return true
	}

	return false
}

// New creates a new token.
func New(class Class, source *loc.T) *token {
	return &token{
		class:  class,
		source: source,
	}
}

// String returns a string representation of Class. Useful for debugging.
func (c Class) String() string {
	return strconv.QuoteRune(rune(c))
}

// Class returns the token's class.
func (t *token) Class() Class {
	return t.class
}

// Is returns true if the token t is any of the classes in cs.
func (t *token) Is(cs ...Class) bool {
	if t == nil {
		return false
	}

	for _, c := range cs {
		if t.class == c {
			return true
		}
	}

	return false
}

// Source returns the source location for this token.
func (t *token) Source() *loc.T {
	return t.source
}

// String returns the token's string representation. Useful for debugging.
func (t *token) String() string {
	return t.class.String() + "(" + t.source.String() + ")"
}
