// Released under an MIT license. See LICENSE.

// Package program provides the parsed form of a bf program.
//
// A program is a right-leaning chain of instructions. Each node is one
// instruction plus everything after it so a *T is both "an instruction"
// and "the program fragment starting here". Loops own a second chain,
// their body. Nodes are never shared and never modified once built.
package program

import (
	"strconv"
	"strings"

	"github.com/michaelmacinnis/bf/internal/type/loc"
)

// Op identifies the instruction a node performs.
type Op byte

// Instructions.
const (
	Empty Op = iota
	MoveLeft
	MoveRight
	Increment
	Decrement
	ReadInput
	WriteOutput
	Loop
)

var chars = [...]string{
	Empty:       "",
	MoveLeft:    "<",
	MoveRight:   ">",
	Increment:   "+",
	Decrement:   "-",
	ReadInput:   ",",
	WriteOutput: ".",
	Loop:        "[",
}

var names = [...]string{
	Empty:       "Empty",
	MoveLeft:    "MoveLeft",
	MoveRight:   "MoveRight",
	Increment:   "Increment",
	Decrement:   "Decrement",
	ReadInput:   "ReadInput",
	WriteOutput: "WriteOutput",
	Loop:        "Loop",
}

// String returns the name of the instruction.
func (op Op) String() string {
	if int(op) < len(names) {
		return names[op]
	}

	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// T (program) is one node of a parsed program.
type T struct {
	op     Op
	body   *T
	next   *T
	source *loc.T
}

type program = T

// NewEmpty creates the terminal node.
func NewEmpty() *T {
	return &program{op: Empty}
}

// New creates a node for the simple instruction op followed by next.
// A nil next is treated as the end of the program.
func New(op Op, next *T, source *loc.T) *T {
	switch op {
	case Empty:
		return NewEmpty()
	case Loop:
		return NewLoop(NewEmpty(), next, source)
	}

	return &program{op: op, next: orEmpty(next), source: source}
}

// NewLoop creates a loop node that repeats body while the current cell
// is non-zero and then continues with next.
func NewLoop(body, next *T, source *loc.T) *T {
	return &program{
		op:     Loop,
		body:   orEmpty(body),
		next:   orEmpty(next),
		source: source,
	}
}

// Body returns the body of a loop node, or nil for any other node.
func (p *program) Body() *T {
	return p.body
}

// Depth returns the maximum loop nesting depth of the program.
func (p *program) Depth() int {
	d := 0

	for n := p; !n.Empty(); n = n.next {
		if n.op == Loop {
			if b := n.body.Depth() + 1; b > d {
				d = b
			}
		}
	}

	return d
}

// Empty returns true if p is the terminal node.
func (p *program) Empty() bool {
	return p == nil || p.op == Empty
}

// Len returns the number of instructions in the program, counting each
// loop once and including everything in its body.
func (p *program) Len() int {
	n := 0

	for c := p; !c.Empty(); c = c.next {
		n++

		if c.op == Loop {
			n += c.body.Len()
		}
	}

	return n
}

// Next returns the rest of the program after this node.
// The terminal node has no successor and returns nil.
func (p *program) Next() *T {
	return p.next
}

// Op returns the instruction this node performs.
func (p *program) Op() Op {
	return p.op
}

// Source returns the location of the character this node was parsed from.
// Nodes that were not built by the parser return nil.
func (p *program) Source() *loc.T {
	return p.source
}

// String returns the program in canonical source form: instructions only.
func (p *program) String() string {
	var b strings.Builder

	p.write(&b)

	return b.String()
}

func (p *program) write(b *strings.Builder) {
	for n := p; !n.Empty(); n = n.next {
		b.WriteString(chars[n.op])

		if n.op == Loop {
			n.body.write(b)
			b.WriteByte(']')
		}
	}
}

func orEmpty(p *T) *T {
	if p == nil {
		return NewEmpty()
	}

	return p
}
