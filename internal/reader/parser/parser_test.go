// Released under an MIT license. See LICENSE.

package parser

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/michaelmacinnis/bf/internal/type/program"
)

const hello = `++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.`

func check(t *testing.T, s, canonical string) *program.T {
	t.Helper()

	p, err := Parse("test", s)
	if err != nil {
		t.Fatalf("Parsing %q: unexpected error: %v", s, err)
	}

	if c := p.String(); c != canonical {
		t.Fatalf("Parsing %q: expected %q; got %q", s, canonical, c)
	}

	// Reparsing the canonical form gives the same program.
	r, err := Parse("test", p.String())
	if err != nil || r.String() != canonical {
		t.Fatalf("Reparsing %q: got %q, %v", canonical, r, err)
	}

	return p
}

func fail(t *testing.T, s string, want error, where string) {
	t.Helper()

	p, err := Parse("test", s)
	if !errors.Is(err, want) {
		t.Fatalf("Parsing %q: expected %v; got %v", s, want, err)
	}

	if p != nil {
		t.Fatalf("Parsing %q: expected no program; got %q", s, p.String())
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Parsing %q: expected *Error; got %T", s, err)
	}

	if l := e.Source.String(); l != where {
		t.Fatalf("Parsing %q: expected error at %s; got %s", s, where, l)
	}
}

// terminated verifies that every chain in p, including loop bodies,
// ends in an Empty node.
func terminated(t *testing.T, p *program.T) {
	t.Helper()

	n := p
	for ; n != nil && !n.Empty(); n = n.Next() {
		if n.Op() == program.Loop {
			if n.Body() == nil {
				t.Fatal("Loop with nil body")
			}

			terminated(t, n.Body())
		}
	}

	if n == nil {
		t.Fatal("Chain ends in nil instead of Empty")
	}
}

func TestEmptySource(t *testing.T) {
	for _, s := range []string{"", "no instructions here", "\n\t "} {
		if p := check(t, s, ""); !p.Empty() {
			t.Fatalf("Parsing %q: expected Empty", s)
		}
	}
}

func TestSimpleInstructions(t *testing.T) {
	p := check(t, "<>+-.,", "<>+-.,")

	ops := []program.Op{
		program.MoveLeft,
		program.MoveRight,
		program.Increment,
		program.Decrement,
		program.WriteOutput,
		program.ReadInput,
		program.Empty,
	}

	n := p
	for i, op := range ops {
		if n.Op() != op {
			t.Fatalf("Instruction %d: expected %v; got %v", i, op, n.Op())
		}

		n = n.Next()
	}
}

func TestCommentsAreIgnored(t *testing.T) {
	check(t, "increment + twice + then print it .", "++.")
}

func TestLoop(t *testing.T) {
	p := check(t, "+[-]>", "+[-]>")

	l := p.Next()
	if l.Op() != program.Loop {
		t.Fatalf("Expected Loop; got %v", l.Op())
	}

	if b := l.Body(); b.Op() != program.Decrement || !b.Next().Empty() {
		t.Fatalf("Expected body -, got %q", b.String())
	}

	if n := l.Next(); n.Op() != program.MoveRight || !n.Next().Empty() {
		t.Fatalf("Expected > after loop; got %q", n.String())
	}
}

func TestNestedLoops(t *testing.T) {
	p := check(t, "[[[]][]]", "[[[]][]]")

	if d := p.Depth(); d != 3 {
		t.Fatalf("Expected depth 3; got %d", d)
	}

	terminated(t, p)
}

func TestDeepNesting(t *testing.T) {
	const depth = 2000

	s := strings.Repeat("[", depth) + "+" + strings.Repeat("]", depth)

	p := check(t, s, s)
	if d := p.Depth(); d != depth {
		t.Fatalf("Expected depth %d; got %d", depth, d)
	}
}

func TestLongFlatProgram(t *testing.T) {
	s := strings.Repeat("+>", 500000)

	p, err := Parse("test", s)
	if err != nil {
		t.Fatal(err)
	}

	if n := p.Len(); n != len(s) {
		t.Fatalf("Expected %d instructions; got %d", len(s), n)
	}
}

func TestHelloWorld(t *testing.T) {
	p := check(t, hello, hello)

	terminated(t, p)

	if d := p.Depth(); d != 2 {
		t.Fatalf("Expected depth 2; got %d", d)
	}
}

func TestSourceLocations(t *testing.T) {
	p, err := Parse("loc", "x+\n [ -]")
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range []struct {
		n    *program.T
		want string
	}{
		{p, "loc:1:2"},
		{p.Next(), "loc:2:2"},
		{p.Next().Body(), "loc:2:4"},
	} {
		if s := c.n.Source().String(); s != c.want {
			t.Fatalf("Expected %s; got %s", c.want, s)
		}
	}
}

func TestUnmatchedCloseBracket(t *testing.T) {
	fail(t, "]", ErrUnmatchedCloseBracket, "test:1:1")
	fail(t, "+]", ErrUnmatchedCloseBracket, "test:1:2")
	fail(t, "[]]", ErrUnmatchedCloseBracket, "test:1:3")
	fail(t, "[-]\n+]", ErrUnmatchedCloseBracket, "test:2:2")
	fail(t, "][", ErrUnmatchedCloseBracket, "test:1:1")
}

func TestUnterminatedLoop(t *testing.T) {
	fail(t, "+[", ErrUnterminatedLoop, "test:1:2")
	fail(t, "[[]", ErrUnterminatedLoop, "test:1:1")
	fail(t, "[]\n [[-]", ErrUnterminatedLoop, "test:2:2")
}

func TestErrorString(t *testing.T) {
	_, err := Parse("prog.b", "+]")
	if err == nil || err.Error() != "prog.b:1:2: unmatched ']'" {
		t.Fatalf("Unexpected error text: %v", err)
	}
}

// balanced generates a random string of balanced brackets mixed with
// other instructions and comment characters.
func balanced(r *rand.Rand, depth int) string {
	var b strings.Builder

	for n := r.Intn(5); n > 0; n-- {
		switch r.Intn(4) {
		case 0:
			if depth < 12 {
				b.WriteByte('[')
				b.WriteString(balanced(r, depth+1))
				b.WriteByte(']')
			}
		case 1:
			b.WriteByte("<>+-.,"[r.Intn(6)])
		case 2:
			b.WriteByte("ab \n#"[r.Intn(5)])
		}
	}

	return b.String()
}

func strip(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune("<>+-.,[]", r) {
			return r
		}

		return -1
	}, s)
}

func TestBalancedBracketsParse(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		s := balanced(r, 0)

		p := check(t, s, strip(s))

		terminated(t, p)
	}
}

func TestUnmatchedBracketsFail(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 500; i++ {
		s := balanced(r, 0) + "]" + balanced(r, 0)

		if _, err := Parse("test", s); !errors.Is(err, ErrUnmatchedCloseBracket) {
			t.Fatalf("Parsing %q: expected %v; got %v", s, ErrUnmatchedCloseBracket, err)
		}
	}
}
