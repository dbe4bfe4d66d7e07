// Released under an MIT license. See LICENSE.

package program

import "testing"

func build() *T {
	// +[->+<]>.
	body := New(Decrement,
		New(MoveRight,
			New(Increment,
				New(MoveLeft, nil, nil), nil), nil), nil)

	return New(Increment,
		NewLoop(body,
			New(MoveRight,
				New(WriteOutput, nil, nil), nil), nil), nil)
}

func TestEmpty(t *testing.T) {
	e := NewEmpty()

	if !e.Empty() || e.Len() != 0 || e.Depth() != 0 || e.String() != "" {
		t.Fatalf("Expected an empty program; got %q", e.String())
	}

	var n *T
	if !n.Empty() {
		t.Fatal("Expected nil to be treated as empty")
	}
}

func TestNilLinksAreEmpty(t *testing.T) {
	p := New(Increment, nil, nil)

	if p.Next() == nil || !p.Next().Empty() {
		t.Fatal("Expected next to be an Empty node")
	}

	l := NewLoop(nil, nil, nil)

	if l.Body() == nil || !l.Body().Empty() {
		t.Fatal("Expected loop body to be an Empty node")
	}
}

func TestNewNormalizes(t *testing.T) {
	if p := New(Empty, New(Increment, nil, nil), nil); !p.Empty() {
		t.Fatalf("Expected Empty; got %v", p.Op())
	}

	if p := New(Loop, nil, nil); p.Op() != Loop || !p.Body().Empty() {
		t.Fatal("Expected a loop with an empty body")
	}
}

func TestString(t *testing.T) {
	if s := build().String(); s != "+[->+<]>." {
		t.Fatalf("Expected +[->+<]>.; got %s", s)
	}
}

func TestLenAndDepth(t *testing.T) {
	p := build()

	if n := p.Len(); n != 8 {
		t.Fatalf("Expected 8 instructions; got %d", n)
	}

	if d := p.Depth(); d != 1 {
		t.Fatalf("Expected depth 1; got %d", d)
	}

	nested := NewLoop(NewLoop(NewLoop(nil, nil, nil), nil, nil), p, nil)
	if d := nested.Depth(); d != 3 {
		t.Fatalf("Expected depth 3; got %d", d)
	}
}

func TestOpString(t *testing.T) {
	for op, name := range map[Op]string{
		Empty:       "Empty",
		Loop:        "Loop",
		WriteOutput: "WriteOutput",
		Op(42):      "Op(42)",
	} {
		if s := op.String(); s != name {
			t.Fatalf("Expected %s; got %s", name, s)
		}
	}
}
