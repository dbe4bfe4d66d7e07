// Released under an MIT license. See LICENSE.

// Package tape provides the memory of the bf machine.
//
// A tape is logically infinite in both directions. Every cell holds a byte
// and reads as zero until written. Cells are stored in a single slice that
// grows at whichever end the cursor runs off, doubling each time.
package tape

// T (tape) is a bi-infinite sequence of byte cells and a cursor.
type T struct {
	cells  []byte
	index  int // Cursor, as an index into cells.
	origin int // Index of position 0.

	low  int // Leftmost position visited.
	high int // Rightmost position visited.
}

type tape = T

// New creates a tape with a single zero cell under the cursor.
func New() *T {
	return &tape{cells: make([]byte, 1)}
}

// Cells returns a copy of every cell the cursor has visited along with
// the position of the first one.
func (t *tape) Cells() (int, []byte) {
	c := make([]byte, t.high-t.low+1)
	copy(c, t.cells[t.origin+t.low:])

	return t.low, c
}

// Decrement subtracts one from the current cell, wrapping 0 to 255.
func (t *tape) Decrement() {
	t.cells[t.index]--
}

// Get returns the value of the current cell.
func (t *tape) Get() byte {
	return t.cells[t.index]
}

// Increment adds one to the current cell, wrapping 255 to 0.
func (t *tape) Increment() {
	t.cells[t.index]++
}

// Left moves the cursor one cell to the left.
func (t *tape) Left() {
	if t.index == 0 {
		n := len(t.cells)
		cells := make([]byte, 2*n)
		copy(cells[n:], t.cells)

		t.cells = cells
		t.index += n
		t.origin += n
	}

	t.index--

	if p := t.Position(); p < t.low {
		t.low = p
	}
}

// Position returns the cursor's position relative to the starting cell.
// Positions left of the starting cell are negative.
func (t *tape) Position() int {
	return t.index - t.origin
}

// Right moves the cursor one cell to the right.
func (t *tape) Right() {
	if t.index == len(t.cells)-1 {
		t.cells = append(t.cells, make([]byte, len(t.cells))...)
	}

	t.index++

	if p := t.Position(); p > t.high {
		t.high = p
	}
}

// Set stores b in the current cell.
func (t *tape) Set(b byte) {
	t.cells[t.index] = b
}
