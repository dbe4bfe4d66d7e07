// Released under an MIT license. See LICENSE.

// Package history loads and saves the interactive session history.
package history

import (
	"io"
	"os"
	"strings"

	"github.com/michaelmacinnis/bf/internal/reader/token"
)

// Keep returns true if line is worth remembering. Lines with no
// instructions, blank or comment only, do nothing when run again.
func Keep(line string) bool {
	return strings.IndexFunc(line, token.Instruction) >= 0
}

// Load opens the history file and passes it to read.
func Load(read func(r io.Reader) (int, error)) error {
	f, err := file(os.Open)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = read(f)

	return err
}

// Save creates the history file and passes it to write.
func Save(write func(w io.Writer) (int, error)) error {
	f, err := file(os.Create)
	if err != nil {
		return err
	}

	_, err = write(f)
	if err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}
