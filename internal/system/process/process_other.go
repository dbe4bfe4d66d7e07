// Released under an MIT license. See LICENSE.

//go:build !unix

package process

import (
	"os"
)

//nolint:gochecknoglobals
var (
	// InterruptStatus is the exit status of an interrupted process.
	InterruptStatus = 1

	interrupts = []os.Signal{os.Interrupt}
)
