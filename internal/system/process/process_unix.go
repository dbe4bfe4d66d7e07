// Released under an MIT license. See LICENSE.

//go:build unix

package process

import (
	"os"

	"golang.org/x/sys/unix"
)

//nolint:gochecknoglobals
var (
	// InterruptStatus is the exit status of a process stopped by SIGINT.
	InterruptStatus = 128 + int(unix.SIGINT)

	interrupts = []os.Signal{unix.SIGINT, unix.SIGTERM}
)
