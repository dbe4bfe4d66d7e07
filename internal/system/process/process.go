// Released under an MIT license. See LICENSE.

// Package process provides the signals used to interrupt a running program.
package process

import (
	"context"
	"os/signal"
)

// Interruptible returns a context that is cancelled when any of the
// interrupt signals arrives. The stop function must be called to
// restore default signal handling.
func Interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, interrupts...)
}
