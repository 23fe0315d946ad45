package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Interrupted returns a context canceled on the first interrupt or termination signal.
func Interrupted(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent,
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGQUIT,
	)
}
