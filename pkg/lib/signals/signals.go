// Package signals ties process shutdown signals to context cancellation so
// that solves in flight wind down as Incomplete instead of being killed.
package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	signalCtx context.Context
	cancel    context.CancelFunc
	once      sync.Once
)

// Context returns a Context cancelled on the first SIGTERM or SIGINT. If a
// second signal is caught, the program is terminated with exit code 1.
func Context() context.Context {
	once.Do(func() {
		signalCtx, cancel = context.WithCancel(context.Background())
		c := make(chan os.Signal, 2)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-c
			cancel()
			<-c
			os.Exit(1) // second signal. Exit directly.
		}()
	})

	return signalCtx
}
