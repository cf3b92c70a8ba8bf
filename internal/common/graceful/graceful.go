package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slices"
)

type ProcessStopper func(ctx context.Context) error

// SignalContext is cancelled on SIGINT, SIGTERM or SIGUSR1 so a running
// batch stops taking new items and the worker can flush what it has.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
}

// StopProcess runs the stoppers in reverse registration order, each bounded by duration.
func StopProcess(duration time.Duration, ps ...ProcessStopper) []error {
	ps = slices.Clone(ps)
	slices.Reverse(ps)

	var errs []error
	for _, p := range ps {
		if p == nil {
			continue
		}
		func() {
			ctx, stop := context.WithTimeout(context.Background(), duration)
			defer stop()
			if err := p(ctx); err != nil {
				errs = append(errs, err)
			}
		}()
	}
	return errs
}
