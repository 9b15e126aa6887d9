package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/iudanet/matchsync/internal/transport"
)

// Значения по умолчанию для Serve
const (
	DefaultMaxConcurrentCalls = 1
	DefaultReceiveTimeout     = time.Second
)

// ServeOptions configures the receive loop
type ServeOptions struct {
	MaxConcurrentCalls int
	ReceiveTimeout     time.Duration
}

func (o ServeOptions) withDefaults() ServeOptions {
	if o.MaxConcurrentCalls <= 0 {
		o.MaxConcurrentCalls = DefaultMaxConcurrentCalls
	}
	if o.ReceiveTimeout <= 0 {
		o.ReceiveTimeout = DefaultReceiveTimeout
	}
	return o
}

// Serve receives messages from rcv and handles up to MaxConcurrentCalls of them at once.
//
// Cancelling ctx stops receiving; Serve then waits for in-flight messages,
// which keep running with a context that is not cancelled. A receive error
// other than cancellation stops the loop and is returned after the drain.
func (e *Engine) Serve(ctx context.Context, rcv transport.Receiver, opts ServeOptions) error {
	opts = opts.withDefaults()

	sem := semaphore.NewWeighted(int64(opts.MaxConcurrentCalls))
	workCtx := context.WithoutCancel(ctx)
	var g errgroup.Group

	e.logger.Info("Started processing requests",
		"max_concurrent_calls", opts.MaxConcurrentCalls,
		"mode", e.mode.String(),
	)

	var loopErr error
	for {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		msg, err := rcv.Receive(ctx, opts.ReceiveTimeout)
		if err != nil {
			sem.Release(1)
			if ctx.Err() == nil && !errors.Is(err, context.Canceled) {
				loopErr = err
			}
			break
		}
		if msg == nil {
			sem.Release(1)
			continue
		}

		g.Go(func() error {
			defer sem.Release(1)
			e.HandleMessage(workCtx, rcv, msg)
			return nil
		})
	}

	_ = g.Wait()

	if loopErr != nil {
		e.logger.Error("Stopped processing requests", slog.Any("error", loopErr))
		return loopErr
	}
	e.logger.Info("Stopped processing requests")
	return nil
}
