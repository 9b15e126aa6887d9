package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff"
)

// Recovery keeps a long running consumer alive across connection level failures.
// После каждой неудачи пауза удваивается, после успешной работы сбрасывается.
type Recovery struct {
	logger          *slog.Logger
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// NewRecovery creates a Recovery loop
func NewRecovery(initialInterval, maxInterval time.Duration, logger *slog.Logger) *Recovery {
	return &Recovery{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		logger:          logger,
	}
}

// Permanent marks an error that stops Run instead of restarting the attempt
func Permanent(err error) error {
	return &permanentError{err: err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Attempt runs one session of work. progressed reports whether the session
// did useful work before failing, which resets the backoff.
type Attempt func(ctx context.Context) (progressed bool, err error)

func (r *Recovery) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	if r.InitialInterval > 0 {
		b.InitialInterval = r.InitialInterval
	}
	if r.MaxInterval > 0 {
		b.MaxInterval = r.MaxInterval
	}
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0 // никогда не сдаемся
	b.Reset()
	return b
}

// Run calls attempt until ctx is done. It returns nil when ctx is cancelled
// and the attempt's error when it is marked with Permanent.
func (r *Recovery) Run(ctx context.Context, attempt Attempt) error {
	b := r.newBackOff()

	for {
		progressed, err := attempt(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			b.Reset()
			continue
		}

		var permanent *permanentError
		if errors.As(err, &permanent) {
			return permanent.err
		}

		if progressed {
			b.Reset()
		}
		wait := b.NextBackOff()
		r.logger.Error("Consumer failed, restarting",
			slog.Any("error", err),
			slog.Duration("wait", wait),
			slog.Bool("critical", true),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}
