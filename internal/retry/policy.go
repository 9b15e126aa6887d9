// Package retry wraps broker calls with bounded exponential backoff.
package retry

import (
	"context"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Значения по умолчанию для Policy
const (
	DefaultMaxAttempts = 5
	DefaultMinBackoff  = 100 * time.Millisecond
	DefaultMaxBackoff  = 10 * time.Second
)

// Policy retries transient failures of a single transport call
type Policy struct {
	// IsRetryable decides whether an error is transient. nil means every error is.
	IsRetryable func(error) bool
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
	MaxAttempts uint64
}

// DefaultPolicy returns a policy with the default bounds
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		MinBackoff:  DefaultMinBackoff,
		MaxBackoff:  DefaultMaxBackoff,
	}
}

// NoRetry runs the call exactly once
func NoRetry() Policy {
	return Policy{MaxAttempts: 1, MinBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
}

func (p Policy) backoff() goretry.Backoff {
	minBackoff := p.MinBackoff
	if minBackoff <= 0 {
		minBackoff = DefaultMinBackoff
	}
	maxBackoff := p.MaxBackoff
	if maxBackoff < minBackoff {
		maxBackoff = minBackoff
	}
	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = DefaultMaxAttempts
	}

	b := goretry.NewExponential(minBackoff)
	b = goretry.WithCappedDuration(maxBackoff, b)
	// WithMaxRetries считает повторы, а не попытки
	return goretry.WithMaxRetries(attempts-1, b)
}

// Do calls fn until it succeeds, returns a permanent error, the attempts
// run out or ctx is done. The last error is returned unwrapped.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return goretry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if p.IsRetryable != nil && !p.IsRetryable(err) {
			return err
		}
		return goretry.RetryableError(err)
	})
}

// DoValue is Do for calls returning a value
func DoValue[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}
