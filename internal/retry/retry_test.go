package retry

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts uint64) Policy {
	return Policy{MaxAttempts: attempts, MinBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestPolicy_Do(t *testing.T) {
	errTransient := errors.New("transient")
	errFatal := errors.New("fatal")

	tests := []struct {
		name      string
		failures  int
		failWith  error
		attempts  uint64
		wantCalls int
		wantErr   error
	}{
		{name: "success first time", attempts: 3, wantCalls: 1},
		{name: "success after retries", attempts: 3, failures: 2, failWith: errTransient, wantCalls: 3},
		{name: "attempts exhausted", attempts: 3, failures: 10, failWith: errTransient, wantCalls: 3, wantErr: errTransient},
		{name: "permanent error stops", attempts: 3, failures: 10, failWith: errFatal, wantCalls: 1, wantErr: errFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fastPolicy(tt.attempts)
			p.IsRetryable = func(err error) bool { return !errors.Is(err, errFatal) }

			calls := 0
			err := p.Do(context.Background(), func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDoValue(t *testing.T) {
	calls := 0
	v, err := DoValue(context.Background(), fastPolicy(2), func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("once")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestRecovery_Run(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	r := NewRecovery(time.Millisecond, 4*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	err := r.Run(ctx, func(context.Context) (bool, error) {
		if calls.Add(1) >= 4 {
			cancel()
			return false, nil
		}
		return false, errors.New("entity not found")
	})

	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestRecovery_Permanent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	r := NewRecovery(time.Millisecond, time.Millisecond, logger)

	errBad := errors.New("bad configuration")
	err := r.Run(context.Background(), func(context.Context) (bool, error) {
		return false, Permanent(errBad)
	})
	assert.ErrorIs(t, err, errBad)
}
