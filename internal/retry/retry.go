// Package retry re-runs backend operations with linear backoff.
package retry

import (
	"context"
	"errors"
	"time"

	backoff "github.com/sethvargo/go-retry"

	"github.com/HamdySalah/carelink/internal/errs"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

type config struct {
	maxAttempts int
	baseDelay   time.Duration
	retryable   func(errs.ErrorKind) bool
	dispatcher  *errs.Dispatcher
}

// Option adjusts retry behavior.
type Option func(*config)

// WithMaxAttempts sets the total number of attempts (default 3).
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the base delay; attempt N waits N×base (default 1s).
func WithBaseDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.baseDelay = d
		}
	}
}

// WithRetryable overrides the kind partition deciding which failures are
// worth another attempt (default: ErrorKind.Retryable).
func WithRetryable(fn func(errs.ErrorKind) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.retryable = fn
		}
	}
}

// WithDispatcher routes the final failure through the given dispatcher
// (default: errs.Default()).
func WithDispatcher(d *errs.Dispatcher) Option {
	return func(c *config) {
		if d != nil {
			c.dispatcher = d
		}
	}
}

// Do runs op, retrying retryable failures with linear backoff until it
// succeeds or attempts are exhausted. The final failure is returned as a
// *errs.ClassifiedError and dispatched; non-retryable failures fail fast.
// Cancelling ctx aborts the wait and returns undispatched.
func Do(ctx context.Context, op func(context.Context) error, opts ...Option) error {
	cfg := config{
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		retryable:   errs.ErrorKind.Retryable,
		dispatcher:  errs.Default(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	b := backoff.WithMaxRetries(uint64(cfg.maxAttempts-1), linear(cfg.baseDelay))
	err := backoff.Do(ctx, b, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}
		ce := errs.Ensure(err)
		if cfg.retryable(ce.Kind()) {
			return backoff.RetryableError(ce)
		}
		return ce
	})
	if err == nil {
		return nil
	}
	// a bare context error means the caller's ctx ended mid-wait, not that
	// the operation failed; hand it back without dispatching
	var ce *errs.ClassifiedError
	if !errors.As(err, &ce) && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}
	return cfg.dispatcher.Dispatch(errs.Ensure(err))
}

// linear yields base×1, base×2, ... on successive calls. Instances are
// single-use, matching the backoff.Backoff contract.
func linear(base time.Duration) backoff.Backoff {
	var attempt int64
	return backoff.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * base, false
	})
}
