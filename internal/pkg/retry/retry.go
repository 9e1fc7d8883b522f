// Package retry wraps bounded exponential backoff for calls to remote dependencies.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy bounds how often and how fast an operation is retried.
type Policy struct {
	MaxAttempts    uint
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultPolicy returns three attempts starting at 50ms and capped at 1s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     time.Second,
	}
}

// Do runs op until it succeeds, returns an error that retryable rejects,
// exhausts MaxAttempts, or ctx is done. notify may be nil.
func Do[T any](
	ctx context.Context,
	p Policy,
	op func(context.Context) (T, error),
	retryable func(error) bool,
	notify func(attempt uint, err error, wait time.Duration),
) (T, error) {
	eb := backoff.NewExponentialBackOff()
	if p.InitialBackoff > 0 {
		eb.InitialInterval = p.InitialBackoff
	}
	if p.MaxBackoff > 0 {
		eb.MaxInterval = p.MaxBackoff
	}

	attempts := p.MaxAttempts
	if attempts == 0 {
		attempts = 1
	}

	var attempt uint
	operation := func() (T, error) {
		attempt++
		res, err := op(ctx)
		if err != nil && retryable != nil && !retryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(attempts),
		backoff.WithMaxElapsedTime(0),
	}
	if notify != nil {
		opts = append(opts, backoff.WithNotify(func(err error, wait time.Duration) {
			notify(attempt, err, wait)
		}))
	}

	return backoff.Retry(ctx, operation, opts...)
}
