// Package retry runs operations under a single reusable backoff policy.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds how an operation is retried.
type Policy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultPolicy matches the generation service defaults: three attempts
// with exponential backoff starting at two seconds.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 2 * time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2.0,
	}
}

// Attempt records one failed try and the wait that followed it.
type Attempt struct {
	N    int
	Err  error
	Wait time.Duration
}

// Do runs op until it succeeds, fails permanently, exhausts the policy,
// or ctx is cancelled. retryable classifies errors: a non-retryable
// error stops immediately. The returned attempts list every failure.
func Do[T any](ctx context.Context, p Policy, retryable func(error) bool, op func(ctx context.Context) (T, error)) (T, []Attempt, error) {
	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	if p.Multiplier > 0 {
		exp.Multiplier = p.Multiplier
	}
	exp.MaxElapsedTime = 0

	maxAttempts := p.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 1
	}
	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(maxAttempts-1)), ctx)

	var attempts []Attempt
	n := 0
	result, err := backoff.RetryNotifyWithData(func() (T, error) {
		n++
		v, err := op(ctx)
		if err != nil && !retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, b, func(err error, wait time.Duration) {
		attempts = append(attempts, Attempt{N: n, Err: err, Wait: wait})
	})
	if err != nil {
		attempts = append(attempts, Attempt{N: n, Err: err})
	}
	return result, attempts, err
}
