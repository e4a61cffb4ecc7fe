// Package ratelimit paces tool invocations and AWS verification calls so a
// full suite run stays under the account's API throttling limits.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or a negative limit for no rate limiting.
func New(callsPerSecond float64) *Limiter {
	if callsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}

	// Burst of 1: the first call goes out immediately, subsequent calls
	// wait according to the configured rate.
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(callsPerSecond), 1)}
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit reports the configured rate, 0 meaning unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
