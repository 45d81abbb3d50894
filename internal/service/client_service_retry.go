package service

import (
	"math/rand/v2"
	"time"

	"github.com/sethvargo/go-retry"
)

// maxRetryDelay caps a single backoff step.
const maxRetryDelay = 5 * time.Minute

// newRetryBackoff returns the schedule of automatic retries:
// base × 2^attempt plus a random jitter in [0, jitter), at most maxRetries
// steps.
func newRetryBackoff(base, jitter time.Duration, maxRetries int) retry.Backoff {
	if base <= 0 {
		base = time.Second
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	b := retry.NewExponential(base)
	b = retry.WithCappedDuration(maxRetryDelay, b)
	b = retry.WithMaxRetries(uint64(maxRetries), b)
	return withPositiveJitter(jitter, b)
}

// withPositiveJitter adds a uniform delay in [0, j) to every step of next.
func withPositiveJitter(j time.Duration, next retry.Backoff) retry.Backoff {
	if j <= 0 {
		return next
	}
	return retry.BackoffFunc(func() (time.Duration, bool) {
		val, stop := next.Next()
		if stop {
			return 0, true
		}
		return val + time.Duration(rand.Int64N(int64(j))), false
	})
}
