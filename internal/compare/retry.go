package compare

import (
	"errors"
	"math/rand"
	"time"
)

// MaxRetries bounds attempts per section. A single attempt is enough for
// correctness; retries only reduce degraded verdicts on transient failures.
const MaxRetries = 3

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}
