// Package retry re-runs repository operations that fail with transient
// faults. Permanent faults return immediately: retrying a constraint
// violation or a missing path cannot succeed until the caller changes
// something.
package retry

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/strata-repo/fault"
)

// Policy defines the retry behavior for failed operations.
type Policy struct {
	MaxAttempts     int           // Maximum number of attempts (including first try)
	InitialInterval time.Duration // Initial backoff interval
	MaxInterval     time.Duration // Maximum backoff interval
	Multiplier      float64       // Backoff multiplier
	JitterFactor    float64       // Random jitter factor (0.0-1.0)
}

// DefaultPolicy returns a sensible default retry policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	}
}

// Do runs fn until it succeeds, fails permanently, or the policy is
// exhausted. Only transient faults are retried; see fault.Transient.
// A nil logger discards the retry log lines.
func Do(ctx context.Context, policy Policy, logger *slog.Logger, op string, fn func(context.Context) error) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		lastErr = fn(ctx)

		// Success - return immediately
		if lastErr == nil {
			if attempt > 1 {
				logger.Info("operation succeeded after retry",
					"op", op,
					"attempt", attempt,
				)
			}
			return nil
		}

		// Permanent fault - don't retry
		if !fault.Transient(lastErr) {
			logger.Warn("operation failed with permanent fault",
				"op", op,
				"error", lastErr,
			)
			return lastErr
		}

		// Last attempt failed - don't sleep
		if attempt == policy.MaxAttempts {
			logger.Error("operation failed after max retries",
				"op", op,
				"attempts", attempt,
				"error", lastErr,
			)
			break
		}

		backoff := policy.backoff(attempt)
		logger.Warn("operation failed, retrying",
			"op", op,
			"attempt", attempt,
			"backoff", backoff,
			"error", lastErr,
		)

		// Wait before retry (check context cancellation)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}

// backoff calculates the wait before the next attempt.
// Formula: min(InitialInterval * Multiplier^(attempt-1) * (1 ± jitter), MaxInterval)
func (p Policy) backoff(attempt int) time.Duration {
	d := float64(p.InitialInterval) * math.Pow(p.Multiplier, float64(attempt-1))

	jitter := 1.0 + (rand.Float64()*2.0-1.0)*p.JitterFactor
	d *= jitter

	if d > float64(p.MaxInterval) {
		d = float64(p.MaxInterval)
	}

	return time.Duration(d)
}
