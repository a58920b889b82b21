package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry policy per spec §4.1: 5 retries, 100ms initial delay doubling each
// attempt (100/200/400/800/1600ms).
const (
	retryInitialInterval = 100 * time.Millisecond
	retryMaxRetries      = 5
)

// isRetryableError reports whether err is a transient SQLite condition
// worth retrying, judged by its lowercased message: it contains "database is
// locked", "database busy", both "busy" and "sqlite", "serialization", or
// "concurrent".
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "database is locked") {
		return true
	}
	if strings.Contains(msg, "database busy") {
		return true
	}
	if strings.Contains(msg, "busy") && strings.Contains(msg, "sqlite") {
		return true
	}
	return strings.Contains(msg, "serialization") || strings.Contains(msg, "concurrent")
}

func newRetryBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.Multiplier = 2.0
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0 // bounded by WithMaxRetries below, not elapsed time
	return backoff.WithMaxRetries(bo, retryMaxRetries)
}

// withRetry executes op, retrying with exponential backoff on transient
// errors (spec §4.1). Non-retryable errors — including not-found and
// constraint violations — are returned immediately via backoff.Permanent.
// The caller must ensure op is idempotent/safe to re-execute; op is handed
// a fresh backoff-governed attempt each time, never a stale connection.
func withRetry(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isRetryableError(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(newRetryBackoff(), ctx))
}
