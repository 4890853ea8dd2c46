package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// ErrNotFound is returned by point lookups when no row matches
var ErrNotFound = errors.New("not found")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// isUniqueError checks if an error is a uniqueness constraint violation
func isUniqueError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// withRetry runs a write with backoff while sqlite reports lock contention
func withRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, fn)
}

// pageLimit normalizes a requested page size
func pageLimit(limit int) uint64 {
	switch {
	case limit <= 0:
		return 50
	case limit > 500:
		return 500
	default:
		return uint64(limit)
	}
}

func pageOffset(offset int) uint64 {
	if offset < 0 {
		return 0
	}
	return uint64(offset)
}
