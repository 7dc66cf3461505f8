// Package settle holds the fixed settling delays used between filesystem and
// network steps of a runtime acquisition.
//
// The delays are a timing workaround, not a synchronization primitive. Keeping
// them in one place lets callers tune them (tests set them to zero) or later
// swap them for a real readiness check.
package settle

import (
	"context"
	"time"
)

const (
	// AfterDelete is the wait between removing an install directory and recreating it.
	AfterDelete = 500 * time.Millisecond
	// AfterFetch is the wait between finishing a download and starting extraction.
	AfterFetch = 100 * time.Millisecond
)

// Wait blocks for d or until ctx is done. A non-positive d returns immediately.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
