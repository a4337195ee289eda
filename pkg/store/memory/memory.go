// Package memory holds the in-memory store implementations that stand in for
// the real church-management API. Stores own their collections for the life
// of the process; a production build swaps them for HTTP-backed clients with
// the same interfaces.
package memory

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// ErrNotFound is returned by store operations referencing an id that is not
// in the collection.
var ErrNotFound = errors.New("record not found")

// DefaultTenantID is stamped on records created without an explicit tenant.
const DefaultTenantID = "tenant-default"

// Latency simulates remote round-trip time on store operations. Each call
// waits a uniformly jittered duration in [Min, Max] before touching state.
// The zero value waits nothing, which is what tests want.
type Latency struct {
	Min time.Duration
	Max time.Duration
}

// DefaultLatency mirrors the 200-300ms the mock API layer simulates.
var DefaultLatency = Latency{Min: 200 * time.Millisecond, Max: 300 * time.Millisecond}

// Wait blocks for the jittered duration or until ctx is done.
func (l Latency) Wait(ctx context.Context) error {
	d := l.Min
	if l.Max > l.Min {
		d += time.Duration(rand.Int63n(int64(l.Max - l.Min + 1)))
	}
	if d <= 0 {
		return ctx.Err()
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
