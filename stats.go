package tagcache

import (
	"sync/atomic"
	"time"
)

// Statistics is a point-in-time snapshot of cache counters. Counters are
// maintained with independent atomics outside the store's critical section,
// so a snapshot is consistent enough for monitoring, not linearizable with
// respect to in-flight operations.
type Statistics struct {
	// TotalItems is the current number of stored entries. It may transiently
	// include expired entries that the sweep has not yet reclaimed.
	TotalItems int

	// Cumulative counters since construction (or since the last Clear when
	// ResetStatsOnClear is set). HitCount+MissCount equals the number of
	// completed read attempts.
	HitCount      uint64
	MissCount     uint64
	EvictionCount uint64

	// TotalMemoryEstimate is a best-effort byte estimate of stored values.
	TotalMemoryEstimate int64

	// LastUpdated is the time of the last counter mutation.
	LastUpdated time.Time
}

// tracker holds the live counters. An eviction is any removal the caller did
// not request by key: expiry discovered on read, sweep, tag invalidation.
type tracker struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	items     atomic.Int64
	memory    atomic.Int64
	updated   atomic.Int64 // unix nanos
}

func (t *tracker) recordHit(now time.Time) {
	t.hits.Add(1)
	t.updated.Store(now.UnixNano())
}

func (t *tracker) recordMiss(now time.Time) {
	t.misses.Add(1)
	t.updated.Store(now.UnixNano())
}

func (t *tracker) recordEvictions(n int, now time.Time) {
	if n <= 0 {
		return
	}
	t.evictions.Add(uint64(n))
	t.updated.Store(now.UnixNano())
}

// recordItemDelta adjusts the current item count and memory estimate after an
// insert (positive) or removal (negative).
func (t *tracker) recordItemDelta(items int, memory int64, now time.Time) {
	t.items.Add(int64(items))
	t.memory.Add(memory)
	t.updated.Store(now.UnixNano())
}

// clear zeroes the current gauges; cumulative counters are dropped only when
// full is set.
func (t *tracker) clear(full bool, now time.Time) {
	t.items.Store(0)
	t.memory.Store(0)
	if full {
		t.hits.Store(0)
		t.misses.Store(0)
		t.evictions.Store(0)
	}
	t.updated.Store(now.UnixNano())
}

func (t *tracker) snapshot() Statistics {
	return Statistics{
		TotalItems:          int(t.items.Load()),
		HitCount:            t.hits.Load(),
		MissCount:           t.misses.Load(),
		EvictionCount:       t.evictions.Load(),
		TotalMemoryEstimate: t.memory.Load(),
		LastUpdated:         time.Unix(0, t.updated.Load()),
	}
}
