package tagcache

import (
	"context"
	"fmt"
	"time"
)

// SizerFunc estimates the in-memory footprint of a value in bytes.
// Estimates feed Statistics.TotalMemoryEstimate and are best-effort only.
type SizerFunc func(value any) int64

// LoaderFunc fetches or computes the authoritative value for a key on a
// cache miss. It runs outside all cache locks and may be a long-latency
// remote call; cancellation is governed by the caller's ctx.
type LoaderFunc[T any] func(ctx context.Context) (T, error)

// Options tune a Cache. The zero value is valid: logging and hooks are
// disabled, sweeping runs every 5 minutes, and DefaultPolicy is a 10 minute
// absolute expiration at Normal priority.
type Options struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// SweepInterval is the period of the background sweep that physically
	// removes expired entries. 0 => 5m. Sweeping is a memory-reclamation
	// optimization only; reads never return expired entries regardless.
	SweepInterval time.Duration
	DisableSweep  bool

	// DefaultPolicy is applied when a zero Policy is passed to Set or
	// GetOrLoad. Zero => 10m absolute expiration, Normal priority, no tags.
	DefaultPolicy Policy

	// Sizer overrides the default msgpack-based size estimator.
	Sizer SizerFunc

	// ResetStatsOnClear makes Clear reset the cumulative hit/miss/eviction
	// counters in addition to the current item and memory gauges. Default
	// false: cumulative counters survive Clear.
	ResetStatsOnClear bool

	// Disabled turns the cache into a pass-through: every read misses and
	// every write is a no-op. Useful as a kill switch.
	Disabled bool
}

// New constructs a Cache and, unless sweeping is disabled, starts its
// background sweep goroutine. Call Close to stop it.
func New(opts Options) (*Cache, error) {
	if opts.SweepInterval < 0 {
		return nil, fmt.Errorf("tagcache: negative sweep interval %v", opts.SweepInterval)
	}
	if err := opts.DefaultPolicy.validate(); err != nil {
		return nil, fmt.Errorf("tagcache: default policy: %w", err)
	}
	return newCache(opts), nil
}
