package tagcache

import (
	"context"
	"sync"
	"time"

	"github.com/unkn0wn-root/tagcache/internal/sizeof"
)

// Cache is the public façade over the key->entry store, the tag index and
// the statistics tracker. Construct one instance at process start with New,
// share it by reference, and Close it on shutdown. One RWMutex spans both
// the store and the tag index, so from any observer's point of view a key's
// store membership and its tag memberships change together.
type Cache struct {
	mu    sync.RWMutex
	store *store
	tags  *tagIndex

	stats tracker

	log   Logger
	hooks Hooks

	enabled           bool
	defaultPolicy     Policy
	sizer             SizerFunc
	resetStatsOnClear bool

	// now is the clock; overridable in tests.
	now func() time.Time

	sweepInterval time.Duration
	ticker        *time.Ticker
	stopCh        chan struct{}
	closeWg       sync.WaitGroup
	closeOnce     sync.Once
}

func newCache(opts Options) *Cache {
	c := &Cache{
		store:             newStore(),
		tags:              newTagIndex(),
		enabled:           !opts.Disabled,
		resetStatsOnClear: opts.ResetStatsOnClear,
		now:               time.Now,
	}

	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.sweepInterval = coalesce[time.Duration](opts.SweepInterval, defaultSweepInterval)

	if opts.Sizer != nil {
		c.sizer = opts.Sizer
	} else {
		c.sizer = sizeof.Estimate
	}

	if opts.DefaultPolicy.isZero() {
		c.defaultPolicy = Policy{AbsoluteTTL: defaultAbsoluteTTL, Priority: PriorityNormal}
	} else {
		c.defaultPolicy = opts.DefaultPolicy
	}

	if c.enabled && !opts.DisableSweep {
		c.ticker = time.NewTicker(c.sweepInterval)
		c.stopCh = make(chan struct{})
		c.closeWg.Add(1)
		go c.sweepLoop()
	}
	return c
}

// Enabled reports whether the cache is active; a disabled cache misses every
// read and ignores every write.
func (c *Cache) Enabled() bool { return c.enabled }

// Close stops the background sweep. Safe to call more than once.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		if c.stopCh != nil {
			close(c.stopCh)
			c.closeWg.Wait()
			c.ticker.Stop()
		}
	})
}

// Get returns the value stored under key when it is live and of type T.
// A stored value of a different dynamic type is treated as a miss, not an
// error; the read still refreshes the entry's sliding window, since the
// entry was found and touched before the type check. Hit/miss accounting
// happens here, so every completed Get on an enabled cache is exactly one
// hit or one miss; a disabled cache records nothing.
func Get[T any](c *Cache, key string) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}
	v, ok := c.getBoxed(key)
	if !ok {
		c.stats.recordMiss(c.now())
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		c.log.Debug("type mismatch treated as miss", Fields{"key": key})
		c.stats.recordMiss(c.now())
		return zero, false
	}
	c.stats.recordHit(c.now())
	return t, true
}

// GetAny is the untyped variant of Get.
func (c *Cache) GetAny(key string) (any, bool) {
	if !c.enabled {
		return nil, false
	}
	v, ok := c.getBoxed(key)
	if ok {
		c.stats.recordHit(c.now())
	} else {
		c.stats.recordMiss(c.now())
	}
	return v, ok
}

// GetOrLoad implements cache-aside: on a hit the cached value is returned;
// on a miss loader fetches the authoritative value, which is stored under
// pol (zero pol => the cache's DefaultPolicy) and returned. The loader runs
// outside all cache locks; its error propagates unchanged and nothing is
// cached on failure. Concurrent misses on the same key may each invoke the
// loader; the last write wins.
func GetOrLoad[T any](ctx context.Context, c *Cache, key string, pol Policy, loader LoaderFunc[T]) (T, error) {
	if v, ok := Get[T](c, key); ok {
		return v, nil
	}
	v, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, v, pol)
	return v, nil
}

// getBoxed performs the raw keyed read: lazy-expires a dead entry (removing
// it from both store and tag index in the same critical section) and touches
// a live one so its sliding window restarts. No hit/miss accounting.
func (c *Cache) getBoxed(key string) (any, bool) {
	if !c.enabled {
		return nil, false
	}
	now := c.now()

	c.mu.Lock()
	e, ok := c.store.get(key, now)
	if !ok {
		if e != nil {
			// expired but not yet swept
			c.store.remove(key)
			c.tags.removeAll(e.tags, key)
		}
		c.mu.Unlock()
		if e != nil {
			c.stats.recordItemDelta(-1, -e.cost, now)
			c.stats.recordEvictions(1, now)
			c.emit(func() { c.hooks.ItemRemoved(key) })
			c.log.Debug("expired entry dropped on read", Fields{"key": key})
		}
		return nil, false
	}
	e.touch(now)
	v := e.value
	c.mu.Unlock()
	return v, true
}

// Set creates or replaces the entry under key with the given policy. A zero
// pol applies the cache's DefaultPolicy. Replacing a key first detaches its
// old tag memberships, then installs the new ones, all in one critical
// section.
func (c *Cache) Set(key string, value any, pol Policy) {
	if !c.enabled {
		return
	}
	if pol.isZero() {
		pol = c.defaultPolicy
	}
	now := c.now()

	e := &entry{
		key:            key,
		value:          value,
		tags:           dedupTags(pol.Tags),
		createdAt:      now,
		lastAccessedAt: now,
		slidingTTL:     pol.SlidingTTL,
		priority:       pol.Priority,
		cost:           c.sizer(value),
	}
	if pol.AbsoluteTTL > 0 {
		e.absoluteDeadline = now.Add(pol.AbsoluteTTL)
	}

	c.mu.Lock()
	old, replaced := c.store.put(e)
	if replaced {
		c.tags.removeAll(old.tags, key)
	}
	for _, t := range e.tags {
		c.tags.add(t, key)
	}
	c.mu.Unlock()

	if replaced {
		c.stats.recordItemDelta(0, e.cost-old.cost, now)
	} else {
		c.stats.recordItemDelta(1, e.cost, now)
	}
	c.emit(func() { c.hooks.ItemSet(key) })
	c.log.Debug("entry set", Fields{"key": key, "tags": e.tags, "replaced": replaced})
}

// Remove deletes key and detaches it from all its tags. It reports whether
// the key existed; removing an absent key is a no-op. An explicit Remove is
// not counted as an eviction.
func (c *Cache) Remove(key string) bool {
	if !c.enabled {
		return false
	}
	now := c.now()

	c.mu.Lock()
	e, ok := c.store.remove(key)
	if ok {
		c.tags.removeAll(e.tags, key)
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	c.stats.recordItemDelta(-1, -e.cost, now)
	c.emit(func() { c.hooks.ItemRemoved(key) })
	c.log.Debug("entry removed", Fields{"key": key})
	return true
}

// InvalidateByTag removes every live entry carrying tag and clears the tag's
// index bucket, returning the number of entries removed. An unknown tag is a
// successful no-op.
func (c *Cache) InvalidateByTag(tag string) int {
	if !c.enabled {
		return 0
	}
	now := c.now()

	c.mu.Lock()
	keys := c.tags.keysForTag(tag)
	removed := 0
	var freed int64
	for _, k := range keys {
		e, ok := c.store.remove(k)
		if !ok {
			continue
		}
		c.tags.removeAll(e.tags, k)
		removed++
		freed += e.cost
	}
	c.tags.removeTag(tag)
	c.mu.Unlock()

	if removed > 0 {
		c.stats.recordItemDelta(-removed, -freed, now)
		c.stats.recordEvictions(removed, now)
	}
	c.emit(func() { c.hooks.Invalidated(ReasonTagPrefix+tag, removed) })
	c.log.Debug("tag invalidated", Fields{"tag": tag, "removed": removed})
	return removed
}

// InvalidateByTags invalidates each tag in turn. A key carrying two of the
// given tags is removed once; overlap across tags is tolerated.
func (c *Cache) InvalidateByTags(tags ...string) int {
	total := 0
	for _, t := range tags {
		total += c.InvalidateByTag(t)
	}
	return total
}

// Clear empties the store and the tag index. Current item and memory gauges
// reset to zero; cumulative hit/miss/eviction counters are kept unless the
// cache was built with ResetStatsOnClear.
func (c *Cache) Clear() {
	if !c.enabled {
		return
	}
	now := c.now()

	c.mu.Lock()
	n := c.store.count()
	c.store.reset()
	c.tags.reset()
	c.mu.Unlock()

	c.stats.clear(c.resetStatsOnClear, now)
	c.emit(func() { c.hooks.Invalidated(ReasonClear, n) })
	c.log.Info("cache cleared", Fields{"removed": n})
}

// Contains reports whether key holds a live entry, without touching its
// sliding window or recording a hit/miss.
func (c *Cache) Contains(key string) bool {
	if !c.enabled {
		return false
	}
	now := c.now()
	c.mu.RLock()
	_, ok := c.store.get(key, now)
	c.mu.RUnlock()
	return ok
}

// Count returns the number of stored entries, which may transiently include
// expired entries the sweep has not reclaimed yet.
func (c *Cache) Count() int {
	c.mu.RLock()
	n := c.store.count()
	c.mu.RUnlock()
	return n
}

// Statistics returns a point-in-time counter snapshot.
func (c *Cache) Statistics() Statistics {
	return c.stats.snapshot()
}

// Sweep physically removes expired entries and returns how many it dropped.
// It scans for candidates under the read lock and removes them under short
// write-lock sections with a liveness re-check, so it never stalls reads and
// writes for the whole scan. Purely a memory-reclamation optimization: Get
// is correct without it.
func (c *Cache) Sweep() int {
	if !c.enabled {
		return 0
	}
	now := c.now()

	c.mu.RLock()
	candidates := c.store.expiredKeys(now)
	c.mu.RUnlock()
	if len(candidates) == 0 {
		return 0
	}

	removedKeys := make([]string, 0, len(candidates))
	var freed int64
	c.mu.Lock()
	for _, k := range candidates {
		e, ok := c.store.entries[k]
		if !ok || !e.expiredAt(now) {
			// resurrected by a concurrent Set or touched since the scan
			continue
		}
		c.store.remove(k)
		c.tags.removeAll(e.tags, k)
		removedKeys = append(removedKeys, k)
		freed += e.cost
	}
	c.mu.Unlock()

	if len(removedKeys) == 0 {
		return 0
	}
	c.stats.recordItemDelta(-len(removedKeys), -freed, now)
	c.stats.recordEvictions(len(removedKeys), now)
	for _, k := range removedKeys {
		c.emit(func() { c.hooks.ItemRemoved(k) })
	}
	c.log.Debug("sweep removed expired entries", Fields{"removed": len(removedKeys)})
	return len(removedKeys)
}

func (c *Cache) sweepLoop() {
	defer c.closeWg.Done()
	for {
		select {
		case <-c.ticker.C:
			c.Sweep()
		case <-c.stopCh:
			return
		}
	}
}

// emit runs a hook callback, containing panics so a misbehaving sink cannot
// abort an otherwise-successful cache operation.
func (c *Cache) emit(f func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("hook panicked", Fields{"panic": r})
		}
	}()
	f()
}

func dedupTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, dup := seen[t]; dup || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
