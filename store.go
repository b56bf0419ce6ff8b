package tagcache

import "time"

// entry is a live cache record. Value is stored boxed; the dynamic Go type
// doubles as the type tag checked by the generic Get.
type entry struct {
	key   string
	value any
	tags  []string

	createdAt      time.Time
	lastAccessedAt time.Time

	// absoluteDeadline is the hard expiry instant; zero means none.
	absoluteDeadline time.Time
	// slidingTTL extends lastAccessedAt into a second expiry bound; zero
	// means none. Refreshed on every successful read.
	slidingTTL time.Duration

	priority Priority
	cost     int64
}

// expiredAt reports whether the entry is dead at t: past its absolute
// deadline, or unread for longer than its sliding window.
func (e *entry) expiredAt(t time.Time) bool {
	if !e.absoluteDeadline.IsZero() && !t.Before(e.absoluteDeadline) {
		return true
	}
	if e.slidingTTL > 0 && !t.Before(e.lastAccessedAt.Add(e.slidingTTL)) {
		return true
	}
	return false
}

// touch advances the access time, pushing the sliding deadline forward. The
// absolute deadline is unaffected.
func (e *entry) touch(t time.Time) {
	e.lastAccessedAt = t
}

// store is the key->entry map. It owns expiration mechanics but performs no
// locking of its own: every access happens inside the Cache's critical
// section, together with the matching tag index mutation.
type store struct {
	entries map[string]*entry
}

func newStore() *store {
	return &store{entries: make(map[string]*entry)}
}

// get returns the live entry for key. An expired entry is reported as
// (stale, false) so the caller can detach its tags and account the eviction;
// get itself does not remove it.
func (s *store) get(key string, now time.Time) (e *entry, ok bool) {
	e, ok = s.entries[key]
	if !ok {
		return nil, false
	}
	if e.expiredAt(now) {
		return e, false
	}
	return e, true
}

// put installs e, returning the entry it replaced, if any.
func (s *store) put(e *entry) (old *entry, replaced bool) {
	old, replaced = s.entries[e.key]
	s.entries[e.key] = e
	return old, replaced
}

// remove deletes key, returning the removed entry. Removing an absent key is
// a no-op.
func (s *store) remove(key string) (*entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	delete(s.entries, key)
	return e, true
}

func (s *store) count() int { return len(s.entries) }

func (s *store) reset() {
	s.entries = make(map[string]*entry)
}

// expiredKeys collects keys whose entries are dead at now. Used by the sweep
// candidate scan; liveness is re-checked under the write lock before removal.
func (s *store) expiredKeys(now time.Time) []string {
	var keys []string
	for k, e := range s.entries {
		if e.expiredAt(now) {
			keys = append(keys, k)
		}
	}
	return keys
}
