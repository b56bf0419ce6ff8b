package tagcache

import (
	"testing"
	"time"
)

func TestEntryExpiredAt(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entry   entry
		at      time.Duration
		expired bool
	}{
		{"no_bounds_never_expires", entry{lastAccessedAt: base}, 24 * time.Hour, false},
		{"absolute_before_deadline", entry{absoluteDeadline: base.Add(time.Minute), lastAccessedAt: base}, 59 * time.Second, false},
		{"absolute_at_deadline", entry{absoluteDeadline: base.Add(time.Minute), lastAccessedAt: base}, time.Minute, true},
		{"absolute_past_deadline", entry{absoluteDeadline: base.Add(time.Minute), lastAccessedAt: base}, 2 * time.Minute, true},
		{"sliding_inside_window", entry{slidingTTL: time.Minute, lastAccessedAt: base}, 30 * time.Second, false},
		{"sliding_window_elapsed", entry{slidingTTL: time.Minute, lastAccessedAt: base}, time.Minute, true},
		{"combined_sliding_first", entry{absoluteDeadline: base.Add(time.Hour), slidingTTL: time.Minute, lastAccessedAt: base}, 2 * time.Minute, true},
		{"combined_absolute_first", entry{absoluteDeadline: base.Add(time.Minute), slidingTTL: time.Hour, lastAccessedAt: base}, 2 * time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.expiredAt(base.Add(tt.at)); got != tt.expired {
				t.Fatalf("expiredAt(+%v) = %v, want %v", tt.at, got, tt.expired)
			}
		})
	}
}

func TestEntryTouchExtendsSlidingOnly(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e := entry{
		absoluteDeadline: base.Add(time.Minute),
		slidingTTL:       time.Minute,
		lastAccessedAt:   base,
	}

	e.touch(base.Add(50 * time.Second))
	if e.expiredAt(base.Add(59 * time.Second)) {
		t.Fatal("touched entry expired inside both windows")
	}
	// absolute deadline unaffected by the touch
	if !e.expiredAt(base.Add(time.Minute)) {
		t.Fatal("touch must not extend the absolute deadline")
	}
}

func TestStorePutReplace(t *testing.T) {
	s := newStore()
	now := time.Now()

	old, replaced := s.put(&entry{key: "k", value: 1, lastAccessedAt: now})
	if replaced || old != nil {
		t.Fatalf("first put reported replace: %v %v", old, replaced)
	}
	old, replaced = s.put(&entry{key: "k", value: 2, lastAccessedAt: now})
	if !replaced || old.value != 1 {
		t.Fatalf("second put: replaced=%v old=%v", replaced, old)
	}
	if s.count() != 1 {
		t.Fatalf("count = %d, want 1", s.count())
	}
}

func TestStoreGetReportsStaleEntry(t *testing.T) {
	s := newStore()
	base := time.Now()
	s.put(&entry{key: "k", value: 1, lastAccessedAt: base, absoluteDeadline: base.Add(time.Minute)})

	e, ok := s.get("k", base.Add(2*time.Minute))
	if ok {
		t.Fatal("expired entry reported live")
	}
	if e == nil {
		t.Fatal("stale entry must be returned for caller-side cleanup")
	}
	if _, ok := s.get("absent", base); ok {
		t.Fatal("absent key reported live")
	}
}

func TestStoreExpiredKeys(t *testing.T) {
	s := newStore()
	base := time.Now()
	s.put(&entry{key: "dead", lastAccessedAt: base, absoluteDeadline: base.Add(time.Minute)})
	s.put(&entry{key: "alive", lastAccessedAt: base, absoluteDeadline: base.Add(time.Hour)})
	s.put(&entry{key: "forever", lastAccessedAt: base})

	keys := s.expiredKeys(base.Add(2 * time.Minute))
	if len(keys) != 1 || keys[0] != "dead" {
		t.Fatalf("expiredKeys = %v, want [dead]", keys)
	}
}
