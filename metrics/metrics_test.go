package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/tagcache"
)

func gatherValues(t *testing.T, c *Collector) map[string]float64 {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetGauge() != nil:
				out[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				out[mf.GetName()] = m.GetCounter().GetValue()
			}
		}
	}
	return out
}

func TestCollectorReportsSnapshot(t *testing.T) {
	cache, err := tagcache.New(tagcache.Options{
		DisableSweep: true,
		Sizer:        func(any) int64 { return 10 },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cache.Close()

	cache.Set("a", 1, tagcache.Policy{Tags: []string{"t"}})
	cache.Set("b", 2, tagcache.Policy{Tags: []string{"t"}})
	tagcache.Get[int](cache, "a")      // hit
	tagcache.Get[int](cache, "absent") // miss
	cache.InvalidateByTag("t")         // 2 evictions

	got := gatherValues(t, NewCollector("files", cache.Statistics))

	want := map[string]float64{
		"cache_entries":               0,
		"cache_memory_estimate_bytes": 0,
		"cache_hits_total":            1,
		"cache_misses_total":          1,
		"cache_evictions_total":       2,
	}
	for name, w := range want {
		if got[name] != w {
			t.Fatalf("%s = %v, want %v (all: %v)", name, got[name], w, got)
		}
	}
}

func TestCollectorIsLazy(t *testing.T) {
	cache, err := tagcache.New(tagcache.Options{DisableSweep: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cache.Close()

	col := NewCollector("files", cache.Statistics)

	if got := gatherValues(t, col); got["cache_entries"] != 0 {
		t.Fatalf("cache_entries = %v before any Set", got["cache_entries"])
	}

	// mutations after construction show up at the next scrape
	cache.Set("a", "v", tagcache.Policy{})
	if got := gatherValues(t, col); got["cache_entries"] != 1 {
		t.Fatalf("cache_entries = %v after Set, want 1", got["cache_entries"])
	}
}
