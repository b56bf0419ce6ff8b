// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/tagcache"
//	"github.com/unkn0wn-root/tagcache/hooks/async"
//	"github.com/unkn0wn-root/tagcache/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    ItemSetEvery: 100, // sample: log ~every 100th set
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := tagcache.New(tagcache.Options{
//	    Hooks: hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/tagcache"
)

// Hooks decouples a slow event sink from cache hot paths: events are queued
// and delivered by worker goroutines, and dropped when the queue is full.
type Hooks struct {
	inner tagcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ tagcache.Hooks = (*Hooks)(nil)

func New(inner tagcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers.
func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) ItemSet(key string)     { h.try(func() { h.inner.ItemSet(key) }) }
func (h *Hooks) ItemRemoved(key string) { h.try(func() { h.inner.ItemRemoved(key) }) }
func (h *Hooks) Invalidated(reason string, removed int) {
	h.try(func() { h.inner.Invalidated(reason, removed) })
}
