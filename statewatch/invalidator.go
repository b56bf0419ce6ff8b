// Package statewatch keeps a tagcache.Cache consistent with an externally
// owned application-state snapshot. Whenever the state layer publishes a new
// snapshot, the Invalidator diffs it against the previous one and invalidates
// exactly the tags whose backing slice changed; it can also warm the cache
// from slices the snapshot already holds in memory.
package statewatch

import (
	"reflect"
	"sync"

	"github.com/unkn0wn-root/tagcache"
)

// Snapshot is the diffable surface of the application state: the three
// cached data families plus the active search parameter. Snapshots are
// passed by value and must not be mutated after publishing.
type Snapshot struct {
	Files          any
	Categories     any
	Configurations any
	SearchParam    string
}

type Options struct {
	Logger tagcache.Logger // if nil, logging is disabled
}

// Invalidator reacts to state transitions with tag invalidations. All
// methods are safe for concurrent use, though state layers typically publish
// transitions from a single goroutine.
type Invalidator struct {
	cache *tagcache.Cache
	log   tagcache.Logger

	mu   sync.Mutex
	prev *digest // last snapshot seen by Observe; nil until the first one
}

func New(cache *tagcache.Cache, opts Options) *Invalidator {
	log := opts.Logger
	if log == nil {
		log = tagcache.NopLogger{}
	}
	return &Invalidator{cache: cache, log: log}
}

// digest carries the per-slice fingerprints of one snapshot.
type digest struct {
	files          fingerprint
	categories     fingerprint
	configurations fingerprint
	search         string
}

func (i *Invalidator) digestOf(s Snapshot) digest {
	d := digest{search: s.SearchParam}
	var err error
	if d.files, err = fingerprintOf(s.Files); err != nil {
		i.log.Warn("files slice not fingerprintable, treating as changed", tagcache.Fields{"err": err})
	}
	if d.categories, err = fingerprintOf(s.Categories); err != nil {
		i.log.Warn("categories slice not fingerprintable, treating as changed", tagcache.Fields{"err": err})
	}
	if d.configurations, err = fingerprintOf(s.Configurations); err != nil {
		i.log.Warn("configurations slice not fingerprintable, treating as changed", tagcache.Fields{"err": err})
	}
	return d
}

// OnStateTransition diffs two successive snapshots and invalidates the tag
// of every slice that changed. A nil prev means no snapshot was known yet;
// there is nothing to invalidate then. A search-parameter change
// additionally invalidates the broader "ui-data" group, since query-shaped
// views depend on it. Invalidation is best-effort per tag: a failure in one
// tag's invalidation (a panicking hook, for instance) is logged and does not
// stop the remaining tags.
func (i *Invalidator) OnStateTransition(prev *Snapshot, curr Snapshot) {
	if prev == nil {
		return
	}
	i.diffAndInvalidate(i.digestOf(*prev), i.digestOf(curr))
}

// Observe is the stateful form: it diffs curr against the last observed
// snapshot and then remembers curr. The first call only records.
func (i *Invalidator) Observe(curr Snapshot) {
	d := i.digestOf(curr)

	i.mu.Lock()
	prev := i.prev
	i.prev = &d
	i.mu.Unlock()

	if prev == nil {
		i.log.Debug("first snapshot observed, nothing to invalidate", nil)
		return
	}
	i.diffAndInvalidate(*prev, d)
}

func (i *Invalidator) diffAndInvalidate(prev, curr digest) {
	if !prev.files.equal(curr.files) {
		i.invalidate(tagcache.TagFiles)
	}
	if !prev.categories.equal(curr.categories) {
		i.invalidate(tagcache.TagCategories)
	}
	if !prev.configurations.equal(curr.configurations) {
		i.invalidate(tagcache.TagConfigurations)
	}
	if prev.search != curr.search {
		i.invalidate(tagcache.TagUIData)
	}
}

func (i *Invalidator) invalidate(tag string) {
	defer func() {
		if r := recover(); r != nil {
			i.log.Error("tag invalidation failed", tagcache.Fields{"tag": tag, "panic": r})
		}
	}()
	removed := i.cache.InvalidateByTag(tag)
	i.log.Debug("state change invalidated tag", tagcache.Fields{"tag": tag, "removed": removed})
}

// WarmupCache opportunistically pre-populates the cache from the slices curr
// already holds, under the same keys and policies the read paths use, so the
// next read is a hit instead of a cold miss. Empty slices are skipped.
func (i *Invalidator) WarmupCache(curr Snapshot) {
	if nonEmpty(curr.Files) {
		i.cache.Set(tagcache.FileListKey(curr.SearchParam), curr.Files, tagcache.PolicyFileList)
	}
	if nonEmpty(curr.Categories) {
		i.cache.Set(tagcache.CategoryListKey(), curr.Categories, tagcache.PolicyCategories)
	}
	if nonEmpty(curr.Configurations) {
		i.cache.Set(tagcache.ConfigListKey(), curr.Configurations, tagcache.PolicyConfigurations)
	}
}

func nonEmpty(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}
