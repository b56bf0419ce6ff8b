// Package tagcache implements an in-process, tag-indexed cache with per-entry
// expiration policy and group invalidation. Entries carry a set of string tags;
// invalidating a tag removes every live entry carrying it, and nothing else.
// Reads never return an expired entry, even before the background sweep has
// reclaimed it (lazy expiration on read).
//
// Components:
//   - Cache: the public façade. Composes the key->entry store, the tag index
//     and the statistics tracker behind one critical section per key-level
//     mutation, so the store and the tag index never diverge.
//   - Policy: reusable expiration/priority/tag preset bound at Set time.
//     Absolute and sliding expiration may be combined; the absolute deadline
//     always caps the sliding window.
//   - Hooks: cheap observability callbacks (ItemSet, ItemRemoved, Invalidated)
//     for external logging/telemetry. See hooks/async for a non-blocking
//     fan-out and package metrics for a Prometheus bridge.
//   - statewatch.Invalidator: diffs two successive application-state
//     snapshots and invalidates exactly the tags whose backing data changed.
//
// Cache-aside pattern:
//
//	v, err := tagcache.GetOrLoad(ctx, c, tagcache.FileListKey(search), tagcache.PolicyFileList,
//	    func(ctx context.Context) ([]File, error) { return client.ListFiles(ctx, search) })
//
// Concurrent misses on the same key may all invoke the loader and race to
// write the result (last write wins). The cache deliberately does not
// single-flight loaders.
package tagcache
