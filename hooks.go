package tagcache

// Invalidation reasons passed to Hooks.Invalidated.
const (
	// ReasonClear is reported when Clear drops the whole cache.
	ReasonClear = "clear"
	// ReasonTagPrefix prefixes per-tag invalidations, e.g. "tag:files".
	ReasonTagPrefix = "tag:"
)

// Hooks are lightweight callbacks for cache lifecycle events, fire-and-forget
// telemetry for external consumers. Implementations MUST be cheap and
// non-blocking; the cache calls them on hot paths (wrap with hooks/async if
// the sink can stall). Hooks are always invoked outside the cache's internal
// lock.
type Hooks interface {
	// ItemSet fires after an entry is created or replaced.
	ItemSet(key string)

	// ItemRemoved fires after an explicit Remove of an existing key, and for
	// each entry dropped by expiry or sweep.
	ItemRemoved(key string)

	// Invalidated fires after a group invalidation with the number of
	// entries removed. reason is ReasonClear or ReasonTagPrefix+tag.
	Invalidated(reason string, removed int)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) ItemSet(string)          {}
func (NopHooks) ItemRemoved(string)      {}
func (NopHooks) Invalidated(string, int) {}
