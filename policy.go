package tagcache

import (
	"fmt"
	"time"
)

// Tags used by the named policies and the state-change invalidator. Callers
// may attach arbitrary additional tags at Set time.
const (
	TagFiles          = "files"
	TagCategories     = "categories"
	TagConfigurations = "configurations"

	// TagUIData groups query-shaped, search-dependent views. It is distinct
	// from TagFiles: a search-parameter change invalidates derived views
	// without the file collection itself having changed.
	TagUIData = "ui-data"
)

// Priority is an advisory eviction-order hint carried on entries. The cache
// performs no priority-based eviction under memory pressure; the value is
// metadata for operators and future policies.
type Priority int8

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	default:
		return fmt.Sprintf("priority(%d)", int8(p))
	}
}

// Policy is an expiration/priority/tag preset bound to an entry at Set time.
//
// AbsoluteTTL caps the entry's lifetime from the moment it is stored,
// regardless of access. SlidingTTL expires the entry when it has not been
// read for that long; each successful read pushes the sliding deadline
// forward. When both are set, the absolute deadline always wins. A zero
// duration disables the corresponding bound.
//
// The zero Policy passed to Set or GetOrLoad means "use the cache's
// DefaultPolicy".
type Policy struct {
	AbsoluteTTL time.Duration
	SlidingTTL  time.Duration
	Priority    Priority
	Tags        []string
}

func (p Policy) isZero() bool {
	return p.AbsoluteTTL == 0 && p.SlidingTTL == 0 && p.Priority == 0 && len(p.Tags) == 0
}

func (p Policy) validate() error {
	if p.AbsoluteTTL < 0 {
		return fmt.Errorf("negative absolute ttl %v", p.AbsoluteTTL)
	}
	if p.SlidingTTL < 0 {
		return fmt.Errorf("negative sliding ttl %v", p.SlidingTTL)
	}
	return nil
}

// Named policy presets for the data families the hosting application caches.
var (
	// PolicyFileList covers search-shaped file listings: short-lived and
	// access-sensitive. Tagged both "files" and "ui-data" so it is dropped
	// when either the file collection or the active search changes.
	PolicyFileList = Policy{
		AbsoluteTTL: 10 * time.Minute,
		SlidingTTL:  3 * time.Minute,
		Priority:    PriorityHigh,
		Tags:        []string{TagFiles, TagUIData},
	}

	// PolicyCategories covers the category set, which changes rarely.
	PolicyCategories = Policy{
		AbsoluteTTL: 2 * time.Hour,
		SlidingTTL:  30 * time.Minute,
		Priority:    PriorityHigh,
		Tags:        []string{TagCategories},
	}

	// PolicyConfigurations covers configuration sets.
	PolicyConfigurations = Policy{
		AbsoluteTTL: 30 * time.Minute,
		SlidingTTL:  10 * time.Minute,
		Priority:    PriorityNormal,
		Tags:        []string{TagConfigurations},
	}
)

// Policy preset names accepted by PolicyNamed.
const (
	PolicyNameFileList       = "file-list"
	PolicyNameCategories     = "categories"
	PolicyNameConfigurations = "configurations"
)

var policyRegistry = map[string]Policy{
	PolicyNameFileList:       PolicyFileList,
	PolicyNameCategories:     PolicyCategories,
	PolicyNameConfigurations: PolicyConfigurations,
}

// PolicyNamed returns the named preset. The registry is read-only after
// package initialization; looking up an unknown name is a programming error
// and panics.
func PolicyNamed(name string) Policy {
	p, ok := policyRegistry[name]
	if !ok {
		panic(fmt.Sprintf("tagcache: unknown policy %q", name))
	}
	return p
}
