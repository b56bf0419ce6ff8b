// Package sloghooks logs cache events through log/slog with per-event
// sampling, so high-frequency events (every Set on a hot path) do not flood
// the log while invalidations stay fully visible.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/tagcache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ItemSetEvery     uint64
	ItemRemovedEvery uint64
	// Optional key redactor. Defaults to a SHA-256 prefix so raw keys
	// (which may embed search terms) never reach the log.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	setCtr     atomic.Uint64
	removedCtr atomic.Uint64
}

var _ tagcache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	if opts.Redact == nil {
		opts.Redact = hashPrefix
	}
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) ItemSet(key string) {
	if !sample(&h.setCtr, h.opts.ItemSetEvery) {
		return
	}
	h.l.Debug("cache item set", slog.String("key", h.opts.Redact(key)))
}

func (h *Hooks) ItemRemoved(key string) {
	if !sample(&h.removedCtr, h.opts.ItemRemovedEvery) {
		return
	}
	h.l.Debug("cache item removed", slog.String("key", h.opts.Redact(key)))
}

// Invalidations are rare and high-signal; never sampled.
func (h *Hooks) Invalidated(reason string, removed int) {
	h.l.Info("cache invalidated",
		slog.String("reason", reason),
		slog.Int("removed", removed))
}

func sample(ctr *atomic.Uint64, every uint64) bool {
	if every <= 1 {
		return true
	}
	return ctr.Add(1)%every == 1
}

func hashPrefix(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:12]
}
