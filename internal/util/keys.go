package util

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// maxPlainKeyLen bounds composed keys; longer ones collapse to a hash so key
// size stays independent of parameter size.
const maxPlainKeyLen = 128

// ComposeKey returns a deterministic key "<prefix>:<p1>:<p2>:..." for the
// given semantic parameters. Parameters are rendered with %v, so equal values
// always produce the same key. Oversized compositions are replaced by
// "<prefix>:<16 hex chars of sha256>" to keep keys short and opaque.
func ComposeKey(prefix string, params ...any) string {
	if len(params) == 0 {
		return prefix
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, prefix)
	for _, p := range params {
		parts = append(parts, sanitize(fmt.Sprintf("%v", p)))
	}
	key := strings.Join(parts, ":")
	if len(key) <= maxPlainKeyLen {
		return key
	}
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s:%x", prefix, sum)[:len(prefix)+1+16]
}

// sanitize keeps the ":" separator unambiguous inside composed keys.
func sanitize(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
