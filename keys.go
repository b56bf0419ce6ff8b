package tagcache

import "github.com/unkn0wn-root/tagcache/internal/util"

// GenerateKey builds a deterministic cache key from a prefix and semantic
// parameters, so repeated calls for the same logical query hit the same
// slot. Oversized keys are collapsed to a short hash.
func GenerateKey(prefix string, params ...any) string {
	return util.ComposeKey(prefix, params...)
}

// FileListKey is the key for the file listing matching a search parameter.
func FileListKey(searchParam string) string {
	return util.ComposeKey("files", searchParam)
}

// CategoryListKey is the key for the category set.
func CategoryListKey() string {
	return util.ComposeKey("categories", "all")
}

// ConfigListKey is the key for the configuration set.
func ConfigListKey() string {
	return util.ComposeKey("configurations", "all")
}
