package tagcache

import (
	"strings"
	"testing"
)

func TestGenerateKeyDeterministic(t *testing.T) {
	a := GenerateKey("files", "query", 2, true)
	b := GenerateKey("files", "query", 2, true)
	if a != b {
		t.Fatalf("same params produced %q and %q", a, b)
	}
	if a == GenerateKey("files", "query", 3, true) {
		t.Fatal("different params produced identical keys")
	}
	if a == GenerateKey("other", "query", 2, true) {
		t.Fatal("different prefixes produced identical keys")
	}
}

func TestGenerateKeySeparatorSafe(t *testing.T) {
	// a parameter containing the separator must not collide with two params
	a := GenerateKey("p", "x:y")
	b := GenerateKey("p", "x", "y")
	if a == b {
		t.Fatalf("separator collision: %q == %q", a, b)
	}
}

func TestGenerateKeyLongParamsHashed(t *testing.T) {
	long := strings.Repeat("q", 500)
	k := GenerateKey("files", long)
	if len(k) > len("files")+1+16 {
		t.Fatalf("long key not collapsed: %d chars", len(k))
	}
	if !strings.HasPrefix(k, "files:") {
		t.Fatalf("hashed key lost its prefix: %q", k)
	}
	if k != GenerateKey("files", long) {
		t.Fatal("hashed key not deterministic")
	}
}

func TestNamedKeysDistinct(t *testing.T) {
	keys := map[string]bool{
		FileListKey(""):       true,
		FileListKey("search"): true,
		CategoryListKey():     true,
		ConfigListKey():       true,
	}
	if len(keys) != 4 {
		t.Fatalf("named keys collide: %v", keys)
	}
	if FileListKey("a") == FileListKey("b") {
		t.Fatal("different search params map to the same file list key")
	}
}
