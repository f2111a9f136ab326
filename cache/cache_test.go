package cache_test

import (
	"testing"

	"github.com/coregx/regexlint/cache"
)

func TestMemoryStoreSetGet(t *testing.T) {
	s := cache.NewMemoryStore()
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("Get(missing) reported ok, want not found")
	}
	s.Set("k", 42)
	v, ok := s.Get("k")
	if !ok || v.(int) != 42 {
		t.Fatalf("Get(k) = %v, %v, want 42, true", v, ok)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := cache.NewMemoryStore()
	s.Set("k", "v")
	s.Delete("k")
	if _, ok := s.Get("k"); ok {
		t.Fatalf("Get(k) after Delete reported ok")
	}
}

func TestKeyStableForSameInputs(t *testing.T) {
	a := cache.Key("abc", 1, "opt1")
	b := cache.Key("abc", 1, "opt1")
	if a != b {
		t.Fatalf("Key not stable: %q != %q", a, b)
	}
}

func TestKeyDiffersOnPatternFlagsOrOptions(t *testing.T) {
	base := cache.Key("abc", 1, "opt1")
	cases := []string{
		cache.Key("abd", 1, "opt1"),
		cache.Key("abc", 2, "opt1"),
		cache.Key("abc", 1, "opt2"),
	}
	for _, c := range cases {
		if c == base {
			t.Fatalf("Key collided with base: %q", c)
		}
	}
}
