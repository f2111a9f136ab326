package literal_test

import (
	"testing"

	"github.com/coregx/regexlint/literal"
)

func TestExtractCompleteForAlternationOfLiterals(t *testing.T) {
	root := mustParse(t, "foo|bar|baz")
	ls := literal.Extract(root, literal.DefaultConfig())
	if !ls.Complete {
		t.Fatalf("Extract(foo|bar|baz).Complete = false, want true")
	}
	if ls.Prefixes.Len() != 3 {
		t.Fatalf("Prefixes.Len() = %d, want 3", ls.Prefixes.Len())
	}
}

func TestExtractNotCompleteWhenTrailingWildcard(t *testing.T) {
	root := mustParse(t, "hello.*")
	ls := literal.Extract(root, literal.DefaultConfig())
	if ls.Complete {
		t.Fatalf("Extract(hello.*).Complete = true, want false (prefix is inexact)")
	}
}

func TestExtractNotCompleteWhenEmptyPrefixes(t *testing.T) {
	root := mustParse(t, ".*")
	ls := literal.Extract(root, literal.DefaultConfig())
	if ls.Complete {
		t.Fatalf("Extract(.*).Complete = true, want false (no prefix requirement at all)")
	}
}

func TestLiteralSetContainsBelowAutomatonThreshold(t *testing.T) {
	root := mustParse(t, "cat|dog|bird")
	ls := literal.Extract(root, literal.DefaultConfig())
	if !ls.Complete {
		t.Fatalf("expected Complete LiteralSet for cat|dog|bird")
	}
	if !ls.Contains([]byte("cat")) {
		t.Error(`Contains("cat") = false, want true`)
	}
	if ls.Contains([]byte("catfish")) {
		t.Error(`Contains("catfish") = true, want false (not an exact member)`)
	}
	if ls.Contains([]byte("fish")) {
		t.Error(`Contains("fish") = true, want false`)
	}
}

func TestLiteralSetAutomatonUnusedBelowThreshold(t *testing.T) {
	root := mustParse(t, "cat|dog")
	ls := literal.Extract(root, literal.DefaultConfig())
	if _, ok := ls.Automaton(); ok {
		t.Fatalf("Automaton() built for a 2-member set, want no build below the threshold")
	}
}

func TestLiteralSetAutomatonBuildsAtThreshold(t *testing.T) {
	pattern := "w0|w1|w2|w3|w4|w5|w6|w7"
	root := mustParse(t, pattern)
	ls := literal.Extract(root, literal.DefaultConfig())
	if ls.Prefixes.Len() < 8 {
		t.Fatalf("test setup: expected >=8 prefixes, got %d", ls.Prefixes.Len())
	}
	auto, ok := ls.Automaton()
	if !ok || auto == nil {
		t.Fatalf("Automaton() = (%v, %v), want a built automaton at 8 members", auto, ok)
	}
	if !ls.Contains([]byte("w3")) {
		t.Error(`Contains("w3") = false, want true via automaton path`)
	}
	if ls.Contains([]byte("w9")) {
		t.Error(`Contains("w9") = true, want false via automaton path`)
	}
}

func TestLiteralSetContainsFalseWhenNotComplete(t *testing.T) {
	root := mustParse(t, "abc.*")
	ls := literal.Extract(root, literal.DefaultConfig())
	if ls.Contains([]byte("abc")) {
		t.Error(`Contains("abc") = true for a non-Complete set, want false`)
	}
}
