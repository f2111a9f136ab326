package automata

import (
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/nfa"
	"github.com/coregx/regexlint/parser"
	"github.com/coregx/regexlint/token"
)

func compile(t *testing.T, pattern string) *Automaton {
	t.Helper()
	lx := lexer.New([]byte(pattern), 0)
	stream := token.NewStream(lx)
	p := parser.New(stream, 0, '/', len(pattern), parser.DefaultLimits())
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	a, err := Compile(root)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return a
}

func TestIntersectsOverlappingAlternation(t *testing.T) {
	a := compile(t, "cat|dog")
	b := compile(t, "dog|fish")
	if !Intersects(a, b) {
		t.Error("expected overlap on \"dog\"")
	}
}

func TestIntersectsDisjointPatterns(t *testing.T) {
	a := compile(t, "[a-m]+")
	b := compile(t, "[n-z]+")
	if Intersects(a, b) {
		t.Error("expected no overlap between disjoint ranges")
	}
}

func TestSubsetAndEquivalent(t *testing.T) {
	narrow := compile(t, "[0-9]")
	wide := compile(t, "[0-9a-z]")
	if !Subset(narrow, wide) {
		t.Error("expected [0-9] to be a subset of [0-9a-z]")
	}
	if Subset(wide, narrow) {
		t.Error("did not expect [0-9a-z] to be a subset of [0-9]")
	}

	a := compile(t, "(a|b)c")
	b := compile(t, "ac|bc")
	if !Equivalent(a, b) {
		t.Error("expected (a|b)c to be equivalent to ac|bc")
	}
}

func TestShortestWord(t *testing.T) {
	a := compile(t, "a{4,6}")
	w, ok := ShortestWord(a)
	if !ok || w != "aaaa" {
		t.Errorf("expected shortest word \"aaaa\", got %q (ok=%v)", w, ok)
	}
}

func TestIsEmptyDetectsUnsatisfiableClass(t *testing.T) {
	a := compile(t, "[^\x00-\U0010FFFF]")
	if !IsEmpty(a) {
		t.Error("expected a fully-negated class to accept nothing")
	}
}

func TestCompilePropagatesComplexityError(t *testing.T) {
	_, err := Compile(mustParseRoot(t, "(?=abc)"))
	if _, ok := err.(*nfa.ComplexityError); !ok {
		t.Fatalf("expected *nfa.ComplexityError, got %T: %v", err, err)
	}
}

func mustParseRoot(t *testing.T, pattern string) *ast.Node {
	t.Helper()
	lx := lexer.New([]byte(pattern), 0)
	stream := token.NewStream(lx)
	p := parser.New(stream, 0, '/', len(pattern), parser.DefaultLimits())
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	return root
}
