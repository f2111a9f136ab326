package nfa

import (
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/parser"
	"github.com/coregx/regexlint/token"
)

func mustParse(t *testing.T, pattern string, flags ast.Flags) *ast.Node {
	t.Helper()
	lx := lexer.New([]byte(pattern), flags)
	stream := token.NewStream(lx)
	p := parser.New(stream, flags, '/', len(pattern), parser.DefaultLimits())
	n, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	return n
}

// accepts runs a small breadth-first simulation of n against s, the
// simplest possible oracle for builder correctness without a matcher
// package to borrow one from.
func accepts(n *NFA, s string) bool {
	cur := n.StartClosure()
	for _, r := range s {
		next := n.Step(cur, r)
		if len(next) == 0 {
			return false
		}
		cur = n.EpsilonClosure(next)
	}
	return n.AnyMatch(cur)
}

func TestBuildLiteralSequence(t *testing.T) {
	automaton, err := Build(mustParse(t, "abc", 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !accepts(automaton, "abc") {
		t.Error("expected match for \"abc\"")
	}
	if accepts(automaton, "abd") || accepts(automaton, "ab") || accepts(automaton, "abcd") {
		t.Error("unexpected match")
	}
}

func TestBuildAlternation(t *testing.T) {
	automaton, err := Build(mustParse(t, "cat|dog", 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, s := range []string{"cat", "dog"} {
		if !accepts(automaton, s) {
			t.Errorf("expected match for %q", s)
		}
	}
	if accepts(automaton, "cow") {
		t.Error("unexpected match for \"cow\"")
	}
}

func TestBuildStarQuantifier(t *testing.T) {
	automaton, err := Build(mustParse(t, "ab*c", 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, s := range []string{"ac", "abc", "abbbbc"} {
		if !accepts(automaton, s) {
			t.Errorf("expected match for %q", s)
		}
	}
	if accepts(automaton, "ab") || accepts(automaton, "bc") {
		t.Error("unexpected match")
	}
}

func TestBuildBoundedQuantifier(t *testing.T) {
	automaton, err := Build(mustParse(t, "a{2,3}", 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if accepts(automaton, "a") {
		t.Error("\"a\" should not match a{2,3}")
	}
	if !accepts(automaton, "aa") || !accepts(automaton, "aaa") {
		t.Error("expected match for \"aa\"/\"aaa\"")
	}
	if accepts(automaton, "aaaa") {
		t.Error("\"aaaa\" should not match a{2,3}")
	}
}

func TestBuildCharClass(t *testing.T) {
	automaton, err := Build(mustParse(t, "[a-c0-9]", 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, s := range []string{"a", "b", "c", "5"} {
		if !accepts(automaton, s) {
			t.Errorf("expected match for %q", s)
		}
	}
	if accepts(automaton, "d") {
		t.Error("unexpected match for \"d\"")
	}
}

func TestBuildNegatedCharClass(t *testing.T) {
	automaton, err := Build(mustParse(t, "[^a-c]", 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if accepts(automaton, "a") {
		t.Error("negated class should not match \"a\"")
	}
	if !accepts(automaton, "z") {
		t.Error("negated class should match \"z\"")
	}
}

func TestBuildCaseInsensitiveLiteral(t *testing.T) {
	automaton, err := Build(mustParse(t, "abc", ast.FlagI))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, s := range []string{"abc", "ABC", "AbC"} {
		if !accepts(automaton, s) {
			t.Errorf("expected case-insensitive match for %q", s)
		}
	}
}

func TestBuildNonCapturingAndAtomicGroupsTransparent(t *testing.T) {
	for _, pattern := range []string{"(?:abc)", "(?>abc)", "(abc)"} {
		automaton, err := Build(mustParse(t, pattern, 0))
		if err != nil {
			t.Fatalf("Build(%q): %v", pattern, err)
		}
		if !accepts(automaton, "abc") {
			t.Errorf("%q: expected match for \"abc\"", pattern)
		}
	}
}

func TestBuildRejectsLookaround(t *testing.T) {
	_, err := Build(mustParse(t, "(?=abc)", 0))
	cerr, ok := err.(*ComplexityError)
	if !ok {
		t.Fatalf("expected *ComplexityError, got %T: %v", err, err)
	}
	if cerr.Code != CodeLookaround {
		t.Errorf("expected CodeLookaround, got %s", cerr.Code)
	}
}

func TestBuildRejectsBackreference(t *testing.T) {
	_, err := Build(mustParse(t, `(a)\1`, 0))
	cerr, ok := err.(*ComplexityError)
	if !ok {
		t.Fatalf("expected *ComplexityError, got %T: %v", err, err)
	}
	if cerr.Code != CodeBackref {
		t.Errorf("expected CodeBackref, got %s", cerr.Code)
	}
}

func TestBuildRejectsConditional(t *testing.T) {
	_, err := Build(mustParse(t, "(?(1)a|b)", 0))
	cerr, ok := err.(*ComplexityError)
	if !ok {
		t.Fatalf("expected *ComplexityError, got %T: %v", err, err)
	}
	if cerr.Code != CodeConditional {
		t.Errorf("expected CodeConditional, got %s", cerr.Code)
	}
}

func TestBuildRejectsSubroutine(t *testing.T) {
	_, err := Build(mustParse(t, `(?<x>a)\g<x>`, 0))
	cerr, ok := err.(*ComplexityError)
	if !ok {
		t.Fatalf("expected *ComplexityError, got %T: %v", err, err)
	}
	if cerr.Code != CodeSubroutine {
		t.Errorf("expected CodeSubroutine, got %s", cerr.Code)
	}
}

func TestBuildRejectsWordBoundaryAssertion(t *testing.T) {
	_, err := Build(mustParse(t, `\bword\b`, 0))
	cerr, ok := err.(*ComplexityError)
	if !ok {
		t.Fatalf("expected *ComplexityError, got %T: %v", err, err)
	}
	if cerr.Code != CodeAssertion {
		t.Errorf("expected CodeAssertion, got %s", cerr.Code)
	}
}

func TestBuildRejectsKeep(t *testing.T) {
	_, err := Build(mustParse(t, `a\Kb`, 0))
	cerr, ok := err.(*ComplexityError)
	if !ok {
		t.Fatalf("expected *ComplexityError, got %T: %v", err, err)
	}
	if cerr.Code != CodeKeep {
		t.Errorf("expected CodeKeep, got %s", cerr.Code)
	}
}

func TestBuildDotExcludesNewlineUnlessDotAll(t *testing.T) {
	plain, err := Build(mustParse(t, ".", 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if accepts(plain, "\n") {
		t.Error("\".\" should not match newline without dotall")
	}
	dotAll, err := Build(mustParse(t, ".", ast.FlagS))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !accepts(dotAll, "\n") {
		t.Error("\".\" should match newline under dotall")
	}
}

func TestBuildUnicodeProperty(t *testing.T) {
	automaton, err := Build(mustParse(t, `\p{L}`, 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !accepts(automaton, "a") {
		t.Error(`expected \p{L} to match "a"`)
	}
	if accepts(automaton, "5") {
		t.Error(`expected \p{L} not to match "5"`)
	}
}

func TestBuildRejectsMatchingVerb(t *testing.T) {
	_, err := Build(mustParse(t, "a(*FAIL)", 0))
	cerr, ok := err.(*ComplexityError)
	if !ok {
		t.Fatalf("expected *ComplexityError, got %T: %v", err, err)
	}
	if cerr.Code != CodeAssertion {
		t.Errorf("expected CodeAssertion, got %s", cerr.Code)
	}
}

func TestBuildAllowsPatternStartOptionVerb(t *testing.T) {
	automaton, err := Build(mustParse(t, "(*UTF)abc", 0))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !accepts(automaton, "abc") {
		t.Error("expected match for \"abc\"")
	}
}

func TestBuildRejectsUnknownUnicodeProperty(t *testing.T) {
	_, err := Build(mustParse(t, `\p{Bogus}`, 0))
	cerr, ok := err.(*ComplexityError)
	if !ok {
		t.Fatalf("expected *ComplexityError, got %T: %v", err, err)
	}
	if cerr.Code != CodeClassItem {
		t.Errorf("expected CodeClassItem, got %s", cerr.Code)
	}
}
