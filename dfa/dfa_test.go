package dfa

import (
	"testing"

	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/nfa"
	"github.com/coregx/regexlint/parser"
	"github.com/coregx/regexlint/token"
)

func buildDFA(t *testing.T, pattern string) *DFA {
	t.Helper()
	lx := lexer.New([]byte(pattern), 0)
	stream := token.NewStream(lx)
	p := parser.New(stream, 0, '/', len(pattern), parser.DefaultLimits())
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	n, err := nfa.Build(root)
	if err != nil {
		t.Fatalf("nfa.Build(%q): %v", pattern, err)
	}
	d, err := Build(n, 0)
	if err != nil {
		t.Fatalf("dfa.Build(%q): %v", pattern, err)
	}
	return d
}

func TestBuildAndAccept(t *testing.T) {
	d := buildDFA(t, "ab*c")
	for _, s := range []string{"ac", "abc", "abbbc"} {
		if !d.Accepts(s) {
			t.Errorf("expected accept %q", s)
		}
	}
	for _, s := range []string{"a", "ab", "abd"} {
		if d.Accepts(s) {
			t.Errorf("unexpected accept %q", s)
		}
	}
}

func TestMinimizePreservesLanguage(t *testing.T) {
	d := buildDFA(t, "(cat|car|cap)")
	m := Minimize(d)
	for _, s := range []string{"cat", "car", "cap", "can", "ca", ""} {
		if d.Accepts(s) != m.Accepts(s) {
			t.Errorf("minimize changed acceptance of %q: before=%v after=%v", s, d.Accepts(s), m.Accepts(s))
		}
	}
}

func TestMinimizeReducesStateCount(t *testing.T) {
	d := buildDFA(t, "(cat|cas)")
	m := Minimize(d)
	if len(m.States) >= len(d.States) {
		t.Errorf("expected minimization to reduce state count, got %d -> %d", len(d.States), len(m.States))
	}
}

func TestIntersectAndEmptiness(t *testing.T) {
	a := buildDFA(t, "[a-z]+")
	b := buildDFA(t, "[0-9]+")
	inter := Intersect(a, b)
	if !IsEmpty(inter) {
		t.Error("expected [a-z]+ and [0-9]+ to be disjoint")
	}

	c := buildDFA(t, "a[a-z]*")
	overlap := Intersect(a, c)
	if IsEmpty(overlap) {
		t.Error("expected [a-z]+ and a[a-z]* to overlap")
	}
}

func TestComplement(t *testing.T) {
	d := buildDFA(t, "abc")
	comp := Complement(d)
	if comp.Accepts("abc") {
		t.Error("complement should not accept \"abc\"")
	}
	if !comp.Accepts("xyz") {
		t.Error("complement should accept \"xyz\"")
	}
}

func TestShortestWitness(t *testing.T) {
	d := buildDFA(t, "a{3,5}")
	w := ShortestWitness(d)
	if len(w) != 3 {
		t.Errorf("expected shortest witness length 3, got %d (%q)", len(w), string(w))
	}
}

func TestDifferenceDetectsNonEquivalence(t *testing.T) {
	a := buildDFA(t, "a|b")
	b := buildDFA(t, "a|b|c")
	if IsEmpty(Difference(b, a)) {
		t.Error("expected b to accept something a does not")
	}
	if !IsEmpty(Difference(a, b)) {
		t.Error("expected a to accept nothing b does not")
	}
}

func TestStateLimitExceeded(t *testing.T) {
	lx := lexer.New([]byte("(a|b){0,50}"), 0)
	stream := token.NewStream(lx)
	p := parser.New(stream, 0, '/', len("(a|b){0,50}"), parser.DefaultLimits())
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n, err := nfa.Build(root)
	if err != nil {
		t.Fatalf("nfa.Build: %v", err)
	}
	_, err = Build(n, 2)
	derr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if derr.Kind != StateLimitExceeded {
		t.Errorf("expected StateLimitExceeded, got %s", derr.Kind)
	}
}
