// Package automata is the facade over nfa/dfa that answers whole-language
// questions about a parsed pattern subtree: does it overlap with another,
// is one a subset of the other, are two subtrees equivalent, and what is
// the shortest string either accepts. redos' confirmed mode and the
// optimizer's rewrite-verification mode are both built entirely on these
// four operations; neither package talks to nfa/dfa directly.
package automata

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/dfa"
	"github.com/coregx/regexlint/nfa"
)

// Automaton is a built, minimized automaton for one pattern subtree,
// ready for the operations below.
type Automaton struct {
	dfa *dfa.DFA
}

// Compile builds an Automaton from n, returning n's *nfa.ComplexityError
// unchanged when n contains a construct outside the nfa package's scope.
func Compile(n *ast.Node) (*Automaton, error) {
	built, err := nfa.Build(n)
	if err != nil {
		return nil, err
	}
	d, err := dfa.Build(built, 0)
	if err != nil {
		return nil, err
	}
	return &Automaton{dfa: dfa.Minimize(d)}, nil
}

// Intersects reports whether a and b accept any string in common.
func Intersects(a, b *Automaton) bool {
	return !dfa.IsEmpty(dfa.Intersect(a.dfa, b.dfa))
}

// Subset reports whether every string a accepts is also accepted by b.
func Subset(a, b *Automaton) bool {
	return dfa.IsEmpty(dfa.Difference(a.dfa, b.dfa))
}

// Equivalent reports whether a and b accept exactly the same language.
func Equivalent(a, b *Automaton) bool {
	return Subset(a, b) && Subset(b, a)
}

// Difference returns an Automaton accepting exactly the strings a accepts
// that b does not. Combined with ShortestWord, this gives callers a
// genuine "here's a string only a accepts" counter-example instead of
// just a's shortest string overall — what the facade's Compare operation
// needs to report a witness when a is not a subset of b.
func Difference(a, b *Automaton) *Automaton {
	return &Automaton{dfa: dfa.Difference(a.dfa, b.dfa)}
}

// ShortestWord returns the shortest string a accepts, and whether a
// accepts anything at all.
func ShortestWord(a *Automaton) (string, bool) {
	w := dfa.ShortestWitness(a.dfa)
	if w == nil {
		return "", false
	}
	return string(w), true
}

// IsEmpty reports whether a accepts no strings.
func IsEmpty(a *Automaton) bool {
	return dfa.IsEmpty(a.dfa)
}

// Accepts reports whether a accepts s exactly (the whole string, not a
// substring search — this package never searches, only classifies).
func Accepts(a *Automaton, s string) bool {
	return a.dfa.Accepts(s)
}
