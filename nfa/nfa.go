// Package nfa builds a finite automaton over runes from a *ast.Node tree.
//
// Unlike the teacher's byte-level execution NFA, this one is never run as a
// matcher: no input is ever fed through it. It exists only so the automata
// and redos packages can ask structural questions of a pattern — is this
// subtree empty, are two subtrees equivalent, what is the shortest string a
// state set accepts — by walking the automaton itself rather than executing
// it against text (spec.md's Non-goals exclude shipping a matcher runtime).
// Transitions are labeled with whole Unicode rune ranges instead of byte
// ranges: there is no throughput budget here to justify the teacher's
// byte-class alphabet reduction.
package nfa

import (
	"fmt"

	"github.com/coregx/regexlint/internal/sparse"
)

// StateID indexes into NFA.States.
type StateID int32

// InvalidState is never a valid index into NFA.States.
const InvalidState StateID = -1

// RuneRange is an inclusive [Lo, Hi] interval of code points.
type RuneRange struct {
	Lo, Hi rune
}

// Contains reports whether r falls within the range.
func (rr RuneRange) Contains(r rune) bool {
	return r >= rr.Lo && r <= rr.Hi
}

// Trans is a single consuming transition: any rune in RuneRange advances to
// To.
type Trans struct {
	RuneRange
	To StateID
}

// State is one automaton node: zero or more consuming Trans, zero or more
// epsilon successors, and a Match flag marking it as accepting.
type State struct {
	Trans []Trans
	Eps   []StateID
	Match bool
}

// NFA is a Thompson-style construction over runes, rooted at Start.
type NFA struct {
	States []State
	Start  StateID
}

func newNFA() *NFA {
	return &NFA{Start: InvalidState}
}

// newState appends a fresh, empty state and returns its id.
func (n *NFA) newState() StateID {
	n.States = append(n.States, State{})
	return StateID(len(n.States) - 1)
}

func (n *NFA) addTrans(from StateID, lo, hi rune, to StateID) {
	s := &n.States[from]
	s.Trans = append(s.Trans, Trans{RuneRange: RuneRange{Lo: lo, Hi: hi}, To: to})
}

func (n *NFA) addEps(from, to StateID) {
	n.States[from].Eps = append(n.States[from].Eps, to)
}

// EpsilonClosure returns the set of states reachable from seed by following
// only epsilon transitions, including seed itself. The universe of
// possible StateIDs is exactly len(n.States), known up front, which is the
// case internal/sparse.SparseSet is built for.
func (n *NFA) EpsilonClosure(seed []StateID) *sparse.SparseSet {
	closure := sparse.NewSparseSet(uint32(len(n.States)))
	stack := append([]StateID(nil), seed...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if closure.Contains(uint32(id)) {
			continue
		}
		closure.Insert(uint32(id))
		for _, next := range n.States[id].Eps {
			if !closure.Contains(uint32(next)) {
				stack = append(stack, next)
			}
		}
	}
	return closure
}

// Step consumes one rune from every state in from, returning the (not yet
// epsilon-closed) set of states reached.
func (n *NFA) Step(from *sparse.SparseSet, r rune) []StateID {
	var out []StateID
	seen := sparse.NewSparseSet(uint32(len(n.States)))
	for _, id := range from.Values() {
		for _, t := range n.States[id].Trans {
			if t.Contains(r) && !seen.Contains(uint32(t.To)) {
				seen.Insert(uint32(t.To))
				out = append(out, t.To)
			}
		}
	}
	return out
}

// AnyMatch reports whether any state in set is accepting.
func (n *NFA) AnyMatch(set *sparse.SparseSet) bool {
	for _, id := range set.Values() {
		if n.States[id].Match {
			return true
		}
	}
	return false
}

// StartClosure is a convenience for EpsilonClosure([]StateID{n.Start}).
func (n *NFA) StartClosure() *sparse.SparseSet {
	return n.EpsilonClosure([]StateID{n.Start})
}

// String returns a human-readable summary, grounded on the teacher's NFA
// debugging format.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d}", len(n.States), n.Start)
}
