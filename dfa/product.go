package dfa

import (
	"fmt"
	"sort"

	"github.com/coregx/regexlint/internal/sparse"
	"github.com/coregx/regexlint/nfa"
)

// Complement returns a DFA accepting exactly the runes strings d rejects,
// over the full Unicode alphabet. Every DFA here is already total (missing
// transitions implicitly lead to DeadState), so complementing is just
// flipping each state's Match bit.
func Complement(d *DFA) *DFA {
	out := &DFA{Start: d.Start, States: make([]State, len(d.States))}
	for i, s := range d.States {
		out.States[i] = State{Trans: s.Trans, Match: !s.Match}
	}
	return out
}

// acceptMode picks which pair of Match bits counts as accepting in the
// product construction Intersect/Union/Difference below.
type acceptMode func(aMatch, bMatch bool) bool

// Intersect returns a DFA accepting strings both a and b accept.
func Intersect(a, b *DFA) *DFA {
	return product(a, b, func(x, y bool) bool { return x && y })
}

// Union returns a DFA accepting strings either a or b accepts.
func Union(a, b *DFA) *DFA {
	return product(a, b, func(x, y bool) bool { return x || y })
}

// Difference returns a DFA accepting strings a accepts but b does not,
// used by the optimizer's equivalence check (a rewrite is safe iff its
// Difference with the original, and the original's Difference with it,
// are both empty).
func Difference(a, b *DFA) *DFA {
	return product(a, b, func(x, y bool) bool { return x && !y })
}

// product builds the standard cross-product automaton over (a-state,
// b-state) pairs, deciding acceptance per mode.
func product(a, b *DFA, mode acceptMode) *DFA {
	out := newDFA()
	type pair struct{ a, b StateID }
	seen := map[pair]StateID{}

	start := pair{a.Start, b.Start}
	startID := out.newState(mode(a.States[a.Start].Match, b.States[b.Start].Match))
	seen[start] = startID
	out.Start = startID

	queue := []pair{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curID := seen[cur]

		boundaries := pairCriticalPoints(a, b, cur.a, cur.b)
		var trans []Trans
		for i := 0; i+1 < len(boundaries); i++ {
			lo, hi := boundaries[i], boundaries[i+1]-1
			if lo > hi {
				continue
			}
			next := pair{a.step(cur.a, lo), b.step(cur.b, lo)}
			id, ok := seen[next]
			if !ok {
				id = out.newState(mode(a.States[next.a].Match, b.States[next.b].Match))
				seen[next] = id
				queue = append(queue, next)
			}
			trans = append(trans, Trans{RuneRange: nfa.RuneRange{Lo: lo, Hi: hi}, To: id})
		}
		out.States[curID].Trans = coalesceTrans(trans)
	}

	return out
}

func pairCriticalPoints(a, b *DFA, aID, bID StateID) []rune {
	set := map[rune]bool{0: true, 0x10FFFF + 1: true}
	for _, t := range a.States[aID].Trans {
		set[t.Lo], set[t.Hi+1] = true, true
	}
	for _, t := range b.States[bID].Trans {
		set[t.Lo], set[t.Hi+1] = true, true
	}
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsEmpty reports whether d accepts no strings at all: no Match state is
// reachable from Start.
func IsEmpty(d *DFA) bool {
	return ShortestWitness(d) == nil
}

// ShortestWitness returns the shortest string d accepts, or nil if d
// accepts nothing — a BFS over states, used for ReDoS confirmed mode and
// the optimizer's "rewrite changed the language" counterexample.
func ShortestWitness(d *DFA) []rune {
	if d.States[d.Start].Match {
		return []rune{}
	}
	type step struct {
		id   StateID
		path []rune
	}
	visited := sparse.NewSparseSet(uint32(len(d.States)))
	visited.Insert(uint32(d.Start))
	queue := []step{{id: d.Start, path: nil}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range d.States[cur.id].Trans {
			if visited.Contains(uint32(t.To)) {
				continue
			}
			visited.Insert(uint32(t.To))
			path := append(append([]rune(nil), cur.path...), t.Lo)
			if d.States[t.To].Match {
				return path
			}
			queue = append(queue, step{id: t.To, path: path})
		}
	}
	return nil
}

// String returns a human-readable summary.
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d, start: %d}", len(d.States), d.Start)
}
