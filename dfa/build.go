package dfa

import (
	"fmt"
	"sort"

	"github.com/coregx/regexlint/internal/sparse"
	"github.com/coregx/regexlint/nfa"
)

// DefaultMaxStates bounds subset construction, guarding against the
// exponential blowup a pathological NFA can in principle trigger.
const DefaultMaxStates = 20000

// Build runs subset construction over n, producing a deterministic
// automaton with at most maxStates states (pass 0 for DefaultMaxStates).
func Build(n *nfa.NFA, maxStates int) (*DFA, error) {
	if n == nil {
		return nil, newErr(InvalidConfig, "nil source NFA")
	}
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}

	d := newDFA()
	seen := map[string]StateID{}

	startSet := n.StartClosure()
	startKey, startIDs := canonicalKey(startSet)
	startState := d.newState(n.AnyMatch(startSet))
	seen[startKey] = startState
	d.Start = startState

	type pending struct {
		id  StateID
		ids []nfa.StateID
	}
	queue := []pending{{id: startState, ids: startIDs}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		boundaries := criticalPoints(n, cur.ids)
		for i := 0; i+1 < len(boundaries); i++ {
			lo := boundaries[i]
			hi := boundaries[i+1] - 1
			if lo > hi {
				continue
			}
			set := sparse.NewSparseSet(uint32(len(n.States)))
			for _, id := range cur.ids {
				set.Insert(uint32(id))
			}
			nextIDs := n.Step(set, lo)
			if len(nextIDs) == 0 {
				continue
			}
			closure := n.EpsilonClosure(nextIDs)
			key, ids := canonicalKey(closure)
			target, ok := seen[key]
			if !ok {
				if len(d.States) >= maxStates {
					return nil, newErr(StateLimitExceeded, fmt.Sprintf("subset construction exceeded %d states", maxStates))
				}
				target = d.newState(n.AnyMatch(closure))
				seen[key] = target
				queue = append(queue, pending{id: target, ids: ids})
			}
			d.States[cur.id].Trans = append(d.States[cur.id].Trans, Trans{
				RuneRange: nfa.RuneRange{Lo: lo, Hi: hi},
				To:        target,
			})
		}
		d.States[cur.id].Trans = coalesceTrans(d.States[cur.id].Trans)
	}

	return d, nil
}

// canonicalKey turns an epsilon-closed NFA state set into a stable string
// key (for dedup) and a sorted slice (for iteration).
func canonicalKey(set *sparse.SparseSet) (string, []nfa.StateID) {
	values := set.Values()
	ids := make([]nfa.StateID, len(values))
	for i, id := range values {
		ids[i] = nfa.StateID(id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	key := fmt.Sprint(ids)
	return key, ids
}

// criticalPoints collects the sorted, deduplicated set of rune boundaries
// (every Lo and every Hi+1) across all outgoing transitions of the given
// NFA states, plus the domain bounds, so that each adjacent pair of
// boundaries is an atomic interval in which every state's transition
// behavior is constant.
func criticalPoints(n *nfa.NFA, ids []nfa.StateID) []rune {
	set := map[rune]bool{0: true}
	for _, id := range ids {
		for _, t := range n.States[id].Trans {
			set[t.Lo] = true
			if t.Hi < 0x10FFFF {
				set[t.Hi+1] = true
			}
		}
	}
	set[0x10FFFF+1] = true
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// coalesceTrans merges adjacent transitions to the same target, bounding
// the transition count criticalPoints' fine-grained splitting produces.
func coalesceTrans(trans []Trans) []Trans {
	if len(trans) == 0 {
		return trans
	}
	sort.Slice(trans, func(i, j int) bool { return trans[i].Lo < trans[j].Lo })
	out := []Trans{trans[0]}
	for _, t := range trans[1:] {
		last := &out[len(out)-1]
		if t.To == last.To && t.Lo == last.Hi+1 {
			last.Hi = t.Hi
			continue
		}
		out = append(out, t)
	}
	return out
}
