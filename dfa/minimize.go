package dfa

import (
	"sort"

	"github.com/coregx/regexlint/nfa"
)

// invalidStateID marks a not-yet-allocated output state during rebuild.
const invalidStateID StateID = -1

// Minimize returns the minimal DFA equivalent to d via Moore-style
// partition refinement: iteratively split state groups that disagree on
// where some rune leads, until no split changes anything. A full
// Hopcroft minimizer would beat this asymptotically, but given the
// automaton sizes regex-derived DFAs actually reach in this module
// (hundreds, not millions, of states), the simpler fixed-point refinement
// is the more maintainable choice for a spec author who never needs the
// faster bound — recorded as a deliberate complexity/clarity tradeoff.
func Minimize(d *DFA) *DFA {
	groupOf := make([]int, len(d.States))
	for i, s := range d.States {
		if s.Match {
			groupOf[i] = 1
		}
	}
	numGroups := 2

	boundaries := allCriticalPoints(d)

	for {
		changed := false
		newGroupOf := make([]int, len(d.States))
		signatures := map[string]int{}
		nextGroup := 0

		for id := range d.States {
			sig := groupSignature(d, StateID(id), groupOf, boundaries)
			g, ok := signatures[sig]
			if !ok {
				g = nextGroup
				signatures[sig] = g
				nextGroup++
			}
			newGroupOf[id] = g
		}

		if nextGroup != numGroups {
			changed = true
		} else {
			for i := range groupOf {
				if groupOf[i] != newGroupOf[i] {
					changed = true
					break
				}
			}
		}

		groupOf = newGroupOf
		numGroups = nextGroup
		if !changed {
			break
		}
	}

	return rebuild(d, groupOf, numGroups, boundaries)
}

// groupSignature identifies a state's refinement class: its own current
// group, plus the group reached for every atomic alphabet interval.
func groupSignature(d *DFA, id StateID, groupOf []int, boundaries []rune) string {
	sig := make([]byte, 0, 4*len(boundaries))
	sig = appendInt(sig, groupOf[id])
	for i := 0; i+1 < len(boundaries); i++ {
		lo := boundaries[i]
		target := d.step(id, lo)
		sig = append(sig, '|')
		sig = appendInt(sig, groupOf[target])
	}
	return string(sig)
}

func appendInt(b []byte, v int) []byte {
	if v == 0 {
		return append(b, '0')
	}
	neg := v < 0
	if neg {
		v = -v
		b = append(b, '-')
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// allCriticalPoints collects the global rune-boundary set across every
// state's transitions, so refinement tests the same atomic intervals
// everywhere.
func allCriticalPoints(d *DFA) []rune {
	set := map[rune]bool{0: true, 0x10FFFF + 1: true}
	for _, s := range d.States {
		for _, t := range s.Trans {
			set[t.Lo] = true
			if t.Hi < 0x10FFFF {
				set[t.Hi+1] = true
			}
		}
	}
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// rebuild constructs the minimized DFA from a stable group assignment.
func rebuild(d *DFA, groupOf []int, numGroups int, boundaries []rune) *DFA {
	out := newDFA()
	groupState := make([]StateID, numGroups)
	for i := range groupState {
		groupState[i] = invalidStateID
	}
	deadGroup := groupOf[DeadState]
	groupState[deadGroup] = DeadState
	out.States[DeadState].Match = d.States[DeadState].Match

	startGroup := groupOf[d.Start]
	if groupState[startGroup] == invalidStateID {
		groupState[startGroup] = out.newState(d.States[d.Start].Match)
	}
	out.Start = groupState[startGroup]

	assigned := make([]bool, numGroups)
	for id, g := range groupOf {
		if groupState[g] == invalidStateID {
			groupState[g] = out.newState(d.States[id].Match)
		}
		if assigned[g] {
			continue
		}
		assigned[g] = true

		var trans []Trans
		for i := 0; i+1 < len(boundaries); i++ {
			lo, hi := boundaries[i], boundaries[i+1]-1
			if lo > hi {
				continue
			}
			target := d.step(StateID(id), lo)
			tg := groupOf[target]
			if groupState[tg] == invalidStateID {
				groupState[tg] = out.newState(d.States[target].Match)
			}
			trans = append(trans, Trans{RuneRange: nfa.RuneRange{Lo: lo, Hi: hi}, To: groupState[tg]})
		}
		out.States[groupState[g]].Trans = coalesceTrans(trans)
	}

	return out
}
