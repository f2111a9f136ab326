// Package dfa builds an eager, fully-minimized deterministic automaton
// from an nfa.NFA — the representation automata's Equivalent/Subset/
// Intersect operations and redos' confirmed-mode product test actually
// run over. Unlike the teacher's dfa/lazy package, states are built
// up front rather than on demand, because every consumer here needs to
// reason about ALL of a pattern's states at once (minimization, product,
// complement); there is no live search to amortize a lazy cache against.
package dfa

import "github.com/coregx/regexlint/nfa"

// StateID indexes into DFA.States.
type StateID int32

// DeadState is the complement-closure sink every missing transition
// implicitly leads to: no outgoing transitions, and not accepting except
// in a DFA produced by Complement.
const DeadState StateID = 0

// Trans is one deterministic transition: exactly one target per rune in
// the range, since determinization has already merged overlapping NFA
// transitions.
type Trans struct {
	nfa.RuneRange
	To StateID
}

// State is one DFA node: its transitions, sorted and non-overlapping by
// construction, and whether it accepts.
type State struct {
	Trans []Trans
	Match bool
}

// DFA is a deterministic automaton over runes, rooted at Start.
type DFA struct {
	States []State
	Start  StateID
}

// step returns the target state for r from id, or DeadState if none.
func (d *DFA) step(id StateID, r rune) StateID {
	for _, t := range d.States[id].Trans {
		if t.Contains(r) {
			return t.To
		}
		if r < t.Lo {
			break // Trans is sorted by Lo
		}
	}
	return DeadState
}

// Accepts runs s through the DFA from Start, used by tests and by redos'
// confirmed-mode witness replay.
func (d *DFA) Accepts(s string) bool {
	cur := d.Start
	for _, r := range s {
		cur = d.step(cur, r)
		if cur == DeadState {
			return d.States[DeadState].Match
		}
	}
	return d.States[cur].Match
}

func newDFA() *DFA {
	// State 0 is always the dead state: no transitions, not accepting.
	return &DFA{States: []State{{}}, Start: DeadState}
}

func (d *DFA) newState(match bool) StateID {
	d.States = append(d.States, State{Match: match})
	return StateID(len(d.States) - 1)
}
