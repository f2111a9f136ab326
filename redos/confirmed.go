package redos

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/nfa"
)

// pair is a node in the product automaton: two NFA states reached by two
// (possibly different) paths over the same input prefix.
type pair struct{ p, q nfa.StateID }

// confirmedWitness runs the standard product-automaton ambiguity search
// (Weideman et al.'s exponential-degree-of-ambiguity test) over inner,
// the repeated body a theoretical-mode trigger flagged, and reports a
// pumping witness if inner is genuinely ambiguous under repetition: two
// distinct live paths through inner's own automaton that consume the
// same string and both remain able to reach acceptance, with at least
// one path able to return to that same state pair again. A non-nil error
// means inner contains a construct nfa.Build cannot represent and
// confirmed mode cannot decide.
func confirmedWitness(inner *ast.Node) (witness string, ambiguous bool, err error) {
	root := ast.NewRegex(inner.Start, inner.End, inner, 0, '/')
	n, buildErr := nfa.Build(root)
	if buildErr != nil {
		return "", false, buildErr
	}

	start := pair{n.Start, n.Start}
	parent := map[pair]pair{start: start}
	parentRune := map[pair]rune{}
	order := []pair{start}
	queue := []pair{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range productNeighbors(n, cur) {
			if _, seen := parent[e.to]; seen {
				continue
			}
			parent[e.to] = cur
			parentRune[e.to] = e.r
			order = append(order, e.to)
			queue = append(queue, e.to)
		}
	}

	canAccept := func(id nfa.StateID) bool {
		return n.AnyMatch(n.EpsilonClosure([]nfa.StateID{id}))
	}

	for _, pr := range order {
		if pr.p == pr.q || !canAccept(pr.p) || !canAccept(pr.q) {
			continue
		}
		if !consumingCycleBack(n, pr) {
			continue
		}
		pumpRunes := reconstructRunes(parent, parentRune, start, pr)
		if len(pumpRunes) == 0 {
			continue
		}
		pump := string(pumpRunes)
		return pump + pump, true, nil
	}
	return "", false, nil
}

type productEdge struct {
	to pair
	r  rune // -1 for an epsilon (non-consuming) move
}

// productNeighbors returns every one-step move the product automaton can
// make from cur: an epsilon move on either side, or a consuming move
// where both sides have an overlapping transition.
func productNeighbors(n *nfa.NFA, cur pair) []productEdge {
	var out []productEdge
	for _, e := range n.States[cur.p].Eps {
		out = append(out, productEdge{to: pair{e, cur.q}, r: -1})
	}
	for _, e := range n.States[cur.q].Eps {
		out = append(out, productEdge{to: pair{cur.p, e}, r: -1})
	}
	for _, tp := range n.States[cur.p].Trans {
		for _, tq := range n.States[cur.q].Trans {
			lo := maxRune(tp.Lo, tq.Lo)
			hi := minRune(tp.Hi, tq.Hi)
			if lo <= hi {
				out = append(out, productEdge{to: pair{tp.To, tq.To}, r: lo})
			}
		}
	}
	return out
}

// consumingCycleBack reports whether from can reach itself again via a
// path containing at least one consuming move — the signature of a
// pumpable ambiguity rather than a one-off coincidental collision.
func consumingCycleBack(n *nfa.NFA, from pair) bool {
	visited := map[pair]bool{}
	type item struct {
		pr       pair
		consumed bool
	}
	queue := []item{{pr: from, consumed: false}}
	visited[from] = false // false = reached without consuming yet
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range productNeighbors(n, cur.pr) {
			consumed := cur.consumed || e.r >= 0
			if e.to == from && consumed {
				return true
			}
			if already, ok := visited[e.to]; ok && (already || !consumed) {
				continue
			}
			visited[e.to] = consumed
			queue = append(queue, item{pr: e.to, consumed: consumed})
		}
	}
	return false
}

func reconstructRunes(parent map[pair]pair, parentRune map[pair]rune, start, target pair) []rune {
	var runes []rune
	cur := target
	for cur != start {
		if r := parentRune[cur]; r >= 0 {
			runes = append(runes, r)
		}
		cur = parent[cur]
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return runes
}

func maxRune(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}

func minRune(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}
