package optimizer

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/automata"
)

// verifyEquivalent reports whether before and after should be treated as
// language-equivalent for the purposes of accepting a rewrite: true when
// verification is disabled, true when either subtree fails to compile to
// an automaton (lookarounds, backreferences, a state-limit overflow —
// nothing to compile against, so the rule's own local reasoning is
// trusted), and otherwise the automata package's bidirectional-subset
// equivalence check.
func verifyEquivalent(before, after *ast.Node, cfg Config) bool {
	if !cfg.VerifyEquivalence {
		return true
	}
	a, errA := automata.Compile(wrapRegex(before))
	if errA != nil {
		return true
	}
	b, errB := automata.Compile(wrapRegex(after))
	if errB != nil {
		return true
	}
	return automata.Equivalent(a, b)
}

func wrapRegex(n *ast.Node) *ast.Node {
	return ast.NewRegex(n.Start, n.End, n, 0, '/')
}
