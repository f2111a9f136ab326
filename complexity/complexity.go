// Package complexity assigns a static cost weight to a pattern's AST
// (spec.md §4.9): a single number a caller can threshold on without
// running the pattern, distinct from redos/'s risk scoring in that it
// measures structural size rather than backtracking blowup.
package complexity

import "github.com/coregx/regexlint/ast"

// Weights controls the per-construct costs Score folds over the tree.
// The zero value is meaningless; use DefaultWeights.
type Weights struct {
	Literal     int // per literal byte
	Dot         int
	CharClass   int
	Alternation int // added once to the sum of the branch costs
	Lookaround  int // added to the lookaround's own inner cost
	// UnboundedFactor multiplies an unbounded quantifier's inner cost
	// (spec.md: "multiplies when unbounded quantifiers nest" — folding
	// this through Fold naturally compounds for nested unbounded
	// quantifiers, since the outer multiply applies to an inner cost
	// that already carries any of its own unbounded multiplies).
	UnboundedFactor int
}

// DefaultWeights matches spec.md §4.9: literal=1, dot=2, char-class=3,
// quantifier=k*inner, alternation=sum+2, lookaround=inner+5.
func DefaultWeights() Weights {
	return Weights{
		Literal:         1,
		Dot:             2,
		CharClass:       3,
		Alternation:     2,
		Lookaround:      5,
		UnboundedFactor: 10,
	}
}

// Score folds w over root and returns the resulting cost. root is
// expected to be a KindRegex node (or any subtree Fold can walk).
func Score(root *ast.Node, w Weights) int {
	return ast.Fold(root, func(n *ast.Node) int {
		return leafCost(n, w)
	}, func(n *ast.Node, children []int) int {
		return combine(n, children, w)
	})
}

func leafCost(n *ast.Node, w Weights) int {
	switch n.Kind {
	case ast.KindLiteral:
		if len(n.Bytes) == 0 {
			return w.Literal
		}
		return w.Literal * len(n.Bytes)
	case ast.KindDot, ast.KindCharType:
		return w.Dot
	case ast.KindRange, ast.KindPosixClass, ast.KindUnicodeProp,
		ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		return w.Literal
	case ast.KindAnchor, ast.KindAssertion, ast.KindKeep,
		ast.KindBackref, ast.KindSubroutine, ast.KindConditionRef,
		ast.KindComment, ast.KindPcreVerb, ast.KindInvalid:
		return 0
	default:
		return 0
	}
}

func combine(n *ast.Node, children []int, w Weights) int {
	sum := 0
	for _, c := range children {
		sum += c
	}

	switch n.Kind {
	case ast.KindCharClass:
		return w.CharClass

	case ast.KindAlternation:
		return sum + w.Alternation

	case ast.KindQuantifier:
		inner := sum
		if inner == 0 {
			inner = w.Literal
		}
		if n.Max == ast.Unbounded {
			return inner * w.UnboundedFactor
		}
		k := n.Max
		if k <= 0 {
			k = 1
		}
		if k > 1000 {
			k = 1000 // cap: {100000} shouldn't overflow an int score
		}
		return inner * k

	case ast.KindGroup:
		if n.GroupKind.IsLookaround() {
			return sum + w.Lookaround
		}
		return sum

	case ast.KindConditional, ast.KindSequence, ast.KindRegex:
		return sum

	default:
		return sum
	}
}

// IsHighComplexity reports whether root's score exceeds threshold under
// DefaultWeights — a convenience for a facade that just wants a bool.
func IsHighComplexity(root *ast.Node, threshold int) bool {
	return Score(root, DefaultWeights()) > threshold
}
