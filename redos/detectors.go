package redos

import "github.com/coregx/regexlint/ast"

// firstSet approximates the set of runes a subtree can start with, well
// enough to decide whether two subtrees' starting characters could ever
// collide — this package's own lightweight version, independent of nfa's
// exact rune-range construction, since theoretical mode is meant to stay
// cheap and never touch the automaton machinery (that is confirmed
// mode's job). unbounded is returned true for constructs whose starting
// alphabet this function gives up narrowing (backreferences,
// subroutines, Unicode properties it does not special-case) — callers
// treat "unbounded" as "assume it can collide with anything".
type firstSet struct {
	runes     map[rune]bool
	unbounded bool
	nullable  bool
}

func emptyFirstSet() firstSet {
	return firstSet{runes: map[rune]bool{}}
}

func (fs firstSet) overlaps(other firstSet) bool {
	if fs.unbounded || other.unbounded {
		return true
	}
	for r := range fs.runes {
		if other.runes[r] {
			return true
		}
	}
	return false
}

func (fs firstSet) nonEmpty() bool {
	return fs.unbounded || len(fs.runes) > 0
}

// computeFirstSet walks n's leftmost-reachable leaves (following
// Sequence items until one is non-nullable, both Alternation branches,
// and a Quantifier's child whether or not it's mandatory).
func computeFirstSet(n *ast.Node) firstSet {
	switch n.Kind {
	case ast.KindLiteral:
		fs := emptyFirstSet()
		if len(n.Bytes) > 0 {
			for _, r := range string(n.Bytes[:1]) {
				fs.runes[r] = true
				break
			}
		} else {
			fs.nullable = true
		}
		return fs

	case ast.KindDot, ast.KindCharType, ast.KindCharClass, ast.KindPosixClass, ast.KindUnicodeProp, ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		return firstSet{unbounded: true}

	case ast.KindBackref, ast.KindSubroutine:
		// Could resolve to anything, including the empty string.
		return firstSet{unbounded: true, nullable: true}

	case ast.KindAnchor, ast.KindAssertion, ast.KindKeep, ast.KindComment, ast.KindPcreVerb:
		fs := emptyFirstSet()
		fs.nullable = true
		return fs

	case ast.KindSequence:
		fs := emptyFirstSet()
		fs.nullable = true
		for _, item := range n.Children {
			itemFS := computeFirstSet(item)
			if itemFS.unbounded {
				fs.unbounded = true
			}
			for r := range itemFS.runes {
				fs.runes[r] = true
			}
			if !itemFS.nullable {
				fs.nullable = false
				break
			}
		}
		return fs

	case ast.KindAlternation:
		fs := emptyFirstSet()
		for _, branch := range n.Children {
			branchFS := computeFirstSet(branch)
			if branchFS.unbounded {
				fs.unbounded = true
			}
			for r := range branchFS.runes {
				fs.runes[r] = true
			}
			if branchFS.nullable {
				fs.nullable = true
			}
		}
		return fs

	case ast.KindGroup:
		if n.GroupKind.IsLookaround() {
			// Lookarounds consume nothing themselves.
			fs := emptyFirstSet()
			fs.nullable = true
			return fs
		}
		if n.Child == nil {
			fs := emptyFirstSet()
			fs.nullable = true
			return fs
		}
		return computeFirstSet(n.Child)

	case ast.KindQuantifier:
		childFS := computeFirstSet(n.Child)
		if n.Min == 0 {
			childFS.nullable = true
		}
		return childFS

	case ast.KindConditional:
		fs := emptyFirstSet()
		fs.nullable = true
		if n.Yes != nil {
			yesFS := computeFirstSet(n.Yes)
			fs.unbounded = fs.unbounded || yesFS.unbounded
			for r := range yesFS.runes {
				fs.runes[r] = true
			}
			if !yesFS.nullable {
				fs.nullable = false
			}
		}
		if n.No != nil {
			noFS := computeFirstSet(n.No)
			fs.unbounded = fs.unbounded || noFS.unbounded
			for r := range noFS.runes {
				fs.runes[r] = true
			}
			fs.nullable = fs.nullable || noFS.nullable
		} else {
			fs.nullable = true
		}
		return fs

	default:
		fs := emptyFirstSet()
		fs.nullable = true
		return fs
	}
}

// isNullable reports whether n can match the empty string.
func isNullable(n *ast.Node) bool {
	return computeFirstSet(n).nullable
}

func walkNodes(n *ast.Node, visit func(*ast.Node)) {
	ast.Walk(n, &ast.Visitor{Enter: func(nd *ast.Node) bool {
		visit(nd)
		return true
	}})
}

// TheoreticalFindings runs every structural detector over root and
// returns every match, unreduced — Analyze folds these down to the
// single worst one, but a caller wanting every occurrence (the linter's
// unbounded-quantifier-alternation-overlap and catastrophic-nesting
// rules, which report per-site rather than worst-of-pattern) uses this
// directly instead.
func TheoreticalFindings(root *ast.Node) []Finding {
	var findings []Finding
	findings = append(findings, detectNestedUnbounded(root)...)
	findings = append(findings, detectOverlappingAlternation(root)...)
	findings = append(findings, detectEmptyMatchRepetition(root)...)
	findings = append(findings, detectAdjacentQuantifiers(root)...)
	return findings
}

// detectNestedUnbounded flags an unbounded Quantifier whose body itself
// contains an unbounded Quantifier with a non-empty first-set — the
// classic (a+)* / (a*)+ shape.
func detectNestedUnbounded(root *ast.Node) []Finding {
	var out []Finding
	walkNodes(root, func(n *ast.Node) {
		if n.Kind != ast.KindQuantifier || n.Max != ast.Unbounded {
			return
		}
		var inner *ast.Node
		walkNodes(n.Child, func(c *ast.Node) {
			if inner != nil || c == n.Child {
				return
			}
			if c.Kind == ast.KindQuantifier && c.Max == ast.Unbounded && computeFirstSet(c.Child).nonEmpty() {
				inner = c
			}
		})
		if inner != nil {
			sev := High
			if isAtomicOnHotPath(inner) {
				sev = Low
			}
			out = append(out, Finding{Rule: "nested_unbounded_quantifier", Node: n, Severity: sev})
		}
	})
	return out
}

// detectOverlappingAlternation flags an Alternation, directly inside an
// unbounded Quantifier's body, whose branches share overlapping
// first-sets.
func detectOverlappingAlternation(root *ast.Node) []Finding {
	var out []Finding
	walkNodes(root, func(n *ast.Node) {
		if n.Kind != ast.KindQuantifier || n.Max != ast.Unbounded {
			return
		}
		alt := unwrapToAlternation(n.Child)
		if alt == nil || len(alt.Children) < 2 {
			return
		}
		sets := make([]firstSet, len(alt.Children))
		for i, b := range alt.Children {
			sets[i] = computeFirstSet(b)
		}
		for i := 0; i < len(sets); i++ {
			for j := i + 1; j < len(sets); j++ {
				if sets[i].overlaps(sets[j]) {
					sev := Medium
					if isAtomicOnHotPath(n.Child) {
						sev = Low
					}
					out = append(out, Finding{Rule: "overlapping_alternation", Node: n, Severity: sev})
					return
				}
			}
		}
	})
	return out
}

func unwrapToAlternation(n *ast.Node) *ast.Node {
	for n != nil {
		switch n.Kind {
		case ast.KindAlternation:
			return n
		case ast.KindGroup:
			n = n.Child
		default:
			return nil
		}
	}
	return nil
}

// detectEmptyMatchRepetition flags an unbounded Quantifier whose body can
// match the empty string — (a*)*, (a?)+, and similar.
func detectEmptyMatchRepetition(root *ast.Node) []Finding {
	var out []Finding
	walkNodes(root, func(n *ast.Node) {
		if n.Kind != ast.KindQuantifier || n.Max != ast.Unbounded {
			return
		}
		if isNullable(n.Child) {
			out = append(out, Finding{Rule: "empty_match_repetition", Node: n, Severity: Medium})
		}
	})
	return out
}

// detectAdjacentQuantifiers flags two consecutive Sequence items, both
// unbounded Quantifiers, whose first-sets overlap — a+a+ and similar.
func detectAdjacentQuantifiers(root *ast.Node) []Finding {
	var out []Finding
	walkNodes(root, func(n *ast.Node) {
		if n.Kind != ast.KindSequence {
			return
		}
		for i := 0; i+1 < len(n.Children); i++ {
			a, b := n.Children[i], n.Children[i+1]
			if a.Kind != ast.KindQuantifier || a.Max != ast.Unbounded {
				continue
			}
			if b.Kind != ast.KindQuantifier || b.Max != ast.Unbounded {
				continue
			}
			if computeFirstSet(a.Child).overlaps(computeFirstSet(b.Child)) {
				out = append(out, Finding{Rule: "adjacent_quantifiers", Node: a, Severity: Medium})
			}
		}
	})
	return out
}
