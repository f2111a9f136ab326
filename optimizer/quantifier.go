package optimizer

import (
	"fmt"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/automata"
	"github.com/coregx/regexlint/compiler"
)

// compactQuantifiers folds a maximal run of at least cfg.MinQuantifierCount
// structurally-identical, not-already-quantified items into one
// atom{k} Quantifier node. Structural identity is decided by rendered
// text equality (compiler.Compile round-trips the tree faithfully, so
// this is exactly as precise as a hand-rolled deep-equal without
// duplicating the compiler's own node-shape knowledge).
func compactQuantifiers(items []*ast.Node, cfg Config) ([]*ast.Node, bool) {
	out := make([]*ast.Node, 0, len(items))
	changed := false
	i := 0
	for i < len(items) {
		if items[i].Kind == ast.KindQuantifier {
			out = append(out, items[i])
			i++
			continue
		}
		text := compiler.Compile(items[i], compiler.Options{})
		j := i + 1
		for j < len(items) && items[j].Kind != ast.KindQuantifier && compiler.Compile(items[j], compiler.Options{}) == text {
			j++
		}
		runLen := j - i
		if runLen < cfg.MinQuantifierCount {
			out = append(out, items[i])
			i++
			continue
		}
		q := ast.NewQuantifier(items[i].Start, items[j-1].End, items[i], runLen, runLen, ast.Greedy, fmt.Sprintf("{%d}", runLen))
		out = append(out, q)
		changed = true
		i = j
	}
	return out, changed
}

// autoPossessify turns a greedy, unbounded quantifier into a possessive
// one when the following item's leading atom can be proven disjoint from
// the quantifier's own atom — backtracking into the quantifier could
// never help a failed match recover, since the next required character
// can never be what the quantifier just consumed.
func autoPossessify(items []*ast.Node) ([]*ast.Node, bool) {
	out := make([]*ast.Node, len(items))
	copy(out, items)
	changed := false
	for i := 0; i+1 < len(out); i++ {
		q := out[i]
		if q.Kind != ast.KindQuantifier || q.Mode != ast.Greedy || q.Max != ast.Unbounded || q.Min < 1 {
			continue
		}
		atom := leadingAtom(q.Child)
		if atom == nil {
			continue
		}
		next := leadingAtom(out[i+1])
		if next == nil {
			continue
		}
		if !disjoint(atom, next) {
			continue
		}
		out[i] = ast.NewQuantifier(q.Start, q.End, q.Child, q.Min, q.Max, ast.Possessive, q.QuantifierText+"+")
		changed = true
	}
	return out, changed
}

// leadingAtom returns the single-rune-matching node n reduces to for a
// first-character disjointness check, or nil when n is not one of the
// simple shapes this analysis handles (a compound Sequence/Alternation/
// Group is not worth chasing here — auto-possessify stays conservative
// and simply skips those).
func leadingAtom(n *ast.Node) *ast.Node {
	switch n.Kind {
	case ast.KindDot, ast.KindCharType, ast.KindCharClass, ast.KindPosixClass, ast.KindUnicodeProp:
		return n
	case ast.KindLiteral:
		if len(n.Bytes) == 0 {
			return nil
		}
		for _, r := range string(n.Bytes) {
			return ast.NewLiteral(n.Start, n.End, []byte(string(r)))
		}
		return nil
	case ast.KindQuantifier:
		if n.Min < 1 {
			return nil
		}
		return leadingAtom(n.Child)
	default:
		return nil
	}
}

// disjoint reports whether a and b can never match the same first
// character, via the automata package's exact rune-range intersection
// rather than a hand-rolled approximation.
func disjoint(a, b *ast.Node) bool {
	ca, err := automata.Compile(wrapRegex(a))
	if err != nil {
		return false
	}
	cb, err := automata.Compile(wrapRegex(b))
	if err != nil {
		return false
	}
	return !automata.Intersects(ca, cb)
}
