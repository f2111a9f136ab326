package optimizer

import "github.com/coregx/regexlint/ast"

// rewriteAlternation applies the Alternation-scoped rules to branches
// (already individually rewritten by the caller).
func rewriteAlternation(n *ast.Node, branches []*ast.Node, ctx *rewriteCtx) *ast.Node {
	cfg := ctx.cfg

	if cfg.AlternationToCharClass {
		if cc, ok := tryAlternationToCharClass(n, branches); ok {
			before := ast.NewAlternation(n.Start, n.End, branches)
			if savingsOK(before, cc, cfg) && verifyEquivalent(before, cc, cfg) {
				record(ctx.rewrites, "alternation_to_charclass", before, cc)
				return cc
			}
		}
	}

	if cfg.FactorizeAlternation {
		if factored, ok := tryFactorizeAlternation(n, branches); ok {
			before := ast.NewAlternation(n.Start, n.End, branches)
			if verifyEquivalent(before, factored, cfg) {
				record(ctx.rewrites, "alternation_factorization", before, factored)
				return factored
			}
		}
	}

	return ast.NewAlternation(n.Start, n.End, branches)
}

// tryAlternationToCharClass reports whether every branch is a single
// decoded rune, in which case the alternation becomes a character class
// over those runes. A branch that is the bare hyphen "-" suppresses the
// rewrite rather than risk an ambiguous position inside the rendered
// class (spec.md §4.6 rule 3's carve-out).
func tryAlternationToCharClass(n *ast.Node, branches []*ast.Node) (*ast.Node, bool) {
	if len(branches) < 2 {
		return nil, false
	}
	items := make([]*ast.Node, 0, len(branches))
	for _, b := range branches {
		if b.Kind != ast.KindLiteral {
			return nil, false
		}
		runes := []rune(string(b.Bytes))
		if len(runes) != 1 {
			return nil, false
		}
		if runes[0] == '-' {
			return nil, false
		}
		items = append(items, ast.NewLiteral(b.Start, b.End, b.Bytes))
	}
	return ast.NewCharClass(n.Start, n.End, items, false), true
}

// tryFactorizeAlternation extracts a shared single-atom prefix across
// every branch: "ab|ac" -> "a(?:b|c)". Limited to a literal-atom common
// prefix (no backreferences possible in a plain Literal), matching
// spec.md §4.6 rule 8's "no backrefs" condition trivially rather than
// needing a separate backref scan.
func tryFactorizeAlternation(n *ast.Node, branches []*ast.Node) (*ast.Node, bool) {
	if len(branches) < 2 {
		return nil, false
	}
	var prefix []byte
	rest := make([]*ast.Node, len(branches))
	for i, b := range branches {
		seq := sequenceItems(b)
		if len(seq) == 0 || seq[0].Kind != ast.KindLiteral || len(seq[0].Bytes) == 0 {
			return nil, false
		}
		if i == 0 {
			prefix = []byte{seq[0].Bytes[0]}
		} else if seq[0].Bytes[0] != prefix[0] {
			return nil, false
		}
		remainder := seq[0].Bytes[1:]
		tail := make([]*ast.Node, 0, len(seq))
		if len(remainder) > 0 {
			tail = append(tail, ast.NewLiteral(seq[0].Start, seq[0].End, remainder))
		}
		tail = append(tail, seq[1:]...)
		if len(tail) == 0 {
			rest[i] = ast.NewSequence(b.End, b.End, nil)
			continue
		}
		rest[i] = wrapItems(b, tail)
	}

	alt := ast.NewAlternation(n.Start, n.End, rest)
	group := ast.NewGroup(n.Start, n.End, ast.GroupNonCapturing, alt)
	merged := ast.NewSequence(n.Start, n.End, []*ast.Node{ast.NewLiteral(n.Start, n.Start, prefix), group})
	return merged, true
}

// sequenceItems returns n's items if it is a Sequence, or n itself as a
// single-item slice otherwise — uniform access for the prefix scan.
func sequenceItems(n *ast.Node) []*ast.Node {
	if n.Kind == ast.KindSequence {
		return n.Children
	}
	return []*ast.Node{n}
}

