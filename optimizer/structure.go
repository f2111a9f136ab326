package optimizer

import "github.com/coregx/regexlint/ast"

// tryFlattenGroup reports whether g (already confirmed non-capturing by
// the caller's switch) can be replaced by its own child with no change
// in re-serialized meaning. Only safe when the child is a single atomic
// unit: an Alternation's branches, or a multi-item Sequence, depend on
// the group's parens to bind correctly to whatever surrounds the group
// (a following quantifier, an enclosing sequence) — removing the parens
// in those cases would silently change what the rewritten text means.
func tryFlattenGroup(g *ast.Node, cfg Config) (*ast.Node, bool) {
	if g.GroupKind != ast.GroupNonCapturing || g.Child == nil {
		return nil, false
	}
	child := g.Child
	switch child.Kind {
	case ast.KindAlternation:
		return nil, false
	case ast.KindSequence:
		if len(child.Children) > 1 {
			return nil, false
		}
	}
	if !savingsOK(g, child, cfg) {
		return nil, false
	}
	if !verifyEquivalent(g, child, cfg) {
		return nil, false
	}
	return child, true
}

// flattenSequenceItems splices any direct Sequence child's items into the
// parent's own item list. Always safe: a Sequence's rendering is already
// a flat concatenation of its items regardless of nesting depth, so this
// is a pure tree-shape change, never touching what the pattern matches.
func flattenSequenceItems(items []*ast.Node) ([]*ast.Node, bool) {
	changed := false
	out := make([]*ast.Node, 0, len(items))
	for _, it := range items {
		if it.Kind == ast.KindSequence {
			out = append(out, it.Children...)
			changed = true
			continue
		}
		out = append(out, it)
	}
	return out, changed
}
