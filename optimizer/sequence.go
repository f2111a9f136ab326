package optimizer

import "github.com/coregx/regexlint/ast"

// rewriteSequence applies every Sequence-scoped rule to items (already
// individually rewritten by the caller) and rebuilds n around the
// result.
func rewriteSequence(n *ast.Node, items []*ast.Node, ctx *rewriteCtx) *ast.Node {
	cfg := ctx.cfg

	if cfg.FlattenGroups {
		if flat, changed := flattenSequenceItems(items); changed {
			before := ast.NewSequence(n.Start, n.End, items)
			after := ast.NewSequence(n.Start, n.End, flat)
			record(ctx.rewrites, "sequence_flatten", before, after)
			items = flat
		}
	}

	if cfg.CoalesceLiterals {
		if merged, changed := coalesceLiterals(items); changed {
			before := ast.NewSequence(n.Start, n.End, items)
			after := wrapItems(n, merged)
			record(ctx.rewrites, "literal_coalesce", before, after)
			items = merged
		}
	}

	if cfg.CompactQuantifiers {
		if compacted, changed := compactQuantifiers(items, cfg); changed {
			before := wrapItems(n, items)
			after := wrapItems(n, compacted)
			if savingsOK(before, after, cfg) && verifyEquivalent(before, after, cfg) {
				record(ctx.rewrites, "quantifier_compaction", before, after)
				items = compacted
			}
		}
	}

	if cfg.AutoPossessify {
		if possessified, changed := autoPossessify(items); changed {
			before := wrapItems(n, items)
			after := wrapItems(n, possessified)
			record(ctx.rewrites, "auto_possessify", before, after)
			items = possessified
		}
	}

	return wrapItems(n, items)
}

// wrapItems returns items[0] directly when there's exactly one (a
// single-item Sequence adds nothing to the rendered text, though the
// parser wraps every branch in one),
// and a fresh Sequence node otherwise.
func wrapItems(n *ast.Node, items []*ast.Node) *ast.Node {
	if len(items) == 1 {
		return items[0]
	}
	return ast.NewSequence(n.Start, n.End, items)
}

// coalesceLiterals merges runs of adjacent Literal items into one.
func coalesceLiterals(items []*ast.Node) ([]*ast.Node, bool) {
	out := make([]*ast.Node, 0, len(items))
	changed := false
	i := 0
	for i < len(items) {
		if items[i].Kind != ast.KindLiteral {
			out = append(out, items[i])
			i++
			continue
		}
		j := i + 1
		for j < len(items) && items[j].Kind == ast.KindLiteral {
			j++
		}
		if j-i == 1 {
			out = append(out, items[i])
			i = j
			continue
		}
		var merged []byte
		for k := i; k < j; k++ {
			merged = append(merged, items[k].Bytes...)
		}
		out = append(out, ast.NewLiteral(items[i].Start, items[j-1].End, merged))
		changed = true
		i = j
	}
	return out, changed
}
