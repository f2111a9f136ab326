package optimizer

import (
	"sort"
	"unicode/utf8"

	"github.com/coregx/regexlint/ast"
)

type crange struct{ lo, hi rune }

// rewriteCharClass sorts and merges n's simple items (single runes and
// explicit ranges), leaving complex items (\d-style escapes, POSIX
// classes, Unicode properties) in place, and substitutes the whole class
// for \d/\w (or their negations) when the merged ranges exactly match
// one of those shorthand's coverage — skipped under FlagU, where \d/\w
// match a wider Unicode set than the equivalent ASCII range.
func rewriteCharClass(n *ast.Node, ctx *rewriteCtx) *ast.Node {
	if !ctx.cfg.CanonicalizeCharClass {
		return cloneCharClass(n, n.Children)
	}

	var simple []crange
	var complex []*ast.Node
	for _, item := range n.Children {
		if cr, ok := simpleRange(item); ok {
			simple = append(simple, cr)
			continue
		}
		complex = append(complex, item)
	}

	if len(simple) == 0 {
		return cloneCharClass(n, n.Children)
	}

	merged := mergeRanges(simple)

	if len(complex) == 0 && !ctx.flagU {
		if letter, ok := shorthandFor(merged); ok {
			out := ast.NewCharType(n.Start, n.End, letterFor(letter, n.Negated))
			before := cloneCharClass(n, n.Children)
			if savingsOK(before, out, ctx.cfg) && verifyEquivalent(before, out, ctx.cfg) {
				record(ctx.rewrites, "charclass_canonicalize", before, out)
				return out
			}
		}
	}

	items := make([]*ast.Node, 0, len(merged)+len(complex))
	for _, r := range merged {
		if r.lo == r.hi {
			items = append(items, ast.NewLiteral(n.Start, n.End, []byte(string(r.lo))))
		} else {
			items = append(items, ast.NewRange(n.Start, n.End, r.lo, r.hi, true))
		}
	}
	items = append(items, complex...)

	out := cloneCharClass(n, items)
	before := cloneCharClass(n, n.Children)
	if !nodesEqualText(before, out) {
		if savingsOK(before, out, ctx.cfg) && verifyEquivalent(before, out, ctx.cfg) {
			record(ctx.rewrites, "charclass_canonicalize", before, out)
			return out
		}
		return before
	}
	return out
}

func cloneCharClass(n *ast.Node, items []*ast.Node) *ast.Node {
	return ast.NewCharClass(n.Start, n.End, items, n.Negated)
}

func simpleRange(item *ast.Node) (crange, bool) {
	switch item.Kind {
	case ast.KindRange:
		return crange{item.Lo, item.Hi}, true
	case ast.KindLiteral:
		r, size := utf8.DecodeRune(item.Bytes)
		if r == utf8.RuneError || size != len(item.Bytes) {
			return crange{}, false
		}
		return crange{r, r}, true
	default:
		return crange{}, false
	}
}

func mergeRanges(rs []crange) []crange {
	sorted := make([]crange, len(rs))
	copy(sorted, rs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].lo != sorted[j].lo {
			return sorted[i].lo < sorted[j].lo
		}
		return sorted[i].hi < sorted[j].hi
	})
	out := sorted[:0:0]
	for _, r := range sorted {
		if n := len(out); n > 0 && r.lo <= out[n-1].hi+1 {
			if r.hi > out[n-1].hi {
				out[n-1].hi = r.hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// shorthandFor reports whether merged (already sorted, disjoint) matches
// \d's or \w's exact coverage.
func shorthandFor(merged []crange) (byte, bool) {
	digit := []crange{{'0', '9'}}
	word := []crange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
	if rangesEqual(merged, digit) {
		return 'd', true
	}
	if rangesEqual(merged, word) {
		return 'w', true
	}
	return 0, false
}

func rangesEqual(a, b []crange) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func letterFor(lower byte, negated bool) byte {
	if negated {
		return lower - ('a' - 'A')
	}
	return lower
}

func nodesEqualText(a, b *ast.Node) bool {
	return compiledText(a) == compiledText(b)
}
