package optimizer

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/internal/flaganalysis"
)

// applyFlagCleanup drops FlagS/FlagM/FlagI when the body never exercises
// them: a structural proof (is there a Dot? a ^/$ anchor? a case-bearing
// literal or range?), not an automaton comparison — the automaton
// abstraction treats every Anchor as an always-satisfied epsilon move
// regardless of FlagM, so it has nothing to say about this rule's
// safety one way or the other.
func applyFlagCleanup(root *ast.Node, ctx *rewriteCtx) *ast.Node {
	flags := root.Flags
	removable := ast.Flags(0)

	if flags.Has(ast.FlagS) && !flaganalysis.HasDot(root.Child) {
		removable |= ast.FlagS
	}
	if flags.Has(ast.FlagM) && !flaganalysis.HasLineAnchor(root.Child) {
		removable |= ast.FlagM
	}
	if flags.Has(ast.FlagI) && !flaganalysis.HasCaseBearingConstruct(root.Child) {
		removable |= ast.FlagI
	}
	if removable == 0 {
		return root
	}

	out := ast.NewRegex(root.Start, root.End, root.Child, flags&^removable, root.Delimiter)
	record(ctx.rewrites, "flag_cleanup", root, out)
	return out
}
