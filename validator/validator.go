package validator

import (
	"github.com/coregx/regexlint/ast"
)

// Options toggles validator behavior that spec.md §4.5 marks optional.
type Options struct {
	// Strict promotes nested-unbounded-quantifier constructs (`(a+)*`)
	// from a ReDoS-analyzer-only finding to a hard validation error.
	Strict bool
}

// Validate walks root (a KindRegex tree, as parser.Parse returns) and
// returns every semantic violation found. An empty slice means root is
// semantically sound; Validate never stops at the first error.
func Validate(root *ast.Node, opts Options) []*Error {
	v := &validation{opts: opts, flags: root.Flags, groupNames: map[string][]nameOcc{}}
	ast.Walk(root, &ast.Visitor{Enter: v.enter, Leave: v.leave})
	v.checkBackrefs()
	v.checkGroupNames()
	return v.errs
}

type nameOcc struct {
	offset  uint32
	scopeID *ast.Node // nearest enclosing BranchReset group, nil if none
}

// refOcc is a backref or subroutine call snapshotted at the point it was
// encountered, along with how many capturing groups had opened by then
// (needed to resolve a relative index like \g{-1}).
type refOcc struct {
	node         *ast.Node
	groupsSoFar  int
	isSubroutine bool
}

type validation struct {
	opts  Options
	flags ast.Flags
	errs  []*Error

	maxGroupIndex     int
	groupsOpenedSoFar int
	groupNames        map[string][]nameOcc
	refs              []refOcc
	branchResetStack  []*ast.Node
	lookbehindDepth   int
}

func (v *validation) fail(code Code, offset uint32, format string, args ...any) {
	v.errs = append(v.errs, newErr(code, offset, format, args...))
}

func (v *validation) currentScope() *ast.Node {
	if len(v.branchResetStack) == 0 {
		return nil
	}
	return v.branchResetStack[len(v.branchResetStack)-1]
}

func (v *validation) enter(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindQuantifier:
		if n.Max != ast.Unbounded && n.Min > n.Max {
			v.fail(CodeQuantifierRange, n.Start, "quantifier minimum %d exceeds maximum %d", n.Min, n.Max)
		}
		if v.lookbehindDepth > 0 && n.Max == ast.Unbounded {
			v.fail(CodeLookbehindUnbounded, n.Start, "lookbehind branch has no bounded length")
		}
		if v.opts.Strict && n.Max == ast.Unbounded && hasNestedUnboundedQuantifier(n.Child) {
			v.fail(CodeNestedUnbounded, n.Start, "nested unbounded quantifiers can cause catastrophic backtracking")
		}

	case ast.KindGroup:
		if n.GroupIndex > v.maxGroupIndex {
			v.maxGroupIndex = n.GroupIndex
		}
		if n.Name != "" {
			v.groupNames[n.Name] = append(v.groupNames[n.Name], nameOcc{offset: n.Start, scopeID: v.currentScope()})
		}
		if n.GroupKind == ast.GroupBranchReset {
			v.branchResetStack = append(v.branchResetStack, n)
		}
		if n.GroupKind.IsLookbehind() {
			v.lookbehindDepth++
		}
		if n.GroupKind.IsCapturing() {
			v.groupsOpenedSoFar++
		}

	case ast.KindBackref:
		v.refs = append(v.refs, refOcc{node: n, groupsSoFar: v.groupsOpenedSoFar})

	case ast.KindSubroutine:
		v.refs = append(v.refs, refOcc{node: n, groupsSoFar: v.groupsOpenedSoFar, isSubroutine: true})

	case ast.KindKeep:
		if v.lookbehindDepth > 0 {
			v.fail(CodeLookbehindKeep, n.Start, `\K is not permitted inside a lookbehind`)
		}

	case ast.KindConditional:
		if n.Condition.Kind == ast.KindGroup && !n.Condition.GroupKind.IsLookaround() {
			v.fail(CodeConditionalKind, n.Condition.Start, "conditional group condition must be a group reference, lookaround, or DEFINE, got %s", n.Condition.GroupKind)
		}

	case ast.KindPosixClass:
		if !knownPosixClasses[n.Name] {
			v.fail(CodePosixClassUnknown, n.Start, "unknown POSIX class %q", n.Name)
		} else if n.Name == "word" && n.Negated {
			v.fail(CodePosixNegatedWord, n.Start, "[:^word:] is not a valid PCRE2 POSIX class")
		}

	case ast.KindUnicodeProp:
		if !knownUnicodeProperties[n.Name] {
			v.fail(CodeUnicodePropUnknown, n.Start, "unknown Unicode property %q", n.Name)
		}

	case ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		if n.CodePoint > 0x10FFFF {
			v.fail(CodeUnicodeCodepoint, n.Start, "code point U+%X exceeds U+10FFFF", n.CodePoint)
		}

	case ast.KindRange:
		if n.Lo > n.Hi {
			v.fail(CodeRangeEndpoint, n.Start, "range endpoints out of order: %U > %U", n.Lo, n.Hi)
		}
	}
	return true
}

func (v *validation) leave(n *ast.Node) {
	switch n.Kind {
	case ast.KindGroup:
		if n.GroupKind == ast.GroupBranchReset {
			v.branchResetStack = v.branchResetStack[:len(v.branchResetStack)-1]
		}
		if n.GroupKind.IsLookbehind() {
			v.lookbehindDepth--
		}
	}
}

// hasNestedUnboundedQuantifier reports whether n's subtree contains another
// unbounded quantifier whose repeated atom can match the empty-or-nonempty
// overlap that drives catastrophic backtracking; a coarse structural
// approximation used only under Options.Strict (spec.md §4.5's "flagged
// here only in strict mode" carve-out — the full analysis lives in the
// ReDoS analyzer).
func hasNestedUnboundedQuantifier(n *ast.Node) bool {
	if n == nil {
		return false
	}
	found := false
	ast.Walk(n, &ast.Visitor{Enter: func(c *ast.Node) bool {
		if c.Kind == ast.KindQuantifier && c.Max == ast.Unbounded {
			found = true
		}
		return !found
	}})
	return found
}

// checkBackrefs resolves every numeric/named backreference and subroutine
// call against the group table built during the walk. Forward references
// are legal in PCRE2 (a backref may textually precede the group it names),
// so resolution only happens after the full tree is seen; relative
// references (\g{-1}, (?-1)) are resolved against the count of groups
// opened strictly before the reference, snapshotted while walking.
func (v *validation) checkBackrefs() {
	for _, r := range v.refs {
		n := r.node
		if n.Recursive {
			continue // (?R)/\g{0} always resolves to the whole pattern
		}
		if n.Name != "" {
			if _, ok := v.groupNames[n.Name]; !ok {
				code := CodeBackrefUnresolved
				kind := "backreference"
				if r.isSubroutine {
					kind = "subroutine call"
				}
				v.fail(code, n.Start, "%s to undefined group name %q", kind, n.Name)
			}
			continue
		}
		index := n.RefIndex
		if n.Relative {
			index = r.groupsSoFar + n.RefIndex + 1
		}
		if index == 0 && !n.Relative {
			v.fail(CodeBackrefZero, n.Start, `\0 is not a valid backreference index`)
			continue
		}
		if index < 1 || index > v.maxGroupIndex {
			kind := "backreference"
			if r.isSubroutine {
				kind = "subroutine call"
			}
			v.fail(CodeBackrefUnresolved, n.Start, "%s to group %d, which does not exist", kind, index)
		}
	}
}

func (v *validation) checkGroupNames() {
	if v.flags.Has(ast.FlagDupNames) {
		// The J flag lets the parser accept a repeated name outside a
		// branch-reset group too (parser/atom.go's parseModifierGroup);
		// matches the parser's own decision rather than re-deriving it.
		return
	}
	for name, occs := range v.groupNames {
		if len(occs) < 2 {
			continue
		}
		allSameBranchReset := true
		first := occs[0].scopeID
		for _, o := range occs[1:] {
			if o.scopeID == nil || o.scopeID != first {
				allSameBranchReset = false
				break
			}
		}
		if allSameBranchReset {
			continue
		}
		for _, o := range occs[1:] {
			v.fail(CodeDuplicateGroupName, o.offset, "duplicate group name %q (only distinct branches of a (?|...) reset group may repeat a name)", name)
		}
	}
}
