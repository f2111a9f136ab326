package linter

import (
	"sort"

	"github.com/coregx/regexlint/ast"
)

// checkUselessBackrefs flags a capturing group no backreference,
// subroutine call, or named condition ever targets — a candidate for
// the optimizer's hypothetical group-demotion pass (spec.md §4.7:
// "warn if optimizer can drop to non-capturing"). This package does not
// perform the demotion itself, only flags the opportunity; optimizer/
// has no such rule yet, since changing capture-group shape is a
// judgment call the facade should surface, not apply silently.
func checkUselessBackrefs(root *ast.Node) []Issue {
	groups := map[int]*ast.Node{}
	referenced := map[int]bool{}
	referencedNames := map[string]bool{}

	walkNodes(root, func(n *ast.Node) {
		switch n.Kind {
		case ast.KindGroup:
			if !n.GroupKind.IsCapturing() || n.GroupIndex == 0 {
				return
			}
			groups[n.GroupIndex] = n
		case ast.KindBackref:
			if n.Name != "" {
				referencedNames[n.Name] = true
			} else {
				referenced[n.RefIndex] = true
			}
		case ast.KindSubroutine:
			if n.Name != "" {
				referencedNames[n.Name] = true
			} else if n.RefIndex != 0 {
				referenced[n.RefIndex] = true
			}
		case ast.KindConditionRef:
			if n.Name != "" {
				referencedNames[n.Name] = true
			} else if n.RefIndex != 0 {
				referenced[n.RefIndex] = true
			}
		}
	})

	var issues []Issue
	for idx, g := range groups {
		if referenced[idx] {
			continue
		}
		if g.Name != "" && referencedNames[g.Name] {
			continue
		}
		issues = append(issues, Issue{
			ID:               "regex.lint.group.unreferenced_capture",
			Severity:         SeverityPerf,
			Message:          "capturing group is never referenced by a backreference, subroutine, or condition",
			Hint:             "use a non-capturing group (?:...) unless the capture itself is consumed by the caller",
			Range:            Range{g.Start, g.End},
			SuggestedRewrite: "(?:...)",
		})
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Range.Start < issues[j].Range.Start })
	return issues
}
