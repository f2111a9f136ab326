package linter

import "github.com/coregx/regexlint/ast"

// checkQuantifierIssues flags a quantifier with no effect at all ({1},
// equivalent to the bare atom) and one that can never match ({0}, which
// always matches the empty string regardless of the atom it quantifies).
func checkQuantifierIssues(root *ast.Node) []Issue {
	var issues []Issue
	walkNodes(root, func(n *ast.Node) {
		if n.Kind != ast.KindQuantifier {
			return
		}
		switch {
		case n.Min == 1 && n.Max == 1:
			issues = append(issues, Issue{
				ID:               "regex.lint.quantifier.redundant_one",
				Severity:         SeverityStyle,
				Message:          "quantifier {1} matches exactly once, same as no quantifier",
				Hint:             "remove the quantifier",
				Range:            Range{n.Start, n.End},
				SuggestedRewrite: "",
			})
		case n.Min == 0 && n.Max == 0:
			issues = append(issues, Issue{
				ID:       "regex.lint.quantifier.zero",
				Severity: SeverityWarning,
				Message:  "quantifier {0} makes the atom it quantifies unreachable; the construct always matches empty",
				Hint:     "remove both the atom and the quantifier",
				Range:    Range{n.Start, n.End},
			})
		}
	})
	return issues
}
