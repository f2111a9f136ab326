package linter

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/internal/flaganalysis"
)

// checkUselessFlags flags FlagS/FlagM/FlagI when the structural scan
// optimizer.applyFlagCleanup would use to drop them finds nothing to
// act on — the same question, asked here for diagnosis rather than
// rewrite.
func checkUselessFlags(root *ast.Node) []Issue {
	if root.Kind != ast.KindRegex {
		return nil
	}
	var issues []Issue
	if root.Flags.Has(ast.FlagS) && !flaganalysis.HasDot(root.Child) {
		issues = append(issues, Issue{
			ID:               "regex.lint.flags.useless_s",
			Severity:         SeverityStyle,
			Message:          "flag s (dotall) has no effect: the pattern contains no .",
			Hint:             "remove the s flag",
			Range:            Range{root.Start, root.End},
			SuggestedRewrite: "",
		})
	}
	if root.Flags.Has(ast.FlagM) && !flaganalysis.HasLineAnchor(root.Child) {
		issues = append(issues, Issue{
			ID:       "regex.lint.flags.useless_m",
			Severity: SeverityStyle,
			Message:  "flag m (multiline) has no effect: the pattern contains no ^ or $",
			Hint:     "remove the m flag",
			Range:    Range{root.Start, root.End},
		})
	}
	if root.Flags.Has(ast.FlagI) && !flaganalysis.HasCaseBearingConstruct(root.Child) {
		issues = append(issues, Issue{
			ID:       "regex.lint.flags.useless_i",
			Severity: SeverityStyle,
			Message:  "flag i (case-insensitive) has no effect: the pattern contains no case-bearing construct",
			Hint:     "remove the i flag",
			Range:    Range{root.Start, root.End},
		})
	}
	return issues
}
