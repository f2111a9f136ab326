package linter

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/redos"
)

// checkRedosHints surfaces redos/'s theoretical structural detectors as
// linter Issues, deferring severity to that package rather than
// re-deriving it (spec.md §4.7: "Catastrophic-nesting hint (defer to
// ReDoS analyzer for severity)" and "Unbounded-quantifier alternation
// overlap"). Only the two quantifier-adjacent findings that are
// genuinely a *linting* concern (as opposed to a runtime-risk concern
// the facade's dedicated redos operation already owns in full) are
// translated here: nested unbounded quantifiers and overlapping
// alternation branches under repetition. Empty-match repetition and
// adjacent-quantifier findings stay exclusive to the redos operation —
// they are about backtracking cost, not a structural mistake the
// pattern's author can fix by inspection alone the way the first two
// are.
func checkRedosHints(root *ast.Node) []Issue {
	var issues []Issue
	for _, f := range redos.TheoreticalFindings(root) {
		switch f.Rule {
		case "nested_unbounded_quantifier":
			issues = append(issues, Issue{
				ID:       "regex.lint.quantifier.catastrophic_nesting",
				Severity: redosSeverity(f.Severity),
				Message:  "nested unbounded quantifiers can backtrack exponentially on failure; see the redos analyzer for a confirmed witness",
				Hint:     "wrap the inner repetition in an atomic group, or make it possessive",
				Range:    Range{f.Node.Start, f.Node.End},
			})
		case "overlapping_alternation":
			issues = append(issues, Issue{
				ID:       "regex.lint.alternation.unbounded_overlap",
				Severity: redosSeverity(f.Severity),
				Message:  "alternation branches under an unbounded quantifier share overlapping first characters",
				Hint:     "reorder or merge the overlapping branches so their first characters no longer collide",
				Range:    Range{f.Node.Start, f.Node.End},
			})
		}
	}
	return issues
}

func redosSeverity(s redos.Severity) Severity {
	if s >= redos.High {
		return SeverityError
	}
	return SeverityPerf
}
