package linter

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/compiler"
)

// checkAlternationIssues flags empty alternation branches and exact
// duplicate branches within each Alternation node in root.
func checkAlternationIssues(root *ast.Node, cfg Config) []Issue {
	var issues []Issue
	walkNodes(root, func(n *ast.Node) {
		if n.Kind != ast.KindAlternation {
			return
		}
		texts := make([]string, len(n.Children))
		for i, b := range n.Children {
			texts[i] = compiler.Compile(b, compiler.Options{})
		}

		if cfg.EmptyAlternatives {
			for i, b := range n.Children {
				if texts[i] == "" {
					issues = append(issues, Issue{
						ID:       "regex.lint.alternation.empty_branch",
						Severity: SeverityWarning,
						Message:  "empty alternation branch matches everywhere in this position, making the whole alternation trivially satisfiable",
						Hint:     "remove the empty branch, or replace the alternation with a ? quantifier on the remaining branches",
						Range:    Range{b.Start, b.End},
					})
				}
			}
		}

		if cfg.DuplicateBranches {
			issues = append(issues, duplicateBranches(n.Children, texts, cfg)...)
		}
	})
	return issues
}

func dupIssue(branch *ast.Node) Issue {
	return Issue{
		ID:       "regex.lint.alternation.duplicate_disjunction",
		Severity: SeverityWarning,
		Message:  "alternation branch is an exact duplicate of an earlier branch and can never be reached",
		Hint:     "remove the duplicate branch",
		Range:    Range{branch.Start, branch.End},
	}
}

// duplicateBranches reports every branch that exactly duplicates an
// earlier sibling's rendered text. Below cfg's threshold it compares
// pairwise directly (cheap for a handful of branches); at or above it,
// it builds one Aho-Corasick automaton over the branch texts and finds
// every duplicate in a single scan instead of len(branches)^2 pairwise
// comparisons (spec.md §4.7's duplicate-disjunction rule, grounded on
// the literal package's own >=8-alternative threshold for switching to
// a multi-pattern automaton).
func duplicateBranches(branches []*ast.Node, texts []string, cfg Config) []Issue {
	if len(branches) < cfg.DuplicateBranchAhoCorasickThreshold {
		return duplicateBranchesPairwise(branches, texts)
	}
	if issues, ok := duplicateBranchesAhoCorasick(branches, texts); ok {
		return issues
	}
	return duplicateBranchesPairwise(branches, texts)
}

func duplicateBranchesPairwise(branches []*ast.Node, texts []string) []Issue {
	var issues []Issue
	for i := 1; i < len(branches); i++ {
		if texts[i] == "" {
			continue
		}
		for j := 0; j < i; j++ {
			if texts[i] == texts[j] {
				issues = append(issues, dupIssue(branches[i]))
				break
			}
		}
	}
	return issues
}

type branchSpan struct {
	start, end int
}

// duplicateBranchesAhoCorasick joins every branch's rendered text into
// one NUL-separated haystack, builds a single automaton over the
// distinct non-empty texts, and scans the haystack once. A match is
// only trusted as a duplicate when its span lines up exactly with one
// of the designated per-branch offsets (ruling out a shorter branch's
// text merely occurring as a substring of a longer, unrelated one, e.g.
// "cat" inside "category"). ok is false when the automaton fails to
// build, letting the caller fall back to pairwise comparison.
func duplicateBranchesAhoCorasick(branches []*ast.Node, texts []string) ([]Issue, bool) {
	spans := make([]branchSpan, len(texts))
	var haystack []byte
	builder := ahocorasick.NewBuilder()
	added := map[string]bool{}
	for i, t := range texts {
		start := len(haystack)
		haystack = append(haystack, t...)
		haystack = append(haystack, 0)
		spans[i] = branchSpan{start, start + len(t)}
		if t != "" && !added[t] {
			builder.AddPattern([]byte(t))
			added[t] = true
		}
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, false
	}

	matchEnd := map[int]int{}
	pos := 0
	for pos < len(haystack) {
		m := automaton.Find(haystack, pos)
		if m == nil {
			break
		}
		matchEnd[m.Start] = m.End
		pos = m.Start + 1
	}

	byText := map[string][]int{}
	for i, t := range texts {
		if t == "" || matchEnd[spans[i].start] != spans[i].end {
			continue
		}
		byText[t] = append(byText[t], i)
	}

	var issues []Issue
	for _, idxs := range byText {
		if len(idxs) < 2 {
			continue
		}
		for _, i := range idxs[1:] {
			issues = append(issues, dupIssue(branches[i]))
		}
	}
	return issues, true
}
