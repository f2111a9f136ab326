package linter

import (
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/parser"
	"github.com/coregx/regexlint/token"
)

func mustParse(t *testing.T, pattern string) *ast.Node {
	t.Helper()
	lx := lexer.New([]byte(pattern), 0)
	stream := token.NewStream(lx)
	p := parser.New(stream, 0, '/', len(pattern), parser.DefaultLimits())
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	return root
}

func hasIssue(report Report, id string) bool {
	for _, iss := range report.Issues {
		if iss.ID == id {
			return true
		}
	}
	return false
}

func TestLintUselessFlagS(t *testing.T) {
	root := mustParse(t, "abc")
	root.Flags |= ast.FlagS
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.flags.useless_s") {
		t.Error("expected useless_s issue")
	}
}

func TestLintKeepsFlagSWhenDotPresent(t *testing.T) {
	root := mustParse(t, "a.c")
	root.Flags |= ast.FlagS
	report := Lint(root, DefaultConfig())
	if hasIssue(report, "regex.lint.flags.useless_s") {
		t.Error("did not expect useless_s issue: pattern contains a dot")
	}
}

func TestLintSuspiciousRange(t *testing.T) {
	root := mustParse(t, "[A-z]")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.charclass.suspicious_range") {
		t.Error("expected suspicious_range issue for [A-z]")
	}
}

func TestLintUselessRange(t *testing.T) {
	root := mustParse(t, "[a-a]")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.charclass.useless_range") {
		t.Error("expected useless_range issue for [a-a]")
	}
}

func TestLintDuplicateCharClassMember(t *testing.T) {
	root := mustParse(t, "[aa]")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.charclass.duplicate_member") {
		t.Error("expected duplicate_member issue for [aa]")
	}
}

func TestLintRedundantQuantifierOne(t *testing.T) {
	root := mustParse(t, "a{1}")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.quantifier.redundant_one") {
		t.Error("expected redundant_one issue for a{1}")
	}
}

func TestLintZeroQuantifier(t *testing.T) {
	root := mustParse(t, "a{0}")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.quantifier.zero") {
		t.Error("expected zero issue for a{0}")
	}
}

func TestLintEmptyAlternationBranch(t *testing.T) {
	root := mustParse(t, "a||b")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.alternation.empty_branch") {
		t.Error("expected empty_branch issue for a||b")
	}
}

func TestLintDuplicateBranchPairwise(t *testing.T) {
	root := mustParse(t, "cat|dog|cat")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.alternation.duplicate_disjunction") {
		t.Error("expected duplicate_disjunction issue for cat|dog|cat")
	}
}

func TestLintDuplicateBranchAhoCorasick(t *testing.T) {
	// 10 branches clears the default 8-branch Aho-Corasick threshold;
	// "dup" appears twice.
	branches := []string{"a0", "a1", "a2", "dup", "a3", "a4", "a5", "dup", "a6", "a7"}
	pattern := branches[0]
	for _, b := range branches[1:] {
		pattern += "|" + b
	}
	root := mustParse(t, pattern)
	cfg := DefaultConfig()
	report := Lint(root, cfg)
	count := 0
	for _, iss := range report.Issues {
		if iss.ID == "regex.lint.alternation.duplicate_disjunction" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 duplicate_disjunction issue (one of the two \"dup\" branches), got %d", count)
	}
}

func TestLintDuplicateBranchAhoCorasickIgnoresSubstringOverlap(t *testing.T) {
	branches := []string{"cat", "category", "b0", "b1", "b2", "b3", "b4", "b5"}
	pattern := branches[0]
	for _, b := range branches[1:] {
		pattern += "|" + b
	}
	root := mustParse(t, pattern)
	report := Lint(root, DefaultConfig())
	if hasIssue(report, "regex.lint.alternation.duplicate_disjunction") {
		t.Error("did not expect a duplicate_disjunction issue: \"cat\" is a substring of \"category\", not an equal branch")
	}
}

func TestLintUselessBackref(t *testing.T) {
	root := mustParse(t, "(abc)def")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.group.unreferenced_capture") {
		t.Error("expected unreferenced_capture issue for an unreferenced capturing group")
	}
}

func TestLintKeepsReferencedBackref(t *testing.T) {
	root := mustParse(t, "(abc)\\1")
	report := Lint(root, DefaultConfig())
	if hasIssue(report, "regex.lint.group.unreferenced_capture") {
		t.Error("did not expect unreferenced_capture issue: group 1 is referenced by \\1")
	}
}

func TestLintRedosHintNestedUnbounded(t *testing.T) {
	root := mustParse(t, "(a+)+b")
	report := Lint(root, DefaultConfig())
	if !hasIssue(report, "regex.lint.quantifier.catastrophic_nesting") {
		t.Error("expected catastrophic_nesting issue for (a+)+b")
	}
}

func TestLintDisabledRuleProducesNoIssue(t *testing.T) {
	root := mustParse(t, "abc")
	root.Flags |= ast.FlagS
	cfg := DefaultConfig()
	cfg.UselessFlags = false
	report := Lint(root, cfg)
	if hasIssue(report, "regex.lint.flags.useless_s") {
		t.Error("expected no issues with UselessFlags disabled")
	}
}

func TestLintCleanPatternHasNoIssues(t *testing.T) {
	root := mustParse(t, "^[a-z]+@[a-z]+\\.[a-z]{2,3}$")
	report := Lint(root, DefaultConfig())
	if len(report.Issues) != 0 {
		t.Errorf("expected no issues for a clean pattern, got %d: %v", len(report.Issues), report.Issues)
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		SeverityStyle: "style", SeverityPerf: "perf", SeverityWarning: "warning", SeverityError: "error",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}

func TestDuplicateBranchThresholdIsConfigurable(t *testing.T) {
	root := mustParse(t, "cat|dog|cat")
	cfg := DefaultConfig()
	cfg.DuplicateBranchAhoCorasickThreshold = 1
	report := Lint(root, cfg)
	if !hasIssue(report, "regex.lint.alternation.duplicate_disjunction") {
		t.Error("expected duplicate_disjunction issue via the Aho-Corasick path with a threshold of 1")
	}
}
