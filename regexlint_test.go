package regexlint_test

import (
	"strings"
	"testing"

	"github.com/coregx/regexlint"
	"github.com/coregx/regexlint/explain"
	"github.com/coregx/regexlint/linter"
	"github.com/coregx/regexlint/literal"
	"github.com/coregx/regexlint/sample"
)

func TestParseRoundTripsThroughCompile(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/(foo|bar)\d+/i`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pat.Body != `(foo|bar)\d+` {
		t.Fatalf("Body = %q, want %q", pat.Body, `(foo|bar)\d+`)
	}
	got := f.Compile(pat, false)
	if got != `/(foo|bar)\d+/i` {
		t.Fatalf("Compile round trip = %q, want %q", got, `/(foo|bar)\d+/i`)
	}
}

func TestParseAcceptsPairedDelimiters(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`{abc}`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse({abc}): %v", err)
	}
	if pat.Body != "abc" {
		t.Fatalf("Body = %q, want %q", pat.Body, "abc")
	}
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	f := regexlint.New(nil)
	_, err := f.Parse(`/abc/q`, regexlint.DefaultOptions())
	if err == nil {
		t.Fatalf("Parse with an unknown flag letter: want an error, got none")
	}
}

func TestParseRejectsMissingClosingDelimiter(t *testing.T) {
	f := regexlint.New(nil)
	_, err := f.Parse(`/abc`, regexlint.DefaultOptions())
	if err == nil {
		t.Fatalf("Parse with no closing delimiter: want an error, got none")
	}
}

func TestParseCachesByPatternAndOptions(t *testing.T) {
	f := regexlint.New(nil)
	opts := regexlint.DefaultOptions()
	a, err := f.Parse(`/abc/`, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := f.Parse(`/abc/`, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Root != b.Root {
		t.Fatalf("second Parse did not hit the cache: got a distinct *ast.Node")
	}
}

func TestValidateReportsUnresolvedBackref(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/(a)\2/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := f.Validate(pat, regexlint.DefaultOptions()); err == nil {
		t.Fatalf("Validate(/(a)\\2/): want an error for the unresolved backreference, got none")
	}
}

func TestValidateAcceptsWellFormedPattern(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/(a)\1/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := f.Validate(pat, regexlint.DefaultOptions()); err != nil {
		t.Fatalf("Validate(/(a)\\1/) = %v, want nil", err)
	}
}

func TestLintFlagsUselessFlag(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/abc/s`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	report := f.Lint(pat, linter.DefaultConfig())
	if len(report.Issues) == 0 {
		t.Fatalf("Lint(/abc/s) = no issues, want a useless-flag warning")
	}
}

func TestAnalyzeScoresNestedUnboundedHigher(t *testing.T) {
	f := regexlint.New(nil)
	simple, err := f.Parse(`/abc/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	nested, err := f.Parse(`/(a+)*/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	simpleScore, _ := f.Analyze(simple, 100)
	nestedScore, _ := f.Analyze(nested, 100)
	if nestedScore <= simpleScore {
		t.Fatalf("Analyze nested-unbounded score %d, want it greater than simple score %d", nestedScore, simpleScore)
	}
}

func TestRedosFlagsNestedUnbounded(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/(a+)*/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	analysis, err := f.Redos(pat, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Redos: %v", err)
	}
	if analysis.IsSafe(70) {
		t.Fatalf("Redos(/(a+)*/) reported safe, want unsafe")
	}
}

func TestExplainMentionsCapturingGroup(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/(abc)+/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := f.Explain(pat, explain.Options{Format: explain.Text})
	if !strings.Contains(out, "capturing group") {
		t.Fatalf("Explain = %q, want it to mention a capturing group", out)
	}
}

func TestGenerateMatchesLiteral(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/hello/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := f.Generate(pat, 1, sample.DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "hello" {
		t.Fatalf("Generate(/hello/) = %q, want %q", got, "hello")
	}
}

func TestLiteralsExtractsPrefix(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/hello world/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	set := f.Literals(pat, literal.DefaultConfig())
	if !set.Complete {
		t.Fatalf("Literals(/hello world/).Complete = false, want true")
	}
}

func TestOptimizeCoalescesLiterals(t *testing.T) {
	f := regexlint.New(nil)
	pat, err := f.Parse(`/abc/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	result := f.Optimize(pat, regexlint.DefaultOptions())
	got := f.Compile(&regexlint.Pattern{Root: result.Root}, false)
	if got != "/abc/" {
		t.Fatalf("Optimize(/abc/) compiled = %q, want %q", got, "/abc/")
	}
}

func TestCompareDetectsSubset(t *testing.T) {
	f := regexlint.New(nil)
	narrow, err := f.Parse(`/cat/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wide, err := f.Parse(`/cat|dog/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cmp, err := f.Compare(narrow, wide)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !cmp.AIsSubsetOfB {
		t.Fatalf("Compare(/cat/, /cat|dog/): want cat a subset of cat|dog")
	}
	if cmp.Equivalent {
		t.Fatalf("Compare(/cat/, /cat|dog/): want not equivalent")
	}
	if cmp.OnlyInB == "" {
		t.Fatalf("Compare(/cat/, /cat|dog/): want a witness only in /cat|dog/")
	}
}

func TestCompareEquivalentPatterns(t *testing.T) {
	f := regexlint.New(nil)
	a, err := f.Parse(`/cat|dog/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := f.Parse(`/dog|cat/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cmp, err := f.Compare(a, b)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !cmp.Equivalent {
		t.Fatalf("Compare(/cat|dog/, /dog|cat/): want equivalent")
	}
}

func TestCompareRejectsLookaround(t *testing.T) {
	f := regexlint.New(nil)
	a, err := f.Parse(`/(?=foo)bar/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b, err := f.Parse(`/bar/`, regexlint.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := f.Compare(a, b); err == nil {
		t.Fatalf("Compare with a lookaround: want a ComplexityError, got none")
	}
}

func TestOptionsValidateRejectsZeroMaxNodes(t *testing.T) {
	opts := regexlint.DefaultOptions()
	opts.MaxNodes = 0
	if err := opts.Validate(); err == nil {
		t.Fatalf("Validate with MaxNodes=0: want an error, got none")
	}
}
