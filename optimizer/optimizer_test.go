package optimizer

import (
	"strings"
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/compiler"
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

func render(n *ast.Node) string {
	return compiler.Fragment(n, compiler.Options{})
}

func TestOptimizeCoalesceLiterals(t *testing.T) {
	root := mustParse(t, "a(?:bc)d")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "abcd" {
		t.Errorf("got %q, want %q", got, "abcd")
	}
	found := false
	for _, rw := range res.Rewrites {
		if rw.Rule == "literal_coalesce" || rw.Rule == "group_flatten" {
			found = true
		}
	}
	if !found {
		t.Error("expected a literal_coalesce or group_flatten rewrite to be recorded")
	}
}

func TestOptimizeFlattenGroups(t *testing.T) {
	root := mustParse(t, "(?:abc)")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestOptimizeFlattenGroupsSkipsAlternationChild(t *testing.T) {
	root := mustParse(t, "(?:a|b)c")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if !strings.Contains(got, "|") {
		t.Errorf("expected the alternation's grouping parens to survive, got %q", got)
	}
}

func TestOptimizeAlternationToCharClass(t *testing.T) {
	root := mustParse(t, "a|b|c")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "[abc]" {
		t.Errorf("got %q, want %q", got, "[abc]")
	}
}

func TestOptimizeAlternationToCharClassSkipsBareHyphen(t *testing.T) {
	root := mustParse(t, "a|-|c")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got == "[a-c]" {
		t.Errorf("got %q, a bare hyphen branch must never collapse into a range-forming position", got)
	}
}

func TestOptimizeCanonicalizeCharClassToShorthand(t *testing.T) {
	root := mustParse(t, "[0-9]")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "\\d" {
		t.Errorf("got %q, want %q", got, "\\d")
	}
}

func TestOptimizeCanonicalizeCharClassSuppressedUnderFlagU(t *testing.T) {
	pattern := "[0-9]"
	lx := lexer.New([]byte(pattern), ast.FlagU)
	stream := token.NewStream(lx)
	p := parser.New(stream, ast.FlagU, '/', len(pattern), parser.DefaultLimits())
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got == "\\d" {
		t.Errorf("got %q, FlagU should suppress the \\d substitution", got)
	}
}

func TestOptimizeCanonicalizeCharClassMergesOverlappingRanges(t *testing.T) {
	root := mustParse(t, "[a-cb-d]")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "[a-d]" {
		t.Errorf("got %q, want %q", got, "[a-d]")
	}
}

func TestOptimizeCompactQuantifiers(t *testing.T) {
	root := mustParse(t, "aaa")
	cfg := DefaultConfig()
	cfg.MinQuantifierCount = 3
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "a{3}" {
		t.Errorf("got %q, want %q", got, "a{3}")
	}
}

func TestOptimizeCompactQuantifiersRespectsMinCount(t *testing.T) {
	root := mustParse(t, "aa")
	cfg := DefaultConfig()
	cfg.MinQuantifierCount = 3
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "aa" {
		t.Errorf("got %q, want %q (run shorter than MinQuantifierCount must stay as-is)", got, "aa")
	}
}

func TestOptimizeAutoPossessify(t *testing.T) {
	root := mustParse(t, "a+b")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "a++b" {
		t.Errorf("got %q, want %q", got, "a++b")
	}
}

func TestOptimizeAutoPossessifySkipsOverlappingFollower(t *testing.T) {
	root := mustParse(t, "a+a")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got == "a++a" {
		t.Errorf("got %q, a and its follower overlap so possessifying would change the match", got)
	}
}

func TestOptimizeCleanupFlags(t *testing.T) {
	root := mustParse(t, "abc")
	root.Flags |= ast.FlagS | ast.FlagM
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	if res.Root.Flags.Has(ast.FlagS) {
		t.Error("expected FlagS to be dropped: body has no dot")
	}
	if res.Root.Flags.Has(ast.FlagM) {
		t.Error("expected FlagM to be dropped: body has no line anchor")
	}
}

func TestOptimizeCleanupFlagsKeepsFlagsInUse(t *testing.T) {
	root := mustParse(t, "^a.b$")
	root.Flags |= ast.FlagS | ast.FlagM
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	if !res.Root.Flags.Has(ast.FlagS) {
		t.Error("expected FlagS to survive: body has a dot")
	}
	if !res.Root.Flags.Has(ast.FlagM) {
		t.Error("expected FlagM to survive: body has a line anchor")
	}
}

func TestOptimizeCleanupFlagsKeepsFlagIWhenCaseBearing(t *testing.T) {
	root := mustParse(t, "abc")
	root.Flags |= ast.FlagI
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	if !res.Root.Flags.Has(ast.FlagI) {
		t.Error("expected FlagI to survive: body has case-bearing literals")
	}
}

func TestOptimizeFactorizeAlternationOffByDefault(t *testing.T) {
	root := mustParse(t, "ab|ac")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "ab|ac" {
		t.Errorf("got %q, FactorizeAlternation defaults to off so the tree should pass through unchanged", got)
	}
}

func TestOptimizeFactorizeAlternationWhenEnabled(t *testing.T) {
	root := mustParse(t, "ab|ac")
	cfg := DefaultConfig()
	cfg.FactorizeAlternation = true
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "a(?:b|c)" {
		t.Errorf("got %q, want %q", got, "a(?:b|c)")
	}
}

func TestOptimizeFixedPointChainsFlattenThenCoalesce(t *testing.T) {
	root := mustParse(t, "(?:a)(?:b)(?:c)")
	cfg := DefaultConfig()
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got != "abc" {
		t.Errorf("got %q, want %q (group flatten then literal coalesce across multiple fixed-point passes)", got, "abc")
	}
}

func TestOptimizeNoRuleEnabledIsIdentity(t *testing.T) {
	root := mustParse(t, "(?:a)(?:b)(?:c)")
	cfg := Config{}
	res := Optimize(root, cfg)
	got := render(res.Root)
	want := render(root)
	if got != want {
		t.Errorf("got %q, want %q (no rules enabled should leave the tree untouched)", got, want)
	}
	if len(res.Rewrites) != 0 {
		t.Errorf("expected no rewrites recorded, got %d", len(res.Rewrites))
	}
}

func TestOptimizeMinSavingsCharsSuppressesMarginalRewrite(t *testing.T) {
	root := mustParse(t, "[0-9]")
	cfg := DefaultConfig()
	cfg.MinSavingsChars = 100
	res := Optimize(root, cfg)
	got := render(res.Root)
	if got == "\\d" {
		t.Errorf("got %q, a 100-char savings threshold should suppress the \\d substitution", got)
	}
}

func TestOptimizePreservesOriginalTree(t *testing.T) {
	root := mustParse(t, "(?:abc)")
	before := render(root)
	cfg := DefaultConfig()
	Optimize(root, cfg)
	after := render(root)
	if before != after {
		t.Errorf("Optimize must not mutate its input: before=%q after=%q", before, after)
	}
}

func TestOptimizeVerificationRejectsUnsoundRewrite(t *testing.T) {
	// A regression guard: runs every rule at DefaultConfig (verification
	// on) over a few patterns and checks that each optimized tree's
	// rendered text parses again. It does not compare the languages of
	// the two forms.
	patterns := []string{"a(?:bc)d", "a|b|c", "[0-9]", "aaa", "a+b", "[a-cb-d]"}
	for _, p := range patterns {
		root := mustParse(t, p)
		res := Optimize(root, DefaultConfig())
		roundTripped := render(res.Root)
		if _, err := parseAgain(t, roundTripped); err != nil {
			t.Errorf("optimized form of %q produced unparseable text %q: %v", p, roundTripped, err)
		}
	}
}

func parseAgain(t *testing.T, pattern string) (*ast.Node, error) {
	t.Helper()
	lx := lexer.New([]byte(pattern), 0)
	stream := token.NewStream(lx)
	p := parser.New(stream, 0, '/', len(pattern), parser.DefaultLimits())
	return p.Parse()
}
