package parser

import (
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/token"
)

func parse(t *testing.T, pattern string, flags ast.Flags) (*ast.Node, error) {
	t.Helper()
	lx := lexer.New([]byte(pattern), flags)
	stream := token.NewStream(lx)
	p := New(stream, flags, '/', len(pattern), DefaultLimits())
	return p.Parse()
}

func mustParse(t *testing.T, pattern string) *ast.Node {
	t.Helper()
	n, err := parse(t, pattern, 0)
	if err != nil {
		t.Fatalf("parse(%q): unexpected error: %v", pattern, err)
	}
	return n
}

func TestParserLiteralSequence(t *testing.T) {
	root := mustParse(t, "abc")
	if root.Kind != ast.KindRegex {
		t.Fatalf("root kind = %v, want KindRegex", root.Kind)
	}
	seq := root.Child
	if seq.Kind != ast.KindSequence || len(seq.Children) != 1 {
		t.Fatalf("child = %+v, want a 1-item Sequence (one merged literal run)", seq)
	}
}

func TestParserAlternation(t *testing.T) {
	root := mustParse(t, "a|b|c")
	alt := root.Child
	if alt.Kind != ast.KindAlternation || len(alt.Children) != 3 {
		t.Fatalf("child = %+v, want a 3-branch Alternation", alt)
	}
}

func TestParserQuantifier(t *testing.T) {
	root := mustParse(t, "a{2,4}")
	seq := root.Child
	q := seq.Children[0]
	if q.Kind != ast.KindQuantifier || q.Min != 2 || q.Max != 4 || q.Mode != ast.Greedy {
		t.Fatalf("quantifier = %+v, want Min=2 Max=4 Greedy", q)
	}
}

func TestParserLazyQuantifier(t *testing.T) {
	root := mustParse(t, "a*?")
	q := root.Child.Children[0]
	if q.Mode != ast.Lazy {
		t.Errorf("mode = %v, want Lazy", q.Mode)
	}
}

func TestParserQuantifierWithoutTarget(t *testing.T) {
	_, err := parse(t, "*abc", 0)
	if err == nil {
		t.Fatal("expected error for leading quantifier, got nil")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Code != ErrQuantifierNoTarget {
		t.Fatalf("error = %v, want ErrQuantifierNoTarget", err)
	}
}

func TestParserCapturingGroup(t *testing.T) {
	root := mustParse(t, "(a)(b)")
	seq := root.Child
	if len(seq.Children) != 2 {
		t.Fatalf("got %d items, want 2 groups", len(seq.Children))
	}
	if seq.Children[0].GroupIndex != 1 || seq.Children[1].GroupIndex != 2 {
		t.Errorf("group indices = %d, %d, want 1, 2", seq.Children[0].GroupIndex, seq.Children[1].GroupIndex)
	}
}

func TestParserNonCapturingGroup(t *testing.T) {
	root := mustParse(t, "(?:abc)")
	g := root.Child.Children[0]
	if g.Kind != ast.KindGroup || g.GroupKind != ast.GroupNonCapturing {
		t.Fatalf("group = %+v, want GroupNonCapturing", g)
	}
	if g.GroupIndex != 0 {
		t.Errorf("GroupIndex = %d, want 0 (non-capturing)", g.GroupIndex)
	}
}

func TestParserNamedGroup(t *testing.T) {
	root := mustParse(t, "(?<foo>abc)")
	g := root.Child.Children[0]
	if g.GroupKind != ast.GroupNamed || g.Name != "foo" || g.GroupIndex != 1 {
		t.Fatalf("group = %+v, want Named foo index 1", g)
	}
}

func TestParserDuplicateGroupNameRejected(t *testing.T) {
	_, err := parse(t, "(?<foo>a)(?<foo>b)", 0)
	if err == nil {
		t.Fatal("expected duplicate-name error, got nil")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Code != ErrDuplicateGroupName {
		t.Fatalf("error = %v, want ErrDuplicateGroupName", err)
	}
}

func TestParserDuplicateGroupNameAllowedUnderJFlag(t *testing.T) {
	_, err := parse(t, "(?<foo>a)(?<foo>b)", ast.FlagDupNames)
	if err != nil {
		t.Fatalf("unexpected error with J flag: %v", err)
	}
}

func TestParserLookaround(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ast.GroupKind
	}{
		{"(?=a)", ast.GroupLookaheadPos},
		{"(?!a)", ast.GroupLookaheadNeg},
		{"(?<=a)", ast.GroupLookbehindPos},
		{"(?<!a)", ast.GroupLookbehindNeg},
	}
	for _, tt := range tests {
		root := mustParse(t, tt.pattern)
		if root.Child.Children[0].GroupKind != tt.kind {
			t.Errorf("pattern %q: group kind = %v, want %v", tt.pattern, root.Child.Children[0].GroupKind, tt.kind)
		}
	}
}

func TestParserCharClassWithRange(t *testing.T) {
	root := mustParse(t, "[a-z0-9]")
	cc := root.Child.Children[0]
	if cc.Kind != ast.KindCharClass || len(cc.Children) != 2 {
		t.Fatalf("class = %+v, want 2 items (two ranges)", cc)
	}
	r1 := cc.Children[0]
	if r1.Kind != ast.KindRange || r1.Lo != 'a' || r1.Hi != 'z' {
		t.Errorf("range 1 = %+v, want a-z", r1)
	}
	r2 := cc.Children[1]
	if r2.Kind != ast.KindRange || r2.Lo != '0' || r2.Hi != '9' {
		t.Errorf("range 2 = %+v, want 0-9", r2)
	}
}

func TestParserCharClassNegated(t *testing.T) {
	root := mustParse(t, "[^abc]")
	cc := root.Child.Children[0]
	if !cc.Negated {
		t.Error("class.Negated = false, want true")
	}
}

func TestParserConditionalByIndex(t *testing.T) {
	root := mustParse(t, "(?(1)a|b)")
	cond := root.Child.Children[0]
	if cond.Kind != ast.KindConditional {
		t.Fatalf("root child = %+v, want Conditional", cond)
	}
	if cond.Condition.Kind != ast.KindConditionRef || cond.Condition.CondKind != ast.ConditionByIndex || cond.Condition.RefIndex != 1 {
		t.Errorf("condition = %+v, want ConditionByIndex(1)", cond.Condition)
	}
	if cond.Yes == nil || cond.No == nil {
		t.Error("expected both yes and no branches")
	}
}

func TestParserConditionalLookaround(t *testing.T) {
	root := mustParse(t, "(?(?=a)b|c)")
	cond := root.Child.Children[0]
	if cond.Condition.Kind != ast.KindGroup || cond.Condition.GroupKind != ast.GroupLookaheadPos {
		t.Errorf("condition = %+v, want a lookahead Group", cond.Condition)
	}
}

func TestParserConditionalDefine(t *testing.T) {
	root := mustParse(t, "(?(DEFINE)(?<x>a))")
	cond := root.Child.Children[0]
	if cond.Condition.CondKind != ast.ConditionDefine {
		t.Errorf("condition kind = %v, want ConditionDefine", cond.Condition.CondKind)
	}
}

func TestParserBackref(t *testing.T) {
	root := mustParse(t, `(a)\1`)
	seq := root.Child
	backref := seq.Children[1]
	if backref.Kind != ast.KindBackref || backref.RefIndex != 1 {
		t.Fatalf("backref = %+v, want RefIndex 1", backref)
	}
}

func TestParserUnmatchedParen(t *testing.T) {
	_, err := parse(t, "(abc", 0)
	if err == nil {
		t.Fatal("expected unmatched-paren error, got nil")
	}
}

func TestParserTrailingGroupClose(t *testing.T) {
	_, err := parse(t, "abc)", 0)
	if err == nil {
		t.Fatal("expected error for stray trailing ')', got nil")
	}
}

func TestParserResourceLimitMaxDepth(t *testing.T) {
	pattern := ""
	for i := 0; i < 300; i++ {
		pattern += "("
	}
	pattern += "a"
	for i := 0; i < 300; i++ {
		pattern += ")"
	}
	_, err := parse(t, pattern, 0)
	if err == nil {
		t.Fatal("expected a resource-limit error for 300 nested groups, got nil")
	}
	if _, ok := err.(*ResourceLimitError); !ok {
		t.Fatalf("error type = %T, want *parser.ResourceLimitError", err)
	}
}
