package compiler

import (
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/parser"
	"github.com/coregx/regexlint/token"
)

func parsePattern(t *testing.T, body string, flags ast.Flags) *ast.Node {
	t.Helper()
	lx := lexer.New([]byte(body), flags)
	stream := token.NewStream(lx)
	p := parser.New(stream, flags, '/', len(body), parser.DefaultLimits())
	n, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", body, err)
	}
	return n
}

// roundTrip parses body, compiles the resulting tree, reparses the
// compiled text, and returns both trees for structural comparison.
func roundTrip(t *testing.T, body string) (orig, reparsed *ast.Node, compiled string) {
	t.Helper()
	orig = parsePattern(t, body, 0)
	compiled = Compile(orig, Options{})
	// compiled is "delim body delim flags"; strip the wrapper the same
	// way the facade would before re-lexing the body.
	inner := compiled[1 : len(compiled)-1-len(orig.Flags.String())]
	reparsed = parsePattern(t, inner, orig.Flags)
	return orig, reparsed, compiled
}

func sameShape(t *testing.T, a, b *ast.Node, path string) {
	t.Helper()
	if a == nil || b == nil {
		if a != b {
			t.Errorf("%s: nil mismatch (%v vs %v)", path, a, b)
		}
		return
	}
	if a.Kind != b.Kind {
		t.Errorf("%s: kind mismatch %v vs %v", path, a.Kind, b.Kind)
		return
	}
	ac, bc := a.ChildNodes(), b.ChildNodes()
	if len(ac) != len(bc) {
		t.Errorf("%s: child count mismatch %d vs %d", path, len(ac), len(bc))
		return
	}
	for i := range ac {
		sameShape(t, ac[i], bc[i], path+"/"+a.Kind.String())
	}
}

func TestCompileRoundTripLiteralSequence(t *testing.T) {
	_, reparsed, compiled := roundTrip(t, "abc")
	if compiled != "/abc/" {
		t.Errorf("compiled = %q, want /abc/", compiled)
	}
	if reparsed.Child.Kind != ast.KindSequence {
		t.Errorf("reparsed = %+v", reparsed)
	}
}

func TestCompileRoundTripAlternationAndGroups(t *testing.T) {
	for _, pattern := range []string{
		"a|b|c",
		"(a)(b)",
		"(?:abc)",
		"(?<foo>a)",
		"(?>a)",
		"(?=a)",
		"(?!a)",
		"(?<=a)",
		"(?<!a)",
		"(?|a|b)",
		"a{2,4}",
		"a*?",
		"a++",
		`(a)\1`,
		"(?(1)a|b)",
		"(?(?=a)b|c)",
		"(?(DEFINE)(?<x>a))",
		"[a-z0-9]",
		"[^abc]",
		`\d\s\w`,
		`\p{L}`,
		`\x{1F600}`,
	} {
		orig, reparsed, _ := roundTrip(t, pattern)
		sameShape(t, orig.Child, reparsed.Child, pattern)
	}
}

func TestCompileEscapesMetacharacters(t *testing.T) {
	orig := parsePattern(t, `a\.b`, 0)
	compiled := Compile(orig, Options{})
	if compiled != `/a\.b/` {
		t.Errorf("compiled = %q, want /a\\.b/", compiled)
	}
}

func TestCompilePreservesFlags(t *testing.T) {
	orig := parsePattern(t, "abc", ast.FlagI|ast.FlagM)
	compiled := Compile(orig, Options{})
	if compiled != "/abc/im" {
		t.Errorf("compiled = %q, want /abc/im", compiled)
	}
}

func TestCompilePrettyAddsExtendedFlag(t *testing.T) {
	orig := parsePattern(t, "ab", 0)
	compiled := Compile(orig, Options{Pretty: true})
	if compiled[len(compiled)-1] != 'x' {
		t.Errorf("pretty-compiled flags = %q, want trailing x", compiled)
	}
}
