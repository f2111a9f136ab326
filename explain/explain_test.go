package explain_test

import (
	"strings"
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/explain"
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

func TestExplainTextMentionsCapturingGroup(t *testing.T) {
	root := mustParse(t, "(abc)+")
	out := explain.Explain(root, explain.Options{Format: explain.Text})
	if !strings.Contains(out, "capturing group #1") {
		t.Fatalf("Explain((abc)+) = %q, want it to mention \"capturing group #1\"", out)
	}
	if !strings.Contains(out, "one or more times") {
		t.Fatalf("Explain((abc)+) = %q, want it to mention \"one or more times\"", out)
	}
}

func TestExplainMentionsLookahead(t *testing.T) {
	root := mustParse(t, "(?=foo)bar")
	out := explain.Explain(root, explain.Options{Format: explain.Text})
	if !strings.Contains(out, "lookahead") {
		t.Fatalf("Explain((?=foo)bar) = %q, want it to mention lookahead", out)
	}
}

func TestExplainHTMLEscapesLiteralBytes(t *testing.T) {
	root := mustParse(t, `<b>`)
	out := explain.Explain(root, explain.Options{Format: explain.HTML})
	if strings.Contains(out, "<b>") {
		t.Fatalf("Explain HTML output leaked unescaped literal bytes: %q", out)
	}
	if !strings.Contains(out, "&lt;") || !strings.Contains(out, "&gt;") {
		t.Fatalf("Explain HTML output = %q, want escaped &lt;/&gt;", out)
	}
	if !strings.Contains(out, "<div") {
		t.Fatalf("Explain HTML output = %q, want div wrapping", out)
	}
}

func TestExplainMentionsFlags(t *testing.T) {
	root := mustParseFlags(t, "abc", ast.FlagI|ast.FlagM)
	out := explain.Explain(root, explain.Options{Format: explain.Text})
	if !strings.Contains(out, "with flags") {
		t.Fatalf("Explain with flags = %q, want a flags mention", out)
	}
}

func mustParseFlags(t *testing.T, pattern string, flags ast.Flags) *ast.Node {
	t.Helper()
	lx := lexer.New([]byte(pattern), flags)
	stream := token.NewStream(lx)
	p := parser.New(stream, flags, '/', len(pattern), parser.DefaultLimits())
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	return root
}
