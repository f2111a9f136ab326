// Package highlight renders a parsed pattern's AST as a stream of styled
// tokens (spec.md §4.9's Highlighter): console-ANSI for terminal output,
// or HTML span elements with a class per construct for a web view. Like
// explain/, built from ast.Walk directly — coregex has no highlighting
// surface to ground this on.
package highlight

import (
	"html"
	"strings"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/compiler"
)

// Style labels a rendered span; callers map it to a color/class.
type Style string

const (
	StyleLiteral    Style = "literal"
	StyleMeta       Style = "meta" // anchors, assertions, \K
	StyleGroup      Style = "group"
	StyleQuantifier Style = "quantifier"
	StyleClass      Style = "class"
	StyleBackref    Style = "backref"
	StyleComment    Style = "comment"
	StyleFlags      Style = "flags"
	StylePlain      Style = "plain"
)

// Token is one styled fragment of re-emitted source text, in source
// order. Text is the fragment's own source span only — for a Group that
// means its delimiters (e.g. "(?:" and the matching ")"), not its body,
// since the body is covered by the child tokens Walk descends into.
type Token struct {
	Style Style
	Text  string
}

// Format selects Render's output encoding.
type Format int

const (
	ANSI Format = iota
	HTML
)

// Tokens walks root and returns one Token per AST node in source order,
// covering every variant (spec.md: "covers every AST variant"). Group and
// Conditional open their own delimiter on Enter and close it on Leave, so
// their child tokens nest correctly between the two; every other variant
// is a leaf in this token stream even if the AST gives it children (e.g.
// CharClass renders as one fragment — descending into its Range/Literal
// items would duplicate the text already in that fragment).
// KindComment tokens preserve their source text verbatim, satisfying
// "preserves comment text".
func Tokens(root *ast.Node) []Token {
	var toks []Token
	ast.Walk(root, &ast.Visitor{
		Enter: func(n *ast.Node) bool {
			if n.Kind == ast.KindAlternation {
				for i, branch := range n.Children {
					if i > 0 {
						toks = append(toks, Token{StyleMeta, "|"})
					}
					toks = append(toks, Tokens(branch)...)
				}
				return false
			}
			if n.Kind == ast.KindConditional {
				toks = append(toks, Token{StyleGroup, "(?"})
				if n.Condition.Kind == ast.KindGroup {
					// A lookaround condition carries its own parens
					// (e.g. "(?=foo)"); PCRE shares the outer "(?" with
					// them rather than adding a second pair.
					toks = append(toks, Tokens(n.Condition)...)
				} else {
					toks = append(toks, Token{StyleGroup, "("})
					toks = append(toks, Tokens(n.Condition)...)
					toks = append(toks, Token{StyleGroup, ")"})
				}
				toks = append(toks, Tokens(n.Yes)...)
				if n.No != nil {
					toks = append(toks, Token{StyleMeta, "|"})
					toks = append(toks, Tokens(n.No)...)
				}
				toks = append(toks, Token{StyleGroup, ")"})
				return false
			}
			tok, descend := tokenFor(n)
			if tok != nil {
				toks = append(toks, *tok)
			}
			return descend
		},
		Leave: func(n *ast.Node) {
			if tok := closeTokenFor(n); tok != nil {
				toks = append(toks, *tok)
			}
		},
	})
	return toks
}

// tokenFor returns n's own token (nil for framing nodes like Regex/
// Sequence/Alternation that contribute no syntax of their own beyond
// their children) and whether Walk should descend into n's children.
func tokenFor(n *ast.Node) (*Token, bool) {
	switch n.Kind {
	case ast.KindLiteral:
		return &Token{StyleLiteral, compiler.Fragment(n, compiler.Options{})}, false

	case ast.KindDot, ast.KindCharType, ast.KindUnicodeEscape,
		ast.KindUnicodeProp, ast.KindOctal, ast.KindOctalLegacy:
		return &Token{StyleClass, compiler.Fragment(n, compiler.Options{})}, false

	case ast.KindCharClass:
		return &Token{StyleClass, compiler.Fragment(n, compiler.Options{})}, false

	case ast.KindAnchor, ast.KindAssertion, ast.KindKeep:
		return &Token{StyleMeta, compiler.Fragment(n, compiler.Options{})}, false

	case ast.KindBackref, ast.KindSubroutine, ast.KindConditionRef:
		return &Token{StyleBackref, compiler.Fragment(n, compiler.Options{})}, false

	case ast.KindComment:
		return &Token{StyleComment, "(?#" + n.Text + ")"}, false

	case ast.KindPcreVerb:
		return &Token{StyleMeta, compiler.Fragment(n, compiler.Options{})}, false

	case ast.KindQuantifier:
		// The quantifier's own token (suffix text) is emitted after its
		// child via closeTokenFor, since quantifier syntax (e.g. "{2,4}")
		// trails the thing it repeats.
		return nil, true

	case ast.KindGroup:
		return groupOpenToken(n), n.Child != nil

	default:
		return nil, true
	}
}

func closeTokenFor(n *ast.Node) *Token {
	switch n.Kind {
	case ast.KindQuantifier:
		return &Token{StyleQuantifier, n.QuantifierText}
	case ast.KindGroup:
		if n.GroupKind == ast.GroupInlineFlags {
			if n.Child == nil {
				return nil // open token already carries the closing ')'
			}
			return &Token{StyleFlags, ")"}
		}
		return &Token{StyleGroup, ")"}
	default:
		return nil
	}
}

func groupOpenToken(n *ast.Node) *Token {
	if n.GroupKind == ast.GroupInlineFlags {
		text := "(?" + n.FlagSet.String()
		if n.FlagUnset != 0 {
			text += "-" + n.FlagUnset.String()
		}
		if n.Child == nil {
			return &Token{StyleFlags, text + ")"}
		}
		return &Token{StyleFlags, text + ":"}
	}
	return &Token{StyleGroup, groupOpenText(n)}
}

func groupOpenText(n *ast.Node) string {
	switch n.GroupKind {
	case ast.GroupCapturing:
		return "("
	case ast.GroupNonCapturing:
		return "(?:"
	case ast.GroupNamed:
		switch {
		case n.PythonSyntax:
			return "(?P<" + n.Name + ">"
		case n.Apostrophe:
			return "(?'" + n.Name + "'"
		default:
			return "(?<" + n.Name + ">"
		}
	case ast.GroupAtomic:
		return "(?>"
	case ast.GroupLookaheadPos:
		return "(?="
	case ast.GroupLookaheadNeg:
		return "(?!"
	case ast.GroupLookbehindPos:
		return "(?<="
	case ast.GroupLookbehindNeg:
		return "(?<!"
	case ast.GroupBranchReset:
		return "(?|"
	default:
		return "("
	}
}

// ansiCode maps a Style to its SGR escape prefix. Chosen for readability
// on a dark terminal background: literals in the default foreground,
// everything else gets its own distinguishing color.
var ansiCode = map[Style]string{
	StyleLiteral:    "",
	StyleMeta:       "\x1b[35m",  // magenta
	StyleGroup:      "\x1b[36m",  // cyan
	StyleQuantifier: "\x1b[33m",  // yellow
	StyleClass:      "\x1b[32m",  // green
	StyleBackref:    "\x1b[34m",  // blue
	StyleComment:    "\x1b[90m",  // bright black
	StyleFlags:      "\x1b[36m",  // cyan
	StylePlain:      "",
}

const ansiReset = "\x1b[0m"

// Render joins Tokens into a single styled string, either ANSI escape
// sequences for a terminal or HTML spans with a "regex-<style>" class.
func Render(root *ast.Node, format Format) string {
	toks := Tokens(root)
	var b strings.Builder
	for _, tok := range toks {
		switch format {
		case HTML:
			b.WriteString(`<span class="regex-`)
			b.WriteString(string(tok.Style))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(tok.Text))
			b.WriteString(`</span>`)
		default:
			code := ansiCode[tok.Style]
			if code == "" {
				b.WriteString(tok.Text)
				continue
			}
			b.WriteString(code)
			b.WriteString(tok.Text)
			b.WriteString(ansiReset)
		}
	}
	return b.String()
}
