// Package explain renders a parsed pattern's AST as human-readable prose
// (spec.md §4.9): a pure, read-only visitor like literal/ and complexity/,
// built directly from the ast.Fold/Walk primitives rather than any
// teacher analog — coregex has no prose-explanation surface.
package explain

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/compiler"
)

// Format selects the explanation's output encoding.
type Format int

const (
	// Text renders plain, unescaped prose lines.
	Text Format = iota
	// HTML renders one <div> per line, escaping every literal byte the
	// pattern carries so untrusted pattern text cannot inject markup.
	HTML
)

// Options controls Explain's rendering.
type Options struct {
	Format Format
}

// Explain walks root (a KindRegex node) and returns a line of prose for
// the pattern and one indented line per structural construct, in
// pre-order.
func Explain(root *ast.Node, opts Options) string {
	e := &explainer{opts: opts}
	var lines []string
	if root != nil && root.Kind == ast.KindRegex {
		lines = append(lines, e.escape(fmt.Sprintf("Pattern delimited by %q", string(root.Delimiter)))+e.flagsSuffix(root.Flags))
	}
	ast.Walk(root, &ast.Visitor{
		Enter: func(n *ast.Node) bool {
			if n.Kind == ast.KindRegex || n.Kind == ast.KindSequence {
				return true // transparent framing, not worth their own line
			}
			depth := e.depth
			lines = append(lines, e.indent(depth)+e.describe(n))
			e.depth++
			return true
		},
		Leave: func(n *ast.Node) {
			if n.Kind != ast.KindRegex && n.Kind != ast.KindSequence {
				e.depth--
			}
		},
	})

	if opts.Format == HTML {
		var b strings.Builder
		b.WriteString("<div class=\"regex-explain\">\n")
		for _, l := range lines {
			b.WriteString("  <div>")
			b.WriteString(l)
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>")
		return b.String()
	}
	return strings.Join(lines, "\n")
}

type explainer struct {
	opts  Options
	depth int
}

func (e *explainer) indent(depth int) string {
	if e.opts.Format == HTML {
		return ""
	}
	return strings.Repeat("  ", depth)
}

func (e *explainer) escape(s string) string {
	if e.opts.Format == HTML {
		return html.EscapeString(s)
	}
	return s
}

func (e *explainer) flagsSuffix(f ast.Flags) string {
	if f == 0 {
		return ""
	}
	return e.escape(fmt.Sprintf(" with flags %q", f.String()))
}

func (e *explainer) fragment(n *ast.Node) string {
	return e.escape(compiler.Fragment(n, compiler.Options{}))
}

// describe renders a one-line description of n's own construct, not its
// children (the walk prints children on their own subsequent lines).
func (e *explainer) describe(n *ast.Node) string {
	switch n.Kind {
	case ast.KindAlternation:
		return fmt.Sprintf("one of %d alternatives:", len(n.Children))

	case ast.KindGroup:
		return e.describeGroup(n)

	case ast.KindQuantifier:
		return e.describeQuantifier(n)

	case ast.KindConditional:
		return "conditional: match Yes branch if the condition holds, else No"

	case ast.KindConditionRef:
		return "condition: " + e.escape(compiler.Fragment(n, compiler.Options{}))

	case ast.KindLiteral:
		return fmt.Sprintf("literal %s", e.escape(strconv.Quote(string(n.Bytes))))

	case ast.KindDot:
		return "any character except newline (unless dotall)"

	case ast.KindCharType:
		return "character class shorthand " + e.fragment(n)

	case ast.KindCharClass:
		if n.Negated {
			return "a character NOT in the set " + e.fragment(n)
		}
		return "a character in the set " + e.fragment(n)

	case ast.KindRange:
		return fmt.Sprintf("range %c-%c", n.Lo, n.Hi)

	case ast.KindPosixClass:
		if n.Negated {
			return "POSIX class, negated: [:^" + n.Name + ":]"
		}
		return "POSIX class [:" + n.Name + ":]"

	case ast.KindAnchor:
		return describeAnchor(n.Letter)

	case ast.KindAssertion:
		return describeAssertion(n.Letter)

	case ast.KindKeep:
		return `\K: discard everything matched so far from the reported match`

	case ast.KindBackref:
		return "backreference to " + e.fragment(n)

	case ast.KindSubroutine:
		return "subroutine call to " + e.fragment(n)

	case ast.KindUnicodeEscape:
		return fmt.Sprintf("code point U+%04X", n.CodePoint)

	case ast.KindUnicodeProp:
		if n.Negated {
			return "NOT Unicode property " + n.Name
		}
		return "Unicode property " + n.Name

	case ast.KindOctal, ast.KindOctalLegacy:
		return fmt.Sprintf("octal escape for code point %d", n.CodePoint)

	case ast.KindComment:
		return "comment: " + e.escape(n.Text)

	case ast.KindPcreVerb:
		return "control verb (*" + n.Name + ")"

	default:
		return n.Kind.String()
	}
}

func (e *explainer) describeGroup(n *ast.Node) string {
	switch n.GroupKind {
	case ast.GroupCapturing:
		return fmt.Sprintf("capturing group #%d:", n.GroupIndex)
	case ast.GroupNamed:
		return fmt.Sprintf("capturing group #%d named %q:", n.GroupIndex, n.Name)
	case ast.GroupNonCapturing:
		return "group (not captured):"
	case ast.GroupAtomic:
		return "atomic group (no backtracking once matched):"
	case ast.GroupLookaheadPos:
		return "lookahead, must be followed by:"
	case ast.GroupLookaheadNeg:
		return "negative lookahead, must NOT be followed by:"
	case ast.GroupLookbehindPos:
		return "lookbehind, must be preceded by:"
	case ast.GroupLookbehindNeg:
		return "negative lookbehind, must NOT be preceded by:"
	case ast.GroupBranchReset:
		return "branch-reset group (?|...), capture numbers reused per branch:"
	case ast.GroupInlineFlags:
		if n.Child == nil {
			return e.escape(fmt.Sprintf("sets flags %q for the rest of the enclosing group", inlineFlagsText(n)))
		}
		return e.escape(fmt.Sprintf("with flags %q, scoped to:", inlineFlagsText(n)))
	default:
		return n.GroupKind.String() + ":"
	}
}

func inlineFlagsText(n *ast.Node) string {
	s := n.FlagSet.String()
	if n.FlagUnset != 0 {
		s += "-" + n.FlagUnset.String()
	}
	return s
}

func (e *explainer) describeQuantifier(n *ast.Node) string {
	var count string
	switch {
	case n.Min == 0 && n.Max == ast.Unbounded:
		count = "zero or more times"
	case n.Min == 1 && n.Max == ast.Unbounded:
		count = "one or more times"
	case n.Min == 0 && n.Max == 1:
		count = "zero or one time"
	case n.Max == ast.Unbounded:
		count = fmt.Sprintf("%d or more times", n.Min)
	case n.Min == n.Max:
		count = fmt.Sprintf("exactly %d times", n.Min)
	default:
		count = fmt.Sprintf("between %d and %d times", n.Min, n.Max)
	}

	switch n.Mode {
	case ast.Lazy:
		count += ", lazily (as few as possible)"
	case ast.Possessive:
		count += ", possessively (no backtracking into this repetition)"
	}
	return "repeated " + count + ":"
}

func describeAnchor(letter byte) string {
	switch letter {
	case '^':
		return "start of line/string anchor (^)"
	case '$':
		return "end of line/string anchor ($)"
	case 'A':
		return `start of subject, never multiline (\A)`
	case 'Z':
		return `end of subject, or before a trailing newline (\Z)`
	case 'z':
		return `absolute end of subject (\z)`
	default:
		return fmt.Sprintf(`anchor \%c`, letter)
	}
}

func describeAssertion(letter byte) string {
	switch letter {
	case 'b':
		return `word boundary (\b)`
	case 'B':
		return `not a word boundary (\B)`
	case 'G':
		return `start of match attempt (\G)`
	default:
		return fmt.Sprintf(`assertion \%c`, letter)
	}
}
