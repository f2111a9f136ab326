// Package compiler re-emits an *ast.Node tree as PCRE2 source text. Compile
// is the round-trip half of the lexer/parser pair: parsing a compiled
// pattern must reproduce a structurally equivalent tree (spec.md §4.4).
// There is no direct teacher analog for this direction — coregex only ever
// executes a compiled program, never re-emits a pattern — so the dispatch
// shape here follows the "one function per operation, private per-Kind
// helpers" pattern the teacher's nfa/compile.go uses for the opposite
// direction (AST into NFA instructions).
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/regexlint/ast"
)

// Options controls how Compile renders a tree back to source text.
type Options struct {
	// Pretty, when set, inserts a literal newline and indentation before
	// each Sequence item and Alternation branch and turns on the 'x' flag
	// in the rendered trailer, producing the teacher's "one token per
	// line, nested", documentation-friendly layout.
	Pretty bool
}

// Compile renders n (expected to be a KindRegex root, as parser.Parse
// returns) back to "delim body delim flags" source text.
func Compile(n *ast.Node, opts Options) string {
	var b strings.Builder
	c := &compiler{opts: opts}
	c.writeNode(&b, n, 0, false)
	return b.String()
}

// Fragment renders any subtree n as bare pattern source, with no
// delimiter or flag trailer — used by explain/ and highlight/ to re-emit
// the text of an arbitrary AST fragment (e.g. a redos.Finding's Trigger),
// not just a full KindRegex root.
func Fragment(n *ast.Node, opts Options) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	c := &compiler{opts: opts}
	if n.Kind == ast.KindRegex {
		c.writeNode(&b, n.Child, 0, false)
	} else {
		c.writeNode(&b, n, 0, false)
	}
	return b.String()
}

type compiler struct {
	opts Options
}

func (c *compiler) indent(b *strings.Builder, depth int) {
	if !c.opts.Pretty {
		return
	}
	b.WriteByte('\n')
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// writeNode renders n into b. inClass reports whether n sits directly
// inside a CharClass's item list, which changes how Literal/Range escaping
// works (spec.md §4.4's class-vs-body escaping split).
func (c *compiler) writeNode(b *strings.Builder, n *ast.Node, depth int, inClass bool) {
	switch n.Kind {
	case ast.KindRegex:
		b.WriteByte(n.Delimiter)
		c.writeNode(b, n.Child, depth, false)
		b.WriteByte(n.Delimiter)
		flags := n.Flags
		if c.opts.Pretty {
			flags |= ast.FlagX
		}
		b.WriteString(flags.String())

	case ast.KindSequence:
		for _, item := range n.Children {
			c.indent(b, depth)
			c.writeNode(b, item, depth, inClass)
		}

	case ast.KindAlternation:
		for i, branch := range n.Children {
			if i > 0 {
				c.indent(b, depth)
				b.WriteByte('|')
			}
			c.writeNode(b, branch, depth+1, inClass)
		}

	case ast.KindGroup:
		c.writeGroup(b, n, depth)

	case ast.KindQuantifier:
		c.writeNode(b, n.Child, depth, inClass)
		b.WriteString(n.QuantifierText)

	case ast.KindConditional:
		c.writeConditional(b, n, depth)

	case ast.KindConditionRef:
		b.WriteString(conditionRefText(n))

	case ast.KindCharClass:
		b.WriteByte('[')
		if n.Negated {
			b.WriteByte('^')
		}
		for _, item := range n.Children {
			c.writeNode(b, item, depth, true)
		}
		b.WriteByte(']')

	case ast.KindRange:
		b.WriteString(escapeClassRune(n.Lo))
		b.WriteByte('-')
		b.WriteString(escapeClassRune(n.Hi))

	case ast.KindLiteral:
		if inClass {
			b.WriteString(escapeClassBytes(n.Bytes))
		} else {
			b.WriteString(escapeLiteralBytes(n.Bytes))
		}

	case ast.KindDot:
		b.WriteByte('.')

	case ast.KindCharType:
		b.WriteByte('\\')
		b.WriteByte(n.Letter)

	case ast.KindPosixClass:
		b.WriteString("[:")
		if n.Negated {
			b.WriteByte('^')
		}
		b.WriteString(n.Name)
		b.WriteString(":]")

	case ast.KindAnchor:
		switch n.Letter {
		case '^', '$':
			b.WriteByte(n.Letter)
		default:
			b.WriteByte('\\')
			b.WriteByte(n.Letter)
		}

	case ast.KindAssertion:
		b.WriteByte('\\')
		b.WriteByte(n.Letter)

	case ast.KindKeep:
		b.WriteString(`\K`)

	case ast.KindBackref:
		b.WriteString(backrefText(n))

	case ast.KindSubroutine:
		b.WriteString(subroutineText(n))

	case ast.KindUnicodeEscape:
		fmt.Fprintf(b, `\x{%x}`, n.CodePoint)

	case ast.KindUnicodeProp:
		letter := byte('p')
		if n.Negated {
			letter = 'P'
		}
		fmt.Fprintf(b, `\%c{%s}`, letter, n.Name)

	case ast.KindOctal:
		fmt.Fprintf(b, `\o{%o}`, n.CodePoint)

	case ast.KindOctalLegacy:
		fmt.Fprintf(b, `\0%o`, n.CodePoint)

	case ast.KindComment:
		b.WriteString("(?#")
		b.WriteString(n.Text)
		b.WriteByte(')')

	case ast.KindPcreVerb:
		b.WriteString("(*")
		b.WriteString(n.Name)
		if n.Text != "" {
			b.WriteByte(':')
			b.WriteString(n.Text)
		}
		b.WriteByte(')')

	default:
		b.WriteString(n.Kind.String())
	}
}

func (c *compiler) writeGroup(b *strings.Builder, n *ast.Node, depth int) {
	switch n.GroupKind {
	case ast.GroupCapturing:
		b.WriteByte('(')
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	case ast.GroupNonCapturing:
		b.WriteString("(?:")
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	case ast.GroupNamed:
		b.WriteString(namedGroupOpen(n))
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteString(namedGroupClose(n))
	case ast.GroupAtomic:
		b.WriteString("(?>")
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	case ast.GroupLookaheadPos:
		b.WriteString("(?=")
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	case ast.GroupLookaheadNeg:
		b.WriteString("(?!")
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	case ast.GroupLookbehindPos:
		b.WriteString("(?<=")
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	case ast.GroupLookbehindNeg:
		b.WriteString("(?<!")
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	case ast.GroupBranchReset:
		b.WriteString("(?|")
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	case ast.GroupInlineFlags:
		b.WriteString("(?")
		b.WriteString(n.FlagSet.String())
		if n.FlagUnset != 0 {
			b.WriteByte('-')
			b.WriteString(n.FlagUnset.String())
		}
		if n.Child == nil {
			b.WriteByte(')')
			return
		}
		b.WriteByte(':')
		c.writeNode(b, n.Child, depth+1, false)
		b.WriteByte(')')
	default:
		b.WriteString(n.GroupKind.String())
	}
}

func namedGroupOpen(n *ast.Node) string {
	switch {
	case n.PythonSyntax:
		return "(?P<" + n.Name + ">"
	case n.Apostrophe:
		return "(?'" + n.Name + "'"
	default:
		return "(?<" + n.Name + ">"
	}
}

func namedGroupClose(*ast.Node) string {
	return ")"
}

// writeConditional renders "(?(cond)yes|no)". The condition slot is either
// a full lookaround Group (already parenthesized by writeGroup, so it is
// written directly after "(?") or a ConditionRef, wrapped in its own
// parens since the lexer never gave it any syntax of its own.
func (c *compiler) writeConditional(b *strings.Builder, n *ast.Node, depth int) {
	b.WriteString("(?")
	if n.Condition.Kind == ast.KindGroup {
		c.writeNode(b, n.Condition, depth, false)
	} else {
		b.WriteByte('(')
		c.writeNode(b, n.Condition, depth, false)
		b.WriteByte(')')
	}
	c.writeNode(b, n.Yes, depth+1, false)
	if n.No != nil {
		b.WriteByte('|')
		c.writeNode(b, n.No, depth+1, false)
	}
	b.WriteByte(')')
}

func conditionRefText(n *ast.Node) string {
	switch n.CondKind {
	case ast.ConditionByIndex:
		return strconv.Itoa(n.RefIndex)
	case ast.ConditionByName:
		return n.Name
	case ast.ConditionRecursive:
		return "R"
	case ast.ConditionRecursiveGroup:
		return "R&" + n.Name
	case ast.ConditionDefine:
		return "DEFINE"
	default:
		return n.CondKind.String()
	}
}

func backrefText(n *ast.Node) string {
	if n.Name != "" {
		return `\k<` + n.Name + `>`
	}
	if n.Relative {
		return `\g{` + strconv.Itoa(n.RefIndex) + `}`
	}
	return `\` + strconv.Itoa(n.RefIndex)
}

func subroutineText(n *ast.Node) string {
	switch {
	case n.Recursive && n.Name == "" && n.RefIndex == 0:
		return "(?R)"
	case n.Name != "":
		return "(?&" + n.Name + ")"
	default:
		return "(?" + strconv.Itoa(n.RefIndex) + ")"
	}
}
