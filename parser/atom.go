package parser

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/token"
)

// parseAtom parses a single atom: a leaf token, a character class, or a
// parenthesized construct.
func (p *Parser) parseAtom() (*ast.Node, error) {
	if err := p.newNode(); err != nil {
		return nil, err
	}
	tok := p.stream.Peek(0)
	switch tok.Kind {
	case token.Literal:
		p.stream.Consume()
		return ast.NewLiteral(tok.Start, tok.End, tok.Bytes), nil
	case token.Dot:
		p.stream.Consume()
		return ast.NewDot(tok.Start, tok.End), nil
	case token.CharTypeEscape:
		p.stream.Consume()
		return ast.NewCharType(tok.Start, tok.End, tok.Letter), nil
	case token.Anchor:
		p.stream.Consume()
		return ast.NewAnchor(tok.Start, tok.End, tok.Letter), nil
	case token.AssertionEscape:
		p.stream.Consume()
		return ast.NewAssertion(tok.Start, tok.End, tok.Letter), nil
	case token.Keep:
		p.stream.Consume()
		return ast.NewKeep(tok.Start, tok.End), nil
	case token.BackrefNumeric:
		p.stream.Consume()
		return ast.NewBackref(tok.Start, tok.End, int(tok.Number), "", tok.Relative), nil
	case token.BackrefNamed:
		p.stream.Consume()
		return ast.NewBackref(tok.Start, tok.End, 0, tok.Name, false), nil
	case token.Subroutine:
		p.stream.Consume()
		return ast.NewSubroutine(tok.Start, tok.End, int(tok.Number), tok.Name, tok.Relative, tok.Recursive, tok.Text), nil
	case token.UnicodeEscape:
		p.stream.Consume()
		return ast.NewUnicodeEscape(tok.Start, tok.End, tok.CodePoint), nil
	case token.UnicodeProperty:
		p.stream.Consume()
		return ast.NewUnicodeProp(tok.Start, tok.End, tok.Name, tok.Negated), nil
	case token.Octal:
		p.stream.Consume()
		return ast.NewOctal(tok.Start, tok.End, tok.CodePoint), nil
	case token.Comment:
		p.stream.Consume()
		return ast.NewComment(tok.Start, tok.End, tok.Text), nil
	case token.PcreVerb:
		p.stream.Consume()
		return ast.NewPcreVerb(tok.Start, tok.End, tok.Name, tok.Text), nil
	case token.CharClassOpen:
		return p.parseCharClass()
	case token.GroupOpen:
		return p.parseCapturingGroup()
	case token.GroupModifierOpen:
		return p.parseModifierGroup()
	default:
		return nil, newErr(ErrUnexpectedToken, tok.Start, "unexpected token %s", tok.Kind)
	}
}

// parseCapturingGroup parses "(" alternation ")" and assigns it the next
// capture index.
func (p *Parser) parseCapturingGroup() (*ast.Node, error) {
	open := p.stream.Consume() // GroupOpen
	index := p.nextGroupIndex
	p.nextGroupIndex++
	child, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expectGroupClose(open.Start)
	if err != nil {
		return nil, err
	}
	n := ast.NewGroup(open.Start, closeTok.End, ast.GroupCapturing, child)
	n.GroupIndex = index
	return n, nil
}

func (p *Parser) expectGroupClose(openStart uint32) (token.Token, error) {
	tok := p.stream.Peek(0)
	if tok.Kind != token.GroupClose {
		return tok, newErr(ErrUnmatchedParen, openStart, "unclosed group")
	}
	return p.stream.Consume(), nil
}

// parseModifierGroup dispatches a GroupModifierOpen token to the right
// shape based on the fields the lexer set on it.
func (p *Parser) parseModifierGroup() (*ast.Node, error) {
	open := p.stream.Peek(0)

	if open.Conditional {
		p.stream.Consume()
		return p.parseConditional(open)
	}

	if open.Standalone {
		p.stream.Consume()
		set, _ := ast.ParseFlags(open.FlagSet)
		unset, _ := ast.ParseFlags(open.FlagUnset)
		p.flags = (p.flags | set) &^ unset
		n := ast.NewGroup(open.Start, open.End, ast.GroupInlineFlags, nil)
		n.FlagSet, n.FlagUnset = set, unset
		return n, nil
	}

	if open.Name != "" {
		p.stream.Consume()
		scope := p.currentBranchResetScope()
		if prevScope, dup := p.groupNames[open.Name]; dup {
			allowed := scope != 0 && prevScope == scope
			if !allowed && !p.flags.Has(ast.FlagDupNames) {
				return nil, newErr(ErrDuplicateGroupName, open.Start, "duplicate group name %q", open.Name)
			}
		}
		p.groupNames[open.Name] = scope
		index := p.nextGroupIndex
		p.nextGroupIndex++
		child, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		closeTok, err := p.expectGroupClose(open.Start)
		if err != nil {
			return nil, err
		}
		n := ast.NewGroup(open.Start, closeTok.End, ast.GroupNamed, child)
		n.Name, n.GroupIndex, n.PythonSyntax, n.Apostrophe = open.Name, index, open.PythonSyntax, open.Apostrophe
		return n, nil
	}

	kind, scopedFlags := classifyGroupText(open.Text)
	p.stream.Consume()

	savedFlags := p.flags
	if scopedFlags {
		set, _ := ast.ParseFlags(open.FlagSet)
		unset, _ := ast.ParseFlags(open.FlagUnset)
		p.flags = (p.flags | set) &^ unset
	}
	if kind == ast.GroupBranchReset {
		p.nextBranchResetID++
		p.branchResetStack = append(p.branchResetStack, p.nextBranchResetID)
	}
	child, err := p.parseAlternation()
	if kind == ast.GroupBranchReset {
		p.branchResetStack = p.branchResetStack[:len(p.branchResetStack)-1]
	}
	p.flags = savedFlags
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expectGroupClose(open.Start)
	if err != nil {
		return nil, err
	}
	n := ast.NewGroup(open.Start, closeTok.End, kind, child)
	if scopedFlags {
		n.FlagSet, _ = ast.ParseFlags(open.FlagSet)
		n.FlagUnset, _ = ast.ParseFlags(open.FlagUnset)
	}
	return n, nil
}

// classifyGroupText maps a GroupModifierOpen token's raw text to its
// ast.GroupKind. Scoped inline-flags groups ("(?i:...)") are recognized by
// having FlagSet/FlagUnset populated with no other marker, handled by the
// caller rather than here.
func classifyGroupText(text string) (kind ast.GroupKind, scopedFlags bool) {
	switch {
	case text == "(?:":
		return ast.GroupNonCapturing, false
	case text == "(?>":
		return ast.GroupAtomic, false
	case text == "(?=":
		return ast.GroupLookaheadPos, false
	case text == "(?!":
		return ast.GroupLookaheadNeg, false
	case text == "(?<=":
		return ast.GroupLookbehindPos, false
	case text == "(?<!":
		return ast.GroupLookbehindNeg, false
	case text == "(?|":
		return ast.GroupBranchReset, false
	default:
		return ast.GroupInlineFlags, true
	}
}
