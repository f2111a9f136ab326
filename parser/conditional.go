package parser

import (
	"strings"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/token"
)

// parseConditional parses the body of a "(?(cond)yes|no)" construct. open
// is the already-consumed "(?" Conditional marker token; the stream now
// sits at the condition's own opening paren, which the lexer classified
// fresh (a plain GroupOpen for "(1)"/"(name)"/"(R)"/"(DEFINE)" conditions,
// or another GroupModifierOpen for a lookaround condition).
func (p *Parser) parseConditional(open token.Token) (*ast.Node, error) {
	cond, err := p.parseConditionUnit()
	if err != nil {
		return nil, err
	}

	yes, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	var no *ast.Node
	if p.stream.Peek(0).Kind == token.Alternation {
		p.stream.Consume()
		no, err = p.parseSequence()
		if err != nil {
			return nil, err
		}
		if p.stream.Peek(0).Kind == token.Alternation {
			tok := p.stream.Peek(0)
			return nil, newErr(ErrMalformedConditional, tok.Start, "conditional group has more than two branches")
		}
	}
	closeTok, err := p.expectGroupClose(open.Start)
	if err != nil {
		return nil, err
	}
	if err := p.newNode(); err != nil {
		return nil, err
	}
	return ast.NewConditional(open.Start, closeTok.End, cond, yes, no), nil
}

// parseConditionUnit parses the condition slot: either a lookaround group
// (a fresh GroupModifierOpen) or a plain "(content)" form whose content
// the lexer saw only as ordinary tokens, since it has no dedicated syntax
// of its own. In the latter case this reads those tokens back into a
// single string and classifies it.
func (p *Parser) parseConditionUnit() (*ast.Node, error) {
	tok := p.stream.Peek(0)
	if tok.Kind == token.GroupModifierOpen {
		return p.parseModifierGroup()
	}
	if tok.Kind != token.GroupOpen {
		return nil, newErr(ErrMalformedConditional, tok.Start, "expected a condition after (?, got %s", tok.Kind)
	}
	start := tok.Start
	p.stream.Consume()

	var sb strings.Builder
	for {
		t := p.stream.Peek(0)
		if t.Kind == token.GroupClose {
			break
		}
		if t.Kind == token.EOF {
			return nil, newErr(ErrMalformedConditional, start, "unterminated condition")
		}
		sb.WriteString(t.Text)
		p.stream.Consume()
	}
	closeTok := p.stream.Consume() // GroupClose
	content := sb.String()

	if err := p.newNode(); err != nil {
		return nil, err
	}

	switch {
	case content == "DEFINE":
		return ast.NewConditionRef(start, closeTok.End, ast.ConditionDefine, 0, "", false), nil
	case content == "R":
		return ast.NewConditionRef(start, closeTok.End, ast.ConditionRecursive, 0, "", false), nil
	case strings.HasPrefix(content, "R&"):
		return ast.NewConditionRef(start, closeTok.End, ast.ConditionRecursiveGroup, 0, content[2:], false), nil
	case isAllDigits(content):
		return ast.NewConditionRef(start, closeTok.End, ast.ConditionByIndex, atoiBytesStr(content), "", false), nil
	case len(content) > 1 && content[0] == '-' && isAllDigits(content[1:]):
		return ast.NewConditionRef(start, closeTok.End, ast.ConditionByIndex, -atoiBytesStr(content[1:]), "", true), nil
	default:
		return ast.NewConditionRef(start, closeTok.End, ast.ConditionByName, 0, content, false), nil
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoiBytesStr(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
