package parser

import (
	"unicode/utf8"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/token"
)

// parseCharClass parses "[" item* "]", folding "item - item" pairs into
// Range nodes.
func (p *Parser) parseCharClass() (*ast.Node, error) {
	open := p.stream.Consume() // CharClassOpen
	var items []*ast.Node

	for {
		tok := p.stream.Peek(0)
		if tok.Kind == token.CharClassClose {
			break
		}
		if tok.Kind == token.EOF {
			return nil, newErr(ErrUnexpectedToken, open.Start, "unterminated character class")
		}

		if tok.Kind == token.RangeDash {
			p.stream.Consume()
			items = append(items, ast.NewLiteral(tok.Start, tok.End, []byte("-")))
			continue
		}

		item, err := p.parseClassItem()
		if err != nil {
			return nil, err
		}

		if lo, ok := rangeableRune(item); ok && p.stream.Peek(0).Kind == token.RangeDash {
			p.stream.Consume() // RangeDash
			hiTok := p.stream.Peek(0)
			if hiTok.Kind == token.CharClassClose || hiTok.Kind == token.EOF {
				return nil, newErr(ErrUnexpectedToken, hiTok.Start, "range with no upper bound")
			}
			hi, err := p.parseClassItem()
			if err != nil {
				return nil, err
			}
			hiRune, ok := rangeableRune(hi)
			if !ok {
				return nil, newErr(ErrUnexpectedToken, hi.Start, "invalid range upper bound")
			}
			if hiRune < lo {
				return nil, newErr(ErrUnexpectedToken, item.Start, "range out of order: %d > %d", lo, hiRune)
			}
			items = append(items, ast.NewRange(item.Start, hi.End, lo, hiRune, true))
			continue
		}

		items = append(items, item)
	}

	close := p.stream.Consume() // CharClassClose
	if err := p.newNode(); err != nil {
		return nil, err
	}
	return ast.NewCharClass(open.Start, close.End, items, open.Negated), nil
}

// parseClassItem parses one non-range member of a character class.
func (p *Parser) parseClassItem() (*ast.Node, error) {
	if err := p.newNode(); err != nil {
		return nil, err
	}
	tok := p.stream.Consume()
	switch tok.Kind {
	case token.Literal:
		return ast.NewLiteral(tok.Start, tok.End, tok.Bytes), nil
	case token.CharTypeEscape:
		return ast.NewCharType(tok.Start, tok.End, tok.Letter), nil
	case token.PosixClass:
		return ast.NewPosixClass(tok.Start, tok.End, tok.Name, tok.Negated), nil
	case token.UnicodeProperty:
		return ast.NewUnicodeProp(tok.Start, tok.End, tok.Name, tok.Negated), nil
	case token.UnicodeEscape:
		return ast.NewUnicodeEscape(tok.Start, tok.End, tok.CodePoint), nil
	case token.Octal:
		return ast.NewOctal(tok.Start, tok.End, tok.CodePoint), nil
	default:
		return nil, newErr(ErrUnexpectedToken, tok.Start, "unexpected token %s inside character class", tok.Kind)
	}
}

// rangeableRune reports the single code point a class item denotes, if
// it denotes exactly one (a single-byte/single-rune Literal, or a decoded
// UnicodeEscape/Octal). CharType/PosixClass/UnicodeProp items are classes
// of characters, not single code points, and cannot anchor a range.
func rangeableRune(n *ast.Node) (rune, bool) {
	switch n.Kind {
	case ast.KindLiteral:
		r, size := utf8.DecodeRune(n.Bytes)
		if size != len(n.Bytes) || r == utf8.RuneError {
			return 0, false
		}
		return r, true
	case ast.KindUnicodeEscape, ast.KindOctal:
		return rune(n.CodePoint), true
	default:
		return 0, false
	}
}
