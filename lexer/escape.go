package lexer

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/internal/conv"
	"github.com/coregx/regexlint/token"
)

// simpleControlEscapes maps a backslash letter to the literal byte it
// decodes to outside a character class range context.
var simpleControlEscapes = map[byte]byte{
	't': '\t', 'n': '\n', 'r': '\r', 'f': '\f', 'a': '\a', 'e': 0x1b,
}

// charTypeLetters are the \d \D \s \S \w \W \h \H \v \V \R \N escapes.
func isCharTypeLetter(c byte) bool {
	switch c {
	case 'd', 'D', 's', 'S', 'w', 'W', 'h', 'H', 'v', 'V', 'R', 'N':
		return true
	}
	return false
}

// lexEscape scans a backslash escape outside a character class.
func (l *Lexer) lexEscape() (token.Token, bool, error) {
	start := l.pos
	l.pos++ // consume '\'
	c, ok := l.byteAt(l.pos)
	if !ok {
		return token.Token{}, false, newErr(ErrUnexpectedEOF, start, "pattern ends with a trailing backslash")
	}

	switch {
	case c == 'Q':
		l.pos++
		l.inQuote = true
		l.quoteStart = start
		return token.Token{}, true, nil

	case c == 'E':
		l.pos++
		return token.Token{}, true, nil // stray \E outside quote mode is a no-op

	case c == 'K':
		l.pos++
		return token.Token{Kind: token.Keep, Start: start, End: l.pos, Text: "\\K"}, false, nil

	case c == 'A' || c == 'Z' || c == 'z':
		l.pos++
		return token.Token{Kind: token.Anchor, Start: start, End: l.pos, Letter: c, Text: string([]byte{'\\', c})}, false, nil

	case c == 'b' || c == 'B' || c == 'G':
		l.pos++
		return token.Token{Kind: token.AssertionEscape, Start: start, End: l.pos, Letter: c, Text: string([]byte{'\\', c})}, false, nil

	case isCharTypeLetter(c):
		l.pos++
		return token.Token{Kind: token.CharTypeEscape, Start: start, End: l.pos, Letter: c, Text: string([]byte{'\\', c})}, false, nil

	case c == 'p' || c == 'P':
		return l.lexUnicodeProperty(start, c)

	case c == 'x':
		l.pos++
		return l.lexHexEscape(start)

	case c == 'u':
		l.pos++
		return l.lexBracedHex(start, token.UnicodeEscape)

	case c == 'o':
		l.pos++
		return l.lexBracedOctal(start)

	case c == 'g':
		l.pos++
		return l.lexBackrefOrSubroutine(start)

	case c == 'k':
		l.pos++
		return l.lexNamedBackrefK(start)

	case c == 'c':
		l.pos++
		return l.lexControlEscape(start)

	case c == '0':
		l.pos++
		return l.lexLegacyOctal(start)

	case c >= '1' && c <= '9':
		return l.lexNumericBackref(start)

	default:
		if lit, ok := simpleControlEscapes[c]; ok {
			l.pos++
			return token.Token{Kind: token.Literal, Start: start, End: l.pos, Bytes: []byte{lit}, Text: string([]byte{'\\', c})}, false, nil
		}
		if isASCIILetterOrDigit(c) {
			return l.lexUnknownAlnumEscape(start, c)
		}
		// Any other punctuation: the backslash simply escapes it.
		l.pos++
		return token.Token{Kind: token.Literal, Start: start, End: l.pos, Bytes: []byte{c}, Text: string([]byte{'\\', c})}, false, nil
	}
}

func isASCIILetterOrDigit(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// lexUnknownAlnumEscape handles a backslash followed by a letter/digit not
// matched by any recognized form above. Under the X (extra) flag this is a
// hard lexical error; otherwise it is treated leniently as a literal of
// that letter, matching PCRE2's default compatibility behavior.
func (l *Lexer) lexUnknownAlnumEscape(start uint32, c byte) (token.Token, bool, error) {
	if l.flags.Has(ast.FlagExtra) {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "unrecognized escape \\%c", c)
	}
	l.pos++
	return token.Token{Kind: token.Literal, Start: start, End: l.pos, Bytes: []byte{c}, Text: string([]byte{'\\', c})}, false, nil
}

func (l *Lexer) lexHexEscape(start uint32) (token.Token, bool, error) {
	if c, ok := l.byteAt(l.pos); ok && c == '{' {
		l.pos++
		return l.lexBracedHexBody(start)
	}
	value, consumed := conv.DecodeHex(l.body[l.pos:minInt(len(l.body), int(l.pos)+2)], 2)
	l.pos += uint32(consumed)
	return token.Token{Kind: token.UnicodeEscape, Start: start, End: l.pos, CodePoint: value}, false, nil
}

func (l *Lexer) lexBracedHex(start uint32, kind token.Kind) (token.Token, bool, error) {
	if c, ok := l.byteAt(l.pos); !ok || c != '{' {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "expected '{' after \\u")
	}
	l.pos++
	tok, _, err := l.lexBracedHexBody(start)
	if err != nil {
		return token.Token{}, false, err
	}
	tok.Kind = kind
	return tok, false, nil
}

// lexBracedHexBody scans hex digits up to a closing '}'; l.pos must sit
// right after the opening '{'.
func (l *Lexer) lexBracedHexBody(start uint32) (token.Token, bool, error) {
	digitsStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\x{...} escape")
		}
		if c == '}' {
			break
		}
		if _, ok := conv.HexDigitValue(c); !ok {
			return token.Token{}, false, newErr(ErrMalformedEscape, start, "invalid hex digit in \\x{...} escape")
		}
		l.pos++
	}
	value, _ := conv.DecodeHex(l.body[digitsStart:l.pos], int(l.pos-digitsStart))
	if !conv.ValidCodePoint(value) {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "code point out of range")
	}
	l.pos++ // consume '}'
	return token.Token{Kind: token.UnicodeEscape, Start: start, End: l.pos, CodePoint: value}, false, nil
}

func (l *Lexer) lexBracedOctal(start uint32) (token.Token, bool, error) {
	if c, ok := l.byteAt(l.pos); !ok || c != '{' {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "expected '{' after \\o")
	}
	l.pos++
	digitsStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\o{...} escape")
		}
		if c == '}' {
			break
		}
		if _, ok := conv.OctalDigitValue(c); !ok {
			return token.Token{}, false, newErr(ErrMalformedEscape, start, "invalid octal digit in \\o{...} escape")
		}
		l.pos++
	}
	value, _ := conv.DecodeOctal(l.body[digitsStart:l.pos], int(l.pos-digitsStart))
	l.pos++ // consume '}'
	return token.Token{Kind: token.Octal, Start: start, End: l.pos, CodePoint: value}, false, nil
}

// lexLegacyOctal handles \0 followed by up to 2 more octal digits.
func (l *Lexer) lexLegacyOctal(start uint32) (token.Token, bool, error) {
	digitsStart := l.pos
	for i := 0; i < 2; i++ {
		c, ok := l.byteAt(l.pos)
		if !ok || c < '0' || c > '7' {
			break
		}
		l.pos++
	}
	var value uint32
	if l.pos > digitsStart {
		value, _ = conv.DecodeOctal(l.body[digitsStart:l.pos], int(l.pos-digitsStart))
	}
	return token.Token{Kind: token.Octal, Start: start, End: l.pos, CodePoint: value}, false, nil
}

// lexNumericBackref handles \1 through an arbitrary-length digit run.
func (l *Lexer) lexNumericBackref(start uint32) (token.Token, bool, error) {
	digitsStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok || c < '0' || c > '9' {
			break
		}
		l.pos++
	}
	n := atoiBytes(l.body[digitsStart:l.pos])
	return token.Token{Kind: token.BackrefNumeric, Start: start, End: l.pos, Number: int32(n), HasNumber: true}, false, nil
}

func (l *Lexer) lexUnicodeProperty(start uint32, letter byte) (token.Token, bool, error) {
	l.pos++ // consume 'p'/'P'
	negated := letter == 'P'
	c, ok := l.byteAt(l.pos)
	if !ok {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\%c escape", letter)
	}
	if c == '{' {
		l.pos++
		nameStart := l.pos
		for {
			c, ok := l.byteAt(l.pos)
			if !ok {
				return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\%c{...} escape", letter)
			}
			if c == '}' {
				break
			}
			l.pos++
		}
		name := string(l.body[nameStart:l.pos])
		l.pos++ // consume '}'
		if len(name) > 0 && name[0] == '^' {
			negated = !negated
			name = name[1:]
		}
		return token.Token{Kind: token.UnicodeProperty, Start: start, End: l.pos, Name: name, Negated: negated}, false, nil
	}
	// Single-letter shorthand: \pL
	l.pos++
	return token.Token{Kind: token.UnicodeProperty, Start: start, End: l.pos, Name: string(c), Negated: negated}, false, nil
}

// lexBackrefOrSubroutine handles \g{n}, \g{-n}, \g{name}, \gn (all
// backreferences), and \g<name>, \g'name' (subroutine calls).
func (l *Lexer) lexBackrefOrSubroutine(start uint32) (token.Token, bool, error) {
	c, ok := l.byteAt(l.pos)
	if !ok {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\g escape")
	}
	switch {
	case c == '<':
		l.pos++
		return l.scanGAngleSubroutine(start, '>')
	case c == '\'':
		l.pos++
		return l.scanGAngleSubroutine(start, '\'')
	case c == '{':
		l.pos++
		return l.scanGBraceBackref(start)
	case c == '-' || (c >= '0' && c <= '9'):
		return l.scanGBareBackref(start)
	default:
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "malformed \\g escape")
	}
}

func (l *Lexer) scanGAngleSubroutine(start uint32, closer byte) (token.Token, bool, error) {
	nameStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\g subroutine call")
		}
		if c == closer {
			break
		}
		l.pos++
	}
	name := string(l.body[nameStart:l.pos])
	l.pos++
	return token.Token{Kind: token.Subroutine, Start: start, End: l.pos, Name: name, Text: string(l.body[start:l.pos])}, false, nil
}

func (l *Lexer) scanGBraceBackref(start uint32) (token.Token, bool, error) {
	contentStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\g{...} backreference")
		}
		if c == '}' {
			break
		}
		l.pos++
	}
	content := l.body[contentStart:l.pos]
	l.pos++ // consume '}'
	if len(content) > 0 && (content[0] == '-' || (content[0] >= '0' && content[0] <= '9')) {
		relative := content[0] == '-'
		digits := content
		if relative {
			digits = content[1:]
		}
		n := atoiBytes(digits)
		if relative {
			n = -n
		}
		return token.Token{Kind: token.BackrefNumeric, Start: start, End: l.pos, Number: int32(n), HasNumber: true, Relative: relative}, false, nil
	}
	return token.Token{Kind: token.BackrefNamed, Start: start, End: l.pos, Name: string(content)}, false, nil
}

func (l *Lexer) scanGBareBackref(start uint32) (token.Token, bool, error) {
	relative := false
	if c, ok := l.byteAt(l.pos); ok && c == '-' {
		relative = true
		l.pos++
	}
	digitsStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok || c < '0' || c > '9' {
			break
		}
		l.pos++
	}
	if digitsStart == l.pos {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "\\g with no digits")
	}
	n := atoiBytes(l.body[digitsStart:l.pos])
	if relative {
		n = -n
	}
	return token.Token{Kind: token.BackrefNumeric, Start: start, End: l.pos, Number: int32(n), HasNumber: true, Relative: relative}, false, nil
}

// lexNamedBackrefK handles \k<name>, \k{name}, \k'name'.
func (l *Lexer) lexNamedBackrefK(start uint32) (token.Token, bool, error) {
	c, ok := l.byteAt(l.pos)
	if !ok {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\k escape")
	}
	var closer byte
	switch c {
	case '<':
		closer = '>'
	case '{':
		closer = '}'
	case '\'':
		closer = '\''
	default:
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "malformed \\k escape")
	}
	l.pos++
	nameStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\k named backreference")
		}
		if c == closer {
			break
		}
		l.pos++
	}
	name := string(l.body[nameStart:l.pos])
	l.pos++
	return token.Token{Kind: token.BackrefNamed, Start: start, End: l.pos, Name: name}, false, nil
}

// lexControlEscape handles \cX, mapping to the control byte toupper(X)^0x40.
func (l *Lexer) lexControlEscape(start uint32) (token.Token, bool, error) {
	c, ok := l.byteAt(l.pos)
	if !ok {
		return token.Token{}, false, newErr(ErrMalformedEscape, start, "unterminated \\c escape")
	}
	l.pos++
	upper := c
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}
	return token.Token{Kind: token.Literal, Start: start, End: l.pos, Bytes: []byte{upper ^ 0x40}, Text: string([]byte{'\\', 'c', c})}, false, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
