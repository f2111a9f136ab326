package lexer

import (
	"unicode/utf8"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/internal/bytesig"
	"github.com/coregx/regexlint/token"
)

// Lexer scans a PCRE2 pattern body into a token.Source. It is single-pass:
// Next never rescans bytes it has already consumed, and the Lexer holds no
// buffer beyond the current scanning position (spec.md §4.1/§4.2).
type Lexer struct {
	body  []byte
	flags ast.Flags
	pos   uint32
	err   error

	// asciiOnly is computed once over the whole body (internal/bytesig),
	// and exposed so the parser/automata builder can skip a second
	// classification pass when picking an automaton's effective alphabet
	// (spec.md §4.11).
	asciiOnly bool

	inClass    bool
	classFirst bool   // true until the first content item of the current class is emitted
	classStart uint32 // offset of the current class's '[' , for error reporting

	inQuote   bool
	quoteStart uint32 // offset of the current \Q, for error reporting
}

// New constructs a Lexer over body with the given flags already parsed
// (the facade is responsible for splitting "delim body delim flags" and
// calling ast.ParseFlags).
func New(body []byte, flags ast.Flags) *Lexer {
	return &Lexer{body: body, flags: flags, asciiOnly: bytesig.IsASCII(body)}
}

// AsciiOnly reports whether every byte of the pattern body is ASCII (< 0x80).
func (l *Lexer) AsciiOnly() bool {
	return l.asciiOnly
}

var _ token.Source = (*Lexer)(nil)

// Next returns the next token, or an EOF-kind token once the body is
// exhausted. It implements token.Source.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{Kind: token.EOF, Start: l.pos, End: l.pos}, l.err
	}
	for {
		if l.pos >= uint32(len(l.body)) {
			if l.inClass {
				return l.fail(newErr(ErrUnterminatedClass, l.classStart, "unterminated character class"))
			}
			if l.inQuote {
				return l.fail(newErr(ErrUnterminatedQuote, l.quoteStart, "unterminated \\Q...\\E quote"))
			}
			return token.Token{Kind: token.EOF, Start: l.pos, End: l.pos}, nil
		}

		if l.inQuote {
			tok, skip, err := l.lexQuote()
			if err != nil {
				return l.fail(err)
			}
			if skip {
				continue
			}
			return tok, nil
		}

		if l.inClass {
			tok, skip, err := l.lexClass()
			if err != nil {
				return l.fail(err)
			}
			if skip {
				continue
			}
			return tok, nil
		}

		if l.flags.Has(ast.FlagX) && l.skipExtended() {
			continue
		}

		tok, skip, err := l.lexNormal()
		if err != nil {
			return l.fail(err)
		}
		if skip {
			continue
		}
		return tok, nil
	}
}

func (l *Lexer) fail(err error) (token.Token, error) {
	l.err = err
	return token.Token{}, err
}

func (l *Lexer) byteAt(off uint32) (byte, bool) {
	if int(off) >= len(l.body) {
		return 0, false
	}
	return l.body[off], true
}

// skipExtended consumes one run of unescaped whitespace or a `#...\n`
// comment under the x flag, reporting whether it consumed anything.
func (l *Lexer) skipExtended() bool {
	start := l.pos
	for l.pos < uint32(len(l.body)) {
		c := l.body[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case c == '#':
			for l.pos < uint32(len(l.body)) && l.body[l.pos] != '\n' {
				l.pos++
			}
		default:
			return l.pos != start
		}
	}
	return l.pos != start
}

// isSpecialNormal reports whether c needs special-case scanning outside a
// character class (i.e. cannot be folded into a literal run).
func isSpecialNormal(c byte) bool {
	switch c {
	case '.', '^', '$', '|', '(', ')', '[', '*', '+', '?', '{', '\\':
		return true
	default:
		return false
	}
}

func (l *Lexer) lexNormal() (token.Token, bool, error) {
	start := l.pos
	c := l.body[l.pos]

	switch c {
	case '.':
		l.pos++
		return token.Token{Kind: token.Dot, Start: start, End: l.pos, Text: "."}, false, nil

	case '^', '$':
		l.pos++
		return token.Token{Kind: token.Anchor, Start: start, End: l.pos, Text: string(c), Letter: c}, false, nil

	case '|':
		l.pos++
		return token.Token{Kind: token.Alternation, Start: start, End: l.pos, Text: "|"}, false, nil

	case ')':
		l.pos++
		return token.Token{Kind: token.GroupClose, Start: start, End: l.pos, Text: ")"}, false, nil

	case '[':
		return l.lexClassOpen()

	case '(':
		return l.lexGroupOpen()

	case '\\':
		return l.lexEscape()

	case '*', '+', '?', '{':
		tok, ok, err := l.tryQuantifier()
		if err != nil {
			return token.Token{}, false, err
		}
		if ok {
			return tok, false, nil
		}
		// '{' that doesn't form a quantifier is a plain literal byte.
		l.pos++
		return token.Token{Kind: token.Literal, Start: start, End: l.pos, Text: string(c), Bytes: []byte{c}}, false, nil
	}

	// Literal run: consume a maximal stretch of non-special bytes.
	runStart := l.pos
	extended := l.flags.Has(ast.FlagX)
	for l.pos < uint32(len(l.body)) && !isSpecialNormal(l.body[l.pos]) {
		if c := l.body[l.pos]; extended && (c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v' || c == '#') {
			break
		}
		l.pos++
	}
	// A quantifier binds to the single atom before it, so a run followed
	// by one gives up its last rune to become that atom.
	if l.pos < uint32(len(l.body)) && l.pos-runStart > 1 {
		if q := l.body[l.pos]; q == '*' || q == '+' || q == '?' || q == '{' {
			if _, size := utf8.DecodeLastRune(l.body[runStart:l.pos]); uint32(size) < l.pos-runStart {
				l.pos -= uint32(size)
			}
		}
	}
	text := l.body[runStart:l.pos]
	return token.Token{Kind: token.Literal, Start: runStart, End: l.pos, Text: string(text), Bytes: append([]byte(nil), text...)}, false, nil
}

func (l *Lexer) lexClassOpen() (token.Token, bool, error) {
	start := l.pos
	l.pos++ // consume '['
	negated := false
	if c, ok := l.byteAt(l.pos); ok && c == '^' {
		negated = true
		l.pos++
	}
	l.inClass = true
	l.classFirst = true
	l.classStart = start
	return token.Token{Kind: token.CharClassOpen, Start: start, End: l.pos, Text: string(l.body[start:l.pos]), Negated: negated}, false, nil
}

// tryQuantifier attempts to parse a quantifier starting at the current
// position. ok is false (no error) when the byte at pos does not form a
// valid quantifier (e.g. a bare '{' that is not followed by \d+(,\d*)?}).
func (l *Lexer) tryQuantifier() (token.Token, bool, error) {
	start := l.pos
	c := l.body[l.pos]

	var min, max int
	switch c {
	case '*':
		min, max = 0, ast.Unbounded
		l.pos++
	case '+':
		min, max = 1, ast.Unbounded
		l.pos++
	case '?':
		min, max = 0, 1
		l.pos++
	case '{':
		m, n, n2, ok := parseBraceRepeat(l.body[l.pos:])
		if !ok {
			return token.Token{}, false, nil
		}
		min, max = m, n
		l.pos += uint32(n2)
	}

	// The U flag swaps the default laziness: quantifiers are lazy unless
	// suffixed with '?', which then asks for greedy instead. '+'
	// (possessive) is unaffected either way.
	mode := ast.Greedy
	if l.flags.Has(ast.FlagUngreedy) {
		mode = ast.Lazy
	}
	if c2, ok := l.byteAt(l.pos); ok {
		switch c2 {
		case '?':
			if mode == ast.Lazy {
				mode = ast.Greedy
			} else {
				mode = ast.Lazy
			}
			l.pos++
		case '+':
			mode = ast.Possessive
			l.pos++
		}
	}

	text := string(l.body[start:l.pos])
	return token.Token{
		Kind: token.Quantifier, Start: start, End: l.pos, Text: text,
		Quantifier: token.QuantifierForm{Min: min, Max: max, Lazy: mode == ast.Lazy, Possessive: mode == ast.Possessive},
	}, true, nil
}

// parseBraceRepeat parses `{min}`, `{min,}`, `{min,max}` from the start of
// data (data[0] == '{'). Returns the decoded bounds, the number of bytes
// consumed (including the closing '}'), and whether a match was found.
func parseBraceRepeat(data []byte) (min, max, consumed int, ok bool) {
	i := 1
	digitsStart := i
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0, 0, 0, false
	}
	min = atoiBytes(data[digitsStart:i])
	max = min

	if i < len(data) && data[i] == ',' {
		i++
		maxStart := i
		for i < len(data) && data[i] >= '0' && data[i] <= '9' {
			i++
		}
		if i == maxStart {
			max = ast.Unbounded
		} else {
			max = atoiBytes(data[maxStart:i])
		}
	}
	if i >= len(data) || data[i] != '}' {
		return 0, 0, 0, false
	}
	i++
	return min, max, i, true
}

func atoiBytes(b []byte) int {
	n := 0
	for _, c := range b {
		n = n*10 + int(c-'0')
	}
	return n
}

// decodeLiteralRune decodes one UTF-8 rune at l.pos (falling back to a
// single raw byte for invalid encodings, since a pattern body is treated
// as opaque bytes rather than validated UTF-8 outside the u flag) and
// advances past it.
func (l *Lexer) decodeLiteralRune() (r rune, start, end uint32) {
	start = l.pos
	r, size := utf8.DecodeRune(l.body[l.pos:])
	if r == utf8.RuneError && size <= 1 {
		size = 1
		r = rune(l.body[l.pos])
	}
	l.pos += uint32(size)
	return r, start, l.pos
}
