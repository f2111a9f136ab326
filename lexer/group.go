package lexer

import "github.com/coregx/regexlint/token"

// lexGroupOpen classifies a '(' at the current position. The single rule
// behind every PCRE2 parenthesized form is: consume '(', peek the next
// byte; anything other than '?' is a plain capturing/ordinary group open,
// and a '?' hands off to lexGroupModifier to classify what follows. The
// conditional-group case ((?(...)...)) needs no extra machinery: its
// Conditional marker token stops right after "(?", so the very next call
// to Next sees the condition's own '(' fresh and runs this same rule
// again, whether that condition is a plain "(1)" (an ordinary GroupOpen,
// left for the parser to read as a condition) or a lookaround "(?=...)"
// (another '(' '?' dispatch).
func (l *Lexer) lexGroupOpen() (token.Token, bool, error) {
	start := l.pos
	l.pos++ // consume '('
	c, ok := l.byteAt(l.pos)
	if ok && c == '*' {
		l.pos++
		return l.lexVerb(start)
	}
	if !ok || c != '?' {
		return token.Token{Kind: token.GroupOpen, Start: start, End: l.pos, Text: "("}, false, nil
	}
	l.pos++ // consume '?'
	return l.lexGroupModifier(start)
}

// lexVerb scans a PCRE2 "(*NAME)" or "(*NAME:arg)" verb; l.pos sits right
// after "(*".
func (l *Lexer) lexVerb(start uint32) (token.Token, bool, error) {
	nameStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated (*VERB) construct")
		}
		if c == ')' || c == ':' {
			break
		}
		l.pos++
	}
	name := string(l.body[nameStart:l.pos])
	var arg string
	if c, _ := l.byteAt(l.pos); c == ':' {
		l.pos++
		argStart := l.pos
		for {
			c, ok := l.byteAt(l.pos)
			if !ok {
				return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated (*VERB:arg) construct")
			}
			if c == ')' {
				break
			}
			l.pos++
		}
		arg = string(l.body[argStart:l.pos])
	}
	if c, ok := l.byteAt(l.pos); !ok || c != ')' {
		return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated (*VERB) construct")
	}
	l.pos++
	return token.Token{Kind: token.PcreVerb, Start: start, End: l.pos, Name: name, Text: arg}, false, nil
}

// lexGroupModifier scans everything after "(?" (start is the offset of the
// opening '(').
func (l *Lexer) lexGroupModifier(start uint32) (token.Token, bool, error) {
	c, ok := l.byteAt(l.pos)
	if !ok {
		return token.Token{}, false, newErr(ErrUnexpectedEOF, l.pos, "unexpected end of pattern after (?")
	}

	switch c {
	case ':':
		l.pos++
		return l.modTok(start), false, nil
	case '>':
		l.pos++
		return l.modTok(start), false, nil
	case '=':
		l.pos++
		return l.modTok(start), false, nil
	case '!':
		l.pos++
		return l.modTok(start), false, nil
	case '|':
		l.pos++
		return l.modTok(start), false, nil
	case '#':
		l.pos++
		return l.lexGroupComment(start)
	case '<':
		l.pos++
		return l.lexAngleForm(start)
	case '\'':
		l.pos++
		return l.lexNamedGroup(start, '\'', false)
	case 'P':
		l.pos++
		return l.lexPythonForm(start)
	case 'R':
		return l.lexWholePatternRecursion(start)
	case '&':
		l.pos++
		return l.lexNamedSubroutine(start)
	case '(':
		// Conditional: stop right after "(?"; the next Next() call re-enters
		// lexGroupOpen/lexNormal fresh at this '(' and classifies the
		// condition itself.
		return token.Token{Kind: token.GroupModifierOpen, Start: start, End: l.pos, Text: "(?", Conditional: true}, false, nil
	case '+', '-':
		return l.lexNumericSubroutine(start)
	default:
		if c >= '0' && c <= '9' {
			return l.lexNumericSubroutine(start)
		}
		if isFlagLetter(c) || c == '-' {
			return l.lexInlineFlags(start)
		}
		return token.Token{}, false, newErr(ErrMalformedGroup, start, "unrecognized (?%c construct", c)
	}
}

func (l *Lexer) modTok(start uint32) token.Token {
	return token.Token{Kind: token.GroupModifierOpen, Start: start, End: l.pos, Text: string(l.body[start:l.pos])}
}

// lexGroupComment scans "(?#...)" ; start is the '(' offset, l.pos sits
// right after "(?#".
func (l *Lexer) lexGroupComment(start uint32) (token.Token, bool, error) {
	contentStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrUnterminatedComment, start, "unterminated (?#...) comment")
		}
		if c == ')' {
			text := string(l.body[contentStart:l.pos])
			l.pos++
			return token.Token{Kind: token.Comment, Start: start, End: l.pos, Text: text}, false, nil
		}
		l.pos++
	}
}

// lexAngleForm handles "(?<...": lookbehind assertions and the standard
// named-group spelling "(?<name>...)". l.pos sits right after "(?<".
func (l *Lexer) lexAngleForm(start uint32) (token.Token, bool, error) {
	c, ok := l.byteAt(l.pos)
	if ok && c == '=' {
		l.pos++
		return l.modTok(start), false, nil
	}
	if ok && c == '!' {
		l.pos++
		return l.modTok(start), false, nil
	}
	return l.lexNamedGroup(start, '>', false)
}

// lexNamedGroup scans a group name up to closer (either '>' or '\'') and
// emits a GroupModifierOpen carrying Name. python marks the "(?P<name>"
// spelling (kept distinct from plain "(?<name>" only by the caller).
func (l *Lexer) lexNamedGroup(start uint32, closer byte, python bool) (token.Token, bool, error) {
	nameStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated group name")
		}
		if c == closer {
			name := string(l.body[nameStart:l.pos])
			l.pos++
			return token.Token{
				Kind: token.GroupModifierOpen, Start: start, End: l.pos,
				Text: string(l.body[start:l.pos]), Name: name,
				PythonSyntax: python, Apostrophe: closer == '\'',
			}, false, nil
		}
		l.pos++
	}
}

// lexPythonForm handles "(?P..." : named group "(?P<name>", named backref
// "(?P=name)", and named subroutine call "(?P>name)".
func (l *Lexer) lexPythonForm(start uint32) (token.Token, bool, error) {
	c, ok := l.byteAt(l.pos)
	if !ok {
		return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated (?P construct")
	}
	switch c {
	case '<':
		l.pos++
		return l.lexNamedGroup(start, '>', true)
	case '=':
		l.pos++
		return l.lexPythonBackref(start)
	case '>':
		l.pos++
		return l.lexPythonSubroutine(start)
	default:
		return token.Token{}, false, newErr(ErrMalformedGroup, start, "unrecognized (?P%c construct", c)
	}
}

func (l *Lexer) lexPythonBackref(start uint32) (token.Token, bool, error) {
	nameStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated (?P=name) backreference")
		}
		if c == ')' {
			name := string(l.body[nameStart:l.pos])
			l.pos++
			return token.Token{Kind: token.BackrefNamed, Start: start, End: l.pos, Name: name, PythonSyntax: true}, false, nil
		}
		l.pos++
	}
}

func (l *Lexer) lexPythonSubroutine(start uint32) (token.Token, bool, error) {
	nameStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated (?P>name) subroutine call")
		}
		if c == ')' {
			name := string(l.body[nameStart:l.pos])
			l.pos++
			return token.Token{Kind: token.Subroutine, Start: start, End: l.pos, Name: name, PythonSyntax: true}, false, nil
		}
		l.pos++
	}
}

// lexWholePatternRecursion handles "(?R)".
func (l *Lexer) lexWholePatternRecursion(start uint32) (token.Token, bool, error) {
	c, ok := l.byteAt(l.pos + 1)
	if !ok || l.body[l.pos] != 'R' || c != ')' {
		return token.Token{}, false, newErr(ErrMalformedGroup, start, "malformed (?R) recursion")
	}
	l.pos += 2
	return token.Token{Kind: token.Subroutine, Start: start, End: l.pos, Recursive: true, Text: "(?R)"}, false, nil
}

// lexNamedSubroutine handles "(?&name)".
func (l *Lexer) lexNamedSubroutine(start uint32) (token.Token, bool, error) {
	nameStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated (?&name) subroutine call")
		}
		if c == ')' {
			name := string(l.body[nameStart:l.pos])
			l.pos++
			return token.Token{Kind: token.Subroutine, Start: start, End: l.pos, Name: name}, false, nil
		}
		l.pos++
	}
}

// lexNumericSubroutine handles "(?N)", "(?-N)", "(?+N)", and the
// whole-pattern form "(?0)".
func (l *Lexer) lexNumericSubroutine(start uint32) (token.Token, bool, error) {
	relative := false
	negative := false
	if c, ok := l.byteAt(l.pos); ok && (c == '+' || c == '-') {
		relative = true
		negative = c == '-'
		l.pos++
	}
	digitStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if !ok {
			return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated numeric subroutine call")
		}
		if c == ')' {
			break
		}
		if c < '0' || c > '9' {
			return token.Token{}, false, newErr(ErrMalformedGroup, start, "malformed numeric subroutine call")
		}
		l.pos++
	}
	if digitStart == l.pos {
		return token.Token{}, false, newErr(ErrMalformedGroup, start, "numeric subroutine call with no digits")
	}
	n := atoiBytes(l.body[digitStart:l.pos])
	if negative {
		n = -n
	}
	l.pos++ // consume ')'
	return token.Token{
		Kind: token.Subroutine, Start: start, End: l.pos,
		Number: int32(n), HasNumber: true, Relative: relative, Recursive: n == 0 && !relative,
	}, false, nil
}

func isFlagLetter(c byte) bool {
	switch c {
	case 'i', 'm', 's', 'x', 'u', 'U', 'J', 'A', 'D', 'X', 'r':
		return true
	}
	return false
}

// lexInlineFlags handles "(?flags-flags:" and "(?flags-flags)".
func (l *Lexer) lexInlineFlags(start uint32) (token.Token, bool, error) {
	setStart := l.pos
	for {
		c, ok := l.byteAt(l.pos)
		if ok && isFlagLetter(c) {
			l.pos++
			continue
		}
		break
	}
	set := string(l.body[setStart:l.pos])

	var unset string
	if c, ok := l.byteAt(l.pos); ok && c == '-' {
		l.pos++
		unsetStart := l.pos
		for {
			c, ok := l.byteAt(l.pos)
			if ok && isFlagLetter(c) {
				l.pos++
				continue
			}
			break
		}
		unset = string(l.body[unsetStart:l.pos])
	}

	c, ok := l.byteAt(l.pos)
	if !ok {
		return token.Token{}, false, newErr(ErrMalformedGroup, start, "unterminated inline-flags group")
	}
	switch c {
	case ':':
		l.pos++
		return token.Token{
			Kind: token.GroupModifierOpen, Start: start, End: l.pos, Text: string(l.body[start:l.pos]),
			FlagSet: set, FlagUnset: unset,
		}, false, nil
	case ')':
		l.pos++
		return token.Token{
			Kind: token.GroupModifierOpen, Start: start, End: l.pos, Text: string(l.body[start:l.pos]),
			FlagSet: set, FlagUnset: unset, Standalone: true,
		}, false, nil
	default:
		return token.Token{}, false, newErr(ErrMalformedGroup, start, "malformed inline-flags group")
	}
}
