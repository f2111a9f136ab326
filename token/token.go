// Package token defines the lexical tokens produced by the lexer (spec §4.2)
// and a bounded-lookahead stream for consuming them.
//
// Tokens carry their exact source text so the compiler can reproduce the
// original pattern byte-for-byte where the grammar allows, and a byte range
// into the pattern body (not including the opening delimiter) for
// diagnostics.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind uint8

// Token kinds, one per spec.md §3.2 entry.
const (
	Invalid Kind = iota
	Literal
	Dot
	CharTypeEscape
	Anchor
	AssertionEscape
	Keep
	GroupOpen
	GroupModifierOpen
	GroupClose
	Alternation
	Quantifier
	CharClassOpen
	CharClassClose
	RangeDash
	PosixClass
	BackrefNumeric
	BackrefNamed
	Subroutine
	UnicodeEscape
	UnicodeProperty
	Octal
	Comment
	PcreVerb
	EOF
)

var kindNames = [...]string{
	Invalid:           "Invalid",
	Literal:           "Literal",
	Dot:               "Dot",
	CharTypeEscape:    "CharTypeEscape",
	Anchor:            "Anchor",
	AssertionEscape:   "AssertionEscape",
	Keep:              "Keep",
	GroupOpen:         "GroupOpen",
	GroupModifierOpen: "GroupModifierOpen",
	GroupClose:        "GroupClose",
	Alternation:       "Alternation",
	Quantifier:        "Quantifier",
	CharClassOpen:     "CharClassOpen",
	CharClassClose:    "CharClassClose",
	RangeDash:         "RangeDash",
	PosixClass:        "PosixClass",
	BackrefNumeric:    "BackrefNumeric",
	BackrefNamed:      "BackrefNamed",
	Subroutine:        "Subroutine",
	UnicodeEscape:     "UnicodeEscape",
	UnicodeProperty:   "UnicodeProperty",
	Octal:             "Octal",
	Comment:           "Comment",
	PcreVerb:          "PcreVerb",
	EOF:               "EOF",
}

// String returns a human-readable name for k.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// QuantifierForm captures the literal shape of a Quantifier token so the
// compiler can reproduce it exactly (e.g. `{2,4}` vs `{2,}` vs `*`).
type QuantifierForm struct {
	Min, Max int  // Max == -1 means unbounded
	Lazy     bool // trailing '?'
	Possessive bool // trailing '+'
}

// Token is a single lexical unit: its kind, byte range in the pattern body,
// raw source text, and any kind-specific decoded payload.
type Token struct {
	Kind  Kind
	Start uint32
	End   uint32
	Text  string // exact source slice, for round-tripping

	// Quantifier carries the decoded repetition bounds when Kind == Quantifier.
	Quantifier QuantifierForm

	// Bytes carries the decoded UTF-8 payload of a Literal token.
	Bytes []byte
	// Letter carries the escape letter of a CharTypeEscape/Anchor/
	// AssertionEscape token.
	Letter byte

	// CodePoint carries the decoded value for UnicodeEscape/Octal tokens.
	CodePoint uint32

	// Name carries the decoded identifier for BackrefNamed/PosixClass/
	// UnicodeProperty/Subroutine/PcreVerb tokens.
	Name string

	// Negated marks a negated PosixClass (`[:^alpha:]`, rejected by the
	// validator), UnicodeProperty (`\P{...}`), or CharClassOpen (`[^`).
	Negated bool

	// Number carries a decoded signed integer for BackrefNumeric/Subroutine
	// tokens (group index, possibly relative).
	Number int32
	// HasNumber reports whether Number is meaningful for this token.
	HasNumber bool
	// Relative marks a BackrefNumeric/Subroutine Number as relative
	// (`\g{-1}`, `(?-1)`, `(?+1)`) rather than absolute.
	Relative bool
	// Recursive marks a Subroutine token as whole-pattern recursion
	// (`(?R)`, `(?0)`, `\g{0}`).
	Recursive bool

	// PythonSyntax marks a group-open/backref/subroutine token that used
	// the `(?P...)` spelling instead of the standard PCRE2 one, so the
	// compiler can reproduce it.
	PythonSyntax bool
	// Apostrophe marks a named group that used `(?'name'...)` instead of
	// `(?<name>...)`.
	Apostrophe bool

	// FlagSet/FlagUnset carry the raw letters of an inline-flags group's
	// `(?flags-flags...)` delta.
	FlagSet, FlagUnset string
	// Standalone marks an inline-flags modifier-open token that already
	// consumed its own trailing `)` (a flag-only directive like `(?i)`
	// with no group body), so the parser must not expect a GroupClose.
	Standalone bool
	// Conditional marks a GroupModifierOpen token as the `(?` prefix of a
	// Conditional group; the next token begins the condition unit.
	Conditional bool
}

// String renders the token for debugging.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@[%d,%d)", t.Kind, t.Text, t.Start, t.End)
}
