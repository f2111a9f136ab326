package ast

import "strings"

// Flags is the bitset of recognized PCRE2 pattern flags (spec.md §6, and
// the flag table resolved in SPEC_FULL.md's "SUPPLEMENTED FEATURES" for
// the open question spec.md §9 left unresolved).
type Flags uint16

// Recognized flag bits. Letters match the PCRE2 modifier alphabet the
// facade accepts after the closing delimiter.
const (
	FlagI Flags = 1 << iota // case-insensitive
	FlagM                   // multiline: ^/$ match at line boundaries
	FlagS                   // dotall: '.' matches newline
	FlagX                   // extended: whitespace/#-comments ignored outside classes/\Q\E
	FlagU                   // Unicode mode: code-point semantics, wider property classes
	FlagUngreedy            // 'U': default quantifier laziness inverted
	FlagDupNames            // 'J': allow duplicate named groups without branch-reset
	FlagAnchored            // 'A': implicit \A at pattern start
	FlagDollarEndOnly       // 'D': $ matches only at the absolute end
	FlagExtra               // 'X': stricter escape validation
	FlagRepeatOnce          // 'r': PCRE2-oniguruma compatibility alias of FlagUngreedy
)

var flagLetters = map[byte]Flags{
	'i': FlagI,
	'm': FlagM,
	's': FlagS,
	'x': FlagX,
	'u': FlagU,
	'U': FlagUngreedy,
	'J': FlagDupNames,
	'A': FlagAnchored,
	'D': FlagDollarEndOnly,
	'X': FlagExtra,
	'r': FlagRepeatOnce,
}

var flagNames = []struct {
	bit    Flags
	letter byte
}{
	{FlagI, 'i'}, {FlagM, 'm'}, {FlagS, 's'}, {FlagX, 'x'}, {FlagU, 'u'},
	{FlagUngreedy, 'U'}, {FlagDupNames, 'J'}, {FlagAnchored, 'A'},
	{FlagDollarEndOnly, 'D'}, {FlagExtra, 'X'}, {FlagRepeatOnce, 'r'},
}

// ParseFlags decodes a flag letter string, returning the set bits and the
// byte offset of the first unrecognized letter (-1 if all letters were
// recognized).
func ParseFlags(s string) (Flags, int) {
	var f Flags
	for i := 0; i < len(s); i++ {
		bit, ok := flagLetters[s[i]]
		if !ok {
			return f, i
		}
		f |= bit
	}
	return f, -1
}

// Has reports whether all bits in other are set in f.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// String renders f back to its canonical letter sequence, in the fixed
// order of flagNames (not necessarily the input order, since Flags is a
// set).
func (f Flags) String() string {
	var b strings.Builder
	for _, fn := range flagNames {
		if f&fn.bit != 0 {
			b.WriteByte(fn.letter)
		}
	}
	return b.String()
}
