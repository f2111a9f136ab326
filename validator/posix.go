package validator

// knownPosixClasses is the POSIX bracket-expression names PCRE2 recognizes
// inside "[:name:]", plus PCRE2's own "word"/"ascii" extensions.
var knownPosixClasses = map[string]bool{
	"alpha": true, "digit": true, "alnum": true, "upper": true, "lower": true,
	"space": true, "punct": true, "print": true, "graph": true, "cntrl": true,
	"blank": true, "xdigit": true, "word": true, "ascii": true,
}

// knownUnicodeProperties is a representative set of \p{...}/\P{...}
// general categories, scripts, and derived properties PCRE2 accepts.
// Short category aliases (L, N, ...) and their subdivisions are both
// listed, matching PCRE2's own property table shape.
var knownUnicodeProperties = map[string]bool{
	// General categories.
	"L": true, "Lu": true, "Ll": true, "Lt": true, "Lm": true, "Lo": true,
	"M": true, "Mn": true, "Mc": true, "Me": true,
	"N": true, "Nd": true, "Nl": true, "No": true,
	"P": true, "Pc": true, "Pd": true, "Ps": true, "Pe": true, "Pi": true, "Pf": true, "Po": true,
	"S": true, "Sm": true, "Sc": true, "Sk": true, "So": true,
	"Z": true, "Zs": true, "Zl": true, "Zp": true,
	"C": true, "Cc": true, "Cf": true, "Co": true, "Cs": true,
	// Scripts.
	"Latin": true, "Greek": true, "Cyrillic": true, "Armenian": true, "Hebrew": true,
	"Arabic": true, "Syriac": true, "Thaana": true, "Devanagari": true, "Bengali": true,
	"Gurmukhi": true, "Gujarati": true, "Oriya": true, "Tamil": true, "Telugu": true,
	"Kannada": true, "Malayalam": true, "Sinhala": true, "Thai": true, "Lao": true,
	"Tibetan": true, "Myanmar": true, "Georgian": true, "Hangul": true, "Ethiopic": true,
	"Han": true, "Hiragana": true, "Katakana": true, "Common": true,
	// Derived/binary properties.
	"Alpha": true, "Alphabetic": true, "Any": true, "Assigned": true,
	"White_Space": true, "Uppercase": true, "Lowercase": true, "Math": true,
	"ASCII": true, "Bidi_Control": true, "Cased": true, "Emoji": true,
}
