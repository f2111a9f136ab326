package nfa

import (
	"unicode"

	"github.com/coregx/regexlint/ast"
)

// maxRune bounds every "negated" range computation: Unicode code points
// never exceed this (stdlib unicode.MaxRune).
const maxRune = unicode.MaxRune

// ranges is a small helper the builder uses to accumulate and then negate
// rune-range sets for classes, dot, and char types.
type ranges []RuneRange

func (rs ranges) add(lo, hi rune) ranges {
	if lo > hi {
		return rs
	}
	return append(rs, RuneRange{Lo: lo, Hi: hi})
}

// negate returns the complement of rs within [0, maxRune], assuming rs is
// sorted and non-overlapping (callers build rs in increasing order, as
// every case below does).
func (rs ranges) negate() ranges {
	var out ranges
	next := rune(0)
	for _, r := range rs {
		if r.Lo > next {
			out = out.add(next, r.Lo-1)
		}
		if r.Hi+1 > next {
			next = r.Hi + 1
		}
	}
	if next <= maxRune {
		out = out.add(next, maxRune)
	}
	return out
}

// dotRanges returns the rune set '.' matches: anything but '\n', or
// anything at all under dotall (FlagS).
func dotRanges(dotAll bool) ranges {
	if dotAll {
		return ranges{{Lo: 0, Hi: maxRune}}
	}
	return ranges{{Lo: 0, Hi: '\n' - 1}, {Lo: '\n' + 1, Hi: maxRune}}
}

// charTypeRanges returns the rune set a \d \D \s \S \w \W \h \H \v \V
// CharType node matches. The upper-case / lower-case pairs are
// complements of each other.
func charTypeRanges(letter byte) ranges {
	switch letter {
	case 'd':
		return ranges{{Lo: '0', Hi: '9'}}
	case 'D':
		return charTypeRanges('d').negate()
	case 'w':
		return ranges{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: '_', Hi: '_'}, {Lo: 'a', Hi: 'z'}}
	case 'W':
		return charTypeRanges('w').negate()
	case 's':
		return ranges{{Lo: '\t', Hi: '\n'}, {Lo: '\f', Hi: '\r'}, {Lo: ' ', Hi: ' '}}
	case 'S':
		return charTypeRanges('s').negate()
	case 'h':
		return ranges{{Lo: '\t', Hi: '\t'}, {Lo: ' ', Hi: ' '}}
	case 'H':
		return charTypeRanges('h').negate()
	case 'v':
		return ranges{{Lo: '\n', Hi: '\r'}}
	case 'V':
		return charTypeRanges('v').negate()
	default:
		// R and N (any Unicode newline sequence / non-newline) have no
		// single-rune-range representation; the nil return makes the
		// builder reject them with CodeClassItem.
		return nil
	}
}

// posixClassRanges returns the ASCII rune set a POSIX class matches,
// approximating the validator's knownPosixClasses table (validator/posix.go)
// restricted to the ranges a finite automaton can express directly.
func posixClassRanges(name string) ranges {
	switch name {
	case "alpha":
		return ranges{{Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}}
	case "digit":
		return ranges{{Lo: '0', Hi: '9'}}
	case "alnum":
		return ranges{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}}
	case "upper":
		return ranges{{Lo: 'A', Hi: 'Z'}}
	case "lower":
		return ranges{{Lo: 'a', Hi: 'z'}}
	case "space":
		return ranges{{Lo: '\t', Hi: '\r'}, {Lo: ' ', Hi: ' '}}
	case "blank":
		return ranges{{Lo: '\t', Hi: '\t'}, {Lo: ' ', Hi: ' '}}
	case "punct":
		return ranges{{Lo: '!', Hi: '/'}, {Lo: ':', Hi: '@'}, {Lo: '[', Hi: '`'}, {Lo: '{', Hi: '~'}}
	case "cntrl":
		return ranges{{Lo: 0, Hi: 0x1f}, {Lo: 0x7f, Hi: 0x7f}}
	case "print":
		return ranges{{Lo: 0x20, Hi: 0x7e}}
	case "graph":
		return ranges{{Lo: 0x21, Hi: 0x7e}}
	case "xdigit":
		return ranges{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'F'}, {Lo: 'a', Hi: 'f'}}
	case "ascii":
		return ranges{{Lo: 0, Hi: 0x7f}}
	case "word":
		return ranges{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'Z'}, {Lo: '_', Hi: '_'}, {Lo: 'a', Hi: 'z'}}
	default:
		return nil
	}
}

// unicodePropTable resolves a \p{Name} property to the stdlib RangeTable
// backing it, covering general categories, scripts, and the common
// derived/binary properties — the same three tables the validator's
// knownUnicodeProperties names validate against (validator/posix.go), used
// here for their actual rune coverage instead of just membership.
func unicodePropTable(name string) *unicode.RangeTable {
	if t, ok := unicode.Categories[name]; ok {
		return t
	}
	if t, ok := unicode.Scripts[name]; ok {
		return t
	}
	if t, ok := unicode.Properties[name]; ok {
		return t
	}
	return nil
}

// rangeTableRanges flattens a *unicode.RangeTable into our ranges slice.
func rangeTableRanges(t *unicode.RangeTable) ranges {
	var out ranges
	for _, r16 := range t.R16 {
		for lo := rune(r16.Lo); lo <= rune(r16.Hi); lo += rune(r16.Stride) {
			out = out.add(lo, lo)
			if r16.Stride == 0 {
				break
			}
		}
	}
	for _, r32 := range t.R32 {
		for lo := rune(r32.Lo); lo <= rune(r32.Hi); lo += rune(r32.Stride) {
			out = out.add(lo, lo)
			if r32.Stride == 0 {
				break
			}
		}
	}
	return coalesce(out)
}

// coalesce merges adjacent/overlapping ranges in a sorted-by-Lo slice,
// bounding the transition count the RangeTable expansion above produces.
func coalesce(rs ranges) ranges {
	if len(rs) == 0 {
		return rs
	}
	out := ranges{rs[0]}
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// foldCase expands rs to include the opposite-case rune for every ASCII
// letter it contains, approximating PCRE2's FlagI for the Latin alphabet
// (the automaton's only consumers — equivalence/witness-search/ReDoS — do
// not need full Unicode case folding, only ASCII, since that is the
// alphabet every generated witness and sample string in this module uses).
func foldCase(rs ranges) ranges {
	var out ranges
	out = append(out, rs...)
	for _, r := range rs {
		lo, hi := r.Lo, r.Hi
		if lo > 'z' || hi < 'A' {
			continue
		}
		if lo <= 'Z' && hi >= 'A' {
			foldLo, foldHi := lo, hi
			if foldLo < 'A' {
				foldLo = 'A'
			}
			if foldHi > 'Z' {
				foldHi = 'Z'
			}
			out = out.add(foldLo+32, foldHi+32)
		}
		if lo <= 'z' && hi >= 'a' {
			foldLo, foldHi := lo, hi
			if foldLo < 'a' {
				foldLo = 'a'
			}
			if foldHi > 'z' {
				foldHi = 'z'
			}
			out = out.add(foldLo-32, foldHi-32)
		}
	}
	return coalesce(sortRanges(out))
}

func sortRanges(rs ranges) ranges {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j-1].Lo > rs[j].Lo; j-- {
			rs[j-1], rs[j] = rs[j], rs[j-1]
		}
	}
	return rs
}

// classItemRanges resolves one CharClass child item (Literal, Range,
// CharType, PosixClass, UnicodeProp, UnicodeEscape) to its rune ranges.
func classItemRanges(item *ast.Node) (ranges, *ComplexityError) {
	switch item.Kind {
	case ast.KindRange:
		return ranges{{Lo: item.Lo, Hi: item.Hi}}, nil
	case ast.KindLiteral:
		var out ranges
		for _, r := range string(item.Bytes) {
			out = out.add(r, r)
		}
		return out, nil
	case ast.KindCharType:
		rs := charTypeRanges(item.Letter)
		if rs == nil {
			return nil, complexityErr(CodeClassItem, item.Start, "unsupported char type escape in class")
		}
		return rs, nil
	case ast.KindPosixClass:
		rs := posixClassRanges(item.Name)
		if rs == nil {
			return nil, complexityErr(CodeClassItem, item.Start, "unknown POSIX class "+item.Name)
		}
		if item.Negated {
			rs = rs.negate()
		}
		return rs, nil
	case ast.KindUnicodeProp:
		t := unicodePropTable(item.Name)
		if t == nil {
			return nil, complexityErr(CodeClassItem, item.Start, "unknown Unicode property "+item.Name)
		}
		rs := rangeTableRanges(t)
		if item.Negated {
			rs = rs.negate()
		}
		return rs, nil
	case ast.KindUnicodeEscape:
		r := rune(item.CodePoint)
		return ranges{{Lo: r, Hi: r}}, nil
	case ast.KindOctal, ast.KindOctalLegacy:
		r := rune(item.CodePoint)
		return ranges{{Lo: r, Hi: r}}, nil
	default:
		return nil, complexityErr(CodeClassItem, item.Start, "unsupported char-class item")
	}
}
