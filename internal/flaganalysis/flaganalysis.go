// Package flaganalysis walks an AST subtree to decide whether a pattern
// flag has any construct to act on. It backs both the optimizer's flag
// cleanup rule and the linter's useless-flags rule, which ask the same
// structural questions for different purposes (rewrite vs. diagnostic).
package flaganalysis

import (
	"unicode"

	"github.com/coregx/regexlint/ast"
)

// HasDot reports whether n contains a KindDot node, the only construct
// FlagS (dot-matches-newline) can affect.
func HasDot(n *ast.Node) bool {
	found := false
	ast.Walk(n, &ast.Visitor{Enter: func(nd *ast.Node) bool {
		if nd.Kind == ast.KindDot {
			found = true
		}
		return !found
	}})
	return found
}

// HasLineAnchor reports whether n contains a ^ or $ anchor, the only
// constructs FlagM (multiline anchors) can affect.
func HasLineAnchor(n *ast.Node) bool {
	found := false
	ast.Walk(n, &ast.Visitor{Enter: func(nd *ast.Node) bool {
		if nd.Kind == ast.KindAnchor && (nd.Letter == '^' || nd.Letter == '$') {
			found = true
		}
		return !found
	}})
	return found
}

// HasCaseBearingConstruct reports whether n contains a literal alphabetic
// rune, a range spanning one, or a construct (\w, POSIX alpha/alnum/...)
// whose case sensitivity depends on the letter casing of what it
// matches, as opposed to being inherently case-neutral (digits,
// punctuation, anchors, \d, \s).
func HasCaseBearingConstruct(n *ast.Node) bool {
	found := false
	ast.Walk(n, &ast.Visitor{Enter: func(nd *ast.Node) bool {
		if found {
			return false
		}
		switch nd.Kind {
		case ast.KindLiteral:
			for _, r := range string(nd.Bytes) {
				if IsCaseBearingRune(r) {
					found = true
					break
				}
			}
		case ast.KindRange:
			if RangeHasLetter(nd.Lo, nd.Hi) {
				found = true
			}
		case ast.KindCharType:
			if nd.Letter == 'w' || nd.Letter == 'W' {
				found = true
			}
		case ast.KindPosixClass:
			switch nd.Name {
			case "alpha", "alnum", "upper", "lower", "word", "graph", "print":
				found = true
			}
		case ast.KindUnicodeProp:
			found = true
		}
		return !found
	}})
	return found
}

// IsCaseBearingRune reports whether r's upper- and lower-case forms
// differ, i.e. whether FlagI can change what it matches.
func IsCaseBearingRune(r rune) bool {
	return unicode.IsLetter(r) && unicode.ToUpper(r) != unicode.ToLower(r)
}

// RangeHasLetter reports whether [lo, hi] overlaps the ASCII letter
// ranges.
func RangeHasLetter(lo, hi rune) bool {
	return rangesOverlap(lo, hi, 'A', 'Z') || rangesOverlap(lo, hi, 'a', 'z')
}

func rangesOverlap(lo1, hi1, lo2, hi2 rune) bool {
	return lo1 <= hi2 && lo2 <= hi1
}
