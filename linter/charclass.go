package linter

import (
	"fmt"

	"github.com/coregx/regexlint/ast"
)

// suspiciousSpan is an ASCII range whose endpoints are a common typo: the
// writer meant a single letter case but the range, taken literally, also
// pulls in the punctuation bytes between the upper- and lower-case
// blocks.
type suspiciousSpan struct {
	lo, hi rune
	detail string
}

var suspiciousSpans = []suspiciousSpan{
	{'A', 'z', "includes the 6 punctuation bytes [\\]^_` between Z and a"},
	{'Z', 'a', "includes the 6 punctuation bytes [\\]^_` between Z and a"},
	{'9', 'A', "includes the 7 punctuation bytes :;<=>?@ between 9 and A"},
	{'0', 'Z', "includes the 7 punctuation bytes :;<=>?@ between 9 and A and spans digits through uppercase"},
}

// checkSuspiciousRanges flags a Range node matching one of the common
// wide-typo spans.
func checkSuspiciousRanges(root *ast.Node) []Issue {
	var issues []Issue
	walkNodes(root, func(n *ast.Node) {
		if n.Kind != ast.KindRange {
			return
		}
		for _, s := range suspiciousSpans {
			if n.Lo == s.lo && n.Hi == s.hi {
				issues = append(issues, Issue{
					ID:       "regex.lint.charclass.suspicious_range",
					Severity: SeverityWarning,
					Message:  "range " + string(n.Lo) + "-" + string(n.Hi) + " " + s.detail,
					Hint:     "split into the separate letter/digit ranges actually intended",
					Range:    Range{n.Start, n.End},
				})
			}
		}
	})
	return issues
}

// checkCharClassIssues flags, per character class: a single-character
// range (a-a, useless — the hyphen adds nothing over the bare literal),
// and a class item that is an exact duplicate (by rune or by Range
// endpoints) of an earlier item in the same class.
func checkCharClassIssues(root *ast.Node) []Issue {
	var issues []Issue
	walkNodes(root, func(n *ast.Node) {
		if n.Kind != ast.KindCharClass {
			return
		}
		seen := map[string]bool{}
		for _, item := range n.Children {
			if item.Kind == ast.KindRange && item.Lo == item.Hi {
				issues = append(issues, Issue{
					ID:               "regex.lint.charclass.useless_range",
					Severity:         SeverityStyle,
					Message:          "range spans a single character",
					Hint:             "write the literal character instead of a degenerate range",
					Range:            Range{item.Start, item.End},
					SuggestedRewrite: string(item.Lo),
				})
			}
			key, ok := classItemKey(item)
			if !ok {
				continue
			}
			if seen[key] {
				issues = append(issues, Issue{
					ID:       "regex.lint.charclass.duplicate_member",
					Severity: SeverityStyle,
					Message:  "duplicate character-class member",
					Hint:     "remove the repeated member",
					Range:    Range{item.Start, item.End},
				})
				continue
			}
			seen[key] = true
		}
	})
	return issues
}

// classItemKey returns a comparison key for the class-item shapes that
// have an unambiguous, position-independent identity; ok is false for
// shapes (PosixClass, UnicodeProp, ...) compared elsewhere or not worth
// the ambiguity.
func classItemKey(n *ast.Node) (string, bool) {
	switch n.Kind {
	case ast.KindLiteral:
		return fmt.Sprintf("L:%x", n.Bytes), true
	case ast.KindRange:
		return fmt.Sprintf("R:%d:%d", n.Lo, n.Hi), true
	case ast.KindCharType:
		return fmt.Sprintf("T:%c", n.Letter), true
	case ast.KindPosixClass:
		return fmt.Sprintf("P:%t:%s", n.Negated, n.Name), true
	default:
		return "", false
	}
}
