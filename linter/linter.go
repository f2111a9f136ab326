// Package linter runs a fixed registry of diagnostic rules over a parsed
// *ast.Node tree and reports Issues: stable-ID, severity-ranked findings
// with an optional suggested rewrite (spec.md §4.7). Every rule is
// read-only — linting never mutates the tree; a rule that wants to show
// a fix renders one with package compiler and attaches it as text.
package linter

import "github.com/coregx/regexlint/ast"

// Severity classifies how strongly a rule's finding should be acted on.
type Severity uint8

const (
	SeverityStyle Severity = iota
	SeverityPerf
	SeverityWarning
	SeverityError
)

// String returns a human-readable name for s.
func (s Severity) String() string {
	switch s {
	case SeverityStyle:
		return "style"
	case SeverityPerf:
		return "perf"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Range is the byte span, relative to the pattern body, an Issue points
// at — the same offset convention every *ast.Node carries.
type Range struct {
	Start, End uint32
}

// Issue is one finding. ID is a stable dotted string (e.g.
// "regex.lint.alternation.duplicate_disjunction") callers can match on
// across releases, mirroring validator.Code and nfa.ComplexityCode.
// SuggestedRewrite is empty when the rule has nothing concrete to offer.
type Issue struct {
	ID               string
	Severity         Severity
	Message          string
	Hint             string
	Range            Range
	SuggestedRewrite string
}

// Config toggles each rule group independently, following the teacher's
// meta.Config enumerated-toggle-struct idiom.
type Config struct {
	// UselessFlags flags s/m/i pattern flags the body never exercises.
	// Default: true
	UselessFlags bool

	// SuspiciousRanges flags a character range spanning more than its
	// intended letter/digit block, such as [A-z] pulling in the six
	// ASCII punctuation bytes between 'Z' and 'a'.
	// Default: true
	SuspiciousRanges bool

	// CharClassIssues flags duplicate character-class members and
	// useless single-character ranges such as a-a.
	// Default: true
	CharClassIssues bool

	// QuantifierIssues flags redundant {1} and no-op {0} quantifiers.
	// Default: true
	QuantifierIssues bool

	// DuplicateBranches flags alternation branches that are exact
	// duplicates of an earlier sibling, which can never be reached.
	// Default: true
	DuplicateBranches bool

	// DuplicateBranchAhoCorasickThreshold is the branch count at or
	// above which DuplicateBranches switches from pairwise comparison
	// to an Aho-Corasick multi-pattern scan, matching the literal
	// package's own large-alternation cutoff.
	// Default: 8
	DuplicateBranchAhoCorasickThreshold int

	// EmptyAlternatives flags an alternation branch with no content
	// ("a||b"), almost always a typo since it makes the whole
	// alternation trivially satisfiable.
	// Default: true
	EmptyAlternatives bool

	// UselessBackrefs flags a capturing group never referenced by any
	// backreference, subroutine call, or named condition — a candidate
	// for the optimizer to demote to non-capturing.
	// Default: true
	UselessBackrefs bool

	// RedosHints surfaces redos/'s theoretical findings (nested
	// unbounded quantifiers, overlapping alternation under an unbounded
	// quantifier) as linter Issues, deferring severity to that package
	// rather than re-deriving it.
	// Default: true
	RedosHints bool
}

// DefaultConfig enables every rule with the teacher's ≥8-alternative
// Aho-Corasick cutoff.
func DefaultConfig() Config {
	return Config{
		UselessFlags:                        true,
		SuspiciousRanges:                    true,
		CharClassIssues:                     true,
		QuantifierIssues:                    true,
		DuplicateBranches:                   true,
		DuplicateBranchAhoCorasickThreshold: 8,
		EmptyAlternatives:                   true,
		UselessBackrefs:                     true,
		RedosHints:                          true,
	}
}

// Report is Lint's result.
type Report struct {
	Issues []Issue
}

// Lint runs every rule cfg enables over root and returns their combined
// Issues in AST traversal order.
func Lint(root *ast.Node, cfg Config) Report {
	var issues []Issue

	if cfg.UselessFlags {
		issues = append(issues, checkUselessFlags(root)...)
	}
	if cfg.SuspiciousRanges {
		issues = append(issues, checkSuspiciousRanges(root)...)
	}
	if cfg.CharClassIssues {
		issues = append(issues, checkCharClassIssues(root)...)
	}
	if cfg.QuantifierIssues {
		issues = append(issues, checkQuantifierIssues(root)...)
	}
	if cfg.DuplicateBranches || cfg.EmptyAlternatives {
		issues = append(issues, checkAlternationIssues(root, cfg)...)
	}
	if cfg.UselessBackrefs {
		issues = append(issues, checkUselessBackrefs(root)...)
	}
	if cfg.RedosHints {
		issues = append(issues, checkRedosHints(root)...)
	}

	return Report{Issues: issues}
}

func walkNodes(n *ast.Node, visit func(*ast.Node)) {
	ast.Walk(n, &ast.Visitor{Enter: func(nd *ast.Node) bool {
		visit(nd)
		return true
	}})
}
