// Package optimizer rewrites an *ast.Node tree into an equivalent, smaller
// or faster-to-match one (spec.md §4.6). Every rule is independently
// togglable, following the teacher's meta.Config enumerated-toggle-struct
// idiom, and every rule can run in verification mode: compile the
// automaton (package automata) of the subtree before and after the
// rewrite and discard the rewrite unless they agree. Nothing here ever
// executes a match — verification is the same structural-equivalence
// check automata/ already provides for the linter and the ReDoS analyzer.
package optimizer

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/compiler"
)

// Config toggles each rewrite rule independently and controls
// verification.
type Config struct {
	// CoalesceLiterals merges adjacent Literal children inside a Sequence.
	// Default: true
	CoalesceLiterals bool

	// FlattenGroups lifts a non-capturing group's single child and flattens
	// nested Sequences.
	// Default: true
	FlattenGroups bool

	// AlternationToCharClass turns an alternation of single-character
	// literals into a character class.
	// Default: true
	AlternationToCharClass bool

	// CanonicalizeCharClass sorts class items, merges overlapping ranges,
	// and detects full-coverage shorthand substitutions (\d, \w and their
	// negations).
	// Default: true
	CanonicalizeCharClass bool

	// CompactQuantifiers turns a run of k identical atoms into atom{k}.
	// Default: true
	CompactQuantifiers bool

	// MinQuantifierCount is the minimum run length CompactQuantifiers
	// will fold; explicit fixed quantifiers in the source are left as-is.
	// Default: 3
	MinQuantifierCount int

	// AutoPossessify turns a+ into a++ when a safety analysis proves the
	// following atom can never overlap a's first set, so backtracking
	// into the quantifier could never succeed.
	// Default: true
	AutoPossessify bool

	// CleanupFlags drops s/m/i pattern flags the body never exercises.
	// Default: true
	CleanupFlags bool

	// FactorizeAlternation turns ab|ac into a(?:b|c) when the common
	// prefix contains no backreferences. Off by default: the rewrite
	// usually lengthens the pattern text and changes the group shape.
	// MinSavingsChars does not apply to it.
	// Default: false
	FactorizeAlternation bool

	// VerifyEquivalence compiles the automaton of each candidate rewrite's
	// subtree, before and after, and discards the rewrite unless they are
	// provably equivalent. Rewrites touching a construct automata/nfa
	// cannot represent (lookarounds, backreferences, ...) are always kept
	// unverified, since verification has nothing to compile.
	// Default: true
	VerifyEquivalence bool

	// MinSavingsChars suppresses a rewrite that does not shrink the
	// rendered pattern text by at least this many characters. It is not
	// applied to FactorizeAlternation.
	// Default: 1
	MinSavingsChars int
}

// DefaultConfig returns every rule enabled except FactorizeAlternation,
// with verification on and a 3-atom minimum for quantifier compaction.
func DefaultConfig() Config {
	return Config{
		CoalesceLiterals:       true,
		FlattenGroups:          true,
		AlternationToCharClass: true,
		CanonicalizeCharClass:  true,
		CompactQuantifiers:     true,
		MinQuantifierCount:     3,
		AutoPossessify:         true,
		CleanupFlags:           true,
		FactorizeAlternation:   false,
		VerifyEquivalence:      true,
		MinSavingsChars:        1,
	}
}

// Rewrite records one accepted rule application, for a caller that wants
// to report what changed (the facade's optimize step, spec.md §4.10).
type Rewrite struct {
	Rule   string
	Before string
	After  string
}

// Result is Optimize's return value.
type Result struct {
	Root     *ast.Node
	Rewrites []Rewrite
}

// rewriteCtx threads cfg plus the pattern's active flags through the
// traversal: CanonicalizeCharClass's \d/\w substitutions are only valid
// when FlagU is off (spec.md §4.6 rule 4's Unicode-mode carve-out), and
// foldCase-sensitive rules need the same access other analyzers get
// straight from the Regex root.
type rewriteCtx struct {
	cfg    Config
	flagU  bool
	caseI  bool
	rewrites *[]Rewrite
}

// Optimize applies every rule cfg enables to root, bottom-up, repeating
// until a pass makes no further change (a fixed point — one rule's output
// can expose an opportunity for another, e.g. flattening a group before
// coalescing the literals it exposes). root is never mutated; Optimize
// always returns a new tree even when nothing changed.
func Optimize(root *ast.Node, cfg Config) Result {
	res := Result{Root: root}
	for {
		next, rewrites := pass(res.Root, cfg)
		res.Rewrites = append(res.Rewrites, rewrites...)
		if len(rewrites) == 0 {
			res.Root = next
			return res
		}
		res.Root = next
	}
}

// pass runs one bottom-up rewrite sweep and reports every rewrite it
// accepted.
func pass(n *ast.Node, cfg Config) (*ast.Node, []Rewrite) {
	var rewrites []Rewrite
	flagU, caseI := false, false
	if n != nil && n.Kind == ast.KindRegex {
		flagU = n.Flags.Has(ast.FlagU)
		caseI = n.Flags.Has(ast.FlagI)
	}
	ctx := &rewriteCtx{cfg: cfg, flagU: flagU, caseI: caseI, rewrites: &rewrites}
	out := rewriteNode(n, ctx)
	return out, rewrites
}

func rewriteNode(n *ast.Node, ctx *rewriteCtx) *ast.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case ast.KindRegex:
		child := rewriteNode(n.Child, ctx)
		out := ast.NewRegex(n.Start, n.End, child, n.Flags, n.Delimiter)
		if ctx.cfg.CleanupFlags {
			out = applyFlagCleanup(out, ctx)
		}
		return out

	case ast.KindGroup:
		child := rewriteNode(n.Child, ctx)
		out := cloneGroup(n, child)
		if ctx.cfg.FlattenGroups {
			if flat, ok := tryFlattenGroup(out, ctx.cfg); ok {
				record(ctx.rewrites, "group_flatten", out, flat)
				return flat
			}
		}
		return out

	case ast.KindQuantifier:
		child := rewriteNode(n.Child, ctx)
		return cloneQuantifier(n, child)

	case ast.KindConditional:
		cond := rewriteNode(n.Condition, ctx)
		yes := rewriteNode(n.Yes, ctx)
		no := rewriteNode(n.No, ctx)
		return ast.NewConditional(n.Start, n.End, cond, yes, no)

	case ast.KindSequence:
		items := make([]*ast.Node, len(n.Children))
		for i, c := range n.Children {
			items[i] = rewriteNode(c, ctx)
		}
		return rewriteSequence(n, items, ctx)

	case ast.KindAlternation:
		branches := make([]*ast.Node, len(n.Children))
		for i, c := range n.Children {
			branches[i] = rewriteNode(c, ctx)
		}
		return rewriteAlternation(n, branches, ctx)

	case ast.KindCharClass:
		return rewriteCharClass(n, ctx)

	default:
		return n
	}
}

func cloneGroup(n, child *ast.Node) *ast.Node {
	out := ast.NewGroup(n.Start, n.End, n.GroupKind, child)
	out.Name = n.Name
	out.GroupIndex = n.GroupIndex
	out.FlagSet = n.FlagSet
	out.FlagUnset = n.FlagUnset
	out.PythonSyntax = n.PythonSyntax
	out.Apostrophe = n.Apostrophe
	return out
}

func cloneQuantifier(n, child *ast.Node) *ast.Node {
	return ast.NewQuantifier(n.Start, n.End, child, n.Min, n.Max, n.Mode, n.QuantifierText)
}

// record appends a Rewrite to *rewrites, unless the savings threshold
// suppresses it — in which case the caller's "after" value is discarded
// by returning before unchanged (handled by the caller, not here: record
// only logs, it never vetoes).
func record(rewrites *[]Rewrite, rule string, before, after *ast.Node) {
	*rewrites = append(*rewrites, Rewrite{
		Rule:   rule,
		Before: compiler.Compile(before, compiler.Options{}),
		After:  compiler.Compile(after, compiler.Options{}),
	})
}

// compiledText renders n back to source text for structural-equality and
// savings comparisons.
func compiledText(n *ast.Node) string {
	return compiler.Compile(n, compiler.Options{})
}

// savingsOK reports whether after's rendered text is at least
// cfg.MinSavingsChars shorter than before's.
func savingsOK(before, after *ast.Node, cfg Config) bool {
	b := compiler.Compile(before, compiler.Options{})
	a := compiler.Compile(after, compiler.Options{})
	return len(b)-len(a) >= cfg.MinSavingsChars
}
