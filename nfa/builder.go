package nfa

import "github.com/coregx/regexlint/ast"

// Build compiles a parsed pattern's AST into a rune-based NFA, grounded on
// the teacher's recursive Thompson-construction shape (compile.go's one
// method per ast.Kind) but over runes instead of bytes and with no PikeVM
// to feed. It returns a *ComplexityError, not a panic, for every construct
// outside this package's scope (lookarounds, \K, backreferences,
// conditionals, subroutines, \b/\B/\G) — callers (automata, redos,
// optimizer) treat that as "this subtree needs a different technique", not
// a bug.
func Build(root *ast.Node) (*NFA, error) {
	if root.Kind != ast.KindRegex {
		return nil, complexityErr(CodeClassItem, root.Start, "Build expects the Regex root node")
	}
	b := &builder{nfa: newNFA(), dotAll: root.Flags.Has(ast.FlagS), foldCase: root.Flags.Has(ast.FlagI)}
	start := b.nfa.newState()
	end, err := b.build(root.Child, start)
	if err != nil {
		return nil, err
	}
	b.nfa.States[end].Match = true
	b.nfa.Start = start
	return b.nfa, nil
}

type builder struct {
	nfa      *NFA
	dotAll   bool
	foldCase bool
}

// build compiles n, wiring its single entry transition from `from`, and
// returns the id of the single exit state every Thompson fragment has.
func (b *builder) build(n *ast.Node, from StateID) (StateID, error) {
	switch n.Kind {
	case ast.KindSequence:
		cur := from
		for _, item := range n.Children {
			next, err := b.build(item, cur)
			if err != nil {
				return InvalidState, err
			}
			cur = next
		}
		return cur, nil

	case ast.KindAlternation:
		end := b.nfa.newState()
		for _, branch := range n.Children {
			branchEnd, err := b.build(branch, from)
			if err != nil {
				return InvalidState, err
			}
			b.nfa.addEps(branchEnd, end)
		}
		return end, nil

	case ast.KindGroup:
		return b.buildGroup(n, from)

	case ast.KindQuantifier:
		return b.buildQuantifier(n, from)

	case ast.KindLiteral:
		cur := from
		for _, r := range string(n.Bytes) {
			next := b.nfa.newState()
			b.addRuneTrans(cur, ranges{{Lo: r, Hi: r}}, next)
			cur = next
		}
		return cur, nil

	case ast.KindDot:
		next := b.nfa.newState()
		b.addRuneTrans(from, dotRanges(b.dotAll), next)
		return next, nil

	case ast.KindCharType:
		rs := charTypeRanges(n.Letter)
		if rs == nil {
			return InvalidState, complexityErr(CodeClassItem, n.Start, "unsupported char type escape")
		}
		next := b.nfa.newState()
		b.addRuneTrans(from, rs, next)
		return next, nil

	case ast.KindPosixClass:
		rs := posixClassRanges(n.Name)
		if rs == nil {
			return InvalidState, complexityErr(CodeClassItem, n.Start, "unknown POSIX class "+n.Name)
		}
		if n.Negated {
			rs = rs.negate()
		}
		next := b.nfa.newState()
		b.addRuneTrans(from, rs, next)
		return next, nil

	case ast.KindUnicodeProp:
		t := unicodePropTable(n.Name)
		if t == nil {
			return InvalidState, complexityErr(CodeClassItem, n.Start, "unknown Unicode property "+n.Name)
		}
		rs := rangeTableRanges(t)
		if n.Negated {
			rs = rs.negate()
		}
		next := b.nfa.newState()
		b.addRuneTrans(from, rs, next)
		return next, nil

	case ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		r := rune(n.CodePoint)
		next := b.nfa.newState()
		b.addRuneTrans(from, ranges{{Lo: r, Hi: r}}, next)
		return next, nil

	case ast.KindCharClass:
		return b.buildCharClass(n, from)

	case ast.KindPcreVerb:
		if isMatchingVerb(n.Name) {
			return InvalidState, complexityErr(CodeAssertion, n.Start, "(*"+n.Name+") affects backtracking control flow, not representable in a per-rune automaton")
		}
		// Pattern-start option verbs ((*UTF), (*UCP), (*CRLF),
		// (*NO_AUTO_POSSESS)) carry no matching semantics of their own.
		next := b.nfa.newState()
		b.nfa.addEps(from, next)
		return next, nil

	case ast.KindAnchor, ast.KindComment:
		// Anchors are zero-width position tests this subsystem treats as
		// always-satisfied (static analysis over the language, not a
		// particular search position); comments carry no matching
		// semantics at all. Both pass through as an epsilon.
		next := b.nfa.newState()
		b.nfa.addEps(from, next)
		return next, nil

	case ast.KindAssertion:
		return InvalidState, complexityErr(CodeAssertion, n.Start, "\\b/\\B/\\G assertions are not representable in a per-rune automaton")

	case ast.KindKeep:
		return InvalidState, complexityErr(CodeKeep, n.Start, "\\K is not representable as automaton structure")

	case ast.KindBackref:
		return InvalidState, complexityErr(CodeBackref, n.Start, "backreferences are out of scope for structural automata")

	case ast.KindSubroutine:
		return InvalidState, complexityErr(CodeSubroutine, n.Start, "subroutine calls are out of scope for structural automata")

	case ast.KindConditional:
		return InvalidState, complexityErr(CodeConditional, n.Start, "conditionals are out of scope for structural automata")

	default:
		return InvalidState, complexityErr(CodeClassItem, n.Start, "unsupported node kind "+n.Kind.String())
	}
}

// isMatchingVerb reports whether a PcreVerb name affects whether/how a
// match succeeds (as opposed to a pattern-start option verb with no
// matching semantics of its own).
func isMatchingVerb(name string) bool {
	switch name {
	case "FAIL", "ACCEPT", "COMMIT", "PRUNE", "SKIP", "THEN":
		return true
	}
	return false
}

func (b *builder) addRuneTrans(from StateID, rs ranges, to StateID) {
	if b.foldCase {
		rs = foldCase(rs)
	}
	for _, r := range rs {
		b.nfa.addTrans(from, r.Lo, r.Hi, to)
	}
}

func (b *builder) buildGroup(n *ast.Node, from StateID) (StateID, error) {
	switch n.GroupKind {
	case ast.GroupCapturing, ast.GroupNamed, ast.GroupNonCapturing, ast.GroupAtomic:
		// Capture/atomicity are both execution-time concepts (what
		// substring to report, whether to give up backtracking state);
		// the language this subtree accepts is identical to its child's.
		return b.build(n.Child, from)

	case ast.GroupInlineFlags:
		if n.Child == nil {
			// Standalone "(?i)" flag-setting has no body of its own; the
			// flags it sets apply to the rest of the enclosing sequence,
			// which this package does not track (see DESIGN.md). It
			// contributes no transitions.
			next := b.nfa.newState()
			b.nfa.addEps(from, next)
			return next, nil
		}
		return b.build(n.Child, from)

	case ast.GroupBranchReset:
		return b.build(n.Child, from)

	default:
		return InvalidState, complexityErr(CodeLookaround, n.Start, "lookaround groups are out of scope for structural automata")
	}
}

func (b *builder) buildQuantifier(n *ast.Node, from StateID) (StateID, error) {
	min, max := n.Min, n.Max

	// Mandatory copies: min repetitions of the child, chained.
	cur := from
	for i := 0; i < min; i++ {
		next, err := b.build(n.Child, cur)
		if err != nil {
			return InvalidState, err
		}
		cur = next
	}

	if max == ast.Unbounded {
		// Kleene star over one more copy: loop back to its own entry,
		// and allow skipping it entirely.
		loopIn := b.nfa.newState()
		b.nfa.addEps(cur, loopIn)
		loopOut, err := b.build(n.Child, loopIn)
		if err != nil {
			return InvalidState, err
		}
		b.nfa.addEps(loopOut, loopIn)
		end := b.nfa.newState()
		b.nfa.addEps(loopIn, end)
		b.nfa.addEps(loopOut, end)
		return end, nil
	}

	// Optional copies: (max - min) further repetitions, each individually
	// skippable, per the standard a{m,n} -> a^m (a?)^(n-m) expansion.
	end := b.nfa.newState()
	b.nfa.addEps(cur, end)
	for i := min; i < max; i++ {
		next, err := b.build(n.Child, cur)
		if err != nil {
			return InvalidState, err
		}
		b.nfa.addEps(next, end)
		cur = next
	}
	return end, nil
}

func (b *builder) buildCharClass(n *ast.Node, from StateID) (StateID, error) {
	var rs ranges
	for _, item := range n.Children {
		itemRanges, err := classItemRanges(item)
		if err != nil {
			return InvalidState, err
		}
		rs = append(rs, itemRanges...)
	}
	rs = coalesce(sortRanges(rs))
	if n.Negated {
		rs = rs.negate()
	}
	next := b.nfa.newState()
	b.addRuneTrans(from, rs, next)
	return next, nil
}
