// Package ast defines the PCRE2 abstract syntax tree (spec.md §3.3): a
// single closed tagged union, immutable once built, with a Fold-based
// traversal primitive standing in for per-node visitor dispatch.
package ast

// Node is the sole AST type: every variant from spec.md §3.3's node table
// is a Kind tag plus the subset of these fields that tag uses. Rewrite
// passes (optimizer) build new Node values; nothing here is ever mutated
// in place after construction (spec.md §3.3 Lifecycle).
//
// Position fields (Start, End) are byte offsets into the pattern body, not
// including the opening delimiter, satisfying invariant 1: non-decreasing
// in pre-order, End > Start for every leaf.
type Node struct {
	Kind       Kind
	Start, End uint32

	// --- structural children ---------------------------------------

	// Child is the single sub-node for Regex (root pattern), Group, and
	// Quantifier.
	Child *Node

	// Children holds: Sequence's ordered items, Alternation's branches
	// (len >= 2), CharClass's items (Literal/Range/CharType/PosixClass/
	// UnicodeProp/UnicodeEscape). Unused otherwise.
	Children []*Node

	// Condition/Yes/No are Conditional's three slots. Condition is either
	// a KindConditionRef leaf or a KindGroup lookaround.
	Condition, Yes, No *Node

	// --- Regex (root) ------------------------------------------------

	Flags     Flags
	Delimiter byte

	// --- Group ---------------------------------------------------------

	GroupKind GroupKind
	// Name is the captured/referenced group name (Group, Backref,
	// Subroutine, ConditionRef-by-name), the PosixClass name, the
	// UnicodeProp property identifier, or the PcreVerb verb name.
	Name string
	// GroupIndex is the 1-based capture index, assigned by the parser when
	// closing a capturing/named group; 0 for non-capturing shapes.
	GroupIndex int
	// FlagSet/FlagUnset are the inline-flags delta for GroupInlineFlags.
	FlagSet, FlagUnset Flags
	// PythonSyntax/Apostrophe record which named-group spelling was used
	// so the compiler can round-trip it.
	PythonSyntax bool
	Apostrophe   bool

	// --- Quantifier ------------------------------------------------

	Min, Max       int // Max == Unbounded for "no upper bound"
	Mode           QuantifierMode
	QuantifierText string // canonical `{m,n}`/`*`/`+`/`?` source text

	// --- Literal / CharType / Anchor / Assertion --------------------

	Bytes  []byte // Literal's decoded UTF-8 payload
	Letter byte   // CharType (d D s S w W h H v V R N), Anchor (^ $ A Z z), Assertion (b B G)

	// --- CharClass / Range / PosixClass / UnicodeProp ----------------

	Negated    bool // CharClass negation, PosixClass `[:^name:]`, UnicodeProp `\P`
	Lo, Hi     rune // Range endpoints (after literal/escape decoding)
	Hyphenated bool // Range was written with an explicit '-' (vs single char)

	// --- Backref / Subroutine ----------------------------------------

	RefIndex int  // numeric backref/subroutine index (0 if named/recursive)
	Relative bool // RefIndex is relative (\g{-1}, (?-1))
	Recursive bool // whole-pattern recursion ((?R), (?0), \g{0})
	RefForm  string // syntactic spelling, for round-trip (e.g. "\\g{-1}", "(?&name)")

	// --- ConditionRef (Conditional's non-lookaround condition) --------

	CondKind ConditionKind

	// --- UnicodeEscape / Octal / OctalLegacy --------------------------

	CodePoint uint32

	// --- Comment / PcreVerb -------------------------------------------

	Text string // Comment body, or PcreVerb's optional argument
}

// IsLeaf reports whether n has no structural children (Literal, Dot,
// CharType, PosixClass, Anchor, Assertion, Keep, Backref, Subroutine,
// UnicodeEscape, UnicodeProp, Octal, OctalLegacy, Comment, PcreVerb).
func (n *Node) IsLeaf() bool {
	switch n.Kind {
	case KindSequence, KindAlternation, KindGroup, KindQuantifier,
		KindConditional, KindCharClass, KindRegex:
		return false
	default:
		return true
	}
}

// NewLiteral builds a Literal leaf node.
func NewLiteral(start, end uint32, b []byte) *Node {
	return &Node{Kind: KindLiteral, Start: start, End: end, Bytes: b}
}

// NewDot builds a Dot leaf node.
func NewDot(start, end uint32) *Node {
	return &Node{Kind: KindDot, Start: start, End: end}
}

// NewCharType builds a CharType leaf node for one of d D s S w W h H v V R N.
func NewCharType(start, end uint32, letter byte) *Node {
	return &Node{Kind: KindCharType, Start: start, End: end, Letter: letter}
}

// NewAnchor builds an Anchor leaf node for one of ^ $ A Z z.
func NewAnchor(start, end uint32, letter byte) *Node {
	return &Node{Kind: KindAnchor, Start: start, End: end, Letter: letter}
}

// NewAssertion builds an Assertion leaf node for one of b B G.
func NewAssertion(start, end uint32, letter byte) *Node {
	return &Node{Kind: KindAssertion, Start: start, End: end, Letter: letter}
}

// NewKeep builds a \K leaf node.
func NewKeep(start, end uint32) *Node {
	return &Node{Kind: KindKeep, Start: start, End: end}
}

// NewSequence builds a Sequence container over children (may be empty, for
// an empty alternative).
func NewSequence(start, end uint32, children []*Node) *Node {
	return &Node{Kind: KindSequence, Start: start, End: end, Children: children}
}

// NewAlternation builds an Alternation container over >= 2 branches.
func NewAlternation(start, end uint32, branches []*Node) *Node {
	return &Node{Kind: KindAlternation, Start: start, End: end, Children: branches}
}

// NewGroup builds a Group container.
func NewGroup(start, end uint32, kind GroupKind, child *Node) *Node {
	return &Node{Kind: KindGroup, Start: start, End: end, GroupKind: kind, Child: child}
}

// NewQuantifier builds a Quantifier container.
func NewQuantifier(start, end uint32, child *Node, min, max int, mode QuantifierMode, text string) *Node {
	return &Node{
		Kind: KindQuantifier, Start: start, End: end, Child: child,
		Min: min, Max: max, Mode: mode, QuantifierText: text,
	}
}

// NewConditional builds a Conditional container.
func NewConditional(start, end uint32, cond, yes, no *Node) *Node {
	return &Node{Kind: KindConditional, Start: start, End: end, Condition: cond, Yes: yes, No: no}
}

// NewCharClass builds a CharClass container over its items.
func NewCharClass(start, end uint32, items []*Node, negated bool) *Node {
	return &Node{Kind: KindCharClass, Start: start, End: end, Children: items, Negated: negated}
}

// NewRange builds a Range leaf.
func NewRange(start, end uint32, lo, hi rune, hyphenated bool) *Node {
	return &Node{Kind: KindRange, Start: start, End: end, Lo: lo, Hi: hi, Hyphenated: hyphenated}
}

// NewPosixClass builds a PosixClass leaf.
func NewPosixClass(start, end uint32, name string, negated bool) *Node {
	return &Node{Kind: KindPosixClass, Start: start, End: end, Name: name, Negated: negated}
}

// NewBackref builds a Backref leaf.
func NewBackref(start, end uint32, index int, name string, relative bool) *Node {
	return &Node{Kind: KindBackref, Start: start, End: end, RefIndex: index, Name: name, Relative: relative}
}

// NewSubroutine builds a Subroutine leaf.
func NewSubroutine(start, end uint32, index int, name string, relative, recursive bool, form string) *Node {
	return &Node{
		Kind: KindSubroutine, Start: start, End: end, RefIndex: index, Name: name,
		Relative: relative, Recursive: recursive, RefForm: form,
	}
}

// NewConditionRef builds a ConditionRef leaf for a Conditional's condition
// when it is not a lookaround group.
func NewConditionRef(start, end uint32, kind ConditionKind, index int, name string, relative bool) *Node {
	return &Node{Kind: KindConditionRef, Start: start, End: end, CondKind: kind, RefIndex: index, Name: name, Relative: relative}
}

// NewUnicodeEscape builds a UnicodeEscape leaf.
func NewUnicodeEscape(start, end uint32, cp uint32) *Node {
	return &Node{Kind: KindUnicodeEscape, Start: start, End: end, CodePoint: cp}
}

// NewUnicodeProp builds a UnicodeProp leaf.
func NewUnicodeProp(start, end uint32, name string, negated bool) *Node {
	return &Node{Kind: KindUnicodeProp, Start: start, End: end, Name: name, Negated: negated}
}

// NewOctal builds an Octal (\o{...}) leaf.
func NewOctal(start, end uint32, value uint32) *Node {
	return &Node{Kind: KindOctal, Start: start, End: end, CodePoint: value}
}

// NewOctalLegacy builds an OctalLegacy (\0NN) leaf.
func NewOctalLegacy(start, end uint32, value uint32) *Node {
	return &Node{Kind: KindOctalLegacy, Start: start, End: end, CodePoint: value}
}

// NewComment builds a (?#...) Comment leaf.
func NewComment(start, end uint32, text string) *Node {
	return &Node{Kind: KindComment, Start: start, End: end, Text: text}
}

// NewPcreVerb builds a (*VERB) or (*VERB:arg) leaf.
func NewPcreVerb(start, end uint32, name, arg string) *Node {
	return &Node{Kind: KindPcreVerb, Start: start, End: end, Name: name, Text: arg}
}

// NewRegex builds the root node.
func NewRegex(start, end uint32, child *Node, flags Flags, delimiter byte) *Node {
	return &Node{Kind: KindRegex, Start: start, End: end, Child: child, Flags: flags, Delimiter: delimiter}
}
