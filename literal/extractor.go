package literal

import (
	"unicode/utf8"

	"github.com/coregx/regexlint/ast"
)

func decodeRune(b []byte) (rune, int) {
	return utf8.DecodeRune(b)
}

// literalBytes returns the decoded byte payload of any leaf that denotes
// a single required literal value outside a character class — a Literal
// proper, or a numeric escape (\x41, \o{101}, \0101) the parser keeps as
// its own Kind rather than folding into Literal.
func literalBytes(n *ast.Node) ([]byte, bool) {
	switch n.Kind {
	case ast.KindLiteral:
		return n.Bytes, true
	case ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		return []byte(string(rune(n.CodePoint))), true
	default:
		return nil, false
	}
}

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the maximum number of literals to extract.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the maximum length of each extracted literal.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// Classes like [a-z] (26 chars) are NOT expanded if > MaxClassSize.
	// Default: 10.
	MaxClassSize int

	// CrossProductLimit bounds the number of intermediate literals
	// allowed while cross-product-expanding a Sequence (e.g.
	// ag[act]gtaaa). When exceeded, literals are truncated to 4 bytes,
	// deduplicated, and marked incomplete. Default: 250.
	CrossProductLimit int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:       64,
		MaxLiteralLen:     64,
		MaxClassSize:      10,
		CrossProductLimit: 250,
	}
}

// Extractor extracts literal sequences from a parsed pattern's AST.
//
// It walks an *ast.Node and extracts:
//   - Prefix literals: literals that must appear at the start
//   - Suffix literals: literals that must appear at the end
//   - Inner literals: any literal that must appear somewhere
//
// A pattern's `i` flag (case-insensitive) fold-expands every extracted
// literal to its case variants, since a LiteralSet must describe what
// actually matches rather than the bytes as written (spec.md §4.9).
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// unwrapRegex returns n's body and effective flags, unwrapping a KindRegex
// root if n is one. Called with a non-root node (e.g. by rewrite-pass
// callers re-extracting a subtree), flags default to 0.
func unwrapRegex(n *ast.Node) (*ast.Node, ast.Flags) {
	if n != nil && n.Kind == ast.KindRegex {
		return n.Child, n.Flags
	}
	return n, 0
}

// ExtractPrefixes extracts prefix literals: literals that must appear at
// the start of any match. Returns an empty Seq if no prefix requirement
// can be established.
func (e *Extractor) ExtractPrefixes(root *ast.Node) *Seq {
	n, flags := unwrapRegex(root)
	seq, _ := e.extractPrefixes(n, flags, 0)
	return seq
}

func (e *Extractor) extractPrefixes(n *ast.Node, flags ast.Flags, depth int) (*Seq, ast.Flags) {
	if n == nil || depth > 100 {
		return NewSeq(), flags
	}

	switch n.Kind {
	case ast.KindLiteral, ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		b, ok := literalBytes(n)
		if !ok {
			return NewSeq(), flags
		}
		if len(b) > e.config.MaxLiteralLen {
			b = b[:e.config.MaxLiteralLen]
		}
		seq := NewSeq(NewLiteral(b, true))
		e.maybeFoldCase(seq, flags)
		return seq, flags

	case ast.KindSequence:
		return e.extractPrefixesConcat(n, flags, depth)

	case ast.KindAlternation:
		// Inline-flag leakage across sibling branches (PCRE's `(?i)` mid
		// pattern affects the rest of the enclosing group, including
		// later alternation branches) is not modeled here: each branch
		// is extracted under the flags in effect when the alternation
		// starts. Getting this exactly right requires tracking a flag
		// state machine across branch boundaries for a case few
		// patterns exercise; the conservative cost is a literal set that
		// under-folds a branch reached only through an preceding
		// sibling's inline flag change.
		var allLits []Literal
		for _, branch := range n.Children {
			seq, _ := e.extractPrefixes(branch, flags, depth+1)
			if seq.IsEmpty() {
				return NewSeq(), flags
			}
			for i := 0; i < seq.Len(); i++ {
				allLits = append(allLits, seq.Get(i))
				if len(allLits) >= e.config.MaxLiterals {
					return NewSeq(allLits...), flags
				}
			}
		}
		return NewSeq(allLits...), flags

	case ast.KindCharClass:
		seq := e.expandCharClass(n)
		e.maybeFoldCase(seq, flags)
		return seq, flags

	case ast.KindGroup:
		return e.extractPrefixesGroup(n, flags, depth)

	case ast.KindAnchor, ast.KindAssertion, ast.KindKeep,
		ast.KindDot, ast.KindCharType, ast.KindQuantifier,
		ast.KindConditional:
		return NewSeq(), flags

	default:
		return NewSeq(), flags
	}
}

func (e *Extractor) extractPrefixesGroup(n *ast.Node, flags ast.Flags, depth int) (*Seq, ast.Flags) {
	if n.GroupKind == ast.GroupInlineFlags && n.Child == nil {
		// Standalone (?i) marker: no literal, but changes flags for
		// whatever follows it in the enclosing Sequence.
		return NewSeq(), (flags | n.FlagSet) &^ n.FlagUnset
	}
	if n.GroupKind.IsLookaround() {
		// Zero-width: conservatively contributes no reliable literal
		// rather than reasoning about simultaneous-position overlap
		// with what follows.
		return NewSeq(), flags
	}
	childFlags := flags
	if n.GroupKind == ast.GroupInlineFlags { // scoped (?i:...)
		childFlags = (flags | n.FlagSet) &^ n.FlagUnset
	}
	seq, _ := e.extractPrefixes(n.Child, childFlags, depth+1)
	return seq, flags // scope doesn't leak past the group's close
}

// extractPrefixesConcat cross-product-expands a Sequence's children. For
// ag[act]gtaaa this produces ["agagtaaa", "agcgtaaa", "agtgtaaa"] instead
// of just "ag", by extending an accumulator seq with each literal or
// small character class encountered.
func (e *Extractor) extractPrefixesConcat(n *ast.Node, flags ast.Flags, depth int) (*Seq, ast.Flags) {
	children := n.Children
	if len(children) == 0 {
		return NewSeq(), flags
	}

	startIdx := 0
	for startIdx < len(children) && isBeginAnchor(children[startIdx]) {
		startIdx++
	}

	crossLimit := e.config.CrossProductLimit
	if crossLimit <= 0 {
		crossLimit = 250
	}

	acc := NewSeq(NewLiteral([]byte{}, true))
	curFlags := flags

	for i := startIdx; i < len(children); i++ {
		child := children[i]

		if child.Kind == ast.KindGroup && child.GroupKind == ast.GroupInlineFlags && child.Child == nil {
			curFlags = (curFlags | child.FlagSet) &^ child.FlagUnset
			continue
		}

		if !e.hasAnyExact(acc) {
			break
		}

		contribution := e.concatSubContribution(child, curFlags, depth)
		if contribution == nil {
			e.markAllInexact(acc)
			break
		}

		acc.CrossForward(contribution)
		if acc.Len() > crossLimit || acc.Len() > e.config.MaxLiterals {
			acc = e.handleCrossProductOverflow(acc)
			break
		}
		e.enforceMaxLiteralLen(acc)
	}

	if acc.Len() == 1 && len(acc.Get(0).Bytes) == 0 {
		return NewSeq(), flags
	}
	return acc, flags
}

// concatSubContribution returns child's contribution to cross-product
// expansion, or nil if child isn't expandable (wildcard, repetition with
// no guaranteed occurrence, lookaround, etc.) — a nil return stops the
// chain and marks everything accumulated so far incomplete.
func (e *Extractor) concatSubContribution(child *ast.Node, flags ast.Flags, depth int) *Seq {
	switch child.Kind {
	case ast.KindLiteral, ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		b, ok := literalBytes(child)
		if !ok {
			return nil
		}
		seq := NewSeq(NewLiteral(b, true))
		e.maybeFoldCase(seq, flags)
		return seq

	case ast.KindCharClass:
		expanded := e.expandCharClass(child)
		if expanded.IsEmpty() {
			return nil
		}
		e.maybeFoldCase(expanded, flags)
		return expanded

	case ast.KindAlternation:
		return e.expandAlternateContribution(child, flags, depth)

	case ast.KindGroup:
		if child.GroupKind == ast.GroupInlineFlags && child.Child == nil {
			return NewSeq(NewLiteral([]byte{}, true))
		}
		if child.GroupKind.IsLookaround() {
			return nil
		}
		childFlags := flags
		if child.GroupKind == ast.GroupInlineFlags {
			childFlags = (flags | child.FlagSet) &^ child.FlagUnset
		}
		if child.Child == nil {
			return nil
		}
		// child.Child is the group's body: always a Sequence or
		// Alternation (parseSequence/parseAlternation wrap even a
		// single atom), so recurse through the full dispatch rather
		// than the single-atom-only switch below.
		seq, _ := e.extractPrefixes(child.Child, childFlags, depth)
		if seq.IsEmpty() {
			return nil
		}
		return seq

	case ast.KindQuantifier:
		if child.Min >= 1 && child.Child != nil {
			inner := e.concatSubContribution(child.Child, flags, depth)
			if inner == nil {
				return nil
			}
			e.markAllInexact(inner)
			return inner
		}
		return nil

	default:
		return nil
	}
}

// expandAlternateContribution tries to expand an alternation inside a
// sequence into a set of literals for cross-product. Returns nil if any
// branch isn't itself expandable.
func (e *Extractor) expandAlternateContribution(alt *ast.Node, flags ast.Flags, depth int) *Seq {
	var allLits []Literal
	for _, branch := range alt.Children {
		seq, _ := e.extractPrefixes(branch, flags, depth+1)
		if seq.IsEmpty() {
			return nil
		}
		for i := 0; i < seq.Len(); i++ {
			allLits = append(allLits, seq.Get(i))
			if len(allLits) > e.config.MaxLiterals {
				return nil
			}
		}
	}
	return NewSeq(allLits...)
}

func (e *Extractor) hasAnyExact(s *Seq) bool {
	for i := 0; i < s.Len(); i++ {
		if s.Get(i).Complete {
			return true
		}
	}
	return false
}

func (e *Extractor) markAllInexact(s *Seq) {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

func (e *Extractor) enforceMaxLiteralLen(s *Seq) {
	for i := range s.literals {
		if len(s.literals[i].Bytes) > e.config.MaxLiteralLen {
			s.literals[i].Bytes = s.literals[i].Bytes[:e.config.MaxLiteralLen]
			s.literals[i].Complete = false
		}
	}
}

// handleCrossProductOverflow truncates every literal to 4 bytes (enough
// for a multi-pattern automaton fingerprint), deduplicates, and marks
// everything incomplete.
func (e *Extractor) handleCrossProductOverflow(s *Seq) *Seq {
	s.KeepFirstBytes(4)
	e.markAllInexact(s)
	s.Dedup()
	if s.Len() > e.config.MaxLiterals {
		s.literals = s.literals[:e.config.MaxLiterals]
	}
	return s
}

func (e *Extractor) maybeFoldCase(s *Seq, flags ast.Flags) {
	if flags.Has(ast.FlagI) {
		s.FoldCase()
	}
}

// ExtractSuffixes extracts suffix literals: literals that must appear at
// the end of any match.
func (e *Extractor) ExtractSuffixes(root *ast.Node) *Seq {
	n, flags := unwrapRegex(root)
	return e.extractSuffixes(n, flags, 0)
}

func (e *Extractor) extractSuffixes(n *ast.Node, flags ast.Flags, depth int) *Seq {
	if n == nil || depth > 100 {
		return NewSeq()
	}

	switch n.Kind {
	case ast.KindLiteral, ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		b, ok := literalBytes(n)
		if !ok {
			return NewSeq()
		}
		if len(b) > e.config.MaxLiteralLen {
			b = b[len(b)-e.config.MaxLiteralLen:]
		}
		seq := NewSeq(NewLiteral(b, true))
		e.maybeFoldCase(seq, flags)
		return seq

	case ast.KindSequence:
		return e.extractSuffixesConcat(n, flags, depth)

	case ast.KindAlternation:
		var allLits []Literal
		for _, branch := range n.Children {
			seq := e.extractSuffixes(branch, flags, depth+1)
			if seq.IsEmpty() {
				return NewSeq()
			}
			for i := 0; i < seq.Len(); i++ {
				allLits = append(allLits, seq.Get(i))
				if len(allLits) >= e.config.MaxLiterals {
					return NewSeq(allLits...)
				}
			}
		}
		return NewSeq(allLits...)

	case ast.KindCharClass:
		seq := e.expandCharClass(n)
		e.maybeFoldCase(seq, flags)
		return seq

	case ast.KindGroup:
		if n.GroupKind == ast.GroupInlineFlags && n.Child == nil {
			return NewSeq()
		}
		if n.GroupKind.IsLookaround() {
			return NewSeq()
		}
		childFlags := flags
		if n.GroupKind == ast.GroupInlineFlags {
			childFlags = (flags | n.FlagSet) &^ n.FlagUnset
		}
		return e.extractSuffixes(n.Child, childFlags, depth+1)

	default:
		return NewSeq()
	}
}

// extractSuffixesConcat walks a Sequence's children back to front,
// extending the suffix found at the last non-anchor element with each
// preceding literal (cross_reverse).
func (e *Extractor) extractSuffixesConcat(n *ast.Node, flags ast.Flags, depth int) *Seq {
	children := n.Children
	if len(children) == 0 {
		return NewSeq()
	}

	lastIdx := len(children) - 1
	for lastIdx >= 0 && isEndAnchor(children[lastIdx]) {
		lastIdx--
	}
	if lastIdx < 0 {
		return NewSeq()
	}

	suffixes := e.extractSuffixes(children[lastIdx], flags, depth+1)
	if suffixes.IsEmpty() {
		return NewSeq()
	}

	for i := lastIdx - 1; i >= 0; i-- {
		child := children[i]

		if child.Kind == ast.KindGroup && child.GroupKind == ast.GroupInlineFlags && child.Child == nil {
			// A flag marker preceding the suffix run doesn't break the
			// chain, but its effect on earlier bytes is already baked
			// into how those bytes were lexed/decoded, not into this
			// extraction; nothing to thread backwards.
			continue
		}

		prefix, ok := literalBytes(child)
		if !ok {
			lits := make([]Literal, suffixes.Len())
			for j := 0; j < suffixes.Len(); j++ {
				lit := suffixes.Get(j)
				lits[j] = NewLiteral(lit.Bytes, false)
			}
			return NewSeq(lits...)
		}

		lits := make([]Literal, suffixes.Len())
		for j := 0; j < suffixes.Len(); j++ {
			lit := suffixes.Get(j)
			newBytes := make([]byte, len(prefix)+len(lit.Bytes))
			copy(newBytes, prefix)
			copy(newBytes[len(prefix):], lit.Bytes)
			if len(newBytes) > e.config.MaxLiteralLen {
				newBytes = newBytes[len(newBytes)-e.config.MaxLiteralLen:]
			}
			lits[j] = NewLiteral(newBytes, lit.Complete)
		}
		suffixes = NewSeq(lits...)

		if suffixes.Len() > e.config.MaxLiterals {
			return suffixes
		}
	}

	return suffixes
}

// ExtractInner extracts any literal required to appear somewhere in a
// match, regardless of position (useful for patterns like ".*foo.*").
func (e *Extractor) ExtractInner(root *ast.Node) *Seq {
	n, flags := unwrapRegex(root)
	return e.extractInner(n, flags, 0)
}

func (e *Extractor) extractInner(n *ast.Node, flags ast.Flags, depth int) *Seq {
	if n == nil || depth > 100 {
		return NewSeq()
	}

	switch n.Kind {
	case ast.KindLiteral, ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		b, ok := literalBytes(n)
		if !ok {
			return NewSeq()
		}
		if len(b) > e.config.MaxLiteralLen {
			b = b[:e.config.MaxLiteralLen]
		}
		seq := NewSeq(NewLiteral(b, false)) // inner literals are never "complete"
		e.maybeFoldCase(seq, flags)
		return seq

	case ast.KindSequence:
		for _, child := range n.Children {
			seq := e.extractInner(child, flags, depth+1)
			if !seq.IsEmpty() {
				return seq
			}
		}
		return NewSeq()

	case ast.KindAlternation:
		var allLits []Literal
		for _, branch := range n.Children {
			seq := e.extractInner(branch, flags, depth+1)
			if seq.IsEmpty() {
				return NewSeq()
			}
			for i := 0; i < seq.Len(); i++ {
				allLits = append(allLits, seq.Get(i))
				if len(allLits) >= e.config.MaxLiterals {
					return NewSeq(allLits...)
				}
			}
		}
		return NewSeq(allLits...)

	case ast.KindCharClass:
		seq := e.expandCharClass(n)
		e.maybeFoldCase(seq, flags)
		return seq

	case ast.KindGroup:
		if n.GroupKind == ast.GroupInlineFlags && n.Child == nil {
			return NewSeq()
		}
		if n.GroupKind.IsLookaround() {
			return NewSeq()
		}
		childFlags := flags
		if n.GroupKind == ast.GroupInlineFlags {
			childFlags = (flags | n.FlagSet) &^ n.FlagUnset
		}
		return e.extractInner(n.Child, childFlags, depth+1)

	default:
		return NewSeq()
	}
}

// expandCharClass expands a non-negated character class to its member
// literals, provided it's small enough (MaxClassSize). Negated classes
// and oversized ones return an empty Seq, since neither names a finite
// required set of bytes.
func (e *Extractor) expandCharClass(n *ast.Node) *Seq {
	if n.Kind != ast.KindCharClass || n.Negated {
		return NewSeq()
	}

	count := 0
	for _, item := range n.Children {
		lo, hi, ok := classItemSpan(item)
		if !ok {
			return NewSeq() // CharType/PosixClass/UnicodeProp: not enumerable
		}
		count += int(hi-lo) + 1
		if count > e.config.MaxClassSize {
			return NewSeq()
		}
	}

	var lits []Literal
	for _, item := range n.Children {
		lo, hi, _ := classItemSpan(item)
		for r := lo; r <= hi; r++ {
			b := []byte(string(r))
			if len(b) > e.config.MaxLiteralLen {
				b = b[:e.config.MaxLiteralLen]
			}
			lits = append(lits, NewLiteral(b, true))
			if len(lits) >= e.config.MaxLiterals {
				return NewSeq(lits...)
			}
		}
	}
	return NewSeq(lits...)
}

// classItemSpan returns the inclusive rune span an enumerable char-class
// item denotes: a Range's [Lo, Hi], or a single-rune Literal/UnicodeEscape/
// Octal as a span of one. CharType/PosixClass/UnicodeProp items describe
// an unbounded or table-driven set and are not enumerable.
func classItemSpan(item *ast.Node) (lo, hi rune, ok bool) {
	switch item.Kind {
	case ast.KindRange:
		return item.Lo, item.Hi, true
	case ast.KindLiteral:
		r, size := decodeRune(item.Bytes)
		if size != len(item.Bytes) {
			return 0, 0, false
		}
		return r, r, true
	case ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		r := rune(item.CodePoint)
		return r, r, true
	default:
		return 0, 0, false
	}
}

func isBeginAnchor(n *ast.Node) bool {
	return n.Kind == ast.KindAnchor && (n.Letter == '^' || n.Letter == 'A')
}

func isEndAnchor(n *ast.Node) bool {
	return n.Kind == ast.KindAnchor && (n.Letter == '$' || n.Letter == 'Z' || n.Letter == 'z')
}
