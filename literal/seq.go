// Package literal extracts the set of literal byte sequences a pattern's
// matches must begin with, end with, or (when the pattern denotes a finite
// language) consist of entirely (spec.md §4.9's LiteralSet).
//
// Key concepts:
//   - A Literal is a concrete byte sequence that may appear in matches
//   - A Seq is a set of alternative literals (e.g., from alternations like /foo|bar/)
//   - Operations like Minimize, LongestCommonPrefix help a prefilter choose
//     what to scan for before handing a candidate off to the real matcher
package literal

import (
	"bytes"
	"sort"
	"unicode"
)

// Literal represents a literal byte sequence extracted from a regex pattern.
// The Complete flag indicates whether this literal represents a complete match
// (true) or just a prefix/substring of potential matches (false).
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal represents the entire match.
	// If true, matching this literal is sufficient (no further scan needed).
	// If false, this literal is just a necessary prefix/substring.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents a sequence of alternative literals that can match.
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// IsFinite returns true if the sequence represents a finite language.
func (s *Seq) IsFinite() bool {
	return !s.IsEmpty()
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}

	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		bytesCopy := make([]byte, len(lit.Bytes))
		copy(bytesCopy, lit.Bytes)
		cloned[i] = Literal{
			Bytes:    bytesCopy,
			Complete: lit.Complete,
		}
	}

	return &Seq{literals: cloned}
}

// Minimize removes redundant literals from the sequence.
//
// For prefix matching, a literal L is redundant if there exists a shorter
// literal S that is a prefix of L — any haystack containing L also
// contains S, so scanning for S alone finds every candidate L would have.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.Slice(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for i := 0; i < len(s.literals); i++ {
		current := s.literals[i]
		isRedundant := false
		for j := 0; j < len(kept); j++ {
			if isPrefix(kept[j].Bytes, current.Bytes) {
				isRedundant = true
				break
			}
		}
		if !isRedundant {
			kept = append(kept, current)
		}
	}

	s.literals = kept
}

// Dedup removes literals whose bytes repeat an earlier literal's, keeping
// the first occurrence (and its completeness) in order.
func (s *Seq) Dedup() {
	if s.IsEmpty() {
		return
	}
	seen := make(map[string]bool, len(s.literals))
	kept := make([]Literal, 0, len(s.literals))
	for _, lit := range s.literals {
		key := string(lit.Bytes)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, lit)
	}
	s.literals = kept
}

// KeepFirstBytes truncates every literal to its first n bytes, marking any
// truncated literal incomplete. Used when cross-product expansion overflows
// its limit and the extractor falls back to short fingerprints rather than
// abandoning the literal set entirely.
func (s *Seq) KeepFirstBytes(n int) {
	for i := range s.literals {
		if len(s.literals[i].Bytes) > n {
			s.literals[i].Bytes = s.literals[i].Bytes[:n]
			s.literals[i].Complete = false
		}
	}
}

// CrossForward extends every literal in s with every literal in next,
// taking the cross product: len(s) becomes len(s)*len(next). A literal
// already marked incomplete stays incomplete regardless of what follows
// it (it already lost the chance to be an exact match), and the
// resulting literal is complete only when both sides were.
func (s *Seq) CrossForward(next *Seq) {
	if next.IsEmpty() {
		s.markAllInexact()
		return
	}
	out := make([]Literal, 0, len(s.literals)*len(next.literals))
	for _, a := range s.literals {
		for _, b := range next.literals {
			combined := make([]byte, len(a.Bytes)+len(b.Bytes))
			copy(combined, a.Bytes)
			copy(combined[len(a.Bytes):], b.Bytes)
			out = append(out, Literal{Bytes: combined, Complete: a.Complete && b.Complete})
		}
	}
	s.literals = out
}

func (s *Seq) markAllInexact() {
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// FoldCase expands every literal in s to every case variant of its
// case-bearing bytes, used when the pattern carries PCRE2's `i` flag: a
// LiteralSet must describe what actually matches, not just the bytes as
// written. Non-letter bytes pass through unchanged. Results are
// deduplicated.
func (s *Seq) FoldCase() {
	if s.IsEmpty() {
		return
	}
	var out []Literal
	for _, lit := range s.literals {
		for _, variant := range foldVariants(lit.Bytes) {
			out = append(out, Literal{Bytes: variant, Complete: lit.Complete})
		}
	}
	s.literals = out
	s.Dedup()
}

// foldVariants enumerates every upper/lower combination of the
// case-bearing runes in b, ASCII-only (PCRE2's `i` flag without `u`
// folds only ASCII case; full Unicode folding is a caller concern under
// FlagU and is intentionally not attempted here to avoid combinatorial
// blowup over scripts with many-to-one case folds).
func foldVariants(b []byte) [][]byte {
	runes := []rune(string(b))
	variants := [][]rune{{}}
	for _, r := range runes {
		upper, lower := unicode.ToUpper(r), unicode.ToLower(r)
		if upper == lower || upper > unicode.MaxASCII {
			for i := range variants {
				variants[i] = append(variants[i], r)
			}
			continue
		}
		next := make([][]rune, 0, len(variants)*2)
		for _, v := range variants {
			withUpper := append(append([]rune{}, v...), upper)
			withLower := append(append([]rune{}, v...), lower)
			next = append(next, withUpper, withLower)
		}
		variants = next
	}
	out := make([][]byte, len(variants))
	for i, v := range variants {
		out[i] = []byte(string(v))
	}
	return out
}

// LongestCommonPrefix returns the longest common prefix of all literals in the sequence.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}

	prefix := s.literals[0].Bytes
	for i := 1; i < len(s.literals); i++ {
		prefix = commonPrefix(prefix, s.literals[i].Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}

	result := make([]byte, len(prefix))
	copy(result, prefix)
	return result
}

// LongestCommonSuffix returns the longest common suffix of all literals in the sequence.
func (s *Seq) LongestCommonSuffix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}

	suffix := s.literals[0].Bytes
	for i := 1; i < len(s.literals); i++ {
		suffix = commonSuffix(suffix, s.literals[i].Bytes)
		if len(suffix) == 0 {
			return []byte{}
		}
	}

	result := make([]byte, len(suffix))
	copy(result, suffix)
	return result
}

// Helper functions

func isPrefix(prefix, s []byte) bool {
	if len(prefix) > len(s) {
		return false
	}
	return bytes.Equal(prefix, s[:len(prefix)])
}

func commonPrefix(a, b []byte) []byte {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:minLen]
}

func commonSuffix(a, b []byte) []byte {
	aLen := len(a)
	bLen := len(b)
	minLen := aLen
	if bLen < minLen {
		minLen = bLen
	}
	for i := 0; i < minLen; i++ {
		if a[aLen-1-i] != b[bLen-1-i] {
			if i == 0 {
				return []byte{}
			}
			return a[aLen-i:]
		}
	}
	return a[aLen-minLen:]
}
