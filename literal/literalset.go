package literal

import (
	"github.com/coregx/ahocorasick"
	"github.com/coregx/regexlint/ast"
)

// LiteralSet is spec.md §4.9's literal-extractor result: the prefixes and
// suffixes a pattern's matches must carry, plus whether the pattern is
// equivalent to the finite union of known strings (Complete).
type LiteralSet struct {
	Prefixes *Seq
	Suffixes *Seq

	// Complete is true when Prefixes is both non-empty and every member
	// is itself Complete — the pattern can match nothing outside that
	// finite set of strings.
	Complete bool

	automaton     *ahocorasick.Automaton
	automatonBuilt bool
}

// Extract runs an Extractor with cfg over root (a KindRegex node, or any
// subtree) and returns its LiteralSet.
func Extract(root *ast.Node, cfg ExtractorConfig) LiteralSet {
	e := New(cfg)
	prefixes := e.ExtractPrefixes(root)
	suffixes := e.ExtractSuffixes(root)

	complete := !prefixes.IsEmpty()
	for i := 0; i < prefixes.Len(); i++ {
		if !prefixes.Get(i).Complete {
			complete = false
			break
		}
	}

	return LiteralSet{Prefixes: prefixes, Suffixes: suffixes, Complete: complete}
}

// automatonThreshold is the member count at which Automaton starts to
// build: below it, a
// membership scan is cheap enough to do by hand; at or above it, build
// one Aho-Corasick automaton over the members instead of repeating
// ahocorasick.Builder work per caller (spec.md §4.9 DOMAIN STACK: "literal
// package builds an Aho-Corasick automaton over a LiteralSet's members
// once it is Complete and has >=8 alternatives").
const automatonThreshold = 8

// Automaton lazily builds and caches a multi-pattern automaton over the
// prefix set's member literals, for a caller that wants fast membership
// testing over the full finite set a Complete LiteralSet denotes. Returns
// (nil, false) when the set isn't Complete, has fewer members than
// automatonThreshold (not worth the build), or the automaton fails to
// build.
func (ls *LiteralSet) Automaton() (*ahocorasick.Automaton, bool) {
	if ls.automatonBuilt {
		return ls.automaton, ls.automaton != nil
	}
	ls.automatonBuilt = true

	if !ls.Complete || ls.Prefixes.Len() < automatonThreshold {
		return nil, false
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < ls.Prefixes.Len(); i++ {
		builder.AddPattern(ls.Prefixes.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	ls.automaton = auto
	return auto, true
}

// Contains reports whether s is exactly one of the LiteralSet's member
// strings. Only meaningful when Complete; always false otherwise. Uses
// the cached automaton above automatonThreshold members, a direct
// comparison below it.
func (ls *LiteralSet) Contains(s []byte) bool {
	if !ls.Complete {
		return false
	}
	if auto, ok := ls.Automaton(); ok {
		m := auto.Find(s, 0)
		return m != nil && m.Start == 0 && m.End == len(s)
	}
	for i := 0; i < ls.Prefixes.Len(); i++ {
		if string(ls.Prefixes.Get(i).Bytes) == string(s) {
			return true
		}
	}
	return false
}
