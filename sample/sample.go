// Package sample generates strings that match a parsed pattern (spec.md
// §4.9's Sample generator): a pure visitor like explain/ and highlight/,
// driven by a seedable PRNG so the same seed always reproduces the same
// sample. No teacher analog exists (coregex only ever executes already-
// supplied input, never generates matching ones); built from the
// ast.Walk/Fold primitives and math/rand/v2, since no pack dependency
// offers a regex-aware string generator.
package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/coregx/regexlint/ast"
)

// ErrSubroutine is returned when the pattern contains a subroutine call
// or whole-pattern recursion — generating a matching string for either
// requires re-running the generator over an already-in-progress subtree,
// which this generator (unlike a real matcher) has no mechanism for.
var ErrSubroutine = errors.New("sample: cannot generate a match for a subroutine call or recursion")

// Options controls generation bounds.
type Options struct {
	// MaxRepeat bounds how many extra repetitions (beyond Min) an
	// unbounded quantifier generates. Default 3.
	MaxRepeat int
}

// DefaultOptions returns the default generation bounds.
func DefaultOptions() Options {
	return Options{MaxRepeat: 3}
}

// Generate returns a string the pattern rooted at root (a KindRegex node)
// matches, using seed to drive a reproducible PRNG.
func Generate(root *ast.Node, seed uint64, opts Options) (string, error) {
	if opts.MaxRepeat <= 0 {
		opts.MaxRepeat = 3
	}
	g := &generator{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		opts:        opts,
		capsByIndex: map[int][]byte{},
		capsByName:  map[string][]byte{},
	}

	n, flags := root, ast.Flags(0)
	if root != nil && root.Kind == ast.KindRegex {
		flags = root.Flags
		n = root.Child
	}

	var b []byte
	if err := g.gen(n, flags, &b); err != nil {
		return "", err
	}
	return string(b), nil
}

type generator struct {
	rng         *rand.Rand
	opts        Options
	capsByIndex map[int][]byte
	capsByName  map[string][]byte
}

func (g *generator) gen(n *ast.Node, flags ast.Flags, out *[]byte) error {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case ast.KindSequence:
		for _, child := range n.Children {
			if err := g.gen(child, flags, out); err != nil {
				return err
			}
		}
		return nil

	case ast.KindAlternation:
		branch := n.Children[g.rng.IntN(len(n.Children))]
		return g.gen(branch, flags, out)

	case ast.KindLiteral:
		b := n.Bytes
		if flags.Has(ast.FlagI) {
			b = g.maybeFoldByte(b)
		}
		*out = append(*out, b...)
		return nil

	case ast.KindDot:
		r := g.dotRune(flags)
		*out = appendRune(*out, r)
		return nil

	case ast.KindCharType:
		r := charTypeSample(g.rng, n.Letter)
		*out = appendRune(*out, r)
		return nil

	case ast.KindCharClass:
		return g.genCharClass(n, flags, out)

	case ast.KindPosixClass:
		r := posixSample(g.rng, n.Name, n.Negated)
		*out = appendRune(*out, r)
		return nil

	case ast.KindUnicodeProp:
		*out = appendRune(*out, safeFallbackRune)
		return nil

	case ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		*out = appendRune(*out, rune(n.CodePoint))
		return nil

	case ast.KindGroup:
		return g.genGroup(n, flags, out)

	case ast.KindQuantifier:
		return g.genQuantifier(n, flags, out)

	case ast.KindConditional:
		return g.genConditional(n, flags, out)

	case ast.KindBackref:
		captured := g.lookupCapture(n)
		*out = append(*out, captured...)
		return nil

	case ast.KindSubroutine:
		return fmt.Errorf("%w: %s", ErrSubroutine, n.Kind)

	case ast.KindAnchor, ast.KindAssertion, ast.KindKeep,
		ast.KindComment, ast.KindPcreVerb, ast.KindConditionRef:
		return nil // zero-width or non-generative

	default:
		return nil
	}
}

func (g *generator) genGroup(n *ast.Node, flags ast.Flags, out *[]byte) error {
	if n.GroupKind == ast.GroupInlineFlags && n.Child == nil {
		return nil // standalone (?i) marker carries no bytes of its own
	}
	if n.GroupKind.IsLookaround() {
		return nil // zero-width: generating its body would add bytes the match doesn't consume
	}

	childFlags := flags
	if n.GroupKind == ast.GroupInlineFlags {
		childFlags = (flags | n.FlagSet) &^ n.FlagUnset
	}

	if !n.GroupKind.IsCapturing() {
		return g.gen(n.Child, childFlags, out)
	}

	start := len(*out)
	if err := g.gen(n.Child, childFlags, out); err != nil {
		return err
	}
	captured := append([]byte(nil), (*out)[start:]...)
	if n.GroupIndex != 0 {
		g.capsByIndex[n.GroupIndex] = captured
	}
	if n.Name != "" {
		g.capsByName[n.Name] = captured
	}
	return nil
}

func (g *generator) genQuantifier(n *ast.Node, flags ast.Flags, out *[]byte) error {
	count := n.Min
	if n.Max == ast.Unbounded {
		count += g.rng.IntN(g.opts.MaxRepeat + 1)
	} else if n.Max > n.Min {
		count += g.rng.IntN(n.Max - n.Min + 1)
	}
	for i := 0; i < count; i++ {
		if err := g.gen(n.Child, flags, out); err != nil {
			return err
		}
	}
	return nil
}

// genConditional picks Yes or No uniformly at random, including an empty
// match when No is absent — this generator has no backtracking engine to
// evaluate the condition against what's been generated so far, so it
// treats a conditional as an ordinary two-way (or one-way) alternation.
func (g *generator) genConditional(n *ast.Node, flags ast.Flags, out *[]byte) error {
	if n.No == nil {
		if g.rng.IntN(2) == 0 {
			return nil
		}
		return g.gen(n.Yes, flags, out)
	}
	if g.rng.IntN(2) == 0 {
		return g.gen(n.Yes, flags, out)
	}
	return g.gen(n.No, flags, out)
}

func (g *generator) lookupCapture(n *ast.Node) []byte {
	if n.Name != "" {
		return g.capsByName[n.Name]
	}
	return g.capsByIndex[n.RefIndex]
}

func (g *generator) genCharClass(n *ast.Node, flags ast.Flags, out *[]byte) error {
	if n.Negated {
		// An unbounded alphabet minus a few excluded runes is still
		// effectively unbounded; rather than enumerate the complement,
		// fall back to one rune known not to collide with the class's
		// own (small, enumerable) members.
		if r, ok := g.safeRuneAvoiding(n.Children); ok {
			*out = appendRune(*out, r)
			return nil
		}
		*out = appendRune(*out, safeFallbackRune)
		return nil
	}

	if len(n.Children) == 0 {
		return nil
	}
	item := n.Children[g.rng.IntN(len(n.Children))]
	r, ok := classItemSample(g.rng, item)
	if !ok {
		*out = appendRune(*out, safeFallbackRune)
		return nil
	}
	b := []byte(string(r))
	if flags.Has(ast.FlagI) {
		b = g.maybeFoldByte(b)
	}
	*out = append(*out, b...)
	return nil
}

// safeFallbackRune is used whenever a construct names an alphabet this
// generator doesn't enumerate (a Unicode property, a negated class with
// an effectively unbounded complement).
const safeFallbackRune = 'x'

func (g *generator) safeRuneAvoiding(items []*ast.Node) (rune, bool) {
	candidates := []rune{'x', 'y', 'z', '0', '1', ' '}
	for _, c := range candidates {
		excluded := false
		for _, item := range items {
			if lo, hi, ok := spanOf(item); ok && c >= lo && c <= hi {
				excluded = true
				break
			}
		}
		if !excluded {
			return c, true
		}
	}
	return 0, false
}

func spanOf(item *ast.Node) (lo, hi rune, ok bool) {
	switch item.Kind {
	case ast.KindRange:
		return item.Lo, item.Hi, true
	case ast.KindLiteral:
		if len(item.Bytes) == 0 {
			return 0, 0, false
		}
		r := []rune(string(item.Bytes))[0]
		return r, r, true
	case ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		r := rune(item.CodePoint)
		return r, r, true
	default:
		return 0, 0, false
	}
}

func classItemSample(rng *rand.Rand, item *ast.Node) (rune, bool) {
	switch item.Kind {
	case ast.KindRange:
		span := int64(item.Hi-item.Lo) + 1
		if span <= 0 {
			return item.Lo, true
		}
		return item.Lo + rune(rng.Int64N(span)), true
	case ast.KindLiteral:
		if len(item.Bytes) == 0 {
			return 0, false
		}
		return []rune(string(item.Bytes))[0], true
	case ast.KindUnicodeEscape, ast.KindOctal, ast.KindOctalLegacy:
		return rune(item.CodePoint), true
	case ast.KindCharType:
		return charTypeSample(rng, item.Letter), true
	case ast.KindPosixClass:
		return posixSample(rng, item.Name, item.Negated), true
	default:
		return 0, false
	}
}

func charTypeSample(rng *rand.Rand, letter byte) rune {
	switch letter {
	case 'd':
		return rune('0' + rng.IntN(10))
	case 'D':
		return 'X'
	case 'w':
		alphabet := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"
		return rune(alphabet[rng.IntN(len(alphabet))])
	case 'W':
		return '!'
	case 's':
		alphabet := " \t\n"
		return rune(alphabet[rng.IntN(len(alphabet))])
	case 'S':
		return 'x'
	case 'h':
		return ' '
	case 'H':
		return 'x'
	case 'v':
		return '\n'
	case 'V':
		return 'x'
	case 'R':
		return '\n'
	case 'N':
		return 'x'
	default:
		return safeFallbackRune
	}
}

func posixSample(rng *rand.Rand, name string, negated bool) rune {
	if negated {
		return safeFallbackRune
	}
	switch name {
	case "alpha":
		return rune('a' + rng.IntN(26))
	case "digit":
		return rune('0' + rng.IntN(10))
	case "alnum":
		alphabet := "abcdefghijklmnopqrstuvwxyz0123456789"
		return rune(alphabet[rng.IntN(len(alphabet))])
	case "space":
		return ' '
	case "upper":
		return rune('A' + rng.IntN(26))
	case "lower":
		return rune('a' + rng.IntN(26))
	case "punct":
		punct := "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
		return rune(punct[rng.IntN(len(punct))])
	default:
		return safeFallbackRune
	}
}

func (g *generator) dotRune(flags ast.Flags) rune {
	if flags.Has(ast.FlagS) {
		candidates := []rune{'a', '\n'}
		return candidates[g.rng.IntN(len(candidates))]
	}
	return 'a'
}

func (g *generator) maybeFoldByte(b []byte) []byte {
	if g.rng.IntN(2) == 0 {
		return b
	}
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		} else if c >= 'A' && c <= 'Z' {
			out[i] = c - 'A' + 'a'
		} else {
			out[i] = c
		}
	}
	return out
}

func appendRune(b []byte, r rune) []byte {
	return append(b, []byte(string(r))...)
}
