// Package regexlint is the facade spec.md §4.10 names: it parses a PCRE2
// pattern once and composes every analyzer (validator, compiler, linter,
// optimizer, ReDoS analyzer, automata subsystem, and the explain/highlight/
// literal/sample/complexity visitors of §4.9) over the resulting AST,
// the way regex.go composes meta.Engine for the teacher's matcher: one
// small struct hiding a pipeline of packages behind a handful of methods.
//
// Every method is a pure function of (pattern, flags, Options) — there is
// no shared mutable state in the core (spec.md §5) — so a *Facade is safe
// for concurrent use once constructed, and results are cacheable by a key
// derived from exactly those three inputs (see Options.canonical and
// cache.Key).
package regexlint

import (
	"fmt"
	"strings"
	"time"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/automata"
	"github.com/coregx/regexlint/cache"
	"github.com/coregx/regexlint/compiler"
	"github.com/coregx/regexlint/complexity"
	"github.com/coregx/regexlint/explain"
	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/linter"
	"github.com/coregx/regexlint/literal"
	"github.com/coregx/regexlint/optimizer"
	"github.com/coregx/regexlint/parser"
	"github.com/coregx/regexlint/redos"
	"github.com/coregx/regexlint/sample"
	"github.com/coregx/regexlint/token"
	"github.com/coregx/regexlint/validator"
)

// MatchMode names whether a pattern matches anywhere in a haystack or only
// the entire input. It is part of the cache key; no Facade operation, the
// automata comparisons or the sample generator reads it.
type MatchMode int

const (
	MatchSearch MatchMode = iota
	MatchFull
)

// Minimization names a DFA-minimization algorithm (spec.md §4.11). It is
// part of the cache key; the automata subsystem always uses dfa.Minimize,
// whichever value is set.
type Minimization int

const (
	MinimizationHopcroft Minimization = iota
	MinimizationMoore
)

// RedosOptions configures the ReDoS analyzer operation (spec.md §4.8),
// mirroring redos.Options one-for-one.
type RedosOptions struct {
	Mode       redos.Mode
	Threshold  int
	DisableJIT bool
}

// OptimizeOptions configures the optimizer operation (spec.md §4.6);
// Facade.Optimize translates it into optimizer.Config. Digits and Word
// are not read by Facade.Optimize.
type OptimizeOptions struct {
	Digits                        bool
	Word                          bool
	Ranges                        bool
	CanonicalizeCharClasses       bool
	AutoPossessify                bool
	AllowAlternationFactorization bool
	MinQuantifierCount            int
	MinSavings                    int
	VerifyWithAutomata            bool
}

// Options is the configuration every facade operation accepts (spec.md
// §4.10's recognized-options block), following the meta.Config /
// lazy.Config pattern: a plain struct, a DefaultOptions constructor, and
// a Validate method returning a typed ConfigError.
type Options struct {
	MaxPatternLength       int
	MaxRecursionDepth      int
	MaxNodes               int
	AllowRuntimeValidation bool

	// Strict promotes nested-unbounded-quantifier constructs from a
	// ReDoS-analyzer-only finding to a hard Validate error (spec.md
	// §4.5's "flagged here as a hard validation error only in strict
	// mode; otherwise reported by the ReDoS analyzer").
	Strict bool

	Redos        RedosOptions
	Optimize     OptimizeOptions
	Minimization Minimization
	MatchMode    MatchMode

	// Deadline, if non-zero, bounds wall-clock time for one operation
	// call (spec.md §5's cancellation/timeout contract). Every internal
	// loop this module runs is already bounded by a resource limit above
	// (MaxNodes/MaxRecursionDepth, or dfa.DefaultMaxStates inside the
	// automata subsystem), so a single check at the start of each
	// operation is enough to honor the contract without instrumenting
	// every recursion point and BFS iteration individually.
	Deadline time.Time
}

// DefaultOptions returns the bounds spec.md §5 names plus every analyzer
// sub-option left at its own package's documented default.
func DefaultOptions() Options {
	return Options{
		MaxPatternLength:       100000,
		MaxRecursionDepth:      200,
		MaxNodes:               10000,
		AllowRuntimeValidation: false,
		Strict:                 false,
		Redos: RedosOptions{
			Mode:      redos.ModeTheoretical | redos.ModeConfirmed,
			Threshold: 70,
		},
		Optimize: OptimizeOptions{
			Digits:                        true,
			Word:                          true,
			Ranges:                        true,
			CanonicalizeCharClasses:       true,
			AutoPossessify:                true,
			AllowAlternationFactorization: false,
			MinQuantifierCount:            3,
			MinSavings:                    1,
			VerifyWithAutomata:            true,
		},
		Minimization: MinimizationHopcroft,
		MatchMode:    MatchSearch,
	}
}

// ConfigError represents an invalid Options field, mirroring
// meta.ConfigError's {Field, Message} shape.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "regexlint: invalid option: " + e.Field + ": " + e.Message
}

// Validate reports whether o's fields are within the bounds the rest of
// this package assumes.
func (o Options) Validate() error {
	if o.MaxPatternLength < 1 {
		return &ConfigError{Field: "MaxPatternLength", Message: "must be >= 1"}
	}
	if o.MaxRecursionDepth < 1 {
		return &ConfigError{Field: "MaxRecursionDepth", Message: "must be >= 1"}
	}
	if o.MaxNodes < 1 {
		return &ConfigError{Field: "MaxNodes", Message: "must be >= 1"}
	}
	if o.Redos.Threshold < 0 || o.Redos.Threshold > 100 {
		return &ConfigError{Field: "Redos.Threshold", Message: "must be between 0 and 100"}
	}
	if o.Optimize.MinQuantifierCount < 0 {
		return &ConfigError{Field: "Optimize.MinQuantifierCount", Message: "must be >= 0"}
	}
	return nil
}

// canonical renders o as a stable string for cache-key hashing (spec.md
// §4.10: "a hash of (pattern, flags, canonicalized-options)"). Field
// order is fixed here so two Options values with the same content always
// canonicalize identically regardless of how the caller built them.
func (o Options) canonical() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mpl=%d;mrd=%d;mn=%d;arv=%t;strict=%t;", o.MaxPatternLength, o.MaxRecursionDepth, o.MaxNodes, o.AllowRuntimeValidation, o.Strict)
	fmt.Fprintf(&b, "redos(mode=%d,th=%d,jit=%t);", o.Redos.Mode, o.Redos.Threshold, o.Redos.DisableJIT)
	fmt.Fprintf(&b, "opt(d=%t,w=%t,r=%t,ccc=%t,ap=%t,aaf=%t,mqc=%d,ms=%d,vwa=%t);",
		o.Optimize.Digits, o.Optimize.Word, o.Optimize.Ranges, o.Optimize.CanonicalizeCharClasses,
		o.Optimize.AutoPossessify, o.Optimize.AllowAlternationFactorization,
		o.Optimize.MinQuantifierCount, o.Optimize.MinSavings, o.Optimize.VerifyWithAutomata)
	fmt.Fprintf(&b, "min=%d;mm=%d", o.Minimization, o.MatchMode)
	return b.String()
}

// TimeoutError is returned when Options.Deadline has already passed at
// the start of an operation (spec.md §5: "On expiry, return a Timeout
// error without partial state leakage" — checked here before any state
// is built, so there is none to leak).
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return "regexlint: " + e.Op + ": deadline exceeded"
}

func checkDeadline(op string, o Options) error {
	if !o.Deadline.IsZero() && time.Now().After(o.Deadline) {
		return &TimeoutError{Op: op}
	}
	return nil
}

// ValidationError wraps every violation Validate found. It is returned
// (rather than the bare []*validator.Error slice) so callers can use
// errors.As against one stable facade-level type regardless of which
// sub-package's error shape backs it — mirroring how ParseError and
// ResourceLimitError are the facade-visible names for parser's own
// Error/ResourceLimitError types.
type ValidationError struct {
	Errors []*validator.Error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return fmt.Sprintf("regexlint: %d validation errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Pattern is the result of Parse: a pattern's source split into its
// PCRE2 delimiter/body/flags framing plus the AST built from it. Every
// other Facade operation takes a *Pattern rather than re-parsing.
type Pattern struct {
	Source    string // the original "delim body delim flags" text
	Body      string
	Delimiter byte
	Flags     ast.Flags
	Root      *ast.Node
}

// pairedDelimiters maps an opening bracket delimiter to its closing
// counterpart (spec.md §6: "paired forms (), {}, [], <> are accepted").
var pairedDelimiters = map[byte]byte{
	'(': ')', '{': '}', '[': ']', '<': '>',
}

func isAlphanumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// splitDelimited parses the "delim body delim flags?" wire format spec.md
// §6 defines: src's first byte is the opening delimiter (any
// non-alphanumeric byte; paired brackets use their matching close), and
// everything after the matching closing delimiter is the flag letters.
func splitDelimited(src string) (body, flagsStr string, delimiter byte, err error) {
	if len(src) == 0 {
		return "", "", 0, &ConfigError{Field: "pattern", Message: "empty input"}
	}
	open := src[0]
	if isAlphanumeric(open) {
		return "", "", 0, &ConfigError{Field: "pattern", Message: fmt.Sprintf("delimiter %q must not be alphanumeric", open)}
	}
	closeByte := open
	if paired, ok := pairedDelimiters[open]; ok {
		closeByte = paired
	}
	end := strings.LastIndexByte(src[1:], closeByte)
	if end < 0 {
		return "", "", 0, &ConfigError{Field: "pattern", Message: fmt.Sprintf("missing closing delimiter %q", closeByte)}
	}
	end++ // account for the src[1:] offset
	return src[1:end], src[end+1:], open, nil
}

// Facade is the entry point composing every subsystem package over one
// cache. Construct it with New; the zero value is not usable (it has no
// cache backing).
type Facade struct {
	store cache.KeyValueStore
}

// New builds a Facade backed by store. A nil store gets an in-process
// cache.MemoryStore, so New(nil) is always safe to call.
func New(store cache.KeyValueStore) *Facade {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	return &Facade{store: store}
}

func cachedResult[T any](f *Facade, key string, compute func() (T, error)) (T, error) {
	if v, ok := f.store.Get(key); ok {
		if cached, ok := v.(cachedValue[T]); ok {
			return cached.value, cached.err
		}
	}
	value, err := compute()
	f.store.Set(key, cachedValue[T]{value: value, err: err})
	return value, err
}

type cachedValue[T any] struct {
	value T
	err   error
}

// Parse splits src's "delim body delim flags" framing, lexes and parses
// the body, and returns the resulting Pattern (spec.md §4.10's `parse`
// operation). Results are cached by (src, opts).
func (f *Facade) Parse(src string, opts Options) (*Pattern, error) {
	if err := checkDeadline("parse", opts); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	key := cache.Key("parse:"+src, 0, opts.canonical())
	return cachedResult(f, key, func() (*Pattern, error) {
		body, flagsStr, delimiter, err := splitDelimited(src)
		if err != nil {
			return nil, err
		}
		if len(body) > opts.MaxPatternLength {
			return nil, &parser.ResourceLimitError{Limit: "pattern length", Bound: opts.MaxPatternLength}
		}
		flags, badIdx := ast.ParseFlags(flagsStr)
		if badIdx != -1 {
			return nil, &ConfigError{Field: "flags", Message: fmt.Sprintf("unrecognized flag letter %q", flagsStr[badIdx])}
		}

		lx := lexer.New([]byte(body), flags)
		stream := token.NewStream(lx)
		limits := parser.Limits{
			MaxBodyLength: opts.MaxPatternLength,
			MaxDepth:      opts.MaxRecursionDepth,
			MaxNodes:      opts.MaxNodes,
		}
		p := parser.New(stream, flags, delimiter, len(body), limits)
		root, err := p.Parse()
		if err != nil {
			return nil, err
		}
		return &Pattern{Source: src, Body: body, Delimiter: delimiter, Flags: flags, Root: root}, nil
	})
}

// Validate runs the semantic validator over pat (spec.md §4.10's
// `validate` operation), returning a *ValidationError when any rule
// fails and nil when pat is semantically sound.
func (f *Facade) Validate(pat *Pattern, opts Options) error {
	if err := checkDeadline("validate", opts); err != nil {
		return err
	}
	errs := validator.Validate(pat.Root, validator.Options{Strict: opts.Strict})
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// Compile renders pat back to pattern source text (spec.md §4.10's
// `compile` operation — the bidirectional compiler, not code generation).
func (f *Facade) Compile(pat *Pattern, pretty bool) string {
	return compiler.Compile(pat.Root, compiler.Options{Pretty: pretty})
}

// Analyze scores pat's structural complexity (spec.md §4.9's Complexity
// visitor), returning the score and whether it exceeds threshold.
func (f *Facade) Analyze(pat *Pattern, threshold int) (score int, highComplexity bool) {
	w := complexity.DefaultWeights()
	score = complexity.Score(pat.Root, w)
	return score, complexity.IsHighComplexity(pat.Root, threshold)
}

// Lint runs every enabled rule over pat (spec.md §4.10's `lint`
// operation).
func (f *Facade) Lint(pat *Pattern, cfg linter.Config) linter.Report {
	return linter.Lint(pat.Root, cfg)
}

// Optimize rewrites pat to an equivalent, simpler tree (spec.md §4.10's
// `optimize` operation), translating Options.Optimize into optimizer.Config.
func (f *Facade) Optimize(pat *Pattern, opts Options) optimizer.Result {
	cfg := optimizer.Config{
		CoalesceLiterals:       true,
		FlattenGroups:          true,
		AlternationToCharClass: opts.Optimize.Ranges,
		CanonicalizeCharClass:  opts.Optimize.CanonicalizeCharClasses,
		CompactQuantifiers:     true,
		MinQuantifierCount:     opts.Optimize.MinQuantifierCount,
		AutoPossessify:         opts.Optimize.AutoPossessify,
		CleanupFlags:           true,
		FactorizeAlternation:   opts.Optimize.AllowAlternationFactorization,
		VerifyEquivalence:      opts.Optimize.VerifyWithAutomata,
		MinSavingsChars:        opts.Optimize.MinSavings,
	}
	return optimizer.Optimize(pat.Root, cfg)
}

// Explain renders pat as plain-text or HTML prose (spec.md §4.10's
// `explain` operation).
func (f *Facade) Explain(pat *Pattern, eopts explain.Options) string {
	return explain.Explain(pat.Root, eopts)
}

// Generate produces one string pat matches, seeded for reproducibility
// (spec.md §4.10's `generate` operation).
func (f *Facade) Generate(pat *Pattern, seed uint64, sopts sample.Options) (string, error) {
	return sample.Generate(pat.Root, seed, sopts)
}

// Literals extracts pat's prefix/suffix literal sets (spec.md §4.10's
// `literals` operation).
func (f *Facade) Literals(pat *Pattern, cfg literal.ExtractorConfig) literal.LiteralSet {
	return literal.Extract(pat.Root, cfg)
}

// Redos runs the ReDoS analyzer over pat (spec.md §4.10's `redos`
// operation). Results are cached since confirmed mode's automata
// construction is the most expensive single operation this facade
// performs.
func (f *Facade) Redos(pat *Pattern, opts Options) (*redos.Analysis, error) {
	if err := checkDeadline("redos", opts); err != nil {
		return nil, err
	}
	key := cache.Key("redos:"+pat.Source, uint16(pat.Flags), opts.canonical())
	return cachedResult(f, key, func() (*redos.Analysis, error) {
		ropts := redos.Options{
			Mode:       opts.Redos.Mode,
			Threshold:  opts.Redos.Threshold,
			DisableJIT: opts.Redos.DisableJIT,
		}
		return redos.Analyze(pat.Root, ropts), nil
	})
}

// Comparison is Compare's result: the three automata questions spec.md
// §4.10 groups under `compare` (intersection/subset/equivalence),
// plus BFS-shortest-word counter-examples when the patterns diverge.
type Comparison struct {
	Intersects   bool
	AIsSubsetOfB bool
	BIsSubsetOfA bool
	Equivalent   bool

	// OnlyInA/OnlyInB are the shortest strings a, respectively b, accept
	// that the other pattern does not — empty when no such string exists
	// (e.g. OnlyInA is empty when a's language is empty or a ⊆ b).
	OnlyInA string
	OnlyInB string
}

// Compare answers the automata-subsystem questions spec.md §4.10's
// `compare` operation groups (spec.md §4.11): intersection, subset in
// both directions, and equivalence, with BFS shortest-word witnesses for
// any asymmetry. Returns the underlying *nfa.ComplexityError unchanged
// when either pattern uses a construct outside the regular subset
// (lookarounds, \K, backreferences, conditionals, recursion).
func (f *Facade) Compare(a, b *Pattern) (Comparison, error) {
	autoA, err := automata.Compile(a.Root)
	if err != nil {
		return Comparison{}, err
	}
	autoB, err := automata.Compile(b.Root)
	if err != nil {
		return Comparison{}, err
	}

	c := Comparison{
		Intersects:   automata.Intersects(autoA, autoB),
		AIsSubsetOfB: automata.Subset(autoA, autoB),
		BIsSubsetOfA: automata.Subset(autoB, autoA),
	}
	c.Equivalent = c.AIsSubsetOfB && c.BIsSubsetOfA

	if !c.AIsSubsetOfB {
		if w, ok := automata.ShortestWord(automata.Difference(autoA, autoB)); ok {
			c.OnlyInA = w
		}
	}
	if !c.BIsSubsetOfA {
		if w, ok := automata.ShortestWord(automata.Difference(autoB, autoA)); ok {
			c.OnlyInB = w
		}
	}
	return c, nil
}
