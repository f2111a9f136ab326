// Package redos scores a pattern's susceptibility to catastrophic
// backtracking. Theoretical mode walks the AST for the four classic
// structural triggers (nested unbounded quantifiers, overlapping
// alternation branches under repetition, empty-match repetition,
// ambiguous adjacent quantifiers); confirmed mode builds the flagged
// subexpression's automaton and searches its self-product for an actual
// pumping witness (redos/confirmed.go). Both modes are read-only over the
// AST, mirroring every other analyzer in this module.
package redos

import "github.com/coregx/regexlint/ast"

// Mode selects which passes Analyze runs; the two are composable.
type Mode uint8

const (
	ModeTheoretical Mode = 1 << iota
	ModeConfirmed
)

// Severity is the analyzer's worst-construct verdict.
type Severity uint8

const (
	Safe Severity = iota
	Low
	Medium
	High
	Critical
)

func (s Severity) String() string {
	switch s {
	case Safe:
		return "safe"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Confidence labels how much theoretical mode trusts its own verdict,
// lower when it had to skip a subtree confirmed mode could not analyze.
type Confidence uint8

const (
	ConfidenceHigh Confidence = iota
	ConfidenceMedium
	ConfidenceLow
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Options configures one Analyze call (spec.md §4.10's redos config
// block: mode, threshold, disable_jit). DisableJIT is carried for
// reproducibility parity with PCRE2's own JIT-off mode but has no effect
// here, since this analyzer never executes a match.
type Options struct {
	Mode       Mode
	Threshold  int
	DisableJIT bool
}

// Finding is one triggering construct theoretical mode located.
type Finding struct {
	Rule     string
	Node     *ast.Node
	Severity Severity
}

// Analysis is Analyze's result.
type Analysis struct {
	Severity          Severity
	Score             int
	Trigger           *ast.Node
	Confidence        Confidence
	FalsePositiveRisk string
	Recommendations   []string
	SuggestedRewrite  []string
	Witness           string
	Confirmed         bool
}

// IsSafe reports whether a's score is strictly below threshold.
func (a *Analysis) IsSafe(threshold int) bool {
	return a.Score < threshold
}

// Analyze runs the configured modes over root (a Regex root or any
// subtree) and returns the single worst-construct verdict.
func Analyze(root *ast.Node, opts Options) *Analysis {
	result := &Analysis{Severity: Safe, Confidence: ConfidenceHigh}
	if opts.Mode&ModeTheoretical == 0 && opts.Mode&ModeConfirmed == 0 {
		return result
	}

	var findings []Finding
	degraded := false

	if opts.Mode&ModeTheoretical != 0 {
		findings = TheoreticalFindings(root)
	}

	worst := Finding{Severity: Safe}
	for _, f := range findings {
		if f.Severity > worst.Severity {
			worst = f
		}
	}
	result.Severity = worst.Severity
	result.Trigger = worst.Node
	result.Score = severityScore(worst.Severity)

	if worst.Node != nil {
		result.Recommendations, result.SuggestedRewrite = recommendationsFor(worst)
		result.FalsePositiveRisk = falsePositiveRisk(worst)
	}

	if opts.Mode&ModeConfirmed != 0 && worst.Node != nil {
		inner := quantifierBody(worst.Node)
		if inner != nil {
			witness, ambiguous, err := confirmedWitness(inner)
			if err != nil {
				degraded = true
			} else if ambiguous {
				result.Confirmed = true
				result.Witness = witness
				if result.Severity < Critical {
					result.Severity = Critical
					result.Score = severityScore(Critical)
				}
			} else if result.Severity > Safe {
				// The automaton proved this trigger is not actually
				// ambiguous under repetition: theoretical mode flagged
				// structure that the exact analysis clears.
				result.Severity = dampen(result.Severity)
				result.Score = severityScore(result.Severity)
			}
		}
	}

	if degraded {
		result.Confidence = ConfidenceLow
	}

	return result
}

func severityScore(s Severity) int {
	switch s {
	case Safe:
		return 0
	case Low:
		return 25
	case Medium:
		return 50
	case High:
		return 75
	case Critical:
		return 100
	default:
		return 0
	}
}

func dampen(s Severity) Severity {
	if s == Safe {
		return Safe
	}
	return s - 1
}

// quantifierBody returns the subtree confirmed mode should build an
// automaton from: the trigger Quantifier itself, not just its body. The
// ambiguity in a shape like (a+)+ lives in the outer repetition's own
// loop combined with the inner one, not in the inner body alone — an
// automaton built from the body by itself (plain a+) has exactly one
// path per input and can never self-collide. Returns nil for triggers
// that are not themselves a Quantifier (e.g. an Alternation flagged for
// overlapping branches, where confirmed mode has nothing self-contained
// to build from).
func quantifierBody(n *ast.Node) *ast.Node {
	if n.Kind != ast.KindQuantifier {
		return nil
	}
	return n
}

// isAtomicOnHotPath reports whether n (a Quantifier's child) is wrapped
// in an atomic group or is itself possessive, the standard PCRE2 defense
// against catastrophic backtracking that spec.md §4.8 says dampens
// severity rather than clearing it outright.
func isAtomicOnHotPath(n *ast.Node) bool {
	cur := n
	for cur != nil {
		switch cur.Kind {
		case ast.KindGroup:
			if cur.GroupKind == ast.GroupAtomic {
				return true
			}
			cur = cur.Child
		case ast.KindQuantifier:
			if cur.Mode == ast.Possessive {
				return true
			}
			cur = cur.Child
		default:
			return false
		}
	}
	return false
}

func recommendationsFor(f Finding) ([]string, []string) {
	switch f.Rule {
	case "nested_unbounded_quantifier":
		return []string{"wrap the inner repetition in an atomic group, or make it possessive, to remove the ambiguity"},
			[]string{"wrap the flagged inner quantifier's target in (?>...)", "make the flagged inner quantifier possessive (add a trailing +)"}
	case "overlapping_alternation":
		return []string{"reorder or merge the overlapping branches so their first characters no longer collide"}, nil
	case "empty_match_repetition":
		return []string{"require the inner repetition to consume at least one character, or drop the outer repetition"}, nil
	case "adjacent_quantifiers":
		return []string{"merge the adjacent quantified atoms into a single bounded repetition"}, nil
	default:
		return nil, nil
	}
}

func falsePositiveRisk(f Finding) string {
	if isAtomicOnHotPath(f.Node) {
		return "low: an atomic group or possessive quantifier already blocks backtracking on this path"
	}
	return "medium: theoretical detection without a confirmed pumping witness"
}
