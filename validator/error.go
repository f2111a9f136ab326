// Package validator checks a parsed *ast.Node tree against PCRE2 semantic
// rules spec.md §4.5 names (backref resolution, POSIX/Unicode class
// membership, lookbehind length bounds, and so on) that the grammar alone
// cannot express. It never rejects syntax the parser already accepted —
// only meaning.
package validator

import "fmt"

// Code identifies a validation rule, stable across releases so callers can
// match on it (spec.md §4.5 "stable diagnostic code").
type Code string

const (
	CodeQuantifierRange     Code = "validator.quantifier.range"
	CodeBackrefUnresolved   Code = "validator.backref.unresolved"
	CodeBackrefZero         Code = "validator.backref.zero"
	CodePosixClassUnknown   Code = "validator.posix.unknown"
	CodePosixNegatedWord    Code = "validator.posix.negated_word"
	CodeUnicodePropUnknown  Code = "validator.unicode.unknown_property"
	CodeUnicodeCodepoint    Code = "validator.unicode.codepoint_range"
	CodeLookbehindKeep      Code = "validator.lookbehind.keep_forbidden"
	CodeLookbehindUnbounded Code = "validator.lookbehind.unbounded_branch"
	CodeConditionalKind     Code = "validator.conditional.condition_kind"
	CodeDuplicateGroupName  Code = "validator.group.duplicate_name"
	CodeRangeEndpoint       Code = "validator.class.range_endpoint"
	CodeNestedUnbounded     Code = "validator.quantifier.nested_unbounded"
)

// Error is one semantic violation: a stable Code, a human Message, and the
// byte Offset of the offending construct.
type Error struct {
	Code    Code
	Message string
	Offset  uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Offset, e.Message)
}

func newErr(code Code, offset uint32, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Offset: offset}
}
