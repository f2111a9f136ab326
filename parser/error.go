// Package parser builds an ast.Node tree from a token.Stream (spec.md
// §4.2): recursive descent over alternation/sequence/quantifier/group,
// enforcing the resource limits spec.md §5 sets on any single compile.
package parser

import "fmt"

// ErrorCode names a stable parse-failure category (spec.md §7 ParseError).
type ErrorCode string

const (
	ErrUnexpectedToken   ErrorCode = "UNEXPECTED_TOKEN"
	ErrUnmatchedParen    ErrorCode = "UNMATCHED_PAREN"
	ErrQuantifierNoTarget ErrorCode = "QUANTIFIER_NO_TARGET"
	ErrDuplicateGroupName ErrorCode = "DUPLICATE_GROUP_NAME"
	ErrUnknownGroupName   ErrorCode = "UNKNOWN_GROUP_NAME"
	ErrMalformedConditional ErrorCode = "MALFORMED_CONDITIONAL"
	ErrEmptyCharClass    ErrorCode = "EMPTY_CHAR_CLASS"
)

// Error is the ParseError variant from spec.md §7.
type Error struct {
	Code    ErrorCode
	Message string
	Offset  uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("regexlint: parse error at offset %d: %s (%s)", e.Offset, e.Message, e.Code)
}

func newErr(code ErrorCode, offset uint32, format string, args ...any) *Error {
	return &Error{Code: code, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// ResourceLimitError reports that a compile exceeded one of the bounds in
// Limits (spec.md §5): body length, recursion depth, or node count.
type ResourceLimitError struct {
	Limit string
	Bound int
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("regexlint: resource limit exceeded: %s (bound %d)", e.Limit, e.Bound)
}
