package validator

import (
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/parser"
	"github.com/coregx/regexlint/token"
)

func parseOK(t *testing.T, pattern string, flags ast.Flags) *ast.Node {
	t.Helper()
	lx := lexer.New([]byte(pattern), flags)
	stream := token.NewStream(lx)
	p := parser.New(stream, flags, '/', len(pattern), parser.DefaultLimits())
	n, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	return n
}

func codesOf(errs []*Error) []Code {
	out := make([]Code, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func assertHasCode(t *testing.T, errs []*Error, code Code) {
	t.Helper()
	for _, e := range errs {
		if e.Code == code {
			return
		}
	}
	t.Errorf("expected code %s among %v", code, codesOf(errs))
}

func assertNoErrors(t *testing.T, errs []*Error) {
	t.Helper()
	if len(errs) != 0 {
		t.Errorf("expected no validation errors, got %v", codesOf(errs))
	}
}

func TestValidateCleanPatterns(t *testing.T) {
	for _, pattern := range []string{
		"abc", "(a)(b)\\1\\2", "(?<foo>a)\\k<foo>", "[a-z0-9]",
		"[[:alpha:]]", `\p{L}`, `\x{1F600}`, "(?(1)a|b)", "(?(DEFINE)(?<x>a))",
		"(?<=fixed)", "(?<!abc)",
	} {
		errs := Validate(parseOK(t, pattern, 0), Options{})
		assertNoErrors(t, errs)
	}
}

func TestValidateUnresolvedNumericBackref(t *testing.T) {
	errs := Validate(parseOK(t, `(a)\2`, 0), Options{})
	assertHasCode(t, errs, CodeBackrefUnresolved)
}

func TestValidateUnresolvedNamedBackref(t *testing.T) {
	errs := Validate(parseOK(t, `(?<foo>a)\k<bar>`, 0), Options{})
	assertHasCode(t, errs, CodeBackrefUnresolved)
}

func TestValidateRelativeBackrefResolves(t *testing.T) {
	errs := Validate(parseOK(t, `(a)(b)\g{-1}`, 0), Options{})
	assertNoErrors(t, errs)
}

func TestValidateUnresolvedRelativeBackref(t *testing.T) {
	errs := Validate(parseOK(t, `(a)\g{-2}`, 0), Options{})
	assertHasCode(t, errs, CodeBackrefUnresolved)
}

func TestValidateForwardSubroutineReference(t *testing.T) {
	errs := Validate(parseOK(t, `\g<later>(?<later>a)`, 0), Options{})
	assertNoErrors(t, errs)
}

func TestValidateUnknownPosixClass(t *testing.T) {
	errs := Validate(parseOK(t, "[[:bogus:]]", 0), Options{})
	assertHasCode(t, errs, CodePosixClassUnknown)
}

func TestValidateNegatedWordPosixClass(t *testing.T) {
	errs := Validate(parseOK(t, "[[:^word:]]", 0), Options{})
	assertHasCode(t, errs, CodePosixNegatedWord)
}

func TestValidateUnknownUnicodeProperty(t *testing.T) {
	errs := Validate(parseOK(t, `\p{Bogus}`, 0), Options{})
	assertHasCode(t, errs, CodeUnicodePropUnknown)
}

func TestValidateLookbehindForbidsKeep(t *testing.T) {
	errs := Validate(parseOK(t, `(?<=a\Kb)`, 0), Options{})
	assertHasCode(t, errs, CodeLookbehindKeep)
}

func TestValidateLookbehindForbidsUnboundedQuantifier(t *testing.T) {
	errs := Validate(parseOK(t, `(?<=a*)`, 0), Options{})
	assertHasCode(t, errs, CodeLookbehindUnbounded)
}

func TestValidateConditionalRejectsNonLookaroundGroupCondition(t *testing.T) {
	root := parseOK(t, "(?(1)a|b)", 0)
	// Hand-construct the rejected shape: a conditional whose condition
	// slot is a plain non-capturing group, which the grammar never
	// produces but a rewrite pass could.
	cond := root.Child.Children[0]
	badCondition := ast.NewGroup(cond.Condition.Start, cond.Condition.End, ast.GroupNonCapturing, ast.NewLiteral(0, 1, []byte("a")))
	bad := ast.NewConditional(cond.Start, cond.End, badCondition, cond.Yes, cond.No)
	errs := Validate(ast.NewRegex(0, 10, bad, 0, '/'), Options{})
	assertHasCode(t, errs, CodeConditionalKind)
}

func TestValidateDuplicateGroupNameOutsideBranchReset(t *testing.T) {
	root := parseOK(t, "(a)(b)", 0)
	seq := root.Child
	g1 := seq.Children[0]
	g2 := seq.Children[1]
	g1.GroupKind, g1.Name = ast.GroupNamed, "x"
	g2.GroupKind, g2.Name = ast.GroupNamed, "x"
	errs := Validate(root, Options{})
	assertHasCode(t, errs, CodeDuplicateGroupName)
}

func TestValidateDuplicateGroupNameInsideBranchResetAllowed(t *testing.T) {
	root := parseOK(t, "(?|(?<x>a)|(?<x>b))", 0)
	errs := Validate(root, Options{})
	assertNoErrors(t, errs)
}

func TestValidateDuplicateGroupNameAllowedWithDupNamesFlag(t *testing.T) {
	root := parseOK(t, "(?<x>a)(?<x>b)", ast.FlagDupNames)
	errs := Validate(root, Options{})
	assertNoErrors(t, errs)
}

func TestValidateRangeOutOfOrder(t *testing.T) {
	root := parseOK(t, "[a-z]", 0)
	cc := root.Child.Children[0]
	r := cc.Children[0]
	r.Lo, r.Hi = 'z', 'a'
	errs := Validate(root, Options{})
	assertHasCode(t, errs, CodeRangeEndpoint)
}

func TestValidateQuantifierRangeInverted(t *testing.T) {
	root := parseOK(t, "a{2,4}", 0)
	q := root.Child.Children[0]
	q.Min, q.Max = 5, 2
	errs := Validate(root, Options{})
	assertHasCode(t, errs, CodeQuantifierRange)
}

func TestValidateStrictModeFlagsNestedUnboundedQuantifier(t *testing.T) {
	root := parseOK(t, "(a+)*", 0)
	lenient := Validate(root, Options{Strict: false})
	for _, e := range lenient {
		if e.Code == CodeNestedUnbounded {
			t.Fatalf("non-strict mode should not report CodeNestedUnbounded, got %v", codesOf(lenient))
		}
	}
	strict := Validate(root, Options{Strict: true})
	assertHasCode(t, strict, CodeNestedUnbounded)
}
