package sample_test

import (
	"strings"
	"testing"

	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/lexer"
	"github.com/coregx/regexlint/parser"
	"github.com/coregx/regexlint/sample"
	"github.com/coregx/regexlint/token"
)

func mustParse(t *testing.T, pattern string) *ast.Node {
	t.Helper()
	lx := lexer.New([]byte(pattern), 0)
	stream := token.NewStream(lx)
	p := parser.New(stream, 0, '/', len(pattern), parser.DefaultLimits())
	root, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", pattern, err)
	}
	return root
}

func TestGenerateLiteral(t *testing.T) {
	root := mustParse(t, "hello")
	got, err := sample.Generate(root, 1, sample.DefaultOptions())
	if err != nil {
		t.Fatalf("Generate(hello): %v", err)
	}
	if got != "hello" {
		t.Fatalf("Generate(hello) = %q, want %q", got, "hello")
	}
}

func TestGenerateRespectsBackreference(t *testing.T) {
	root := mustParse(t, `(?<name>a)\k<name>`)
	for seed := uint64(0); seed < 20; seed++ {
		got, err := sample.Generate(root, seed, sample.DefaultOptions())
		if err != nil {
			t.Fatalf("Generate(seed=%d): %v", seed, err)
		}
		if got != "aa" {
			t.Fatalf("Generate(seed=%d) = %q, want %q", seed, got, "aa")
		}
	}
}

func TestGenerateRefusesSubroutine(t *testing.T) {
	root := mustParse(t, `(?<name>a)(?&name)`)
	_, err := sample.Generate(root, 1, sample.DefaultOptions())
	if err == nil {
		t.Fatalf("Generate with a subroutine call: want an error, got none")
	}
}

func TestGenerateQuantifierBounds(t *testing.T) {
	root := mustParse(t, "a{2,5}")
	for seed := uint64(0); seed < 50; seed++ {
		got, err := sample.Generate(root, seed, sample.DefaultOptions())
		if err != nil {
			t.Fatalf("Generate(seed=%d): %v", seed, err)
		}
		if len(got) < 2 || len(got) > 5 {
			t.Fatalf("Generate(a{2,5}, seed=%d) = %q, want length in [2,5]", seed, got)
		}
		if strings.Trim(got, "a") != "" {
			t.Fatalf("Generate(a{2,5}, seed=%d) = %q, want only 'a's", seed, got)
		}
	}
}

func TestGenerateAlternationPicksAKnownBranch(t *testing.T) {
	root := mustParse(t, "cat|dog|bird")
	want := map[string]bool{"cat": true, "dog": true, "bird": true}
	for seed := uint64(0); seed < 30; seed++ {
		got, err := sample.Generate(root, seed, sample.DefaultOptions())
		if err != nil {
			t.Fatalf("Generate(seed=%d): %v", seed, err)
		}
		if !want[got] {
			t.Fatalf("Generate(cat|dog|bird, seed=%d) = %q, want one of cat/dog/bird", seed, got)
		}
	}
}

func TestGenerateCharClassStaysInRange(t *testing.T) {
	root := mustParse(t, "[a-c]+")
	for seed := uint64(0); seed < 30; seed++ {
		got, err := sample.Generate(root, seed, sample.DefaultOptions())
		if err != nil {
			t.Fatalf("Generate(seed=%d): %v", seed, err)
		}
		if got == "" {
			t.Fatalf("Generate([a-c]+, seed=%d) = empty, want at least one char", seed)
		}
		for _, c := range got {
			if c < 'a' || c > 'c' {
				t.Fatalf("Generate([a-c]+, seed=%d) = %q, want only a-c", seed, got)
			}
		}
	}
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	root := mustParse(t, "[a-z]{3,8}|[0-9]{1,4}")
	a, err := sample.Generate(root, 42, sample.DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := sample.Generate(root, 42, sample.DefaultOptions())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a != b {
		t.Fatalf("same seed produced different output: %q vs %q", a, b)
	}
}
