package parser

import (
	"github.com/coregx/regexlint/ast"
	"github.com/coregx/regexlint/token"
)

// Limits bounds a single parse, guarding against pathological inputs
// (spec.md §5).
type Limits struct {
	MaxBodyLength int
	MaxDepth      int
	MaxNodes      int
}

// DefaultLimits returns the bounds spec.md §5 names: a 100000-byte body, a
// 200-deep recursion ceiling, and a 10000-node ceiling.
func DefaultLimits() Limits {
	return Limits{MaxBodyLength: 100000, MaxDepth: 200, MaxNodes: 10000}
}

// Parser consumes a token.Stream and builds an ast.Node tree.
type Parser struct {
	stream    *token.Stream
	limits    Limits
	flags     ast.Flags
	delimiter byte
	bodyLen   int

	depth          int
	nodeCount      int
	nextGroupIndex int
	// groupNames maps a captured name to the branch-reset scope it was
	// registered under (0 meaning no enclosing (?|...) group), so a
	// second registration of the same name can be told apart as either a
	// real duplicate or a legal alternate-branch reuse (spec.md §4.5).
	groupNames        map[string]int
	branchResetStack  []int
	nextBranchResetID int
}

// New constructs a Parser. flags and delimiter come from the facade's
// "delim body delim flags" split; bodyLen is the byte length of the body
// the token.Stream was built over (for the root Regex node's End and the
// body-length limit check).
func New(stream *token.Stream, flags ast.Flags, delimiter byte, bodyLen int, limits Limits) *Parser {
	return &Parser{
		stream: stream, limits: limits, flags: flags, delimiter: delimiter, bodyLen: bodyLen,
		nextGroupIndex: 1, groupNames: make(map[string]int),
	}
}

// Parse runs the parser to completion, returning the root Regex node.
func (p *Parser) Parse() (*ast.Node, error) {
	if p.bodyLen > p.limits.MaxBodyLength {
		return nil, &ResourceLimitError{Limit: "body length", Bound: p.limits.MaxBodyLength}
	}
	child, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if tok := p.stream.Peek(0); tok.Kind != token.EOF {
		return nil, newErr(ErrUnmatchedParen, tok.Start, "unexpected %s before end of pattern", tok.Kind)
	}
	if err := p.stream.Err(); err != nil {
		return nil, err
	}
	return ast.NewRegex(0, uint32(p.bodyLen), child, p.flags, p.delimiter), nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.limits.MaxDepth {
		return &ResourceLimitError{Limit: "recursion depth", Bound: p.limits.MaxDepth}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// currentBranchResetScope returns the id of the innermost (?|...) group
// currently being parsed, or 0 if none.
func (p *Parser) currentBranchResetScope() int {
	if len(p.branchResetStack) == 0 {
		return 0
	}
	return p.branchResetStack[len(p.branchResetStack)-1]
}

func (p *Parser) newNode() error {
	p.nodeCount++
	if p.nodeCount > p.limits.MaxNodes {
		return &ResourceLimitError{Limit: "node count", Bound: p.limits.MaxNodes}
	}
	return nil
}

// parseAlternation parses branch (`|` branch)*, returning the single
// branch unwrapped when there is exactly one.
func (p *Parser) parseAlternation() (*ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.stream.Peek(0).Start
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	branches := []*ast.Node{first}
	for p.stream.Peek(0).Kind == token.Alternation {
		p.stream.Consume()
		branch, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	if err := p.newNode(); err != nil {
		return nil, err
	}
	return ast.NewAlternation(start, branches[len(branches)-1].End, branches), nil
}

// sequenceStoppers are the tokens that end a sequence without being
// consumed by it.
func isSequenceStopper(k token.Kind) bool {
	switch k {
	case token.Alternation, token.GroupClose, token.EOF:
		return true
	}
	return false
}

func (p *Parser) parseSequence() (*ast.Node, error) {
	start := p.stream.Peek(0).Start
	end := start
	var items []*ast.Node
	for !isSequenceStopper(p.stream.Peek(0).Kind) {
		item, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		end = item.End
	}
	if err := p.newNode(); err != nil {
		return nil, err
	}
	return ast.NewSequence(start, end, items), nil
}

// parseQuantified parses one atom, then an optional trailing quantifier.
func (p *Parser) parseQuantified() (*ast.Node, error) {
	tok := p.stream.Peek(0)
	if tok.Kind == token.Quantifier {
		return nil, newErr(ErrQuantifierNoTarget, tok.Start, "quantifier %q has no preceding atom", tok.Text)
	}
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.stream.Peek(0).Kind != token.Quantifier {
		return atom, nil
	}
	q := p.stream.Consume()
	// q.Quantifier.Lazy/Possessive already reflect the U flag's effect on
	// default laziness (decided by the lexer, which holds the flags).
	mode := ast.Greedy
	if q.Quantifier.Lazy {
		mode = ast.Lazy
	} else if q.Quantifier.Possessive {
		mode = ast.Possessive
	}
	if err := p.newNode(); err != nil {
		return nil, err
	}
	return ast.NewQuantifier(atom.Start, q.End, atom, q.Quantifier.Min, q.Quantifier.Max, mode, q.Text), nil
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	tok := p.stream.Peek(0)
	if tok.Kind != k {
		return tok, newErr(ErrUnexpectedToken, tok.Start, "expected %s, got %s", k, tok.Kind)
	}
	return p.stream.Consume(), nil
}
