package ast

// ChildNodes returns n's structural children in traversal order, regardless
// of which Kind-specific field they live in. This is the one place that
// knows each Kind's shape; every analyzer in regexlint walks the AST
// through this method (or Walk/Fold below) instead of re-deriving it,
// satisfying spec.md §4.2's "visitor dispatch... contract by which every
// analyzer consumes the AST" and the §9 redesign note that collapses many
// visitor classes into one traversal skeleton.
//
// Order matches spec.md §5 Ordering: Sequence left-to-right, Alternation
// branch order, Group's single child, Conditional as (condition, yes, no).
func (n *Node) ChildNodes() []*Node {
	switch n.Kind {
	case KindRegex, KindGroup, KindQuantifier:
		if n.Child == nil {
			return nil
		}
		return []*Node{n.Child}
	case KindSequence, KindAlternation, KindCharClass:
		return n.Children
	case KindConditional:
		out := make([]*Node, 0, 3)
		if n.Condition != nil {
			out = append(out, n.Condition)
		}
		if n.Yes != nil {
			out = append(out, n.Yes)
		}
		if n.No != nil {
			out = append(out, n.No)
		}
		return out
	default:
		return nil
	}
}

// Visitor parameterizes a Walk. Enter is called pre-order; returning false
// skips n's children (but Leave still runs for n, if set). Leave is called
// post-order for every node Enter did not skip.
type Visitor struct {
	Enter func(n *Node) bool
	Leave func(n *Node)
}

// Walk traverses n and its descendants pre-order, invoking v's callbacks.
// A nil n is a no-op.
func Walk(n *Node, v *Visitor) {
	if n == nil {
		return
	}
	descend := true
	if v.Enter != nil {
		descend = v.Enter(n)
	}
	if descend {
		for _, c := range n.ChildNodes() {
			Walk(c, v)
		}
	}
	if v.Leave != nil {
		v.Leave(n)
	}
}

// Fold performs a post-order reduction over n, combining each node's
// already-folded children via combine. leaf is applied to nodes with no
// structural children (combine is called with an empty slice for those).
//
// Fold is the "visitor dispatch" primitive analyzers that produce a value
// (rather than just side effects, as Walk supports) build on: e.g.
// complexity scoring folds a per-node weight function over the tree.
func Fold[T any](n *Node, leaf func(n *Node) T, combine func(n *Node, children []T) T) T {
	kids := n.ChildNodes()
	if len(kids) == 0 {
		return leaf(n)
	}
	vals := make([]T, len(kids))
	for i, k := range kids {
		vals[i] = Fold(k, leaf, combine)
	}
	return combine(n, vals)
}
