package domain

import "strings"

// Literal is a single relational fact over object identifiers. The
// interpreter only emits positive literals; Polarity is kept for the
// goal language and the serialised form.
type Literal struct {
	Polarity bool     `json:"polarity"`
	Rel      Relation `json:"relation"`
	Args     []string `json:"args"`
}

// NewLiteral builds a positive literal.
func NewLiteral(rel Relation, args ...string) Literal {
	return Literal{Polarity: true, Rel: rel, Args: args}
}

// GoalOp labels an internal goal node.
type GoalOp string

const (
	OpAnd GoalOp = "&"
	OpOr  GoalOp = "|"
)

// Goal is a finite, acyclic, immutable AND/OR tree of literals. A leaf
// carries Lit; an internal node carries Op and a non-empty Children
// slice. The mixed representation preserves the quantifier-driven
// structure instead of flattening to a normal form.
type Goal struct {
	Lit      *Literal `json:"literal,omitempty"`
	Op       GoalOp   `json:"op,omitempty"`
	Children []Goal   `json:"children,omitempty"`
}

// Leaf wraps a literal as a goal.
func Leaf(lit Literal) Goal { return Goal{Lit: &lit} }

// Conj builds an AND node. A single child collapses to that child and
// AND children are spliced in, so AND_s AND_o flattens to AND_{s,o}.
func Conj(children []Goal) Goal {
	return combine(OpAnd, children)
}

// Disj builds an OR node. A single child collapses to that child and
// OR children are spliced in, so OR_s OR_o flattens to OR_{s,o}.
func Disj(children []Goal) Goal {
	return combine(OpOr, children)
}

func combine(op GoalOp, children []Goal) Goal {
	flat := make([]Goal, 0, len(children))
	for _, c := range children {
		if c.Lit == nil && c.Op == op {
			flat = append(flat, c.Children...)
			continue
		}
		flat = append(flat, c)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Goal{Op: op, Children: flat}
}

// IsLeaf reports whether the goal is a single literal.
func (g Goal) IsLeaf() bool { return g.Lit != nil }

// IsZero reports whether the goal is the empty value (no interpretation).
func (g Goal) IsZero() bool { return g.Lit == nil && len(g.Children) == 0 }

// String renders the goal in the sum-of-products style used for logging
// and tests: "rel(a,b)" for a positive literal, "-rel(a,b)" for a
// negated one, "(gN & ... & g1)" and "(gN | ... | g1)" for compounds.
// Children are rendered last-first.
func (g Goal) String() string {
	if g.Lit != nil {
		return g.Lit.String()
	}
	parts := make([]string, 0, len(g.Children))
	for i := len(g.Children) - 1; i >= 0; i-- {
		parts = append(parts, g.Children[i].String())
	}
	return "(" + strings.Join(parts, " "+string(g.Op)+" ") + ")"
}

// String renders the literal as "rel(a,b,...)" with a leading "-" when
// the polarity is negative.
func (l Literal) String() string {
	var b strings.Builder
	if !l.Polarity {
		b.WriteByte('-')
	}
	b.WriteString(string(l.Rel))
	b.WriteByte('(')
	b.WriteString(strings.Join(l.Args, ","))
	b.WriteByte(')')
	return b.String()
}
