// Package query implements the boolean query engine: a tokenizer and
// recursive-descent parser producing an expression tree over AND/OR/NOT and
// leaf terms, plus an evaluator that resolves the tree into a set of object
// identifiers using set algebra against a read-only catalog index.
package query

// Op is a boolean operator in an expression tree.
type Op string

const (
	OpAnd Op = "AND"
	OpOr  Op = "OR"
	OpNot Op = "NOT"
)

// Expr is a node in a parsed query: either a Leaf term or a boolean Node.
// Trees are immutable once built and discarded after evaluation.
type Expr interface {
	isExpr()
}

// Leaf holds a single raw term: a name fragment group, a quoted exact name
// (quotes retained), a #tag reference, or an @collection reference.
type Leaf struct {
	Term string
}

// Node combines child expressions under a boolean operator. AND and OR carry
// two or more children; NOT carries one (unary negation) or two (binary
// exclusion).
type Node struct {
	Op       Op
	Children []Expr
}

func (Leaf) isExpr() {}
func (Node) isExpr() {}
