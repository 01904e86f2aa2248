package query

import "fmt"

// evaluate resolves an expression tree into a set of object identifiers.
// Leaves go through the term evaluator; internal nodes combine their
// children with set algebra. An error here means the parser/evaluator
// contract was violated, never bad user input.
func evaluate(idx Index, expr Expr) (map[string]struct{}, error) {
	switch node := expr.(type) {
	case Leaf:
		return resolveTerm(idx, node.Term), nil
	case Node:
		return evaluateNode(idx, node)
	default:
		return nil, fmt.Errorf("query: unknown expression type %T", expr)
	}
}

func evaluateNode(idx Index, node Node) (map[string]struct{}, error) {
	if len(node.Children) == 0 {
		return nil, fmt.Errorf("query: operator %s without operands", node.Op)
	}

	sets := make([]map[string]struct{}, 0, len(node.Children))
	for _, child := range node.Children {
		set, err := evaluate(idx, child)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	switch node.Op {
	case OpAnd:
		return intersect(sets), nil
	case OpOr:
		return union(sets), nil
	case OpNot:
		if len(sets) == 1 {
			// Unary form: the query literally started with NOT.
			return difference(idx.AllIDs(), sets[0]), nil
		}
		// Binary form: exclude the right side's matches from the left's.
		return difference(sets[0], union(sets[1:])), nil
	default:
		return nil, fmt.Errorf("query: unknown operator %q", node.Op)
	}
}

func intersect(sets []map[string]struct{}) map[string]struct{} {
	smallest := sets[0]
	for _, set := range sets[1:] {
		if len(set) < len(smallest) {
			smallest = set
		}
	}

	out := make(map[string]struct{}, len(smallest))
	for id := range smallest {
		present := true
		for _, set := range sets {
			if _, ok := set[id]; !ok {
				present = false
				break
			}
		}
		if present {
			out[id] = struct{}{}
		}
	}
	return out
}

func union(sets []map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, set := range sets {
		for id := range set {
			out[id] = struct{}{}
		}
	}
	return out
}

func difference(base, minus map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(base))
	for id := range base {
		if _, ok := minus[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}
