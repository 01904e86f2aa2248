package query

import "strings"

// Parse turns a raw query string into an expression tree. Precedence is the
// conventional NOT > AND > OR, with parentheses grouping. This deliberately
// replaces the legacy first-operator-wins string splitting, which gave OR
// the tightest binding; TestParsePrecedence pins the corrected grouping.
//
// Parse never fails. A missing operand becomes an empty leaf, an unclosed
// parenthesis is tolerated, and input the grammar cannot account for
// degrades to a single leaf holding the whole query, so evaluation turns
// into a plain name search.
func Parse(input string) Expr {
	trimmed := strings.TrimSpace(input)
	p := &parser{toks: tokenize(trimmed)}
	expr := p.parseOr()
	if !p.done() {
		// Stray tokens (e.g. an unmatched closing parenthesis) mean the
		// grammar lost part of the input. Best effort: search the literal
		// string rather than silently dropping the tail.
		return Leaf{Term: trimmed}
	}
	return expr
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() (token, bool) {
	if p.done() {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

func (p *parser) accept(kind tokenKind) bool {
	if tok, ok := p.peek(); ok && tok.kind == kind {
		p.pos++
		return true
	}
	return false
}

// orExpr := andExpr ( "OR" andExpr )*
func (p *parser) parseOr() Expr {
	left := p.parseAnd()
	if tok, ok := p.peek(); !ok || tok.kind != tokenOr {
		return left
	}

	children := []Expr{left}
	for p.accept(tokenOr) {
		children = append(children, p.parseAnd())
	}
	return Node{Op: OpOr, Children: children}
}

// andExpr := notExpr ( "AND" notExpr )*
func (p *parser) parseAnd() Expr {
	left := p.parseNot()
	if tok, ok := p.peek(); !ok || tok.kind != tokenAnd {
		return left
	}

	children := []Expr{left}
	for p.accept(tokenAnd) {
		children = append(children, p.parseNot())
	}
	return Node{Op: OpAnd, Children: children}
}

// notExpr := "NOT" primary | primary ( "NOT" primary )*
//
// A leading NOT is unary negation against the identifier universe. An infix
// NOT is the exclusion form: a NOT b keeps a's matches that b does not
// match. Chains associate left, so a NOT b NOT c == (a NOT b) NOT c.
func (p *parser) parseNot() Expr {
	if p.accept(tokenNot) {
		return Node{Op: OpNot, Children: []Expr{p.parsePrimary()}}
	}

	left := p.parsePrimary()
	for p.accept(tokenNot) {
		right := p.parsePrimary()
		left = Node{Op: OpNot, Children: []Expr{left, right}}
	}
	return left
}

// primary := "(" orExpr ")" | quoted | word+
func (p *parser) parsePrimary() Expr {
	tok, ok := p.peek()
	if !ok {
		return Leaf{}
	}

	switch tok.kind {
	case tokenLParen:
		p.next()
		inner := p.parseOr()
		p.accept(tokenRParen)
		return inner
	case tokenQuoted:
		p.next()
		return Leaf{Term: tok.text}
	case tokenTerm:
		// Adjacent bare words form one name term; every fragment must
		// match, which is distinct from the boolean AND between terms.
		parts := []string{p.next().text}
		for {
			tok, ok := p.peek()
			if !ok || tok.kind != tokenTerm {
				break
			}
			parts = append(parts, p.next().text)
		}
		return Leaf{Term: strings.Join(parts, " ")}
	default:
		// An operator or closing parenthesis where an operand belongs:
		// treat the operand as empty rather than rejecting the query.
		return Leaf{}
	}
}
