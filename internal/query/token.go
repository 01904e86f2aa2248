package query

import "strings"

type tokenKind int

const (
	tokenTerm tokenKind = iota
	tokenQuoted
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
}

// tokenize performs a single pass over the query string. Operator keywords
// are only recognized as whole words, so AND inside ANDROID stays a term.
// An unterminated quote swallows the rest of the input.
func tokenize(input string) []token {
	var toks []token
	runes := []rune(input)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			i++
		case r == '(':
			toks = append(toks, token{kind: tokenLParen, text: "("})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokenRParen, text: ")"})
			i++
		case r == '"':
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				j++
			}
			if j < len(runes) {
				toks = append(toks, token{kind: tokenQuoted, text: string(runes[i : j+1])})
				i = j + 1
			} else {
				toks = append(toks, token{kind: tokenQuoted, text: string(runes[i:]) + `"`})
				i = len(runes)
			}
		default:
			j := i
			for j < len(runes) && !isBoundary(runes[j]) {
				j++
			}
			word := string(runes[i:j])
			toks = append(toks, keywordOrTerm(word))
			i = j
		}
	}

	return toks
}

func isBoundary(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' ||
		r == '(' || r == ')' || r == '"'
}

func keywordOrTerm(word string) token {
	switch word {
	case "AND":
		return token{kind: tokenAnd, text: word}
	case "OR":
		return token{kind: tokenOr, text: word}
	case "NOT":
		return token{kind: tokenNot, text: word}
	}
	return token{kind: tokenTerm, text: strings.TrimSpace(word)}
}
