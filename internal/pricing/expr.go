package pricing

import (
	"fmt"
	"math/big"
)

// The custom formula mode evaluates a restricted arithmetic expression over
// the named line items of a quote. The grammar is deliberately small:
//
//	expr    := term (("+" | "-") term)*
//	term    := unary (("*" | "/") unary)*
//	unary   := "-" unary | primary
//	primary := number | identifier | "(" expr ")"
//
// No functions, no assignment, no control flow. This is never a general
// script interpreter; anything outside the grammar is an invalid expression.

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenIdent
	tokenOp
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(expression string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expression) {
		c := expression[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '(' || c == ')':
			tokens = append(tokens, token{kind: tokenOp, text: string(c)})
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(expression) && (expression[i] >= '0' && expression[i] <= '9') {
				i++
			}
			if i < len(expression) && expression[i] == '.' {
				i++
				digits := 0
				for i < len(expression) && (expression[i] >= '0' && expression[i] <= '9') {
					i++
					digits++
				}
				if digits == 0 {
					return nil, fmt.Errorf("malformed number %q", expression[start:i])
				}
			}
			tokens = append(tokens, token{kind: tokenNumber, text: expression[start:i]})
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			start := i
			for i < len(expression) && isIdentChar(expression[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: expression[start:i]})
		default:
			return nil, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	return append(tokens, token{kind: tokenEOF}), nil
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

type exprParser struct {
	tokens []token
	pos    int
	vars   map[string]*big.Rat
}

// evaluateExpression evaluates a custom formula expression against the named
// line-item values. All arithmetic stays in exact rationals.
func evaluateExpression(expression string, vars map[string]*big.Rat) (*big.Rat, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return nil, &FormulaError{Kind: FormulaInvalidExpression, Detail: err.Error()}
	}
	p := &exprParser{tokens: tokens, vars: vars}
	result, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenEOF {
		return nil, &FormulaError{Kind: FormulaInvalidExpression, Detail: fmt.Sprintf("unexpected token %q", p.peek().text)}
	}
	return result, nil
}

func (p *exprParser) peek() token {
	return p.tokens[p.pos]
}

func (p *exprParser) accept(text string) bool {
	if p.tokens[p.pos].kind == tokenOp && p.tokens[p.pos].text == text {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) parseExpr() (*big.Rat, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept("+"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Add(left, right)
		case p.accept("-"):
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Sub(left, right)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (*big.Rat, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept("*"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Mul(left, right)
		case p.accept("/"):
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if right.Sign() == 0 {
				return nil, &FormulaError{Kind: FormulaDivideByZero, Detail: "custom expression divides by zero"}
			}
			left = new(big.Rat).Quo(left, right)
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseUnary() (*big.Rat, error) {
	if p.accept("-") {
		value, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return new(big.Rat).Neg(value), nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (*big.Rat, error) {
	tok := p.peek()
	switch tok.kind {
	case tokenNumber:
		p.pos++
		value, ok := new(big.Rat).SetString(tok.text)
		if !ok {
			return nil, &FormulaError{Kind: FormulaInvalidExpression, Detail: fmt.Sprintf("malformed number %q", tok.text)}
		}
		return value, nil
	case tokenIdent:
		p.pos++
		value, ok := p.vars[tok.text]
		if !ok {
			return nil, &FormulaError{Kind: FormulaInvalidExpression, Detail: fmt.Sprintf("unknown identifier %q", tok.text)}
		}
		return new(big.Rat).Set(value), nil
	case tokenOp:
		if tok.text == "(" {
			p.pos++
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if !p.accept(")") {
				return nil, &FormulaError{Kind: FormulaInvalidExpression, Detail: "missing closing parenthesis"}
			}
			return value, nil
		}
	}
	return nil, &FormulaError{Kind: FormulaInvalidExpression, Detail: fmt.Sprintf("unexpected token %q", tok.text)}
}
