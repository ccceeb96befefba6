package sluc

import (
	"fmt"
	"strconv"
)

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	if p.peekToken.Type == tokenLParen {
		return p.parseCallExpression()
	}
	return &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseIntegerLiteral() Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(p.curToken.Pos, CodeMalformedNumber, "invalid integer literal")
		return nil
	}
	return &IntegerLiteral{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseFloatLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken.Pos, CodeMalformedNumber, "invalid float literal")
		return nil
	}
	return &FloatLiteral{Value: value, Raw: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseBooleanLiteral() Expression {
	return &BoolLiteral{Value: p.curToken.Type == tokenTrue, position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: operator, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	if rightAssociative[operator] {
		precedence--
	}
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) parseCallExpression() Expression {
	expr := &CallExpr{Name: p.curToken.Literal, position: p.curToken.Pos}
	p.nextToken()
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	expr.Args = args
	return expr
}

// parseArguments parses a comma separated list after the current '(' and
// leaves the parser on the closing ')'.
func (p *parser) parseArguments() ([]Expression, bool) {
	args := []Expression{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return args, true
	}

	p.nextToken()
	for {
		if p.curToken.Type == tokenComma || p.curToken.Type == tokenRParen {
			p.addError(p.curToken.Pos, CodeMalformedArgumentList, "missing argument")
			return nil, false
		}
		arg := p.parseExpression(lowestPrec)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)

		switch p.peekToken.Type {
		case tokenComma:
			p.nextToken()
			p.nextToken()
		case tokenRParen:
			p.nextToken()
			return args, true
		default:
			p.addError(p.peekToken.Pos, CodeMalformedArgumentList,
				fmt.Sprintf("expected ',' or ')' in argument list, got %s", tokenLabel(p.peekToken.Type)))
			return nil, false
		}
	}
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, tokenLabel(tt))
	return false
}
