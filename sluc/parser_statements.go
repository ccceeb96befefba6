package sluc

import "fmt"

// parseStatement parses one statement starting at curToken and leaves the
// parser on its last token. A declaration of several names yields several
// statements; an empty statement yields none.
func (p *parser) parseStatement() ([]Statement, bool) {
	switch p.curToken.Type {
	case tokenSemicolon:
		return nil, true
	case tokenIntT, tokenFloatT, tokenBool:
		return p.parseVarDecl()
	case tokenVoid, tokenChar:
		p.addError(p.curToken.Pos, CodeUnexpectedToken, fmt.Sprintf("%s is not a variable type", tokenLabel(p.curToken.Type)))
		return nil, false
	case tokenLBrace:
		// a nested block shares the function's frame, so its statements
		// are spliced into the enclosing list
		return p.parseBlock()
	case tokenIf:
		return p.single(p.parseIfStatement())
	case tokenWhile:
		return p.single(p.parseWhileStatement())
	case tokenReturn:
		return p.single(p.parseReturnStatement())
	case tokenPrint:
		return p.single(p.parsePrintStatement())
	case tokenIdent:
		if p.peekToken.Type == tokenAssign {
			return p.single(p.parseAssignStatement())
		}
		return p.single(p.parseExpressionStatement())
	default:
		return p.single(p.parseExpressionStatement())
	}
}

func (p *parser) single(stmt Statement) ([]Statement, bool) {
	if stmt == nil {
		return nil, false
	}
	return []Statement{stmt}, true
}

func (p *parser) parseVarDecl() ([]Statement, bool) {
	declType, _ := typeFromToken(p.curToken.Type)
	var decls []Statement
	for {
		if !p.expectPeek(tokenIdent) {
			return nil, false
		}
		decl := &VarDecl{Name: p.curToken.Literal, DeclType: declType, position: p.curToken.Pos}
		if p.peekToken.Type == tokenAssign {
			p.nextToken()
			p.nextToken()
			decl.Init = p.parseExpression(lowestPrec)
			if decl.Init == nil {
				return nil, false
			}
		}
		decls = append(decls, decl)

		if p.peekToken.Type == tokenComma {
			p.nextToken()
			continue
		}
		if !p.expectPeek(tokenSemicolon) {
			return nil, false
		}
		return decls, true
	}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	condition, ok := p.parseCondition()
	if !ok {
		return nil
	}

	p.nextToken()
	consequent, ok := p.parseBody()
	if !ok {
		return nil
	}

	stmt := &IfStmt{Condition: condition, Consequent: consequent, position: pos}
	if p.peekToken.Type == tokenElse {
		p.nextToken()
		p.nextToken()
		alternate, ok := p.parseBody()
		if !ok {
			return nil
		}
		stmt.Alternate = alternate
	}
	return stmt
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	condition, ok := p.parseCondition()
	if !ok {
		return nil
	}

	p.nextToken()
	body, ok := p.parseBody()
	if !ok {
		return nil
	}
	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

// parseCondition parses the parenthesized condition following if/while.
func (p *parser) parseCondition() (Expression, bool) {
	if !p.expectPeek(tokenLParen) {
		return nil, false
	}
	p.nextToken()
	condition := p.parseExpression(lowestPrec)
	if condition == nil {
		return nil, false
	}
	if !p.expectPeek(tokenRParen) {
		return nil, false
	}
	return condition, true
}

// parseBody parses an if/while body: a braced block or a single statement.
func (p *parser) parseBody() ([]Statement, bool) {
	if p.curToken.Type == tokenLBrace {
		return p.parseBlock()
	}
	stmts, ok := p.parseStatement()
	if !ok {
		return nil, false
	}
	if stmts == nil {
		stmts = []Statement{}
	}
	return stmts, true
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	if p.peekToken.Type == tokenSemicolon {
		p.nextToken()
		return &ReturnStmt{position: pos}
	}

	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) parsePrintStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenLParen) {
		return nil
	}
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &PrintStmt{Args: args, position: pos}
}

func (p *parser) parseAssignStatement() Statement {
	target := &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}
	p.nextToken()
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &AssignStmt{Target: target, Value: value, position: target.Pos()}
}

func (p *parser) parseExpressionStatement() Statement {
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenSemicolon) {
		return nil
	}
	return &ExprStmt{Expr: expr, position: expr.Pos()}
}
