package sluc

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	tokens []Token
	next   int

	curToken  Token
	peekToken Token

	errors  []Diagnostic
	sawMain bool

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

// Parse builds a Program from a token stream. Illegal tokens are skipped
// since the lexer already reports them. Syntax errors are recovered from at
// the next statement boundary so one call reports every independent error.
func Parse(tokens []Token) (*Program, []Diagnostic) {
	p := newParser(tokens)
	program := p.ParseProgram()
	return program, p.errors
}

func newParser(tokens []Token) *parser {
	filtered := make([]Token, 0, len(tokens)+1)
	for _, tok := range tokens {
		if tok.IsIllegal() {
			continue
		}
		filtered = append(filtered, tok)
		if tok.IsEOF() {
			break
		}
	}
	if len(filtered) == 0 || !filtered[len(filtered)-1].IsEOF() {
		eof := Token{Type: tokenEOF, Pos: Position{Line: 1, Column: 1}}
		if len(tokens) > 0 {
			eof.Pos = tokens[len(tokens)-1].Pos
		}
		filtered = append(filtered, eof)
	}

	p := &parser{tokens: filtered}

	p.prefixFns = map[TokenType]prefixParseFn{
		tokenIdent:  p.parseIdentifier,
		tokenInt:    p.parseIntegerLiteral,
		tokenFloat:  p.parseFloatLiteral,
		tokenString: p.parseStringLiteral,
		tokenTrue:   p.parseBooleanLiteral,
		tokenFalse:  p.parseBooleanLiteral,
		tokenLParen: p.parseGroupedExpression,
		tokenBang:   p.parsePrefixExpression,
		tokenMinus:  p.parsePrefixExpression,
	}

	p.infixFns = make(map[TokenType]infixParseFn)
	for tt := range precedences {
		p.infixFns[tt] = p.parseInfixExpression
	}

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	if p.next < len(p.tokens) {
		p.peekToken = p.tokens[p.next]
		p.next++
		return
	}
	p.peekToken = p.tokens[len(p.tokens)-1]
}

// tokenAfterPeek returns the token following peekToken.
func (p *parser) tokenAfterPeek() Token {
	if p.next < len(p.tokens) {
		return p.tokens[p.next]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) ParseProgram() *Program {
	program := &Program{}

	for p.curToken.Type != tokenEOF {
		fn := p.parseFunction()
		if fn == nil {
			p.synchronizeTopLevel()
			continue
		}
		program.Functions = append(program.Functions, fn)
		p.nextToken()
	}

	p.checkMain(program)
	return program
}

func (p *parser) checkMain(program *Program) {
	main, ok := program.Function("main")
	if !ok {
		// a main whose header failed to parse has already been reported
		if !p.sawMain {
			p.addError(p.curToken.Pos, CodeMissingMainFunction, "program has no main function")
		}
		return
	}
	if len(main.Params) > 0 {
		p.addError(main.Pos(), CodeInvalidMainSignature, "main must not take parameters")
	}
}

func (p *parser) atFunctionStart() bool {
	if _, ok := typeFromToken(p.curToken.Type); !ok {
		return false
	}
	if p.peekToken.Type != tokenIdent && p.peekToken.Type != tokenMain {
		return false
	}
	return p.tokenAfterPeek().Type == tokenLParen
}

func (p *parser) synchronizeTopLevel() {
	for {
		p.nextToken()
		if p.curToken.Type == tokenEOF || p.atFunctionStart() {
			return
		}
	}
}

// synchronize skips the rest of a broken statement. It stops after the
// next ';' or on the '}' that closes the enclosing block; braces opened
// inside the broken statement are skipped as a unit.
func (p *parser) synchronize() {
	depth := 0
	for p.curToken.Type != tokenEOF {
		switch p.curToken.Type {
		case tokenSemicolon:
			if depth == 0 {
				p.nextToken()
				return
			}
		case tokenLBrace:
			depth++
		case tokenRBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}

func (p *parser) parseFunction() *FunctionDecl {
	pos := p.curToken.Pos
	returnType, ok := typeFromToken(p.curToken.Type)
	if !ok {
		p.errorExpected(p.curToken, "function declaration")
		return nil
	}
	if p.peekToken.Type != tokenIdent && p.peekToken.Type != tokenMain {
		p.errorExpected(p.peekToken, "function name")
		return nil
	}
	p.nextToken()
	name := p.curToken.Literal
	if name == "main" {
		p.sawMain = true
	}

	if !p.expectPeek(tokenLParen) {
		return nil
	}
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	if !p.expectPeek(tokenLBrace) {
		return nil
	}

	body, _ := p.parseBlock()
	return &FunctionDecl{Name: name, Params: params, ReturnType: returnType, Body: body, position: pos}
}

func (p *parser) parseParams() ([]Param, bool) {
	params := []Param{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return params, true
	}

	for {
		p.nextToken()
		ty, ok := typeFromToken(p.curToken.Type)
		if !ok || ty == TypeVoid {
			p.errorExpected(p.curToken, "parameter type")
			return nil, false
		}
		pos := p.curToken.Pos
		if !p.expectPeek(tokenIdent) {
			return nil, false
		}
		params = append(params, Param{Name: p.curToken.Literal, Type: ty, position: pos})

		if p.peekToken.Type == tokenComma {
			p.nextToken()
			continue
		}
		if !p.expectPeek(tokenRParen) {
			return nil, false
		}
		return params, true
	}
}

// parseBlock parses statements after the current '{' and leaves the parser
// on the matching '}'. It reports false when the input ends first.
func (p *parser) parseBlock() ([]Statement, bool) {
	stmts := []Statement{}
	p.nextToken()
	for p.curToken.Type != tokenRBrace {
		if p.curToken.Type == tokenEOF {
			p.errorExpected(p.curToken, "'}'")
			return stmts, false
		}
		parsed, ok := p.parseStatement()
		if !ok {
			p.synchronize()
			continue
		}
		stmts = append(stmts, parsed...)
		p.nextToken()
	}
	return stmts, true
}
