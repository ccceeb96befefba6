package sluc

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

// Tokenize scans the whole input eagerly. The lexer never fails: malformed
// input becomes ILLEGAL tokens and scanning resumes at the next boundary.
// The result always ends with exactly one EOF token.
func Tokenize(input string) []Token {
	l := newLexer(input)
	tokens := make([]Token, 0, len(input)/3+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens
		}
	}
}

// LexErrors returns one diagnostic per illegal token, in stream order.
func LexErrors(tokens []Token) []Diagnostic {
	var diags []Diagnostic
	for _, tok := range tokens {
		if !tok.IsIllegal() {
			continue
		}
		diags = append(diags, Diagnostic{Phase: PhaseLex, Code: tok.Err, Pos: tok.Pos, Message: lexMessage(tok)})
	}
	return diags
}

func lexMessage(tok Token) string {
	switch tok.Err {
	case CodeUnterminatedString:
		return "unterminated string literal " + tok.Literal
	case CodeMalformedNumber:
		return "malformed number " + strconv.Quote(tok.Literal)
	case CodeInvalidIdentifierStart:
		return "identifier cannot start with a digit: " + strconv.Quote(tok.Literal)
	default:
		return "unknown character " + strconv.Quote(tok.Literal)
	}
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	if l.column == 0 {
		l.column = 1
	}
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		if l.width > 0 {
			l.advancePosition()
		}
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.advancePosition()
	l.ch = r
}

// advancePosition moves past the current rune. A newline ends its line, so
// the rune after it starts the next one.
func (l *lexer) advancePosition() {
	if l.ch == '\n' {
		l.line++
		l.column = 1
		return
	}
	l.column++
}

func (l *lexer) atEOF() bool {
	return l.width == 0 && l.offset >= len(l.input)
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	for i := 0; ; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w := utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) position() Position {
	return Position{Line: l.line, Column: l.column}
}

// NextToken returns the next token. Once the input is exhausted every call
// returns EOF.
func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.position()
	if l.atEOF() {
		return Token{Type: tokenEOF, Pos: pos}
	}

	switch l.ch {
	case '+':
		return l.single(pos, tokenPlus)
	case '-':
		return l.single(pos, tokenMinus)
	case '/':
		return l.single(pos, tokenSlash)
	case '%':
		return l.single(pos, tokenPercent)
	case '(':
		return l.single(pos, tokenLParen)
	case ')':
		return l.single(pos, tokenRParen)
	case '{':
		return l.single(pos, tokenLBrace)
	case '}':
		return l.single(pos, tokenRBrace)
	case '[':
		return l.single(pos, tokenLBracket)
	case ']':
		return l.single(pos, tokenRBracket)
	case ',':
		return l.single(pos, tokenComma)
	case ';':
		return l.single(pos, tokenSemicolon)
	case '*':
		if l.peekRune() == '*' {
			return l.pair(pos, tokenPower)
		}
		return l.single(pos, tokenAsterisk)
	case '!':
		if l.peekRune() == '=' {
			return l.pair(pos, tokenNotEQ)
		}
		return l.single(pos, tokenBang)
	case '=':
		if l.peekRune() == '=' {
			return l.pair(pos, tokenEQ)
		}
		return l.single(pos, tokenAssign)
	case '<':
		switch l.peekRune() {
		case '=':
			return l.pair(pos, tokenLTE)
		case '<':
			return l.pair(pos, tokenShl)
		}
		return l.single(pos, tokenLT)
	case '>':
		switch l.peekRune() {
		case '=':
			return l.pair(pos, tokenGTE)
		case '>':
			return l.pair(pos, tokenShr)
		}
		return l.single(pos, tokenGT)
	case '&':
		if l.peekRune() == '&' {
			return l.pair(pos, tokenAnd)
		}
	case '|':
		if l.peekRune() == '|' {
			return l.pair(pos, tokenOr)
		}
	case '"':
		return l.readString(pos)
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			return Token{Type: lookupIdent(literal), Literal: literal, Pos: pos}
		case isDigit(l.ch):
			return l.readNumber(pos)
		}
	}

	literal := string(l.ch)
	l.readRune()
	return Token{Type: tokenIllegal, Literal: literal, Pos: pos, Err: CodeUnknownCharacter}
}

func (l *lexer) single(pos Position, tt TokenType) Token {
	l.readRune()
	return Token{Type: tt, Literal: string(tt), Pos: pos}
}

func (l *lexer) pair(pos Position, tt TokenType) Token {
	l.readRune()
	l.readRune()
	return Token{Type: tt, Literal: string(tt), Pos: pos}
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ', l.ch == '\t', l.ch == '\r', l.ch == '\n', l.ch == '\f', l.ch == '\v':
			l.readRune()
		case l.ch == '/' && l.peekRune() == '/':
			l.skipComment()
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readNumber consumes the maximal run of characters that could belong to a
// numeric literal and validates it as a whole, so that forms like 3.4.5,
// 123_ or 4a become a single illegal token instead of several valid ones.
func (l *lexer) readNumber(pos Position) Token {
	start := l.currentOffset()
	for {
		r := l.peekRune()
		switch {
		case isNumberRunRune(r):
			l.readRune()
		case (r == '+' || r == '-') && (l.ch == 'e' || l.ch == 'E') &&
			isDigit(l.peekRuneN(1)) && !strings.ContainsFunc(l.input[start:l.currentOffset()], unicode.IsLetter):
			l.readRune()
		default:
			raw := l.input[start:l.offset]
			l.readRune()
			return classifyNumber(raw, pos)
		}
	}
}

func classifyNumber(raw string, pos Position) Token {
	isFloat, ok := matchNumber(raw)
	if !ok {
		code := CodeMalformedNumber
		if strings.ContainsFunc(raw, func(r rune) bool { return unicode.IsLetter(r) && r != 'e' && r != 'E' }) {
			code = CodeInvalidIdentifierStart
		}
		return Token{Type: tokenIllegal, Literal: raw, Pos: pos, Err: code}
	}

	literal := strings.ReplaceAll(raw, "_", "")
	if isFloat {
		if _, err := strconv.ParseFloat(literal, 64); err != nil {
			return Token{Type: tokenIllegal, Literal: raw, Pos: pos, Err: CodeMalformedNumber}
		}
		return Token{Type: tokenFloat, Literal: literal, Pos: pos}
	}
	if _, err := strconv.ParseInt(literal, 10, 64); err != nil {
		return Token{Type: tokenIllegal, Literal: raw, Pos: pos, Err: CodeMalformedNumber}
	}
	return Token{Type: tokenInt, Literal: literal, Pos: pos}
}

// matchNumber reports whether raw is digits ('.' digits)? ([eE] [+-]? digits)?
// where digits allows single underscores strictly between two digits.
func matchNumber(raw string) (isFloat bool, ok bool) {
	i := 0
	digits := func() bool {
		if i >= len(raw) || !isDigit(rune(raw[i])) {
			return false
		}
		i++
		for i < len(raw) {
			switch {
			case isDigit(rune(raw[i])):
				i++
			case raw[i] == '_' && i+1 < len(raw) && isDigit(rune(raw[i+1])):
				i += 2
			default:
				return true
			}
		}
		return true
	}

	if !digits() {
		return false, false
	}
	if i < len(raw) && raw[i] == '.' {
		i++
		isFloat = true
		if !digits() {
			return isFloat, false
		}
	}
	if i < len(raw) && (raw[i] == 'e' || raw[i] == 'E') {
		i++
		isFloat = true
		if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
			i++
		}
		if !digits() {
			return isFloat, false
		}
	}
	return isFloat, i == len(raw)
}

func (l *lexer) readString(pos Position) Token {
	start := l.currentOffset()
	var sb strings.Builder

	for {
		l.readRune()
		switch {
		case l.atEOF(), l.ch == '\n':
			raw := strings.TrimRight(l.input[start:l.currentOffset()], "\r")
			return Token{Type: tokenIllegal, Literal: raw, Pos: pos, Err: CodeUnterminatedString}
		case l.ch == '"':
			l.readRune()
			return Token{Type: tokenString, Literal: sb.String(), Pos: pos}
		case l.ch == '\\':
			next := l.peekRune()
			switch next {
			case '\n', 0:
				continue
			case '"', '\\':
				sb.WriteRune(next)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteRune('\\')
				sb.WriteRune(next)
			}
			l.readRune()
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || isDigit(r) || r == '_'
}

func isNumberRunRune(r rune) bool {
	return isIdentifierRune(r) || r == '.'
}
