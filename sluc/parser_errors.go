package sluc

import (
	"fmt"
	"strings"
)

func (p *parser) errorExpected(tok Token, expected string) {
	p.addError(tok.Pos, CodeUnexpectedToken, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok.Type)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addError(tok.Pos, CodeUnexpectedToken, fmt.Sprintf("unexpected token %s", tokenLabel(tok.Type)))
}

func (p *parser) addError(pos Position, code DiagnosticCode, msg string) {
	if n := len(p.errors); n > 0 {
		last := p.errors[n-1]
		if last.Pos == pos && last.Message == msg {
			return
		}
	}
	p.errors = append(p.errors, Diagnostic{Phase: PhaseParse, Code: code, Pos: pos, Message: msg})
}

func tokenLabel(tt TokenType) string {
	switch tt {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenIdent:
		return "identifier"
	case tokenInt:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenString:
		return "string"
	case tokenIntT:
		return "'int'"
	case tokenFloatT:
		return "'float'"
	}
	if isIdentifierStart(rune(tt[0])) {
		return fmt.Sprintf("'%s'", strings.ToLower(string(tt)))
	}
	return fmt.Sprintf("'%s'", string(tt))
}
