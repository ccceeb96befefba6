package sluc

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenInt    TokenType = "INT"
	tokenFloat  TokenType = "FLOAT"
	tokenString TokenType = "STRING"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenBang     TokenType = "!"
	tokenAsterisk TokenType = "*"
	tokenPower    TokenType = "**"
	tokenSlash    TokenType = "/"
	tokenPercent  TokenType = "%"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"
	tokenLTE      TokenType = "<="
	tokenGTE      TokenType = ">="
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="
	tokenAnd      TokenType = "&&"
	tokenOr       TokenType = "||"
	tokenShl      TokenType = "<<"
	tokenShr      TokenType = ">>"

	tokenComma     TokenType = ","
	tokenSemicolon TokenType = ";"
	tokenLParen    TokenType = "("
	tokenRParen    TokenType = ")"
	tokenLBrace    TokenType = "{"
	tokenRBrace    TokenType = "}"
	tokenLBracket  TokenType = "["
	tokenRBracket  TokenType = "]"

	tokenBool   TokenType = "BOOL"
	tokenChar   TokenType = "CHAR"
	tokenElse   TokenType = "ELSE"
	tokenFalse  TokenType = "FALSE"
	tokenFloatT TokenType = "FLOAT_TYPE"
	tokenIf     TokenType = "IF"
	tokenIntT   TokenType = "INT_TYPE"
	tokenMain   TokenType = "MAIN"
	tokenPrint  TokenType = "PRINT"
	tokenReturn TokenType = "RETURN"
	tokenTrue   TokenType = "TRUE"
	tokenVoid   TokenType = "VOID"
	tokenWhile  TokenType = "WHILE"
)

// Token captures lexical information for the parser.
//
// Literal holds the operator or identifier text, the numeric text with
// digit separators removed, the escape-resolved body of a string, or the
// raw offending text of an illegal token. Err is only set on illegal
// tokens.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
	Err     DiagnosticCode
}

// Position identifies a line and column in the source text. Both are
// 1-based.
type Position struct {
	Line   int
	Column int
}

// IsIllegal reports whether the lexer rejected the token.
func (t Token) IsIllegal() bool {
	return t.Type == tokenIllegal
}

// IsEOF reports whether the token terminates the stream.
func (t Token) IsEOF() bool {
	return t.Type == tokenEOF
}

var keywords = map[string]TokenType{
	"bool":   tokenBool,
	"char":   tokenChar,
	"else":   tokenElse,
	"false":  tokenFalse,
	"float":  tokenFloatT,
	"if":     tokenIf,
	"int":    tokenIntT,
	"main":   tokenMain,
	"print":  tokenPrint,
	"return": tokenReturn,
	"true":   tokenTrue,
	"void":   tokenVoid,
	"while":  tokenWhile,
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}

// Keywords returns the reserved words of the language in sorted order.
func Keywords() []string {
	return []string{"bool", "char", "else", "false", "float", "if", "int", "main", "print", "return", "true", "void", "while"}
}
