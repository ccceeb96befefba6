package sluc

import (
	"fmt"
	"strings"
)

// Phase names the pass that produced a diagnostic.
type Phase int

const (
	PhaseLex Phase = iota
	PhaseParse
	PhaseType
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "lex"
	case PhaseParse:
		return "parse"
	case PhaseType:
		return "type"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DiagnosticCode classifies a diagnostic within its phase.
type DiagnosticCode string

// Lex errors.
const (
	CodeUnterminatedString     DiagnosticCode = "UnterminatedString"
	CodeMalformedNumber        DiagnosticCode = "MalformedNumber"
	CodeInvalidIdentifierStart DiagnosticCode = "InvalidIdentifierStart"
	CodeUnknownCharacter       DiagnosticCode = "UnknownCharacter"
)

// Syntax errors.
const (
	CodeUnexpectedToken       DiagnosticCode = "UnexpectedToken"
	CodeMissingMainFunction   DiagnosticCode = "MissingMainFunction"
	CodeInvalidMainSignature  DiagnosticCode = "InvalidMainSignature"
	CodeMalformedArgumentList DiagnosticCode = "MalformedArgumentList"
)

// Type errors.
const (
	CodeIncompatibleAssignment DiagnosticCode = "IncompatibleAssignment"
	CodeBooleanInArithmetic    DiagnosticCode = "BooleanUsedAsArithmeticOrNumeric"
	CodeNonBooleanCondition    DiagnosticCode = "NonBooleanCondition"
	CodeNonBooleanOperand      DiagnosticCode = "NonBooleanOperand"
	CodeArityMismatch          DiagnosticCode = "ArityMismatch"
	CodeArgumentTypeMismatch   DiagnosticCode = "ArgumentTypeMismatch"
	CodeReturnTypeMismatch     DiagnosticCode = "ReturnTypeMismatch"
	CodeUndeclaredIdentifier   DiagnosticCode = "UndeclaredIdentifier"
	CodeUndefinedFunction      DiagnosticCode = "UndefinedFunction"
	CodeDuplicateDeclaration   DiagnosticCode = "DuplicateDeclaration"
	CodeInvalidOperand         DiagnosticCode = "InvalidOperand"
)

// Diagnostic is a structured error report from the lexer, parser or type
// checker.
type Diagnostic struct {
	Phase   Phase
	Code    DiagnosticCode
	Pos     Position
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s error at %d:%d: %s", d.Phase, d.Pos.Line, d.Pos.Column, d.Message)
}

// CompileError reports every diagnostic collected before evaluation.
type CompileError struct {
	Diagnostics []Diagnostic
	source      string
}

func (e *CompileError) Error() string {
	var b strings.Builder
	for i, diag := range e.Diagnostics {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(diag.String())
		if frame := formatCodeFrame(e.source, diag.Pos); frame != "" {
			b.WriteString("\n")
			b.WriteString(frame)
		}
	}
	return b.String()
}

// Has reports whether any diagnostic carries the given code.
func (e *CompileError) Has(code DiagnosticCode) bool {
	for _, diag := range e.Diagnostics {
		if diag.Code == code {
			return true
		}
	}
	return false
}
