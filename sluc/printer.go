package sluc

import (
	"strconv"
	"strings"
)

const indentUnit = "    "

// Format renders program as canonical source. Comments are not part of the
// tree and are dropped. Parentheses are emitted only where precedence or
// associativity requires them, so the output parses back to the same tree.
func Format(program *Program) string {
	var pr printer
	for i, fn := range program.Functions {
		if i > 0 {
			pr.b.WriteString("\n")
		}
		pr.function(fn)
	}
	return pr.b.String()
}

func (p *Program) String() string {
	return Format(p)
}

type printer struct {
	b     strings.Builder
	depth int
}

func (pr *printer) line(text string) {
	pr.b.WriteString(strings.Repeat(indentUnit, pr.depth))
	pr.b.WriteString(text)
	pr.b.WriteString("\n")
}

func (pr *printer) function(fn *FunctionDecl) {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.Type.String() + " " + param.Name
	}
	pr.line(fn.ReturnType.String() + " " + fn.Name + "(" + strings.Join(params, ", ") + ") {")
	pr.block(fn.Body)
	pr.line("}")
}

func (pr *printer) block(stmts []Statement) {
	pr.depth++
	for _, stmt := range stmts {
		pr.statement(stmt)
	}
	pr.depth--
}

func (pr *printer) statement(stmt Statement) {
	switch s := stmt.(type) {
	case *VarDecl:
		text := s.DeclType.String() + " " + s.Name
		if s.Init != nil {
			text += " = " + formatExpr(s.Init)
		}
		pr.line(text + ";")
	case *AssignStmt:
		pr.line(s.Target.Name + " = " + formatExpr(s.Value) + ";")
	case *IfStmt:
		pr.ifStatement(s, "")
	case *WhileStmt:
		pr.line("while (" + formatExpr(s.Condition) + ") {")
		pr.block(s.Body)
		pr.line("}")
	case *ReturnStmt:
		if s.Value == nil {
			pr.line("return;")
			return
		}
		pr.line("return " + formatExpr(s.Value) + ";")
	case *PrintStmt:
		pr.line("print(" + formatArgs(s.Args) + ");")
	case *ExprStmt:
		pr.line(formatExpr(s.Expr) + ";")
	}
}

// ifStatement prints an else branch holding a single if as "else if".
func (pr *printer) ifStatement(s *IfStmt, prefix string) {
	pr.line(prefix + "if (" + formatExpr(s.Condition) + ") {")
	pr.block(s.Consequent)
	if s.Alternate == nil {
		pr.line("}")
		return
	}
	if len(s.Alternate) == 1 {
		if nested, ok := s.Alternate[0].(*IfStmt); ok {
			pr.ifStatement(nested, "} else ")
			return
		}
	}
	pr.line("} else {")
	pr.block(s.Alternate)
	pr.line("}")
}

func formatArgs(args []Expression) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatExpr(arg)
	}
	return strings.Join(parts, ", ")
}

func formatExpr(expr Expression) string {
	switch e := expr.(type) {
	case *Identifier:
		return e.Name
	case *IntegerLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *FloatLiteral:
		if e.Raw != "" {
			return e.Raw
		}
		return formatFloat(e.Value)
	case *StringLiteral:
		return quoteString(e.Value)
	case *BoolLiteral:
		return strconv.FormatBool(e.Value)
	case *CallExpr:
		return e.Name + "(" + formatArgs(e.Args) + ")"
	case *UnaryExpr:
		operand := formatExpr(e.Right)
		if exprPrecedence(e.Right) <= precPrefix {
			operand = "(" + operand + ")"
		}
		return string(e.Operator) + operand
	case *BinaryExpr:
		prec := precedences[e.Operator]
		left := formatExpr(e.Left)
		right := formatExpr(e.Right)
		leftPrec := exprPrecedence(e.Left)
		rightPrec := exprPrecedence(e.Right)
		if leftPrec < prec || (leftPrec == prec && rightAssociative[e.Operator]) {
			left = "(" + left + ")"
		}
		if rightPrec < prec || (rightPrec == prec && !rightAssociative[e.Operator]) {
			right = "(" + right + ")"
		}
		return left + " " + string(e.Operator) + " " + right
	default:
		return ""
	}
}

// exprPrecedence reports how tightly expr binds when printed bare.
func exprPrecedence(expr Expression) int {
	switch e := expr.(type) {
	case *BinaryExpr:
		return precedences[e.Operator]
	case *UnaryExpr:
		return precPrefix
	default:
		return precPower + 1
	}
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
