package sluc

import "fmt"

type checker struct {
	functions map[string]*FunctionDecl
	current   *FunctionDecl
	scope     map[string]Type
	errors    []Diagnostic
}

// Check assigns a static type to every expression in program and returns
// every type error it finds, in source order within each function. It never
// stops early: after an error the offending expression is given TypeInvalid,
// which is compatible with everything, so later unrelated errors are still
// reported without cascades.
func Check(program *Program) []Diagnostic {
	c := &checker{functions: make(map[string]*FunctionDecl, len(program.Functions))}

	// Signatures first so calls may refer to functions declared later,
	// which is what makes mutual recursion check.
	for _, fn := range program.Functions {
		if _, exists := c.functions[fn.Name]; exists {
			c.errorf(fn.Pos(), CodeDuplicateDeclaration, "function %s redeclared", fn.Name)
			continue
		}
		c.functions[fn.Name] = fn
	}

	for _, fn := range program.Functions {
		c.checkFunction(fn)
	}
	return c.errors
}

func (c *checker) checkFunction(fn *FunctionDecl) {
	c.current = fn
	c.scope = make(map[string]Type, len(fn.Params))
	for _, param := range fn.Params {
		c.declare(param.Name, param.Type, param.Pos())
	}
	c.checkStatements(fn.Body)
}

func (c *checker) declare(name string, ty Type, pos Position) {
	if _, exists := c.scope[name]; exists {
		c.errorf(pos, CodeDuplicateDeclaration, "%s redeclared in function %s", name, c.current.Name)
		return
	}
	c.scope[name] = ty
}

func (c *checker) checkStatements(stmts []Statement) {
	for _, stmt := range stmts {
		c.checkStatement(stmt)
	}
}

func (c *checker) checkStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *VarDecl:
		if s.Init != nil {
			valueType := c.checkValue(s.Init)
			if !assignable(s.DeclType, valueType) {
				c.errorf(s.Init.Pos(), CodeIncompatibleAssignment, "cannot initialize %s variable %s with %s value", s.DeclType, s.Name, valueType)
			}
		}
		c.declare(s.Name, s.DeclType, s.Pos())
	case *AssignStmt:
		targetType, ok := c.scope[s.Target.Name]
		if !ok {
			c.errorf(s.Target.Pos(), CodeUndeclaredIdentifier, "undeclared identifier %s", s.Target.Name)
			targetType = TypeInvalid
		}
		s.Target.setType(targetType)
		valueType := c.checkValue(s.Value)
		if !assignable(targetType, valueType) {
			c.errorf(s.Value.Pos(), CodeIncompatibleAssignment, "cannot assign %s value to %s variable %s", valueType, targetType, s.Target.Name)
		}
	case *IfStmt:
		c.checkCondition(s.Condition, "if")
		c.checkStatements(s.Consequent)
		c.checkStatements(s.Alternate)
	case *WhileStmt:
		c.checkCondition(s.Condition, "while")
		c.checkStatements(s.Body)
	case *ReturnStmt:
		c.checkReturn(s)
	case *PrintStmt:
		for _, arg := range s.Args {
			c.checkValue(arg)
		}
	case *ExprStmt:
		c.checkExpr(s.Expr)
	default:
		panic(fmt.Sprintf("sluc: unexpected statement %T", stmt))
	}
}

func (c *checker) checkCondition(cond Expression, keyword string) {
	ty := c.checkValue(cond)
	if ty != TypeBool && ty != TypeInvalid {
		c.errorf(cond.Pos(), CodeNonBooleanCondition, "%s condition must be bool, got %s", keyword, ty)
	}
}

func (c *checker) checkReturn(s *ReturnStmt) {
	want := c.current.ReturnType
	if s.Value == nil {
		if want != TypeVoid {
			c.errorf(s.Pos(), CodeReturnTypeMismatch, "function %s must return a %s value", c.current.Name, want)
		}
		return
	}
	if want == TypeVoid {
		c.checkExpr(s.Value)
		c.errorf(s.Value.Pos(), CodeReturnTypeMismatch, "void function %s cannot return a value", c.current.Name)
		return
	}
	got := c.checkValue(s.Value)
	if !assignable(want, got) {
		c.errorf(s.Value.Pos(), CodeReturnTypeMismatch, "function %s returns %s, got %s", c.current.Name, want, got)
	}
}

// checkValue checks an expression whose result is used as a value.
func (c *checker) checkValue(expr Expression) Type {
	ty := c.checkExpr(expr)
	if ty == TypeVoid {
		c.errorf(expr.Pos(), CodeInvalidOperand, "%s returns no value", describe(expr))
		expr.setType(TypeInvalid)
		return TypeInvalid
	}
	return ty
}

func (c *checker) checkExpr(expr Expression) Type {
	ty := c.inferExpr(expr)
	expr.setType(ty)
	return ty
}

func (c *checker) inferExpr(expr Expression) Type {
	switch e := expr.(type) {
	case *IntegerLiteral:
		return TypeInt
	case *FloatLiteral:
		return TypeFloat
	case *BoolLiteral:
		return TypeBool
	case *StringLiteral:
		return TypeString
	case *Identifier:
		ty, ok := c.scope[e.Name]
		if !ok {
			c.errorf(e.Pos(), CodeUndeclaredIdentifier, "undeclared identifier %s", e.Name)
			return TypeInvalid
		}
		return ty
	case *UnaryExpr:
		return c.inferUnary(e)
	case *BinaryExpr:
		return c.inferBinary(e)
	case *CallExpr:
		return c.inferCall(e)
	default:
		panic(fmt.Sprintf("sluc: unexpected expression %T", expr))
	}
}

func (c *checker) inferUnary(e *UnaryExpr) Type {
	operand := c.checkValue(e.Right)
	switch e.Operator {
	case tokenBang:
		if operand != TypeBool && operand != TypeInvalid {
			c.errorf(e.Right.Pos(), CodeNonBooleanOperand, "operator ! requires bool, got %s", operand)
		}
		return TypeBool
	case tokenMinus:
		switch operand {
		case TypeInt, TypeFloat:
			return operand
		case TypeBool:
			c.errorf(e.Right.Pos(), CodeBooleanInArithmetic, "cannot negate bool value")
		case TypeString:
			c.errorf(e.Right.Pos(), CodeInvalidOperand, "cannot negate string value")
		}
		return TypeInvalid
	default:
		panic(fmt.Sprintf("sluc: unexpected unary operator %s", e.Operator))
	}
}

func (c *checker) inferBinary(e *BinaryExpr) Type {
	left := c.checkValue(e.Left)
	right := c.checkValue(e.Right)

	switch e.Operator {
	case tokenAnd, tokenOr:
		for _, operand := range []struct {
			ty   Type
			expr Expression
		}{{left, e.Left}, {right, e.Right}} {
			if operand.ty != TypeBool && operand.ty != TypeInvalid {
				c.errorf(operand.expr.Pos(), CodeNonBooleanOperand, "operator %s requires bool operands, got %s", e.Operator, operand.ty)
				break
			}
		}
		return TypeBool
	case tokenEQ, tokenNotEQ:
		if left == TypeBool && right == TypeBool {
			return TypeBool
		}
		c.requireNumeric(e, left, right)
		return TypeBool
	case tokenLT, tokenLTE, tokenGT, tokenGTE:
		c.requireNumeric(e, left, right)
		return TypeBool
	case tokenPlus, tokenMinus, tokenAsterisk, tokenSlash, tokenPercent, tokenPower:
		if !c.requireNumeric(e, left, right) {
			return TypeInvalid
		}
		return promote(left, right)
	default:
		panic(fmt.Sprintf("sluc: unexpected binary operator %s", e.Operator))
	}
}

// requireNumeric reports at most one error for a binary expression whose
// operands must both be numeric. It returns false when the result type
// cannot be derived.
func (c *checker) requireNumeric(e *BinaryExpr, left, right Type) bool {
	if left == TypeInvalid || right == TypeInvalid {
		return false
	}
	for _, operand := range []Type{left, right} {
		switch operand {
		case TypeBool:
			c.errorf(e.Pos(), CodeBooleanInArithmetic, "operator %s does not accept bool operands (%s %s %s)", e.Operator, left, e.Operator, right)
			return false
		case TypeString:
			c.errorf(e.Pos(), CodeInvalidOperand, "operator %s does not accept string operands (%s %s %s)", e.Operator, left, e.Operator, right)
			return false
		}
	}
	return true
}

func (c *checker) inferCall(e *CallExpr) Type {
	argTypes := make([]Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = c.checkValue(arg)
	}

	fn, ok := c.functions[e.Name]
	if !ok {
		c.errorf(e.Pos(), CodeUndefinedFunction, "undefined function %s", e.Name)
		return TypeInvalid
	}
	if len(e.Args) != len(fn.Params) {
		c.errorf(e.Pos(), CodeArityMismatch, "function %s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(e.Args))
		return fn.ReturnType
	}
	for i, param := range fn.Params {
		if !assignable(param.Type, argTypes[i]) {
			c.errorf(e.Args[i].Pos(), CodeArgumentTypeMismatch, "argument %d of %s: cannot use %s value as %s parameter %s", i+1, fn.Name, argTypes[i], param.Type, param.Name)
		}
	}
	return fn.ReturnType
}

func (c *checker) errorf(pos Position, code DiagnosticCode, format string, args ...any) {
	c.errors = append(c.errors, Diagnostic{Phase: PhaseType, Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func describe(expr Expression) string {
	if call, ok := expr.(*CallExpr); ok {
		return fmt.Sprintf("function %s", call.Name)
	}
	return "expression"
}
