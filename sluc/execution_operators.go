package sluc

import (
	"fmt"
	"math"
)

func (exec *Execution) evalExpression(expr Expression) (Value, error) {
	switch e := expr.(type) {
	case *IntegerLiteral:
		return NewInt(e.Value), nil
	case *FloatLiteral:
		return NewFloat(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *Identifier:
		val, ok := exec.currentFrame().Get(e.Name)
		if !ok {
			return NewVoid(), exec.faultAt(FaultUndefinedIdentifier, e.Pos(), "undefined identifier %s", e.Name)
		}
		return val, nil
	case *UnaryExpr:
		return exec.evalUnaryExpr(e)
	case *BinaryExpr:
		return exec.evalBinaryExpr(e)
	case *CallExpr:
		return exec.evalCallExpr(e)
	default:
		return NewVoid(), fmt.Errorf("sluc: unsupported expression %T", expr)
	}
}

func (exec *Execution) evalUnaryExpr(e *UnaryExpr) (Value, error) {
	right, err := exec.evalExpression(e.Right)
	if err != nil {
		return NewVoid(), err
	}
	switch e.Operator {
	case tokenMinus:
		if right.Kind() == KindFloat {
			return NewFloat(-right.Float()), nil
		}
		return NewInt(-right.Int()), nil
	case tokenBang:
		return NewBool(!right.Bool()), nil
	default:
		return NewVoid(), fmt.Errorf("sluc: unsupported unary operator %s", e.Operator)
	}
}

// evalBinaryExpr evaluates both operands left to right before applying the
// operator; && and || do not short-circuit.
func (exec *Execution) evalBinaryExpr(expr *BinaryExpr) (Value, error) {
	left, err := exec.evalExpression(expr.Left)
	if err != nil {
		return NewVoid(), err
	}
	right, err := exec.evalExpression(expr.Right)
	if err != nil {
		return NewVoid(), err
	}

	switch expr.Operator {
	case tokenAnd:
		return NewBool(left.Bool() && right.Bool()), nil
	case tokenOr:
		return NewBool(left.Bool() || right.Bool()), nil
	case tokenEQ:
		return NewBool(valuesEqual(left, right)), nil
	case tokenNotEQ:
		return NewBool(!valuesEqual(left, right)), nil
	case tokenLT, tokenLTE, tokenGT, tokenGTE:
		return NewBool(compareValues(expr.Operator, left, right)), nil
	}

	if left.Kind() == KindFloat || right.Kind() == KindFloat {
		return exec.floatArithmetic(expr, left.Float(), right.Float())
	}
	return exec.intArithmetic(expr, left.Int(), right.Int())
}

func (exec *Execution) intArithmetic(expr *BinaryExpr, l, r int64) (Value, error) {
	switch expr.Operator {
	case tokenPlus:
		return NewInt(l + r), nil
	case tokenMinus:
		return NewInt(l - r), nil
	case tokenAsterisk:
		return NewInt(l * r), nil
	case tokenSlash:
		if r == 0 {
			return NewVoid(), exec.faultAt(FaultDivisionByZero, expr.Pos(), "division by zero")
		}
		return NewInt(l / r), nil
	case tokenPercent:
		if r == 0 {
			return NewVoid(), exec.faultAt(FaultModuloByZero, expr.Pos(), "modulo by zero")
		}
		return NewInt(l % r), nil
	case tokenPower:
		if r < 0 {
			return NewVoid(), exec.faultAt(FaultNegativeExponent, expr.Pos(), "negative exponent %d in integer power", r)
		}
		return NewInt(intPow(l, r)), nil
	default:
		return NewVoid(), fmt.Errorf("sluc: unsupported binary operator %s", expr.Operator)
	}
}

func (exec *Execution) floatArithmetic(expr *BinaryExpr, l, r float64) (Value, error) {
	switch expr.Operator {
	case tokenPlus:
		return NewFloat(l + r), nil
	case tokenMinus:
		return NewFloat(l - r), nil
	case tokenAsterisk:
		return NewFloat(l * r), nil
	case tokenSlash:
		if r == 0 {
			return NewVoid(), exec.faultAt(FaultDivisionByZero, expr.Pos(), "division by zero")
		}
		return NewFloat(l / r), nil
	case tokenPercent:
		if r == 0 {
			return NewVoid(), exec.faultAt(FaultModuloByZero, expr.Pos(), "modulo by zero")
		}
		return NewFloat(math.Mod(l, r)), nil
	case tokenPower:
		return NewFloat(math.Pow(l, r)), nil
	default:
		return NewVoid(), fmt.Errorf("sluc: unsupported binary operator %s", expr.Operator)
	}
}

// intPow computes base**exp by squaring. Overflow wraps like the other
// integer operators.
func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func valuesEqual(left, right Value) bool {
	if left.Kind() == KindBool || right.Kind() == KindBool {
		return left.Equal(right)
	}
	if left.Kind() == KindFloat || right.Kind() == KindFloat {
		return left.Float() == right.Float()
	}
	return left.Int() == right.Int()
}

// compareValues applies a relational operator. Mixed operands compare as
// floats, so NaN compares false against everything.
func compareValues(op TokenType, left, right Value) bool {
	if left.Kind() == KindFloat || right.Kind() == KindFloat {
		return compareOrdered(op, left.Float(), right.Float())
	}
	return compareOrdered(op, left.Int(), right.Int())
}

func compareOrdered[T int64 | float64](op TokenType, l, r T) bool {
	switch op {
	case tokenLT:
		return l < r
	case tokenLTE:
		return l <= r
	case tokenGT:
		return l > r
	default:
		return l >= r
	}
}
