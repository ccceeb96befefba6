package sluc

// Type is the static type of an expression, variable or function result.
type Type int

const (
	// TypeInvalid marks an expression whose type could not be determined.
	// The checker uses it to avoid reporting follow-on errors; it never
	// survives on a program that checked cleanly.
	TypeInvalid Type = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeString
	TypeVoid
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeVoid:
		return "void"
	default:
		return "invalid"
	}
}

func (t Type) isNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

func typeFromToken(tt TokenType) (Type, bool) {
	switch tt {
	case tokenIntT:
		return TypeInt, true
	case tokenFloatT:
		return TypeFloat, true
	case tokenBool:
		return TypeBool, true
	case tokenVoid:
		return TypeVoid, true
	}
	return TypeInvalid, false
}

// assignable reports whether a value of type src may be stored in a slot of
// type dst. Int widens to Float and Float truncates to Int; Bool converts to
// nothing and nothing converts to Bool.
func assignable(dst, src Type) bool {
	if dst == TypeInvalid || src == TypeInvalid {
		return true
	}
	switch dst {
	case TypeInt, TypeFloat:
		return src.isNumeric()
	case TypeBool:
		return src == TypeBool
	default:
		return false
	}
}

// promote returns the result type of mixing two numeric operands.
func promote(left, right Type) Type {
	if left == TypeFloat || right == TypeFloat {
		return TypeFloat
	}
	return TypeInt
}
