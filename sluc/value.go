package sluc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindVoid ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
)

// Value is a runtime value. The zero Value is the result of a call to a
// void function.
type Value struct {
	kind ValueKind
	data any
}

func NewVoid() Value           { return Value{kind: KindVoid} }
func NewInt(i int64) Value     { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value { return Value{kind: KindFloat, data: f} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }

func (k ValueKind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsVoid() bool { return v.kind == KindVoid }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

// Int returns the value as an integer; floats are truncated toward zero.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.data.(int64)
	case KindFloat:
		return truncate(v.data.(float64))
	default:
		return 0
	}
}

func (v Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.data.(float64)
	case KindInt:
		return float64(v.data.(int64))
	default:
		return 0
	}
}

// String renders the value the way print emits it.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return formatFloat(v.data.(float64))
	default:
		return ""
	}
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindVoid:
		return true
	case KindInt:
		return v.Int() == other.Int()
	case KindFloat:
		return v.Float() == other.Float()
	case KindBool:
		return v.Bool() == other.Bool()
	case KindString:
		return v.String() == other.String()
	default:
		return false
	}
}

// coerce converts v to the representation of a slot of type ty.
func coerce(v Value, ty Type) Value {
	switch ty {
	case TypeInt:
		if v.kind == KindFloat {
			return NewInt(v.Int())
		}
	case TypeFloat:
		if v.kind == KindInt {
			return NewFloat(v.Float())
		}
	}
	return v
}

func zeroValue(ty Type) Value {
	switch ty {
	case TypeInt:
		return NewInt(0)
	case TypeFloat:
		return NewFloat(0)
	case TypeBool:
		return NewBool(false)
	default:
		return NewVoid()
	}
}

// truncate converts toward zero, saturating at the int64 range. NaN becomes 0.
func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

func formatFloat(f float64) string {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(text, ".e") {
		return text
	}
	return text + ".0"
}
