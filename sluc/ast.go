package sluc

type Node interface {
	Pos() Position
}

type Statement interface {
	Node
	stmtNode()
}

// Expression is a node that produces a value. Type reports the static type
// assigned by the checker; it is TypeInvalid before checking.
type Expression interface {
	Node
	Type() Type
	exprNode()
	setType(Type)
}

type typed struct {
	ty Type
}

func (t *typed) Type() Type      { return t.ty }
func (t *typed) setType(ty Type) { t.ty = ty }

type Program struct {
	Functions []*FunctionDecl
	source    string
	engine    *Engine
	checked   bool
}

func (p *Program) Pos() Position {
	if len(p.Functions) == 0 {
		return Position{}
	}
	return p.Functions[0].Pos()
}

// Function returns the declaration with the given name.
func (p *Program) Function(name string) (*FunctionDecl, bool) {
	for _, fn := range p.Functions {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType Type
	Body       []Statement
	position   Position
}

func (f *FunctionDecl) Pos() Position { return f.position }

type Param struct {
	Name     string
	Type     Type
	position Position
}

func (p Param) Pos() Position { return p.position }

type Identifier struct {
	typed
	Name     string
	position Position
}

func (e *Identifier) exprNode()     {}
func (e *Identifier) Pos() Position { return e.position }

type IntegerLiteral struct {
	typed
	Value    int64
	position Position
}

func (e *IntegerLiteral) exprNode()     {}
func (e *IntegerLiteral) Pos() Position { return e.position }

type FloatLiteral struct {
	typed
	Value    float64
	Raw      string
	position Position
}

func (e *FloatLiteral) exprNode()     {}
func (e *FloatLiteral) Pos() Position { return e.position }

type StringLiteral struct {
	typed
	Value    string
	position Position
}

func (e *StringLiteral) exprNode()     {}
func (e *StringLiteral) Pos() Position { return e.position }

type BoolLiteral struct {
	typed
	Value    bool
	position Position
}

func (e *BoolLiteral) exprNode()     {}
func (e *BoolLiteral) Pos() Position { return e.position }

type UnaryExpr struct {
	typed
	Operator TokenType
	Right    Expression
	position Position
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.position }

type BinaryExpr struct {
	typed
	Left     Expression
	Operator TokenType
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

type CallExpr struct {
	typed
	Name     string
	Args     []Expression
	position Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }
