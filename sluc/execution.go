package sluc

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// RunOptions configures a single run of a compiled program.
type RunOptions struct {
	// Stdout receives each printed line as it is produced.
	Stdout io.Writer
}

// Result is the observable outcome of a run.
type Result struct {
	// Output holds one entry per executed print statement.
	Output []string
	// Locals is a snapshot of main's frame, set when main completes.
	Locals map[string]Value
}

type Execution struct {
	program      *Program
	ctx          context.Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
	frames       []*Env
	stdout       io.Writer
	output       []string
}

type callFrame struct {
	Function string
	Pos      Position
}

// Run evaluates main. A program that has not been checked is checked first
// and rejected with a *CompileError if it has type errors. On a runtime
// fault the partial Result is returned together with a *RuntimeError.
func (p *Program) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !p.checked {
		if diags := Check(p); len(diags) > 0 {
			return nil, &CompileError{Diagnostics: diags, source: p.source}
		}
		p.checked = true
	}

	main, ok := p.Function("main")
	if !ok {
		return nil, fmt.Errorf("sluc: program has no main function")
	}

	cfg := defaultConfig()
	if p.engine != nil {
		cfg = p.engine.config
	}

	exec := &Execution{
		program:      p,
		ctx:          ctx,
		quota:        cfg.StepQuota,
		recursionCap: cfg.RecursionLimit,
		callStack:    make([]callFrame, 0, 8),
		frames:       make([]*Env, 0, 8),
		stdout:       opts.Stdout,
	}

	result := &Result{}
	env := newEnv()
	_, err := exec.invoke(main, env, nil, main.Pos())
	result.Output = exec.output
	if err != nil {
		return result, err
	}
	result.Locals = env.Snapshot()
	return result, nil
}

func (exec *Execution) currentFrame() *Env {
	return exec.frames[len(exec.frames)-1]
}

func (exec *Execution) evalStatements(stmts []Statement) (Value, bool, error) {
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return NewVoid(), false, err
		}
		val, returned, err := exec.evalStatement(stmt)
		if err != nil {
			return NewVoid(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewVoid(), false, nil
}

func (exec *Execution) evalStatement(stmt Statement) (Value, bool, error) {
	env := exec.currentFrame()
	switch s := stmt.(type) {
	case *VarDecl:
		val := zeroValue(s.DeclType)
		if s.Init != nil {
			init, err := exec.evalExpression(s.Init)
			if err != nil {
				return NewVoid(), false, err
			}
			val = coerce(init, s.DeclType)
		}
		env.Define(s.Name, val)
		return NewVoid(), false, nil
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value)
		if err != nil {
			return NewVoid(), false, err
		}
		current, ok := env.Get(s.Target.Name)
		if !ok {
			return NewVoid(), false, exec.faultAt(FaultUndefinedIdentifier, s.Target.Pos(), "undefined identifier %s", s.Target.Name)
		}
		env.Assign(s.Target.Name, coerce(val, kindType(current.Kind())))
		return NewVoid(), false, nil
	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition)
		if err != nil {
			return NewVoid(), false, err
		}
		if cond.Bool() {
			return exec.evalStatements(s.Consequent)
		}
		return exec.evalStatements(s.Alternate)
	case *WhileStmt:
		return exec.evalWhileStatement(s)
	case *ReturnStmt:
		if s.Value == nil {
			return NewVoid(), true, nil
		}
		val, err := exec.evalExpression(s.Value)
		return val, true, err
	case *PrintStmt:
		return NewVoid(), false, exec.evalPrintStatement(s)
	case *ExprStmt:
		_, err := exec.evalExpression(s.Expr)
		return NewVoid(), false, err
	default:
		return NewVoid(), false, fmt.Errorf("sluc: unsupported statement %T", stmt)
	}
}

func (exec *Execution) evalWhileStatement(stmt *WhileStmt) (Value, bool, error) {
	for {
		if err := exec.step(); err != nil {
			return NewVoid(), false, err
		}
		cond, err := exec.evalExpression(stmt.Condition)
		if err != nil {
			return NewVoid(), false, err
		}
		if !cond.Bool() {
			return NewVoid(), false, nil
		}
		val, returned, err := exec.evalStatements(stmt.Body)
		if err != nil {
			return NewVoid(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
}

func (exec *Execution) evalPrintStatement(stmt *PrintStmt) error {
	parts := make([]string, len(stmt.Args))
	for i, arg := range stmt.Args {
		val, err := exec.evalExpression(arg)
		if err != nil {
			return err
		}
		parts[i] = val.String()
	}
	line := strings.Join(parts, " ")
	exec.output = append(exec.output, line)
	if exec.stdout != nil {
		if _, err := fmt.Fprintln(exec.stdout, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// kindType maps a stored value back to the declared type of its slot.
// Slots always hold values already coerced to their declared type.
func kindType(kind ValueKind) Type {
	switch kind {
	case KindInt:
		return TypeInt
	case KindFloat:
		return TypeFloat
	case KindBool:
		return TypeBool
	case KindString:
		return TypeString
	default:
		return TypeVoid
	}
}
