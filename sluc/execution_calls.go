package sluc

func (exec *Execution) evalCallExpr(call *CallExpr) (Value, error) {
	fn, ok := exec.program.Function(call.Name)
	if !ok {
		return NewVoid(), exec.faultAt(FaultUndefinedFunction, call.Pos(), "undefined function %s", call.Name)
	}

	// arguments are evaluated left to right in the caller's frame
	args := make([]Value, len(call.Args))
	for i, arg := range call.Args {
		val, err := exec.evalExpression(arg)
		if err != nil {
			return NewVoid(), err
		}
		args[i] = val
	}
	return exec.invoke(fn, newEnv(), args, call.Pos())
}

// invoke runs fn in env, which becomes the current frame for the duration
// of the call.
func (exec *Execution) invoke(fn *FunctionDecl, env *Env, args []Value, pos Position) (Value, error) {
	if err := exec.step(); err != nil {
		return NewVoid(), err
	}
	if err := exec.pushFrame(fn.Name, pos); err != nil {
		return NewVoid(), err
	}
	defer exec.popFrame()

	predeclare(env, fn.Body)
	for i, param := range fn.Params {
		env.Define(param.Name, coerce(args[i], param.Type))
	}
	exec.frames = append(exec.frames, env)
	defer func() {
		exec.frames = exec.frames[:len(exec.frames)-1]
	}()

	val, returned, err := exec.evalStatements(fn.Body)
	if err != nil {
		return NewVoid(), err
	}
	if fn.ReturnType == TypeVoid {
		return NewVoid(), nil
	}
	if !returned {
		if fn.Name == "main" {
			return zeroValue(fn.ReturnType), nil
		}
		return NewVoid(), exec.faultAt(FaultMissingReturn, fn.Pos(), "function %s ended without returning a %s value", fn.Name, fn.ReturnType)
	}
	return coerce(val, fn.ReturnType), nil
}

// predeclare binds every local declared anywhere in stmts to its zero value.
// A call has a single flat frame, so a declaration inside a branch that never
// runs still names a variable the rest of the body may use.
func predeclare(env *Env, stmts []Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *VarDecl:
			env.Define(s.Name, zeroValue(s.DeclType))
		case *IfStmt:
			predeclare(env, s.Consequent)
			predeclare(env, s.Alternate)
		case *WhileStmt:
			predeclare(env, s.Body)
		}
	}
}

func (exec *Execution) pushFrame(function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.faultAt(FaultRecursionLimit, pos, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}
