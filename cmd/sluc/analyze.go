package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/mgomes/sluc/sluc"
)

type lintWarning struct {
	Function string
	Pos      sluc.Position
	Message  string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("sluc analyze: program path required")
	}

	programPath, input, err := readProgram(remaining[0])
	if err != nil {
		return err
	}

	engine := sluc.MustNewEngine(sluc.Config{})
	program, err := engine.Compile(input)
	if err != nil {
		return fmt.Errorf("analysis compile failed: %w", err)
	}

	warnings := analyzeProgramWarnings(program)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := warning.Pos.Line
		column := warning.Pos.Column
		if line <= 0 {
			line = 1
		}
		if column <= 0 {
			column = 1
		}
		fmt.Printf("%s:%d:%d: %s (%s)\n", programPath, line, column, warning.Message, warning.Function)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

func analyzeProgramWarnings(program *sluc.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	for _, fn := range program.Functions {
		lintStatements(fn.Name, fn.Body, &warnings)
		lintUnusedLocals(fn, &warnings)
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Function < warnings[j].Function
	})

	return warnings
}

func lintStatements(function string, statements []sluc.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Function: function,
				Pos:      stmt.Pos(),
				Message:  "unreachable statement",
			})
			continue
		}
		if statementTerminates(function, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(function string, stmt sluc.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *sluc.ReturnStmt:
		return true
	case *sluc.IfStmt:
		consequentTerminated := lintStatements(function, typed.Consequent, warnings)
		if typed.Alternate == nil {
			return false
		}
		alternateTerminated := lintStatements(function, typed.Alternate, warnings)
		return consequentTerminated && alternateTerminated
	case *sluc.WhileStmt:
		lintStatements(function, typed.Body, warnings)
		return false
	default:
		return false
	}
}

// lintUnusedLocals reports declarations whose value is never read.
// Assigning to a local does not count as a use.
func lintUnusedLocals(fn *sluc.FunctionDecl, warnings *[]lintWarning) {
	var decls []*sluc.VarDecl
	used := make(map[string]bool)
	walkStatements(fn.Body, func(stmt sluc.Statement) {
		if decl, ok := stmt.(*sluc.VarDecl); ok {
			decls = append(decls, decl)
		}
	}, func(expr sluc.Expression) {
		if ident, ok := expr.(*sluc.Identifier); ok {
			used[ident.Name] = true
		}
	})

	for _, decl := range decls {
		if used[decl.Name] {
			continue
		}
		*warnings = append(*warnings, lintWarning{
			Function: fn.Name,
			Pos:      decl.Pos(),
			Message:  fmt.Sprintf("local %s is declared but never used", decl.Name),
		})
	}
}

func walkStatements(stmts []sluc.Statement, onStmt func(sluc.Statement), onExpr func(sluc.Expression)) {
	for _, stmt := range stmts {
		onStmt(stmt)
		switch s := stmt.(type) {
		case *sluc.VarDecl:
			walkExpression(s.Init, onExpr)
		case *sluc.AssignStmt:
			walkExpression(s.Value, onExpr)
		case *sluc.IfStmt:
			walkExpression(s.Condition, onExpr)
			walkStatements(s.Consequent, onStmt, onExpr)
			walkStatements(s.Alternate, onStmt, onExpr)
		case *sluc.WhileStmt:
			walkExpression(s.Condition, onExpr)
			walkStatements(s.Body, onStmt, onExpr)
		case *sluc.ReturnStmt:
			walkExpression(s.Value, onExpr)
		case *sluc.PrintStmt:
			for _, arg := range s.Args {
				walkExpression(arg, onExpr)
			}
		case *sluc.ExprStmt:
			walkExpression(s.Expr, onExpr)
		}
	}
}

func walkExpression(expr sluc.Expression, onExpr func(sluc.Expression)) {
	if expr == nil {
		return
	}
	onExpr(expr)
	switch e := expr.(type) {
	case *sluc.UnaryExpr:
		walkExpression(e.Right, onExpr)
	case *sluc.BinaryExpr:
		walkExpression(e.Left, onExpr)
		walkExpression(e.Right, onExpr)
	case *sluc.CallExpr:
		for _, arg := range e.Args {
			walkExpression(arg, onExpr)
		}
	}
}
