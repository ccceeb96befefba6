package main

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/mgomes/sluc/sluc"
)

var declarationTypes = map[string]struct{}{
	"int":   {},
	"float": {},
	"bool":  {},
	"void":  {},
}

// session accumulates REPL input into one program. Function declarations
// are kept as written and every other entry is appended to a synthetic
// main that is re-run on each evaluation. Output already shown is skipped.
type session struct {
	engine     *sluc.Engine
	functions  []string
	statements []string
	printed    int
	count      int
	locals     map[string]sluc.Value
	names      []string
}

func newSession(engine *sluc.Engine) *session {
	return &session{
		engine: engine,
		locals: make(map[string]sluc.Value),
	}
}

// Eval compiles the session with input added and returns the lines it
// printed. Input that fails to compile or faults is not kept.
func (s *session) Eval(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if isFunctionDeclaration(input) {
		if declaresMain(input) {
			return nil, errors.New("main is provided by the session")
		}
		functions := append(append([]string{}, s.functions...), input)
		program, err := s.engine.Compile(renderSession(functions, s.statements))
		if err != nil {
			return nil, err
		}
		s.functions = functions
		s.names = functionNames(program)
		return nil, nil
	}

	if !strings.HasSuffix(input, ";") && !strings.HasSuffix(input, "}") {
		input += ";"
	}
	statements := append(append([]string{}, s.statements...), input)
	program, err := s.engine.Compile(renderSession(s.functions, statements))
	if err != nil {
		return nil, err
	}
	if echo, ok := s.echoExpression(program, input); ok {
		statements[len(statements)-1] = echo
		if echoed, err := s.engine.Compile(renderSession(s.functions, statements)); err == nil {
			program = echoed
		} else {
			statements[len(statements)-1] = input
		}
	}

	result, err := program.Run(context.Background(), sluc.RunOptions{})
	var fresh []string
	if result != nil && len(result.Output) > s.printed {
		fresh = append(fresh, result.Output[s.printed:]...)
	}
	if err != nil {
		return fresh, err
	}
	s.statements = statements
	s.printed = len(result.Output)
	s.locals = result.Locals
	if entry, ok := program.Function("main"); ok {
		s.count = len(entry.Body)
	}
	return fresh, nil
}

// echoExpression rewrites a lone value-producing expression statement into
// a print so the REPL shows its value.
func (s *session) echoExpression(program *sluc.Program, input string) (string, bool) {
	entry, ok := program.Function("main")
	if !ok || len(entry.Body) != s.count+1 {
		return "", false
	}
	last, ok := entry.Body[len(entry.Body)-1].(*sluc.ExprStmt)
	if !ok || last.Expr.Type() == sluc.TypeVoid {
		return "", false
	}
	body := strings.TrimSuffix(strings.TrimSpace(input), ";")
	return "print(" + body + "\n);", true
}

func (s *session) Reset() {
	s.functions = nil
	s.statements = nil
	s.printed = 0
	s.count = 0
	s.locals = make(map[string]sluc.Value)
	s.names = nil
}

// Locals returns main's variables after the last successful evaluation.
func (s *session) Locals() map[string]sluc.Value {
	return s.locals
}

// Names returns the declared functions and locals in sorted order.
func (s *session) Names() []string {
	names := append([]string{}, s.names...)
	for name := range s.locals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderSession(functions, statements []string) string {
	var b strings.Builder
	for _, fn := range functions {
		b.WriteString(fn)
		b.WriteString("\n")
	}
	b.WriteString("int main() {\n")
	for _, stmt := range statements {
		b.WriteString(stmt)
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func isFunctionDeclaration(input string) bool {
	tokens := sluc.Tokenize(input)
	if len(tokens) < 3 {
		return false
	}
	if _, ok := declarationTypes[tokens[0].Literal]; !ok {
		return false
	}
	return tokens[2].Literal == "("
}

func declaresMain(input string) bool {
	tokens := sluc.Tokenize(input)
	return len(tokens) > 1 && tokens[1].Literal == "main"
}

func functionNames(program *sluc.Program) []string {
	names := make([]string, 0, len(program.Functions))
	for _, fn := range program.Functions {
		if fn.Name != "main" {
			names = append(names, fn.Name)
		}
	}
	return names
}
