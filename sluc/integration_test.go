package sluc

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func runSource(t *testing.T, source string) *Result {
	t.Helper()
	engine := MustNewEngine(Config{})
	result, err := engine.Run(context.Background(), source, RunOptions{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

func expectOutput(t *testing.T, result *Result, lines ...string) {
	t.Helper()
	if strings.Join(result.Output, "\n") != strings.Join(lines, "\n") {
		t.Fatalf("expected output %q, got %q", lines, result.Output)
	}
}

func TestRunSquareFunction(t *testing.T) {
	result := runSource(t, "int f(int x){return x*x;} int main(){int x; x=f(33); print(x);}")
	expectOutput(t, result, "1089")
	if x := result.Locals["x"]; x.Kind() != KindInt || x.Int() != 1089 {
		t.Fatalf("expected local x=1089, got %v", x)
	}
}

func TestRunLogicalPrecedence(t *testing.T) {
	result := runSource(t, "int main(){ print(false||true||false&&true); }")
	expectOutput(t, result, "true")
}

func TestRunFloatToIntTruncates(t *testing.T) {
	result := runSource(t, `
int main() {
  int a;
  int b = -2.9;
  a = 3.14159;
  print(a, b);
}`)
	expectOutput(t, result, "3 -2")
}

func TestRunExponentRecursion(t *testing.T) {
	source := `
int exp(int x, int y) {
  if (y == 0) {
    return 1;
  }
  return x * exp(x, y - 1);
}
int main() {
  print(exp(7, 0), exp(-3, 0), exp(2, 10), exp(3, 3));
}`
	result := runSource(t, source)
	expectOutput(t, result, "1 1 1024 27")
}

func TestRunPromotionAndFormatting(t *testing.T) {
	result := runSource(t, `
int main() {
  int i = 7;
  float f;
  f = i / 2;
  print(f, i / 2.0, 7 % 3, -7 / 2, -7 % 3);
  print(2.0, 1.5e300 * 1e10, 0.1 + 0.2, 1e21);
  print(2 ** 10, 2 ** 0.5, 2.0 ** 3, 7.5 % 2);
  print("text", true, false);
}`)
	expectOutput(t, result,
		"3.0 3.5 1 -3 -1",
		"2.0 +Inf 0.30000000000000004 1e+21",
		"1024 1.4142135623730951 8.0 1.5",
		"text true false",
	)
}

func TestRunControlFlow(t *testing.T) {
	result := runSource(t, `
int main() {
  int i = 0;
  int sum = 0;
  while (i < 5) {
    i = i + 1;
    if (i % 2 == 0) sum = sum + i; else { sum = sum - 1; }
  }
  print(i, sum);
  if (sum > 100) print("big"); else if (sum > 0) print("positive"); else print("other");
}`)
	expectOutput(t, result, "5 3", "positive")
}

func TestRunReturnFromInsideLoop(t *testing.T) {
	result := runSource(t, `
int firstOver(int limit) {
  int n = 1;
  while (true) {
    if (n * n > limit) { return n; }
    n = n + 1;
  }
  return -1;
}
int main() { print(firstOver(50)); }`)
	expectOutput(t, result, "8")
}

func TestRunCoercesArgumentsAndReturns(t *testing.T) {
	result := runSource(t, `
float widen(float v) { return v; }
int narrow(float v) { return v * 2; }
int main() {
  print(widen(3), narrow(1.75));
}`)
	expectOutput(t, result, "3.0 3")
}

func TestRunArgumentsEvaluateLeftToRight(t *testing.T) {
	result := runSource(t, `
int trace(int n) { print(n); return n; }
int add(int a, int b) { return a + b; }
int main() {
  print(add(trace(1), trace(2)) + trace(3));
}`)
	expectOutput(t, result, "1", "2", "3", "6")
}

func TestRunLogicalOperatorsEvaluateBothSides(t *testing.T) {
	result := runSource(t, `
bool note(bool b) { print(b); return b; }
int main() {
  print(note(false) && note(true));
}`)
	expectOutput(t, result, "false", "true", "false")
}

func TestRunFramesAreIsolated(t *testing.T) {
	result := runSource(t, `
void clobber(int x) { x = 99; int y = 5; }
int main() {
  int x = 1;
  clobber(x);
  print(x);
}`)
	expectOutput(t, result, "1")
	if _, ok := result.Locals["y"]; ok {
		t.Fatalf("callee local leaked into main frame")
	}
}

func TestRunUntakenDivisionByZero(t *testing.T) {
	result := runSource(t, `
int main() {
  int zero = 0;
  if (zero != 0) {
    print(1 / zero, 1 % zero);
  }
  print("done");
}`)
	expectOutput(t, result, "done")
}

func TestRunDivisionByZeroFaults(t *testing.T) {
	tests := []struct {
		expr string
		kind FaultKind
	}{
		{"1 / zero", FaultDivisionByZero},
		{"1 % zero", FaultModuloByZero},
		{"1.5 / zero", FaultDivisionByZero},
		{"1.5 % zero", FaultModuloByZero},
		{"2 ** (zero - 1)", FaultNegativeExponent},
	}

	for _, tt := range tests {
		engine := MustNewEngine(Config{})
		source := "int main() { int zero = 0; print(\"before\"); print(" + tt.expr + "); print(\"after\"); }"
		result, err := engine.Run(context.Background(), source, RunOptions{})
		var re *RuntimeError
		if !errors.As(err, &re) {
			t.Fatalf("%s: expected RuntimeError, got %v", tt.expr, err)
		}
		if re.Kind != tt.kind {
			t.Fatalf("%s: expected %s, got %s", tt.expr, tt.kind, re.Kind)
		}
		if result == nil || strings.Join(result.Output, ",") != "before" {
			t.Fatalf("%s: expected only the output before the fault, got %v", tt.expr, result)
		}
		if result.Locals != nil {
			t.Fatalf("%s: expected no locals snapshot after a fault", tt.expr)
		}
	}
}

func TestRunFaultReportsFrames(t *testing.T) {
	engine := MustNewEngine(Config{})
	_, err := engine.Run(context.Background(), `int divide(int a, int b) {
  return a / b;
}
int main() {
  print(divide(1, 0));
}`, RunOptions{})
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %v", err)
	}
	if len(re.Frames) < 2 || re.Frames[0].Function != "divide" || re.Frames[0].Pos.Line != 2 {
		t.Fatalf("unexpected frames %+v", re.Frames)
	}
	msg := err.Error()
	if !strings.Contains(msg, "division by zero") || !strings.Contains(msg, "return a / b;") || !strings.Contains(msg, "at divide (2:12)") {
		t.Fatalf("unexpected error text:\n%s", msg)
	}
}

func TestRunMissingReturnFaults(t *testing.T) {
	engine := MustNewEngine(Config{})
	_, err := engine.Run(context.Background(), `
int maybe(int n) { if (n > 0) { return n; } }
int main() { print(maybe(1)); print(maybe(0)); }`, RunOptions{})
	var re *RuntimeError
	if !errors.As(err, &re) || re.Kind != FaultMissingReturn {
		t.Fatalf("expected MissingReturn fault, got %v", err)
	}
}

func TestRunStreamsOutput(t *testing.T) {
	var out strings.Builder
	engine := MustNewEngine(Config{})
	_, err := engine.Run(context.Background(), `int main() { print(1, 2); print("x"); }`, RunOptions{Stdout: &out})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "1 2\nx\n" {
		t.Fatalf("unexpected streamed output %q", out.String())
	}
}

func TestRunEmptyPrint(t *testing.T) {
	result := runSource(t, "int main() { print(); }")
	expectOutput(t, result, "")
	if len(result.Output) != 1 {
		t.Fatalf("expected one empty line, got %q", result.Output)
	}
}

func TestCompileRejectsTypeErrorsBeforeRunning(t *testing.T) {
	engine := MustNewEngine(Config{})
	_, err := engine.Run(context.Background(), "int main() { bool z; print(1); z = 3; }", RunOptions{})
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CompileError, got %v", err)
	}
	if len(ce.Diagnostics) != 1 || ce.Diagnostics[0].Code != CodeIncompatibleAssignment {
		t.Fatalf("unexpected diagnostics %v", ce.Diagnostics)
	}
}

func TestCompileCollectsLexAndParseErrors(t *testing.T) {
	engine := MustNewEngine(Config{})
	_, err := engine.Compile("int main() { int x = 4a; x = ; bool b = 1; }")
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CompileError, got %v", err)
	}
	if !ce.Has(CodeInvalidIdentifierStart) || !ce.Has(CodeUnexpectedToken) {
		t.Fatalf("expected lex and parse diagnostics, got %v", ce.Diagnostics)
	}
	if ce.Has(CodeIncompatibleAssignment) {
		t.Fatalf("type checking should not run on a program with syntax errors")
	}
	if !strings.Contains(err.Error(), "lex error at 1:22") {
		t.Fatalf("unexpected error text:\n%s", err.Error())
	}
}

func TestProgramRunChecksUncheckedPrograms(t *testing.T) {
	program, errs := Parse(Tokenize("int main() { int x = true; }"))
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors %v", errs)
	}
	_, err := program.Run(context.Background(), RunOptions{})
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CompileError, got %v", err)
	}
}

func TestProgramRunWithoutEngine(t *testing.T) {
	program, errs := Parse(Tokenize("int main() { print(6 * 7); }"))
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors %v", errs)
	}
	result, err := program.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	expectOutput(t, result, "42")
}

func TestRunDeclarationInUntakenBranch(t *testing.T) {
	result := runSource(t, `
int main() {
  if (false) {
    int x;
  }
  x = 5;
  print(x);
  while (false) {
    float f = 2.5;
  }
  print(f);
}`)
	expectOutput(t, result, "5", "0.0")
	if x := result.Locals["x"]; x.Kind() != KindInt || x.Int() != 5 {
		t.Fatalf("expected local x=5, got %v", x)
	}
}

func TestRunDeclarationResetsOnEachPass(t *testing.T) {
	result := runSource(t, `
int main() {
  int i = 0;
  while (i < 3) {
    int acc;
    acc = acc + i;
    print(acc);
    i = i + 1;
  }
}`)
	expectOutput(t, result, "0", "1", "2")
}

func TestRunNestedBlockSharesFrame(t *testing.T) {
	result := runSource(t, `
int main() {
  int a = 1;
  {
    int b = a + 1;
    a = b * 10;
  }
  print(a, b);
}`)
	expectOutput(t, result, "20 2")
}
