package sluc

import "testing"

func checkSource(t *testing.T, source string) []Diagnostic {
	t.Helper()
	program := parseSource(t, source)
	return Check(program)
}

func expectCodes(t *testing.T, diags []Diagnostic, codes ...DiagnosticCode) {
	t.Helper()
	if len(diags) != len(codes) {
		t.Fatalf("expected %d diagnostics %v, got %d: %v", len(codes), codes, len(diags), diags)
	}
	for i, code := range codes {
		if diags[i].Code != code {
			t.Fatalf("diagnostic %d: expected %s, got %s (%s)", i, code, diags[i].Code, diags[i].Message)
		}
		if diags[i].Phase != PhaseType {
			t.Fatalf("diagnostic %d: expected type phase, got %s", i, diags[i].Phase)
		}
	}
}

func TestCheckAcceptsValidProgram(t *testing.T) {
	diags := checkSource(t, `
int exp(int x, int y) {
  if (y == 0) { return 1; }
  return x * exp(x, y - 1);
}
float half(float v) { return v / 2; }
void show(bool b) { print("flag", b); }
int main() {
  int i = 3.14159;
  float f = i;
  bool ok = i < f && !false;
  f = half(i) + 1;
  show(ok || i == 3);
  while (i > 0) i = i - 1;
  print(exp(2, 10), f ** 2, i % 2);
  return 0;
}
`)
	expectCodes(t, diags)
}

func TestCheckBoolIntAssignmentIsOneError(t *testing.T) {
	tests := []string{
		"int main() { bool z; z = 3; }",
		"int main() { int z; z = true; }",
		"int main() { float z; z = false; }",
		"int main() { bool z; z = 2.5; }",
		"int main() { bool z = 1; }",
	}
	for _, source := range tests {
		diags := checkSource(t, source)
		expectCodes(t, diags, CodeIncompatibleAssignment)
	}
}

func TestCheckBooleanArithmeticDoesNotCascade(t *testing.T) {
	diags := checkSource(t, "int main() { bool z; z = !z + 33; }")
	expectCodes(t, diags, CodeBooleanInArithmetic)
}

func TestCheckBooleanInComparison(t *testing.T) {
	diags := checkSource(t, "int main() { bool b; print(b < 1, b == 1, b == true, -b); }")
	expectCodes(t, diags, CodeBooleanInArithmetic, CodeBooleanInArithmetic, CodeBooleanInArithmetic)
}

func TestCheckConditionsMustBeBool(t *testing.T) {
	diags := checkSource(t, "int main() { int x; if (x) { } while (x + 1) { } }")
	expectCodes(t, diags, CodeNonBooleanCondition, CodeNonBooleanCondition)
}

func TestCheckLogicalOperands(t *testing.T) {
	diags := checkSource(t, "int main() { int x; bool b; b = x && true; b = !x; }")
	expectCodes(t, diags, CodeNonBooleanOperand, CodeNonBooleanOperand)
}

func TestCheckCalls(t *testing.T) {
	diags := checkSource(t, `
int f(int a, bool b) { return a; }
int main() {
  f(1);
  f(1, 2);
  f(true, false);
  g(1);
}
`)
	expectCodes(t, diags, CodeArityMismatch, CodeArgumentTypeMismatch, CodeArgumentTypeMismatch, CodeUndefinedFunction)
}

func TestCheckReturns(t *testing.T) {
	diags := checkSource(t, `
int a() { return true; }
bool b() { return 1; }
void c() { return 1; }
int d() { return; }
float e() { return 1; }
int main() { return 0; }
`)
	expectCodes(t, diags, CodeReturnTypeMismatch, CodeReturnTypeMismatch, CodeReturnTypeMismatch, CodeReturnTypeMismatch)
}

func TestCheckMutualRecursionInAnyOrder(t *testing.T) {
	diags := checkSource(t, `
int main() { print(isEven(10)); }
bool isEven(int n) { if (n == 0) { return true; } return isOdd(n - 1); }
bool isOdd(int n) { if (n == 0) { return false; } return isEven(n - 1); }
`)
	expectCodes(t, diags)
}

func TestCheckScopes(t *testing.T) {
	diags := checkSource(t, `
int f(int a) { return b; }
int main() {
  int b;
  int b;
  c = 1;
  return a;
}
`)
	expectCodes(t, diags, CodeUndeclaredIdentifier, CodeDuplicateDeclaration, CodeUndeclaredIdentifier, CodeUndeclaredIdentifier)
}

func TestCheckDuplicateFunctionAndParam(t *testing.T) {
	diags := checkSource(t, `
int f(int a, int a) { return a; }
int f() { return 1; }
int main() { return 0; }
`)
	expectCodes(t, diags, CodeDuplicateDeclaration, CodeDuplicateDeclaration)
}

func TestCheckStringsArePrintOnly(t *testing.T) {
	diags := checkSource(t, `
int main() {
  int x;
  print("ok", x);
  x = "no";
  print("a" + 1);
  if ("s" == "s") { }
}
`)
	expectCodes(t, diags, CodeIncompatibleAssignment, CodeInvalidOperand, CodeInvalidOperand)
}

func TestCheckVoidCallIsNotAValue(t *testing.T) {
	diags := checkSource(t, `
void v() { }
int main() {
  int x;
  v();
  x = v();
  print(v());
}
`)
	expectCodes(t, diags, CodeInvalidOperand, CodeInvalidOperand)
}

func TestCheckAnnotatesExpressionTypes(t *testing.T) {
	program := parseSource(t, "int main() { int i; float f; f = i + 2.0; i = i * 2; print(i < f); }")
	if diags := Check(program); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	body := program.Functions[0].Body
	if ty := body[2].(*AssignStmt).Value.Type(); ty != TypeFloat {
		t.Fatalf("expected promoted float, got %s", ty)
	}
	if ty := body[3].(*AssignStmt).Value.Type(); ty != TypeInt {
		t.Fatalf("expected int, got %s", ty)
	}
	if ty := body[4].(*PrintStmt).Args[0].Type(); ty != TypeBool {
		t.Fatalf("expected bool comparison, got %s", ty)
	}
}

func TestCheckFloatTruncationAccepted(t *testing.T) {
	diags := checkSource(t, "int take(int n) { return n; } int main() { int x = 3.14159; x = 2.5 * 2; take(1.5); return 0.5; }")
	expectCodes(t, diags)
}
