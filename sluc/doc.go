// Package sluc implements a small statically typed imperative language with
// a C-like surface syntax. A program is a list of function declarations,
// one of which is `main`. The pipeline supports:
//   - Types int, float and bool, plus string literals that may only be
//     printed.
//   - Declarations with optional initializers (`int a, b = 3;`), assignment,
//     `if`/`else`, `while`, `return` and `print(expr, ...)`.
//   - Arithmetic (+, -, *, /, %, **), comparisons and logical operators
//     (&&, ||, !) with Int to Float promotion.
//   - Recursive and mutually recursive function calls.
//
// Comments begin with `//`. Tokenize, Parse and Check expose each pass and
// report structured diagnostics; Engine.Compile runs them together and
// Program.Run evaluates main under the configured step and recursion limits.
package sluc
