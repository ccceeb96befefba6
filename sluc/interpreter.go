package sluc

import (
	"context"
	"fmt"
)

const defaultRecursionLimit = 100_000

// Config controls interpreter execution bounds.
type Config struct {
	// StepQuota caps the statements, loop iterations and calls a run may
	// execute. Zero means unlimited.
	StepQuota int
	// RecursionLimit caps the call depth. Zero selects the default.
	RecursionLimit int
}

func defaultConfig() Config {
	return Config{RecursionLimit: defaultRecursionLimit}
}

// Engine compiles and runs SLU-C programs with deterministic limits.
type Engine struct {
	config Config
}

// NewEngine constructs an Engine, filling in defaults for zero fields.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("sluc: step quota must not be negative (got %d)", cfg.StepQuota)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("sluc: recursion limit must not be negative (got %d)", cfg.RecursionLimit)
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	return &Engine{config: cfg}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Compile lexes, parses and type-checks source. Every diagnostic from the
// first failing stage is returned in a *CompileError. Lex and parse errors
// are reported together since the parser skips illegal tokens; type
// checking only runs on a syntactically clean program.
func (e *Engine) Compile(source string) (*Program, error) {
	tokens := Tokenize(source)
	diags := LexErrors(tokens)

	program, parseErrors := Parse(tokens)
	diags = append(diags, parseErrors...)
	program.source = source
	program.engine = e
	if len(diags) > 0 {
		return nil, &CompileError{Diagnostics: diags, source: source}
	}

	if typeErrors := Check(program); len(typeErrors) > 0 {
		return nil, &CompileError{Diagnostics: typeErrors, source: source}
	}
	program.checked = true
	return program, nil
}

// Run compiles source and runs its main function.
func (e *Engine) Run(ctx context.Context, source string, opts RunOptions) (*Result, error) {
	program, err := e.Compile(source)
	if err != nil {
		return nil, err
	}
	return program.Run(ctx, opts)
}

// ConfigSummary provides a human-readable description of the interpreter limits.
func (e *Engine) ConfigSummary() string {
	steps := "unlimited"
	if e.config.StepQuota > 0 {
		steps = fmt.Sprintf("%d", e.config.StepQuota)
	}
	return fmt.Sprintf("steps=%s recursion=%d", steps, e.config.RecursionLimit)
}
