package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgomes/sluc/sluc"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "lsp":
		return runLSP()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "read limits from a YAML config file")
	steps := fs.Int("steps", -1, "step quota (0 for unlimited)")
	maxDepth := fs.Int("max-depth", -1, "maximum call depth")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("sluc run: program path required")
	}

	programPath, input, err := readProgram(remaining[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(programPath, *configPath)
	if err != nil {
		return err
	}
	if *steps >= 0 {
		cfg.StepQuota = *steps
	}
	if *maxDepth >= 0 {
		cfg.RecursionLimit = *maxDepth
	}
	engine, err := sluc.NewEngine(cfg)
	if err != nil {
		return err
	}

	program, err := engine.Compile(input)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	if _, err := program.Run(context.Background(), sluc.RunOptions{Stdout: os.Stdout}); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("sluc check: program path required")
	}

	_, input, err := readProgram(remaining[0])
	if err != nil {
		return err
	}
	if _, err := sluc.MustNewEngine(sluc.Config{}).Compile(input); err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	return nil
}

func readProgram(path string) (string, string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", "", fmt.Errorf("resolve program path: %w", err)
	}
	input, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", fmt.Errorf("read program: %w", err)
	}
	return absPath, string(input), nil
}

// resolveConfig loads an explicit config file, or sluc.yml next to the
// program when one exists.
func resolveConfig(programPath, explicit string) (sluc.Config, error) {
	if explicit != "" {
		return sluc.LoadConfigFile(explicit)
	}
	candidate := filepath.Join(filepath.Dir(programPath), sluc.ConfigFileName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sluc.Config{}, nil
		}
		return sluc.Config{}, fmt.Errorf("access %s: %w", candidate, err)
	}
	return sluc.LoadConfigFile(candidate)
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-config file] [-steps n] [-max-depth n] <program>")
	fmt.Fprintln(os.Stderr, "    compile and run a program's main function")
	fmt.Fprintln(os.Stderr, "  check <program>")
	fmt.Fprintln(os.Stderr, "    lex, parse and type-check without running")
	fmt.Fprintln(os.Stderr, "  tokens <program>")
	fmt.Fprintln(os.Stderr, "    print the token table")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] [-canonical] <paths...>")
	fmt.Fprintln(os.Stderr, "    normalize source formatting")
	fmt.Fprintln(os.Stderr, "  analyze <program>")
	fmt.Fprintln(os.Stderr, "    report unreachable statements and unused locals")
	fmt.Fprintln(os.Stderr, "  repl [-plain]")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
	fmt.Fprintln(os.Stderr, "  lsp")
	fmt.Fprintln(os.Stderr, "    serve the language server protocol on stdio")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
