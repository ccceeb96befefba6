package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mgomes/sluc/sluc"
)

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("sluc tokens: program path required")
	}

	_, input, err := readProgram(remaining[0])
	if err != nil {
		return err
	}

	tokens := sluc.Tokenize(input)
	fmt.Printf("%-12s %-24s %s\n", "Token", "Literal", "Line")
	for _, tok := range tokens {
		if tok.IsEOF() {
			break
		}
		literal := tok.Literal
		if tok.IsIllegal() {
			literal = fmt.Sprintf("%s (%s)", tok.Literal, tok.Err)
		}
		fmt.Printf("%-12s %-24s %d\n", tok.Type, literal, tok.Pos.Line)
	}

	if lexErrors := sluc.LexErrors(tokens); len(lexErrors) > 0 {
		return fmt.Errorf("sluc tokens: %d illegal token(s)", len(lexErrors))
	}
	return nil
}
