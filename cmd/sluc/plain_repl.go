package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/sluc/sluc"
	"github.com/peterh/liner"
)

const (
	historyFile = ".sluc_history"
	promptMain  = "sluc> "
	promptCont  = "....> "
	plainBanner = "SLU-C REPL (:quit to exit, :reset to start over)"
)

func runPlainREPL(engine *sluc.Engine) error {
	fmt.Println(plainBanner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sess := newSession(engine)
	ln.SetCompleter(func(line string) []string {
		return completeLine(line, sess.Names())
	})

	for {
		code, ok := readBalanced(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return nil
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}

		if strings.HasPrefix(code, ":") {
			switch strings.ToLower(code) {
			case ":quit", ":q":
				return nil
			case ":reset", ":r":
				sess.Reset()
				fmt.Println(mutedStyle.Render("session reset"))
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		lines, err := sess.Eval(code)
		for _, line := range lines {
			fmt.Println(resultStyle.Render(line))
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, renderError(err))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readBalanced keeps prompting while braces or parentheses are open so a
// function body can span several lines.
func readBalanced(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if openDepth(b.String()) <= 0 {
			return b.String(), true
		}
	}
}

func openDepth(source string) int {
	depth := 0
	for _, tok := range sluc.Tokenize(source) {
		switch tok.Type {
		case "{", "(":
			depth++
		case "}", ")":
			depth--
		}
	}
	return depth
}

func completeLine(line string, names []string) []string {
	end := len(line)
	start := end
	for start > 0 && isWordRune(rune(line[start-1])) {
		start--
	}
	if start == end {
		return nil
	}
	matches := completeWord(line[start:end], names)
	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, line[:start]+match)
	}
	return out
}
