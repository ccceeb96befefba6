package sluc

import (
	"fmt"
	"strings"
)

// formatCodeFrame renders the source line at pos with a caret under the
// column. Tabs before the column are kept in the caret padding so the
// caret lines up in a terminal.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if pos.Line > len(lines) {
		return ""
	}
	lineRunes := []rune(lines[pos.Line-1])

	column := max(pos.Column, 1)
	column = min(column, len(lineRunes)+1)

	var caretPad strings.Builder
	for _, r := range lineRunes[:column-1] {
		if r == '\t' {
			caretPad.WriteRune('\t')
		} else {
			caretPad.WriteRune(' ')
		}
	}

	gutter := fmt.Sprintf("%d", pos.Line)
	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		gutter,
		string(lineRunes),
		strings.Repeat(" ", len(gutter)),
		caretPad.String(),
	)
}
