package tui

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/aretw0/schematic"
	"github.com/charmbracelet/glamour"
)

// ReportMarkdown formats a validation report as a markdown document: a
// heading with the verdict, a table of resolved values and the errors per field.
func ReportMarkdown(r schematic.Report, fields []string) string {
	var sb strings.Builder

	verdict := "valid"
	if !r.Valid {
		verdict = "invalid"
	}
	fmt.Fprintf(&sb, "# %s is %s\n\n", r.Kind, verdict)

	sb.WriteString("| Field | Value | Errors |\n|---|---|---|\n")
	for _, name := range fields {
		var errs []string
		if fe, ok := r.Errors[name]; ok {
			errs = fe.Errors
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n",
			escapeCell(name), escapeCell(formatValue(r.Data[name])), escapeCell(strings.Join(errs, "; ")))
	}
	return sb.String()
}

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer(width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

// escapeCell keeps a value on one table row. Control characters are dropped:
// an ANSI escape inside a document value would reach the terminal.
func escapeCell(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	return strings.ReplaceAll(s, "|", `\|`)
}
