package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the schematic banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`           _                         _   _      `, "#818cf8"},
		{`  ___  ___| |__   ___ _ __ ___   __ _| |_(_) ___ `, "#a78bfa"},
		{` / __|/ __| '_ \ / _ \ '_ ' _ \ / _' | __| |/ __|`, "#c084fc"},
		{` \__ \ (__| | | |  __/ | | | | | (_| | |_| | (__ `, "#e879f9"},
		{` |___/\___|_| |_|\___|_| |_| |_|\__,_|\__|_|\___|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colors a validity flag for terminal output.
func Status(valid bool) string {
	p := termenv.ColorProfile()
	if valid {
		return termenv.String("valid").Foreground(p.Color("#22c55e")).Bold().String()
	}
	return termenv.String("invalid").Foreground(p.Color("#ef4444")).Bold().String()
}
