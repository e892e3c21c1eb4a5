// Package ui holds the colours and helpers for command-line output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Output colours.
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Errorf prints an error line to w.
func Errorf(w io.Writer, format string, args ...any) {
	Bad.Fprintf(w, "codecanvas: "+format+"\n", args...)
}

// Table prints a simple aligned table.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], c)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}
	fmt.Fprintln(w, Subtle.Sprint(line(headers)))
	for _, row := range rows {
		fmt.Fprintln(w, line(row))
	}
}
