package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/evanacox/dawn/internal/parser"
)

var (
	errColor    = color.New(color.FgRed, color.Bold)
	gutterColor = color.New(color.FgBlue)
)

// renderParseError prints the error with the offending source line and a
// caret marker underneath it.
func renderParseError(w io.Writer, path, src string, perr *parser.ParseError, useColor bool) {
	heading := fmt.Sprintf("%s:%d", path, perr.Line)
	label := "error:"
	if useColor {
		label = errColor.Sprint(label)
	}
	fmt.Fprintf(w, "%s %s %s\n", heading, label, perr.Message)

	lines := strings.Split(src, "\n")
	if perr.Line < 1 || perr.Line > len(lines) {
		return
	}
	line := lines[perr.Line-1]
	gutter := fmt.Sprintf(" %d | ", perr.Line)
	shown := gutter
	if useColor {
		shown = gutterColor.Sprint(gutter)
	}
	fmt.Fprintf(w, "%s%s\n", shown, line)

	// align the caret with the first non-blank column of the line
	marked := len(line) - len(strings.TrimLeft(line, " \t"))
	pad := runewidth.StringWidth(gutter) + runewidth.StringWidth(line[:marked])
	fmt.Fprintf(w, "%s^\n", strings.Repeat(" ", pad))
}
