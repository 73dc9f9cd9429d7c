// Package reporter renders a fatal compiler error as a framed,
// gutter-numbered source snippet. Grounded on
// isaacev-Plaid_v1/feedback/message.go's Error.Make/sourceCodeSelection
// layout (`--> file:line:col`, a `|` gutter, the offending line, a
// caret-underline), adapted from Plaid's Warning/Error message pair down
// to this system's single *codegen.CompileError shape.
package reporter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/cxcorp/js-to-flasm-as2-compiler/codegen"
)

// Frame renders err against src (the original source text, used to pull
// the offending line(s) into the snippet). useColor=false turns ANSI color
// off, the way Plaid's Make(withColor bool) does, by setting the
// package-level color.NoColor switch for the duration of the call;
// useColor=true keeps color.NoColor's own terminal detection.
func Frame(filename string, src []byte, err error, useColor bool) string {
	prevNoColor := color.NoColor
	color.NoColor = prevNoColor || !useColor
	defer func() { color.NoColor = prevNoColor }()

	cerr := asCompileError(err)
	if cerr == nil || cerr.Node == nil {
		return plainError(err)
	}

	redBold := color.New(color.FgRed, color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	span := cerr.Node.Span()
	startLine, endLine := span.Start.Line, span.End.Line
	if startLine < 1 {
		startLine = 1
	}
	if endLine < startLine {
		endLine = startLine
	}

	lines := strings.Split(string(src), "\n")
	placeValues := len(fmt.Sprintf("%d", endLine))
	emptyMargin := strings.Repeat(" ", placeValues)
	numFmt := fmt.Sprintf("%%%dd", placeValues)

	var out []string
	out = append(out, redBold(fmt.Sprintf("error: %s", cerr.Kind)))
	out = append(out, fmt.Sprintf(" %s%s %s:%d:%d", emptyMargin, blue("-->"), filename, startLine, span.Start.Column+1))
	out = append(out, fmt.Sprintf(" %s%s", emptyMargin, blue("|")))

	for ln := startLine; ln <= endLine && ln <= len(lines); ln++ {
		srcLine := strings.TrimRight(lines[ln-1], "\r")
		lineNum := fmt.Sprintf(numFmt, ln)
		out = append(out, fmt.Sprintf(" %s %s %s", blue(lineNum), blue("|"), srcLine))
	}

	if startLine == endLine {
		startCol := span.Start.Column + 1
		endCol := span.End.Column + 1
		width := endCol - startCol
		if width < 1 {
			width = 1
		}
		leftPad := strings.Repeat(" ", maxInt(startCol-1, 0))
		underline := strings.Repeat("^", width)
		out = append(out, fmt.Sprintf(" %s %s %s%s %s", emptyMargin, blue("|"), leftPad, red(underline), red(cerr.Message)))
	} else {
		out = append(out, fmt.Sprintf(" %s%s %s", emptyMargin, blue("|"), red(cerr.Message)))
	}

	return strings.Join(out, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// plainError is the fallback for errors that never reached the generator
// (JSON decode failures, I/O errors): no AST node to frame, so just the
// message, still run through the same color scheme for consistency.
func plainError(err error) string {
	redBold := color.New(color.FgRed, color.Bold).SprintFunc()
	return redBold("error: ") + err.Error()
}

// asCompileError unwraps err (possibly wrapped by github.com/pkg/errors.WithStack,
// as codegen.newError does) back to its typed *codegen.CompileError, or nil.
func asCompileError(err error) *codegen.CompileError {
	cause := errors.Cause(err)
	cerr, ok := cause.(*codegen.CompileError)
	if !ok {
		return nil
	}
	return cerr
}
