// Package reporter formats and writes the pipeline's diagnostics
// (lexer/parser/resolver static errors, interpreter runtime errors) to an
// io.Writer. It replaces a global had-error flag with a small interface
// the driver owns: the driver decides, from the count and kind of errors
// reported, what the process exit code should be.
package reporter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter accumulates whether any static or runtime error has been
// reported, and writes colorized diagnostics when color is enabled.
type Reporter struct {
	w            io.Writer
	color        bool
	hadStatic    bool
	hadRuntime   bool
	staticColor  *color.Color
	runtimeColor *color.Color
}

// New creates a Reporter writing to w. useColor should reflect both the
// user's LOX_NO_COLOR preference and whether w is actually a terminal;
// internal/maincmd decides that before constructing a Reporter.
func New(w io.Writer, useColor bool) *Reporter {
	return &Reporter{
		w:            w,
		color:        useColor,
		staticColor:  color.New(color.FgRed),
		runtimeColor: color.New(color.FgRed, color.Bold),
	}
}

// Static reports a lex/parse/resolve error. where names the token the
// error occurred at ("[line L] Error at '<where>': <msg>"); an empty
// where means the error has no token to point at (e.g. a lexer error),
// and is reported as the bare "[line L] Error: <msg>".
func (r *Reporter) Static(line int, where, message string) {
	r.hadStatic = true
	var line2 string
	if where == "" {
		line2 = fmt.Sprintf("[line %d] Error: %s", line, message)
	} else {
		line2 = fmt.Sprintf("[line %d] Error at '%s': %s", line, where, message)
	}
	r.writeLine(r.staticColor, line2)
}

// Runtime reports a runtime error: "<message>\n[line L]".
func (r *Reporter) Runtime(message string, line int) {
	r.hadRuntime = true
	text := fmt.Sprintf("%s\n[line %d]", message, line)
	r.writeLine(r.runtimeColor, text)
}

func (r *Reporter) writeLine(c *color.Color, text string) {
	if r.color {
		c.Fprintln(r.w, text)
		return
	}
	fmt.Fprintln(r.w, text)
}

// HadStaticError reports whether Static has been called since the
// Reporter was created (or since Reset).
func (r *Reporter) HadStaticError() bool { return r.hadStatic }

// HadRuntimeError reports whether Runtime has been called since the
// Reporter was created (or since Reset).
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntime }

// Reset clears both error flags; used by the REPL between lines so that a
// static error on one line does not stop later lines from being run.
func (r *Reporter) Reset() {
	r.hadStatic = false
	r.hadRuntime = false
}
