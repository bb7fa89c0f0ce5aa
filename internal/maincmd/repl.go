package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mna/mainer"

	"github.com/sdcook/tlox/internal/interp"
	"github.com/sdcook/tlox/internal/pipeline"
	"github.com/sdcook/tlox/internal/reporter"
)

// Repl reads one line of source at a time from stdio.Stdin, running each
// through the pipeline against a single long-lived Interpreter so that
// top-level variables, functions and classes persist across lines. A
// static or runtime error on one line is reported but does not end the
// session; the overall exit code still reflects whether any line ever
// failed.
func (c *Cmd) Repl(_ context.Context, stdio mainer.Stdio, _ []string) mainer.ExitCode {
	prompt := color.New(color.FgCyan)
	useColor := c.useColor(os.Stderr)

	it := interp.New(nil, stdio.Stdout, c.Config.MaxCallDepth)
	rep := reporter.New(stdio.Stderr, useColor)

	exit := mainer.Success
	scanner := bufio.NewScanner(stdio.Stdin)
	for {
		if useColor {
			prompt.Fprint(stdio.Stdout, "> ")
		} else {
			fmt.Fprint(stdio.Stdout, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		rep.Reset()
		stmts, locals := pipeline.Resolve([]byte(line), rep)
		if rep.HadStaticError() {
			exit = ExitStatic
			continue
		}

		it.SetLocals(locals)
		if err := it.Interpret(stmts); err != nil {
			if re, ok := err.(*interp.RuntimeError); ok {
				rep.Runtime(re.Message, re.Token.Line)
			}
			exit = ExitRuntime
		}
	}
	return exit
}
