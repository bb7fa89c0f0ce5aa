package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/sdcook/tlox/internal/pipeline"
	"github.com/sdcook/tlox/internal/reporter"
)

// Parse scans and parses the file at args[0] and prints the resulting AST
// using the Lisp-like pretty printer, each top-level statement followed by
// a newline (statements with bodies span several lines).
func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) mainer.ExitCode {
	src, err := readSource(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return ExitUsage
	}

	rep := reporter.New(stdio.Stderr, c.useColor(os.Stderr))
	stmts := pipeline.Parse(src, rep)
	for _, s := range stmts {
		fmt.Fprintln(stdio.Stdout, s)
	}
	if rep.HadStaticError() {
		return ExitStatic
	}
	return mainer.Success
}
