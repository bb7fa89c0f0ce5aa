package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/sdcook/tlox/internal/pipeline"
	"github.com/sdcook/tlox/internal/reporter"
)

// Run executes the file at args[0] to completion.
func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) mainer.ExitCode {
	src, err := readSource(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return ExitUsage
	}

	rep := reporter.New(stdio.Stderr, c.useColor(os.Stderr))
	err = pipeline.Run(src, stdio.Stdout, rep, c.Config.MaxCallDepth)
	switch {
	case rep.HadStaticError():
		return ExitStatic
	case err != nil:
		return ExitRuntime
	default:
		return mainer.Success
	}
}
