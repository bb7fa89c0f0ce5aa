package maincmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/mna/mainer"

	"github.com/sdcook/tlox/internal/pipeline"
	"github.com/sdcook/tlox/internal/reporter"
)

// Resolve scans, parses and resolves the file at args[0], printing the AST
// followed by the resolved local-variable scope depths keyed by AST node
// id, in ascending node id order.
func (c *Cmd) Resolve(_ context.Context, stdio mainer.Stdio, args []string) mainer.ExitCode {
	src, err := readSource(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return ExitUsage
	}

	rep := reporter.New(stdio.Stderr, c.useColor(os.Stderr))
	stmts, locals := pipeline.Resolve(src, rep)
	for _, s := range stmts {
		fmt.Fprintln(stdio.Stdout, s)
	}
	if rep.HadStaticError() {
		return ExitStatic
	}

	ids := make([]int, 0, len(locals))
	for id := range locals {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(stdio.Stdout, "node %d -> depth %d\n", id, locals[id])
	}
	return mainer.Success
}
