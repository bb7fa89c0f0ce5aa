package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/sdcook/tlox/internal/pipeline"
	"github.com/sdcook/tlox/internal/reporter"
)

// Tokenize scans the file at args[0] and prints one token per line.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) mainer.ExitCode {
	src, err := readSource(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return ExitUsage
	}

	rep := reporter.New(stdio.Stderr, c.useColor(os.Stderr))
	for _, tok := range pipeline.Tokenize(src, rep) {
		fmt.Fprintln(stdio.Stdout, tok)
	}
	if rep.HadStaticError() {
		return ExitStatic
	}
	return mainer.Success
}

func readSource(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return b, nil
}
