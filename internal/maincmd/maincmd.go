// Package maincmd implements the tlox command-line surface: tokenize,
// parse, resolve and run subcommands plus an interactive REPL, dispatched
// through mna/mainer the way its own CLI dispatches by reflecting over
// Cmd's methods.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mna/mainer"

	"github.com/sdcook/tlox/internal/config"
)

const binName = "tlox"

// Exit codes follow the convention used by the language's diagnostic
// protocol: 64 for CLI usage errors, 65 for static (lex/parse/resolve)
// errors, 75 for runtime errors, 0 on success.
const (
	ExitUsage   mainer.ExitCode = 64
	ExitStatic  mainer.ExitCode = 65
	ExitRuntime mainer.ExitCode = 75
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the tlox scripting language.

The <command> can be one of:
       tokenize <path>           Scan <path> and print its token stream.
       parse <path>              Scan and parse <path> and print the
                                 resulting AST.
       resolve <path>            Scan, parse and resolve <path> and print
                                 the AST together with the resolved
                                 variable scope depths.
       run <path>                Run <path> to completion.

With no command and no path, starts an interactive REPL.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the process entry point's command, parsed from argv by
// mainer.Parser and dispatched to one of the methods below by name.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Config config.Config

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) mainer.ExitCode
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return nil // bare invocation starts the REPL
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	if len(c.args[1:]) != 1 {
		return errors.New(cmdName + ": exactly one file path is required")
	}
	return nil
}

// Main is the single method os.Exit is built from in cmd/tlox/main.go.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid configuration: %s\n", err)
		return ExitUsage
	}
	c.Config = cfg

	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return ExitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if c.cmdFn == nil {
		return c.Repl(ctx, stdio, nil)
	}
	return c.cmdFn(ctx, stdio, c.args[1:])
}

// useColor reports whether diagnostics written to w should be colorized:
// the user must not have disabled color, and w must be a terminal.
func (c *Cmd) useColor(w *os.File) bool {
	if c.Config.NoColor {
		return false
	}
	return isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
}

func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) mainer.ExitCode {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) mainer.ExitCode)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Name() != "ExitCode" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		name := strings.ToLower(m.Name)
		if name == "repl" {
			// Repl is only reachable via the bare-invocation fallback, not
			// as an explicit subcommand name.
			continue
		}
		cmds[name] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) mainer.ExitCode)
	}
	return cmds
}
