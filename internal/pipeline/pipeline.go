// Package pipeline wires lexer -> parser -> resolver -> interp together,
// reporting every stage's errors through a reporter.Reporter and stopping
// before interpretation if any static error was found, matching the
// "never interpret a program that failed to resolve cleanly" invariant.
package pipeline

import (
	"io"

	"github.com/sdcook/tlox/internal/ast"
	"github.com/sdcook/tlox/internal/interp"
	"github.com/sdcook/tlox/internal/lexer"
	"github.com/sdcook/tlox/internal/parser"
	"github.com/sdcook/tlox/internal/reporter"
	"github.com/sdcook/tlox/internal/resolver"
)

// Tokenize lexes src and reports any lexical errors. It returns the token
// stream regardless, since callers that just want to print tokens still
// want to see the ones that scanned fine.
func Tokenize(src []byte, rep *reporter.Reporter) []tokenLine {
	lx := lexer.New(src)
	toks, errs := lx.Scan()
	for _, err := range errs {
		if le, ok := err.(*lexer.Error); ok {
			rep.Static(le.Line, "", le.Message)
		}
	}
	out := make([]tokenLine, len(toks))
	for i, t := range toks {
		out[i] = tokenLine{Text: t.String()}
	}
	return out
}

type tokenLine struct{ Text string }

func (t tokenLine) String() string { return t.Text }

// Parse lexes and parses src, reporting both lexical and syntax errors.
// The returned statements are only meaningful if rep has no static error
// recorded afterward.
func Parse(src []byte, rep *reporter.Reporter) []ast.Stmt {
	lx := lexer.New(src)
	toks, lexErrs := lx.Scan()
	for _, err := range lexErrs {
		if le, ok := err.(*lexer.Error); ok {
			rep.Static(le.Line, "", le.Message)
		}
	}

	p := parser.New(toks)
	stmts, parseErrs := p.Parse()
	for _, err := range parseErrs {
		if pe, ok := err.(*parser.Error); ok {
			rep.Static(pe.Line, pe.Where, pe.Message)
		}
	}
	return stmts
}

// Resolve parses src and, if parsing produced no errors, runs the
// resolver over it. It returns the parsed statements and the resolved
// Locals map; Locals is nil if resolution did not run or found errors.
func Resolve(src []byte, rep *reporter.Reporter) ([]ast.Stmt, resolver.Locals) {
	stmts := Parse(src, rep)
	if rep.HadStaticError() {
		return stmts, nil
	}
	locals, errs := resolver.Resolve(stmts)
	for _, err := range errs {
		if se, ok := err.(*resolver.StaticError); ok {
			rep.Static(se.Line, se.Where, se.Message)
		}
	}
	if rep.HadStaticError() {
		return stmts, nil
	}
	return stmts, locals
}

// Run resolves and interprets src against a fresh Interpreter, writing
// program output to stdout. It reports a runtime error, if any, through
// rep and returns it so the caller can decide on an exit code.
func Run(src []byte, stdout io.Writer, rep *reporter.Reporter, maxCallDepth int) error {
	stmts, locals := Resolve(src, rep)
	if rep.HadStaticError() {
		return nil
	}

	it := interp.New(locals, stdout, maxCallDepth)
	if err := it.Interpret(stmts); err != nil {
		if re, ok := err.(*interp.RuntimeError); ok {
			rep.Runtime(re.Message, re.Token.Line)
			return re
		}
		return err
	}
	return nil
}
