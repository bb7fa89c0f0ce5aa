package interp

import (
	"time"

	"github.com/sdcook/tlox/internal/env"
	"github.com/sdcook/tlox/internal/interp/value"
)

// NativeFn is a built-in callable with no AST declaration and no
// closure: it is backed directly by a Go function.
type NativeFn struct {
	name  string
	arity int
	fn    func(it *Interpreter, args []value.Value) (value.Value, error)
}

func (n *NativeFn) Kind() value.Kind { return value.KindCallable }
func (n *NativeFn) String() string   { return "<native fn>" }
func (n *NativeFn) Arity() int       { return n.arity }
func (n *NativeFn) Call(it *Interpreter, args []value.Value) (value.Value, error) {
	return n.fn(it, args)
}

// defineNatives installs the language's built-ins into globals.
func defineNatives(globals *env.Environment) {
	globals.Define("clock", &NativeFn{
		name:  "clock",
		arity: 0,
		fn: func(_ *Interpreter, _ []value.Value) (value.Value, error) {
			return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
}
