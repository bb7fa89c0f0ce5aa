package interp

import "github.com/sdcook/tlox/internal/interp/value"

// Callable is the uniform invocation contract shared by user-defined
// functions, bound methods, classes (called to construct an instance),
// and natives. It embeds value.Value so any Callable can flow through the
// environment chain like any other value.
type Callable interface {
	value.Value
	Arity() int
	Call(it *Interpreter, args []value.Value) (value.Value, error)
}

var (
	_ Callable = (*Function)(nil)
	_ Callable = (*Class)(nil)
	_ Callable = (*NativeFn)(nil)
)
