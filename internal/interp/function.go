package interp

import (
	"fmt"

	"github.com/sdcook/tlox/internal/ast"
	"github.com/sdcook/tlox/internal/env"
	"github.com/sdcook/tlox/internal/interp/value"
)

// Function is a user-defined function or method value: the declaration
// it was parsed from, the environment active when it was declared
// (its closure), and whether it is a class initializer (which always
// implicitly returns `this`, ignoring any explicit return value).
type Function struct {
	decl          *ast.Function
	closure       *env.Environment
	isInitializer bool
}

// NewFunction wraps decl as a first-class value closing over the given
// environment.
func NewFunction(decl *ast.Function, closure *env.Environment, isInitializer bool) *Function {
	return &Function{decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Kind() value.Kind { return value.KindCallable }
func (f *Function) String() string   { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }
func (f *Function) Arity() int       { return len(f.decl.Params) }

// Bind returns a new Function whose closure is a fresh environment,
// enclosing f's closure, with `this` bound to instance. Used whenever a
// method is read off an instance (directly, or via `super`).
func (f *Function) Bind(instance *Instance) *Function {
	frame := env.New(f.closure)
	frame.Define("this", instance)
	return &Function{decl: f.decl, closure: frame, isInitializer: f.isInitializer}
}

// Call runs the function body in a fresh environment parented at the
// closure, with parameters bound to args (already arity-checked by the
// caller). An initializer always yields the `this` bound in its own
// closure, regardless of what (if anything) the body returned.
func (f *Function) Call(it *Interpreter, args []value.Value) (value.Value, error) {
	if err := it.pushCallFrame(f.decl.Name); err != nil {
		return nil, err
	}
	defer it.popCallFrame()

	frame := env.New(f.closure)
	for i, param := range f.decl.Params {
		frame.Define(param.Lexeme, args[i])
	}

	err := it.executeBlock(f.decl.Body, frame)
	retVal, isReturn := asReturn(err)
	if err != nil && !isReturn {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if isReturn {
		return retVal, nil
	}
	return value.Nil{}, nil
}
