// Package env implements the parent-linked chain of lexical frames that
// the resolver's depths index into and the interpreter reads/writes
// through.
package env

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/sdcook/tlox/internal/interp/value"
	"github.com/sdcook/tlox/internal/token"
)

// defaultFrameSize is the initial capacity hint handed to swiss.NewMap for
// a fresh frame. Most Lox blocks/calls bind a handful of names.
const defaultFrameSize = 8

// Environment is one frame of named bindings, optionally chained to an
// enclosing (parent) frame. Environments are referenced from multiple
// Values at once (closures, bound methods, super scopes) and so are
// always handled through the *Environment pointer; never copied by value.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, value.Value]
}

// New creates a frame whose parent is enclosing (nil for the globals
// frame).
func New(enclosing *Environment) *Environment {
	return &Environment{
		enclosing: enclosing,
		values:    swiss.NewMap[string, value.Value](defaultFrameSize),
	}
}

// UndefinedVariableError is returned by Get/Assign when name is not bound
// anywhere in the chain.
type UndefinedVariableError struct {
	Name token.Token
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name.Lexeme)
}

// Define unconditionally installs name in this frame, overwriting any
// existing binding. Lox allows silent redeclaration, including at global
// scope, so there is no "already defined" check here.
func (e *Environment) Define(name string, v value.Value) {
	e.values.Put(name, v)
}

// Get returns the value bound to name, searching from this frame outward.
func (e *Environment) Get(name token.Token) (value.Value, error) {
	for frame := e; frame != nil; frame = frame.enclosing {
		if v, ok := frame.values.Get(name.Lexeme); ok {
			return v, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// Assign updates the nearest frame (searching from this frame outward)
// that already binds name.
func (e *Environment) Assign(name token.Token, v value.Value) error {
	for frame := e; frame != nil; frame = frame.enclosing {
		if _, ok := frame.values.Get(name.Lexeme); ok {
			frame.values.Put(name.Lexeme, v)
			return nil
		}
	}
	return &UndefinedVariableError{Name: name}
}

// Ancestor returns the frame depth hops outward (0 = this frame). The
// caller (the interpreter, driven by the resolver's output) is trusted to
// pass a depth proven reachable by the resolver; Ancestor does not
// search and panics on an out-of-range depth since that would indicate a
// resolver/interpreter desync bug, not a user-facing error.
func (e *Environment) Ancestor(depth int) *Environment {
	frame := e
	for i := 0; i < depth; i++ {
		if frame.enclosing == nil {
			panic(fmt.Sprintf("environment: ancestor depth %d exceeds chain length", depth))
		}
		frame = frame.enclosing
	}
	return frame
}

// GetAt reads name directly from the frame depth hops outward, without
// searching. Used with resolver-computed depths.
func (e *Environment) GetAt(depth int, name string) value.Value {
	frame := e.Ancestor(depth)
	v, ok := frame.values.Get(name)
	if !ok {
		panic(fmt.Sprintf("environment: resolver depth %d claims binding %q exists but it does not", depth, name))
	}
	return v
}

// AssignAt writes name directly into the frame depth hops outward,
// without searching.
func (e *Environment) AssignAt(depth int, name string, v value.Value) {
	e.Ancestor(depth).values.Put(name, v)
}
