package interp

import "github.com/sdcook/tlox/internal/interp/value"

// Class is a class value: its name, optional superclass, and its own
// (non-inherited) method table. Calling a Class constructs an Instance.
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

// NewClass builds a class value. methods holds only the methods declared
// directly on this class, not inherited ones; FindMethod walks the
// superclass chain lazily.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{name: name, superclass: superclass, methods: methods}
}

func (c *Class) Kind() value.Kind { return value.KindCallable }
func (c *Class) String() string   { return c.name }

// FindMethod searches this class's own method table, then its
// superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.methods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil
}

// Arity is the arity of `init` if the class (or an ancestor) declares
// one, else 0.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance, running its `init` method (if any)
// against args before returning it.
func (c *Class) Call(it *Interpreter, args []value.Value) (value.Value, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(it, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
