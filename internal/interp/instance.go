package interp

import (
	"github.com/dolthub/swiss"

	"github.com/sdcook/tlox/internal/interp/value"
	"github.com/sdcook/tlox/internal/token"
)

// instanceFieldTableSize is the initial capacity hint for a fresh
// instance's field table; most Lox classes set a handful of fields.
const instanceFieldTableSize = 4

// Instance is a runtime object: a reference to its class plus its own
// field table. Field lookups shadow same-named methods.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, value.Value]
}

// NewInstance creates a field-less instance of class.
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: swiss.NewMap[string, value.Value](instanceFieldTableSize)}
}

func (i *Instance) Kind() value.Kind { return value.KindInstance }
func (i *Instance) String() string   { return i.class.name + " instance" }

// Get resolves name against the field table first, then the class's
// method table (bound to this instance), else reports
// UndefinedProperty.
func (i *Instance) Get(name token.Token) (value.Value, error) {
	if v, ok := i.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if method := i.class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}
	return nil, runtimeErrorf(name, "Undefined property '%s'.", name.Lexeme)
}

// Set unconditionally writes into the field table; Lox instances have no
// field declaration step.
func (i *Instance) Set(name token.Token, v value.Value) {
	i.fields.Put(name.Lexeme, v)
}
