package interp

import (
	"fmt"

	"github.com/sdcook/tlox/internal/interp/value"
	"github.com/sdcook/tlox/internal/token"
)

// RuntimeError is any error raised while evaluating an already-resolved
// program: undefined variables/properties, type mismatches on operators,
// wrong arity, calling a non-callable, etc. It carries the token whose
// line number should be reported alongside the message, so Error() can
// render the conventional "<message>\n[line L]" form.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func runtimeErrorf(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// returnSignal is the internal, non-error control-flow unwind used to
// implement `return`. It is propagated through the same error-returning
// path as RuntimeError so that executeBlock/execute don't need a second
// return channel, but the interpreter's call machinery (Function.Call)
// always intercepts it before it can reach a caller as a real error.
type returnSignal struct {
	value value.Value
}

func (returnSignal) Error() string { return "return" }

// asReturn reports whether err is a returnSignal, extracting its value.
func asReturn(err error) (value.Value, bool) {
	rs, ok := err.(returnSignal)
	if !ok {
		return nil, false
	}
	return rs.value, true
}
