// Package interp implements the tree-walking interpreter: the AST visitor
// that evaluates expressions and executes statements against the
// environment chain, using the resolver's depth map for variable/this/
// super lookups and the callable/class/instance model defined alongside
// it in this package.
package interp

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sdcook/tlox/internal/ast"
	"github.com/sdcook/tlox/internal/env"
	"github.com/sdcook/tlox/internal/interp/value"
	"github.com/sdcook/tlox/internal/resolver"
	"github.com/sdcook/tlox/internal/token"
)

// Interpreter owns the current environment pointer, the globals frame
// (always populated with the built-in natives), and the resolution map
// produced by the resolver. It is single-threaded and synchronous: there
// are no suspension points, so no locking discipline is required around
// the environment chain or instance field tables.
type Interpreter struct {
	globals     *env.Environment
	environment *env.Environment
	locals      resolver.Locals
	stdout      io.Writer

	callDepth    int
	maxCallDepth int
}

// New creates an Interpreter. locals is the output of resolver.Resolve
// for the program about to be interpreted. maxCallDepth <= 0 disables the
// recursion guard.
func New(locals resolver.Locals, stdout io.Writer, maxCallDepth int) *Interpreter {
	globals := env.New(nil)
	defineNatives(globals)
	return &Interpreter{
		globals:      globals,
		environment:  globals,
		locals:       locals,
		stdout:       stdout,
		maxCallDepth: maxCallDepth,
	}
}

// SetLocals replaces the resolver output used for subsequent lookupVariable
// calls. The REPL driver calls this between lines, since each line is
// resolved independently and its node ids are only meaningful against its
// own Locals map.
func (it *Interpreter) SetLocals(locals resolver.Locals) { it.locals = locals }

// Interpret executes every top-level statement in order, stopping at the
// first runtime error.
func (it *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) pushCallFrame(tok token.Token) error {
	it.callDepth++
	if it.maxCallDepth > 0 && it.callDepth > it.maxCallDepth {
		it.callDepth--
		return runtimeErrorf(tok, "Stack overflow.")
	}
	return nil
}

func (it *Interpreter) popCallFrame() { it.callDepth-- }

// ---- statement execution ----

func (it *Interpreter) execute(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.Block:
		return it.executeBlock(st.Stmts, env.New(it.environment))
	case *ast.Expression:
		_, err := it.evaluate(st.Expr)
		return err
	case *ast.Print:
		v, err := it.evaluate(st.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.stdout, v.String())
		return nil
	case *ast.Var:
		var v value.Value = value.Nil{}
		if st.Initializer != nil {
			var err error
			v, err = it.evaluate(st.Initializer)
			if err != nil {
				return err
			}
		}
		it.environment.Define(st.Name.Lexeme, v)
		return nil
	case *ast.If:
		cond, err := it.evaluate(st.Cond)
		if err != nil {
			return err
		}
		if value.Truthy(cond) {
			return it.execute(st.Then)
		}
		if st.Else != nil {
			return it.execute(st.Else)
		}
		return nil
	case *ast.While:
		for {
			cond, err := it.evaluate(st.Cond)
			if err != nil {
				return err
			}
			if !value.Truthy(cond) {
				return nil
			}
			if err := it.execute(st.Body); err != nil {
				return err
			}
		}
	case *ast.Function:
		fn := NewFunction(st, it.environment, false)
		it.environment.Define(st.Name.Lexeme, fn)
		return nil
	case *ast.Return:
		var v value.Value = value.Nil{}
		if st.Value != nil {
			var err error
			v, err = it.evaluate(st.Value)
			if err != nil {
				return err
			}
		}
		return returnSignal{value: v}
	case *ast.Class:
		return it.executeClass(st)
	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", s))
	}
}

// executeBlock runs stmts inside frame, restoring the interpreter's prior
// environment on every exit path, including a return unwind or an error.
func (it *Interpreter) executeBlock(stmts []ast.Stmt, frame *env.Environment) error {
	previous := it.environment
	it.environment = frame
	defer func() { it.environment = previous }()

	for _, s := range stmts {
		if err := it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) executeClass(c *ast.Class) error {
	var superclass *Class
	if c.Superclass != nil {
		sv, err := it.evaluate(c.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sv.(*Class)
		if !ok {
			return runtimeErrorf(c.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	// Forward-declare the name so methods (and the class body itself, via
	// recursive references) can see it while it's being constructed.
	it.environment.Define(c.Name.Lexeme, value.Nil{})

	classEnv := it.environment
	if c.Superclass != nil {
		classEnv = env.New(it.environment)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(c.Methods))
	for _, m := range c.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, classEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(c.Name.Lexeme, superclass, methods)
	// Can't fail: the name was just defined in this same environment above.
	_ = it.environment.Assign(c.Name, class)
	return nil
}

// ---- expression evaluation ----

func (it *Interpreter) evaluate(e ast.Expr) (value.Value, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return it.evalLiteral(ex)
	case *ast.Variable:
		return it.lookupVariable(ex.Name, ex.NodeID())
	case *ast.Assign:
		return it.evalAssign(ex)
	case *ast.Unary:
		return it.evalUnary(ex)
	case *ast.Binary:
		return it.evalBinary(ex)
	case *ast.Logical:
		return it.evalLogical(ex)
	case *ast.Grouping:
		return it.evaluate(ex.Inner)
	case *ast.Call:
		return it.evalCall(ex)
	case *ast.Get:
		return it.evalGet(ex)
	case *ast.Set:
		return it.evalSet(ex)
	case *ast.This:
		return it.lookupVariable(ex.Keyword, ex.NodeID())
	case *ast.Super:
		return it.evalSuper(ex)
	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", e))
	}
}

func (it *Interpreter) evalLiteral(l *ast.Literal) (value.Value, error) {
	switch l.Kind {
	case ast.LitNumber:
		f, _ := strconv.ParseFloat(l.Lexeme, 64)
		return value.Number(f), nil
	case ast.LitString:
		return value.String(l.Lexeme), nil
	case ast.LitTrue:
		return value.Bool(true), nil
	case ast.LitFalse:
		return value.Bool(false), nil
	case ast.LitNil:
		return value.Nil{}, nil
	default:
		panic("interp: unhandled literal kind")
	}
}

func (it *Interpreter) lookupVariable(name token.Token, nodeID int) (value.Value, error) {
	if depth, ok := it.locals[nodeID]; ok {
		return it.environment.GetAt(depth, name.Lexeme), nil
	}
	return toRuntimeErr(it.globals.Get(name))
}

func (it *Interpreter) evalAssign(a *ast.Assign) (value.Value, error) {
	v, err := it.evaluate(a.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := it.locals[a.NodeID()]; ok {
		it.environment.AssignAt(depth, a.Name.Lexeme, v)
		return v, nil
	}
	if err := it.globals.Assign(a.Name, v); err != nil {
		return nil, toRuntimeError(err)
	}
	return v, nil
}

func (it *Interpreter) evalUnary(u *ast.Unary) (value.Value, error) {
	right, err := it.evaluate(u.Right)
	if err != nil {
		return nil, err
	}
	switch u.Op.Type {
	case token.Bang:
		return value.Bool(!value.Truthy(right)), nil
	case token.Minus:
		n, ok := right.(value.Number)
		if !ok {
			return nil, runtimeErrorf(u.Op, "Operand must be a number.")
		}
		return -n, nil
	default:
		panic("interp: unhandled unary operator")
	}
}

func (it *Interpreter) evalLogical(l *ast.Logical) (value.Value, error) {
	left, err := it.evaluate(l.Left)
	if err != nil {
		return nil, err
	}
	if l.Op.Type == token.Or {
		if value.Truthy(left) {
			return left, nil
		}
	} else { // and
		if !value.Truthy(left) {
			return left, nil
		}
	}
	return it.evaluate(l.Right)
}

func (it *Interpreter) evalBinary(b *ast.Binary) (value.Value, error) {
	left, err := it.evaluate(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op.Type {
	case token.Plus:
		if ln, ok := left.(value.Number); ok {
			if rn, ok := right.(value.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(value.String); ok {
			if rs, ok := right.(value.String); ok {
				return ls + rs, nil
			}
		}
		return nil, runtimeErrorf(b.Op, "Operands must be two numbers or two strings.")
	case token.Minus:
		ln, rn, err := it.assertNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case token.Star:
		ln, rn, err := it.assertNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case token.Slash:
		ln, rn, err := it.assertNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil
	case token.Greater:
		ln, rn, err := it.assertNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(ln > rn), nil
	case token.GreaterEqual:
		ln, rn, err := it.assertNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(ln >= rn), nil
	case token.Less:
		ln, rn, err := it.assertNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(ln < rn), nil
	case token.LessEqual:
		ln, rn, err := it.assertNumbers(b.Op, left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool(ln <= rn), nil
	case token.EqualEqual:
		return value.Bool(value.Equal(left, right)), nil
	case token.BangEqual:
		return value.Bool(!value.Equal(left, right)), nil
	default:
		panic("interp: unhandled binary operator")
	}
}

func (it *Interpreter) assertNumbers(op token.Token, a, b value.Value) (value.Number, value.Number, error) {
	an, aok := a.(value.Number)
	bn, bok := b.(value.Number)
	if !aok || !bok {
		return 0, 0, runtimeErrorf(op, "Operands must be numbers.")
	}
	return an, bn, nil
}

func (it *Interpreter) evalCall(c *ast.Call) (value.Value, error) {
	callee, err := it.evaluate(c.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorf(c.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErrorf(c.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(it, args)
}

func (it *Interpreter) evalGet(g *ast.Get) (value.Value, error) {
	obj, err := it.evaluate(g.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErrorf(g.Name, "Only instances have properties.")
	}
	return instance.Get(g.Name)
}

func (it *Interpreter) evalSet(s *ast.Set) (value.Value, error) {
	obj, err := it.evaluate(s.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErrorf(s.Name, "Only instances have fields.")
	}
	v, err := it.evaluate(s.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(s.Name, v)
	return v, nil
}

func (it *Interpreter) evalSuper(s *ast.Super) (value.Value, error) {
	depth := it.locals[s.NodeID()]
	superclass := it.environment.GetAt(depth, "super").(*Class)
	instance := it.environment.GetAt(depth-1, "this").(*Instance)

	method := superclass.FindMethod(s.Method.Lexeme)
	if method == nil {
		return nil, runtimeErrorf(s.Method, "Undefined property '%s'.", s.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

// toRuntimeErr adapts a (value, error) pair from package env into one
// where the error, if any, is a *RuntimeError.
func toRuntimeErr(v value.Value, err error) (value.Value, error) {
	if err != nil {
		return nil, toRuntimeError(err)
	}
	return v, nil
}

func toRuntimeError(err error) error {
	if uve, ok := err.(*env.UndefinedVariableError); ok {
		return runtimeErrorf(uve.Name, "Undefined variable '%s'.", uve.Name.Lexeme)
	}
	return err
}
