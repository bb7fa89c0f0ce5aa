// Package resolver implements the static resolution pass between parsing
// and interpretation: for every variable, `this`, and `super` use it
// computes the number of enclosing lexical scopes between the use and its
// declaration, and rejects a fixed set of semantic errors (use-before-
// define, duplicate declarations, misplaced return/this/super, and
// self-inheriting classes) before the interpreter ever runs.
package resolver

import (
	"fmt"

	"github.com/sdcook/tlox/internal/ast"
	"github.com/sdcook/tlox/internal/token"
)

// StaticError is a semantic error found during resolution, fatal for the
// whole program (the interpreter never runs if any were reported).
type StaticError struct {
	Line    int
	Where   string
	Message string
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Line, e.Where, e.Message)
}

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// scope maps a name to whether it has finished being defined (false means
// "declared but its initializer is still being resolved").
type scope map[string]bool

// Locals is the resolver's output: for every variable-bearing expression
// (by NodeID) that resolved to a local binding, the number of enclosing
// scopes between the use and its declaration. An expression absent from
// this map is a global.
type Locals map[int]int

// Resolver walks a parsed program and builds a Locals map, never
// evaluating any expression.
type Resolver struct {
	scopes      []scope
	locals      Locals
	currentFunc functionType
	currentCls  classType
	errs        []error
}

// New creates a Resolver ready to resolve a program.
func New() *Resolver {
	return &Resolver{locals: make(Locals)}
}

// Resolve runs the resolver over every top-level statement and returns
// the accumulated Locals map along with any static errors found. An error
// is recorded and resolution continues, so one pass reports every static
// error; callers must not interpret a program for which len(errs) > 0.
func Resolve(stmts []ast.Stmt) (Locals, []error) {
	r := New()
	r.resolveStmts(stmts)
	return r.locals, r.errs
}

func (r *Resolver) errorAt(tok token.Token, msg string) {
	where := tok.Lexeme
	if where == "" {
		where = "end"
	}
	r.errs = append(r.errs, &StaticError{Line: tok.Line, Where: where, Message: msg})
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }

func (r *Resolver) endScope() { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	sc := r.scopes[len(r.scopes)-1]
	if _, ok := sc[name.Lexeme]; ok {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// defineSynthetic declares+defines a compiler-introduced binding (`this`,
// `super`) in the innermost scope in one step; these never go through a
// use-before-define check.
func (r *Resolver) defineSynthetic(name string) {
	if len(r.scopes) == 0 {
		r.beginScope()
	}
	r.scopes[len(r.scopes)-1][name] = true
}

func (r *Resolver) resolveLocal(nodeID int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[nodeID] = len(r.scopes) - 1 - i
			return
		}
	}
	// Unresolved: treated as global.
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(st.Stmts)
		r.endScope()
	case *ast.Var:
		r.declare(st.Name)
		if st.Initializer != nil {
			r.resolveExpr(st.Initializer)
		}
		r.define(st.Name.Lexeme)
	case *ast.Function:
		r.declare(st.Name)
		r.define(st.Name.Lexeme)
		r.resolveFunction(st, funcFunction)
	case *ast.Expression:
		r.resolveExpr(st.Expr)
	case *ast.If:
		r.resolveExpr(st.Cond)
		r.resolveStmt(st.Then)
		if st.Else != nil {
			r.resolveStmt(st.Else)
		}
	case *ast.Print:
		r.resolveExpr(st.Expr)
	case *ast.Return:
		if r.currentFunc == funcNone {
			r.errorAt(st.Keyword, "Can't return from top-level code.")
		}
		if st.Value != nil {
			if r.currentFunc == funcInitializer {
				r.errorAt(st.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(st.Value)
		}
	case *ast.While:
		r.resolveExpr(st.Cond)
		r.resolveStmt(st.Body)
	case *ast.Class:
		r.resolveClass(st)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", s))
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, typ functionType) {
	enclosing := r.currentFunc
	r.currentFunc = typ

	r.beginScope()
	seen := map[string]bool{}
	for _, p := range fn.Params {
		if seen[p.Lexeme] {
			r.errorAt(p, "Already a variable with this name in this scope.")
		}
		seen[p.Lexeme] = true
		r.declare(p)
		r.define(p.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosing
}

func (r *Resolver) resolveClass(c *ast.Class) {
	enclosingClass := r.currentCls
	r.currentCls = classClass

	r.declare(c.Name)
	r.define(c.Name.Lexeme)

	hasSuperclass := c.Superclass != nil
	if hasSuperclass {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.errorAt(c.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentCls = classSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.defineSynthetic("super")
	}

	r.beginScope()
	r.defineSynthetic("this")

	for _, m := range c.Methods {
		typ := funcMethod
		if m.Name.Lexeme == "init" {
			typ = funcInitializer
		}
		r.resolveFunction(m, typ)
	}

	r.endScope()
	if hasSuperclass {
		r.endScope()
	}

	r.currentCls = enclosingClass
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][ex.Name.Lexeme]; declared && !defined {
				r.errorAt(ex.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(ex.NodeID(), ex.Name.Lexeme)
	case *ast.Assign:
		r.resolveExpr(ex.Value)
		r.resolveLocal(ex.NodeID(), ex.Name.Lexeme)
	case *ast.Binary:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Logical:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Unary:
		r.resolveExpr(ex.Right)
	case *ast.Grouping:
		r.resolveExpr(ex.Inner)
	case *ast.Call:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(ex.Object)
	case *ast.Set:
		r.resolveExpr(ex.Value)
		r.resolveExpr(ex.Object)
	case *ast.This:
		if r.currentCls == classNone {
			r.errorAt(ex.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(ex.NodeID(), "this")
	case *ast.Super:
		switch {
		case r.currentCls == classNone:
			r.errorAt(ex.Keyword, "Can't use 'super' outside of a class.")
			return
		case r.currentCls != classSubclass:
			r.errorAt(ex.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(ex.NodeID(), "super")
	case *ast.Literal:
		// nothing to resolve
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", e))
	}
}
