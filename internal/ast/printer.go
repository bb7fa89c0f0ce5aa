package ast

import (
	"fmt"
	"strings"
)

func (l *Literal) String() string { return l.Lexeme }

func (v *Variable) String() string { return v.Name.Lexeme }

func (a *Assign) String() string { return fmt.Sprintf("%s = %s", a.Name.Lexeme, a.Value) }

func (u *Unary) String() string { return fmt.Sprintf("(%s %s)", u.Op.Lexeme, u.Right) }

func (b *Binary) String() string { return fmt.Sprintf("(%s %s %s)", b.Op.Lexeme, b.Left, b.Right) }

func (l *Logical) String() string { return fmt.Sprintf("(%s %s %s)", l.Op.Lexeme, l.Left, l.Right) }

func (g *Grouping) String() string { return fmt.Sprintf("(group %s)", g.Inner) }

func (c *Call) String() string {
	sb := strings.Builder{}
	sb.WriteString(c.Callee.String())
	sb.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (g *Get) String() string { return fmt.Sprintf("%s.%s", g.Object, g.Name.Lexeme) }

func (s *Set) String() string { return fmt.Sprintf("%s.%s = %s", s.Object, s.Name.Lexeme, s.Value) }

func (t *This) String() string { return "this" }

func (s *Super) String() string { return fmt.Sprintf("super.%s", s.Method.Lexeme) }

func (b *Block) String() string {
	sb := strings.Builder{}
	sb.WriteString("{\n")
	for _, s := range b.Stmts {
		sb.WriteString("    " + s.String() + "\n")
	}
	sb.WriteByte('}')
	return sb.String()
}

func (e *Expression) String() string { return e.Expr.String() + ";" }

func (p *Print) String() string { return "print " + p.Expr.String() + ";" }

func (v *Var) String() string {
	if v.Initializer == nil {
		return "var " + v.Name.Lexeme + ";"
	}
	return fmt.Sprintf("var %s = %s;", v.Name.Lexeme, v.Initializer)
}

func (i *If) String() string {
	sb := strings.Builder{}
	sb.WriteString("if (" + i.Cond.String() + ") " + i.Then.String())
	if i.Else != nil {
		sb.WriteString(" else " + i.Else.String())
	}
	return sb.String()
}

func (w *While) String() string { return fmt.Sprintf("while (%s) %s", w.Cond, w.Body) }

func (f *Function) String() string {
	sb := strings.Builder{}
	sb.WriteString("fun " + f.Name.Lexeme + "(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Lexeme)
	}
	sb.WriteString(") {\n")
	for _, s := range f.Body {
		sb.WriteString("    " + s.String() + "\n")
	}
	sb.WriteByte('}')
	return sb.String()
}

func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

func (c *Class) String() string {
	sb := strings.Builder{}
	sb.WriteString("class " + c.Name.Lexeme)
	if c.Superclass != nil {
		sb.WriteString(" < " + c.Superclass.Name.Lexeme)
	}
	sb.WriteString(" {\n")
	for _, m := range c.Methods {
		sb.WriteString("    " + m.String() + "\n")
	}
	sb.WriteByte('}')
	return sb.String()
}
