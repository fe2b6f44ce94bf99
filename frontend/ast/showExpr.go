package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ExprString prints expr back in the s-expression surface syntax
func ExprString(expr Expr) string {
	ctx := newShowContext()
	ctx.showExprWalker(expr)
	return ctx.String()
}

// StmtString prints stmt back in the s-expression surface syntax
func StmtString(stmt Stmt) string {
	ctx := newShowContext()
	ctx.showStmt(stmt)
	return ctx.String()
}

// ProgramString prints one statement per line
func ProgramString(prog Program) string {
	ctx := newShowContext()
	for i, stmt := range prog.Stmts {
		if i > 0 {
			ctx.WriteString("\n")
		}
		ctx.showStmt(stmt)
	}
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func newShowContext() *showContext {
	return &showContext{
		Builder: &strings.Builder{},
	}
}

func (ctx *showContext) form(head string, body func()) {
	ctx.WriteString("(" + head)
	body()
	ctx.WriteString(")")
}

func (ctx *showContext) arg(expr Expr) {
	ctx.WriteString(" ")
	ctx.showExprWalker(expr)
}

func (ctx *showContext) showExprWalker(expr Expr) {
	if expr == nil {
		ctx.WriteString("nil")
		return
	}
	switch expr := expr.(type) {
	case *Var:
		ctx.WriteString(expr.Name)
	case *NumLit:
		ctx.WriteString(strconv.FormatUint(expr.Value, 10))
	case *BoolLit:
		ctx.WriteString(strconv.FormatBool(expr.Value))
	case *Lambda:
		ctx.form("lambda", func() {
			ctx.WriteString(" " + expr.Param + " " + TypeString(expr.ParamType))
			ctx.arg(expr.Body)
		})
	case *Apply:
		ctx.WriteString("(")
		ctx.showExprWalker(expr.Head)
		for _, arg := range expr.Args {
			ctx.arg(arg)
		}
		ctx.WriteString(")")
	case *If:
		ctx.form("if", func() {
			ctx.arg(expr.Cond)
			ctx.arg(expr.Then)
			ctx.arg(expr.Else)
		})
	case *RecordLit:
		ctx.form("rec", func() {
			for _, field := range expr.Fields {
				ctx.WriteString(" " + field.Name)
				ctx.arg(field.Value)
			}
		})
	case *Project:
		ctx.form("field", func() {
			ctx.arg(expr.Target)
			ctx.WriteString(" " + expr.Name)
		})
	case *Inject:
		ctx.form("union", func() {
			ctx.WriteString(" " + expr.Variant)
			ctx.arg(expr.Payload)
		})
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (ctx *showContext) showStmt(stmt Stmt) {
	switch stmt := stmt.(type) {
	case *Define:
		ctx.form("define", func() {
			ctx.WriteString(" " + stmt.Name)
			ctx.arg(stmt.Value)
		})
	case *Assign:
		ctx.form("assign", func() {
			ctx.arg(stmt.Target)
			ctx.arg(stmt.Value)
		})
	case *Print:
		ctx.form("print", func() {
			ctx.arg(stmt.Value)
		})
	default:
		panic(fmt.Sprintf("unexpected statement %T", stmt))
	}
}
